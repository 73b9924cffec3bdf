package obmm

import "testing"

func TestParseVersion(t *testing.T) {
	tests := map[string]Version{
		"1":       {Major: 1},
		"1.2":     {Major: 1, Minor: 2},
		"0.19.3":  {Minor: 19, Build: 3},
		"1.2.3.4": {Major: 1, Minor: 2, Build: 3, Revision: 4},
	}
	for in, want := range tests {
		got, err := ParseVersion(in)
		if err != nil {
			t.Fatalf("ParseVersion(%q) failed: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseVersion(%q) = %+v, want %+v", in, got, want)
		}
	}
	for _, in := range []string{"", "a.b", "1.2.3.4.5", "1.-2", "1..2", "1.2-beta", "1.2+build", "v1.2", "1.2 3"} {
		if _, err := ParseVersion(in); err == nil {
			t.Fatalf("ParseVersion(%q) should fail", in)
		}
	}
}

func TestVersionCompare(t *testing.T) {
	a := MustParseVersion("1.1.12")
	if a.Compare(MustParseVersion("1.1.12.0")) != 0 {
		t.Fatalf("trailing zero components must compare equal")
	}
	if a.Compare(MustParseVersion("1.2")) >= 0 || MustParseVersion("2").Compare(a) <= 0 {
		t.Fatalf("unexpected ordering")
	}
	if a.String() != "1.1.12.0" {
		t.Fatalf("String() = %q", a.String())
	}

	if (Version{Major: 1, Minor: -3}).Compare(Version{Major: 1}) != 0 {
		t.Fatalf("negative components must compare as zero")
	}
	if MustParseVersion("1.0.0.10").Compare(MustParseVersion("1.0.0.9")) <= 0 {
		t.Fatalf("revision must compare numerically")
	}

	var v Version
	if err := v.UnmarshalText([]byte("0.19")); err != nil || v != (Version{Minor: 19}) {
		t.Fatalf("UnmarshalText = %+v, %v", v, err)
	}
}
