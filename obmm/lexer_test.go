package obmm

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplitLine(t *testing.T) {
	env := NewEnv("\n")
	env.Set("name", "Bob")
	env.Set("dir", `meshes\armor`)

	tests := []struct {
		line  string
		want  []string
		diags int
	}{
		{line: "", want: nil},
		{line: "Message hello", want: []string{"Message", "hello"}},
		{line: "SetVar  a,,b", want: []string{"SetVar", "a", "b"}},
		{line: `Message "hello world" Title`, want: []string{"Message", "hello world", "Title"}},
		{line: `Message ""`, want: []string{"Message", ""}},
		{line: `Message "say \"hi\""`, want: []string{"Message", `say "hi"`}},
		{line: `Message "a\\b"`, want: []string{"Message", `a\b`}},
		{line: `Message "100\%"`, want: []string{"Message", "100%"}},
		{line: `Message "a;b" ; trailing comment`, want: []string{"Message", "a;b"}},
		{line: "SetVar x 1;comment", want: []string{"SetVar", "x", "1"}},
		{line: "Message %name%", want: []string{"Message", "Bob"}},
		{line: "Message pre%name%post", want: []string{"Message", "preBobpost"}},
		{line: "Message %missing%", want: []string{"Message", "%missing%"}},
		{line: `CopyDataFile %dir%\a.nif b.nif`, want: []string{"CopyDataFile", `meshes\armor\a.nif`, "b.nif"}},
		{line: `InstallDataFile meshes\a.nif`, want: []string{"InstallDataFile", `meshes\a.nif`}},
		{line: `Message "open`, want: []string{"Message", "open"}, diags: 1},
		{line: "Message %open", want: []string{"Message", "%open"}, diags: 1},
		{line: "Message 50% done", want: []string{"Message", "50%", "done"}},
	}

	for _, tc := range tests {
		got, diags := SplitLine(tc.line, env)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("SplitLine(%q) mismatch (-want +got):\n%s", tc.line, diff)
		}
		if len(diags) != tc.diags {
			t.Fatalf("SplitLine(%q) diagnostics = %v, want %d", tc.line, diags, tc.diags)
		}
	}
}

func TestSplitLineNilEnv(t *testing.T) {
	got, _ := SplitLine("Message %x%", nil)
	if diff := cmp.Diff([]string{"Message", "%x%"}, got); diff != "" {
		t.Fatalf("unexpected tokens (-want +got):\n%s", diff)
	}
}

func TestEndsWithContinuation(t *testing.T) {
	cases := map[string]bool{
		`a \`:   true,
		`a \\`:  false,
		`a \\\`: true,
		`a`:     false,
		``:      false,
	}
	for line, want := range cases {
		if got := endsWithContinuation(line); got != want {
			t.Fatalf("endsWithContinuation(%q) = %v, want %v", line, got, want)
		}
	}
}
