package obmm

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNumericKindEncode(t *testing.T) {
	tests := []struct {
		kind  NumericKind
		value string
		want  []byte
	}{
		{NumericByte, "255", []byte{0xff}},
		{NumericShort, "-2", []byte{0xfe, 0xff}},
		{NumericInt, "258", []byte{0x02, 0x01, 0x00, 0x00}},
		{NumericLong, "1", []byte{1, 0, 0, 0, 0, 0, 0, 0}},
		{NumericFloat, "1.5", []byte{0x00, 0x00, 0xc0, 0x3f}},
	}
	for _, tc := range tests {
		got, err := tc.kind.Encode(tc.value)
		if err != nil {
			t.Fatalf("%s.Encode(%q) failed: %v", tc.kind, tc.value, err)
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("%s.Encode(%q) mismatch (-want +got):\n%s", tc.kind, tc.value, diff)
		}
		back, err := tc.kind.Decode(got)
		if err != nil || back != tc.value {
			t.Fatalf("%s.Decode = %q, %v; want %q", tc.kind, back, err, tc.value)
		}
	}
}

func TestNumericKindRejectsOverflow(t *testing.T) {
	bad := map[NumericKind]string{
		NumericByte:  "256",
		NumericShort: "40000",
		NumericInt:   "1.5",
		NumericFloat: "abc",
	}
	for kind, value := range bad {
		if _, err := kind.Encode(value); err == nil {
			t.Fatalf("%s.Encode(%q) should fail", kind, value)
		}
	}
	if _, err := NumericInt.Decode([]byte{1}); err == nil {
		t.Fatalf("Decode with the wrong width should fail")
	}
}
