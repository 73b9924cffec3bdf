package obmm

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestEvalInt(t *testing.T) {
	tests := []struct {
		expr string
		want int32
	}{
		{"7", 7},
		{"2 + 3 * 4", 14},
		{"( 2 + 3 ) * 4", 20},
		{"10 - 2 - 3", 5},
		{"2 - 3 + 4", -5},
		{"10 - 2 * 3", 4},
		{"not 0", -1},
		// "and" is a bitwise AND stage of its own; it does not apply "not"
		// a second time.
		{"6 and 3", 2},
		{"not 6 and 3", 1},
		{"6 or 3", 7},
		{"6 xor 3", 5},
		{"7 mod 3", 1},
		{"7 % 4", 3},
		{"2 ^ 10", 1024},
		{"9 / 2", 4},
		{"( ( 1 + 1 ) * ( 2 + 2 ) )", 8},
		{"2 ^ 40", math.MinInt32},
	}
	for _, tc := range tests {
		got, err := EvalInt(strings.Fields(tc.expr))
		if err != nil {
			t.Fatalf("EvalInt(%q) failed: %v", tc.expr, err)
		}
		if got != tc.want {
			t.Fatalf("EvalInt(%q) = %d, want %d", tc.expr, got, tc.want)
		}
	}
}

func TestEvalIntErrors(t *testing.T) {
	tests := []struct {
		expr string
		want error
	}{
		{"", ErrEmptyExpression},
		{"( 1 + 2", ErrMismatchedBrackets},
		{"1 + 2 )", ErrMismatchedBrackets},
		{"1 2", ErrLeftoverTokens},
		{"a + 1", errInvalidOperand},
		{"1 / 0", errInvalidOperand},
		{"1 mod 0", errInvalidOperand},
		{"+ 1", errInvalidOperand},
		{"( )", ErrEmptyExpression},
	}
	for _, tc := range tests {
		_, err := EvalInt(strings.Fields(tc.expr))
		if !errors.Is(err, tc.want) {
			t.Fatalf("EvalInt(%q) error = %v, want %v", tc.expr, err, tc.want)
		}
	}
}

func TestEvalFloat(t *testing.T) {
	tests := []struct {
		expr string
		want float64
	}{
		{"1.5 * 2", 3},
		{"1 + 2 * 3", 7},
		{"( 1 + ( 2 * 3 ) ) / 2", 3.5},
		{"sin 0", 0},
		{"cos 0", 1},
		{"log 100", 2},
		{"ln 1", 0},
		{"exp 0 + 1", 2},
		{"2 ^ 0.5", math.Sqrt2},
		{"7.5 mod 2", 1.5},
	}
	for _, tc := range tests {
		got, err := EvalFloat(strings.Fields(tc.expr))
		if err != nil {
			t.Fatalf("EvalFloat(%q) failed: %v", tc.expr, err)
		}
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("EvalFloat(%q) = %v, want %v", tc.expr, got, tc.want)
		}
	}
}

func TestEvalFloatErrors(t *testing.T) {
	tests := []struct {
		expr string
		want error
	}{
		{"", ErrEmptyExpression},
		{"( 1.5", ErrMismatchedBrackets},
		{"1.5 2.5", ErrLeftoverTokens},
		{"x * 2", errInvalidOperand},
		{"sin", errInvalidOperand},
	}
	for _, tc := range tests {
		_, err := EvalFloat(strings.Fields(tc.expr))
		if !errors.Is(err, tc.want) {
			t.Fatalf("EvalFloat(%q) error = %v, want %v", tc.expr, err, tc.want)
		}
	}
}

func TestSetWritesBackResults(t *testing.T) {
	host := &recordingHost{}
	env := runVars(t, host, `iSet a 2 + 3 * 4
fSet b 1 / 4
fSet c 1 / 3
SetVar base 5
iSet d %base% * 2
iSet e x + 1`)

	mustVar(t, env, "a", "14")
	mustVar(t, env, "b", "0.25")
	mustVar(t, env, "c", "0.33333334")
	mustVar(t, env, "d", "10")
	if _, ok := env.Get("e"); ok {
		t.Fatalf("expected e to stay unset after an invalid operand")
	}
	if !host.hasWarning("Invalid arguments for iSet") {
		t.Fatalf("expected an iSet warning, got %v", host.warningMessages())
	}
}
