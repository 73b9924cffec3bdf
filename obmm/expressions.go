package obmm

import (
	"fmt"
	"math"
	"slices"
	"strconv"
)

// Binary operator classes in reduction order. Each class is collapsed
// completely, leftmost occurrence first, before the next one is considered.
var (
	intOperators   = []string{"and", "or", "xor", "mod", "%", "^", "/", "*", "+", "-"}
	floatOperators = []string{"mod", "%", "^", "/", "*", "+", "-"}
	floatFunctions = []string{"sin", "cos", "tan", "sinh", "cosh", "tanh", "exp", "log", "ln"}
)

// EvalInt reduces an iSet expression. Mismatched brackets, leftover tokens
// and empty expressions wrap ErrMismatchedBrackets, ErrLeftoverTokens and
// ErrEmptyExpression; other failures (bad operands, division by zero) wrap
// errInvalidOperand.
func EvalInt(tokens []string) (int32, error) {
	if len(tokens) == 0 {
		return 0, ErrEmptyExpression
	}
	expr := slices.Clone(tokens)

	expr, err := resolveBrackets(expr, func(inner []string) (string, error) {
		v, err := EvalInt(inner)
		return strconv.FormatInt(int64(v), 10), err
	})
	if err != nil {
		return 0, err
	}

	for idx := slices.Index(expr, "not"); idx != -1; idx = slices.Index(expr, "not") {
		if idx+1 >= len(expr) {
			return 0, fmt.Errorf("%w: not without operand", errInvalidOperand)
		}
		v, err := intOperand(expr[idx+1])
		if err != nil {
			return 0, err
		}
		expr[idx+1] = strconv.FormatInt(int64(^v), 10)
		expr = slices.Delete(expr, idx, idx+1)
	}

	for _, op := range intOperators {
		for idx := slices.Index(expr, op); idx != -1; idx = slices.Index(expr, op) {
			a, b, err := binaryOperands(expr, idx, intOperand)
			if err != nil {
				return 0, err
			}
			r, err := applyInt(op, a, b)
			if err != nil {
				return 0, err
			}
			expr = collapse(expr, idx, strconv.FormatInt(int64(r), 10))
		}
	}

	if len(expr) != 1 {
		return 0, fmt.Errorf("%w in iSet", ErrLeftoverTokens)
	}
	return intOperand(expr[0])
}

func applyInt(op string, a, b int32) (int32, error) {
	switch op {
	case "and":
		return a & b, nil
	case "or":
		return a | b, nil
	case "xor":
		return a ^ b, nil
	case "mod", "%":
		if b == 0 {
			return 0, fmt.Errorf("%w: modulo by zero", errInvalidOperand)
		}
		return a % b, nil
	case "^":
		return powInt32(a, b), nil
	case "/":
		if b == 0 {
			return 0, fmt.Errorf("%w: division by zero", errInvalidOperand)
		}
		return a / b, nil
	case "*":
		return a * b, nil
	case "+":
		return a + b, nil
	case "-":
		return a - b, nil
	}
	return 0, fmt.Errorf("%w: unknown operator %q", errInvalidOperand, op)
}

// powInt32 truncates the floating power; results outside the int32 range
// become math.MinInt32.
func powInt32(a, b int32) int32 {
	p := math.Trunc(math.Pow(float64(a), float64(b)))
	if math.IsNaN(p) || p > math.MaxInt32 || p < math.MinInt32 {
		return math.MinInt32
	}
	return int32(p)
}

// EvalFloat reduces an fSet expression. Unary functions take the token that
// follows them and are applied before the binary operators.
func EvalFloat(tokens []string) (float64, error) {
	if len(tokens) == 0 {
		return 0, ErrEmptyExpression
	}
	expr := slices.Clone(tokens)

	expr, err := resolveBrackets(expr, func(inner []string) (string, error) {
		v, err := EvalFloat(inner)
		return formatFloat64(v), err
	})
	if err != nil {
		return 0, err
	}

	for _, fn := range floatFunctions {
		for idx := slices.Index(expr, fn); idx != -1; idx = slices.Index(expr, fn) {
			if idx+1 >= len(expr) {
				return 0, fmt.Errorf("%w: %s without operand", errInvalidOperand, fn)
			}
			v, err := floatOperand(expr[idx+1])
			if err != nil {
				return 0, err
			}
			expr[idx+1] = formatFloat64(applyFloatFunction(fn, v))
			expr = slices.Delete(expr, idx, idx+1)
		}
	}

	for _, op := range floatOperators {
		for idx := slices.Index(expr, op); idx != -1; idx = slices.Index(expr, op) {
			a, b, err := binaryOperands(expr, idx, floatOperand)
			if err != nil {
				return 0, err
			}
			expr = collapse(expr, idx, formatFloat64(applyFloat(op, a, b)))
		}
	}

	if len(expr) != 1 {
		return 0, fmt.Errorf("%w in fSet", ErrLeftoverTokens)
	}
	return floatOperand(expr[0])
}

func applyFloatFunction(fn string, v float64) float64 {
	switch fn {
	case "sin":
		return math.Sin(v)
	case "cos":
		return math.Cos(v)
	case "tan":
		return math.Tan(v)
	case "sinh":
		return math.Sinh(v)
	case "cosh":
		return math.Cosh(v)
	case "tanh":
		return math.Tanh(v)
	case "exp":
		return math.Exp(v)
	case "log":
		return math.Log10(v)
	case "ln":
		return math.Log(v)
	}
	return math.NaN()
}

func applyFloat(op string, a, b float64) float64 {
	switch op {
	case "mod", "%":
		return math.Mod(a, b)
	case "^":
		return math.Pow(a, b)
	case "/":
		return a / b
	case "*":
		return a * b
	case "+":
		return a + b
	case "-":
		return a - b
	}
	return math.NaN()
}

// resolveBrackets evaluates the first bracketed group (recursively, so the
// innermost groups go first) and splices the result back until none remain.
func resolveBrackets(expr []string, eval func([]string) (string, error)) ([]string, error) {
	for open := slices.Index(expr, "("); open != -1; open = slices.Index(expr, "(") {
		depth, closing := 1, -1
		for i := open + 1; i < len(expr); i++ {
			switch expr[i] {
			case "(":
				depth++
			case ")":
				depth--
			}
			if depth == 0 {
				closing = i
				break
			}
		}
		if closing == -1 {
			return nil, ErrMismatchedBrackets
		}
		val, err := eval(expr[open+1 : closing])
		if err != nil {
			return nil, err
		}
		expr = slices.Replace(expr, open, closing+1, val)
	}
	if slices.Contains(expr, ")") {
		return nil, ErrMismatchedBrackets
	}
	return expr, nil
}

func binaryOperands[T any](expr []string, idx int, parse func(string) (T, error)) (T, T, error) {
	var zero T
	if idx == 0 || idx+1 >= len(expr) {
		return zero, zero, fmt.Errorf("%w: %s is missing an operand", errInvalidOperand, expr[idx])
	}
	a, err := parse(expr[idx-1])
	if err != nil {
		return zero, zero, err
	}
	b, err := parse(expr[idx+1])
	if err != nil {
		return zero, zero, err
	}
	return a, b, nil
}

// collapse replaces the operand-operator-operand triple around idx with val.
func collapse(expr []string, idx int, val string) []string {
	return slices.Replace(expr, idx-1, idx+2, val)
}

func intOperand(s string) (int32, error) {
	v, err := parseInt32(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", errInvalidOperand, s)
	}
	return v, nil
}

func floatOperand(s string) (float64, error) {
	v, err := parseFloat(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", errInvalidOperand, s)
	}
	return v, nil
}

func formatFloat64(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// formatFloat32 is the text written back by fSet, which stores single
// precision results.
func formatFloat32(v float64) string {
	return strconv.FormatFloat(float64(float32(v)), 'g', -1, 32)
}
