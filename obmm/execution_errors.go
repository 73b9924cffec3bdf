package obmm

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNilHost             = errors.New("obmm: host must not be nil")
	ErrMismatchedBrackets  = errors.New("mismatched brackets")
	ErrLeftoverTokens      = errors.New("leftover tokens")
	ErrEmptyExpression     = errors.New("empty expression")
	ErrStepQuotaExceeded   = errors.New("step quota exceeded")
	ErrUnknownPatchMethod  = errors.New("unknown patch method")
	ErrUnsupportedDialect  = errors.New("unsupported script dialect")
	errInvalidOperand      = errors.New("invalid operand")
	errSelectionOutOfRange = errors.New("selection index out of range")
)

// Warning is a non-fatal diagnostic. Line is the 0-based index of the
// physical line being executed.
type Warning struct {
	Line    int
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("'%s' at %d", w.Message, w.Line)
}

// ScriptError aborts a run.
type ScriptError struct {
	Line      int
	Message   string
	CodeFrame string
	Err       error
}

func (e *ScriptError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "line %d: %s", e.Line, e.Message)
	if e.CodeFrame != "" {
		b.WriteString("\n")
		b.WriteString(e.CodeFrame)
	}
	return b.String()
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}

func (exec *Execution) scriptError(err error) error {
	var se *ScriptError
	if errors.As(err, &se) {
		return err
	}
	return &ScriptError{
		Line:      exec.line,
		Message:   err.Error(),
		CodeFrame: formatCodeFrame(exec.lines, exec.line),
		Err:       err,
	}
}

func (exec *Execution) warnf(format string, args ...any) {
	w := Warning{Line: exec.line, Message: fmt.Sprintf(format, args...)}
	exec.log.Debug().Int("line", w.Line).Msg(w.Message)
	if exec.engine.config.EnableWarnings {
		exec.host.Warn(w)
	}
}

func (exec *Execution) step() error {
	exec.steps++
	if exec.quota > 0 && exec.steps > exec.quota {
		return ErrStepQuotaExceeded
	}
	select {
	case <-exec.ctx.Done():
		return exec.ctx.Err()
	default:
	}
	return nil
}
