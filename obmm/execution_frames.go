package obmm

import (
	"slices"
	"strings"
)

type frameKind uint8

const (
	frameIf frameKind = iota
	frameSelect
	frameFor
)

func (k frameKind) String() string {
	switch k {
	case frameIf:
		return "If"
	case frameSelect:
		return "Select"
	case frameFor:
		return "For"
	}
	return "frame"
}

// frame is one open If, Select or For block. line is -1 for inert frames,
// which only keep nesting balanced inside skipped code.
type frame struct {
	kind   frameKind
	line   int
	active bool
	// exited is set once Exit, loop exhaustion or an unwinding Break leaves
	// the block; such a frame never becomes active again.
	exited bool

	// If
	cond bool

	// Select
	cases   []string
	hitCase bool

	// For
	values   []string
	variable string
	forCount int
}

func inertFrame(kind frameKind) frame {
	return frame{kind: kind, line: -1}
}

func (f *frame) enterable() bool {
	return f.line != -1 && !f.exited
}

// matchesCase compares a Case line against the selected items. Both the raw
// line and its tokenized form are accepted so quoted items match.
func (f *frame) matchesCase(raw string, line []string) bool {
	if slices.Contains(f.cases, raw) {
		return true
	}
	return slices.Contains(f.cases, "Case "+strings.Join(line[1:], " "))
}

func (exec *Execution) push(f frame) {
	exec.frames = append(exec.frames, f)
}

func (exec *Execution) top() *frame {
	if len(exec.frames) == 0 {
		return nil
	}
	return &exec.frames[len(exec.frames)-1]
}

func (exec *Execution) pop() {
	exec.frames = exec.frames[:len(exec.frames)-1]
}

// popKind closes the top block if it has the expected kind.
func (exec *Execution) popKind(kind frameKind, keyword string) {
	top := exec.top()
	if top == nil || top.kind != kind {
		exec.warnf("Unexpected %s", keyword)
		return
	}
	exec.pop()
}

// nearest returns the stack index of the innermost frame of kind, or -1.
func (exec *Execution) nearest(kind frameKind) int {
	for i := len(exec.frames) - 1; i >= 0; i-- {
		if exec.frames[i].kind == kind {
			return i
		}
	}
	return -1
}

// leave deactivates every frame from the top down to index i inclusive.
func (exec *Execution) leave(i int) {
	for j := len(exec.frames) - 1; j >= i; j-- {
		exec.frames[j].active = false
		exec.frames[j].exited = true
	}
}
