package obmm

import "strings"

func (exec *Execution) elseBranch() {
	top := exec.top()
	if top == nil || top.kind != frameIf {
		exec.warnf("Unexpected Else")
		return
	}
	if top.active {
		top.active = false
		return
	}
	top.active = top.enterable()
}

func (exec *Execution) expectSelect(keyword string) {
	if top := exec.top(); top == nil || top.kind != frameSelect {
		exec.warnf("Unexpected %s", keyword)
	}
}

// breakSelect leaves the current Case. The Select frame itself stays
// enterable so a later matching Case of a SelectMany runs too.
func (exec *Execution) breakSelect() {
	i := exec.nearest(frameSelect)
	if i < 0 {
		exec.warnf("Unexpected Break")
		return
	}
	exec.leave(i + 1)
	exec.frames[i].active = false
}

func (exec *Execution) exitFor() {
	i := exec.nearest(frameFor)
	if i < 0 {
		exec.warnf("Unexpected Exit")
		return
	}
	exec.leave(i)
}

func (exec *Execution) continueFor() {
	i := exec.nearest(frameFor)
	if i < 0 {
		exec.warnf("Unexpected Continue")
		return
	}
	exec.nextIteration(i)
}

func (exec *Execution) endFor() {
	top := exec.top()
	if top == nil || top.kind != frameFor {
		exec.warnf("Unexpected EndFor")
		return
	}
	if !exec.nextIteration(len(exec.frames) - 1) {
		exec.pop()
	}
}

// nextIteration advances the loop at stack index i. When values remain it
// rewinds to the For line, rebinds the loop variable and drops the frames
// opened inside the body; otherwise the loop and its body are left. It
// reports whether another iteration starts.
func (exec *Execution) nextIteration(i int) bool {
	f := &exec.frames[i]
	f.forCount++
	if f.forCount >= len(f.values) {
		exec.leave(i)
		return false
	}
	exec.cursor = f.line
	exec.env.Set(f.variable, f.values[f.forCount])
	exec.frames = exec.frames[:i+1]
	return true
}

// gotoLabel clears all blocks and jumps to the matching Label line. The scan
// starts after the Goto and wraps to the top of the script once.
func (exec *Execution) gotoLabel(line []string) {
	if len(line) < 2 {
		exec.warnf("Not enough arguments to function 'Goto'!")
		return
	}
	if len(line) > 2 {
		exec.warnf("Unexpected extra arguments to function 'Goto'")
	}
	target := "Label " + line[1]
	exec.frames = exec.frames[:0]

	for i, l := range exec.injected {
		if normalizeLine(l) == target {
			exec.injected = exec.injected[i+1:]
			return
		}
	}
	exec.injected = nil

	for i := exec.cursor + 1; i < len(exec.lines); i++ {
		if normalizeLine(exec.lines[i]) == target {
			exec.cursor = i
			return
		}
	}
	for i := 0; i <= exec.cursor && i < len(exec.lines); i++ {
		if normalizeLine(exec.lines[i]) == target {
			exec.cursor = i
			return
		}
	}

	exec.warnf("Expected: %s!", strings.TrimSpace(target))
	exec.done = true
}
