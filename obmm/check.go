package obmm

import (
	"fmt"
	"sort"
	"strings"
)

// Check tokenizes every line of script without executing it. It reports
// tokenizer problems, unknown commands, block keywords outside their block,
// blocks left open at the end of the script and Goto targets with no
// matching Label. Variables are not expanded, so only the structure is
// checked.
func Check(script string) []Warning {
	type open struct {
		kind frameKind
		line int
	}
	var (
		warnings []Warning
		stack    []open
		gotos    []Warning
		labels   = make(map[string]bool)
		runOn    bool
		lines    = splitScript(script)
	)
	warn := func(line int, format string, args ...any) {
		warnings = append(warnings, Warning{Line: line, Message: fmt.Sprintf(format, args...)})
	}
	inside := func(kind frameKind) bool {
		for _, o := range stack {
			if o.kind == kind {
				return true
			}
		}
		return false
	}
	closeBlock := func(line int, kind frameKind, keyword string) {
		if len(stack) == 0 || stack[len(stack)-1].kind != kind {
			warn(line, "Unexpected %s", keyword)
			return
		}
		stack = stack[:len(stack)-1]
	}

	for i := 0; i < len(lines); i++ {
		start := i
		raw := normalizeLine(lines[i])
		for runOn && endsWithContinuation(raw) {
			if i+1 >= len(lines) {
				warn(start, "Run-on line passed end of script")
				break
			}
			i++
			raw = raw[:len(raw)-1] + normalizeLine(lines[i])
		}

		tokens, diags := SplitLine(raw, nil)
		for _, msg := range diags {
			warn(start, "%s", msg)
		}
		if len(tokens) == 0 {
			continue
		}

		kw := ParseKeyword(tokens[0])
		switch {
		case tokens[0] == "":
			warn(start, "Empty function")
		case kw == KeywordUnknown && strings.Contains(tokens[0], "%"):
			// resolved at run time
		case kw == KeywordUnknown:
			if hint := closestKeyword(tokens[0]); hint != "" {
				warn(start, "Unrecognized function: %s! Did you mean %s?", tokens[0], hint)
			} else {
				warn(start, "Unrecognized function: %s!", tokens[0])
			}
		case kw == KeywordIf || kw == KeywordIfNot:
			stack = append(stack, open{kind: frameIf, line: start})
		case kw.isSelect():
			stack = append(stack, open{kind: frameSelect, line: start})
		case kw == KeywordFor:
			stack = append(stack, open{kind: frameFor, line: start})
		case kw == KeywordElse:
			if len(stack) == 0 || stack[len(stack)-1].kind != frameIf {
				warn(start, "Unexpected Else")
			}
		case kw == KeywordEndIf:
			closeBlock(start, frameIf, "EndIf")
		case kw == KeywordCase || kw == KeywordDefault:
			if len(stack) == 0 || stack[len(stack)-1].kind != frameSelect {
				warn(start, "Unexpected %s", kw)
			}
		case kw == KeywordBreak:
			if !inside(frameSelect) {
				warn(start, "Unexpected Break")
			}
		case kw == KeywordEndSelect:
			closeBlock(start, frameSelect, "EndSelect")
		case kw == KeywordContinue || kw == KeywordExit:
			if !inside(frameFor) {
				warn(start, "Unexpected %s", kw)
			}
		case kw == KeywordEndFor:
			closeBlock(start, frameFor, "EndFor")
		case kw == KeywordLabel:
			labels[raw] = true
		case kw == KeywordGoto:
			if len(tokens) < 2 {
				warn(start, "Not enough arguments to function 'Goto'!")
				break
			}
			gotos = append(gotos, Warning{Line: start, Message: tokens[1]})
		case kw == KeywordAllowRunOnLines:
			runOn = true
		}
	}

	for _, g := range gotos {
		if !labels["Label "+g.Message] {
			warn(g.Line, "Expected: Label %s!", g.Message)
		}
	}
	for _, o := range stack {
		warn(o.line, "Unclosed %s block", o.kind)
	}
	sort.SliceStable(warnings, func(i, j int) bool {
		return warnings[i].Line < warnings[j].Line
	})
	return warnings
}
