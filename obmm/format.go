package obmm

import "strings"

// Format re-indents script with one tab per open block, puts Case and
// Default bodies one level deeper than their label and strips trailing
// whitespace. Lines are never reordered, joined or evaluated; a stray end
// keyword is kept at the current depth.
func Format(script string) string {
	type level struct {
		kind   frameKind
		inCase bool
	}
	var (
		stack []level
		out   []string
		runOn bool
		cont  bool
	)
	depth := func() int {
		n := len(stack)
		for _, l := range stack {
			if l.inCase {
				n++
			}
		}
		return n
	}
	emit := func(indent int, line string) {
		if indent < 0 {
			indent = 0
		}
		out = append(out, strings.Repeat("\t", indent)+line)
	}
	top := func(kind frameKind) bool {
		return len(stack) > 0 && stack[len(stack)-1].kind == kind
	}

	for _, raw := range splitScript(script) {
		line := strings.TrimSpace(raw)
		if cont {
			emit(depth()+1, line)
			cont = runOn && endsWithContinuation(line)
			continue
		}
		cont = runOn && endsWithContinuation(line)
		if line == "" {
			out = append(out, "")
			continue
		}
		tokens, _ := SplitLine(strings.ReplaceAll(line, "\t", " "), nil)
		if len(tokens) == 0 {
			emit(depth(), line)
			continue
		}

		kw := ParseKeyword(tokens[0])
		switch {
		case kw.opensBlock():
			emit(depth(), line)
			kind := frameIf
			switch {
			case kw.isSelect():
				kind = frameSelect
			case kw == KeywordFor:
				kind = frameFor
			}
			stack = append(stack, level{kind: kind})
		case kw == KeywordElse && top(frameIf):
			emit(depth()-1, line)
		case kw == KeywordEndIf && top(frameIf),
			kw == KeywordEndFor && top(frameFor),
			kw == KeywordEndSelect && top(frameSelect):
			stack = stack[:len(stack)-1]
			emit(depth(), line)
		case (kw == KeywordCase || kw == KeywordDefault) && top(frameSelect):
			stack[len(stack)-1].inCase = false
			emit(depth(), line)
			stack[len(stack)-1].inCase = true
		default:
			if kw == KeywordAllowRunOnLines {
				runOn = true
			}
			emit(depth(), line)
		}
	}

	joined := strings.TrimRight(strings.Join(out, "\n"), "\n")
	if joined == "" {
		return ""
	}
	return joined + "\n"
}
