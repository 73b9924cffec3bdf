package obmm

import "strings"

// SplitLine tokenizes one trimmed script line. Variables are looked up in env
// (which may be nil). Non-fatal problems such as an unterminated quote are
// returned as diagnostics; the tokens collected so far are still returned.
func SplitLine(line string, env *Env) ([]string, []string) {
	var (
		tokens      []string
		diags       []string
		word        strings.Builder
		varPrefix   string
		inQuotes    bool
		inVar       bool
		lastEscape  bool
		lastSpace   = true
		closeVarRaw = func() {
			// restore the literal text of an unfinished %name
			name := word.String()
			word.Reset()
			word.WriteString(varPrefix)
			word.WriteByte('%')
			word.WriteString(name)
			varPrefix = ""
			inVar = false
		}
		flush = func() {
			tokens = append(tokens, word.String())
			word.Reset()
			lastSpace = true
		}
	)

	if line == "" {
		return nil, nil
	}

scan:
	for _, r := range line {
		switch r {
		case '%':
			lastSpace = false
			switch {
			case inVar:
				name := word.String()
				word.Reset()
				word.WriteString(varPrefix)
				if val, ok := env.Get(name); ok {
					word.WriteString(val)
				} else {
					word.WriteByte('%')
					word.WriteString(name)
					word.WriteByte('%')
				}
				varPrefix = ""
				inVar = false
			case inQuotes && lastEscape:
				word.WriteByte('%')
			default:
				inVar = true
				varPrefix = word.String()
				word.Reset()
			}
			lastEscape = false
		case ' ', ',':
			lastEscape = false
			if inVar {
				closeVarRaw()
			}
			if inQuotes {
				word.WriteRune(r)
			} else if !lastSpace {
				flush()
			}
		case ';':
			lastEscape = false
			if inQuotes {
				word.WriteRune(r)
				continue
			}
			break scan
		case '"':
			if inQuotes && lastEscape {
				word.WriteRune(r)
			} else {
				if inVar {
					diags = append(diags, "String marker found in the middle of a variable name")
				}
				inQuotes = !inQuotes
			}
			lastSpace = false
			lastEscape = false
		case '\\':
			switch {
			case inQuotes && lastEscape:
				word.WriteRune(r)
				lastEscape = false
			case inQuotes:
				lastEscape = true
			default:
				word.WriteRune(r)
			}
			lastSpace = false
		default:
			lastEscape = false
			lastSpace = false
			word.WriteRune(r)
		}
	}

	if inVar {
		diags = append(diags, "Unterminated variable")
		closeVarRaw()
	}
	if inQuotes {
		diags = append(diags, "Unterminated quote")
	}
	if !lastSpace {
		flush()
	}
	return tokens, diags
}

// normalizeLine applies the per-line preprocessing done before tokenizing.
func normalizeLine(raw string) string {
	return strings.TrimSpace(strings.ReplaceAll(raw, "\t", " "))
}

// splitScript breaks script text into physical lines.
func splitScript(script string) []string {
	return strings.Split(strings.ReplaceAll(script, "\r", ""), "\n")
}

// endsWithContinuation reports whether a line ends in an unescaped backslash.
func endsWithContinuation(line string) bool {
	n := 0
	for i := len(line) - 1; i >= 0 && line[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}
