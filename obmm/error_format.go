package obmm

import (
	"fmt"
	"strconv"
	"strings"
)

func formatCodeFrame(lines []string, line int) string {
	if line < 0 || line >= len(lines) {
		return ""
	}

	lineText := strings.ReplaceAll(lines[line], "\t", " ")
	lineLabel := strconv.Itoa(line)
	gutterPad := strings.Repeat(" ", len(lineLabel))
	indent := len(lineText) - len(strings.TrimLeft(lineText, " "))
	caretPad := strings.Repeat(" ", indent)

	return fmt.Sprintf(
		"  --> line %d\n %s | %s\n %s | %s^",
		line,
		lineLabel,
		lineText,
		gutterPad,
		caretPad,
	)
}
