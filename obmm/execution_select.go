package obmm

import (
	"fmt"
	"strings"
)

// selectCases shows a Select dialog and returns the "Case <item>" lines the
// choice activates. An empty choice cancels the installation.
func (exec *Execution) selectCases(kw Keyword, line []string) ([]string, error) {
	name := kw.String()
	multi := strings.HasPrefix(name, "SelectMany")
	previews := strings.Contains(name, "Preview")
	descriptions := strings.Contains(name, "Descriptions")

	if len(line) < 3 {
		exec.warnf("Missing arguments for 'Select'")
		return nil, nil
	}

	per := 1
	if previews {
		per++
	}
	if descriptions {
		per++
	}
	args := line[2:]
	if extra := len(args) % per; extra != 0 {
		exec.warnf("Unexpected extra arguments for 'Select'")
		args = args[:len(args)-extra]
	}
	if len(args) == 0 {
		exec.warnf("Missing arguments for 'Select'")
		return nil, nil
	}

	req := SelectRequest{Title: line[1], Multi: multi}
	for i := 0; i < len(args); i += per {
		req.Items = append(req.Items, args[i])
		j := i + 1
		if previews {
			req.Previews = append(req.Previews, exec.previewPath(args[j]))
			j++
		}
		if descriptions {
			req.Descriptions = append(req.Descriptions, args[j])
		}
	}

	picked, err := exec.host.Select(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if len(picked) == 0 {
		exec.plan.CancelInstall = true
		return nil, nil
	}

	cases := make([]string, 0, len(picked))
	for _, idx := range picked {
		if idx < 0 || idx >= len(req.Items) {
			return nil, fmt.Errorf("%s: %w: %d", name, errSelectionOutOfRange, idx)
		}
		cases = append(cases, "Case "+req.Items[idx])
	}
	return cases, nil
}

// previewPath resolves a preview image; "None" and invalid paths yield "".
func (exec *Execution) previewPath(p string) string {
	switch {
	case p == "None":
		return ""
	case !isSafeFileName(p):
		exec.warnf("Preview file path '%s' is invalid", p)
		return ""
	}
	full := exec.fs.resolve(exec.roots.Data, p)
	if !exec.fs.fileExists(full) {
		exec.warnf("Preview file path '%s' does not exist", p)
		return ""
	}
	return full
}

func (exec *Execution) selectVarCases(kw Keyword, line []string) []string {
	name := kw.String()
	if len(line) < 2 {
		exec.warnf("Missing arguments for '%s'", name)
		return nil
	}
	if len(line) > 2 {
		exec.warnf("Unexpected arguments for '%s'", name)
	}
	if kw == KeywordSelectString {
		return []string{"Case " + line[1]}
	}
	if val, ok := exec.env.Get(line[1]); ok {
		return []string{"Case " + val}
	}
	exec.warnf("Invalid argument for '%s'\nVariable '%s' does not exist", name, line[1])
	return nil
}
