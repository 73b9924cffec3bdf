package obmm

import "strconv"

// forFrame builds the frame for a For line:
//
//	For Count <var> <start> <end> [step]
//	For Each DataFolder|PluginFolder|DataFile|Plugin <var> <dir> [True|False] [pattern]
//
// Invalid loops produce an inert frame so EndFor still balances.
func (exec *Execution) forFrame(line []string) (frame, error) {
	if len(line) < 3 {
		exec.warnf("Missing arguments for 'For'")
		return inertFrame(frameFor), nil
	}
	kind, rest := line[1], line[2:]
	if kind == "Each" {
		kind, rest = line[2], line[3:]
	}

	var (
		values []string
		err    error
	)
	switch kind {
	case "Count":
		values, err = exec.countValues(rest)
	case "DataFolder", "PluginFolder", "DataFile", "Plugin":
		values = exec.eachValues(kind, rest)
	default:
		exec.warnf("Unexpected function for 'For'")
		return inertFrame(frameFor), nil
	}
	if err != nil || len(values) == 0 {
		return inertFrame(frameFor), err
	}

	f := frame{kind: frameFor, line: exec.cursor, active: true, values: values, variable: rest[0]}
	exec.env.Set(f.variable, values[0])
	return f, nil
}

func (exec *Execution) countValues(args []string) ([]string, error) {
	if len(args) < 3 {
		exec.warnf("Missing arguments to function 'For Count'")
		return nil, nil
	}
	if len(args) > 4 {
		exec.warnf("Unexpected extra arguments for 'For Count'")
	}
	start, errStart := parseInt32(args[1])
	end, errEnd := parseInt32(args[2])
	step := int32(1)
	var errStep error
	if len(args) >= 4 {
		step, errStep = parseInt32(args[3])
	}
	if errStart != nil || errEnd != nil || errStep != nil || step <= 0 {
		exec.warnf("Invalid argument to 'For Count'")
		return nil, nil
	}
	if start >= end {
		return nil, nil
	}

	n := (int64(end) - int64(start) + int64(step) - 1) / int64(step)
	if n > int64(exec.quota) {
		return nil, ErrStepQuotaExceeded
	}
	values := make([]string, 0, n)
	for i := int64(start); i < int64(end); i += int64(step) {
		values = append(values, strconv.FormatInt(i, 10))
	}
	return values, nil
}

func (exec *Execution) eachValues(kind string, args []string) []string {
	if len(args) < 2 {
		exec.warnf("Missing arguments for 'For Each %s'", kind)
		return nil
	}
	if len(args) > 4 {
		exec.warnf("Unexpected extra arguments to 'For Each %s'", kind)
	}

	root := exec.roots.Data
	if kind == "PluginFolder" || kind == "Plugin" {
		root = exec.roots.Plugins
	}
	wantDirs := kind == "DataFolder" || kind == "PluginFolder"

	dir := args[1]
	if !isSafeFolderName(dir) {
		exec.warnf("Invalid argument for 'For Each %s'\nDirectory '%s' is not valid", kind, dir)
		return nil
	}
	dir = makeValidFolderPath(dir)
	if !exec.fs.dirExists(exec.fs.resolve(root, dir)) {
		exec.warnf("Invalid argument for 'For Each %s'\nDirectory '%s' does not exist", kind, dir)
		return nil
	}

	recurse := false
	if len(args) > 2 {
		switch args[2] {
		case "True":
			recurse = true
		case "False":
		default:
			exec.warnf("Invalid argument '%s' for 'For Each %s'.\nExpected 'True' or 'False'", args[2], kind)
		}
	}
	pattern := ""
	if len(args) > 3 {
		pattern = args[3]
	}

	entries, err := exec.fs.list(root, dir, recurse)
	if err != nil {
		exec.warnf("Invalid argument for 'For Each %s'", kind)
		return nil
	}
	var values []string
	for _, e := range entries {
		if e.isDir == wantDirs && matchPattern(pattern, fileName(e.rel)) {
			values = append(values, e.rel)
		}
	}
	return values
}
