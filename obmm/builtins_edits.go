package obmm

import (
	"strconv"
	"strings"
)

func builtinEditINI(exec *Execution, line []string) error {
	if exec.arity(line, "EditINI", 4, 4) {
		exec.plan.INIEdits = append(exec.plan.INIEdits, INIEdit{Section: line[1], Name: line[2], Value: line[3]})
	}
	return nil
}

func builtinEditShader(exec *Execution, line []string) error {
	const name = "EditShader"
	if !exec.arity(line, name, 4, 4) {
		return nil
	}
	binaryPath := line[3]
	if !isSafeFileName(binaryPath) {
		exec.warnf("Invalid argument for '%s'\n'%s' is not a valid file name", name, binaryPath)
		return nil
	}
	if !exec.fs.fileExists(exec.fs.resolve(exec.roots.Data, binaryPath)) {
		exec.warnf("Invalid argument for '%s'\nFile '%s' does not exist", name, binaryPath)
		return nil
	}
	pkg, err := strconv.ParseUint(line[1], 10, 8)
	if err != nil {
		exec.warnf("Invalid argument for function '%s'\n'%s' is not a valid shader package ID", name, line[1])
		return nil
	}
	exec.plan.SDPEdits = append(exec.plan.SDPEdits, SDPEdit{
		Package:    byte(pkg),
		Shader:     line[2],
		BinaryPath: toScriptPath(binaryPath),
	})
	return nil
}

func builtinSetESPVar(gmst bool) builtinFunc {
	name := "SetGlobal"
	if gmst {
		name = "SetGMST"
	}
	return func(exec *Execution, line []string) error {
		if !exec.arity(line, name, 4, 4) || !exec.pluginExists(name, line[1]) {
			return nil
		}
		exec.plan.ESPEdits = append(exec.plan.ESPEdits, ESPEdit{
			IsGMST: gmst,
			Plugin: strings.ToLower(line[1]),
			EDID:   strings.ToLower(line[2]),
			Value:  line[3],
		})
		return nil
	}
}

// builtinSetPluginData overwrites a fixed-width value inside a plugin file.
// Writes that would run past the end of the file are skipped.
func builtinSetPluginData(kind NumericKind) builtinFunc {
	name := "SetPlugin" + kind.String()
	return func(exec *Execution, line []string) error {
		if !exec.arity(line, name, 4, 4) || !exec.pluginExists(name, line[1]) {
			return nil
		}
		offset, err := strconv.ParseInt(line[2], 10, 64)
		if err != nil || offset < 0 {
			exec.warnf("Invalid argument for '%s'\nOffset %s is not valid", name, line[2])
			return nil
		}
		data, err := kind.Encode(line[3])
		if err != nil {
			exec.warnf("Invalid argument for '%s'\nValue '%s' is not valid", name, line[3])
			return nil
		}

		target := exec.fs.resolve(exec.roots.Plugins, line[1])
		size, err := exec.fs.size(target)
		if err != nil {
			return fileError("stat", target, err)
		}
		if offset+int64(len(data)) > size {
			exec.warnf("Invalid argument for '%s'\nOffset %s is out of range", name, line[2])
			return nil
		}
		if err := exec.fs.writeAt(target, offset, data); err != nil {
			return fileError("write", target, err)
		}
		exec.log.Debug().Str("plugin", line[1]).Int64("offset", offset).Str("kind", kind.String()).Msg("plugin patched")
		return nil
	}
}

var editableExtensions = []string{".xml", ".txt", ".ini", ".bat"}

// editableDataFile validates the target of EditXMLLine and EditXMLReplace
// and returns its filesystem path.
func (exec *Execution) editableDataFile(name, file string) (string, bool) {
	target := exec.fs.resolve(exec.roots.Data, file)
	if !isSafeFileName(file) || !exec.fs.fileExists(target) {
		exec.warnf("Invalid filename supplied for '%s'", name)
		return "", false
	}
	ext := strings.ToLower(fileExtension(file))
	for _, allowed := range editableExtensions {
		if ext == allowed {
			return target, true
		}
	}
	exec.warnf("Invalid filename supplied for '%s'", name)
	return "", false
}

func builtinEditXMLLine(exec *Execution, line []string) error {
	const name = "EditXMLLine"
	if !exec.arity(line, name, 4, 4) {
		return nil
	}
	target, ok := exec.editableDataFile(name, line[1])
	if !ok {
		return nil
	}
	lineNo, err := strconv.Atoi(line[2])
	if err != nil || lineNo < 1 {
		exec.warnf("Invalid line number supplied for '%s'", name)
		return nil
	}

	data, err := exec.fs.readFile(target)
	if err != nil {
		return fileError("read", target, err)
	}
	lines, sep := splitTextLines(string(data))
	if lineNo > len(lines) {
		exec.warnf("Invalid line number supplied for '%s'", name)
		return nil
	}
	lines[lineNo-1] = line[3]
	if err := exec.fs.writeFile(target, []byte(strings.Join(lines, sep)+sep)); err != nil {
		return fileError("write", target, err)
	}
	return nil
}

func builtinEditXMLReplace(exec *Execution, line []string) error {
	const name = "EditXMLReplace"
	if !exec.arity(line, name, 4, 4) {
		return nil
	}
	target, ok := exec.editableDataFile(name, line[1])
	if !ok {
		return nil
	}
	if line[2] == "" {
		exec.warnf("Invalid arguments for '%s'", name)
		return nil
	}
	data, err := exec.fs.readFile(target)
	if err != nil {
		return fileError("read", target, err)
	}
	text := strings.ReplaceAll(string(data), line[2], line[3])
	if err := exec.fs.writeFile(target, []byte(text)); err != nil {
		return fileError("write", target, err)
	}
	return nil
}

// splitTextLines splits text into lines, reporting the separator in use. A
// trailing separator does not produce an empty last line.
func splitTextLines(text string) ([]string, string) {
	sep := "\n"
	if strings.Contains(text, "\r\n") {
		sep = "\r\n"
	}
	text = strings.TrimSuffix(text, sep)
	if text == "" {
		return nil, sep
	}
	return strings.Split(text, sep), sep
}
