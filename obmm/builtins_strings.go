package obmm

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

func builtinPathPart(name string, part func(string) string) builtinFunc {
	return func(exec *Execution, line []string) error {
		if !exec.arity(line, name, 3, 3) {
			return nil
		}
		if hasIllegalPathChars(line[2]) {
			exec.warnf("Invalid argument for '%s'", name)
			return nil
		}
		exec.env.Set(line[1], part(line[2]))
		return nil
	}
}

func builtinCombinePaths(exec *Execution, line []string) error {
	if !exec.arity(line, "CombinePaths", 4, 4) {
		return nil
	}
	if hasIllegalPathChars(line[2]) || hasIllegalPathChars(line[3]) {
		exec.warnf("Invalid arguments for 'CombinePaths'")
		return nil
	}
	exec.env.Set(line[1], combinePaths(line[2], line[3]))
	return nil
}

// builtinSubRemoveString implements Substring and RemoveString. Both take a
// start index and an optional length, counted in characters.
func builtinSubRemoveString(remove bool) builtinFunc {
	name := "Substring"
	if remove {
		name = "RemoveString"
	}
	return func(exec *Execution, line []string) error {
		if !exec.arity(line, name, 4, 5) {
			return nil
		}
		s := []rune(line[2])
		start, err := strconv.Atoi(line[3])
		if err != nil {
			exec.warnf("Invalid arguments for '%s'", name)
			return nil
		}
		length := len(s) - start
		if len(line) > 4 {
			if length, err = strconv.Atoi(line[4]); err != nil {
				exec.warnf("Invalid arguments for '%s'", name)
				return nil
			}
		}
		if start < 0 || length < 0 || start > len(s) || start+length > len(s) {
			exec.warnf("Invalid arguments for '%s'\nIndex out of range", name)
			return nil
		}
		var out string
		if remove {
			out = string(s[:start]) + string(s[start+length:])
		} else {
			out = string(s[start : start+length])
		}
		exec.env.Set(line[1], out)
		return nil
	}
}

func builtinStringLength(exec *Execution, line []string) error {
	if exec.arity(line, "StringLength", 3, 3) {
		exec.env.Set(line[1], strconv.Itoa(utf8.RuneCountInString(line[2])))
	}
	return nil
}

func builtinInputString(exec *Execution, line []string) error {
	if !exec.arity(line, "InputString", 2, 4) {
		return nil
	}
	var title, initial string
	if len(line) > 2 {
		title = line[2]
	}
	if len(line) > 3 {
		initial = line[3]
	}
	result, err := exec.host.InputString(title, initial)
	if err != nil {
		return fmt.Errorf("InputString: %w", err)
	}
	exec.env.Set(line[1], result)
	return nil
}

func builtinDisplayFile(image bool) builtinFunc {
	name := "DisplayText"
	if image {
		name = "DisplayImage"
	}
	return func(exec *Execution, line []string) error {
		if !exec.arity(line, name, 2, 3) {
			return nil
		}
		if !isSafeFileName(line[1]) {
			exec.warnf("Illegal path supplied to '%s'", name)
			return nil
		}
		target := exec.fs.resolve(exec.roots.Data, line[1])
		if !exec.fs.fileExists(target) {
			exec.warnf("Invalid argument for '%s'\nFile %s does not exist", name, line[1])
			return nil
		}
		title := line[1]
		if len(line) > 2 {
			title = line[2]
		}

		if image {
			if err := exec.host.DisplayImage(target, title); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			return nil
		}
		text, err := exec.fs.readFile(target)
		if err != nil {
			return fileError("read", target, err)
		}
		if err := exec.host.DisplayText(string(text), title); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		return nil
	}
}

func builtinReadINI(exec *Execution, line []string) error {
	if !exec.arity(line, "ReadINI", 4, 4) {
		return nil
	}
	cfg := exec.engine.config
	if cfg.ReadINIMethod == ReadINIWithHost {
		v, err := exec.host.ReadINI(line[2], line[3])
		if err != nil {
			return fmt.Errorf("ReadINI: %w", err)
		}
		exec.env.Set(line[1], v)
		return nil
	}

	doc, err := exec.fs.readFile(cfg.GameINIPath)
	if err != nil {
		return fileError("read", cfg.GameINIPath, err)
	}
	v, ok := iniValue(doc, line[2], line[3])
	if !ok {
		exec.warnf("Invalid argument for 'ReadINI'\nKey '%s' was not found in section '%s'", line[3], line[2])
	}
	exec.env.Set(line[1], v)
	return nil
}

func builtinReadRenderer(exec *Execution, line []string) error {
	if !exec.arity(line, "ReadRendererInfo", 3, 3) {
		return nil
	}
	cfg := exec.engine.config
	if cfg.ReadRendererMethod == ReadRendererWithHost {
		v, err := exec.host.ReadRendererInfo(line[2])
		if err != nil {
			return fmt.Errorf("ReadRendererInfo: %w", err)
		}
		exec.env.Set(line[1], v)
		return nil
	}

	doc, err := exec.fs.readFile(cfg.RendererInfoPath)
	if err != nil {
		return fileError("read", cfg.RendererInfoPath, err)
	}
	v, ok := rendererValue(string(doc), line[2])
	if !ok {
		exec.warnf("Invalid argument for 'ReadRendererInfo'\n'%s' was not found", line[2])
	}
	exec.env.Set(line[1], v)
	return nil
}
