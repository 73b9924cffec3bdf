package obmm

import (
	"fmt"
	"strconv"
	"strings"
)

// evalIf evaluates the condition of an If line. Host failures are fatal;
// malformed conditions warn and evaluate to false.
func (exec *Execution) evalIf(line []string) (bool, error) {
	if len(line) == 1 {
		exec.warnf("Missing arguments for 'If'")
		return false, nil
	}

	cond := line[1]
	switch cond {
	case "DialogYesNo":
		return exec.ifDialogYesNo(line)
	case "DataFileExists":
		if len(line) < 3 {
			exec.warnf("Missing arguments for 'If DataFileExists'")
			return false, nil
		}
		return exec.host.DataFileExists(line[2]), nil
	case "VersionLessThan", "VersionGreaterThan":
		if !exec.condArity(line, cond, 3) {
			return false, nil
		}
		v, err := ParseVersion(line[2])
		if err != nil {
			exec.warnf("Invalid argument for 'If %s'", cond)
			return false, nil
		}
		c := exec.engine.config.ManagerVersion.Compare(v)
		if cond == "VersionGreaterThan" {
			return c > 0, nil
		}
		return c < 0, nil
	case "ScriptExtenderPresent":
		if len(line) > 2 {
			exec.warnf("Unexpected extra arguments for 'If ScriptExtenderPresent'")
		}
		return exec.host.HasScriptExtender(), nil
	case "ScriptExtenderNewerThan":
		if !exec.condArity(line, cond, 3) || !exec.host.HasScriptExtender() {
			return false, nil
		}
		return exec.newerThan(cond, line[2], exec.host.ScriptExtenderVersion)
	case "GraphicsExtenderPresent":
		if len(line) > 2 {
			exec.warnf("Unexpected extra arguments for 'If GraphicsExtenderPresent'")
		}
		return exec.host.HasGraphicsExtender(), nil
	case "GraphicsExtenderNewerThan":
		if !exec.condArity(line, cond, 3) || !exec.host.HasGraphicsExtender() {
			return false, nil
		}
		return exec.newerThan(cond, line[2], exec.host.GraphicsExtenderVersion)
	case "OblivionNewerThan":
		if !exec.condArity(line, cond, 3) {
			return false, nil
		}
		return exec.newerThan(cond, line[2], exec.host.GameVersion)
	case "OBSEPluginNewerThan":
		if !exec.condArity(line, cond, 4) {
			return false, nil
		}
		name := line[2]
		return exec.newerThan(cond, line[3], func() (Version, error) {
			return exec.host.ScriptExtenderPluginVersion(name)
		})
	case "ESPExists", "ESPActive":
		if !exec.condArity(line, cond, 3) {
			return false, nil
		}
		plugins, err := exec.host.Plugins()
		if err != nil {
			return false, fmt.Errorf("If %s: %w", cond, err)
		}
		for _, p := range plugins {
			if strings.EqualFold(p.Name, line[2]) {
				return cond == "ESPExists" || p.Active, nil
			}
		}
		return false, nil
	case "ModActive":
		if !exec.condArity(line, cond, 3) {
			return false, nil
		}
		mods, err := exec.host.ActiveMods()
		if err != nil {
			return false, fmt.Errorf("If ModActive: %w", err)
		}
		for _, m := range mods {
			if strings.EqualFold(m, line[2]) {
				return true, nil
			}
		}
		return false, nil
	case "Equal":
		if len(line) < 4 {
			exec.warnf("Missing arguments for 'If Equal'")
			return false, nil
		}
		return line[2] == line[3], nil
	case "GreaterEqual", "GreaterThan":
		if len(line) < 4 {
			exec.warnf("Missing arguments for 'If Greater'")
			return false, nil
		}
		if len(line) > 4 {
			exec.warnf("Unexpected extra arguments for 'If Greater'")
		}
		a, errA := parseInt32(line[2])
		b, errB := parseInt32(line[3])
		if errA != nil || errB != nil {
			exec.warnf("Invalid argument supplied to function 'If Greater'")
			return false, nil
		}
		if cond == "GreaterEqual" {
			return a >= b, nil
		}
		return a > b, nil
	case "fGreaterEqual", "fGreaterThan":
		if len(line) < 4 {
			exec.warnf("Missing arguments for 'If fGreater'")
			return false, nil
		}
		if len(line) > 4 {
			exec.warnf("Unexpected extra arguments for 'If fGreater'")
		}
		a, errA := parseFloat(line[2])
		b, errB := parseFloat(line[3])
		if errA != nil || errB != nil {
			exec.warnf("Invalid argument supplied to function 'If fGreater'")
			return false, nil
		}
		if cond == "fGreaterEqual" {
			return a >= b, nil
		}
		return a > b, nil
	default:
		exec.warnf("Unknown argument '%s' for 'If'", cond)
		return false, nil
	}
}

// condArity checks the token count of a condition that takes a fixed number
// of tokens.
func (exec *Execution) condArity(line []string, cond string, want int) bool {
	if len(line) < want {
		exec.warnf("Missing arguments for 'If %s'", cond)
		return false
	}
	if len(line) > want {
		exec.warnf("Unexpected extra arguments for 'If %s'", cond)
	}
	return true
}

func (exec *Execution) newerThan(cond, arg string, current func() (Version, error)) (bool, error) {
	want, err := ParseVersion(arg)
	if err != nil {
		exec.warnf("Invalid argument for 'If %s'", cond)
		return false, nil
	}
	have, err := current()
	if err != nil {
		exec.warnf("Invalid argument for 'If %s'", cond)
		return false, nil
	}
	return have.Compare(want) >= 0, nil
}

func (exec *Execution) ifDialogYesNo(line []string) (bool, error) {
	var message, title string
	switch len(line) {
	case 2:
		exec.warnf("Missing arguments for 'If DialogYesNo'")
		return false, nil
	case 3:
		message = line[2]
	default:
		if len(line) > 4 {
			exec.warnf("Unexpected extra arguments after 'If DialogYesNo'")
		}
		message, title = line[2], line[3]
	}
	result, err := exec.host.DialogYesNo(message, title)
	if err != nil {
		return false, fmt.Errorf("DialogYesNo: %w", err)
	}
	if result == DialogCancel {
		exec.plan.CancelInstall = true
		return false, nil
	}
	return result == DialogYes, nil
}

func parseInt32(s string) (int32, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(n), nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
