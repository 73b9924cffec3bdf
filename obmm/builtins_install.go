package obmm

import (
	"strconv"
	"strings"
)

func builtinLoadEarly(exec *Execution, line []string) error {
	if exec.arity(line, "LoadEarly", 2, 2) {
		addUnique(&exec.plan.EarlyPlugins, strings.ToLower(line[1]))
	}
	return nil
}

func builtinLoadOrder(after bool) builtinFunc {
	name := "LoadBefore"
	if after {
		name = "LoadAfter"
	}
	return func(exec *Execution, line []string) error {
		if exec.arity(line, name, 3, 3) {
			exec.plan.addLoadOrder(LoadOrderRule{Plugin: line[1], Target: line[2], LoadAfter: after})
		}
		return nil
	}
}

// builtinDependency implements ConflictsWith and DependsOn:
//
//	<file> [comment [level]]
//	<file> <minMajor> <minMinor> <maxMajor> <maxMinor> [comment [level]]
func builtinDependency(conflicts, regex bool) builtinFunc {
	name := "DependsOn"
	if conflicts {
		name = "ConflictsWith"
	}
	if regex {
		name += "Regex"
	}
	return func(exec *Execution, line []string) error {
		args := line[1:]
		switch n := len(args); {
		case n == 0:
			exec.warnf("Missing arguments for '%s'", name)
			return nil
		case n == 4:
			exec.warnf("Unexpected arguments for '%s'", name)
			args = args[:3]
		case n > 7:
			exec.warnf("Unexpected arguments for '%s'", name)
			args = args[:7]
		}

		d := Dependency{File: args[0], Level: ConflictMajor, Partial: regex}
		rest := args[1:]
		if len(args) >= 5 {
			var nums [4]int
			for i := range nums {
				n, err := strconv.Atoi(args[1+i])
				if err != nil {
					exec.warnf("Arguments for '%s' could not been parsed", name)
					nums = [4]int{}
					break
				}
				nums[i] = n
			}
			d.MinMajorVersion, d.MinMinorVersion = nums[0], nums[1]
			d.MaxMajorVersion, d.MaxMinorVersion = nums[2], nums[3]
			rest = args[5:]
		}
		if len(rest) > 0 {
			d.Comment = rest[0]
		}
		if len(rest) > 1 {
			level, ok := parseConflictLevel(rest[1])
			if !ok {
				exec.warnf("Unknown conflict level after '%s'", name)
			}
			d.Level = level
		}

		if conflicts {
			exec.plan.ConflictsWith = append(exec.plan.ConflictsWith, d)
		} else {
			exec.plan.DependsOn = append(exec.plan.DependsOn, d)
		}
		return nil
	}
}

func builtinModifyInstall(plugins, install bool) builtinFunc {
	name := "DontInstall"
	if install {
		name = "Install"
	}
	if plugins {
		name += "Plugin"
	} else {
		name += "DataFile"
	}
	return func(exec *Execution, line []string) error {
		if !exec.arity(line, name, 2, 2) {
			return nil
		}
		arg := line[1]
		root := exec.roots.Data
		if plugins {
			root = exec.roots.Plugins
		}
		if !isSafeFileName(arg) {
			exec.warnf("Invalid argument for '%s'\nFile '%s' is not valid", name, arg)
			return nil
		}
		if !exec.fs.fileExists(exec.fs.resolve(root, arg)) {
			exec.warnf("Invalid argument for '%s'\nFile '%s' does not exist", name, arg)
			return nil
		}

		entry := strings.ToLower(toScriptPath(arg))
		p := exec.plan
		switch {
		case plugins && install:
			if hasSubdirectory(arg) {
				exec.warnf("Invalid argument for '%s'\nThis function cannot be used on plugins stored in subdirectories", name)
			}
			moveTo(&p.InstallPlugins, &p.IgnorePlugins, entry)
		case plugins:
			if hasSubdirectory(arg) {
				exec.warnf("Invalid argument for '%s'\nThis function cannot be used on plugins stored in subdirectories", name)
			}
			moveTo(&p.IgnorePlugins, &p.InstallPlugins, entry)
		case install:
			moveTo(&p.InstallData, &p.IgnoreData, entry)
		default:
			moveTo(&p.IgnoreData, &p.InstallData, entry)
		}
		return nil
	}
}

// parseRecurse reads the optional True/False argument of folder commands.
func (exec *Execution) parseRecurse(line []string, idx int, name string) (recurse, ok bool) {
	if len(line) <= idx {
		return false, true
	}
	switch line[idx] {
	case "True":
		return true, true
	case "False":
		return false, true
	}
	exec.warnf("Invalid argument for '%s'\nExpected True or False", name)
	return false, false
}

func builtinModifyInstallFolder(install bool) builtinFunc {
	name := "DontInstallDataFolder"
	if install {
		name = "InstallDataFolder"
	}
	return func(exec *Execution, line []string) error {
		if !exec.arity(line, name, 2, 3) {
			return nil
		}
		folder := makeValidFolderPath(line[1])
		if !isSafeFolderName(folder) {
			exec.warnf("Invalid argument for '%s'\nFolder '%s' is not valid", name, line[1])
			return nil
		}
		if !exec.fs.dirExists(exec.fs.resolve(exec.roots.Data, folder)) {
			exec.warnf("Invalid argument for '%s'\nFolder '%s' does not exist", name, folder)
			return nil
		}
		recurse, _ := exec.parseRecurse(line, 2, name)

		entries, err := exec.fs.list(exec.roots.Data, folder, recurse)
		if err != nil {
			return fileError("list", folder, err)
		}
		p := exec.plan
		for _, e := range entries {
			if e.isDir {
				continue
			}
			entry := strings.ToLower(e.rel)
			if install {
				moveTo(&p.InstallData, &p.IgnoreData, entry)
			} else {
				moveTo(&p.IgnoreData, &p.InstallData, entry)
			}
		}
		return nil
	}
}

func builtinRegisterBSA(register bool) builtinFunc {
	name := "UnregisterBSA"
	if register {
		name = "RegisterBSA"
	}
	return func(exec *Execution, line []string) error {
		if !exec.arity(line, name, 2, 2) {
			return nil
		}
		bsa := strings.ToLower(line[1])
		if strings.ContainsAny(bsa, ",;=") {
			exec.warnf("Invalid argument for '%s'\nBSA file names are not allowed to include the characters ',' '=' or ';'", name)
			return nil
		}
		if register {
			addUnique(&exec.plan.RegisterBSAs, bsa)
		} else {
			removeValue(&exec.plan.RegisterBSAs, bsa)
		}
		return nil
	}
}

// pluginExists validates a plugin argument, warning when it is unusable.
func (exec *Execution) pluginExists(name, plugin string) bool {
	if !isSafeFileName(plugin) {
		exec.warnf("Illegal plugin name supplied to '%s'", name)
		return false
	}
	if !exec.fs.fileExists(exec.fs.resolve(exec.roots.Plugins, plugin)) {
		exec.warnf("Invalid argument for '%s'\nFile '%s' does not exist", name, plugin)
		return false
	}
	return true
}

func builtinUncheckESP(exec *Execution, line []string) error {
	if exec.arity(line, "UncheckESP", 2, 2) && exec.pluginExists("UncheckESP", line[1]) {
		addUnique(&exec.plan.UncheckedPlugins, strings.ToLower(line[1]))
	}
	return nil
}

func builtinSetDeactivationWarning(exec *Execution, line []string) error {
	const name = "SetDeactivationWarning"
	if !exec.arity(line, name, 3, 3) || !exec.pluginExists(name, line[1]) {
		return nil
	}
	var status DeactivationStatus
	switch line[2] {
	case "Allow":
		status = DeactivationAllow
	case "WarnAgainst":
		status = DeactivationWarnAgainst
	case "Disallow":
		status = DeactivationDisallow
	default:
		exec.warnf("Invalid argument for '%s'", name)
		return nil
	}
	exec.plan.setDeactivation(Deactivation{Plugin: strings.ToLower(line[1]), Status: status})
	return nil
}

func builtinCopy(plugin bool) builtinFunc {
	name := "CopyDataFile"
	if plugin {
		name = "CopyPlugin"
	}
	return func(exec *Execution, line []string) error {
		if !exec.arity(line, name, 3, 3) {
			return nil
		}
		from, to := line[1], line[2]
		if !isSafeFileName(from) || !isSafeFileName(to) {
			exec.warnf("Invalid argument for '%s'", name)
			return nil
		}
		if strings.EqualFold(toScriptPath(from), toScriptPath(to)) {
			exec.warnf("Invalid argument for '%s'\nYou can not copy a file over itself", name)
			return nil
		}
		root := exec.roots.Data
		if plugin {
			root = exec.roots.Plugins
		}
		if !exec.fs.fileExists(exec.fs.resolve(root, from)) {
			exec.warnf("Invalid argument for '%s'\nFile '%s' does not exist", name, from)
			return nil
		}

		op := CopyOp{From: strings.ToLower(toScriptPath(from)), To: strings.ToLower(toScriptPath(to))}
		if plugin {
			if hasSubdirectory(to) {
				exec.warnf("Plugins cannot be copied to subdirectories of the data folder")
				return nil
			}
			if !hasPluginExtension(to) {
				exec.warnf("Copied plugins must have a .esp or .esm extension")
				return nil
			}
			putCopy(&exec.plan.CopyPlugins, op)
			return nil
		}
		if hasPluginExtension(to) {
			exec.warnf("Copied data files cannot have a .esp or .esm extension")
			return nil
		}
		putCopy(&exec.plan.CopyDataFiles, op)
		return nil
	}
}

func builtinCopyDataFolder(exec *Execution, line []string) error {
	const name = "CopyDataFolder"
	if !exec.arity(line, name, 3, 4) {
		return nil
	}
	from, to := makeValidFolderPath(line[1]), makeValidFolderPath(line[2])
	if !isSafeFolderName(from) || !isSafeFolderName(to) {
		exec.warnf("Invalid argument for '%s'", name)
		return nil
	}
	if !exec.fs.dirExists(exec.fs.resolve(exec.roots.Data, from)) {
		exec.warnf("Invalid argument for '%s'\nFolder '%s' does not exist!", name, from)
		return nil
	}
	if strings.EqualFold(from, to) {
		exec.warnf("Invalid argument for '%s'\nYou cannot copy a folder over itself", name)
		return nil
	}
	recurse, ok := exec.parseRecurse(line, 3, name)
	if !ok {
		return nil
	}

	entries, err := exec.fs.list(exec.roots.Data, from, recurse)
	if err != nil {
		return fileError("list", from, err)
	}
	for _, e := range entries {
		if e.isDir {
			continue
		}
		sub := e.rel
		if from != "" {
			sub = strings.TrimPrefix(e.rel, from+scriptSeparator)
		}
		putCopy(&exec.plan.CopyDataFiles, CopyOp{
			From: e.rel,
			To:   strings.ToLower(combinePaths(to, sub)),
		})
	}
	return nil
}
