package obmm

import (
	"fmt"
	"strings"
	"time"
)

// builtinPatch implements PatchPlugin and PatchDataFile. What happens to the
// patch depends on Config.PatchMethod.
func builtinPatch(plugin bool) builtinFunc {
	name := "PatchDataFile"
	if plugin {
		name = "PatchPlugin"
	}
	return func(exec *Execution, line []string) error {
		if !exec.arity(line, name, 3, 4) {
			return nil
		}
		from, to := line[1], line[2]
		if !isSafeFileName(from) || !isSafeFileName(to) {
			exec.warnf("Invalid argument for '%s'", name)
			return nil
		}
		root := exec.roots.Data
		if plugin {
			root = exec.roots.Plugins
		}
		source := exec.fs.resolve(root, from)
		if !exec.fs.fileExists(source) {
			exec.warnf("Invalid argument for '%s'\nFile '%s' does not exist", name, from)
			return nil
		}
		if plugin {
			if hasSubdirectory(to) {
				exec.warnf("Plugins cannot be copied to subdirectories of the data folder")
				return nil
			}
			if !hasPluginExtension(to) {
				exec.warnf("Plugins must have a .esp or .esm extension")
				return nil
			}
		} else if hasPluginExtension(to) {
			exec.warnf("Data files cannot have a .esp or .esm extension")
			return nil
		}

		moveIfMissing := len(line) > 3 && line[3] == "True"
		switch method := exec.engine.config.PatchMethod; method {
		case PatchInMod:
			putCopy(&exec.plan.PatchFiles, CopyOp{
				From: strings.ToLower(toScriptPath(from)),
				To:   strings.ToLower(toScriptPath(to)),
			})
			return nil
		case PatchGameFolder:
			return exec.patchIntoGameFolder(source, to)
		case OverwriteGameFolder:
			return exec.overwriteGameFile(source, to, moveIfMissing)
		case PatchWithHost:
			if err := exec.host.Patch(source, to); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			return nil
		default:
			return fmt.Errorf("%s: %w %d", name, ErrUnknownPatchMethod, method)
		}
	}
}

// patchIntoGameFolder copies the patch to <game data>/Patch/<to>, keeping the
// timestamp of the file it will replace so load order is preserved.
func (exec *Execution) patchIntoGameFolder(source, to string) error {
	gameData := exec.engine.config.GameDataPath
	target := exec.fs.resolve(exec.fs.fs.Join(gameData, "Patch"), to)
	if exec.fs.fileExists(target) {
		return fileError("patch", target, errFileExists)
	}

	stamp, _ := exec.fs.modTime(exec.fs.resolve(gameData, to))
	if err := exec.fs.copyFile(source, target); err != nil {
		return fileError("copy patch to", target, err)
	}
	if err := exec.fs.setModTime(target, stamp); err != nil {
		return fileError("set timestamp of", target, err)
	}
	exec.log.Debug().Str("from", source).Str("to", target).Msg("patch copied")
	return nil
}

// overwriteGameFile replaces <game data>/<to> with the patch. A missing target
// is only created when moveIfMissing is set.
func (exec *Execution) overwriteGameFile(source, to string, moveIfMissing bool) error {
	target := exec.fs.resolve(exec.engine.config.GameDataPath, to)
	var stamp time.Time
	if exec.fs.fileExists(target) {
		stamp, _ = exec.fs.modTime(target)
		if err := exec.fs.remove(target); err != nil {
			return fileError("delete", target, err)
		}
	} else if !moveIfMissing {
		return nil
	}

	if err := exec.fs.move(source, target); err != nil {
		return fileError("move patch to", target, err)
	}
	if err := exec.fs.setModTime(target, stamp); err != nil {
		return fileError("set timestamp of", target, err)
	}
	exec.log.Debug().Str("from", source).Str("to", target).Msg("game file overwritten")
	return nil
}
