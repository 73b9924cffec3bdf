package obmm

import (
	"errors"
	"fmt"
)

func newBuiltinTable() map[Keyword]builtinFunc {
	return map[Keyword]builtinFunc{
		KeywordMessage:                     builtinMessage,
		KeywordSetVar:                      builtinSetVar,
		KeywordFatalError:                  builtinFatalError,
		KeywordLoadEarly:                   builtinLoadEarly,
		KeywordLoadBefore:                  builtinLoadOrder(false),
		KeywordLoadAfter:                   builtinLoadOrder(true),
		KeywordConflictsWith:               builtinDependency(true, false),
		KeywordDependsOn:                   builtinDependency(false, false),
		KeywordConflictsWithRegex:          builtinDependency(true, true),
		KeywordDependsOnRegex:              builtinDependency(false, true),
		KeywordDontInstallAnyPlugins:       builtinInstallAll(func(p *Plan) { p.InstallAllPlugins = false }),
		KeywordDontInstallAnyDataFiles:     builtinInstallAll(func(p *Plan) { p.InstallAllData = false }),
		KeywordInstallAllPlugins:           builtinInstallAll(func(p *Plan) { p.InstallAllPlugins = true }),
		KeywordInstallAllDataFiles:         builtinInstallAll(func(p *Plan) { p.InstallAllData = true }),
		KeywordInstallPlugin:               builtinModifyInstall(true, true),
		KeywordDontInstallPlugin:           builtinModifyInstall(true, false),
		KeywordInstallDataFile:             builtinModifyInstall(false, true),
		KeywordDontInstallDataFile:         builtinModifyInstall(false, false),
		KeywordInstallDataFolder:           builtinModifyInstallFolder(true),
		KeywordDontInstallDataFolder:       builtinModifyInstallFolder(false),
		KeywordRegisterBSA:                 builtinRegisterBSA(true),
		KeywordUnregisterBSA:               builtinRegisterBSA(false),
		KeywordUncheckESP:                  builtinUncheckESP,
		KeywordSetDeactivationWarning:      builtinSetDeactivationWarning,
		KeywordCopyDataFile:                builtinCopy(false),
		KeywordCopyPlugin:                  builtinCopy(true),
		KeywordCopyDataFolder:              builtinCopyDataFolder,
		KeywordPatchPlugin:                 builtinPatch(true),
		KeywordPatchDataFile:               builtinPatch(false),
		KeywordEditINI:                     builtinEditINI,
		KeywordEditSDP:                     builtinEditShader,
		KeywordEditShader:                  builtinEditShader,
		KeywordSetGMST:                     builtinSetESPVar(true),
		KeywordSetGlobal:                   builtinSetESPVar(false),
		KeywordSetPluginByte:               builtinSetPluginData(NumericByte),
		KeywordSetPluginShort:              builtinSetPluginData(NumericShort),
		KeywordSetPluginInt:                builtinSetPluginData(NumericInt),
		KeywordSetPluginLong:               builtinSetPluginData(NumericLong),
		KeywordSetPluginFloat:              builtinSetPluginData(NumericFloat),
		KeywordDisplayImage:                builtinDisplayFile(true),
		KeywordDisplayText:                 builtinDisplayFile(false),
		KeywordGetFolderName:               builtinPathPart("GetFolderName", folderName),
		KeywordGetDirectoryName:            builtinPathPart("GetDirectoryName", folderName),
		KeywordGetFileName:                 builtinPathPart("GetFileName", fileName),
		KeywordGetFileNameWithoutExtension: builtinPathPart("GetFileNameWithoutExtension", fileNameWithoutExtension),
		KeywordCombinePaths:                builtinCombinePaths,
		KeywordSubstring:                   builtinSubRemoveString(false),
		KeywordRemoveString:                builtinSubRemoveString(true),
		KeywordStringLength:                builtinStringLength,
		KeywordInputString:                 builtinInputString,
		KeywordReadINI:                     builtinReadINI,
		KeywordReadRendererInfo:            builtinReadRenderer,
		KeywordISet:                        builtinSet(true),
		KeywordFSet:                        builtinSet(false),
		KeywordEditXMLLine:                 builtinEditXMLLine,
		KeywordEditXMLReplace:              builtinEditXMLReplace,
	}
}

// arity validates the token count of a line (the keyword included). Too few
// tokens warn and abort; too many warn and the extra tokens are ignored.
func (exec *Execution) arity(line []string, name string, min, max int) bool {
	if len(line) < min {
		exec.warnf("Missing arguments for '%s'", name)
		return false
	}
	if max > 0 && len(line) > max {
		exec.warnf("Unexpected extra arguments for '%s'", name)
	}
	return true
}

func builtinMessage(exec *Execution, line []string) error {
	if !exec.arity(line, "Message", 2, 3) {
		return nil
	}
	title := ""
	if len(line) > 2 {
		title = line[2]
	}
	if err := exec.host.Message(line[1], title); err != nil {
		return fmt.Errorf("Message: %w", err)
	}
	return nil
}

func builtinSetVar(exec *Execution, line []string) error {
	if exec.arity(line, "SetVar", 3, 3) {
		exec.env.Set(line[1], line[2])
	}
	return nil
}

func builtinFatalError(exec *Execution, _ []string) error {
	exec.plan.CancelInstall = true
	return nil
}

func builtinInstallAll(apply func(*Plan)) builtinFunc {
	return func(exec *Execution, _ []string) error {
		apply(exec.plan)
		return nil
	}
}

// builtinSet implements iSet and fSet. Malformed expressions are fatal; bad
// operands only warn.
func builtinSet(integer bool) builtinFunc {
	name := "fSet"
	if integer {
		name = "iSet"
	}
	return func(exec *Execution, line []string) error {
		if !exec.arity(line, name, 3, 0) {
			return nil
		}
		var (
			result string
			err    error
		)
		if integer {
			var v int32
			v, err = EvalInt(line[2:])
			result = fmt.Sprint(v)
		} else {
			var v float64
			v, err = EvalFloat(line[2:])
			result = formatFloat32(v)
		}
		switch {
		case errors.Is(err, errInvalidOperand):
			exec.warnf("Invalid arguments for %s", name)
			return nil
		case err != nil:
			return fmt.Errorf("%s: %w", name, err)
		}
		exec.env.Set(line[1], result)
		return nil
	}
}
