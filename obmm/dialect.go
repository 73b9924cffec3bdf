package obmm

import "fmt"

// ScriptType is the dialect marker stored in the first byte of a packaged
// script. Scripts without a marker are OBMM scripts.
type ScriptType byte

const (
	ScriptOBMM ScriptType = iota
	ScriptPython
	ScriptCSharp
	ScriptVB
)

func (t ScriptType) String() string {
	switch t {
	case ScriptOBMM:
		return "obmm"
	case ScriptPython:
		return "python"
	case ScriptCSharp:
		return "csharp"
	case ScriptVB:
		return "vb"
	}
	return fmt.Sprintf("ScriptType(%d)", byte(t))
}

// DetectScriptType reads the dialect marker and returns the script body with
// the marker stripped.
func DetectScriptType(raw string) (ScriptType, string) {
	if raw != "" && raw[0] < 4 {
		return ScriptType(raw[0]), raw[1:]
	}
	return ScriptOBMM, raw
}
