// Package obmm interprets OBMM mod installation scripts. A script is walked
// line by line and produces a Plan describing which plugins and data files a
// mod manager should install, ignore, copy, patch or register. The engine
// performs no installation itself; the only side effects are the in-place
// file edits some commands request (EditXMLLine, SetPluginInt, ...) which go
// through the configured filesystem.
//
// The language supports:
//   - Word tokens separated by spaces or commas, `"quoted strings"` with
//     `\"`, `\\` and `\%` escapes, `%var%` interpolation and `;` comments.
//   - Blocks: If/IfNot ... Else ... EndIf, the Select family with Case,
//     Default and Break, For Count / For Each loops with Continue and Exit.
//   - Goto/Label, Return, AllowRunOnLines and ExecLines.
//   - Integer (iSet) and float (fSet) arithmetic using a staged reduction.
//
// Host interaction (dialogs, version queries, file existence) goes through the
// Host interface. Each call to Engine.Execute owns its own state, so an Engine
// may be shared between goroutines.
package obmm
