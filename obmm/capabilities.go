package obmm

// DialogResult is the answer to a yes/no question.
type DialogResult int

const (
	DialogNo DialogResult = iota
	DialogYes
	DialogCancel
)

// SelectRequest describes a list the user picks from. Previews and
// Descriptions are nil when the Select variant does not carry them; a preview
// entry is empty when no image is available. Preview paths are filesystem
// paths.
type SelectRequest struct {
	Title        string
	Items        []string
	Previews     []string
	Descriptions []string
	Multi        bool
}

// PluginState is one plugin known to the host's load order.
type PluginState struct {
	Name   string
	Active bool
}

// Host provides the UI and environment capabilities a script may use. Calls
// are synchronous; an error returned by an interactive method aborts the run.
type Host interface {
	// Warn receives diagnostics when Config.EnableWarnings is set.
	Warn(w Warning)
	Message(message, title string) error
	// Select returns the chosen item indexes. An empty result cancels the
	// installation.
	Select(req SelectRequest) ([]int, error)
	InputString(title, initial string) (string, error)
	DialogYesNo(message, title string) (DialogResult, error)
	DisplayImage(path, title string) error
	DisplayText(text, title string) error
	// Patch receives patches when PatchWithHost is configured. from is a
	// filesystem path, to is relative to the game's data folder.
	Patch(from, to string) error
	ReadINI(section, name string) (string, error)
	ReadRendererInfo(name string) (string, error)

	DataFileExists(path string) bool
	HasScriptExtender() bool
	ScriptExtenderVersion() (Version, error)
	HasGraphicsExtender() bool
	GraphicsExtenderVersion() (Version, error)
	GameVersion() (Version, error)
	ScriptExtenderPluginVersion(name string) (Version, error)
	Plugins() ([]PluginState, error)
	ActiveMods() ([]string, error)
}

// BaseHost answers every query negatively and every dialog with its
// default. Embed it to implement only the methods a host cares about.
type BaseHost struct{}

func (BaseHost) Warn(Warning)                                  {}
func (BaseHost) Message(string, string) error                  { return nil }
func (BaseHost) Select(SelectRequest) ([]int, error)           { return nil, nil }
func (BaseHost) InputString(_, initial string) (string, error) { return initial, nil }
func (BaseHost) DialogYesNo(string, string) (DialogResult, error) {
	return DialogNo, nil
}
func (BaseHost) DisplayImage(string, string) error         { return nil }
func (BaseHost) DisplayText(string, string) error          { return nil }
func (BaseHost) Patch(string, string) error                { return nil }
func (BaseHost) ReadINI(string, string) (string, error)    { return "", nil }
func (BaseHost) ReadRendererInfo(string) (string, error)   { return "", nil }
func (BaseHost) DataFileExists(string) bool                { return false }
func (BaseHost) HasScriptExtender() bool                   { return false }
func (BaseHost) ScriptExtenderVersion() (Version, error)   { return Version{}, nil }
func (BaseHost) HasGraphicsExtender() bool                 { return false }
func (BaseHost) GraphicsExtenderVersion() (Version, error) { return Version{}, nil }
func (BaseHost) GameVersion() (Version, error)             { return Version{}, nil }
func (BaseHost) ScriptExtenderPluginVersion(string) (Version, error) {
	return Version{}, nil
}
func (BaseHost) Plugins() ([]PluginState, error) { return nil, nil }
func (BaseHost) ActiveMods() ([]string, error)   { return nil, nil }
