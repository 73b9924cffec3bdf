package obmm

import (
	"context"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
)

var testRoots = Roots{Data: "/data", Plugins: "/plugins"}

// recordingHost answers from canned responses and records everything the
// script asked for.
type recordingHost struct {
	BaseHost

	warnings   []Warning
	messages   []string
	selectReqs []SelectRequest
	selections [][]int
	dialogs    []DialogResult
	inputs     []string
	images     []string
	texts      []string
	patches    []CopyOp

	ini         map[string]string
	renderer    map[string]string
	dataFiles   map[string]bool
	plugins     []PluginState
	mods        []string
	obse        *Version
	obge        *Version
	game        Version
	obsePlugins map[string]Version
}

func (h *recordingHost) Warn(w Warning) {
	h.warnings = append(h.warnings, w)
}

func (h *recordingHost) Message(message, _ string) error {
	h.messages = append(h.messages, message)
	return nil
}

func (h *recordingHost) Select(req SelectRequest) ([]int, error) {
	h.selectReqs = append(h.selectReqs, req)
	if len(h.selections) == 0 {
		return nil, nil
	}
	next := h.selections[0]
	h.selections = h.selections[1:]
	return next, nil
}

func (h *recordingHost) DialogYesNo(string, string) (DialogResult, error) {
	if len(h.dialogs) == 0 {
		return DialogNo, nil
	}
	next := h.dialogs[0]
	h.dialogs = h.dialogs[1:]
	return next, nil
}

func (h *recordingHost) InputString(_, initial string) (string, error) {
	if len(h.inputs) == 0 {
		return initial, nil
	}
	next := h.inputs[0]
	h.inputs = h.inputs[1:]
	return next, nil
}

func (h *recordingHost) DisplayImage(path, _ string) error {
	h.images = append(h.images, path)
	return nil
}

func (h *recordingHost) DisplayText(text, _ string) error {
	h.texts = append(h.texts, text)
	return nil
}

func (h *recordingHost) Patch(from, to string) error {
	h.patches = append(h.patches, CopyOp{From: from, To: to})
	return nil
}

func (h *recordingHost) ReadINI(section, name string) (string, error) {
	return h.ini[section+"|"+name], nil
}

func (h *recordingHost) ReadRendererInfo(name string) (string, error) {
	return h.renderer[name], nil
}

func (h *recordingHost) DataFileExists(p string) bool {
	return h.dataFiles[p]
}

func (h *recordingHost) HasScriptExtender() bool { return h.obse != nil }

func (h *recordingHost) ScriptExtenderVersion() (Version, error) {
	if h.obse == nil {
		return Version{}, nil
	}
	return *h.obse, nil
}

func (h *recordingHost) HasGraphicsExtender() bool { return h.obge != nil }

func (h *recordingHost) GraphicsExtenderVersion() (Version, error) {
	if h.obge == nil {
		return Version{}, nil
	}
	return *h.obge, nil
}

func (h *recordingHost) GameVersion() (Version, error) { return h.game, nil }

func (h *recordingHost) ScriptExtenderPluginVersion(name string) (Version, error) {
	return h.obsePlugins[name], nil
}

func (h *recordingHost) Plugins() ([]PluginState, error) { return h.plugins, nil }

func (h *recordingHost) ActiveMods() ([]string, error) { return h.mods, nil }

func (h *recordingHost) warningMessages() []string {
	out := make([]string, len(h.warnings))
	for i, w := range h.warnings {
		out[i] = w.Message
	}
	return out
}

func (h *recordingHost) hasWarning(substr string) bool {
	for _, w := range h.warnings {
		if strings.Contains(w.Message, substr) {
			return true
		}
	}
	return false
}

// newTestFS builds an in-memory filesystem from path/content pairs.
func newTestFS(t *testing.T, files map[string]string) billy.Filesystem {
	t.Helper()
	fs := memfs.New()
	for _, dir := range []string{testRoots.Data, testRoots.Plugins} {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	for name, content := range files {
		if err := util.WriteFile(fs, name, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return fs
}

func readTestFile(t *testing.T, fs billy.Filesystem, name string) string {
	t.Helper()
	data, err := util.ReadFile(fs, name)
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return string(data)
}

func newTestEngine(t *testing.T, cfg Config, fs billy.Filesystem) *Engine {
	t.Helper()
	cfg.FS = fs
	cfg.EnableWarnings = true
	engine, err := NewEngine(cfg)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

// runScript executes script against fs and fails the test on a fatal error.
func runScript(t *testing.T, fs billy.Filesystem, host *recordingHost, script string) *Plan {
	t.Helper()
	return runScriptWith(t, Config{}, fs, host, script)
}

func runScriptWith(t *testing.T, cfg Config, fs billy.Filesystem, host *recordingHost, script string) *Plan {
	t.Helper()
	if fs == nil {
		fs = newTestFS(t, nil)
	}
	plan, err := newTestEngine(t, cfg, fs).Execute(context.Background(), script, testRoots, host)
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	return plan
}

// runVars executes script and returns the final variable bindings.
func runVars(t *testing.T, host *recordingHost, script string) *Env {
	t.Helper()
	engine := newTestEngine(t, Config{}, newTestFS(t, nil))
	exec := newExecution(context.Background(), engine, script, testRoots, host)
	if err := exec.run(); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return exec.Env()
}

func mustVar(t *testing.T, env *Env, name, want string) {
	t.Helper()
	got, ok := env.Get(name)
	if !ok {
		t.Fatalf("variable %s is not set", name)
	}
	if got != want {
		t.Fatalf("%s = %q, want %q", name, got, want)
	}
}
