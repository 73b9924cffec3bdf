package obmm

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/rs/zerolog"
)

// PatchMethod selects what PatchPlugin and PatchDataFile do.
type PatchMethod int

const (
	// PatchInMod records the patch in Plan.PatchFiles.
	PatchInMod PatchMethod = iota
	// PatchGameFolder copies the patch into <GameDataPath>/Patch.
	PatchGameFolder
	// OverwriteGameFolder moves the patch over the file in GameDataPath.
	OverwriteGameFolder
	// PatchWithHost hands the patch to Host.Patch.
	PatchWithHost
)

var patchMethodNames = map[string]PatchMethod{
	"in-mod":      PatchInMod,
	"game-folder": PatchGameFolder,
	"overwrite":   OverwriteGameFolder,
	"host":        PatchWithHost,
}

// ParsePatchMethod accepts in-mod, game-folder, overwrite or host.
func ParsePatchMethod(s string) (PatchMethod, error) {
	if m, ok := patchMethodNames[strings.ToLower(s)]; ok {
		return m, nil
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownPatchMethod, s)
}

func (m PatchMethod) String() string {
	for name, v := range patchMethodNames {
		if v == m {
			return name
		}
	}
	return fmt.Sprintf("PatchMethod(%d)", int(m))
}

// ReadINIMethod selects the source of ReadINI.
type ReadINIMethod int

const (
	ReadINIWithHost ReadINIMethod = iota
	ReadINIFromFile
)

// ReadRendererMethod selects the source of ReadRendererInfo.
type ReadRendererMethod int

const (
	ReadRendererWithHost ReadRendererMethod = iota
	ReadRendererFromFile
)

// Config controls engine limits and where side-channel reads come from.
type Config struct {
	StepQuota          int
	EnableWarnings     bool
	ManagerVersion     Version
	PatchMethod        PatchMethod
	ReadINIMethod      ReadINIMethod
	ReadRendererMethod ReadRendererMethod
	// GameDataPath is the game's Data folder, used by PatchGameFolder and
	// OverwriteGameFolder.
	GameDataPath     string
	GameINIPath      string
	RendererInfoPath string
	NewLine          string
	FS               billy.Filesystem
	// Logger receives trace and debug output; the zero value discards it.
	Logger zerolog.Logger
}

// Engine runs scripts. It is immutable after construction and safe for
// concurrent use.
type Engine struct {
	config   Config
	builtins map[Keyword]builtinFunc
}

// NewEngine constructs an Engine, filling in defaults.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.StepQuota <= 0 {
		cfg.StepQuota = 1_000_000
	}
	if cfg.ManagerVersion == (Version{}) {
		cfg.ManagerVersion = DefaultManagerVersion
	}
	if cfg.NewLine == "" {
		cfg.NewLine = "\n"
	}
	if cfg.FS == nil {
		cfg.FS = defaultFS()
	}

	if cfg.PatchMethod < PatchInMod || cfg.PatchMethod > PatchWithHost {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPatchMethod, cfg.PatchMethod)
	}
	if cfg.ReadINIMethod != ReadINIWithHost && cfg.ReadINIMethod != ReadINIFromFile {
		return nil, fmt.Errorf("unknown ReadINI method %d", cfg.ReadINIMethod)
	}
	if cfg.ReadRendererMethod != ReadRendererWithHost && cfg.ReadRendererMethod != ReadRendererFromFile {
		return nil, fmt.Errorf("unknown ReadRendererInfo method %d", cfg.ReadRendererMethod)
	}
	if (cfg.PatchMethod == PatchGameFolder || cfg.PatchMethod == OverwriteGameFolder) && strings.TrimSpace(cfg.GameDataPath) == "" {
		return nil, fmt.Errorf("patch method %s requires GameDataPath", cfg.PatchMethod)
	}
	if cfg.ReadINIMethod == ReadINIFromFile && cfg.GameINIPath == "" {
		return nil, fmt.Errorf("ReadINIFromFile requires GameINIPath")
	}
	if cfg.ReadRendererMethod == ReadRendererFromFile && cfg.RendererInfoPath == "" {
		return nil, fmt.Errorf("ReadRendererFromFile requires RendererInfoPath")
	}

	return &Engine{config: cfg, builtins: newBuiltinTable()}, nil
}

// MustNewEngine is NewEngine for static configuration.
func MustNewEngine(cfg Config) *Engine {
	engine, err := NewEngine(cfg)
	if err != nil {
		panic(err)
	}
	return engine
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() Config {
	return e.config
}

// Execute runs an OBMM script against the given roots. A cancelled install is
// not an error: the returned plan has CancelInstall set. Fatal failures
// return a nil plan and a *ScriptError (or ErrNilHost).
func (e *Engine) Execute(ctx context.Context, script string, roots Roots, host Host) (*Plan, error) {
	if strings.TrimSpace(script) == "" {
		return NewPlan(), nil
	}
	if host == nil {
		return nil, ErrNilHost
	}
	if ctx == nil {
		ctx = context.Background()
	}

	exec := newExecution(ctx, e, script, roots, host)
	if err := exec.run(); err != nil {
		exec.log.Info().Err(err).Int("line", exec.line).Msg("script failed")
		return nil, err
	}
	exec.log.Info().
		Int("steps", exec.steps).
		Bool("cancelled", exec.plan.CancelInstall).
		Interface("summary", exec.plan.Summary()).
		Msg("script finished")
	return exec.plan, nil
}

// ExecuteScript inspects the dialect marker of raw script data before
// executing it. Only OBMM scripts are supported.
func (e *Engine) ExecuteScript(ctx context.Context, raw string, roots Roots, host Host) (*Plan, error) {
	kind, body := DetectScriptType(raw)
	if kind != ScriptOBMM {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDialect, kind)
	}
	return e.Execute(ctx, body, roots, host)
}
