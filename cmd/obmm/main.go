package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/mgomes/obmmscript/obmm"
)

// errCancelled is returned after the plan was printed when the script
// cancelled the installation.
var errCancelled = errors.New("installation cancelled by script")

func main() {
	if err := runCLI(os.Args, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, errCancelled) {
			os.Exit(3)
		}
		os.Exit(1)
	}
}

func runCLI(args []string, stdout io.Writer) error {
	if len(args) < 2 {
		return usageError()
	}
	switch args[1] {
	case "run":
		return runCommand(args[2:], stdout)
	case "check":
		return checkCommand(args[2:], stdout)
	case "fmt":
		return fmtCommand(args[2:], stdout)
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

func runCommand(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	dataDir := fs.String("data", ".", "mod data folder")
	pluginsDir := fs.String("plugins", "", "mod plugin folder (defaults to -data)")
	profilePath := fs.String("profile", "", "HCL host profile")
	interactive := fs.Bool("interactive", false, "answer dialogs in the terminal")
	warnings := fs.Bool("warnings", false, "report script warnings")
	format := fs.String("format", "json", "plan format: json or yaml")
	patchMethod := fs.String("patch-method", "in-mod", "in-mod, game-folder, overwrite or host")
	gameData := fs.String("game-data", "", "game Data folder used by game-folder and overwrite")
	logLevel := fs.String("log-level", "warn", "trace, debug, info, warn or error")
	logFormat := fs.String("log-format", "console", "console or json")
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("obmm run: script path required")
	}

	logger, err := newLogger(os.Stderr, *logLevel, *logFormat)
	if err != nil {
		return err
	}
	render, err := planRenderer(*format)
	if err != nil {
		return err
	}
	method, err := obmm.ParsePatchMethod(*patchMethod)
	if err != nil {
		return err
	}
	roots, err := resolveRoots(*dataDir, *pluginsDir)
	if err != nil {
		return err
	}
	input, err := readScript(remaining[0])
	if err != nil {
		return err
	}

	profile := &Profile{}
	if *profilePath != "" {
		if profile, err = loadProfile(*profilePath); err != nil {
			return err
		}
	}
	profileHost, err := newProfileHost(profile, logger)
	if err != nil {
		return err
	}
	var host obmm.Host = profileHost
	if *interactive {
		host = newTerminalHost(profileHost)
	}

	cfg := obmm.Config{
		EnableWarnings: *warnings,
		PatchMethod:    method,
		Logger:         logger,
	}
	if *gameData != "" {
		if cfg.GameDataPath, err = filepath.Abs(*gameData); err != nil {
			return fmt.Errorf("resolve game data path: %w", err)
		}
	}
	if profile.GameINI != "" {
		cfg.ReadINIMethod = obmm.ReadINIFromFile
		if cfg.GameINIPath, err = filepath.Abs(profile.GameINI); err != nil {
			return fmt.Errorf("resolve game ini: %w", err)
		}
	}
	if profile.RendererInfo != "" {
		cfg.ReadRendererMethod = obmm.ReadRendererFromFile
		if cfg.RendererInfoPath, err = filepath.Abs(profile.RendererInfo); err != nil {
			return fmt.Errorf("resolve renderer info: %w", err)
		}
	}
	engine, err := obmm.NewEngine(cfg)
	if err != nil {
		return err
	}

	lock, err := lockDataRoot(roots.Data)
	if err != nil {
		return err
	}
	defer lock.release()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	plan, err := engine.ExecuteScript(ctx, string(input), roots, host)
	if err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}

	out, err := render(plan)
	if err != nil {
		return fmt.Errorf("render plan: %w", err)
	}
	if _, err := stdout.Write(out); err != nil {
		return err
	}
	if plan.CancelInstall {
		return errCancelled
	}
	return nil
}

func readScript(path string) ([]byte, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve script path: %w", err)
	}
	input, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return input, nil
}

// resolveRoots makes both roots absolute; the engine's default filesystem is
// rooted at "/".
func resolveRoots(data, plugins string) (obmm.Roots, error) {
	if plugins == "" {
		plugins = data
	}
	var roots obmm.Roots
	for _, root := range []struct {
		label string
		in    string
		out   *string
	}{
		{"data folder", data, &roots.Data},
		{"plugin folder", plugins, &roots.Plugins},
	} {
		abs, err := filepath.Abs(root.in)
		if err != nil {
			return obmm.Roots{}, fmt.Errorf("resolve %s %q: %w", root.label, root.in, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return obmm.Roots{}, fmt.Errorf("access %s %q: %w", root.label, abs, err)
		}
		if !info.IsDir() {
			return obmm.Roots{}, fmt.Errorf("%s %q is not a directory", root.label, abs)
		}
		*root.out = abs
	}
	return roots, nil
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s run [flags] <script>\n", prog)
	fmt.Fprintf(os.Stderr, "       %s check <script>\n", prog)
	fmt.Fprintf(os.Stderr, "       %s fmt [-w] [-check] <path>...\n", prog)
	fmt.Fprintln(os.Stderr, "Run flags:")
	fmt.Fprintln(os.Stderr, "  -data <dir>")
	fmt.Fprintln(os.Stderr, "    mod data folder (default \".\")")
	fmt.Fprintln(os.Stderr, "  -plugins <dir>")
	fmt.Fprintln(os.Stderr, "    mod plugin folder (defaults to -data)")
	fmt.Fprintln(os.Stderr, "  -profile <file>")
	fmt.Fprintln(os.Stderr, "    HCL file describing the game, extenders, load order and scripted answers")
	fmt.Fprintln(os.Stderr, "  -interactive")
	fmt.Fprintln(os.Stderr, "    answer dialogs in the terminal")
	fmt.Fprintln(os.Stderr, "  -warnings")
	fmt.Fprintln(os.Stderr, "    report script warnings")
	fmt.Fprintln(os.Stderr, "  -format json|yaml")
	fmt.Fprintln(os.Stderr, "    plan output format (default json)")
	fmt.Fprintln(os.Stderr, "  -patch-method in-mod|game-folder|overwrite|host")
	fmt.Fprintln(os.Stderr, "    how PatchPlugin and PatchDataFile apply patches (default in-mod)")
	fmt.Fprintln(os.Stderr, "  -game-data <dir>")
	fmt.Fprintln(os.Stderr, "    game Data folder, required by game-folder and overwrite")
	fmt.Fprintln(os.Stderr, "  -log-level <level>")
	fmt.Fprintln(os.Stderr, "    trace, debug, info, warn or error (default warn)")
	fmt.Fprintln(os.Stderr, "  -log-format console|json")
	fmt.Fprintln(os.Stderr, "Exit status is 3 when the script cancels the installation.")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}
