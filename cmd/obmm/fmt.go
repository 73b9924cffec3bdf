package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/mgomes/obmmscript/obmm"
)

// scriptEdit is one script before and after formatting.
type scriptEdit struct {
	path   string
	before string
	after  string
}

func (e scriptEdit) changed() bool { return e.before != e.after }

// scriptFormatter re-indents OMOD scripts on a billy filesystem.
type scriptFormatter struct {
	fs billy.Filesystem
}

func fmtCommand(args []string, stdout io.Writer) error {
	flags := flag.NewFlagSet("fmt", flag.ContinueOnError)
	flags.SetOutput(new(flagErrorSink))
	write := flags.Bool("w", false, "write result to source files instead of stdout")
	check := flags.Bool("check", false, "list scripts that need formatting and fail if any do")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() == 0 {
		return errors.New("obmm fmt: path required")
	}

	f := scriptFormatter{fs: osfs.New("/")}
	paths, err := f.scripts(flags.Args())
	if err != nil {
		return err
	}

	var stale []string
	for _, path := range paths {
		edit, ok, err := f.format(path)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if edit.changed() {
			stale = append(stale, path)
		}
		switch {
		case *check:
		case *write:
			if edit.changed() {
				if err := util.WriteFile(f.fs, path, []byte(edit.after), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}
			}
		default:
			fmt.Fprint(stdout, edit.after)
		}
	}

	if *check && len(stale) > 0 {
		for _, path := range stale {
			fmt.Fprintln(stdout, path)
		}
		return fmt.Errorf("obmm fmt: %d script(s) need formatting", len(stale))
	}
	return nil
}

// format reads and formats one script. ok is false for C# scripts, which are
// left alone.
func (f scriptFormatter) format(path string) (edit scriptEdit, ok bool, err error) {
	raw, err := util.ReadFile(f.fs, path)
	if err != nil {
		return scriptEdit{}, false, fmt.Errorf("read %s: %w", path, err)
	}
	src := string(raw)
	kind, body := obmm.DetectScriptType(src)
	if kind != obmm.ScriptOBMM {
		return scriptEdit{}, false, nil
	}
	marker := src[:len(src)-len(body)]
	return scriptEdit{path: path, before: src, after: marker + obmm.Format(body)}, true, nil
}

// scripts expands targets to absolute, sorted, de-duplicated script paths.
// A file target is taken as is; a directory contributes every file named
// script or script.txt below it.
func (f scriptFormatter) scripts(targets []string) ([]string, error) {
	found := make(map[string]bool)
	for _, target := range targets {
		abs, err := filepath.Abs(target)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", target, err)
		}
		err = util.Walk(f.fs, abs, func(path string, info os.FileInfo, err error) error {
			switch {
			case err != nil:
				return err
			case path == abs && !info.IsDir():
				found[path] = true
			case !info.IsDir() && isScriptName(info.Name()):
				found[path] = true
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", target, err)
		}
	}

	paths := make([]string, 0, len(found))
	for path := range found {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths, nil
}

// isScriptName matches the names an OMOD config folder uses for its script.
func isScriptName(name string) bool {
	switch strings.ToLower(name) {
	case "script", "script.txt":
		return true
	}
	return false
}
