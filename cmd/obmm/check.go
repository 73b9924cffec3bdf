package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"

	"github.com/mgomes/obmmscript/obmm"
)

func checkCommand(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("obmm check: script path required")
	}

	scriptPath, err := filepath.Abs(remaining[0])
	if err != nil {
		return fmt.Errorf("resolve script path: %w", err)
	}
	input, err := readScript(scriptPath)
	if err != nil {
		return err
	}
	kind, body := obmm.DetectScriptType(string(input))
	if kind != obmm.ScriptOBMM {
		return fmt.Errorf("%w: %s", obmm.ErrUnsupportedDialect, kind)
	}

	warnings := obmm.Check(body)
	if len(warnings) == 0 {
		fmt.Fprintln(stdout, "No issues found")
		return nil
	}
	for _, w := range warnings {
		fmt.Fprintf(stdout, "%s:%d: %s\n", scriptPath, w.Line+1, w.Message)
	}
	return fmt.Errorf("check found %d issue(s)", len(warnings))
}
