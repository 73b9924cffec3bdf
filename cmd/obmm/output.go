package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/oarkflow/json"
	"gopkg.in/yaml.v3"

	"github.com/mgomes/obmmscript/obmm"
)

type planRenderFunc func(*obmm.Plan) ([]byte, error)

func planRenderer(format string) (planRenderFunc, error) {
	switch strings.ToLower(format) {
	case "", "json":
		return renderJSON, nil
	case "yaml", "yml":
		return renderYAML, nil
	default:
		return nil, fmt.Errorf("invalid -format %q (want json or yaml)", format)
	}
}

func renderJSON(plan *obmm.Plan) ([]byte, error) {
	out, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

func renderYAML(plan *obmm.Plan) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(plan); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
