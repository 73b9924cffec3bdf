package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog"

	"github.com/mgomes/obmmscript/obmm"
)

// Profile describes the installation a script runs against. It is decoded
// from an HCL file:
//
//	game_version = "1.2.416"
//	script_extender { version = "0.0.20.6" }
//	script_extender_plugin "data/obse/plugins/foo.dll" { version = "1.1" }
//	plugin "Oblivion.esm" { active = true }
//	data_files  = ["textures/foo.dds"]
//	active_mods = ["Unofficial Patch"]
//	ini "General" "sLanguage" { value = "ENGLISH" }
//	renderer "Shader Package" { value = "19" }
//	answers {
//	  yes_no = ["yes", "cancel"]
//	  select = [[0], [1, 2]]
//	  input  = ["Bob"]
//	}
type Profile struct {
	GameVersion      string                  `hcl:"game_version,optional"`
	ScriptExtender   *ExtenderProfile        `hcl:"script_extender,block"`
	GraphicsExtender *ExtenderProfile        `hcl:"graphics_extender,block"`
	ExtenderPlugins  []ExtenderPluginProfile `hcl:"script_extender_plugin,block"`
	Plugins          []PluginProfile         `hcl:"plugin,block"`
	DataFiles        []string                `hcl:"data_files,optional"`
	ActiveMods       []string                `hcl:"active_mods,optional"`
	INI              []INIProfile            `hcl:"ini,block"`
	Renderer         []RendererProfile       `hcl:"renderer,block"`
	Answers          *AnswersProfile         `hcl:"answers,block"`

	// GameINI and RendererInfo switch ReadINI and ReadRendererInfo to read
	// the named files instead of the ini and renderer blocks.
	GameINI      string `hcl:"game_ini,optional"`
	RendererInfo string `hcl:"renderer_info,optional"`
}

type ExtenderProfile struct {
	Version string `hcl:"version,optional"`
}

type ExtenderPluginProfile struct {
	Path    string `hcl:"path,label"`
	Version string `hcl:"version"`
}

type PluginProfile struct {
	Name   string `hcl:"name,label"`
	Active bool   `hcl:"active,optional"`
}

type INIProfile struct {
	Section string `hcl:"section,label"`
	Key     string `hcl:"key,label"`
	Value   string `hcl:"value"`
}

type RendererProfile struct {
	Name  string `hcl:"name,label"`
	Value string `hcl:"value"`
}

// AnswersProfile holds dialog answers, consumed in order.
type AnswersProfile struct {
	YesNo  []string `hcl:"yes_no,optional"`
	Select [][]int  `hcl:"select,optional"`
	Input  []string `hcl:"input,optional"`
}

func loadProfile(path string) (*Profile, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse profile %s: %w", path, diags)
	}
	return decodeProfile(file.Body, path)
}

func parseProfile(src []byte, filename string) (*Profile, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse profile %s: %w", filename, diags)
	}
	return decodeProfile(file.Body, filename)
}

func decodeProfile(body hcl.Body, filename string) (*Profile, error) {
	var profile Profile
	if diags := gohcl.DecodeBody(body, nil, &profile); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode profile %s: %w", filename, diags)
	}
	return &profile, nil
}

// profileHost answers host queries from a Profile. Dialogs without a scripted
// answer fall back to obmm.BaseHost.
type profileHost struct {
	obmm.BaseHost
	log zerolog.Logger

	gameVersion      obmm.Version
	scriptExtender   *obmm.Version
	graphicsExtender *obmm.Version
	extenderPlugins  map[string]obmm.Version
	plugins          []obmm.PluginState
	dataFiles        map[string]struct{}
	activeMods       []string
	ini              map[string]string
	renderer         map[string]string

	yesNo   []obmm.DialogResult
	selects [][]int
	inputs  []string
}

var errProfileVersion = errors.New("invalid version in profile")

func newProfileHost(p *Profile, log zerolog.Logger) (*profileHost, error) {
	h := &profileHost{
		log:             log,
		extenderPlugins: make(map[string]obmm.Version),
		dataFiles:       make(map[string]struct{}),
		ini:             make(map[string]string),
		renderer:        make(map[string]string),
		activeMods:      p.ActiveMods,
	}
	parse := func(label, raw string) (obmm.Version, error) {
		if raw == "" {
			return obmm.Version{}, nil
		}
		v, err := obmm.ParseVersion(raw)
		if err != nil {
			return obmm.Version{}, fmt.Errorf("%w: %s %q", errProfileVersion, label, raw)
		}
		return v, nil
	}

	var err error
	if h.gameVersion, err = parse("game_version", p.GameVersion); err != nil {
		return nil, err
	}
	if p.ScriptExtender != nil {
		v, err := parse("script_extender", p.ScriptExtender.Version)
		if err != nil {
			return nil, err
		}
		h.scriptExtender = &v
	}
	if p.GraphicsExtender != nil {
		v, err := parse("graphics_extender", p.GraphicsExtender.Version)
		if err != nil {
			return nil, err
		}
		h.graphicsExtender = &v
	}
	for _, plugin := range p.ExtenderPlugins {
		v, err := parse("script_extender_plugin", plugin.Version)
		if err != nil {
			return nil, err
		}
		h.extenderPlugins[profileKey(plugin.Path)] = v
	}
	for _, plugin := range p.Plugins {
		h.plugins = append(h.plugins, obmm.PluginState{Name: plugin.Name, Active: plugin.Active})
	}
	for _, file := range p.DataFiles {
		h.dataFiles[profileKey(file)] = struct{}{}
	}
	for _, entry := range p.INI {
		h.ini[iniKey(entry.Section, entry.Key)] = entry.Value
	}
	for _, entry := range p.Renderer {
		h.renderer[strings.ToLower(entry.Name)] = entry.Value
	}

	if p.Answers != nil {
		for _, raw := range p.Answers.YesNo {
			answer, err := parseDialogAnswer(raw)
			if err != nil {
				return nil, err
			}
			h.yesNo = append(h.yesNo, answer)
		}
		h.selects = p.Answers.Select
		h.inputs = p.Answers.Input
	}
	return h, nil
}

func parseDialogAnswer(raw string) (obmm.DialogResult, error) {
	switch strings.ToLower(raw) {
	case "yes", "y", "true":
		return obmm.DialogYes, nil
	case "no", "n", "false":
		return obmm.DialogNo, nil
	case "cancel":
		return obmm.DialogCancel, nil
	default:
		return 0, fmt.Errorf("invalid yes_no answer %q (want yes, no or cancel)", raw)
	}
}

// profileKey normalises a data path: case-insensitive, forward slashes.
func profileKey(path string) string {
	return strings.ToLower(strings.ReplaceAll(path, "\\", "/"))
}

func iniKey(section, key string) string {
	return strings.ToLower(section) + "|" + strings.ToLower(key)
}

func (h *profileHost) Warn(w obmm.Warning) {
	h.log.Warn().Int("line", w.Line).Msg(w.Message)
}

func (h *profileHost) Message(message, title string) error {
	h.log.Info().Str("title", title).Msg(message)
	return nil
}

func (h *profileHost) Select(req obmm.SelectRequest) ([]int, error) {
	if len(h.selects) == 0 {
		h.log.Warn().Str("title", req.Title).Msg("no scripted selection; cancelling")
		return nil, nil
	}
	picked := h.selects[0]
	h.selects = h.selects[1:]
	if !req.Multi && len(picked) > 1 {
		return nil, fmt.Errorf("select %q: %d items chosen for a single-choice list", req.Title, len(picked))
	}
	return picked, nil
}

func (h *profileHost) InputString(title, initial string) (string, error) {
	if len(h.inputs) == 0 {
		return initial, nil
	}
	value := h.inputs[0]
	h.inputs = h.inputs[1:]
	return value, nil
}

func (h *profileHost) DialogYesNo(message, title string) (obmm.DialogResult, error) {
	if len(h.yesNo) == 0 {
		h.log.Warn().Str("title", title).Msg("no scripted answer; answering no")
		return obmm.DialogNo, nil
	}
	answer := h.yesNo[0]
	h.yesNo = h.yesNo[1:]
	return answer, nil
}

func (h *profileHost) DisplayImage(path, title string) error {
	h.log.Info().Str("title", title).Str("image", path).Msg("display image")
	return nil
}

func (h *profileHost) DisplayText(text, title string) error {
	h.log.Info().Str("title", title).Msg(text)
	return nil
}

func (h *profileHost) Patch(from, to string) error {
	h.log.Info().Str("from", from).Str("to", to).Msg("patch")
	return nil
}

func (h *profileHost) ReadINI(section, name string) (string, error) {
	return h.ini[iniKey(section, name)], nil
}

func (h *profileHost) ReadRendererInfo(name string) (string, error) {
	return h.renderer[strings.ToLower(name)], nil
}

func (h *profileHost) DataFileExists(path string) bool {
	_, ok := h.dataFiles[profileKey(path)]
	return ok
}

func (h *profileHost) HasScriptExtender() bool { return h.scriptExtender != nil }

func (h *profileHost) ScriptExtenderVersion() (obmm.Version, error) {
	if h.scriptExtender == nil {
		return obmm.Version{}, nil
	}
	return *h.scriptExtender, nil
}

func (h *profileHost) HasGraphicsExtender() bool { return h.graphicsExtender != nil }

func (h *profileHost) GraphicsExtenderVersion() (obmm.Version, error) {
	if h.graphicsExtender == nil {
		return obmm.Version{}, nil
	}
	return *h.graphicsExtender, nil
}

func (h *profileHost) GameVersion() (obmm.Version, error) {
	return h.gameVersion, nil
}

func (h *profileHost) ScriptExtenderPluginVersion(name string) (obmm.Version, error) {
	return h.extenderPlugins[profileKey(name)], nil
}

func (h *profileHost) Plugins() ([]obmm.PluginState, error) {
	return h.plugins, nil
}

func (h *profileHost) ActiveMods() ([]string, error) {
	return h.activeMods, nil
}
