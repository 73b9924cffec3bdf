package obmm

import (
	"fmt"
	"slices"
)

// Plan is the declarative result of a script run.
type Plan struct {
	InstallAllPlugins bool `json:"installAllPlugins" yaml:"installAllPlugins"`
	InstallAllData    bool `json:"installAllData" yaml:"installAllData"`
	CancelInstall     bool `json:"cancelInstall" yaml:"cancelInstall"`

	InstallPlugins []string `json:"installPlugins" yaml:"installPlugins"`
	IgnorePlugins  []string `json:"ignorePlugins" yaml:"ignorePlugins"`
	InstallData    []string `json:"installData" yaml:"installData"`
	IgnoreData     []string `json:"ignoreData" yaml:"ignoreData"`

	CopyPlugins   []CopyOp `json:"copyPlugins" yaml:"copyPlugins"`
	CopyDataFiles []CopyOp `json:"copyDataFiles" yaml:"copyDataFiles"`
	PatchFiles    []CopyOp `json:"patchFiles" yaml:"patchFiles"`

	INIEdits []INIEdit `json:"iniEdits" yaml:"iniEdits"`
	SDPEdits []SDPEdit `json:"sdpEdits" yaml:"sdpEdits"`
	ESPEdits []ESPEdit `json:"espEdits" yaml:"espEdits"`

	LoadOrder     []LoadOrderRule `json:"loadOrder" yaml:"loadOrder"`
	ConflictsWith []Dependency    `json:"conflictsWith" yaml:"conflictsWith"`
	DependsOn     []Dependency    `json:"dependsOn" yaml:"dependsOn"`

	RegisterBSAs     []string       `json:"registerBSAs" yaml:"registerBSAs"`
	EarlyPlugins     []string       `json:"earlyPlugins" yaml:"earlyPlugins"`
	UncheckedPlugins []string       `json:"uncheckedPlugins" yaml:"uncheckedPlugins"`
	ESPDeactivation  []Deactivation `json:"espDeactivation" yaml:"espDeactivation"`
}

// NewPlan returns the plan a script starts from: everything is installed.
func NewPlan() *Plan {
	return &Plan{InstallAllPlugins: true, InstallAllData: true}
}

// CopyOp copies (or patches) From onto To. Collections of CopyOp hold at most
// one entry per To.
type CopyOp struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

type INIEdit struct {
	Section string `json:"section" yaml:"section"`
	Name    string `json:"name" yaml:"name"`
	Value   string `json:"value" yaml:"value"`
}

// SDPEdit replaces a compiled shader inside a shader package.
type SDPEdit struct {
	Package    byte   `json:"package" yaml:"package"`
	Shader     string `json:"shader" yaml:"shader"`
	BinaryPath string `json:"binaryPath" yaml:"binaryPath"`
}

// ESPEdit sets a game setting (IsGMST) or a global variable in a plugin.
type ESPEdit struct {
	IsGMST bool   `json:"isGMST" yaml:"isGMST"`
	Plugin string `json:"plugin" yaml:"plugin"`
	EDID   string `json:"edid" yaml:"edid"`
	Value  string `json:"value" yaml:"value"`
}

type LoadOrderRule struct {
	Plugin    string `json:"plugin" yaml:"plugin"`
	Target    string `json:"target" yaml:"target"`
	LoadAfter bool   `json:"loadAfter" yaml:"loadAfter"`
}

type ConflictLevel int

const (
	ConflictMajor ConflictLevel = iota
	ConflictMinor
	ConflictUnusable
)

func parseConflictLevel(s string) (ConflictLevel, bool) {
	switch s {
	case "Unusable":
		return ConflictUnusable, true
	case "Major":
		return ConflictMajor, true
	case "Minor":
		return ConflictMinor, true
	}
	return ConflictMajor, false
}

func (l ConflictLevel) String() string {
	switch l {
	case ConflictMajor:
		return "Major"
	case ConflictMinor:
		return "Minor"
	case ConflictUnusable:
		return "Unusable"
	}
	return fmt.Sprintf("ConflictLevel(%d)", int(l))
}

func (l ConflictLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// Dependency is a ConflictsWith or DependsOn declaration. A zero version range
// means any version. Partial entries treat File as a regular expression.
type Dependency struct {
	File            string        `json:"file" yaml:"file"`
	Comment         string        `json:"comment,omitempty" yaml:"comment,omitempty"`
	Level           ConflictLevel `json:"level" yaml:"level"`
	MinMajorVersion int           `json:"minMajorVersion" yaml:"minMajorVersion"`
	MinMinorVersion int           `json:"minMinorVersion" yaml:"minMinorVersion"`
	MaxMajorVersion int           `json:"maxMajorVersion" yaml:"maxMajorVersion"`
	MaxMinorVersion int           `json:"maxMinorVersion" yaml:"maxMinorVersion"`
	Partial         bool          `json:"partial" yaml:"partial"`
}

type DeactivationStatus int

const (
	DeactivationAllow DeactivationStatus = iota
	DeactivationWarnAgainst
	DeactivationDisallow
)

func (s DeactivationStatus) String() string {
	switch s {
	case DeactivationAllow:
		return "Allow"
	case DeactivationWarnAgainst:
		return "WarnAgainst"
	case DeactivationDisallow:
		return "Disallow"
	}
	return fmt.Sprintf("DeactivationStatus(%d)", int(s))
}

func (s DeactivationStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type Deactivation struct {
	Plugin string             `json:"plugin" yaml:"plugin"`
	Status DeactivationStatus `json:"status" yaml:"status"`
}

// PlanSummary counts the entries of each plan collection.
type PlanSummary struct {
	InstallPlugins   int  `json:"installPlugins" yaml:"installPlugins"`
	IgnorePlugins    int  `json:"ignorePlugins" yaml:"ignorePlugins"`
	InstallData      int  `json:"installData" yaml:"installData"`
	IgnoreData       int  `json:"ignoreData" yaml:"ignoreData"`
	Copies           int  `json:"copies" yaml:"copies"`
	Patches          int  `json:"patches" yaml:"patches"`
	Edits            int  `json:"edits" yaml:"edits"`
	LoadOrder        int  `json:"loadOrder" yaml:"loadOrder"`
	Conflicts        int  `json:"conflicts" yaml:"conflicts"`
	Dependencies     int  `json:"dependencies" yaml:"dependencies"`
	RegisteredBSAs   int  `json:"registeredBSAs" yaml:"registeredBSAs"`
	EarlyPlugins     int  `json:"earlyPlugins" yaml:"earlyPlugins"`
	UncheckedPlugins int  `json:"uncheckedPlugins" yaml:"uncheckedPlugins"`
	Deactivations    int  `json:"deactivations" yaml:"deactivations"`
	Cancelled        bool `json:"cancelled" yaml:"cancelled"`
}

func (p *Plan) Summary() PlanSummary {
	return PlanSummary{
		InstallPlugins:   len(p.InstallPlugins),
		IgnorePlugins:    len(p.IgnorePlugins),
		InstallData:      len(p.InstallData),
		IgnoreData:       len(p.IgnoreData),
		Copies:           len(p.CopyPlugins) + len(p.CopyDataFiles),
		Patches:          len(p.PatchFiles),
		Edits:            len(p.INIEdits) + len(p.SDPEdits) + len(p.ESPEdits),
		LoadOrder:        len(p.LoadOrder),
		Conflicts:        len(p.ConflictsWith),
		Dependencies:     len(p.DependsOn),
		RegisteredBSAs:   len(p.RegisterBSAs),
		EarlyPlugins:     len(p.EarlyPlugins),
		UncheckedPlugins: len(p.UncheckedPlugins),
		Deactivations:    len(p.ESPDeactivation),
		Cancelled:        p.CancelInstall,
	}
}

func addUnique(list *[]string, v string) {
	if !slices.Contains(*list, v) {
		*list = append(*list, v)
	}
}

func removeValue(list *[]string, v string) {
	*list = slices.DeleteFunc(*list, func(s string) bool { return s == v })
}

// moveTo records v in add and drops it from the opposing set.
func moveTo(add, remove *[]string, v string) {
	removeValue(remove, v)
	addUnique(add, v)
}

// putCopy replaces any operation targeting the same path and appends op.
func putCopy(list *[]CopyOp, op CopyOp) {
	*list = slices.DeleteFunc(*list, func(c CopyOp) bool { return c.To == op.To })
	*list = append(*list, op)
}

func (p *Plan) addLoadOrder(rule LoadOrderRule) {
	if !slices.Contains(p.LoadOrder, rule) {
		p.LoadOrder = append(p.LoadOrder, rule)
	}
}

func (p *Plan) setDeactivation(d Deactivation) {
	p.ESPDeactivation = slices.DeleteFunc(p.ESPDeactivation, func(e Deactivation) bool { return e.Plugin == d.Plugin })
	p.ESPDeactivation = append(p.ESPDeactivation, d)
}
