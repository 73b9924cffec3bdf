package obmm

import (
	"maps"
	"slices"
)

// Env holds the string variables of a single run.
type Env struct {
	values map[string]string
}

// NewEnv returns an environment seeded with the NewLine and Tab variables.
func NewEnv(newline string) *Env {
	if newline == "" {
		newline = "\n"
	}
	return &Env{values: map[string]string{
		"NewLine": newline,
		"Tab":     "\t",
	}}
}

func (e *Env) Get(name string) (string, bool) {
	if e == nil {
		return "", false
	}
	val, ok := e.values[name]
	return val, ok
}

func (e *Env) Set(name, val string) {
	e.values[name] = val
}

// Snapshot copies the current bindings.
func (e *Env) Snapshot() map[string]string {
	return maps.Clone(e.values)
}

// Names returns the bound variable names in sorted order.
func (e *Env) Names() []string {
	return slices.Sorted(maps.Keys(e.values))
}
