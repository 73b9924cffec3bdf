package obmm

import (
	"bufio"
	"strings"

	"gopkg.in/ini.v1"
)

// Game INI files end paths with a backslash and carry lines the game
// itself ignores, so continuation and unparseable lines are turned off.
var gameINIOptions = ini.LoadOptions{
	Insensitive:             true,
	IgnoreContinuation:      true,
	SkipUnrecognizableLines: true,
}

// iniValue looks up name in section of an INI document. Section and key
// names compare case-insensitively.
func iniValue(doc []byte, section, name string) (string, bool) {
	cfg, err := ini.LoadSources(gameINIOptions, doc)
	if err != nil {
		return "", false
	}
	sec, err := cfg.GetSection(section)
	if err != nil {
		return "", false
	}
	key, err := sec.GetKey(name)
	if err != nil {
		return "", false
	}
	return key.String(), true
}

// rendererValue looks up a "Name: value" line of a renderer info dump.
func rendererValue(doc, name string) (string, bool) {
	sc := bufio.NewScanner(strings.NewReader(doc))
	for sc.Scan() {
		key, val, ok := strings.Cut(sc.Text(), ":")
		if ok && strings.EqualFold(strings.TrimSpace(key), name) {
			return strings.TrimSpace(val), true
		}
	}
	return "", false
}
