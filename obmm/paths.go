package obmm

import (
	"strings"
	"unicode/utf8"
)

// Script paths use backslash separators; forward slashes are accepted and
// normalised.
const scriptSeparator = `\`

const invalidPathChars = `<>|"?*:`

func toScriptPath(p string) string {
	return strings.ReplaceAll(p, "/", scriptSeparator)
}

func toSlashPath(p string) string {
	return strings.ReplaceAll(p, scriptSeparator, "/")
}

func hasInvalidPathChars(p string) bool {
	if strings.ContainsAny(p, invalidPathChars) {
		return true
	}
	for _, r := range p {
		if r < 0x20 || r == utf8.RuneError {
			return true
		}
	}
	return false
}

func isRootedPath(p string) bool {
	return strings.HasPrefix(p, "/") || strings.HasPrefix(p, scriptSeparator) ||
		(len(p) >= 2 && p[1] == ':')
}

func hasTraversal(p string) bool {
	for _, seg := range strings.Split(toScriptPath(p), scriptSeparator) {
		if seg == ".." {
			return true
		}
	}
	return false
}

// isSafeFileName reports whether p is a relative file path that stays inside
// its root.
func isSafeFileName(p string) bool {
	if p == "" || hasInvalidPathChars(p) || isRootedPath(p) || hasTraversal(p) {
		return false
	}
	p = toScriptPath(p)
	if strings.HasPrefix(p, ".") || strings.HasSuffix(p, ".") || strings.HasSuffix(p, scriptSeparator) {
		return false
	}
	return true
}

// isSafeFolderName is isSafeFileName for directories; the empty string names
// the root itself.
func isSafeFolderName(p string) bool {
	if p == "" {
		return true
	}
	if hasInvalidPathChars(p) || isRootedPath(p) || hasTraversal(p) {
		return false
	}
	return !strings.HasPrefix(toScriptPath(p), ".")
}

// makeValidFolderPath normalises separators and trims leading and trailing
// ones.
func makeValidFolderPath(p string) string {
	p = toScriptPath(p)
	for strings.Contains(p, `\\`) {
		p = strings.ReplaceAll(p, `\\`, scriptSeparator)
	}
	return strings.Trim(p, scriptSeparator)
}

func hasSubdirectory(p string) bool {
	return strings.ContainsAny(p, `\/`)
}

func lastSeparator(p string) int {
	return strings.LastIndexAny(p, `\/`)
}

// folderName mirrors the usual "directory part" of a path.
func folderName(p string) string {
	i := lastSeparator(p)
	if i < 0 {
		return ""
	}
	dir := p[:i]
	if dir == "" {
		return p[:i+1]
	}
	return dir
}

func fileName(p string) string {
	return p[lastSeparator(p)+1:]
}

func fileExtension(p string) string {
	name := fileName(p)
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return ""
	}
	return name[i:]
}

func fileNameWithoutExtension(p string) string {
	name := fileName(p)
	if ext := fileExtension(name); ext != "" {
		return name[:len(name)-len(ext)]
	}
	return name
}

// combinePaths joins two script paths; a rooted second path wins.
func combinePaths(a, b string) string {
	switch {
	case b == "":
		return a
	case a == "" || isRootedPath(b):
		return b
	case strings.HasSuffix(a, `\`) || strings.HasSuffix(a, "/"):
		return a + b
	default:
		return a + scriptSeparator + b
	}
}

func hasPluginExtension(p string) bool {
	ext := strings.ToLower(fileExtension(p))
	return ext == ".esp" || ext == ".esm"
}

// hasIllegalPathChars is the looser check used by the path helpers, which
// accept rooted paths.
func hasIllegalPathChars(p string) bool {
	if strings.ContainsAny(p, `<>|"`) {
		return true
	}
	for _, r := range p {
		if r < 0x20 {
			return true
		}
	}
	return false
}
