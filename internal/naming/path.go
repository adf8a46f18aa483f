package naming

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// FileName returns the final component of path. It reports false when
// there is none: the empty path, a filesystem root, "." and "..".
func FileName(path string) (string, bool) {
	if path == "" {
		return "", false
	}
	base := filepath.Base(filepath.Clean(path))
	switch base {
	case "", ".", "..":
		return "", false
	}
	if os.IsPathSeparator(base[len(base)-1]) {
		return "", false
	}
	return base, true
}

// Ext returns the text after the last dot of name, without the dot. It
// reports false when name has no dot or when the only dot is a leading one
// (".bashrc" has no extension). "app." has the empty extension.
func Ext(name string) (string, bool) {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return "", false
	}
	return name[i+1:], true
}

// Stem returns name without its extension as defined by [Ext].
func Stem(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return name
	}
	return name[:i]
}

// DisplayName is the lossy text projection of a name, for log output only.
// Invalid UTF-8 sequences are replaced with U+FFFD; matching and numeric
// parsing always use the raw name.
func DisplayName(name string) string {
	if utf8.ValidString(name) {
		return name
	}
	return strings.ToValidUTF8(name, "�")
}
