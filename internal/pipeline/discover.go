package pipeline

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
)

// escapeGlob makes s match itself literally in a filepath.Glob pattern.
// Backslash is the escape character except on Windows, where it separates
// paths and metacharacters are wrapped in a class instead.
func escapeGlob(s string) string {
	if runtime.GOOS == "windows" {
		var b strings.Builder
		for _, r := range s {
			if strings.ContainsRune("*?[", r) {
				b.WriteByte('[')
				b.WriteRune(r)
				b.WriteByte(']')
				continue
			}
			b.WriteRune(r)
		}
		return b.String()
	}

	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(`*?[\`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Discover returns the regular files in root whose names start with appName,
// in lexicographic order. Entries that cannot be stat'ed are dropped.
func Discover(root, appName string) ([]string, error) {
	return discover(root, appName, nil)
}

// discover is Discover with a hook for entries it drops.
func discover(root, appName string, onSkip func(path string, err error)) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(escapeGlob(root), escapeGlob(appName)+"*"))
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(matches))
	for _, m := range matches {
		fi, err := os.Stat(m)
		if err != nil {
			if onSkip != nil {
				onSkip(m, err)
			}
			continue
		}
		if fi.IsDir() {
			continue
		}
		files = append(files, m)
	}
	sort.Strings(files)
	return files, nil
}

// SearchRoot returns the directory parts are searched in: name itself when it
// is an existing directory, otherwise its parent ("." for bare names).
func SearchRoot(name string) string {
	if fi, err := os.Stat(name); err == nil && fi.IsDir() {
		return name
	}
	return filepath.Dir(name)
}
