package naming

import (
	"errors"
	"os"
)

// ErrNoFileName is returned when a path has no file-name component (root,
// empty, "." or "..").
var ErrNoFileName = errors.New("path has no file name")

// ResolveAppName derives the canonical application name from a path the user
// supplied.
//
//   - A path that does not exist is taken to already be the app name.
//   - An existing directory keeps its full name; dots in it are part of the
//     identity (Test.App stays Test.App).
//   - An existing file loses a numeric split-part extension, then an archive
//     extension: App.7z.001 -> App, App.zip -> App, App.001 -> App.
//
// Any stat failure is treated as "does not exist".
func ResolveAppName(path string) (string, error) {
	name, ok := FileName(path)
	if !ok {
		return "", ErrNoFileName
	}

	fi, err := os.Stat(path)
	if err != nil {
		return name, nil
	}
	if fi.IsDir() {
		return name, nil
	}

	if ext, ok := Ext(name); ok && IsNumericExtension(ext) {
		name = Stem(name)
	}
	if ext, ok := Ext(name); ok && IsArchiveExtension(ext) {
		name = Stem(name)
	}
	return name, nil
}
