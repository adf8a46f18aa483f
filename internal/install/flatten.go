package install

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/backmassage/partsinstall/internal/naming"
)

// FlattenResult reports what Flatten did.
type FlattenResult struct {
	Inner   string // Directory that was flattened; empty if none matched.
	Moved   int
	Skipped int
	Removed bool // Inner was removed after moving its entries.
}

// Flatten looks in dir for the first subdirectory whose name contains any
// word of appName, moves its entries up into dir and removes it:
// App/App/files -> App/files. Entries that would overwrite something in dir
// or fail to move are left in place.
func Flatten(appName, dir string, log Logger) FlattenResult {
	var res FlattenResult

	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Warn("Directory was not readable, not flattening.")
		return res
	}

	keywords := naming.Keywords(appName)
	for _, e := range entries {
		p := filepath.Join(dir, e.Name())
		if fi, err := os.Stat(p); err == nil && fi.IsDir() && naming.HasKeywords(keywords, e.Name()) {
			res.Inner = p
			break
		}
	}
	if res.Inner == "" {
		log.Info("No inner directory to flatten.")
		return res
	}

	inner, err := os.ReadDir(res.Inner)
	if err != nil {
		if len(inner) == 0 {
			log.Warn("Could not read inner directory %s", res.Inner)
			return res
		}
		log.Warn("Skipped unreadable entries in %s: %v", res.Inner, err)
	}

	for _, e := range inner {
		src := filepath.Join(res.Inner, e.Name())
		dst := filepath.Join(dir, e.Name())

		if _, err := os.Lstat(dst); err == nil {
			log.Warn("Not moving %s: %s already exists", src, dst)
			res.Skipped++
			continue
		} else if !errors.Is(err, fs.ErrNotExist) {
			log.Warn("Not moving %s: %v", src, err)
			res.Skipped++
			continue
		}

		if err := os.Rename(src, dst); err != nil {
			log.Warn("Got error %v while trying to move %s to %s", err, src, dst)
			res.Skipped++
			continue
		}
		res.Moved++
		log.Debug("Flattened %s", e.Name())
	}

	if err := os.Remove(res.Inner); err != nil {
		log.Warn("Got error %v while removing inner folder %s", err, res.Inner)
		return res
	}
	res.Removed = true
	log.Success("Successfully flattened %d file(s).", res.Moved)
	return res
}
