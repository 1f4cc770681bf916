// Package cache prunes transient files left behind by earlier runs.
package cache

import (
	"os"
	"time"

	"github.com/clipedit/clipedit/filesystem"
	"github.com/clipedit/clipedit/log"
	"github.com/spf13/afero"
)

// TTL is how long an unused temp file is kept.
const TTL = 24 * time.Hour

// CollectGarbage removes regular files under dir last modified before
// now minus ttl, returning how many were removed. A missing dir is not an error.
func CollectGarbage(dir string, ttl time.Duration, now time.Time) (int, error) {
	fs := filesystem.API()

	exists, err := fs.DirExists(dir)
	if err != nil || !exists {
		return 0, err
	}

	var stale []string
	err = afero.Walk(fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if now.Sub(info.ModTime()) > ttl {
			stale = append(stale, path)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, path := range stale {
		if err := fs.Remove(path); err != nil {
			log.Debugf("cache: keep %s: %v", path, err)
			continue
		}
		removed++
	}

	if removed > 0 {
		log.Debugf("cache: removed %d stale files from %s", removed, dir)
	}
	return removed, nil
}
