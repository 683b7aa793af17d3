// Package selection turns the paths named on the command line into the
// list of candidate files an operation is applied to.
package selection

import (
	"os"
	"path/filepath"

	"github.com/RoshanAH/nix-tinker/filesystem"
	"github.com/RoshanAH/nix-tinker/logging"
)

type Selection struct {
	// Paths are the files and directories to target.
	Paths []string

	// Recursive selects everything below a directory instead of only its
	// immediate entries.
	Recursive bool
}

// Expand lists the candidates in s. Paths that are not directories come
// first, in the order given, followed by the contents of each directory.
// A symlink is always a candidate itself, even one pointing at a
// directory. Directories are never candidates, and every path appears at
// most once.
func (s Selection) Expand() []string {
	log := logging.GetLogger("selection")

	var files, dirs []string
	for _, path := range s.Paths {
		info, err := os.Lstat(path)
		if err == nil && info.IsDir() {
			dirs = append(dirs, path)
		} else {
			files = append(files, path)
		}
	}

	seen := make(map[string]bool)
	var candidates []string
	add := func(path string) {
		key := path
		if abs, err := filepath.Abs(path); err == nil {
			key = abs
		}

		if seen[key] {
			return
		}

		seen[key] = true
		candidates = append(candidates, path)
	}

	for _, path := range files {
		add(path)
	}

	for _, dir := range dirs {
		root, err := filesystem.Abs(dir)
		if err != nil {
			log.Debug().Err(err).Str("path", dir).Msg("Skipping directory")
			continue
		}

		root.Walk(func(rel string, info os.FileInfo, err error) error {
			if err != nil {
				log.Debug().Err(err).Str("path", filepath.Join(dir, rel)).Msg("Skipping unreadable entry")
				return nil
			}

			if rel == "." {
				return nil
			}

			if info.IsDir() {
				if !s.Recursive {
					return filepath.SkipDir
				}

				return nil
			}

			add(filepath.Join(dir, rel))
			return nil
		})
	}

	return candidates
}
