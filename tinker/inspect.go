package tinker

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/RoshanAH/nix-tinker/filesystem"
)

// Inspector reads link metadata to decide what a path currently is. It
// never modifies the filesystem.
type Inspector struct {
	StoreRoot   filesystem.Path
	ScratchRoot filesystem.Path
}

// lstat rejects paths that do not exist or are not symlinks.
func lstat(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return newError(path, KindNotExisting, err)
		}

		return newError(path, KindIOFailure, err)
	}

	if info.Mode()&os.ModeSymlink == 0 {
		return newError(path, KindNotASymlink, nil)
	}

	return nil
}

// Classify checks that path is a symlink straight into the store and
// returns its raw target. Only the link itself is read: a link pointing at
// another link that ends up in the store does not count.
func (i Inspector) Classify(path string) (filesystem.Path, error) {
	if err := lstat(path); err != nil {
		return "", err
	}

	target, err := os.Readlink(path)
	if err != nil {
		return "", newError(path, KindIOFailure, err)
	}

	if !filepath.IsAbs(target) {
		return "", newError(path, KindNotStoreManaged, nil)
	}

	raw := filesystem.Path(filepath.Clean(target))
	if raw == i.StoreRoot || !raw.Within(i.StoreRoot) {
		return "", newError(path, KindNotStoreManaged, nil)
	}

	return raw, nil
}

// Unlinked checks that path is a symlink whose resolved target lies in
// the scratch root, i.e. that it was unlinked earlier. It returns the
// absolute path of the symlink itself.
func (i Inspector) Unlinked(path string) (filesystem.Path, error) {
	if err := lstat(path); err != nil {
		return "", err
	}

	abs, err := filesystem.Abs(path)
	if err != nil {
		return "", newError(path, KindIOFailure, err)
	}

	resolved, err := abs.EvalSymlinks()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", newError(path, KindNotTinker, err)
		}

		return "", newError(path, KindIOFailure, err)
	}

	if !resolved.Within(i.ScratchRoot.Canonical()) {
		return "", newError(path, KindNotTinker, nil)
	}

	return abs, nil
}
