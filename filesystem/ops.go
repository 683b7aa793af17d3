package filesystem

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
)

const maxTempTries = 100

// Ops is the set of mutating filesystem primitives the link engines rely
// on. Every method reports failure through its error, wrapping the
// underlying cause. Paths handed to Ops are always absolute.
type Ops interface {
	// SwapLink replaces the symlink at name with one pointing at target.
	// The replacement is atomic: on failure the old link is left as it was.
	SwapLink(target, name Path) error

	// CopyTree copies the file or directory tree at src to dst. File
	// contents and symlinks are reproduced; permission bits of the source
	// are not, every copy is left writable by its owner.
	CopyTree(src, dst Path) error

	// RemoveTree removes path and everything below it. A path that does
	// not exist is not an error.
	RemoveTree(path Path) error
}

// OS implements Ops with native calls against the host filesystem.
type OS struct{}

func (OS) SwapLink(target, name Path) error {
	tmp, err := tempLink(target, name)
	if err != nil {
		return fmt.Errorf("swap %s: %w", name, err)
	}

	if err := tmp.Rename(name); err != nil {
		tmp.Remove()
		return fmt.Errorf("swap %s: %w", name, err)
	}

	return nil
}

// tempLink creates a symlink to target under an unused name next to name.
// Existing entries are never touched, a taken name just means another try.
func tempLink(target, name Path) (Path, error) {
	prefix := "." + name.Basename() + ".nix-tinker-"

	for try := 0; ; try++ {
		tmp := name.Parent().Join(prefix + strconv.FormatUint(uint64(rand.Uint32()), 36))

		err := tmp.Symlink(target)
		if err == nil {
			return tmp, nil
		}

		if !errors.Is(err, fs.ErrExist) || try >= maxTempTries {
			return "", err
		}
	}
}

func (OS) CopyTree(src, dst Path) error {
	info, err := src.Lstat()
	if err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}

	if !info.IsDir() {
		if err := copyEntry(src, dst, info); err != nil {
			return fmt.Errorf("copy %s: %w", src, err)
		}

		return nil
	}

	err = src.Walk(func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		return copyEntry(src.Join(path), dst.Join(path), info)
	})
	if err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}

	return nil
}

func (OS) RemoveTree(path Path) error {
	if err := path.RemoveAll(); err != nil {
		return fmt.Errorf("remove %s: %w", path, err)
	}

	return nil
}

// writable maps a source mode onto the mode of its copy: the owner can
// always read and write, execute bits survive.
func writable(mode os.FileMode) os.FileMode {
	perm := os.FileMode(0644) | mode.Perm()&0111
	if mode.IsDir() {
		perm |= 0755
	}

	return perm
}

func copyEntry(src, dst Path, info os.FileInfo) error {
	mode := info.Mode()

	switch {
	case mode.IsDir():
		return dst.MkdirAll(writable(mode))

	case mode&os.ModeSymlink != 0:
		target, err := src.Readlink()
		if err != nil {
			return err
		}

		return dst.Symlink(target)

	case mode.IsRegular():
		return copyFile(src, dst, writable(mode))
	}

	return fmt.Errorf("%s: unsupported file type %s", src, mode.Type())
}

func copyFile(src, dst Path, perm os.FileMode) error {
	in, err := src.Open()
	if err != nil {
		return err
	}

	defer in.Close()

	if err := dst.Parent().MkdirAll(0755); err != nil {
		return err
	}

	out, err := os.OpenFile(filepath.Clean(string(dst)), os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}
