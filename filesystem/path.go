package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

type Path string

func MakePath(names ...string) Path {
	p := filepath.Join(names...)

	if !filepath.IsAbs(p) {
		panic("MakePath requires absolute path")
	}

	return Path(p)
}

// Abs converts name to an absolute, cleaned Path without resolving any
// symlinks along the way.
func Abs(name string) (Path, error) {
	p, err := filepath.Abs(name)
	if err != nil {
		return Path(""), err
	}

	return Path(p), nil
}

func (p Path) Join(names ...string) Path {
	args := []string{string(p)}
	args = append(args, names...)
	return MakePath(args...)
}

func (p Path) Parent() Path {
	return Path(filepath.Dir(string(p)))
}

func (p Path) Basename() string {
	return filepath.Base(string(p))
}

// Within reports whether p is dir or lies somewhere below it. The check is
// done per path component, so /nix/storex is not within /nix/store.
func (p Path) Within(dir Path) bool {
	d := filepath.Clean(string(dir))
	s := filepath.Clean(string(p))
	if s == d {
		return true
	}

	if !strings.HasSuffix(d, string(filepath.Separator)) {
		d += string(filepath.Separator)
	}

	return strings.HasPrefix(s, d)
}

// Canonical resolves every symlink in p. A path that does not exist yet is
// returned cleaned instead.
func (p Path) Canonical() Path {
	resolved, err := filepath.EvalSymlinks(string(p))
	if err != nil {
		return Path(filepath.Clean(string(p)))
	}

	return Path(resolved)
}

func (p Path) EvalSymlinks() (Path, error) {
	resolved, err := filepath.EvalSymlinks(string(p))
	if err != nil {
		return Path(""), err
	}

	return Path(resolved), nil
}

func (p Path) MkdirAll(perm os.FileMode) error {
	return os.MkdirAll(string(p), perm)
}

func (p Path) RemoveAll() error {
	return os.RemoveAll(string(p))
}

func (p Path) Remove() error {
	return os.Remove(string(p))
}

func (p Path) Rename(to Path) error {
	return os.Rename(string(p), string(to))
}

func (p Path) WriteFile(data []byte, perm os.FileMode) error {
	return os.WriteFile(string(p), data, perm)
}

func (p Path) ReadFile() ([]byte, error) {
	return os.ReadFile(string(p))
}

func (p Path) ReadDir() ([]os.DirEntry, error) {
	return os.ReadDir(string(p))
}

func (p Path) Open() (*os.File, error) {
	return os.Open(string(p))
}

func (p Path) Lstat() (os.FileInfo, error) {
	return os.Lstat(string(p))
}

func (p Path) Readlink() (Path, error) {
	target, err := os.Readlink(string(p))
	if err != nil {
		return Path(""), err
	}

	return Path(target), nil
}

func (p Path) Symlink(target Path) error {
	return os.Symlink(string(target), string(p))
}

// Walk visits every entry below p, p itself included as ".". Entries are
// reported with their own metadata, symlinks are not followed. An entry
// whose metadata cannot be read is handed to f with its error, like any
// other walk error.
func (p Path) Walk(f filepath.WalkFunc) error {
	fsys := os.DirFS(string(p))
	return fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return f(path, nil, err)
		}

		info, err := entry.Info()
		if err != nil {
			return f(path, nil, err)
		}

		return f(path, info, nil)
	})
}

func (p Path) Exists() (bool, error) {
	_, err := os.Lstat(string(p))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

func (p Path) IsSymlink() (bool, error) {
	info, err := os.Lstat(string(p))
	if err != nil {
		return false, err
	}

	return info.Mode()&os.ModeSymlink != 0, nil
}

func (p Path) String() string {
	return string(p)
}
