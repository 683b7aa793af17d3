package tinker

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/RoshanAH/nix-tinker/filesystem"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// fixture lays out a fake store, home directory and scratch root inside a
// temporary directory.
type fixture struct {
	Root    filesystem.Path
	Store   filesystem.Path
	Scratch filesystem.Path
	Home    filesystem.Path
}

func newFixture(t *testing.T, store []string, links map[string]string) fixture {
	root := filesystem.MakePath(t.TempDir())
	f := fixture{
		Root:    root,
		Store:   root.Join("nix", "store"),
		Scratch: root.Join("tmp", "nix-tinker"),
		Home:    root.Join("home", "user"),
	}

	require.NoError(t, f.Store.MkdirAll(0755))
	require.NoError(t, f.Home.MkdirAll(0755))

	for _, name := range store {
		path := f.Store.Join(name)
		if strings.HasSuffix(name, "/") {
			require.NoError(t, path.MkdirAll(0755))
			continue
		}

		require.NoError(t, path.Parent().MkdirAll(0755))
		require.NoError(t, path.WriteFile([]byte("store:"+name), 0444))
	}

	for name, target := range links {
		f.link(t, name, target)
	}

	return f
}

// link creates a symlink at name below home. Targets starting with
// "store/" are resolved into the fake store, other relative targets into
// home, absolute targets are used as is.
func (f fixture) link(t *testing.T, name, target string) {
	path := f.Home.Join(name)
	require.NoError(t, path.Parent().MkdirAll(0755))
	require.NoError(t, path.Symlink(f.resolve(target)))
}

func (f fixture) resolve(target string) filesystem.Path {
	switch {
	case filepath.IsAbs(target):
		return filesystem.Path(target)
	case strings.HasPrefix(target, "store/"):
		return f.Store.Join(strings.TrimPrefix(target, "store/"))
	}

	return f.Home.Join(target)
}

func (f fixture) path(name string) string {
	return f.Home.Join(name).String()
}

func (f fixture) engine(ops filesystem.Ops) *Engine {
	e := New(f.Store, f.Scratch, ops)
	e.Log = zerolog.Nop()
	return e
}

func (f fixture) stateDirs(t *testing.T) []string {
	entries, err := f.Scratch.ReadDir()
	if os.IsNotExist(err) {
		return nil
	}

	require.NoError(t, err)

	var names []string
	for _, entry := range entries {
		names = append(names, entry.Name())
	}

	return names
}

func requireLink(t *testing.T, path string, target filesystem.Path) {
	got, err := os.Readlink(path)
	require.NoError(t, err, "Readlink %s", path)
	require.Equal(t, target.String(), got)
}

func requireContents(t *testing.T, path, contents string) {
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, contents, string(data))
}

// faultyOps behaves like the real filesystem except for the operations
// given an error.
type faultyOps struct {
	filesystem.OS

	CopyErr   error
	SwapErr   error
	RemoveErr error
}

func (o faultyOps) CopyTree(src, dst filesystem.Path) error {
	if o.CopyErr != nil {
		return o.CopyErr
	}

	return o.OS.CopyTree(src, dst)
}

func (o faultyOps) SwapLink(target, name filesystem.Path) error {
	if o.SwapErr != nil {
		return o.SwapErr
	}

	return o.OS.SwapLink(target, name)
}

func (o faultyOps) RemoveTree(path filesystem.Path) error {
	if o.RemoveErr != nil {
		return o.RemoveErr
	}

	return o.OS.RemoveTree(path)
}
