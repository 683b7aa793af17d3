package tinker

import (
	"testing"

	"github.com/RoshanAH/nix-tinker/filesystem"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	f := newFixture(t,
		[]string{"abc-bashrc", "def-nvim/init.lua"},
		map[string]string{
			".bashrc":      "store/abc-bashrc",
			".config/nvim": "store/def-nvim",
			".profile":     ".bashrc",
			".vimrc":       "/etc/vimrc",
			".storeroot":   "store/",
		},
	)
	require.NoError(t, f.Home.Join(".plain").WriteFile([]byte("plain"), 0644))
	require.NoError(t, f.Home.Join(".inputrc").Symlink("../../nix/store/abc-bashrc"))
	require.NoError(t, f.Home.Join(".sibling").Symlink(filesystem.Path(f.Store.String()+"x/abc")))

	i := Inspector{StoreRoot: f.Store, ScratchRoot: f.Scratch}

	testCases := []struct {
		Name   string
		Path   string
		Kind   Kind
		Target filesystem.Path
	}{
		{Name: "store file", Path: ".bashrc", Target: f.Store.Join("abc-bashrc")},
		{Name: "store directory", Path: ".config/nvim", Target: f.Store.Join("def-nvim")},
		{Name: "link to store link", Path: ".profile", Kind: KindNotStoreManaged},
		{Name: "outside store", Path: ".vimrc", Kind: KindNotStoreManaged},
		{Name: "relative target", Path: ".inputrc", Kind: KindNotStoreManaged},
		{Name: "store root itself", Path: ".storeroot", Kind: KindNotStoreManaged},
		{Name: "store prefix sibling", Path: ".sibling", Kind: KindNotStoreManaged},
		{Name: "plain file", Path: ".plain", Kind: KindNotASymlink},
		{Name: "missing", Path: ".missing", Kind: KindNotExisting},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(t *testing.T) {
			target, err := i.Classify(f.path(testCase.Path))
			if testCase.Kind == KindUnknown {
				require.NoError(t, err)
				require.Equal(t, testCase.Target, target)
				return
			}

			require.Error(t, err)
			require.Equal(t, testCase.Kind, KindOf(err))
			require.True(t, testCase.Kind.Expected())
		})
	}
}

func TestUnlinked(t *testing.T) {
	f := newFixture(t,
		[]string{"abc-bashrc"},
		map[string]string{".bashrc": "store/abc-bashrc"},
	)
	require.NoError(t, f.Scratch.Join("0123456789abcdef").MkdirAll(0755))
	require.NoError(t, f.Scratch.Join("0123456789abcdef", ".profile").WriteFile(nil, 0644))
	f.link(t, ".profile", f.Scratch.Join("0123456789abcdef", ".profile").String())
	f.link(t, ".gone", f.Scratch.Join("fedcba9876543210", ".gone").String())

	i := Inspector{StoreRoot: f.Store, ScratchRoot: f.Scratch}

	abs, err := i.Unlinked(f.path(".profile"))
	require.NoError(t, err)
	require.Equal(t, f.Home.Join(".profile"), abs)

	_, err = i.Unlinked(f.path(".bashrc"))
	require.Equal(t, KindNotTinker, KindOf(err))

	_, err = i.Unlinked(f.path(".gone"))
	require.Equal(t, KindNotTinker, KindOf(err))

	_, err = i.Unlinked(f.path(".missing"))
	require.Equal(t, KindNotExisting, KindOf(err))

	_, err = i.Unlinked(f.Home.String())
	require.Equal(t, KindNotASymlink, KindOf(err))
}
