package state

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/RoshanAH/nix-tinker/filesystem"
)

var (
	ErrNotFound = errors.New("state: manifest not found")
	ErrCorrupt  = errors.New("state: corrupt manifest")
	ErrEncode   = errors.New("state: cannot encode manifest")
	ErrIO       = errors.New("state: io failure")
)

// ManifestName is the name of the record file inside a state directory.
const ManifestName = "link.toml"

// pendingManifest is where Write stages the manifest before renaming it
// into place.
const pendingManifest = "." + ManifestName

// Handle addresses a single state directory. Creating one never touches
// the disk.
type Handle struct {
	Key Key
	Dir filesystem.Path
}

func (h Handle) Manifest() filesystem.Path {
	return h.Dir.Join(ManifestName)
}

// Copy is where the private copy of the store content for a symlink
// called name is kept.
func (h Handle) Copy(name string) filesystem.Path {
	return h.Dir.Join(name)
}

// Store owns the scratch root and every state directory below it. The root
// is created on the first Write and never removed.
type Store struct {
	Root filesystem.Path
	Ops  filesystem.Ops
}

func (s Store) Locate(abs string) Handle {
	key := KeyOf(abs)
	return Handle{Key: key, Dir: s.Root.Join(string(key))}
}

// Write replaces whatever is stored under h with a fresh directory
// holding only the manifest for r. If any step fails the directory is
// removed again.
func (s Store) Write(r Record, h Handle) error {
	data, err := encodeRecord(r)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	if err := s.Ops.RemoveTree(h.Dir); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}

	if err := s.write(data, h); err != nil {
		s.Ops.RemoveTree(h.Dir)
		return fmt.Errorf("%w: %v", ErrIO, err)
	}

	return nil
}

func (s Store) write(data []byte, h Handle) error {
	if err := h.Dir.MkdirAll(0755); err != nil {
		return err
	}

	tmp := h.Dir.Join(pendingManifest)
	if err := tmp.WriteFile(data, 0644); err != nil {
		return err
	}

	return tmp.Rename(h.Manifest())
}

func (s Store) Read(h Handle) (Record, error) {
	data, err := h.Manifest().ReadFile()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Record{}, fmt.Errorf("%w: %s", ErrNotFound, h.Manifest())
		}

		return Record{}, fmt.Errorf("%w: %v", ErrIO, err)
	}

	r, err := decodeRecord(data)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %s: %v", ErrCorrupt, h.Manifest(), err)
	}

	return r, nil
}

// Load reads the record for the symlink at abs and checks that it really
// belongs to abs. A record naming another path means two paths share a
// key, which is reported as corruption.
func (s Store) Load(abs string) (Handle, Record, error) {
	h := s.Locate(abs)

	r, err := s.Read(h)
	if err != nil {
		return h, Record{}, err
	}

	if r.SymlinkPath != abs {
		return h, Record{}, fmt.Errorf("%w: %s records %s, not %s", ErrCorrupt, h.Manifest(), r.SymlinkPath, abs)
	}

	return h, r, nil
}

// Abandoned reports whether h holds nothing beyond what an interrupted
// Write leaves behind, so that removing it cannot lose a copy.
func (s Store) Abandoned(h Handle) bool {
	entries, err := h.Dir.ReadDir()
	if err != nil {
		return false
	}

	for _, entry := range entries {
		if entry.Name() != pendingManifest {
			return false
		}
	}

	return true
}

func (s Store) Destroy(h Handle) error {
	if err := s.Ops.RemoveTree(h.Dir); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}

	return nil
}

// Enumerate lists the state directories currently present. Entries that
// are not directories or not named like a key are skipped, and a missing
// or unreadable root simply yields nothing.
func (s Store) Enumerate() []Handle {
	// ReadDir hands back whatever it managed to read before failing.
	entries, _ := s.Root.ReadDir()

	var handles []Handle
	for _, entry := range entries {
		key := Key(entry.Name())
		if !entry.IsDir() || !key.Valid() {
			continue
		}

		handles = append(handles, Handle{Key: key, Dir: s.Root.Join(entry.Name())})
	}

	return handles
}
