package state

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Record is the manifest kept in every state directory. It remembers where
// the unlinked symlink lives and what it pointed at inside the store.
type Record struct {
	SymlinkPath string `toml:"symlink_path"`
	StoreTarget string `toml:"nix_store_file"`
}

func (r Record) Validate() error {
	if r.SymlinkPath == "" || !filepath.IsAbs(r.SymlinkPath) {
		return fmt.Errorf("symlink_path %q is not an absolute path", r.SymlinkPath)
	}

	if r.StoreTarget == "" || !filepath.IsAbs(r.StoreTarget) {
		return fmt.Errorf("nix_store_file %q is not an absolute path", r.StoreTarget)
	}

	return nil
}

func encodeRecord(r Record) ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	return toml.Marshal(r)
}

func decodeRecord(data []byte) (Record, error) {
	var r Record

	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&r); err != nil {
		return Record{}, err
	}

	if err := r.Validate(); err != nil {
		return Record{}, err
	}

	return r, nil
}
