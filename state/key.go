package state

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// keyBytes is how much of the digest ends up in a key. Eight bytes keep
// directory names short; collisions are caught by comparing the path
// stored in each record.
const keyBytes = 8

// Key names the state directory of one symlink.
type Key string

// KeyOf derives the key for the absolute symlink path abs. It is a pure
// function of the path's bytes.
func KeyOf(abs string) Key {
	sum := blake3.Sum256([]byte(abs))
	return Key(hex.EncodeToString(sum[:keyBytes]))
}

// Valid reports whether k has the shape of a key produced by KeyOf.
func (k Key) Valid() bool {
	if len(k) != 2*keyBytes {
		return false
	}

	for _, c := range k {
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f') {
			return false
		}
	}

	return true
}

func (k Key) String() string {
	return string(k)
}
