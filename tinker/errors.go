package tinker

import (
	"errors"
	"fmt"

	"github.com/RoshanAH/nix-tinker/state"
)

// Kind classifies why a path could not be unlinked or restored.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotExisting
	KindNotASymlink
	KindNotStoreManaged
	KindNotTinker
	KindNotFound
	KindCorruptRecord
	KindSerializationFailure
	KindIOFailure
)

func (k Kind) String() string {
	switch k {
	case KindNotExisting:
		return "not existing"
	case KindNotASymlink:
		return "not a symlink"
	case KindNotStoreManaged:
		return "not store managed"
	case KindNotTinker:
		return "not tinker"
	case KindNotFound:
		return "manifest not found"
	case KindCorruptRecord:
		return "corrupt record"
	case KindSerializationFailure:
		return "serialization failure"
	case KindIOFailure:
		return "io failure"
	}

	return "unknown"
}

// Expected reports whether k is a classification mismatch. Those are an
// ordinary answer about a path rather than a failure of the tool.
func (k Kind) Expected() bool {
	switch k {
	case KindNotExisting, KindNotASymlink, KindNotStoreManaged, KindNotTinker:
		return true
	}

	return false
}

// Error is the error returned for a single path by the engines.
type Error struct {
	Path string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Reason())
}

// Reason describes the problem without naming the path.
func (e *Error) Reason() string {
	switch e.Kind {
	case KindNotExisting:
		return "file does not exist"
	case KindNotASymlink:
		return "file is not a symlink"
	case KindNotStoreManaged:
		return "symlink does not point to nix store"
	case KindNotTinker:
		return "file is not managed by nix tinker"
	}

	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}

	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches other *Error values by kind, so errors.Is(err,
// &Error{Kind: KindNotTinker}) works regardless of path.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return t.Kind == e.Kind
	}

	return false
}

// KindOf returns the kind carried by err, or KindUnknown if err is not an
// engine error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return KindUnknown
}

func newError(path string, kind Kind, err error) *Error {
	return &Error{Path: path, Kind: kind, Err: err}
}

// storeError translates a state package failure into an engine error.
func storeError(path string, err error) *Error {
	switch {
	case errors.Is(err, state.ErrNotFound):
		return newError(path, KindNotFound, err)
	case errors.Is(err, state.ErrCorrupt):
		return newError(path, KindCorruptRecord, err)
	case errors.Is(err, state.ErrEncode):
		return newError(path, KindSerializationFailure, err)
	}

	return newError(path, KindIOFailure, err)
}
