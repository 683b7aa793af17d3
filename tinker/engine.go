// Package tinker moves symlinks between the Nix store and private,
// editable copies kept under a scratch root, and back again.
//
// A managed symlink is in one of two states. It is store linked when it
// points into the store and no state is recorded for it. It is scratch
// linked after Unlink: its target is a copy inside a state directory that
// also holds a manifest naming the original store target. Restore moves
// it back and removes the state directory.
package tinker

import (
	"github.com/RoshanAH/nix-tinker/filesystem"
	"github.com/RoshanAH/nix-tinker/logging"
	"github.com/RoshanAH/nix-tinker/state"
	"github.com/rs/zerolog"
)

const (
	DefaultStoreRoot   = "/nix/store"
	DefaultScratchRoot = "/tmp/nix-tinker"
)

// Engine performs unlink and restore transitions, one path at a time.
type Engine struct {
	Inspector Inspector
	Store     state.Store
	Ops       filesystem.Ops

	// DryRun validates every path as usual but leaves the filesystem
	// untouched, returning preview outcomes instead.
	DryRun bool

	Log zerolog.Logger
}

// New builds an Engine over the given store and scratch roots.
func New(storeRoot, scratchRoot filesystem.Path, ops filesystem.Ops) *Engine {
	return &Engine{
		Inspector: Inspector{StoreRoot: storeRoot, ScratchRoot: scratchRoot},
		Store:     state.Store{Root: scratchRoot, Ops: ops},
		Ops:       ops,
		Log:       logging.GetLogger("tinker"),
	}
}

// Default builds an Engine for the real store and scratch root.
func Default() *Engine {
	return New(DefaultStoreRoot, DefaultScratchRoot, filesystem.OS{})
}

// Outcome is the result of one transition.
type Outcome struct {
	Path string

	// Target is where the symlink points after the transition, or would
	// point in a dry run.
	Target string

	Err     error
	Preview bool
}

// Report lists outcomes in the order the paths were processed.
type Report []Outcome

func (r Report) Failures() int {
	n := 0
	for _, o := range r {
		if o.Err != nil {
			n++
		}
	}

	return n
}

// Unexpected counts failures that are not classification mismatches.
func (r Report) Unexpected() int {
	n := 0
	for _, o := range r {
		if o.Err != nil && !KindOf(o.Err).Expected() {
			n++
		}
	}

	return n
}

func (r Report) Succeeded() int {
	return len(r) - r.Failures()
}
