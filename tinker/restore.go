package tinker

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/RoshanAH/nix-tinker/filesystem"
	"github.com/RoshanAH/nix-tinker/state"
)

// Restore points the unlinked symlink at path back at its original store
// target and discards the private copy. Nothing is modified unless the
// recorded state checks out.
func (e *Engine) Restore(path string) error {
	_, err := e.restore(path)
	return err
}

// RestoreSelected restores every path independently, in order.
func (e *Engine) RestoreSelected(paths []string) Report {
	report := make(Report, 0, len(paths))
	for _, path := range paths {
		o, err := e.restore(path)
		o.Err = err
		report = append(report, o)
	}

	return report
}

func (e *Engine) restore(path string) (Outcome, error) {
	o := Outcome{Path: path, Preview: e.DryRun}

	abs, err := e.Inspector.Unlinked(path)
	if err != nil {
		e.Log.Debug().Str("path", path).Stringer("kind", KindOf(err)).Msg("Skipping path")
		return o, err
	}

	o.Path = abs.String()

	h, record, err := e.Store.Load(abs.String())
	if err != nil {
		return o, storeError(o.Path, err)
	}

	o.Target = record.StoreTarget
	if err := e.checkTarget(h, record); err != nil {
		return o, err
	}

	if e.DryRun {
		return o, nil
	}

	return o, e.swapBack(h, record)
}

// checkTarget rejects records whose store target has been edited to point
// outside the store.
func (e *Engine) checkTarget(h state.Handle, record state.Record) error {
	target := filesystem.Path(filepath.Clean(record.StoreTarget))
	if target != e.Inspector.StoreRoot && target.Within(e.Inspector.StoreRoot) {
		return nil
	}

	err := fmt.Errorf("%w: %s records %s outside %s", state.ErrCorrupt, h.Manifest(), target, e.Inspector.StoreRoot)
	return newError(record.SymlinkPath, KindCorruptRecord, err)
}

// swapBack re-points the recorded symlink at its store target, then
// removes the state directory. A failed swap keeps the state directory so
// the restore can be retried.
func (e *Engine) swapBack(h state.Handle, record state.Record) error {
	link := filesystem.Path(record.SymlinkPath)

	if err := e.Ops.SwapLink(filesystem.Path(record.StoreTarget), link); err != nil {
		return newError(record.SymlinkPath, KindIOFailure, err)
	}

	if err := e.Store.Destroy(h); err != nil {
		return storeError(record.SymlinkPath, err)
	}

	e.Log.Debug().
		Str("path", record.SymlinkPath).
		Str("target", record.StoreTarget).
		Str("key", h.Key.String()).
		Msg("Restored")
	return nil
}

// RestoreAll restores every symlink that has a state directory. State
// directories whose symlink was since deleted or pointed elsewhere are
// removed without being reported, as are empty ones left by an interrupted
// unlink. Any other directory that cannot be restored is reported and
// kept, since its copy may still hold edits.
func (e *Engine) RestoreAll() Report {
	var report Report

	for _, h := range e.Store.Enumerate() {
		log := e.Log.With().Str("key", h.Key.String()).Logger()
		keep := func(err error) {
			log.Warn().Err(err).Msg("Keeping unrestorable state directory")
			report = append(report, Outcome{Path: h.Dir.String(), Err: storeError(h.Dir.String(), err), Preview: e.DryRun})
		}

		record, err := e.Store.Read(h)
		if errors.Is(err, state.ErrNotFound) && e.Store.Abandoned(h) {
			e.purge(h, "interrupted unlink")
			continue
		}

		if err != nil {
			keep(err)
			continue
		}

		if state.KeyOf(record.SymlinkPath) != h.Key {
			keep(fmt.Errorf("%w: %s records %s, filed under another key", state.ErrCorrupt, h.Manifest(), record.SymlinkPath))
			continue
		}

		if err := e.checkTarget(h, record); err != nil {
			log.Warn().Err(err).Msg("Keeping unrestorable state directory")
			report = append(report, Outcome{Path: record.SymlinkPath, Err: err, Preview: e.DryRun})
			continue
		}

		if reason := e.orphaned(h, record); reason != "" {
			e.purge(h, reason)
			continue
		}

		o := Outcome{Path: record.SymlinkPath, Target: record.StoreTarget, Preview: e.DryRun}
		if !e.DryRun {
			o.Err = e.swapBack(h, record)
		}

		report = append(report, o)
	}

	return report
}

// orphaned explains why the symlink recorded in h no longer belongs to it,
// or returns "" if it still resolves into h.
func (e *Engine) orphaned(h state.Handle, record state.Record) string {
	link := filesystem.Path(record.SymlinkPath)

	isLink, err := link.IsSymlink()
	if err != nil {
		return "symlink missing"
	}

	if !isLink {
		return "not a symlink any more"
	}

	resolved, err := link.EvalSymlinks()
	if err != nil {
		return "symlink does not resolve"
	}

	if !resolved.Within(h.Dir.Canonical()) {
		return "symlink points elsewhere"
	}

	return ""
}

func (e *Engine) purge(h state.Handle, reason string) {
	log := e.Log.With().Str("key", h.Key.String()).Str("reason", reason).Logger()

	if e.DryRun {
		log.Info().Msg("Would remove orphaned state directory")
		return
	}

	if err := e.Store.Destroy(h); err != nil {
		log.Warn().Err(err).Msg("Failed to remove orphaned state directory")
		return
	}

	log.Debug().Msg("Removed orphaned state directory")
}
