package tinker

import (
	"github.com/RoshanAH/nix-tinker/filesystem"
	"github.com/RoshanAH/nix-tinker/state"
)

// Unlink replaces the store symlink at path with a symlink to a private,
// writable copy of its target. On failure the symlink is left pointing at
// the store and no state directory remains.
func (e *Engine) Unlink(path string) error {
	_, err := e.unlink(path)
	return err
}

// UnlinkAll unlinks every path independently, in order.
func (e *Engine) UnlinkAll(paths []string) Report {
	report := make(Report, 0, len(paths))
	for _, path := range paths {
		o, err := e.unlink(path)
		o.Err = err
		report = append(report, o)
	}

	return report
}

func (e *Engine) unlink(path string) (Outcome, error) {
	o := Outcome{Path: path, Preview: e.DryRun}

	target, err := e.Inspector.Classify(path)
	if err != nil {
		e.Log.Debug().Str("path", path).Stringer("kind", KindOf(err)).Msg("Skipping path")
		return o, err
	}

	abs, err := filesystem.Abs(path)
	if err != nil {
		return o, newError(path, KindIOFailure, err)
	}

	o.Path = abs.String()
	h := e.Store.Locate(abs.String())
	dst := h.Copy(abs.Basename())
	o.Target = dst.String()

	if e.DryRun {
		return o, nil
	}

	log := e.Log.With().Str("path", abs.String()).Str("key", h.Key.String()).Logger()

	record := state.Record{SymlinkPath: abs.String(), StoreTarget: target.String()}
	if err := e.Store.Write(record, h); err != nil {
		return o, storeError(o.Path, err)
	}

	// The state directory is only kept once the symlink has been swapped.
	committed := false
	defer func() {
		if committed {
			return
		}

		if err := e.Store.Destroy(h); err != nil {
			log.Warn().Err(err).Msg("Failed to remove state directory after aborted unlink")
		}
	}()

	resolved, err := target.EvalSymlinks()
	if err != nil {
		return o, newError(o.Path, KindIOFailure, err)
	}

	if err := e.Ops.CopyTree(resolved, dst); err != nil {
		return o, newError(o.Path, KindIOFailure, err)
	}

	if err := e.Ops.SwapLink(dst, abs); err != nil {
		return o, newError(o.Path, KindIOFailure, err)
	}

	committed = true
	log.Debug().Str("target", target.String()).Str("copy", dst.String()).Msg("Unlinked")
	return o, nil
}
