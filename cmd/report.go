package cmd

import (
	"errors"
	"fmt"

	"github.com/RoshanAH/nix-tinker/tinker"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// verbs holds the wording of one command's output lines.
type verbs struct {
	Done    string
	Preview string
	Failed  string
}

var (
	unlinkVerbs  = verbs{Done: "unlinked", Preview: "would unlink", Failed: "unable to unlink"}
	restoreVerbs = verbs{Done: "restored", Preview: "would restore", Failed: "error restoring"}
)

// printReport writes one line per outcome. Classification mismatches go to
// stdout next to the successes, everything else to stderr. Failures only
// turn into an error with --strict.
func printReport(cmd *cobra.Command, v verbs, report tinker.Report) error {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	for _, o := range report {
		switch {
		case o.Err == nil && o.Preview:
			fmt.Fprintf(out, "%s %s -> %s\n", v.Preview, o.Path, o.Target)

		case o.Err == nil:
			fmt.Fprintf(out, "%s %s\n", v.Done, o.Path)

		default:
			w := errOut
			if tinker.KindOf(o.Err).Expected() {
				w = out
			}

			fmt.Fprintf(w, "%s %s: %s\n", v.Failed, o.Path, reason(o.Err))
		}
	}

	log.Info().
		Int("total", len(report)).
		Int("succeeded", report.Succeeded()).
		Int("failed", report.Failures()).
		Msg("Done")

	if strict && report.Failures() > 0 {
		return fmt.Errorf("%d of %d files failed", report.Failures(), len(report))
	}

	return nil
}

func reason(err error) string {
	var e *tinker.Error
	if errors.As(err, &e) {
		return e.Reason()
	}

	return err.Error()
}
