package cmd

import (
	"fmt"
	"os"

	"github.com/RoshanAH/nix-tinker/logging"
	"github.com/RoshanAH/nix-tinker/tinker"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	verbosity int
	dryRun    bool
	strict    bool
)

// newEngine builds the engine every command runs against.
var newEngine = func() *tinker.Engine {
	return tinker.Default()
}

var rootCmd = &cobra.Command{
	Use:   "nix-tinker",
	Short: "Temporarily edit files linked from the nix store",
	Long: `nix-tinker replaces symlinks into the nix store with links to private,
writable copies so they can be edited in place, and restores the original
links when you are done.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.SetupLogger(verbosity)
		log.Debug().Str("command", cmd.Name()).Msg("Command started")
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "preview files that will be changed")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "exit with a non-zero status if any file fails")

	rootCmd.AddCommand(unlinkCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(restoreAllCmd)
}

func engine() *tinker.Engine {
	e := newEngine()
	e.DryRun = dryRun
	return e
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
