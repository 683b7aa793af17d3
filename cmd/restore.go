package cmd

import (
	"github.com/RoshanAH/nix-tinker/selection"
	"github.com/spf13/cobra"
)

var restoreCmd = &cobra.Command{
	Use:   "restore PATH...",
	Short: "Restores unlinked files from the nix store",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e := engine()
		paths := selection.Selection{Paths: args, Recursive: recursive}.Expand()

		if interactive {
			var err error
			paths, err = interactiveFilter("Choose files to restore", paths, func(path string) bool {
				_, err := e.Inspector.Unlinked(path)
				return err == nil
			})
			if err != nil {
				return err
			}
		}

		report := e.RestoreSelected(paths)
		return printReport(cmd, restoreVerbs, report)
	},
}

var restoreAllCmd = &cobra.Command{
	Use:   "restore-all",
	Short: "Restores all unlinked files from the nix store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		report := engine().RestoreAll()
		return printReport(cmd, restoreVerbs, report)
	},
}

func init() {
	restoreCmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "select files in the specified directories recursively")
	restoreCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "choose which of the selected files to restore")
}
