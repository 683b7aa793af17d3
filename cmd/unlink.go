package cmd

import (
	"github.com/RoshanAH/nix-tinker/selection"
	"github.com/spf13/cobra"
)

var (
	recursive   bool
	interactive bool
)

var unlinkCmd = &cobra.Command{
	Use:   "unlink PATH...",
	Short: "Unlinks files from the nix store",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e := engine()
		paths := selection.Selection{Paths: args, Recursive: recursive}.Expand()

		if interactive {
			var err error
			paths, err = interactiveFilter("Choose files to unlink", paths, func(path string) bool {
				_, err := e.Inspector.Classify(path)
				return err == nil
			})
			if err != nil {
				return err
			}
		}

		report := e.UnlinkAll(paths)
		return printReport(cmd, unlinkVerbs, report)
	},
}

func init() {
	unlinkCmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "select files in the specified directories recursively")
	unlinkCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "choose which of the selected files to unlink")
}
