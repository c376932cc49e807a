package cmd

import (
	"fmt"

	"github.com/noamichael/fitspreview/browser"
	"github.com/spf13/cobra"
)

var setdirCmd = &cobra.Command{
	Use:   "setdir <dir>",
	Short: "Set the default directory opened by list",
	Args:  cobra.ExactArgs(1),
	RunE:  setDirectory,
}

func init() {
	RootCmd.AddCommand(setdirCmd)
}

func setDirectory(cmd *cobra.Command, args []string) error {
	b := browser.New(cfg, browser.WithConfigPath(cfgPath))
	if err := b.ChooseDirectory(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "default directory %s saved to %s\n", b.Config().DefaultDirectory, cfgPath)
	return nil
}
