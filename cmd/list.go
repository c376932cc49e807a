package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/noamichael/fitspreview/browser"
	"github.com/paulmatencio/s3c/gLog"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "List a directory of FITS files with their resolution",
	Long: `List the files of dir, or of the configured default directory, decoding
each one and printing its resolution and payload fingerprint. Files that
fail to decode are reported as warnings.`,
	Args: cobra.MaximumNArgs(1),
	RunE: listDirectory,
}

func init() {
	RootCmd.AddCommand(listCmd)
}

func listDirectory(cmd *cobra.Command, args []string) error {
	b := browser.New(cfg, browser.WithConfigPath(cfgPath))
	if len(args) == 1 {
		if err := b.SetDirectory(args[0]); err != nil {
			return err
		}
	}
	if b.Directory() == "" {
		return errors.New("no directory given and no default_directory configured")
	}

	out := cmd.OutOrStdout()
	files := b.Files()
	for i := range files {
		if err := b.Select(i); err != nil {
			return err
		}
		p, err := b.Load()
		if err != nil {
			gLog.Warning.Printf("%v", err)
			fmt.Fprintf(out, "%-40s  unreadable\n", filepath.Base(files[i]))
			continue
		}
		fmt.Fprintf(out, "%-40s  %-24s  %016x\n", filepath.Base(p.Path), p.Resolution, p.Fingerprint)
	}
	return nil
}
