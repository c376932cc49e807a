package cmd

import (
	"fmt"
	"sort"

	"github.com/noamichael/fitspreview/export"
	"github.com/spf13/cobra"
)

var headerCmd = &cobra.Command{
	Use:   "header <file>",
	Short: "Print the primary header and geometry of a FITS file",
	Args:  cobra.ExactArgs(1),
	RunE:  printHeader,
}

func init() {
	RootCmd.AddCommand(headerCmd)
}

func printHeader(cmd *cobra.Command, args []string) error {
	hdu, err := export.DecodeFile(args[0])
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(hdu.Metadata))
	for k := range hdu.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := cmd.OutOrStdout()
	for _, k := range keys {
		fmt.Fprintf(out, "%-8s = %s\n", k, hdu.Metadata[k])
	}

	payload, _ := hdu.Geometry.PayloadBytes()
	fmt.Fprintf(out, "\nGeometry: %s, %d bytes per element\n", hdu.Geometry, hdu.Geometry.BytesPerElement)
	fmt.Fprintf(out, "Header blocks: %d, data blocks: %d, payload: %d bytes\n",
		hdu.HeaderBlocks, hdu.Geometry.DataBlocks(), payload)
	return nil
}
