package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/noamichael/fitspreview/export"
	"github.com/paulmatencio/s3c/gLog"
	"github.com/spf13/cobra"
)

var (
	exportOutput  string
	exportFormat  string
	exportDebayer bool
	exportQuality int

	exportCmd = &cobra.Command{
		Use:   "export <file>",
		Short: "Export the image of a FITS file",
		Long: `Export the primary data array as a 16 bit grayscale PNG, an 8 bit JPEG,
the raw big-endian payload or the zstd compressed payload.`,
		Args: cobra.ExactArgs(1),
		RunE: exportImage,
	}
)

func init() {
	RootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file; default input name with .png")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "png, jpeg, raw or zst; default from the output extension")
	exportCmd.Flags().BoolVarP(&exportDebayer, "debayer", "d", false, "demosaic images that carry a BAYERPAT keyword")
	exportCmd.Flags().IntVarP(&exportQuality, "quality", "q", 95, "JPEG quality")
}

func exportImage(cmd *cobra.Command, args []string) error {
	input := args[0]
	output := exportOutput
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".png"
	}

	format := export.Format(exportFormat)
	if format == "" {
		f, err := export.FormatFromPath(output)
		if err != nil {
			return err
		}
		format = f
	}

	hdu, err := export.DecodeFile(input)
	if err != nil {
		return err
	}

	out, err := os.Create(output)
	if err != nil {
		return err
	}
	defer out.Close()

	opts := export.Options{Format: format, Debayer: exportDebayer, Quality: exportQuality}
	if err := export.Write(out, hdu, opts); err != nil {
		return err
	}
	gLog.Info.Printf("Exported %s to %s as %s", input, output, format)
	return out.Close()
}
