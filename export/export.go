// Package export writes decoded primary HDUs as images or raw payloads and
// loads possibly compressed FITS files from disk.
package export

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/noamichael/fitspreview/fits"
	_ "github.com/noamichael/fitspreview/internal/logging"
	"github.com/paulmatencio/s3c/gLog"
)

type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatRaw  Format = "raw"
	// FormatZstd is the whole HDU compressed, readable again by ReadFile.
	FormatZstd Format = "zst"
)

type Options struct {
	Format Format
	// Debayer demosaics BAYERPAT images into color.
	Debayer bool
	// Quality is the JPEG quality, 1-100. Zero means 95.
	Quality int
}

// FormatFromPath infers the output format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, nil
	case ".jpg", ".jpeg":
		return FormatJPEG, nil
	case ".raw", ".bin":
		return FormatRaw, nil
	case ".zst":
		return FormatZstd, nil
	}
	return "", fmt.Errorf("export: cannot infer format of %s", path)
}

// Fingerprint identifies a pixel payload.
func Fingerprint(payload []byte) uint64 {
	return xxhash.Sum64(payload)
}

// Image renders the HDU as a 16 bit grayscale image, or as 16 bit color when
// debayer is set and the header names a Bayer pattern.
func Image(hdu *fits.PrimaryHDU, debayer bool) (image.Image, error) {
	data, err := fits.NewData(hdu.Pixels, hdu.Geometry)
	if err != nil {
		return nil, err
	}

	if debayer {
		if pattern, ok := fits.BayerPattern(hdu.Metadata); ok {
			gLog.Trace.Printf("Debayering %s with pattern %s", hdu.Geometry, pattern)
			return fits.Debayer(data, pattern)
		}
		gLog.Warning.Printf("No BAYERPAT keyword, exporting grayscale")
	}
	return fits.Gray16Image(data), nil
}

// Write encodes hdu to w in the requested format.
func Write(w io.Writer, hdu *fits.PrimaryHDU, opts Options) error {
	switch opts.Format {
	case FormatRaw:
		_, err := w.Write(hdu.Pixels)
		return err

	case FormatZstd:
		enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return err
		}
		if _, err := enc.Write(hdu.Bytes); err != nil {
			enc.Close()
			return err
		}
		return enc.Close()

	case FormatPNG:
		img, err := Image(hdu, opts.Debayer)
		if err != nil {
			return err
		}
		return png.Encode(w, img)

	case FormatJPEG:
		img, err := Image(hdu, opts.Debayer)
		if err != nil {
			return err
		}
		quality := opts.Quality
		if quality == 0 {
			quality = 95
		}
		return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	}
	return fmt.Errorf("export: unsupported format %q", opts.Format)
}
