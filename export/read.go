package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/noamichael/fitspreview/fits"
	"github.com/paulmatencio/s3c/gLog"
)

// MaxFileSize bounds the bytes ReadFile keeps in memory, after
// decompression.
const MaxFileSize = 1 << 32

var ErrTooLarge = errors.New("export: file too large")

// ReadFile returns the contents of a FITS file, decompressing it first when
// the name ends in .zst or .gz. Contents above MaxFileSize fail with
// ErrTooLarge.
func ReadFile(path string) ([]byte, error) {
	return readFile(path, MaxFileSize)
}

func readFile(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst":
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		r = dec
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("export: %s: %w", path, err)
		}
		defer zr.Close()
		r = zr
	}

	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("export: reading %s: %w", path, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: %s holds more than %d bytes", ErrTooLarge, path, limit)
	}
	gLog.Trace.Printf("Read %s: %d bytes, %d blocks", path, len(data), fits.BlockCount(uint64(len(data))))
	return data, nil
}

// DecodeFile reads path and decodes its primary HDU.
func DecodeFile(path string) (*fits.PrimaryHDU, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	hdu, err := fits.DecodePrimaryHDU(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	gLog.Info.Printf("Decoded %s: %s, %d header blocks", path, hdu.Geometry, hdu.HeaderBlocks)
	return hdu, nil
}
