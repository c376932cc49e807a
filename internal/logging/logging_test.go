package logging_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/noamichael/fitspreview/browser"
	"github.com/noamichael/fitspreview/config"
	"github.com/noamichael/fitspreview/export"
	"github.com/noamichael/fitspreview/fits"
)

// No TestMain here: the loggers are only what the imported packages set up.
func TestLibraryWithoutLogSetup(t *testing.T) {
	dir := t.TempDir()
	buf, err := fits.EncodeImage16(2, 2, []uint16{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("EncodeImage16: %v", err)
	}
	path := filepath.Join(dir, "light.fits")
	if err := os.WriteFile(path, buf, 0644); err != nil {
		t.Fatal(err)
	}

	hdu, err := export.DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	if _, err := export.Image(hdu, true); err != nil {
		t.Fatalf("Image: %v", err)
	}

	b := browser.New(config.Config{DefaultDirectory: filepath.Join(dir, "missing")})
	if err := b.SetDirectory(dir); err != nil {
		t.Fatalf("SetDirectory: %v", err)
	}
	b.Next()
	if _, err := b.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
}
