// Package browser holds the state of the preview tool: the directory being
// browsed, the selected file and the decoded preview of that file.
package browser

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/noamichael/fitspreview/config"
	"github.com/noamichael/fitspreview/export"
	"github.com/noamichael/fitspreview/fits"
	_ "github.com/noamichael/fitspreview/internal/logging"
	"github.com/paulmatencio/s3c/gLog"
)

// Browser is not safe for concurrent use.
type Browser struct {
	cfg        config.Config
	configPath string

	dir      string
	files    []string
	selected int

	preview *Preview
}

type Option func(*Browser)

// WithConfigPath sets where ChooseDirectory persists the configuration.
func WithConfigPath(path string) Option {
	return func(b *Browser) {
		b.configPath = path
	}
}

// New creates a browser and opens cfg.DefaultDirectory when it is set.
func New(cfg config.Config, opts ...Option) *Browser {
	b := &Browser{cfg: cfg, selected: -1}
	for _, opt := range opts {
		opt(b)
	}

	if cfg.DefaultDirectory != "" {
		if err := b.SetDirectory(cfg.DefaultDirectory); err != nil {
			gLog.Warning.Printf("Default directory %s: %v", cfg.DefaultDirectory, err)
		}
	}
	return b
}

// Config returns the configuration the browser currently holds.
func (b *Browser) Config() config.Config {
	return b.cfg
}

// Directory is the directory being browsed, empty before one is set.
func (b *Browser) Directory() string {
	return b.dir
}

// SetDirectory replaces the listing with the regular files of dir, sorted by
// path. The selection is cleared.
func (b *Browser) SetDirectory(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("browser: %w", err)
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)

	b.dir = dir
	b.files = files
	b.selected = -1
	b.preview = nil
	gLog.Info.Printf("Directory %s: %d files", dir, len(files))
	return nil
}

// ChooseDirectory opens dir and records it as the default directory.
func (b *Browser) ChooseDirectory(dir string) error {
	if err := b.SetDirectory(dir); err != nil {
		return err
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	b.cfg.DefaultDirectory = abs

	if b.configPath == "" {
		return nil
	}
	gLog.Info.Printf("Setting default directory to %s in %s", abs, b.configPath)
	return config.Save(b.configPath, b.cfg)
}

// Files lists the paths of the current directory.
func (b *Browser) Files() []string {
	return append([]string(nil), b.files...)
}

// Selected returns the selected path, if any.
func (b *Browser) Selected() (string, bool) {
	if b.selected < 0 {
		return "", false
	}
	return b.files[b.selected], true
}

// Select selects the i-th file.
func (b *Browser) Select(i int) error {
	if i < 0 || i >= len(b.files) {
		return fmt.Errorf("browser: index %d out of range [0, %d)", i, len(b.files))
	}
	b.selected = i
	return nil
}

// Next moves the selection down one file, stopping at the last one. With
// nothing selected it selects the first file.
func (b *Browser) Next() {
	b.move(1)
}

// Prev moves the selection up one file, stopping at the first one. With
// nothing selected it selects the first file.
func (b *Browser) Prev() {
	b.move(-1)
}

func (b *Browser) move(step int) {
	if len(b.files) == 0 {
		return
	}
	if b.selected < 0 {
		b.selected = 0
		return
	}
	next := b.selected + step
	if next >= 0 && next < len(b.files) {
		b.selected = next
	}
}

// Load decodes the selected file. The preview is kept and returned again
// until the selection changes.
func (b *Browser) Load() (*Preview, error) {
	path, ok := b.Selected()
	if !ok {
		return nil, fmt.Errorf("browser: no file selected")
	}
	if b.preview != nil && b.preview.Path == path {
		return b.preview, nil
	}

	hdu, err := export.DecodeFile(path)
	if err != nil {
		return nil, err
	}
	p, err := NewPreview(path, hdu)
	if err != nil {
		return nil, err
	}
	b.preview = p
	return p, nil
}

// Preview is what the preview pane shows for one file.
type Preview struct {
	Path        string
	Metadata    map[string]string
	Geometry    fits.Geometry
	Resolution  string
	Fingerprint uint64
	// RGB holds three identical bytes per pixel, row-major.
	RGB []byte
}

// NewPreview renders a decoded HDU for display.
func NewPreview(path string, hdu *fits.PrimaryHDU) (*Preview, error) {
	data, err := fits.NewData(hdu.Pixels, hdu.Geometry)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	resolution, err := ResolutionLabel(hdu.Metadata)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	rgb := make([]byte, 0, 3*data.Width()*data.Height())
	for row := 0; row < data.Height(); row++ {
		for col := 0; col < data.Width(); col++ {
			v := uint8(data.Gray16(row, col) >> 8)
			rgb = append(rgb, v, v, v)
		}
	}

	return &Preview{
		Path:        path,
		Metadata:    hdu.Metadata,
		Geometry:    hdu.Geometry,
		Resolution:  resolution,
		Fingerprint: export.Fingerprint(hdu.Pixels),
		RGB:         rgb,
	}, nil
}

// ResolutionLabel formats NAXIS1 x NAXIS2 for the metadata panel.
func ResolutionLabel(md map[string]string) (string, error) {
	x, ok := md["NAXIS1"]
	if !ok {
		return "", &fits.MissingKeywordError{Key: "NAXIS1"}
	}
	y, ok := md["NAXIS2"]
	if !ok {
		return "", &fits.MissingKeywordError{Key: "NAXIS2"}
	}
	return fmt.Sprintf("Resolution: %sx%s", fits.KeywordValue(x), fits.KeywordValue(y)), nil
}
