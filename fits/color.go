package fits

import (
	"fmt"
	"image"
	"image/color"
	"strings"
)

// BayerPattern returns the color filter layout of a one shot color camera,
// read from BAYERPAT.
func BayerPattern(md map[string]string) (string, bool) {
	pattern, ok := KeywordString(md, "BAYERPAT")
	if !ok || pattern == "" {
		return "", false
	}
	return strings.ToUpper(pattern), true
}

// Gray16Image copies the display values of d into a 16 bit grayscale image.
func Gray16Image(d Data) *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, d.Width(), d.Height()))
	for row := 0; row < d.Height(); row++ {
		for col := 0; col < d.Width(); col++ {
			img.SetGray16(col, row, color.Gray16{Y: d.Gray16(row, col)})
		}
	}
	return img
}

// Gray8Image keeps the high byte of each display value.
func Gray8Image(d Data) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, d.Width(), d.Height()))
	for row := 0; row < d.Height(); row++ {
		for col := 0; col < d.Width(); col++ {
			img.SetGray(col, row, color.Gray{Y: uint8(d.Gray16(row, col) >> 8)})
		}
	}
	return img
}

const (
	red = iota
	green
	blue
)

func bayerChannels(pattern string) ([4]int, error) {
	var out [4]int
	if len(pattern) != 4 {
		return out, fmt.Errorf("fits: unsupported Bayer pattern %q", pattern)
	}
	for i, c := range pattern {
		switch c {
		case 'R':
			out[i] = red
		case 'G':
			out[i] = green
		case 'B':
			out[i] = blue
		default:
			return out, fmt.Errorf("fits: unsupported Bayer pattern %q", pattern)
		}
	}
	return out, nil
}

// Debayer demosaics a raw color filter array with bilinear interpolation.
// pattern lists the filters of the top-left 2x2 cell, row by row, e.g.
// RGGB.
func Debayer(d Data, pattern string) (*image.RGBA64, error) {
	channels, err := bayerChannels(strings.ToUpper(pattern))
	if err != nil {
		return nil, err
	}

	width, height := d.Width(), d.Height()
	filter := func(row, col int) int {
		return channels[(row%2)*2+col%2]
	}

	img := image.NewRGBA64(image.Rect(0, 0, width, height))
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			var sum [3]uint32
			var count [3]uint32

			own := filter(row, col)
			sum[own], count[own] = uint32(d.Gray16(row, col)), 1

			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					y, x := row+dy, col+dx
					if (dx == 0 && dy == 0) || y < 0 || x < 0 || y >= height || x >= width {
						continue
					}
					c := filter(y, x)
					if c == own {
						continue
					}
					sum[c] += uint32(d.Gray16(y, x))
					count[c]++
				}
			}

			var rgb [3]uint16
			for c := range rgb {
				if count[c] > 0 {
					rgb[c] = uint16(sum[c] / count[c])
				}
			}
			img.SetRGBA64(col, row, color.RGBA64{R: rgb[red], G: rgb[green], B: rgb[blue], A: 0xffff})
		}
	}
	return img, nil
}
