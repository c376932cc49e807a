package fits

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"strconv"
	"strings"
)

// Geometry describes a two dimensional primary data array.
type Geometry struct {
	Width           uint32
	Height          uint32
	BytesPerElement uint32
	Bitpix          int
}

// PayloadBytes returns width*height*bytes per element, and false if the
// product does not fit in 64 bits.
func (g Geometry) PayloadBytes() (uint64, bool) {
	hi, pixels := bits.Mul64(uint64(g.Width), uint64(g.Height))
	if hi != 0 {
		return 0, false
	}
	hi, n := bits.Mul64(pixels, uint64(g.BytesPerElement))
	return n, hi == 0
}

// DataBlocks is the number of 2880 byte blocks reserved for the payload.
func (g Geometry) DataBlocks() uint64 {
	n, ok := g.PayloadBytes()
	if !ok {
		return 0
	}
	return BlockCount(n)
}

func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d BITPIX=%d", g.Width, g.Height, g.Bitpix)
}

// KeywordValue returns the value part of a raw header value, that is the
// text before the first '/' with surrounding spaces removed.
func KeywordValue(raw string) string {
	if i := strings.IndexByte(raw, '/'); i >= 0 {
		raw = raw[:i]
	}
	return strings.TrimSpace(raw)
}

// KeywordInt parses the value of key as a base 10 integer.
func KeywordInt(md map[string]string, key string) (int64, error) {
	raw, ok := md[key]
	if !ok {
		return 0, &MissingKeywordError{Key: key}
	}

	n, err := strconv.ParseInt(KeywordValue(raw), 10, 64)
	if err != nil {
		return 0, &MalformedValueError{Key: key, Raw: raw, Err: err}
	}
	return n, nil
}

// KeywordFloat parses the value of key as a floating point number. FITS
// allows a 'D' exponent, which is accepted as well.
func KeywordFloat(md map[string]string, key string) (float64, error) {
	raw, ok := md[key]
	if !ok {
		return 0, &MissingKeywordError{Key: key}
	}

	value := strings.Map(func(r rune) rune {
		if r == 'D' || r == 'd' {
			return 'E'
		}
		return r
	}, KeywordValue(raw))

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, &MalformedValueError{Key: key, Raw: raw, Err: err}
	}
	return f, nil
}

// KeywordString returns the value of a character string keyword without
// its quotes and trailing blanks. A doubled quote inside the string stands
// for one quote.
func KeywordString(md map[string]string, key string) (string, bool) {
	raw, ok := md[key]
	if !ok {
		return "", false
	}
	value := KeywordValue(raw)
	value = strings.TrimPrefix(value, "'")
	value = strings.TrimSuffix(value, "'")
	value = strings.ReplaceAll(value, "''", "'")
	return strings.TrimSpace(value), true
}

// ResolveGeometry reads BITPIX, NAXIS1 and NAXIS2 from md.
func ResolveGeometry(md map[string]string) (Geometry, error) {
	bitpix, err := KeywordInt(md, "BITPIX")
	if err != nil {
		return Geometry{}, err
	}
	if bitpix == 0 || bitpix%8 != 0 || bitpix > 64 || bitpix < -64 {
		return Geometry{}, &MalformedValueError{
			Key: "BITPIX",
			Raw: md["BITPIX"],
			Err: errors.New("not a multiple of 8 bits"),
		}
	}

	width, err := axisLength(md, "NAXIS1")
	if err != nil {
		return Geometry{}, err
	}
	height, err := axisLength(md, "NAXIS2")
	if err != nil {
		return Geometry{}, err
	}

	bytesPerElement := bitpix / 8
	if bytesPerElement < 0 {
		bytesPerElement = -bytesPerElement
	}

	return Geometry{
		Width:           width,
		Height:          height,
		BytesPerElement: uint32(bytesPerElement),
		Bitpix:          int(bitpix),
	}, nil
}

func axisLength(md map[string]string, key string) (uint32, error) {
	n, err := KeywordInt(md, key)
	if err != nil {
		return 0, err
	}
	if n < 0 || n > math.MaxUint32 {
		return 0, &MalformedValueError{Key: key, Raw: md[key], Err: errors.New("axis length out of range")}
	}
	return uint32(n), nil
}
