package fits

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Encoding is the storage type of a data array element, selected by BITPIX.
type Encoding int

const (
	Uint8 Encoding = iota + 1
	Int16
	Int32
	Int64
	Float32
	Float64
)

// EncodingFor maps a BITPIX value to its element encoding.
func EncodingFor(bitpix int) (Encoding, error) {
	switch bitpix {
	case 8:
		return Uint8, nil
	case 16:
		return Int16, nil
	case 32:
		return Int32, nil
	case 64:
		return Int64, nil
	case -32:
		return Float32, nil
	case -64:
		return Float64, nil
	}
	return 0, fmt.Errorf("%w: %d", ErrUnsupportedEncoding, bitpix)
}

// Bitpix is the BITPIX value of the encoding.
func (e Encoding) Bitpix() int {
	switch e {
	case Uint8:
		return 8
	case Int16:
		return 16
	case Int32:
		return 32
	case Int64:
		return 64
	case Float32:
		return -32
	case Float64:
		return -64
	}
	return 0
}

// Size is the element width in bytes.
func (e Encoding) Size() int {
	b := e.Bitpix() / 8
	if b < 0 {
		return -b
	}
	return b
}

func (e Encoding) String() string {
	switch e {
	case Uint8:
		return "uint8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	}
	return fmt.Sprintf("Encoding(%d)", int(e))
}

// Data is a row-major view over a big-endian pixel payload.
type Data interface {
	Width() int
	Height() int
	Encoding() Encoding
	// Value is the stored sample, before BZERO/BSCALE.
	Value(row, col int) float64
	// Gray16 maps the sample onto the unsigned 16 bit display range.
	Gray16(row, col int) uint16
}

// NewData builds the sample view matching the BITPIX of g. The payload
// must hold exactly width*height elements.
func NewData(pixels []byte, g Geometry) (Data, error) {
	enc, err := EncodingFor(g.Bitpix)
	if err != nil {
		return nil, err
	}

	want, ok := g.PayloadBytes()
	if !ok || uint64(len(pixels)) != want {
		return nil, fmt.Errorf("%w: have %d bytes for %s", ErrTruncatedData, len(pixels), g)
	}

	s := samples{width: int(g.Width), height: int(g.Height), size: enc.Size(), pix: pixels}

	switch enc {
	case Uint8:
		return &Uint8Data{s}, nil
	case Int16:
		return &Int16Data{s}, nil
	case Int32:
		return &Int32Data{s}, nil
	case Int64:
		return &Int64Data{s}, nil
	case Float32:
		d := &Float32Data{samples: s}
		d.stretch = newStretch(d.samples, d.Value)
		return d, nil
	default:
		d := &Float64Data{samples: s}
		d.stretch = newStretch(d.samples, d.Value)
		return d, nil
	}
}

type samples struct {
	width, height int
	size          int
	pix           []byte
}

func (s samples) Width() int  { return s.width }
func (s samples) Height() int { return s.height }

func (s samples) at(row, col int) []byte {
	off := (row*s.width + col) * s.size
	return s.pix[off : off+s.size]
}

// BITPIX 8 arrays are unsigned.
type Uint8Data struct{ samples }

func (d *Uint8Data) Encoding() Encoding { return Uint8 }

func (d *Uint8Data) Value(row, col int) float64 {
	return float64(d.at(row, col)[0])
}

func (d *Uint8Data) Gray16(row, col int) uint16 {
	return uint16(d.at(row, col)[0]) * 257
}

type Int16Data struct{ samples }

func (d *Int16Data) Encoding() Encoding { return Int16 }

func (d *Int16Data) sample(row, col int) int16 {
	return int16(binary.BigEndian.Uint16(d.at(row, col)))
}

func (d *Int16Data) Value(row, col int) float64 {
	return float64(d.sample(row, col))
}

// Gray16 adds 32768, the usual BZERO for unsigned 16 bit cameras.
func (d *Int16Data) Gray16(row, col int) uint16 {
	return uint16(int32(d.sample(row, col)) + 32768)
}

type Int32Data struct{ samples }

func (d *Int32Data) Encoding() Encoding { return Int32 }

func (d *Int32Data) sample(row, col int) int32 {
	return int32(binary.BigEndian.Uint32(d.at(row, col)))
}

func (d *Int32Data) Value(row, col int) float64 {
	return float64(d.sample(row, col))
}

func (d *Int32Data) Gray16(row, col int) uint16 {
	return uint16((uint32(d.sample(row, col)) ^ 1<<31) >> 16)
}

type Int64Data struct{ samples }

func (d *Int64Data) Encoding() Encoding { return Int64 }

func (d *Int64Data) sample(row, col int) int64 {
	return int64(binary.BigEndian.Uint64(d.at(row, col)))
}

func (d *Int64Data) Value(row, col int) float64 {
	return float64(d.sample(row, col))
}

func (d *Int64Data) Gray16(row, col int) uint16 {
	return uint16((uint64(d.sample(row, col)) ^ 1<<63) >> 48)
}

type Float32Data struct {
	samples
	stretch
}

func (d *Float32Data) Encoding() Encoding { return Float32 }

func (d *Float32Data) Value(row, col int) float64 {
	return float64(math.Float32frombits(binary.BigEndian.Uint32(d.at(row, col))))
}

func (d *Float32Data) Gray16(row, col int) uint16 {
	return d.scale(d.Value(row, col))
}

type Float64Data struct {
	samples
	stretch
}

func (d *Float64Data) Encoding() Encoding { return Float64 }

func (d *Float64Data) Value(row, col int) float64 {
	return math.Float64frombits(binary.BigEndian.Uint64(d.at(row, col)))
}

func (d *Float64Data) Gray16(row, col int) uint16 {
	return d.scale(d.Value(row, col))
}

// stretch maps floating point samples linearly from [min, max] of the
// finite values onto [0, 65535].
type stretch struct {
	min, max float64
}

func newStretch(s samples, value func(row, col int) float64) stretch {
	st := stretch{min: math.Inf(1), max: math.Inf(-1)}
	for row := 0; row < s.height; row++ {
		for col := 0; col < s.width; col++ {
			v := value(row, col)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			st.min = math.Min(st.min, v)
			st.max = math.Max(st.max, v)
		}
	}
	return st
}

func (st stretch) scale(v float64) uint16 {
	if math.IsNaN(v) || !(st.max > st.min) {
		return 0
	}
	switch {
	case v <= st.min:
		return 0
	case v >= st.max:
		return math.MaxUint16
	}
	return uint16((v - st.min) / (st.max - st.min) * math.MaxUint16)
}

// Scaling returns BZERO and BSCALE, defaulting to 0 and 1 when absent.
func Scaling(md map[string]string) (bzero, bscale float64, err error) {
	bzero, bscale = 0, 1

	var missing *MissingKeywordError
	if v, err := KeywordFloat(md, "BZERO"); err == nil {
		bzero = v
	} else if !errors.As(err, &missing) {
		return 0, 0, err
	}
	if v, err := KeywordFloat(md, "BSCALE"); err == nil {
		bscale = v
	} else if !errors.As(err, &missing) {
		return 0, 0, err
	}
	return bzero, bscale, nil
}

// Physical returns BZERO + BSCALE * stored value.
func Physical(d Data, bzero, bscale float64, row, col int) float64 {
	return bzero + bscale*d.Value(row, col)
}
