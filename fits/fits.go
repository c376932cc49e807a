package fits

import (
	"fmt"
)

// The following decoder is based on the FITS standard
// version 4.0

// FITS 4.0, 3.1: Each FITS structure shall consist of an integral number of
// FITS blocks, which are each 2880 bytes (23040 bits) in length.
const (
	BlockSize     = 2880
	CardSize      = 80
	CardsPerBlock = BlockSize / CardSize
)

// Block returns the i-th 2880 byte block of buf. The caller must make
// sure the block lies inside buf.
func Block(buf []byte, i int) []byte {
	return buf[i*BlockSize : (i+1)*BlockSize]
}

// Cards splits a header block into its 36 keyword records.
func Cards(block []byte) [][]byte {
	cards := make([][]byte, 0, CardsPerBlock)
	for off := 0; off+CardSize <= len(block); off += CardSize {
		cards = append(cards, block[off:off+CardSize])
	}
	return cards
}

// BlockCount is the number of whole blocks needed to hold n bytes.
func BlockCount(n uint64) uint64 {
	return (n + BlockSize - 1) / BlockSize
}

// PrimaryHDU is the decoded primary header and data unit of a file.
type PrimaryHDU struct {
	Metadata     map[string]string
	Geometry     Geometry
	HeaderBlocks int
	Pixels       []byte
	// Bytes is the whole HDU: header blocks followed by the data blocks,
	// padding included.
	Bytes []byte
}

// DecodePrimaryHDU reads the header of the primary HDU out of buf and
// slices its pixel payload. The returned Pixels and Bytes alias buf.
func DecodePrimaryHDU(buf []byte) (*PrimaryHDU, error) {
	if len(buf) == 0 || len(buf)%BlockSize != 0 {
		return nil, fmt.Errorf("%w: buffer length %d is not a multiple of %d", ErrTruncatedHeader, len(buf), BlockSize)
	}

	header, err := ReadHeader(buf)
	if err != nil {
		return nil, err
	}

	geometry, err := ResolveGeometry(header.Metadata)
	if err != nil {
		return nil, err
	}

	pixels, err := ExtractPayload(buf, header.Blocks, geometry)
	if err != nil {
		return nil, err
	}

	// buf is block aligned and holds the payload, so it holds the last
	// data block too.
	end := (uint64(header.Blocks) + geometry.DataBlocks()) * BlockSize

	return &PrimaryHDU{
		Metadata:     header.Metadata,
		Geometry:     geometry,
		HeaderBlocks: header.Blocks,
		Pixels:       pixels,
		Bytes:        buf[:end],
	}, nil
}

// ExtractPayload returns the exact pixel bytes that follow headerBlocks
// header blocks. Padding that fills out the last data block is not part of
// the result.
func ExtractPayload(buf []byte, headerBlocks int, g Geometry) ([]byte, error) {
	payload, ok := g.PayloadBytes()
	if !ok {
		return nil, fmt.Errorf("%w: %dx%dx%d overflows", ErrTruncatedData, g.Width, g.Height, g.BytesPerElement)
	}

	start := uint64(headerBlocks) * BlockSize
	size := uint64(len(buf))
	if start > size || size-start < payload {
		return nil, fmt.Errorf("%w: need %d bytes from offset %d, have %d", ErrTruncatedData, payload, start, size)
	}

	return buf[start : start+payload], nil
}
