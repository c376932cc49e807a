package fits

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// EndKeyword marks the logical end of the header.
const EndKeyword = "END"

// Card is one 80 byte keyword record.
type Card struct {
	Keyword string
	Value   string
}

// Header is the accumulated keyword dictionary of a primary HDU together
// with the number of 2880 byte blocks it occupies.
type Header struct {
	Metadata map[string]string
	Blocks   int
}

// ParseCard decodes a keyword record. Bytes 0-7 hold the keyword, bytes 8-9
// the value indicator (not checked) and bytes 10-79 the value. An inline
// comment after '/' stays part of the value.
func ParseCard(card []byte) (Card, error) {
	if len(card) != CardSize {
		return Card{}, fmt.Errorf("%w: card of %d bytes", ErrDecode, len(card))
	}

	key, value := card[0:8], card[10:CardSize]
	if !utf8.Valid(key) {
		return Card{}, fmt.Errorf("%w: keyword %q", ErrDecode, key)
	}
	if !utf8.Valid(value) {
		return Card{}, fmt.Errorf("%w: value of %q", ErrDecode, strings.TrimSpace(string(key)))
	}

	return Card{
		Keyword: strings.TrimSpace(string(key)),
		Value:   strings.TrimSpace(string(value)),
	}, nil
}

// ParseBlock decodes the 36 cards of one header block. A keyword repeated
// inside the block keeps its last value. Blank cards map to the empty
// keyword.
func ParseBlock(block []byte) (map[string]string, error) {
	if len(block) != BlockSize {
		return nil, fmt.Errorf("%w: block of %d bytes", ErrDecode, len(block))
	}

	out := make(map[string]string, CardsPerBlock)
	for i, raw := range Cards(block) {
		card, err := ParseCard(raw)
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", i, err)
		}
		out[card.Keyword] = card.Value
	}
	return out, nil
}

// FITS 4.0, 3.3.1: The header of a primary HDU shall consist of one or more
// header blocks, each containing a series of 80-character keyword
// records. The last header block must contain the END keyword, which
// marks the logical end of the header. Keyword records following the END
// keyword shall be filled with ASCII spaces.

// ReadHeader accumulates header blocks from the start of buf until a block
// containing END has been merged. Keywords seen in later blocks overwrite
// earlier ones.
func ReadHeader(buf []byte) (*Header, error) {
	metadata := make(map[string]string)
	available := len(buf) / BlockSize

	for i := 0; ; i++ {
		if i >= available {
			return nil, fmt.Errorf("%w: %d blocks read", ErrTruncatedHeader, i)
		}

		entries, err := ParseBlock(Block(buf, i))
		if err != nil {
			return nil, fmt.Errorf("header block %d: %w", i, err)
		}
		for k, v := range entries {
			metadata[k] = v
		}
		delete(metadata, "")

		if _, ok := metadata[EndKeyword]; ok {
			return &Header{Metadata: metadata, Blocks: i + 1}, nil
		}
	}
}
