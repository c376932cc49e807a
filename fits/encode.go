package fits

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strconv"
)

// EncodeCard formats a keyword record as "KEYWORD = value", padded with
// spaces to 80 bytes. Keywords longer than 8 bytes and values longer than
// 70 bytes are rejected.
func EncodeCard(key, value string) ([]byte, error) {
	if len(key) > 8 {
		return nil, fmt.Errorf("fits: keyword %q longer than 8 bytes", key)
	}
	if len(value) > CardSize-10 {
		return nil, fmt.Errorf("fits: value for %s longer than %d bytes", key, CardSize-10)
	}

	card := bytes.Repeat([]byte{' '}, CardSize)
	copy(card, key)
	if key != EndKeyword && key != "" {
		copy(card[8:], "= ")
	}
	copy(card[10:], value)
	return card, nil
}

// EncodeHeader writes cards in order, appends END when the last card is not
// END, and pads with blank cards to a whole number of blocks.
func EncodeHeader(cards []Card) ([]byte, error) {
	var buf bytes.Buffer
	for _, c := range cards {
		raw, err := EncodeCard(c.Keyword, c.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(raw)
	}
	if len(cards) == 0 || cards[len(cards)-1].Keyword != EndKeyword {
		raw, _ := EncodeCard(EndKeyword, "")
		buf.Write(raw)
	}
	pad(&buf, ' ')
	return buf.Bytes(), nil
}

// EncodeImage16 builds a complete single HDU file holding a BITPIX 16
// image with BZERO 32768. samples are unsigned row-major display values.
func EncodeImage16(width, height int, samples []uint16, extra ...Card) ([]byte, error) {
	if width < 0 || height < 0 || len(samples) != width*height {
		return nil, fmt.Errorf("fits: %d samples for %dx%d image", len(samples), width, height)
	}

	cards := []Card{
		{Keyword: "SIMPLE", Value: "T"},
		{Keyword: "BITPIX", Value: "16 / bits per data value"},
		{Keyword: "NAXIS", Value: "2"},
		{Keyword: "NAXIS1", Value: strconv.Itoa(width)},
		{Keyword: "NAXIS2", Value: strconv.Itoa(height)},
		{Keyword: "BZERO", Value: "32768"},
		{Keyword: "BSCALE", Value: "1"},
	}
	cards = append(cards, extra...)

	header, err := EncodeHeader(cards)
	if err != nil {
		return nil, err
	}

	buf := bytes.NewBuffer(header)
	for _, s := range samples {
		binary.Write(buf, binary.BigEndian, int16(int32(s)-32768))
	}
	pad(buf, 0)
	return buf.Bytes(), nil
}

// Data blocks are zero filled, header blocks space filled.
func pad(buf *bytes.Buffer, fill byte) {
	if rem := buf.Len() % BlockSize; rem != 0 {
		buf.Write(bytes.Repeat([]byte{fill}, BlockSize-rem))
	}
}
