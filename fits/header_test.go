package fits

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"testing"
)

func TestParseCard(t *testing.T) {
	tests := []struct {
		raw     string
		keyword string
		value   string
	}{
		{"SIMPLE  =                    T / file does conform", "SIMPLE", "T / file does conform"},
		{"BITPIX  =                   16", "BITPIX", "16"},
		{"OBJECT  = 'M31     '", "OBJECT", "'M31     '"},
		{"END", "END", ""},
		{"", "", ""},
		{"DATE-OBS= '2023-01-01T00:00:00'", "DATE-OBS", "'2023-01-01T00:00:00'"},
	}

	for _, tt := range tests {
		card := []byte(fmt.Sprintf("%-80s", tt.raw))
		got, err := ParseCard(card)
		if err != nil {
			t.Errorf("ParseCard(%q): %v", tt.raw, err)
			continue
		}
		if got.Keyword != tt.keyword || got.Value != tt.value {
			t.Errorf("ParseCard(%q) = %+v, want {%s %s}", tt.raw, got, tt.keyword, tt.value)
		}
	}
}

func TestParseCard_InvalidText(t *testing.T) {
	base := []byte(fmt.Sprintf("%-80s", "NAXIS1  =                   10"))

	for _, pos := range []int{2, 7, 10, 40, 79} {
		card := append([]byte(nil), base...)
		card[pos] = 0xff
		if _, err := ParseCard(card); !errors.Is(err, ErrDecode) {
			t.Errorf("invalid byte at %d: err = %v, want ErrDecode", pos, err)
		}
	}

	// bytes 8 and 9 are never interpreted
	card := append([]byte(nil), base...)
	card[8] = 0xff
	if _, err := ParseCard(card); err != nil {
		t.Errorf("invalid separator: %v", err)
	}
}

func TestReadHeader_RoundTrip(t *testing.T) {
	cards := []Card{
		{Keyword: "SIMPLE", Value: "T"},
		{Keyword: "BITPIX", Value: "16 / bits per pixel"},
		{Keyword: "NAXIS", Value: "2"},
		{Keyword: "NAXIS1", Value: "640"},
		{Keyword: "NAXIS2", Value: "480"},
		{Keyword: "OBJECT", Value: "'NGC 7000' / North America"},
		{Keyword: "EXPTIME", Value: "120.0"},
	}

	header, err := ReadHeader(mustHeader(t, cards...))
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}

	want := map[string]string{EndKeyword: ""}
	for _, c := range cards {
		want[c.Keyword] = c.Value
	}
	if !reflect.DeepEqual(header.Metadata, want) {
		t.Errorf("metadata = %v, want %v", header.Metadata, want)
	}
	if header.Blocks != 1 {
		t.Errorf("Blocks = %d, want 1", header.Blocks)
	}
}

func TestReadHeader_MultiBlock(t *testing.T) {
	cards := imageCards("4", "4")
	for i := 0; len(cards) < CardsPerBlock+4; i++ {
		cards = append(cards, Card{Keyword: fmt.Sprintf("KEY%d", i), Value: fmt.Sprint(i)})
	}
	buf := mustHeader(t, cards...)
	if len(buf) != 2*BlockSize {
		t.Fatalf("header is %d bytes, want two blocks", len(buf))
	}

	header, err := ReadHeader(withData(buf, 32))
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if header.Blocks != 2 {
		t.Errorf("Blocks = %d, want 2", header.Blocks)
	}
	for _, c := range cards {
		if got := header.Metadata[c.Keyword]; got != c.Value {
			t.Errorf("%s = %q, want %q", c.Keyword, got, c.Value)
		}
	}
	if _, ok := header.Metadata[""]; ok {
		t.Errorf("blank keyword kept in metadata")
	}
}

func TestReadHeader_LaterBlockWins(t *testing.T) {
	cards := []Card{{Keyword: "OBJECT", Value: "'first'"}}
	for len(cards) < CardsPerBlock {
		cards = append(cards, Card{})
	}
	cards = append(cards, Card{Keyword: "OBJECT", Value: "'second'"})

	header, err := ReadHeader(mustHeader(t, cards...))
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if header.Blocks != 2 {
		t.Errorf("Blocks = %d, want 2", header.Blocks)
	}
	if got := header.Metadata["OBJECT"]; got != "'second'" {
		t.Errorf("OBJECT = %s, want 'second'", got)
	}
}

func TestReadHeader_Truncated(t *testing.T) {
	card, _ := EncodeCard("SIMPLE", "T")
	block := append(card, bytes.Repeat([]byte{' '}, BlockSize-CardSize)...)

	tests := map[string][]byte{
		"empty":         nil,
		"no END":        block,
		"partial block": append(append([]byte(nil), block...), make([]byte, 100)...),
		"two blocks":    append(append([]byte(nil), block...), block...),
	}
	for name, buf := range tests {
		if _, err := ReadHeader(buf); !errors.Is(err, ErrTruncatedHeader) {
			t.Errorf("%s: err = %v, want ErrTruncatedHeader", name, err)
		}
	}
}

func TestDecodePrimaryHDU_InvalidText(t *testing.T) {
	buf := withData(mustHeader(t, imageCards("2", "2")...), 8)
	buf[3*CardSize+20] = 0xc3 // truncated two byte sequence in NAXIS1's value

	_, err := DecodePrimaryHDU(buf)
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("err = %v, want ErrDecode", err)
	}
}
