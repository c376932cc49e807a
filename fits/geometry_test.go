package fits

import (
	"errors"
	"testing"
)

func TestResolveGeometry(t *testing.T) {
	tests := []struct {
		name string
		md   map[string]string
		want Geometry
	}{
		{
			name: "int16",
			md:   map[string]string{"BITPIX": "16", "NAXIS1": "10", "NAXIS2": "5"},
			want: Geometry{Width: 10, Height: 5, BytesPerElement: 2, Bitpix: 16},
		},
		{
			name: "inline comments",
			md:   map[string]string{"BITPIX": "8 / bytes", "NAXIS1": "3072 / width", "NAXIS2": "2048/height"},
			want: Geometry{Width: 3072, Height: 2048, BytesPerElement: 1, Bitpix: 8},
		},
		{
			name: "float32",
			md:   map[string]string{"BITPIX": "-32", "NAXIS1": "1", "NAXIS2": "1"},
			want: Geometry{Width: 1, Height: 1, BytesPerElement: 4, Bitpix: -32},
		},
		{
			name: "float64",
			md:   map[string]string{"BITPIX": "-64", "NAXIS1": "4294967295", "NAXIS2": "2"},
			want: Geometry{Width: 4294967295, Height: 2, BytesPerElement: 8, Bitpix: -64},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveGeometry(tt.md)
			if err != nil {
				t.Fatalf("ResolveGeometry: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResolveGeometry_MissingKeyword(t *testing.T) {
	for _, key := range []string{"BITPIX", "NAXIS1", "NAXIS2"} {
		md := map[string]string{"BITPIX": "16", "NAXIS1": "10", "NAXIS2": "5"}
		delete(md, key)

		_, err := ResolveGeometry(md)
		var missing *MissingKeywordError
		if !errors.As(err, &missing) {
			t.Errorf("without %s: err = %v, want MissingKeywordError", key, err)
			continue
		}
		if missing.Key != key {
			t.Errorf("missing key = %s, want %s", missing.Key, key)
		}
	}
}

func TestResolveGeometry_MalformedValue(t *testing.T) {
	tests := []struct {
		key, raw string
	}{
		{"BITPIX", "sixteen"},
		{"BITPIX", "12"},
		{"BITPIX", "0"},
		{"BITPIX", "128"},
		{"NAXIS1", "10.5"},
		{"NAXIS1", "-1"},
		{"NAXIS2", ""},
		{"NAXIS2", "/ only a comment"},
		{"NAXIS2", "4294967296"},
	}

	for _, tt := range tests {
		md := map[string]string{"BITPIX": "16", "NAXIS1": "10", "NAXIS2": "5"}
		md[tt.key] = tt.raw

		_, err := ResolveGeometry(md)
		var malformed *MalformedValueError
		if !errors.As(err, &malformed) {
			t.Errorf("%s=%q: err = %v, want MalformedValueError", tt.key, tt.raw, err)
			continue
		}
		if malformed.Key != tt.key || malformed.Raw != tt.raw {
			t.Errorf("got %s=%q, want %s=%q", malformed.Key, malformed.Raw, tt.key, tt.raw)
		}
	}
}

func TestKeywordValue(t *testing.T) {
	tests := map[string]string{
		"":             "",
		"16":           "16",
		"  16  ":       "16",
		"16 / comment": "16",
		"16/a/b":       "16",
		"/ comment":    "",
		"'a b'":        "'a b'",
	}
	for raw, want := range tests {
		if got := KeywordValue(raw); got != want {
			t.Errorf("KeywordValue(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestKeywordFloat(t *testing.T) {
	md := map[string]string{
		"EXPTIME":  "120.5 / seconds",
		"BZERO":    "3.2768D4",
		"BADFLOAT": "'abc'",
	}

	if v, err := KeywordFloat(md, "EXPTIME"); err != nil || v != 120.5 {
		t.Errorf("EXPTIME = %v, %v", v, err)
	}
	if v, err := KeywordFloat(md, "BZERO"); err != nil || v != 32768 {
		t.Errorf("BZERO = %v, %v", v, err)
	}
	var malformed *MalformedValueError
	if _, err := KeywordFloat(md, "BADFLOAT"); !errors.As(err, &malformed) {
		t.Errorf("BADFLOAT err = %v", err)
	}
	var missing *MissingKeywordError
	if _, err := KeywordFloat(md, "GAIN"); !errors.As(err, &missing) {
		t.Errorf("GAIN err = %v", err)
	}
}

func TestKeywordString(t *testing.T) {
	md := map[string]string{
		"BAYERPAT": "'RGGB    ' / filter layout",
		"OBJECT":   "M42",
		"OBSERVER": "'O''Brien'",
		"QUOTE":    "''''",
	}

	if v, ok := KeywordString(md, "BAYERPAT"); !ok || v != "RGGB" {
		t.Errorf("BAYERPAT = %q, %v", v, ok)
	}
	if v, ok := KeywordString(md, "OBJECT"); !ok || v != "M42" {
		t.Errorf("OBJECT = %q, %v", v, ok)
	}
	if v, ok := KeywordString(md, "OBSERVER"); !ok || v != "O'Brien" {
		t.Errorf("OBSERVER = %q, %v", v, ok)
	}
	if v, ok := KeywordString(md, "QUOTE"); !ok || v != "'" {
		t.Errorf("QUOTE = %q, %v", v, ok)
	}
	if _, ok := KeywordString(md, "TELESCOP"); ok {
		t.Errorf("TELESCOP reported present")
	}
}
