package csv

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

// decoder converts raw field bytes into strings under a configured text
// encoding. The zero value (nil enc) performs strict UTF-8 validation
// with no transcoding.
type decoder struct {
	enc encoding.Encoding
}

// encodingByName resolves the handful of encoding names the Reader and
// Writer accept. The empty string means "UTF-8, validated, no
// transcoding" per spec.md §4.4.
var encodingByName = map[string]encoding.Encoding{
	"latin1":     charmap.ISO8859_1,
	"iso-8859-1": charmap.ISO8859_1,
	"gbk":        simplifiedchinese.GBK,
	"gb18030":    simplifiedchinese.GB18030,
	"shift_jis":  japanese.ShiftJIS,
	"sjis":       japanese.ShiftJIS,
}

func newDecoder(name string) (*decoder, error) {
	if name == "" || strings.EqualFold(name, "utf-8") || strings.EqualFold(name, "utf8") {
		return &decoder{}, nil
	}
	enc, ok := encodingByName[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("csv: unknown encoding %q", name)
	}
	return &decoder{enc: enc}, nil
}

func (d *decoder) decode(b []byte) (string, error) {
	if d.enc == nil {
		if !utf8.Valid(b) {
			return "", fmt.Errorf("csv: invalid UTF-8 in field: %q", b)
		}
		return string(b), nil
	}
	out, _, err := transform.Bytes(d.enc.NewDecoder(), b)
	if err != nil {
		return "", fmt.Errorf("csv: decoding field: %w", err)
	}
	return string(out), nil
}

// encoder is the Writer-side counterpart, re-encoding output field bytes
// into a named legacy encoding.
type encoder struct {
	enc encoding.Encoding
}

func newEncoder(name string) (*encoder, error) {
	if name == "" || strings.EqualFold(name, "utf-8") || strings.EqualFold(name, "utf8") {
		return &encoder{}, nil
	}
	enc, ok := encodingByName[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("csv: unknown encoding %q", name)
	}
	return &encoder{enc: enc}, nil
}

func (e *encoder) encode(s string) ([]byte, error) {
	if e.enc == nil {
		return []byte(s), nil
	}
	out, _, err := transform.Bytes(e.enc.NewEncoder(), []byte(s))
	if err != nil {
		return nil, fmt.Errorf("csv: encoding field: %w", err)
	}
	return out, nil
}
