package slangfile

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrUnsupportedCharset is returned when the detected charset has no decoder.
var ErrUnsupportedCharset = errors.New("unsupported charset")

// Decode returns raw as UTF-8 text. Valid UTF-8 is returned as is, minus a
// byte order mark; anything else is decoded from the charset chardet detects.
func Decode(raw []byte) (string, error) {
	if utf8.Valid(raw) {
		return string(bytes.TrimPrefix(raw, utf8BOM)), nil
	}

	detector := chardet.NewTextDetector()
	result, err := detector.DetectBest(raw)
	if err != nil {
		return "", fmt.Errorf("detect charset: %w", err)
	}
	log.Debug().
		Str("charset", result.Charset).
		Int("confidence", result.Confidence).
		Msg("Detected slang file charset")

	enc, err := lookupEncoding(result.Charset)
	if err != nil {
		return "", err
	}
	decoded, _, err := transform.Bytes(enc.NewDecoder(), raw)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", result.Charset, err)
	}
	return strings.TrimPrefix(string(decoded), "\uFEFF"), nil
}

func lookupEncoding(charset string) (encoding.Encoding, error) {
	switch strings.ToLower(charset) {
	case "utf-8":
		return encoding.Nop, nil
	case "utf-16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), nil
	case "utf-16be":
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM), nil
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCharset, charset)
	}
	return enc, nil
}
