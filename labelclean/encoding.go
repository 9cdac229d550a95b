package labelclean

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// lookupEncoding maps a WHATWG encoding label ("utf-8", "shift_jis",
// "utf-16le", "windows-1252", ...) to its decoder. An empty label means UTF-8.
func lookupEncoding(label string) (encoding.Encoding, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return unicode.UTF8, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", label, err)
	}
	return enc, nil
}

// decodeReader wraps r so that it yields UTF-8. A byte-order mark in the
// stream takes precedence over the configured label and is stripped.
func decodeReader(r io.Reader, label string) (io.Reader, error) {
	enc, err := lookupEncoding(label)
	if err != nil {
		return nil, err
	}
	return transform.NewReader(r, unicode.BOMOverride(enc.NewDecoder())), nil
}

// DecodeBytes converts data in the labelled encoding to UTF-8.
func DecodeBytes(data []byte, label string) ([]byte, error) {
	enc, err := lookupEncoding(label)
	if err != nil {
		return nil, err
	}
	out, _, err := transform.Bytes(unicode.BOMOverride(enc.NewDecoder()), data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", label, err)
	}
	return out, nil
}
