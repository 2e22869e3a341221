package utils

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Supported input encodings for uploaded CSV files.
const (
	EncodingUTF8        = "utf-8"
	EncodingWindows1252 = "windows-1252"
)

// NewDecodingReader wraps r so it yields UTF-8 text without a leading byte order mark.
// A UTF-8 (or UTF-16) BOM always wins over the configured encoding.
func NewDecodingReader(r io.Reader, enc string) (io.Reader, error) {
	var fallback encoding.Encoding
	switch strings.ToLower(strings.TrimSpace(enc)) {
	case "", EncodingUTF8, "utf8":
		fallback = unicode.UTF8
	case EncodingWindows1252, "cp1252", "latin1", "iso-8859-1":
		fallback = charmap.Windows1252
	default:
		return nil, fmt.Errorf("unsupported encoding %q", enc)
	}

	return transform.NewReader(r, unicode.BOMOverride(fallback.NewDecoder())), nil
}

// CleanField trims surrounding whitespace and any stray BOM left inside a field.
func CleanField(s string) string {
	return strings.TrimSpace(strings.TrimPrefix(s, "\ufeff"))
}
