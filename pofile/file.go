package pofile

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
)

var (
	// ErrUnreadable is returned when a catalog cannot be read or decoded.
	ErrUnreadable = errors.New("unreadable catalog")
	// ErrUnwritable is returned when a catalog cannot be written.
	ErrUnwritable = errors.New("unwritable catalog")
)

func unreadable(what string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrUnreadable, what, err)
}

func unwritable(what string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrUnwritable, what, err)
}

var (
	charsetRe       = regexp.MustCompile(`(?i)"Content-Type:[^"]*charset=([A-Za-z0-9._:-]+)`)
	headerCharsetRe = regexp.MustCompile(`(?i)charset=([A-Za-z0-9._:-]+)`)
)

// ReadFile reads a PO/POT file from disk. Files declaring a charset other
// than UTF-8 in their Content-Type header are converted to UTF-8 first.
func ReadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, unreadable(path, err)
	}
	text, err := DecodeText(data)
	if err != nil {
		return nil, unreadable(path, err)
	}
	return Parse(text), nil
}

// DecodeText converts raw catalog bytes to a UTF-8 string using the
// charset named in the Content-Type header. A catalog without a charset,
// or with charset CHARSET as left by xgettext, must already be UTF-8.
func DecodeText(data []byte) (string, error) {
	charset := "utf-8"
	if m := charsetRe.FindSubmatch(data); m != nil {
		charset = strings.ToLower(string(m[1]))
	}

	switch charset {
	case "utf-8", "utf8", "charset":
		if !utf8.Valid(data) {
			return "", errors.New("invalid UTF-8")
		}
		return string(data), nil
	}

	enc, err := htmlindex.Get(charset)
	if err != nil {
		return "", fmt.Errorf("unsupported charset %q: %w", charset, err)
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", charset, err)
	}
	return string(out), nil
}

// WriteFile writes the catalog to disk, encoded in the charset its
// Content-Type header declares.
func (c *Catalog) WriteFile(path string) error {
	data, err := EncodeText(c.Header("Content-Type"), c.String())
	if err != nil {
		return unwritable(path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return unwritable(path, err)
	}
	return nil
}

// EncodeText converts rendered UTF-8 text to the charset named by a
// Content-Type header value.
func EncodeText(contentType, text string) ([]byte, error) {
	charset := "utf-8"
	if m := headerCharsetRe.FindStringSubmatch(contentType); m != nil {
		charset = strings.ToLower(m[1])
	}
	switch charset {
	case "utf-8", "utf8", "charset":
		return []byte(text), nil
	}

	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", charset, err)
	}
	out, err := enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", charset, err)
	}
	return out, nil
}
