// Package encoding provides text encoding utilities for COLLADA documents.
package encoding

import (
	"errors"
	"fmt"
	"io"
	"strings"

	xenc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrUnsupportedCharset is returned for charset labels without a known decoder.
var ErrUnsupportedCharset = errors.New("unsupported charset")

// Lookup returns the encoding registered under an IANA charset label.
func Lookup(label string) (xenc.Encoding, error) {
	enc, err := ianaindex.IANA.Encoding(strings.TrimSpace(label))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCharset, label)
	}
	if enc == nil {
		// Known to the index but no Go implementation.
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCharset, label)
	}
	return enc, nil
}

// NewReader strips a leading byte order mark and converts UTF-16 input
// announced by one to UTF-8. Input without a BOM passes through untouched.
func NewReader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(xenc.Nop.NewDecoder()))
}

// CharsetReader matches the signature of xml.Decoder.CharsetReader.
// Unicode labels are passed through since NewReader already produced UTF-8.
func CharsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "utf-8", "utf8", "utf-16", "utf-16le", "utf-16be", "us-ascii", "ascii":
		return input, nil
	}
	enc, err := Lookup(label)
	if err != nil {
		return nil, err
	}
	return transform.NewReader(input, enc.NewDecoder()), nil
}
