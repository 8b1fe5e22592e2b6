package encoding

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestCharsetReader(t *testing.T) {
	tests := []struct {
		name  string
		label string
		input string
		want  string
	}{
		{"utf-8 passthrough", "UTF-8", "caf\xc3\xa9", "café"},
		{"latin1", "ISO-8859-1", "caf\xe9", "café"},
		{"windows-1252", "windows-1252", "\x93q\x94", "“q”"},
		{"euc-kr", "EUC-KR", "\xc7\xd1", "한"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := CharsetReader(tt.label, strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("CharsetReader(%q): %v", tt.label, err)
			}
			got, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("reading: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCharsetReaderUnknown(t *testing.T) {
	_, err := CharsetReader("x-not-a-charset", strings.NewReader("abc"))
	if !errors.Is(err, ErrUnsupportedCharset) {
		t.Errorf("expected ErrUnsupportedCharset, got %v", err)
	}
}

func TestNewReaderStripsBOM(t *testing.T) {
	got, err := io.ReadAll(NewReader(strings.NewReader("\xef\xbb\xbf<COLLADA/>")))
	if err != nil {
		t.Fatalf("reading: %v", err)
	}
	if string(got) != "<COLLADA/>" {
		t.Errorf("got %q", got)
	}

	utf16 := "\xff\xfe<\x00a\x00/\x00>\x00"
	got, err = io.ReadAll(NewReader(strings.NewReader(utf16)))
	if err != nil {
		t.Fatalf("reading: %v", err)
	}
	if string(got) != "<a/>" {
		t.Errorf("utf-16: got %q", got)
	}
}
