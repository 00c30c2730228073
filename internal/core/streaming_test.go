package core

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
)

func TestSkipBOM(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{
			name:     "file with BOM",
			input:    append([]byte{0xEF, 0xBB, 0xBF}, []byte("hello,world")...),
			expected: "hello,world",
		},
		{
			name:     "file without BOM",
			input:    []byte("hello,world"),
			expected: "hello,world",
		},
		{
			name:     "empty file",
			input:    []byte{},
			expected: "",
		},
		{
			name:     "only BOM",
			input:    []byte{0xEF, 0xBB, 0xBF},
			expected: "",
		},
		{
			name:     "partial BOM at start",
			input:    []byte{0xEF, 0xBB, 'a', 'b', 'c'},
			expected: string([]byte{0xEF, 0xBB, 'a', 'b', 'c'}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := io.ReadAll(skipBOM(bytes.NewReader(tt.input)))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(result) != tt.expected {
				t.Errorf("got %q, want %q", string(result), tt.expected)
			}
		})
	}
}

func TestUTF8Sanitizer(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{
			name:     "valid ASCII",
			input:    []byte("hello,world"),
			expected: "hello,world",
		},
		{
			name:     "valid greek",
			input:    []byte("Αθήνα,Πάτρα"),
			expected: "Αθήνα,Πάτρα",
		},
		{
			name:     "invalid single byte replaced",
			input:    []byte{'h', 'e', 0x80, 'l', 'o'},
			expected: "he?lo",
		},
		{
			name:     "truncated sequence at EOF",
			input:    []byte{'o', 'k', 0xCE},
			expected: "ok?",
		},
		{
			name:     "empty input",
			input:    []byte{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := io.ReadAll(NewUTF8Sanitizer(bytes.NewReader(tt.input)))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(result) != tt.expected {
				t.Errorf("got %q, want %q", string(result), tt.expected)
			}
		})
	}
}

func TestUTF8Sanitizer_SplitAcrossReads(t *testing.T) {
	input := strings.Repeat("Θεσσαλονίκη,", 50)

	// OneByteReader forces every multi-byte rune to arrive in pieces.
	r := NewUTF8Sanitizer(iotest.OneByteReader(strings.NewReader(input)))
	result, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(result) != input {
		t.Errorf("split runes were altered: got %d bytes, want %d", len(result), len(input))
	}
}

func TestUTF8Sanitizer_ShortBuffer(t *testing.T) {
	r := NewUTF8Sanitizer(strings.NewReader("abc"))
	if _, err := r.Read(make([]byte, 2)); !errors.Is(err, io.ErrShortBuffer) {
		t.Errorf("error = %v, want io.ErrShortBuffer", err)
	}
}

func TestSizeLimitReader(t *testing.T) {
	input := strings.Repeat("x", 1000)

	r := NewSizeLimitReader(strings.NewReader(input), 0)
	n, err := io.Copy(io.Discard, r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1000 || r.BytesRead != 1000 {
		t.Errorf("read %d (counted %d), want 1000", n, r.BytesRead)
	}

	r = NewSizeLimitReader(strings.NewReader(input), 999)
	if _, err := io.Copy(io.Discard, r); !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("error = %v, want ErrFileTooLarge", err)
	}

	r = NewSizeLimitReader(strings.NewReader(input), 1000)
	if _, err := io.Copy(io.Discard, r); err != nil {
		t.Errorf("exact limit should pass, got %v", err)
	}
}

func TestWrapUpload(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("a,b\n\xff,2\n")...)

	wrapped, counter := WrapUpload(bytes.NewReader(input), 0)
	result, err := io.ReadAll(wrapped)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(result) != "a,b\n?,2\n" {
		t.Errorf("got %q", string(result))
	}
	if counter.BytesRead != int64(len(input)) {
		t.Errorf("BytesRead = %d, want %d", counter.BytesRead, len(input))
	}
}
