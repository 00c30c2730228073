package core

// streaming.go provides reader wrappers applied to uploaded text files before
// they are parsed:
//
//   - skipBOM: drops a leading UTF-8 BOM (0xEF 0xBB 0xBF) from Windows exports
//   - UTF8Sanitizer: replaces invalid UTF-8 bytes with '?'
//   - SizeLimitReader: counts bytes and fails once a size limit is crossed
//
// Use WrapUpload to apply all three in the correct order.

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// skipBOM returns a reader positioned after a leading UTF-8 BOM, if any.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		br.Discard(len(utf8BOM))
	}
	return br
}

// UTF8Sanitizer replaces invalid UTF-8 bytes with '?' as data streams through.
// Multi-byte sequences split across reads are carried over to the next read.
type UTF8Sanitizer struct {
	r       io.Reader
	carry   []byte
	scratch []byte
}

// NewUTF8Sanitizer wraps r.
func NewUTF8Sanitizer(r io.Reader) *UTF8Sanitizer {
	return &UTF8Sanitizer{r: r, carry: make([]byte, 0, utf8.UTFMax)}
}

// Read implements io.Reader. p must hold at least utf8.UTFMax bytes.
func (s *UTF8Sanitizer) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if len(p) < utf8.UTFMax {
		return 0, io.ErrShortBuffer
	}
	if cap(s.scratch) < len(p) {
		s.scratch = make([]byte, 0, len(p))
	}

	buf := append(s.scratch[:0], s.carry...)
	s.carry = s.carry[:0]

	n, err := s.r.Read(buf[len(buf):cap(buf)][:len(p)-len(buf)])
	buf = buf[:len(buf)+n]
	atEOF := errors.Is(err, io.EOF)

	out := 0
	for i := 0; i < len(buf); {
		if buf[i] < utf8.RuneSelf {
			p[out] = buf[i]
			out++
			i++
			continue
		}
		if !atEOF && !utf8.FullRune(buf[i:]) {
			s.carry = append(s.carry, buf[i:]...)
			break
		}
		r, size := utf8.DecodeRune(buf[i:])
		if r == utf8.RuneError && size == 1 {
			p[out] = '?'
			out++
			i++
			continue
		}
		copy(p[out:], buf[i:i+size])
		out += size
		i += size
	}

	if out == 0 && len(s.carry) > 0 && err == nil {
		// Only an incomplete sequence so far; read again to complete it.
		return s.Read(p)
	}
	return out, err
}

// SizeLimitReader counts bytes read and returns ErrFileTooLarge once more
// than Limit bytes have been consumed. A Limit <= 0 disables the check.
type SizeLimitReader struct {
	r         io.Reader
	Limit     int64
	BytesRead int64
}

// NewSizeLimitReader wraps r with a byte limit.
func NewSizeLimitReader(r io.Reader, limit int64) *SizeLimitReader {
	return &SizeLimitReader{r: r, Limit: limit}
}

// Read implements io.Reader.
func (l *SizeLimitReader) Read(p []byte) (int, error) {
	n, err := l.r.Read(p)
	l.BytesRead += int64(n)
	if l.Limit > 0 && l.BytesRead > l.Limit {
		return n, ErrFileTooLarge
	}
	return n, err
}

// WrapUpload applies size limiting, BOM skipping and UTF-8 sanitizing.
//
// The limit wraps the raw upload so it counts bytes as received; the BOM is
// stripped before sanitizing so it is never rewritten.
func WrapUpload(r io.Reader, limit int64) (io.Reader, *SizeLimitReader) {
	counter := NewSizeLimitReader(r, limit)
	return NewUTF8Sanitizer(skipBOM(counter)), counter
}
