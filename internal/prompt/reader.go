package prompt

import (
	"bufio"
	"io"
	"strings"
)

// LineReader supplies one line of operator input at a time.
type LineReader interface {
	// ReadLine returns the next line with surrounding whitespace removed.
	// It returns io.EOF once the input is exhausted.
	ReadLine() (string, error)
}

// ScannerReader is a LineReader over an io.Reader such as os.Stdin.
type ScannerReader struct {
	s *bufio.Scanner
}

func NewLineReader(r io.Reader) *ScannerReader {
	return &ScannerReader{s: bufio.NewScanner(r)}
}

func (r *ScannerReader) ReadLine() (string, error) {
	if r.s.Scan() {
		return strings.TrimSpace(r.s.Text()), nil
	}
	if err := r.s.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
