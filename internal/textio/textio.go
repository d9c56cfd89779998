// Package textio reads the text to transform and writes the result.
package textio

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"unicode"
)

// ErrNotFound is returned by [ReadInput] when the input file does not exist.
var ErrNotFound = errors.New("input file not found")

// ResolveInput picks the text to transform: literal data when given (even if empty), otherwise the
// contents of inputFile when given, otherwise the empty string.
func ResolveInput(data, inputFile *string) (string, error) {
	switch {
	case data != nil:
		return *data, nil
	case inputFile != nil:
		return ReadInput(*inputFile)
	default:
		return "", nil
	}
}

// ReadInput reads path and joins its lines with the line terminators removed. Reading stops after
// the last line that has any non-blank character (see [isBlank]), so trailing blank lines
// contribute nothing.
func ReadInput(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", fmt.Errorf("failed to read input file %s: %w", path, err)
	}
	return joinLines(b), nil
}

func joinLines(b []byte) string {
	s := string(b)
	end := strings.LastIndexFunc(s, func(r rune) bool { return !isBlank(r) })
	if end < 0 {
		return ""
	}
	// Keep the rest of the last line that has content, up to its terminator.
	if i := strings.IndexFunc(s[end:], isLineBreak); i >= 0 {
		s = s[:end+i]
	}
	return strings.Map(func(r rune) rune {
		if isLineBreak(r) {
			return -1
		}
		return r
	}, s)
}

// isBlank reports whether r separates words: the ASCII whitespace controls, U+001C to U+001F, and
// the Unicode space and line or paragraph separators other than the no-break spaces U+00A0, U+2007
// and U+202F. U+0085 is a line break but not blank.
func isBlank(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\x1c', '\x1d', '\x1e', '\x1f':
		return true
	case '\u00a0', '\u2007', '\u202f':
		return false
	}
	return unicode.In(r, unicode.Zs, unicode.Zl, unicode.Zp)
}

// isLineBreak reports whether r terminates a line. "\r\n" is two terminators in a row, which joins
// the same way as one.
func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// WriteOutput writes result followed by a newline to stdout when outputFile is nil. Otherwise it
// creates or truncates the file and writes result exactly, without a trailing newline.
func WriteOutput(stdout io.Writer, outputFile *string, result string) error {
	if outputFile == nil {
		_, err := io.WriteString(stdout, result+"\n")
		return err
	}
	return os.WriteFile(*outputFile, []byte(result), 0o644)
}
