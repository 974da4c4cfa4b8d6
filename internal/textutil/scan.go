package textutil

import (
	"bytes"
	"unicode"
	"unicode/utf8"
)

// ScanLines implements a bufio.SplitFunc like bufio.ScanLines, except that
// returned tokens keep their line ending: "\n", "\r\n" or a lone "\r".
// A final line without any ending is returned as-is.
func ScanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i+1], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i+2], nil
			}
			return i + 1, data[:i+1], nil
		}
		if atEOF {
			return i + 1, data[:i+1], nil
		}
		// need one more byte to tell "\r" from "\r\n"
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	// Request more data.
	return 0, nil, nil
}

// ScanAttrs implements a bufio.SplitFunc that scans attribute tokens: runs of
// non-space characters within which double quoted spans may contain spaces
// (and backslash escaped quotes). Quotes are kept in the returned token.
// An unterminated quote extends the token to the end of input.
func ScanAttrs(data []byte, atEOF bool) (advance int, token []byte, err error) {
	// Skip leading spaces.
	start := 0
	for width := 0; start < len(data); start += width {
		var r rune
		r, width = utf8.DecodeRune(data[start:])
		if !unicode.IsSpace(r) {
			break
		}
	}

	quoted, esc := false, false
	for width, i := 0, start; i < len(data); i += width {
		var r rune
		r, width = utf8.DecodeRune(data[i:])
		switch {
		case esc:
			esc = false
		case quoted && r == '\\':
			esc = true
		case r == '"':
			quoted = !quoted
		case !quoted && unicode.IsSpace(r):
			return i + width, data[start:i], nil
		}
	}

	// If we're at EOF, we have a final, non-empty, non-terminated token. Return it.
	if atEOF && len(data) > start {
		return len(data), data[start:], nil
	}
	// Request more data.
	return start, nil, nil
}
