package althtml

import (
	"bufio"
	"strings"
	"unicode"

	"github.com/althtml/althtml/internal/textutil"
)

// commentMarker starts an inline comment that runs to the end of the line.
const commentMarker = "#//"

// line is a precomputed record of one source line.
type line struct {
	no      int    // 1-based line number
	raw     string // including its line ending
	text    string // without its line ending
	content string // trimmed, with any inline comment stripped
	level   int
	err     error // deferred indentation error, raised when the line is processed

	blank   bool // whitespace only
	comment bool // comment only, as a whole line
}

// skip reports whether the line carries no content for the dispatcher or the
// block extractor.
func (ln *line) skip() bool { return ln.blank || ln.comment }

// readLines splits source into line records, computing each line's level.
// Blank lines carry no level; comment-only lines get a lenient level that
// never triggers detection or errors.
func (ind *indenter) readLines(source string) []line {
	var lines []line
	sc := bufio.NewScanner(strings.NewReader(source))
	sc.Buffer(nil, len(source)+1)
	sc.Split(textutil.ScanLines)
	for sc.Scan() {
		raw := sc.Text()
		ln := line{
			no:   len(lines) + 1,
			raw:  raw,
			text: strings.TrimRight(raw, "\r\n"),
		}
		trimmed := strings.TrimSpace(ln.text)
		switch {
		case trimmed == "":
			ln.blank = true
			ln.level = -1
		case strings.HasPrefix(trimmed, commentMarker):
			ln.comment = true
			ln.level = ind.lenientLevel(ln.text)
		default:
			ln.content = stripComment(trimmed)
			ln.level, ln.err = ind.levelOf(ln.text, ln.no)
		}
		lines = append(lines, ln)
	}
	return lines
}

// stripComment removes any inline comment from s, unless its marker lies
// within an open quoted span; the result is right trimmed.
func stripComment(s string) string {
	if !strings.Contains(s, commentMarker) {
		return s
	}
	var quote byte
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '\\' && quote != 0:
			i++
		case c == '"' || c == '\'':
			if quote == 0 {
				quote = c
			} else if quote == c {
				quote = 0
			}
		case quote == 0 && strings.HasPrefix(s[i:], commentMarker):
			return strings.TrimRightFunc(s[:i], unicode.IsSpace)
		}
	}
	return s
}
