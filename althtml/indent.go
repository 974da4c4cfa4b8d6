package althtml

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"
)

type indentStyle int

const (
	undetected indentStyle = iota
	tabIndent
	spaceIndent
)

// indenter computes line levels, detecting its indent style and unit from
// the first indented line it sees.
type indenter struct {
	style indentStyle
	unit  int
	log   *zap.SugaredLogger
}

// leadingSpace returns the whitespace prefix of s.
func leadingSpace(s string) string {
	return s[:len(s)-len(strings.TrimLeftFunc(s, unicode.IsSpace))]
}

// levelOf returns the indentation level of a line (given without its line
// ending). An inconsistent space indent is returned as an IndentationError
// alongside the best-effort level.
func (ind *indenter) levelOf(text string, lineNo int) (int, error) {
	ws := leadingSpace(text)
	if ws == "" {
		return 0, nil
	}

	if ind.style == undetected {
		switch ws[0] {
		case '\t':
			ind.style, ind.unit = tabIndent, 1
		case ' ':
			ind.style = spaceIndent
			ind.unit = len(ws) - len(strings.TrimLeft(ws, " "))
		default:
			return 0, nil
		}
		ind.log.Debugw("detected indentation", "line", lineNo, "style", ind.style, "unit", ind.unit)
	}

	switch ind.style {
	case tabIndent:
		if strings.Trim(ws, "\t") != "" {
			ind.log.Warnw("mixed indentation, counting tabs", "line", lineNo)
			return strings.Count(ws, "\t"), nil
		}
		return len(ws), nil

	case spaceIndent:
		if strings.Trim(ws, " ") != "" {
			ind.log.Warnw("mixed indentation, counting whitespace", "line", lineNo, "unit", ind.unit)
			return utf8.RuneCountInString(ws) / ind.unit, nil
		}
		level := len(ws) / ind.unit
		if len(ws)%ind.unit != 0 {
			return level, errorf(IndentationError, lineNo,
				"inconsistent indentation, expected multiple of %d spaces, got %d", ind.unit, len(ws))
		}
		return level, nil
	}
	return 0, nil
}

// lenientLevel computes a level without detecting style, warning or failing;
// it serves comment-only lines, which never affect indentation state.
func (ind *indenter) lenientLevel(text string) int {
	ws := leadingSpace(text)
	switch ind.style {
	case tabIndent:
		return strings.Count(ws, "\t")
	case spaceIndent:
		return utf8.RuneCountInString(ws) / ind.unit
	}
	return 0
}

// prefix returns the leading whitespace of a line at the given level.
func (ind *indenter) prefix(level int) string {
	if level <= 0 {
		return ""
	}
	switch ind.style {
	case tabIndent:
		return strings.Repeat("\t", level)
	case spaceIndent:
		return strings.Repeat(" ", level*ind.unit)
	}
	return ""
}

// outputIndent returns the indentation of emitted HTML at the given level.
func outputIndent(level int) string {
	if level <= 0 {
		return ""
	}
	return strings.Repeat("  ", level)
}
