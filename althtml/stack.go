package althtml

import "strings"

// doctypeMarker names the document type tag, which is never closed.
const doctypeMarker = "!doctype"

type openTag struct {
	name        string
	level       int
	selfClosing bool
}

// tagStack holds the currently open tags; levels are non-increasing from top
// to bottom.
type tagStack []openTag

func (st *tagStack) push(tag openTag) { *st = append(*st, tag) }

func (st tagStack) top() (openTag, bool) {
	if len(st) == 0 {
		return openTag{}, false
	}
	return st[len(st)-1], true
}

// textLevel returns the output level for text content: one deeper than the
// innermost open tag, or 0 when none is open.
func (st tagStack) textLevel() int {
	if tag, ok := st.top(); ok {
		return tag.level + 1
	}
	return 0
}

// closeTo pops every tag opened at or deeper than level, writing its closing
// tag to out unless it is self-closing or the document type.
func (st *tagStack) closeTo(level int, out *strings.Builder) {
	for len(*st) > 0 {
		tag := (*st)[len(*st)-1]
		if tag.level < level {
			break
		}
		*st = (*st)[:len(*st)-1]
		if tag.selfClosing || strings.EqualFold(tag.name, doctypeMarker) {
			continue
		}
		out.WriteString(outputIndent(tag.level))
		out.WriteString("</")
		out.WriteString(tag.name)
		out.WriteString(">\n")
	}
}
