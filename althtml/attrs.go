package althtml

import (
	"bufio"
	"strings"
	"unicode"

	"github.com/althtml/althtml/internal/textutil"
)

// attrs accumulates the attributes of one tag line.
type attrs struct {
	id       strings.Builder
	implicit []string // bare word classes
	explicit []string // classes from class="..."
	other    strings.Builder
}

// parseAttrs renders an attribute string in output order: id, class, then
// any other attributes in source order. Every token is substituted before it
// is classified.
func parseAttrs(vars *varTable, s string) string {
	if s == "" {
		return ""
	}
	var as attrs
	sc := bufio.NewScanner(strings.NewReader(s))
	sc.Buffer(nil, len(s)+1)
	sc.Split(textutil.ScanAttrs)
	for sc.Scan() {
		as.add(vars.substitute(sc.Text()))
	}
	return as.String()
}

func (as *attrs) add(token string) {
	if strings.HasPrefix(token, "#") {
		as.id.WriteString(token[1:])
		return
	}
	name, value, ok := strings.Cut(token, "=")
	if !ok {
		as.implicit = append(as.implicit, token)
		return
	}
	value = escapeAttr(unquote(value))
	if strings.EqualFold(name, "class") {
		as.explicit = append(as.explicit, strings.Fields(value)...)
		return
	}
	as.other.WriteByte(' ')
	as.other.WriteString(name)
	as.other.WriteString(`="`)
	as.other.WriteString(value)
	as.other.WriteByte('"')
}

func (as *attrs) String() string {
	var sb strings.Builder
	if as.id.Len() > 0 {
		sb.WriteString(` id="`)
		sb.WriteString(escapeAttr(as.id.String()))
		sb.WriteByte('"')
	}
	if classes := uniq(append(as.implicit, as.explicit...)); len(classes) > 0 {
		sb.WriteString(` class="`)
		sb.WriteString(strings.Join(classes, " "))
		sb.WriteByte('"')
	}
	sb.WriteString(as.other.String())
	return sb.String()
}

// unquote strips a surrounding pair of double quotes, unescaping any
// escaped quotes within; other values are returned as-is.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return strings.ReplaceAll(s[1:len(s)-1], `\"`, `"`)
	}
	return s
}

func escapeAttr(s string) string { return strings.ReplaceAll(s, `"`, "&quot;") }

// uniq removes repeated words, keeping first occurrences in order.
func uniq(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := words[:0]
	for _, w := range words {
		if _, dup := seen[w]; !dup {
			seen[w] = struct{}{}
			out = append(out, w)
		}
	}
	return out
}

// splitPipe splits a tag line remainder on its first unquoted '|', into a
// trimmed attribute string and left trimmed text.
func splitPipe(s string) (attrStr, text string) {
	quoted := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if quoted {
				i++
			}
		case '"':
			quoted = !quoted
		case '|':
			if !quoted {
				return strings.TrimSpace(s[:i]), strings.TrimLeftFunc(s[i+1:], unicode.IsSpace)
			}
		}
	}
	return strings.TrimSpace(s), ""
}
