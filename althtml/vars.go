package althtml

import (
	"sort"
	"strings"
)

// varTable maps variable names to values, remembering definition order.
type varTable struct {
	names  []string
	values map[string]string
	order  []string // names by descending length, nil when stale
}

func (vt *varTable) set(name, value string) {
	if vt.values == nil {
		vt.values = make(map[string]string)
	}
	if _, defined := vt.values[name]; !defined {
		vt.names = append(vt.names, name)
		vt.order = nil
	}
	vt.values[name] = value
}

func (vt *varTable) get(name string) (string, bool) {
	value, ok := vt.values[name]
	return value, ok
}

func (vt *varTable) clone() varTable {
	values := make(map[string]string, len(vt.values))
	for name, value := range vt.values {
		values[name] = value
	}
	return varTable{
		names:  append([]string(nil), vt.names...),
		values: values,
	}
}

// substitute replaces every variable name occurring in text with its value,
// one name at a time, longest names first. Replacement is literal: names
// need no word boundary, and a later name may match within an earlier
// replacement.
func (vt *varTable) substitute(text string) string {
	if len(vt.names) == 0 || text == "" {
		return text
	}
	if vt.order == nil {
		vt.order = append([]string(nil), vt.names...)
		sort.SliceStable(vt.order, func(i, j int) bool {
			return len(vt.order[i]) > len(vt.order[j])
		})
	}
	for _, name := range vt.order {
		if name != "" && strings.Contains(text, name) {
			text = strings.ReplaceAll(text, name, vt.values[name])
		}
	}
	return text
}

// handleSet processes a set directive: an inline quoted value, or a block
// that is either compiled in isolation or, when it starts with raw, kept
// verbatim.
func (cc *compilation) handleSet(i int) (int, error) {
	ln := &cc.lines[i]
	name, value, inline := strings.Cut(strings.TrimPrefix(ln.content, "set "), "=")
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, errorf(SyntaxError, ln.no, "variable name missing after 'set'")
	}

	if inline {
		value = strings.TrimSpace(value)
		if len(value) < 2 || value[0] != '"' || value[len(value)-1] != '"' {
			return 0, errorf(SyntaxError, ln.no, "inline set value for '%s' must be enclosed in double quotes", name)
		}
		cc.vars.set(name, unquote(value))
		return 1, nil
	}

	end, err := cc.blockEnd(i, ln.level)
	if err != nil {
		return 0, err
	}
	block := cc.lines[i+1 : end]

	first := firstContent(block)
	switch {
	case first < 0:
		cc.vars.set(name, "")
	case block[first].content == "raw":
		cc.vars.set(name, strings.Join(cc.dedent(block[first+1:], ln.level+1), ""))
	default:
		sub, err := cc.fork(ln.no)
		if err != nil {
			return 0, err
		}
		html, err := sub.Compile(strings.Join(cc.dedent(block, ln.level+1), ""))
		if err != nil {
			return 0, err
		}
		cc.vars.set(name, html)
	}
	return end - i, nil
}
