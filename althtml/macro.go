package althtml

import (
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/althtml/althtml/internal/textutil"
)

// macro is a stored macro definition.
type macro struct {
	body     []string // dedented body lines, with their endings
	isArg    bool     // takes positional arguments, called with '!'
	argCount int
}

type macroTable map[string]macro

func (mt macroTable) clone() macroTable {
	out := make(macroTable, len(mt))
	for name, m := range mt {
		out[name] = m
	}
	return out
}

var argPattern = regexp.MustCompile(`@(\d+)`)

// countArgs returns one more than the highest @N placeholder in body, or 0
// when there are none. Comments are ignored.
func countArgs(body []string) int {
	n := 0
	for _, l := range body {
		l, _, _ = strings.Cut(l, commentMarker)
		for _, m := range argPattern.FindAllStringSubmatch(l, -1) {
			if i, err := strconv.Atoi(m[1]); err == nil && i+1 > n {
				n = i + 1
			}
		}
	}
	return n
}

// expand substitutes args into the body's placeholders, highest index first,
// returning the source to compile.
func (m macro) expand(args []string) string {
	lines := make([]string, len(m.body))
	for i, l := range m.body {
		l, _, _ = strings.Cut(l, commentMarker)
		lines[i] = strings.TrimRightFunc(l, unicode.IsSpace)
	}
	src := strings.Join(lines, "\n")
	for i := len(args) - 1; i >= 0; i-- {
		src = strings.ReplaceAll(src, "@"+strconv.Itoa(i), args[i])
	}
	return src
}

func (cc *compilation) defineMacro(i int) (int, error) {
	ln := &cc.lines[i]
	name := strings.TrimSpace(strings.TrimPrefix(ln.content, ":macro"))
	isArg := strings.HasPrefix(name, "!")
	if isArg {
		name = strings.TrimSpace(name[1:])
	}
	if name == "" {
		if isArg {
			return 0, errorf(SyntaxError, ln.no, "macro name missing after ':macro !'")
		}
		return 0, errorf(SyntaxError, ln.no, "macro name missing after ':macro'")
	}

	end, err := cc.blockEnd(i, ln.level)
	if err != nil {
		return 0, err
	}
	m := macro{
		body:  cc.dedent(cc.lines[i+1:end], ln.level+1),
		isArg: isArg,
	}
	if isArg {
		m.argCount = countArgs(m.body)
	}
	cc.macros[name] = m
	cc.log.Debugw("defined macro", "line", ln.no, "name", name, "args", m.argCount)
	return end - i, nil
}

func (cc *compilation) invokeMacro(i int) (int, error) {
	ln := &cc.lines[i]
	name := strings.TrimSpace(ln.content[1:])
	if name == "" {
		return 0, errorf(SyntaxError, ln.no, "macro name missing after '@'")
	}
	m, ok := cc.macros[name]
	if !ok {
		return 0, errorf(UndefinedError, ln.no, "undefined macro invoked: '@%s'", name)
	}
	if m.isArg {
		return 0, errorf(UndefinedError, ln.no, "cannot invoke argument macro '@%s' using '@', use '!%s'", name, name)
	}
	if err := cc.compileInto(ln, strings.Join(m.body, "")); err != nil {
		return 0, err
	}
	return 1, nil
}

func (cc *compilation) callMacro(i int) (int, error) {
	ln := &cc.lines[i]
	name := strings.TrimSpace(ln.content[1:])
	if name == "" {
		return 0, errorf(SyntaxError, ln.no, "macro name missing after '!'")
	}
	m, ok := cc.macros[name]
	if !ok {
		return 0, errorf(UndefinedError, ln.no, "undefined macro called: '!%s'", name)
	}
	if !m.isArg {
		return 0, errorf(UndefinedError, ln.no, "cannot call simple macro '!%s' using '!', use '@%s'", name, name)
	}

	blocks, end, err := cc.argumentBlocks(i, ln.level)
	if err != nil {
		return 0, err
	}
	if len(blocks) != m.argCount {
		return 0, errorf(UndefinedError, ln.no,
			"macro '!%s' expected %d arguments, but received %d", name, m.argCount, len(blocks))
	}

	args := make([]string, len(blocks))
	for k, b := range blocks {
		if args[k], err = cc.argument(ln, cc.lines[b.start:b.end]); err != nil {
			return 0, err
		}
	}
	if err := cc.compileInto(ln, m.expand(args)); err != nil {
		return 0, err
	}
	return end - i, nil
}

// argument evaluates one argument block of the call on line ln. A block of
// a single text-like line is substituted text; any other block is compiled.
func (cc *compilation) argument(ln *line, block []line) (string, error) {
	first := firstContent(block)
	if first < 0 {
		return "", nil
	}
	if text := block[first].content; firstContent(block[first+1:]) < 0 && isTextArgument(text) {
		if strings.HasPrefix(text, "|") {
			text = strings.TrimLeftFunc(text[1:], unicode.IsSpace)
		}
		return cc.vars.substitute(text), nil
	}
	sub, err := cc.fork(ln.no)
	if err != nil {
		return "", err
	}
	return sub.Compile(strings.Join(cc.dedent(block, ln.level+1), ""))
}

// isTextArgument reports whether an argument line reads as text rather than
// markup: it starts with '|', or with none of a tag-like token, '>', '<tag',
// '@', '!' or ':'.
func isTextArgument(s string) bool {
	if s == "" || s[0] == '|' {
		return true
	}
	switch c := s[0]; {
	case isTagByte(c), c == '>', c == '@', c == '!', c == ':':
		return false
	case c == '<':
		return len(s) < 2 || !isTagByte(s[1])
	}
	return true
}

// compileInto compiles src in a forked compiler, splicing its output
// indented to the level of line ln.
func (cc *compilation) compileInto(ln *line, src string) error {
	sub, err := cc.fork(ln.no)
	if err != nil {
		return err
	}
	html, err := sub.Compile(src)
	if err != nil {
		return err
	}
	cc.splice(ln.level, html)
	return nil
}

// splice writes html indented to level, ensuring it ends with a newline.
// Empty lines stay unindented.
func (cc *compilation) splice(level int, html string) {
	if html == "" {
		return
	}
	w := textutil.PrefixWriter(outputIndent(level), &cc.out)
	io.WriteString(w, html)
	if !strings.HasSuffix(html, "\n") {
		io.WriteString(w, "\n")
	}
	w.Close()
}
