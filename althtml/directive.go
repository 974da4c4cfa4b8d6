package althtml

import (
	"strings"
	"unicode"
)

// Directive is the kind of a source line, determining how it compiles.
type Directive int

// Directive kinds, in classification priority order.
const (
	noDirective Directive = iota

	SetDirective  // set name = "value", or set name with a block value
	MacroDef      // :macro name, or :macro !name for an argument macro
	MarkdownBlock // :markdown followed by a block of markdown
	MarkdownLine  // :markdown text
	MacroInvoke   // @name
	MacroCall     // !name followed by argument blocks
	LiteralText   // | text
	RawBlock      // raw followed by a verbatim block
	RawLine       // raw text
	RawAtBlock    // raw@ followed by a block, with variables substituted
	RawAtLine     // raw@ text
	TagLine       // tag[>] attrs | text
	ImplicitText  // anything else
)

// Classify returns the directive of a line's trimmed, comment stripped
// content.
func Classify(content string) Directive {
	switch {
	case content == "":
		return noDirective
	case strings.HasPrefix(content, "set "):
		return SetDirective
	case content == ":macro", strings.HasPrefix(content, ":macro "):
		return MacroDef
	case content == ":markdown":
		return MarkdownBlock
	case strings.HasPrefix(content, ":markdown "):
		return MarkdownLine
	case content[0] == '@':
		return MacroInvoke
	case content[0] == '!':
		return MacroCall
	case content[0] == '|':
		return LiteralText
	case content == "raw":
		return RawBlock
	case strings.HasPrefix(content, "raw "):
		return RawLine
	case content == "raw@":
		return RawAtBlock
	case strings.HasPrefix(content, "raw@ "):
		return RawAtLine
	case isTagByte(content[0]):
		return TagLine
	default:
		return ImplicitText
	}
}

func isTagByte(c byte) bool {
	return 'a' <= c && c <= 'z' ||
		'A' <= c && c <= 'Z' ||
		'0' <= c && c <= '9' ||
		c == '_' || c == '-'
}

// splitTag splits a tag line into its tag name, self-closing marker, and
// left trimmed remainder.
func splitTag(content string) (name string, selfClosing bool, rest string) {
	i := 0
	for i < len(content) && isTagByte(content[i]) {
		i++
	}
	name, rest = content[:i], content[i:]
	if strings.HasPrefix(rest, ">") {
		selfClosing, rest = true, rest[1:]
	}
	return name, selfClosing, strings.TrimLeftFunc(rest, unicode.IsSpace)
}

// dispatch compiles the content line i, returning how many lines it consumed.
func (cc *compilation) dispatch(i int) (int, error) {
	ln := &cc.lines[i]
	d := Classify(ln.content)
	cc.log.Debugw("dispatch", "line", ln.no, "level", ln.level, "directive", d, "open", cc.stack)

	switch d {
	case noDirective:
		return 1, nil
	case SetDirective:
		return cc.handleSet(i)
	case MacroDef:
		return cc.defineMacro(i)
	case MarkdownBlock:
		return cc.markdownBlock(i)
	case MarkdownLine:
		return cc.markdownLine(i)
	case MacroInvoke:
		return cc.invokeMacro(i)
	case MacroCall:
		return cc.callMacro(i)
	case LiteralText:
		text := strings.TrimLeftFunc(ln.content[1:], unicode.IsSpace)
		cc.emit(cc.stack.textLevel(), cc.vars.substitute(text))
		return 1, nil
	case RawBlock:
		return cc.rawBlock(i)
	case RawLine:
		cc.emit(cc.stack.textLevel(), strings.TrimPrefix(ln.content, "raw "))
		return 1, nil
	case RawAtBlock:
		return cc.rawAtBlock(i)
	case RawAtLine:
		cc.emit(cc.stack.textLevel(), cc.vars.substitute(strings.TrimPrefix(ln.content, "raw@ ")))
		return 1, nil
	case TagLine:
		cc.tagLine(ln)
		return 1, nil
	case ImplicitText:
		cc.emit(cc.stack.textLevel(), cc.vars.substitute(implicitText(ln.content)))
		return 1, nil
	}
	return 0, errorf(SyntaxError, ln.no, "unhandled directive %v", d)
}

// tagLine opens a tag, emitting any inline text within it. A '>' directly
// after the tag name, or ending its attributes, marks it self-closing;
// self-closing tags are never pushed and drop their text.
func (cc *compilation) tagLine(ln *line) {
	name, selfClosing, rest := splitTag(ln.content)
	attrStr, text := splitPipe(rest)
	if strings.HasSuffix(attrStr, ">") {
		// trailing marker form: img src="x.png">
		selfClosing = true
		attrStr = strings.TrimRightFunc(attrStr[:len(attrStr)-1], unicode.IsSpace)
	}
	attrs := parseAttrs(&cc.vars, attrStr)
	if selfClosing {
		cc.emit(ln.level, "<"+name+attrs+" />")
		return
	}
	cc.emit(ln.level, "<"+name+attrs+">")
	cc.stack.push(openTag{name: name, level: ln.level})
	if text != "" {
		cc.emit(ln.level+1, cc.vars.substitute(text))
	}
}

// implicitText unwraps double quoted text verbatim, or collapses whitespace
// runs in unquoted text.
func implicitText(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return strings.Join(strings.Fields(s), " ")
}

func (cc *compilation) emit(level int, text string) {
	cc.out.WriteString(outputIndent(level))
	cc.out.WriteString(text)
	cc.out.WriteByte('\n')
}
