package althtml

import (
	"fmt"
	"io"
)

// String returns the directive's name.
func (d Directive) String() string {
	switch d {
	case noDirective:
		return "None"
	case SetDirective:
		return "Set"
	case MacroDef:
		return "MacroDef"
	case MarkdownBlock:
		return "MarkdownBlock"
	case MarkdownLine:
		return "MarkdownLine"
	case MacroInvoke:
		return "MacroInvoke"
	case MacroCall:
		return "MacroCall"
	case LiteralText:
		return "LiteralText"
	case RawBlock:
		return "RawBlock"
	case RawLine:
		return "RawLine"
	case RawAtBlock:
		return "RawAtBlock"
	case RawAtLine:
		return "RawAtLine"
	case TagLine:
		return "TagLine"
	case ImplicitText:
		return "ImplicitText"
	default:
		return fmt.Sprintf("InvalidDirective%d", int(d))
	}
}

func (s indentStyle) String() string {
	switch s {
	case undetected:
		return "undetected"
	case tabIndent:
		return "tabs"
	case spaceIndent:
		return "spaces"
	default:
		return fmt.Sprintf("invalidIndent%d", int(s))
	}
}

// Format writes a textual representation of the receiver, providing improved
// fmt.Printf display. Produces a multi-line "N. <name level=L>" listing,
// bottom first, when formatted with `%+v", a terse "name@L" form otherwise.
func (st tagStack) Format(f fmt.State, _ rune) {
	for i, tag := range st {
		if f.Flag('+') {
			if i > 0 {
				io.WriteString(f, "\n")
			}
			fmt.Fprintf(f, "%v. %+v", i+1, tag)
		} else {
			if i > 0 {
				io.WriteString(f, " ")
			}
			fmt.Fprintf(f, "%v", tag)
		}
	}
}

// Format writes a textual representation of the receiver: "<name level=L>"
// when formatted with `%+v", "name@L" otherwise; self-closing tags are marked
// with a trailing '>'.
func (tag openTag) Format(f fmt.State, _ rune) {
	mark := ""
	if tag.selfClosing {
		mark = ">"
	}
	if f.Flag('+') {
		fmt.Fprintf(f, "<%s%s level=%v>", tag.name, mark, tag.level)
	} else {
		fmt.Fprintf(f, "%s%s@%v", tag.name, mark, tag.level)
	}
}

func (st tagStack) String() string { return fmt.Sprint(st) }
