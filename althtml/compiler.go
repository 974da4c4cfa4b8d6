// Package althtml compiles althtml, an indentation structured markup
// language, into HTML.
//
// Each source line is a tag, text, or a directive:
//
// 	set title = "Hello"        #// variables substitute literally into text
// 	:macro !card               #// an argument macro, placeholders @0, @1, ...
// 	  div card
// 	    h2 | @0
// 	    p | @1
// 	html
// 	  body
// 	    h1 | title
// 	    !card
// 	      | First
// 	      | Lorem ipsum
//
// Tags close when a following line dedents to, or below, their level.
package althtml

import (
	"strings"

	"go.uber.org/zap"
)

// MaxDepth bounds the nesting of sub-compilations: macro bodies, macro
// arguments, and set blocks each compile one level deeper than their caller.
const MaxDepth = 100

// Compiler compiles althtml source. Variables and macros defined by one
// Compile call remain defined for later calls, so that header files may
// provide definitions to the files compiled after them; ClearDefinitions
// forgets them. A Compiler is not safe for concurrent use.
type Compiler struct {
	// Log receives warnings on recoverable conditions such as mixed
	// indentation, and debug traces of directive dispatch. Nil means no
	// logging.
	Log *zap.SugaredLogger

	vars   varTable
	macros macroTable
	depth  int
}

// compilation is the state of one Compile call.
type compilation struct {
	*Compiler
	log   *zap.SugaredLogger
	ind   indenter
	lines []line
	stack tagStack
	level int
	out   strings.Builder
}

// Compile compiles source to HTML. Output, open tags and indentation state
// start afresh on every call. The returned HTML has no trailing newline.
func (c *Compiler) Compile(source string) (string, error) {
	if c.macros == nil {
		c.macros = make(macroTable)
	}
	cc := compilation{Compiler: c, log: c.logger()}
	cc.ind.log = cc.log
	cc.lines = cc.ind.readLines(source)
	for i := 0; i < len(cc.lines); {
		if cc.lines[i].skip() {
			i++
			continue
		}
		n, err := cc.process(i)
		if err != nil {
			return "", err
		}
		i += n
	}
	cc.stack.closeTo(0, &cc.out)
	return strings.TrimSuffix(cc.out.String(), "\n"), nil
}

// process applies line i's indentation, closing any tags it ends, then
// dispatches its content.
func (cc *compilation) process(i int) (int, error) {
	ln := &cc.lines[i]
	if ln.err != nil {
		return 0, ln.err
	}
	if ln.level > cc.level+1 {
		return 0, errorf(IndentationError, ln.no,
			"invalid indentation increase, went from level %d to %d", cc.level, ln.level)
	}
	if ln.level < cc.level {
		cc.stack.closeTo(ln.level, &cc.out)
	} else if top, ok := cc.stack.top(); ok && ln.level == cc.level && top.level == ln.level {
		cc.stack.closeTo(ln.level, &cc.out)
	}
	cc.level = ln.level
	n, err := cc.dispatch(i)
	if err == nil && n < 1 {
		n = 1
	}
	return n, err
}

// ClearDefinitions forgets all variables and macros.
func (c *Compiler) ClearDefinitions() {
	c.vars = varTable{}
	c.macros = make(macroTable)
}

// Var returns the value of a defined variable.
func (c *Compiler) Var(name string) (string, bool) { return c.vars.get(name) }

// HasMacro reports whether a macro is defined under name.
func (c *Compiler) HasMacro(name string) bool {
	_, ok := c.macros[name]
	return ok
}

// fork returns a sub-compiler seeded with copies of the receiver's
// definitions, for a sub-compilation started from the given line.
func (c *Compiler) fork(lineNo int) (*Compiler, error) {
	if c.depth >= MaxDepth {
		return nil, errorf(RecursionError, lineNo, "nesting exceeds %d levels, is a macro expanding itself?", MaxDepth)
	}
	return &Compiler{
		Log:    c.Log,
		vars:   c.vars.clone(),
		macros: c.macros.clone(),
		depth:  c.depth + 1,
	}, nil
}

func (c *Compiler) logger() *zap.SugaredLogger {
	if c.Log == nil {
		return zap.NewNop().Sugar()
	}
	return c.Log
}
