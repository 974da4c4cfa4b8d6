package althtml

import (
	"io"
	"strings"

	"github.com/althtml/althtml/internal/textutil"
)

// rawBlock emits the block following line i verbatim, dedented and indented
// for the current nesting.
func (cc *compilation) rawBlock(i int) (int, error) {
	ln := &cc.lines[i]
	end, err := cc.blockEnd(i, ln.level)
	if err != nil {
		return 0, err
	}
	body := cc.dedent(cc.lines[i+1:end], ln.level+1)
	w := textutil.PrefixWriter(outputIndent(cc.stack.textLevel()), &cc.out)
	for _, l := range body {
		io.WriteString(w, l)
	}
	if n := len(body); n > 0 && !strings.HasSuffix(body[n-1], "\n") {
		io.WriteString(w, "\n")
	}
	return end - i, w.Close()
}

// rawAtBlock is rawBlock with variables substituted into the joined block.
func (cc *compilation) rawAtBlock(i int) (int, error) {
	ln := &cc.lines[i]
	end, err := cc.blockEnd(i, ln.level)
	if err != nil {
		return 0, err
	}
	text := strings.Join(cc.dedent(cc.lines[i+1:end], ln.level+1), "")
	cc.emitBlock(cc.vars.substitute(text))
	return end - i, nil
}

// emitBlock writes multi-line text indented for the current nesting,
// ensuring it ends with a newline when non-empty.
func (cc *compilation) emitBlock(text string) {
	if text == "" {
		return
	}
	w := textutil.PrefixWriter(outputIndent(cc.stack.textLevel()), &cc.out)
	io.WriteString(w, text)
	if !strings.HasSuffix(text, "\n") {
		io.WriteString(w, "\n")
	}
	w.Close()
}
