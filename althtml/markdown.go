package althtml

import (
	"strings"

	"github.com/russross/blackfriday"
)

const markdownExtensions = 0 |
	blackfriday.NoIntraEmphasis |
	blackfriday.FencedCode |
	blackfriday.Autolink |
	blackfriday.Strikethrough |
	blackfriday.SpaceHeadings |
	blackfriday.HeadingIDs |
	blackfriday.BackslashLineBreak

func renderMarkdown(text string) string {
	return string(blackfriday.Run([]byte(text), blackfriday.WithExtensions(markdownExtensions)))
}

// markdownBlock renders the block following line i as markdown, after
// substituting variables into it.
func (cc *compilation) markdownBlock(i int) (int, error) {
	ln := &cc.lines[i]
	end, err := cc.blockEnd(i, ln.level)
	if err != nil {
		return 0, err
	}
	text := strings.Join(cc.dedent(cc.lines[i+1:end], ln.level+1), "")
	cc.emitBlock(renderMarkdown(cc.vars.substitute(text)))
	return end - i, nil
}

func (cc *compilation) markdownLine(i int) (int, error) {
	text := strings.TrimPrefix(cc.lines[i].content, ":markdown ")
	cc.emitBlock(renderMarkdown(cc.vars.substitute(text)))
	return 1, nil
}
