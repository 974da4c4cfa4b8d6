package althtml

import "strings"

// span is a half-open range of line indices.
type span struct{ start, end int }

// blockEnd returns the end index of the block following line i: every line
// indented deeper than level, up to the first content line at or above it.
// Blank and comment lines within the block belong to it; trailing ones do
// not.
func (cc *compilation) blockEnd(i, level int) (int, error) {
	end := i + 1
	for j := i + 1; j < len(cc.lines); j++ {
		ln := &cc.lines[j]
		if ln.blank {
			continue
		}
		if ln.comment {
			if ln.level > level {
				end = j + 1
			}
			continue
		}
		if ln.err != nil {
			return 0, ln.err
		}
		if ln.level <= level {
			break
		}
		end = j + 1
	}
	return end, nil
}

// argumentBlocks collects the argument blocks of a macro call on line i:
// each starts at a content line exactly one level deeper than the call, and
// runs through any deeper, blank or comment lines. Once a block has started,
// a comment no deeper than the call ends the arguments. It also returns the
// end index of the last block.
func (cc *compilation) argumentBlocks(i, level int) (blocks []span, end int, err error) {
	end = i + 1
	for j := i + 1; j < len(cc.lines); j++ {
		ln := &cc.lines[j]
		if ln.blank {
			continue
		}
		if ln.comment {
			switch {
			case len(blocks) == 0:
			case ln.level <= level:
				return blocks, end, nil
			default:
				blocks[len(blocks)-1].end = j + 1
				end = j + 1
			}
			continue
		}
		if ln.err != nil {
			return nil, 0, ln.err
		}
		switch {
		case ln.level <= level:
			return blocks, end, nil
		case ln.level == level+1:
			blocks = append(blocks, span{j, j + 1})
		case len(blocks) == 0:
			return nil, 0, errorf(IndentationError, ln.no,
				"invalid indentation increase, went from level %d to %d", level, ln.level)
		default:
			blocks[len(blocks)-1].end = j + 1
		}
		end = j + 1
	}
	return blocks, end, nil
}

// dedent strips the indentation of base level from every line of a block,
// returning the lines with their endings. Blank and comment lines that lack
// the indentation are kept as-is; any other such line is kept with a
// warning.
func (cc *compilation) dedent(block []line, base int) []string {
	prefix := cc.ind.prefix(base)
	out := make([]string, 0, len(block))
	for i := range block {
		ln := &block[i]
		switch {
		case strings.HasPrefix(ln.raw, prefix):
			out = append(out, ln.raw[len(prefix):])
		case !ln.skip():
			cc.log.Warnw("block line lacks expected indentation", "line", ln.no, "level", base)
			fallthrough
		default:
			out = append(out, ln.raw)
		}
	}
	return out
}

// firstContent returns the index of the first line carrying content, or -1.
func firstContent(block []line) int {
	for i := range block {
		if !block[i].skip() {
			return i
		}
	}
	return -1
}
