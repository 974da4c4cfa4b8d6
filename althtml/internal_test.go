package althtml

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestIndenter_levelOf(t *testing.T) {
	type step struct {
		text  string
		level int
		fail  bool
	}
	for _, tc := range []struct {
		name  string
		steps []step
		style indentStyle
		unit  int
	}{
		{
			name:  "unindented never detects",
			steps: []step{{"a", 0, false}, {"b", 0, false}},
			style: undetected,
		},
		{
			name:  "tabs",
			steps: []step{{"\ta", 1, false}, {"\t\t\tb", 3, false}, {"c", 0, false}},
			style: tabIndent,
			unit:  1,
		},
		{
			name:  "tabs mixed with spaces count tabs",
			steps: []step{{"\ta", 1, false}, {"\t  \tb", 2, false}},
			style: tabIndent,
			unit:  1,
		},
		{
			name:  "spaces",
			steps: []step{{"   a", 1, false}, {"      b", 2, false}},
			style: spaceIndent,
			unit:  3,
		},
		{
			name:  "spaces not a multiple",
			steps: []step{{"  a", 1, false}, {"   b", 1, true}},
			style: spaceIndent,
			unit:  2,
		},
		{
			name:  "spaces mixed with tabs divide",
			steps: []step{{"  a", 1, false}, {" \t  b", 2, false}},
			style: spaceIndent,
			unit:  2,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ind := indenter{log: zap.NewNop().Sugar()}
			for i, st := range tc.steps {
				level, err := ind.levelOf(st.text, i+1)
				assert.Equal(t, st.level, level, "level of %q", st.text)
				if st.fail {
					assert.True(t, errors.Is(err, IndentationError), "expected indentation error, got %v", err)
				} else {
					assert.NoError(t, err)
				}
			}
			assert.Equal(t, tc.style, ind.style, "style")
			assert.Equal(t, tc.unit, ind.unit, "unit")
		})
	}
}

func TestStripComment(t *testing.T) {
	for _, tc := range []struct {
		in, out string
	}{
		{"p | hi", "p | hi"},
		{"p | hi #// note", "p | hi"},
		{"p | hi#//note #// more", "p | hi"},
		{`p title="#//" #// note`, `p title="#//"`},
		{`p | 'a #// b' c`, `p | 'a #// b' c`},
		{`p | "it's #// quoted"`, `p | "it's #// quoted"`},
		{`p | "esc \" #// still quoted"`, `p | "esc \" #// still quoted"`},
		{`p | "open #// never closed`, `p | "open #// never closed`},
	} {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.out, stripComment(tc.in))
		})
	}
}

func TestReadLines(t *testing.T) {
	ind := indenter{log: zap.NewNop().Sugar()}
	lines := ind.readLines("div\r\n\n  #// c\n  p | x #// y\n   bad\nend")
	require.Len(t, lines, 6)

	assert.Equal(t, "div\r\n", lines[0].raw)
	assert.Equal(t, "div", lines[0].text)
	assert.True(t, lines[1].blank)
	assert.True(t, lines[2].comment)
	assert.Equal(t, 0, lines[2].level, "comments before detection are level 0")
	assert.Equal(t, "p | x", lines[3].content)
	assert.Equal(t, 1, lines[3].level)
	assert.Error(t, lines[4].err)
	assert.Equal(t, 5, lines[4].no)
	assert.Equal(t, "end", lines[5].raw)
}

func TestVarTable_substitute(t *testing.T) {
	var vt varTable
	vt.set("a", "X")
	vt.set("ab", "Y")
	vt.set("abc", "a")
	assert.Equal(t, "Y", vt.substitute("ab"))
	assert.Equal(t, "X", vt.substitute("abc"), "later names apply within earlier replacements")
	assert.Equal(t, "X b-Y", vt.substitute("a b-ab"))

	vt.set("ab", "Z")
	assert.Equal(t, "Z", vt.substitute("ab"), "redefinition replaces value")
	assert.Equal(t, []string{"a", "ab", "abc"}, vt.names, "redefinition keeps order")

	clone := vt.clone()
	clone.set("new", "N")
	_, ok := vt.get("new")
	assert.False(t, ok, "clone must not share state")
}

func TestParseAttrs(t *testing.T) {
	var vt varTable
	vt.set("ID", "main")
	vt.set("TONE", "dark")
	for _, tc := range []struct {
		in, out string
	}{
		{"", ""},
		{"a b a", ` class="a b"`},
		{"#x #y", ` id="xy"`},
		{"#ID TONE", ` id="main" class="dark"`},
		{`class="one two" one three`, ` class="one three two"`},
		{`CLASS=solo`, ` class="solo"`},
		{`alt="a b c" data-v=x`, ` alt="a b c" data-v="x"`},
		{`title=say"so"`, ` title="say&quot;so&quot;"`},
		{`#a"b"`, ` id="a&quot;b&quot;"`},
	} {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.out, parseAttrs(&vt, tc.in))
		})
	}
}

func TestSplitPipe(t *testing.T) {
	for _, tc := range []struct {
		in, attrs, text string
	}{
		{"", "", ""},
		{"a b", "a b", ""},
		{"a | b  c", "a", "b  c"},
		{`t="x|y" | z`, `t="x|y"`, "z"},
		{`t="x\"|y" | z`, `t="x\"|y"`, "z"},
		{"| a | b", "", "a | b"},
	} {
		t.Run(tc.in, func(t *testing.T) {
			attrs, text := splitPipe(tc.in)
			assert.Equal(t, tc.attrs, attrs, "attributes")
			assert.Equal(t, tc.text, text, "text")
		})
	}
}

func TestTagStack_closeTo(t *testing.T) {
	var st tagStack
	st.push(openTag{name: "!DOCTYPE", level: 0})
	st.push(openTag{name: "html", level: 0})
	st.push(openTag{name: "body", level: 1})
	st.push(openTag{name: "img", level: 2, selfClosing: true})
	st.push(openTag{name: "p", level: 2})
	assert.Equal(t, "!DOCTYPE@0 html@0 body@1 img>@2 p@2", fmt.Sprint(st))

	var out strings.Builder
	st.closeTo(2, &out)
	assert.Equal(t, "    </p>\n", out.String())
	assert.Equal(t, 2, st.textLevel())

	out.Reset()
	st.closeTo(0, &out)
	assert.Equal(t, "  </body>\n</html>\n", out.String())
	assert.Empty(t, st)
	assert.Equal(t, 0, st.textLevel())
}

func TestCountArgs(t *testing.T) {
	for _, tc := range []struct {
		body []string
		n    int
	}{
		{nil, 0},
		{[]string{"p | plain\n"}, 0},
		{[]string{"p | @0\n"}, 1},
		{[]string{"p | @2 @0\n", "b | @1\n"}, 3},
		{[]string{"p | @10\n"}, 11},
		{[]string{"p | @0 #// @4\n"}, 1},
	} {
		t.Run(strings.Join(tc.body, ""), func(t *testing.T) {
			assert.Equal(t, tc.n, countArgs(tc.body))
		})
	}
}

func TestMacro_expand(t *testing.T) {
	m := macro{body: []string{"p | @1 @10 @0  #// @0\n", "b | x\n"}, isArg: true, argCount: 11}
	args := make([]string, 11)
	for i := range args {
		args[i] = fmt.Sprintf("<%d>", i)
	}
	assert.Equal(t, "p | <1> <10> <0>\nb | x", m.expand(args))
}

func TestIsTextArgument(t *testing.T) {
	for _, tc := range []struct {
		in   string
		text bool
	}{
		{"| text", true},
		{"|p", true},
		{"'quoted'", true},
		{"<", true},
		{"< b", true},
		{"(aside)", true},
		{"p", false},
		{"set x", false},
		{">", false},
		{"<b>", false},
		{"@m", false},
		{"!m", false},
		{":macro", false},
	} {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.text, isTextArgument(tc.in))
		})
	}
}

func TestCompilation_blocks(t *testing.T) {
	var c Compiler
	cc := compilation{Compiler: &c, log: zap.NewNop().Sugar()}
	cc.ind.log = cc.log
	cc.lines = cc.ind.readLines(`!call

  | one
    deeper
  #// inside

  | two
#// shallow
p
`)

	end, err := cc.blockEnd(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 7, end, "trailing blank and comment lines are not part of the block")

	blocks, end, err := cc.argumentBlocks(0, 0)
	require.NoError(t, err)
	assert.Equal(t, []span{{2, 5}, {6, 7}}, blocks)
	assert.Equal(t, 7, end)

	assert.Equal(t,
		[]string{"| one\n", "  deeper\n", "#// inside\n"},
		cc.dedent(cc.lines[2:5], 1))

	cc.lines = cc.ind.readLines("!call\n  | a\n#// note\n  | b\n")
	blocks, end, err = cc.argumentBlocks(0, 0)
	require.NoError(t, err)
	assert.Equal(t, []span{{1, 2}}, blocks, "a shallow comment ends the arguments")
	assert.Equal(t, 2, end)
}
