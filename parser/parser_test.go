package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heathj/govox/automation"
)

type treeTest struct {
	name     string
	in       string
	expected string
}

var treeTests = []treeTest{
	{
		name: "inline content",
		in:   `<h1>Title</h1><p>Some <a href="#">link</a> text</p>`,
		expected: `rootWebArea
| heading "Title"
|   staticText "Title"
|     inlineTextBox "Title" words=[0]-[5]
| paragraph
|   staticText "Some "
|     inlineTextBox "Some " words=[0]-[4]
|   link "link" [focusable]
|     staticText "link"
|       inlineTextBox "link" words=[0]-[4]
|   staticText " text"
|     inlineTextBox " text" words=[1]-[5]`,
	},
	{
		name: "title",
		in:   `<title> My  Doc </title><p>x</p>`,
		expected: `rootWebArea "My Doc"
| paragraph
|   staticText "x"
|     inlineTextBox "x" words=[0]-[1]`,
	},
	{
		name: "preformatted",
		in:   "<pre>a b\nc</pre>",
		expected: `rootWebArea
| genericContainer
|   staticText "a b\nc"
|     inlineTextBox "a b\n" words=[0 2]-[1 3]
|     inlineTextBox "c" words=[0]-[1]`,
	},
	{
		name: "line break",
		in:   `<p>one<br>two</p>`,
		expected: `rootWebArea
| paragraph
|   staticText "one"
|     inlineTextBox "one" words=[0]-[3]
|   lineBreak "\n"
|     inlineTextBox "\n"
|   staticText "two"
|     inlineTextBox "two" words=[0]-[3]`,
	},
	{
		name: "form controls",
		in: `<input value="abc" placeholder="Name"><input type="hidden" value="x">` +
			`<input type="checkbox" aria-label="Agree"><input type="submit" value="Send"><textarea>hi</textarea>`,
		expected: `rootWebArea
| textField "Name" value="abc" [editable,focusable]
| checkBox "Agree" [focusable]
| button "Send" [focusable]
| textField value="hi" [editable,focusable]`,
	},
	{
		name: "content editable",
		in:   `<div contenteditable>ab</div>`,
		expected: `rootWebArea
| genericContainer [editable,richlyEditable,focusable]
|   staticText "ab" [editable,richlyEditable]
|     inlineTextBox "ab" [editable,richlyEditable] words=[0]-[2]`,
	},
	{
		name: "hidden content",
		in:   `<p aria-hidden="true">x</p><p hidden>y</p><script>z()</script><style>p{}</style>`,
		expected: `rootWebArea
| paragraph [invisible]
|   staticText "x" [invisible]
|     inlineTextBox "x" [invisible] words=[0]-[1]`,
	},
	{
		name: "names",
		in:   `<img alt="Logo"><div role="button" aria-label="Go">x</div>`,
		expected: `rootWebArea
| image "Logo"
| button "Go" [focusable]
|   staticText "x"
|     inlineTextBox "x" words=[0]-[1]`,
	},
	{
		name:     "whitespace only",
		in:       "<div>\n   \n</div>",
		expected: "rootWebArea\n| genericContainer",
	},
}

func TestTreeConstruction(t *testing.T) {
	for _, tt := range treeTests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := ParseString(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, root.String())
		})
	}
}

func TestWordStops(t *testing.T) {
	tests := []struct {
		in     string
		starts []int
		ends   []int
	}{
		{"hello world", []int{0, 6}, []int{5, 11}},
		{"a, b.", []int{0, 3}, []int{1, 4}},
		{"", nil, nil},
		{"  ...  ", nil, nil},
		{"😀 hi", []int{3}, []int{5}},
		{"don't stop", []int{0, 6}, []int{5, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			starts, ends := wordStops(tt.in)
			assert.Equal(t, tt.starts, starts)
			assert.Equal(t, tt.ends, ends)
		})
	}
}

func inlineTextBoxes(root *automation.Node) automation.NodeList {
	return root.FindAll(func(n *automation.Node) bool { return n.Role == automation.InlineTextBox })
}

func TestLayoutLines(t *testing.T) {
	root, err := ParseString(`<p>one <a href="#">two</a> three</p><p>four</p>`)
	require.NoError(t, err)
	boxes := inlineTextBoxes(root)
	require.Len(t, boxes, 4)

	assert.Same(t, boxes[1], boxes[0].NextOnLine)
	assert.Same(t, boxes[0], boxes[1].PreviousOnLine)
	assert.Same(t, boxes[2], boxes[1].NextOnLine)
	assert.Nil(t, boxes[2].NextOnLine)
	assert.Nil(t, boxes[3].PreviousOnLine)

	assert.False(t, automation.OnDifferentLines(boxes[0], boxes[1]))
	assert.True(t, automation.OnDifferentLines(boxes[2], boxes[3]))

	first := boxes[0].ParentNode
	assert.Same(t, boxes[1], first.NextOnLine)
}

func TestLayoutLinesBreakAfterNewline(t *testing.T) {
	root, err := ParseString("<pre>a\nb</pre>")
	require.NoError(t, err)
	boxes := inlineTextBoxes(root)
	require.Len(t, boxes, 2)
	assert.Nil(t, boxes[0].NextOnLine)
	assert.True(t, automation.OnDifferentLines(boxes[0], boxes[1]))
}

func TestFlowTo(t *testing.T) {
	root, err := ParseString(`<p id="a" aria-flowto="missing b">one</p><p id="b">two</p><p aria-flowto="nowhere">x</p>`)
	require.NoError(t, err)

	a, b := ByID(root, "a"), ByID(root, "b")
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.Same(t, b, a.NextFocus)
	assert.Same(t, a, b.PreviousFocus)
	assert.Nil(t, b.NextFocus)
}

func TestWithDesktop(t *testing.T) {
	root, err := ParseString(`<p>x</p>`, WithDesktop(true))
	require.NoError(t, err)

	assert.Equal(t, automation.Desktop, root.Role)
	doc := root.FirstChild
	require.NotNil(t, doc)
	assert.Equal(t, automation.RootWebArea, doc.Role)
	assert.True(t, automation.IsRoot(doc))
	assert.Same(t, doc, inlineTextBoxes(root)[0].Root())
}

func TestByID(t *testing.T) {
	root, err := ParseString(`<div id="outer"><span id="inner">x</span></div>`)
	require.NoError(t, err)

	assert.Equal(t, automation.GenericContainer, ByID(root, "inner").Role)
	assert.Same(t, ByID(root, "outer"), ByID(root, "inner").ParentNode)
	assert.Nil(t, ByID(root, "missing"))
	assert.Nil(t, ByID(nil, "outer"))
}

func TestNoDocument(t *testing.T) {
	_, err := NewParser(nil).Start()
	assert.ErrorIs(t, err, ErrNoDocument)
}

func TestParseReader(t *testing.T) {
	root, err := NewParser(strings.NewReader(`<p>hello</p>`)).Start()
	require.NoError(t, err)
	assert.Equal(t, "hello", inlineTextBoxes(root)[0].Name)
}
