package cursors

import (
	"github.com/heathj/govox/automation"
)

func box(name string, starts, ends []int) *automation.Node {
	n := automation.NewNode(automation.InlineTextBox, name)
	n.WordStarts = starts
	n.WordEnds = ends
	return n
}

func staticText(boxes ...*automation.Node) *automation.Node {
	st := automation.NewNode(automation.StaticText, "")
	st.NameFrom = automation.NameFromContents
	for _, b := range boxes {
		st.Name += b.Name
		st.AppendChild(b)
	}
	return st
}

func el(role automation.Role, children ...*automation.Node) *automation.Node {
	n := automation.NewNode(role, "")
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

// line links the nodes as one laid out line.
func line(nodes ...*automation.Node) {
	for i := 1; i < len(nodes); i++ {
		nodes[i-1].NextOnLine = nodes[i]
		nodes[i].PreviousOnLine = nodes[i-1]
	}
}

// twoParagraphs is
//
//	rootWebArea
//	  paragraph
//	    staticText "hello world"
//	      inlineTextBox "hello world"
//	  paragraph
//	    staticText "foo bar"
//	      inlineTextBox "foo bar"
//	  button "ok"
type twoParagraphs struct {
	root, p1, st1, b1, p2, st2, b2, btn *automation.Node
}

func newTwoParagraphs() *twoParagraphs {
	f := &twoParagraphs{}
	f.b1 = box("hello world", []int{0, 6}, []int{5, 11})
	f.st1 = staticText(f.b1)
	f.p1 = el(automation.Paragraph, f.st1)
	f.b2 = box("foo bar", []int{0, 4}, []int{3, 7})
	f.st2 = staticText(f.b2)
	f.p2 = el(automation.Paragraph, f.st2)
	f.btn = automation.NewNode(automation.Button, "ok")
	f.root = el(automation.RootWebArea, f.p1, f.p2, f.btn)
	return f
}

// wrappedLine is
//
//	rootWebArea
//	  paragraph
//	    staticText "one two" / inlineTextBox a
//	    link "link"
//	      staticText "link" / inlineTextBox l
//	    staticText " three" / inlineTextBox c
//	  paragraph
//	    staticText "four" / inlineTextBox d
//
// with a, l and c laid out on one line.
type wrappedLine struct {
	root, p, a, l, c, d *automation.Node
}

func newWrappedLine() *wrappedLine {
	f := &wrappedLine{}
	f.a = box("one two", []int{0, 4}, []int{3, 7})
	f.l = box("link", []int{0}, []int{4})
	f.c = box(" three", []int{1}, []int{6})
	f.d = box("four", []int{0}, []int{4})
	link := el(automation.Link, staticText(f.l))
	link.Name = "link"
	f.p = el(automation.Paragraph, staticText(f.a), link, staticText(f.c))
	f.root = el(automation.RootWebArea, f.p, el(automation.Paragraph, staticText(f.d)))
	line(f.a, f.l, f.c)
	return f
}
