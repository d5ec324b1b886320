package automation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// doc is
//
//	rootWebArea
//	  paragraph
//	    staticText "one"
//	      inlineTextBox "one"
//	  button "ok"
//	  list
//	    listItem
//	      staticText "two"
//	        inlineTextBox "two"
type doc struct {
	root, p, st1, b1, btn, list, item, st2, b2 *Node
}

func newDoc() *doc {
	d := &doc{
		root: NewNode(RootWebArea, ""),
		p:    NewNode(Paragraph, ""),
		st1:  NewNode(StaticText, "one"),
		b1:   NewNode(InlineTextBox, "one"),
		btn:  NewNode(Button, "ok"),
		list: NewNode(List, ""),
		item: NewNode(ListItem, ""),
		st2:  NewNode(StaticText, "two"),
		b2:   NewNode(InlineTextBox, "two"),
	}
	d.root.AppendChild(d.p).AppendChild(d.st1).AppendChild(d.b1)
	d.root.AppendChild(d.btn)
	d.root.AppendChild(d.list).AppendChild(d.item).AppendChild(d.st2).AppendChild(d.b2)
	return d
}

func TestAppendChild(t *testing.T) {
	d := newDoc()
	assert.Same(t, d.p, d.root.FirstChild)
	assert.Same(t, d.list, d.root.LastChild)
	assert.Same(t, d.btn, d.p.NextSibling)
	assert.Same(t, d.p, d.btn.PreviousSibling)
	assert.Nil(t, d.list.NextSibling)
	assert.Equal(t, NodeList{d.p, d.btn, d.list}, d.root.Children())
	assert.Equal(t, 1, d.btn.IndexInParent())
	assert.Equal(t, 0, d.root.IndexInParent())
}

func TestInsertBefore(t *testing.T) {
	d := newDoc()
	img := NewNode(Image, "logo")
	d.root.InsertBefore(img, d.btn)
	assert.Equal(t, NodeList{d.p, img, d.btn, d.list}, d.root.Children())
	assert.Same(t, img, d.p.NextSibling)
	assert.Same(t, d.btn, img.NextSibling)
	assert.Same(t, img, d.btn.PreviousSibling)

	first := NewNode(Heading, "top")
	d.root.InsertBefore(first, d.p)
	assert.Same(t, first, d.root.FirstChild)
	assert.Nil(t, first.PreviousSibling)

	last := NewNode(Image, "end")
	d.root.InsertBefore(last, NewNode(Image, "stranger"))
	assert.Same(t, last, d.root.LastChild)
}

func TestRemoveChild(t *testing.T) {
	d := newDoc()
	removed := d.root.RemoveChild(d.btn)
	require.Same(t, d.btn, removed)

	assert.True(t, d.btn.IsDetached())
	assert.Nil(t, d.btn.Parent())
	assert.Same(t, d.list, d.p.NextSibling)
	assert.Same(t, d.p, d.list.PreviousSibling)
	assert.False(t, d.p.IsDetached())

	d.root.RemoveChild(d.list)
	assert.True(t, d.b2.IsDetached())
	assert.Same(t, d.p, d.root.LastChild)
	assert.Nil(t, d.b2.Root())

	assert.Nil(t, d.root.RemoveChild(d.list))

	// Reattaching brings the subtree back.
	d.root.AppendChild(d.list)
	assert.False(t, d.b2.IsDetached())
	assert.Same(t, d.root, d.b2.Root())
}

func TestIsDetachedNil(t *testing.T) {
	var n *Node
	assert.True(t, n.IsDetached())
}

func TestRoot(t *testing.T) {
	d := newDoc()
	assert.Same(t, d.root, d.b1.Root())
	assert.Same(t, d.root, d.root.Root())

	desktop := NewNode(Desktop, "")
	desktop.AppendChild(d.root)
	assert.Same(t, d.root, d.b2.Root())
	assert.Same(t, desktop, desktop.Root())

	orphan := NewNode(Paragraph, "")
	orphan.AppendChild(NewNode(StaticText, "x"))
	assert.Nil(t, orphan.FirstChild.Root())
}

func TestFind(t *testing.T) {
	d := newDoc()
	isText := func(n *Node) bool { return n.Role == StaticText }
	assert.Same(t, d.st1, d.root.Find(isText))
	assert.Equal(t, NodeList{d.st1, d.st2}, d.root.FindAll(isText))
	assert.Nil(t, d.b1.Find(isText))
	assert.Nil(t, d.st1.Find(isText))

	assert.True(t, d.root.Contains(d.b2))
	assert.True(t, d.b2.Contains(d.b2))
	assert.False(t, d.p.Contains(d.b2))
}

func TestString(t *testing.T) {
	d := newDoc()
	d.btn.State = Focusable
	d.b1.WordStarts, d.b1.WordEnds = []int{0}, []int{3}
	field := NewNode(TextField, "Name")
	field.Value = "abc"
	d.root.AppendChild(field)

	assert.Equal(t, `rootWebArea
| paragraph
|   staticText "one"
|     inlineTextBox "one" words=[0]-[3]
| button "ok" [focusable]
| list
|   listItem
|     staticText "two"
|       inlineTextBox "two"
| textField "Name" value="abc"`, d.root.String())

	var n *Node
	assert.Equal(t, "<nil>", n.String())
}

func TestRoleString(t *testing.T) {
	assert.Equal(t, "inlineTextBox", InlineTextBox.String())
	assert.Equal(t, "unknown", Role(200).String())
	assert.True(t, Button.Has(TraitForcedLeaf))
	assert.False(t, Paragraph.Has(TraitContainer))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "", State(0).String())
	assert.Equal(t, "editable,invisible", (Editable | Invisible).String())
	assert.True(t, (Editable | RichlyEditable).Has(Editable))
	assert.False(t, Editable.Has(Editable|RichlyEditable))
}

func TestNodeList(t *testing.T) {
	a, b, c := NewNode(Image, "a"), NewNode(Image, "b"), NewNode(Image, "c")
	l := NodeList{a, c}
	l.InsertAt(1, b)
	assert.Equal(t, NodeList{a, b, c}, l)
	assert.Equal(t, 2, l.Contains(c))
	assert.Same(t, c, l.Last())

	assert.Same(t, a, l.Remove(0))
	assert.Nil(t, l.Remove(5))
	assert.Nil(t, l.Remove(-1))
	assert.Equal(t, -1, l.Contains(a))

	l.InsertAt(9, a)
	assert.Same(t, a, l.Last())
	assert.Nil(t, NodeList{}.Last())
}
