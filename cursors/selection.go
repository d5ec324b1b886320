package cursors

import (
	"github.com/sirupsen/logrus"

	"github.com/heathj/govox/automation"
)

// Selection is a document selection as the browser takes it.
type Selection struct {
	Anchor       *automation.Node
	AnchorOffset int
	Focus        *automation.Node
	FocusOffset  int
}

// SelectionSink receives the selections ranges push.
type SelectionSink interface {
	SetDocumentSelection(sel Selection)
}

// SelectionSinkFunc adapts a plain function to SelectionSink.
type SelectionSinkFunc func(sel Selection)

func (f SelectionSinkFunc) SetDocumentSelection(sel Selection) { f(sel) }

// Select pushes the range into sink as a document selection. It reports
// whether a selection was sent; ranges outside a single web document are
// not selectable and are dropped.
func (r Range) Select(sink SelectionSink) bool {
	startNode := r.start.selectionNode()
	endNode := r.end.selectionNode()
	if startNode == nil || endNode == nil {
		logrus.Debug("[SELECT] no selection node")
		return false
	}
	root := startNode.Root()
	if root == nil || root.Role != automation.RootWebArea || root != endNode.Root() {
		logrus.WithField("range", r.String()).Debug("[SELECT] not within one web document")
		return false
	}

	startIndex, ok := r.start.selectionIndex(startNode)
	if !ok {
		return false
	}
	endIndex, ok := r.end.selectionIndex(endNode)
	if !ok {
		return false
	}
	// A node offset covers the whole node.
	if r.end.Index() == NodeIndex {
		endIndex++
	}
	// Richly editable content only takes a caret.
	if startNode.State.Has(automation.RichlyEditable) || endNode.State.Has(automation.RichlyEditable) {
		endNode = startNode
		endIndex = startIndex
	}

	sel := Selection{
		Anchor:       startNode,
		AnchorOffset: startIndex,
		Focus:        endNode,
		FocusOffset:  endIndex,
	}
	logrus.WithFields(logrus.Fields{
		"anchor":       startNode.Role,
		"anchorOffset": startIndex,
		"focus":        endNode.Role,
		"focusOffset":  endIndex,
	}).Debug("[SELECT] set document selection")
	if sink != nil {
		sink.SetDocumentSelection(sel)
	}
	return true
}

// selectionNode returns the node a selection on the cursor's position is
// anchored to.
func (c Cursor) selectionNode() *automation.Node {
	node, index := c.Resolve()
	if node == nil {
		return nil
	}
	if node.State.Has(automation.Editable) && !node.State.Has(automation.RichlyEditable) {
		return node
	}
	parent := node.ParentNode
	var grandparent *automation.Node
	if parent != nil {
		grandparent = parent.ParentNode
	}
	switch {
	case parent != nil && parent.Role == automation.LineBreak:
		// Selections on a line break go to the node holding it.
		return grandparent
	case grandparent != nil && grandparent.Role == automation.LineBreak:
		return grandparent.ParentNode
	case index == NodeIndex || node.Role == automation.InlineTextBox || node.NameFrom != automation.NameFromContents:
		return parent
	}
	for cur := node; cur != nil; cur = cur.ParentNode {
		if cur.Role == automation.StaticText {
			return cur
		}
	}
	return node
}

// selectionIndex translates the cursor's index into an offset within
// selNode: a text offset when selNode holds the text, the position of the
// child leading to the cursor's node otherwise.
func (c Cursor) selectionIndex(selNode *automation.Node) (int, bool) {
	node, index := c.Resolve()
	if node == nil {
		return NodeIndex, false
	}
	if node.State.Has(automation.Editable) && !node.State.Has(automation.RichlyEditable) {
		return index, true
	}
	if node == selNode {
		return index, true
	}
	if index != NodeIndex && node.Role == automation.InlineTextBox && node.ParentNode == selNode {
		for sibling := node.PreviousSibling; sibling != nil; sibling = sibling.PreviousSibling {
			index += automation.UTF16Length(sibling.Name)
		}
		return index, true
	}
	child, ok := childOf(node, selNode)
	if !ok {
		return NodeIndex, false
	}
	return child.IndexInParent(), true
}

// childOf returns the inclusive ancestor of node whose parent is ancestor.
// The walk stops at the top of the tree and at the first repeated node.
func childOf(node, ancestor *automation.Node) (*automation.Node, bool) {
	visited := map[*automation.Node]bool{}
	for cur := node; cur != nil && !visited[cur]; cur = cur.ParentNode {
		visited[cur] = true
		if cur.ParentNode == ancestor {
			return cur, true
		}
	}
	logrus.WithFields(logrus.Fields{
		"node":     node.Role,
		"ancestor": ancestor.Role,
	}).Debug("[SELECT] selection node is not an ancestor")
	return nil, false
}
