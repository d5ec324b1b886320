package automation

import (
	"fmt"
	"strings"
)

// Node is one object of the accessibility tree. The tree is owned by
// whoever builds it; cursors only read it.
type Node struct {
	Role     Role
	Name     string
	Value    string
	NameFrom NameFrom
	State    State
	HTMLID   string

	// WordStarts and WordEnds hold UTF-16 offsets into Name. Both slices
	// have the same length and WordStarts[i] <= WordEnds[i].
	WordStarts, WordEnds []int

	ParentNode, FirstChild, LastChild, PreviousSibling, NextSibling *Node
	ChildNodes                                                      NodeList

	NextOnLine, PreviousOnLine *Node
	NextFocus, PreviousFocus   *Node

	detached bool
}

// NewNode returns a parentless node.
func NewNode(role Role, name string) *Node {
	return &Node{Role: role, Name: name}
}

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node {
	return n.ParentNode
}

func (n *Node) Children() NodeList {
	return n.ChildNodes
}

func (n *Node) HasChildNodes() bool {
	return len(n.ChildNodes) > 0
}

// IndexInParent returns the position of n among its siblings, or 0 for a
// parentless node.
func (n *Node) IndexInParent() int {
	if n.ParentNode == nil {
		return 0
	}
	if i := n.ParentNode.ChildNodes.Contains(n); i >= 0 {
		return i
	}
	return 0
}

// IsDetached reports whether n was removed from its tree.
func (n *Node) IsDetached() bool {
	return n == nil || n.detached
}

// Root returns the nearest inclusive ancestor that denotes a document: a
// rootWebArea or the desktop. It returns nil for detached nodes and for
// trees without such an ancestor.
func (n *Node) Root() *Node {
	if n.IsDetached() {
		return nil
	}
	for _, a := range reversed(Ancestors(n)) {
		if a.Role == RootWebArea || a.Role == Desktop {
			return a
		}
	}
	return nil
}

// Find returns the first descendant of n in document order that matches
// pred. n itself is not considered.
func (n *Node) Find(pred Predicate) *Node {
	for _, child := range n.ChildNodes {
		if pred(child) {
			return child
		}
		if found := child.Find(pred); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every descendant of n in document order that matches pred.
func (n *Node) FindAll(pred Predicate) NodeList {
	var out NodeList
	for _, child := range n.ChildNodes {
		if pred(child) {
			out = append(out, child)
		}
		out = append(out, child.FindAll(pred)...)
	}
	return out
}

// Contains reports whether on is an inclusive descendant of n.
func (n *Node) Contains(on *Node) bool {
	for _, a := range Ancestors(on) {
		if a == n {
			return true
		}
	}
	return false
}

// AppendChild adds on as the last child of n.
func (n *Node) AppendChild(on *Node) *Node {
	if n.LastChild != nil {
		on.PreviousSibling = n.LastChild
		n.LastChild.NextSibling = on
	} else {
		n.FirstChild = on
	}
	on.ParentNode = n
	on.NextSibling = nil
	n.LastChild = on
	n.ChildNodes = append(n.ChildNodes, on)
	on.setDetached(n.detached)
	return on
}

// InsertBefore inserts on right before child. When child is not a child of
// n, on is appended.
func (n *Node) InsertBefore(on, child *Node) *Node {
	i := n.ChildNodes.Contains(child)
	if i < 0 {
		return n.AppendChild(on)
	}
	n.ChildNodes.InsertAt(i, on)
	on.ParentNode = n
	on.NextSibling = child
	on.PreviousSibling = child.PreviousSibling
	if child.PreviousSibling != nil {
		child.PreviousSibling.NextSibling = on
	} else {
		n.FirstChild = on
	}
	child.PreviousSibling = on
	on.setDetached(n.detached)
	return on
}

// RemoveChild unlinks child from n and marks its subtree detached. Cursors
// holding nodes of that subtree recover on their next read.
func (n *Node) RemoveChild(child *Node) *Node {
	node := n.ChildNodes.Remove(n.ChildNodes.Contains(child))
	if node == nil {
		return nil
	}
	if node.PreviousSibling != nil {
		node.PreviousSibling.NextSibling = node.NextSibling
	} else {
		n.FirstChild = node.NextSibling
	}
	if node.NextSibling != nil {
		node.NextSibling.PreviousSibling = node.PreviousSibling
	} else {
		n.LastChild = node.PreviousSibling
	}
	node.ParentNode = nil
	node.PreviousSibling = nil
	node.NextSibling = nil
	node.setDetached(true)
	return node
}

func (n *Node) setDetached(detached bool) {
	n.detached = detached
	for _, child := range n.ChildNodes {
		child.setDetached(detached)
	}
}

func serializeNode(n *Node) string {
	s := n.Role.String()
	if n.Name != "" {
		s += fmt.Sprintf(" %q", n.Name)
	}
	if n.Value != "" {
		s += fmt.Sprintf(" value=%q", n.Value)
	}
	if n.State != 0 {
		s += " [" + n.State.String() + "]"
	}
	if len(n.WordStarts) > 0 {
		s += fmt.Sprintf(" words=%v-%v", n.WordStarts, n.WordEnds)
	}
	return s
}

func (n *Node) serialize(ident int) string {
	ser := serializeNode(n) + "\n"
	if ident > 0 {
		ser = "| " + strings.Repeat("  ", ident-1) + ser
	}
	for _, child := range n.ChildNodes {
		ser += child.serialize(ident + 1)
	}
	return ser
}

// String dumps the subtree rooted at n, one node per line.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	return strings.TrimRight(n.serialize(0), "\n")
}
