package automation

// Predicate matches a single node.
type Predicate func(n *Node) bool

// BinaryPredicate matches a pair of adjacent nodes.
type BinaryPredicate func(first, second *Node) bool

// Leaf matches nodes whose children are not navigated into. A node whose
// children are all invisible is not a leaf: walks descend into it and skip
// the hidden children, so it never stands in for its hidden content.
func Leaf(n *Node) bool {
	return n.FirstChild == nil || n.Role.Has(TraitForcedLeaf) || n.State.Has(Invisible)
}

// hiddenContents reports whether n has children and none of them is visible.
func hiddenContents(n *Node) bool {
	if n.FirstChild == nil {
		return false
	}
	for _, child := range n.ChildNodes {
		if !child.State.Has(Invisible) {
			return false
		}
	}
	return true
}

func LeafWithText(n *Node) bool {
	return Leaf(n) && Text(n) != ""
}

func LeafOrStaticText(n *Node) bool {
	return Leaf(n) || n.Role == StaticText
}

// LeafWithWordStop matches leaves a word movement can land on. Static text
// leaves only show up at the end of a line and are skipped.
func LeafWithWordStop(n *Node) bool {
	if !Leaf(n) || n.State.Has(Invisible) || n.Role == StaticText {
		return false
	}
	if n.Role == InlineTextBox {
		return len(n.WordStarts) > 0
	}
	return true
}

// Object matches stops for object navigation.
func Object(n *Node) bool {
	if n.State.Has(Invisible) {
		return false
	}
	if hiddenContents(n) && !n.Role.Has(TraitInteresting) {
		return false
	}
	if n.State.Has(Editable) {
		// Nodes inside an editable are reached through the editable itself.
		return n.ParentNode == nil || !n.ParentNode.State.Has(Editable)
	}
	return LeafOrStaticText(n) || n.Role.Has(TraitInteresting)
}

func Container(n *Node) bool {
	return n.Role.Has(TraitContainer)
}

// IsRoot matches nodes that bound tree walks. A root web area nested in
// another document is not a root.
func IsRoot(n *Node) bool {
	if n.Role == RootWebArea {
		return n.ParentNode == nil || n.ParentNode.Root() == nil || n.ParentNode.Root().Role == Desktop
	}
	return n.Role.Has(TraitRoot)
}

// ShouldIgnore matches nodes that searches never return.
func ShouldIgnore(n *Node) bool {
	return n.State.Has(Invisible)
}

// OnDifferentLines reports whether first and second lie on different lines.
// Nodes linked through NextOnLine/PreviousOnLine share a line.
func OnDifferentLines(first, second *Node) bool {
	if first == nil || second == nil {
		return true
	}
	return first.NextOnLine != second && first.PreviousOnLine != second &&
		second.NextOnLine != first && second.PreviousOnLine != first
}
