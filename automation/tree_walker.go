package automation

type walkerPhase uint8

const (
	phaseInitial walkerPhase = iota
	phaseDescendant
	phaseOther
)

// Restrictions shape a TreeWalker.
type Restrictions struct {
	// Leaf nodes are never descended into.
	Leaf Predicate
	// Root nodes are never walked out of.
	Root Predicate
	// Only Visit nodes are returned by Next.
	Visit Predicate
	// SkipInitialSubtree skips the descendants of the start node.
	SkipInitialSubtree bool
	// SkipInitialAncestry skips ancestors of the start node when walking
	// backward.
	SkipInitialAncestry bool
}

// TreeWalker walks the tree in pre-order, forward or backward, starting
// from (and excluding) an initial node.
type TreeWalker struct {
	node                *Node
	initialNode         *Node
	dir                 Dir
	leaf, root, visit   Predicate
	skipInitialSubtree  bool
	skipInitialAncestry bool
	ancestry            map[*Node]bool
	phase               walkerPhase
}

func NewTreeWalker(node *Node, dir Dir, r Restrictions) *TreeWalker {
	t := &TreeWalker{
		node:                node,
		initialNode:         node,
		dir:                 dir,
		leaf:                r.Leaf,
		root:                r.Root,
		visit:               r.Visit,
		skipInitialSubtree:  r.SkipInitialSubtree,
		skipInitialAncestry: r.SkipInitialAncestry,
		ancestry:            map[*Node]bool{},
	}
	if t.leaf == nil {
		t.leaf = Leaf
	}
	if t.root == nil {
		t.root = IsRoot
	}
	if t.visit == nil {
		t.visit = func(*Node) bool { return true }
	}
	if node != nil {
		for _, a := range Ancestors(node.ParentNode) {
			t.ancestry[a] = true
		}
	}
	return t
}

// Node returns the node the walker currently sits on; nil once the walk has
// run out of nodes.
func (t *TreeWalker) Node() *Node {
	return t.node
}

// Next advances to the next visitable node.
func (t *TreeWalker) Next() *TreeWalker {
	if t.node == nil {
		return t
	}
	for {
		if t.dir == Forward {
			t.forward(t.node)
		} else {
			t.backward(t.node)
		}
		if t.node == nil {
			return t
		}
		if t.dir == Backward && t.skipInitialAncestry && t.ancestry[t.node] {
			continue
		}
		if t.visit(t.node) {
			return t
		}
	}
}

func (t *TreeWalker) forward(node *Node) {
	if !t.leaf(node) && node.FirstChild != nil {
		if t.phase == phaseInitial && t.skipInitialSubtree {
			t.phase = phaseOther
		} else {
			if t.phase == phaseInitial {
				t.phase = phaseDescendant
			}
			t.node = node.FirstChild
			return
		}
	}

	for search := node; search != nil && !t.root(search); search = search.ParentNode {
		if search == t.initialNode {
			t.phase = phaseOther
		}
		if search.NextSibling != nil {
			t.node = search.NextSibling
			return
		}
	}
	t.node = nil
}

func (t *TreeWalker) backward(node *Node) {
	if node == t.initialNode && t.root(node) {
		t.node = nil
		return
	}
	if node.PreviousSibling != nil {
		t.phase = phaseOther
		node = node.PreviousSibling
		for !t.leaf(node) && node.LastChild != nil {
			node = node.LastChild
		}
		t.node = node
		return
	}
	parent := node.ParentNode
	if parent == nil || t.root(parent) {
		t.node = nil
		return
	}
	t.node = parent
}
