package automation

import "github.com/sirupsen/logrus"

// Ancestors returns the inclusive ancestry of n, root first. A parent cycle
// ends the walk at the first repeated node.
func Ancestors(n *Node) NodeList {
	var (
		up      NodeList
		visited = map[*Node]bool{}
	)
	for cur := n; cur != nil; cur = cur.ParentNode {
		if visited[cur] {
			logrus.WithField("node", cur.Role).Warn("[TREE] parent cycle")
			break
		}
		visited[cur] = true
		up = append(up, cur)
	}
	return reversed(up)
}

// Divergence returns the first index at which the two ancestries differ,
// or -1 when they are equal.
func Divergence(a, b NodeList) int {
	for i := range a {
		if i >= len(b) || a[i] != b[i] {
			return i
		}
	}
	if len(a) == len(b) {
		return -1
	}
	return len(a)
}

// Direction returns the document order direction that leads from a to b.
// Equal nodes, ancestors and unrelated nodes all count as Forward.
func Direction(a, b *Node) Dir {
	ancestorsA := Ancestors(a)
	ancestorsB := Ancestors(b)
	divergence := Divergence(ancestorsA, ancestorsB)
	if divergence <= 0 {
		return Forward
	}
	if divergence >= len(ancestorsA) || divergence >= len(ancestorsB) {
		return Forward
	}
	divA := ancestorsA[divergence]
	divB := ancestorsB[divergence]
	if divA.IndexInParent() <= divB.IndexInParent() {
		return Forward
	}
	return Backward
}

// FindOption adjusts the restrictions FindNextNode walks with.
type FindOption func(*Restrictions)

func SkipInitialSubtree(skip bool) FindOption {
	return func(r *Restrictions) { r.SkipInitialSubtree = skip }
}

func WithinRoot(root Predicate) FindOption {
	return func(r *Restrictions) { r.Root = root }
}

// FindNextNode returns the next node after cur in direction dir matching
// pred, or nil. Nodes matching pred are treated as leaves unless they are
// containers.
func FindNextNode(cur *Node, dir Dir, pred Predicate, opts ...FindOption) *Node {
	if cur == nil {
		return nil
	}
	r := Restrictions{
		Root: IsRoot,
		Leaf: func(n *Node) bool {
			return !Container(n) && pred(n)
		},
		Visit: func(n *Node) bool {
			return pred(n) && !ShouldIgnore(n)
		},
		SkipInitialSubtree:  !Container(cur) && pred(cur),
		SkipInitialAncestry: true,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return NewTreeWalker(cur, dir, r).Next().Node()
}

// FindNodeUntil walks leaves from cur in direction dir until pred holds for
// two consecutive leaves. It returns the leaf before the boundary when
// inclusive, the one after otherwise. The result may be nil.
func FindNodeUntil(cur *Node, dir Dir, pred BinaryPredicate, inclusive bool) *Node {
	before := cur
	after := cur
	for {
		before = after
		after = FindNextNode(before, dir, Leaf)
		if after == nil || pred(before, after) {
			break
		}
	}
	if inclusive {
		return before
	}
	return after
}

// FindNodePre returns the first inclusive descendant of node, in pre-order
// walked in direction dir, matching pred.
func FindNodePre(node *Node, dir Dir, pred Predicate) *Node {
	if node == nil {
		return nil
	}
	if pred(node) && !ShouldIgnore(node) {
		return node
	}
	child := node.FirstChild
	if dir == Backward {
		child = node.LastChild
	}
	for child != nil {
		if found := FindNodePre(child, dir, pred); found != nil {
			return found
		}
		if dir == Backward {
			child = child.PreviousSibling
		} else {
			child = child.NextSibling
		}
	}
	return nil
}

// FindLastNode returns the last node in document order under root matching
// pred. Matching non-container nodes are not descended into.
func FindLastNode(root *Node, pred Predicate) *Node {
	if root == nil {
		return nil
	}
	withinRoot := WithinRoot(func(n *Node) bool { return n == root })

	node := root
	for node.LastChild != nil && (node == root || Container(node) || !pred(node)) {
		node = node.LastChild
	}
	if node == root {
		return nil
	}
	if pred(node) && !ShouldIgnore(node) {
		return node
	}
	return FindNextNode(node, Backward, pred, withinRoot)
}
