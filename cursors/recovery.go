package cursors

import (
	"github.com/sirupsen/logrus"

	"github.com/heathj/govox/automation"
)

// RecoveryStrategy holds a cursor's node and finds a replacement once that
// node leaves the tree.
type RecoveryStrategy interface {
	// RequiresRecovery reports whether the original node is gone.
	RequiresRecovery() bool
	// Node returns the original node, or its replacement when recovery is
	// required. It may return nil.
	Node() *automation.Node
}

// StrategyFactory builds the strategy a cursor holds its node with.
type StrategyFactory func(node *automation.Node) RecoveryStrategy

// AncestryRecoveryStrategy falls back to the nearest recorded ancestor that
// is still attached.
type AncestryRecoveryStrategy struct {
	node     *automation.Node
	ancestry automation.NodeList
}

// NewAncestryRecoveryStrategy records node and its ancestry, nearest first.
func NewAncestryRecoveryStrategy(node *automation.Node) RecoveryStrategy {
	s := &AncestryRecoveryStrategy{node: node}
	if node != nil {
		up := automation.Ancestors(node)
		for i := len(up) - 1; i >= 0; i-- {
			s.ancestry = append(s.ancestry, up[i])
		}
	}
	return s
}

func (s *AncestryRecoveryStrategy) RequiresRecovery() bool {
	return s.node != nil && s.node.IsDetached()
}

func (s *AncestryRecoveryStrategy) Node() *automation.Node {
	if !s.RequiresRecovery() {
		return s.node
	}
	for _, a := range s.ancestry {
		if !a.IsDetached() {
			logrus.WithFields(logrus.Fields{
				"lost":    s.node.Role,
				"recover": a.Role,
			}).Debug("[RECOVERY] recovered ancestor")
			return a
		}
	}
	return nil
}

// TreePathRecoveryStrategy records the child index path from the root down
// to the node and re-walks it once the node is gone.
type TreePathRecoveryStrategy struct {
	node *automation.Node
	root *automation.Node
	path []int
}

func NewTreePathRecoveryStrategy(node *automation.Node) RecoveryStrategy {
	s := &TreePathRecoveryStrategy{node: node}
	if node == nil {
		return s
	}
	up := automation.Ancestors(node)
	s.root = up[0]
	for _, n := range up[1:] {
		s.path = append(s.path, n.IndexInParent())
	}
	return s
}

func (s *TreePathRecoveryStrategy) RequiresRecovery() bool {
	return s.node != nil && s.node.IsDetached()
}

// Node re-walks the recorded path as far as the current tree allows.
func (s *TreePathRecoveryStrategy) Node() *automation.Node {
	if !s.RequiresRecovery() {
		return s.node
	}
	if s.root == nil || s.root.IsDetached() {
		return nil
	}
	cur := s.root
	for _, i := range s.path {
		if i >= len(cur.ChildNodes) {
			break
		}
		cur = cur.ChildNodes[i]
	}
	logrus.WithFields(logrus.Fields{
		"lost":    s.node.Role,
		"recover": cur.Role,
	}).Debug("[RECOVERY] recovered by tree path")
	return cur
}
