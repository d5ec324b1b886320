package cursors

import (
	"github.com/sirupsen/logrus"

	"github.com/heathj/govox/automation"
)

// wrapMove is the movement of wrapping cursors. A directional move that
// would leave the cursor where it is instead follows an explicit focus
// override, or wraps around the document and plays the wrap earcon.
func (c Cursor) wrapMove(unit Unit, movement Movement, dir automation.Dir) (Cursor, error) {
	node := c.Node()
	if node == nil {
		return c, nil
	}

	result := c
	// Backward from the root never moves; go straight to wrapping.
	if !(automation.IsRoot(node) && dir == automation.Backward && movement == Directional) {
		var err error
		if result, err = c.basicMove(unit, movement, dir); err != nil {
			return c, err
		}
	}
	if movement == Bound || !result.Equals(c) {
		return result, nil
	}

	pred := automation.Leaf
	if unit == UnitNode {
		pred = automation.Object
	}

	endpoint := node
	var directed *automation.Node
	visited := map[*automation.Node]bool{}
	for !automation.IsRoot(endpoint) && endpoint.ParentNode != nil && !visited[endpoint] {
		visited[endpoint] = true
		if directed = directedFocus(endpoint, dir); directed != nil {
			break
		}
		endpoint = endpoint.ParentNode
	}

	if directed != nil {
		var refined *automation.Node
		if dir == automation.Forward {
			refined = automation.FindNodePre(directed, dir, automation.Object)
		} else {
			refined = automation.FindLastNode(directed, pred)
		}
		if refined != nil {
			directed = refined
		}
		logrus.WithField("target", directed.Role).Debug("[WRAP] followed directed focus")
		return c.at(directed, NodeIndex), nil
	}

	wrap := dir == automation.Forward
	if dir == automation.Backward && endpoint == node {
		wrap = true
		if last := automation.FindLastNode(endpoint, pred); last != nil {
			endpoint = last
		}
	}
	if wrap && c.earcons != nil {
		logrus.WithFields(logrus.Fields{
			"dir":    dir,
			"target": endpoint.Role,
		}).Debug("[WRAP] wrapped")
		c.earcons.PlayWrap()
	}
	return c.at(endpoint, NodeIndex), nil
}

func directedFocus(n *automation.Node, dir automation.Dir) *automation.Node {
	if dir == automation.Forward {
		return n.NextFocus
	}
	return n.PreviousFocus
}
