package cursors

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/heathj/govox/automation"
)

// Range is the span between two cursors. Start must not come after end in
// document order; the range does not reorder them.
type Range struct {
	start, end Cursor
}

func NewRange(start, end Cursor) Range {
	return Range{start: start, end: end}
}

// RangeFromNode returns a collapsed range of wrapping cursors on the whole
// of node.
func RangeFromNode(node *automation.Node, earcons Earcons, opts ...Option) Range {
	c := WrappingFromNode(node, earcons, opts...)
	return Range{start: c, end: c}
}

func (r Range) Start() Cursor { return r.start }

func (r Range) End() Cursor { return r.end }

// Direction returns the direction leading from a to b. Invalid ranges,
// ranges over the same nodes and overlapping ranges all give Forward.
func Direction(a, b Range) automation.Dir {
	if !a.IsValid() || !b.IsValid() {
		return automation.Forward
	}
	if a.start.Node() == b.start.Node() && a.end.Node() == b.end.Node() {
		return automation.Forward
	}
	dirA := automation.Direction(a.start.Node(), b.end.Node())
	dirB := automation.Direction(b.start.Node(), a.end.Node())
	if dirA != dirB {
		return automation.Forward
	}
	return dirA
}

func (r Range) Equals(rhs Range) bool {
	return r.start.Equals(rhs.start) && r.end.Equals(rhs.end)
}

func (r Range) ContentEquals(rhs Range) bool {
	return r.start.ContentEquals(rhs.start) && r.end.ContentEquals(rhs.end)
}

// Bound returns the end of the range for Forward, the start for Backward.
func (r Range) Bound(dir automation.Dir) Cursor {
	if dir == automation.Forward {
		return r.end
	}
	return r.start
}

// IsSubNode reports whether the range selects part of the text of a single
// node.
func (r Range) IsSubNode() bool {
	startNode, startIndex := r.start.Resolve()
	endNode, endIndex := r.end.Resolve()
	return startNode != nil && startNode == endNode &&
		startIndex != NodeIndex && endIndex != NodeIndex &&
		startIndex != endIndex &&
		(startIndex != 0 || endIndex != automation.UTF16Length(r.start.Text()))
}

// IsInlineText reports whether both ends lie in inline text boxes.
func (r Range) IsInlineText() bool {
	s, e := r.start.Node(), r.end.Node()
	return s != nil && e != nil && s.Role == automation.InlineTextBox && e.Role == automation.InlineTextBox
}

// Move returns the range covering the unit next to this one in direction
// dir. Character ranges never span two nodes; word and line ranges cover
// the whole unit; node ranges are collapsed.
func (r Range) Move(unit Unit, dir automation.Dir) (Range, error) {
	if !r.start.IsValid() {
		return r, nil
	}
	var (
		start, end Cursor
		err        error
	)
	switch unit {
	case UnitCharacter:
		if start, err = r.start.Move(unit, Directional, dir); err != nil {
			return r, err
		}
		plain := start
		plain.kind = Plain
		if end, err = plain.Move(unit, Directional, automation.Forward); err != nil {
			return r, err
		}
		end.kind = start.kind
		// The end may not leave the start's node, nor stay on the start.
		if end.Node() != start.Node() || end.Equals(start) {
			end = start.at(start.Node(), start.Index()+1)
		}

	case UnitWord, UnitLine:
		if start, err = r.start.Move(unit, Directional, dir); err != nil {
			return r, err
		}
		if start, err = start.Move(unit, Bound, automation.Backward); err != nil {
			return r, err
		}
		if end, err = start.Move(unit, Bound, automation.Forward); err != nil {
			return r, err
		}

	case UnitNode:
		if start, err = r.start.Move(unit, Directional, dir); err != nil {
			return r, err
		}
		end = start

	default:
		return r, errors.Wrapf(ErrInvalidUnit, "move range by %s", unit)
	}
	return Range{start: start, end: end}, nil
}

// IsWebRange reports whether the range is valid and at least one end lies
// in web content rather than on the desktop.
func (r Range) IsWebRange() bool {
	return r.IsValid() && (isWeb(r.start.Node()) || isWeb(r.end.Node()))
}

func isWeb(n *automation.Node) bool {
	root := n.Root()
	return root != nil && root.Role != automation.Desktop
}

func (r Range) IsValid() bool {
	return r.start.IsValid() && r.end.IsValid()
}

func (r Range) String() string {
	return fmt.Sprintf("Range[%s, %s]", r.start, r.end)
}
