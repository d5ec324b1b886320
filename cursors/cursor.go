package cursors

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/heathj/govox/automation"
)

// Kind tags how a cursor behaves at the edges of the tree.
type Kind uint8

const (
	// Plain cursors stay put at the edges of the tree.
	Plain Kind = iota
	// Wrapping cursors wrap around the document at its edges.
	Wrapping
)

func (k Kind) String() string {
	if k == Wrapping {
		return "WrappingCursor"
	}
	return "Cursor"
}

// Cursor is an immutable position in the tree: a node and either a UTF-16
// offset into the node's text or NodeIndex. The node is held through a
// RecoveryStrategy; once it leaves the tree the cursor reads back the
// recovered node with NodeIndex.
type Cursor struct {
	recovery RecoveryStrategy
	index    int
	kind     Kind
	earcons  Earcons
	factory  StrategyFactory
}

// Option configures a cursor at construction.
type Option func(*Cursor)

// WithRecovery sets the strategy used to hold the cursor's node. The
// default is NewAncestryRecoveryStrategy.
func WithRecovery(factory StrategyFactory) Option {
	return func(c *Cursor) {
		if factory != nil {
			c.factory = factory
		}
	}
}

// New returns a plain cursor at index within node.
func New(node *automation.Node, index int, opts ...Option) Cursor {
	c := Cursor{factory: NewAncestryRecoveryStrategy}
	for _, opt := range opts {
		opt(&c)
	}
	return c.at(node, index)
}

// FromNode returns a plain cursor on the whole of node.
func FromNode(node *automation.Node, opts ...Option) Cursor {
	return New(node, NodeIndex, opts...)
}

// NewWrapping returns a wrapping cursor. earcons may be nil.
func NewWrapping(node *automation.Node, index int, earcons Earcons, opts ...Option) Cursor {
	c := Cursor{factory: NewAncestryRecoveryStrategy, kind: Wrapping, earcons: earcons}
	if c.earcons == nil {
		c.earcons = nopEarcons{}
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c.at(node, index)
}

// WrappingFromNode returns a wrapping cursor on the whole of node.
func WrappingFromNode(node *automation.Node, earcons Earcons, opts ...Option) Cursor {
	return NewWrapping(node, NodeIndex, earcons, opts...)
}

// at returns a cursor of the same kind on node, normalized.
func (c Cursor) at(node *automation.Node, index int) Cursor {
	node, index = normalize(node, index)
	if c.factory == nil {
		c.factory = NewAncestryRecoveryStrategy
	}
	c.recovery = c.factory(node)
	c.index = index
	return c
}

// normalize moves positions Blink reports differently onto the node the
// rest of the tree expects.
func normalize(node *automation.Node, index int) (*automation.Node, int) {
	if node == nil {
		return nil, index
	}
	// The end of a static text that continues on the line is the start of
	// whatever follows it.
	if node.Role == automation.StaticText && index == automation.UTF16Length(node.Name) && node.NextOnLine != nil {
		if next := automation.FindNextNode(node, automation.Forward, automation.LeafOrStaticText); next != nil {
			return next, 0
		}
	}
	// Offsets into a richly editable container address its text.
	if node.Role == automation.GenericContainer && node.State.Has(automation.RichlyEditable) && node.FirstChild != nil &&
		(node.FirstChild.Role == automation.LineBreak || node.FirstChild.Role == automation.StaticText) {
		if box := node.Find(func(n *automation.Node) bool { return n.Role == automation.InlineTextBox }); box != nil {
			return box, index
		}
	}
	return node, index
}

// Kind reports whether the cursor wraps.
func (c Cursor) Kind() Kind {
	return c.kind
}

// Node returns the cursor's node, recovering it when the original node left
// the tree.
func (c Cursor) Node() *automation.Node {
	if c.recovery == nil {
		return nil
	}
	return c.recovery.Node()
}

// Index returns the cursor's index, NodeIndex once the node was recovered.
func (c Cursor) Index() int {
	if c.recovery == nil || c.recovery.RequiresRecovery() {
		return NodeIndex
	}
	return c.index
}

// Resolve returns the node and index the cursor currently addresses.
// Callers must go through Resolve (or Node and Index) on every read; the
// node may have been replaced since the last one.
func (c Cursor) Resolve() (*automation.Node, int) {
	return c.Node(), c.Index()
}

// IsValid reports whether the cursor addresses a node.
func (c Cursor) IsValid() bool {
	return c.Node() != nil
}

// Text returns the text the cursor's index points into.
func (c Cursor) Text() string {
	return automation.Text(c.Node())
}

// Equals reports whether both cursors address the same node and index.
func (c Cursor) Equals(rhs Cursor) bool {
	ln, li := c.Resolve()
	rn, ri := rhs.Resolve()
	return ln == rn && li == ri
}

// ContentEquals compares the nodes owning the cursors' text, ignoring the
// indexes.
func (c Cursor) ContentEquals(rhs Cursor) bool {
	l := contentNode(c.Node())
	r := contentNode(rhs.Node())
	return l != nil && l == r
}

func contentNode(n *automation.Node) *automation.Node {
	for n != nil && (n.Role == automation.InlineTextBox || n.Role == automation.StaticText) {
		n = n.ParentNode
	}
	return n
}

// Compare returns the direction that leads from c to rhs.
func (c Cursor) Compare(rhs Cursor) automation.Dir {
	ln, li := c.Resolve()
	rn, ri := rhs.Resolve()
	if ln == nil || rn == nil {
		return automation.Forward
	}
	if ln == rn {
		if ri < li {
			return automation.Backward
		}
		return automation.Forward
	}
	return automation.Direction(ln, rn)
}

// Move returns the cursor moved by unit in direction dir. Plain cursors stay
// put at the edges of the tree; wrapping cursors wrap. The only errors are
// ErrInvalidUnit and ErrInvalidMovement.
func (c Cursor) Move(unit Unit, movement Movement, dir automation.Dir) (Cursor, error) {
	if _, ok := unitNames[unit]; !ok {
		return c, errors.Wrapf(ErrInvalidUnit, "move by %d", unit)
	}
	if movement != Bound && movement != Directional {
		return c, errors.Wrapf(ErrInvalidMovement, "move by %d", movement)
	}
	var (
		moved Cursor
		err   error
	)
	if c.kind == Wrapping {
		moved, err = c.wrapMove(unit, movement, dir)
	} else {
		moved, err = c.basicMove(unit, movement, dir)
	}
	if err != nil {
		return c, err
	}
	logrus.WithFields(logrus.Fields{
		"unit":     unit,
		"movement": movement,
		"dir":      dir,
		"from":     c.String(),
		"to":       moved.String(),
	}).Debug("[CURSOR] move")
	return moved, nil
}

func (c Cursor) basicMove(unit Unit, movement Movement, dir automation.Dir) (Cursor, error) {
	original, index := c.Resolve()
	if original == nil {
		return c, nil
	}
	node, newIndex := original, index

	switch unit {
	case UnitCharacter:
		// Bound and directional are the same for characters.
		text := automation.Text(node)
		if dir == automation.Forward {
			newIndex = automation.NextCodePointOffset(text, newIndex)
		} else {
			newIndex = automation.PreviousCodePointOffset(text, newIndex)
		}
		if newIndex < 0 || newIndex >= automation.UTF16Length(text) {
			next := automation.FindNextNode(node, dir, automation.LeafWithText)
			if next == nil {
				return c, nil
			}
			node = next
			nextText := automation.Text(next)
			if dir == automation.Forward {
				newIndex = 0
			} else {
				newIndex = automation.PreviousCodePointOffset(nextText, automation.UTF16Length(nextText))
				if newIndex < 0 {
					newIndex = 0
				}
			}
		}

	case UnitWord:
		if !automation.LeafWithWordStop(node) {
			node = automation.FindNextNode(node, automation.Forward, automation.LeafWithWordStop, automation.SkipInitialSubtree(false))
			if node == nil {
				return c, nil
			}
		}
		starts := node.WordStarts
		if len(starts) > 0 && newIndex < starts[0] {
			newIndex = starts[0]
		}
		if movement == Bound {
			newIndex = wordBound(node, newIndex, dir)
			break
		}
		if target, ok := nextWordStart(starts, newIndex, dir); ok && node.Role == automation.InlineTextBox {
			newIndex = target
			break
		}
		if dir == automation.Backward && len(starts) > 0 && newIndex > starts[0] {
			newIndex = starts[0]
			break
		}
		next := automation.FindNextNode(node, dir, automation.LeafWithWordStop)
		if next == nil {
			return c, nil
		}
		node = next
		newIndex = NodeIndex
		if next.Role == automation.InlineTextBox && len(next.WordStarts) > 0 {
			if dir == automation.Forward {
				newIndex = next.WordStarts[0]
			} else {
				newIndex = next.WordStarts[len(next.WordStarts)-1]
			}
		}

	case UnitText, UnitNode:
		if movement == Bound {
			if dir == automation.Forward {
				newIndex = automation.UTF16Length(automation.Text(node)) - 1
			} else {
				newIndex = 0
			}
			break
		}
		pred := automation.Leaf
		if unit == UnitNode {
			pred = automation.Object
		}
		if next := automation.FindNextNode(node, dir, pred); next != nil {
			node = next
		}
		newIndex = NodeIndex

	case UnitLine:
		if deep := c.DeepEquivalent().Node(); deep != nil {
			node = deep
		}
		if movement == Bound {
			end := automation.FindNodeUntil(node, dir, automation.OnDifferentLines, true)
			if end == nil {
				end = original
			}
			node = end
			newIndex = 0
			if dir == automation.Forward {
				newIndex = automation.UTF16Length(automation.Text(end))
			}
			break
		}
		next := automation.FindNodeUntil(node, dir, automation.OnDifferentLines, false)
		if next == nil {
			return c, nil
		}
		node = next
		newIndex = 0

	default:
		return c, errors.Wrapf(ErrInvalidUnit, "move by %d", unit)
	}
	return c.at(node, newIndex), nil
}

// wordBound snaps index to the edge of the word holding it.
func wordBound(node *automation.Node, index int, dir automation.Dir) int {
	if node.Role != automation.InlineTextBox {
		return NodeIndex
	}
	for i, start := range node.WordStarts {
		if i >= len(node.WordEnds) {
			break
		}
		if index >= start && index <= node.WordEnds[i] {
			if dir == automation.Forward {
				return node.WordEnds[i]
			}
			return start
		}
	}
	return index
}

// nextWordStart returns the first word start after index going forward, or
// the last one before it going backward. From inside a word, backward lands
// on that word's own start, not on the start of the word before it.
func nextWordStart(starts []int, index int, dir automation.Dir) (int, bool) {
	if dir == automation.Forward {
		for _, s := range starts {
			if s > index {
				return s, true
			}
		}
		return 0, false
	}
	for i := len(starts) - 1; i >= 0; i-- {
		if starts[i] < index {
			return starts[i], true
		}
	}
	return 0, false
}

// DeepEquivalent projects the cursor onto the deepest position addressing
// the same point: offsets into static text land on the inline text box
// holding them, child offsets descend into the child.
func (c Cursor) DeepEquivalent() Cursor {
	node, index := c.Resolve()
	if node == nil {
		return c
	}
	for node.FirstChild != nil {
		if node.Role == automation.StaticText {
			target := node.FirstChild
			length := 0
			for target != nil && length < index {
				next := length + automation.UTF16Length(target.Name)
				if (length <= index && index < next) || (index == next && target.NextSibling == nil) {
					break
				}
				length = next
				target = target.NextSibling
			}
			if target != nil {
				node = target
				index -= length
			}
			break
		}
		if isChildOffset(node, index) {
			node = node.ChildNodes[index]
			index = 0
			continue
		}
		node, index = textOffset(node, index)
		break
	}
	return c.at(node, index)
}

func isChildOffset(node *automation.Node, index int) bool {
	if index < 0 || index >= len(node.ChildNodes) {
		return false
	}
	if node.Role == automation.InlineTextBox || node.Role == automation.TextField {
		return false
	}
	return !node.State.Has(automation.Editable) || node.State.Has(automation.RichlyEditable)
}

// textOffset treats index as an offset into the concatenated text of the
// inline text boxes under node.
func textOffset(node *automation.Node, index int) (*automation.Node, int) {
	if index < 0 {
		if leaf := automation.FindNodePre(node, automation.Forward, automation.Leaf); leaf != nil {
			return leaf, NodeIndex
		}
		return node, index
	}
	boxes := node.FindAll(func(n *automation.Node) bool { return n.Role == automation.InlineTextBox })
	if len(boxes) == 0 {
		return node, index
	}
	length := 0
	for _, box := range boxes {
		n := automation.UTF16Length(box.Name)
		if index < length+n {
			return box, index - length
		}
		length += n
	}
	last := boxes[len(boxes)-1]
	return last, automation.UTF16Length(last.Name)
}

func (c Cursor) String() string {
	node, index := c.Resolve()
	if node == nil {
		return c.kind.String() + "(<nil>)"
	}
	return fmt.Sprintf("%s(%s %q, %d)", c.kind, node.Role, automation.Text(node), index)
}
