// Package cursors addresses positions and spans in an accessibility tree
// and moves them by character, word, line, node or text.
package cursors

import "github.com/pkg/errors"

// NodeIndex is the index of a cursor addressing its node as a whole.
const NodeIndex = -1

// Unit is the granularity of a movement.
type Unit uint8

const (
	// UnitCharacter moves by one code point.
	UnitCharacter Unit = iota + 1
	// UnitWord moves by word stops.
	UnitWord
	// UnitNode moves by objects.
	UnitNode
	// UnitText moves by leaves.
	UnitText
	// UnitLine moves by lines.
	UnitLine
)

var unitNames = map[Unit]string{
	UnitCharacter: "character",
	UnitWord:      "word",
	UnitNode:      "node",
	UnitText:      "text",
	UnitLine:      "line",
}

func (u Unit) String() string {
	if s, ok := unitNames[u]; ok {
		return s
	}
	return "unknown"
}

// Movement selects between moving to the bound of the current unit and
// moving past it.
type Movement uint8

const (
	// Bound moves to the edge of the unit the cursor is in.
	Bound Movement = iota + 1
	// Directional moves to the next or previous unit.
	Directional
)

func (m Movement) String() string {
	switch m {
	case Bound:
		return "bound"
	case Directional:
		return "directional"
	}
	return "unknown"
}

var (
	// ErrInvalidUnit is returned for movements by a unit the operation does
	// not know.
	ErrInvalidUnit = errors.New("invalid unit")
	// ErrInvalidMovement is returned for movements that are neither Bound
	// nor Directional.
	ErrInvalidMovement = errors.New("invalid movement")
)
