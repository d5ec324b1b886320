// Package navigator drives a range through a document with screen reader
// commands such as next-word or previous-line.
package navigator

import (
	"maps"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/heathj/govox/automation"
	"github.com/heathj/govox/cursors"
)

// ErrUnknownCommand is returned by Do for command names it does not know.
var ErrUnknownCommand = errors.New("unknown command")

// Command is the movement a command name stands for.
type Command struct {
	Unit cursors.Unit
	Dir  automation.Dir
}

var commands = map[string]Command{
	"next-character":     {cursors.UnitCharacter, automation.Forward},
	"previous-character": {cursors.UnitCharacter, automation.Backward},
	"next-word":          {cursors.UnitWord, automation.Forward},
	"previous-word":      {cursors.UnitWord, automation.Backward},
	"next-line":          {cursors.UnitLine, automation.Forward},
	"previous-line":      {cursors.UnitLine, automation.Backward},
	"next-object":        {cursors.UnitNode, automation.Forward},
	"previous-object":    {cursors.UnitNode, automation.Backward},
}

// Commands returns the known command names, sorted.
func Commands() []string {
	return slices.Sorted(maps.Keys(commands))
}

// Lookup returns the movement for a command name.
func Lookup(name string) (Command, error) {
	cmd, ok := commands[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Command{}, errors.Wrapf(ErrUnknownCommand, "%q", name)
	}
	return cmd, nil
}

// Navigator owns the current range of a document.
type Navigator struct {
	root     *automation.Node
	current  cursors.Range
	wrap     bool
	start    *automation.Node
	earcons  cursors.Earcons
	sink     cursors.SelectionSink
	recovery cursors.StrategyFactory
	log      *logrus.Logger
}

type Option func(*Navigator)

// WithWrap selects wrapping cursors. It is on by default.
func WithWrap(wrap bool) Option {
	return func(n *Navigator) { n.wrap = wrap }
}

// WithStart places the initial range on node instead of the first object.
func WithStart(node *automation.Node) Option {
	return func(n *Navigator) { n.start = node }
}

func WithEarcons(e cursors.Earcons) Option {
	return func(n *Navigator) { n.earcons = e }
}

// WithSelectionSink sets where the ranges of web content get selected.
func WithSelectionSink(s cursors.SelectionSink) Option {
	return func(n *Navigator) { n.sink = s }
}

func WithRecovery(f cursors.StrategyFactory) Option {
	return func(n *Navigator) { n.recovery = f }
}

func WithLogger(l *logrus.Logger) Option {
	return func(n *Navigator) { n.log = l }
}

// New returns a navigator on the first object of the document under root.
func New(root *automation.Node, opts ...Option) *Navigator {
	n := &Navigator{
		root: root,
		wrap: true,
		log:  logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(n)
	}

	start := n.start
	if start == nil {
		start = automation.FindNodePre(root, automation.Forward, automation.Object)
	}
	if start == nil {
		start = root
	}
	n.current = n.rangeOn(start)
	return n
}

func (n *Navigator) rangeOn(node *automation.Node) cursors.Range {
	opt := cursors.WithRecovery(n.recovery)
	if n.wrap {
		return cursors.RangeFromNode(node, n.earcons, opt)
	}
	c := cursors.FromNode(node, opt)
	return cursors.NewRange(c, c)
}

// Range returns the current range.
func (n *Navigator) Range() cursors.Range {
	return n.current
}

// MoveTo places the current range on node.
func (n *Navigator) MoveTo(node *automation.Node) {
	n.current = n.rangeOn(node)
}

// Do runs the named command, moving and selecting the current range.
func (n *Navigator) Do(name string) (cursors.Range, error) {
	cmd, err := Lookup(name)
	if err != nil {
		return n.current, err
	}
	r, err := n.current.Move(cmd.Unit, cmd.Dir)
	if err != nil {
		return n.current, errors.Wrapf(err, "run %s", name)
	}
	n.current = r

	selected := false
	if r.IsWebRange() {
		selected = r.Select(n.sink)
	}
	n.log.WithFields(logrus.Fields{
		"command":  name,
		"range":    r.String(),
		"selected": selected,
	}).Debug("[NAV] moved")
	return r, nil
}

// Describe returns the text a screen reader would speak for r.
func Describe(r cursors.Range) string {
	start, startIndex := r.Start().Resolve()
	end, endIndex := r.End().Resolve()
	if start == nil || end == nil {
		return ""
	}
	if start == end {
		if startIndex != cursors.NodeIndex && endIndex != cursors.NodeIndex {
			if text := automation.SliceUTF16(automation.Text(start), startIndex, endIndex); text != "" {
				return text
			}
		}
		return describeNode(start)
	}

	parts := []string{from(start, startIndex)}
	for leaf := automation.FindNextNode(start, automation.Forward, automation.Leaf); ; leaf = automation.FindNextNode(leaf, automation.Forward, automation.Leaf) {
		if leaf == nil {
			return describeNode(start)
		}
		if leaf == end {
			parts = append(parts, upTo(end, endIndex))
			break
		}
		parts = append(parts, automation.Text(leaf))
	}
	return strings.Join(parts, "")
}

// describeNode speaks a whole node: its text, followed by its role when the
// role matters or the node has no text of its own.
func describeNode(n *automation.Node) string {
	text := automation.Text(n)
	named := text != ""
	if !named {
		var parts []string
		for _, st := range n.FindAll(func(n *automation.Node) bool { return n.Role == automation.StaticText }) {
			parts = append(parts, st.Name)
		}
		text = strings.Join(parts, " ")
	}
	if !named || n.Role.Has(automation.TraitInteresting) || automation.IsRoot(n) {
		return strings.TrimSpace(text + " " + n.Role.String())
	}
	return text
}

func from(n *automation.Node, index int) string {
	text := automation.Text(n)
	if index < 0 {
		return text
	}
	return automation.SliceUTF16(text, index, automation.UTF16Length(text))
}

func upTo(n *automation.Node, index int) string {
	text := automation.Text(n)
	if index < 0 {
		return text
	}
	return automation.SliceUTF16(text, 0, index)
}
