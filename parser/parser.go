// Package parser builds accessibility trees out of HTML markup.
package parser

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"

	"github.com/heathj/govox/automation"
)

// ErrNoDocument is returned when the input holds no parsable document.
var ErrNoDocument = errors.New("no document")

type Parser struct {
	input   io.Reader
	desktop bool
}

type Option func(*Parser)

// WithDesktop puts the parsed document under a desktop node, the way a
// browser tab shows up in the desktop tree.
func WithDesktop(desktop bool) Option {
	return func(p *Parser) { p.desktop = desktop }
}

func NewParser(htmlIn io.Reader, opts ...Option) *Parser {
	p := &Parser{input: htmlIn}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start parses the whole input and returns the tree's root: the desktop
// when WithDesktop is set, the root web area otherwise.
func (p *Parser) Start() (*automation.Node, error) {
	if p.input == nil {
		return nil, ErrNoDocument
	}
	doc, err := html.Parse(p.input)
	if err != nil {
		return nil, errors.Wrap(err, "parse html")
	}
	if doc == nil || doc.FirstChild == nil {
		return nil, ErrNoDocument
	}

	c := newConstructor()
	root := automation.NewNode(automation.RootWebArea, "")
	c.blocks[root] = true
	c.construct(root, doc, context{})
	root.Name = c.title
	c.resolveFlows()
	c.layoutLines(root)

	logrus.WithFields(logrus.Fields{
		"nodes": len(root.FindAll(func(*automation.Node) bool { return true })),
		"title": c.title,
	}).Debug("[PARSER] built tree")

	if !p.desktop {
		return root, nil
	}
	desktop := automation.NewNode(automation.Desktop, "")
	desktop.AppendChild(root)
	return desktop, nil
}

// ParseString is a convenience wrapper around NewParser(...).Start().
func ParseString(s string, opts ...Option) (*automation.Node, error) {
	return NewParser(strings.NewReader(s), opts...).Start()
}

// ByID returns the first node under root whose HTMLID is id.
func ByID(root *automation.Node, id string) *automation.Node {
	if root == nil {
		return nil
	}
	if root.HTMLID == id {
		return root
	}
	return root.Find(func(n *automation.Node) bool { return n.HTMLID == id })
}
