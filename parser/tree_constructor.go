package parser

import (
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/heathj/govox/automation"
)

// context is the inherited state while walking down the DOM.
type context struct {
	editable bool
	pre      bool
	hidden   bool
}

type flow struct {
	from *automation.Node
	to   []string
}

// constructor walks the DOM produced by x/net/html and emits the
// accessibility tree for it.
type constructor struct {
	title  string
	ids    map[string]*automation.Node
	flows  []flow
	blocks map[*automation.Node]bool
}

func newConstructor() *constructor {
	return &constructor{
		ids:    map[string]*automation.Node{},
		blocks: map[*automation.Node]bool{},
	}
}

var elementRoles = map[atom.Atom]automation.Role{
	atom.P:        automation.Paragraph,
	atom.H1:       automation.Heading,
	atom.H2:       automation.Heading,
	atom.H3:       automation.Heading,
	atom.H4:       automation.Heading,
	atom.H5:       automation.Heading,
	atom.H6:       automation.Heading,
	atom.A:        automation.Link,
	atom.Button:   automation.Button,
	atom.Img:      automation.Image,
	atom.Ul:       automation.List,
	atom.Ol:       automation.List,
	atom.Li:       automation.ListItem,
	atom.Br:       automation.LineBreak,
	atom.Textarea: automation.TextField,
	atom.Input:    automation.TextField,
	atom.Dialog:   automation.Dialog,
	atom.Fieldset: automation.Group,
}

// https://www.w3.org/TR/wai-aria-1.2/#role_definitions
var ariaRoles = map[string]automation.Role{
	"button":    automation.Button,
	"checkbox":  automation.CheckBox,
	"dialog":    automation.Dialog,
	"generic":   automation.GenericContainer,
	"group":     automation.Group,
	"heading":   automation.Heading,
	"img":       automation.Image,
	"link":      automation.Link,
	"list":      automation.List,
	"listitem":  automation.ListItem,
	"paragraph": automation.Paragraph,
	"textbox":   automation.TextField,
}

var blockElements = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true,
	atom.Caption: true, atom.Dd: true, atom.Details: true, atom.Dialog: true,
	atom.Div: true, atom.Dl: true, atom.Dt: true, atom.Fieldset: true,
	atom.Figcaption: true, atom.Figure: true, atom.Footer: true, atom.Form: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Header: true, atom.Hr: true, atom.Li: true, atom.Main: true, atom.Nav: true,
	atom.Ol: true, atom.P: true, atom.Pre: true, atom.Section: true, atom.Summary: true,
	atom.Table: true, atom.Td: true, atom.Th: true, atom.Tr: true, atom.Ul: true,
}

var nameFromContents = map[automation.Role]bool{
	automation.Link:    true,
	automation.Button:  true,
	automation.Heading: true,
}

func getAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func attrValue(n *html.Node, key string) string {
	v, _ := getAttr(n, key)
	return v
}

func isContentEditable(n *html.Node) bool {
	v, ok := getAttr(n, "contenteditable")
	if !ok {
		return false
	}
	v = strings.ToLower(v)
	return v == "" || v == "true" || v == "plaintext-only"
}

func isBlock(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode && (blockElements[n.DataAtom] || n.DataAtom == atom.Br)
}

func (c *constructor) construct(parent *automation.Node, n *html.Node, ctx context) {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case html.ElementNode:
			c.element(parent, child, ctx)
		case html.TextNode:
			c.text(parent, child, ctx)
		case html.DocumentNode:
			c.construct(parent, child, ctx)
		}
	}
}

func (c *constructor) head(n *html.Node) {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode && child.DataAtom == atom.Title && child.FirstChild != nil {
			c.title = strings.TrimSpace(collapseWhitespace(child.FirstChild.Data))
		}
	}
}

func (c *constructor) element(parent *automation.Node, el *html.Node, ctx context) {
	switch el.DataAtom {
	case atom.Head:
		c.head(el)
		return
	case atom.Script, atom.Style, atom.Template, atom.Noscript, atom.Title:
		return
	case atom.Html, atom.Body, atom.Tbody, atom.Thead, atom.Tfoot:
		c.construct(parent, el, ctx)
		return
	}
	if _, hidden := getAttr(el, "hidden"); hidden {
		return
	}

	role, ok := elementRoles[el.DataAtom]
	if !ok {
		role = automation.GenericContainer
	}
	if aria, ok := ariaRoles[strings.ToLower(attrValue(el, "role"))]; ok {
		role = aria
	}

	node := automation.NewNode(role, "")
	node.HTMLID = attrValue(el, "id")
	if attrValue(el, "aria-hidden") == "true" {
		ctx.hidden = true
	}
	if isContentEditable(el) {
		node.State |= automation.Focusable
		ctx.editable = true
	}
	if ctx.editable {
		node.State |= automation.Editable | automation.RichlyEditable
	}
	if ctx.hidden {
		node.State |= automation.Invisible
	}
	if _, ok := getAttr(el, "tabindex"); ok || role == automation.Link || role == automation.Button {
		node.State |= automation.Focusable
	}
	if el.DataAtom == atom.Pre {
		ctx.pre = true
	}
	if blockElements[el.DataAtom] {
		c.blocks[node] = true
	}

	switch el.DataAtom {
	case atom.Br:
		node.Name = "\n"
		node.AppendChild(c.inlineTextBox("\n", node.State))
		parent.AppendChild(node)
		return
	case atom.Input:
		if !c.input(el, node) {
			return
		}
		parent.AppendChild(node)
		c.register(el, node)
		return
	case atom.Textarea:
		node.Value = textContent(el)
		node.Name = attrValue(el, "aria-label")
		node.State |= automation.Editable | automation.Focusable
		parent.AppendChild(node)
		c.register(el, node)
		return
	case atom.Img:
		node.Name = attrValue(el, "alt")
		node.NameFrom = automation.NameFromAttribute
	}

	parent.AppendChild(node)
	c.construct(node, el, ctx)

	if label := attrValue(el, "aria-label"); label != "" {
		node.Name = label
		node.NameFrom = automation.NameFromAttribute
	} else if nameFromContents[role] {
		node.Name = contentsName(node)
		node.NameFrom = automation.NameFromContents
	}
	c.register(el, node)
}

func (c *constructor) input(el *html.Node, node *automation.Node) bool {
	switch strings.ToLower(attrValue(el, "type")) {
	case "hidden":
		return false
	case "checkbox", "radio":
		node.Role = automation.CheckBox
		node.Name = attrValue(el, "aria-label")
		node.NameFrom = automation.NameFromAttribute
		node.State |= automation.Focusable
	case "button", "submit", "reset":
		node.Role = automation.Button
		node.Name = attrValue(el, "value")
		node.NameFrom = automation.NameFromValue
		node.State |= automation.Focusable
	default:
		node.Role = automation.TextField
		node.Value = attrValue(el, "value")
		node.Name = attrValue(el, "aria-label")
		if node.Name == "" {
			node.Name = attrValue(el, "placeholder")
		}
		node.NameFrom = automation.NameFromAttribute
		node.State |= automation.Editable | automation.Focusable
	}
	return true
}

func (c *constructor) register(el *html.Node, node *automation.Node) {
	if node.HTMLID != "" {
		if _, dup := c.ids[node.HTMLID]; !dup {
			c.ids[node.HTMLID] = node
		}
	}
	if to := strings.Fields(attrValue(el, "aria-flowto")); len(to) > 0 {
		c.flows = append(c.flows, flow{from: node, to: to})
	}
}

// resolveFlows turns aria-flowto references into focus overrides. The first
// resolvable id wins.
func (c *constructor) resolveFlows() {
	for _, f := range c.flows {
		for _, id := range f.to {
			target, ok := c.ids[id]
			if !ok {
				logrus.WithField("id", id).Debug("[PARSER] unresolved aria-flowto")
				continue
			}
			f.from.NextFocus = target
			target.PreviousFocus = f.from
			break
		}
	}
}

func (c *constructor) text(parent *automation.Node, t *html.Node, ctx context) {
	data := t.Data
	if !ctx.pre {
		data = collapseWhitespace(data)
		if t.PrevSibling == nil || isBlock(t.PrevSibling) {
			data = strings.TrimLeft(data, " ")
		}
		if t.NextSibling == nil || isBlock(t.NextSibling) {
			data = strings.TrimRight(data, " ")
		}
		if strings.TrimSpace(data) == "" {
			return
		}
	} else if data == "" {
		return
	}

	state := automation.State(0)
	if ctx.editable {
		state |= automation.Editable | automation.RichlyEditable
	}
	if ctx.hidden {
		state |= automation.Invisible
	}

	st := automation.NewNode(automation.StaticText, data)
	st.NameFrom = automation.NameFromContents
	st.State = state
	for _, line := range splitLines(data, ctx.pre) {
		st.AppendChild(c.inlineTextBox(line, state))
	}
	parent.AppendChild(st)
}

func (c *constructor) inlineTextBox(text string, state automation.State) *automation.Node {
	box := automation.NewNode(automation.InlineTextBox, text)
	box.State = state &^ automation.Focusable
	box.WordStarts, box.WordEnds = wordStops(text)
	return box
}

// layoutLines links consecutive leaves that share a line. A line ends at a
// block boundary and after a newline.
func (c *constructor) layoutLines(root *automation.Node) {
	var (
		prev *automation.Node
		walk func(n *automation.Node)
	)
	walk = func(n *automation.Node) {
		for _, child := range n.ChildNodes {
			if child.State.Has(automation.Invisible) {
				continue
			}
			if !automation.Leaf(child) {
				walk(child)
				continue
			}
			if prev != nil && c.block(prev) == c.block(child) && !strings.HasSuffix(prev.Name, "\n") {
				prev.NextOnLine = child
				child.PreviousOnLine = prev
			}
			prev = child
		}
	}
	walk(root)

	for _, st := range root.FindAll(func(n *automation.Node) bool { return n.Role == automation.StaticText }) {
		if st.LastChild != nil {
			st.NextOnLine = st.LastChild.NextOnLine
		}
		if st.FirstChild != nil {
			st.PreviousOnLine = st.FirstChild.PreviousOnLine
		}
	}
}

func (c *constructor) block(n *automation.Node) *automation.Node {
	for cur := n.ParentNode; cur != nil; cur = cur.ParentNode {
		if c.blocks[cur] {
			return cur
		}
	}
	return nil
}

func collapseWhitespace(s string) string {
	var b strings.Builder
	space := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			if !space {
				b.WriteByte(' ')
			}
			space = true
		default:
			b.WriteRune(r)
			space = false
		}
	}
	return b.String()
}

func splitLines(s string, pre bool) []string {
	if !pre {
		return []string{s}
	}
	lines := strings.SplitAfter(s, "\n")
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if child.Type == html.TextNode {
				b.WriteString(child.Data)
			}
			walk(child)
		}
	}
	walk(n)
	return b.String()
}

func contentsName(n *automation.Node) string {
	var parts []string
	for _, st := range n.FindAll(func(n *automation.Node) bool { return n.Role == automation.StaticText }) {
		parts = append(parts, st.Name)
	}
	return strings.TrimSpace(collapseWhitespace(strings.Join(parts, "")))
}
