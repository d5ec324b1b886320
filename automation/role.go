package automation

// Role is the accessibility role of a node.
type Role uint16

const (
	Unknown Role = iota
	Desktop
	RootWebArea
	Window
	Dialog
	GenericContainer
	Group
	Paragraph
	Heading
	List
	ListItem
	StaticText
	InlineTextBox
	LineBreak
	TextField
	Link
	Button
	CheckBox
	Image
)

var roleNames = [...]string{
	Unknown:          "unknown",
	Desktop:          "desktop",
	RootWebArea:      "rootWebArea",
	Window:           "window",
	Dialog:           "dialog",
	GenericContainer: "genericContainer",
	Group:            "group",
	Paragraph:        "paragraph",
	Heading:          "heading",
	List:             "list",
	ListItem:         "listItem",
	StaticText:       "staticText",
	InlineTextBox:    "inlineTextBox",
	LineBreak:        "lineBreak",
	TextField:        "textField",
	Link:             "link",
	Button:           "button",
	CheckBox:         "checkBox",
	Image:            "image",
}

func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return roleNames[Unknown]
}

// Trait is a role-dependent behavior flag. All role-specific branching in
// this module goes through roleTraits.
type Trait uint8

const (
	// TraitContainer marks structural containers that tree walks descend
	// through even when a predicate matches them.
	TraitContainer Trait = 1 << iota
	// TraitRoot marks roles that bound tree walks.
	TraitRoot
	// TraitForcedLeaf marks roles whose children are never visited.
	TraitForcedLeaf
	// TraitTextRun marks static text, which holds inline text boxes.
	TraitTextRun
	// TraitTextLeaf marks the finest grained text node.
	TraitTextLeaf
	// TraitInteresting marks roles that are stops for object navigation.
	TraitInteresting
	// TraitLineBreak marks hard line breaks.
	TraitLineBreak
)

var roleTraits = map[Role]Trait{
	Desktop:          TraitContainer | TraitRoot,
	RootWebArea:      TraitContainer | TraitRoot,
	Window:           TraitContainer | TraitRoot,
	Dialog:           TraitContainer | TraitRoot,
	GenericContainer: TraitContainer,
	Group:            TraitContainer,
	List:             TraitContainer,
	ListItem:         TraitContainer,
	StaticText:       TraitTextRun,
	InlineTextBox:    TraitTextLeaf,
	LineBreak:        TraitLineBreak,
	TextField:        TraitForcedLeaf | TraitInteresting,
	Button:           TraitForcedLeaf | TraitInteresting,
	CheckBox:         TraitForcedLeaf | TraitInteresting,
	Image:            TraitInteresting,
	Link:             TraitInteresting,
	Heading:          TraitInteresting,
}

// Has reports whether the role carries trait t.
func (r Role) Has(t Trait) bool {
	return roleTraits[r]&t != 0
}

// State is a set of node state bits.
type State uint8

const (
	Editable State = 1 << iota
	RichlyEditable
	Focusable
	Invisible
)

// Has reports whether every bit of f is set.
func (s State) Has(f State) bool {
	return s&f == f
}

func (s State) String() string {
	names := []struct {
		bit  State
		name string
	}{
		{Editable, "editable"},
		{RichlyEditable, "richlyEditable"},
		{Focusable, "focusable"},
		{Invisible, "invisible"},
	}
	out := ""
	for _, n := range names {
		if s.Has(n.bit) {
			if out != "" {
				out += ","
			}
			out += n.name
		}
	}
	return out
}

// NameFrom describes where a node's accessible name came from.
type NameFrom uint8

const (
	NameFromUninitialized NameFrom = iota
	NameFromAttribute
	NameFromContents
	NameFromValue
)

// Dir is a direction in document order.
type Dir int

const (
	Forward Dir = iota
	Backward
)

func (d Dir) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}
