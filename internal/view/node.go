package view

import "github.com/pefman/alpha-counter/internal/models"

// Tag names the kind of a widget. Hosts decide how each one looks.
type Tag string

const (
	TagDiv    Tag = "div"
	TagH1     Tag = "h1"
	TagH2     Tag = "h2"
	TagButton Tag = "button"
)

// Control identifies what a button does when clicked.
type Control string

const (
	ControlSelectCharacter Control = "select-character"
	ControlRandomCharacter Control = "random-character"
	ControlStart           Control = "start"
)

// Click is a user action on a control, as hosts report it.
type Click struct {
	Control   Control          `json:"control"`
	Slot      models.SlotIndex `json:"slot"`
	Character string           `json:"character,omitempty"`
}

// Node is one widget of a rendered screen. Trees hold plain data only, so
// two renders of the same state compare equal with reflect.DeepEqual.
type Node struct {
	Tag      Tag    `json:"tag"`
	Text     string `json:"text,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
	Selected bool   `json:"selected,omitempty"`
	Click    *Click `json:"click,omitempty"`
	Children []Node `json:"children,omitempty"`
}

// Walk visits n and its descendants depth-first, parents before children.
func (n Node) Walk(fn func(Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Buttons collects every button of the tree in document order.
func (n Node) Buttons() []Node {
	var out []Node
	n.Walk(func(c Node) {
		if c.Tag == TagButton {
			out = append(out, c)
		}
	})
	return out
}

func text(tag Tag, s string) Node { return Node{Tag: tag, Text: s} }

func div(children ...Node) Node { return Node{Tag: TagDiv, Children: children} }
