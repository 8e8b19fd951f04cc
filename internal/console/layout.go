package console

import (
	"github.com/gdamore/tcell/v2"

	"github.com/pefman/alpha-counter/internal/game"
	"github.com/pefman/alpha-counter/internal/view"
)

const margin = 2

// draw renders snap and rebuilds the hit boxes. Focus is kept by index
// while the button count stays the same.
func (a *App) draw(snap game.Snapshot) {
	a.snap = snap
	tree := a.router.Render(snap.State)

	prev := len(a.hits)
	a.hits = a.hits[:0]
	a.screen.Clear()
	a.layout(tree, 1)
	if len(a.hits) != prev || a.focus >= len(a.hits) {
		a.focus = -1
	}
	a.paintButtons()

	_, h := a.screen.Size()
	if a.status != "" {
		putText(a.screen, margin, h-2, a.status, styleError)
	}
	putText(a.screen, margin, h-1, helpLine, styleHelp)
	a.screen.Show()
}

// layout places n starting at row y and returns the next free row.
func (a *App) layout(n view.Node, y int) int {
	switch n.Tag {
	case view.TagH1:
		putText(a.screen, margin, y, n.Text, styleTitle)
		return y + 2
	case view.TagH2:
		putText(a.screen, margin, y, n.Text, styleHeading)
		return y + 1
	case view.TagButton:
		a.place(n, margin, y)
		return y + 2
	}
	if isButtonRow(n) {
		return a.row(n.Children, y) + 2
	}
	if n.Text != "" {
		putText(a.screen, margin, y, n.Text, styleBase)
		y++
	}
	for _, c := range n.Children {
		y = a.layout(c, y)
	}
	return y
}

func isButtonRow(n view.Node) bool {
	if len(n.Children) == 0 {
		return false
	}
	for _, c := range n.Children {
		if c.Tag != view.TagButton {
			return false
		}
	}
	return true
}

// row lays buttons left to right, wrapping at the screen edge. It returns
// the last row used.
func (a *App) row(buttons []view.Node, y int) int {
	w, _ := a.screen.Size()
	x := margin
	for _, b := range buttons {
		width := len([]rune(label(b)))
		if x > margin && x+width > w-margin {
			x = margin
			y++
		}
		x = a.place(b, x, y) + 1
	}
	return y
}

func label(b view.Node) string { return "[ " + b.Text + " ]" }

// place records a hit box for b and returns the column after it. Painting
// happens in paintButtons once focus is settled.
func (a *App) place(b view.Node, x, y int) int {
	end := x + len([]rune(label(b)))
	h := hitBox{x0: x, x1: end, y: y, disabled: b.Disabled, node: b}
	if b.Click != nil {
		h.click = *b.Click
	}
	a.hits = append(a.hits, h)
	return end
}

func (a *App) paintButtons() {
	for i, h := range a.hits {
		b := h.node
		style := styleButton
		switch {
		case b.Disabled:
			style = styleDisabled
		case b.Selected:
			style = styleSelected
		}
		if i == a.focus {
			style = styleFocus
		}
		putText(a.screen, h.x0, h.y, label(b), style)
	}
}

func putText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
