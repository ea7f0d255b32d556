package panes

import (
	"fmt"

	"github.com/ja-he/archmaster/internal/model"
	"github.com/ja-he/archmaster/internal/styling"
	"github.com/ja-he/archmaster/internal/ui"
)

// HeaderPane shows the application title and the mode selector, with the
// active mode highlighted.
type HeaderPane struct {
	ui.LeafPane

	activeMode func() model.Mode
}

// Draw draws this pane.
func (p *HeaderPane) Draw() {
	x, y, w, h := p.Dimensions()

	p.Renderer.DrawBox(x, y, w, h, p.Stylesheet.Header)
	title := "ARCHMASTER"
	p.Renderer.DrawText(x+1, y, len(title), 1, p.Stylesheet.Header.Bolded(), title)

	hint := "? for help"
	p.Renderer.DrawText(x+w-len(hint)-1, y, len(hint), 1, p.Stylesheet.Header.Italicized(), hint)

	if h < 2 {
		return
	}
	label := "Mode:"
	p.Renderer.DrawText(x+1, y+1, len(label), 1, p.Stylesheet.Header, label)
	offset := x + 1 + len(label) + 1
	for _, mode := range model.Modes() {
		tab := fmt.Sprintf(" Mode %s ", mode.Digit())
		style := p.Stylesheet.ModeInactive
		if mode == p.activeMode() {
			style = p.Stylesheet.ModeActive
		}
		p.Renderer.DrawText(offset, y+1, len(tab), 1, style, tab)
		offset += len(tab) + 1
	}
}

// NewHeaderPane constructs and returns a new HeaderPane.
func NewHeaderPane(
	renderer ui.ConstrainedRenderer,
	dimensions func() (x, y, w, h int),
	stylesheet styling.Stylesheet,
	activeMode func() model.Mode,
) *HeaderPane {
	return &HeaderPane{
		LeafPane: ui.LeafPane{
			ID:         ui.GeneratePaneID(),
			Renderer:   renderer,
			Dims:       dimensions,
			Stylesheet: stylesheet,
		},
		activeMode: activeMode,
	}
}
