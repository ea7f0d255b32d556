package panes

import (
	"github.com/ja-he/archmaster/internal/input"
	"github.com/ja-he/archmaster/internal/model"
	"github.com/ja-he/archmaster/internal/styling"
	"github.com/ja-he/archmaster/internal/ui"
	"github.com/ja-he/archmaster/internal/util"
)

// RemapSource provides the remaps shown in the grid.
type RemapSource interface {
	GetRemap(mode model.Mode, key model.PhysicalKey) string
	IsMapped(mode model.Mode, key model.PhysicalKey) bool
}

// GridPane shows the device's 3x3 key grid, each cell with its physical key
// and what that key is remapped to in the active mode.
type GridPane struct {
	ui.LeafPane

	remaps     RemapSource
	activeMode func() model.Mode
	cursor     func() int
}

// Draw draws this pane.
func (p *GridPane) Draw() {
	x, y, w, h := p.Dimensions()
	p.Renderer.DrawBox(x, y, w, h, p.Stylesheet.Normal)

	rows := len(model.GridKeys) / model.GridWidth
	cellW := (w - 1) / model.GridWidth
	cellH := (h - 1) / rows
	if cellW < 3 || cellH < 1 {
		return
	}

	mode := p.activeMode()
	for i, key := range model.GridKeys {
		col := i % model.GridWidth
		row := i / model.GridWidth
		cx := x + 1 + col*cellW
		cy := y + 1 + row*cellH
		cw := cellW - 1
		ch := cellH - 1
		if ch < 1 {
			ch = 1
		}

		style := p.Stylesheet.GridKey
		switch {
		case i == p.cursor():
			style = p.Stylesheet.GridKeySelected
		case p.remaps.IsMapped(mode, key):
			style = p.Stylesheet.GridKeyMapped
		}

		p.Renderer.DrawBox(cx, cy, cw, ch, style)
		p.Renderer.DrawText(cx+1, cy, 1, 1, style.Bolded(), string(key))
		target := util.PadCenter(p.remaps.GetRemap(mode, key), cw)
		p.Renderer.DrawText(cx, cy+ch/2, cw, 1, style, target)
	}
}

// NewGridPane constructs and returns a new GridPane.
func NewGridPane(
	renderer ui.ConstrainedRenderer,
	dimensions func() (x, y, w, h int),
	stylesheet styling.Stylesheet,
	remaps RemapSource,
	activeMode func() model.Mode,
	cursor func() int,
	inputProcessor input.SimpleInputProcessor,
) *GridPane {
	return &GridPane{
		LeafPane: ui.LeafPane{
			ID:             ui.GeneratePaneID(),
			InputProcessor: inputProcessor,
			Renderer:       renderer,
			Dims:           dimensions,
			Stylesheet:     stylesheet,
		},
		remaps:     remaps,
		activeMode: activeMode,
		cursor:     cursor,
	}
}
