package panes

import (
	"fmt"

	"github.com/ja-he/archmaster/internal/input"
	"github.com/ja-he/archmaster/internal/model"
	"github.com/ja-he/archmaster/internal/styling"
	"github.com/ja-he/archmaster/internal/ui"
)

// EditorPane is the popup for entering the remap of the selected key.
type EditorPane struct {
	ui.LeafPane

	cursorController ui.CursorLocationRequestHandler

	key    func() model.PhysicalKey
	mode   func() model.Mode
	buffer func() string
}

// Draw draws the editor, placing the text cursor at the end of the input.
func (p *EditorPane) Draw() {
	x, y, w, h := p.Dimensions()
	p.Renderer.DrawBox(x, y, w, h, p.Stylesheet.Editor)

	title := fmt.Sprintf("Remap %s (Mode %s)", p.key(), p.mode().Digit())
	p.Renderer.DrawText(x+1, y, w-2, 1, p.Stylesheet.Editor.Bolded(), title)

	fieldX, fieldY, fieldW := x+1, y+2, w-2
	if h < 3 || fieldW < 2 {
		return
	}
	p.Renderer.DrawBox(fieldX, fieldY, fieldW, 1, p.Stylesheet.Normal)

	// show the end of the input if it is longer than the field
	text := []rune(p.buffer())
	if len(text) > fieldW-1 {
		text = text[len(text)-(fieldW-1):]
	}
	p.Renderer.DrawText(fieldX, fieldY, fieldW, 1, p.Stylesheet.Normal, string(text))
	p.cursorController.Put(ui.CursorLocation{X: fieldX + len(text), Y: fieldY}, p.requesterID())

	if h >= 5 {
		hint := "<cr> apply  <esc> cancel"
		p.Renderer.DrawText(x+1, y+h-1, w-2, 1, p.Stylesheet.Editor.Italicized(), hint)
	}
}

// Undraw withdraws the text cursor.
func (p *EditorPane) Undraw() {
	p.cursorController.Delete(p.requesterID())
}

func (p *EditorPane) requesterID() string {
	return fmt.Sprintf("editor-pane-%d", p.Identify())
}

// NewEditorPane constructs and returns a new EditorPane.
func NewEditorPane(
	renderer ui.ConstrainedRenderer,
	cursorController ui.CursorLocationRequestHandler,
	dimensions func() (x, y, w, h int),
	stylesheet styling.Stylesheet,
	condition func() bool,
	key func() model.PhysicalKey,
	mode func() model.Mode,
	buffer func() string,
	inputProcessor input.SimpleInputProcessor,
) *EditorPane {
	return &EditorPane{
		LeafPane: ui.LeafPane{
			ID:             ui.GeneratePaneID(),
			InputProcessor: inputProcessor,
			Visible:        condition,
			Renderer:       renderer,
			Dims:           dimensions,
			Stylesheet:     stylesheet,
		},
		cursorController: cursorController,
		key:              key,
		mode:             mode,
		buffer:           buffer,
	}
}
