package panes

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ja-he/archmaster/internal/input"
	"github.com/ja-he/archmaster/internal/ui"
)

// RootPane acts as the root UI pane, wrapping all subpanes, managing the
// render cycle, invoking the subpanes' rendering, etc.
//
// The header, grid and status panes are always shown; the editor, log, help
// and notice panes are drawn over them in that order when visible, and the
// topmost visible one of those receives input first.
type RootPane struct {
	ID ui.PaneID

	renderer       ui.RenderOrchestratorControl
	cursorWrangler *ui.CursorWrangler

	dimensions func() (x, y, w, h int)

	headerPane ui.Pane
	gridPane   ui.Pane
	statusPane ui.Pane

	editorPane ui.Pane
	logPane    ui.Pane
	helpPane   ui.Pane
	noticePane ui.Pane

	inputProcessor input.SimpleInputProcessor

	drawMtx sync.Mutex

	log zerolog.Logger
}

// Dimensions gives the dimensions (x-axis offset, y-axis offset, width,
// height) for this pane.
func (p *RootPane) Dimensions() (x, y, w, h int) {
	return p.dimensions()
}

func (p *RootPane) getCurrentlyActivePanesInOrder() (active []ui.Pane, inactive []ui.Pane) {
	active = []ui.Pane{p.headerPane, p.gridPane, p.statusPane}
	for _, pane := range []ui.Pane{p.editorPane, p.logPane, p.helpPane, p.noticePane} {
		if pane.IsVisible() {
			active = append(active, pane)
		} else {
			inactive = append(inactive, pane)
		}
	}
	return active, inactive
}

// IsVisible returns true; the root pane is always visible.
func (p *RootPane) IsVisible() bool { return true }

// Draw draws this pane.
func (p *RootPane) Draw() {
	p.drawMtx.Lock()
	defer p.drawMtx.Unlock()

	p.renderer.Clear()

	active, inactive := p.getCurrentlyActivePanesInOrder()
	for _, pane := range inactive {
		pane.Undraw()
	}
	for _, pane := range active {
		p.log.Trace().Msgf("drawing %d...", pane.Identify())
		pane.Draw()
	}

	// After all drawing draw or hide the cursor, depending on what is requested
	// during the draw of subpanes.
	p.cursorWrangler.Enact()

	p.renderer.Show()
}

// Undraw undraws all subpanes.
func (p *RootPane) Undraw() {
	p.renderer.Clear()

	active, inactive := p.getCurrentlyActivePanesInOrder()
	for _, pane := range active {
		pane.Undraw()
	}
	for _, pane := range inactive {
		pane.Undraw()
	}

	p.renderer.Show()
}

// CapturesInput reports whether the focussed pane or the global bindings are
// in the middle of a sequence.
func (p *RootPane) CapturesInput() bool {
	if p.focussedPane().CapturesInput() {
		return true
	}
	return p.inputProcessor.CapturesInput()
}

// ProcessInput hands the key to whoever captures it. Otherwise the focussed
// pane gets the first try and the global bindings the second.
func (p *RootPane) ProcessInput(key input.Key) bool {
	switch {
	case p.inputProcessor.CapturesInput():
		return p.inputProcessor.ProcessInput(key)
	case p.focussedPane().CapturesInput():
		return p.focussedPane().ProcessInput(key)
	default:
		if p.focussedPane().ProcessInput(key) {
			return true
		}
		return p.inputProcessor.ProcessInput(key)
	}
}

// Identify returns the root pane's ID.
func (p *RootPane) Identify() ui.PaneID { return p.ID }

// HasFocus returns true; the root pane always has focus.
func (p *RootPane) HasFocus() bool { return true }

// Focusses returns the ID of the pane receiving input.
func (p *RootPane) Focusses() ui.PaneID {
	return p.focussedPane().Identify()
}

func (p *RootPane) focussedPane() ui.Pane {
	for _, pane := range []ui.Pane{p.noticePane, p.helpPane, p.editorPane, p.logPane} {
		if pane.IsVisible() {
			return pane
		}
	}
	return p.gridPane
}

// SetParent panics; the root pane has no parent.
func (p *RootPane) SetParent(ui.PaneQuerier) { panic("root set parent") }

// GetHelp merges the global bindings with those of the focussed pane, the
// latter taking precedence.
func (p *RootPane) GetHelp() input.Help {
	result := input.Help{}

	for k, v := range p.inputProcessor.GetHelp() {
		result[k] = v
	}
	for k, v := range p.focussedPane().GetHelp() {
		result[k] = v
	}

	return result
}

// NewRootPane constructs and returns a new RootPane.
func NewRootPane(
	renderer ui.RenderOrchestratorControl,
	cursorWrangler *ui.CursorWrangler,
	dimensions func() (x, y, w, h int),
	headerPane ui.Pane,
	gridPane ui.Pane,
	statusPane ui.Pane,
	editorPane ui.Pane,
	logPane ui.Pane,
	helpPane ui.Pane,
	noticePane ui.Pane,
	inputProcessor input.SimpleInputProcessor,
) *RootPane {
	rootPane := &RootPane{
		ID:             ui.GeneratePaneID(),
		renderer:       renderer,
		cursorWrangler: cursorWrangler,
		dimensions:     dimensions,
		headerPane:     headerPane,
		gridPane:       gridPane,
		statusPane:     statusPane,
		editorPane:     editorPane,
		logPane:        logPane,
		helpPane:       helpPane,
		noticePane:     noticePane,
		inputProcessor: inputProcessor,
		log:            log.With().Str("component", "root-pane").Logger(),
	}
	defer rootPane.log.Trace().Msgf("created root pane with id '%d'", rootPane.Identify())

	for _, pane := range []ui.Pane{headerPane, gridPane, statusPane, editorPane, logPane, helpPane, noticePane} {
		pane.SetParent(rootPane)
	}

	return rootPane
}
