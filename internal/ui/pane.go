package ui

import (
	"github.com/ja-he/archmaster/internal/input"
	"github.com/ja-he/archmaster/internal/styling"
)

// LeafPane implements the parts of Pane common to all panes that draw
// themselves instead of delegating to subpanes. Concrete panes embed it and
// provide Draw.
//
// A nil InputProcessor makes a pane that ignores input, like the header.
type LeafPane struct {
	ID             PaneID
	Parent         PaneQuerier
	InputProcessor input.SimpleInputProcessor
	Visible        func() bool

	Renderer   ConstrainedRenderer
	Dims       func() (x, y, w, h int)
	Stylesheet styling.Stylesheet
}

// Identify returns the pane's ID, which must have been assigned on
// construction.
func (p *LeafPane) Identify() PaneID {
	if p.ID == NonePaneID {
		panic("pane has not been assigned an ID")
	}
	return p.ID
}

func (p *LeafPane) SetParent(parent PaneQuerier) { p.Parent = parent }

// IsVisible reports the result of Visible, defaulting to always visible.
func (p *LeafPane) IsVisible() bool { return p.Visible == nil || p.Visible() }

func (p *LeafPane) Dimensions() (x, y, w, h int) { return p.Dims() }

// Draw panics; embedding panes must provide their own.
func (p *LeafPane) Draw() { panic("unimplemented draw") }

// Undraw does nothing. Panes owning a cursor override it.
func (p *LeafPane) Undraw() {}

// HasFocus reports whether the parent has focus and focusses this pane.
func (p *LeafPane) HasFocus() bool {
	return p.Parent != nil && p.Parent.HasFocus() && p.Parent.Focusses() == p.Identify()
}

// Focusses returns NonePaneID, a leaf has no subpanes.
func (p *LeafPane) Focusses() PaneID { return NonePaneID }

func (p *LeafPane) CapturesInput() bool {
	return p.InputProcessor != nil && p.InputProcessor.CapturesInput()
}

func (p *LeafPane) ProcessInput(key input.Key) bool {
	return p.InputProcessor != nil && p.InputProcessor.ProcessInput(key)
}

func (p *LeafPane) GetHelp() input.Help {
	if p.InputProcessor == nil {
		return input.Help{}
	}
	return p.InputProcessor.GetHelp()
}
