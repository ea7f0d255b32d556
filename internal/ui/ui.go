package ui

import (
	"fmt"
	"sync/atomic"

	"github.com/ja-he/archmaster/internal/input"
	"github.com/ja-he/archmaster/internal/styling"
)

// Pane is a region of the remap editor's screen.
//
// Panes form a tree below a root pane. Focus flows down that tree: a pane has
// focus when its parent has focus and focusses it.
type Pane interface {
	Draw()
	Undraw()
	IsVisible() bool
	Dimensions() (x, y, w, h int)

	input.SimpleInputProcessor

	PaneQuerier

	SetParent(PaneQuerier)
}

// PaneQuerier is the part of a Pane its children may see.
type PaneQuerier interface {
	HasFocus() bool
	Focusses() PaneID
	IsVisible() bool
	Identify() PaneID
}

// PaneID identifies a pane.
type PaneID uint32

// NonePaneID is never assigned to a pane.
const NonePaneID PaneID = 0

var lastPaneID uint32

// GeneratePaneID returns a fresh PaneID.
func GeneratePaneID() PaneID {
	return PaneID(atomic.AddUint32(&lastPaneID, 1))
}

// Renderer draws boxes and text in screen coordinates.
type Renderer interface {
	DrawBox(x, y, w, h int, style styling.DrawStyling)
	DrawText(x, y, w, h int, style styling.DrawStyling, text string)
}

// ConstrainedRenderer is a Renderer that clips everything to its Dimensions.
type ConstrainedRenderer interface {
	Renderer
	Dimensions() (x, y, w, h int)
}

// RenderOrchestratorControl frames a render cycle. Only the root pane uses
// it.
type RenderOrchestratorControl interface {
	Clear()
	Show()
}

// TextCursorController shows or hides the terminal cursor.
type TextCursorController interface {
	HideCursor()
	ShowCursor(CursorLocation)
}

// CursorLocation is a screen cell.
type CursorLocation struct {
	X int
	Y int
}

func (l CursorLocation) String() string {
	return fmt.Sprintf("%d:%d", l.X, l.Y)
}
