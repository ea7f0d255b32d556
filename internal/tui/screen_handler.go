package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/ja-he/archmaster/internal/styling"
	"github.com/ja-he/archmaster/internal/ui"
)

// EventPollable is the input side of a screen.
type EventPollable interface {
	PollEvent() tcell.Event
}

// InitializedScreen is a screen that must be finalized before exiting.
type InitializedScreen interface {
	Fini()
}

// ScreenSynchronizer is told when the terminal was resized.
type ScreenSynchronizer interface {
	NeedsSync()
}

// ScreenHandler draws the remap editor to a tcell.Screen.
// All drawing happens on the controller's event loop, so it does not lock.
type ScreenHandler struct {
	screen    tcell.Screen
	needsSync bool
}

// NewTUIScreenHandler sets up the terminal.
func NewTUIScreenHandler() (*ScreenHandler, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("could not create screen (%w)", err)
	}
	return NewScreenHandler(screen)
}

// NewScreenHandler initializes screen, which may also be a simulation
// screen, and draws to it.
func NewScreenHandler(screen tcell.Screen) (*ScreenHandler, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("could not initialize screen (%w)", err)
	}
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.ColorReset))
	screen.Clear()
	return &ScreenHandler{screen: screen}, nil
}

func (s *ScreenHandler) GetEventPollable() EventPollable { return s.screen }

func (s *ScreenHandler) Fini() { s.screen.Fini() }

// NeedsSync makes the next Show redraw the whole terminal.
func (s *ScreenHandler) NeedsSync() { s.needsSync = true }

func (s *ScreenHandler) Dimensions() (x, y, w, h int) {
	w, h = s.screen.Size()
	return 0, 0, w, h
}

func (s *ScreenHandler) ShowCursor(l ui.CursorLocation) { s.screen.ShowCursor(l.X, l.Y) }

func (s *ScreenHandler) HideCursor() { s.screen.HideCursor() }

// Clear blanks the screen buffer. Each frame starts with it.
func (s *ScreenHandler) Clear() { s.screen.Clear() }

// Show flushes the frame to the terminal.
func (s *ScreenHandler) Show() {
	if s.needsSync {
		s.needsSync = false
		s.screen.Sync()
		return
	}
	s.screen.Show()
}

// DrawText writes text into the box, wrapping at its right edge and dropping
// whatever does not fit. Wide runes take two cells and are never split over
// a line break.
func (s *ScreenHandler) DrawText(x, y, w, h int, style styling.DrawStyling, text string) {
	if w <= 0 || h <= 0 {
		return
	}
	tcellStyle := style.AsTcell()

	col, row := x, y
	for _, r := range text {
		width := runewidth.RuneWidth(r)
		if width == 0 {
			width = 1
		}
		if width > w {
			return
		}
		if col+width > x+w {
			col, row = x, row+1
		}
		if row >= y+h {
			return
		}
		s.screen.SetContent(col, row, r, nil, tcellStyle)
		col += width
	}
}

// DrawBox fills the box with blanks in the style's background.
func (s *ScreenHandler) DrawBox(x, y, w, h int, style styling.DrawStyling) {
	tcellStyle := style.AsTcell()
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			s.screen.SetContent(col, row, ' ', nil, tcellStyle)
		}
	}
}
