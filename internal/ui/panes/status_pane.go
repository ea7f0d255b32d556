package panes

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/ja-he/archmaster/internal/control"
	"github.com/ja-he/archmaster/internal/styling"
	"github.com/ja-he/archmaster/internal/ui"
	"github.com/ja-he/archmaster/internal/util"
)

// StatusPane is a status bar that displays the current status message on the
// left and the state of the device link on the right.
type StatusPane struct {
	ui.LeafPane

	status     func() control.Status
	connection func() control.ConnectionInfo
	now        func() time.Time
}

// Draw draws this pane.
func (p *StatusPane) Draw() {
	x, y, w, h := p.Dimensions()

	status := p.status()
	style := p.Stylesheet.Status
	switch status.Kind {
	case control.StatusGood:
		style = p.Stylesheet.StatusGood
	case control.StatusBad:
		style = p.Stylesheet.StatusBad
	}
	p.Renderer.DrawBox(x, y, w, h, p.Stylesheet.Status)

	link := p.linkString()
	linkWidth := runewidth.StringWidth(link)
	p.Renderer.DrawText(x+w-linkWidth-1, y, linkWidth, 1, p.Stylesheet.Status.Emphasized(), link)

	text := util.TruncateAt(" "+status.Text+" ", w-linkWidth-2)
	p.Renderer.DrawText(x, y, runewidth.StringWidth(text), 1, style, text)
}

func (p *StatusPane) linkString() string {
	connection := p.connection()
	switch {
	case !connection.Connected:
		return "[offline]"
	case connection.LoopEnded:
		return fmt.Sprintf("[%s: no data, press c]", connection.PortName)
	default:
		return fmt.Sprintf("[%s, %s]", connection.PortName, humanize.RelTime(connection.Since, p.now(), "ago", "from now"))
	}
}

// NewStatusPane constructs and returns a new StatusPane.
func NewStatusPane(
	renderer ui.ConstrainedRenderer,
	dimensions func() (x, y, w, h int),
	stylesheet styling.Stylesheet,
	status func() control.Status,
	connection func() control.ConnectionInfo,
	now func() time.Time,
) *StatusPane {
	return &StatusPane{
		LeafPane: ui.LeafPane{
			ID:         ui.GeneratePaneID(),
			Renderer:   renderer,
			Dims:       dimensions,
			Stylesheet: stylesheet,
		},
		status:     status,
		connection: connection,
		now:        now,
	}
}
