package panes

import (
	"fmt"
	"sort"

	"github.com/mattn/go-runewidth"

	"github.com/ja-he/archmaster/internal/potatolog"
	"github.com/ja-he/archmaster/internal/styling"
	"github.com/ja-he/archmaster/internal/ui"
	"github.com/ja-he/archmaster/internal/util"
)

// LogPane shows the log, with the most recent log entries at the top.
type LogPane struct {
	ui.LeafPane

	logReader potatolog.LogReader

	titleString func() string
}

// Draw draws the log over top of all previously drawn contents.
func (p *LogPane) Draw() {
	x, y, w, h := p.Dimensions()

	p.Renderer.DrawBox(x, y, w, h, p.Stylesheet.LogDefault)
	title := p.titleString()
	p.Renderer.DrawBox(x, y, w, 1, p.Stylesheet.LogTitleBox)
	p.Renderer.DrawText(x+(w/2-len(title)/2), y, len(title), 1, p.Stylesheet.LogTitleBox, title)

	const levelLen = len(" error ")
	const extraDataIndentWidth = levelLen + 1

	entries := p.logReader.Get()
	row := y + 2
	for i := len(entries) - 1; i >= 0 && row < y+h; i-- {
		entry := entries[i]
		level := str(entry["level"])

		p.Renderer.DrawText(x, row, levelLen, 1, p.levelStyle(level), util.PadCenter(level, levelLen))

		col := x + extraDataIndentWidth
		message := str(entry["message"])
		p.Renderer.DrawText(col, row, w-col, 1, p.Stylesheet.LogDefault, message)
		col += runewidth.StringWidth(message) + 1

		caller := str(entry["caller"])
		p.Renderer.DrawText(col, row, w-col, 1, p.Stylesheet.LogEntryLocation, caller)
		col += runewidth.StringWidth(caller) + 1

		p.Renderer.DrawText(col, row, w-col, 1, p.Stylesheet.LogEntryTime, str(entry["time"]))
		row++

		keys := make([]string, 0, len(entry))
		for k := range entry {
			if k != "caller" && k != "message" && k != "time" && k != "level" {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			if row >= y+h {
				break
			}
			col := x + extraDataIndentWidth
			p.Renderer.DrawText(col, row, w, 1, p.Stylesheet.LogEntryTime, k)
			p.Renderer.DrawText(col+len(k)+2, row, w, 1, p.Stylesheet.LogEntryLocation, str(entry[k]))
			row++
		}
	}
}

func (p *LogPane) levelStyle(level string) styling.DrawStyling {
	switch level {
	case "error", "fatal", "panic":
		return p.Stylesheet.LogEntryTypeError
	case "warn":
		return p.Stylesheet.LogEntryTypeWarn
	case "info":
		return p.Stylesheet.LogEntryTypeInfo
	case "debug":
		return p.Stylesheet.LogEntryTypeDebug
	case "trace":
		return p.Stylesheet.LogEntryTypeTrace
	}
	return p.Stylesheet.LogDefault
}

func str(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// NewLogPane constructs and returns a new LogPane.
func NewLogPane(
	renderer ui.ConstrainedRenderer,
	dimensions func() (x, y, w, h int),
	stylesheet styling.Stylesheet,
	condition func() bool,
	titleString func() string,
	logReader potatolog.LogReader,
) *LogPane {
	return &LogPane{
		LeafPane: ui.LeafPane{
			ID:         ui.GeneratePaneID(),
			Visible:    condition,
			Renderer:   renderer,
			Dims:       dimensions,
			Stylesheet: stylesheet,
		},
		titleString: titleString,
		logReader:   logReader,
	}
}
