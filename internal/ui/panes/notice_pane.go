package panes

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/ja-he/archmaster/internal/input"
	"github.com/ja-he/archmaster/internal/styling"
	"github.com/ja-he/archmaster/internal/ui"
)

// NoticePane shows a message that has to be acknowledged, e.g. a failed
// connection attempt.
type NoticePane struct {
	ui.LeafPane

	message func() string
}

// Draw draws the notice, wrapping the message at the pane's width.
func (p *NoticePane) Draw() {
	x, y, w, h := p.Dimensions()
	p.Renderer.DrawBox(x, y, w, h, p.Stylesheet.Notice)

	row := y + 1
	for _, line := range wrap(p.message(), w-4) {
		if row >= y+h-2 {
			break
		}
		p.Renderer.DrawText(x+2, row, w-4, 1, p.Stylesheet.Notice, line)
		row++
	}

	hint := "press any key"
	p.Renderer.DrawText(x+w-len(hint)-2, y+h-1, len(hint), 1, p.Stylesheet.Notice.Italicized(), hint)
}

func wrap(s string, width int) []string {
	if width <= 0 {
		return nil
	}
	var lines []string
	line := ""
	for _, word := range strings.Fields(s) {
		switch {
		case line == "":
			line = word
		case runewidth.StringWidth(line)+1+runewidth.StringWidth(word) <= width:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
		for runewidth.StringWidth(line) > width {
			head := runewidth.Truncate(line, width, "")
			if head == "" {
				head = string([]rune(line)[:1])
			}
			lines = append(lines, head)
			line = line[len(head):]
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// NewNoticePane constructs and returns a new NoticePane.
func NewNoticePane(
	renderer ui.ConstrainedRenderer,
	dimensions func() (x, y, w, h int),
	stylesheet styling.Stylesheet,
	condition func() bool,
	message func() string,
	inputProcessor input.SimpleInputProcessor,
) *NoticePane {
	return &NoticePane{
		LeafPane: ui.LeafPane{
			ID:             ui.GeneratePaneID(),
			InputProcessor: inputProcessor,
			Visible:        condition,
			Renderer:       renderer,
			Dims:           dimensions,
			Stylesheet:     stylesheet,
		},
		message: message,
	}
}
