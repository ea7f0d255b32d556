package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// TruncateAt shortens s to at most width terminal cells, ending it in "..."
// where there is room for that.
func TruncateAt(s string, width int) string {
	switch {
	case runewidth.StringWidth(s) <= width:
		return s
	case width <= 0:
		return ""
	case width <= 3:
		return runewidth.Truncate(s, width, "")
	default:
		return runewidth.Truncate(s, width, "...")
	}
}

// PadCenter centers s in a field of the given width, truncating if needed.
func PadCenter(s string, width int) string {
	s = TruncateAt(s, width)
	missing := width - runewidth.StringWidth(s)
	if missing <= 0 {
		return s
	}
	left := missing / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", missing-left)
}
