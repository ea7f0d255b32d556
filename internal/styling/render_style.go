package styling

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// DrawStyling is how a piece of the editor is drawn. Derivations return
// copies and leave the receiver untouched.
type DrawStyling interface {
	AsTcell() tcell.Style

	// Emphasized darkens both colors, e.g. for the keys in the help.
	Emphasized() DrawStyling
	Bolded() DrawStyling
	Italicized() DrawStyling

	fmt.Stringer
}

// emphasis is how much Emphasized darkens, in percent.
const emphasis = 20

// Style is a DrawStyling of two colors and text attributes.
type Style struct {
	fg, bg colorful.Color

	bold, italic, underlined bool
}

// StyleFromColors returns a plain style with the given colors.
func StyleFromColors(fg, bg colorful.Color) *Style {
	return &Style{fg: fg, bg: bg}
}

// StyleFromHex returns a plain style from colors in '#rrggbb' or '#rgb'
// notation.
func StyleFromHex(fg, bg string) (*Style, error) {
	fgColor, err := colorful.Hex(fg)
	if err != nil {
		return nil, fmt.Errorf("invalid foreground color '%s' (%w)", fg, err)
	}
	bgColor, err := colorful.Hex(bg)
	if err != nil {
		return nil, fmt.Errorf("invalid background color '%s' (%w)", bg, err)
	}
	return StyleFromColors(fgColor, bgColor), nil
}

func (s *Style) AsTcell() tcell.Style {
	return tcell.StyleDefault.
		Foreground(toTcell(s.fg)).
		Background(toTcell(s.bg)).
		Bold(s.bold).
		Italic(s.italic).
		Underline(s.underlined)
}

func (s *Style) Emphasized() DrawStyling {
	return s.derive(func(d *Style) {
		d.fg = darken(d.fg, emphasis)
		d.bg = darken(d.bg, emphasis)
	})
}

func (s *Style) Bolded() DrawStyling     { return s.derive(func(d *Style) { d.bold = true }) }
func (s *Style) Italicized() DrawStyling { return s.derive(func(d *Style) { d.italic = true }) }

func (s *Style) String() string {
	return fmt.Sprintf("[fg:'%s' bg:'%s' (b:%t i:%t u:%t)]", s.fg.Hex(), s.bg.Hex(), s.bold, s.italic, s.underlined)
}

func (s *Style) derive(change func(*Style)) *Style {
	d := *s
	change(&d)
	return &d
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// darken reduces the lightness of c by the given percentage.
func darken(c colorful.Color, percentage int) colorful.Color {
	h, s, l := c.Hsl()
	return colorful.Hsl(h, s, l*(1-float64(percentage)/100)).Clamped()
}
