package ui

import "github.com/ja-he/archmaster/internal/styling"

// CR clips drawing to a region of the screen, e.g. a key cell or the editor
// popup. The region is re-read on every call, so it follows resizes.
type CR struct {
	renderer   Renderer
	constraint func() (x, y, w, h int)
}

// NewConstrainedRenderer returns a CR drawing through renderer within
// constraint.
func NewConstrainedRenderer(renderer Renderer, constraint func() (x, y, w, h int)) *CR {
	return &CR{renderer: renderer, constraint: constraint}
}

func (r *CR) Dimensions() (x, y, w, h int) { return r.constraint() }

// DrawText draws text in the part of the given box inside the region.
func (r *CR) DrawText(x, y, w, h int, style styling.DrawStyling, text string) {
	x, y, w, h = r.clip(x, y, w, h)
	r.renderer.DrawText(x, y, w, h, style, text)
}

// DrawBox fills the part of the given box inside the region.
func (r *CR) DrawBox(x, y, w, h int, style styling.DrawStyling) {
	x, y, w, h = r.clip(x, y, w, h)
	r.renderer.DrawBox(x, y, w, h, style)
}

func (r *CR) clip(x, y, w, h int) (int, int, int, int) {
	cx, cy, cw, ch := r.constraint()
	x, w = clipSpan(x, w, cx, cw)
	y, h = clipSpan(y, h, cy, ch)
	return x, y, w, h
}

// clipSpan intersects [start, start+length) with [limitStart,
// limitStart+limitLength). Disjoint spans give a non-positive length.
func clipSpan(start, length, limitStart, limitLength int) (int, int) {
	if start < limitStart {
		length -= limitStart - start
		start = limitStart
	}
	if end, limitEnd := start+length, limitStart+limitLength; end > limitEnd {
		length -= end - limitEnd
	}
	return start, length
}
