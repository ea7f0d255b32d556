package ui

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// CursorLocationRequestHandler is an interface for a type that can handle
// requests to place a (text/terminal) cursor on the screen.
type CursorLocationRequestHandler interface {
	Put(l CursorLocation, requesterID string)
	Delete(requesterID string)
}

// CursorWrangler collects requests to place the text cursor during a draw and
// enacts the most recent one afterwards.
type CursorWrangler struct {
	mtx sync.RWMutex

	cc TextCursorController

	desiredLocation *CursorLocation
	requester       string
}

// NewCursorWrangler creates a new CursorWrangler.
func NewCursorWrangler(controller TextCursorController) *CursorWrangler {
	return &CursorWrangler{cc: controller}
}

// Put requests the cursor at the given location.
func (w *CursorWrangler) Put(l CursorLocation, requesterID string) {
	w.mtx.Lock()
	defer w.mtx.Unlock()

	if w.desiredLocation != nil && w.requester != requesterID {
		log.Warn().Str("requester", requesterID).Str("previous-requester", w.requester).Msgf("overwriting cursor request (at %s)", w.desiredLocation.String())
	}

	w.desiredLocation = &l
	w.requester = requesterID
}

// Delete withdraws the requester's cursor request, if it is the current one.
func (w *CursorWrangler) Delete(requesterID string) {
	w.mtx.Lock()
	defer w.mtx.Unlock()

	if w.desiredLocation == nil || w.requester != requesterID {
		return
	}

	w.desiredLocation = nil
	w.requester = ""
}

// Enact shows the cursor at the requested location or hides it if there is no
// request.
func (w *CursorWrangler) Enact() {
	w.mtx.RLock()
	defer w.mtx.RUnlock()

	if w.desiredLocation != nil {
		w.cc.ShowCursor(*w.desiredLocation)
	} else {
		w.cc.HideCursor()
	}
}
