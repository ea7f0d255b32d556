package input

// SimpleInputProcessor handles keys for one part of the UI.
type SimpleInputProcessor interface {
	// CapturesInput reports whether this processor must see the next key before
	// anyone else, e.g. because it is halfway through a key sequence.
	CapturesInput() bool

	// ProcessInput handles the key and reports whether it was bound.
	ProcessInput(key Key) bool

	// GetHelp describes the bindings of this processor.
	GetHelp() Help
}

// CapturingOverlay makes a processor claim every key, so that nothing below
// it sees input while it is shown. Popups like the help use it.
type CapturingOverlay struct {
	Processor SimpleInputProcessor
}

func (o *CapturingOverlay) CapturesInput() bool { return true }
func (o *CapturingOverlay) ProcessInput(k Key) bool { return o.Processor.ProcessInput(k) }
func (o *CapturingOverlay) GetHelp() Help { return o.Processor.GetHelp() }

// CapturingOverlayWrap wraps s in a CapturingOverlay.
func CapturingOverlayWrap(s SimpleInputProcessor) *CapturingOverlay {
	return &CapturingOverlay{Processor: s}
}
