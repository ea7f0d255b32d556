package processors

import (
	"github.com/ja-he/archmaster/internal/control/action"
	"github.com/ja-he/archmaster/internal/input"
)

// CatchAllInputProcessor performs its action on any input, e.g. to dismiss a
// notice with any key.
type CatchAllInputProcessor struct {
	action action.Action
}

// NewCatchAllInputProcessor returns a processor doing the given action on any
// input.
func NewCatchAllInputProcessor(a action.Action) *CatchAllInputProcessor {
	return &CatchAllInputProcessor{action: a}
}

// CapturesInput always returns true.
func (p *CatchAllInputProcessor) CapturesInput() bool { return true }

// ProcessInput performs the action.
func (p *CatchAllInputProcessor) ProcessInput(input.Key) bool {
	p.action.Do()
	return true
}

// GetHelp returns the action's explanation for any key.
func (p *CatchAllInputProcessor) GetHelp() input.Help {
	return input.Help{"<any>": p.action.Explain()}
}
