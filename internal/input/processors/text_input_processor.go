package processors

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/ja-he/archmaster/internal/control/action"
	"github.com/ja-he/archmaster/internal/input"
)

// TextInputProcessor feeds typed characters into a text field, such as the
// remap editor. It claims every key while active.
//
// Keys held with exactly one of Ctrl, Alt or Shift go to the modifier
// callback, if set, as their prefix (e.g. "Ctrl+"), so that a remap can be
// entered by pressing it. Other plain runes go to the rune callback, and the
// remaining keys are looked up in the bindings.
type TextInputProcessor struct {
	bindings map[input.Key]action.Action

	runeCallback     func(r rune)
	modifierCallback func(prefix string)
}

// NewTextInputProcessor returns a processor with the given single-key
// bindings, e.g. "<cr>" to commit and "<esc>" to cancel.
func NewTextInputProcessor(
	bindings map[input.Keyspec]action.Action,
	runeCallback func(r rune),
) (*TextInputProcessor, error) {
	p := &TextInputProcessor{
		bindings:     make(map[input.Key]action.Action, len(bindings)),
		runeCallback: runeCallback,
	}
	for spec, a := range bindings {
		keys, err := input.ConfigKeyspecToKeys(spec)
		if err != nil {
			return nil, fmt.Errorf("invalid keyspec '%s' (%w)", spec, err)
		}
		if len(keys) != 1 {
			return nil, fmt.Errorf("text input binding '%s' must be a single key, not %d", spec, len(keys))
		}
		p.bindings[keys[0]] = a
	}
	return p, nil
}

// SetModifierCallback sets the receiver of modifier prefixes.
func (p *TextInputProcessor) SetModifierCallback(callback func(prefix string)) {
	p.modifierCallback = callback
}

func (p *TextInputProcessor) ProcessInput(key input.Key) bool {
	if prefix, ok := input.ModifierPrefix(key); ok && p.modifierCallback != nil {
		p.modifierCallback(prefix)
		return true
	}

	if key.Key == tcell.KeyRune && key.Mod&(tcell.ModCtrl|tcell.ModAlt) == 0 {
		p.runeCallback(key.Ch)
		return true
	}

	if a, ok := p.bindings[key.Unmodified()]; ok {
		a.Do()
		return true
	}
	return false
}

func (p *TextInputProcessor) CapturesInput() bool { return true }

func (p *TextInputProcessor) GetHelp() input.Help {
	help := input.Help{}
	for k, a := range p.bindings {
		help[input.ToConfigIdentifierString(k)] = a.Explain()
	}
	return help
}
