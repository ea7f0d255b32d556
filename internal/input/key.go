package input

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Key is a single input key, optionally with the modifiers held while it was
// pressed.
type Key struct {
	Mod tcell.ModMask
	Key tcell.Key
	Ch  rune
}

// Unmodified returns the key without its modifiers, as it is used for
// looking up mappings.
func (k Key) Unmodified() Key {
	return Key{Key: k.Key, Ch: k.Ch}
}

// ToDebugString returns a representation of the key for logging.
func (k *Key) ToDebugString() string {
	return fmt.Sprintf(
		"(%s (%d),'%s'(%d),mod:%d)",
		tcell.KeyNames[k.Key],
		int(k.Key),
		string(k.Ch),
		int(k.Ch),
		int(k.Mod),
	)
}

// ModifierPrefix returns the remap prefix ("Ctrl+", "Alt+", "Shift+") for a
// key that was pressed with exactly one of those modifiers.
// Shifted runes are text and give no prefix.
func ModifierPrefix(k Key) (string, bool) {
	mods := k.Mod & (tcell.ModCtrl | tcell.ModAlt | tcell.ModShift)
	switch mods {
	case tcell.ModCtrl:
		return "Ctrl+", true
	case tcell.ModAlt:
		return "Alt+", true
	case tcell.ModShift:
		if k.Key == tcell.KeyRune {
			return "", false
		}
		return "Shift+", true
	default:
		return "", false
	}
}
