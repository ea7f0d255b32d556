package input

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Keyspec writes a key sequence as text. Plain characters stand for
// themselves and named keys go in angle brackets, e.g. "<c-a>x" or "<cr>".
type Keyspec string

type namedKey struct {
	name string
	key  Key
}

// Where several names map to one key, the first listed is what help shows.
var namedKeys = append([]namedKey{
	{"space", Key{Key: tcell.KeyRune, Ch: ' '}},
	{"cr", Key{Key: tcell.KeyEnter}},
	{"esc", Key{Key: tcell.KeyESC}},
	{"tab", Key{Key: tcell.KeyTab}},
	{"s-tab", Key{Key: tcell.KeyBacktab}},
	{"bs", Key{Key: tcell.KeyBackspace2}},
	{"c-bs", Key{Key: tcell.KeyBackspace}},
	{"del", Key{Key: tcell.KeyDelete}},
	{"left", Key{Key: tcell.KeyLeft}},
	{"right", Key{Key: tcell.KeyRight}},
	{"up", Key{Key: tcell.KeyUp}},
	{"down", Key{Key: tcell.KeyDown}},
	{"home", Key{Key: tcell.KeyHome}},
	{"end", Key{Key: tcell.KeyEnd}},
	{"c-space", Key{Key: tcell.KeyCtrlSpace}},
}, ctrlLetters()...)

func ctrlLetters() []namedKey {
	result := make([]namedKey, 0, 26)
	for r := 'a'; r <= 'z'; r++ {
		result = append(result, namedKey{"c-" + string(r), Key{Key: tcell.KeyCtrlA + tcell.Key(r-'a')}})
	}
	return result
}

var keysByName, namesByKey = func() (map[string]Key, map[Key]string) {
	byName := make(map[string]Key, len(namedKeys))
	byKey := make(map[Key]string, len(namedKeys))
	for _, nk := range namedKeys {
		byName[nk.name] = nk.key
		if _, taken := byKey[nk.key]; !taken {
			byKey[nk.key] = nk.name
		}
	}
	return byName, byKey
}()

// ConfigKeyspecToKeys parses spec into the keys it names.
func ConfigKeyspecToKeys(spec Keyspec) ([]Key, error) {
	runes := []rune(string(spec))
	keys := make([]Key, 0, len(runes))

	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '>':
			return nil, fmt.Errorf("'>' without opening '<' at %d", i)
		case '<':
			end := i + 1
			for ; end < len(runes) && runes[end] != '>'; end++ {
				if r := runes[end]; r != '-' && !unicode.IsLetter(r) {
					return nil, fmt.Errorf("illegal character '%c' in key name at %d", r, end)
				}
			}
			if end == len(runes) {
				return nil, fmt.Errorf("'<' at %d is never closed", i)
			}
			key, err := KeyIdentifierToKey(string(runes[i+1 : end]))
			if err != nil {
				return nil, err
			}
			keys = append(keys, key)
			i = end
		default:
			keys = append(keys, Key{Key: tcell.KeyRune, Ch: runes[i]})
		}
	}

	return keys, nil
}

// KeyIdentifierToKey returns the key for a name as written between angle
// brackets, e.g. "cr" or "c-w". Names are case-insensitive.
func KeyIdentifierToKey(identifier string) (Key, error) {
	key, ok := keysByName[strings.ToLower(identifier)]
	if !ok {
		return Key{}, fmt.Errorf("unknown key name '%s'", identifier)
	}
	return key, nil
}

// ToConfigIdentifierString writes k the way a keyspec would, ignoring
// modifiers.
func ToConfigIdentifierString(k Key) string {
	k = k.Unmodified()
	if name, ok := namesByKey[k]; ok {
		return "<" + name + ">"
	}
	if k.Key == tcell.KeyRune {
		return string(k.Ch)
	}
	return "<" + strings.ToLower(tcell.KeyNames[k.Key]) + ">"
}
