package terminal

import (
	"unicode"

	"github.com/retroenv/retrochip8/internal/keypad"
)

// qwertyLayout maps the left block of a QWERTY keyboard to the hex keypad
// layout of the COSMAC VIP:
//
//	1 2 3 4      1 2 3 C
//	q w e r  ->  4 5 6 D
//	a s d f      7 8 9 E
//	z x c v      A 0 B F
var qwertyLayout = map[rune]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// KeyMap converts terminal key presses to keypad events. Terminals do not
// report key releases, a second press of a held key releases it.
type KeyMap struct {
	layout map[rune]uint8
	down   [keypad.KeyCount]bool
}

// NewKeyMap returns a key map using the QWERTY layout.
func NewKeyMap() *KeyMap {
	return &KeyMap{
		layout: qwertyLayout,
	}
}

// Event returns the keypad event for a typed character. The second return
// value is false for characters that are not mapped to a key.
func (k *KeyMap) Event(ch rune) (keypad.Event, bool) {
	key, ok := k.layout[unicode.ToLower(ch)]
	if !ok {
		return keypad.Event{}, false
	}

	k.down[key] = !k.down[key]
	return keypad.Event{
		Key:     key,
		Pressed: k.down[key],
	}, true
}
