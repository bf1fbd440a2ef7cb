// Package keypad provides the CHIP-8 16 key input model including the
// latch that suspends the machine until a key is pressed.
package keypad

import "fmt"

// KeyCount is the number of keys of the hexadecimal keypad.
const KeyCount = 16

// Event is a key transition sent from an input front end.
type Event struct {
	Key     uint8
	Pressed bool
}

// Keypad holds the pressed state of every key and the key-wait latch.
// It is a value type, copying it copies the whole input state.
type Keypad struct {
	keys     [KeyCount]bool
	register uint8
	waiting  bool
}

// IsPressed returns whether the given key is currently held down.
func (k *Keypad) IsPressed(key uint8) bool {
	return k.keys[keyIndex(key)]
}

// Press marks the key as held down. If the keypad was waiting for a key,
// the latch is released and the register that waits for the key value
// is returned together with resolved set to true.
func (k *Keypad) Press(key uint8) (register uint8, resolved bool) {
	k.keys[keyIndex(key)] = true

	if !k.waiting {
		return 0, false
	}
	k.waiting = false
	return k.register, true
}

// Release marks the key as not held down. It never affects the latch.
func (k *Keypad) Release(key uint8) {
	k.keys[keyIndex(key)] = false
}

// Wait sets the latch, the next key press will be stored in the register.
func (k *Keypad) Wait(register uint8) {
	if register >= KeyCount {
		panic(fmt.Sprintf("register index %d out of range 0-15", register))
	}
	k.register = register
	k.waiting = true
}

// Waiting returns the register that waits for a key press, if any.
func (k *Keypad) Waiting() (uint8, bool) {
	return k.register, k.waiting
}

// Pressed returns the list of keys that are currently held down in
// ascending order.
func (k *Keypad) Pressed() []uint8 {
	var keys []uint8
	for i, down := range k.keys {
		if down {
			keys = append(keys, uint8(i))
		}
	}
	return keys
}

func keyIndex(key uint8) int {
	if key >= KeyCount {
		panic(fmt.Sprintf("key %d out of range 0-15", key))
	}
	return int(key)
}
