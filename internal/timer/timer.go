// Package timer provides the CHIP-8 delay and sound countdown timers.
package timer

// Timers holds the two 8-bit countdown counters. They are decremented by the
// driver at a fixed rate and never wrap below zero.
type Timers struct {
	Delay uint8
	Sound uint8
}

// Decrease decrements both timers by one, timers that are zero stay zero.
func (t *Timers) Decrease() {
	if t.Delay > 0 {
		t.Delay--
	}
	if t.Sound > 0 {
		t.Sound--
	}
}

// SoundActive returns whether the buzzer would currently sound.
func (t Timers) SoundActive() bool {
	return t.Sound > 0
}
