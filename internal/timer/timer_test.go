package timer

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestTimers_Decrease(t *testing.T) {
	tests := []struct {
		name          string
		timers        Timers
		expectedDelay uint8
		expectedSound uint8
	}{
		{"both zero", Timers{}, 0, 0},
		{"both running", Timers{Delay: 10, Sound: 3}, 9, 2},
		{"delay only", Timers{Delay: 1}, 0, 0},
		{"sound only", Timers{Sound: 0xFF}, 0, 0xFE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timers := tt.timers
			timers.Decrease()
			assert.Equal(t, tt.expectedDelay, timers.Delay)
			assert.Equal(t, tt.expectedSound, timers.Sound)
		})
	}
}

func TestTimers_Saturate(t *testing.T) {
	timers := Timers{Delay: 2, Sound: 1}
	for range 5 {
		timers.Decrease()
	}
	assert.Equal(t, uint8(0), timers.Delay)
	assert.Equal(t, uint8(0), timers.Sound)
	assert.False(t, timers.SoundActive())
}

func TestTimers_SoundActive(t *testing.T) {
	assert.True(t, Timers{Sound: 1}.SoundActive())
	assert.False(t, Timers{Delay: 5}.SoundActive())
}
