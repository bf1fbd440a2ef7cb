package detector

import (
	"testing"

	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestDetect(t *testing.T) {
	logger := log.NewTestLogger(t)
	d := New(logger)

	tests := []struct {
		name       string
		inputFile  string
		data       []byte
		wantSystem arch.System
	}{
		{
			name:       "detect from .ch8 extension",
			inputFile:  "game.ch8",
			data:       []byte{0x00, 0xE0},
			wantSystem: arch.CHIP8System,
		},
		{
			name:       "detect from .c8 extension",
			inputFile:  "game.C8",
			data:       []byte{0x00, 0xE0},
			wantSystem: arch.CHIP8System,
		},
		{
			name:       "detect from .rom extension",
			inputFile:  "game.rom",
			data:       []byte{0x00, 0xE0},
			wantSystem: arch.CHIP8System,
		},
		{
			name:       "detect from .nes extension",
			inputFile:  "game.nes",
			data:       []byte{0x00, 0xE0},
			wantSystem: arch.NES,
		},
		{
			name:       "iNES header overrides extension",
			inputFile:  "game.ch8",
			data:       []byte{'N', 'E', 'S', 0x1A, 0x01},
			wantSystem: arch.NES,
		},
		{
			name:       "unknown extension",
			inputFile:  "game.bin",
			data:       []byte{0x00, 0xE0},
			wantSystem: arch.CHIP8System,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantSystem, d.Detect(tt.inputFile, tt.data))
		})
	}
}
