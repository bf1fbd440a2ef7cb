// Package vm implements the CHIP-8 machine state and the engine that
// transitions one state value into its successor.
package vm

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/timer"
)

// CHIP-8 memory layout.
//
//	0x000-0x04F: font glyphs 0-F, 5 bytes each
//	0x200-0xFFF: program image
//	0xEA0-     : call stack, growing upwards
const (
	MemorySize    = 0x1000
	RegisterCount = 16

	// FlagRegister is VF, written by arithmetic, shift and draw operations.
	FlagRegister = 0xF

	ProgramStart       = 0x200
	StackStart         = 0xEA0
	MaxProgramSize     = MemorySize - ProgramStart
	FontGlyphSize      = 5
	FontStart          = 0x000
	instructionAdvance = 2
)

// ErrProgramTooLarge is returned when a program image does not fit into the
// memory following the program start address.
var ErrProgramTooLarge = errors.New("program too large")

// State is the complete CHIP-8 machine state. It contains no references,
// copying a State produces an independent machine. All operations that
// change the machine return a new State and leave the receiver untouched.
type State struct {
	memory    [MemorySize]byte
	registers [RegisterCount]byte
	index     uint16
	sp        uint16
	pc        uint16
	timers    timer.Timers
	display   display.Framebuffer
	keys      keypad.Keypad
}

// New returns the initial machine state with the font loaded, the program
// counter at the program start and the stack pointer at the stack base.
func New() State {
	s := State{
		sp: StackStart,
		pc: ProgramStart,
	}
	copy(s.memory[FontStart:], font[:])
	return s
}

// Load returns a new state with the program image copied to the program
// start address.
func (s *State) Load(program []byte) (State, error) {
	if len(program) > MaxProgramSize {
		return *s, fmt.Errorf("%w: %d bytes, maximum is %d", ErrProgramTooLarge, len(program), MaxProgramSize)
	}

	next := *s
	copy(next.memory[ProgramStart:], program)
	return next, nil
}

// DecreaseTimers returns a new state with the delay and sound timers
// decremented by one tick.
func (s *State) DecreaseTimers() State {
	next := *s
	next.timers.Decrease()
	return next
}

// KeyPress returns a new state with the key held down. If the machine was
// suspended waiting for a key, the key value is stored in the waiting
// register and execution resumes with the next instruction.
func (s *State) KeyPress(key uint8) State {
	next := *s
	if register, resolved := next.keys.Press(key); resolved {
		next.registers[register] = key
		next.pc += instructionAdvance
	}
	return next
}

// KeyRelease returns a new state with the key released.
func (s *State) KeyRelease(key uint8) State {
	next := *s
	next.keys.Release(key)
	return next
}

// Pixel returns whether the display pixel at the given column and row is lit.
func (s *State) Pixel(col, row int) bool {
	return s.display.Get(col, row)
}

// IsKeyDown returns whether the given key is held down.
func (s *State) IsKeyDown(key uint8) bool {
	return s.keys.IsPressed(key)
}

// WaitingForKey returns the register index the machine waits to fill with
// a key press. The second return value is false if the machine is running.
func (s *State) WaitingForKey() (uint8, bool) {
	return s.keys.Waiting()
}

// PC returns the program counter.
func (s *State) PC() uint16 { return s.pc }

// SP returns the stack pointer.
func (s *State) SP() uint16 { return s.sp }

// Index returns the index register I.
func (s *State) Index() uint16 { return s.index }

// Register returns the value of register Vi.
func (s *State) Register(i uint8) uint8 { return s.registers[i] }

// DelayTimer returns the delay timer value.
func (s *State) DelayTimer() uint8 { return s.timers.Delay }

// SoundTimer returns the sound timer value.
func (s *State) SoundTimer() uint8 { return s.timers.Sound }

// PressedKeys returns the keys that are held down in ascending order.
func (s *State) PressedKeys() []uint8 { return s.keys.Pressed() }

// LitPixels returns the number of display pixels that are turned on.
func (s *State) LitPixels() int { return s.display.LitPixels() }

// SoundActive returns whether the sound timer is running.
func (s *State) SoundActive() bool { return s.timers.SoundActive() }

// Memory returns the byte at the given memory address.
func (s *State) Memory(address uint16) byte { return s.memory[address] }
