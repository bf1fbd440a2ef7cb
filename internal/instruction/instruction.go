// Package instruction decodes CHIP-8 instruction words into a closed set of
// operations carrying their operand fields.
package instruction

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Size is the size of a CHIP-8 instruction in bytes.
const Size = 2

// ErrUnimplemented is returned for words that do not match any operation.
var ErrUnimplemented = errors.New("unimplemented instruction")

// UnimplementedError reports the raw word that could not be decoded.
type UnimplementedError struct {
	Word Word
}

func (e *UnimplementedError) Error() string {
	return fmt.Sprintf("unimplemented instruction %04X", uint16(e.Word))
}

// Unwrap returns ErrUnimplemented so that errors.Is matches.
func (e *UnimplementedError) Unwrap() error {
	return ErrUnimplemented
}

// Word is a 16-bit big-endian CHIP-8 instruction word.
type Word uint16

// Fetch reads the instruction word at the given address of the memory image.
// The address and the following byte have to be inside of the memory.
func Fetch(memory []byte, pc uint16) Word {
	return Word(binary.BigEndian.Uint16(memory[pc : pc+Size]))
}

// Nibble returns the 4-bit field n of the word, numbered 1 to 4 from the
// most significant to the least significant nibble.
func (w Word) Nibble(n int) uint8 {
	if n < 1 || n > 4 {
		panic(fmt.Sprintf("nibble index %d out of range 1-4", n))
	}
	shift := 4 * (4 - n)
	return uint8(w>>shift) & 0xF
}

// X returns the register index encoded in the second nibble.
func (w Word) X() uint8 { return w.Nibble(2) }

// Y returns the register index encoded in the third nibble.
func (w Word) Y() uint8 { return w.Nibble(3) }

// N returns the lowest nibble.
func (w Word) N() uint8 { return w.Nibble(4) }

// KK returns the immediate byte encoded in the lower 8 bits.
func (w Word) KK() uint8 { return uint8(w & 0x00FF) }

// NNN returns the address encoded in the lower 12 bits.
func (w Word) NNN() uint16 { return uint16(w & 0x0FFF) }

// Instruction is a decoded instruction word. Only the operand fields used
// by the operation are meaningful.
type Instruction struct {
	Op   Op
	Word Word
	X    uint8
	Y    uint8
	N    uint8
	KK   uint8
	NNN  uint16
}

// Decode maps an instruction word to its operation. Words that do not
// match any operation return an *UnimplementedError.
func Decode(w Word) (Instruction, error) {
	op := decodeOp(w)
	if op == OpInvalid {
		return Instruction{}, &UnimplementedError{Word: w}
	}

	return Instruction{
		Op:   op,
		Word: w,
		X:    w.X(),
		Y:    w.Y(),
		N:    w.N(),
		KK:   w.KK(),
		NNN:  w.NNN(),
	}, nil
}

func decodeOp(w Word) Op {
	switch w.Nibble(1) {
	case 0x0:
		switch w {
		case 0x00E0:
			return OpClearScreen
		case 0x00EE:
			return OpReturn
		}

	case 0x1:
		return OpJump
	case 0x2:
		return OpCall
	case 0x3:
		return OpSkipEqualImmediate
	case 0x4:
		return OpSkipNotEqualImmediate

	case 0x5:
		if w.N() == 0 {
			return OpSkipEqualRegister
		}

	case 0x6:
		return OpLoadImmediate
	case 0x7:
		return OpAddImmediate

	case 0x8:
		return decodeArithmetic(w.N())

	case 0x9:
		if w.N() == 0 {
			return OpSkipNotEqualRegister
		}

	case 0xA:
		return OpSetIndex
	case 0xB:
		return OpJumpIndexed
	case 0xC:
		return OpRandom
	case 0xD:
		return OpDraw

	case 0xE:
		switch w.KK() {
		case 0x9E:
			return OpSkipKeyDown
		case 0xA1:
			return OpSkipKeyUp
		}

	case 0xF:
		return decodeMisc(w.KK())
	}

	return OpInvalid
}

// decodeArithmetic handles the 8xyN register to register operations.
func decodeArithmetic(n uint8) Op {
	switch n {
	case 0x0:
		return OpMove
	case 0x1:
		return OpOr
	case 0x2:
		return OpAnd
	case 0x3:
		return OpXor
	case 0x4:
		return OpAddRegister
	case 0x5:
		return OpSubRegister
	case 0x6:
		return OpShiftRight
	case 0x7:
		return OpSubNRegister
	case 0xE:
		return OpShiftLeft
	default:
		return OpInvalid
	}
}

// decodeMisc handles the FxKK timer, input and memory operations.
func decodeMisc(kk uint8) Op {
	switch kk {
	case 0x07:
		return OpLoadDelay
	case 0x0A:
		return OpWaitKey
	case 0x15:
		return OpSetDelay
	case 0x18:
		return OpSetSound
	case 0x1E:
		return OpAddIndex
	case 0x29:
		return OpSpriteAddress
	case 0x33:
		return OpBCD
	case 0x55:
		return OpDumpRegisters
	case 0x65:
		return OpLoadRegisters
	default:
		return OpInvalid
	}
}
