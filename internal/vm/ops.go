package vm

import (
	"encoding/binary"

	"github.com/retroenv/retrochip8/internal/instruction"
)

type handler func(e *Engine, s *State, ins instruction.Instruction)

// handlers maps every decoded operation to its implementation.
var handlers = [instruction.OpCount]handler{
	instruction.OpClearScreen:           clearScreen,
	instruction.OpReturn:                returnFromSubroutine,
	instruction.OpJump:                  jump,
	instruction.OpCall:                  call,
	instruction.OpSkipEqualImmediate:    skipEqualImmediate,
	instruction.OpSkipNotEqualImmediate: skipNotEqualImmediate,
	instruction.OpSkipEqualRegister:     skipEqualRegister,
	instruction.OpSkipNotEqualRegister:  skipNotEqualRegister,
	instruction.OpLoadImmediate:         loadImmediate,
	instruction.OpAddImmediate:          addImmediate,
	instruction.OpMove:                  move,
	instruction.OpOr:                    or,
	instruction.OpAnd:                   and,
	instruction.OpXor:                   xor,
	instruction.OpAddRegister:           addRegister,
	instruction.OpSubRegister:           subRegister,
	instruction.OpSubNRegister:          subNRegister,
	instruction.OpShiftRight:            shiftRight,
	instruction.OpShiftLeft:             shiftLeft,
	instruction.OpSetIndex:              setIndex,
	instruction.OpJumpIndexed:           jumpIndexed,
	instruction.OpRandom:                random,
	instruction.OpDraw:                  draw,
	instruction.OpSkipKeyDown:           skipKeyDown,
	instruction.OpSkipKeyUp:             skipKeyUp,
	instruction.OpLoadDelay:             loadDelay,
	instruction.OpWaitKey:               waitKey,
	instruction.OpSetDelay:              setDelay,
	instruction.OpSetSound:              setSound,
	instruction.OpAddIndex:              addIndex,
	instruction.OpSpriteAddress:         spriteAddress,
	instruction.OpBCD:                   bcd,
	instruction.OpDumpRegisters:         dumpRegisters,
	instruction.OpLoadRegisters:         loadRegisters,
}

func (s *State) advance() {
	s.pc += instructionAdvance
}

func (s *State) skipIf(condition bool) {
	s.pc += instructionAdvance
	if condition {
		s.pc += instructionAdvance
	}
}

func flag(set bool) byte {
	if set {
		return 1
	}
	return 0
}

func clearScreen(_ *Engine, s *State, _ instruction.Instruction) {
	s.display.Clear()
	s.advance()
}

func returnFromSubroutine(_ *Engine, s *State, _ instruction.Instruction) {
	s.pc = binary.BigEndian.Uint16(s.memory[s.sp:])
	s.sp -= 2
}

func jump(_ *Engine, s *State, ins instruction.Instruction) {
	s.pc = ins.NNN
}

func call(_ *Engine, s *State, ins instruction.Instruction) {
	s.sp += 2
	binary.BigEndian.PutUint16(s.memory[s.sp:], s.pc+instructionAdvance)
	s.pc = ins.NNN
}

func skipEqualImmediate(_ *Engine, s *State, ins instruction.Instruction) {
	s.skipIf(s.registers[ins.X] == ins.KK)
}

func skipNotEqualImmediate(_ *Engine, s *State, ins instruction.Instruction) {
	s.skipIf(s.registers[ins.X] != ins.KK)
}

func skipEqualRegister(_ *Engine, s *State, ins instruction.Instruction) {
	s.skipIf(s.registers[ins.X] == s.registers[ins.Y])
}

func skipNotEqualRegister(_ *Engine, s *State, ins instruction.Instruction) {
	s.skipIf(s.registers[ins.X] != s.registers[ins.Y])
}

func loadImmediate(_ *Engine, s *State, ins instruction.Instruction) {
	s.registers[ins.X] = ins.KK
	s.advance()
}

// addImmediate wraps around on overflow and does not touch VF.
func addImmediate(_ *Engine, s *State, ins instruction.Instruction) {
	s.registers[ins.X] += ins.KK
	s.advance()
}

func move(_ *Engine, s *State, ins instruction.Instruction) {
	s.registers[ins.X] = s.registers[ins.Y]
	s.advance()
}

func or(_ *Engine, s *State, ins instruction.Instruction) {
	s.registers[ins.X] |= s.registers[ins.Y]
	s.advance()
}

func and(_ *Engine, s *State, ins instruction.Instruction) {
	s.registers[ins.X] &= s.registers[ins.Y]
	s.advance()
}

func xor(_ *Engine, s *State, ins instruction.Instruction) {
	s.registers[ins.X] ^= s.registers[ins.Y]
	s.advance()
}

// The flag register is written last by all following arithmetic operations,
// so that the flag wins when VF is also the destination.

func addRegister(_ *Engine, s *State, ins instruction.Instruction) {
	sum := uint16(s.registers[ins.X]) + uint16(s.registers[ins.Y])
	s.registers[ins.X] = byte(sum)
	s.registers[FlagRegister] = flag(sum > 0xFF)
	s.advance()
}

func subRegister(_ *Engine, s *State, ins instruction.Instruction) {
	vx, vy := s.registers[ins.X], s.registers[ins.Y]
	s.registers[ins.X] = vx - vy
	s.registers[FlagRegister] = flag(vx > vy)
	s.advance()
}

func subNRegister(_ *Engine, s *State, ins instruction.Instruction) {
	vx, vy := s.registers[ins.X], s.registers[ins.Y]
	s.registers[ins.X] = vy - vx
	s.registers[FlagRegister] = flag(vy > vx)
	s.advance()
}

func shiftRight(_ *Engine, s *State, ins instruction.Instruction) {
	vx := s.registers[ins.X]
	s.registers[ins.X] = vx >> 1
	s.registers[FlagRegister] = vx & 0x01
	s.advance()
}

func shiftLeft(_ *Engine, s *State, ins instruction.Instruction) {
	vx := s.registers[ins.X]
	s.registers[ins.X] = vx << 1
	s.registers[FlagRegister] = vx >> 7
	s.advance()
}

func setIndex(_ *Engine, s *State, ins instruction.Instruction) {
	s.index = ins.NNN
	s.advance()
}

func jumpIndexed(_ *Engine, s *State, ins instruction.Instruction) {
	s.pc = ins.NNN + uint16(s.registers[0])
}

func random(e *Engine, s *State, ins instruction.Instruction) {
	s.registers[ins.X] = e.random() & ins.KK
	s.advance()
}

func draw(_ *Engine, s *State, ins instruction.Instruction) {
	start := int(s.index)
	sprite := s.memory[start : start+int(ins.N)]
	col, row := int(s.registers[ins.X]), int(s.registers[ins.Y])

	collision := s.display.DrawSprite(col, row, sprite)
	s.registers[FlagRegister] = flag(collision)
	s.advance()
}

func skipKeyDown(_ *Engine, s *State, ins instruction.Instruction) {
	s.skipIf(s.keys.IsPressed(s.registers[ins.X]))
}

func skipKeyUp(_ *Engine, s *State, ins instruction.Instruction) {
	s.skipIf(!s.keys.IsPressed(s.registers[ins.X]))
}

func loadDelay(_ *Engine, s *State, ins instruction.Instruction) {
	s.registers[ins.X] = s.timers.Delay
	s.advance()
}

// waitKey suspends the machine, the program counter only advances once
// a key press resolves the wait.
func waitKey(_ *Engine, s *State, ins instruction.Instruction) {
	s.keys.Wait(ins.X)
}

func setDelay(_ *Engine, s *State, ins instruction.Instruction) {
	s.timers.Delay = s.registers[ins.X]
	s.advance()
}

func setSound(_ *Engine, s *State, ins instruction.Instruction) {
	s.timers.Sound = s.registers[ins.X]
	s.advance()
}

func addIndex(_ *Engine, s *State, ins instruction.Instruction) {
	s.index += uint16(s.registers[ins.X])
	s.advance()
}

func spriteAddress(_ *Engine, s *State, ins instruction.Instruction) {
	s.index = FontStart + uint16(s.registers[ins.X])*FontGlyphSize
	s.advance()
}

func bcd(_ *Engine, s *State, ins instruction.Instruction) {
	vx := s.registers[ins.X]
	s.memory[s.index] = vx / 100
	s.memory[s.index+1] = vx / 10 % 10
	s.memory[s.index+2] = vx % 10
	s.advance()
}

func dumpRegisters(_ *Engine, s *State, ins instruction.Instruction) {
	for i := range int(ins.X) + 1 {
		s.memory[int(s.index)+i] = s.registers[i]
	}
	s.advance()
}

func loadRegisters(_ *Engine, s *State, ins instruction.Instruction) {
	for i := range int(ins.X) + 1 {
		s.registers[i] = s.memory[int(s.index)+i]
	}
	s.advance()
}
