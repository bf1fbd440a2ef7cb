package disasm

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// lookupOpcode returns the instruction of the retrogolib opcode table that
// matches the word.
func lookupOpcode(word uint16) (*chip8.Instruction, bool) {
	firstNibble := (word & 0xF000) >> 12
	for _, op := range chip8.Opcodes[int(firstNibble)] {
		if op.Info.Mask&word == op.Info.Value && op.Instruction != nil {
			return op.Instruction, true
		}
	}
	return nil, false
}

// Mnemonic returns the assembly text of an instruction word, for example
// "jp $234" or "se V2, $34". The second return value is false for words
// that are not a known instruction.
func Mnemonic(word uint16) (string, bool) {
	ins, ok := lookupOpcode(word)
	if !ok {
		return "", false
	}

	name := ins.Name
	if params := formatInstruction(name, word); params != "" {
		return fmt.Sprintf("%s %s", name, params), true
	}
	return name, true
}

// formatInstruction formats the operands of an instruction.
func formatInstruction(name string, opcode uint16) string {
	switch name {
	case chip8.ClsName, chip8.RetName:
		return "" // no parameters
	case chip8.JpName:
		return formatJumpInstruction(opcode)
	case chip8.CallName:
		return fmt.Sprintf("$%03X", opcode&0x0FFF)
	case chip8.SeName, chip8.SneName:
		return formatCompareInstruction(opcode)
	case chip8.LdName:
		return formatLoadInstruction(opcode)
	case chip8.AddName:
		return formatAddInstruction(opcode)
	case chip8.OrName, chip8.AndName, chip8.XorName, chip8.SubName, chip8.SubnName:
		return formatRegisterPair(opcode)
	case chip8.ShrName, chip8.ShlName, chip8.SkpName, chip8.SknpName:
		return fmt.Sprintf("V%X", registerX(opcode))
	case chip8.RndName:
		return fmt.Sprintf("V%X, $%02X", registerX(opcode), opcode&0x00FF)
	case chip8.DrwName:
		return fmt.Sprintf("V%X, V%X, $%X", registerX(opcode), registerY(opcode), opcode&0x000F)
	}
	return ""
}

// formatJumpInstruction formats jump instructions (jp addr, jp V0, addr).
func formatJumpInstruction(opcode uint16) string {
	switch opcode & 0xF000 {
	case 0x1000:
		return fmt.Sprintf("$%03X", opcode&0x0FFF)
	case 0xB000:
		return fmt.Sprintf("V0, $%03X", opcode&0x0FFF)
	}
	return ""
}

// formatCompareInstruction formats 3xkk, 4xkk, 5xy0 and 9xy0.
func formatCompareInstruction(opcode uint16) string {
	switch opcode & 0xF000 {
	case 0x3000, 0x4000:
		return fmt.Sprintf("V%X, $%02X", registerX(opcode), opcode&0x00FF)
	case 0x5000, 0x9000:
		return formatRegisterPair(opcode)
	}
	return ""
}

// formatLoadInstruction formats all ld variants including the Fx timer,
// key and memory forms.
func formatLoadInstruction(opcode uint16) string {
	x := registerX(opcode)
	switch opcode & 0xF000 {
	case 0x6000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case 0x8000:
		return formatRegisterPair(opcode)
	case 0xA000:
		return fmt.Sprintf("I, $%03X", opcode&0x0FFF)
	case 0xF000:
		switch opcode & 0x00FF {
		case 0x07:
			return fmt.Sprintf("V%X, DT", x)
		case 0x0A:
			return fmt.Sprintf("V%X, K", x)
		case 0x15:
			return fmt.Sprintf("DT, V%X", x)
		case 0x18:
			return fmt.Sprintf("ST, V%X", x)
		case 0x29:
			return fmt.Sprintf("F, V%X", x)
		case 0x33:
			return fmt.Sprintf("B, V%X", x)
		case 0x55:
			return fmt.Sprintf("[I], V%X", x)
		case 0x65:
			return fmt.Sprintf("V%X, [I]", x)
		}
	}
	return ""
}

// formatAddInstruction formats add Vx, byte / add Vx, Vy / add I, Vx.
func formatAddInstruction(opcode uint16) string {
	switch opcode & 0xF000 {
	case 0x7000:
		return fmt.Sprintf("V%X, $%02X", registerX(opcode), opcode&0x00FF)
	case 0x8000:
		return formatRegisterPair(opcode)
	case 0xF000:
		return fmt.Sprintf("I, V%X", registerX(opcode))
	}
	return ""
}

func formatRegisterPair(opcode uint16) string {
	return fmt.Sprintf("V%X, V%X", registerX(opcode), registerY(opcode))
}

// registerX extracts the X register nibble from a CHIP-8 opcode.
func registerX(opcode uint16) uint16 {
	return (opcode & 0x0F00) >> 8
}

// registerY extracts the Y register nibble from a CHIP-8 opcode.
func registerY(opcode uint16) uint16 {
	return (opcode & 0x00F0) >> 4
}
