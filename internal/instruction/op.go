package instruction

// Op identifies one operation of the fixed CHIP-8 instruction set.
type Op uint8

// All supported operations. OpInvalid is the zero value and never returned
// by a successful Decode.
const (
	OpInvalid Op = iota
	OpClearScreen
	OpReturn
	OpJump
	OpCall
	OpSkipEqualImmediate
	OpSkipNotEqualImmediate
	OpSkipEqualRegister
	OpSkipNotEqualRegister
	OpLoadImmediate
	OpAddImmediate
	OpMove
	OpOr
	OpAnd
	OpXor
	OpAddRegister
	OpSubRegister
	OpSubNRegister
	OpShiftRight
	OpShiftLeft
	OpSetIndex
	OpJumpIndexed
	OpRandom
	OpDraw
	OpSkipKeyDown
	OpSkipKeyUp
	OpLoadDelay
	OpWaitKey
	OpSetDelay
	OpSetSound
	OpAddIndex
	OpSpriteAddress
	OpBCD
	OpDumpRegisters
	OpLoadRegisters

	// OpCount is the number of operations including OpInvalid.
	OpCount
)

var opNames = [OpCount]string{
	OpInvalid:               "invalid",
	OpClearScreen:           "clear-screen",
	OpReturn:                "return",
	OpJump:                  "jump",
	OpCall:                  "call",
	OpSkipEqualImmediate:    "skip-eq-imm",
	OpSkipNotEqualImmediate: "skip-ne-imm",
	OpSkipEqualRegister:     "skip-eq-reg",
	OpSkipNotEqualRegister:  "skip-ne-reg",
	OpLoadImmediate:         "load-imm",
	OpAddImmediate:          "add-imm",
	OpMove:                  "move",
	OpOr:                    "or",
	OpAnd:                   "and",
	OpXor:                   "xor",
	OpAddRegister:           "add-reg",
	OpSubRegister:           "sub-reg",
	OpSubNRegister:          "subn-reg",
	OpShiftRight:            "shr",
	OpShiftLeft:             "shl",
	OpSetIndex:              "set-index",
	OpJumpIndexed:           "indexed-jump",
	OpRandom:                "rand",
	OpDraw:                  "draw",
	OpSkipKeyDown:           "skip-key-down",
	OpSkipKeyUp:             "skip-key-up",
	OpLoadDelay:             "load-delay",
	OpWaitKey:               "wait-key",
	OpSetDelay:              "set-delay",
	OpSetSound:              "set-sound",
	OpAddIndex:              "add-index",
	OpSpriteAddress:         "sprite-addr",
	OpBCD:                   "bcd",
	OpDumpRegisters:         "dump-regs",
	OpLoadRegisters:         "load-regs",
}

// String returns the operation name.
func (o Op) String() string {
	if o >= OpCount {
		return "unknown"
	}
	return opNames[o]
}
