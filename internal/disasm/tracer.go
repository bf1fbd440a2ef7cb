package disasm

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"
)

// NewTracer returns a function that logs every executed instruction at
// debug level, to be passed to vm.WithTracer.
func NewTracer(logger *log.Logger) func(address, word uint16) {
	return func(address, word uint16) {
		code, ok := Mnemonic(word)
		if !ok {
			code = fmt.Sprintf(".word $%04X", word)
		}
		logger.Debug("Executing instruction",
			log.Hex("address", address),
			log.Hex("opcode", word),
			log.String("code", code))
	}
}
