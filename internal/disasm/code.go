package disasm

import (
	"fmt"
	"slices"
	"strings"

	"github.com/retroenv/retrogolib/log"
)

const (
	funcNaming  = "_func_%04x"
	labelNaming = "_label_%04x"
)

// processJumpDestinations names all jump and call destinations and updates
// the callers with the generated label name.
func (dis *Disasm) processJumpDestinations() {
	destinations := make([]uint16, 0, len(dis.branchDestinations)+len(dis.callDestinations))
	for dest := range dis.branchDestinations {
		destinations = append(destinations, dest)
	}
	for dest := range dis.callDestinations {
		if !dis.branchDestinations.Contains(dest) {
			destinations = append(destinations, dest)
		}
	}
	slices.Sort(destinations)

	names := make(map[uint16]string, len(destinations))
	for _, address := range destinations {
		target, ok := dis.lineByAddress[address]
		if !ok || !target.isCode {
			// the destination is outside of the program, inside of an
			// instruction word or points to data
			dis.logger.Debug("Branch destination without code",
				log.Hex("address", address))
			continue
		}

		name := target.label
		if name == "" {
			if dis.callDestinations.Contains(address) {
				name = fmt.Sprintf(funcNaming, address)
			} else {
				name = fmt.Sprintf(labelNaming, address)
			}
			target.label = name
		}
		names[address] = name
	}

	for _, l := range dis.lines {
		if !l.branches {
			continue
		}
		name, ok := names[l.branchingTo]
		if !ok {
			continue
		}
		l.code = strings.Replace(l.code, fmt.Sprintf("$%03X", l.branchingTo), name, 1)
	}
}
