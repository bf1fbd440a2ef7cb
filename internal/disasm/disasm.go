// Package disasm implements a CHIP-8 program disassembler and the
// instruction tracer used for debug logging of the running machine.
package disasm

import (
	"bufio"
	"fmt"
	"io"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// ProgramStart is the address programs are loaded to, the first byte of a
// program image is disassembled as this address.
const ProgramStart = 0x200

// Options controls the listing output.
type Options struct {
	HexComments    bool // output the opcode bytes as comment
	OffsetComments bool // output the file offset as comment
}

// line is one disassembled word or trailing byte of the program.
type line struct {
	address uint16
	data    []byte
	code    string
	label   string
	isCode  bool

	branchingTo uint16
	branches    bool
}

// Disasm implements a linear CHIP-8 disassembler.
type Disasm struct {
	logger  *log.Logger
	options Options

	lines              []*line
	lineByAddress      map[uint16]*line
	branchDestinations set.Set[uint16] // set of all addresses that are jumped to
	callDestinations   set.Set[uint16] // set of all addresses that are called
}

// New creates a new disassembler.
func New(logger *log.Logger, options Options) *Disasm {
	return &Disasm{
		logger:             logger,
		options:            options,
		lineByAddress:      map[uint16]*line{},
		branchDestinations: set.New[uint16](),
		callDestinations:   set.New[uint16](),
	}
}

// Process disassembles the program image and writes the listing.
func (dis *Disasm) Process(writer io.Writer, program []byte) error {
	dis.parse(program)
	dis.processJumpDestinations()

	buf := bufio.NewWriter(writer)
	for _, l := range dis.lines {
		if err := dis.writeLine(buf, l); err != nil {
			return fmt.Errorf("writing line for address %04x: %w", l.address, err)
		}
	}
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("flushing output: %w", err)
	}
	return nil
}

// parse splits the program into 2 byte words and decodes each of them.
func (dis *Disasm) parse(program []byte) {
	for offset := 0; offset < len(program); offset += 2 {
		address := uint16(ProgramStart + offset)

		if offset+1 >= len(program) {
			dis.addLine(&line{
				address: address,
				data:    program[offset : offset+1],
				code:    fmt.Sprintf(".byte $%02X", program[offset]),
			})
			break
		}

		data := program[offset : offset+2]
		word := uint16(data[0])<<8 | uint16(data[1])
		l := &line{
			address: address,
			data:    data,
		}

		code, ok := Mnemonic(word)
		if !ok {
			l.code = fmt.Sprintf(".word $%04X", word)
			dis.addLine(l)
			continue
		}

		l.code = code
		l.isCode = true
		dis.trackBranch(l, word)
		dis.addLine(l)
	}

	if start, ok := dis.lineByAddress[ProgramStart]; ok {
		start.label = "Start"
	}
}

func (dis *Disasm) addLine(l *line) {
	dis.lines = append(dis.lines, l)
	dis.lineByAddress[l.address] = l
}

// trackBranch records the destinations of jp and call instructions.
func (dis *Disasm) trackBranch(l *line, word uint16) {
	target := word & 0x0FFF

	switch word & 0xF000 {
	case 0x1000:
		dis.branchDestinations.Add(target)
	case 0x2000:
		dis.callDestinations.Add(target)
	default:
		return
	}

	l.branchingTo = target
	l.branches = true
}

func (dis *Disasm) writeLine(w io.Writer, l *line) error {
	if l.label != "" {
		if _, err := fmt.Fprintf(w, "%s:\n", l.label); err != nil {
			return err
		}
	}

	code := "  " + l.code
	var comment string
	if dis.options.OffsetComments {
		comment = fmt.Sprintf(" $%04X", l.address)
	}
	if dis.options.HexComments {
		for _, b := range l.data {
			comment += fmt.Sprintf(" %02X", b)
		}
	}

	if comment == "" {
		_, err := fmt.Fprintln(w, code)
		return err
	}
	_, err := fmt.Fprintf(w, "%-30s ;%s\n", code, comment)
	return err
}
