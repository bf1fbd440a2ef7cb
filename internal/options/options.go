// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input   string `flag:"i" usage:"input ROM file"`
	Output  string `flag:"o" usage:"output .asm file of the disassembly (default: stdout)"`
	LogFile string `flag:"log" usage:"log file used while the terminal UI is active"`
}

// Flags contains behavior options.
type Flags struct {
	Disassemble bool `flag:"disasm" usage:"print a disassembly listing instead of running the program"`
	Debug       bool `flag:"debug" usage:"enable debug logging"`
	Quiet       bool `flag:"q" usage:"quiet mode"`
}

// Machine contains the emulation speed settings.
type Machine struct {
	ClockRate uint   `flag:"clock" usage:"instructions executed per second" default:"600"`
	TimerRate uint   `flag:"timer" usage:"timer and display refresh rate in Hz" default:"60"`
	Seed      uint64 `flag:"seed" usage:"seed of the random number generator (0: time based)"`
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
	Machine
}

// Disassembler defines options to control the disassembly listing.
type Disassembler struct {
	HexComments    bool
	OffsetComments bool
}

// NewDisassembler returns a new options instance with default options.
func NewDisassembler() Disassembler {
	return Disassembler{
		HexComments:    true,
		OffsetComments: true,
	}
}

// InstructionsPerTick returns the number of instructions to execute for
// every timer tick, at least 1.
func (m Machine) InstructionsPerTick() int {
	if m.TimerRate == 0 || m.ClockRate < m.TimerRate {
		return 1
	}
	return int(m.ClockRate / m.TimerRate)
}
