// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/options"
)

const (
	defaultClockRate = 600
	defaultTimerRate = 60
)

var (
	errInvalidClockRate = errors.New("clock rate has to be greater than 0")
	errInvalidTimerRate = errors.New("timer rate has to be greater than 0")
	errClockBelowTimer  = errors.New("clock rate has to be at least the timer rate")
)

// ParseFlags parses command line flags and returns program and disassembler options
func ParseFlags() (options.Program, options.Disassembler, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	var opts options.Program
	readOptionFlags(flags, &opts)
	var noHexComments, noOffsets bool
	readDisasmOptionFlags(flags, &noHexComments, &noOffsets)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil && !errors.Is(err, flag.ErrHelp) {
		return opts, options.Disassembler{}, &UsageError{flags: flags, msg: err.Error()}
	}
	if err != nil || (len(args) == 0 && opts.Input == "") {
		return opts, options.Disassembler{}, &UsageError{flags: flags}
	}

	if err := validateArgs(flags, args); err != nil {
		return opts, options.Disassembler{}, err
	}

	if err := validateMachine(opts.Machine); err != nil {
		return opts, options.Disassembler{}, err
	}

	if opts.Input == "" {
		opts.Input = args[0]
	}

	disasmOptions := options.NewDisassembler()
	disasmOptions.HexComments = !noHexComments
	disasmOptions.OffsetComments = !noOffsets

	return opts, disasmOptions, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	if e.msg == "" {
		return "invalid arguments"
	}
	return e.msg
}

// ShowUsage prints the error message, if any, and the flag defaults.
func (e *UsageError) ShowUsage() {
	if e.msg != "" {
		fmt.Println(e.msg)
		fmt.Println()
	}
	fmt.Printf("usage: retrochip8 [options] <ROM file>\n\n")
	if e.flags != nil {
		e.flags.SetOutput(os.Stdout)
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(flags *flag.FlagSet, args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				flags: flags,
				msg:   fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// validateMachine checks the emulation speed settings.
func validateMachine(m options.Machine) error {
	switch {
	case m.ClockRate == 0:
		return errInvalidClockRate
	case m.TimerRate == 0:
		return errInvalidTimerRate
	case m.ClockRate < m.TimerRate:
		return fmt.Errorf("%w: clock %d, timer %d", errClockBelowTimer, m.ClockRate, m.TimerRate)
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.Output, "o", "", "name of the output .asm file for -disasm, printed on console if no name given")
	flags.StringVar(&opts.LogFile, "log", "", "name of the log file to write to while the terminal UI is active")
	flags.BoolVar(&opts.Disassemble, "disasm", false, "print a disassembly listing of the ROM instead of running it")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.UintVar(&opts.ClockRate, "clock", defaultClockRate, "instructions executed per second")
	flags.UintVar(&opts.TimerRate, "timer", defaultTimerRate, "timer and display refresh rate in Hz")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed of the random number generator, 0 uses a time based seed")
}

func readDisasmOptionFlags(flags *flag.FlagSet, noHexComments, noOffsets *bool) {
	flags.BoolVar(noHexComments, "nohexcomments", false, "do not output opcode bytes as hex values in comments")
	flags.BoolVar(noOffsets, "nooffsets", false, "do not output offsets in comments")
}
