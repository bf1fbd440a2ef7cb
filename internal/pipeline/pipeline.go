// Package pipeline orchestrates the workflow stages of the disassembly and
// the emulation mode.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

var errUnsupportedSystem = errors.New("unsupported system")

// Pipeline orchestrates the complete workflow.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
}

// New creates a new pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
	}
}

// Disassemble loads the ROM and writes the disassembly listing.
func (p *Pipeline) Disassemble(ctx context.Context, opts options.Program, disasmOpts options.Disassembler, writer io.Writer) error {
	program, err := p.loadROM(opts)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	p.printInfo(opts, program)

	dis := disasm.New(p.logger, disasm.Options{
		HexComments:    disasmOpts.HexComments,
		OffsetComments: disasmOpts.OffsetComments,
	})
	if err := dis.Process(writer, program); err != nil {
		return fmt.Errorf("disassembling: %w", err)
	}
	return nil
}

// Emulate loads the ROM and runs it until the context is canceled or the
// program executes an unimplemented instruction. The final machine state
// is returned in both cases.
func (p *Pipeline) Emulate(ctx context.Context, opts options.Program, screen runner.Screen,
	keys <-chan keypad.Event) (vm.State, error) {

	initial := vm.New()

	program, err := p.loadROM(opts)
	if err != nil {
		return initial, err
	}

	state, err := initial.Load(program)
	if err != nil {
		return initial, fmt.Errorf("loading program into memory: %w", err)
	}

	p.printInfo(opts, program)

	r := runner.New(p.logger, p.createEngine(opts), screen, opts.Machine)
	return r.Run(ctx, state, keys)
}

// loadROM loads the input file and checks that it is a CHIP-8 ROM.
func (p *Pipeline) loadROM(opts options.Program) ([]byte, error) {
	program, err := p.loader.Load(opts)
	if err != nil {
		return nil, fmt.Errorf("loading ROM: %w", err)
	}

	if system := p.detector.Detect(opts.Input, program); system != arch.CHIP8System {
		return nil, fmt.Errorf("%w '%s'", errUnsupportedSystem, system)
	}
	return program, nil
}

// createEngine creates the engine with the random source and the tracer
// configured by the options.
func (p *Pipeline) createEngine(opts options.Program) *vm.Engine {
	var engineOpts []vm.Option
	if opts.Seed != 0 {
		engineOpts = append(engineOpts, vm.WithSeed(opts.Seed))
	}
	if opts.Debug {
		engineOpts = append(engineOpts, vm.WithTracer(disasm.NewTracer(p.logger)))
	}
	return vm.NewEngine(engineOpts...)
}

// printInfo prints information about the ROM being processed.
func (p *Pipeline) printInfo(opts options.Program, program []byte) {
	if opts.Quiet {
		return
	}

	p.logger.Info("Processing CHIP-8 ROM",
		log.String("file", opts.Input),
		log.Int("size", len(program)),
	)
}
