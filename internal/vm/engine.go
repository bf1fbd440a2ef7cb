package vm

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/retroenv/retrochip8/internal/instruction"
)

// ErrUnimplementedInstruction is matched by errors returned from Step for
// instruction words that are not part of the instruction set.
var ErrUnimplementedInstruction = instruction.ErrUnimplemented

// UnimplementedInstructionError reports an instruction word that can not be
// executed together with the address it was fetched from.
type UnimplementedInstructionError struct {
	Address uint16
	Word    uint16
	cause   error
}

func (e *UnimplementedInstructionError) Error() string {
	return fmt.Sprintf("unimplemented instruction %04X at address %04X", e.Word, e.Address)
}

func (e *UnimplementedInstructionError) Unwrap() error {
	return e.cause
}

// Tracer is called with the address and word of every instruction before
// it is executed.
type Tracer func(address, word uint16)

// Option configures an Engine.
type Option func(*Engine)

// WithRandom sets the source of random bytes used by the rand instruction.
func WithRandom(fn func() byte) Option {
	return func(e *Engine) {
		e.random = fn
	}
}

// WithSeed seeds the default random source, making rand results repeatable.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.random = newRandomSource(seed)
	}
}

// WithTracer sets a function that observes every executed instruction.
func WithTracer(tracer Tracer) Option {
	return func(e *Engine) {
		e.tracer = tracer
	}
}

// Engine executes instructions. It holds no machine state, every call to
// Step transforms the passed state into its successor. An Engine is not
// safe for concurrent use as its random source is not synchronized.
type Engine struct {
	random func() byte
	tracer Tracer
}

// NewEngine returns a new engine configured with the given options.
func NewEngine(options ...Option) *Engine {
	e := &Engine{}
	for _, option := range options {
		option(e)
	}
	if e.random == nil {
		e.random = newRandomSource(uint64(time.Now().UnixNano()))
	}
	return e
}

// Step executes the instruction at the program counter and returns the
// resulting state. A machine that waits for a key press is returned
// unchanged. An instruction word that is not part of the instruction set
// returns an *UnimplementedInstructionError and the unchanged state.
func (e *Engine) Step(s State) (State, error) {
	if _, waiting := s.keys.Waiting(); waiting {
		return s, nil
	}

	word := instruction.Fetch(s.memory[:], s.pc)
	ins, err := instruction.Decode(word)
	if err != nil {
		var unimplemented *instruction.UnimplementedError
		if errors.As(err, &unimplemented) {
			return s, &UnimplementedInstructionError{
				Address: s.pc,
				Word:    uint16(word),
				cause:   err,
			}
		}
		return s, fmt.Errorf("decoding instruction at %04X: %w", s.pc, err)
	}

	if e.tracer != nil {
		e.tracer(s.pc, uint16(word))
	}

	handlers[ins.Op](e, &s, ins)
	return s, nil
}

func newRandomSource(seed uint64) func() byte {
	rnd := rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
	return func() byte {
		return byte(rnd.UintN(256))
	}
}
