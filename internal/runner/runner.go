// Package runner drives the machine in real time: it executes instructions
// at the configured clock rate, decrements the timers at the timer rate and
// applies key events as they arrive.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

var errInvalidTimerRate = errors.New("timer rate has to be greater than 0")

// Screen displays the machine state.
type Screen interface {
	Render(s *vm.State) error
}

// Runner executes a program in real time.
type Runner struct {
	logger  *log.Logger
	engine  *vm.Engine
	screen  Screen
	machine options.Machine

	instructionsPerTick int
	soundActive         bool
}

// New creates a new runner.
func New(logger *log.Logger, engine *vm.Engine, screen Screen, machine options.Machine) *Runner {
	return &Runner{
		logger:              logger,
		engine:              engine,
		screen:              screen,
		machine:             machine,
		instructionsPerTick: machine.InstructionsPerTick(),
	}
}

// Run executes the program until the context is canceled or an
// instruction fails. It returns the last state of the machine. Key events
// are applied between timer ticks, a closed key channel stops only the key
// processing.
func (r *Runner) Run(ctx context.Context, s vm.State, keys <-chan keypad.Event) (vm.State, error) {
	if r.machine.TimerRate == 0 {
		return s, errInvalidTimerRate
	}

	ticker := time.NewTicker(time.Second / time.Duration(r.machine.TimerRate))
	defer ticker.Stop()

	r.logger.Debug("Starting emulation",
		log.Int("instructions_per_tick", r.instructionsPerTick),
		log.Int("timer_rate", int(r.machine.TimerRate)))

	return r.run(ctx, s, ticker.C, keys)
}

func (r *Runner) run(ctx context.Context, s vm.State, ticks <-chan time.Time,
	keys <-chan keypad.Event) (vm.State, error) {

	if err := r.screen.Render(&s); err != nil {
		return s, fmt.Errorf("rendering screen: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return s, ctx.Err()

		case event, ok := <-keys:
			if !ok {
				r.logger.Debug("Key input closed")
				keys = nil
				continue
			}
			s = applyKey(s, event)

		case <-ticks:
			next, err := r.tick(s)
			if err != nil {
				return next, err
			}
			s = next
		}
	}
}

// tick executes the instructions of one timer period, decrements the timers
// and renders the result.
func (r *Runner) tick(s vm.State) (vm.State, error) {
	for range r.instructionsPerTick {
		next, err := r.engine.Step(s)
		if err != nil {
			return s, fmt.Errorf("executing instruction: %w", err)
		}
		s = next
	}

	s = s.DecreaseTimers()
	r.updateSound(&s)

	if err := r.screen.Render(&s); err != nil {
		return s, fmt.Errorf("rendering screen: %w", err)
	}
	return s, nil
}

func (r *Runner) updateSound(s *vm.State) {
	active := s.SoundActive()
	if active == r.soundActive {
		return
	}
	r.soundActive = active

	if active {
		r.logger.Debug("Sound on", log.Uint8("timer", s.SoundTimer()))
	} else {
		r.logger.Debug("Sound off")
	}
}

func applyKey(s vm.State, event keypad.Event) vm.State {
	if event.Key >= keypad.KeyCount {
		return s
	}
	if event.Pressed {
		return s.KeyPress(event.Key)
	}
	return s.KeyRelease(event.Key)
}
