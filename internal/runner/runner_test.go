package runner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type fakeScreen struct {
	renders  int
	onRender func(renders int)
	err      error
}

func (f *fakeScreen) Render(_ *vm.State) error {
	f.renders++
	if f.onRender != nil {
		f.onRender(f.renders)
	}
	return f.err
}

func loadState(t *testing.T, program ...byte) vm.State {
	t.Helper()

	initial := vm.New()
	s, err := initial.Load(program)
	assert.NoError(t, err)
	return s
}

func newTestRunner(t *testing.T, screen Screen, machine options.Machine) *Runner {
	t.Helper()
	engine := vm.NewEngine(vm.WithRandom(func() byte { return 0 }))
	return New(log.NewTestLogger(t), engine, screen, machine)
}

// bufferedTicks returns a channel with the given number of ticks queued.
func bufferedTicks(count int) <-chan time.Time {
	ticks := make(chan time.Time, count)
	for range count {
		ticks <- time.Time{}
	}
	return ticks
}

func TestRunner_Ticks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	screen := &fakeScreen{
		onRender: func(renders int) {
			if renders == 3 {
				cancel()
			}
		},
	}
	r := newTestRunner(t, screen, options.Machine{ClockRate: 600, TimerRate: 60})

	// add V0, $01 / jp $200
	s := loadState(t, 0x70, 0x01, 0x12, 0x00)
	final, err := r.run(ctx, s, bufferedTicks(2), nil)
	assert.True(t, errors.Is(err, context.Canceled))

	// initial render plus one per tick, 10 instructions per tick
	assert.Equal(t, 3, screen.renders)
	assert.Equal(t, uint8(10), final.Register(0))
	assert.Equal(t, uint16(0x200), final.PC())
}

func TestRunner_TimersDecreasePerTick(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	screen := &fakeScreen{
		onRender: func(renders int) {
			if renders == 2 {
				cancel()
			}
		},
	}
	r := newTestRunner(t, screen, options.Machine{ClockRate: 3, TimerRate: 1})

	// ld V0, $05 / ld DT, V0 / ld ST, V0 / jp $206
	s := loadState(t, 0x60, 0x05, 0xF0, 0x15, 0xF0, 0x18, 0x12, 0x06)
	final, err := r.run(ctx, s, bufferedTicks(1), nil)
	assert.True(t, errors.Is(err, context.Canceled))

	assert.Equal(t, uint8(4), final.DelayTimer())
	assert.Equal(t, uint8(4), final.SoundTimer())
	assert.True(t, r.soundActive)
}

func TestRunner_UnimplementedInstruction(t *testing.T) {
	screen := &fakeScreen{}
	r := newTestRunner(t, screen, options.Machine{ClockRate: 600, TimerRate: 60})

	// ld V1, $01 / sys $000
	s := loadState(t, 0x61, 0x01, 0x00, 0x00)
	final, err := r.run(context.Background(), s, bufferedTicks(1), nil)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, vm.ErrUnimplementedInstruction))

	var unimplemented *vm.UnimplementedInstructionError
	assert.True(t, errors.As(err, &unimplemented))
	assert.Equal(t, uint16(0x202), unimplemented.Address)

	// the state before the failing instruction is returned
	assert.Equal(t, uint8(1), final.Register(1))
	assert.Equal(t, uint16(0x202), final.PC())
	assert.Equal(t, 1, screen.renders)
}

func TestRunner_KeyEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := newTestRunner(t, &fakeScreen{}, options.Machine{ClockRate: 600, TimerRate: 60})

	// ld V3, K
	s := loadState(t, 0xF3, 0x0A)
	s, err := r.engine.Step(s)
	assert.NoError(t, err)
	_, waiting := s.WaitingForKey()
	assert.True(t, waiting)

	keys := make(chan keypad.Event)
	go func() {
		keys <- keypad.Event{Key: 0x5, Pressed: true}
		keys <- keypad.Event{Key: 0x6, Pressed: true}
		keys <- keypad.Event{Key: 0x6, Pressed: false}
		close(keys)
		cancel()
	}()

	final, err := r.run(ctx, s, nil, keys)
	assert.True(t, errors.Is(err, context.Canceled))

	_, waiting = final.WaitingForKey()
	assert.False(t, waiting)
	assert.Equal(t, uint8(0x5), final.Register(3))
	assert.Equal(t, uint16(0x202), final.PC())
	assert.True(t, final.IsKeyDown(0x5))
	assert.False(t, final.IsKeyDown(0x6))
}

func TestRunner_RenderError(t *testing.T) {
	errRender := errors.New("render failed")
	r := newTestRunner(t, &fakeScreen{err: errRender}, options.Machine{ClockRate: 600, TimerRate: 60})

	_, err := r.run(context.Background(), vm.New(), nil, nil)
	assert.True(t, errors.Is(err, errRender))
}

func TestRunner_InvalidTimerRate(t *testing.T) {
	r := newTestRunner(t, &fakeScreen{}, options.Machine{ClockRate: 600})

	_, err := r.Run(context.Background(), vm.New(), nil)
	assert.True(t, errors.Is(err, errInvalidTimerRate))
}

func TestApplyKey(t *testing.T) {
	s := vm.New()

	s = applyKey(s, keypad.Event{Key: 0xF, Pressed: true})
	assert.True(t, s.IsKeyDown(0xF))

	s = applyKey(s, keypad.Event{Key: 0xF, Pressed: false})
	assert.False(t, s.IsKeyDown(0xF))

	// out of range keys from a front end are ignored
	s = applyKey(s, keypad.Event{Key: 0x10, Pressed: true})
	for key := range uint8(keypad.KeyCount) {
		assert.False(t, s.IsKeyDown(key))
	}
}
