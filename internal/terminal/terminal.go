// Package terminal implements a text mode front end that renders the
// machine display and translates keyboard input to keypad events.
package terminal

import (
	"context"
	"fmt"

	"github.com/nsf/termbox-go"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/vm"
)

// Terminal renders the machine state using termbox.
type Terminal struct {
	canvas canvas
	keys   *KeyMap

	poll      func() termbox.Event
	interrupt func()
}

// Open initializes the terminal. Close has to be called to restore the
// terminal state.
func Open() (*Terminal, error) {
	if err := termbox.Init(); err != nil {
		return nil, fmt.Errorf("initializing terminal: %w", err)
	}
	termbox.SetInputMode(termbox.InputEsc)
	termbox.HideCursor()

	return &Terminal{
		canvas:    termboxCanvas{},
		keys:      NewKeyMap(),
		poll:      termbox.PollEvent,
		interrupt: termbox.Interrupt,
	}, nil
}

// Close restores the terminal.
func (t *Terminal) Close() {
	termbox.Close()
}

// Render draws the display, the keypad state and the registers.
func (t *Terminal) Render(s *vm.State) error {
	return render(t.canvas, s)
}

// Listen reads keyboard input until the context is canceled or the user
// quits with Esc or Ctrl-C, in which case quit is called. Mapped keys are
// sent as keypad events. The events channel is closed on return.
func (t *Terminal) Listen(ctx context.Context, events chan<- keypad.Event, quit func()) error {
	defer close(events)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			t.interrupt()
		case <-done:
		}
	}()

	for {
		ev := t.poll()

		switch ev.Type {
		case termbox.EventInterrupt:
			return nil

		case termbox.EventError:
			return fmt.Errorf("polling terminal event: %w", ev.Err)

		case termbox.EventKey:
			if ev.Key == termbox.KeyEsc || ev.Key == termbox.KeyCtrlC {
				quit()
				return nil
			}
			event, ok := t.keys.Event(ev.Ch)
			if !ok {
				continue
			}
			select {
			case events <- event:
			case <-ctx.Done():
				return nil
			}
		}
	}
}
