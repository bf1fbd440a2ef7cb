package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type fakeScreen struct {
	renders int
}

func (f *fakeScreen) Render(_ *vm.State) error {
	f.renders++
	return nil
}

func TestNew(t *testing.T) {
	logger := log.NewTestLogger(t)
	p := New(logger)

	assert.NotNil(t, p)
	assert.NotNil(t, p.logger)
	assert.NotNil(t, p.detector)
	assert.NotNil(t, p.loader)
}

func TestDisassemble(t *testing.T) {
	p := New(log.NewTestLogger(t))
	tmpFile := createTempFile(t, []byte{0x00, 0xE0, 0x12, 0x00})

	opts := options.Program{Parameters: options.Parameters{Input: tmpFile}}
	var buf bytes.Buffer
	err := p.Disassemble(context.Background(), opts, options.Disassembler{}, &buf)
	assert.NoError(t, err)
	assert.Equal(t, "Start:\n  cls\n  jp Start\n", buf.String())
}

func TestDisassemble_MissingFile(t *testing.T) {
	p := New(log.NewTestLogger(t))
	opts := options.Program{Parameters: options.Parameters{Input: filepath.Join(t.TempDir(), "missing.ch8")}}

	err := p.Disassemble(context.Background(), opts, options.Disassembler{}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "loading ROM")
}

func TestDisassemble_UnsupportedSystem(t *testing.T) {
	p := New(log.NewTestLogger(t))
	tmpFile := createTempFile(t, []byte{'N', 'E', 'S', 0x1A, 0x01, 0x00})

	opts := options.Program{Parameters: options.Parameters{Input: tmpFile}}
	err := p.Disassemble(context.Background(), opts, options.Disassembler{}, &bytes.Buffer{})
	assert.True(t, errors.Is(err, errUnsupportedSystem))
}

func TestDisassemble_Canceled(t *testing.T) {
	p := New(log.NewTestLogger(t))
	tmpFile := createTempFile(t, []byte{0x00, 0xE0})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := options.Program{Parameters: options.Parameters{Input: tmpFile}}
	err := p.Disassemble(ctx, opts, options.Disassembler{}, &bytes.Buffer{})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestEmulate(t *testing.T) {
	p := New(log.NewTestLogger(t))
	// ld V0, $2A / sys $000
	tmpFile := createTempFile(t, []byte{0x60, 0x2A, 0x00, 0x00})

	opts := options.Program{
		Parameters: options.Parameters{Input: tmpFile},
		Flags:      options.Flags{Debug: true},
		Machine:    options.Machine{ClockRate: 600, TimerRate: 600, Seed: 1},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	screen := &fakeScreen{}
	final, err := p.Emulate(ctx, opts, screen, nil)
	assert.True(t, errors.Is(err, vm.ErrUnimplementedInstruction))
	assert.Equal(t, uint8(0x2A), final.Register(0))
	// initial render and the tick of the first instruction
	assert.Equal(t, 2, screen.renders)
}

func TestEmulate_MissingFile(t *testing.T) {
	p := New(log.NewTestLogger(t))
	opts := options.Program{
		Parameters: options.Parameters{Input: filepath.Join(t.TempDir(), "missing.ch8")},
		Machine:    options.Machine{ClockRate: 600, TimerRate: 60},
	}

	final, err := p.Emulate(context.Background(), opts, &fakeScreen{}, nil)
	assert.ErrorContains(t, err, "loading ROM")
	assert.Equal(t, uint16(vm.ProgramStart), final.PC())
}

func createTempFile(t *testing.T, data []byte) string {
	t.Helper()
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test.ch8")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}
