// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
)

// ErrEmptyROM is returned for ROM files that contain no data.
var ErrEmptyROM = errors.New("ROM file is empty")

// Loader handles loading ROM files from disk.
type Loader struct{}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the program image of the input file. CHIP-8 ROM files have no
// header, the whole file is loaded to the program start address.
func (l *Loader) Load(opts options.Program) ([]byte, error) {
	file, err := os.Open(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", opts.Input, err)
	}
	defer func() { _ = file.Close() }()

	return l.LoadReader(file)
}

// LoadReader reads a program image from the reader.
func (l *Loader) LoadReader(reader io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(reader, vm.MaxProgramSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading ROM: %w", err)
	}

	switch {
	case len(data) == 0:
		return nil, ErrEmptyROM
	case len(data) > vm.MaxProgramSize:
		return nil, fmt.Errorf("%w: maximum is %d bytes", vm.ErrProgramTooLarge, vm.MaxProgramSize)
	}
	return data, nil
}
