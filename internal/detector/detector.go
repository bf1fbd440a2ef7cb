// Package detector handles system detection of ROM files.
package detector

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// inesMagic starts every NES ROM in iNES format.
var inesMagic = []byte{'N', 'E', 'S', 0x1A}

// Detector handles system detection from file contents and extensions.
type Detector struct {
	logger *log.Logger
}

// New creates a new system detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the system a ROM file was made for. CHIP-8 ROMs have no
// header, so only the file header of other known formats and the file name
// extension can be checked. Unknown files are assumed to be CHIP-8 ROMs.
func (d *Detector) Detect(filename string, data []byte) arch.System {
	if bytes.HasPrefix(data, inesMagic) {
		return arch.NES
	}

	system := d.detectFromFile(filename)
	d.logger.Debug("Detected system",
		log.Stringer("system", system),
		log.String("file", filename))
	return system
}

// detectFromFile determines the system type based on file extension.
func (d *Detector) detectFromFile(filename string) arch.System {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".ch8", ".c8", ".rom":
		return arch.CHIP8System
	case ".nes":
		return arch.NES
	default:
		d.logger.Warn("Unknown ROM file extension, assuming CHIP-8",
			log.String("extension", ext))
		return arch.CHIP8System
	}
}
