package terminal

import (
	"fmt"

	"github.com/nsf/termbox-go"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/vm"
)

const (
	header      = "### CHIP-8 ###"
	pixelRune   = '█'
	rowPrefix   = 3 // width of the row number column
	screenTop   = 1
	keyStripRow = screenTop + display.Height
	statusRow   = keyStripRow + 1
)

// canvas is the drawing surface of the terminal.
type canvas interface {
	Clear(fg, bg termbox.Attribute) error
	SetCell(x, y int, ch rune, fg, bg termbox.Attribute)
	Flush() error
}

type termboxCanvas struct{}

func (termboxCanvas) Clear(fg, bg termbox.Attribute) error {
	return termbox.Clear(fg, bg)
}

func (termboxCanvas) SetCell(x, y int, ch rune, fg, bg termbox.Attribute) {
	termbox.SetCell(x, y, ch, fg, bg)
}

func (termboxCanvas) Flush() error {
	return termbox.Flush()
}

// render draws the complete machine state and flushes the canvas.
func render(c canvas, s *vm.State) error {
	if err := c.Clear(termbox.ColorDefault, termbox.ColorDefault); err != nil {
		return fmt.Errorf("clearing screen: %w", err)
	}

	drawText(c, 0, 0, header, termbox.ColorDefault|termbox.AttrBold)

	for row := range display.Height {
		y := screenTop + row
		drawText(c, 0, y, fmt.Sprintf("%02d", row), termbox.ColorDarkGray)
		for col := range display.Width {
			if s.Pixel(col, row) {
				c.SetCell(rowPrefix+col, y, pixelRune, termbox.ColorDefault, termbox.ColorDefault)
			}
		}
	}

	drawKeyStrip(c, s)
	drawText(c, 0, statusRow, status(s), termbox.ColorDefault)

	if err := c.Flush(); err != nil {
		return fmt.Errorf("flushing screen: %w", err)
	}
	return nil
}

func drawKeyStrip(c canvas, s *vm.State) {
	x := drawText(c, 0, keyStripRow, "keys", termbox.ColorDefault)
	for key := range uint8(keypad.KeyCount) {
		color := termbox.ColorDarkGray
		if s.IsKeyDown(key) {
			color = termbox.ColorRed | termbox.AttrBold
		}
		x = drawText(c, x+1, keyStripRow, fmt.Sprintf("%X", key), color)
	}
}

func status(s *vm.State) string {
	text := fmt.Sprintf("PC %04X  I %04X  SP %04X  DT %02X  ST %02X  lit %d",
		s.PC(), s.Index(), s.SP(), s.DelayTimer(), s.SoundTimer(), s.LitPixels())
	if keys := s.PressedKeys(); len(keys) > 0 {
		text += "  held"
		for _, key := range keys {
			text += fmt.Sprintf(" %X", key)
		}
	}
	if register, waiting := s.WaitingForKey(); waiting {
		text += fmt.Sprintf("  waiting for key -> V%X", register)
	}
	return text
}

// drawText draws the text starting at the given position and returns the
// column after the last character.
func drawText(c canvas, x, y int, text string, fg termbox.Attribute) int {
	for _, ch := range text {
		c.SetCell(x, y, ch, fg, termbox.ColorDefault)
		x++
	}
	return x
}
