// Package display provides the CHIP-8 monochrome framebuffer model.
package display

import "fmt"

// Framebuffer dimensions.
const (
	Width  = 64
	Height = 32

	// PixelCount is the total number of pixels of the framebuffer.
	PixelCount = Width * Height
)

// Framebuffer is a 64x32 monochrome bitmap that is drawn to using XOR.
// It is a value type, copying it copies all pixels.
type Framebuffer struct {
	pixels [PixelCount]bool
}

// Get returns whether the pixel at the given column and row is lit.
// Coordinates outside of the framebuffer are a caller defect and panic.
func (f *Framebuffer) Get(col, row int) bool {
	return f.pixels[pixelIndex(col, row)]
}

// DrawSprite XORs the sprite onto the framebuffer with its top left corner at
// the given column and row. Every sprite byte is one row of 8 pixels, most
// significant bit first. It returns true if any lit pixel was turned off.
// Pixels falling outside of the framebuffer are clipped.
func (f *Framebuffer) DrawSprite(col, row int, sprite []byte) bool {
	collision := false

	for i, b := range sprite {
		y := row + i
		if y < 0 || y >= Height {
			continue
		}

		for bit := range 8 {
			if b&(0x80>>bit) == 0 {
				continue
			}

			x := col + bit
			if x < 0 || x >= Width {
				continue
			}

			idx := y*Width + x
			if f.pixels[idx] {
				collision = true
			}
			f.pixels[idx] = !f.pixels[idx]
		}
	}

	return collision
}

// Clear turns all pixels off.
func (f *Framebuffer) Clear() {
	f.pixels = [PixelCount]bool{}
}

// LitPixels returns the number of pixels that are turned on.
func (f *Framebuffer) LitPixels() int {
	count := 0
	for _, lit := range f.pixels {
		if lit {
			count++
		}
	}
	return count
}

func pixelIndex(col, row int) int {
	if col < 0 || col >= Width {
		panic(fmt.Sprintf("display column %d out of range 0-%d", col, Width-1))
	}
	if row < 0 || row >= Height {
		panic(fmt.Sprintf("display row %d out of range 0-%d", row, Height-1))
	}
	return row*Width + col
}
