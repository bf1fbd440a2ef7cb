package display

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestFramebuffer_InitialState(t *testing.T) {
	var fb Framebuffer
	assert.Equal(t, 0, fb.LitPixels())
	assert.False(t, fb.Get(0, 0))
	assert.False(t, fb.Get(Width-1, Height-1))
}

func TestFramebuffer_DrawSprite(t *testing.T) {
	var fb Framebuffer

	collision := fb.DrawSprite(0, 0, []byte{0x80})
	assert.False(t, collision)
	assert.True(t, fb.Get(0, 0))
	assert.False(t, fb.Get(1, 0))

	collision = fb.DrawSprite(0, 0, []byte{0x80})
	assert.True(t, collision)
	assert.False(t, fb.Get(0, 0))
}

func TestFramebuffer_DrawSpriteBitOrder(t *testing.T) {
	var fb Framebuffer

	fb.DrawSprite(10, 5, []byte{0xA5, 0x01})

	expected := []bool{true, false, true, false, false, true, false, true}
	for bit, want := range expected {
		assert.Equal(t, want, fb.Get(10+bit, 5), "bit %d", bit)
	}
	assert.True(t, fb.Get(17, 6))
	assert.False(t, fb.Get(10, 6))
	assert.Equal(t, 5, fb.LitPixels())
}

func TestFramebuffer_XorSelfInverse(t *testing.T) {
	sprites := [][]byte{
		{0xFF},
		{0xF0, 0x90, 0x90, 0x90, 0xF0},
		{0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80},
	}
	coordinates := [][2]int{{0, 0}, {30, 12}, {Width - 8, Height - 8}}

	for _, sprite := range sprites {
		for _, c := range coordinates {
			var fb Framebuffer
			fb.DrawSprite(3, 3, []byte{0x3C, 0x42})
			before := fb

			fb.DrawSprite(c[0], c[1], sprite)
			collision := fb.DrawSprite(c[0], c[1], sprite)

			assert.True(t, collision)
			assert.Equal(t, before, fb)
		}
	}
}

func TestFramebuffer_DrawSpriteClipping(t *testing.T) {
	tests := []struct {
		name     string
		col, row int
		sprite   []byte
		lit      int
	}{
		{"right edge", Width - 4, 0, []byte{0xFF}, 4},
		{"bottom edge", 0, Height - 2, []byte{0x80, 0x80, 0x80, 0x80}, 2},
		{"fully outside", Width, Height, []byte{0xFF}, 0},
		{"bottom right corner", Width - 1, Height - 1, []byte{0xFF, 0xFF}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fb Framebuffer
			collision := fb.DrawSprite(tt.col, tt.row, tt.sprite)
			assert.False(t, collision)
			assert.Equal(t, tt.lit, fb.LitPixels())
		})
	}
}

func TestFramebuffer_Clear(t *testing.T) {
	var fb Framebuffer
	fb.DrawSprite(0, 0, []byte{0xFF, 0xFF, 0xFF})
	fb.DrawSprite(56, 29, []byte{0xFF, 0xFF, 0xFF})
	assert.Equal(t, 48, fb.LitPixels())

	fb.Clear()
	for row := range Height {
		for col := range Width {
			assert.False(t, fb.Get(col, row))
		}
	}
}

func TestFramebuffer_GetOutOfRangePanics(t *testing.T) {
	tests := []struct {
		name     string
		col, row int
	}{
		{"column too large", Width, 0},
		{"row too large", 0, Height},
		{"negative column", -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				assert.NotNil(t, recover())
			}()
			var fb Framebuffer
			fb.Get(tt.col, tt.row)
		})
	}
}
