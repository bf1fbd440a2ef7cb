package disasm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func runDisasm(t *testing.T, options Options, program ...byte) string {
	t.Helper()

	var buf bytes.Buffer
	dis := New(log.NewTestLogger(t), options)
	assert.NoError(t, dis.Process(&buf, program))
	return buf.String()
}

func TestDisasm_Listing(t *testing.T) {
	program := []byte{
		0x00, 0xE0, // cls
		0x22, 0x06, // call $206
		0x12, 0x02, // jp $202
		0x6A, 0x05, // ld VA, $05
		0x00, 0xEE, // ret
		0xFF, 0xFF, // data
		0x12, // trailing byte
	}

	expected := `Start:
  cls
_label_0202:
  call _func_0206
  jp _label_0202
_func_0206:
  ld VA, $05
  ret
  .word $FFFF
  .byte $12
`
	assert.Equal(t, expected, runDisasm(t, Options{}, program...))
}

func TestDisasm_JumpToStart(t *testing.T) {
	output := runDisasm(t, Options{}, 0x12, 0x00)
	assert.Equal(t, "Start:\n  jp Start\n", output)
}

func TestDisasm_DestinationWithoutCode(t *testing.T) {
	// the jump target is outside of the program and the data word is not
	// labeled
	output := runDisasm(t, Options{}, 0x13, 0x00, 0xFF, 0xFF)
	assert.Equal(t, "Start:\n  jp $300\n  .word $FFFF\n", output)
}

func TestDisasm_Comments(t *testing.T) {
	output := runDisasm(t, Options{HexComments: true, OffsetComments: true}, 0x00, 0xE0, 0x60)
	assert.Contains(t, output, "; $0200 00 E0\n")
	assert.Contains(t, output, "; $0202 60\n")

	output = runDisasm(t, Options{HexComments: true}, 0x00, 0xE0)
	assert.Contains(t, output, "; 00 E0\n")
	assert.False(t, strings.Contains(output, "$0200"))
}

func TestDisasm_Empty(t *testing.T) {
	assert.Equal(t, "", runDisasm(t, Options{}))
}

func TestNewTracer(t *testing.T) {
	tracer := NewTracer(log.NewTestLogger(t))
	tracer(0x200, 0x00E0)
	tracer(0x202, 0xFFFF)
}
