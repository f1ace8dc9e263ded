package writer

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"testing"

	"github.com/retroenv/retrolift/internal/arch/chip8"
	"github.com/retroenv/retrolift/internal/decoder"
	"github.com/retroenv/retrolift/internal/image"
	"github.com/retroenv/retrolift/internal/machine"
	"github.com/retroenv/retrolift/internal/rtl"
	"github.com/retroenv/retrolift/internal/types"
	"github.com/retroenv/retrogolib/assert"
)

func decodeJump(t *testing.T) machine.Instruction {
	t.Helper()
	img := image.New(chip8.ProgramStart, []byte{0x12, 0x34})
	rdr, err := img.NewReader(chip8.ProgramStart, binary.BigEndian)
	assert.NoError(t, err)
	instr, ok := chip8.NewDisassembler(rdr, nil).Next()
	assert.True(t, ok)
	return instr
}

func TestWriteCommentHeader(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, Options{})

	err := w.WriteCommentHeader(Header{Arch: "mips", BaseAddress: 0x80001000, Size: 64, Section: ".text"})
	assert.NoError(t, err)
	expected := "; Architecture: mips\n" +
		"; Section: .text\n" +
		"; Code base address: $80001000\n" +
		"; Code size: 64 bytes\n\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriteInstruction(t *testing.T) {
	instr := decodeJump(t)

	tests := []struct {
		name    string
		options Options
		want    string
	}{
		{"hex comments", Options{HexComments: true}, fmt.Sprintf("  %-30s ; $00000200  12 34\n", "jp $234")},
		{"address only", Options{}, fmt.Sprintf("  %-30s ; $00000200\n", "jp $234")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := New(&buf, tt.options)
			assert.NoError(t, w.WriteInstruction(instr, []byte{0x12, 0x34}))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWriteCluster(t *testing.T) {
	m := rtl.NewEmitter(types.Ptr16)
	m.Nop()
	cluster := rtl.NewCluster(0x200, 2, machine.Linear, m.Operations())

	var buf bytes.Buffer
	w := New(&buf, Options{})
	assert.NoError(t, w.WriteCluster(cluster))
	assert.Equal(t, "0|L--|00000200(2): 1 instructions\n1|L--|nop\n\n", buf.String())
}

func TestWriteDecoderStats(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, Options{})

	stats := decoder.Stats{Nodes: 10, Terminals: 6, Masks: 2, Conds: 1, Stubs: 1, MaxDepth: 3}
	assert.NoError(t, w.WriteDecoderStats("chip8", stats))
	assert.Contains(t, buf.String(), "; Decoder tree of chip8:\n")
	assert.Contains(t, buf.String(), ";   terminals: 6\n")
	assert.Contains(t, buf.String(), ";   depth:     3\n")
}

func TestWriteTests(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, Options{})

	assert.NoError(t, w.WriteTests(nil))
	assert.Equal(t, "", buf.String())

	assert.NoError(t, w.WriteTests([]string{"func TestX(t *testing.T) {\n}\n"}))
	assert.Equal(t, "\n; Missing cases: 1\n;\n; func TestX(t *testing.T) {\n; }\n", buf.String())
}
