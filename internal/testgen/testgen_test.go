package testgen

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/retroenv/retrolift/internal/image"
	"github.com/retroenv/retrolift/internal/machine"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type testInstruction struct {
	addr     machine.Address
	mnemonic string
}

func (i *testInstruction) Address() machine.Address   { return i.addr }
func (i *testInstruction) Length() int                 { return 4 }
func (i *testInstruction) Class() machine.InstrClass   { return machine.Linear }
func (i *testInstruction) MnemonicString() string      { return i.mnemonic }
func (i *testInstruction) Operands() []machine.Operand { return nil }
func (i *testInstruction) String() string              { return i.mnemonic }

func TestGeneratorDeduplicates(t *testing.T) {
	img := image.New(0x1000, []byte{0x0B, 0x20, 0x00, 0x00, 0x0B, 0x21, 0x00, 0x00})
	rdr, err := img.NewReader(0x1008, binary.BigEndian)
	assert.NoError(t, err)

	var buf bytes.Buffer
	g := NewGenerator(log.NewTestLogger(t), &buf)

	g.ReportMissingRewriter("PaRiscRw", &testInstruction{addr: 0x1000, mnemonic: "andcm"}, "andcm", rdr, "not supported")
	g.ReportMissingRewriter("PaRiscRw", &testInstruction{addr: 0x1004, mnemonic: "andcm"}, "andcm", rdr, "not supported")
	g.ReportMissingRewriter("PaRiscRw", &testInstruction{addr: 0x1004, mnemonic: "uaddcm"}, "uaddcm", rdr, "not supported")

	tests := g.Tests()
	assert.Len(t, tests, 2)
	assert.Contains(t, tests[0], "func TestPaRiscRw_andcm(t *testing.T)")
	assert.Contains(t, tests[0], `"0B200000"`)
	assert.Contains(t, tests[1], `"0B210000"`)
	assert.Equal(t, 2, strings.Count(buf.String(), "func Test"))

	// the reader passed in must not move
	assert.Equal(t, machine.Address(0x1008), rdr.Address())
}

func TestGeneratorMissingDecoder(t *testing.T) {
	img := image.New(0, []byte{0x12, 0x34})
	rdr, err := img.NewReader(2, binary.BigEndian)
	assert.NoError(t, err)

	g := NewGenerator(log.NewTestLogger(t), nil)
	g.ReportMissingDecoder("Chip8Dis", 0, 2, rdr, "op 1")
	g.ReportMissingDecoder("Chip8Dis", 0, 2, rdr, "op 1")

	tests := g.Tests()
	assert.Len(t, tests, 1)
	assert.Contains(t, tests[0], "func TestChip8Dis_op_1(t *testing.T)")
	assert.Contains(t, tests[0], `"1234"`)
}

func TestNop(t *testing.T) {
	var s Service = Nop{}
	s.ReportMissingDecoder("x", 0, 4, nil, "y")
	s.ReportMissingRewriter("x", &testInstruction{}, "y", nil, "z")
}
