package chip8

import (
	"testing"

	"github.com/retroenv/retrolift/internal/machine"
	"github.com/retroenv/retrolift/internal/testgen"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestDisassembly(t *testing.T) {
	tests := []struct {
		name     string
		word     uint16
		expected string
	}{
		{"cls", 0x00E0, "cls"},
		{"ret", 0x00EE, "ret"},
		{"jp", 0x1234, "jp $234"},
		{"call", 0x2300, "call $300"},
		{"se byte", 0x3105, "se V1, $05"},
		{"sne byte", 0x4AFF, "sne VA, $FF"},
		{"se reg", 0x5120, "se V1, V2"},
		{"ld byte", 0x6A42, "ld VA, $42"},
		{"add byte", 0x7301, "add V3, $01"},
		{"ld reg", 0x8120, "ld V1, V2"},
		{"or", 0x8121, "or V1, V2"},
		{"and", 0x8122, "and V1, V2"},
		{"xor", 0x8123, "xor V1, V2"},
		{"add reg", 0x8124, "add V1, V2"},
		{"sub", 0x8125, "sub V1, V2"},
		{"shr", 0x8126, "shr V1"},
		{"subn", 0x8127, "subn V1, V2"},
		{"shl", 0x812E, "shl V1"},
		{"sne reg", 0x9120, "sne V1, V2"},
		{"ld I", 0xA2F0, "ld I, $2F0"},
		{"jp V0", 0xB300, "jp V0, $300"},
		{"rnd", 0xC50F, "rnd V5, $0F"},
		{"drw", 0xD125, "drw V1, V2, $5"},
		{"skp", 0xE19E, "skp V1"},
		{"sknp", 0xE1A1, "sknp V1"},
		{"ld Vx, DT", 0xF107, "ld V1, DT"},
		{"ld Vx, K", 0xF10A, "ld V1, K"},
		{"ld DT, Vx", 0xF115, "ld DT, V1"},
		{"ld ST, Vx", 0xF118, "ld ST, V1"},
		{"add I, Vx", 0xF11E, "add I, V1"},
		{"ld F, Vx", 0xF129, "ld F, V1"},
		{"ld B, Vx", 0xF133, "ld B, V1"},
		{"ld [I], Vx", 0xF355, "ld [I], V3"},
		{"ld Vx, [I]", 0xF365, "ld V3, [I]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, disassemble(t, tt.word).String())
		})
	}
}

func TestDisassemblerInvalid(t *testing.T) {
	for _, word := range []uint16{0x5121, 0x9121, 0x8128, 0x812F, 0xE100, 0xF100, 0xF1FF} {
		instr := disassemble(t, word)
		assert.Equal(t, OpInvalid, instr.Opcode)
		assert.Equal(t, machine.Invalid, instr.Class())
	}
}

func TestDisassemblerClasses(t *testing.T) {
	tests := []struct {
		word  uint16
		class machine.InstrClass
	}{
		{0x00E0, machine.Linear},
		{0x00EE, machine.Transfer},
		{0x1234, machine.Transfer},
		{0xB300, machine.Transfer},
		{0x2300, machine.Transfer | machine.Call},
		{0x3105, machine.ConditionalTransfer},
		{0xE19E, machine.ConditionalTransfer},
		{0x6A42, machine.Linear},
	}

	for _, tt := range tests {
		instr := disassemble(t, tt.word)
		assert.Equal(t, tt.class, instr.Class(), instr.String())
		assert.NoError(t, instr.Class().Validate())
	}
}

func TestDisassemblerStampsInstruction(t *testing.T) {
	dis := NewDisassembler(newReader(t, 0x6A42, 0x1200), nil)

	instr, ok := dis.DisassembleInstruction()
	assert.True(t, ok)
	assert.Equal(t, testAddress, instr.Address())
	assert.Equal(t, 2, instr.Length())

	instr, ok = dis.DisassembleInstruction()
	assert.True(t, ok)
	assert.Equal(t, testAddress+2, instr.Address())
	assert.True(t, instr.IsJump())

	_, ok = dis.DisassembleInstruction()
	assert.False(t, ok)
}

func TestDisassemblerPredicates(t *testing.T) {
	assert.True(t, disassemble(t, 0x2300).IsCall())
	assert.True(t, disassemble(t, 0x00EE).IsReturn())
	assert.True(t, disassemble(t, 0xB300).IsJump())
	assert.False(t, disassemble(t, 0x3105).IsJump())
}

func TestDisassemblerStub(t *testing.T) {
	gen := testgen.NewGenerator(log.NewTestLogger(t), nil)
	dis := NewDisassembler(newReader(t, 0x0123, 0x0000), gen)

	count := 0
	for instr := range dis.Instructions() {
		count++
		assert.True(t, instr.IsStub())
		assert.Equal(t, OpSys, instr.Opcode)
		assert.Equal(t, "sys", instr.String())
	}
	assert.Equal(t, 2, count)

	tests := gen.Tests()
	assert.Len(t, tests, 1)
	assert.Contains(t, tests[0], "TestChip8Dis_sys")
	assert.Contains(t, tests[0], `"0123"`)
}

func TestDisassemblerZeroWord(t *testing.T) {
	instr := disassemble(t, 0x0000)
	assert.True(t, instr.Class().Has(machine.Zero))
}
