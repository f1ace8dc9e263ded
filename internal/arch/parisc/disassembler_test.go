package parisc

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
		word     uint32
		expected string
	}{
		{"ldw", 0x4BD30020, "ldw\t16(r30),r19"},
		{"ldo", 0x37DE0080, "ldo\t64(r30),r30"},
		{"ldo negative", 0x37DE3F81, "ldo\t-64(r30),r30"},
		{"stw", 0x6BC23FD9, "stw\tr2,-20(r30)"},
		{"bv", 0xE840C000, "bv\tr0(r2)"},
		{"bv nullify", 0xE840C002, "bv,n\tr0(r2)"},
		{"b,l call", 0xE8400800, "b,l\t00100408,r2"},
		{"b,l", 0xE8000800, "b,l\t00100408,r0"},
		{"cmpb", 0x80A42020, "cmpb,=\tr4,r5,00100018"},
		{"cmpb nullify", 0x80A42022, "cmpb,=,n\tr4,r5,00100018"},
		{"cmpb false condition", 0x886A2020, "cmpb,<>\tr10,r3,00100018"},
		{"cmpib", 0x846A2020, "cmpib,=\t5,r3,00100018"},
		{"cmpib false condition", 0x8C6A2020, "cmpib,<>\t5,r3,00100018"},
		{"cmpib negative", 0x847F2020, "cmpib,=\t-1,r3,00100018"},
		{"addil", 0x2B602000, "addil\tL%0x1000,r27,r1"},
		{"ldil", 0x20202000, "ldil\tL%0x1000,r1"},
		{"add", 0x08830605, "add\tr3,r4,r5"},
		{"or", 0x08A00246, "or\tr0,r5,r6"},
		{"addi", 0xB42007FF, "addi\t-1,r1,r0"},
		{"addi condition", 0xB4632002, "addi,=\t1,r3,r3"},
		{"extrw", 0xD0641BF8, "extrw,u\tr3,0x1F,0x8,r4"},
		{"break", 0x00000000, "break\t0x0,0x0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDisassembly(t, tt.word, tt.expected)
		})
	}
}

func TestDisassemblerStampsInstruction(t *testing.T) {
	dis := NewDisassembler(newReader(t, 0x00000000, 0x08830605), false, nil)

	instr, ok := dis.DisassembleInstruction()
	assert.True(t, ok)
	assert.Equal(t, testAddress, instr.Address())
	assert.Equal(t, 4, instr.Length())
	assert.Equal(t, machine.Call|machine.Transfer|machine.Zero, instr.Class())

	instr, ok = dis.DisassembleInstruction()
	assert.True(t, ok)
	assert.Equal(t, testAddress+4, instr.Address())
	assert.Equal(t, machine.Linear, instr.Class())
	assert.True(t, instr.Condition == nil)

	_, ok = dis.DisassembleInstruction()
	assert.False(t, ok)
}

func TestDisassemblerOperandsNotShared(t *testing.T) {
	dis := NewDisassembler(newReader(t, 0x08830605, 0x08A00246), false, nil)
	first, _ := dis.DisassembleInstruction()
	second, _ := dis.DisassembleInstruction()
	assert.Equal(t, "add\tr3,r4,r5", first.String())
	assert.Equal(t, "or\tr0,r5,r6", second.String())
}

func TestDisassemblerStub(t *testing.T) {
	gen := testgen.NewGenerator(log.NewTestLogger(t), nil)
	dis := NewDisassembler(newReader(t, 0x0B200000, 0x0B200000), false, gen)

	count := 0
	for instr := range dis.Instructions() {
		count++
		assert.True(t, instr.IsStub())
		assert.Equal(t, OpAndcm, instr.Opcode)
		assert.Equal(t, machine.InstrClass(0), instr.Class())
		assert.Empty(t, instr.Operands())
	}
	assert.Equal(t, 2, count)

	tests := gen.Tests()
	assert.Len(t, tests, 1)
	assert.Contains(t, tests[0], "TestPaRiscDis_andcm")
	assert.Contains(t, tests[0], `"0B200000"`)
}

func TestDisassemblerShortRead(t *testing.T) {
	rdr := newReader(t, 0x08830605)
	_, _ = rdr.TryReadByte()
	dis := NewDisassembler(rdr, false, nil)
	_, ok := dis.DisassembleInstruction()
	assert.False(t, ok)
}

func TestBaseRegisterModification(t *testing.T) {
	// ldw with a short displacement and modify after
	instr := disassemble(t, 0x0C7010A5)
	assert.Equal(t, OpLdw, instr.Opcode)
	assert.Equal(t, ModifyAfter, instr.BaseReg)
	assert.Equal(t, "ldw,ma\t8(sr0,r3),r5", instr.String())
}

func TestWideRegisters(t *testing.T) {
	dis := NewDisassembler(newReader(t, 0x08830605), true, nil)
	instr, ok := dis.DisassembleInstruction()
	assert.True(t, ok)
	reg := instr.Operands()[2].(machine.RegisterOperand).Register
	assert.Equal(t, 64, reg.DataType.BitSize)
}
