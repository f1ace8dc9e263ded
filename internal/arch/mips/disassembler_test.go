package mips

import (
	"encoding/binary"
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
		{"nop", 0x00000000, "nop"},
		{"addiu", 0x27BDFFE0, "addiu\tr29,r29,-32"},
		{"addu", 0x00801021, "addu\tr2,r4,r0"},
		{"lw", 0x8FBF001C, "lw\tr31,28(r29)"},
		{"sw", 0xAFBF001C, "sw\tr31,28(r29)"},
		{"sb no offset", 0xA0800000, "sb\tr0,(r4)"},
		{"lui", 0x3C018000, "lui\tr1,0x8000"},
		{"ori", 0x34241234, "ori\tr4,r1,0x1234"},
		{"sll", 0x00052080, "sll\tr4,r5,0x2"},
		{"jr", 0x03E00008, "jr\tr31"},
		{"jalr", 0x0320F809, "jalr\tr31,r25"},
		{"jal", 0x0C040100, "jal\t00100400"},
		{"beq", 0x10850004, "beq\tr4,r5,00100014"},
		{"beq backwards", 0x1085FFFF, "beq\tr4,r5,00100000"},
		{"bltz", 0x04800004, "bltz\tr4,00100014"},
		{"bgezal", 0x04910004, "bgezal\tr4,00100014"},
		{"mult", 0x00850018, "mult\tr4,r5"},
		{"ext", 0x7C823900, "ext\tr2,r4,0x4,0x8"},
		{"syscall", 0x0000000C, "syscall\t0x0"},
		{"lwc1", 0xC4800008, "lwc1\tf0,8(r4)"},
		{"lwxc1", 0x4C850000, "lwxc1\tf0,r5(r4)"},
		{"add.d", 0x46241000, "add.d\tf0,f2,f4"},
		{"c.lt.s", 0x4602003C, "c.lt.s\tfcc0,f0,f2"},
		{"bc1t", 0x45010004, "bc1t\tfcc0,00100014"},
		{"madd.d", 0x4CC41021, "madd.d\tf0,f6,f2,f4"},
		{"eret", 0x42000018, "eret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDisassembly(t, tt.word, tt.expected)
		})
	}
}

func TestDisassemblerByteOrder(t *testing.T) {
	for _, order := range []binary.ByteOrder{binary.BigEndian, binary.LittleEndian} {
		t.Run(order.String(), func(t *testing.T) {
			dis := NewDisassembler(newReader(t, order, 0x27BDFFE0, 0x03E00008), false, nil)
			var lines []string
			for instr := range dis.Instructions() {
				lines = append(lines, instr.String())
			}
			assert.Equal(t, []string{"addiu\tr29,r29,-32", "jr\tr31"}, lines)
		})
	}
}

func TestDisassemblerStampsInstruction(t *testing.T) {
	dis := NewDisassembler(newReader(t, binary.BigEndian, 0x00000000, 0x10850004), false, nil)

	instr, ok := dis.DisassembleInstruction()
	assert.True(t, ok)
	assert.Equal(t, testAddress, instr.Address())
	assert.Equal(t, 4, instr.Length())
	assert.Equal(t, machine.Linear|machine.Zero, instr.Class())

	instr, ok = dis.DisassembleInstruction()
	assert.True(t, ok)
	assert.Equal(t, testAddress+4, instr.Address())
	assert.Equal(t, machine.ConditionalTransfer|machine.Delay, instr.Class())

	_, ok = dis.DisassembleInstruction()
	assert.False(t, ok)
}

func TestDisassemblerBranchLikely(t *testing.T) {
	instr := disassemble(t, 0x50850004)
	assert.Equal(t, OpBeql, instr.Opcode)
	assert.True(t, instr.Class().Has(machine.Annul))
}

func TestDisassemblerDoublewordMode(t *testing.T) {
	// daddu and ld only exist in 64 bit mode
	for _, word := range []uint32{0x0085102D, 0xDC820008} {
		assert.Equal(t, OpInvalid, disassemble(t, word).Opcode)

		dis := NewDisassembler(newReader(t, binary.BigEndian, word), true, nil)
		instr, ok := dis.DisassembleInstruction()
		assert.True(t, ok)
		assert.True(t, instr.Opcode != OpInvalid)
	}
}

func TestDisassemblerFieldChecks(t *testing.T) {
	// ext with pos + size beyond 32 bits
	assert.Equal(t, OpInvalid, disassemble(t, 0x7C82FF00).Opcode)
	// ins with msb below pos
	assert.Equal(t, OpInvalid, disassemble(t, 0x7C821104).Opcode)
}

func TestDisassemblerStub(t *testing.T) {
	gen := testgen.NewGenerator(log.NewTestLogger(t), nil)
	dis := NewDisassembler(newReader(t, binary.BigEndian, 0x00252082, 0x00252082), false, gen)

	count := 0
	for instr := range dis.Instructions() {
		count++
		assert.True(t, instr.IsStub())
		assert.Equal(t, OpRotr, instr.Opcode)
		assert.Empty(t, instr.Operands())
	}
	assert.Equal(t, 2, count)

	tests := gen.Tests()
	assert.Len(t, tests, 1)
	assert.Contains(t, tests[0], "TestMipsDis_rotr")
	assert.Contains(t, tests[0], `"00252082"`)
}

func TestJumpTargetRegion(t *testing.T) {
	instr := disassemble(t, 0x08000004)
	assert.Equal(t, OpJ, instr.Opcode)
	assert.Equal(t, machine.Address(0x00000010), instr.Operands()[0].(machine.AddressOperand).Address)
}

func TestWideRegisters(t *testing.T) {
	dis := NewDisassembler(newReader(t, binary.BigEndian, 0x00801021), true, nil)
	instr, ok := dis.DisassembleInstruction()
	assert.True(t, ok)
	reg := instr.Operands()[0].(machine.RegisterOperand).Register
	assert.Equal(t, 64, reg.DataType.BitSize)
	fp := disassemble(t, 0x46241000).Operands()[0].(machine.RegisterOperand).Register
	assert.Equal(t, 32, fp.DataType.BitSize)
}
