package mips

import (
	"github.com/retroenv/retrolift/internal/bits"
	"github.com/retroenv/retrolift/internal/decoder"
	"github.com/retroenv/retrolift/internal/machine"
	"github.com/retroenv/retrolift/internal/types"
)

type mutator = decoder.Mutator[uint32, *Disassembler]

func (d *Disassembler) add(op machine.Operand) bool {
	d.ops = append(d.ops, op)
	return true
}

func read(f bits.Field, word uint32) uint64 {
	return uint64(bits.Read(f, word))
}

// gp decodes a general register.
func gp(position int) mutator {
	field := bits.New(position, 5)
	return func(word uint32, d *Disassembler) bool {
		return d.add(machine.RegisterOperand{Register: d.regs.GP[read(field, word)]})
	}
}

var (
	rs = gp(21)
	rt = gp(16)
	rd = gp(11)
)

// fpr decodes a floating point register.
func fpr(position int) mutator {
	field := bits.New(position, 5)
	return func(word uint32, d *Disassembler) bool {
		return d.add(machine.RegisterOperand{Register: d.regs.FP[read(field, word)]})
	}
}

var (
	fr = fpr(21)
	ft = fpr(16)
	fs = fpr(11)
	fd = fpr(6)
)

// fcc decodes a floating point condition code.
func fcc(position int) mutator {
	field := bits.New(position, 3)
	return func(word uint32, d *Disassembler) bool {
		return d.add(machine.RegisterOperand{Register: d.regs.FCC[read(field, word)]})
	}
}

func fcr(word uint32, d *Disassembler) bool {
	return d.add(machine.RegisterOperand{Register: d.regs.FCR[read(rdField, word)]})
}

func cp0(word uint32, d *Disassembler) bool {
	return d.add(machine.RegisterOperand{Register: d.regs.CP0[read(rdField, word)]})
}

var (
	rdField  = bits.New(11, 5)
	immField = bits.New(0, 16)
)

// u decodes an unsigned immediate.
func u(position, length int, dt *types.PrimitiveType) mutator {
	field := bits.New(position, length)
	return func(word uint32, d *Disassembler) bool {
		return d.add(machine.Immediate(dt, read(field, word)))
	}
}

func u8(position, length int) mutator { return u(position, length, types.Byte) }

var (
	shamt  = u8(6, 5)
	uimm16 = u(0, 16, types.Word16)
	code20 = u(6, 20, types.Word32)
)

func simm16(word uint32, d *Disassembler) bool {
	return d.add(machine.SignedImmediate(types.Int16, bits.ReadSigned(immField, word)))
}

// mem decodes a base register plus signed 16 bit displacement access.
func mem(dt *types.PrimitiveType) mutator {
	baseField := bits.New(21, 5)
	return func(word uint32, d *Disassembler) bool {
		return d.add(machine.MemoryOperand{
			Type:   dt,
			Base:   d.regs.GP[read(baseField, word)],
			Offset: bits.ReadSigned(immField, word),
		})
	}
}

// idx decodes the base plus index register access of the COP1X loads and
// stores.
func idx(dt *types.PrimitiveType) mutator {
	baseField := bits.New(21, 5)
	indexField := bits.New(16, 5)
	return func(word uint32, d *Disassembler) bool {
		return d.add(machine.IndexedOperand{
			Type:  dt,
			Base:  d.regs.GP[read(baseField, word)],
			Index: d.regs.GP[read(indexField, word)],
		})
	}
}

// pcRel decodes a branch target relative to the delay slot.
func pcRel(word uint32, d *Disassembler) bool {
	offset := bits.ReadSigned(immField, word) << 2
	return d.add(machine.AddressOperand{Address: d.addr.Add(offset + instructionSize), Type: d.regs.Ptr})
}

var targetField = bits.New(0, 26)

// jTarget decodes the absolute target of j and jal, it replaces the lower
// 28 bits of the delay slot address.
func jTarget(word uint32, d *Disassembler) bool {
	region := uint64(d.addr.Add(instructionSize)) &^ 0x0FFF_FFFF
	target := region | read(targetField, word)<<2
	return d.add(machine.AddressOperand{Address: machine.Address(target), Type: d.regs.Ptr})
}

// is64 rejects doubleword instructions in 32 bit mode.
func is64(_ uint32, d *Disassembler) bool {
	return d.wide
}

var (
	posField = bits.New(6, 5)
	msbField = bits.New(11, 5)
)

// extSize decodes the field size of ext, encoded as size-1.
func extSize(word uint32, d *Disassembler) bool {
	pos := read(posField, word)
	size := read(msbField, word) + 1
	if pos+size > 32 {
		return false
	}
	return d.add(machine.Immediate(types.Byte, size))
}

// insSize decodes the field size of ins, encoded as the most significant bit.
func insSize(word uint32, d *Disassembler) bool {
	pos := read(posField, word)
	msb := read(msbField, word)
	if msb < pos {
		return false
	}
	return d.add(machine.Immediate(types.Byte, msb-pos+1))
}

func eq0(v uint32) bool { return v == 0 }
