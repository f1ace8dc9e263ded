package parisc

import (
	"fmt"

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

// u decodes an unsigned immediate.
func u(position, length int, dt *types.PrimitiveType) mutator {
	field := beField(position, length)
	return func(word uint32, d *Disassembler) bool {
		return d.add(machine.Immediate(dt, read(field, word)))
	}
}

func u8(position, length int) mutator { return u(position, length, types.Byte) }
func u16(position, length int) mutator { return u(position, length, types.Word16) }

// uFrom decodes base minus the field value, used by bit positions that
// count from the other end of the word.
func uFrom(base uint64, position, length int) mutator {
	field := beField(position, length)
	return func(word uint32, d *Disassembler) bool {
		return d.add(machine.Immediate(types.Byte, base-read(field, word)))
	}
}

// uPerm decodes an unsigned immediate assembled from several fields.
func uPerm(fields []bits.Field, perm permutation) mutator {
	return func(word uint32, d *Disassembler) bool {
		return d.add(machine.Immediate(types.Word32, perm(word, fields, d.wide)))
	}
}

// left decodes an immediate that is shifted into the upper bits of a word.
func left(fields []bits.Field, perm permutation, shift int) mutator {
	return func(word uint32, d *Disassembler) bool {
		return d.add(machine.LeftImmediateOperand{Value: uint32(perm(word, fields, d.wide) << uint(shift))})
	}
}

// s decodes a signed immediate.
func s(position, length int, dt *types.PrimitiveType) mutator {
	field := beField(position, length)
	return func(word uint32, d *Disassembler) bool {
		return d.add(machine.SignedImmediate(dt, bits.ReadSigned(field, word)))
	}
}

// sPerm decodes a signed immediate whose permutation already sign extends.
func sPerm(dt *types.PrimitiveType, fields []bits.Field, perm permutation) mutator {
	return func(word uint32, d *Disassembler) bool {
		return d.add(machine.Immediate(dt, perm(word, fields, d.wide)))
	}
}

// lse decodes a "low sign extended" immediate: the least significant bit
// of the field is the sign bit.
func lse(position, length int) mutator {
	fields := beFields(position+length-1, 1, position, length-1)
	return func(word uint32, d *Disassembler) bool {
		return d.add(machine.SignedImmediate(d.regs.Signed, bits.ReadSignedFields(fields, word)))
	}
}

// r decodes a general register.
func r(position int) mutator {
	field := beField(position, 5)
	return func(word uint32, d *Disassembler) bool {
		return d.add(machine.RegisterOperand{Register: d.regs.GP[read(field, word)]})
	}
}

var (
	r6  = r(6)
	r11 = r(11)
	r27 = r(27)
)

// fr decodes a double precision floating point register.
func fr(position int) mutator {
	field := beField(position, 5)
	return func(word uint32, d *Disassembler) bool {
		return d.add(machine.RegisterOperand{Register: d.regs.FP[read(field, word)]})
	}
}

var (
	fr6  = fr(6)
	fr11 = fr(11)
	fr27 = fr(27)
)

// frsng decodes a single precision register half, the last field selects
// the right half.
func frsng(positionLength ...int) mutator {
	fields := beFields(positionLength...)
	return func(word uint32, d *Disassembler) bool {
		return d.add(machine.RegisterOperand{Register: d.regs.FP32[bits.ReadFields(fields, word)]})
	}
}

// reg adds a fixed general register.
func reg(number int) mutator {
	return func(_ uint32, d *Disassembler) bool {
		return d.add(machine.RegisterOperand{Register: d.regs.GP[number]})
	}
}

// sr decodes a 3 bit space register.
func sr(position int) mutator {
	field := beField(position, 3)
	return func(word uint32, d *Disassembler) bool {
		return d.add(machine.RegisterOperand{Register: d.regs.Space[read(field, word)]})
	}
}

// cf decodes a condition completer from a table. A nil table entry is an
// invalid encoding, the never condition leaves the completer unset.
func cf(position, length int, conditions []*Condition) mutator {
	if len(conditions) != 1<<uint(length) {
		panic(fmt.Sprintf("%v: condition table %d:%d has %d entries",
			decoder.ErrConfiguration, position, length, len(conditions)))
	}
	field := beField(position, length)
	return func(word uint32, d *Disassembler) bool {
		c := conditions[read(field, word)]
		if c == nil {
			return false
		}
		if c.Type != Never {
			d.cond = c
		}
		return true
	}
}

// cfMode selects the condition table by processor mode.
func cfMode(narrow, wide mutator) mutator {
	return func(word uint32, d *Disassembler) bool {
		if d.wide {
			return wide(word, d)
		}
		return narrow(word, d)
	}
}

var (
	cf16CmpSub        = cf(16, 4, cmpSubConditions)
	cf16Add           = cf(16, 4, addConditions)
	cf16Add64         = cf(16, 4, add64Conditions)
	cf16Log           = cf(16, 4, logConditions)
	cf16Cmp32True     = cf(16, 3, cmp32TrueConditions)
	cf16Cmp32False    = cf(16, 3, cmp32FalseConditions)
	cf16ShExt         = cf(16, 3, shiftExtractConditions)
	cf16Add3          = cf(16, 3, add3Conditions)
	cf16Add3Neg       = cf(16, 3, add3NegConditions)
	cfAddBitSize      = cfMode(cf16Add3, cf(16, 3, add3Conditions64))
	cfAddBitSizeNeg   = cfMode(cf16Add3Neg, cf(16, 3, add3NegConditions64))
	cf27FloatingPoint = cf(27, 5, fpConditions)
)

// Fields selecting the base register modification of memory accesses.
var amFields = beFields(18, 1, 26, 1)

var baseRegMods = [...]BaseRegMod{NoMod, ModifyAfter, NoMod, ModifyBefore}

func displacement(word uint32, fields []bits.Field, perm permutation, wide bool) int64 {
	return bits.SignExtend(perm(word, fields, wide), bits.TotalLength(fields))
}

// mem decodes a base register with a displacement.
func mem(dt *types.PrimitiveType, basePosition int, dispFields []bits.Field, perm permutation) mutator {
	baseField := beField(basePosition, 5)
	return func(word uint32, d *Disassembler) bool {
		return d.add(machine.MemoryOperand{
			Type:   dt,
			Base:   d.regs.GP[read(baseField, word)],
			Offset: displacement(word, dispFields, perm, d.wide),
		})
	}
}

// modifyByDisplacement sets the base modification from the displacement
// sign: a positive displacement modifies after, others before the access.
func modifyByDisplacement(dispFields []bits.Field, perm permutation) mutator {
	return func(word uint32, d *Disassembler) bool {
		if displacement(word, dispFields, perm, d.wide) > 0 {
			d.baseReg = ModifyAfter
		} else {
			d.baseReg = ModifyBefore
		}
		return true
	}
}

var (
	shortDispField  = beField(11, 5)
	shortBaseField  = beField(6, 5)
	shortSpaceField = beField(16, 2)
	shortDispFields = []bits.Field{shortDispField}
)

// memShort decodes the short displacement form with a space register.
func memShort(dt *types.PrimitiveType) mutator {
	return func(word uint32, d *Disassembler) bool {
		return d.add(machine.MemoryOperand{
			Type:   dt,
			Base:   d.regs.GP[read(shortBaseField, word)],
			Offset: displacement(word, shortDispFields, lowSignExt5, d.wide),
			Space:  d.regs.Space[read(shortSpaceField, word)],
		})
	}
}

// modifyShort decodes the base modification of short displacement accesses.
func modifyShort(word uint32, d *Disassembler) bool {
	am := bits.ReadFields(amFields, word)
	if am == 1 && displacement(word, shortDispFields, lowSignExt5, d.wide) == 0 {
		d.baseReg = Ordered
	} else {
		d.baseReg = baseRegMods[am]
	}
	return true
}

// memShifted decodes a displacement that is scaled by the access size.
func memShifted(dt *types.PrimitiveType, dispFields []bits.Field, perm permutation, basePosition, spacePosition int) mutator {
	baseField := beField(basePosition, 5)
	spaceField := beField(spacePosition, 2)
	return func(word uint32, d *Disassembler) bool {
		return d.add(machine.MemoryOperand{
			Type:   dt,
			Base:   d.regs.GP[read(baseField, word)],
			Offset: displacement(word, dispFields, perm, d.wide) * int64(dt.Size()),
			Space:  d.regs.Space[read(spaceField, word)],
		})
	}
}

// indexed decodes a base register plus index register access.
func indexed(dt *types.PrimitiveType, basePosition, indexPosition int) mutator {
	baseField := beField(basePosition, 5)
	indexField := beField(indexPosition, 5)
	return func(word uint32, d *Disassembler) bool {
		return d.add(machine.IndexedOperand{
			Type:  dt,
			Base:  d.regs.GP[read(baseField, word)],
			Index: d.regs.GP[read(indexField, word)],
		})
	}
}

// indexedSpace decodes an indexed access qualified by a space register.
func indexedSpace(dt *types.PrimitiveType, basePosition, indexPosition, spacePosition int) mutator {
	baseField := beField(basePosition, 5)
	indexField := beField(indexPosition, 5)
	spaceField := beField(spacePosition, 2)
	return func(word uint32, d *Disassembler) bool {
		return d.add(machine.IndexedOperand{
			Type:  dt,
			Base:  d.regs.GP[read(baseField, word)],
			Index: d.regs.GP[read(indexField, word)],
			Space: d.regs.Space[read(spaceField, word)],
		})
	}
}

// modifyIndexed decodes the base modification of indexed accesses.
func modifyIndexed(indexPosition int) mutator {
	indexField := beField(indexPosition, 5)
	return func(word uint32, d *Disassembler) bool {
		am := bits.ReadFields(amFields, word)
		if am == 1 && read(indexField, word) == 0 {
			d.baseReg = Ordered
		} else {
			d.baseReg = baseRegMods[am]
		}
		return true
	}
}

// pcRel decodes a word displacement relative to the instruction address
// plus 8.
func pcRel(perm permutation, fields []bits.Field) mutator {
	return func(word uint32, d *Disassembler) bool {
		offset := displacement(word, fields, perm, d.wide)*4 + 8
		return d.add(machine.AddressOperand{Address: d.addr.Add(offset), Type: d.regs.Ptr})
	}
}

// annul decodes the nullify completer.
func annul(position int) mutator {
	return func(word uint32, d *Disassembler) bool {
		d.annul = bits.IsBitSet(word, wordBits-1-position)
		return true
	}
}

// cop decodes the coprocessor id.
func cop(position, length int) mutator {
	field := beField(position, length)
	return func(word uint32, d *Disassembler) bool {
		d.coprocessor = int(read(field, word))
		return true
	}
}

// zeroCompleter decodes the z completer, set when the bit is clear.
func zeroCompleter(position int) mutator {
	field := beField(position, 1)
	return func(word uint32, d *Disassembler) bool {
		d.zero = read(field, word) == 0
		return true
	}
}

// se decodes the sign completer.
func se(position int) mutator {
	field := beField(position, 1)
	return func(word uint32, d *Disassembler) bool {
		if read(field, word) == 0 {
			d.sign = Unsigned
		} else {
			d.sign = Signed
		}
		return true
	}
}

var fpFormatField = beField(19, 2)

// fpFmt decodes the floating point format, 2 is reserved.
func fpFmt(word uint32, d *Disassembler) bool {
	switch read(fpFormatField, word) {
	case 0:
		d.fpFormat = Single
	case 1:
		d.fpFormat = Double
	case 3:
		d.fpFormat = Quad
	default:
		return false
	}
	return true
}

func eq0(v uint32) bool { return v == 0 }

func isFpuProcessor(v uint32) bool { return v&^1 == 0 }
