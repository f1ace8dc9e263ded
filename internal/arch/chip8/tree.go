package chip8

import (
	"github.com/retroenv/retrolift/internal/bits"
	"github.com/retroenv/retrolift/internal/decoder"
	"github.com/retroenv/retrolift/internal/machine"
	"github.com/retroenv/retrolift/internal/types"
)

type (
	node     = decoder.Decoder[uint16, *Disassembler, *Instruction, Opcode]
	override = decoder.Override[uint16, *Disassembler, *Instruction, Opcode]
	mutator  = decoder.Mutator[uint16, *Disassembler]
)

const (
	transfer = machine.Transfer
	call     = machine.Transfer | machine.Call
	skip     = machine.ConditionalTransfer
)

func (d *Disassembler) add(op machine.Operand) bool {
	d.ops = append(d.ops, op)
	return true
}

func register(position int) mutator {
	field := bits.New(position, 4)
	return func(word uint16, d *Disassembler) bool {
		return d.add(machine.RegisterOperand{Register: V[bits.Read(field, word)]})
	}
}

var (
	vx = register(8)
	vy = register(4)
)

// fixed adds a register that is implied by the form.
func fixed(reg *machine.Register) mutator {
	return func(_ uint16, d *Disassembler) bool {
		return d.add(machine.RegisterOperand{Register: reg})
	}
}

var nibble = types.Word(4)

func kk(word uint16, d *Disassembler) bool {
	return d.add(machine.Immediate(types.Byte, uint64(word&0xFF)))
}

func height(word uint16, d *Disassembler) bool {
	return d.add(machine.Immediate(nibble, uint64(word&0xF)))
}

func nnn(word uint16, d *Disassembler) bool {
	return d.add(machine.AddressOperand{Address: machine.Address(word & 0xFFF), Type: types.Ptr16})
}

func instr(opcode Opcode, mutators ...mutator) node {
	return instrClass(opcode, machine.Linear, mutators...)
}

func instrClass(opcode Opcode, class machine.InstrClass, mutators ...mutator) node {
	return decoder.Instr[uint16, *Disassembler, *Instruction, Opcode](opcode, class, mutators...)
}

func sparse(position, length int, tag string, defaultDecoder node, overrides ...override) node {
	return decoder.Sparse(bits.New(position, length), tag, defaultDecoder, overrides...)
}

func condition(position, length int, predicate func(uint16) bool, whenTrue, whenFalse node) node {
	return decoder.Cond(bits.New(position, length), predicate, whenTrue, whenFalse)
}

func nyi(opcode Opcode, message string) node {
	return decoder.Nyi[uint16, *Disassembler, *Instruction, Opcode](opcode, message)
}

func eq0(v uint16) bool { return v == 0 }

var rootDecoder = newRootDecoder()

// Tree returns the root of the CHIP-8 decoder tree.
func Tree() decoder.Decoder[uint16, *Disassembler, *Instruction, Opcode] {
	return rootDecoder
}

func newRootDecoder() node {
	invalid := instrClass(OpInvalid, machine.Invalid)
	sys := nyi(OpSys, "")

	system := condition(8, 4, eq0,
		sparse(0, 8, "system", sys,
			override{0xE0, instr(OpCls)},
			override{0xEE, instrClass(OpRet, transfer)}),
		sys)

	alu := sparse(0, 4, "alu", invalid,
		override{0x0, instr(OpLdReg, vx, vy)},
		override{0x1, instr(OpOr, vx, vy)},
		override{0x2, instr(OpAnd, vx, vy)},
		override{0x3, instr(OpXor, vx, vy)},
		override{0x4, instr(OpAddReg, vx, vy)},
		override{0x5, instr(OpSub, vx, vy)},
		override{0x6, instr(OpShr, vx)},
		override{0x7, instr(OpSubn, vx, vy)},
		override{0xE, instr(OpShl, vx)})

	keys := sparse(0, 8, "keys", invalid,
		override{0x9E, instrClass(OpSkp, skip, vx)},
		override{0xA1, instrClass(OpSknp, skip, vx)})

	misc := sparse(0, 8, "misc", invalid,
		override{0x07, instr(OpLdVxDT, vx, fixed(DT))},
		override{0x0A, instr(OpLdVxK, vx)},
		override{0x15, instr(OpLdDTVx, fixed(DT), vx)},
		override{0x18, instr(OpLdSTVx, fixed(ST), vx)},
		override{0x1E, instr(OpAddIVx, fixed(I), vx)},
		override{0x29, instr(OpLdFVx, vx)},
		override{0x33, instr(OpLdBVx, vx)},
		override{0x55, instr(OpStoreRegs, vx)},
		override{0x65, instr(OpLoadRegs, vx)})

	return decoder.Mask(bits.New(12, 4), "opcode",
		system,
		instrClass(OpJp, transfer, nnn),
		instrClass(OpCall, call, nnn),
		instrClass(OpSeImm, skip, vx, kk),
		instrClass(OpSneImm, skip, vx, kk),
		sparse(0, 4, "se", invalid, override{0x0, instrClass(OpSeReg, skip, vx, vy)}),
		instr(OpLdImm, vx, kk),
		instr(OpAddImm, vx, kk),
		alu,
		sparse(0, 4, "sne", invalid, override{0x0, instrClass(OpSneReg, skip, vx, vy)}),
		instr(OpLdI, fixed(I), nnn),
		instrClass(OpJpV0, transfer, fixed(V[0]), nnn),
		instr(OpRnd, vx, kk),
		instr(OpDrw, vx, vy, height),
		keys,
		misc,
	)
}
