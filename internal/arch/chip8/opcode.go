package chip8

import (
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// opcodeSize is the size of CHIP-8 instructions in bytes.
const opcodeSize = 2

// Opcode identifies one encoding form of a CHIP-8 instruction. Several forms
// share a mnemonic, ld alone has eleven.
type Opcode uint8

// Opcodes.
const (
	OpInvalid Opcode = iota
	OpSys
	OpCls
	OpRet
	OpJp
	OpJpV0
	OpCall
	OpSeImm
	OpSneImm
	OpSeReg
	OpSneReg
	OpLdImm
	OpAddImm
	OpLdReg
	OpOr
	OpAnd
	OpXor
	OpAddReg
	OpSub
	OpShr
	OpSubn
	OpShl
	OpLdI
	OpRnd
	OpDrw
	OpSkp
	OpSknp
	OpLdVxDT
	OpLdVxK
	OpLdDTVx
	OpLdSTVx
	OpAddIVx
	OpLdFVx
	OpLdBVx
	OpStoreRegs
	OpLoadRegs
	opcodeCount
)

// mnemonics maps the forms to the instruction definitions of the CPU
// package. Forms without an entry are not part of the instruction table.
var mnemonics = [opcodeCount]*chip8.Instruction{
	OpCls:       chip8.ClsInst,
	OpRet:       chip8.RetInst,
	OpJp:        chip8.JpInst,
	OpJpV0:      chip8.JpInst,
	OpCall:      chip8.CallInst,
	OpSeImm:     chip8.SeInst,
	OpSneImm:    chip8.SneInst,
	OpSeReg:     chip8.SeInst,
	OpSneReg:    chip8.SneInst,
	OpLdImm:     chip8.LdInst,
	OpAddImm:    chip8.AddInst,
	OpLdReg:     chip8.LdInst,
	OpOr:        chip8.OrInst,
	OpAnd:       chip8.AndInst,
	OpXor:       chip8.XorInst,
	OpAddReg:    chip8.AddInst,
	OpSub:       chip8.SubInst,
	OpShr:       chip8.ShrInst,
	OpSubn:      chip8.SubnInst,
	OpShl:       chip8.ShlInst,
	OpLdI:       chip8.LdInst,
	OpRnd:       chip8.RndInst,
	OpDrw:       chip8.DrwInst,
	OpSkp:       chip8.SkpInst,
	OpSknp:      chip8.SknpInst,
	OpLdVxDT:    chip8.LdInst,
	OpLdVxK:     chip8.LdInst,
	OpLdDTVx:    chip8.LdInst,
	OpLdSTVx:    chip8.LdInst,
	OpAddIVx:    chip8.AddInst,
	OpLdFVx:     chip8.LdInst,
	OpLdBVx:     chip8.LdInst,
	OpStoreRegs: chip8.LdInst,
	OpLoadRegs:  chip8.LdInst,
}

// Instruction returns the instruction definition of the form, nil for
// invalid and sys.
func (o Opcode) Instruction() *chip8.Instruction {
	if o >= opcodeCount {
		return nil
	}
	return mnemonics[o]
}

// String returns the mnemonic.
func (o Opcode) String() string {
	if ins := o.Instruction(); ins != nil {
		return ins.Name
	}
	if o == OpSys {
		return "sys"
	}
	return "invalid"
}

// ReadsMemory returns whether the form reads from main memory.
func (o Opcode) ReadsMemory() bool {
	switch o {
	case OpDrw, OpLoadRegs:
		return true
	default:
		return false
	}
}

// WritesMemory returns whether the form writes to main memory.
func (o Opcode) WritesMemory() bool {
	switch o {
	case OpLdBVx, OpStoreRegs:
		return true
	default:
		return false
	}
}

// IsSkip returns whether the form skips the next instruction on a condition.
func (o Opcode) IsSkip() bool {
	ins := o.Instruction()
	return ins != nil && chip8.SkipInstructions.Contains(ins.Name)
}
