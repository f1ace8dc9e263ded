package parisc

import (
	"strings"

	"github.com/retroenv/retrolift/internal/machine"
)

// SignExtension is the sign completer of extract instructions.
type SignExtension uint8

// Sign completers.
const (
	NoSign SignExtension = iota
	Unsigned
	Signed
)

// BaseRegMod is the base register modification completer of memory accesses.
type BaseRegMod uint8

// Base register modifications. ModifyAfter (ma) accesses memory at the base
// and then adds the displacement to the base, ModifyBefore (mb) updates the
// base first. Ordered (o) accesses without modification.
const (
	NoMod BaseRegMod = iota
	ModifyAfter
	ModifyBefore
	Ordered
)

// FpFormat is the floating point format completer.
type FpFormat uint8

// Floating point formats.
const (
	NoFormat FpFormat = iota
	Single
	Double
	Quad
)

var (
	signNames    = [...]string{"", "u", "s"}
	baseModNames = [...]string{"", "ma", "mb", "o"}
	formatNames  = [...]string{"", "sgl", "dbl", "quad"}
)

// Instruction is a decoded PA-RISC instruction.
type Instruction struct {
	address  machine.Address
	length   int
	class    machine.InstrClass
	operands []machine.Operand
	stub     bool // decoded by a not yet implemented decoder

	Opcode      Opcode
	Condition   *Condition // nil if the instruction never nullifies or branches
	Annul       bool
	Zero        bool
	Sign        SignExtension
	BaseReg     BaseRegMod
	FpFormat    FpFormat
	Coprocessor int // -1 if not a coprocessor instruction
}

var _ machine.Instruction = (*Instruction)(nil)

// Address returns the address of the instruction.
func (i *Instruction) Address() machine.Address { return i.address }

// Length returns the instruction length in bytes.
func (i *Instruction) Length() int { return i.length }

// Class returns the instruction class.
func (i *Instruction) Class() machine.InstrClass { return i.class }

// MnemonicString returns the opcode name.
func (i *Instruction) MnemonicString() string { return i.Opcode.String() }

// Operands returns the ordered operands.
func (i *Instruction) Operands() []machine.Operand { return i.operands }

// IsStub returns whether the instruction was created by a decoder that is
// not implemented yet. Stub instructions have no operands.
func (i *Instruction) IsStub() bool { return i.stub }

// String renders the instruction in assembler syntax with its completers.
func (i *Instruction) String() string {
	var sb strings.Builder
	sb.WriteString(i.Opcode.Display())
	completer := func(s string) {
		if s != "" {
			sb.WriteByte(',')
			sb.WriteString(s)
		}
	}
	if i.Zero {
		completer("z")
	}
	completer(signNames[i.Sign])
	completer(formatNames[i.FpFormat])
	completer(baseModNames[i.BaseReg])
	if i.Condition != nil {
		completer(i.Condition.Display)
	}
	if i.Annul {
		completer("n")
	}

	for j, op := range i.operands {
		if j == 0 {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(',')
		}
		sb.WriteString(op.String())
	}
	return sb.String()
}
