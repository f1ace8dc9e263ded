package mips

import (
	"strings"

	"github.com/retroenv/retrolift/internal/machine"
)

// Instruction is a decoded MIPS instruction.
type Instruction struct {
	address  machine.Address
	length   int
	class    machine.InstrClass
	operands []machine.Operand
	stub     bool

	Opcode Opcode
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
// not implemented yet.
func (i *Instruction) IsStub() bool { return i.stub }

func (i *Instruction) String() string {
	var sb strings.Builder
	sb.WriteString(i.Opcode.Display())
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
