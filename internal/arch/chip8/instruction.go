package chip8

import (
	"fmt"
	"strings"

	"github.com/retroenv/retrolift/internal/machine"
)

// Instruction is a decoded CHIP-8 instruction.
type Instruction struct {
	address  machine.Address
	class    machine.InstrClass
	operands []machine.Operand
	stub     bool

	Opcode Opcode
}

var _ machine.Instruction = (*Instruction)(nil)

// Address returns the address of the instruction.
func (i *Instruction) Address() machine.Address { return i.address }

// Length returns the instruction length in bytes.
func (i *Instruction) Length() int { return opcodeSize }

// Class returns the instruction class.
func (i *Instruction) Class() machine.InstrClass { return i.class }

// MnemonicString returns the opcode name.
func (i *Instruction) MnemonicString() string { return i.Opcode.String() }

// Operands returns the ordered operands.
func (i *Instruction) Operands() []machine.Operand { return i.operands }

// IsStub returns whether the instruction was created by a decoder that is
// not implemented yet.
func (i *Instruction) IsStub() bool { return i.stub }

// IsCall returns whether the instruction calls a subroutine.
func (i *Instruction) IsCall() bool { return i.Opcode == OpCall }

// IsJump returns whether the instruction is an unconditional jump.
func (i *Instruction) IsJump() bool { return i.Opcode == OpJp || i.Opcode == OpJpV0 }

// IsReturn returns whether the instruction returns from a subroutine.
func (i *Instruction) IsReturn() bool { return i.Opcode == OpRet }

// keywordLayouts place operands between the fixed keywords of a form.
var keywordLayouts = map[Opcode]string{
	OpLdVxK:     "%s, K",
	OpLdFVx:     "F, %s",
	OpLdBVx:     "B, %s",
	OpStoreRegs: "[I], %s",
	OpLoadRegs:  "%s, [I]",
}

func (i *Instruction) String() string {
	params := make([]string, len(i.operands))
	for j, op := range i.operands {
		params[j] = formatOperand(op)
	}
	if len(params) == 0 {
		return i.Opcode.String()
	}

	joined := strings.Join(params, ", ")
	if layout, ok := keywordLayouts[i.Opcode]; ok {
		joined = fmt.Sprintf(layout, joined)
	}
	return i.Opcode.String() + " " + joined
}

func formatOperand(op machine.Operand) string {
	switch op := op.(type) {
	case machine.AddressOperand:
		return fmt.Sprintf("$%03X", uint64(op.Address))
	case machine.ImmediateOperand:
		if op.Type.BitSize < 8 {
			return fmt.Sprintf("$%X", op.Value)
		}
		return fmt.Sprintf("$%02X", op.Value)
	default:
		return op.String()
	}
}
