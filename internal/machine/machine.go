// Package machine contains the architecture independent model of decoded
// machine instructions: addresses, registers, operands and instruction classes.
package machine

import (
	"fmt"

	"github.com/retroenv/retrolift/internal/types"
)

// Address is a linear address in the memory image.
type Address uint64

func (a Address) String() string {
	return fmt.Sprintf("%08X", uint64(a))
}

// Add returns the address displaced by offset bytes.
func (a Address) Add(offset int64) Address {
	return Address(int64(a) + offset)
}

// RegisterKind groups registers of an architecture.
type RegisterKind uint8

// Register kinds.
const (
	GeneralPurpose RegisterKind = iota
	FloatingPoint
	SpaceRegister
	ControlRegister
	SpecialRegister
)

// Register is a processor register. Registers are created once per
// architecture and compared by pointer.
type Register struct {
	Name     string
	Number   int
	Kind     RegisterKind
	DataType *types.PrimitiveType
}

func (r *Register) String() string {
	return r.Name
}

// Instruction is a decoded machine instruction.
type Instruction interface {
	fmt.Stringer

	// Address returns the address of the instruction.
	Address() Address
	// Length returns the number of bytes the instruction occupies.
	Length() int
	// Class returns the instruction class.
	Class() InstrClass
	// MnemonicString returns the opcode as text.
	MnemonicString() string
	// Operands returns the ordered operand list.
	Operands() []Operand
}

// Registers creates count numbered registers named with the given format.
func Registers(format string, count int, kind RegisterKind, dt *types.PrimitiveType) []*Register {
	regs := make([]*Register, count)
	for i := range regs {
		regs[i] = &Register{
			Name:     fmt.Sprintf(format, i),
			Number:   i,
			Kind:     kind,
			DataType: dt,
		}
	}
	return regs
}
