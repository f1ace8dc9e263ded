package machine

import (
	"fmt"
	"strings"

	"github.com/retroenv/retrolift/internal/types"
)

// Operand is an operand of a decoded instruction. The set of implementations
// is closed; operands are immutable once constructed.
type Operand interface {
	fmt.Stringer

	// DataType returns the semantic width and type of the operand.
	DataType() *types.PrimitiveType

	operand()
}

// RegisterOperand references a register.
type RegisterOperand struct {
	Register *Register
}

// ImmediateOperand is a constant encoded in the instruction.
type ImmediateOperand struct {
	Type  *types.PrimitiveType
	Value uint64 // truncated to the bit size of Type
}

// MemoryOperand is a memory access at a signed displacement from a base
// register, optionally qualified by a space or segment register.
type MemoryOperand struct {
	Type   *types.PrimitiveType
	Base   *Register
	Offset int64
	Space  *Register // nil if not qualified
}

// IndexedOperand is a memory access at base register plus index register,
// optionally qualified by a space or segment register.
type IndexedOperand struct {
	Type  *types.PrimitiveType
	Base  *Register
	Index *Register
	Space *Register // nil if not qualified
}

// AddressOperand is an absolute or resolved PC relative target address.
type AddressOperand struct {
	Address Address
	Type    *types.PrimitiveType
}

// LeftImmediateOperand is an immediate that is already shifted into the
// upper part of a word.
type LeftImmediateOperand struct {
	Value uint32
}

// Immediate creates an immediate operand, truncating the value to the type.
func Immediate(dt *types.PrimitiveType, value uint64) ImmediateOperand {
	if dt.BitSize < 64 {
		value &= 1<<uint(dt.BitSize) - 1
	}
	return ImmediateOperand{Type: dt, Value: value}
}

// SignedImmediate creates an immediate operand from a signed value.
func SignedImmediate(dt *types.PrimitiveType, value int64) ImmediateOperand {
	return Immediate(dt, uint64(value))
}

// Signed returns the value sign extended from the operand width.
func (o ImmediateOperand) Signed() int64 {
	if o.Type.BitSize >= 64 {
		return int64(o.Value)
	}
	shift := uint(64 - o.Type.BitSize)
	return int64(o.Value<<shift) >> shift
}

func (o RegisterOperand) DataType() *types.PrimitiveType      { return o.Register.DataType }
func (o ImmediateOperand) DataType() *types.PrimitiveType     { return o.Type }
func (o MemoryOperand) DataType() *types.PrimitiveType        { return o.Type }
func (o IndexedOperand) DataType() *types.PrimitiveType       { return o.Type }
func (o AddressOperand) DataType() *types.PrimitiveType       { return o.Type }
func (o LeftImmediateOperand) DataType() *types.PrimitiveType { return types.Word32 }

func (RegisterOperand) operand()      {}
func (ImmediateOperand) operand()     {}
func (MemoryOperand) operand()        {}
func (IndexedOperand) operand()       {}
func (AddressOperand) operand()       {}
func (LeftImmediateOperand) operand() {}

func (o RegisterOperand) String() string {
	return o.Register.Name
}

func (o ImmediateOperand) String() string {
	if o.Type.Domain == types.Signed {
		return fmt.Sprintf("%d", o.Signed())
	}
	return fmt.Sprintf("0x%X", o.Value)
}

func (o MemoryOperand) String() string {
	var sb strings.Builder
	if o.Offset != 0 {
		fmt.Fprintf(&sb, "%d", o.Offset)
	}
	sb.WriteByte('(')
	if o.Space != nil {
		sb.WriteString(o.Space.Name)
		sb.WriteByte(',')
	}
	sb.WriteString(o.Base.Name)
	sb.WriteByte(')')
	return sb.String()
}

func (o IndexedOperand) String() string {
	if o.Space != nil {
		return fmt.Sprintf("%s(%s,%s)", o.Index.Name, o.Space.Name, o.Base.Name)
	}
	return fmt.Sprintf("%s(%s)", o.Index.Name, o.Base.Name)
}

func (o AddressOperand) String() string {
	return o.Address.String()
}

func (o LeftImmediateOperand) String() string {
	return fmt.Sprintf("L%%0x%X", o.Value)
}
