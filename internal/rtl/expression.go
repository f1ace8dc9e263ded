// Package rtl contains the register transfer language that machine
// instructions are lifted to: expressions, operations and clusters.
package rtl

import (
	"fmt"
	"math"
	"strings"

	"github.com/retroenv/retrolift/internal/machine"
	"github.com/retroenv/retrolift/internal/types"
)

// Expression is a side effect free value computation.
type Expression interface {
	fmt.Stringer

	// DataType returns the type of the value of the expression.
	DataType() *types.PrimitiveType

	expression()
}

// Constant is a literal value.
type Constant struct {
	Type  *types.PrimitiveType
	Value uint64 // truncated to the bit size of Type
}

// StorageKind describes where the value of an identifier lives.
type StorageKind uint8

// Storage kinds.
const (
	RegisterStorage StorageKind = iota
	SequenceStorage
	TemporaryStorage
	FlagStorage
)

// Identifier is a named storage location.
type Identifier struct {
	Name     string
	Type     *types.PrimitiveType
	Kind     StorageKind
	Register *machine.Register   // set for RegisterStorage
	Elements []*machine.Register // set for SequenceStorage, most significant first
}

// Address is a code or data address constant.
type Address struct {
	Value machine.Address
	Type  *types.PrimitiveType
}

// MemoryAccess reads or writes memory at an effective address.
type MemoryAccess struct {
	Type             *types.PrimitiveType
	EffectiveAddress Expression
}

// BinaryExpression combines two expressions with an operator.
type BinaryExpression struct {
	Operator Operator
	Type     *types.PrimitiveType
	Left     Expression
	Right    Expression
}

// UnaryExpression applies an operator to one expression.
type UnaryExpression struct {
	Operator UnaryOperator
	Type     *types.PrimitiveType
	Operand  Expression
}

// Conversion converts a value between two types.
type Conversion struct {
	Expression Expression
	From       *types.PrimitiveType
	To         *types.PrimitiveType
}

// Slice extracts bits starting at Offset from an expression.
type Slice struct {
	Type       *types.PrimitiveType
	Expression Expression
	Offset     int
}

// Intrinsic is a named operation without a direct RTL representation.
type Intrinsic struct {
	Name          string
	HasSideEffect bool
	ReturnType    *types.PrimitiveType
}

// Application applies an intrinsic to arguments.
type Application struct {
	Intrinsic *Intrinsic
	Type      *types.PrimitiveType
	Arguments []Expression
}

// Sequence concatenates expressions, the first element becomes the most
// significant part.
type Sequence struct {
	Type     *types.PrimitiveType
	Elements []Expression
}

func (*Constant) expression()         {}
func (*Identifier) expression()       {}
func (*Address) expression()          {}
func (*MemoryAccess) expression()     {}
func (*BinaryExpression) expression() {}
func (*UnaryExpression) expression()  {}
func (*Conversion) expression()       {}
func (*Slice) expression()            {}
func (*Application) expression()      {}
func (*Sequence) expression()         {}

func (c *Constant) DataType() *types.PrimitiveType         { return c.Type }
func (id *Identifier) DataType() *types.PrimitiveType      { return id.Type }
func (a *Address) DataType() *types.PrimitiveType          { return a.Type }
func (m *MemoryAccess) DataType() *types.PrimitiveType     { return m.Type }
func (b *BinaryExpression) DataType() *types.PrimitiveType { return b.Type }
func (u *UnaryExpression) DataType() *types.PrimitiveType  { return u.Type }
func (c *Conversion) DataType() *types.PrimitiveType       { return c.To }
func (s *Slice) DataType() *types.PrimitiveType            { return s.Type }
func (a *Application) DataType() *types.PrimitiveType      { return a.Type }
func (s *Sequence) DataType() *types.PrimitiveType         { return s.Type }

// NewConstant returns a constant of the given type, truncating the value.
func NewConstant(dt *types.PrimitiveType, value uint64) *Constant {
	if dt.BitSize < 64 {
		value &= 1<<uint(dt.BitSize) - 1
	}
	return &Constant{Type: dt, Value: value}
}

// Zero returns the zero constant of the given type.
func Zero(dt *types.PrimitiveType) *Constant {
	return &Constant{Type: dt}
}

// Word32 returns a 32 bit constant.
func Word32(v uint32) *Constant {
	return &Constant{Type: types.Word32, Value: uint64(v)}
}

// Word64 returns a 64 bit constant.
func Word64(v uint64) *Constant {
	return &Constant{Type: types.Word64, Value: v}
}

// Int32 returns a signed 32 bit constant.
func Int32(v int32) *Constant {
	return NewConstant(types.Int32, uint64(int64(v)))
}

// True returns the boolean true constant.
func True() *Constant {
	return &Constant{Type: types.Bool, Value: 1}
}

// IsZero returns whether the constant value is zero.
func (c *Constant) IsZero() bool {
	return c.Value == 0
}

// Signed returns the value sign extended from the constant width.
func (c *Constant) Signed() int64 {
	if c.Type.BitSize >= 64 {
		return int64(c.Value)
	}
	shift := uint(64 - c.Type.BitSize)
	return int64(c.Value<<shift) >> shift
}

func (c *Constant) String() string {
	switch c.Type.Domain {
	case types.Boolean:
		return fmt.Sprintf("%t", c.Value != 0)
	case types.Signed:
		return fmt.Sprintf("%d<i%d>", c.Signed(), c.Type.BitSize)
	case types.Real:
		if c.Type.BitSize == 32 {
			return fmt.Sprintf("%gF", math.Float32frombits(uint32(c.Value)))
		}
		return fmt.Sprintf("%g", math.Float64frombits(c.Value))
	default:
		digits := max(1, (c.Type.BitSize+3)/4)
		return fmt.Sprintf("0x%0*X<%d>", digits, c.Value, c.Type.BitSize)
	}
}

func (id *Identifier) String() string {
	return id.Name
}

func (a *Address) String() string {
	return a.Value.String()
}

func (m *MemoryAccess) String() string {
	return fmt.Sprintf("Mem%d[%s:%s]", m.Type.BitSize, m.EffectiveAddress, m.Type)
}

func (b *BinaryExpression) String() string {
	return fmt.Sprintf("%s%s%s", operandString(b.Left), b.Operator, operandString(b.Right))
}

func (u *UnaryExpression) String() string {
	return u.Operator.String() + operandString(u.Operand)
}

func (c *Conversion) String() string {
	return fmt.Sprintf("CONVERT(%s, %s, %s)", c.Expression, c.From, c.To)
}

func (s *Slice) String() string {
	return fmt.Sprintf("SLICE(%s, %s, %d)", s.Expression, s.Type, s.Offset)
}

func (a *Application) String() string {
	args := make([]string, len(a.Arguments))
	for i, arg := range a.Arguments {
		args[i] = arg.String()
	}
	return fmt.Sprintf("%s(%s)", a.Intrinsic.Name, strings.Join(args, ", "))
}

func (s *Sequence) String() string {
	parts := make([]string, len(s.Elements))
	for i, e := range s.Elements {
		parts[i] = e.String()
	}
	return strings.Join(parts, ":")
}

// operandString wraps nested binary expressions in parentheses.
func operandString(e Expression) string {
	if _, ok := e.(*BinaryExpression); ok {
		return "(" + e.String() + ")"
	}
	return e.String()
}
