package rtl

import (
	"github.com/retroenv/retrolift/internal/machine"
	"github.com/retroenv/retrolift/internal/types"
)

// ExpressionEmitter builds expressions. It holds no state.
type ExpressionEmitter struct{}

func binary(op Operator, dt *types.PrimitiveType, left, right Expression) *BinaryExpression {
	return &BinaryExpression{Operator: op, Type: dt, Left: left, Right: right}
}

// IAdd returns left + right.
func (ExpressionEmitter) IAdd(left, right Expression) Expression {
	return binary(Add, left.DataType(), left, right)
}

// ISub returns left - right.
func (ExpressionEmitter) ISub(left, right Expression) Expression {
	return binary(Sub, left.DataType(), left, right)
}

// AddSigned adds a signed displacement to e. A zero displacement returns e
// unchanged, a negative one is subtracted as a positive constant.
func (m ExpressionEmitter) AddSigned(e Expression, displacement int64) Expression {
	dt := types.Word(e.DataType().BitSize)
	switch {
	case displacement == 0:
		return e
	case displacement < 0:
		return m.ISub(e, NewConstant(dt, uint64(-displacement)))
	default:
		return m.IAdd(e, NewConstant(dt, uint64(displacement)))
	}
}

// IMul returns the bit pattern product of left and right.
func (ExpressionEmitter) IMul(left, right Expression) Expression {
	return binary(Mul, left.DataType(), left, right)
}

// SMul returns the signed product of left and right as type dt.
func (ExpressionEmitter) SMul(dt *types.PrimitiveType, left, right Expression) Expression {
	return binary(SMul, dt, left, right)
}

// UMul returns the unsigned product of left and right as type dt.
func (ExpressionEmitter) UMul(dt *types.PrimitiveType, left, right Expression) Expression {
	return binary(UMul, dt, left, right)
}

// SDiv returns the signed quotient.
func (ExpressionEmitter) SDiv(left, right Expression) Expression {
	return binary(SDiv, left.DataType(), left, right)
}

// UDiv returns the unsigned quotient.
func (ExpressionEmitter) UDiv(left, right Expression) Expression {
	return binary(UDiv, left.DataType(), left, right)
}

// SMod returns the signed remainder.
func (ExpressionEmitter) SMod(left, right Expression) Expression {
	return binary(SMod, left.DataType(), left, right)
}

// UMod returns the unsigned remainder.
func (ExpressionEmitter) UMod(left, right Expression) Expression {
	return binary(UMod, left.DataType(), left, right)
}

// And returns the bitwise and.
func (ExpressionEmitter) And(left, right Expression) Expression {
	return binary(And, left.DataType(), left, right)
}

// Or returns the bitwise or.
func (ExpressionEmitter) Or(left, right Expression) Expression {
	return binary(Or, left.DataType(), left, right)
}

// Xor returns the bitwise exclusive or.
func (ExpressionEmitter) Xor(left, right Expression) Expression {
	return binary(Xor, left.DataType(), left, right)
}

// Shl shifts left.
func (ExpressionEmitter) Shl(e, amount Expression) Expression {
	return binary(Shl, e.DataType(), e, amount)
}

// Shr shifts right logically.
func (ExpressionEmitter) Shr(e, amount Expression) Expression {
	return binary(Shr, e.DataType(), e, amount)
}

// Sar shifts right arithmetically.
func (ExpressionEmitter) Sar(e, amount Expression) Expression {
	return binary(Sar, e.DataType(), e, amount)
}

// ShlN shifts left by a constant amount.
func (m ExpressionEmitter) ShlN(e Expression, n int) Expression {
	return m.Shl(e, Int32(int32(n)))
}

// ShrN shifts right logically by a constant amount.
func (m ExpressionEmitter) ShrN(e Expression, n int) Expression {
	return m.Shr(e, Int32(int32(n)))
}

// SarN shifts right arithmetically by a constant amount.
func (m ExpressionEmitter) SarN(e Expression, n int) Expression {
	return m.Sar(e, Int32(int32(n)))
}

// Compare returns a boolean comparison with the given operator.
func (ExpressionEmitter) Compare(op Operator, left, right Expression) Expression {
	return binary(op, types.Bool, left, right)
}

// Eq returns left == right.
func (m ExpressionEmitter) Eq(left, right Expression) Expression { return m.Compare(Eq, left, right) }

// Ne returns left != right.
func (m ExpressionEmitter) Ne(left, right Expression) Expression { return m.Compare(Ne, left, right) }

// Lt returns the signed left < right.
func (m ExpressionEmitter) Lt(left, right Expression) Expression { return m.Compare(Lt, left, right) }

// Le returns the signed left <= right.
func (m ExpressionEmitter) Le(left, right Expression) Expression { return m.Compare(Le, left, right) }

// Gt returns the signed left > right.
func (m ExpressionEmitter) Gt(left, right Expression) Expression { return m.Compare(Gt, left, right) }

// Ge returns the signed left >= right.
func (m ExpressionEmitter) Ge(left, right Expression) Expression { return m.Compare(Ge, left, right) }

// Ult returns the unsigned left < right.
func (m ExpressionEmitter) Ult(left, right Expression) Expression { return m.Compare(Ult, left, right) }

// Ule returns the unsigned left <= right.
func (m ExpressionEmitter) Ule(left, right Expression) Expression { return m.Compare(Ule, left, right) }

// Ugt returns the unsigned left > right.
func (m ExpressionEmitter) Ugt(left, right Expression) Expression { return m.Compare(Ugt, left, right) }

// Uge returns the unsigned left >= right.
func (m ExpressionEmitter) Uge(left, right Expression) Expression { return m.Compare(Uge, left, right) }

// Eq0 returns e == 0.
func (m ExpressionEmitter) Eq0(e Expression) Expression { return m.Eq(e, Zero(e.DataType())) }

// Ne0 returns e != 0.
func (m ExpressionEmitter) Ne0(e Expression) Expression { return m.Ne(e, Zero(e.DataType())) }

// FAdd returns the floating point sum.
func (ExpressionEmitter) FAdd(left, right Expression) Expression {
	return binary(FAdd, left.DataType(), left, right)
}

// FSub returns the floating point difference.
func (ExpressionEmitter) FSub(left, right Expression) Expression {
	return binary(FSub, left.DataType(), left, right)
}

// FMul returns the floating point product.
func (ExpressionEmitter) FMul(left, right Expression) Expression {
	return binary(FMul, left.DataType(), left, right)
}

// FDiv returns the floating point quotient.
func (ExpressionEmitter) FDiv(left, right Expression) Expression {
	return binary(FDiv, left.DataType(), left, right)
}

// Cand returns the conditional and of two booleans.
func (ExpressionEmitter) Cand(left, right Expression) Expression {
	return binary(Cand, types.Bool, left, right)
}

// Cor returns the conditional or of two booleans.
func (ExpressionEmitter) Cor(left, right Expression) Expression {
	return binary(Cor, types.Bool, left, right)
}

// Neg returns the two's complement negation.
func (ExpressionEmitter) Neg(e Expression) Expression {
	return &UnaryExpression{Operator: Neg, Type: e.DataType(), Operand: e}
}

// FNeg returns the floating point negation.
func (ExpressionEmitter) FNeg(e Expression) Expression {
	return &UnaryExpression{Operator: FNeg, Type: e.DataType(), Operand: e}
}

// Comp returns the bitwise complement.
func (ExpressionEmitter) Comp(e Expression) Expression {
	return &UnaryExpression{Operator: Comp, Type: e.DataType(), Operand: e}
}

// Not returns the logical negation.
func (ExpressionEmitter) Not(e Expression) Expression {
	return &UnaryExpression{Operator: Not, Type: types.Bool, Operand: e}
}

// Mem returns a memory access of type dt at the effective address.
func (ExpressionEmitter) Mem(dt *types.PrimitiveType, ea Expression) *MemoryAccess {
	return &MemoryAccess{Type: dt, EffectiveAddress: ea}
}

// Convert converts e from one type to another.
func (ExpressionEmitter) Convert(e Expression, from, to *types.PrimitiveType) Expression {
	return &Conversion{Expression: e, From: from, To: to}
}

// Slice extracts dt sized bits at offset from e.
func (ExpressionEmitter) Slice(dt *types.PrimitiveType, e Expression, offset int) Expression {
	return &Slice{Type: dt, Expression: e, Offset: offset}
}

// Fn applies an intrinsic.
func (ExpressionEmitter) Fn(intrinsic *Intrinsic, args ...Expression) *Application {
	return &Application{Intrinsic: intrinsic, Type: intrinsic.ReturnType, Arguments: args}
}

// Seq concatenates expressions into a value of type dt.
func (ExpressionEmitter) Seq(dt *types.PrimitiveType, elements ...Expression) Expression {
	return &Sequence{Type: dt, Elements: elements}
}

// Emitter accumulates the operations of one cluster.
type Emitter struct {
	ExpressionEmitter

	pointer *types.PrimitiveType
	ops     []Operation
}

// NewEmitter returns an emitter creating code addresses of the given pointer type.
func NewEmitter(pointer *types.PrimitiveType) *Emitter {
	return &Emitter{pointer: pointer}
}

// Reset discards all accumulated operations.
func (m *Emitter) Reset() {
	m.ops = nil
}

// Operations returns the accumulated operations.
func (m *Emitter) Operations() []Operation {
	return m.ops
}

// Emit appends an operation.
func (m *Emitter) Emit(op Operation) {
	m.ops = append(m.ops, op)
}

// Ptr returns a code address constant.
func (m *Emitter) Ptr(addr machine.Address) *Address {
	return &Address{Value: addr, Type: m.pointer}
}

// Assign emits dst = src.
func (m *Emitter) Assign(dst *Identifier, src Expression) *Assignment {
	a := &Assignment{Dst: dst, Src: src}
	m.Emit(a)
	return a
}

// Store emits a store of src to dst.
func (m *Emitter) Store(dst, src Expression) *Store {
	s := &Store{Dst: dst, Src: src}
	m.Emit(s)
	return s
}

// Branch emits a conditional branch.
func (m *Emitter) Branch(cond Expression, target machine.Address, class machine.InstrClass) *Branch {
	b := &Branch{Condition: cond, Target: m.Ptr(target), Transfer: class}
	m.Emit(b)
	return b
}

// Goto emits an unconditional transfer.
func (m *Emitter) Goto(target Expression, class machine.InstrClass) *Goto {
	g := &Goto{Target: target, Transfer: class}
	m.Emit(g)
	return g
}

// Call emits a procedure call.
func (m *Emitter) Call(target Expression, returnAddressSize int, class machine.InstrClass) *Call {
	c := &Call{Target: target, ReturnAddressSize: returnAddressSize, Transfer: class}
	m.Emit(c)
	return c
}

// Return emits a procedure return.
func (m *Emitter) Return(returnAddressBytes, extraBytesPopped int, class machine.InstrClass) *Return {
	r := &Return{ReturnAddressBytes: returnAddressBytes, ExtraBytesPopped: extraBytesPopped, Transfer: class}
	m.Emit(r)
	return r
}

// SideEffect emits an expression evaluated for its side effect.
func (m *Emitter) SideEffect(e Expression, class machine.InstrClass) *SideEffect {
	s := &SideEffect{Expression: e, Effect: class}
	m.Emit(s)
	return s
}

// If emits op guarded by cond.
func (m *Emitter) If(cond Expression, op Operation) *If {
	i := &If{Condition: cond, Operation: op}
	m.Emit(i)
	return i
}

// Invalid emits an invalid operation.
func (m *Emitter) Invalid() {
	m.Emit(&Invalid{})
}

// Nop emits a no operation.
func (m *Emitter) Nop() {
	m.Emit(&Nop{})
}
