package parisc

import (
	"github.com/retroenv/retrolift/internal/machine"
	"github.com/retroenv/retrolift/internal/rtl"
	"github.com/retroenv/retrolift/internal/types"
)

var intrinsicTrap = &rtl.Intrinsic{Name: "__trap_overflow", HasSideEffect: true, ReturnType: types.Void}

// carry returns the carry/borrow flag.
func (r *Rewriter) carry() *rtl.Identifier {
	return r.binder.EnsureFlag("C")
}

// onResult evaluates the condition completer on the result.
func (r *Rewriter) onResult(left rtl.Expression) conditionFunc {
	return func(result rtl.Expression) rtl.Expression {
		return r.resultCondition(r.instr.Condition, result, left)
	}
}

// onCompare evaluates the condition completer on the operands.
func (r *Rewriter) onCompare(left, right rtl.Expression) conditionFunc {
	return func(rtl.Expression) rtl.Expression {
		return r.compareCondition(r.instr.Condition, left, right)
	}
}

// signedImm returns the signed immediate operand i as a register width
// constant.
func (r *Rewriter) signedImm(i int) *rtl.Constant {
	imm := r.operand(i).(machine.ImmediateOperand)
	return rtl.NewConstant(r.regs.Signed, uint64(imm.Signed()))
}

// addImm adds a signed immediate to a register expression.
func (r *Rewriter) addImm(reg rtl.Expression, imm *rtl.Constant) rtl.Expression {
	if k, ok := reg.(*rtl.Constant); ok && k.IsZero() {
		return r.word(imm.Value)
	}
	return r.m.AddSigned(reg, imm.Signed())
}

func (r *Rewriter) add() {
	left := r.rewriteSrc(0)
	right := r.rewriteSrc(1)
	r.addWithCarry(r.m.IAdd(left, right), left, right)
}

func (r *Rewriter) addCarry() {
	left := r.rewriteSrc(0)
	right := r.rewriteSrc(1)
	c := r.carry()
	sum := r.m.IAdd(r.m.IAdd(left, right), r.m.Convert(c, types.Bool, r.regs.Word))
	r.addWithCarry(sum, left, right, c)
}

// addWithCarry computes the sum into a temporary, updates the carry flag
// and assigns the result to the third operand.
func (r *Rewriter) addWithCarry(sum rtl.Expression, carryArgs ...rtl.Expression) {
	tmp := r.binder.CreateTemporary(sum.DataType())
	r.m.Assign(tmp, sum)
	r.m.Assign(r.carry(), r.m.Fn(intrinsicCarry, carryArgs...))
	r.assignNullify(r.rewriteDst(2), tmp, r.onResult(carryArgs[0]))
}

func (r *Rewriter) addLogical() {
	left := r.rewriteSrc(0)
	right := r.rewriteSrc(1)
	r.assignNullify(r.rewriteDst(2), r.m.IAdd(left, right), r.onResult(left))
}

func (r *Rewriter) addi() {
	imm := r.signedImm(0)
	src := r.rewriteSrc(1)
	r.assignNullify(r.rewriteDst(2), r.addImm(src, imm), r.onResult(src))
}

func (r *Rewriter) addil() {
	left := r.rewriteSrc(0)
	src := r.rewriteSrc(1)
	if k, ok := src.(*rtl.Constant); ok && k.IsZero() {
		r.assign(r.rewriteDst(2), left)
		return
	}
	r.assign(r.rewriteDst(2), r.m.IAdd(src, left))
}

func (r *Rewriter) and() {
	left := r.rewriteSrc(0)
	right := r.rewriteSrc(1)
	var src rtl.Expression
	switch {
	case isZero(left), isZero(right):
		src = r.word(0)
	default:
		src = r.m.And(left, right)
	}
	r.assignNullify(r.rewriteDst(2), src, r.onResult(left))
}

func (r *Rewriter) or() {
	left := r.rewriteSrc(0)
	right := r.rewriteSrc(1)
	var src rtl.Expression
	switch {
	case isZero(left):
		src = right
	case isZero(right):
		src = left
	default:
		src = r.m.Or(left, right)
	}
	r.assignNullify(r.rewriteDst(2), src, r.onResult(left))
}

func isZero(e rtl.Expression) bool {
	k, ok := e.(*rtl.Constant)
	return ok && k.IsZero()
}

func (r *Rewriter) shladd() {
	left := r.rewriteSrc(0)
	amount := r.operand(1).(machine.ImmediateOperand)
	right := r.rewriteSrc(2)
	shifted := left
	if amount.Value != 0 {
		shifted = r.m.ShlN(left, int(amount.Value))
	}
	r.assignNullify(r.rewriteDst(3), r.m.IAdd(shifted, right), r.onResult(left))
}

func (r *Rewriter) subBorrow() {
	left := r.rewriteSrc(0)
	right := r.rewriteSrc(1)
	c := r.carry()
	borrow := r.m.Convert(r.m.Not(c), types.Bool, r.regs.Word)
	tmp := r.binder.CreateTemporary(left.DataType())
	r.m.Assign(tmp, r.m.ISub(r.m.ISub(left, right), borrow))
	r.m.Assign(c, r.m.Fn(intrinsicCarry, left, r.m.Comp(right), c))
	r.assignNullify(r.rewriteDst(2), tmp, r.onCompare(left, right))
}

func (r *Rewriter) subi() {
	imm := r.signedImm(0)
	src := r.rewriteSrc(1)
	r.assignNullify(r.rewriteDst(2), r.m.ISub(imm, src), r.onCompare(imm, src))
}

// subiTrap is subi with a trap on signed overflow.
func (r *Rewriter) subiTrap() {
	imm := r.signedImm(0)
	src := r.rewriteSrc(1)
	tmp := r.binder.CreateTemporary(imm.DataType())
	r.m.Assign(tmp, r.m.ISub(imm, src))
	trap := &rtl.SideEffect{Expression: r.m.Fn(intrinsicTrap), Effect: machine.Transfer}
	r.m.If(r.m.Fn(intrinsicOverflow, tmp), trap)
	r.assignNullify(r.rewriteDst(2), tmp, r.onCompare(imm, src))
}

// low32 returns the low word a 32 bit field instruction operates on.
func (r *Rewriter) low32(e rtl.Expression) rtl.Expression {
	if e.DataType().BitSize <= 32 {
		return e
	}
	if k, ok := e.(*rtl.Constant); ok {
		return rtl.NewConstant(types.Word32, k.Value)
	}
	return r.m.Slice(types.Word32, e, 0)
}

// widen converts a 32 bit field result to the register width.
func (r *Rewriter) widen(e rtl.Expression, signed bool) rtl.Expression {
	if r.regs.Word.BitSize == 32 {
		return e
	}
	from := types.UInt32
	if signed {
		from = types.Int32
	}
	return r.m.Convert(e, from, r.regs.Word)
}

// extrw extracts a bit field. Bit positions count from the most
// significant bit.
func (r *Rewriter) extrw() {
	src := r.low32(r.rewriteSrc(0))
	pos := int(r.operand(1).(machine.ImmediateOperand).Value)
	length := int(r.operand(2).(machine.ImmediateOperand).Value)
	shift := 31 - pos
	if length <= 0 || shift+length > 32 {
		r.invalid()
		return
	}

	var field rtl.Expression
	signed := r.instr.Sign == Signed
	switch {
	case length == 32:
		field = src
	case signed:
		field = src
		if left := 32 - shift - length; left != 0 {
			field = r.m.ShlN(field, left)
		}
		field = r.m.SarN(field, 32-length)
	default:
		field = src
		if shift != 0 {
			field = r.m.ShrN(field, shift)
		}
		field = r.m.And(field, rtl.Word32(uint32(1)<<uint(length)-1))
	}
	r.assignNullify(r.rewriteDst(3), r.widen(field, signed), r.onResult(src))
}

// depwi deposits an immediate into a bit field, with the z completer the
// remaining bits are cleared.
func (r *Rewriter) depwi() {
	imm := r.operand(0).(machine.ImmediateOperand)
	pos := int(r.operand(1).(machine.ImmediateOperand).Value)
	length := int(r.operand(2).(machine.ImmediateOperand).Value)
	shift := 31 - pos
	if length <= 0 || length > 32 || shift < 0 {
		r.invalid()
		return
	}

	mask := uint32((uint64(1)<<uint(length) - 1) << uint(shift))
	value := uint32(uint64(imm.Signed())<<uint(shift)) & mask

	dst := r.rewriteDst(3)
	var src rtl.Expression
	if r.instr.Zero || dst == nil {
		src = rtl.Word32(value)
	} else {
		src = r.m.And(r.low32(dst), rtl.Word32(^mask))
		if value != 0 {
			src = r.m.Or(src, rtl.Word32(value))
		}
	}
	src = r.widen(src, false)
	r.assignNullify(dst, src, r.onResult(src))
}

func (r *Rewriter) ldil() {
	r.assign(r.rewriteDst(1), r.rewriteSrc(0))
}

// ldo loads the effective address of the memory operand.
func (r *Rewriter) ldo() {
	mem := r.operand(0).(machine.MemoryOperand)
	r.assign(r.rewriteDst(1), r.effectiveAddress(mem))
}
