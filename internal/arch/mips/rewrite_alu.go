package mips

import (
	"github.com/retroenv/retrolift/internal/machine"
	"github.com/retroenv/retrolift/internal/rtl"
	"github.com/retroenv/retrolift/internal/types"
)

var (
	intrinsicClz   = &rtl.Intrinsic{Name: "__count_leading_zeros", ReturnType: types.Int32}
	intrinsicClo   = &rtl.Intrinsic{Name: "__count_leading_ones", ReturnType: types.Int32}
	intrinsicRdhwr = &rtl.Intrinsic{Name: "__read_hardware_register", ReturnType: types.Word32}
)

func (r *Rewriter) add()  { r.addition(false) }
func (r *Rewriter) dadd() { r.addition(true) }

// addition rewrites the register and immediate forms. Adding r0 is a move
// or a load of the immediate.
func (r *Rewriter) addition(dword bool) {
	dst := r.rewriteDst(0)
	if dst == nil {
		return
	}
	left := r.src(1, dword)
	if imm, ok := r.operand(2).(machine.ImmediateOperand); ok {
		if isZero(left) {
			r.setResult(dst, r.src(2, dword), dword)
			return
		}
		r.setResult(dst, r.m.AddSigned(left, imm.Signed()), dword)
		return
	}
	right := r.src(2, dword)
	switch {
	case isZero(left):
		r.setResult(dst, right, dword)
	case isZero(right):
		r.setResult(dst, left, dword)
	default:
		r.setResult(dst, r.m.IAdd(left, right), dword)
	}
}

func (r *Rewriter) sub()  { r.subtraction(false) }
func (r *Rewriter) dsub() { r.subtraction(true) }

func (r *Rewriter) subtraction(dword bool) {
	dst := r.rewriteDst(0)
	if dst == nil {
		return
	}
	left := r.src(1, dword)
	right := r.src(2, dword)
	switch {
	case isZero(right):
		r.setResult(dst, left, dword)
	case isZero(left):
		r.setResult(dst, r.m.Neg(right), dword)
	default:
		r.setResult(dst, r.m.ISub(left, right), dword)
	}
}

// logical returns the operands of a logical operation. The immediate forms
// zero extend their operand to the register width.
func (r *Rewriter) logical() (dst *rtl.Identifier, left, right rtl.Expression) {
	dst = r.rewriteDst(0)
	left = r.rewriteSrc(1)
	right = r.rewriteSrc(2)
	return dst, left, right
}

func (r *Rewriter) and() {
	dst, left, right := r.logical()
	if dst == nil {
		return
	}
	if isZero(left) || isZero(right) {
		r.m.Assign(dst, r.word(0))
		return
	}
	r.m.Assign(dst, r.m.And(left, right))
}

func (r *Rewriter) or() {
	dst, left, right := r.logical()
	if dst == nil {
		return
	}
	switch {
	case isZero(left):
		r.m.Assign(dst, right)
	case isZero(right):
		r.m.Assign(dst, left)
	default:
		r.m.Assign(dst, r.m.Or(left, right))
	}
}

func (r *Rewriter) xor() {
	dst, left, right := r.logical()
	if dst == nil {
		return
	}
	switch {
	case isZero(left):
		r.m.Assign(dst, right)
	case isZero(right):
		r.m.Assign(dst, left)
	default:
		r.m.Assign(dst, r.m.Xor(left, right))
	}
}

// nor with r0 is the bitwise not.
func (r *Rewriter) nor() {
	dst, left, right := r.logical()
	if dst == nil {
		return
	}
	switch {
	case isZero(right):
		r.m.Assign(dst, r.m.Comp(left))
	case isZero(left):
		r.m.Assign(dst, r.m.Comp(right))
	default:
		r.m.Assign(dst, r.m.Comp(r.m.Or(left, right)))
	}
}

// lui loads the immediate into the upper half of the low word, the result
// is sign extended.
func (r *Rewriter) lui() {
	dst := r.rewriteDst(0)
	if dst == nil {
		return
	}
	v := int64(int32(uint32(r.immediate(1).Value) << 16))
	r.m.Assign(dst, r.word(uint64(v)))
}

func (r *Rewriter) slt()  { r.setLess(r.m.Lt) }
func (r *Rewriter) sltu() { r.setLess(r.m.Ult) }

func (r *Rewriter) setLess(cmp func(left, right rtl.Expression) rtl.Expression) {
	dst := r.rewriteDst(0)
	if dst == nil {
		return
	}
	cond := cmp(r.rewriteSrc(1), r.rewriteSrc(2))
	r.m.Assign(dst, r.m.Convert(cond, types.Bool, r.regs.Word))
}

// shift rewrites the constant and variable shifts. The amount of the
// variable forms is taken from the register.
func (r *Rewriter) shift(op func(e, amount rtl.Expression) rtl.Expression, dword bool, extra int) {
	dst := r.rewriteDst(0)
	if dst == nil {
		return
	}
	value := r.src(1, dword)
	var amount rtl.Expression
	if imm, ok := r.operand(2).(machine.ImmediateOperand); ok {
		n := int(imm.Value) + extra
		if n == 0 {
			r.setResult(dst, value, dword)
			return
		}
		amount = rtl.Int32(int32(n))
	} else {
		amount = r.src(2, false)
	}
	r.setResult(dst, op(value, amount), dword)
}

func (r *Rewriter) sll()    { r.shift(r.m.Shl, false, 0) }
func (r *Rewriter) srl()    { r.shift(r.m.Shr, false, 0) }
func (r *Rewriter) sra()    { r.shift(r.m.Sar, false, 0) }
func (r *Rewriter) dsll()   { r.shift(r.m.Shl, true, 0) }
func (r *Rewriter) dsrl()   { r.shift(r.m.Shr, true, 0) }
func (r *Rewriter) dsra()   { r.shift(r.m.Sar, true, 0) }
func (r *Rewriter) dsll32() { r.shift(r.m.Shl, true, 32) }
func (r *Rewriter) dsrl32() { r.shift(r.m.Shr, true, 32) }
func (r *Rewriter) dsra32() { r.shift(r.m.Sar, true, 32) }

// hiLo returns the hi:lo register pair as one value of type dt.
func (r *Rewriter) hiLo(dt *types.PrimitiveType) *rtl.Identifier {
	return r.binder.EnsureSequence(dt, r.regs.Hi, r.regs.Lo)
}

func (r *Rewriter) multiply(op func(dt *types.PrimitiveType, left, right rtl.Expression) rtl.Expression,
	dt *types.PrimitiveType, dword bool) {

	left := r.src(0, dword)
	right := r.src(1, dword)
	r.m.Assign(r.hiLo(dt), op(dt, left, right))
}

func (r *Rewriter) mult()   { r.multiply(r.m.SMul, types.Int64, false) }
func (r *Rewriter) multu()  { r.multiply(r.m.UMul, types.UInt64, false) }
func (r *Rewriter) dmult()  { r.multiply(r.m.SMul, types.Int128, true) }
func (r *Rewriter) dmultu() { r.multiply(r.m.UMul, types.UInt128, true) }

// mul writes the low word of the product to a general register.
func (r *Rewriter) mul() {
	dst := r.rewriteDst(0)
	if dst == nil {
		return
	}
	r.setResult(dst, r.m.SMul(types.Int32, r.src(1, false), r.src(2, false)), false)
}

// divide writes the quotient to lo and the remainder to hi.
func (r *Rewriter) divide(quotient, remainder func(left, right rtl.Expression) rtl.Expression, dword bool) {
	left := r.src(0, dword)
	right := r.src(1, dword)
	lo := r.binder.EnsureRegister(r.regs.Lo)
	hi := r.binder.EnsureRegister(r.regs.Hi)
	r.setResult(lo, quotient(left, right), dword)
	r.setResult(hi, remainder(left, right), dword)
}

func (r *Rewriter) div()   { r.divide(r.m.SDiv, r.m.SMod, false) }
func (r *Rewriter) divu()  { r.divide(r.m.UDiv, r.m.UMod, false) }
func (r *Rewriter) ddiv()  { r.divide(r.m.SDiv, r.m.SMod, true) }
func (r *Rewriter) ddivu() { r.divide(r.m.UDiv, r.m.UMod, true) }

func (r *Rewriter) moveFrom(reg *machine.Register) {
	if dst := r.rewriteDst(0); dst != nil {
		r.m.Assign(dst, r.binder.EnsureRegister(reg))
	}
}

func (r *Rewriter) moveTo(reg *machine.Register) {
	r.m.Assign(r.binder.EnsureRegister(reg), r.rewriteSrc(0))
}

func (r *Rewriter) mfhi() { r.moveFrom(r.regs.Hi) }
func (r *Rewriter) mflo() { r.moveFrom(r.regs.Lo) }
func (r *Rewriter) mthi() { r.moveTo(r.regs.Hi) }
func (r *Rewriter) mtlo() { r.moveTo(r.regs.Lo) }

// multiplyAccumulate adds the product to or subtracts it from hi:lo.
func (r *Rewriter) multiplyAccumulate(acc func(left, right rtl.Expression) rtl.Expression,
	mul func(dt *types.PrimitiveType, left, right rtl.Expression) rtl.Expression, dt *types.PrimitiveType) {

	hiLo := r.hiLo(dt)
	product := mul(dt, r.src(0, false), r.src(1, false))
	r.m.Assign(hiLo, acc(hiLo, product))
}

func (r *Rewriter) madd()  { r.multiplyAccumulate(r.m.IAdd, r.m.SMul, types.Int64) }
func (r *Rewriter) maddu() { r.multiplyAccumulate(r.m.IAdd, r.m.UMul, types.UInt64) }
func (r *Rewriter) msub()  { r.multiplyAccumulate(r.m.ISub, r.m.SMul, types.Int64) }
func (r *Rewriter) msubu() { r.multiplyAccumulate(r.m.ISub, r.m.UMul, types.UInt64) }

// conditionalMove assigns the source if the condition holds.
func (r *Rewriter) conditionalMove(cond rtl.Expression) {
	dst := r.rewriteDst(0)
	if dst == nil {
		return
	}
	r.m.If(cond, &rtl.Assignment{Dst: dst, Src: r.rewriteSrc(1)})
}

// movz and movn test a general register, r0 makes the move unconditional
// or a no-op.
func (r *Rewriter) movz() {
	test := r.rewriteSrc(2)
	if isZero(test) {
		r.unconditionalMove()
		return
	}
	r.conditionalMove(r.m.Eq0(test))
}

func (r *Rewriter) movn() {
	test := r.rewriteSrc(2)
	if isZero(test) {
		return
	}
	r.conditionalMove(r.m.Ne0(test))
}

func (r *Rewriter) unconditionalMove() {
	if dst := r.rewriteDst(0); dst != nil {
		r.m.Assign(dst, r.rewriteSrc(1))
	}
}

func (r *Rewriter) movf() {
	r.conditionalMove(r.m.Not(r.binder.EnsureRegister(r.register(2))))
}

func (r *Rewriter) movt() {
	r.conditionalMove(r.binder.EnsureRegister(r.register(2)))
}

func (r *Rewriter) clz() { r.countLeading(intrinsicClz) }
func (r *Rewriter) clo() { r.countLeading(intrinsicClo) }

func (r *Rewriter) countLeading(intrinsic *rtl.Intrinsic) {
	r.setResult(r.rewriteDst(0), r.m.Fn(intrinsic, r.src(1, false)), false)
}

func (r *Rewriter) seb() { r.signExtend(types.Byte, types.SByte) }
func (r *Rewriter) seh() { r.signExtend(types.Word16, types.Int16) }

func (r *Rewriter) signExtend(from, signed *types.PrimitiveType) {
	dst := r.rewriteDst(0)
	if dst == nil {
		return
	}
	value := r.m.Slice(from, r.rewriteSrc(1), 0)
	r.m.Assign(dst, r.m.Convert(value, signed, r.regs.Signed))
}

func fieldMask(size int) uint64 {
	return 1<<uint(size) - 1
}

// ext extracts the bit field at pos of size bits and zero extends it.
func (r *Rewriter) ext() {
	dst := r.rewriteDst(0)
	if dst == nil {
		return
	}
	pos := int(r.immediate(2).Value)
	size := int(r.immediate(3).Value)
	e := r.src(1, false)
	if pos > 0 {
		e = r.m.ShrN(e, pos)
	}
	if size < 32 {
		e = r.m.And(e, rtl.NewConstant(types.Word32, fieldMask(size)))
	}
	r.setResult(dst, e, false)
}

// ins replaces the bit field at pos of size bits with the low bits of the
// source.
func (r *Rewriter) ins() {
	dst := r.rewriteDst(0)
	if dst == nil {
		return
	}
	pos := int(r.immediate(2).Value)
	size := int(r.immediate(3).Value)
	field := fieldMask(size) << uint(pos)
	kept := r.m.And(r.src(0, false), rtl.NewConstant(types.Word32, ^field))
	inserted := r.src(1, false)
	if pos > 0 {
		inserted = r.m.ShlN(inserted, pos)
	}
	inserted = r.m.And(inserted, rtl.NewConstant(types.Word32, field))
	r.setResult(dst, r.m.Or(kept, inserted), false)
}

func (r *Rewriter) rdhwr() {
	hwr := rtl.NewConstant(types.Byte, r.immediate(1).Value)
	r.setResult(r.rewriteDst(0), r.m.Fn(intrinsicRdhwr, hwr), false)
}
