package mips

import (
	"strings"

	"github.com/retroenv/retrolift/internal/rtl"
	"github.com/retroenv/retrolift/internal/types"
)

var (
	intrinsicTrunc   = &rtl.Intrinsic{Name: "__trunc", ReturnType: types.Real64}
	intrinsicMaddPs  = &rtl.Intrinsic{Name: "__madd_ps", ReturnType: types.Real64}
	intrinsicNmsubPs = &rtl.Intrinsic{Name: "__nmsub_ps", ReturnType: types.Real64}
)

func (r *Rewriter) fpSingle(i int) *rtl.Identifier {
	return r.binder.EnsureRegister(r.register(i))
}

// fpDouble returns the even and odd register pair holding a double, the
// odd register holds the most significant half.
func (r *Rewriter) fpDouble(i int) *rtl.Identifier {
	n := r.register(i).Number &^ 1
	return r.binder.EnsureSequence(types.Real64, r.regs.FP[n+1], r.regs.FP[n])
}

// isDouble returns whether the opcode operates on double precision values.
func isDouble(op Opcode) bool {
	return strings.HasSuffix(op.String(), "_d")
}

// fpReg returns the single register or double pair of operand i.
func (r *Rewriter) fpReg(i int, double bool) *rtl.Identifier {
	if double {
		return r.fpDouble(i)
	}
	return r.fpSingle(i)
}

func (r *Rewriter) fpuBinary() {
	double := isDouble(r.instr.Opcode)
	dst := r.fpReg(0, double)
	left := r.fpReg(1, double)
	right := r.fpReg(2, double)
	var e rtl.Expression
	switch r.instr.Opcode {
	case OpAddS, OpAddD:
		e = r.m.FAdd(left, right)
	case OpSubS, OpSubD:
		e = r.m.FSub(left, right)
	case OpMulS, OpMulD:
		e = r.m.FMul(left, right)
	default:
		e = r.m.FDiv(left, right)
	}
	r.m.Assign(dst, e)
}

func (r *Rewriter) fpuMove() {
	double := isDouble(r.instr.Opcode)
	r.m.Assign(r.fpReg(0, double), r.fpReg(1, double))
}

func (r *Rewriter) fpuNeg() {
	double := isDouble(r.instr.Opcode)
	r.m.Assign(r.fpReg(0, double), r.m.FNeg(r.fpReg(1, double)))
}

// fpuCompare writes the result of the comparison to a condition code.
func (r *Rewriter) fpuCompare() {
	double := isDouble(r.instr.Opcode)
	var op rtl.Operator
	switch r.instr.Opcode {
	case OpCEqS, OpCEqD:
		op = rtl.Feq
	case OpCLtS, OpCLtD:
		op = rtl.Flt
	default:
		op = rtl.Fle
	}
	cc := r.binder.EnsureRegister(r.register(0))
	r.m.Assign(cc, r.m.Compare(op, r.fpReg(1, double), r.fpReg(2, double)))
}

// conversions lists the source and destination types of the cvt
// instructions.
var conversions = map[Opcode][2]*types.PrimitiveType{
	OpCvtDS: {types.Real32, types.Real64},
	OpCvtDW: {types.Int32, types.Real64},
	OpCvtDL: {types.Int64, types.Real64},
	OpCvtSD: {types.Real64, types.Real32},
	OpCvtSW: {types.Int32, types.Real32},
	OpCvtWD: {types.Real64, types.Int32},
	OpCvtWS: {types.Real32, types.Int32},
}

func (r *Rewriter) convert() {
	conv := conversions[r.instr.Opcode]
	from, to := conv[0], conv[1]
	src := r.fpReg(1, from.BitSize == 64)
	dst := r.fpReg(0, to.BitSize == 64)
	r.m.Assign(dst, r.m.Convert(src, from, to))
}

// truncLD rounds toward zero and converts to a 64 bit integer.
func (r *Rewriter) truncLD() {
	value := r.m.Fn(intrinsicTrunc, r.fpDouble(1))
	r.m.Assign(r.fpDouble(0), r.m.Convert(value, types.Real64, types.Int64))
}

// fpuMac rewrites fd = fs * ft + fr and its subtracting and negating forms.
func (r *Rewriter) fpuMac() {
	double := isDouble(r.instr.Opcode)
	dst := r.fpReg(0, double)
	addend := r.fpReg(1, double)
	product := r.m.FMul(r.fpReg(2, double), r.fpReg(3, double))

	var e rtl.Expression
	switch r.instr.Opcode {
	case OpMaddS, OpMaddD:
		e = r.m.FAdd(product, addend)
	case OpMsubS, OpMsubD:
		e = r.m.FSub(product, addend)
	case OpNmaddS, OpNmaddD:
		e = r.m.FNeg(r.m.FAdd(product, addend))
	default:
		e = r.m.FNeg(r.m.FSub(product, addend))
	}
	r.m.Assign(dst, e)
}

// pairedMac operates on two singles packed in a register pair.
func (r *Rewriter) pairedMac() {
	intrinsic := intrinsicMaddPs
	if r.instr.Opcode == OpNmsubPs {
		intrinsic = intrinsicNmsubPs
	}
	value := r.m.Fn(intrinsic, r.fpDouble(1), r.fpDouble(2), r.fpDouble(3))
	r.m.Assign(r.fpDouble(0), value)
}

func (r *Rewriter) mfc1() {
	dst := r.rewriteDst(0)
	if dst == nil {
		return
	}
	r.setResult(dst, r.fpSingle(1), false)
}

func (r *Rewriter) mtc1() {
	r.m.Assign(r.fpSingle(1), r.src(0, false))
}

func (r *Rewriter) dmfc1() {
	if dst := r.rewriteDst(0); dst != nil {
		r.m.Assign(dst, r.fpDouble(1))
	}
}

func (r *Rewriter) dmtc1() {
	r.m.Assign(r.fpDouble(1), r.rewriteSrc(0))
}

func (r *Rewriter) cfc1() {
	dst := r.rewriteDst(0)
	if dst == nil {
		return
	}
	r.setResult(dst, r.binder.EnsureRegister(r.register(1)), false)
}

func (r *Rewriter) ctc1() {
	r.m.Assign(r.binder.EnsureRegister(r.register(1)), r.src(0, false))
}
