package parisc

import (
	"github.com/retroenv/retrolift/internal/machine"
)

// fpRegister returns the register of operand i in the format of the
// instruction: the left half for single precision.
func (r *Rewriter) fpRegister(i int) *machine.Register {
	reg := r.operand(i).(machine.RegisterOperand).Register
	if r.instr.FpFormat == Single {
		return r.regs.FP32[reg.Number*2]
	}
	return reg
}

func (r *Rewriter) fmpy() {
	if r.instr.FpFormat == Quad {
		r.unsupported()
		return
	}
	left := r.binder.EnsureRegister(r.fpRegister(0))
	right := r.binder.EnsureRegister(r.fpRegister(1))
	dst := r.binder.EnsureRegister(r.fpRegister(2))
	r.m.Assign(dst, r.m.FMul(left, right))
}

// fcmp sets the floating point compare flag.
func (r *Rewriter) fcmp() {
	c := r.instr.Condition
	if c == nil {
		r.invalid()
		return
	}
	left := r.rewriteSrc(0)
	right := r.rewriteSrc(1)
	r.m.Assign(r.binder.EnsureFlag("FPC"), r.fpCondition(c, left, right))
}
