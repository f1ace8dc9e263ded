package parisc

import (
	"github.com/retroenv/retrolift/internal/machine"
	"github.com/retroenv/retrolift/internal/rtl"
	"github.com/retroenv/retrolift/internal/types"
)

var intrinsicBreak = &rtl.Intrinsic{Name: "__break", HasSideEffect: true, ReturnType: types.Void}

// transfer copies the annul completer to a transfer operation and makes
// its class the class of the cluster.
func (r *Rewriter) transfer(op rtl.Operation) {
	switch op := op.(type) {
	case *rtl.Branch:
		op.Annul = r.instr.Annul
	case *rtl.Goto:
		op.Annul = r.instr.Annul
	case *rtl.Call:
		op.Annul = r.instr.Annul
	case *rtl.Return:
		op.Annul = r.instr.Annul
	}
	r.class = r.withAnnul(op.Class())
}

func (r *Rewriter) target(i int) machine.Address {
	return r.operand(i).(machine.AddressOperand).Address
}

// leftOperand returns a register or a signed immediate source.
func (r *Rewriter) leftOperand(i int) rtl.Expression {
	if _, ok := r.operand(i).(machine.ImmediateOperand); ok {
		return r.signedImm(i)
	}
	return r.rewriteSrc(i)
}

// cmpb compares two operands and branches if the condition holds.
func (r *Rewriter) cmpb() {
	left := r.leftOperand(0)
	right := r.rewriteSrc(1)
	r.assignBranch(nil, nil, r.onCompare(left, right), r.target(2), ctd)
}

// addb adds the first operand to the second and branches on the result.
func (r *Rewriter) addb() {
	left := r.leftOperand(0)
	right := r.rewriteSrc(1)
	var sum rtl.Expression
	if imm, ok := left.(*rtl.Constant); ok {
		sum = r.addImm(right, imm)
	} else {
		sum = r.m.IAdd(right, left)
	}
	r.assignBranch(r.rewriteDst(1), sum, r.onResult(right), r.target(2), ctd)
}

// movb copies the first operand to the second and branches on the value.
func (r *Rewriter) movb() {
	src := r.leftOperand(0)
	if k, ok := src.(*rtl.Constant); ok {
		src = r.word(k.Value)
	}
	r.assignBranch(r.rewriteDst(1), src, r.onResult(src), r.target(2), ctd)
}

// call saves the return address in the link register and calls target.
func (r *Rewriter) call(link *rtl.Identifier, target rtl.Expression) {
	r.m.Assign(link, r.word(uint64(r.nextAddress())))
	r.transfer(r.m.Call(target, 0, td|machine.Call))
}

// branchLink is an unconditional pc relative branch, a branch that links
// into a register other than r0 is a call.
func (r *Rewriter) branchLink() {
	target := r.m.Ptr(r.target(0))
	link := r.rewriteDst(1)
	if link == nil {
		r.transfer(r.m.Goto(target, td))
		return
	}
	r.call(link, target)
}

// blr branches to the instruction at address + 8 + 8*x.
func (r *Rewriter) blr() {
	var target rtl.Expression = r.m.Ptr(r.nextAddress())
	if index := r.rewriteSrc(0); !isZero(index) {
		target = r.m.IAdd(target, r.m.ShlN(index, 3))
	}
	link := r.rewriteDst(1)
	if link == nil {
		r.transfer(r.m.Goto(target, td))
		return
	}
	r.call(link, target)
}

// bv branches to base + 8*index, bv r0(rp) returns from a procedure.
func (r *Rewriter) bv() {
	op := r.operand(0).(machine.IndexedOperand)
	if op.Base.Number == regRP && isZeroRegister(op.Index) {
		r.transfer(r.m.Return(0, 0, td))
		return
	}

	var target rtl.Expression
	base := r.baseExpr(op.Base)
	index := r.baseExpr(op.Index)
	switch {
	case base == nil && index == nil:
		target = r.word(0)
	case index == nil:
		target = base
	case base == nil:
		target = r.m.ShlN(index, 3)
	default:
		target = r.m.IAdd(base, r.m.ShlN(index, 3))
	}
	r.transfer(r.m.Goto(target, td))
}

// branchExternal branches to an address in another space, be,l links
// through r31.
func (r *Rewriter) branchExternal() {
	op := r.operand(0).(machine.MemoryOperand)
	target := r.effectiveAddress(op)
	if r.instr.Opcode == OpBeL {
		r.call(r.reg(regMP), target)
		return
	}
	r.transfer(r.m.Goto(target, td))
}

func (r *Rewriter) breakTrap() {
	im5 := r.rewriteSrc(0)
	im13 := r.rewriteSrc(1)
	r.m.SideEffect(r.m.Fn(intrinsicBreak, im5, im13), machine.Call|machine.Transfer)
}
