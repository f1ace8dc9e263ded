package mips

import (
	"github.com/retroenv/retrolift/internal/machine"
	"github.com/retroenv/retrolift/internal/rtl"
	"github.com/retroenv/retrolift/internal/types"
)

var intrinsicTrap = &rtl.Intrinsic{Name: "__trap", HasSideEffect: true, ReturnType: types.Void}

// transfer marks the delay slot of branch likely instructions as annulled.
func (r *Rewriter) transfer(op rtl.Operation) {
	annul := r.class&machine.Annul != 0
	switch op := op.(type) {
	case *rtl.Branch:
		op.Annul = annul
	case *rtl.Goto:
		op.Annul = annul
	case *rtl.Call:
		op.Annul = annul
	case *rtl.Return:
		op.Annul = annul
	}
}

func (r *Rewriter) target(i int) machine.Address {
	return r.operand(i).(machine.AddressOperand).Address
}

func (r *Rewriter) branch(cond rtl.Expression, target machine.Address) {
	r.transfer(r.m.Branch(cond, target, r.class))
}

// always rewrites a conditional branch whose condition is known to hold.
func (r *Rewriter) always(target machine.Address) {
	r.class = td | r.class&machine.Annul
	r.transfer(r.m.Goto(r.m.Ptr(target), r.class))
}

// never rewrites a conditional branch that is never taken.
func (r *Rewriter) never() {
	r.class = machine.Linear
	r.m.Nop()
}

func (r *Rewriter) beq() {
	if r.register(0) == r.register(1) {
		r.always(r.target(2))
		return
	}
	r.branch(r.equality(r.m.Eq, r.m.Eq0), r.target(2))
}

func (r *Rewriter) bne() {
	if r.register(0) == r.register(1) {
		r.never()
		return
	}
	r.branch(r.equality(r.m.Ne, r.m.Ne0), r.target(2))
}

// equality compares the first two operands, comparisons with r0 test a
// single register.
func (r *Rewriter) equality(cmp func(left, right rtl.Expression) rtl.Expression,
	cmp0 func(e rtl.Expression) rtl.Expression) rtl.Expression {

	left := r.rewriteSrc(0)
	right := r.rewriteSrc(1)
	switch {
	case isZero(right):
		return cmp0(left)
	case isZero(left):
		return cmp0(right)
	default:
		return cmp(left, right)
	}
}

// branchZero compares a register with zero. For r0 the outcome is known,
// holds reports whether 0 satisfies the comparison.
func (r *Rewriter) branchZero(cmp func(left, right rtl.Expression) rtl.Expression, holds bool) {
	value := r.rewriteSrc(0)
	target := r.target(1)
	if isZero(value) {
		if holds {
			r.always(target)
		} else {
			r.never()
		}
		return
	}
	r.branch(cmp(value, rtl.Zero(value.DataType())), target)
}

func (r *Rewriter) bgez() { r.branchZero(r.m.Ge, true) }
func (r *Rewriter) bgtz() { r.branchZero(r.m.Gt, false) }
func (r *Rewriter) blez() { r.branchZero(r.m.Le, true) }
func (r *Rewriter) bltz() { r.branchZero(r.m.Lt, false) }

// branchLink calls the target if the comparison with zero holds. The return
// address is written to r31 even if the branch is not taken.
func (r *Rewriter) branchLink(cmp func(left, right rtl.Expression) rtl.Expression, holds bool) {
	value := r.rewriteSrc(0)
	target := r.m.Ptr(r.target(1))
	if isZero(value) {
		if holds {
			r.class = td | machine.Call | r.class&machine.Annul
			r.transfer(r.m.Call(target, 0, r.class))
			return
		}
		r.class = machine.Linear
		r.m.Assign(r.reg(regRA), r.word(uint64(r.nextAddress())))
		return
	}

	call := &rtl.Call{Target: target, Transfer: r.class}
	r.transfer(call)
	r.m.If(cmp(value, rtl.Zero(value.DataType())), call)
}

func (r *Rewriter) bgezal() { r.branchLink(r.m.Ge, true) }
func (r *Rewriter) bltzal() { r.branchLink(r.m.Lt, false) }

func (r *Rewriter) bc1f() {
	r.branch(r.m.Not(r.binder.EnsureRegister(r.register(0))), r.target(1))
}

func (r *Rewriter) bc1t() {
	r.branch(r.binder.EnsureRegister(r.register(0)), r.target(1))
}

func (r *Rewriter) jump() {
	r.transfer(r.m.Goto(r.m.Ptr(r.target(0)), r.class))
}

// jal links through r31 implicitly.
func (r *Rewriter) jal() {
	r.transfer(r.m.Call(r.m.Ptr(r.target(0)), 0, r.class))
}

// jr r31 returns from a procedure.
func (r *Rewriter) jr() {
	reg := r.register(0)
	if reg.Number == regRA {
		r.transfer(r.m.Return(0, 0, r.class))
		return
	}
	r.transfer(r.m.Goto(r.rewriteSrc(0), r.class))
}

// jalr writes the return address to rd and calls the address in rs. A link
// register of r0 makes it an indirect jump.
func (r *Rewriter) jalr() {
	link := r.register(0)
	target := r.rewriteSrc(1)
	if isZeroRegister(link) {
		r.class = td
		r.transfer(r.m.Goto(target, r.class))
		return
	}
	if link.Number != regRA {
		if link == r.register(1) {
			tmp := r.binder.CreateTemporary(r.regs.Word)
			r.m.Assign(tmp, target)
			target = tmp
		}
		r.m.Assign(r.binder.EnsureRegister(link), r.word(uint64(r.nextAddress())))
	}
	r.transfer(r.m.Call(target, 0, r.class))
}

// trap raises a trap exception if the comparison of the operands holds.
func (r *Rewriter) trap(cmp func(left, right rtl.Expression) rtl.Expression) {
	cond := cmp(r.rewriteSrc(0), r.rewriteSrc(1))
	r.m.If(cond, &rtl.SideEffect{Expression: r.m.Fn(intrinsicTrap), Effect: machine.Transfer})
}

func (r *Rewriter) teq()  { r.trap(r.m.Eq) }
func (r *Rewriter) tne()  { r.trap(r.m.Ne) }
func (r *Rewriter) tge()  { r.trap(r.m.Ge) }
func (r *Rewriter) tgeu() { r.trap(r.m.Uge) }
func (r *Rewriter) tlt()  { r.trap(r.m.Lt) }
func (r *Rewriter) tltu() { r.trap(r.m.Ult) }
