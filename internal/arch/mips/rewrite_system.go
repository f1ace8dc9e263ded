package mips

import (
	"github.com/retroenv/retrolift/internal/machine"
	"github.com/retroenv/retrolift/internal/rtl"
	"github.com/retroenv/retrolift/internal/types"
)

var (
	intrinsicBreak   = &rtl.Intrinsic{Name: "__break", HasSideEffect: true, ReturnType: types.Void}
	intrinsicSyscall = &rtl.Intrinsic{Name: "__syscall", HasSideEffect: true, ReturnType: types.Void}
	intrinsicSync    = &rtl.Intrinsic{Name: "__sync", HasSideEffect: true, ReturnType: types.Void}
	intrinsicEret    = &rtl.Intrinsic{Name: "__eret", HasSideEffect: true, ReturnType: types.Void}
	intrinsicWait    = &rtl.Intrinsic{Name: "__wait", HasSideEffect: true, ReturnType: types.Void}

	tlbIntrinsics = map[Opcode]*rtl.Intrinsic{
		OpTlbp:  {Name: "__tlbp", HasSideEffect: true, ReturnType: types.Void},
		OpTlbr:  {Name: "__tlbr", HasSideEffect: true, ReturnType: types.Void},
		OpTlbwi: {Name: "__tlbwi", HasSideEffect: true, ReturnType: types.Void},
		OpTlbwr: {Name: "__tlbwr", HasSideEffect: true, ReturnType: types.Void},
	}
)

func (r *Rewriter) breakTrap() {
	r.m.SideEffect(r.m.Fn(intrinsicBreak, r.codeOperand()), trap)
}

func (r *Rewriter) syscall() {
	r.m.SideEffect(r.m.Fn(intrinsicSyscall, r.codeOperand()), trap)
}

func (r *Rewriter) codeOperand() rtl.Expression {
	return rtl.NewConstant(types.Word32, r.immediate(0).Value)
}

func (r *Rewriter) sync() {
	stype := rtl.NewConstant(types.Byte, r.immediate(0).Value)
	r.m.SideEffect(r.m.Fn(intrinsicSync, stype), machine.Linear)
}

// eret returns from an exception handler, it has no delay slot.
func (r *Rewriter) eret() {
	r.m.SideEffect(r.m.Fn(intrinsicEret), machine.Linear)
	r.m.Return(0, 0, machine.Transfer)
}

func (r *Rewriter) wait() {
	r.m.SideEffect(r.m.Fn(intrinsicWait), machine.Linear)
}

func (r *Rewriter) tlb() {
	r.m.SideEffect(r.m.Fn(tlbIntrinsics[r.instr.Opcode]), machine.Linear)
}

func (r *Rewriter) mfc0() {
	dst := r.rewriteDst(0)
	if dst == nil {
		return
	}
	var value rtl.Expression = r.binder.EnsureRegister(r.register(1))
	if value.DataType().BitSize > 32 {
		value = r.m.Slice(types.Word32, value, 0)
	}
	r.setResult(dst, value, false)
}

func (r *Rewriter) dmfc0() {
	if dst := r.rewriteDst(0); dst != nil {
		r.m.Assign(dst, r.binder.EnsureRegister(r.register(1)))
	}
}

func (r *Rewriter) mtc0() {
	cpr := r.binder.EnsureRegister(r.register(1))
	value := r.src(0, false)
	if cpr.DataType().BitSize > value.DataType().BitSize {
		value = r.m.Convert(value, types.Int32, r.regs.Signed)
	}
	r.m.Assign(cpr, value)
}

func (r *Rewriter) dmtc0() {
	r.m.Assign(r.binder.EnsureRegister(r.register(1)), r.rewriteSrc(0))
}
