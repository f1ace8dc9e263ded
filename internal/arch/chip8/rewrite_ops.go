package chip8

import (
	"github.com/retroenv/retrolift/internal/machine"
	"github.com/retroenv/retrolift/internal/rtl"
	"github.com/retroenv/retrolift/internal/types"
)

func (r *Rewriter) cls() {
	r.m.SideEffect(r.m.Fn(intrinsicClearScreen), machine.Linear)
}

func (r *Rewriter) ret() {
	r.m.Return(opcodeSize, 0, machine.Transfer)
}

func (r *Rewriter) jp() {
	r.m.Goto(r.m.Ptr(r.target(0)), machine.Transfer)
}

func (r *Rewriter) jpV0() {
	offset := r.m.Convert(r.src(0), types.Byte, types.UInt16)
	r.m.Goto(r.m.IAdd(offset, r.src(1)), machine.Transfer)
}

func (r *Rewriter) call() {
	r.m.Call(r.m.Ptr(r.target(0)), opcodeSize, machine.Transfer|machine.Call)
}

// skipTo emits the branch over the following instruction.
func (r *Rewriter) skipTo(cond rtl.Expression) {
	r.m.Branch(cond, r.instr.Address().Add(2*opcodeSize), machine.ConditionalTransfer)
}

func (r *Rewriter) se() {
	r.skipTo(r.m.Eq(r.src(0), r.src(1)))
}

func (r *Rewriter) sne() {
	r.skipTo(r.m.Ne(r.src(0), r.src(1)))
}

func (r *Rewriter) skp() {
	r.skipTo(r.m.Fn(intrinsicIsKeyPressed, r.src(0)))
}

func (r *Rewriter) sknp() {
	r.skipTo(r.m.Not(r.m.Fn(intrinsicIsKeyPressed, r.src(0))))
}

func (r *Rewriter) ld() {
	r.m.Assign(r.dst(0), r.src(1))
}

func (r *Rewriter) addImm() {
	r.m.Assign(r.dst(0), r.m.IAdd(r.src(0), r.src(1)))
}

// addReg sets VF to the carry out of bit 7. The flag is written last so
// that it wins when VF is the destination.
func (r *Rewriter) addReg() {
	sum := r.binder.CreateTemporary(types.Word16)
	r.m.Assign(sum, r.m.IAdd(
		r.m.Convert(r.src(0), types.Byte, types.UInt16),
		r.m.Convert(r.src(1), types.Byte, types.UInt16)))
	r.m.Assign(r.dst(0), r.m.Slice(types.Byte, sum, 0))
	r.m.Assign(r.flag(), r.m.Slice(types.Byte, sum, 8))
}

func (r *Rewriter) addIVx() {
	r.m.Assign(r.dst(0), r.m.IAdd(r.src(0), r.m.Convert(r.src(1), types.Byte, types.Word16)))
}

func (r *Rewriter) or() {
	r.m.Assign(r.dst(0), r.m.Or(r.src(0), r.src(1)))
}

func (r *Rewriter) and() {
	r.m.Assign(r.dst(0), r.m.And(r.src(0), r.src(1)))
}

func (r *Rewriter) xor() {
	r.m.Assign(r.dst(0), r.m.Xor(r.src(0), r.src(1)))
}

// subtract assigns minuend - subtrahend to Vx and sets VF when no borrow
// occurred.
func (r *Rewriter) subtract(minuend, subtrahend rtl.Expression) {
	noBorrow := r.binder.CreateTemporary(types.Bool)
	r.m.Assign(noBorrow, r.m.Uge(minuend, subtrahend))
	r.m.Assign(r.dst(0), r.m.ISub(minuend, subtrahend))
	r.m.Assign(r.flag(), r.m.Convert(noBorrow, types.Bool, types.Byte))
}

func (r *Rewriter) sub() {
	r.subtract(r.src(0), r.src(1))
}

func (r *Rewriter) subn() {
	r.subtract(r.src(1), r.src(0))
}

func (r *Rewriter) shr() {
	bit := r.binder.CreateTemporary(types.Byte)
	r.m.Assign(bit, r.m.And(r.src(0), rtl.NewConstant(types.Byte, 1)))
	r.m.Assign(r.dst(0), r.m.ShrN(r.src(0), 1))
	r.m.Assign(r.flag(), bit)
}

func (r *Rewriter) shl() {
	bit := r.binder.CreateTemporary(types.Byte)
	r.m.Assign(bit, r.m.ShrN(r.src(0), 7))
	r.m.Assign(r.dst(0), r.m.ShlN(r.src(0), 1))
	r.m.Assign(r.flag(), bit)
}

func (r *Rewriter) rnd() {
	r.m.Assign(r.dst(0), r.m.And(r.m.Fn(intrinsicRandom), r.src(1)))
}

// drw sets VF to 1 if a set pixel was erased.
func (r *Rewriter) drw() {
	rows := r.operand(2).(machine.ImmediateOperand).Value
	r.m.Assign(r.flag(), r.m.Fn(intrinsicDrawSprite,
		r.src(0), r.src(1), rtl.NewConstant(types.Byte, rows), r.index()))
}

func (r *Rewriter) waitKey() {
	r.m.Assign(r.dst(0), r.m.Fn(intrinsicWaitKey))
}

func (r *Rewriter) font() {
	r.m.Assign(r.index(), r.m.Fn(intrinsicFontAddress, r.src(0)))
}

// bcd stores the hundreds, tens and ones digits of Vx at I, I+1 and I+2.
func (r *Rewriter) bcd() {
	value := r.src(0)
	ten := rtl.NewConstant(types.Byte, 10)
	digits := []rtl.Expression{
		r.m.UDiv(value, rtl.NewConstant(types.Byte, 100)),
		r.m.UMod(r.m.UDiv(value, ten), ten),
		r.m.UMod(value, ten),
	}
	for i, digit := range digits {
		r.m.Store(r.memory(i), digit)
	}
}

// storeRegs writes V0 to Vx to memory starting at I, I is not modified.
func (r *Rewriter) storeRegs() {
	last := r.register(0).Number
	for i := 0; i <= last; i++ {
		r.m.Store(r.memory(i), r.v(i))
	}
}

// loadRegs reads V0 to Vx from memory starting at I, I is not modified.
func (r *Rewriter) loadRegs() {
	last := r.register(0).Number
	for i := 0; i <= last; i++ {
		r.m.Assign(r.v(i), r.memory(i))
	}
}

// memory returns the byte at I + offset.
func (r *Rewriter) memory(offset int) *rtl.MemoryAccess {
	return r.m.Mem(types.Byte, r.m.AddSigned(r.index(), int64(offset)))
}
