package parisc

import (
	"github.com/retroenv/retrolift/internal/machine"
	"github.com/retroenv/retrolift/internal/rtl"
	"github.com/retroenv/retrolift/internal/types"
)

var (
	intrinsicCstd    = &rtl.Intrinsic{Name: "__store_coprocessor", HasSideEffect: true, ReturnType: types.Void}
	intrinsicSpaceID = &rtl.Intrinsic{Name: "__load_space_id", ReturnType: types.Word32}
)

// memoryAccess returns the memory expression of a memory operand and the
// base register update implied by the base modification completer.
func (r *Rewriter) memoryAccess(op machine.Operand) (*rtl.MemoryAccess, func()) {
	var (
		access   rtl.Expression
		base     *rtl.Identifier
		modified rtl.Expression
	)
	switch op := op.(type) {
	case machine.MemoryOperand:
		access = r.rewriteOp(op)
		if !isZeroRegister(op.Base) {
			base = r.binder.EnsureRegister(op.Base)
			modified = r.m.AddSigned(base, op.Offset)
		}
	case machine.IndexedOperand:
		access = r.rewriteOp(op)
		if !isZeroRegister(op.Base) {
			base = r.binder.EnsureRegister(op.Base)
			modified = r.indexedAddress(op)
		}
	default:
		panic("unexpected memory operand type")
	}
	mem := access.(*rtl.MemoryAccess)

	switch r.instr.BaseReg {
	case ModifyBefore:
		// the access uses the updated base
		if base == nil {
			return mem, func() {}
		}
		r.m.Assign(base, modified)
		return r.m.Mem(mem.Type, base), func() {}
	case ModifyAfter:
		if base == nil {
			return mem, func() {}
		}
		return r.m.Mem(mem.Type, base), func() { r.m.Assign(base, modified) }
	default:
		return mem, func() {}
	}
}

func (r *Rewriter) load() {
	mem, update := r.memoryAccess(r.operand(0))
	dst := r.rewriteDst(1)
	var src rtl.Expression = mem
	if mem.Type.BitSize < r.regs.Word.BitSize {
		src = r.m.Convert(mem, mem.Type, r.regs.Word)
	}
	r.assign(dst, src)
	update()
}

func (r *Rewriter) store() {
	value := r.rewriteSrc(0)
	mem, update := r.memoryAccess(r.operand(1))
	switch {
	case isZero(value):
		value = rtl.Zero(mem.Type)
	case value.DataType().BitSize > mem.Type.BitSize:
		value = r.m.Slice(mem.Type, value, 0)
	}
	r.m.Store(mem, value)
	update()
}

// cstd stores a coprocessor doubleword.
func (r *Rewriter) cstd() {
	value := r.rewriteSrc(0)
	mem, update := r.memoryAccess(r.operand(1))
	cop := rtl.NewConstant(types.Byte, uint64(r.instr.Coprocessor))
	r.m.SideEffect(r.m.Fn(intrinsicCstd, cop, value, mem.EffectiveAddress), machine.Linear)
	update()
}

func (r *Rewriter) fldw() {
	mem, update := r.memoryAccess(r.operand(0))
	r.assign(r.rewriteDst(1), mem)
	update()
}

func (r *Rewriter) fstw() {
	value := r.rewriteSrc(0)
	mem, update := r.memoryAccess(r.operand(1))
	r.m.Store(mem, value)
	update()
}

// ldsid loads the space id of a space register or the space selected by
// the upper bits of a base register.
func (r *Rewriter) ldsid() {
	src := r.rewriteSrc(0)
	r.assign(r.rewriteDst(1), r.widen(r.m.Fn(intrinsicSpaceID, src), false))
}

// mtsp moves a general register to a space register.
func (r *Rewriter) mtsp() {
	src := r.low32(r.rewriteSrc(0))
	r.assign(r.rewriteDst(1), src)
}
