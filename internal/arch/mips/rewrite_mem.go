package mips

import (
	"github.com/retroenv/retrolift/internal/machine"
	"github.com/retroenv/retrolift/internal/rtl"
	"github.com/retroenv/retrolift/internal/types"
)

var (
	intrinsicLwl = &rtl.Intrinsic{Name: "__lwl", ReturnType: types.Word32}
	intrinsicLwr = &rtl.Intrinsic{Name: "__lwr", ReturnType: types.Word32}
	intrinsicLdl = &rtl.Intrinsic{Name: "__ldl", ReturnType: types.Word64}
	intrinsicLdr = &rtl.Intrinsic{Name: "__ldr", ReturnType: types.Word64}
	intrinsicSwl = &rtl.Intrinsic{Name: "__swl", ReturnType: types.Word32}
	intrinsicSwr = &rtl.Intrinsic{Name: "__swr", ReturnType: types.Word32}
	intrinsicSdl = &rtl.Intrinsic{Name: "__sdl", ReturnType: types.Word64}
	intrinsicSdr = &rtl.Intrinsic{Name: "__sdr", ReturnType: types.Word64}

	intrinsicLoadLinked32       = &rtl.Intrinsic{Name: "__load_linked_32", HasSideEffect: true, ReturnType: types.Int32}
	intrinsicLoadLinked64       = &rtl.Intrinsic{Name: "__load_linked_64", HasSideEffect: true, ReturnType: types.Word64}
	intrinsicStoreConditional32 = &rtl.Intrinsic{Name: "__store_conditional_32", HasSideEffect: true, ReturnType: types.Word32}
	intrinsicStoreConditional64 = &rtl.Intrinsic{Name: "__store_conditional_64", HasSideEffect: true, ReturnType: types.Word64}

	intrinsicWriteCpr2  = &rtl.Intrinsic{Name: "__write_cpr2", HasSideEffect: true, ReturnType: types.Void}
	intrinsicReadCpr2   = &rtl.Intrinsic{Name: "__read_cpr2_32", HasSideEffect: true, ReturnType: types.Word32}
	intrinsicReadCpr264 = &rtl.Intrinsic{Name: "__read_cpr2_64", HasSideEffect: true, ReturnType: types.Word64}
	intrinsicCache      = &rtl.Intrinsic{Name: "__cache", HasSideEffect: true, ReturnType: types.Void}
)

func (r *Rewriter) memory(i int) *rtl.MemoryAccess {
	return r.rewriteSrc(i).(*rtl.MemoryAccess)
}

// load extends narrow values to the register width according to the
// signedness of the access.
func (r *Rewriter) load() {
	dst := r.rewriteDst(0)
	if dst == nil {
		return
	}
	mem := r.memory(1)
	if mem.Type.BitSize == r.regs.Word.BitSize {
		r.m.Assign(dst, mem)
		return
	}
	to := types.UInt(r.regs.Word.BitSize)
	if mem.Type.Domain == types.Signed {
		to = r.regs.Signed
	}
	r.m.Assign(dst, r.m.Convert(mem, mem.Type, to))
}

func (r *Rewriter) store() {
	mem := r.memory(1)
	r.m.Store(mem, r.storeValue(0, mem.Type))
}

// storeValue truncates operand i to the size of the memory access.
func (r *Rewriter) storeValue(i int, dt *types.PrimitiveType) rtl.Expression {
	value := r.rewriteSrc(i)
	if c, ok := value.(*rtl.Constant); ok {
		return rtl.NewConstant(dt, c.Value)
	}
	if value.DataType().BitSize > dt.BitSize {
		return r.m.Slice(dt, value, 0)
	}
	return value
}

// unalignedLoad merges the bytes of the unaligned access into the register.
func (r *Rewriter) unalignedLoad(intrinsic *rtl.Intrinsic, dword bool) {
	dst := r.rewriteDst(0)
	if dst == nil {
		return
	}
	r.setResult(dst, r.m.Fn(intrinsic, r.src(0, dword), r.memory(1)), dword)
}

func (r *Rewriter) lwl() { r.unalignedLoad(intrinsicLwl, false) }
func (r *Rewriter) lwr() { r.unalignedLoad(intrinsicLwr, false) }
func (r *Rewriter) ldl() { r.unalignedLoad(intrinsicLdl, true) }
func (r *Rewriter) ldr() { r.unalignedLoad(intrinsicLdr, true) }

// unalignedStore writes the memory merged with the register bytes.
func (r *Rewriter) unalignedStore(intrinsic *rtl.Intrinsic, dword bool) {
	mem := r.memory(1)
	r.m.Store(mem, r.m.Fn(intrinsic, mem, r.src(0, dword)))
}

func (r *Rewriter) swl() { r.unalignedStore(intrinsicSwl, false) }
func (r *Rewriter) swr() { r.unalignedStore(intrinsicSwr, false) }
func (r *Rewriter) sdl() { r.unalignedStore(intrinsicSdl, true) }
func (r *Rewriter) sdr() { r.unalignedStore(intrinsicSdr, true) }

func (r *Rewriter) ll()  { r.loadLinked(intrinsicLoadLinked32, false) }
func (r *Rewriter) lld() { r.loadLinked(intrinsicLoadLinked64, true) }

func (r *Rewriter) loadLinked(intrinsic *rtl.Intrinsic, dword bool) {
	app := r.m.Fn(intrinsic, r.memory(1))
	dst := r.rewriteDst(0)
	if dst == nil {
		r.m.SideEffect(app, machine.Linear)
		return
	}
	r.setResult(dst, app, dword)
}

func (r *Rewriter) sc()  { r.storeConditional(intrinsicStoreConditional32, false) }
func (r *Rewriter) scd() { r.storeConditional(intrinsicStoreConditional64, true) }

// storeConditional sets the register to 1 if the store succeeded.
func (r *Rewriter) storeConditional(intrinsic *rtl.Intrinsic, dword bool) {
	app := r.m.Fn(intrinsic, r.memory(1), r.src(0, dword))
	dst := r.rewriteDst(0)
	if dst == nil {
		r.m.SideEffect(app, machine.Linear)
		return
	}
	r.setResult(dst, app, dword)
}

func (r *Rewriter) loadSingle() {
	r.m.Assign(r.fpSingle(0), r.memory(1))
}

func (r *Rewriter) loadDouble() {
	r.m.Assign(r.fpDouble(0), r.memory(1))
}

// luxc1 ignores the low 3 bits of the address.
func (r *Rewriter) luxc1() {
	ea := r.m.And(r.address(r.operand(1)), r.word(^uint64(7)))
	r.m.Assign(r.fpDouble(0), r.m.Mem(types.Word64, ea))
}

func (r *Rewriter) storeSingle() {
	r.m.Store(r.memory(1), r.fpSingle(0))
}

func (r *Rewriter) storeDouble() {
	r.m.Store(r.memory(1), r.fpDouble(0))
}

func (r *Rewriter) cop2Register() rtl.Expression {
	return rtl.NewConstant(types.Byte, r.immediate(0).Value)
}

func (r *Rewriter) loadCop2() {
	r.m.SideEffect(r.m.Fn(intrinsicWriteCpr2, r.cop2Register(), r.memory(1)), machine.Linear)
}

func (r *Rewriter) storeCop2() {
	mem := r.memory(1)
	intrinsic := intrinsicReadCpr2
	if mem.Type.BitSize == 64 {
		intrinsic = intrinsicReadCpr264
	}
	r.m.Store(mem, r.m.Fn(intrinsic, r.cop2Register()))
}

func (r *Rewriter) cache() {
	op := rtl.NewConstant(types.Byte, r.immediate(0).Value)
	r.m.SideEffect(r.m.Fn(intrinsicCache, op, r.address(r.operand(1))), machine.Linear)
}
