package chip8

import (
	"iter"

	"github.com/retroenv/retrolift/internal/arch"
	"github.com/retroenv/retrolift/internal/host"
	"github.com/retroenv/retrolift/internal/image"
	"github.com/retroenv/retrolift/internal/machine"
	"github.com/retroenv/retrolift/internal/rtl"
	"github.com/retroenv/retrolift/internal/storage"
	"github.com/retroenv/retrolift/internal/testgen"
	"github.com/retroenv/retrolift/internal/types"
	"github.com/retroenv/retrogolib/set"
)

// Interpreter services without a machine level equivalent.
var (
	intrinsicClearScreen  = &rtl.Intrinsic{Name: "__clear_screen", HasSideEffect: true, ReturnType: types.Void}
	intrinsicDrawSprite   = &rtl.Intrinsic{Name: "__draw_sprite", HasSideEffect: true, ReturnType: types.Byte}
	intrinsicRandom       = &rtl.Intrinsic{Name: "__random", HasSideEffect: true, ReturnType: types.Byte}
	intrinsicIsKeyPressed = &rtl.Intrinsic{Name: "__is_key_pressed", ReturnType: types.Bool}
	intrinsicWaitKey      = &rtl.Intrinsic{Name: "__wait_key", HasSideEffect: true, ReturnType: types.Byte}
	intrinsicFontAddress  = &rtl.Intrinsic{Name: "__font_address", ReturnType: types.Word16}
)

type rewriteFunc func(r *Rewriter)

// Rewriter lifts CHIP-8 instructions to RTL clusters.
type Rewriter struct {
	rdr     *image.Reader
	binder  storage.Binder
	host    host.Host
	testGen testgen.Service

	m        *rtl.Emitter
	instr    *Instruction
	class    machine.InstrClass
	reported set.Set[Opcode]
}

var _ arch.Rewriter = (*Rewriter)(nil)

// NewRewriter returns a rewriter for the instructions starting at the
// current position of rdr.
func NewRewriter(rdr *image.Reader, services arch.Services) *Rewriter {
	services = services.WithDefaults()
	return &Rewriter{
		rdr:      rdr,
		binder:   services.Binder,
		host:     services.Host,
		testGen:  services.TestGen,
		m:        rtl.NewEmitter(types.Ptr16),
		reported: set.New[Opcode](),
	}
}

// Clusters returns one cluster per instruction, starting over at the start
// address of the rewriter on every range.
func (r *Rewriter) Clusters() iter.Seq[*rtl.Cluster] {
	return func(yield func(*rtl.Cluster) bool) {
		dis := NewDisassembler(r.rdr.Clone(), r.testGen)
		for instr := range dis.Instructions() {
			if !yield(r.rewrite(instr)) {
				return
			}
		}
	}
}

func (r *Rewriter) rewrite(instr *Instruction) *rtl.Cluster {
	r.m.Reset()
	r.instr = instr
	r.class = instr.Class()

	fn, ok := rewriters[instr.Opcode]
	if instr.IsStub() || !ok {
		fn = (*Rewriter).unsupported
	}
	fn(r)

	ops := r.m.Operations()
	if len(ops) == 0 {
		r.m.Nop()
		ops = r.m.Operations()
	}
	return rtl.NewCluster(instr.Address(), instr.Length(), r.class, ops)
}

func (r *Rewriter) unsupported() {
	op := r.instr.Opcode
	if !r.reported.Contains(op) {
		r.reported.Add(op)
		r.host.Error(r.instr.Address(), "CHIP-8 instruction '%s' is not supported yet.", r.instr)
	}
	r.testGen.ReportMissingRewriter("Chip8Rw", r.instr, op.String(), r.rdr,
		"CHIP-8 instruction not supported yet")
	r.invalid()
}

func (r *Rewriter) invalid() {
	r.m.Reset()
	r.class = machine.Invalid
	r.m.Invalid()
}

var rewriters map[Opcode]rewriteFunc

func init() {
	rewriters = map[Opcode]rewriteFunc{
		OpInvalid: (*Rewriter).invalid,

		OpCls:    (*Rewriter).cls,
		OpRet:    (*Rewriter).ret,
		OpJp:     (*Rewriter).jp,
		OpJpV0:   (*Rewriter).jpV0,
		OpCall:   (*Rewriter).call,
		OpSeImm:  (*Rewriter).se,
		OpSeReg:  (*Rewriter).se,
		OpSneImm: (*Rewriter).sne,
		OpSneReg: (*Rewriter).sne,
		OpSkp:    (*Rewriter).skp,
		OpSknp:   (*Rewriter).sknp,

		OpLdImm:  (*Rewriter).ld,
		OpLdReg:  (*Rewriter).ld,
		OpLdI:    (*Rewriter).ld,
		OpLdVxDT: (*Rewriter).ld,
		OpLdDTVx: (*Rewriter).ld,
		OpLdSTVx: (*Rewriter).ld,
		OpAddImm: (*Rewriter).addImm,
		OpAddReg: (*Rewriter).addReg,
		OpAddIVx: (*Rewriter).addIVx,
		OpOr:     (*Rewriter).or,
		OpAnd:    (*Rewriter).and,
		OpXor:    (*Rewriter).xor,
		OpSub:    (*Rewriter).sub,
		OpSubn:   (*Rewriter).subn,
		OpShr:    (*Rewriter).shr,
		OpShl:    (*Rewriter).shl,
		OpRnd:    (*Rewriter).rnd,

		OpDrw:       (*Rewriter).drw,
		OpLdVxK:     (*Rewriter).waitKey,
		OpLdFVx:     (*Rewriter).font,
		OpLdBVx:     (*Rewriter).bcd,
		OpStoreRegs: (*Rewriter).storeRegs,
		OpLoadRegs:  (*Rewriter).loadRegs,
	}
}

// HasRewriter returns whether an opcode has a lifting routine.
func HasRewriter(op Opcode) bool {
	_, ok := rewriters[op]
	return ok
}

func (r *Rewriter) operand(i int) machine.Operand {
	return r.instr.Operands()[i]
}

func (r *Rewriter) register(i int) *machine.Register {
	return r.operand(i).(machine.RegisterOperand).Register
}

func (r *Rewriter) dst(i int) *rtl.Identifier {
	return r.binder.EnsureRegister(r.register(i))
}

// src converts an operand to an expression.
func (r *Rewriter) src(i int) rtl.Expression {
	switch op := r.operand(i).(type) {
	case machine.RegisterOperand:
		return r.binder.EnsureRegister(op.Register)
	case machine.ImmediateOperand:
		return rtl.NewConstant(types.Byte, op.Value)
	case machine.AddressOperand:
		return rtl.NewConstant(types.Word16, uint64(op.Address))
	default:
		panic("unexpected operand type")
	}
}

func (r *Rewriter) target(i int) machine.Address {
	return r.operand(i).(machine.AddressOperand).Address
}

func (r *Rewriter) flag() *rtl.Identifier {
	return r.binder.EnsureRegister(V[regVF])
}

func (r *Rewriter) v(n int) *rtl.Identifier {
	return r.binder.EnsureRegister(V[n])
}

func (r *Rewriter) index() *rtl.Identifier {
	return r.binder.EnsureRegister(I)
}
