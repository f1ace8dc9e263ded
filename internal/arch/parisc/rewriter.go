package parisc

import (
	"iter"

	"github.com/retroenv/retrolift/internal/arch"
	"github.com/retroenv/retrolift/internal/host"
	"github.com/retroenv/retrolift/internal/image"
	"github.com/retroenv/retrolift/internal/machine"
	"github.com/retroenv/retrolift/internal/rtl"
	"github.com/retroenv/retrolift/internal/storage"
	"github.com/retroenv/retrolift/internal/testgen"
	"github.com/retroenv/retrogolib/set"
)

type rewriteFunc func(r *Rewriter)

// Rewriter lifts PA-RISC instructions to RTL clusters.
type Rewriter struct {
	rdr     *image.Reader
	wide    bool
	regs    *Registers
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
func NewRewriter(rdr *image.Reader, wide bool, services arch.Services) *Rewriter {
	services = services.WithDefaults()
	regs := RegistersFor(wide)
	return &Rewriter{
		rdr:      rdr,
		wide:     wide,
		regs:     regs,
		binder:   services.Binder,
		host:     services.Host,
		testGen:  services.TestGen,
		m:        rtl.NewEmitter(regs.Ptr),
		reported: set.New[Opcode](),
	}
}

// Clusters returns one cluster per instruction, starting over at the start
// address of the rewriter on every range.
func (r *Rewriter) Clusters() iter.Seq[*rtl.Cluster] {
	return func(yield func(*rtl.Cluster) bool) {
		dis := NewDisassembler(r.rdr.Clone(), r.wide, r.testGen)
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

// unsupported reports an instruction that has no lifting routine.
func (r *Rewriter) unsupported() {
	op := r.instr.Opcode
	if !r.reported.Contains(op) {
		r.reported.Add(op)
		r.host.Error(r.instr.Address(), "PA-RISC instruction '%s' is not supported yet.", r.instr)
	}
	r.testGen.ReportMissingRewriter("PaRiscRw", r.instr, op.String(), r.rdr,
		"PA-RISC instruction not supported yet")
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

		OpAdd:     (*Rewriter).add,
		OpAddC:    (*Rewriter).addCarry,
		OpAddL:    (*Rewriter).addLogical,
		OpAddi:    (*Rewriter).addi,
		OpAddil:   (*Rewriter).addil,
		OpAnd:     (*Rewriter).and,
		OpOr:      (*Rewriter).or,
		OpShladd:  (*Rewriter).shladd,
		OpSubB:    (*Rewriter).subBorrow,
		OpSubi:    (*Rewriter).subi,
		OpSubiTsv: (*Rewriter).subiTrap,
		OpExtrw:   (*Rewriter).extrw,
		OpDepwi:   (*Rewriter).depwi,
		OpLdil:    (*Rewriter).ldil,
		OpLdo:     (*Rewriter).ldo,

		OpLdb:  (*Rewriter).load,
		OpLdh:  (*Rewriter).load,
		OpLdw:  (*Rewriter).load,
		OpStb:  (*Rewriter).store,
		OpSth:  (*Rewriter).store,
		OpStw:  (*Rewriter).store,
		OpStwa: (*Rewriter).store,
		OpCstd: (*Rewriter).cstd,

		OpFldw: (*Rewriter).fldw,
		OpFstw: (*Rewriter).fstw,
		OpFmpy: (*Rewriter).fmpy,
		OpFcmp: (*Rewriter).fcmp,

		OpAddb:  (*Rewriter).addb,
		OpAddib: (*Rewriter).addb,
		OpBL:    (*Rewriter).branchLink,
		OpBe:    (*Rewriter).branchExternal,
		OpBeL:   (*Rewriter).branchExternal,
		OpBlr:   (*Rewriter).blr,
		OpBv:    (*Rewriter).bv,
		OpCmpb:  (*Rewriter).cmpb,
		OpCmpib: (*Rewriter).cmpb,
		OpMovb:  (*Rewriter).movb,
		OpMovib: (*Rewriter).movb,

		OpBreak: (*Rewriter).breakTrap,
		OpLdsid: (*Rewriter).ldsid,
		OpMtsp:  (*Rewriter).mtsp,
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

// rewriteOp converts a source operand to an expression.
func (r *Rewriter) rewriteOp(op machine.Operand) rtl.Expression {
	switch op := op.(type) {
	case machine.RegisterOperand:
		if isZeroRegister(op.Register) {
			return rtl.Zero(op.Register.DataType)
		}
		return r.binder.EnsureRegister(op.Register)
	case machine.ImmediateOperand:
		return rtl.NewConstant(op.Type, op.Value)
	case machine.LeftImmediateOperand:
		return r.word(uint64(int64(int32(op.Value))))
	case machine.AddressOperand:
		return r.m.Ptr(op.Address)
	case machine.MemoryOperand:
		return r.m.Mem(op.Type, r.effectiveAddress(op))
	case machine.IndexedOperand:
		return r.m.Mem(op.Type, r.indexedAddress(op))
	default:
		panic("unexpected operand type")
	}
}

// rewriteSrc converts the register or immediate operand i.
func (r *Rewriter) rewriteSrc(i int) rtl.Expression {
	return r.rewriteOp(r.operand(i))
}

// rewriteDst returns the destination identifier of operand i, nil for r0.
func (r *Rewriter) rewriteDst(i int) *rtl.Identifier {
	reg := r.operand(i).(machine.RegisterOperand).Register
	if isZeroRegister(reg) {
		return nil
	}
	return r.binder.EnsureRegister(reg)
}

// word returns a constant of the register width.
func (r *Rewriter) word(v uint64) *rtl.Constant {
	return rtl.NewConstant(r.regs.Word, v)
}

func (r *Rewriter) reg(n int) *rtl.Identifier {
	return r.binder.EnsureRegister(r.regs.GP[n])
}

// baseExpr returns the expression of a base or index register.
func (r *Rewriter) baseExpr(reg *machine.Register) rtl.Expression {
	if isZeroRegister(reg) {
		return nil
	}
	return r.binder.EnsureRegister(reg)
}

func (r *Rewriter) effectiveAddress(op machine.MemoryOperand) rtl.Expression {
	base := r.baseExpr(op.Base)
	if base == nil {
		return r.word(uint64(op.Offset))
	}
	return r.m.AddSigned(base, op.Offset)
}

func (r *Rewriter) indexedAddress(op machine.IndexedOperand) rtl.Expression {
	base := r.baseExpr(op.Base)
	index := r.baseExpr(op.Index)
	switch {
	case base == nil && index == nil:
		return r.word(0)
	case base == nil:
		return index
	case index == nil:
		return base
	default:
		return r.m.IAdd(base, index)
	}
}

// assign writes src to dst, writes to r0 are discarded.
func (r *Rewriter) assign(dst *rtl.Identifier, src rtl.Expression) {
	if dst != nil {
		r.m.Assign(dst, src)
	}
}

// nextAddress returns the address of the instruction following the delay
// slot, the target of nullification and the return address of calls.
func (r *Rewriter) nextAddress() machine.Address {
	return r.instr.Address().Add(2 * instructionSize)
}

// withAnnul adds the annul flag to a transfer class.
func (r *Rewriter) withAnnul(class machine.InstrClass) machine.InstrClass {
	if r.instr.Annul {
		return class | machine.Annul
	}
	return class
}
