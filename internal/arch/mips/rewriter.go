package mips

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

type rewriteFunc func(r *Rewriter)

// Rewriter lifts MIPS instructions to RTL clusters.
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

func (r *Rewriter) unsupported() {
	op := r.instr.Opcode
	if !r.reported.Contains(op) {
		r.reported.Add(op)
		r.host.Error(r.instr.Address(), "MIPS instruction '%s' is not supported yet.", r.instr)
	}
	r.testGen.ReportMissingRewriter("MipsRw", r.instr, op.String(), r.rdr,
		"MIPS instruction not supported yet")
	r.invalid()
}

func (r *Rewriter) invalid() {
	r.m.Reset()
	r.class = machine.Invalid
	r.m.Invalid()
}

func (r *Rewriter) nop() {
	r.m.Nop()
}

var rewriters map[Opcode]rewriteFunc

func init() {
	rewriters = map[Opcode]rewriteFunc{
		OpInvalid: (*Rewriter).invalid,
		OpNop:     (*Rewriter).nop,

		OpAdd:    (*Rewriter).add,
		OpAddi:   (*Rewriter).add,
		OpAddiu:  (*Rewriter).add,
		OpAddu:   (*Rewriter).add,
		OpDadd:   (*Rewriter).dadd,
		OpDaddi:  (*Rewriter).dadd,
		OpDaddiu: (*Rewriter).dadd,
		OpDaddu:  (*Rewriter).dadd,
		OpSub:    (*Rewriter).sub,
		OpSubu:   (*Rewriter).sub,
		OpDsub:   (*Rewriter).dsub,
		OpDsubu:  (*Rewriter).dsub,
		OpAnd:    (*Rewriter).and,
		OpAndi:   (*Rewriter).and,
		OpOr:     (*Rewriter).or,
		OpOri:    (*Rewriter).or,
		OpXor:    (*Rewriter).xor,
		OpXori:   (*Rewriter).xor,
		OpNor:    (*Rewriter).nor,
		OpLui:    (*Rewriter).lui,
		OpSlt:    (*Rewriter).slt,
		OpSlti:   (*Rewriter).slt,
		OpSltu:   (*Rewriter).sltu,
		OpSltiu:  (*Rewriter).sltu,

		OpSll:    (*Rewriter).sll,
		OpSllv:   (*Rewriter).sll,
		OpSrl:    (*Rewriter).srl,
		OpSrlv:   (*Rewriter).srl,
		OpSra:    (*Rewriter).sra,
		OpSrav:   (*Rewriter).sra,
		OpDsll:   (*Rewriter).dsll,
		OpDsllv:  (*Rewriter).dsll,
		OpDsll32: (*Rewriter).dsll32,
		OpDsrl:   (*Rewriter).dsrl,
		OpDsrlv:  (*Rewriter).dsrl,
		OpDsrl32: (*Rewriter).dsrl32,
		OpDsra:   (*Rewriter).dsra,
		OpDsrav:  (*Rewriter).dsra,
		OpDsra32: (*Rewriter).dsra32,

		OpMult:   (*Rewriter).mult,
		OpMultu:  (*Rewriter).multu,
		OpDmult:  (*Rewriter).dmult,
		OpDmultu: (*Rewriter).dmultu,
		OpMul:    (*Rewriter).mul,
		OpDiv:    (*Rewriter).div,
		OpDivu:   (*Rewriter).divu,
		OpDdiv:   (*Rewriter).ddiv,
		OpDdivu:  (*Rewriter).ddivu,
		OpMfhi:   (*Rewriter).mfhi,
		OpMflo:   (*Rewriter).mflo,
		OpMthi:   (*Rewriter).mthi,
		OpMtlo:   (*Rewriter).mtlo,
		OpMadd:   (*Rewriter).madd,
		OpMaddu:  (*Rewriter).maddu,
		OpMsub:   (*Rewriter).msub,
		OpMsubu:  (*Rewriter).msubu,

		OpMovz: (*Rewriter).movz,
		OpMovn: (*Rewriter).movn,
		OpMovf: (*Rewriter).movf,
		OpMovt: (*Rewriter).movt,
		OpClz:  (*Rewriter).clz,
		OpClo:  (*Rewriter).clo,
		OpSeb:  (*Rewriter).seb,
		OpSeh:  (*Rewriter).seh,
		OpExt:  (*Rewriter).ext,
		OpIns:  (*Rewriter).ins,

		OpLb:    (*Rewriter).load,
		OpLbu:   (*Rewriter).load,
		OpLh:    (*Rewriter).load,
		OpLhu:   (*Rewriter).load,
		OpLw:    (*Rewriter).load,
		OpLwu:   (*Rewriter).load,
		OpLd:    (*Rewriter).load,
		OpSb:    (*Rewriter).store,
		OpSh:    (*Rewriter).store,
		OpSw:    (*Rewriter).store,
		OpSd:    (*Rewriter).store,
		OpLwl:   (*Rewriter).lwl,
		OpLwr:   (*Rewriter).lwr,
		OpLdl:   (*Rewriter).ldl,
		OpLdr:   (*Rewriter).ldr,
		OpSwl:   (*Rewriter).swl,
		OpSwr:   (*Rewriter).swr,
		OpSdl:   (*Rewriter).sdl,
		OpSdr:   (*Rewriter).sdr,
		OpLl:    (*Rewriter).ll,
		OpLld:   (*Rewriter).lld,
		OpSc:    (*Rewriter).sc,
		OpScd:   (*Rewriter).scd,
		OpLwc1:  (*Rewriter).loadSingle,
		OpLwxc1: (*Rewriter).loadSingle,
		OpLdc1:  (*Rewriter).loadDouble,
		OpLdxc1: (*Rewriter).loadDouble,
		OpLuxc1: (*Rewriter).luxc1,
		OpSwc1:  (*Rewriter).storeSingle,
		OpSwxc1: (*Rewriter).storeSingle,
		OpSdc1:  (*Rewriter).storeDouble,
		OpSdxc1: (*Rewriter).storeDouble,
		OpLwc2:  (*Rewriter).loadCop2,
		OpLdc2:  (*Rewriter).loadCop2,
		OpSwc2:  (*Rewriter).storeCop2,
		OpSdc2:  (*Rewriter).storeCop2,
		OpCache: (*Rewriter).cache,
		OpPref:  (*Rewriter).nop,
		OpPrefx: (*Rewriter).nop,

		OpBeq:     (*Rewriter).beq,
		OpBeql:    (*Rewriter).beq,
		OpBne:     (*Rewriter).bne,
		OpBnel:    (*Rewriter).bne,
		OpBgez:    (*Rewriter).bgez,
		OpBgezl:   (*Rewriter).bgez,
		OpBgtz:    (*Rewriter).bgtz,
		OpBgtzl:   (*Rewriter).bgtz,
		OpBlez:    (*Rewriter).blez,
		OpBlezl:   (*Rewriter).blez,
		OpBltz:    (*Rewriter).bltz,
		OpBltzl:   (*Rewriter).bltz,
		OpBgezal:  (*Rewriter).bgezal,
		OpBgezall: (*Rewriter).bgezal,
		OpBltzal:  (*Rewriter).bltzal,
		OpBltzall: (*Rewriter).bltzal,
		OpBc1f:    (*Rewriter).bc1f,
		OpBc1t:    (*Rewriter).bc1t,
		OpJ:       (*Rewriter).jump,
		OpJal:     (*Rewriter).jal,
		OpJr:      (*Rewriter).jr,
		OpJalr:    (*Rewriter).jalr,

		OpTeq:   (*Rewriter).teq,
		OpTeqi:  (*Rewriter).teq,
		OpTne:   (*Rewriter).tne,
		OpTnei:  (*Rewriter).tne,
		OpTge:   (*Rewriter).tge,
		OpTgei:  (*Rewriter).tge,
		OpTgeu:  (*Rewriter).tgeu,
		OpTgeiu: (*Rewriter).tgeu,
		OpTlt:   (*Rewriter).tlt,
		OpTlti:  (*Rewriter).tlt,
		OpTltu:  (*Rewriter).tltu,
		OpTltiu: (*Rewriter).tltu,

		OpAddS:    (*Rewriter).fpuBinary,
		OpSubS:    (*Rewriter).fpuBinary,
		OpMulS:    (*Rewriter).fpuBinary,
		OpDivS:    (*Rewriter).fpuBinary,
		OpAddD:    (*Rewriter).fpuBinary,
		OpSubD:    (*Rewriter).fpuBinary,
		OpMulD:    (*Rewriter).fpuBinary,
		OpDivD:    (*Rewriter).fpuBinary,
		OpMovS:    (*Rewriter).fpuMove,
		OpMovD:    (*Rewriter).fpuMove,
		OpNegS:    (*Rewriter).fpuNeg,
		OpNegD:    (*Rewriter).fpuNeg,
		OpCEqS:    (*Rewriter).fpuCompare,
		OpCEqD:    (*Rewriter).fpuCompare,
		OpCLtS:    (*Rewriter).fpuCompare,
		OpCLtD:    (*Rewriter).fpuCompare,
		OpCLeS:    (*Rewriter).fpuCompare,
		OpCLeD:    (*Rewriter).fpuCompare,
		OpCvtDS:   (*Rewriter).convert,
		OpCvtDW:   (*Rewriter).convert,
		OpCvtDL:   (*Rewriter).convert,
		OpCvtSD:   (*Rewriter).convert,
		OpCvtSW:   (*Rewriter).convert,
		OpCvtWD:   (*Rewriter).convert,
		OpCvtWS:   (*Rewriter).convert,
		OpTruncLD: (*Rewriter).truncLD,
		OpMaddS:   (*Rewriter).fpuMac,
		OpMaddD:   (*Rewriter).fpuMac,
		OpMsubS:   (*Rewriter).fpuMac,
		OpMsubD:   (*Rewriter).fpuMac,
		OpNmaddS:  (*Rewriter).fpuMac,
		OpNmaddD:  (*Rewriter).fpuMac,
		OpNmsubS:  (*Rewriter).fpuMac,
		OpNmsubD:  (*Rewriter).fpuMac,
		OpMaddPs:  (*Rewriter).pairedMac,
		OpNmsubPs: (*Rewriter).pairedMac,
		OpMfc1:    (*Rewriter).mfc1,
		OpMtc1:    (*Rewriter).mtc1,
		OpDmfc1:   (*Rewriter).dmfc1,
		OpDmtc1:   (*Rewriter).dmtc1,
		OpCfc1:    (*Rewriter).cfc1,
		OpCtc1:    (*Rewriter).ctc1,

		OpBreak:   (*Rewriter).breakTrap,
		OpSyscall: (*Rewriter).syscall,
		OpSync:    (*Rewriter).sync,
		OpEret:    (*Rewriter).eret,
		OpWait:    (*Rewriter).wait,
		OpTlbp:    (*Rewriter).tlb,
		OpTlbr:    (*Rewriter).tlb,
		OpTlbwi:   (*Rewriter).tlb,
		OpTlbwr:   (*Rewriter).tlb,
		OpMfc0:    (*Rewriter).mfc0,
		OpDmfc0:   (*Rewriter).dmfc0,
		OpMtc0:    (*Rewriter).mtc0,
		OpDmtc0:   (*Rewriter).dmtc0,
		OpRdhwr:   (*Rewriter).rdhwr,
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

func (r *Rewriter) immediate(i int) machine.ImmediateOperand {
	return r.operand(i).(machine.ImmediateOperand)
}

// rewriteOp converts an operand to an expression. Register r0 reads as a
// zero constant, immediates are extended to the register width.
func (r *Rewriter) rewriteOp(op machine.Operand) rtl.Expression {
	switch op := op.(type) {
	case machine.RegisterOperand:
		if isZeroRegister(op.Register) {
			return rtl.Zero(op.Register.DataType)
		}
		return r.binder.EnsureRegister(op.Register)
	case machine.ImmediateOperand:
		return r.word(immediateValue(op))
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

// immediateValue returns the value of a sign or zero extended immediate.
func immediateValue(op machine.ImmediateOperand) uint64 {
	if op.Type.Domain == types.Signed {
		return uint64(op.Signed())
	}
	return op.Value
}

func (r *Rewriter) rewriteSrc(i int) rtl.Expression {
	return r.rewriteOp(r.operand(i))
}

// src returns operand i at the width of the operation. Word operations in
// 64 bit mode use the low half of the registers.
func (r *Rewriter) src(i int, dword bool) rtl.Expression {
	e := r.rewriteSrc(i)
	if dword || e.DataType().BitSize <= 32 {
		return e
	}
	if c, ok := e.(*rtl.Constant); ok {
		return rtl.NewConstant(types.Word32, c.Value)
	}
	return r.m.Slice(types.Word32, e, 0)
}

// rewriteDst returns the destination identifier of operand i, nil for r0.
func (r *Rewriter) rewriteDst(i int) *rtl.Identifier {
	reg := r.register(i)
	if isZeroRegister(reg) {
		return nil
	}
	return r.binder.EnsureRegister(reg)
}

// setResult assigns the result of an operation. Word results are sign
// extended in 64 bit mode, writes to r0 are discarded.
func (r *Rewriter) setResult(dst *rtl.Identifier, e rtl.Expression, dword bool) {
	if dst == nil {
		return
	}
	if !dword && dst.DataType().BitSize > e.DataType().BitSize {
		e = r.m.Convert(e, types.Int(e.DataType().BitSize), r.regs.Signed)
	}
	r.m.Assign(dst, e)
}

// word returns a constant of the register width.
func (r *Rewriter) word(v uint64) *rtl.Constant {
	return rtl.NewConstant(r.regs.Word, v)
}

func (r *Rewriter) reg(n int) *rtl.Identifier {
	return r.binder.EnsureRegister(r.regs.GP[n])
}

func (r *Rewriter) effectiveAddress(op machine.MemoryOperand) rtl.Expression {
	if isZeroRegister(op.Base) {
		return r.word(uint64(op.Offset))
	}
	return r.m.AddSigned(r.binder.EnsureRegister(op.Base), op.Offset)
}

func (r *Rewriter) indexedAddress(op machine.IndexedOperand) rtl.Expression {
	baseZero := isZeroRegister(op.Base)
	indexZero := isZeroRegister(op.Index)
	switch {
	case baseZero && indexZero:
		return r.word(0)
	case baseZero:
		return r.binder.EnsureRegister(op.Index)
	case indexZero:
		return r.binder.EnsureRegister(op.Base)
	default:
		return r.m.IAdd(r.binder.EnsureRegister(op.Base), r.binder.EnsureRegister(op.Index))
	}
}

// address returns the effective address of a memory operand without the
// access.
func (r *Rewriter) address(op machine.Operand) rtl.Expression {
	switch op := op.(type) {
	case machine.MemoryOperand:
		return r.effectiveAddress(op)
	case machine.IndexedOperand:
		return r.indexedAddress(op)
	default:
		panic("unexpected memory operand type")
	}
}

// nextAddress returns the address following the delay slot.
func (r *Rewriter) nextAddress() machine.Address {
	return r.instr.Address().Add(2 * instructionSize)
}

func isZero(e rtl.Expression) bool {
	c, ok := e.(*rtl.Constant)
	return ok && c.IsZero()
}
