package parisc

import (
	"iter"
	"slices"

	"github.com/retroenv/retrolift/internal/decoder"
	"github.com/retroenv/retrolift/internal/image"
	"github.com/retroenv/retrolift/internal/machine"
	"github.com/retroenv/retrolift/internal/testgen"
)

const instructionSize = 4

// Disassembler decodes PA-RISC instructions from an image reader. It holds
// the per instruction decode state that the decoder tree mutators fill in.
type Disassembler struct {
	rdr     *image.Reader
	testGen testgen.Service
	regs    *Registers
	wide    bool

	addr        machine.Address
	ops         []machine.Operand
	annul       bool
	zero        bool
	sign        SignExtension
	cond        *Condition
	baseReg     BaseRegMod
	coprocessor int
	fpFormat    FpFormat
}

var _ decoder.Context[uint32, *Instruction, Opcode] = (*Disassembler)(nil)

// NewDisassembler returns a disassembler for the 32 bit or the 64 bit
// processor mode.
func NewDisassembler(rdr *image.Reader, wide bool, testGen testgen.Service) *Disassembler {
	if testGen == nil {
		testGen = testgen.Nop{}
	}
	return &Disassembler{
		rdr:     rdr,
		testGen: testGen,
		regs:    RegistersFor(wide),
		wide:    wide,
	}
}

// DisassembleInstruction decodes the next instruction. It returns false if
// fewer than 4 bytes remain.
func (d *Disassembler) DisassembleInstruction() (*Instruction, bool) {
	d.reset()
	d.addr = d.rdr.Address()
	word, ok := d.rdr.TryReadBeUInt32()
	if !ok {
		return nil, false
	}

	instr := rootDecoder.Decode(word, d)
	instr.address = d.addr
	instr.length = int(d.rdr.Address() - d.addr)
	if word == 0 {
		instr.class |= machine.Zero
	}
	return instr, true
}

// Next implements the disassembler interface of the architecture registry.
func (d *Disassembler) Next() (machine.Instruction, bool) {
	instr, ok := d.DisassembleInstruction()
	if !ok {
		return nil, false
	}
	return instr, true
}

// Instructions returns all remaining instructions in address order.
func (d *Disassembler) Instructions() iter.Seq[*Instruction] {
	return func(yield func(*Instruction) bool) {
		for {
			instr, ok := d.DisassembleInstruction()
			if !ok || !yield(instr) {
				return
			}
		}
	}
}

func (d *Disassembler) reset() {
	d.ops = d.ops[:0]
	d.annul = false
	d.zero = false
	d.sign = NoSign
	d.cond = nil
	d.baseReg = NoMod
	d.coprocessor = -1
	d.fpFormat = NoFormat
}

// MakeInstruction creates the instruction from the collected decode state.
func (d *Disassembler) MakeInstruction(class machine.InstrClass, opcode Opcode) *Instruction {
	return &Instruction{
		class:       class,
		operands:    slices.Clone(d.ops),
		Opcode:      opcode,
		Condition:   d.cond,
		Annul:       d.annul,
		Zero:        d.zero,
		Sign:        d.sign,
		BaseReg:     d.baseReg,
		FpFormat:    d.fpFormat,
		Coprocessor: d.coprocessor,
	}
}

// Invalid returns a new invalid instruction.
func (d *Disassembler) Invalid() *Instruction {
	return &Instruction{
		class:       machine.Invalid,
		Opcode:      OpInvalid,
		Coprocessor: -1,
	}
}

// NotYetImplemented reports the stub hit and returns an instruction without
// class and operands that the rewriter treats as not supported.
func (d *Disassembler) NotYetImplemented(opcode Opcode, message string, _ uint32) *Instruction {
	d.testGen.ReportMissingDecoder("PaRiscDis", d.addr, instructionSize, d.rdr, message)
	return &Instruction{
		Opcode:      opcode,
		Coprocessor: -1,
		stub:        true,
	}
}
