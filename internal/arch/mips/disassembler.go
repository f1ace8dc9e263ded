package mips

import (
	"iter"
	"slices"

	"github.com/retroenv/retrolift/internal/decoder"
	"github.com/retroenv/retrolift/internal/image"
	"github.com/retroenv/retrolift/internal/machine"
	"github.com/retroenv/retrolift/internal/testgen"
)

const instructionSize = 4

// Disassembler decodes MIPS instructions in the byte order of its reader.
type Disassembler struct {
	rdr     *image.Reader
	testGen testgen.Service
	regs    *Registers
	wide    bool

	addr machine.Address
	ops  []machine.Operand
}

var _ decoder.Context[uint32, *Instruction, Opcode] = (*Disassembler)(nil)

// NewDisassembler returns a disassembler for the 32 bit or the 64 bit
// processor mode. Doubleword instructions decode as invalid in 32 bit mode.
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
	d.ops = d.ops[:0]
	d.addr = d.rdr.Address()
	word, ok := d.rdr.TryReadUInt32()
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

// MakeInstruction creates the instruction from the decoded operands.
func (d *Disassembler) MakeInstruction(class machine.InstrClass, opcode Opcode) *Instruction {
	return &Instruction{
		class:    class,
		operands: slices.Clone(d.ops),
		Opcode:   opcode,
	}
}

// Invalid returns a new invalid instruction.
func (d *Disassembler) Invalid() *Instruction {
	return &Instruction{
		class:  machine.Invalid,
		Opcode: OpInvalid,
	}
}

// NotYetImplemented reports the stub hit and returns an instruction without
// class and operands.
func (d *Disassembler) NotYetImplemented(opcode Opcode, message string, _ uint32) *Instruction {
	d.testGen.ReportMissingDecoder("MipsDis", d.addr, instructionSize, d.rdr, message)
	return &Instruction{
		Opcode: opcode,
		stub:   true,
	}
}
