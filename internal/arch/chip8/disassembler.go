package chip8

import (
	"iter"
	"slices"

	"github.com/retroenv/retrolift/internal/decoder"
	"github.com/retroenv/retrolift/internal/image"
	"github.com/retroenv/retrolift/internal/machine"
	"github.com/retroenv/retrolift/internal/testgen"
)

// Disassembler decodes big endian CHIP-8 instruction words.
type Disassembler struct {
	rdr     *image.Reader
	testGen testgen.Service

	addr machine.Address
	ops  []machine.Operand
}

var _ decoder.Context[uint16, *Instruction, Opcode] = (*Disassembler)(nil)

// NewDisassembler returns a disassembler reading from rdr.
func NewDisassembler(rdr *image.Reader, testGen testgen.Service) *Disassembler {
	if testGen == nil {
		testGen = testgen.Nop{}
	}
	return &Disassembler{
		rdr:     rdr,
		testGen: testGen,
	}
}

// DisassembleInstruction decodes the next instruction. It returns false if
// fewer than 2 bytes remain.
func (d *Disassembler) DisassembleInstruction() (*Instruction, bool) {
	d.ops = d.ops[:0]
	d.addr = d.rdr.Address()
	word, ok := d.rdr.TryReadBeUInt16()
	if !ok {
		return nil, false
	}

	instr := rootDecoder.Decode(word, d)
	instr.address = d.addr
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
func (d *Disassembler) NotYetImplemented(opcode Opcode, message string, _ uint16) *Instruction {
	d.testGen.ReportMissingDecoder("Chip8Dis", d.addr, opcodeSize, d.rdr, message)
	return &Instruction{
		Opcode: opcode,
		stub:   true,
	}
}
