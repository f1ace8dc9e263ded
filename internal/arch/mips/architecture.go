// Package mips implements the decoder tree, disassembler and rewriter of
// the MIPS32 and MIPS64 architectures in both byte orders.
package mips

import (
	"encoding/binary"

	"github.com/retroenv/retrolift/internal/arch"
	"github.com/retroenv/retrolift/internal/decoder"
	"github.com/retroenv/retrolift/internal/image"
	"github.com/retroenv/retrolift/internal/testgen"
	"github.com/retroenv/retrolift/internal/types"
)

// Name is the registry name of the architecture.
const Name = "mips"

// Architecture is the MIPS architecture for one byte order and processor
// mode.
type Architecture struct {
	bigEndian bool
	wide      bool
}

var _ arch.Architecture = (*Architecture)(nil)

// New returns the architecture for the options.
func New(opts arch.Options) arch.Architecture {
	return &Architecture{
		bigEndian: opts.BigEndian,
		wide:      opts.Wide,
	}
}

// Name returns the registry name.
func (a *Architecture) Name() string {
	return Name
}

// ByteOrder returns the byte order of instruction words.
func (a *Architecture) ByteOrder() binary.ByteOrder {
	if a.bigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// InstructionBitSize returns the width of one instruction word.
func (a *Architecture) InstructionBitSize() int {
	return 32
}

// PointerType returns the type of code addresses.
func (a *Architecture) PointerType() *types.PrimitiveType {
	return RegistersFor(a.wide).Ptr
}

// NewDisassembler returns a disassembler reading from rdr.
func (a *Architecture) NewDisassembler(rdr *image.Reader, testGen testgen.Service) arch.Disassembler {
	return NewDisassembler(rdr, a.wide, testGen)
}

// NewRewriter returns a rewriter lifting the instructions read from rdr.
func (a *Architecture) NewRewriter(rdr *image.Reader, services arch.Services) arch.Rewriter {
	return NewRewriter(rdr, a.wide, services)
}

// DecoderStats returns statistics of the decoder tree.
func (a *Architecture) DecoderStats() decoder.Stats {
	return decoder.Collect(rootDecoder)
}
