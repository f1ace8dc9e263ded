package chip8

import (
	"encoding/binary"

	"github.com/retroenv/retrolift/internal/arch"
	"github.com/retroenv/retrolift/internal/decoder"
	"github.com/retroenv/retrolift/internal/image"
	"github.com/retroenv/retrolift/internal/testgen"
	"github.com/retroenv/retrolift/internal/types"
)

// Name is the registry name of the architecture.
const Name = "chip8"

// Architecture is the CHIP-8 architecture.
type Architecture struct{}

var _ arch.Architecture = (*Architecture)(nil)

// New returns the architecture. CHIP-8 has a single byte order and mode,
// the options are ignored.
func New(arch.Options) arch.Architecture {
	return &Architecture{}
}

// Name returns the registry name.
func (a *Architecture) Name() string {
	return Name
}

// ByteOrder returns the byte order of instruction words.
func (a *Architecture) ByteOrder() binary.ByteOrder {
	return binary.BigEndian
}

// InstructionBitSize returns the width of one instruction word.
func (a *Architecture) InstructionBitSize() int {
	return 16
}

// PointerType returns the type of code addresses.
func (a *Architecture) PointerType() *types.PrimitiveType {
	return types.Ptr16
}

// NewDisassembler returns a disassembler reading from rdr.
func (a *Architecture) NewDisassembler(rdr *image.Reader, testGen testgen.Service) arch.Disassembler {
	return NewDisassembler(rdr, testGen)
}

// NewRewriter returns a rewriter lifting the instructions read from rdr.
func (a *Architecture) NewRewriter(rdr *image.Reader, services arch.Services) arch.Rewriter {
	return NewRewriter(rdr, services)
}

// DecoderStats returns statistics of the decoder tree.
func (a *Architecture) DecoderStats() decoder.Stats {
	return decoder.Collect(rootDecoder)
}
