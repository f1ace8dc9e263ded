package mips

import (
	"github.com/retroenv/retrolift/internal/machine"
	"github.com/retroenv/retrolift/internal/types"
)

// Registers is the register file of one processor mode. The floating point
// unit always runs with 32 bit registers, double precision values occupy an
// even and odd register pair.
type Registers struct {
	GP     []*machine.Register // r0 reads as zero, writes are discarded
	FP     []*machine.Register
	FCC    []*machine.Register // floating point condition codes
	FCR    []*machine.Register // floating point control registers
	CP0    []*machine.Register
	Hi     *machine.Register
	Lo     *machine.Register
	Word   *types.PrimitiveType
	Signed *types.PrimitiveType
	Ptr    *types.PrimitiveType
}

var (
	registers32 = newRegisters(types.Word32, types.Int32, types.Ptr32)
	registers64 = newRegisters(types.Word64, types.Int64, types.Ptr64)
)

func newRegisters(word, signed, ptr *types.PrimitiveType) *Registers {
	return &Registers{
		GP:  machine.Registers("r%d", 32, machine.GeneralPurpose, word),
		FP:  machine.Registers("f%d", 32, machine.FloatingPoint, types.Real32),
		FCC: machine.Registers("fcc%d", 8, machine.SpecialRegister, types.Bool),
		FCR: machine.Registers("fcr%d", 32, machine.ControlRegister, types.Word32),
		CP0: machine.Registers("cpr%d", 32, machine.ControlRegister, word),
		Hi: &machine.Register{
			Name:     "hi",
			Number:   32,
			Kind:     machine.SpecialRegister,
			DataType: word,
		},
		Lo: &machine.Register{
			Name:     "lo",
			Number:   33,
			Kind:     machine.SpecialRegister,
			DataType: word,
		},
		Word:   word,
		Signed: signed,
		Ptr:    ptr,
	}
}

// RegistersFor returns the register file of the 32 or 64 bit mode.
func RegistersFor(wide bool) *Registers {
	if wide {
		return registers64
	}
	return registers32
}

// Link register of jal and bal.
const regRA = 31

func isZeroRegister(r *machine.Register) bool {
	return r.Kind == machine.GeneralPurpose && r.Number == 0
}
