package parisc

import (
	"fmt"

	"github.com/retroenv/retrolift/internal/machine"
	"github.com/retroenv/retrolift/internal/types"
)

// Registers is the register file of one processor mode.
type Registers struct {
	GP     []*machine.Register // r0 reads as zero, writes are discarded
	FP     []*machine.Register // 64 bit floating point registers
	FP32   []*machine.Register // left and right single precision halves
	Space  []*machine.Register // space registers sr0..sr7
	Word   *types.PrimitiveType
	Signed *types.PrimitiveType
	Ptr    *types.PrimitiveType
}

var (
	registers32 = newRegisters(types.Word32, types.Int32, types.Ptr32)
	registers64 = newRegisters(types.Word64, types.Int64, types.Ptr64)
)

func newRegisters(word, signed, ptr *types.PrimitiveType) *Registers {
	fp32 := make([]*machine.Register, 64)
	for i := range fp32 {
		half := "L"
		if i&1 != 0 {
			half = "R"
		}
		fp32[i] = &machine.Register{
			Name:     fmt.Sprintf("fr%d%s", i>>1, half),
			Number:   i,
			Kind:     machine.FloatingPoint,
			DataType: types.Real32,
		}
	}

	return &Registers{
		GP:     machine.Registers("r%d", 32, machine.GeneralPurpose, word),
		FP:     machine.Registers("fr%d", 32, machine.FloatingPoint, types.Real64),
		FP32:   fp32,
		Space:  machine.Registers("sr%d", 8, machine.SpaceRegister, types.Word32),
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

// Return pointer and millicode link registers.
const (
	regRP = 2
	regMP = 31
)

func isZeroRegister(r *machine.Register) bool {
	return r.Kind == machine.GeneralPurpose && r.Number == 0
}
