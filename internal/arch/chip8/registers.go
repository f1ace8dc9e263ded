package chip8

import (
	"github.com/retroenv/retrolift/internal/machine"
	"github.com/retroenv/retrolift/internal/types"
)

// Memory layout of the interpreter.
const (
	ProgramStart = 0x200 // programs are loaded at this address
	MaxAddress   = 0xFFF // 4KB address space
)

// Register numbers of the special registers, following V0 to VF.
const (
	regI  = 16
	regDT = 17
	regST = 18
	regVF = 15
)

var (
	// V are the 16 general purpose byte registers, VF doubles as flag.
	V = machine.Registers("V%X", 16, machine.GeneralPurpose, types.Byte)

	// I is the 16 bit address register.
	I = &machine.Register{Name: "I", Number: regI, Kind: machine.SpecialRegister, DataType: types.Word16}

	// DT is the delay timer.
	DT = &machine.Register{Name: "DT", Number: regDT, Kind: machine.SpecialRegister, DataType: types.Byte}

	// ST is the sound timer.
	ST = &machine.Register{Name: "ST", Number: regST, Kind: machine.SpecialRegister, DataType: types.Byte}
)
