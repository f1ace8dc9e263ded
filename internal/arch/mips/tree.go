package mips

import (
	"github.com/retroenv/retrolift/internal/bits"
	"github.com/retroenv/retrolift/internal/decoder"
	"github.com/retroenv/retrolift/internal/machine"
	"github.com/retroenv/retrolift/internal/types"
)

type (
	node     = decoder.Decoder[uint32, *Disassembler, *Instruction, Opcode]
	override = decoder.Override[uint32, *Disassembler, *Instruction, Opcode]
)

const (
	td   = machine.Transfer | machine.Delay
	ctd  = machine.ConditionalTransfer | machine.Delay
	ctdl = ctd | machine.Annul // branch likely, the delay slot is annulled if not taken
	trap = machine.Transfer | machine.Call
)

func instr(opcode Opcode, mutators ...mutator) node {
	return instrClass(opcode, machine.Linear, mutators...)
}

func instrClass(opcode Opcode, class machine.InstrClass, mutators ...mutator) node {
	return decoder.Instr[uint32, *Disassembler, *Instruction, Opcode](opcode, class, mutators...)
}

func mask(position, length int, tag string, decoders ...node) node {
	return decoder.Mask(bits.New(position, length), tag, decoders...)
}

func sparse(position, length int, tag string, defaultDecoder node, overrides ...override) node {
	return decoder.Sparse(bits.New(position, length), tag, defaultDecoder, overrides...)
}

func condition(position, length int, predicate func(uint32) bool, whenTrue, whenFalse node) node {
	return decoder.Cond(bits.New(position, length), predicate, whenTrue, whenFalse)
}

func nyi(opcode Opcode, message string) node {
	return decoder.Nyi[uint32, *Disassembler, *Instruction, Opcode](opcode, message)
}

var rootDecoder = newRootDecoder()

// Tree returns the root of the MIPS decoder tree.
func Tree() decoder.Decoder[uint32, *Disassembler, *Instruction, Opcode] {
	return rootDecoder
}

func newRootDecoder() node {
	invalid := instrClass(OpInvalid, machine.Invalid)

	special := sparse(0, 6, "special", invalid,
		override{0x00, condition(6, 20, eq0,
			instr(OpNop),
			instr(OpSll, rd, rt, shamt))},
		override{0x01, condition(16, 1, eq0,
			instr(OpMovf, rd, rs, fcc(18)),
			instr(OpMovt, rd, rs, fcc(18)))},
		override{0x02, condition(21, 1, eq0,
			instr(OpSrl, rd, rt, shamt),
			nyi(OpRotr, ""))},
		override{0x03, instr(OpSra, rd, rt, shamt)},
		override{0x04, instr(OpSllv, rd, rt, rs)},
		override{0x06, condition(6, 1, eq0,
			instr(OpSrlv, rd, rt, rs),
			nyi(OpRotrv, ""))},
		override{0x07, instr(OpSrav, rd, rt, rs)},
		override{0x08, instrClass(OpJr, td, rs)},
		override{0x09, instrClass(OpJalr, td|machine.Call, rd, rs)},
		override{0x0A, instr(OpMovz, rd, rs, rt)},
		override{0x0B, instr(OpMovn, rd, rs, rt)},
		override{0x0C, instrClass(OpSyscall, trap, code20)},
		override{0x0D, instrClass(OpBreak, trap, code20)},
		override{0x0F, instr(OpSync, u8(6, 5))},
		override{0x10, instr(OpMfhi, rd)},
		override{0x11, instr(OpMthi, rs)},
		override{0x12, instr(OpMflo, rd)},
		override{0x13, instr(OpMtlo, rs)},
		override{0x14, instr(OpDsllv, is64, rd, rt, rs)},
		override{0x16, instr(OpDsrlv, is64, rd, rt, rs)},
		override{0x17, instr(OpDsrav, is64, rd, rt, rs)},
		override{0x18, instr(OpMult, rs, rt)},
		override{0x19, instr(OpMultu, rs, rt)},
		override{0x1A, instr(OpDiv, rs, rt)},
		override{0x1B, instr(OpDivu, rs, rt)},
		override{0x1C, instr(OpDmult, is64, rs, rt)},
		override{0x1D, instr(OpDmultu, is64, rs, rt)},
		override{0x1E, instr(OpDdiv, is64, rs, rt)},
		override{0x1F, instr(OpDdivu, is64, rs, rt)},
		override{0x20, instr(OpAdd, rd, rs, rt)},
		override{0x21, instr(OpAddu, rd, rs, rt)},
		override{0x22, instr(OpSub, rd, rs, rt)},
		override{0x23, instr(OpSubu, rd, rs, rt)},
		override{0x24, instr(OpAnd, rd, rs, rt)},
		override{0x25, instr(OpOr, rd, rs, rt)},
		override{0x26, instr(OpXor, rd, rs, rt)},
		override{0x27, instr(OpNor, rd, rs, rt)},
		override{0x2A, instr(OpSlt, rd, rs, rt)},
		override{0x2B, instr(OpSltu, rd, rs, rt)},
		override{0x2C, instr(OpDadd, is64, rd, rs, rt)},
		override{0x2D, instr(OpDaddu, is64, rd, rs, rt)},
		override{0x2E, instr(OpDsub, is64, rd, rs, rt)},
		override{0x2F, instr(OpDsubu, is64, rd, rs, rt)},
		override{0x30, instr(OpTge, rs, rt)},
		override{0x31, instr(OpTgeu, rs, rt)},
		override{0x32, instr(OpTlt, rs, rt)},
		override{0x33, instr(OpTltu, rs, rt)},
		override{0x34, instr(OpTeq, rs, rt)},
		override{0x36, instr(OpTne, rs, rt)},
		override{0x38, instr(OpDsll, is64, rd, rt, shamt)},
		override{0x3A, condition(21, 1, eq0,
			instr(OpDsrl, is64, rd, rt, shamt),
			nyi(OpDrotr, ""))},
		override{0x3B, instr(OpDsra, is64, rd, rt, shamt)},
		override{0x3C, instr(OpDsll32, is64, rd, rt, shamt)},
		override{0x3E, instr(OpDsrl32, is64, rd, rt, shamt)},
		override{0x3F, instr(OpDsra32, is64, rd, rt, shamt)})

	regimm := sparse(16, 5, "regimm", invalid,
		override{0x00, instrClass(OpBltz, ctd, rs, pcRel)},
		override{0x01, instrClass(OpBgez, ctd, rs, pcRel)},
		override{0x02, instrClass(OpBltzl, ctdl, rs, pcRel)},
		override{0x03, instrClass(OpBgezl, ctdl, rs, pcRel)},
		override{0x08, instr(OpTgei, rs, simm16)},
		override{0x09, instr(OpTgeiu, rs, simm16)},
		override{0x0A, instr(OpTlti, rs, simm16)},
		override{0x0B, instr(OpTltiu, rs, simm16)},
		override{0x0C, instr(OpTeqi, rs, simm16)},
		override{0x0E, instr(OpTnei, rs, simm16)},
		override{0x10, instrClass(OpBltzal, ctd|machine.Call, rs, pcRel)},
		override{0x11, instrClass(OpBgezal, ctd|machine.Call, rs, pcRel)},
		override{0x12, instrClass(OpBltzall, ctdl|machine.Call, rs, pcRel)},
		override{0x13, instrClass(OpBgezall, ctdl|machine.Call, rs, pcRel)},
		override{0x1F, nyi(OpSynci, "")})

	special2 := sparse(0, 6, "special2", invalid,
		override{0x00, instr(OpMadd, rs, rt)},
		override{0x01, instr(OpMaddu, rs, rt)},
		override{0x02, instr(OpMul, rd, rs, rt)},
		override{0x04, instr(OpMsub, rs, rt)},
		override{0x05, instr(OpMsubu, rs, rt)},
		override{0x20, instr(OpClz, rd, rs)},
		override{0x21, instr(OpClo, rd, rs)},
		override{0x24, nyi(OpDclz, "")},
		override{0x25, nyi(OpDclo, "")},
		override{0x3F, nyi(OpSdbbp, "")})

	dext := nyi(OpDext, "")
	dins := nyi(OpDins, "")
	special3 := sparse(0, 6, "special3", invalid,
		override{0x00, instr(OpExt, rt, rs, u8(6, 5), extSize)},
		override{0x01, dext},
		override{0x02, dext},
		override{0x03, dext},
		override{0x04, instr(OpIns, rt, rs, u8(6, 5), insSize)},
		override{0x05, dins},
		override{0x06, dins},
		override{0x07, dins},
		override{0x20, sparse(6, 5, "bshfl", invalid,
			override{0x02, nyi(OpWsbh, "")},
			override{0x10, instr(OpSeb, rd, rt)},
			override{0x18, instr(OpSeh, rd, rt)})},
		override{0x24, nyi(OpDsbh, "dbshfl")},
		override{0x3B, instr(OpRdhwr, rt, u8(11, 5))})

	cop0 := condition(25, 1, eq0,
		sparse(21, 4, "cop0", invalid,
			override{0x0, instr(OpMfc0, rt, cp0)},
			override{0x1, instr(OpDmfc0, is64, rt, cp0)},
			override{0x4, instr(OpMtc0, rt, cp0)},
			override{0x5, instr(OpDmtc0, is64, rt, cp0)}),
		sparse(0, 6, "cop0-co", invalid,
			override{0x01, instr(OpTlbr)},
			override{0x02, instr(OpTlbwi)},
			override{0x06, instr(OpTlbwr)},
			override{0x08, instr(OpTlbp)},
			override{0x18, instrClass(OpEret, machine.Transfer)},
			override{0x1F, nyi(OpDeret, "")},
			override{0x20, instr(OpWait)}))

	fpuS := sparse(0, 6, "cop1-s", invalid,
		override{0x00, instr(OpAddS, fd, fs, ft)},
		override{0x01, instr(OpSubS, fd, fs, ft)},
		override{0x02, instr(OpMulS, fd, fs, ft)},
		override{0x03, instr(OpDivS, fd, fs, ft)},
		override{0x04, nyi(OpSqrtS, "")},
		override{0x05, nyi(OpAbsS, "")},
		override{0x06, instr(OpMovS, fd, fs)},
		override{0x07, instr(OpNegS, fd, fs)},
		override{0x0D, nyi(OpTruncWS, "")},
		override{0x21, instr(OpCvtDS, fd, fs)},
		override{0x24, instr(OpCvtWS, fd, fs)},
		override{0x32, instr(OpCEqS, fcc(8), fs, ft)},
		override{0x3C, instr(OpCLtS, fcc(8), fs, ft)},
		override{0x3E, instr(OpCLeS, fcc(8), fs, ft)})

	fpuD := sparse(0, 6, "cop1-d", invalid,
		override{0x00, instr(OpAddD, fd, fs, ft)},
		override{0x01, instr(OpSubD, fd, fs, ft)},
		override{0x02, instr(OpMulD, fd, fs, ft)},
		override{0x03, instr(OpDivD, fd, fs, ft)},
		override{0x04, nyi(OpSqrtD, "")},
		override{0x05, nyi(OpAbsD, "")},
		override{0x06, instr(OpMovD, fd, fs)},
		override{0x07, instr(OpNegD, fd, fs)},
		override{0x09, instr(OpTruncLD, fd, fs)},
		override{0x0D, nyi(OpTruncWD, "")},
		override{0x20, instr(OpCvtSD, fd, fs)},
		override{0x24, instr(OpCvtWD, fd, fs)},
		override{0x25, nyi(OpCvtLD, "")},
		override{0x32, instr(OpCEqD, fcc(8), fs, ft)},
		override{0x3C, instr(OpCLtD, fcc(8), fs, ft)},
		override{0x3E, instr(OpCLeD, fcc(8), fs, ft)})

	cop1 := sparse(21, 5, "cop1", invalid,
		override{0x00, instr(OpMfc1, rt, fs)},
		override{0x01, instr(OpDmfc1, is64, rt, fs)},
		override{0x02, instr(OpCfc1, rt, fcr)},
		override{0x04, instr(OpMtc1, rt, fs)},
		override{0x05, instr(OpDmtc1, is64, rt, fs)},
		override{0x06, instr(OpCtc1, rt, fcr)},
		override{0x08, mask(16, 2, "bc1",
			instrClass(OpBc1f, ctd, fcc(18), pcRel),
			instrClass(OpBc1t, ctd, fcc(18), pcRel),
			nyi(OpBc1fl, ""),
			nyi(OpBc1tl, ""))},
		override{0x10, fpuS},
		override{0x11, fpuD},
		override{0x14, sparse(0, 6, "cop1-w", invalid,
			override{0x20, instr(OpCvtSW, fd, fs)},
			override{0x21, instr(OpCvtDW, fd, fs)})},
		override{0x15, sparse(0, 6, "cop1-l", invalid,
			override{0x21, instr(OpCvtDL, fd, fs)})},
		override{0x16, nyi(OpInvalid, "cop1 paired single")})

	cop1x := sparse(0, 6, "cop1x", invalid,
		override{0x00, instr(OpLwxc1, fd, idx(types.Word32))},
		override{0x01, instr(OpLdxc1, fd, idx(types.Word64))},
		override{0x05, instr(OpLuxc1, fd, idx(types.Word64))},
		override{0x08, instr(OpSwxc1, fs, idx(types.Word32))},
		override{0x09, instr(OpSdxc1, fs, idx(types.Word64))},
		override{0x0F, instr(OpPrefx, u8(11, 5), idx(types.Byte))},
		override{0x20, instr(OpMaddS, fd, fr, fs, ft)},
		override{0x21, instr(OpMaddD, fd, fr, fs, ft)},
		override{0x26, instr(OpMaddPs, fd, fr, fs, ft)},
		override{0x28, instr(OpMsubS, fd, fr, fs, ft)},
		override{0x29, instr(OpMsubD, fd, fr, fs, ft)},
		override{0x30, instr(OpNmaddS, fd, fr, fs, ft)},
		override{0x31, instr(OpNmaddD, fd, fr, fs, ft)},
		override{0x38, instr(OpNmsubS, fd, fr, fs, ft)},
		override{0x39, instr(OpNmsubD, fd, fr, fs, ft)},
		override{0x3E, instr(OpNmsubPs, fd, fr, fs, ft)})

	return mask(26, 6, "primary",
		special,
		regimm,
		instrClass(OpJ, td, jTarget),
		instrClass(OpJal, td|machine.Call, jTarget),
		instrClass(OpBeq, ctd, rs, rt, pcRel),
		instrClass(OpBne, ctd, rs, rt, pcRel),
		instrClass(OpBlez, ctd, rs, pcRel),
		instrClass(OpBgtz, ctd, rs, pcRel),

		instr(OpAddi, rt, rs, simm16),
		instr(OpAddiu, rt, rs, simm16),
		instr(OpSlti, rt, rs, simm16),
		instr(OpSltiu, rt, rs, simm16),
		instr(OpAndi, rt, rs, uimm16),
		instr(OpOri, rt, rs, uimm16),
		instr(OpXori, rt, rs, uimm16),
		instr(OpLui, rt, uimm16),

		cop0,
		cop1,
		nyi(OpCop2, ""),
		cop1x,
		instrClass(OpBeql, ctdl, rs, rt, pcRel),
		instrClass(OpBnel, ctdl, rs, rt, pcRel),
		instrClass(OpBlezl, ctdl, rs, pcRel),
		instrClass(OpBgtzl, ctdl, rs, pcRel),

		instr(OpDaddi, is64, rt, rs, simm16),
		instr(OpDaddiu, is64, rt, rs, simm16),
		instr(OpLdl, is64, rt, mem(types.Word64)),
		instr(OpLdr, is64, rt, mem(types.Word64)),
		special2,
		nyi(OpJalx, ""),
		invalid,
		special3,

		instr(OpLb, rt, mem(types.SByte)),
		instr(OpLh, rt, mem(types.Int16)),
		instr(OpLwl, rt, mem(types.Word32)),
		instr(OpLw, rt, mem(types.Int32)),
		instr(OpLbu, rt, mem(types.Byte)),
		instr(OpLhu, rt, mem(types.UInt16)),
		instr(OpLwr, rt, mem(types.Word32)),
		instr(OpLwu, is64, rt, mem(types.UInt32)),

		instr(OpSb, rt, mem(types.Byte)),
		instr(OpSh, rt, mem(types.Word16)),
		instr(OpSwl, rt, mem(types.Word32)),
		instr(OpSw, rt, mem(types.Word32)),
		instr(OpSdl, is64, rt, mem(types.Word64)),
		instr(OpSdr, is64, rt, mem(types.Word64)),
		instr(OpSwr, rt, mem(types.Word32)),
		instr(OpCache, u8(16, 5), mem(types.Byte)),

		instr(OpLl, rt, mem(types.Int32)),
		instr(OpLwc1, ft, mem(types.Word32)),
		instr(OpLwc2, u8(16, 5), mem(types.Word32)),
		instr(OpPref, u8(16, 5), mem(types.Byte)),
		instr(OpLld, is64, rt, mem(types.Word64)),
		instr(OpLdc1, ft, mem(types.Word64)),
		instr(OpLdc2, u8(16, 5), mem(types.Word64)),
		instr(OpLd, is64, rt, mem(types.Word64)),

		instr(OpSc, rt, mem(types.Word32)),
		instr(OpSwc1, ft, mem(types.Word32)),
		instr(OpSwc2, u8(16, 5), mem(types.Word32)),
		invalid,
		instr(OpScd, is64, rt, mem(types.Word64)),
		instr(OpSdc1, ft, mem(types.Word64)),
		instr(OpSdc2, u8(16, 5), mem(types.Word64)),
		instr(OpSd, is64, rt, mem(types.Word64)))
}
