package parisc

import (
	"github.com/retroenv/retrolift/internal/decoder"
	"github.com/retroenv/retrolift/internal/machine"
	"github.com/retroenv/retrolift/internal/types"
)

type (
	node     = decoder.Decoder[uint32, *Disassembler, *Instruction, Opcode]
	override = decoder.Override[uint32, *Disassembler, *Instruction, Opcode]
)

const (
	td  = machine.Transfer | machine.Delay
	ctd = machine.ConditionalTransfer | machine.Delay
)

func instr(opcode Opcode, mutators ...mutator) node {
	return instrClass(opcode, machine.Linear, mutators...)
}

func instrClass(opcode Opcode, class machine.InstrClass, mutators ...mutator) node {
	return decoder.Instr[uint32, *Disassembler, *Instruction, Opcode](opcode, class, mutators...)
}

func mask(position, length int, tag string, decoders ...node) node {
	return decoder.Mask(beField(position, length), tag, decoders...)
}

func sparse(position, length int, tag string, defaultDecoder node, overrides ...override) node {
	return decoder.Sparse(beField(position, length), tag, defaultDecoder, overrides...)
}

func condition(position, length int, predicate func(uint32) bool, whenTrue, whenFalse node) node {
	return decoder.Cond(beField(position, length), predicate, whenTrue, whenFalse)
}

func nyi(opcode Opcode, message string) node {
	return decoder.Nyi[uint32, *Disassembler, *Instruction, Opcode](opcode, message)
}

// rootDecoder is shared by all disassemblers, it is never modified after
// construction.
var rootDecoder = newRootDecoder()

// Tree returns the root of the PA-RISC decoder tree.
func Tree() decoder.Decoder[uint32, *Disassembler, *Instruction, Opcode] {
	return rootDecoder
}

func newRootDecoder() node {
	invalid := instrClass(OpInvalid, machine.Invalid)

	systemOp := sparse(19, 8, "system", invalid,
		override{0x00, instrClass(OpBreak, machine.Call|machine.Transfer, u8(27, 5), u16(6, 13))},
		override{0x20, nyi(OpSync, "sync")},
		override{0x60, nyi(OpRfi, "")},
		override{0x65, nyi(OpRfir, "")},
		override{0x6B, nyi(OpSsm, "")},
		override{0x73, nyi(OpRsm, "")},
		override{0xC3, nyi(OpMtsm, "")},
		override{0x85, condition(16, 2, eq0,
			instr(OpLdsid, r6, r27),
			instr(OpLdsid, sr(16), r27))},
		override{0xC1, instr(OpMtsp, r11, sr(16))},
		override{0x25, nyi(OpMfsp, "")},
		override{0xC2, nyi(OpMtctl, "")},
		override{0x45, nyi(OpMfctl, "")})

	memMgmt := mask(19, 1, "memMgmt",
		nyi(OpInvalid, "memMgmt-19:0"),
		sparse(18, 8, "memMgmt-1", invalid,
			override{0x60, nyi(OpIdtlbt, "")},
			override{0x48, nyi(OpPdtlb, "")},
			override{0x49, nyi(OpPdtlbe, "")},
			override{0x58, nyi(OpPdtlb, "")},
			override{0x4A, nyi(OpFdc, "fdc (index)")},
			override{0xCA, nyi(OpFdc, "fdc (imm)")},
			override{0x4B, nyi(OpFdce, "")},
			override{0x4E, nyi(OpPdc, "")},
			override{0x4F, nyi(OpFic, "")},
			override{0x46, nyi(OpProbe, "")},
			override{0xC6, nyi(OpProbei, "")},
			override{0x47, nyi(OpProbe, "")},
			override{0xC7, nyi(OpProbei, "")},
			override{0x4D, nyi(OpLpa, "")},
			override{0x4C, nyi(OpLci, "")}))

	arithLog := sparse(20, 6, "arithLog", invalid,
		override{0x18, mask(26, 1, "add",
			instr(OpAdd, cf16Add, r11, r6, r27),
			instr(OpAdd, cf16Add64, r11, r6, r27))},
		override{0x38, nyi(OpAddo, "")},
		override{0x1C, instr(OpAddC, cf16Add, r11, r6, r27)},
		override{0x3C, nyi(OpAddco, "")},
		override{0x19, nyi(OpShladd, "")},
		override{0x39, nyi(OpShladdo, "")},
		override{0x1A, instr(OpShladd, r11, u(24, 2, types.Byte), r6, r27)},
		override{0x3A, nyi(OpShladdo, "")},
		override{0x1B, nyi(OpShladd, "")},
		override{0x3B, nyi(OpShladdo, "")},
		override{0x10, nyi(OpSub, "")},
		override{0x30, nyi(OpSubo, "")},
		override{0x13, nyi(OpSubt, "")},
		override{0x33, nyi(OpSubto, "")},
		override{0x14, instr(OpSubB, cf16CmpSub, r11, r6, r27)},
		override{0x34, nyi(OpSubbo, "")},
		override{0x11, nyi(OpDs, "")},
		override{0x00, nyi(OpAndcm, "")},
		override{0x08, instr(OpAnd, cf16Log, r11, r6, r27)},
		override{0x09, instr(OpOr, cf16Log, r11, r6, r27)},
		override{0x0A, nyi(OpXor, "")},
		override{0x0E, nyi(OpUxor, "")},
		override{0x22, nyi(OpComclr, "")},
		override{0x26, nyi(OpUaddcm, "")},
		override{0x27, nyi(OpUaddcmt, "")},
		override{0x28, instr(OpAddL, cf16Add, r11, r6, r27)},
		override{0x29, nyi(OpSh1addl, "")},
		override{0x2A, instr(OpShladd, r11, u(24, 2, types.Byte), r6, r27)},
		override{0x2B, nyi(OpSh3addl, "")},
		override{0x2E, nyi(OpDcor, "")},
		override{0x2F, nyi(OpIdcor, "")})

	indexMem := mask(19, 1, "indexMem",
		sparse(22, 4, "indexMem-index", invalid,
			override{0x0, instr(OpLdb, indexedSpace(types.Byte, 6, 11, 16), modifyIndexed(11), r27)},
			override{0x1, instr(OpLdh, indexedSpace(types.Word16, 6, 11, 16), modifyIndexed(11), r27)},
			override{0x2, instr(OpLdw, indexedSpace(types.Word32, 6, 11, 16), modifyIndexed(11), r27)},
			override{0x3, nyi(OpLdd, "ldd (index)")},
			override{0x4, nyi(OpLdda, "ldda (index)")},
			override{0x5, nyi(OpLdcd, "ldcd (index)")},
			override{0x6, nyi(OpLdwa, "ldwa (index)")},
			override{0x7, nyi(OpLdcw, "ldcw (index)")}),
		mask(22, 4, "indexMem-short",
			instr(OpLdb, memShort(types.Byte), modifyShort, r27),
			instr(OpLdh, memShort(types.Word16), modifyShort, r27),
			instr(OpLdw, memShort(types.Word32), modifyShort, r27),
			nyi(OpLdd, "ldd (short)"),
			nyi(OpLdda, "ldda (short)"),
			nyi(OpLdcd, "ldcd (short)"),
			nyi(OpLdwa, "ldwa (short)"),
			nyi(OpLdcw, "ldcw (short)"),
			instr(OpStb, r27, memShort(types.Byte), modifyShort),
			instr(OpSth, r27, memShort(types.Word16), modifyShort),
			instr(OpStw, r27, memShort(types.Word32), modifyShort),
			nyi(OpStd, "std (short)"),
			nyi(OpStby, "stby (short)"),
			nyi(OpStdby, "stdby (short)"),
			instr(OpStwa, r27, memShort(types.Word32), modifyShort),
			nyi(OpStda, "stda (short)")))

	shortFloatDisp := beFields(11, 5)
	coprW := condition(23, 3, isFpuProcessor,
		mask(19, 1, "coprW",
			mask(22, 1, "coprW-index",
				nyi(OpFldw, "fldw (index)"),
				nyi(OpFstw, "fstw (index)")),
			mask(22, 1, "coprW-short",
				instr(OpFldw, mem(types.Real32, 6, shortFloatDisp, lowSignExt5), frsng(27, 5, 24, 1)),
				instr(OpFstw, frsng(27, 5, 24, 1), mem(types.Real32, 6, shortFloatDisp, lowSignExt5)))),
		invalid)

	copr := mask(21, 2, "copr",
		nyi(OpInvalid, "FP 0C zero"),
		nyi(OpInvalid, "FP 0C one"),
		nyi(OpInvalid, "FP 0C two"),
		mask(16, 3, "copr-3",
			nyi(OpFadd, ""),
			nyi(OpFsub, ""),
			instr(OpFmpy, fpFmt, fr6, fr11, fr27),
			nyi(OpFdiv, ""),

			invalid,
			invalid,
			invalid,
			invalid))

	floatDecoder := mask(21, 2, "float",
		nyi(OpInvalid, "FP 0E zero"),
		nyi(OpInvalid, "FP 0E one"),
		instr(OpFcmp, cf27FloatingPoint, frsng(6, 5, 24, 1), frsng(11, 5, 19, 1)),
		nyi(OpInvalid, "FP 0E three"))

	im11 := beFields(21, 11)
	subi := mask(20, 1, "subi",
		instr(OpSubi, cf16CmpSub, sPerm(types.Int32, im11, lowSignExt11), r6, r11),
		instr(OpSubiTsv, cf16CmpSub, sPerm(types.Int32, im11, lowSignExt11), r6, r11))

	addi := mask(20, 1, "addi",
		instr(OpAddi, cf16Add, sPerm(types.Int32, im11, lowSignExt11), r6, r11),
		nyi(OpInvalid, "addi-tsv"))

	extract := mask(19, 2, "extract",
		nyi(OpInvalid, "extract-00"),
		nyi(OpInvalid, "extract-01"),
		nyi(OpInvalid, "extract-10"),
		instr(OpExtrw, cf16ShExt, se(21), r6, u(22, 5, types.Byte), uFrom(32, 27, 5), r11))

	deposit := mask(19, 2, "deposit",
		nyi(OpInvalid, "depw-var"),
		nyi(OpInvalid, "depw-fixed"),
		nyi(OpInvalid, "depwi-var"),
		instr(OpDepwi, cf16ShExt, zeroCompleter(21), s(11, 5, types.Byte), uFrom(31, 22, 5),
			uPerm(beFields(0, 0, 27, 5), assemble6), r6))

	disp17 := beFields(11, 5, 19, 11, 31, 1)
	branch := mask(16, 3, "branch",
		instrClass(OpBL, td, pcRel(assemble17, disp17), r6, annul(30)),
		nyi(OpGate, ""),
		instrClass(OpBlr, td, r11, r6, annul(30)),
		nyi(OpBlrpush, ""),

		invalid,
		instrClass(OpBL, td, pcRel(assemble22, beFields(6, 5, 11, 5, 19, 11, 31, 1)), reg(regRP), annul(30)),
		instrClass(OpBv, td, indexed(types.Ptr32, 6, 11), annul(30)),
		nyi(OpBve, ""))

	disp14 := beFields(16, 2, 18, 14)
	disp16a := beFields(16, 2, 18, 11, 31, 1)
	disp12 := beFields(19, 11, 31, 1)
	left21 := left(beFields(11, 21), assemble21, 11)

	return mask(0, 6, "root",
		systemOp,
		memMgmt,
		arithLog,
		indexMem,

		nyi(OpInvalid, "spopN"),
		nyi(OpDiag, ""),
		nyi(OpFmpyadd, ""),
		invalid,

		instr(OpLdil, left21, r6),
		coprW,
		instr(OpAddil, left21, r6, reg(1)),
		mask(19, 1, "cstd",
			instr(OpCstd, cop(23, 3), r27, indexedSpace(types.Real64, 6, 11, 16), modifyIndexed(11)),
			instr(OpCstd, cop(23, 3), r27, memShifted(types.Real64, beFields(11, 5), concat, 6, 16))),

		copr,
		instr(OpLdo, mem(types.Word32, 6, disp14, assemble16), r11),
		floatDecoder,
		nyi(OpInvalid, "productSpecific"),

		// 0x10
		instr(OpLdb, mem(types.Byte, 6, disp14, assemble16), r11),
		instr(OpLdh, mem(types.Word16, 6, disp14, assemble16), r11),
		instr(OpLdw, mem(types.Word32, 6, disp14, assemble16), r11),
		instr(OpLdw, mem(types.Word32, 6, disp16a, assemble16a), modifyByDisplacement(disp16a, assemble16a), r11),

		invalid,
		invalid,
		invalid,
		invalid,

		instr(OpStb, r11, mem(types.Byte, 6, disp14, assemble16)),
		instr(OpSth, r11, mem(types.Word16, 6, disp14, assemble16)),
		instr(OpStw, r11, mem(types.Word32, 6, disp14, assemble16)),
		instr(OpStw, r11, mem(types.Word32, 6, disp16a, assemble16a), modifyByDisplacement(disp16a, assemble16a)),

		invalid,
		invalid,
		invalid,
		invalid,

		// 0x20
		instrClass(OpCmpb, ctd, cf16Cmp32True, r11, r6, pcRel(assemble12, disp12), annul(30)),
		instrClass(OpCmpib, ctd, cf16Cmp32True, lse(11, 5), r6, pcRel(assemble12, disp12), annul(30)),
		instrClass(OpCmpb, ctd, cf16Cmp32False, r11, r6, pcRel(assemble12, disp12), annul(30)),
		instrClass(OpCmpib, ctd, cf16Cmp32False, lse(11, 5), r6, pcRel(assemble12, disp12), annul(30)),

		nyi(OpComiclr, ""),
		subi,
		nyi(OpFmpysub, ""),
		invalid,

		instrClass(OpAddb, ctd, cf16Add3, r11, r6, pcRel(assemble12, disp12), annul(30)),
		instrClass(OpAddib, ctd, cfAddBitSize, lse(11, 5), r6, pcRel(assemble12, disp12), annul(30)),
		instrClass(OpAddb, ctd, cf16Add3Neg, r11, r6, pcRel(assemble12, disp12), annul(30)),
		instrClass(OpAddib, ctd, cfAddBitSizeNeg, lse(11, 5), r6, pcRel(assemble12, disp12), annul(30)),

		nyi(OpInvalid, "addit"),
		addi,
		invalid,
		invalid,

		// 0x30
		nyi(OpBvb, ""),
		nyi(OpBb, ""),
		instrClass(OpMovb, ctd, cf16ShExt, r11, r6, pcRel(assemble12, disp12), annul(30)),
		instrClass(OpMovib, ctd, cf16ShExt, lse(11, 5), r6, pcRel(assemble12, disp12), annul(30)),

		extract,
		deposit,
		invalid,
		invalid,

		instrClass(OpBe, td, memShifted(types.Ptr32, disp17, assemble17, 6, 16), annul(30)),
		instrClass(OpBeL, td|machine.Call, memShifted(types.Ptr32, disp17, assemble17, 6, 16), annul(30)),
		branch,
		invalid,

		invalid,
		invalid,
		invalid,
		invalid)
}
