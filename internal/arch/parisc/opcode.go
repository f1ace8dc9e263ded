package parisc

import "strings"

// Opcode identifies a PA-RISC instruction. Completers that are part of the
// name are separated by an underscore, b_l is displayed as b,l.
type Opcode uint16

// Opcodes.
const (
	OpInvalid Opcode = iota
	OpAdd
	OpAddC
	OpAddL
	OpAddb
	OpAddi
	OpAddib
	OpAddil
	OpAddco
	OpAddit
	OpAddo
	OpAnd
	OpAndcm
	OpBL
	OpBb
	OpBe
	OpBeL
	OpBlr
	OpBlrpush
	OpBreak
	OpBv
	OpBve
	OpBvb
	OpCmpb
	OpCmpib
	OpComclr
	OpComiclr
	OpCstd
	OpDcor
	OpDiag
	OpDs
	OpDepwi
	OpExtrw
	OpFadd
	OpFcmp
	OpFdc
	OpFdce
	OpFdiv
	OpFic
	OpFldw
	OpFmpy
	OpFmpyadd
	OpFmpysub
	OpFstw
	OpFsub
	OpGate
	OpIdcor
	OpIdtlbt
	OpLci
	OpLdb
	OpLdcd
	OpLdcw
	OpLdd
	OpLdda
	OpLdh
	OpLdil
	OpLdo
	OpLdsid
	OpLdw
	OpLdwa
	OpLpa
	OpMfctl
	OpMfsp
	OpMovb
	OpMovib
	OpMtctl
	OpMtsm
	OpMtsp
	OpOr
	OpPdc
	OpPdtlb
	OpPdtlbe
	OpProbe
	OpProbei
	OpRfi
	OpRfir
	OpRsm
	OpSh1addl
	OpSh3addl
	OpShladd
	OpShladdo
	OpSsm
	OpStb
	OpStby
	OpStd
	OpStda
	OpStdby
	OpSth
	OpStw
	OpStwa
	OpSub
	OpSubB
	OpSubbo
	OpSubi
	OpSubiTsv
	OpSubo
	OpSubt
	OpSubto
	OpSync
	OpSyncdma
	OpUaddcm
	OpUaddcmt
	OpUxor
	OpXor

	opcodeCount
)

var opcodeNames = [opcodeCount]string{
	OpInvalid: "invalid",
	OpAdd:     "add",
	OpAddC:    "add_c",
	OpAddL:    "add_l",
	OpAddb:    "addb",
	OpAddi:    "addi",
	OpAddib:   "addib",
	OpAddil:   "addil",
	OpAddco:   "addco",
	OpAddit:   "addit",
	OpAddo:    "addo",
	OpAnd:     "and",
	OpAndcm:   "andcm",
	OpBL:      "b_l",
	OpBb:      "bb",
	OpBe:      "be",
	OpBeL:     "be_l",
	OpBlr:     "blr",
	OpBlrpush: "blrpush",
	OpBreak:   "break",
	OpBv:      "bv",
	OpBve:     "bve",
	OpBvb:     "bvb",
	OpCmpb:    "cmpb",
	OpCmpib:   "cmpib",
	OpComclr:  "comclr",
	OpComiclr: "comiclr",
	OpCstd:    "cstd",
	OpDcor:    "dcor",
	OpDiag:    "diag",
	OpDs:      "ds",
	OpDepwi:   "depwi",
	OpExtrw:   "extrw",
	OpFadd:    "fadd",
	OpFcmp:    "fcmp",
	OpFdc:     "fdc",
	OpFdce:    "fdce",
	OpFdiv:    "fdiv",
	OpFic:     "fic",
	OpFldw:    "fldw",
	OpFmpy:    "fmpy",
	OpFmpyadd: "fmpyadd",
	OpFmpysub: "fmpysub",
	OpFstw:    "fstw",
	OpFsub:    "fsub",
	OpGate:    "gate",
	OpIdcor:   "idcor",
	OpIdtlbt:  "idtlbt",
	OpLci:     "lci",
	OpLdb:     "ldb",
	OpLdcd:    "ldcd",
	OpLdcw:    "ldcw",
	OpLdd:     "ldd",
	OpLdda:    "ldda",
	OpLdh:     "ldh",
	OpLdil:    "ldil",
	OpLdo:     "ldo",
	OpLdsid:   "ldsid",
	OpLdw:     "ldw",
	OpLdwa:    "ldwa",
	OpLpa:     "lpa",
	OpMfctl:   "mfctl",
	OpMfsp:    "mfsp",
	OpMovb:    "movb",
	OpMovib:   "movib",
	OpMtctl:   "mtctl",
	OpMtsm:    "mtsm",
	OpMtsp:    "mtsp",
	OpOr:      "or",
	OpPdc:     "pdc",
	OpPdtlb:   "pdtlb",
	OpPdtlbe:  "pdtlbe",
	OpProbe:   "probe",
	OpProbei:  "probei",
	OpRfi:     "rfi",
	OpRfir:    "rfir",
	OpRsm:     "rsm",
	OpSh1addl: "sh1addl",
	OpSh3addl: "sh3addl",
	OpShladd:  "shladd",
	OpShladdo: "shladdo",
	OpSsm:     "ssm",
	OpStb:     "stb",
	OpStby:    "stby",
	OpStd:     "std",
	OpStda:    "stda",
	OpStdby:   "stdby",
	OpSth:     "sth",
	OpStw:     "stw",
	OpStwa:    "stwa",
	OpSub:     "sub",
	OpSubB:    "sub_b",
	OpSubbo:   "subbo",
	OpSubi:    "subi",
	OpSubiTsv: "subi_tsv",
	OpSubo:    "subo",
	OpSubt:    "subt",
	OpSubto:   "subto",
	OpSync:    "sync",
	OpSyncdma: "syncdma",
	OpUaddcm:  "uaddcm",
	OpUaddcmt: "uaddcmt",
	OpUxor:    "uxor",
	OpXor:     "xor",
}

func (o Opcode) String() string {
	if o >= opcodeCount {
		return "invalid"
	}
	return opcodeNames[o]
}

// Display returns the assembler spelling of the opcode.
func (o Opcode) Display() string {
	return strings.ReplaceAll(o.String(), "_", ",")
}
