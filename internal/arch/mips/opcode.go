package mips

import "strings"

// Opcode identifies a MIPS instruction. Format suffixes are separated by an
// underscore, add_s is displayed as add.s.
type Opcode uint16

// Opcodes.
const (
	OpInvalid Opcode = iota
	OpAbsD
	OpAbsS
	OpAdd
	OpAddD
	OpAddS
	OpAddi
	OpAddiu
	OpAddu
	OpAnd
	OpAndi
	OpBc1f
	OpBc1fl
	OpBc1t
	OpBc1tl
	OpBeq
	OpBeql
	OpBgez
	OpBgezal
	OpBgezall
	OpBgezl
	OpBgtz
	OpBgtzl
	OpBlez
	OpBlezl
	OpBltz
	OpBltzal
	OpBltzall
	OpBltzl
	OpBne
	OpBnel
	OpBreak
	OpCEqD
	OpCEqS
	OpCLeD
	OpCLeS
	OpCLtD
	OpCLtS
	OpCache
	OpCfc1
	OpClo
	OpClz
	OpCop2
	OpCtc1
	OpCvtDL
	OpCvtDS
	OpCvtDW
	OpCvtLD
	OpCvtSD
	OpCvtSW
	OpCvtWD
	OpCvtWS
	OpDadd
	OpDaddi
	OpDaddiu
	OpDaddu
	OpDclo
	OpDclz
	OpDdiv
	OpDdivu
	OpDeret
	OpDext
	OpDins
	OpDiv
	OpDivD
	OpDivS
	OpDivu
	OpDmfc0
	OpDmfc1
	OpDmtc0
	OpDmtc1
	OpDmult
	OpDmultu
	OpDrotr
	OpDsbh
	OpDsll
	OpDsll32
	OpDsllv
	OpDsra
	OpDsra32
	OpDsrav
	OpDsrl
	OpDsrl32
	OpDsrlv
	OpDsub
	OpDsubu
	OpEret
	OpExt
	OpIns
	OpJ
	OpJal
	OpJalr
	OpJalx
	OpJr
	OpLb
	OpLbu
	OpLd
	OpLdc1
	OpLdc2
	OpLdl
	OpLdr
	OpLdxc1
	OpLh
	OpLhu
	OpLl
	OpLld
	OpLui
	OpLuxc1
	OpLw
	OpLwc1
	OpLwc2
	OpLwl
	OpLwr
	OpLwu
	OpLwxc1
	OpMadd
	OpMaddD
	OpMaddPs
	OpMaddS
	OpMaddu
	OpMfc0
	OpMfc1
	OpMfhi
	OpMflo
	OpMovD
	OpMovS
	OpMovf
	OpMovn
	OpMovt
	OpMovz
	OpMsub
	OpMsubD
	OpMsubS
	OpMsubu
	OpMtc0
	OpMtc1
	OpMthi
	OpMtlo
	OpMul
	OpMulD
	OpMulS
	OpMult
	OpMultu
	OpNegD
	OpNegS
	OpNmaddD
	OpNmaddS
	OpNmsubD
	OpNmsubPs
	OpNmsubS
	OpNop
	OpNor
	OpOr
	OpOri
	OpPref
	OpPrefx
	OpRdhwr
	OpRotr
	OpRotrv
	OpSb
	OpSc
	OpScd
	OpSd
	OpSdbbp
	OpSdc1
	OpSdc2
	OpSdl
	OpSdr
	OpSdxc1
	OpSeb
	OpSeh
	OpSh
	OpSll
	OpSllv
	OpSlt
	OpSlti
	OpSltiu
	OpSltu
	OpSqrtD
	OpSqrtS
	OpSra
	OpSrav
	OpSrl
	OpSrlv
	OpSub
	OpSubD
	OpSubS
	OpSubu
	OpSw
	OpSwc1
	OpSwc2
	OpSwl
	OpSwr
	OpSwxc1
	OpSync
	OpSynci
	OpSyscall
	OpTeq
	OpTeqi
	OpTge
	OpTgei
	OpTgeiu
	OpTgeu
	OpTlbp
	OpTlbr
	OpTlbwi
	OpTlbwr
	OpTlt
	OpTlti
	OpTltiu
	OpTltu
	OpTne
	OpTnei
	OpTruncLD
	OpTruncWD
	OpTruncWS
	OpWait
	OpWsbh
	OpXor
	OpXori

	opcodeCount
)

var opcodeNames = [opcodeCount]string{
	OpInvalid: "invalid",
	OpAbsD:    "abs_d",
	OpAbsS:    "abs_s",
	OpAdd:     "add",
	OpAddD:    "add_d",
	OpAddS:    "add_s",
	OpAddi:    "addi",
	OpAddiu:   "addiu",
	OpAddu:    "addu",
	OpAnd:     "and",
	OpAndi:    "andi",
	OpBc1f:    "bc1f",
	OpBc1fl:   "bc1fl",
	OpBc1t:    "bc1t",
	OpBc1tl:   "bc1tl",
	OpBeq:     "beq",
	OpBeql:    "beql",
	OpBgez:    "bgez",
	OpBgezal:  "bgezal",
	OpBgezall: "bgezall",
	OpBgezl:   "bgezl",
	OpBgtz:    "bgtz",
	OpBgtzl:   "bgtzl",
	OpBlez:    "blez",
	OpBlezl:   "blezl",
	OpBltz:    "bltz",
	OpBltzal:  "bltzal",
	OpBltzall: "bltzall",
	OpBltzl:   "bltzl",
	OpBne:     "bne",
	OpBnel:    "bnel",
	OpBreak:   "break",
	OpCEqD:    "c_eq_d",
	OpCEqS:    "c_eq_s",
	OpCLeD:    "c_le_d",
	OpCLeS:    "c_le_s",
	OpCLtD:    "c_lt_d",
	OpCLtS:    "c_lt_s",
	OpCache:   "cache",
	OpCfc1:    "cfc1",
	OpClo:     "clo",
	OpClz:     "clz",
	OpCop2:    "cop2",
	OpCtc1:    "ctc1",
	OpCvtDL:   "cvt_d_l",
	OpCvtDS:   "cvt_d_s",
	OpCvtDW:   "cvt_d_w",
	OpCvtLD:   "cvt_l_d",
	OpCvtSD:   "cvt_s_d",
	OpCvtSW:   "cvt_s_w",
	OpCvtWD:   "cvt_w_d",
	OpCvtWS:   "cvt_w_s",
	OpDadd:    "dadd",
	OpDaddi:   "daddi",
	OpDaddiu:  "daddiu",
	OpDaddu:   "daddu",
	OpDclo:    "dclo",
	OpDclz:    "dclz",
	OpDdiv:    "ddiv",
	OpDdivu:   "ddivu",
	OpDeret:   "deret",
	OpDext:    "dext",
	OpDins:    "dins",
	OpDiv:     "div",
	OpDivD:    "div_d",
	OpDivS:    "div_s",
	OpDivu:    "divu",
	OpDmfc0:   "dmfc0",
	OpDmfc1:   "dmfc1",
	OpDmtc0:   "dmtc0",
	OpDmtc1:   "dmtc1",
	OpDmult:   "dmult",
	OpDmultu:  "dmultu",
	OpDrotr:   "drotr",
	OpDsbh:    "dsbh",
	OpDsll:    "dsll",
	OpDsll32:  "dsll32",
	OpDsllv:   "dsllv",
	OpDsra:    "dsra",
	OpDsra32:  "dsra32",
	OpDsrav:   "dsrav",
	OpDsrl:    "dsrl",
	OpDsrl32:  "dsrl32",
	OpDsrlv:   "dsrlv",
	OpDsub:    "dsub",
	OpDsubu:   "dsubu",
	OpEret:    "eret",
	OpExt:     "ext",
	OpIns:     "ins",
	OpJ:       "j",
	OpJal:     "jal",
	OpJalr:    "jalr",
	OpJalx:    "jalx",
	OpJr:      "jr",
	OpLb:      "lb",
	OpLbu:     "lbu",
	OpLd:      "ld",
	OpLdc1:    "ldc1",
	OpLdc2:    "ldc2",
	OpLdl:     "ldl",
	OpLdr:     "ldr",
	OpLdxc1:   "ldxc1",
	OpLh:      "lh",
	OpLhu:     "lhu",
	OpLl:      "ll",
	OpLld:     "lld",
	OpLui:     "lui",
	OpLuxc1:   "luxc1",
	OpLw:      "lw",
	OpLwc1:    "lwc1",
	OpLwc2:    "lwc2",
	OpLwl:     "lwl",
	OpLwr:     "lwr",
	OpLwu:     "lwu",
	OpLwxc1:   "lwxc1",
	OpMadd:    "madd",
	OpMaddD:   "madd_d",
	OpMaddPs:  "madd_ps",
	OpMaddS:   "madd_s",
	OpMaddu:   "maddu",
	OpMfc0:    "mfc0",
	OpMfc1:    "mfc1",
	OpMfhi:    "mfhi",
	OpMflo:    "mflo",
	OpMovD:    "mov_d",
	OpMovS:    "mov_s",
	OpMovf:    "movf",
	OpMovn:    "movn",
	OpMovt:    "movt",
	OpMovz:    "movz",
	OpMsub:    "msub",
	OpMsubD:   "msub_d",
	OpMsubS:   "msub_s",
	OpMsubu:   "msubu",
	OpMtc0:    "mtc0",
	OpMtc1:    "mtc1",
	OpMthi:    "mthi",
	OpMtlo:    "mtlo",
	OpMul:     "mul",
	OpMulD:    "mul_d",
	OpMulS:    "mul_s",
	OpMult:    "mult",
	OpMultu:   "multu",
	OpNegD:    "neg_d",
	OpNegS:    "neg_s",
	OpNmaddD:  "nmadd_d",
	OpNmaddS:  "nmadd_s",
	OpNmsubD:  "nmsub_d",
	OpNmsubPs: "nmsub_ps",
	OpNmsubS:  "nmsub_s",
	OpNop:     "nop",
	OpNor:     "nor",
	OpOr:      "or",
	OpOri:     "ori",
	OpPref:    "pref",
	OpPrefx:   "prefx",
	OpRdhwr:   "rdhwr",
	OpRotr:    "rotr",
	OpRotrv:   "rotrv",
	OpSb:      "sb",
	OpSc:      "sc",
	OpScd:     "scd",
	OpSd:      "sd",
	OpSdbbp:   "sdbbp",
	OpSdc1:    "sdc1",
	OpSdc2:    "sdc2",
	OpSdl:     "sdl",
	OpSdr:     "sdr",
	OpSdxc1:   "sdxc1",
	OpSeb:     "seb",
	OpSeh:     "seh",
	OpSh:      "sh",
	OpSll:     "sll",
	OpSllv:    "sllv",
	OpSlt:     "slt",
	OpSlti:    "slti",
	OpSltiu:   "sltiu",
	OpSltu:    "sltu",
	OpSqrtD:   "sqrt_d",
	OpSqrtS:   "sqrt_s",
	OpSra:     "sra",
	OpSrav:    "srav",
	OpSrl:     "srl",
	OpSrlv:    "srlv",
	OpSub:     "sub",
	OpSubD:    "sub_d",
	OpSubS:    "sub_s",
	OpSubu:    "subu",
	OpSw:      "sw",
	OpSwc1:    "swc1",
	OpSwc2:    "swc2",
	OpSwl:     "swl",
	OpSwr:     "swr",
	OpSwxc1:   "swxc1",
	OpSync:    "sync",
	OpSynci:   "synci",
	OpSyscall: "syscall",
	OpTeq:     "teq",
	OpTeqi:    "teqi",
	OpTge:     "tge",
	OpTgei:    "tgei",
	OpTgeiu:   "tgeiu",
	OpTgeu:    "tgeu",
	OpTlbp:    "tlbp",
	OpTlbr:    "tlbr",
	OpTlbwi:   "tlbwi",
	OpTlbwr:   "tlbwr",
	OpTlt:     "tlt",
	OpTlti:    "tlti",
	OpTltiu:   "tltiu",
	OpTltu:    "tltu",
	OpTne:     "tne",
	OpTnei:    "tnei",
	OpTruncLD: "trunc_l_d",
	OpTruncWD: "trunc_w_d",
	OpTruncWS: "trunc_w_s",
	OpWait:    "wait",
	OpWsbh:    "wsbh",
	OpXor:     "xor",
	OpXori:    "xori",
}

func (o Opcode) String() string {
	if o >= opcodeCount {
		return "invalid"
	}
	return opcodeNames[o]
}

// Display returns the assembler spelling of the opcode.
func (o Opcode) Display() string {
	return strings.ReplaceAll(o.String(), "_", ".")
}
