package parisc

// ConditionType is the predicate of a condition completer.
type ConditionType uint8

// Condition types.
const (
	Never ConditionType = iota
	Tr
	Eq
	Ne
	Lt
	Ge
	Le
	Gt
	Ult
	Uge
	Ule
	Ugt
	Sv
	Nsv
	Odd
	Even
	Nuv
	Uv
	Znv
	Vnz
	Fp // floating point compare, see Condition.FpCode
)

// Condition is a decoded condition completer.
type Condition struct {
	Type    ConditionType
	Display string
	Wide    bool // evaluated on the full 64 bit doubleword
	FpCode  int  // floating point compare condition, 0..31
}

func (c *Condition) String() string {
	return c.Display
}

func cond(typ ConditionType, display string) *Condition {
	return &Condition{Type: typ, Display: display}
}

func wideCond(c *Condition) *Condition {
	return &Condition{Type: c.Type, Display: "*" + c.Display, Wide: true}
}

var (
	condNever = cond(Never, "")
	condTr    = cond(Tr, "tr")
	condEq    = cond(Eq, "=")
	condNe    = cond(Ne, "<>")
	condLt    = cond(Lt, "<")
	condGe    = cond(Ge, ">=")
	condLe    = cond(Le, "<=")
	condGt    = cond(Gt, ">")
	condUlt   = cond(Ult, "<<")
	condUge   = cond(Uge, ">>=")
	condUle   = cond(Ule, "<<=")
	condUgt   = cond(Ugt, ">>")
	condSv    = cond(Sv, "sv")
	condNsv   = cond(Nsv, "nsv")
	condOdd   = cond(Odd, "od")
	condEven  = cond(Even, "ev")
	condNuv   = cond(Nuv, "nuv")
	condUv    = cond(Uv, "uv")
	condZnv   = cond(Znv, "znv")
	condVnz   = cond(Vnz, "vnz")

	condNever64 = wideCond(condNever)
	condTr64    = wideCond(condTr)
	condEq64    = wideCond(condEq)
	condNe64    = wideCond(condNe)
	condLt64    = wideCond(condLt)
	condGe64    = wideCond(condGe)
	condLe64    = wideCond(condLe)
	condGt64    = wideCond(condGt)
	condSv64    = wideCond(condSv)
	condNsv64   = wideCond(condNsv)
	condOdd64   = wideCond(condOdd)
	condEven64  = wideCond(condEven)
	condNuv64   = wideCond(condNuv)
	condUv64    = wideCond(condUv)
	condZnv64   = wideCond(condZnv)
	condVnz64   = wideCond(condVnz)
)

// Condition tables indexed by the value of a condition field. A nil entry
// is a reserved encoding.
var (
	cmpSubConditions = []*Condition{
		condNever, condTr, condEq, condNe,
		condLt, condGe, condLe, condGt,
		condUlt, condUge, condUle, condUgt,
		condSv, condNsv, condOdd, condEven,
	}

	addConditions = []*Condition{
		condNever, condTr, condEq, condNe,
		condLt, condGe, condLe, condGt,
		condNuv, condUv, condZnv, condVnz,
		condSv, condNsv, condOdd, condEven,
	}

	add64Conditions = []*Condition{
		condNever64, condTr64, condEq64, condNe64,
		condLt64, condGe64, condLe64, condGt64,
		condNuv64, condUv64, condZnv64, condVnz64,
		condSv64, condNsv64, condOdd64, condEven64,
	}

	logConditions = []*Condition{
		condNever, condTr, condEq, condNe,
		condLt, condGe, condLe, condGt,
		nil, nil, nil, nil,
		nil, nil, condOdd, condEven,
	}

	cmp32TrueConditions = []*Condition{
		condNever, condEq, condLt, condLe,
		condUlt, condUle, condSv, condOdd,
	}

	cmp32FalseConditions = []*Condition{
		condTr, condNe, condGe, condGt,
		condUge, condUgt, condNsv, condEven,
	}

	shiftExtractConditions = []*Condition{
		condNever, condEq, condLt, condOdd,
		condTr, condNe, condGe, condEven,
	}

	add3Conditions = []*Condition{
		condNever, condEq, condLt, condLe,
		condNuv, condZnv, condSv, condOdd,
	}

	add3NegConditions = []*Condition{
		condTr, condNe, condGe, condGt,
		condUv, condVnz, condNsv, condEven,
	}

	add3Conditions64 = []*Condition{
		condNever, condEq, condLt, condLe,
		condNuv, condEq64, condLt64, condLe64,
	}

	add3NegConditions64 = []*Condition{
		condTr, condNe, condGe, condGt,
		condUv, condNe64, condGe64, condGt64,
	}

	fpConditions = newFpConditions(
		"false?", "false", "?", "!<=>",
		"=", "=T", "?=", "!<>",
		"!?>=", "<", "?<", "!>=",
		"!?>", "<=", "?<=", "!>",
		"!?<=", ">", "?>", "!<=",
		"!?<", ">=", "?>=", "!<",
		"!?=", "<>", "!=", "!=T",
		"!?", "<=>", "true?", "true",
	)
)

func newFpConditions(displays ...string) []*Condition {
	conds := make([]*Condition, len(displays))
	for i, display := range displays {
		conds[i] = &Condition{Type: Fp, Display: display, FpCode: i}
	}
	return conds
}
