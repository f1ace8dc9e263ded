package rtl

// Operator is a binary operator.
type Operator uint8

// Binary operators.
const (
	Add Operator = iota
	Sub
	Mul  // bit pattern multiplication
	SMul // signed multiplication
	UMul // unsigned multiplication
	SDiv
	UDiv
	SMod
	UMod
	And
	Or
	Xor
	Shl
	Shr // logical shift right
	Sar // arithmetic shift right
	Eq
	Ne
	Lt
	Le
	Gt
	Ge
	Ult
	Ule
	Ugt
	Uge
	FAdd
	FSub
	FMul
	FDiv
	Feq
	Fne
	Flt
	Fle
	Fgt
	Fge
	Cand // conditional and
	Cor  // conditional or
)

var operatorSymbols = [...]string{
	Add:  " + ",
	Sub:  " - ",
	Mul:  " * ",
	SMul: " *s ",
	UMul: " *u ",
	SDiv: " / ",
	UDiv: " /u ",
	SMod: " %s ",
	UMod: " %u ",
	And:  " & ",
	Or:   " | ",
	Xor:  " ^ ",
	Shl:  " << ",
	Shr:  " >>u ",
	Sar:  " >> ",
	Eq:   " == ",
	Ne:   " != ",
	Lt:   " < ",
	Le:   " <= ",
	Gt:   " > ",
	Ge:   " >= ",
	Ult:  " <u ",
	Ule:  " <=u ",
	Ugt:  " >u ",
	Uge:  " >=u ",
	FAdd: " + ",
	FSub: " - ",
	FMul: " * ",
	FDiv: " / ",
	Feq:  " == ",
	Fne:  " != ",
	Flt:  " < ",
	Fle:  " <= ",
	Fgt:  " > ",
	Fge:  " >= ",
	Cand: " && ",
	Cor:  " || ",
}

func (o Operator) String() string {
	return operatorSymbols[o]
}

// IsConditional returns whether the operator is a comparison yielding a boolean.
func (o Operator) IsConditional() bool {
	switch o {
	case Eq, Ne, Lt, Le, Gt, Ge, Ult, Ule, Ugt, Uge, Feq, Fne, Flt, Fle, Fgt, Fge:
		return true
	default:
		return false
	}
}

// Transpose returns the comparison that yields the same result with its
// operands swapped. Operators that are not comparisons are returned unchanged.
func (o Operator) Transpose() Operator {
	switch o {
	case Lt:
		return Gt
	case Le:
		return Ge
	case Gt:
		return Lt
	case Ge:
		return Le
	case Ult:
		return Ugt
	case Ule:
		return Uge
	case Ugt:
		return Ult
	case Uge:
		return Ule
	case Flt:
		return Fgt
	case Fle:
		return Fge
	case Fgt:
		return Flt
	case Fge:
		return Fle
	default:
		return o
	}
}

// Invert returns the logical negation of an integer comparison.
func (o Operator) Invert() Operator {
	switch o {
	case Eq:
		return Ne
	case Ne:
		return Eq
	case Lt:
		return Ge
	case Le:
		return Gt
	case Gt:
		return Le
	case Ge:
		return Lt
	case Ult:
		return Uge
	case Ule:
		return Ugt
	case Ugt:
		return Ule
	case Uge:
		return Ult
	default:
		return o
	}
}

// UnaryOperator is a unary operator.
type UnaryOperator uint8

// Unary operators.
const (
	Neg  UnaryOperator = iota // two's complement negation
	Comp                      // bitwise complement
	Not                       // logical not
	FNeg
)

func (o UnaryOperator) String() string {
	switch o {
	case Neg, FNeg:
		return "-"
	case Comp:
		return "~"
	default:
		return "!"
	}
}
