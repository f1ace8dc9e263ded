package parisc

import (
	"github.com/retroenv/retrolift/internal/machine"
	"github.com/retroenv/retrolift/internal/rtl"
	"github.com/retroenv/retrolift/internal/types"
)

var (
	intrinsicOverflow = &rtl.Intrinsic{Name: "OVERFLOW", ReturnType: types.Bool}
	intrinsicCarry    = &rtl.Intrinsic{Name: "CARRY", ReturnType: types.Bool}
	intrinsicFpCond   = &rtl.Intrinsic{Name: "__fcmp_cond", ReturnType: types.Bool}
)

// resultCondition evaluates a condition on the result of an arithmetic or
// logical operation whose operands were left and right.
func (r *Rewriter) resultCondition(c *Condition, result, left rtl.Expression) rtl.Expression {
	result = r.narrow(c, result)
	left = r.narrow(c, left)
	zero := rtl.Zero(result.DataType())
	switch c.Type {
	case Tr:
		return rtl.True()
	case Eq:
		return r.m.Eq0(result)
	case Ne:
		return r.m.Ne0(result)
	case Lt:
		return r.m.Lt(result, zero)
	case Ge:
		return r.m.Ge(result, zero)
	case Le:
		return r.m.Le(result, zero)
	case Gt:
		return r.m.Gt(result, zero)
	case Nuv:
		return r.m.Uge(result, left)
	case Uv:
		return r.m.Ult(result, left)
	case Znv:
		return r.m.Cor(r.m.Eq0(result), r.m.Uge(result, left))
	case Vnz:
		return r.m.Cand(r.m.Ne0(result), r.m.Ult(result, left))
	case Sv:
		return r.m.Fn(intrinsicOverflow, result)
	case Nsv:
		return r.m.Not(r.m.Fn(intrinsicOverflow, result))
	case Odd:
		return r.m.Ne0(r.m.And(result, rtl.NewConstant(result.DataType(), 1)))
	case Even:
		return r.m.Eq0(r.m.And(result, rtl.NewConstant(result.DataType(), 1)))
	default:
		return nil
	}
}

// compareCondition evaluates a condition on the comparison of left and
// right, as done by compare and subtract instructions.
func (r *Rewriter) compareCondition(c *Condition, left, right rtl.Expression) rtl.Expression {
	left = r.narrow(c, left)
	right = r.narrow(c, right)
	switch c.Type {
	case Tr:
		return rtl.True()
	case Eq:
		return r.m.Eq(left, right)
	case Ne:
		return r.m.Ne(left, right)
	case Lt:
		return r.m.Lt(left, right)
	case Ge:
		return r.m.Ge(left, right)
	case Le:
		return r.m.Le(left, right)
	case Gt:
		return r.m.Gt(left, right)
	case Ult:
		return r.m.Ult(left, right)
	case Uge:
		return r.m.Uge(left, right)
	case Ule:
		return r.m.Ule(left, right)
	case Ugt:
		return r.m.Ugt(left, right)
	case Sv:
		return r.m.Fn(intrinsicOverflow, r.m.ISub(left, right))
	case Nsv:
		return r.m.Not(r.m.Fn(intrinsicOverflow, r.m.ISub(left, right)))
	case Odd:
		return r.m.Ne0(r.m.And(r.m.ISub(left, right), rtl.NewConstant(left.DataType(), 1)))
	case Even:
		return r.m.Eq0(r.m.And(r.m.ISub(left, right), rtl.NewConstant(left.DataType(), 1)))
	default:
		return nil
	}
}

// narrow evaluates 32 bit conditions on the low word in 64 bit mode.
func (r *Rewriter) narrow(c *Condition, e rtl.Expression) rtl.Expression {
	if !r.wide || c.Wide || e.DataType().BitSize <= 32 {
		return e
	}
	if k, ok := e.(*rtl.Constant); ok {
		return rtl.NewConstant(types.Word32, k.Value)
	}
	return r.m.Slice(types.Word32, e, 0)
}

// conditionFunc builds the nullification condition once the operands are known.
type conditionFunc func(result rtl.Expression) rtl.Expression

// assignNullify assigns src to dst and nullifies the next instruction if
// the condition completer holds.
func (r *Rewriter) assignNullify(dst *rtl.Identifier, src rtl.Expression, cond conditionFunc) {
	r.assignBranch(dst, src, cond, r.nextAddress(), machine.ConditionalTransfer)
}

// assignBranch assigns src to dst and branches to target if the condition
// completer holds. A condition that reads dst is evaluated before the
// assignment.
func (r *Rewriter) assignBranch(dst *rtl.Identifier, src rtl.Expression, cond conditionFunc,
	target machine.Address, class machine.InstrClass) {

	c := r.instr.Condition
	if c == nil {
		r.assign(dst, src)
		r.class = machine.Linear
		return
	}
	if c.Type == Tr {
		r.assign(dst, src)
		r.transfer(r.m.Goto(r.m.Ptr(target), class&^machine.Conditional))
		return
	}

	result := src
	if src != nil && !isSimple(src) {
		tmp := r.binder.CreateTemporary(src.DataType())
		r.m.Assign(tmp, src)
		result = tmp
	}
	test := cond(result)
	if test == nil {
		r.invalid()
		return
	}
	if dst != nil && uses(test, dst) {
		flag := r.binder.CreateTemporary(types.Bool)
		r.m.Assign(flag, test)
		test = flag
	}
	r.assign(dst, result)
	r.transfer(r.m.Branch(test, target, class))
}

// isSimple returns whether an expression is a plain storage or constant.
func isSimple(e rtl.Expression) bool {
	switch e.(type) {
	case *rtl.Identifier, *rtl.Constant, *rtl.Address:
		return true
	default:
		return false
	}
}

// uses returns whether the expression reads the identifier.
func uses(e rtl.Expression, id *rtl.Identifier) bool {
	switch e := e.(type) {
	case *rtl.Identifier:
		return e == id
	case *rtl.MemoryAccess:
		return uses(e.EffectiveAddress, id)
	case *rtl.BinaryExpression:
		return uses(e.Left, id) || uses(e.Right, id)
	case *rtl.UnaryExpression:
		return uses(e.Operand, id)
	case *rtl.Conversion:
		return uses(e.Expression, id)
	case *rtl.Slice:
		return uses(e.Expression, id)
	case *rtl.Application:
		for _, arg := range e.Arguments {
			if uses(arg, id) {
				return true
			}
		}
	case *rtl.Sequence:
		for _, el := range e.Elements {
			if uses(el, id) {
				return true
			}
		}
	}
	return false
}

// fpOperators maps floating point compare conditions that have a direct
// RTL operator.
var fpOperators = map[int]rtl.Operator{
	4:  rtl.Feq,
	9:  rtl.Flt,
	13: rtl.Fle,
	17: rtl.Fgt,
	21: rtl.Fge,
	25: rtl.Fne,
	26: rtl.Fne,
}

func (r *Rewriter) fpCondition(c *Condition, left, right rtl.Expression) rtl.Expression {
	if op, ok := fpOperators[c.FpCode]; ok {
		return r.m.Compare(op, left, right)
	}
	switch c.FpCode {
	case 0, 1:
		return rtl.Zero(types.Bool)
	case 30, 31:
		return rtl.True()
	default:
		return r.m.Fn(intrinsicFpCond, left, right, rtl.NewConstant(types.Byte, uint64(c.FpCode)))
	}
}
