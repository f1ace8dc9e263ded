// Package evaluation contains rewrite rules that bring RTL expressions into
// a canonical form.
package evaluation

import (
	"github.com/retroenv/retrolift/internal/rtl"
)

// ComparisonConstOnLeft moves a constant on the left side of a comparison to
// the right side, transposing the operator.
type ComparisonConstOnLeft struct {
	result *rtl.BinaryExpression
}

// Match returns whether the rule applies to the expression. A match stores
// the rewritten expression for Transform.
func (c *ComparisonConstOnLeft) Match(bin *rtl.BinaryExpression) bool {
	if !bin.Operator.IsConditional() {
		return false
	}
	left, ok := bin.Left.(*rtl.Constant)
	if !ok {
		return false
	}
	if _, ok := bin.Right.(*rtl.Constant); ok {
		return false
	}

	c.result = &rtl.BinaryExpression{
		Operator: bin.Operator.Transpose(),
		Type:     bin.Type,
		Left:     bin.Right,
		Right:    left,
	}
	return true
}

// Transform returns the expression created by the last successful Match.
func (c *ComparisonConstOnLeft) Transform() rtl.Expression {
	return c.result
}

// Simplify returns a copy of the expression tree with the rule applied to
// every comparison.
func Simplify(e rtl.Expression) rtl.Expression {
	switch e := e.(type) {
	case *rtl.BinaryExpression:
		bin := &rtl.BinaryExpression{
			Operator: e.Operator,
			Type:     e.Type,
			Left:     Simplify(e.Left),
			Right:    Simplify(e.Right),
		}
		var rule ComparisonConstOnLeft
		if rule.Match(bin) {
			return rule.Transform()
		}
		return bin
	case *rtl.UnaryExpression:
		return &rtl.UnaryExpression{Operator: e.Operator, Type: e.Type, Operand: Simplify(e.Operand)}
	default:
		return e
	}
}

// SimplifyCluster simplifies the expressions of all operations of a cluster
// in place.
func SimplifyCluster(c *rtl.Cluster) {
	for _, op := range c.Instructions {
		simplifyOperation(op)
	}
}

func simplifyOperation(op rtl.Operation) {
	switch op := op.(type) {
	case *rtl.Assignment:
		op.Src = Simplify(op.Src)
	case *rtl.Store:
		op.Src = Simplify(op.Src)
	case *rtl.Branch:
		op.Condition = Simplify(op.Condition)
	case *rtl.SideEffect:
		op.Expression = Simplify(op.Expression)
	case *rtl.If:
		op.Condition = Simplify(op.Condition)
		simplifyOperation(op.Operation)
	}
}
