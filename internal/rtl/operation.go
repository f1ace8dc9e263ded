package rtl

import (
	"fmt"

	"github.com/retroenv/retrolift/internal/machine"
)

// Operation is a side effecting RTL instruction.
type Operation interface {
	fmt.Stringer

	// Class returns the effect of the operation on control flow.
	Class() machine.InstrClass

	operation()
}

// Assignment writes a value to a register or temporary.
type Assignment struct {
	Dst *Identifier
	Src Expression
}

// Store writes a value to memory or another non identifier location.
type Store struct {
	Dst Expression
	Src Expression
}

// Branch transfers control to Target if Condition holds.
type Branch struct {
	Condition Expression
	Target    *Address
	Transfer  machine.InstrClass
	Annul     bool
}

// Goto transfers control unconditionally.
type Goto struct {
	Target   Expression
	Transfer machine.InstrClass
	Annul    bool
}

// Call transfers control and saves a return address of ReturnAddressSize bytes.
type Call struct {
	Target            Expression
	ReturnAddressSize int
	Transfer          machine.InstrClass
	Annul             bool
}

// Return returns from a procedure.
type Return struct {
	ReturnAddressBytes int
	ExtraBytesPopped   int
	Transfer           machine.InstrClass
	Annul              bool
}

// SideEffect evaluates an expression only for its side effect, usually an
// intrinsic application.
type SideEffect struct {
	Expression Expression
	Effect     machine.InstrClass
}

// If executes Operation only if Condition holds.
type If struct {
	Condition Expression
	Operation Operation
}

// Invalid marks an instruction that could not be lifted.
type Invalid struct{}

// Nop has no effect.
type Nop struct{}

func (*Assignment) operation() {}
func (*Store) operation()      {}
func (*Branch) operation()     {}
func (*Goto) operation()       {}
func (*Call) operation()       {}
func (*Return) operation()     {}
func (*SideEffect) operation() {}
func (*If) operation()         {}
func (*Invalid) operation()    {}
func (*Nop) operation()        {}

func (*Assignment) Class() machine.InstrClass   { return machine.Linear }
func (*Store) Class() machine.InstrClass        { return machine.Linear }
func (b *Branch) Class() machine.InstrClass     { return b.Transfer }
func (g *Goto) Class() machine.InstrClass       { return g.Transfer }
func (c *Call) Class() machine.InstrClass       { return c.Transfer }
func (r *Return) Class() machine.InstrClass     { return r.Transfer }
func (s *SideEffect) Class() machine.InstrClass { return s.Effect }
func (*If) Class() machine.InstrClass           { return machine.Linear }
func (*Invalid) Class() machine.InstrClass      { return machine.Invalid }
func (*Nop) Class() machine.InstrClass          { return machine.Linear }

func (a *Assignment) String() string {
	return fmt.Sprintf("%s = %s", a.Dst, a.Src)
}

func (s *Store) String() string {
	return fmt.Sprintf("%s = %s", s.Dst, s.Src)
}

func (b *Branch) String() string {
	return fmt.Sprintf("if (%s) branch %s", b.Condition, b.Target)
}

func (g *Goto) String() string {
	return fmt.Sprintf("goto %s", g.Target)
}

func (c *Call) String() string {
	return fmt.Sprintf("call %s (%d)", c.Target, c.ReturnAddressSize)
}

func (r *Return) String() string {
	return fmt.Sprintf("return (%d,%d)", r.ReturnAddressBytes, r.ExtraBytesPopped)
}

func (s *SideEffect) String() string {
	return s.Expression.String()
}

func (i *If) String() string {
	return fmt.Sprintf("if (%s) %s", i.Condition, i.Operation)
}

func (*Invalid) String() string {
	return "<invalid>"
}

func (*Nop) String() string {
	return "nop"
}
