package rtl

import (
	"fmt"
	"strings"

	"github.com/retroenv/retrolift/internal/machine"
)

// Cluster is the RTL translation of exactly one machine instruction.
type Cluster struct {
	Address      machine.Address
	Length       int
	Class        machine.InstrClass
	Instructions []Operation
}

// NewCluster returns a cluster for the instruction at addr.
func NewCluster(addr machine.Address, length int, class machine.InstrClass, ops []Operation) *Cluster {
	return &Cluster{
		Address:      addr,
		Length:       length,
		Class:        class,
		Instructions: ops,
	}
}

// IsInvalid returns whether the cluster marks an instruction that could not be lifted.
func (c *Cluster) IsInvalid() bool {
	return c.Class.Has(machine.Invalid)
}

// Lines returns the numbered listing of the cluster. The first line is the
// header, each following line holds one operation prefixed by its class code.
func (c *Cluster) Lines() []string {
	lines := make([]string, 0, len(c.Instructions)+1)
	lines = append(lines, fmt.Sprintf("0|%s|%s(%d): %d instructions",
		c.Class.Code(), c.Address, c.Length, len(c.Instructions)))
	for i, op := range c.Instructions {
		lines = append(lines, fmt.Sprintf("%d|%s|%s", i+1, op.Class().Code(), op))
	}
	return lines
}

func (c *Cluster) String() string {
	return strings.Join(c.Lines(), "\n")
}
