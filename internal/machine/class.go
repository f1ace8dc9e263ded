package machine

import (
	"errors"
	"strings"
)

// ErrInvalidClass is returned by Validate for inconsistent class combinations.
var ErrInvalidClass = errors.New("invalid instruction class")

// InstrClass describes the execution effect of an instruction. The values
// are bit flags and can be combined.
type InstrClass uint16

// Instruction classes.
const (
	Linear      InstrClass = 1 << iota // execution continues with the next instruction
	Transfer                           // control is transferred to another address
	Conditional                        // the transfer only happens if a condition holds
	Call                               // the transfer saves a return address
	Delay                              // the following instruction is a delay slot
	Annul                              // the delay slot can be annulled
	Invalid                            // the instruction could not be decoded or lifted
	Zero                               // the instruction word was all zero bits
	Padding                            // the instruction is used for alignment

	ConditionalTransfer = Conditional | Transfer
)

var classNames = []struct {
	class InstrClass
	name  string
}{
	{Linear, "Linear"},
	{Transfer, "Transfer"},
	{Conditional, "Conditional"},
	{Call, "Call"},
	{Delay, "Delay"},
	{Annul, "Annul"},
	{Invalid, "Invalid"},
	{Zero, "Zero"},
	{Padding, "Padding"},
}

// Has returns whether all bits of flags are set in the class.
func (c InstrClass) Has(flags InstrClass) bool {
	return c&flags == flags
}

// Validate checks that Delay only appears together with a transfer.
func (c InstrClass) Validate() error {
	if c.Has(Delay) && !c.Has(Transfer) {
		return ErrInvalidClass
	}
	return nil
}

// Code returns the short three character code used in RTL listings:
// L (linear), T (transfer), C (conditional transfer) or '-' followed by a
// 'D' for delay slots and a 'A' for calls.
func (c InstrClass) Code() string {
	b := []byte("---")
	switch {
	case c.Has(Invalid):
	case c.Has(ConditionalTransfer):
		b[0] = 'C'
	case c.Has(Transfer):
		b[0] = 'T'
	case c.Has(Linear):
		b[0] = 'L'
	}
	if c.Has(Delay) {
		b[1] = 'D'
	}
	if c.Has(Call) {
		b[2] = 'A'
	}
	return string(b)
}

func (c InstrClass) String() string {
	if c == 0 {
		return "None"
	}
	var parts []string
	for _, n := range classNames {
		if c.Has(n.class) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}
