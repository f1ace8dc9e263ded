// Package storage binds machine registers to RTL identifiers.
package storage

import (
	"fmt"
	"strings"

	"github.com/retroenv/retrolift/internal/machine"
	"github.com/retroenv/retrolift/internal/rtl"
	"github.com/retroenv/retrolift/internal/types"
)

// Binder resolves storage locations to identifiers. The same location
// always resolves to the same identifier within one binder.
type Binder interface {
	// EnsureRegister returns the identifier bound to a register.
	EnsureRegister(reg *machine.Register) *rtl.Identifier
	// EnsureSequence returns the identifier of registers combined into one
	// value, the first register holds the most significant part.
	EnsureSequence(dt *types.PrimitiveType, regs ...*machine.Register) *rtl.Identifier
	// EnsureFlag returns the identifier of a named processor flag.
	EnsureFlag(name string) *rtl.Identifier
	// CreateTemporary returns a new temporary identifier.
	CreateTemporary(dt *types.PrimitiveType) *rtl.Identifier
}

// Frame is a Binder that allocates identifiers lazily on first use.
// It is not safe for concurrent use.
type Frame struct {
	registers   map[*machine.Register]*rtl.Identifier
	sequences   map[string]*rtl.Identifier
	flags       map[string]*rtl.Identifier
	temporaries int
}

var _ Binder = (*Frame)(nil)

// NewFrame returns an empty frame.
func NewFrame() *Frame {
	return &Frame{
		registers: make(map[*machine.Register]*rtl.Identifier),
		sequences: make(map[string]*rtl.Identifier),
		flags:     make(map[string]*rtl.Identifier),
	}
}

// EnsureRegister returns the identifier bound to a register.
func (f *Frame) EnsureRegister(reg *machine.Register) *rtl.Identifier {
	if id, ok := f.registers[reg]; ok {
		return id
	}
	id := &rtl.Identifier{
		Name:     reg.Name,
		Type:     reg.DataType,
		Kind:     rtl.RegisterStorage,
		Register: reg,
	}
	f.registers[reg] = id
	return id
}

// EnsureSequence returns the identifier of a register sequence.
func (f *Frame) EnsureSequence(dt *types.PrimitiveType, regs ...*machine.Register) *rtl.Identifier {
	names := make([]string, len(regs))
	for i, reg := range regs {
		names[i] = reg.Name
	}
	name := strings.Join(names, "_")
	if id, ok := f.sequences[name]; ok {
		return id
	}
	id := &rtl.Identifier{
		Name:     name,
		Type:     dt,
		Kind:     rtl.SequenceStorage,
		Elements: regs,
	}
	f.sequences[name] = id
	return id
}

// EnsureFlag returns the identifier of a named flag.
func (f *Frame) EnsureFlag(name string) *rtl.Identifier {
	if id, ok := f.flags[name]; ok {
		return id
	}
	id := &rtl.Identifier{
		Name: name,
		Type: types.Bool,
		Kind: rtl.FlagStorage,
	}
	f.flags[name] = id
	return id
}

// CreateTemporary returns a new temporary.
func (f *Frame) CreateTemporary(dt *types.PrimitiveType) *rtl.Identifier {
	f.temporaries++
	return &rtl.Identifier{
		Name: fmt.Sprintf("v%d", f.temporaries+1),
		Type: dt,
		Kind: rtl.TemporaryStorage,
	}
}
