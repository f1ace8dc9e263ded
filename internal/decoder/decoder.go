// Package decoder implements decoder trees that turn a fixed width
// instruction word into a decoded instruction.
//
// A tree is built once from four node kinds: terminal instruction nodes
// running a list of mutators, mask nodes dispatching on a bit field, conditional
// nodes dispatching on a predicate and stub nodes for known but not yet
// implemented encodings. Built trees are immutable and can be shared by any
// number of disassemblers.
package decoder

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrolift/internal/bits"
	"github.com/retroenv/retrolift/internal/machine"
)

// ErrConfiguration is returned when a decoder tree is constructed with
// inconsistent tables. It indicates a bug in the tree definition.
var ErrConfiguration = errors.New("decoder configuration error")

// Context is the per decode state owned by a disassembler. It collects the
// operands and completers set by mutators and creates the final instruction.
type Context[W bits.Word, I any, O comparable] interface {
	// MakeInstruction creates an instruction from the collected state.
	MakeInstruction(class machine.InstrClass, opcode O) I
	// Invalid returns the canonical invalid instruction.
	Invalid() I
	// NotYetImplemented reports a stub decoder hit and returns an
	// instruction without class and operands.
	NotYetImplemented(opcode O, message string, word W) I
}

// Mutator decodes one operand or completer from the word into the context.
// It returns false if the encoding is invalid.
type Mutator[W bits.Word, D any] func(word W, d D) bool

// Decoder is a node of a decoder tree. The implementations are
// InstrDecoder, MaskDecoder, CondDecoder and NyiDecoder.
type Decoder[W bits.Word, D Context[W, I, O], I any, O comparable] interface {
	// Decode decodes the word using the context.
	Decode(word W, d D) I

	children() []Decoder[W, D, I, O]
}

// InstrDecoder is a terminal node that runs its mutators in order.
type InstrDecoder[W bits.Word, D Context[W, I, O], I any, O comparable] struct {
	opcode   O
	class    machine.InstrClass
	mutators []Mutator[W, D]
}

// Instr returns a terminal decoder.
func Instr[W bits.Word, D Context[W, I, O], I any, O comparable](opcode O, class machine.InstrClass,
	mutators ...Mutator[W, D]) *InstrDecoder[W, D, I, O] {

	return &InstrDecoder[W, D, I, O]{
		opcode:   opcode,
		class:    class,
		mutators: mutators,
	}
}

// Decode runs all mutators and creates the instruction. If any mutator
// fails the invalid instruction is returned.
func (n *InstrDecoder[W, D, I, O]) Decode(word W, d D) I {
	for _, m := range n.mutators {
		if !m(word, d) {
			return d.Invalid()
		}
	}
	return d.MakeInstruction(n.class, n.opcode)
}

// Opcode returns the opcode created by the node.
func (n *InstrDecoder[W, D, I, O]) Opcode() O {
	return n.opcode
}

// Class returns the instruction class created by the node.
func (n *InstrDecoder[W, D, I, O]) Class() machine.InstrClass {
	return n.class
}

func (n *InstrDecoder[W, D, I, O]) children() []Decoder[W, D, I, O] {
	return nil
}

// MaskDecoder dispatches on the value of a bit field.
type MaskDecoder[W bits.Word, D Context[W, I, O], I any, O comparable] struct {
	field    bits.Field
	tag      string
	decoders []Decoder[W, D, I, O]
}

// NewMask returns a dense mask decoder. The number of decoders must be
// exactly 2^field.Length.
func NewMask[W bits.Word, D Context[W, I, O], I any, O comparable](field bits.Field, tag string,
	decoders ...Decoder[W, D, I, O]) (*MaskDecoder[W, D, I, O], error) {

	if err := checkField[W](field, tag); err != nil {
		return nil, err
	}
	if expected := 1 << uint(field.Length); len(decoders) != expected {
		return nil, fmt.Errorf("%w: mask %s%s expects %d decoders but got %d",
			ErrConfiguration, tag, field, expected, len(decoders))
	}
	for i, dec := range decoders {
		if dec == nil {
			return nil, fmt.Errorf("%w: mask %s%s has no decoder for value 0x%X",
				ErrConfiguration, tag, field, i)
		}
	}

	return &MaskDecoder[W, D, I, O]{
		field:    field,
		tag:      tag,
		decoders: decoders,
	}, nil
}

// Mask returns a dense mask decoder and panics on a configuration error.
// It is meant for statically defined trees.
func Mask[W bits.Word, D Context[W, I, O], I any, O comparable](field bits.Field, tag string,
	decoders ...Decoder[W, D, I, O]) *MaskDecoder[W, D, I, O] {

	m, err := NewMask(field, tag, decoders...)
	if err != nil {
		panic(err)
	}
	return m
}

// Override replaces the default decoder of a sparse mask for one field value.
type Override[W bits.Word, D Context[W, I, O], I any, O comparable] struct {
	Value   uint64
	Decoder Decoder[W, D, I, O]
}

// NewSparse returns a mask decoder where every field value maps to the
// default decoder unless it is overridden. Override values must be in range
// and unique.
func NewSparse[W bits.Word, D Context[W, I, O], I any, O comparable](field bits.Field, tag string,
	defaultDecoder Decoder[W, D, I, O], overrides ...Override[W, D, I, O]) (*MaskDecoder[W, D, I, O], error) {

	if err := checkField[W](field, tag); err != nil {
		return nil, err
	}
	if defaultDecoder == nil {
		return nil, fmt.Errorf("%w: sparse mask %s%s has no default decoder", ErrConfiguration, tag, field)
	}

	decoders := make([]Decoder[W, D, I, O], 1<<uint(field.Length))
	for i := range decoders {
		decoders[i] = defaultDecoder
	}

	set := make(map[uint64]struct{}, len(overrides))
	for _, o := range overrides {
		if o.Value >= uint64(len(decoders)) {
			return nil, fmt.Errorf("%w: sparse mask %s%s value 0x%X out of range",
				ErrConfiguration, tag, field, o.Value)
		}
		if _, ok := set[o.Value]; ok {
			return nil, fmt.Errorf("%w: sparse mask %s%s value 0x%X overridden twice",
				ErrConfiguration, tag, field, o.Value)
		}
		if o.Decoder == nil {
			return nil, fmt.Errorf("%w: sparse mask %s%s value 0x%X has no decoder",
				ErrConfiguration, tag, field, o.Value)
		}
		set[o.Value] = struct{}{}
		decoders[o.Value] = o.Decoder
	}

	return &MaskDecoder[W, D, I, O]{
		field:    field,
		tag:      tag,
		decoders: decoders,
	}, nil
}

// Sparse returns a sparse mask decoder and panics on a configuration error.
func Sparse[W bits.Word, D Context[W, I, O], I any, O comparable](field bits.Field, tag string,
	defaultDecoder Decoder[W, D, I, O], overrides ...Override[W, D, I, O]) *MaskDecoder[W, D, I, O] {

	m, err := NewSparse(field, tag, defaultDecoder, overrides...)
	if err != nil {
		panic(err)
	}
	return m
}

// Decode dispatches to the child selected by the field value.
func (n *MaskDecoder[W, D, I, O]) Decode(word W, d D) I {
	return n.decoders[uint64(bits.Read(n.field, word))].Decode(word, d)
}

// Field returns the dispatch field.
func (n *MaskDecoder[W, D, I, O]) Field() bits.Field {
	return n.field
}

// Tag returns the descriptive tag of the node.
func (n *MaskDecoder[W, D, I, O]) Tag() string {
	return n.tag
}

func (n *MaskDecoder[W, D, I, O]) children() []Decoder[W, D, I, O] {
	return n.decoders
}

// CondDecoder dispatches on a predicate over the value of a bit field.
type CondDecoder[W bits.Word, D Context[W, I, O], I any, O comparable] struct {
	field     bits.Field
	predicate func(value W) bool
	whenTrue  Decoder[W, D, I, O]
	whenFalse Decoder[W, D, I, O]
}

// NewCond returns a conditional decoder.
func NewCond[W bits.Word, D Context[W, I, O], I any, O comparable](field bits.Field, predicate func(value W) bool,
	whenTrue, whenFalse Decoder[W, D, I, O]) (*CondDecoder[W, D, I, O], error) {

	if err := checkField[W](field, "cond"); err != nil {
		return nil, err
	}
	if predicate == nil || whenTrue == nil || whenFalse == nil {
		return nil, fmt.Errorf("%w: incomplete conditional decoder %s", ErrConfiguration, field)
	}
	return &CondDecoder[W, D, I, O]{
		field:     field,
		predicate: predicate,
		whenTrue:  whenTrue,
		whenFalse: whenFalse,
	}, nil
}

// Cond returns a conditional decoder and panics on a configuration error.
func Cond[W bits.Word, D Context[W, I, O], I any, O comparable](field bits.Field, predicate func(value W) bool,
	whenTrue, whenFalse Decoder[W, D, I, O]) *CondDecoder[W, D, I, O] {

	c, err := NewCond(field, predicate, whenTrue, whenFalse)
	if err != nil {
		panic(err)
	}
	return c
}

// Decode dispatches to one of the two children.
func (n *CondDecoder[W, D, I, O]) Decode(word W, d D) I {
	if n.predicate(bits.Read(n.field, word)) {
		return n.whenTrue.Decode(word, d)
	}
	return n.whenFalse.Decode(word, d)
}

func (n *CondDecoder[W, D, I, O]) children() []Decoder[W, D, I, O] {
	return []Decoder[W, D, I, O]{n.whenTrue, n.whenFalse}
}

// NyiDecoder is a stub for a recognized encoding that is not decoded yet.
type NyiDecoder[W bits.Word, D Context[W, I, O], I any, O comparable] struct {
	opcode  O
	message string
}

// Nyi returns a stub decoder. An empty message defaults to the opcode name.
func Nyi[W bits.Word, D Context[W, I, O], I any, O comparable](opcode O, message string) *NyiDecoder[W, D, I, O] {
	if message == "" {
		message = fmt.Sprint(opcode)
	}
	return &NyiDecoder[W, D, I, O]{
		opcode:  opcode,
		message: message,
	}
}

// Decode reports the stub hit through the context.
func (n *NyiDecoder[W, D, I, O]) Decode(word W, d D) I {
	return d.NotYetImplemented(n.opcode, n.message, word)
}

// Opcode returns the opcode of the stub.
func (n *NyiDecoder[W, D, I, O]) Opcode() O {
	return n.opcode
}

// Message returns the message reported for the stub.
func (n *NyiDecoder[W, D, I, O]) Message() string {
	return n.message
}

func (n *NyiDecoder[W, D, I, O]) children() []Decoder[W, D, I, O] {
	return nil
}

func checkField[W bits.Word](field bits.Field, tag string) error {
	if err := field.Check(bits.Width[W]()); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrConfiguration, tag, err)
	}
	return nil
}
