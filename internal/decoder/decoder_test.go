package decoder

import (
	"errors"
	"testing"

	"github.com/retroenv/retrolift/internal/bits"
	"github.com/retroenv/retrolift/internal/machine"
	"github.com/retroenv/retrogolib/assert"
)

type testOpcode string

type testInstruction struct {
	class    machine.InstrClass
	opcode   testOpcode
	operands []int64
}

type testContext struct {
	operands []int64
	stubs    []string
}

func (c *testContext) MakeInstruction(class machine.InstrClass, opcode testOpcode) *testInstruction {
	return &testInstruction{class: class, opcode: opcode, operands: c.operands}
}

func (c *testContext) Invalid() *testInstruction {
	return &testInstruction{class: machine.Invalid, opcode: "invalid"}
}

func (c *testContext) NotYetImplemented(opcode testOpcode, message string, _ uint16) *testInstruction {
	c.stubs = append(c.stubs, message)
	return &testInstruction{opcode: opcode}
}

type (
	node     = Decoder[uint16, *testContext, *testInstruction, testOpcode]
	mutator  = Mutator[uint16, *testContext]
	override = Override[uint16, *testContext, *testInstruction, testOpcode]
)

func instr(opcode testOpcode, mutators ...mutator) node {
	return Instr[uint16, *testContext, *testInstruction, testOpcode](opcode, machine.Linear, mutators...)
}

func mask(field bits.Field, tag string, decoders ...node) node {
	return Mask(field, tag, decoders...)
}

func sparse(field bits.Field, tag string, def node, overrides ...override) node {
	return Sparse(field, tag, def, overrides...)
}

func cond(field bits.Field, predicate func(uint16) bool, whenTrue, whenFalse node) node {
	return Cond(field, predicate, whenTrue, whenFalse)
}

func nyi(opcode testOpcode) node {
	return Nyi[uint16, *testContext, *testInstruction, testOpcode](opcode, "")
}

func imm(pos, length int) mutator {
	f := bits.New(pos, length)
	return func(w uint16, c *testContext) bool {
		c.operands = append(c.operands, bits.ReadSigned(f, w))
		return true
	}
}

// nonZero fails for a zero field value.
func nonZero(pos, length int) mutator {
	f := bits.New(pos, length)
	return func(w uint16, c *testContext) bool {
		return bits.Read(f, w) != 0
	}
}

func decode(root node, w uint16) (*testInstruction, *testContext) {
	c := &testContext{}
	return root.Decode(w, c), c
}

func TestMaskDispatch(t *testing.T) {
	invalid := instr("invalid")
	root := mask(bits.New(12, 2), "root",
		instr("zero", imm(0, 4)),
		instr("one", imm(0, 4), imm(4, 4)),
		nyi("two"),
		sparse(bits.New(0, 4), "three", invalid,
			override{0x3, instr("three-3")},
			override{0xF, instr("three-f", nonZero(4, 4))},
		),
	)

	tests := []struct {
		name     string
		word     uint16
		opcode   testOpcode
		operands []int64
	}{
		{"dense", 0x0008, "zero", []int64{-8}},
		{"mutator order", 0x1017, "one", []int64{7, 1}},
		{"sparse hit", 0x3003, "three-3", nil},
		{"sparse default", 0x3004, "invalid", nil},
		{"sparse mutator ok", 0x30FF, "three-f", nil},
		{"mutator fails", 0x300F, "invalid", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ins, _ := decode(root, tt.word)
			assert.Equal(t, tt.opcode, ins.opcode)
			assert.Equal(t, tt.operands, ins.operands)
		})
	}
}

func TestInvalidOnFailedMutator(t *testing.T) {
	root := instr("op", imm(0, 4), nonZero(8, 4))
	ins, _ := decode(root, 0x0001)
	assert.Equal(t, machine.Invalid, ins.class)
	assert.True(t, ins.operands == nil)
}

func TestNyiDecoder(t *testing.T) {
	root := mask(bits.New(15, 1), "top", nyi("stub"), instr("real"))

	ins, c := decode(root, 0x0000)
	assert.Equal(t, testOpcode("stub"), ins.opcode)
	assert.Equal(t, machine.InstrClass(0), ins.class)
	assert.Empty(t, ins.operands)
	assert.Equal(t, []string{"stub"}, c.stubs)

	ins, c = decode(root, 0x8000)
	assert.Equal(t, testOpcode("real"), ins.opcode)
	assert.Empty(t, c.stubs)
}

func TestCondDecoder(t *testing.T) {
	root := cond(bits.New(0, 3), func(v uint16) bool { return v&^1 == 0 },
		instr("fpu"),
		instr("other"))

	for w, expected := range map[uint16]testOpcode{0: "fpu", 1: "fpu", 2: "other", 7: "other"} {
		ins, _ := decode(root, w)
		assert.Equal(t, expected, ins.opcode)
	}
}

func TestConfigurationErrors(t *testing.T) {
	leaf := instr("x")

	m, err := NewMask(bits.New(0, 1), "valid", leaf, leaf)
	assert.NoError(t, err)
	assert.Equal(t, "valid", m.Tag())
	assert.Equal(t, bits.New(0, 1), m.Field())

	_, err = NewMask(bits.New(0, 2), "short", leaf, leaf, leaf)
	assert.True(t, errors.Is(err, ErrConfiguration))

	_, err = NewMask(bits.New(14, 4), "wide", make([]node, 16)...)
	assert.True(t, errors.Is(err, ErrConfiguration))
	assert.True(t, errors.Is(err, bits.ErrFieldOutOfRange))

	_, err = NewMask(bits.New(0, 1), "nil", leaf, nil)
	assert.True(t, errors.Is(err, ErrConfiguration))

	_, err = NewSparse(bits.New(0, 2), "range", leaf, override{4, leaf})
	assert.ErrorContains(t, err, "out of range")

	_, err = NewSparse(bits.New(0, 2), "duplicate", leaf, override{1, leaf}, override{1, leaf})
	assert.ErrorContains(t, err, "overridden twice")

	_, err = NewCond[uint16, *testContext, *testInstruction, testOpcode](bits.New(0, 1), nil, leaf, leaf)
	assert.True(t, errors.Is(err, ErrConfiguration))

	defer func() {
		assert.NotNil(t, recover())
	}()
	Mask(bits.New(0, 1), "panics", leaf)
}

func TestDeterminism(t *testing.T) {
	root := mask(bits.New(12, 2), "root",
		instr("a", imm(0, 4), imm(4, 8)),
		instr("b", imm(0, 12)),
		instr("c"),
		instr("d"))

	for w := 0; w <= 0xFFFF; w += 7 {
		first, _ := decode(root, uint16(w))
		second, _ := decode(root, uint16(w))
		assert.Equal(t, *first, *second)
	}
}

func TestCollect(t *testing.T) {
	invalid := instr("invalid")
	stub := nyi("stub")
	root := mask(bits.New(14, 2), "root",
		invalid,
		stub,
		sparse(bits.New(0, 4), "sub", invalid, override{1, instr("one")}),
		cond(bits.New(0, 1), func(v uint16) bool { return v == 0 }, invalid, stub))

	stats := Collect(root)
	assert.Equal(t, 6, stats.Nodes)
	assert.Equal(t, 2, stats.Terminals)
	assert.Equal(t, 2, stats.Masks)
	assert.Equal(t, 1, stats.Conds)
	assert.Equal(t, 1, stats.Stubs)
	assert.Equal(t, 2, stats.MaxDepth)

	visited := 0
	Walk(root, func(node, int) bool {
		visited++
		return true
	})
	assert.Equal(t, 1+4+16+2, visited)
}
