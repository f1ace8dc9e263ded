package rtl

import (
	"testing"

	"github.com/retroenv/retrolift/internal/machine"
	"github.com/retroenv/retrolift/internal/types"
	"github.com/retroenv/retrogolib/assert"
)

func TestConstantString(t *testing.T) {
	tests := []struct {
		name     string
		c        *Constant
		expected string
	}{
		{"word32", Word32(1), "0x00000001<32>"},
		{"byte", NewConstant(types.Byte, 0x1FF), "0xFF<8>"},
		{"int32", Int32(-4), "-4<i32>"},
		{"bool", True(), "true"},
		{"zero", Zero(types.Word64), "0x0000000000000000<64>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.c.String())
		})
	}
}

func TestAddSigned(t *testing.T) {
	var m ExpressionEmitter
	r1 := &Identifier{Name: "r1", Type: types.Word32}

	assert.Equal(t, Expression(r1), m.AddSigned(r1, 0))
	assert.Equal(t, "r1 + 0x00000010<32>", m.AddSigned(r1, 16).String())
	assert.Equal(t, "r1 - 0x00000004<32>", m.AddSigned(r1, -4).String())
	assert.Equal(t, "r1 * 0x00000003<32>", m.IMul(r1, Word32(3)).String())
}

func TestOperatorTranspose(t *testing.T) {
	assert.Equal(t, Gt, Lt.Transpose())
	assert.Equal(t, Ule, Uge.Transpose())
	assert.Equal(t, Eq, Eq.Transpose())
	assert.Equal(t, Add, Add.Transpose())
	assert.True(t, Fle.IsConditional())
	assert.False(t, Xor.IsConditional())
	assert.Equal(t, Ge, Lt.Invert())
}

func TestEmitterCluster(t *testing.T) {
	m := NewEmitter(types.Ptr32)
	r1 := &Identifier{Name: "r1", Type: types.Word32}
	r2 := &Identifier{Name: "r2", Type: types.Word32}

	m.Assign(r1, m.IAdd(r2, Word32(1)))
	m.Store(m.Mem(types.Word32, m.AddSigned(r2, -8)), r1)
	m.Branch(m.Eq0(r1), 0x1008, machine.ConditionalTransfer).Annul = true

	c := NewCluster(0x1000, 4, machine.ConditionalTransfer, m.Operations())
	expected := []string{
		"0|C--|00001000(4): 3 instructions",
		"1|L--|r1 = r2 + 0x00000001<32>",
		"2|L--|Mem32[r2 - 0x00000008<32>:word32] = r1",
		"3|C--|if (r1 == 0x00000000<32>) branch 00001008",
	}
	assert.Equal(t, expected, c.Lines())
	assert.True(t, c.Instructions[2].(*Branch).Annul)
	assert.False(t, c.IsInvalid())

	m.Reset()
	assert.Len(t, m.Operations(), 0)
}

func TestApplicationString(t *testing.T) {
	var m ExpressionEmitter
	syscall := &Intrinsic{Name: "__syscall", HasSideEffect: true, ReturnType: types.Word32}
	e := m.Fn(syscall, Word32(0x10), Int32(-1))
	assert.Equal(t, "__syscall(0x00000010<32>, -1<i32>)", e.String())
	assert.Equal(t, types.Word32, e.DataType())
}
