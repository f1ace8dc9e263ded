package storage

import (
	"testing"

	"github.com/retroenv/retrolift/internal/machine"
	"github.com/retroenv/retrolift/internal/rtl"
	"github.com/retroenv/retrolift/internal/types"
	"github.com/retroenv/retrogolib/assert"
)

func TestFrameEnsureRegister(t *testing.T) {
	regs := machine.Registers("r%d", 2, machine.GeneralPurpose, types.Word32)
	f := NewFrame()

	id := f.EnsureRegister(regs[1])
	assert.Equal(t, "r1", id.Name)
	assert.Equal(t, types.Word32, id.Type)
	assert.Equal(t, rtl.RegisterStorage, id.Kind)
	assert.True(t, id == f.EnsureRegister(regs[1]))
	assert.False(t, id == f.EnsureRegister(regs[0]))
}

func TestFrameEnsureSequence(t *testing.T) {
	hi := &machine.Register{Name: "hi", DataType: types.Word32}
	lo := &machine.Register{Name: "lo", DataType: types.Word32}
	f := NewFrame()

	id := f.EnsureSequence(types.Word64, hi, lo)
	assert.Equal(t, "hi_lo", id.Name)
	assert.Equal(t, types.Word64, id.Type)
	assert.Len(t, id.Elements, 2)
	assert.True(t, id == f.EnsureSequence(types.Word64, hi, lo))
}

func TestFrameFlagsAndTemporaries(t *testing.T) {
	f := NewFrame()
	c := f.EnsureFlag("C")
	assert.True(t, c == f.EnsureFlag("C"))
	assert.Equal(t, types.Bool, c.Type)

	t1 := f.CreateTemporary(types.Word32)
	t2 := f.CreateTemporary(types.Word32)
	assert.Equal(t, "v2", t1.Name)
	assert.Equal(t, "v3", t2.Name)
}
