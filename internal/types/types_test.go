package types

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestPrimitiveTypes(t *testing.T) {
	assert.Equal(t, Word32, Word(32))
	assert.Equal(t, Int16, Int(16))
	assert.Equal(t, "word24", Word(24).String())
	assert.Equal(t, 3, Word(24).Size())
	assert.Equal(t, 1, Bool.Size())

	assert.True(t, Real64.IsReal())
	assert.False(t, Word64.IsReal())
}
