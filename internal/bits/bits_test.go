package bits

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestWidth(t *testing.T) {
	assert.Equal(t, 8, Width[uint8]())
	assert.Equal(t, 16, Width[uint16]())
	assert.Equal(t, 32, Width[uint32]())
	assert.Equal(t, 64, Width[uint64]())
}

func TestRead(t *testing.T) {
	f := New(4, 8)
	assert.Equal(t, uint32(0xBC), Read(f, uint32(0x0000ABCD)))
	assert.Equal(t, uint16(0xBC), Read(f, uint16(0xABCD)))
	assert.Equal(t, uint64(0xFF0), f.ShiftedMask())
}

func TestReadSigned(t *testing.T) {
	for width := 1; width <= 16; width++ {
		for _, pos := range []int{0, 3, 32 - width} {
			f := New(pos, width)
			topBit := uint32(1) << uint(pos+width-1)
			allOnes := uint32(f.ShiftedMask())

			assert.Equal(t, -(int64(1) << uint(width-1)), ReadSigned(f, topBit))
			assert.Equal(t, int64(-1), ReadSigned(f, allOnes))
			// bits outside the field must not leak into the value
			assert.Equal(t, int64(0), ReadSigned(f, ^allOnes))
		}
	}
}

func TestReadFields(t *testing.T) {
	// earlier fields become the higher order bits
	fields := []Field{New(0, 4), New(8, 4)}
	assert.Equal(t, uint64(0xDB), ReadFields(fields, uint32(0x0B0D)))
	assert.Equal(t, int64(-37), ReadSignedFields(fields, uint32(0x0B0D)))
	assert.Equal(t, 8, TotalLength(fields))
}

func TestSignExtend(t *testing.T) {
	tests := []struct {
		name     string
		value    uint64
		width    int
		expected int64
	}{
		{"positive", 0x3, 3, 3},
		{"negative", 0x4, 3, -4},
		{"all ones", 0x7, 3, -1},
		{"ignores high bits", 0xF3, 3, 3},
		{"zero width", 0xFF, 0, 0},
		{"full width", ^uint64(0), 64, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SignExtend(tt.value, tt.width))
		})
	}
}

func TestBigEndianField(t *testing.T) {
	// bit 0 is the MSB, so a 6 bit field at 0 covers bits 31..26
	f := BigEndianField(32, 0, 6)
	assert.Equal(t, Field{Position: 26, Length: 6}, f)
	assert.Equal(t, uint32(0x02), Read(f, uint32(0x0B200000)))

	f = BigEndianField(32, 27, 5)
	assert.Equal(t, Field{Position: 0, Length: 5}, f)
}

func TestCheck(t *testing.T) {
	assert.NoError(t, New(26, 6).Check(32))
	err := New(28, 6).Check(32)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrFieldOutOfRange))
	assert.Error(t, New(12, 5).Check(16))
}

func TestIsBitSet(t *testing.T) {
	assert.True(t, IsBitSet(uint32(0x2), 1))
	assert.False(t, IsBitSet(uint32(0x2), 0))
	assert.True(t, IsBitSet(uint16(0x8000), 15))
}

func TestDump(t *testing.T) {
	s := Dump(0b1010_0110, 8, 0b1111_0000, "tag")
	assert.Equal(t, "1010.::. tag", s)
}
