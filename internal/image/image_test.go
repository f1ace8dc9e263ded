package image

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/retroenv/retrolift/internal/machine"
	"github.com/retroenv/retrogolib/assert"
)

func TestReaderByteOrder(t *testing.T) {
	img := New(0x1000, []byte{0x0B, 0x20, 0x00, 0x00, 0x12, 0x34})

	be, err := img.NewReader(0x1000, binary.BigEndian)
	assert.NoError(t, err)
	w, ok := be.TryReadUInt32()
	assert.True(t, ok)
	assert.Equal(t, uint32(0x0B200000), w)
	assert.Equal(t, machine.Address(0x1004), be.Address())

	le, err := img.NewReader(0x1000, binary.LittleEndian)
	assert.NoError(t, err)
	w, ok = le.TryReadUInt32()
	assert.True(t, ok)
	assert.Equal(t, uint32(0x0000200B), w)

	h, ok := le.TryReadBeUInt16()
	assert.True(t, ok)
	assert.Equal(t, uint16(0x1234), h)
	assert.False(t, le.IsValid())
	assert.Equal(t, binary.ByteOrder(binary.LittleEndian), le.Order())
}

func TestReaderShortRead(t *testing.T) {
	img := New(0, []byte{1, 2, 3})
	r, err := img.NewReader(0, binary.BigEndian)
	assert.NoError(t, err)

	_, ok := r.TryReadUInt32()
	assert.False(t, ok)
	assert.Equal(t, 0, r.Offset())

	v, ok := r.TryReadUInt16()
	assert.True(t, ok)
	assert.Equal(t, uint16(0x0102), v)
	assert.Equal(t, 1, r.Remaining())
}

func TestReaderClone(t *testing.T) {
	img := New(0x100, []byte{0xAA, 0xBB, 0xCC, 0xDD})
	r, err := img.NewReader(0x102, binary.BigEndian)
	assert.NoError(t, err)

	c := r.Clone()
	b, ok := c.TryReadByte()
	assert.True(t, ok)
	assert.Equal(t, byte(0xCC), b)
	assert.Equal(t, machine.Address(0x102), r.Address())
	assert.Equal(t, machine.Address(0x103), c.Address())
	assert.Equal(t, []byte{0xCC, 0xDD}, r.PeekBytes(8))
}

func TestNewReaderOutOfRange(t *testing.T) {
	img := New(0x100, []byte{0, 0})
	_, err := img.NewReader(0x80, binary.BigEndian)
	assert.True(t, errors.Is(err, ErrOutOfRange))

	r, err := img.NewReader(0x102, binary.BigEndian)
	assert.NoError(t, err)
	assert.False(t, r.IsValid())

	assert.Error(t, r.Seek(0x200))
	assert.NoError(t, r.Seek(0x100))
	assert.Equal(t, 2, r.Remaining())
}
