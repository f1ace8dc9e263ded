// Package image provides a memory image with an endian-aware read cursor.
package image

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/retroenv/retrolift/internal/machine"
)

// ErrOutOfRange is returned when an address lies outside of the image.
var ErrOutOfRange = errors.New("address out of image range")

// Image is a contiguous block of bytes loaded at a base address.
type Image struct {
	base machine.Address
	data []byte
}

// New returns an image of the given bytes loaded at base.
func New(base machine.Address, data []byte) *Image {
	return &Image{
		base: base,
		data: data,
	}
}

// BaseAddress returns the address of the first byte of the image.
func (img *Image) BaseAddress() machine.Address {
	return img.base
}

// Size returns the number of bytes in the image.
func (img *Image) Size() int {
	return len(img.data)
}

// Bytes returns the image content.
func (img *Image) Bytes() []byte {
	return img.data
}

// Contains returns whether the address lies inside of the image.
func (img *Image) Contains(addr machine.Address) bool {
	return addr >= img.base && uint64(addr-img.base) < uint64(len(img.data))
}

// NewReader returns a cursor positioned at addr reading with the given byte order.
func (img *Image) NewReader(addr machine.Address, order binary.ByteOrder) (*Reader, error) {
	if !img.Contains(addr) && addr != img.base+machine.Address(len(img.data)) {
		return nil, fmt.Errorf("%w: %s", ErrOutOfRange, addr)
	}
	return &Reader{
		image:  img,
		offset: int(addr - img.base),
		order:  order,
	}, nil
}

// Reader is a read cursor over an image. Reads advance the cursor by the
// number of bytes consumed, a short read leaves the cursor unchanged.
// A Reader must not be used concurrently, Clone it instead.
type Reader struct {
	image  *Image
	offset int
	order  binary.ByteOrder
}

// Address returns the address of the cursor.
func (r *Reader) Address() machine.Address {
	return r.image.base + machine.Address(r.offset)
}

// Offset returns the cursor position relative to the image start.
func (r *Reader) Offset() int {
	return r.offset
}

// Order returns the byte order used for multi byte reads.
func (r *Reader) Order() binary.ByteOrder {
	return r.order
}

// Remaining returns the number of bytes left to read.
func (r *Reader) Remaining() int {
	return len(r.image.data) - r.offset
}

// IsValid returns whether at least one more byte can be read.
func (r *Reader) IsValid() bool {
	return r.offset < len(r.image.data)
}

// Clone returns an independent cursor at the current position.
func (r *Reader) Clone() *Reader {
	c := *r
	return &c
}

// Seek moves the cursor to addr.
func (r *Reader) Seek(addr machine.Address) error {
	if addr < r.image.base || uint64(addr-r.image.base) > uint64(len(r.image.data)) {
		return fmt.Errorf("%w: %s", ErrOutOfRange, addr)
	}
	r.offset = int(addr - r.image.base)
	return nil
}

func (r *Reader) take(n int) ([]byte, bool) {
	if r.offset+n > len(r.image.data) {
		return nil, false
	}
	b := r.image.data[r.offset : r.offset+n]
	r.offset += n
	return b, true
}

// TryReadByte reads one byte.
func (r *Reader) TryReadByte() (byte, bool) {
	b, ok := r.take(1)
	if !ok {
		return 0, false
	}
	return b[0], true
}

// TryReadUInt16 reads a 16 bit word in the reader byte order.
func (r *Reader) TryReadUInt16() (uint16, bool) {
	b, ok := r.take(2)
	if !ok {
		return 0, false
	}
	return r.order.Uint16(b), true
}

// TryReadUInt32 reads a 32 bit word in the reader byte order.
func (r *Reader) TryReadUInt32() (uint32, bool) {
	b, ok := r.take(4)
	if !ok {
		return 0, false
	}
	return r.order.Uint32(b), true
}

// TryReadUInt64 reads a 64 bit word in the reader byte order.
func (r *Reader) TryReadUInt64() (uint64, bool) {
	b, ok := r.take(8)
	if !ok {
		return 0, false
	}
	return r.order.Uint64(b), true
}

// TryReadInt32 reads a signed 32 bit word in the reader byte order.
func (r *Reader) TryReadInt32() (int32, bool) {
	v, ok := r.TryReadUInt32()
	return int32(v), ok
}

// TryReadBeUInt32 reads a big endian 32 bit word regardless of the reader byte order.
func (r *Reader) TryReadBeUInt32() (uint32, bool) {
	b, ok := r.take(4)
	if !ok {
		return 0, false
	}
	return binary.BigEndian.Uint32(b), true
}

// TryReadBeUInt16 reads a big endian 16 bit word regardless of the reader byte order.
func (r *Reader) TryReadBeUInt16() (uint16, bool) {
	b, ok := r.take(2)
	if !ok {
		return 0, false
	}
	return binary.BigEndian.Uint16(b), true
}

// PeekBytes returns up to n bytes at the cursor without advancing it.
func (r *Reader) PeekBytes(n int) []byte {
	end := min(r.offset+n, len(r.image.data))
	return r.image.data[r.offset:end]
}
