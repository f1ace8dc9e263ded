// Package bits provides bit field extraction for fixed width instruction words.
//
// Fields are numbered from the least significant bit. Architectures whose
// manuals number bits from the most significant bit convert their positions
// with BigEndianField.
package bits

import (
	"errors"
	"fmt"
	mathbits "math/bits"
	"strings"

	"golang.org/x/exp/constraints"
)

// ErrFieldOutOfRange is returned when a field does not fit into a word.
var ErrFieldOutOfRange = errors.New("bit field out of range")

// Word is the set of unsigned integer types that can hold an instruction word.
type Word interface {
	constraints.Unsigned
}

// Width returns the bit width of the word type W.
func Width[W Word]() int {
	return mathbits.Len64(uint64(^W(0)))
}

// Field is a span of Length bits starting at bit Position.
type Field struct {
	Position int
	Length   int
}

// New returns a field spanning length bits starting at position.
func New(position, length int) Field {
	return Field{Position: position, Length: length}
}

// BigEndianField returns a field for manuals that number the most significant
// bit of a width bit word as bit 0.
func BigEndianField(width, position, length int) Field {
	return Field{Position: width - (position + length), Length: length}
}

// Check returns an error if the field does not fit into a word of the given width.
func (f Field) Check(width int) error {
	if f.Position < 0 || f.Length < 0 || f.Position+f.Length > width {
		return fmt.Errorf("%w: %s in %d bit word", ErrFieldOutOfRange, f, width)
	}
	return nil
}

// Mask returns the unshifted mask of the field.
func (f Field) Mask() uint64 {
	if f.Length >= 64 {
		return ^uint64(0)
	}
	return 1<<uint(f.Length) - 1
}

// ShiftedMask returns the mask of the field at its position in the word.
func (f Field) ShiftedMask() uint64 {
	return f.Mask() << uint(f.Position)
}

func (f Field) String() string {
	return fmt.Sprintf("[%d:%d]", f.Position, f.Length)
}

// Read returns the unsigned value of the field.
func Read[W Word](f Field, w W) W {
	return W((uint64(w) >> uint(f.Position)) & f.Mask())
}

// ReadSigned returns the value of the field sign extended from its own width.
func ReadSigned[W Word](f Field, w W) int64 {
	return SignExtend((uint64(w)>>uint(f.Position))&f.Mask(), f.Length)
}

// ReadFields concatenates the fields, the first field ending up in the
// highest order bits of the result.
func ReadFields[W Word](fields []Field, w W) uint64 {
	var v uint64
	for _, f := range fields {
		v = v<<uint(f.Length) | (uint64(w)>>uint(f.Position))&f.Mask()
	}
	return v
}

// ReadSignedFields concatenates the fields like ReadFields and sign extends
// the result from the total length of the fields.
func ReadSignedFields[W Word](fields []Field, w W) int64 {
	return SignExtend(ReadFields(fields, w), TotalLength(fields))
}

// TotalLength returns the sum of the lengths of the fields.
func TotalLength(fields []Field) int {
	n := 0
	for _, f := range fields {
		n += f.Length
	}
	return n
}

// SignExtend interprets the low width bits of v as a two's complement number.
func SignExtend(v uint64, width int) int64 {
	if width <= 0 {
		return 0
	}
	if width >= 64 {
		return int64(v)
	}
	shift := uint(64 - width)
	return int64(v<<shift) >> shift
}

// IsBitSet reports whether the bit at LSB-numbered position bit is set.
func IsBitSet[W Word](w W, bit int) bool {
	return (uint64(w)>>uint(bit))&1 != 0
}

// Dump renders a word of the given width as a bit string, printing the bits
// covered by mask as 0/1 and the other bits as '.'/':'.
func Dump(w uint64, width int, mask uint64, tag string) string {
	var sb strings.Builder
	for i := width - 1; i >= 0; i-- {
		set := (w>>uint(i))&1 != 0
		switch {
		case (mask>>uint(i))&1 != 0 && set:
			sb.WriteByte('1')
		case (mask>>uint(i))&1 != 0:
			sb.WriteByte('0')
		case set:
			sb.WriteByte(':')
		default:
			sb.WriteByte('.')
		}
	}
	if tag != "" {
		sb.WriteByte(' ')
		sb.WriteString(tag)
	}
	return sb.String()
}
