package parisc

import (
	"github.com/retroenv/retrolift/internal/bits"
)

// The PA-RISC manuals number instruction bits from the most significant bit.
// All positions in this package follow the manual.
const wordBits = 32

func beField(position, length int) bits.Field {
	return bits.BigEndianField(wordBits, position, length)
}

// beFields converts pairs of position and length.
func beFields(positionLength ...int) []bits.Field {
	fields := make([]bits.Field, 0, len(positionLength)/2)
	for i := 0; i+1 < len(positionLength); i += 2 {
		fields = append(fields, beField(positionLength[i], positionLength[i+1]))
	}
	return fields
}

func read(f bits.Field, word uint32) uint64 {
	return uint64(bits.Read(f, word))
}

// permutation assembles the value of an immediate spread over several fields.
// The result is not sign extended unless stated.
type permutation func(word uint32, fields []bits.Field, wide bool) uint64

// concat concatenates the fields, the first field is the most significant.
func concat(word uint32, fields []bits.Field, _ bool) uint64 {
	return bits.ReadFields(fields, word)
}

// rotateLow11 moves bit 0 of an 11 bit field to the top: cat(x{10},x{0..9}).
func rotateLow11(x uint64) uint64 {
	return (x<<10)&0b1_00000_00000 | (x>>1)&0b0_11111_11111
}

// assemble6 returns the extract and deposit length 32*x + (32-y).
func assemble6(word uint32, fields []bits.Field, _ bool) uint64 {
	x := read(fields[0], word)
	y := read(fields[1], word)
	return 32*x + (32 - y)
}

// assemble12 returns cat(y,x{10},x{0..9}).
func assemble12(word uint32, fields []bits.Field, _ bool) uint64 {
	x := read(fields[0], word)
	y := read(fields[1], word)
	return y<<uint(fields[0].Length) | rotateLow11(x)
}

// assemble16 returns the 16 bit displacement of long loads and stores. In
// wide mode it is cat(y{13},xor(y{13},x{0}),xor(y{13},x{1}),y{0..12}), in
// narrow mode the space selector bits are replaced by the sign and the
// result is sign extended from 16 bits.
func assemble16(word uint32, fields []bits.Field, wide bool) uint64 {
	x := read(fields[0], word)
	y := read(fields[1], word)
	y13 := y & 1
	if wide {
		x0 := (x >> 1) & 1
		x1 := x & 1
		p := y13
		p = p<<1 | (y13 ^ x0)
		p = p<<1 | (y13 ^ x1)
		return p<<13 | y>>1
	}
	p := ((8-y13)&7)<<13 | y>>1
	return uint64(bits.SignExtend(p, 16))
}

// assemble16a returns the displacement of word loads and stores with base
// modification: cat(z,xor(z,x{0}),xor(z,x{1}),y,0{0..1}) in wide mode.
func assemble16a(word uint32, fields []bits.Field, wide bool) uint64 {
	x := read(fields[0], word)
	y := read(fields[1], word)
	z := read(fields[2], word)
	p := ((8 - z) & 7) << 13
	if wide {
		p ^= x << 13
	}
	return p | y<<2
}

// assemble17 returns cat(z,x,y{10},y{0..9}).
func assemble17(word uint32, fields []bits.Field, _ bool) uint64 {
	x := read(fields[0], word)
	y := read(fields[1], word)
	z := read(fields[2], word)
	p := z<<uint(fields[0].Length) | x
	return p<<uint(fields[1].Length) | rotateLow11(y)
}

// Positions of the 21 bit immediate pieces within the field value.
var assemble21Fields = []bits.Field{
	beField(11+20, 1),
	beField(11+9, 11),
	beField(11+5, 2),
	beField(11+0, 5),
	beField(11+7, 2),
}

// assemble21 returns cat(x{20},x{9..19},x{5..6},x{0..4},x{7..8}) of the
// 21 bit field x.
func assemble21(word uint32, fields []bits.Field, _ bool) uint64 {
	x := read(fields[0], word)
	return bits.ReadFields(assemble21Fields, uint32(x))
}

// assemble22 returns cat(d,a,b,c{10},c{0..9}).
func assemble22(word uint32, fields []bits.Field, _ bool) uint64 {
	a := read(fields[0], word)
	b := read(fields[1], word)
	c := read(fields[2], word)
	d := read(fields[3], word)
	p := d<<uint(fields[0].Length) | a
	p = p<<uint(fields[1].Length) | b
	return p<<uint(fields[2].Length) | rotateLow11(c)
}

// lowSignExt returns sign_ext(cat(x{len-1},x{0..len-2}),len): the least
// significant bit of the field is the sign.
func lowSignExt(width int) permutation {
	return func(word uint32, fields []bits.Field, _ bool) uint64 {
		x := read(fields[0], word)
		p := x>>1 | x<<uint(width-1)
		return uint64(bits.SignExtend(p, width))
	}
}

var (
	lowSignExt5  = lowSignExt(5)
	lowSignExt11 = lowSignExt(11)
)
