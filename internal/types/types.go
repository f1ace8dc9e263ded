// Package types contains the primitive data types used by operands and RTL expressions.
package types

import "fmt"

// Domain is the set of interpretations a value of a primitive type can have.
type Domain uint8

// Domains of primitive types.
const (
	Bits     Domain = iota // raw bits, no interpretation
	Boolean                // truth value
	Signed                 // two's complement integer
	Unsigned               // unsigned integer
	Real                   // IEEE floating point
	Pointer                // address in memory
)

// PrimitiveType is a data type described by a domain and a bit size.
// Values are compared by pointer, use the package level instances.
type PrimitiveType struct {
	Domain  Domain
	BitSize int
	Name    string
}

// Predefined primitive types.
var (
	Bool    = &PrimitiveType{Domain: Boolean, BitSize: 1, Name: "bool"}
	Byte    = &PrimitiveType{Domain: Bits, BitSize: 8, Name: "byte"}
	SByte   = &PrimitiveType{Domain: Signed, BitSize: 8, Name: "int8"}
	Word16  = &PrimitiveType{Domain: Bits, BitSize: 16, Name: "word16"}
	Int16   = &PrimitiveType{Domain: Signed, BitSize: 16, Name: "int16"}
	UInt16  = &PrimitiveType{Domain: Unsigned, BitSize: 16, Name: "uint16"}
	Word32  = &PrimitiveType{Domain: Bits, BitSize: 32, Name: "word32"}
	Int32   = &PrimitiveType{Domain: Signed, BitSize: 32, Name: "int32"}
	UInt32  = &PrimitiveType{Domain: Unsigned, BitSize: 32, Name: "uint32"}
	Word64  = &PrimitiveType{Domain: Bits, BitSize: 64, Name: "word64"}
	Int64   = &PrimitiveType{Domain: Signed, BitSize: 64, Name: "int64"}
	UInt64  = &PrimitiveType{Domain: Unsigned, BitSize: 64, Name: "uint64"}
	Word128 = &PrimitiveType{Domain: Bits, BitSize: 128, Name: "word128"}
	Int128  = &PrimitiveType{Domain: Signed, BitSize: 128, Name: "int128"}
	UInt128 = &PrimitiveType{Domain: Unsigned, BitSize: 128, Name: "uint128"}
	Real32  = &PrimitiveType{Domain: Real, BitSize: 32, Name: "real32"}
	Real64  = &PrimitiveType{Domain: Real, BitSize: 64, Name: "real64"}
	Real128 = &PrimitiveType{Domain: Real, BitSize: 128, Name: "real128"}
	Ptr16   = &PrimitiveType{Domain: Pointer, BitSize: 16, Name: "ptr16"}
	Ptr32   = &PrimitiveType{Domain: Pointer, BitSize: 32, Name: "ptr32"}
	Ptr64   = &PrimitiveType{Domain: Pointer, BitSize: 64, Name: "ptr64"}
	Void    = &PrimitiveType{Domain: Bits, BitSize: 0, Name: "void"} // result of side effect only intrinsics
)

// Size returns the size of the type in bytes, rounded up.
func (p *PrimitiveType) Size() int {
	return (p.BitSize + 7) / 8
}

// IsReal returns whether the type is a floating point type.
func (p *PrimitiveType) IsReal() bool {
	return p.Domain == Real
}

func (p *PrimitiveType) String() string {
	return p.Name
}

// Word returns the bits type of the given size.
func Word(bitSize int) *PrimitiveType {
	switch bitSize {
	case 8:
		return Byte
	case 16:
		return Word16
	case 32:
		return Word32
	case 64:
		return Word64
	case 128:
		return Word128
	}
	return &PrimitiveType{Domain: Bits, BitSize: bitSize, Name: fmt.Sprintf("word%d", bitSize)}
}

// Int returns the signed integer type of the given size.
func Int(bitSize int) *PrimitiveType {
	switch bitSize {
	case 8:
		return SByte
	case 16:
		return Int16
	case 32:
		return Int32
	case 64:
		return Int64
	case 128:
		return Int128
	}
	return &PrimitiveType{Domain: Signed, BitSize: bitSize, Name: fmt.Sprintf("int%d", bitSize)}
}

// UInt returns the unsigned integer type of the given size.
func UInt(bitSize int) *PrimitiveType {
	switch bitSize {
	case 8:
		return Byte
	case 16:
		return UInt16
	case 32:
		return UInt32
	case 64:
		return UInt64
	case 128:
		return UInt128
	}
	return &PrimitiveType{Domain: Unsigned, BitSize: bitSize, Name: fmt.Sprintf("uint%d", bitSize)}
}

// Ptr returns the pointer type of the given size.
func Ptr(bitSize int) *PrimitiveType {
	switch bitSize {
	case 16:
		return Ptr16
	case 32:
		return Ptr32
	default:
		return Ptr64
	}
}
