// Package options contains the program options.
package options

import (
	"strings"

	"github.com/retroenv/retrolift/internal/arch"
	"github.com/retroenv/retrolift/internal/machine"
)

// Parameters contains file path options.
type Parameters struct {
	Input  string
	Output string
	Verify string // golden listing to compare the output against
	Batch  string
}

// Flags contains behavior options.
type Flags struct {
	Arch         string
	BigEndian    bool
	LittleEndian bool
	Wide         bool
	Debug        bool
	Quiet        bool
}

// OutputFlags contains output formatting options.
type OutputFlags struct {
	Base         string
	Count        int
	RTL          bool
	Diagnostics  bool
	Simplify     bool
	NoHexComment bool
}

// Program options of the lifter.
type Program struct {
	Parameters
	Flags
	OutputFlags
}

// Lifter defines options to control the disassembly and lifting run.
type Lifter struct {
	Arch      string       // registry name, empty to detect from the input
	ArchFlags arch.Options // byte order and mode
	ByteOrder bool         // the byte order was given explicitly

	BaseAddress     machine.Address // load address of raw binaries
	HasBaseAddress  bool
	MaxInstructions int // 0 for no limit

	RTL         bool // output RTL clusters instead of disassembly
	Diagnostics bool // output decoder statistics and missing case stubs
	Simplify    bool // canonicalize comparisons in RTL output
	HexComments bool
}

// NewLifter returns a new options instance with default options.
func NewLifter(archName string) Lifter {
	return Lifter{
		Arch:        strings.ToLower(archName),
		HexComments: true,
	}
}
