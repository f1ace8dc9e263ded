// Package loader handles loading of the input files.
package loader

import (
	"bytes"
	"debug/elf"
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/retrolift/internal/arch/mips"
	"github.com/retroenv/retrolift/internal/arch/parisc"
	"github.com/retroenv/retrolift/internal/machine"
)

var (
	// ErrUnsupportedMachine is returned for ELF files of a machine without
	// a registered architecture.
	ErrUnsupportedMachine = errors.New("unsupported ELF machine")
	// ErrNoCodeSection is returned for ELF files without an executable section.
	ErrNoCodeSection = errors.New("no executable section found")
)

var elfMagic = []byte{0x7f, 'E', 'L', 'F'}

// elfMachines maps ELF machine types to architecture names.
var elfMachines = map[elf.Machine]string{
	elf.EM_PARISC:      parisc.Name,
	elf.EM_MIPS:        mips.Name,
	elf.EM_MIPS_RS3_LE: mips.Name,
}

// File is the code loaded from an input file.
type File struct {
	Data []byte

	ELF        bool            // the file is an ELF object
	Arch       string          // architecture name of the ELF machine
	BigEndian  bool            // ELF data encoding
	Wide       bool            // ELF class 64
	Address    machine.Address // load address of the code section
	Entry      machine.Address
	Section    string // name of the code section
	HasAddress bool
}

// Loader handles loading files from disk.
type Loader struct{}

// New creates a new loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the input file. ELF objects are reduced to their code section,
// any other file is returned as raw code.
func (l *Loader) Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return l.LoadFromBytes(data)
}

// LoadFromBytes processes the content of an input file.
func (l *Loader) LoadFromBytes(data []byte) (*File, error) {
	if !bytes.HasPrefix(data, elfMagic) {
		return &File{Data: data}, nil
	}
	return l.loadELF(data)
}

func (l *Loader) loadELF(data []byte) (*File, error) {
	f, err := elf.NewFile(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing ELF file: %w", err)
	}
	defer func() { _ = f.Close() }()

	name, ok := elfMachines[f.Machine]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMachine, f.Machine)
	}

	sec := codeSection(f)
	if sec == nil {
		return nil, ErrNoCodeSection
	}
	code, err := sec.Data()
	if err != nil {
		return nil, fmt.Errorf("reading section %s: %w", sec.Name, err)
	}

	return &File{
		Data:       code,
		ELF:        true,
		Arch:       name,
		BigEndian:  f.Data == elf.ELFDATA2MSB,
		Wide:       f.Class == elf.ELFCLASS64,
		Address:    machine.Address(sec.Addr),
		Entry:      machine.Address(f.Entry),
		Section:    sec.Name,
		HasAddress: true,
	}, nil
}

// codeSection returns the .text section, or the first executable section
// with content if the file has no .text section.
func codeSection(f *elf.File) *elf.Section {
	if sec := f.Section(".text"); sec != nil && sec.Flags&elf.SHF_EXECINSTR != 0 {
		return sec
	}
	for _, sec := range f.Sections {
		if sec.Type == elf.SHT_PROGBITS && sec.Flags&elf.SHF_EXECINSTR != 0 {
			return sec
		}
	}
	return nil
}
