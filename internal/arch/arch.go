// Package arch contains types and functions used for multi architecture support.
// It acts as a bridge between the lifting pipeline and the architecture specific
// decoders and rewriters.
package arch

import (
	"encoding/binary"
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/retroenv/retrolift/internal/decoder"
	"github.com/retroenv/retrolift/internal/host"
	"github.com/retroenv/retrolift/internal/image"
	"github.com/retroenv/retrolift/internal/machine"
	"github.com/retroenv/retrolift/internal/rtl"
	"github.com/retroenv/retrolift/internal/storage"
	"github.com/retroenv/retrolift/internal/testgen"
	"github.com/retroenv/retrolift/internal/types"
)

// ErrUnknownArchitecture is returned when no architecture is registered for a name.
var ErrUnknownArchitecture = errors.New("unknown architecture")

// Options configures an architecture instance.
type Options struct {
	BigEndian bool // byte order for architectures that support both
	Wide      bool // 64 bit mode for architectures that support it
}

// Services are the external collaborators of disassemblers and rewriters.
type Services struct {
	Binder  storage.Binder  // register binding, scoped to one rewriter
	Host    host.Host       // receives translation errors
	TestGen testgen.Service // receives missing decoder and rewriter cases
}

// WithDefaults returns a copy where missing services are replaced by a new
// frame, a discarding host and a no-op test generator.
func (s Services) WithDefaults() Services {
	if s.Binder == nil {
		s.Binder = storage.NewFrame()
	}
	if s.Host == nil {
		s.Host = host.Discard{}
	}
	if s.TestGen == nil {
		s.TestGen = testgen.Nop{}
	}
	return s
}

// Architecture contains architecture specific information and creates the
// disassemblers and rewriters of the architecture.
type Architecture interface {
	// Name returns the registry name of the architecture.
	Name() string
	// ByteOrder returns the byte order of instruction words.
	ByteOrder() binary.ByteOrder
	// InstructionBitSize returns the width of one instruction word.
	InstructionBitSize() int
	// PointerType returns the type of code addresses.
	PointerType() *types.PrimitiveType
	// NewDisassembler returns a disassembler reading from rdr.
	NewDisassembler(rdr *image.Reader, testGen testgen.Service) Disassembler
	// NewRewriter returns a rewriter lifting the instructions read from rdr.
	NewRewriter(rdr *image.Reader, services Services) Rewriter
	// DecoderStats returns statistics of the decoder tree.
	DecoderStats() decoder.Stats
}

// Disassembler decodes one instruction per call.
type Disassembler interface {
	// Next decodes the next instruction. It returns false once the reader
	// is exhausted.
	Next() (machine.Instruction, bool)
}

// Rewriter lifts instructions to RTL clusters.
type Rewriter interface {
	// Clusters returns the clusters of all instructions starting at the
	// start address of the rewriter. Every range over the sequence starts
	// over from the start address.
	Clusters() iter.Seq[*rtl.Cluster]
}

// Instructions returns the instructions of a disassembler as a sequence.
func Instructions(dis Disassembler) iter.Seq[machine.Instruction] {
	return func(yield func(machine.Instruction) bool) {
		for {
			instr, ok := dis.Next()
			if !ok || !yield(instr) {
				return
			}
		}
	}
}

// Factory creates an architecture for the given options.
type Factory func(opts Options) Architecture

// Registry maps architecture names to factories.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a factory. Names are case insensitive, registering a name
// twice replaces the previous factory.
func (r *Registry) Register(name string, factory Factory) {
	r.factories[strings.ToLower(name)] = factory
}

// Names returns the sorted registered names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// New creates the architecture registered for name.
func (r *Registry) New(name string, opts Options) (Architecture, error) {
	factory, ok := r.factories[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w '%s', supported: %s",
			ErrUnknownArchitecture, name, strings.Join(r.Names(), ", "))
	}
	return factory(opts), nil
}
