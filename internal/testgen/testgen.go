// Package testgen records decoder and rewriter cases that are not handled yet
// and renders them as regression test stubs.
package testgen

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"unicode"

	"github.com/davecgh/go-spew/spew"
	"github.com/retroenv/retrolift/internal/image"
	"github.com/retroenv/retrolift/internal/machine"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// Service receives missing case reports.
type Service interface {
	// ReportMissingDecoder reports an instruction whose decoder is a stub.
	// The reader is only used to re-read the length raw bytes at addr.
	ReportMissingDecoder(prefix string, addr machine.Address, length int, rdr *image.Reader, message string)
	// ReportMissingRewriter reports an instruction the rewriter cannot lift.
	ReportMissingRewriter(prefix string, instr machine.Instruction, mnemonic string, rdr *image.Reader, message string)
}

// Nop discards all reports.
type Nop struct{}

var _ Service = Nop{}

// ReportMissingDecoder does nothing.
func (Nop) ReportMissingDecoder(string, machine.Address, int, *image.Reader, string) {}

// ReportMissingRewriter does nothing.
func (Nop) ReportMissingRewriter(string, machine.Instruction, string, *image.Reader, string) {}

// Generator renders one test stub for the first occurrence of every
// missing case. It is safe for concurrent use.
type Generator struct {
	logger *log.Logger
	output io.Writer // optional

	mu    sync.Mutex
	seen  set.Set[string]
	tests []string
}

var _ Service = (*Generator)(nil)

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
	SortKeys:                true,
	MaxDepth:                3,
}

// NewGenerator returns a generator that logs generated stubs at debug level
// and writes them to output if it is not nil.
func NewGenerator(logger *log.Logger, output io.Writer) *Generator {
	return &Generator{
		logger: logger,
		output: output,
		seen:   set.New[string](),
	}
}

// ReportMissingDecoder renders a disassembler test stub.
func (g *Generator) ReportMissingDecoder(prefix string, addr machine.Address, length int, rdr *image.Reader, message string) {
	key := prefix + ":" + message
	if !g.first(key) {
		return
	}

	hexBytes := rawBytes(rdr, addr, length)
	var sb strings.Builder
	fmt.Fprintf(&sb, "// %s\n", message)
	fmt.Fprintf(&sb, "func Test%s_%s(t *testing.T) {\n", identifier(prefix), identifier(message))
	fmt.Fprintf(&sb, "\tassertDisassembly(t, %q, \"@@@\")\n", hexBytes)
	sb.WriteString("}\n")

	g.emit(sb.String(), log.String("case", key), log.Hex("address", uint64(addr)), log.String("bytes", hexBytes))
}

// ReportMissingRewriter renders a rewriter test stub including a dump of the
// decoded instruction.
func (g *Generator) ReportMissingRewriter(prefix string, instr machine.Instruction, mnemonic string, rdr *image.Reader, message string) {
	key := prefix + ":" + mnemonic
	if !g.first(key) {
		return
	}

	hexBytes := rawBytes(rdr, instr.Address(), instr.Length())
	var sb strings.Builder
	fmt.Fprintf(&sb, "// %s\n", message)
	fmt.Fprintf(&sb, "// %s\n", instr)
	fmt.Fprintf(&sb, "func Test%s_%s(t *testing.T) {\n", identifier(prefix), identifier(mnemonic))
	fmt.Fprintf(&sb, "\tassertCode(t, %q,\n", hexBytes)
	fmt.Fprintf(&sb, "\t\t\"0|L--|%s(%d): 1 instructions\",\n", instr.Address(), instr.Length())
	sb.WriteString("\t\t\"1|L--|@@@\")\n")
	sb.WriteString("}\n")

	g.emit(sb.String(), log.String("case", key), log.String("instruction", dumper.Sdump(instr)))
}

// Tests returns the rendered stubs in report order.
func (g *Generator) Tests() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.tests...)
}

func (g *Generator) first(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.seen.Contains(key) {
		return false
	}
	g.seen.Add(key)
	return true
}

func (g *Generator) emit(test string, fields ...log.Field) {
	g.mu.Lock()
	g.tests = append(g.tests, test)
	g.mu.Unlock()

	g.logger.Debug("Generated test stub for missing case", fields...)
	if g.output != nil {
		if _, err := fmt.Fprintln(g.output, test); err != nil {
			g.logger.Error("Writing test stub failed", log.Err(err))
		}
	}
}

// rawBytes re-reads the instruction bytes with a cloned reader.
func rawBytes(rdr *image.Reader, addr machine.Address, length int) string {
	if rdr == nil {
		return ""
	}
	c := rdr.Clone()
	if err := c.Seek(addr); err != nil {
		return ""
	}
	return fmt.Sprintf("%X", c.PeekBytes(length))
}

// identifier turns a mnemonic or message into a Go identifier fragment.
func identifier(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	return sb.String()
}
