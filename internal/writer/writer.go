// Package writer implements the listing output of disassembled and lifted code.
package writer

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrolift/internal/decoder"
	"github.com/retroenv/retrolift/internal/machine"
	"github.com/retroenv/retrolift/internal/rtl"
)

// Options of the writer.
type Options struct {
	HexComments bool // output the instruction bytes next to the address
}

// Header describes the processed code.
type Header struct {
	Arch        string
	BaseAddress machine.Address
	Size        int
	Section     string // optional ELF section name
}

// Writer writes listings.
type Writer struct {
	options Options
	writer  io.Writer
}

// New creates a new writer.
func New(writer io.Writer, options Options) *Writer {
	return &Writer{
		options: options,
		writer:  writer,
	}
}

// WriteCommentHeader writes the architecture and code location as comments to the output.
func (w Writer) WriteCommentHeader(header Header) error {
	if _, err := fmt.Fprintf(w.writer, "; Architecture: %s\n", header.Arch); err != nil {
		return fmt.Errorf("writing architecture: %w", err)
	}
	if header.Section != "" {
		if _, err := fmt.Fprintf(w.writer, "; Section: %s\n", header.Section); err != nil {
			return fmt.Errorf("writing section: %w", err)
		}
	}
	if _, err := fmt.Fprintf(w.writer, "; Code base address: $%08X\n", uint64(header.BaseAddress)); err != nil {
		return fmt.Errorf("writing code base address: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, "; Code size: %d bytes\n\n", header.Size); err != nil {
		return fmt.Errorf("writing code size: %w", err)
	}
	return nil
}

// WriteInstruction writes a disassembled instruction with its address and,
// if enabled, its bytes as comment.
func (w Writer) WriteInstruction(instr machine.Instruction, data []byte) error {
	comment := fmt.Sprintf("$%s", instr.Address())
	if w.options.HexComments && len(data) > 0 {
		comment += "  " + hexBytes(data)
	}
	if _, err := fmt.Fprintf(w.writer, "  %-30s ; %s\n", instr.String(), comment); err != nil {
		return fmt.Errorf("writing line: %w", err)
	}
	return nil
}

// WriteCluster writes the numbered lines of a cluster followed by an empty line.
func (w Writer) WriteCluster(cluster *rtl.Cluster) error {
	for _, line := range cluster.Lines() {
		if _, err := fmt.Fprintln(w.writer, line); err != nil {
			return fmt.Errorf("writing cluster line: %w", err)
		}
	}
	if _, err := fmt.Fprintln(w.writer); err != nil {
		return fmt.Errorf("writing line: %w", err)
	}
	return nil
}

// WriteDecoderStats writes the decoder tree statistics as comments.
func (w Writer) WriteDecoderStats(arch string, stats decoder.Stats) error {
	lines := []string{
		fmt.Sprintf("Decoder tree of %s:", arch),
		fmt.Sprintf("  nodes:     %d", stats.Nodes),
		fmt.Sprintf("  terminals: %d", stats.Terminals),
		fmt.Sprintf("  masks:     %d", stats.Masks),
		fmt.Sprintf("  conds:     %d", stats.Conds),
		fmt.Sprintf("  stubs:     %d", stats.Stubs),
		fmt.Sprintf("  depth:     %d", stats.MaxDepth),
	}
	return w.writeComments(lines)
}

// WriteTests writes generated test stubs for missing cases as comments.
func (w Writer) WriteTests(tests []string) error {
	if len(tests) == 0 {
		return nil
	}
	lines := []string{fmt.Sprintf("Missing cases: %d", len(tests))}
	for _, test := range tests {
		lines = append(lines, "")
		lines = append(lines, strings.Split(strings.TrimRight(test, "\n"), "\n")...)
	}
	return w.writeComments(lines)
}

func (w Writer) writeComments(lines []string) error {
	if _, err := fmt.Fprintln(w.writer); err != nil {
		return fmt.Errorf("writing line: %w", err)
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w.writer, strings.TrimRight("; "+line, " ")); err != nil {
			return fmt.Errorf("writing comment: %w", err)
		}
	}
	return nil
}

func hexBytes(data []byte) string {
	var sb strings.Builder
	for i, b := range data {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02X", b)
	}
	return sb.String()
}
