package chip8

import (
	"strings"
	"testing"

	"github.com/retroenv/retrolift/internal/arch"
	"github.com/retroenv/retrolift/internal/image"
	"github.com/retroenv/retrolift/internal/machine"
	"github.com/retroenv/retrolift/internal/verification"
	"github.com/retroenv/retrogolib/assert"
)

const testAddress = machine.Address(ProgramStart)

func newReader(t *testing.T, words ...uint16) *image.Reader {
	t.Helper()
	data := make([]byte, 0, 2*len(words))
	for _, w := range words {
		data = append(data, byte(w>>8), byte(w))
	}
	rdr, err := image.New(testAddress, data).NewReader(testAddress, New(arch.Options{}).ByteOrder())
	assert.NoError(t, err)
	return rdr
}

func disassemble(t *testing.T, word uint16) *Instruction {
	t.Helper()
	dis := NewDisassembler(newReader(t, word), nil)
	instr, ok := dis.DisassembleInstruction()
	assert.True(t, ok)
	return instr
}

func rewrite(t *testing.T, services arch.Services, words ...uint16) []string {
	t.Helper()
	rw := NewRewriter(newReader(t, words...), services)
	var lines []string
	for cluster := range rw.Clusters() {
		lines = append(lines, cluster.Lines()...)
	}
	return lines
}

func assertCode(t *testing.T, word uint16, expected ...string) {
	t.Helper()
	lines := rewrite(t, arch.Services{}, word)
	if diff := verification.Diff(expected, lines); diff != "" {
		t.Errorf("rewritten code mismatch:\n%s\n%s", diff, strings.Join(lines, "\n"))
	}
}
