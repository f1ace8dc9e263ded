package mips

import (
	"encoding/binary"
	"strings"
	"testing"

	"github.com/retroenv/retrolift/internal/arch"
	"github.com/retroenv/retrolift/internal/host"
	"github.com/retroenv/retrolift/internal/image"
	"github.com/retroenv/retrolift/internal/machine"
	"github.com/retroenv/retrolift/internal/verification"
	"github.com/retroenv/retrogolib/assert"
)

const testAddress = machine.Address(0x00100000)

func newReader(t *testing.T, order binary.ByteOrder, words ...uint32) *image.Reader {
	t.Helper()
	data := make([]byte, 4*len(words))
	for i, w := range words {
		order.PutUint32(data[4*i:], w)
	}
	rdr, err := image.New(testAddress, data).NewReader(testAddress, order)
	assert.NoError(t, err)
	return rdr
}

func disassemble(t *testing.T, word uint32) *Instruction {
	t.Helper()
	dis := NewDisassembler(newReader(t, binary.BigEndian, word), false, nil)
	instr, ok := dis.DisassembleInstruction()
	assert.True(t, ok)
	return instr
}

func assertDisassembly(t *testing.T, word uint32, expected string) {
	t.Helper()
	assert.Equal(t, expected, disassemble(t, word).String())
}

func rewrite(t *testing.T, wide bool, recorder *host.Recorder, words ...uint32) []string {
	t.Helper()
	rw := NewRewriter(newReader(t, binary.BigEndian, words...), wide, arch.Services{Host: recorder})
	var lines []string
	for cluster := range rw.Clusters() {
		lines = append(lines, cluster.Lines()...)
	}
	return lines
}

func assertRewrite(t *testing.T, wide bool, word uint32, expected ...string) {
	t.Helper()
	lines := rewrite(t, wide, host.NewRecorder(), word)
	if diff := verification.Diff(expected, lines); diff != "" {
		t.Errorf("rewritten code mismatch:\n%s\n%s", diff, strings.Join(lines, "\n"))
	}
}

func assertCode(t *testing.T, word uint32, expected ...string) {
	t.Helper()
	assertRewrite(t, false, word, expected...)
}

func assertCode64(t *testing.T, word uint32, expected ...string) {
	t.Helper()
	assertRewrite(t, true, word, expected...)
}
