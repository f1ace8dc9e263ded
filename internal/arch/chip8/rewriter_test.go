package chip8

import (
	"encoding/binary"
	"testing"

	"github.com/retroenv/retrolift/internal/arch"
	"github.com/retroenv/retrolift/internal/decoder"
	"github.com/retroenv/retrolift/internal/host"
	"github.com/retroenv/retrolift/internal/testgen"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestRewriteControlFlow(t *testing.T) {
	assertCode(t, 0x00E0,
		"0|L--|00000200(2): 1 instructions",
		"1|L--|__clear_screen()")

	assertCode(t, 0x00EE,
		"0|T--|00000200(2): 1 instructions",
		"1|T--|return (2,0)")

	assertCode(t, 0x1234,
		"0|T--|00000200(2): 1 instructions",
		"1|T--|goto 00000234")

	assertCode(t, 0x2300,
		"0|T-A|00000200(2): 1 instructions",
		"1|T-A|call 00000300 (2)")

	assertCode(t, 0xB300,
		"0|T--|00000200(2): 1 instructions",
		"1|T--|goto CONVERT(V0, byte, uint16) + 0x0300<16>")
}

func TestRewriteSkips(t *testing.T) {
	assertCode(t, 0x3105,
		"0|C--|00000200(2): 1 instructions",
		"1|C--|if (V1 == 0x05<8>) branch 00000204")

	assertCode(t, 0x4AFF,
		"0|C--|00000200(2): 1 instructions",
		"1|C--|if (VA != 0xFF<8>) branch 00000204")

	assertCode(t, 0x5120,
		"0|C--|00000200(2): 1 instructions",
		"1|C--|if (V1 == V2) branch 00000204")

	assertCode(t, 0x9120,
		"0|C--|00000200(2): 1 instructions",
		"1|C--|if (V1 != V2) branch 00000204")

	assertCode(t, 0xE19E,
		"0|C--|00000200(2): 1 instructions",
		"1|C--|if (__is_key_pressed(V1)) branch 00000204")

	assertCode(t, 0xE1A1,
		"0|C--|00000200(2): 1 instructions",
		"1|C--|if (!__is_key_pressed(V1)) branch 00000204")
}

func TestRewriteLoads(t *testing.T) {
	assertCode(t, 0x6A42,
		"0|L--|00000200(2): 1 instructions",
		"1|L--|VA = 0x42<8>")

	assertCode(t, 0x8120,
		"0|L--|00000200(2): 1 instructions",
		"1|L--|V1 = V2")

	assertCode(t, 0xA2F0,
		"0|L--|00000200(2): 1 instructions",
		"1|L--|I = 0x02F0<16>")

	assertCode(t, 0xF107,
		"0|L--|00000200(2): 1 instructions",
		"1|L--|V1 = DT")

	assertCode(t, 0xF115,
		"0|L--|00000200(2): 1 instructions",
		"1|L--|DT = V1")

	assertCode(t, 0xF118,
		"0|L--|00000200(2): 1 instructions",
		"1|L--|ST = V1")
}

func TestRewriteArithmetic(t *testing.T) {
	assertCode(t, 0x7301,
		"0|L--|00000200(2): 1 instructions",
		"1|L--|V3 = V3 + 0x01<8>")

	assertCode(t, 0x8121,
		"0|L--|00000200(2): 1 instructions",
		"1|L--|V1 = V1 | V2")

	assertCode(t, 0x8122,
		"0|L--|00000200(2): 1 instructions",
		"1|L--|V1 = V1 & V2")

	assertCode(t, 0x8123,
		"0|L--|00000200(2): 1 instructions",
		"1|L--|V1 = V1 ^ V2")

	assertCode(t, 0x8124,
		"0|L--|00000200(2): 3 instructions",
		"1|L--|v2 = CONVERT(V1, byte, uint16) + CONVERT(V2, byte, uint16)",
		"2|L--|V1 = SLICE(v2, byte, 0)",
		"3|L--|VF = SLICE(v2, byte, 8)")

	assertCode(t, 0x8125,
		"0|L--|00000200(2): 3 instructions",
		"1|L--|v2 = V1 >=u V2",
		"2|L--|V1 = V1 - V2",
		"3|L--|VF = CONVERT(v2, bool, byte)")

	assertCode(t, 0x8127,
		"0|L--|00000200(2): 3 instructions",
		"1|L--|v2 = V2 >=u V1",
		"2|L--|V1 = V2 - V1",
		"3|L--|VF = CONVERT(v2, bool, byte)")

	assertCode(t, 0x8126,
		"0|L--|00000200(2): 3 instructions",
		"1|L--|v2 = V1 & 0x01<8>",
		"2|L--|V1 = V1 >>u 1<i32>",
		"3|L--|VF = v2")

	assertCode(t, 0x812E,
		"0|L--|00000200(2): 3 instructions",
		"1|L--|v2 = V1 >>u 7<i32>",
		"2|L--|V1 = V1 << 1<i32>",
		"3|L--|VF = v2")

	assertCode(t, 0xF11E,
		"0|L--|00000200(2): 1 instructions",
		"1|L--|I = I + CONVERT(V1, byte, word16)")
}

func TestRewriteInterpreterServices(t *testing.T) {
	assertCode(t, 0xC50F,
		"0|L--|00000200(2): 1 instructions",
		"1|L--|V5 = __random() & 0x0F<8>")

	assertCode(t, 0xD125,
		"0|L--|00000200(2): 1 instructions",
		"1|L--|VF = __draw_sprite(V1, V2, 0x05<8>, I)")

	assertCode(t, 0xF10A,
		"0|L--|00000200(2): 1 instructions",
		"1|L--|V1 = __wait_key()")

	assertCode(t, 0xF129,
		"0|L--|00000200(2): 1 instructions",
		"1|L--|I = __font_address(V1)")
}

func TestRewriteMemory(t *testing.T) {
	assertCode(t, 0xF133,
		"0|L--|00000200(2): 3 instructions",
		"1|L--|Mem8[I:byte] = V1 /u 0x64<8>",
		"2|L--|Mem8[I + 0x0001<16>:byte] = (V1 /u 0x0A<8>) %u 0x0A<8>",
		"3|L--|Mem8[I + 0x0002<16>:byte] = V1 %u 0x0A<8>")

	assertCode(t, 0xF255,
		"0|L--|00000200(2): 3 instructions",
		"1|L--|Mem8[I:byte] = V0",
		"2|L--|Mem8[I + 0x0001<16>:byte] = V1",
		"3|L--|Mem8[I + 0x0002<16>:byte] = V2")

	assertCode(t, 0xF165,
		"0|L--|00000200(2): 2 instructions",
		"1|L--|V0 = Mem8[I:byte]",
		"2|L--|V1 = Mem8[I + 0x0001<16>:byte]")
}

func TestRewriteInvalid(t *testing.T) {
	assertCode(t, 0x5121,
		"0|---|00000200(2): 1 instructions",
		"1|---|<invalid>")
}

func TestRewriteUnsupported(t *testing.T) {
	recorder := host.NewRecorder()
	gen := testgen.NewGenerator(log.NewTestLogger(t), nil)
	lines := rewrite(t, arch.Services{Host: recorder, TestGen: gen}, 0x0123, 0x0456)

	assert.Equal(t, []string{
		"0|---|00000200(2): 1 instructions",
		"1|---|<invalid>",
		"0|---|00000202(2): 1 instructions",
		"1|---|<invalid>",
	}, lines)

	assert.Equal(t, 1, recorder.Errors())
	assert.Contains(t, recorder.Reports()[0].Message, "CHIP-8 instruction 'sys' is not supported yet.")
	// one decoder stub and one rewriter stub
	assert.Len(t, gen.Tests(), 2)
}

func TestRewriteRestartsOnEveryRange(t *testing.T) {
	rw := NewRewriter(newReader(t, 0x6A42, 0x1200), arch.Services{})
	first := 0
	for range rw.Clusters() {
		first++
	}
	second := 0
	for range rw.Clusters() {
		second++
	}
	assert.Equal(t, 2, first)
	assert.Equal(t, first, second)
}

func TestEveryTerminalHasRewriter(t *testing.T) {
	decoder.Walk(Tree(), func(n node, _ int) bool {
		if instr, ok := n.(*decoder.InstrDecoder[uint16, *Disassembler, *Instruction, Opcode]); ok {
			assert.True(t, HasRewriter(instr.Opcode()), instr.Opcode().String())
		}
		return true
	})
}

func TestDecoderTreeStats(t *testing.T) {
	stats := New(arch.Options{}).DecoderStats()
	assert.Equal(t, 1, stats.Conds)
	assert.Equal(t, 35, stats.Terminals)
	assert.Equal(t, 1, stats.Stubs)
}

func TestArchitecture(t *testing.T) {
	a := New(arch.Options{BigEndian: false, Wide: true})
	assert.Equal(t, Name, a.Name())
	assert.Equal(t, binary.BigEndian, a.ByteOrder())
	assert.Equal(t, 16, a.InstructionBitSize())
	assert.Equal(t, "ptr16", a.PointerType().String())
}
