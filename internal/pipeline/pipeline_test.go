package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrolift/internal/arch"
	"github.com/retroenv/retrolift/internal/arch/chip8"
	"github.com/retroenv/retrolift/internal/arch/mips"
	"github.com/retroenv/retrolift/internal/arch/parisc"
	"github.com/retroenv/retrolift/internal/detector"
	"github.com/retroenv/retrolift/internal/loader"
	"github.com/retroenv/retrolift/internal/machine"
	"github.com/retroenv/retrolift/internal/options"
	"github.com/retroenv/retrolift/internal/verification"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// chip8Program clears the screen, loads V1 and jumps back to the start.
var chip8Program = []byte{0x00, 0xE0, 0x61, 0x05, 0x12, 0x00}

func TestNew(t *testing.T) {
	logger := log.NewTestLogger(t)
	p := New(logger)

	assert.NotNil(t, p)
	assert.NotNil(t, p.logger)
	assert.NotNil(t, p.detector)
	assert.NotNil(t, p.loader)
	assert.NotNil(t, p.registry)
}

func TestArchitectures(t *testing.T) {
	registry := Architectures()
	assert.Equal(t, []string{chip8.Name, mips.Name, parisc.Name}, registry.Names())

	for _, name := range registry.Names() {
		t.Run(name, func(t *testing.T) {
			a, err := registry.New(name, arch.Options{BigEndian: true})
			assert.NoError(t, err)
			assert.Equal(t, name, a.Name())
			assert.True(t, a.DecoderStats().Terminals > 0)
		})
	}
}

func TestExecute(t *testing.T) {
	logger := log.NewTestLogger(t)
	p := New(logger)

	input := createTempFile(t, "pong.ch8", chip8Program)
	opts := options.Program{Parameters: options.Parameters{Input: input}}

	var buf bytes.Buffer
	result, err := p.Execute(context.Background(), opts, options.NewLifter(""), &buf)
	assert.NoError(t, err)
	assert.Equal(t, chip8.Name, result.Arch)
	assert.Equal(t, machine.Address(chip8.ProgramStart), result.BaseAddress)
	assert.Equal(t, 3, result.Instructions)
	assert.Equal(t, 0, result.Invalid)

	output := buf.String()
	assert.Contains(t, output, "; Architecture: chip8\n")
	assert.Contains(t, output, "; Code base address: $00000200\n")
	assert.Contains(t, output, "ld V1, $05")
	assert.Contains(t, output, "; $00000204  12 00\n")
}

func TestExecuteWithFile_RTL(t *testing.T) {
	logger := log.NewTestLogger(t)
	p := New(logger)

	lifterOpts := options.NewLifter(chip8.Name)
	lifterOpts.RTL = true

	var buf bytes.Buffer
	result, err := p.ExecuteWithFile(context.Background(), &loader.File{Data: chip8Program},
		options.Program{}, lifterOpts, &buf)
	assert.NoError(t, err)
	assert.Equal(t, 3, result.Instructions)

	output := buf.String()
	assert.Contains(t, output, "0|L--|00000200(2): 1 instructions\n")
	assert.Contains(t, output, "0|T--|00000204(2): 1 instructions\n")
	assert.Contains(t, output, "1|L--|V1 = 0x05<8>\n")
}

// bufferLogger returns a logger writing to buf. Translation errors are
// logged at error level, which would fail a test logger.
func bufferLogger(buf *bytes.Buffer) *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Output = buf
	return log.NewWithConfig(cfg)
}

func TestExecuteWithFile_Unsupported(t *testing.T) {
	var logs bytes.Buffer
	p := New(bufferLogger(&logs))
	file := &loader.File{Data: []byte{0x01, 0x23}}

	lifterOpts := options.NewLifter(chip8.Name)
	lifterOpts.RTL = true
	lifterOpts.Diagnostics = true

	var buf bytes.Buffer
	result, err := p.ExecuteWithFile(context.Background(), file, options.Program{}, lifterOpts, &buf)
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Instructions)
	assert.Equal(t, 1, result.Invalid)
	assert.Equal(t, 1, result.Errors)
	assert.True(t, result.Tests > 0)
	assert.True(t, logs.Len() > 0)

	output := buf.String()
	assert.Contains(t, output, "; Decoder tree of chip8:\n")
	assert.Contains(t, output, "; Missing cases:")

	t.Run("without diagnostics", func(t *testing.T) {
		lifterOpts.Diagnostics = false
		buf.Reset()
		result, err := p.ExecuteWithFile(context.Background(), file, options.Program{}, lifterOpts, &buf)
		assert.NoError(t, err)
		assert.Equal(t, 1, result.Errors)
		assert.Equal(t, 0, result.Tests)
		assert.False(t, strings.Contains(buf.String(), "; Missing cases:"))
		assert.False(t, strings.Contains(buf.String(), "; Decoder tree of"))
	})
}

func TestExecuteWithFile_Limit(t *testing.T) {
	logger := log.NewTestLogger(t)
	p := New(logger)

	lifterOpts := options.NewLifter(chip8.Name)
	lifterOpts.MaxInstructions = 2

	var buf bytes.Buffer
	result, err := p.ExecuteWithFile(context.Background(), &loader.File{Data: chip8Program},
		options.Program{}, lifterOpts, &buf)
	assert.NoError(t, err)
	assert.Equal(t, 2, result.Instructions)
}

func TestExecuteWithFile_MIPS(t *testing.T) {
	logger := log.NewTestLogger(t)
	p := New(logger)

	// jr ra followed by a nop in the delay slot
	file := &loader.File{
		Data:       []byte{0x03, 0xE0, 0x00, 0x08, 0x00, 0x00, 0x00, 0x00},
		ELF:        true,
		Arch:       mips.Name,
		BigEndian:  true,
		Address:    0x80001000,
		Section:    ".text",
		HasAddress: true,
	}

	var buf bytes.Buffer
	result, err := p.ExecuteWithFile(context.Background(), file, options.Program{}, options.NewLifter(""), &buf)
	assert.NoError(t, err)
	assert.Equal(t, mips.Name, result.Arch)
	assert.Equal(t, machine.Address(0x80001000), result.BaseAddress)
	assert.Equal(t, 2, result.Instructions)
	assert.Contains(t, buf.String(), "; Section: .text\n")
}

func TestExecuteWithFile_Errors(t *testing.T) {
	logger := log.NewTestLogger(t)
	p := New(logger)

	t.Run("unknown architecture", func(t *testing.T) {
		_, err := p.ExecuteWithFile(context.Background(), &loader.File{Data: chip8Program},
			options.Program{}, options.NewLifter("z80"), &bytes.Buffer{})
		assert.True(t, errors.Is(err, arch.ErrUnknownArchitecture))
	})

	t.Run("architecture not detected", func(t *testing.T) {
		opts := options.Program{Parameters: options.Parameters{Input: "firmware.bin"}}
		_, err := p.ExecuteWithFile(context.Background(), &loader.File{Data: chip8Program},
			opts, options.NewLifter(""), &bytes.Buffer{})
		assert.True(t, errors.Is(err, detector.ErrNotDetected))
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := p.ExecuteWithFile(ctx, &loader.File{Data: chip8Program},
			options.Program{}, options.NewLifter(chip8.Name), &bytes.Buffer{})
		assert.True(t, errors.Is(err, context.Canceled))
	})

	t.Run("missing input file", func(t *testing.T) {
		opts := options.Program{Parameters: options.Parameters{Input: "/nonexistent/pong.ch8"}}
		_, err := p.Execute(context.Background(), opts, options.NewLifter(""), &bytes.Buffer{})
		assert.Error(t, err)
	})
}

func TestExecuteWithFile_Verify(t *testing.T) {
	var logs bytes.Buffer
	p := New(bufferLogger(&logs))
	file := &loader.File{Data: chip8Program}
	lifterOpts := options.NewLifter(chip8.Name)

	var golden bytes.Buffer
	_, err := p.ExecuteWithFile(context.Background(), file, options.Program{}, lifterOpts, &golden)
	assert.NoError(t, err)

	goldenFile := createTempFile(t, "golden.lst", golden.Bytes())
	opts := options.Program{Parameters: options.Parameters{Verify: goldenFile}}
	_, err = p.ExecuteWithFile(context.Background(), file, opts, lifterOpts, &bytes.Buffer{})
	assert.NoError(t, err)

	lifterOpts.RTL = true
	_, err = p.ExecuteWithFile(context.Background(), file, opts, lifterOpts, &bytes.Buffer{})
	assert.True(t, errors.Is(err, verification.ErrMismatch))
	assert.Contains(t, logs.String(), "Output differs from golden listing")
}

func TestBaseAddress(t *testing.T) {
	chip := chip8.New(arch.Options{})
	mipsArch := mips.New(arch.Options{BigEndian: true})

	explicit := options.NewLifter("")
	explicit.BaseAddress = 0x1000
	explicit.HasBaseAddress = true

	elfFile := &loader.File{Address: 0x80000000, HasAddress: true}

	tests := []struct {
		name string
		arch arch.Architecture
		file *loader.File
		opts options.Lifter
		want machine.Address
	}{
		{"explicit", mipsArch, elfFile, explicit, 0x1000},
		{"ELF section", mipsArch, elfFile, options.NewLifter(""), 0x80000000},
		{"CHIP-8 program start", chip, &loader.File{}, options.NewLifter(""), chip8.ProgramStart},
		{"raw", mipsArch, &loader.File{}, options.NewLifter(""), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, baseAddress(tt.arch, tt.file, tt.opts))
		})
	}
}

func createTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}
