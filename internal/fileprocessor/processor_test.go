package fileprocessor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrolift/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestProcessFile(t *testing.T) {
	logger := log.NewTestLogger(t)
	dir := t.TempDir()

	input := filepath.Join(dir, "pong.ch8")
	// cls, ld V1, $05, jp $200
	assert.NoError(t, os.WriteFile(input, []byte{0x00, 0xE0, 0x61, 0x05, 0x12, 0x00}, 0600))

	opts := options.Program{
		Parameters: options.Parameters{
			Input:  input,
			Output: GenerateOutputFilename(input, true),
		},
		Flags: options.Flags{Quiet: true},
	}
	lifterOpts := options.NewLifter("")
	lifterOpts.RTL = true

	err := ProcessFile(context.Background(), logger, opts, lifterOpts)
	assert.NoError(t, err)

	output, err := os.ReadFile(filepath.Join(dir, "pong.rtl"))
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(output), "; Architecture: chip8\n"))
	assert.Contains(t, string(output), "1|L--|V1 = 0x05<8>")
}

func TestProcessFile_Error(t *testing.T) {
	logger := log.NewTestLogger(t)
	opts := options.Program{
		Parameters: options.Parameters{
			Input:  "/nonexistent/pong.ch8",
			Output: filepath.Join(t.TempDir(), "out.lst"),
		},
	}

	err := ProcessFile(context.Background(), logger, opts, options.NewLifter(""))
	assert.Error(t, err)

	opts.Output = filepath.Join(t.TempDir(), "missing", "out.lst")
	err = ProcessFile(context.Background(), logger, opts, options.NewLifter(""))
	assert.ErrorContains(t, err, "creating listing")
}

func TestGetFilesToProcess(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.ch8", "b.ch8", "c.bin"} {
		assert.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte{0x00, 0xE0}, 0600))
	}

	opts := &options.Program{Parameters: options.Parameters{Batch: filepath.Join(dir, "*.ch8")}}
	files, err := GetFilesToProcess(opts)
	assert.NoError(t, err)
	assert.Len(t, files, 2)

	opts = &options.Program{Parameters: options.Parameters{Batch: filepath.Join(dir, "*.rom")}}
	_, err = GetFilesToProcess(opts)
	assert.True(t, errors.Is(err, ErrNoFiles))

	opts = &options.Program{Parameters: options.Parameters{Input: "single.bin"}}
	files, err = GetFilesToProcess(opts)
	assert.NoError(t, err)
	assert.Equal(t, []string{"single.bin"}, files)
}

func TestGenerateOutputFilename(t *testing.T) {
	assert.Equal(t, "roms/pong.lst", GenerateOutputFilename("roms/pong.ch8", false))
	assert.Equal(t, "roms/pong.rtl", GenerateOutputFilename("roms/pong.ch8", true))
	assert.Equal(t, "vmlinux.lst", GenerateOutputFilename("vmlinux", false))
}

func TestPrintBanner(t *testing.T) {
	logger := log.NewTestLogger(t)
	PrintBanner(logger, options.Program{}, "1.0.0", "0123456789abcdef", "2024-01-01")
	PrintBanner(logger, options.Program{Flags: options.Flags{Quiet: true}}, "dev", "", "")
}
