package detector

import (
	"errors"
	"testing"

	"github.com/retroenv/retrolift/internal/arch"
	"github.com/retroenv/retrolift/internal/arch/chip8"
	"github.com/retroenv/retrolift/internal/arch/mips"
	"github.com/retroenv/retrolift/internal/arch/parisc"
	"github.com/retroenv/retrolift/internal/loader"
	"github.com/retroenv/retrolift/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestDetect(t *testing.T) {
	logger := log.NewTestLogger(t)
	d := New(logger)

	mipsLE := &loader.File{ELF: true, Arch: mips.Name}
	pariscWide := &loader.File{ELF: true, Arch: parisc.Name, BigEndian: true, Wide: true}
	raw := &loader.File{}

	littleEndian := options.NewLifter("")
	littleEndian.ByteOrder = true

	tests := []struct {
		name  string
		input string
		opts  options.Lifter
		file  *loader.File
		want  Result
	}{
		{
			name:  "explicit architecture option",
			input: "game.ch8",
			opts:  options.NewLifter("mips"),
			file:  raw,
			want:  Result{Arch: mips.Name, Options: arch.Options{BigEndian: true}},
		},
		{
			name:  "detect from ELF machine",
			input: "vmlinux",
			opts:  options.NewLifter(""),
			file:  pariscWide,
			want:  Result{Arch: parisc.Name, Options: arch.Options{BigEndian: true, Wide: true}},
		},
		{
			name:  "ELF byte order",
			input: "a.out",
			opts:  options.NewLifter(""),
			file:  mipsLE,
			want:  Result{Arch: mips.Name, Options: arch.Options{}},
		},
		{
			name:  "explicit architecture wins over ELF",
			input: "a.out",
			opts:  options.NewLifter("parisc"),
			file:  mipsLE,
			want:  Result{Arch: parisc.Name, Options: arch.Options{}},
		},
		{
			name:  "explicit byte order wins over ELF",
			input: "vmlinux",
			opts:  littleEndian,
			file:  pariscWide,
			want:  Result{Arch: parisc.Name, Options: arch.Options{Wide: true}},
		},
		{
			name:  "detect from .ch8 extension",
			input: "pong.ch8",
			opts:  options.NewLifter(""),
			file:  raw,
			want:  Result{Arch: chip8.Name, Options: arch.Options{BigEndian: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.Detect(tt.input, tt.opts, tt.file)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectNotDetected(t *testing.T) {
	logger := log.NewTestLogger(t)
	d := New(logger)

	_, err := d.Detect("firmware.bin", options.NewLifter(""), &loader.File{})
	assert.True(t, errors.Is(err, ErrNotDetected))
}

func TestDetectFromFile(t *testing.T) {
	logger := log.NewTestLogger(t)
	d := New(logger)

	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{".ch8 extension", "pong.ch8", chip8.Name},
		{".CH8 extension (uppercase)", "PONG.CH8", chip8.Name},
		{".c8 extension", "maze.c8", chip8.Name},
		{".rom extension", "game.rom", chip8.Name},
		{"no extension", "game", ""},
		{".bin extension", "game.bin", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.detectFromFile(tt.filename))
		})
	}
}
