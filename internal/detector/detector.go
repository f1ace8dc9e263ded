// Package detector handles architecture detection.
package detector

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrolift/internal/arch"
	"github.com/retroenv/retrolift/internal/arch/chip8"
	"github.com/retroenv/retrolift/internal/loader"
	"github.com/retroenv/retrolift/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// ErrNotDetected is returned when the architecture can not be determined.
var ErrNotDetected = errors.New("architecture could not be detected, use the -a flag")

// Result is the detected architecture and its options.
type Result struct {
	Arch    string
	Options arch.Options
}

// Detector handles architecture detection from options, ELF headers and
// file extensions.
type Detector struct {
	logger *log.Logger
}

// New creates a new architecture detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the architecture. An explicitly given architecture wins
// over the ELF machine type, which wins over the file extension. Explicit
// byte order flags override the ELF data encoding, raw input defaults to
// big endian.
func (d *Detector) Detect(input string, opts options.Lifter, file *loader.File) (Result, error) {
	result := Result{
		Arch: opts.Arch,
		Options: arch.Options{
			BigEndian: true,
			Wide:      opts.ArchFlags.Wide,
		},
	}

	if file != nil && file.ELF {
		if result.Arch == "" {
			result.Arch = file.Arch
		}
		result.Options.BigEndian = file.BigEndian
		result.Options.Wide = result.Options.Wide || file.Wide
	}
	if opts.ByteOrder {
		result.Options.BigEndian = opts.ArchFlags.BigEndian
	}

	if result.Arch == "" {
		result.Arch = d.detectFromFile(input)
		if result.Arch == "" {
			return result, ErrNotDetected
		}
		d.logger.Debug("Auto-detected architecture",
			log.String("arch", result.Arch),
			log.String("file", input))
	}
	return result, nil
}

// detectFromFile determines the architecture based on the file extension.
func (d *Detector) detectFromFile(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".ch8", ".c8", ".rom":
		return chip8.Name
	default:
		return ""
	}
}
