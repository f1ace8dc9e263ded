// Package fileprocessor lifts input files into listing files.
package fileprocessor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrolift/internal/app"
	"github.com/retroenv/retrolift/internal/options"
	"github.com/retroenv/retrolift/internal/pipeline"
	"github.com/retroenv/retrogolib/log"
)

// ErrNoFiles is returned when a batch pattern matches no input file.
var ErrNoFiles = errors.New("no files match the batch pattern")

// ProcessFile lifts one input file and writes its listing to the output
// file of the options, or to stdout if no output file is set. The listing
// is disassembly by default and RTL clusters in RTL mode.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program, lifterOpts options.Lifter) error {
	out, err := openOutput(opts.Output)
	if err != nil {
		return err
	}

	result, err := pipeline.New(logger).Execute(ctx, opts, lifterOpts, out)
	closeErr := out.Close()
	if err != nil {
		return fmt.Errorf("lifting %s: %w", opts.Input, err)
	}
	if closeErr != nil {
		return fmt.Errorf("closing listing %s: %w", opts.Output, closeErr)
	}

	app.PrintResult(logger, opts, result)
	return nil
}

// GetFilesToProcess returns the input files. In batch mode these are the
// matches of the glob pattern in lexical order.
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	if opts.Batch == "" {
		return []string{opts.Input}, nil
	}

	matches, err := filepath.Glob(opts.Batch)
	if err != nil {
		return nil, fmt.Errorf("globbing batch pattern: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w '%s'", ErrNoFiles, opts.Batch)
	}
	return matches, nil
}

// GenerateOutputFilename returns the listing file name for an input file
// processed in batch mode. RTL listings use the .rtl extension and
// disassembly listings the .lst extension.
func GenerateOutputFilename(inputFile string, rtl bool) string {
	base := strings.TrimSuffix(inputFile, filepath.Ext(inputFile))
	if rtl {
		return base + ".rtl"
	}
	return base + ".lst"
}

// nopCloser keeps stdout open after a listing was written to it.
type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

func openOutput(name string) (io.WriteCloser, error) {
	if name == "" {
		return nopCloser{os.Stdout}, nil
	}

	file, err := os.Create(name)
	if err != nil {
		return nil, fmt.Errorf("creating listing %s: %w", name, err)
	}
	return file, nil
}

// PrintBanner logs the retrolift version, the commit is shortened to 7
// characters.
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	if len(commit) > 7 {
		commit = commit[:7]
	}
	if commit != "" {
		version = fmt.Sprintf("%s (%s)", version, commit)
	}
	logger.Info("retrolift", log.String("version", version))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}
