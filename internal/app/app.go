// Package app provides the main application helpers of the lifter.
package app

import (
	"github.com/retroenv/retrolift/internal/options"
	"github.com/retroenv/retrolift/internal/pipeline"
	"github.com/retroenv/retrogolib/log"
)

// PrintResult prints the summary of a processed file. Instructions that
// could not be decoded or lifted are reported as a warning.
func PrintResult(logger *log.Logger, opts options.Program, result *pipeline.Result) {
	if opts.Quiet {
		return
	}

	logger.Info("Processed file",
		log.String("file", opts.Input),
		log.String("arch", result.Arch),
		log.Int("instructions", result.Instructions),
	)
	if result.Invalid > 0 || result.Errors > 0 {
		logger.Warn("Not all instructions could be processed",
			log.Int("invalid", result.Invalid),
			log.Int("errors", result.Errors),
			log.Int("missing_cases", result.Tests),
		)
	}
}
