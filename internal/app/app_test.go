package app

import (
	"testing"

	"github.com/retroenv/retrolift/internal/options"
	"github.com/retroenv/retrolift/internal/pipeline"
	"github.com/retroenv/retrogolib/log"
)

func TestPrintResult(t *testing.T) {
	logger := log.NewTestLogger(t)
	opts := options.Program{Parameters: options.Parameters{Input: "pong.ch8"}}

	PrintResult(logger, opts, &pipeline.Result{Arch: "chip8", Instructions: 3})
	PrintResult(logger, opts, &pipeline.Result{Arch: "chip8", Instructions: 3, Invalid: 1, Errors: 1, Tests: 2})

	opts.Quiet = true
	PrintResult(logger, opts, &pipeline.Result{})
}
