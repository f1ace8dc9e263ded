// Package main prints statistics of the decoder trees of all supported architectures
package main

import (
	"flag"
	"os"

	"github.com/retroenv/retrolift/internal/arch"
	"github.com/retroenv/retrolift/internal/config"
	"github.com/retroenv/retrolift/internal/pipeline"
	"github.com/retroenv/retrolift/internal/writer"
)

func main() {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	archName := flags.String("a", "", "only print the decoder tree of this architecture")
	wide := flags.Bool("64", false, "use the 64 bit processor mode")
	_ = flags.Parse(os.Args[1:])

	logger := config.CreateLogger(false, false)
	registry := pipeline.Architectures()

	names := registry.Names()
	if *archName != "" {
		names = []string{*archName}
	}

	w := writer.New(os.Stdout, writer.Options{})
	for _, name := range names {
		a, err := registry.New(name, arch.Options{BigEndian: true, Wide: *wide})
		if err != nil {
			logger.Fatal(err.Error())
		}
		if err := w.WriteDecoderStats(a.Name(), a.DecoderStats()); err != nil {
			logger.Fatal(err.Error())
		}
	}
}
