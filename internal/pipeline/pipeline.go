// Package pipeline orchestrates the lifting workflow stages.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/retroenv/retrolift/internal/arch"
	"github.com/retroenv/retrolift/internal/arch/chip8"
	"github.com/retroenv/retrolift/internal/arch/mips"
	"github.com/retroenv/retrolift/internal/arch/parisc"
	"github.com/retroenv/retrolift/internal/detector"
	"github.com/retroenv/retrolift/internal/evaluation"
	"github.com/retroenv/retrolift/internal/host"
	"github.com/retroenv/retrolift/internal/image"
	"github.com/retroenv/retrolift/internal/loader"
	"github.com/retroenv/retrolift/internal/machine"
	"github.com/retroenv/retrolift/internal/options"
	"github.com/retroenv/retrolift/internal/testgen"
	"github.com/retroenv/retrolift/internal/verification"
	"github.com/retroenv/retrolift/internal/writer"
	"github.com/retroenv/retrogolib/log"
)

// Architectures returns a registry containing all supported architectures.
func Architectures() *arch.Registry {
	registry := arch.NewRegistry()
	registry.Register(chip8.Name, chip8.New)
	registry.Register(mips.Name, mips.New)
	registry.Register(parisc.Name, parisc.New)
	return registry
}

// Result summarizes a processed file.
type Result struct {
	Arch         string
	BaseAddress  machine.Address
	Instructions int // processed instructions or clusters
	Invalid      int // instructions that could not be decoded or lifted
	Errors       int // translation errors reported while lifting
	Tests        int // generated test stubs for missing cases
}

// Pipeline orchestrates the complete lifting workflow.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
	registry *arch.Registry
}

// New creates a new lifting pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
		registry: Architectures(),
	}
}

// Execute runs the complete pipeline for the input file of the options.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, lifterOpts options.Lifter, out io.Writer) (*Result, error) {
	file, err := p.loader.Load(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("loading file: %w", err)
	}
	return p.ExecuteWithFile(ctx, file, opts, lifterOpts, out)
}

// ExecuteWithFile runs the pipeline with a pre-loaded file.
// This is useful for testing and programmatic usage where the code is already in memory.
func (p *Pipeline) ExecuteWithFile(ctx context.Context, file *loader.File, opts options.Program,
	lifterOpts options.Lifter, out io.Writer) (*Result, error) {

	detected, err := p.detector.Detect(opts.Input, lifterOpts, file)
	if err != nil {
		return nil, fmt.Errorf("detecting architecture: %w", err)
	}
	architecture, err := p.registry.New(detected.Arch, detected.Options)
	if err != nil {
		return nil, fmt.Errorf("creating architecture: %w", err)
	}

	base := baseAddress(architecture, file, lifterOpts)
	img := image.New(base, file.Data)
	p.printInfo(opts, architecture, img)

	// the output is buffered as well when it gets verified against a golden file
	var produced bytes.Buffer
	if opts.Verify != "" {
		out = io.MultiWriter(out, &produced)
	}

	result := &Result{
		Arch:        architecture.Name(),
		BaseAddress: base,
	}
	r := &run{
		logger:     p.logger,
		arch:       architecture,
		img:        img,
		opts:       lifterOpts,
		writer:     writer.New(out, writer.Options{HexComments: lifterOpts.HexComments}),
		testGen:    testgen.Nop{},
		translated: host.NewRecorder(),
		result:     result,
	}
	// missing cases are only sampled in diagnostic mode
	if lifterOpts.Diagnostics {
		r.generator = testgen.NewGenerator(p.logger, nil)
		r.testGen = r.generator
	}
	if err := r.execute(ctx, file.Section); err != nil {
		return nil, err
	}

	if opts.Verify != "" {
		if err := verification.VerifyOutput(p.logger, opts.Verify, produced.Bytes()); err != nil {
			return nil, fmt.Errorf("verification failed: %w", err)
		}
		p.logger.Info("Verification successful")
	}
	return result, nil
}

// baseAddress returns the load address of the code. An explicit base
// address wins over the ELF section address, raw CHIP-8 programs default
// to the program start.
func baseAddress(architecture arch.Architecture, file *loader.File, opts options.Lifter) machine.Address {
	switch {
	case opts.HasBaseAddress:
		return opts.BaseAddress
	case file.HasAddress:
		return file.Address
	case architecture.Name() == chip8.Name:
		return chip8.ProgramStart
	default:
		return 0
	}
}

// run holds the state of processing one file.
type run struct {
	logger     *log.Logger
	arch       arch.Architecture
	img        *image.Image
	opts       options.Lifter
	writer     *writer.Writer
	testGen    testgen.Service
	generator  *testgen.Generator // set in diagnostic mode
	translated *host.Recorder
	result     *Result
}

func (r *run) execute(ctx context.Context, section string) error {
	header := writer.Header{
		Arch:        r.arch.Name(),
		BaseAddress: r.img.BaseAddress(),
		Size:        r.img.Size(),
		Section:     section,
	}
	if err := r.writer.WriteCommentHeader(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	rdr, err := r.img.NewReader(r.img.BaseAddress(), r.arch.ByteOrder())
	if err != nil {
		return fmt.Errorf("creating reader: %w", err)
	}

	if r.opts.RTL {
		err = r.rewrite(ctx, rdr)
	} else {
		err = r.disassemble(ctx, rdr)
	}
	if err != nil {
		return err
	}

	r.result.Errors = r.translated.Errors()
	if r.generator == nil {
		return nil
	}

	tests := r.generator.Tests()
	r.result.Tests = len(tests)
	if err := r.writer.WriteDecoderStats(r.arch.Name(), r.arch.DecoderStats()); err != nil {
		return fmt.Errorf("writing decoder statistics: %w", err)
	}
	if err := r.writer.WriteTests(tests); err != nil {
		return fmt.Errorf("writing test stubs: %w", err)
	}
	return nil
}

func (r *run) disassemble(ctx context.Context, rdr *image.Reader) error {
	dis := r.arch.NewDisassembler(rdr, r.testGen)
	for instr := range arch.Instructions(dis) {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("disassembling: %w", err)
		}

		if instr.Class().Has(machine.Invalid) {
			r.result.Invalid++
		}
		if err := r.writer.WriteInstruction(instr, r.raw(instr.Address(), instr.Length())); err != nil {
			return fmt.Errorf("writing instruction: %w", err)
		}

		r.result.Instructions++
		if r.limitReached() {
			break
		}
	}
	return nil
}

func (r *run) rewrite(ctx context.Context, rdr *image.Reader) error {
	services := arch.Services{
		Host:    host.Multi{host.NewLogHost(r.logger), r.translated},
		TestGen: r.testGen,
	}
	rw := r.arch.NewRewriter(rdr, services)
	for cluster := range rw.Clusters() {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("lifting: %w", err)
		}

		if cluster.IsInvalid() {
			r.result.Invalid++
		}
		if r.opts.Simplify {
			evaluation.SimplifyCluster(cluster)
		}
		if err := r.writer.WriteCluster(cluster); err != nil {
			return fmt.Errorf("writing cluster: %w", err)
		}

		r.result.Instructions++
		if r.limitReached() {
			break
		}
	}
	return nil
}

func (r *run) limitReached() bool {
	return r.opts.MaxInstructions > 0 && r.result.Instructions >= r.opts.MaxInstructions
}

// raw returns the image content of an instruction.
func (r *run) raw(addr machine.Address, length int) []byte {
	data := r.img.Bytes()
	start := int(addr - r.img.BaseAddress())
	if start < 0 || start >= len(data) {
		return nil
	}
	return data[start:min(start+length, len(data))]
}

// printInfo prints information about the code being processed.
func (p *Pipeline) printInfo(opts options.Program, architecture arch.Architecture, img *image.Image) {
	if opts.Quiet {
		return
	}

	p.logger.Info("Processing file",
		log.String("file", opts.Input),
		log.String("arch", architecture.Name()),
		log.Hex("base", uint64(img.BaseAddress())),
		log.Int("size", img.Size()),
	)
}
