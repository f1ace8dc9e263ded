// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/retroenv/retrolift/internal/machine"
	"github.com/retroenv/retrolift/internal/options"
)

var (
	errConflictingByteOrder = errors.New("the -be and -le flags can not be combined")
	errNegativeCount        = errors.New("the instruction count can not be negative")
)

// ParseFlags parses command line flags and returns program and lifter options
func ParseFlags() (options.Program, options.Lifter, error) {
	return parseArgs(os.Args[0], os.Args[1:])
}

func parseArgs(name string, arguments []string) (options.Program, options.Lifter, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(arguments)
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Batch == "") {
		return opts, options.Lifter{}, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, options.Lifter{}, err
	}

	if opts.Batch == "" {
		opts.Input = args[0]
	}

	lifterOptions, err := createLifterOptions(opts)
	if err != nil {
		return opts, options.Lifter{}, err
	}
	return opts, lifterOptions, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage and the flag defaults.
func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: retrolift [options] <file to lift>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after file to lift, please pass the file to lift as last argument", arg),
			}
		}
	}
	return nil
}

// createLifterOptions validates the program options and converts them to
// lifter options.
func createLifterOptions(opts options.Program) (options.Lifter, error) {
	lifterOptions := options.NewLifter(opts.Arch)

	if opts.BigEndian && opts.LittleEndian {
		return lifterOptions, errConflictingByteOrder
	}
	lifterOptions.ArchFlags.BigEndian = opts.BigEndian
	lifterOptions.ArchFlags.Wide = opts.Wide
	lifterOptions.ByteOrder = opts.BigEndian || opts.LittleEndian

	if opts.Base != "" {
		base, err := parseAddress(opts.Base)
		if err != nil {
			return lifterOptions, err
		}
		lifterOptions.BaseAddress = base
		lifterOptions.HasBaseAddress = true
	}

	if opts.Count < 0 {
		return lifterOptions, errNegativeCount
	}
	lifterOptions.MaxInstructions = opts.Count
	lifterOptions.RTL = opts.RTL
	lifterOptions.Diagnostics = opts.Diagnostics
	lifterOptions.Simplify = opts.Simplify
	lifterOptions.HexComments = !opts.NoHexComment
	return lifterOptions, nil
}

// parseAddress parses a decimal, 0x prefixed or $ prefixed hex address.
func parseAddress(s string) (machine.Address, error) {
	value := s
	base := 0
	if strings.HasPrefix(value, "$") {
		value = value[1:]
		base = 16
	}
	addr, err := strconv.ParseUint(value, base, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing base address '%s': %w", s, err)
	}
	return machine.Address(addr), nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Output, "o", "", "name of the output file, printed on console if no name given")
	flags.StringVar(&opts.Verify, "verify", "", "golden listing file to compare the output against")
	flags.StringVar(&opts.Batch, "batch", "", "process a batch of given path and file mask and automatically name the output files, for example *.bin")
	flags.StringVar(&opts.Arch, "a", "", "architecture to lift (chip8, mips, parisc) - if not detected from the input file")
	flags.BoolVar(&opts.BigEndian, "be", false, "decode big endian instruction words")
	flags.BoolVar(&opts.LittleEndian, "le", false, "decode little endian instruction words")
	flags.BoolVar(&opts.Wide, "64", false, "use the 64 bit processor mode")
	flags.StringVar(&opts.Base, "base", "", "load address of raw binary input, for example 0x80000000")
	flags.IntVar(&opts.Count, "n", 0, "maximum number of instructions to process, 0 for all")
	flags.BoolVar(&opts.RTL, "rtl", false, "output the RTL clusters instead of the disassembly")
	flags.BoolVar(&opts.Simplify, "simplify", false, "move constants to the right side of RTL comparisons")
	flags.BoolVar(&opts.Diagnostics, "diag", false, "output decoder tree statistics and test stubs for missing cases")
	flags.BoolVar(&opts.NoHexComment, "nohexcomments", false, "do not output instruction bytes as hex values in comments")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
