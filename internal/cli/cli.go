// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/statsview"
)

// ParseFlags parses command line flags and returns the program options.
func ParseFlags() (options.Program, error) {
	return parseArgs(os.Args)
}

func parseArgs(osArgs []string) (options.Program, error) {
	flags := flag.NewFlagSet(osArgs[0], flag.ContinueOnError)
	flags.Usage = func() {} // printed by UsageError.ShowUsage
	opts := options.New()
	readOptionFlags(flags, &opts)

	err := flags.Parse(osArgs[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Batch == "") {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	if opts.Batch == "" {
		opts.Input = args[0]
	}

	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: retrochip8 [options] <ROM file to run>\n\n")
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
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.SpriteMode = strings.ToLower(opts.SpriteMode)
	if _, err := chip8.ParseSpriteMode(opts.SpriteMode); err != nil {
		return err
	}

	if opts.Hz <= 0 || opts.Hz > options.MaxHz {
		return fmt.Errorf("invalid instruction rate %d, valid range is 1-%d", opts.Hz, options.MaxHz)
	}

	if opts.Trace {
		opts.Debug = true
	}
	if opts.Debug {
		opts.Quiet = false
	}

	// batch runs have no terminal to render to
	if opts.Batch != "" {
		opts.Headless = true
	}
	if opts.Headless && opts.Cycles == 0 {
		return fmt.Errorf("headless mode needs a -cycles limit")
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.Font, "font", "", "name of an interpreter image to load below $200 instead of the built-in font")
	flags.StringVar(&opts.Batch, "batch", "", "run a batch of given path and file mask headless, for example *.ch8")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, implies -debug")
	flags.BoolVar(&opts.Headless, "headless", false, "run without terminal frontend and print the final machine state")
	flags.BoolVar(&opts.StatsView, "statsview", false, "start the runtime statistics server")
	flags.StringVar(&opts.StatsViewAddr, "statsview-addr", "", "listen address of the runtime statistics server (default "+statsview.DefaultAddr+")")
	flags.BoolVar(&opts.Force, "force", false, "run files whose extension belongs to another system")

	flags.IntVar(&opts.Hz, "hz", opts.Hz, "instructions executed per second")
	flags.Uint64Var(&opts.Cycles, "cycles", 0, "number of instructions to execute in headless mode")
	flags.StringVar(&opts.SpriteMode, "sprite", opts.SpriteMode, "sprite edge handling (wrap/clip/strict)")
	flags.BoolVar(&opts.ExclusiveBlockTransfer, "exclusive-block", false, "Fx55/Fx65 transfer V0 up to but not including Vx")
	flags.BoolVar(&opts.HaltOnError, "halt-on-error", opts.HaltOnError, "stop on unknown opcodes instead of skipping them")
	flags.Int64Var(&opts.Seed, "seed", 0, "random number seed, 0 seeds from the current time")
}
