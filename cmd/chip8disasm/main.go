// Package main implements a linear CHIP-8 ROM lister
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrogolib/buildinfo"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

type optionFlags struct {
	input  string
	output string
	base   uint
	quiet  bool
}

func main() {
	options := readArguments()

	if !options.quiet {
		printBanner()
	}

	if err := listFile(options); err != nil {
		fmt.Println(fmt.Errorf("listing failed: %w", err))
		os.Exit(1)
	}
}

func readArguments() optionFlags {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	options := optionFlags{}

	flags.StringVar(&options.output, "o", "", "name of the output listing file, printed on console if no name given")
	flags.UintVar(&options.base, "base", chip8.ProgramStart, "address the ROM is loaded at")
	flags.BoolVar(&options.quiet, "q", false, "perform operations quietly")

	err := flags.Parse(os.Args[1:])
	args := flags.Args()

	if err != nil || len(args) == 0 {
		printBanner()
		fmt.Printf("usage: chip8disasm [options] <file to list>\n\n")
		flags.PrintDefaults()
		os.Exit(1)
	}
	options.input = args[0]

	return options
}

func printBanner() {
	fmt.Println("[-----------------------------------]")
	fmt.Println("[ chip8disasm - CHIP-8 ROM lister   ]")
	fmt.Printf("[-----------------------------------]\n\n")
	fmt.Printf("version: %s\n\n", buildinfo.Version(version, commit, date))
}

func listFile(options optionFlags) error {
	if options.base >= chip8.MemorySize {
		return fmt.Errorf("base address $%X is outside of memory", options.base)
	}

	image, err := os.ReadFile(options.input)
	if err != nil {
		return fmt.Errorf("reading file '%s': %w", options.input, err)
	}
	if err := disasm.CheckFits(image, uint16(options.base)); err != nil {
		return fmt.Errorf("file '%s': %w", options.input, err)
	}

	var outputFile io.WriteCloser
	if options.output == "" {
		outputFile = os.Stdout
	} else {
		outputFile, err = os.Create(options.output)
		if err != nil {
			return fmt.Errorf("creating file '%s': %w", options.output, err)
		}
	}

	if err = disasm.WriteListing(outputFile, image, uint16(options.base)); err != nil {
		return err
	}
	if err = outputFile.Close(); err != nil {
		return fmt.Errorf("closing file: %w", err)
	}
	return nil
}
