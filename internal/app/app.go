// Package app provides the main application helpers for the interpreter.
package app

import (
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	archsys "github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// PrintInfo prints the information about the input file and the emulation
// settings.
func PrintInfo(logger *log.Logger, opts options.Program, images *loader.Images) {
	if opts.Quiet {
		return
	}

	logger.Info("Running Chip-8 ROM",
		log.Stringer("system", archsys.CHIP8System),
		log.String("file", opts.Input),
		log.Int("size", len(images.ROM)),
		log.Int("hz", opts.Hz),
		log.String("sprites", opts.SpriteMode),
	)

	if images.Font != nil {
		logger.Info("Using custom font", log.String("file", opts.Font), log.Int("size", len(images.Font)))
	}
	if opts.ExclusiveBlockTransfer {
		logger.Warn("Block transfers exclude Vx, some ROMs depend on the inclusive behavior")
	}
}
