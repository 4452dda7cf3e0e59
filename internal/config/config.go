// Package config handles application configuration and setup
package config

import (
	"fmt"
	"math/rand"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// CreateEngineOptions converts the program options to engine options.
// The font option is not included as the font image is loaded from file.
func CreateEngineOptions(logger *log.Logger, opts options.Program) ([]chip8.Option, error) {
	mode, err := chip8.ParseSpriteMode(opts.SpriteMode)
	if err != nil {
		return nil, fmt.Errorf("parsing sprite mode: %w", err)
	}

	engineOptions := []chip8.Option{
		chip8.WithLogger(logger),
		chip8.WithSpriteMode(mode),
		chip8.WithExclusiveBlockTransfer(opts.ExclusiveBlockTransfer),
	}
	if opts.Seed != 0 {
		engineOptions = append(engineOptions, chip8.WithRand(rand.New(rand.NewSource(opts.Seed))))
	}
	return engineOptions, nil
}
