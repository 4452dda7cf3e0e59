// Package runner drives the interpreter for ROM files, paced for a frontend
// or headless as fast as possible.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrochip8/internal/app"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// ErrUnsupportedSystem is returned for files of another system unless the
// run is forced.
var ErrUnsupportedSystem = errors.New("file extension indicates a ROM for a different system")

// ProcessFile loads the ROM file of the options and runs it. Without a
// frontend the ROM is run headless and the final machine state is written
// to the output.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program, frontend Frontend, output io.Writer) error {
	if !detector.New(logger).Check(opts.Input) && !opts.Force {
		return fmt.Errorf("file %s: %w", opts.Input, ErrUnsupportedSystem)
	}

	images, err := loader.New().Load(opts)
	if err != nil {
		return fmt.Errorf("loading images: %w", err)
	}

	app.PrintInfo(logger, opts, images)

	r, err := New(logger, opts, images)
	if err != nil {
		return fmt.Errorf("setting up interpreter: %w", err)
	}

	if frontend == nil {
		return r.RunHeadless(ctx, output)
	}
	return r.Run(ctx, frontend)
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		return matches, nil
	}
	return []string{opts.Input}, nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("retrochip8", log.String("version", buildinfo.Version(version, commit, date)))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}
