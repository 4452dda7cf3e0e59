// Package loader handles ROM and font file loading operations.
package loader

import (
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/options"
)

// ErrEmptyImage is returned for files that contain no data.
var ErrEmptyImage = errors.New("image file is empty")

// Images contains the raw images to load into the interpreter memory.
type Images struct {
	ROM  []byte
	Font []byte // nil if the built-in font is used
}

// Loader handles loading image files from disk.
type Loader struct{}

// New creates a new image loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the ROM and the optional font image based on the options.
// CHIP-8 images are raw binary files without any header.
func (l *Loader) Load(opts options.Program) (*Images, error) {
	rom, err := readImage(opts.Input, chip8.MaxROMSize)
	if err != nil {
		return nil, fmt.Errorf("loading ROM: %w", err)
	}
	images := &Images{ROM: rom}

	if opts.Font != "" {
		images.Font, err = readImage(opts.Font, chip8.ProgramStart-chip8.FontStart)
		if err != nil {
			return nil, fmt.Errorf("loading font: %w", err)
		}
	}

	return images, nil
}

// Apply loads the images into a reset engine.
func (images *Images) Apply(e *chip8.Engine) error {
	if images.Font != nil {
		if err := e.LoadFont(images.Font); err != nil {
			return fmt.Errorf("loading font image: %w", err)
		}
	}
	if err := e.LoadROM(images.ROM); err != nil {
		return fmt.Errorf("loading ROM image: %w", err)
	}
	return nil
}

func readImage(name string, limit int) ([]byte, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", name, err)
	}

	switch {
	case len(data) == 0:
		return nil, fmt.Errorf("file %s: %w", name, ErrEmptyImage)
	case len(data) > limit:
		return nil, fmt.Errorf("file %s has %d bytes with limit %d: %w",
			name, len(data), limit, chip8.ErrImageTooLarge)
	}
	return data, nil
}
