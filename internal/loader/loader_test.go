package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestLoad(t *testing.T) {
	t.Run("load ROM file", func(t *testing.T) {
		tmpFile := createTempFile(t, "rom.ch8", []byte{0x60, 0x05, 0x12, 0x02})

		loader := New()
		opts := options.Program{
			Parameters: options.Parameters{Input: tmpFile},
		}

		images, err := loader.Load(opts)
		assert.NoError(t, err)
		assert.Equal(t, []byte{0x60, 0x05, 0x12, 0x02}, images.ROM)
		assert.Nil(t, images.Font)
	})

	t.Run("load ROM with font", func(t *testing.T) {
		tmpFile := createTempFile(t, "rom.ch8", []byte{0x00, 0xE0})
		tmpFont := createTempFile(t, "font.bin", chip8.DefaultFont())

		loader := New()
		opts := options.Program{
			Parameters: options.Parameters{Input: tmpFile, Font: tmpFont},
		}

		images, err := loader.Load(opts)
		assert.NoError(t, err)
		assert.Equal(t, chip8.DefaultFont(), images.Font)
	})

	t.Run("error on non-existent file", func(t *testing.T) {
		loader := New()
		opts := options.Program{
			Parameters: options.Parameters{Input: "/nonexistent/file.ch8"},
		}

		_, err := loader.Load(opts)
		assert.Error(t, err)
	})

	t.Run("error on empty file", func(t *testing.T) {
		tmpFile := createTempFile(t, "rom.ch8", nil)

		_, err := New().Load(options.Program{
			Parameters: options.Parameters{Input: tmpFile},
		})
		assert.True(t, errors.Is(err, ErrEmptyImage))
	})

	t.Run("error on oversized ROM", func(t *testing.T) {
		tmpFile := createTempFile(t, "rom.ch8", make([]byte, chip8.MaxROMSize+1))

		_, err := New().Load(options.Program{
			Parameters: options.Parameters{Input: tmpFile},
		})
		assert.True(t, errors.Is(err, chip8.ErrImageTooLarge))
	})

	t.Run("error on oversized font", func(t *testing.T) {
		tmpFile := createTempFile(t, "rom.ch8", []byte{0x00, 0xE0})
		tmpFont := createTempFile(t, "font.bin", make([]byte, chip8.ProgramStart+1))

		_, err := New().Load(options.Program{
			Parameters: options.Parameters{Input: tmpFile, Font: tmpFont},
		})
		assert.True(t, errors.Is(err, chip8.ErrImageTooLarge))
	})
}

func TestImagesApply(t *testing.T) {
	e, err := chip8.New(chip8.WithLogger(log.NewTestLogger(t)))
	assert.NoError(t, err)

	font := []byte{0xAA, 0xBB}
	images := &Images{ROM: []byte{0x12, 0x34}, Font: font}
	assert.NoError(t, images.Apply(e))

	value, err := e.ReadMemory(chip8.ProgramStart)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x12), value)

	e.Reset()
	value, err = e.ReadMemory(chip8.FontStart + 1)
	assert.NoError(t, err)
	assert.Equal(t, byte(0xBB), value, "font survives reset")
}

func createTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}
