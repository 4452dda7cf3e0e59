package detector

import (
	"testing"

	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestDetectFromFile(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		system   arch.System
		known    bool
	}{
		{"ch8 extension", "pong.ch8", arch.CHIP8System, true},
		{"c8 extension", "PONG.C8", arch.CHIP8System, true},
		{"rom extension", "games/tetris.rom", arch.CHIP8System, true},
		{"nes extension", "mario.nes", arch.NES, true},
		{"no extension", "PONG", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			system, known := detectFromFile(tt.filename)
			assert.Equal(t, tt.system, system)
			assert.Equal(t, tt.known, known)
		})
	}
}

func TestCheck(t *testing.T) {
	d := New(log.NewTestLogger(t))
	assert.True(t, d.Check("pong.ch8"))
	assert.True(t, d.Check("PONG"))
	assert.False(t, d.Check("mario.nes"))
}
