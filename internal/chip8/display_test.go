package chip8

import (
	"errors"
	"fmt"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

// drawAt executes Dxyn with the sprite stored at 0x300.
func drawAt(t *testing.T, e *Engine, x, y uint8, sprite ...byte) error {
	t.Helper()

	copy(e.memory[0x300:], sprite)
	e.i = 0x300
	e.v[1] = x
	e.v[2] = y
	word := 0xD120 | uint16(len(sprite))
	e.pc = ProgramStart
	e.memory[ProgramStart] = byte(word >> 8)
	e.memory[ProgramStart+1] = byte(word)
	return e.Step()
}

func TestDrawSprite(t *testing.T) {
	e := newTestEngine(t)
	version := e.DisplayVersion()

	assert.NoError(t, drawAt(t, e, 2, 3, 0b1010_0000, 0b0101_0000))
	assert.Equal(t, uint8(0), e.v[flagRegister])
	assert.True(t, e.Pixel(2, 3))
	assert.False(t, e.Pixel(3, 3))
	assert.True(t, e.Pixel(4, 3))
	assert.True(t, e.Pixel(3, 4))
	assert.True(t, e.Pixel(5, 4))
	assert.True(t, e.DisplayVersion() != version, "version changes on draw")
	assert.Equal(t, uint16(ProgramStart+2), e.pc)
}

func TestDrawSprite_TwiceRestores(t *testing.T) {
	e := newTestEngine(t)
	glyph := defaultFont[0:fontGlyphSize]

	assert.NoError(t, drawAt(t, e, 10, 10, glyph...))
	assert.Equal(t, uint8(0), e.v[flagRegister])
	assert.NoError(t, drawAt(t, e, 10, 10, glyph...))
	assert.Equal(t, uint8(1), e.v[flagRegister])
	assert.Equal(t, Framebuffer{}, e.Display())
}

func TestDrawSprite_CollisionAcrossRows(t *testing.T) {
	e := newTestEngine(t)
	assert.NoError(t, drawAt(t, e, 0, 1, 0x80))

	// the first row does not collide, the second one does
	assert.NoError(t, drawAt(t, e, 0, 0, 0x01, 0x80))
	assert.Equal(t, uint8(1), e.v[flagRegister])
	assert.False(t, e.Pixel(0, 1))

	// unset sprite bits over lit pixels are no collision
	assert.NoError(t, drawAt(t, e, 7, 0, 0x00))
	assert.Equal(t, uint8(0), e.v[flagRegister])
	assert.True(t, e.Pixel(7, 0))
}

func TestDrawSprite_OriginWraps(t *testing.T) {
	e := newTestEngine(t)
	assert.NoError(t, drawAt(t, e, 64+5, 32+6, 0x80))
	assert.True(t, e.Pixel(5, 6))
}

func TestDrawSprite_Modes(t *testing.T) {
	tests := []struct {
		name    string
		mode    SpriteMode
		wantErr bool
		lit     [][2]int
		unlit   [][2]int
	}{
		{
			name:  "wrap",
			mode:  SpriteWrap,
			lit:   [][2]int{{62, 31}, {63, 31}, {0, 31}, {1, 31}, {62, 0}, {1, 0}},
			unlit: [][2]int{{2, 31}},
		},
		{
			name:  "clip",
			mode:  SpriteClip,
			lit:   [][2]int{{62, 31}, {63, 31}},
			unlit: [][2]int{{0, 31}, {1, 31}, {62, 0}, {1, 0}},
		},
		{
			name:    "strict",
			mode:    SpriteStrict,
			wantErr: true,
			unlit:   [][2]int{{62, 31}, {63, 31}, {0, 31}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, WithSpriteMode(tt.mode))
			e.v[flagRegister] = 0x55

			err := drawAt(t, e, 62, 31, 0xF0, 0x90)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrDisplayOutOfBounds))
				assert.Equal(t, uint8(0x55), e.v[flagRegister], "VF unchanged")
				assert.Equal(t, uint16(ProgramStart), e.pc)
			} else {
				assert.NoError(t, err)
			}

			for _, p := range tt.lit {
				assert.True(t, e.Pixel(p[0], p[1]), fmt.Sprintf("pixel %v", p))
			}
			for _, p := range tt.unlit {
				assert.False(t, e.Pixel(p[0], p[1]), fmt.Sprintf("pixel %v", p))
			}
		})
	}
}

func TestDrawSprite_StrictInBounds(t *testing.T) {
	e := newTestEngine(t, WithSpriteMode(SpriteStrict))
	assert.NoError(t, drawAt(t, e, 56, 27, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF))
	assert.True(t, e.Pixel(63, 31))
}

func TestDrawSprite_SpriteOutOfMemory(t *testing.T) {
	e := newTestEngine(t)
	loadProgram(t, e, 0xD12F)
	e.i = 0xFF8

	err := e.Step()
	assert.True(t, errors.Is(err, ErrMemoryOutOfBounds))
}

func TestClearScreen(t *testing.T) {
	e := newTestEngine(t)
	assert.NoError(t, drawAt(t, e, 0, 0, 0xFF))

	e.pc = ProgramStart
	e.memory[ProgramStart] = 0x00
	e.memory[ProgramStart+1] = 0xE0
	assert.NoError(t, e.Step())
	assert.Equal(t, Framebuffer{}, e.Display())
}

func TestParseSpriteMode(t *testing.T) {
	for mode, name := range spriteModeNames {
		parsed, err := ParseSpriteMode(name)
		assert.NoError(t, err)
		assert.Equal(t, mode, parsed)
		assert.Equal(t, name, mode.String())
	}

	parsed, err := ParseSpriteMode("CLIP")
	assert.NoError(t, err)
	assert.Equal(t, SpriteClip, parsed)

	_, err = ParseSpriteMode("bounce")
	assert.Error(t, err)
}
