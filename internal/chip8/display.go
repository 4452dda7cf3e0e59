package chip8

import (
	"fmt"
	"strings"
)

// SpriteMode controls how sprite pixels past the right or bottom edge of
// the display are handled.
type SpriteMode int

const (
	// SpriteWrap wraps pixels around to the opposite edge.
	SpriteWrap SpriteMode = iota
	// SpriteClip drops pixels that fall outside of the display.
	SpriteClip
	// SpriteStrict rejects the whole draw with ErrDisplayOutOfBounds.
	SpriteStrict
)

var spriteModeNames = map[SpriteMode]string{
	SpriteWrap:   "wrap",
	SpriteClip:   "clip",
	SpriteStrict: "strict",
}

func (m SpriteMode) String() string {
	if name, ok := spriteModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("SpriteMode(%d)", int(m))
}

// ParseSpriteMode returns the sprite mode for a name as returned by String.
func ParseSpriteMode(name string) (SpriteMode, error) {
	name = strings.ToLower(name)
	for mode, modeName := range spriteModeNames {
		if modeName == name {
			return mode, nil
		}
	}
	return 0, fmt.Errorf("unsupported sprite mode '%s'", name)
}

// Framebuffer is the pixel state of the display, indexed by row and column.
type Framebuffer [DisplayHeight][DisplayWidth]bool

// display is the display buffer. version is incremented on every change
// so that hosts can redraw only when needed.
type display struct {
	pixels  Framebuffer
	version uint64
}

func (d *display) clear() {
	d.pixels = Framebuffer{}
	d.version++
}

// draw XORs the sprite rows onto the display with the origin wrapped into
// the display area. It returns whether any set pixel was cleared.
func (d *display) draw(x, y uint8, sprite []byte, mode SpriteMode) (bool, error) {
	originX := int(x) % DisplayWidth
	originY := int(y) % DisplayHeight

	if mode == SpriteStrict && (originX+spriteWidth > DisplayWidth || originY+len(sprite) > DisplayHeight) {
		return false, ErrDisplayOutOfBounds
	}

	var erased bool
	for row, bits := range sprite {
		py := originY + row
		if py >= DisplayHeight {
			if mode == SpriteClip {
				break
			}
			py %= DisplayHeight
		}

		for col := 0; col < spriteWidth; col++ {
			if bits&(0x80>>col) == 0 {
				continue
			}

			px := originX + col
			if px >= DisplayWidth {
				if mode == SpriteClip {
					break
				}
				px %= DisplayWidth
			}

			if d.pixels[py][px] {
				erased = true
			}
			d.pixels[py][px] = !d.pixels[py][px]
		}
	}

	d.version++
	return erased, nil
}
