package terminal

import (
	"strings"

	"github.com/retroenv/retrochip8/internal/chip8"
)

// ANSI control sequences.
const (
	clearScreen = "\x1b[2J"
	cursorHome  = "\x1b[H"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
)

// Half block characters, each text row shows two display rows.
const (
	blockFull   = '█'
	blockUpper  = '▀'
	blockLower  = '▄'
	blockEmpty  = ' '
	lineEnding  = "\r\n" // output post processing is disabled in raw mode
	renderWidth = chip8.DisplayWidth
	renderRows  = chip8.DisplayHeight / 2
)

// Render returns the framebuffer as text rows of half block characters,
// each row indented by left spaces.
func Render(fb chip8.Framebuffer, left int) string {
	indent := strings.Repeat(" ", max(left, 0))

	var sb strings.Builder
	sb.Grow(renderRows * (len(indent) + renderWidth*3 + len(lineEnding)))

	for row := 0; row < chip8.DisplayHeight; row += 2 {
		sb.WriteString(indent)
		upper, lower := fb[row], fb[row+1]
		for x := range renderWidth {
			switch {
			case upper[x] && lower[x]:
				sb.WriteRune(blockFull)
			case upper[x]:
				sb.WriteRune(blockUpper)
			case lower[x]:
				sb.WriteRune(blockLower)
			default:
				sb.WriteRune(blockEmpty)
			}
		}
		sb.WriteString(lineEnding)
	}
	return sb.String()
}

// indentFor returns the indentation that centres the display in a terminal
// with the given number of columns.
func indentFor(columns uint16) int {
	if int(columns) <= renderWidth {
		return 0
	}
	return (int(columns) - renderWidth) / 2
}
