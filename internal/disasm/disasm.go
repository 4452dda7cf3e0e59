// Package disasm formats CHIP-8 instruction words and machine state as text
// for tracing and debug output.
package disasm

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/chip8"
	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// sysName is used for 0nnn machine code routine calls that the opcode table
// does not list.
const sysName = "sys"

// Lookup returns the opcode table entry for the instruction word.
func Lookup(word uint16) (chip8cpu.Opcode, bool) {
	firstNibble := (word & 0xF000) >> 12
	for _, op := range chip8cpu.Opcodes[int(firstNibble)] {
		if op.Info.Mask&word == op.Info.Value {
			return op, op.Instruction != nil
		}
	}
	return chip8cpu.Opcode{}, false
}

// Format returns the assembly text of an instruction word. Words that do
// not decode to an instruction are returned as a data directive.
func Format(word uint16) string {
	op, ok := Lookup(word)
	if !ok {
		if word&0xF000 == 0x0000 {
			return fmt.Sprintf("%s $%03X", sysName, word&0x0FFF)
		}
		return fmt.Sprintf(".word $%04X", word)
	}

	name := op.Instruction.Name
	if params := formatInstruction(name, word); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}

// FormatAt returns a trace line containing the address, the raw word and
// its assembly text.
func FormatAt(address, word uint16) string {
	return fmt.Sprintf("$%03X: %04X  %s", address, word, Format(word))
}

// formatInstruction returns the formatted parameter string for the given
// instruction.
func formatInstruction(name string, opcode uint16) string {
	switch name {
	case chip8cpu.ClsInst.Name, chip8cpu.RetInst.Name:
		return ""
	case chip8cpu.JpInst.Name:
		return formatJumpInstruction(opcode)
	case chip8cpu.CallInst.Name:
		return fmt.Sprintf("$%03X", opcode&0x0FFF)
	case chip8cpu.SeInst.Name, chip8cpu.SneInst.Name:
		return formatCompareInstruction(opcode)
	case chip8cpu.LdInst.Name:
		return formatLoadInstruction(opcode)
	case chip8cpu.AddInst.Name:
		return formatAddInstruction(opcode)
	case chip8cpu.OrInst.Name, chip8cpu.AndInst.Name, chip8cpu.XorInst.Name, chip8cpu.SubInst.Name, chip8cpu.SubnInst.Name:
		return fmt.Sprintf("V%X, V%X", registerX(opcode), registerY(opcode))
	case chip8cpu.ShrInst.Name, chip8cpu.ShlInst.Name, chip8cpu.SkpInst.Name, chip8cpu.SknpInst.Name:
		return fmt.Sprintf("V%X", registerX(opcode))
	case chip8cpu.RndInst.Name:
		return fmt.Sprintf("V%X, $%02X", registerX(opcode), opcode&0x00FF)
	case chip8cpu.DrwInst.Name:
		return fmt.Sprintf("V%X, V%X, $%X", registerX(opcode), registerY(opcode), opcode&0x000F)
	}
	return ""
}

// formatJumpInstruction formats jp addr and jp V0, addr.
func formatJumpInstruction(opcode uint16) string {
	switch opcode & 0xF000 {
	case 0x1000:
		return fmt.Sprintf("$%03X", opcode&0x0FFF)
	case 0xB000:
		return fmt.Sprintf("V0, $%03X", opcode&0x0FFF)
	}
	return ""
}

func formatCompareInstruction(opcode uint16) string {
	x := registerX(opcode)
	switch opcode & 0xF000 {
	case 0x3000, 0x4000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case 0x5000, 0x9000:
		return fmt.Sprintf("V%X, V%X", x, registerY(opcode))
	}
	return ""
}

// loadOperands contains the operand layout of the Fx load forms, %X is
// replaced by the register number.
var loadOperands = map[uint16]string{
	0x07: "V%X, DT",
	0x0A: "V%X, K",
	0x15: "DT, V%X",
	0x18: "ST, V%X",
	0x29: "F, V%X",
	0x33: "B, V%X",
	0x55: "[I], V%X",
	0x65: "V%X, [I]",
}

func formatLoadInstruction(opcode uint16) string {
	x := registerX(opcode)
	switch opcode & 0xF000 {
	case 0x6000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case 0x8000:
		return fmt.Sprintf("V%X, V%X", x, registerY(opcode))
	case 0xA000:
		return fmt.Sprintf("I, $%03X", opcode&0x0FFF)
	case 0xF000:
		if layout, ok := loadOperands[opcode&0x00FF]; ok {
			return fmt.Sprintf(layout, x)
		}
	}
	return ""
}

func formatAddInstruction(opcode uint16) string {
	x := registerX(opcode)
	switch opcode & 0xF000 {
	case 0x7000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case 0x8000:
		return fmt.Sprintf("V%X, V%X", x, registerY(opcode))
	case 0xF000:
		return fmt.Sprintf("I, V%X", x)
	}
	return ""
}

func registerX(opcode uint16) uint16 {
	return (opcode & 0x0F00) >> 8
}

func registerY(opcode uint16) uint16 {
	return (opcode & 0x00F0) >> 4
}

// DumpRegisters renders the register file in two rows of general purpose
// registers followed by the special registers.
func DumpRegisters(regs chip8.Registers) string {
	var sb strings.Builder
	for i, value := range regs.V {
		switch {
		case i == chip8.RegisterCount/2:
			sb.WriteByte('\n')
		case i > 0:
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "V%X=%02X", i, value)
	}
	fmt.Fprintf(&sb, "\nI=$%03X PC=$%03X SP=%d DT=%02X ST=%02X", regs.I, regs.PC, regs.SP, regs.DT, regs.ST)
	return sb.String()
}

// DumpStack renders the active return addresses, the most recent call last.
func DumpStack(snapshot chip8.StackSnapshot) string {
	frames := snapshot.Frames()
	if len(frames) == 0 {
		return "stack: empty"
	}

	addresses := make([]string, 0, len(frames))
	for _, address := range frames {
		addresses = append(addresses, fmt.Sprintf("$%03X", address))
	}
	return "stack: " + strings.Join(addresses, " ")
}

// DumpDisplay renders the framebuffer with one character per pixel.
func DumpDisplay(fb chip8.Framebuffer, set, unset rune) string {
	var sb strings.Builder
	sb.Grow(chip8.DisplayHeight * (chip8.DisplayWidth + 1))
	for _, row := range fb {
		for _, pixel := range row {
			if pixel {
				sb.WriteRune(set)
			} else {
				sb.WriteRune(unset)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// WriteListing writes a linear listing of the image with one trace line per
// instruction word, starting at the base address. A trailing odd byte is
// written as a data directive.
func WriteListing(w io.Writer, image []byte, base uint16) error {
	if err := CheckFits(image, base); err != nil {
		return err
	}

	address := base
	for i := 0; i+1 < len(image); i += 2 {
		word := uint16(image[i])<<8 | uint16(image[i+1])
		if _, err := fmt.Fprintln(w, FormatAt(address, word)); err != nil {
			return fmt.Errorf("writing listing: %w", err)
		}
		address += 2
	}

	if len(image)%2 != 0 {
		last := image[len(image)-1]
		if _, err := fmt.Fprintf(w, "$%03X: %02X    .byte $%02X\n", address, last, last); err != nil {
			return fmt.Errorf("writing listing: %w", err)
		}
	}
	return nil
}

// CheckFits returns a *chip8.LoadError if the image loaded at base would
// extend past the end of the interpreter memory.
func CheckFits(image []byte, base uint16) error {
	if int(base)+len(image) > chip8.MemorySize {
		return &chip8.LoadError{
			Base:  base,
			Size:  len(image),
			Limit: chip8.MemorySize,
			Err:   chip8.ErrImageTooLarge,
		}
	}
	return nil
}
