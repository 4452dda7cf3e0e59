package chip8

// CHIP-8 memory layout constants.
//
//	0x000-0x1FF: Interpreter and font data (512 bytes)
//	0x200-0xFFF: User program space (3584 bytes)
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 0x1000

	// FontStart is the address the interpreter and font image is loaded to.
	FontStart = 0x000

	// ProgramStart is the memory address where CHIP-8 programs are loaded
	// and begin execution.
	ProgramStart = 0x200

	// MaxROMSize is the largest program image that fits into memory.
	MaxROMSize = MemorySize - ProgramStart
)

// Display dimensions in pixels.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

const (
	// RegisterCount is the number of general-purpose registers V0-VF.
	RegisterCount = 16

	// StackSize is the number of entries of the call stack.
	StackSize = 16

	// KeyCount is the number of keys of the hexadecimal keypad.
	KeyCount = 16
)

const (
	opcodeSize    = 2   // all instructions are 2 bytes
	flagRegister  = 0xF // VF
	fontGlyphSize = 5   // bytes per hex digit glyph
	spriteWidth   = 8
)
