package chip8

import (
	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// opcode is a 16-bit instruction word.
//
//	|class|  x  |  y  |  n  |
//	|class|  x  |    kk     |
//	|class|       nnn       |
type opcode uint16

func (o opcode) class() uint8 { return uint8(o >> 12) }
func (o opcode) x() uint8     { return uint8(o>>8) & 0x0F }
func (o opcode) y() uint8     { return uint8(o>>4) & 0x0F }
func (o opcode) n() uint8     { return uint8(o) & 0x0F }
func (o opcode) kk() uint8    { return uint8(o) }
func (o opcode) nnn() uint16  { return uint16(o) & 0x0FFF }

// handler executes a decoded instruction and advances the program counter.
type handler func(e *Engine, op opcode) error

// handlers maps the opcode form values of the CHIP-8 opcode table to the
// instruction implementations.
var handlers = map[uint16]handler{
	0x00E0: (*Engine).clearScreen,
	0x00EE: (*Engine).returnFromCall,
	0x1000: (*Engine).jump,
	0x2000: (*Engine).call,
	0x3000: (*Engine).skipIfEqualByte,
	0x4000: (*Engine).skipIfNotEqualByte,
	0x5000: (*Engine).skipIfEqualReg,
	0x6000: (*Engine).loadByte,
	0x7000: (*Engine).addByte,
	0x8000: (*Engine).loadReg,
	0x8001: (*Engine).or,
	0x8002: (*Engine).and,
	0x8003: (*Engine).xor,
	0x8004: (*Engine).addReg,
	0x8005: (*Engine).subReg,
	0x8006: (*Engine).shiftRight,
	0x8007: (*Engine).subnReg,
	0x800E: (*Engine).shiftLeft,
	0x9000: (*Engine).skipIfNotEqualReg,
	0xA000: (*Engine).loadI,
	0xB000: (*Engine).jumpPlusV0,
	0xC000: (*Engine).randomAndMask,
	0xD000: (*Engine).drawSprite,
	0xE09E: (*Engine).skipIfKeyPressed,
	0xE0A1: (*Engine).skipIfKeyNotPressed,
	0xF007: (*Engine).loadFromDelayTimer,
	0xF00A: (*Engine).loadBlockingOnKey,
	0xF015: (*Engine).loadDelayTimer,
	0xF018: (*Engine).loadSoundTimer,
	0xF01E: (*Engine).addToI,
	0xF029: (*Engine).loadFontAddress,
	0xF033: (*Engine).storeBCD,
	0xF055: (*Engine).storeBlock,
	0xF065: (*Engine).loadBlock,
}

// decode returns the handler of the opcode. The 0nnn machine code call is
// not part of the opcode table and is matched after it.
func decode(op opcode) (handler, bool) {
	w := uint16(op)
	for _, entry := range chip8cpu.Opcodes[int(op.class())] {
		if entry.Info.Mask&w == entry.Info.Value {
			h, ok := handlers[entry.Info.Value]
			return h, ok
		}
	}

	if op.class() == 0x0 {
		return (*Engine).sys, true
	}
	return nil, false
}
