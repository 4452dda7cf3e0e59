package chip8

import (
	"github.com/retroenv/retrogolib/log"
)

// next advances the program counter to the following instruction.
func (e *Engine) next() {
	e.pc += opcodeSize
}

// skipIf advances the program counter, skipping the following instruction
// if the condition holds.
func (e *Engine) skipIf(condition bool) {
	e.pc += opcodeSize
	if condition {
		e.pc += opcodeSize
	}
}

// setFlag writes the flag result to VF, overwriting any arithmetic result
// stored there by the same instruction.
func (e *Engine) setFlag(set bool) {
	if set {
		e.v[flagRegister] = 1
	} else {
		e.v[flagRegister] = 0
	}
}

// 00E0
func (e *Engine) clearScreen(_ opcode) error {
	e.display.clear()
	e.next()
	return nil
}

// 00EE
func (e *Engine) returnFromCall(_ opcode) error {
	address, err := e.stack.pop()
	if err != nil {
		return err
	}
	e.pc = address
	return nil
}

// 0nnn calls RCA 1802 machine code on the original hardware, it is ignored.
func (e *Engine) sys(op opcode) error {
	e.logger.Debug("Ignoring machine code routine call",
		log.Hex("pc", e.pc),
		log.Hex("address", op.nnn()))
	e.next()
	return nil
}

// 1nnn
func (e *Engine) jump(op opcode) error {
	e.pc = op.nnn()
	return nil
}

// 2nnn
func (e *Engine) call(op opcode) error {
	if err := e.stack.push(e.pc + opcodeSize); err != nil {
		return err
	}
	e.pc = op.nnn()
	return nil
}

// 3xkk
func (e *Engine) skipIfEqualByte(op opcode) error {
	e.skipIf(e.v[op.x()] == op.kk())
	return nil
}

// 4xkk
func (e *Engine) skipIfNotEqualByte(op opcode) error {
	e.skipIf(e.v[op.x()] != op.kk())
	return nil
}

// 5xy0
func (e *Engine) skipIfEqualReg(op opcode) error {
	e.skipIf(e.v[op.x()] == e.v[op.y()])
	return nil
}

// 9xy0
func (e *Engine) skipIfNotEqualReg(op opcode) error {
	e.skipIf(e.v[op.x()] != e.v[op.y()])
	return nil
}

// 6xkk
func (e *Engine) loadByte(op opcode) error {
	e.v[op.x()] = op.kk()
	e.next()
	return nil
}

// 7xkk wraps around without touching VF.
func (e *Engine) addByte(op opcode) error {
	e.v[op.x()] += op.kk()
	e.next()
	return nil
}

// 8xy0
func (e *Engine) loadReg(op opcode) error {
	e.v[op.x()] = e.v[op.y()]
	e.next()
	return nil
}

// 8xy1
func (e *Engine) or(op opcode) error {
	e.v[op.x()] |= e.v[op.y()]
	e.next()
	return nil
}

// 8xy2
func (e *Engine) and(op opcode) error {
	e.v[op.x()] &= e.v[op.y()]
	e.next()
	return nil
}

// 8xy3
func (e *Engine) xor(op opcode) error {
	e.v[op.x()] ^= e.v[op.y()]
	e.next()
	return nil
}

// 8xy4 sets VF on carry.
func (e *Engine) addReg(op opcode) error {
	sum := uint16(e.v[op.x()]) + uint16(e.v[op.y()])
	e.v[op.x()] = uint8(sum)
	e.setFlag(sum > 0xFF)
	e.next()
	return nil
}

// 8xy5 sets VF when no borrow occurs.
func (e *Engine) subReg(op opcode) error {
	vx, vy := e.v[op.x()], e.v[op.y()]
	e.v[op.x()] = vx - vy
	e.setFlag(vx >= vy)
	e.next()
	return nil
}

// 8xy6
func (e *Engine) shiftRight(op opcode) error {
	vx := e.v[op.x()]
	e.v[op.x()] = vx >> 1
	e.setFlag(vx&0x01 != 0)
	e.next()
	return nil
}

// 8xy7
func (e *Engine) subnReg(op opcode) error {
	vx, vy := e.v[op.x()], e.v[op.y()]
	e.v[op.x()] = vy - vx
	e.setFlag(vy > vx)
	e.next()
	return nil
}

// 8xyE
func (e *Engine) shiftLeft(op opcode) error {
	vx := e.v[op.x()]
	e.v[op.x()] = vx << 1
	e.setFlag(vx&0x80 != 0)
	e.next()
	return nil
}

// Annn
func (e *Engine) loadI(op opcode) error {
	e.i = op.nnn()
	e.next()
	return nil
}

// Bnnn
func (e *Engine) jumpPlusV0(op opcode) error {
	e.pc = op.nnn() + uint16(e.v[0])
	return nil
}

// Cxkk
func (e *Engine) randomAndMask(op opcode) error {
	e.v[op.x()] = uint8(e.rand.Intn(256)) & op.kk()
	e.next()
	return nil
}

// Dxyn
func (e *Engine) drawSprite(op opcode) error {
	sprite, err := e.memory.slice(e.i, int(op.n()))
	if err != nil {
		return err
	}

	erased, err := e.display.draw(e.v[op.x()], e.v[op.y()], sprite, e.spriteMode)
	if err != nil {
		return err
	}
	e.setFlag(erased)
	e.next()
	return nil
}

// Ex9E
func (e *Engine) skipIfKeyPressed(op opcode) error {
	e.skipIf(e.keypad.isPressed(e.v[op.x()]))
	return nil
}

// ExA1
func (e *Engine) skipIfKeyNotPressed(op opcode) error {
	e.skipIf(!e.keypad.isPressed(e.v[op.x()]))
	return nil
}

// Fx07
func (e *Engine) loadFromDelayTimer(op opcode) error {
	e.v[op.x()] = e.timers.delay
	e.next()
	return nil
}

// Fx0A holds the program counter until a key press was observed. Presses
// latched before the wait started do not count.
func (e *Engine) loadBlockingOnKey(op opcode) error {
	if !e.waiting {
		e.waiting = true
		e.keypad.clearPresses()
		e.logger.Debug("Waiting for key press", log.Hex("pc", e.pc))
	}

	key, ok := e.keypad.takePress()
	if !ok {
		return nil
	}

	e.waiting = false
	e.v[op.x()] = key
	e.next()
	return nil
}

// Fx15
func (e *Engine) loadDelayTimer(op opcode) error {
	e.timers.delay = e.v[op.x()]
	e.next()
	return nil
}

// Fx18
func (e *Engine) loadSoundTimer(op opcode) error {
	e.timers.sound = e.v[op.x()]
	e.next()
	return nil
}

// Fx1E
func (e *Engine) addToI(op opcode) error {
	e.i += uint16(e.v[op.x()])
	e.next()
	return nil
}

// Fx29 points I to the glyph of the digit in the low nibble of Vx.
func (e *Engine) loadFontAddress(op opcode) error {
	e.i = FontStart + uint16(e.v[op.x()]&0x0F)*fontGlyphSize
	e.next()
	return nil
}

// Fx33
func (e *Engine) storeBCD(op opcode) error {
	digits, err := e.memory.slice(e.i, 3)
	if err != nil {
		return err
	}

	value := e.v[op.x()]
	digits[0] = value / 100
	digits[1] = value / 10 % 10
	digits[2] = value % 10
	e.next()
	return nil
}

// Fx55
func (e *Engine) storeBlock(op opcode) error {
	count := e.blockLength(op.x())
	block, err := e.memory.slice(e.i, count)
	if err != nil {
		return err
	}
	copy(block, e.v[:count])
	e.next()
	return nil
}

// Fx65
func (e *Engine) loadBlock(op opcode) error {
	count := e.blockLength(op.x())
	block, err := e.memory.slice(e.i, count)
	if err != nil {
		return err
	}
	copy(e.v[:count], block)
	e.next()
	return nil
}

// blockLength returns the number of registers a block transfer up to Vx
// covers.
func (e *Engine) blockLength(x uint8) int {
	if e.exclusiveBlockTransfer {
		return int(x)
	}
	return int(x) + 1
}
