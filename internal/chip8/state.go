package chip8

// Registers is a copy of the register file.
type Registers struct {
	V  [RegisterCount]uint8
	I  uint16
	PC uint16
	SP uint8
	DT uint8
	ST uint8
}

// Registers returns a snapshot of the register file.
func (e *Engine) Registers() Registers {
	return Registers{
		V:  e.v,
		I:  e.i,
		PC: e.pc,
		SP: e.stack.sp,
		DT: e.timers.delay,
		ST: e.timers.sound,
	}
}

// Stack returns a snapshot of the call stack.
func (e *Engine) Stack() StackSnapshot {
	return StackSnapshot{
		Entries: e.stack.entries,
		SP:      e.stack.sp,
	}
}

// Display returns a copy of the display buffer.
func (e *Engine) Display() Framebuffer {
	return e.display.pixels
}

// Pixel returns the state of a single pixel, coordinates outside of the
// display are reported as unset.
func (e *Engine) Pixel(x, y int) bool {
	if x < 0 || y < 0 || x >= DisplayWidth || y >= DisplayHeight {
		return false
	}
	return e.display.pixels[y][x]
}

// DisplayVersion returns a counter that changes whenever the display buffer
// is modified.
func (e *Engine) DisplayVersion() uint64 {
	return e.display.version
}

// ReadMemory returns the byte at the address.
func (e *Engine) ReadMemory(address uint16) (byte, error) {
	return e.memory.read(address)
}

// Opcode returns the instruction word at the program counter.
func (e *Engine) Opcode() (uint16, error) {
	return e.memory.readWord(e.pc)
}

// Waiting returns whether execution is held by a load-vx-blocking-on-key
// instruction.
func (e *Engine) Waiting() bool {
	return e.waiting
}

// SoundActive returns whether the sound timer is running.
func (e *Engine) SoundActive() bool {
	return e.timers.sound > 0
}

// Cycles returns the number of instructions executed since the last reset.
func (e *Engine) Cycles() uint64 {
	return e.cycles
}
