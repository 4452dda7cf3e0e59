// Package chip8 implements the CHIP-8 instruction execution engine.
//
// # Machine Model
//
// The engine owns all machine state:
//   - 4KB of memory (0x000-0xFFF), the interpreter and font image lives
//     below ProgramStart, programs are loaded at ProgramStart
//   - 16 general-purpose 8-bit registers V0-VF, VF doubles as the
//     carry, borrow and collision flag
//   - the 16-bit address register I and program counter PC
//   - a 16 entry call stack addressed by the stack pointer SP
//   - the delay and sound timers
//   - a 64x32 monochrome display buffer
//   - the state of the 16 key hexadecimal keypad
//
// # Execution
//
// Step executes exactly one instruction. TickTimers decrements both timers
// and is expected to be called at 60Hz, independent of the Step rate.
// Instruction failures are returned as *ExecError values that wrap one of
// the Err sentinel errors; the engine never retries or skips on its own.
//
// The engine is not safe for concurrent use. Key state updates have to be
// applied between Step calls from the goroutine that drives the engine.
//
// # Usage Example
//
//	engine, err := chip8.New(chip8.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	if err := engine.LoadROM(rom); err != nil {
//		return fmt.Errorf("loading rom: %w", err)
//	}
//	for {
//		if err := engine.Step(); err != nil {
//			return err
//		}
//	}
package chip8
