package chip8

import (
	"errors"
	"fmt"
)

var (
	// ErrImageTooLarge is returned when an image would be written past the
	// end of its memory region.
	ErrImageTooLarge = errors.New("image too large")

	// ErrUnknownOpcode is returned when an opcode matches no instruction.
	ErrUnknownOpcode = errors.New("unknown opcode")

	// ErrStackOverflow is returned by a call with a full stack.
	ErrStackOverflow = errors.New("stack overflow")

	// ErrStackUnderflow is returned by a return with an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")

	// ErrDisplayOutOfBounds is returned when a sprite would be drawn outside
	// of the display in strict sprite mode.
	ErrDisplayOutOfBounds = errors.New("sprite outside of display")

	// ErrMemoryOutOfBounds is returned for memory accesses at or above
	// MemorySize.
	ErrMemoryOutOfBounds = errors.New("memory access out of bounds")

	// ErrInvalidKey is returned for key indexes outside of 0x0-0xF.
	ErrInvalidKey = errors.New("invalid key")
)

// LoadError describes a rejected image load. No memory was modified.
type LoadError struct {
	Base  uint16 // address the image was to be loaded at
	Size  int    // size of the image in bytes
	Limit int    // first address the image may not write to
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading %d bytes at $%03X with limit $%03X: %s", e.Size, e.Base, e.Limit, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ExecError describes a failed instruction. The program counter still
// points to the failing instruction.
type ExecError struct {
	PC     uint16
	Opcode uint16
	Err    error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("executing $%04X at $%03X: %s", e.Opcode, e.PC, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}
