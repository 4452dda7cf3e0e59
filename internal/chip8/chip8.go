package chip8

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/retroenv/retrogolib/log"
)

// Engine is a CHIP-8 interpreter instance.
type Engine struct {
	logger *log.Logger
	rand   *rand.Rand

	font                   []byte
	spriteMode             SpriteMode
	exclusiveBlockTransfer bool

	memory  memory
	v       [RegisterCount]uint8
	i       uint16
	pc      uint16
	stack   stack
	timers  timers
	display display
	keypad  keypad

	waiting bool   // a load-vx-blocking-on-key instruction holds the pc
	cycles  uint64 // successfully executed instructions since reset
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithRand sets the random source used by the random-and-mask instruction.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) {
		e.rand = r
	}
}

// WithSpriteMode sets how sprites that cross the display edge are drawn.
func WithSpriteMode(mode SpriteMode) Option {
	return func(e *Engine) {
		e.spriteMode = mode
	}
}

// WithFont replaces the built-in font with an interpreter image that is
// loaded at FontStart on every reset.
func WithFont(image []byte) Option {
	return func(e *Engine) {
		e.font = image
	}
}

// WithExclusiveBlockTransfer makes Fx55 and Fx65 transfer V0 up to but not
// including Vx, matching interpreters that implemented the loop that way.
func WithExclusiveBlockTransfer(exclusive bool) Option {
	return func(e *Engine) {
		e.exclusiveBlockTransfer = exclusive
	}
}

// New returns a new engine in reset state.
func New(options ...Option) (*Engine, error) {
	e := &Engine{
		font: defaultFont,
	}
	for _, option := range options {
		option(e)
	}

	if e.logger == nil {
		e.logger = log.NewWithConfig(log.DefaultConfig())
	}
	if e.rand == nil {
		e.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if _, ok := spriteModeNames[e.spriteMode]; !ok {
		return nil, fmt.Errorf("unsupported sprite mode %d", int(e.spriteMode))
	}
	if len(e.font) > ProgramStart-FontStart {
		return nil, &LoadError{
			Base:  FontStart,
			Size:  len(e.font),
			Limit: ProgramStart,
			Err:   ErrImageTooLarge,
		}
	}

	e.Reset()
	return e, nil
}

// Reset reinitializes all machine state in place and reloads the
// interpreter image. Key states are owned by the host and kept.
func (e *Engine) Reset() {
	e.memory.clear()
	copy(e.memory[FontStart:], e.font)

	e.v = [RegisterCount]uint8{}
	e.i = 0
	e.pc = ProgramStart
	e.stack.reset()
	e.timers.reset()
	e.display.clear()
	e.keypad.clearPresses()
	e.waiting = false
	e.cycles = 0
}

// LoadImage copies the image into memory starting at base without clearing
// memory first. Images that would extend past the end of memory are
// rejected without writing anything.
func (e *Engine) LoadImage(image []byte, base uint16) error {
	return e.memory.load(image, base, MemorySize)
}

// LoadROM loads a program image at ProgramStart.
func (e *Engine) LoadROM(image []byte) error {
	return e.LoadImage(image, ProgramStart)
}

// LoadFont loads an interpreter image at FontStart. The image has to fit
// below ProgramStart and replaces the font that Reset reloads.
func (e *Engine) LoadFont(image []byte) error {
	if err := e.memory.load(image, FontStart, ProgramStart); err != nil {
		return err
	}
	e.font = append([]byte(nil), image...)
	return nil
}

// Step executes exactly one instruction. On error the machine state is
// unchanged and the program counter points to the failing instruction.
func (e *Engine) Step() error {
	pc := e.pc
	word, err := e.memory.readWord(pc)
	if err != nil {
		return &ExecError{PC: pc, Err: err}
	}

	op := opcode(word)
	exec, ok := decode(op)
	if !ok {
		return &ExecError{PC: pc, Opcode: word, Err: ErrUnknownOpcode}
	}

	if err := exec(e, op); err != nil {
		return &ExecError{PC: pc, Opcode: word, Err: err}
	}
	e.cycles++
	return nil
}

// Skip advances the program counter past the current instruction without
// executing it. Hosts can use it to continue after an unknown opcode.
func (e *Engine) Skip() {
	e.waiting = false
	e.next()
}

// TickTimers decrements the delay and sound timers once.
func (e *Engine) TickTimers() {
	e.timers.tick()
}

// SetKey sets the state of a keypad key.
func (e *Engine) SetKey(key uint8, pressed bool) error {
	if err := e.keypad.set(key, pressed); err != nil {
		return fmt.Errorf("setting key %d: %w", key, err)
	}
	return nil
}

// Key returns whether a keypad key is pressed.
func (e *Engine) Key(key uint8) bool {
	return e.keypad.isPressed(key)
}
