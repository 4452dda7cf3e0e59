package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// KeyEvent is a keypad state change reported by a frontend.
type KeyEvent struct {
	Key     uint8
	Pressed bool
	Quit    bool // the user asked to stop the interpreter
}

// Frontend presents the machine output and reports key events.
type Frontend interface {
	Events() <-chan KeyEvent
	Present(fb chip8.Framebuffer) error
	Sound(active bool)
}

// Runner executes a loaded ROM on an engine.
type Runner struct {
	logger *log.Logger
	opts   options.Program
	engine *chip8.Engine
}

// New creates an engine configured by the options and loads the images.
func New(logger *log.Logger, opts options.Program, images *loader.Images) (*Runner, error) {
	engineOptions, err := config.CreateEngineOptions(logger, opts)
	if err != nil {
		return nil, err
	}

	engine, err := chip8.New(engineOptions...)
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}
	if err := images.Apply(engine); err != nil {
		return nil, err
	}

	return &Runner{
		logger: logger,
		opts:   opts,
		engine: engine,
	}, nil
}

// Engine returns the engine that the runner executes.
func (r *Runner) Engine() *chip8.Engine {
	return r.engine
}

// Run executes the ROM paced at the configured instruction rate and ticks
// the timers at 60 Hz. Engine access happens only on the calling goroutine.
// It returns nil when the frontend requests to quit or the cycle limit is
// reached.
func (r *Runner) Run(ctx context.Context, frontend Frontend) error {
	cpuTicker := time.NewTicker(time.Second / time.Duration(r.opts.Hz))
	defer cpuTicker.Stop()
	timerTicker := time.NewTicker(time.Second / options.TimerHz)
	defer timerTicker.Stop()

	events := frontend.Events()
	version := r.engine.DisplayVersion()
	if err := frontend.Present(r.engine.Display()); err != nil {
		return fmt.Errorf("presenting display: %w", err)
	}
	sound := false

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-events:
			if !ok || event.Quit {
				r.logger.Debug("Frontend requested quit", log.Int("cycles", int(r.engine.Cycles())))
				return nil
			}
			if err := r.engine.SetKey(event.Key, event.Pressed); err != nil {
				r.logger.Warn("Ignoring key event", log.Err(err))
			}

		case <-cpuTicker.C:
			if r.limitReached() {
				return nil
			}
			if err := r.step(); err != nil {
				return err
			}

			if current := r.engine.DisplayVersion(); current != version {
				version = current
				if err := frontend.Present(r.engine.Display()); err != nil {
					return fmt.Errorf("presenting display: %w", err)
				}
			}

		case <-timerTicker.C:
			r.engine.TickTimers()
			if active := r.engine.SoundActive(); active != sound {
				sound = active
				frontend.Sound(active)
			}
		}
	}
}

// RunHeadless executes the configured number of instructions without
// pacing, ticking the timers every hz/60 instructions, and writes the final
// display and register state to the output. The state is written even if
// execution stopped on an error.
func (r *Runner) RunHeadless(ctx context.Context, output io.Writer) error {
	ticksEvery := max(uint64(r.opts.Hz/options.TimerHz), 1)

	var runErr error
	for n := uint64(0); !r.limitReached(); n++ {
		if n%ticksEvery == 0 && ctx.Err() != nil {
			runErr = ctx.Err()
			break
		}

		if err := r.step(); err != nil {
			runErr = err
			break
		}
		if (n+1)%ticksEvery == 0 {
			r.engine.TickTimers()
		}
	}

	if err := r.WriteReport(output); err != nil {
		return err
	}
	return runErr
}

// WriteReport writes the display, register and stack state to the output.
func (r *Runner) WriteReport(output io.Writer) error {
	report := disasm.DumpDisplay(r.engine.Display(), '#', '.') + "\n" +
		disasm.DumpRegisters(r.engine.Registers()) + "\n" +
		disasm.DumpStack(r.engine.Stack()) + "\n"
	if _, err := io.WriteString(output, report); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

func (r *Runner) limitReached() bool {
	return r.opts.Cycles > 0 && r.engine.Cycles() >= r.opts.Cycles
}

// step executes one instruction. Unknown opcodes are skipped unless the
// runner halts on errors, all other errors stop execution.
func (r *Runner) step() error {
	if r.opts.Trace && !r.engine.Waiting() {
		r.trace()
	}

	err := r.engine.Step()
	if err == nil {
		return nil
	}

	var execErr *chip8.ExecError
	if !r.opts.HaltOnError && errors.Is(err, chip8.ErrUnknownOpcode) && errors.As(err, &execErr) {
		r.logger.Warn("Skipping unknown opcode",
			log.Hex("pc", execErr.PC),
			log.Hex("opcode", execErr.Opcode))
		r.engine.Skip()
		return nil
	}

	r.logger.Debug("Machine state at error",
		log.String("registers", disasm.DumpRegisters(r.engine.Registers())),
		log.String("stack", disasm.DumpStack(r.engine.Stack())))
	return fmt.Errorf("executing instruction: %w", err)
}

func (r *Runner) trace() {
	pc := r.engine.Registers().PC
	word, err := r.engine.Opcode()
	if err != nil {
		return
	}
	r.logger.Debug("Executing", log.String("instruction", disasm.FormatAt(pc, word)))
}
