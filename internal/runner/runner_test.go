package runner

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func newTestRunner(t *testing.T, opts options.Program, rom ...byte) *Runner {
	t.Helper()

	r, err := New(log.NewTestLogger(t), opts, &loader.Images{ROM: rom})
	assert.NoError(t, err)
	return r
}

func headlessOptions(cycles uint64) options.Program {
	opts := options.New()
	opts.Headless = true
	opts.Cycles = cycles
	return opts
}

func TestRunHeadless(t *testing.T) {
	r := newTestRunner(t, headlessOptions(3), 0x60, 0x05, 0x61, 0x0A, 0x80, 0x14)

	var buf bytes.Buffer
	assert.NoError(t, r.RunHeadless(context.Background(), &buf))

	regs := r.Engine().Registers()
	assert.Equal(t, uint8(15), regs.V[0])
	assert.Equal(t, uint16(0x206), regs.PC)

	output := buf.String()
	assert.Contains(t, output, "V0=0F V1=0A")
	assert.Contains(t, output, "PC=$206")
	assert.Contains(t, output, "stack: empty")
}

func TestRunHeadless_TicksTimers(t *testing.T) {
	opts := headlessOptions(350)
	// ld V0, $3C; ld DT, V0; jp $204
	r := newTestRunner(t, opts, 0x60, 0x3C, 0xF0, 0x15, 0x12, 0x04)

	var buf bytes.Buffer
	assert.NoError(t, r.RunHeadless(context.Background(), &buf))

	// at 700 Hz the timers tick every 11 instructions
	assert.Equal(t, uint8(60-350/11), r.Engine().Registers().DT)
}

func TestRunHeadless_UnknownOpcode(t *testing.T) {
	rom := []byte{0xFF, 0xFF, 0x60, 0x01}

	t.Run("halt on error", func(t *testing.T) {
		r := newTestRunner(t, headlessOptions(2), rom...)

		var buf bytes.Buffer
		err := r.RunHeadless(context.Background(), &buf)
		assert.True(t, errors.Is(err, chip8.ErrUnknownOpcode))
		assert.Contains(t, buf.String(), "PC=$200", "state is reported on error")
	})

	t.Run("skip unknown opcode", func(t *testing.T) {
		opts := headlessOptions(1)
		opts.HaltOnError = false
		r := newTestRunner(t, opts, rom...)

		var buf bytes.Buffer
		assert.NoError(t, r.RunHeadless(context.Background(), &buf))
		assert.Equal(t, uint8(1), r.Engine().Registers().V[0])
	})
}

func TestRunHeadless_StackErrorHalts(t *testing.T) {
	opts := headlessOptions(10)
	opts.HaltOnError = false
	r := newTestRunner(t, opts, 0x00, 0xEE)

	var buf bytes.Buffer
	err := r.RunHeadless(context.Background(), &buf)
	assert.True(t, errors.Is(err, chip8.ErrStackUnderflow))
}

func TestRunHeadless_Cancelled(t *testing.T) {
	r := newTestRunner(t, headlessOptions(1000), 0x12, 0x00)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := r.RunHeadless(ctx, &buf)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, uint64(0), r.Engine().Cycles())
}

func TestRunHeadless_Trace(t *testing.T) {
	opts := headlessOptions(2)
	opts.Trace = true
	r := newTestRunner(t, opts, 0x60, 0x05, 0x12, 0x02)

	var buf bytes.Buffer
	assert.NoError(t, r.RunHeadless(context.Background(), &buf))
}

// fakeFrontend repeatedly sends its key events until a frame with the top
// left pixel set was presented, then it requests to quit.
type fakeFrontend struct {
	events   chan KeyEvent
	drawn    atomic.Bool
	presents int
	sound    []bool
}

func newFakeFrontend(ctx context.Context, keys ...KeyEvent) *fakeFrontend {
	f := &fakeFrontend{events: make(chan KeyEvent, 4)}

	go func() {
		for {
			events := keys
			if f.drawn.Load() {
				events = []KeyEvent{{Quit: true}}
			}
			for _, event := range events {
				select {
				case f.events <- event:
				case <-ctx.Done():
					return
				}
			}
			time.Sleep(time.Millisecond)
		}
	}()
	return f
}

func (f *fakeFrontend) Events() <-chan KeyEvent {
	return f.events
}

func (f *fakeFrontend) Present(fb chip8.Framebuffer) error {
	f.presents++
	if fb[0][0] {
		f.drawn.Store(true)
	}
	return nil
}

func (f *fakeFrontend) Sound(active bool) {
	f.sound = append(f.sound, active)
}

func TestRun(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.New()
	opts.Hz = 2000
	// ld I, $000; drw V0, V1, 5; jp $204
	r := newTestRunner(t, opts, 0xA0, 0x00, 0xD0, 0x15, 0x12, 0x04)
	frontend := newFakeFrontend(ctx)

	assert.NoError(t, r.Run(ctx, frontend))
	assert.Equal(t, 2, frontend.presents, "initial frame and the drawn sprite")
	assert.True(t, r.Engine().Pixel(0, 0))
}

func TestRun_KeyEvents(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.New()
	opts.Hz = 2000
	// ld V3, K; ld F, V3; drw V0, V1, 5; jp $206
	r := newTestRunner(t, opts, 0xF3, 0x0A, 0xF3, 0x29, 0xD0, 0x15, 0x12, 0x06)
	frontend := newFakeFrontend(ctx,
		KeyEvent{Key: 0x8, Pressed: true},
		KeyEvent{Key: 0x8, Pressed: false},
	)

	assert.NoError(t, r.Run(ctx, frontend))
	assert.Equal(t, uint8(0x8), r.Engine().Registers().V[3])
}

func TestRun_Sound(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.New()
	opts.Hz = 2000
	opts.Cycles = 400
	// ld V0, $02; ld ST, V0; jp $204
	r := newTestRunner(t, opts, 0x60, 0x02, 0xF0, 0x18, 0x12, 0x04)
	frontend := newFakeFrontend(ctx)

	assert.NoError(t, r.Run(ctx, frontend))
	assert.Equal(t, []bool{true, false}, frontend.sound)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	opts := options.New()
	r := newTestRunner(t, opts, 0x12, 0x00)
	frontend := newFakeFrontend(ctx)
	cancel()

	err := r.Run(ctx, frontend)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestProcessFile(t *testing.T) {
	dir := t.TempDir()
	rom := filepath.Join(dir, "test.ch8")
	assert.NoError(t, os.WriteFile(rom, []byte{0x60, 0x2A, 0x12, 0x02}, 0600))

	opts := headlessOptions(2)
	opts.Input = rom
	opts.Quiet = true

	var buf bytes.Buffer
	assert.NoError(t, ProcessFile(context.Background(), log.NewTestLogger(t), opts, nil, &buf))
	assert.Contains(t, buf.String(), "V0=2A")

	opts.Input = filepath.Join(dir, "missing.ch8")
	err := ProcessFile(context.Background(), log.NewTestLogger(t), opts, nil, &buf)
	assert.ErrorContains(t, err, "loading images")
}

func TestGetFilesToProcess(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.ch8", "b.ch8", "c.txt"} {
		assert.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte{0x00, 0xE0}, 0600))
	}

	opts := options.New()
	opts.Batch = filepath.Join(dir, "*.ch8")
	files, err := GetFilesToProcess(&opts)
	assert.NoError(t, err)
	assert.Len(t, files, 2)
	for _, file := range files {
		assert.True(t, strings.HasSuffix(file, ".ch8"))
	}

	opts = options.New()
	opts.Input = "rom.ch8"
	files, err = GetFilesToProcess(&opts)
	assert.NoError(t, err)
	assert.Equal(t, []string{"rom.ch8"}, files)
}

func TestProcessFile_OtherSystem(t *testing.T) {
	rom := filepath.Join(t.TempDir(), "game.nes")
	assert.NoError(t, os.WriteFile(rom, []byte{0x60, 0x2A, 0x12, 0x02}, 0600))

	opts := headlessOptions(2)
	opts.Input = rom
	opts.Quiet = true

	var buf bytes.Buffer
	err := ProcessFile(context.Background(), log.NewTestLogger(t), opts, nil, &buf)
	assert.True(t, errors.Is(err, ErrUnsupportedSystem))
	assert.Equal(t, "", buf.String())

	opts.Force = true
	assert.NoError(t, ProcessFile(context.Background(), log.NewTestLogger(t), opts, nil, &buf))
	assert.Contains(t, buf.String(), "V0=2A")
}
