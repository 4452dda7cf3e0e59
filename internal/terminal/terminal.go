// Package terminal implements a frontend that renders the display into a
// terminal in raw mode and reads keypad input from it.
package terminal

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/pkg/term/termios"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/runner"
	"golang.org/x/sys/unix"
)

// DefaultHold is the time a key stays pressed after it was typed. Terminals
// do not report key releases, held keys are kept pressed by auto repeat.
const DefaultHold = 150 * time.Millisecond

var _ runner.Frontend = (*Terminal)(nil)

// keyHold is the pending release of a pressed key.
type keyHold struct {
	timer *time.Timer
}

// Terminal is a raw mode terminal frontend.
type Terminal struct {
	input  *os.File
	output *os.File
	hold   time.Duration

	canAttr unix.Termios
	rawAttr unix.Termios

	events chan runner.KeyEvent
	done   chan struct{}

	// mu protects the fields below that are accessed from the input reader,
	// key release timers and the signal handler.
	mu       sync.Mutex
	releases map[uint8]*keyHold
	geometry unix.Winsize
	resized  bool
}

// New returns a terminal frontend for the given files.
func New(input, output *os.File) *Terminal {
	t := newTerminal(DefaultHold)
	t.input = input
	t.output = output
	return t
}

func newTerminal(hold time.Duration) *Terminal {
	return &Terminal{
		hold:     hold,
		events:   make(chan runner.KeyEvent, 32),
		done:     make(chan struct{}),
		releases: make(map[uint8]*keyHold),
	}
}

// Start switches the terminal into raw mode and starts reading input.
func (t *Terminal) Start() error {
	if t.input == nil || t.output == nil {
		return fmt.Errorf("terminal requires an input and an output file")
	}

	if err := termios.Tcgetattr(t.input.Fd(), &t.canAttr); err != nil {
		return fmt.Errorf("reading terminal attributes: %w", err)
	}
	t.rawAttr = t.canAttr
	termios.Cfmakeraw(&t.rawAttr)
	if err := termios.Tcsetattr(t.input.Fd(), termios.TCIFLUSH, &t.rawAttr); err != nil {
		return fmt.Errorf("setting raw mode: %w", err)
	}

	_ = t.updateGeometry()
	t.print(hideCursor + clearScreen)

	go t.handleResize()
	go t.readInput()
	return nil
}

// Close restores the terminal state. Pending key releases are discarded.
func (t *Terminal) Close() error {
	close(t.done)

	t.mu.Lock()
	for key, hold := range t.releases {
		hold.timer.Stop()
		delete(t.releases, key)
	}
	t.mu.Unlock()

	t.print(showCursor + lineEnding)
	if err := termios.Tcsetattr(t.input.Fd(), termios.TCIFLUSH, &t.canAttr); err != nil {
		return fmt.Errorf("restoring terminal mode: %w", err)
	}
	return nil
}

// Events returns the channel of key events.
func (t *Terminal) Events() <-chan runner.KeyEvent {
	return t.events
}

// Present draws the framebuffer centred into the terminal.
func (t *Terminal) Present(fb chip8.Framebuffer) error {
	t.mu.Lock()
	columns := t.geometry.Col
	prefix := cursorHome
	if t.resized {
		prefix = clearScreen + cursorHome
		t.resized = false
	}
	t.mu.Unlock()

	if _, err := t.output.WriteString(prefix + Render(fb, indentFor(columns))); err != nil {
		return fmt.Errorf("writing to terminal: %w", err)
	}
	return nil
}

// Sound rings the terminal bell when the sound timer starts.
func (t *Terminal) Sound(active bool) {
	if active {
		t.print("\a")
	}
}

func (t *Terminal) print(s string) {
	_, _ = t.output.WriteString(s)
}

func (t *Terminal) updateGeometry() error {
	ws, err := unix.IoctlGetWinsize(int(t.output.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return fmt.Errorf("reading terminal geometry: %w", err)
	}

	t.mu.Lock()
	t.geometry = *ws
	t.resized = true
	t.mu.Unlock()
	return nil
}

func (t *Terminal) handleResize() {
	sigwinch := make(chan os.Signal, 1)
	signal.Notify(sigwinch, syscall.SIGWINCH)
	defer signal.Stop(sigwinch)

	for {
		select {
		case <-sigwinch:
			_ = t.updateGeometry()
		case <-t.done:
			return
		}
	}
}

// readInput forwards typed characters until reading fails. A blocked read
// is not interrupted by Close, the goroutine ends with the process.
func (t *Terminal) readInput() {
	buf := make([]byte, 16)
	for {
		n, err := t.input.Read(buf)
		if err != nil {
			t.send(runner.KeyEvent{Quit: true})
			return
		}
		t.handleInput(buf[:n])
	}
}

// handleInput converts a chunk of typed characters to key events. Escape
// and Ctrl-C request to quit, other escape sequences like cursor keys are
// ignored.
func (t *Terminal) handleInput(data []byte) {
	for i, b := range data {
		switch b {
		case keyCtrlC:
			t.send(runner.KeyEvent{Quit: true})
			return

		case keyEsc:
			if i+1 < len(data) && data[i+1] == '[' {
				return
			}
			t.send(runner.KeyEvent{Quit: true})
			return
		}

		if key, ok := KeyFor(b); ok {
			t.press(key)
		}
	}
}

// press reports a key press and schedules its release. Repeated presses of
// a held key extend the hold.
func (t *Terminal) press(key uint8) {
	t.mu.Lock()
	if hold, ok := t.releases[key]; ok && hold.timer.Stop() {
		hold.timer.Reset(t.hold)
		t.mu.Unlock()
		return
	}

	hold := &keyHold{}
	hold.timer = time.AfterFunc(t.hold, func() {
		t.release(key, hold)
	})
	t.releases[key] = hold
	t.mu.Unlock()

	t.send(runner.KeyEvent{Key: key, Pressed: true})
}

func (t *Terminal) release(key uint8, hold *keyHold) {
	t.mu.Lock()
	if t.releases[key] != hold {
		t.mu.Unlock()
		return // superseded by a newer press
	}
	delete(t.releases, key)
	t.mu.Unlock()

	t.send(runner.KeyEvent{Key: key})
}

func (t *Terminal) send(event runner.KeyEvent) {
	select {
	case t.events <- event:
	case <-t.done:
	}
}
