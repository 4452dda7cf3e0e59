// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input string `flag:"i" usage:"input ROM file"`
	Font  string `flag:"font" usage:"interpreter image loaded below $200 instead of the built-in font"`
	Batch string `flag:"batch" usage:"run all files matching pattern headless (e.g. *.ch8)"`

	StatsViewAddr string `flag:"statsview-addr" usage:"listen address of the runtime statistics server"`
}

// Flags contains behavior options.
type Flags struct {
	Debug     bool `flag:"debug" usage:"enable debug logging"`
	Quiet     bool `flag:"q" usage:"quiet mode"`
	Trace     bool `flag:"trace" usage:"log every executed instruction, implies -debug"`
	Headless  bool `flag:"headless" usage:"run without terminal frontend and print the final state"`
	StatsView bool `flag:"statsview" usage:"start the runtime statistics server"`
	Force     bool `flag:"force" usage:"run files whose extension belongs to another system"`
}

// Emulation contains interpreter options.
type Emulation struct {
	Hz                     int    `flag:"hz" usage:"instructions executed per second" default:"700"`
	Cycles                 uint64 `flag:"cycles" usage:"instructions to execute in headless mode"`
	SpriteMode             string `flag:"sprite" usage:"sprite edge handling: wrap, clip, strict" default:"wrap"`
	ExclusiveBlockTransfer bool   `flag:"exclusive-block" usage:"Fx55/Fx65 transfer V0 up to but not including Vx"`
	HaltOnError            bool   `flag:"halt-on-error" usage:"stop on unknown opcodes instead of skipping them" default:"true"`
	Seed                   int64  `flag:"seed" usage:"random seed, 0 seeds from the current time"`
}

// Program options of the interpreter.
type Program struct {
	Parameters
	Flags
	Emulation
}

// New returns program options with the default values set.
func New() Program {
	return Program{
		Emulation: Emulation{
			Hz:          DefaultHz,
			SpriteMode:  "wrap",
			HaltOnError: true,
		},
	}
}

// Instruction rate limits.
const (
	DefaultHz = 700
	MaxHz     = 1_000_000
)

// TimerHz is the rate of the delay and sound timers.
const TimerHz = 60
