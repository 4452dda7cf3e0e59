package chip8

// timers are the delay and sound countdown timers.
type timers struct {
	delay uint8
	sound uint8
}

// tick decrements both timers, stopping at zero.
func (t *timers) tick() {
	if t.delay > 0 {
		t.delay--
	}
	if t.sound > 0 {
		t.sound--
	}
}

func (t *timers) reset() {
	*t = timers{}
}
