package chip8

import "math/bits"

// keypad holds the state of the 16 keys. Transitions from released to
// pressed are latched in presses until they are consumed.
type keypad struct {
	state   [KeyCount]bool
	presses uint16
}

func (k *keypad) set(key uint8, pressed bool) error {
	if key >= KeyCount {
		return ErrInvalidKey
	}
	if pressed && !k.state[key] {
		k.presses |= 1 << key
	}
	k.state[key] = pressed
	return nil
}

// isPressed reports the state of the key addressed by the low nibble.
func (k *keypad) isPressed(key uint8) bool {
	return k.state[key&0x0F]
}

// takePress returns the lowest latched key press and clears the latch.
func (k *keypad) takePress() (uint8, bool) {
	if k.presses == 0 {
		return 0, false
	}
	key := uint8(bits.TrailingZeros16(k.presses))
	k.presses = 0
	return key, true
}

func (k *keypad) clearPresses() {
	k.presses = 0
}
