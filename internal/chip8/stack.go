package chip8

// stack is the call stack. A push increments sp and then writes, a pop
// reads and then decrements sp, so entry 0 is never used for a return
// address and the stack nests StackSize-1 calls deep.
type stack struct {
	entries [StackSize]uint16
	sp      uint8
}

func (s *stack) push(address uint16) error {
	if int(s.sp) >= StackSize-1 {
		return ErrStackOverflow
	}
	s.sp++
	s.entries[s.sp] = address
	return nil
}

func (s *stack) pop() (uint16, error) {
	if s.sp == 0 {
		return 0, ErrStackUnderflow
	}
	address := s.entries[s.sp]
	s.sp--
	return address, nil
}

func (s *stack) reset() {
	*s = stack{}
}

// StackSnapshot is a copy of the call stack.
type StackSnapshot struct {
	Entries [StackSize]uint16
	SP      uint8
}

// Frames returns the active return addresses, the most recent call last.
func (s StackSnapshot) Frames() []uint16 {
	frames := make([]uint16, 0, s.SP)
	for i := 1; i <= int(s.SP) && i < StackSize; i++ {
		frames = append(frames, s.Entries[i])
	}
	return frames
}
