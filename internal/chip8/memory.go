package chip8

// memory is the 4KB address space of the machine.
type memory [MemorySize]byte

// checkRange returns an error if length bytes starting at address do not fit
// into memory.
func (m *memory) checkRange(address uint16, length int) error {
	if int(address)+length > MemorySize {
		return ErrMemoryOutOfBounds
	}
	return nil
}

func (m *memory) read(address uint16) (byte, error) {
	if err := m.checkRange(address, 1); err != nil {
		return 0, err
	}
	return m[address], nil
}

// readWord reads a big-endian 16-bit word.
func (m *memory) readWord(address uint16) (uint16, error) {
	if err := m.checkRange(address, opcodeSize); err != nil {
		return 0, err
	}
	return uint16(m[address])<<8 | uint16(m[address+1]), nil
}

// slice returns a view of length bytes starting at address.
func (m *memory) slice(address uint16, length int) ([]byte, error) {
	if err := m.checkRange(address, length); err != nil {
		return nil, err
	}
	return m[int(address) : int(address)+length], nil
}

// load copies the image to base. The image must end at or before limit,
// otherwise nothing is written.
func (m *memory) load(image []byte, base uint16, limit int) error {
	if int(base) > limit || int(base)+len(image) > limit {
		return &LoadError{
			Base:  base,
			Size:  len(image),
			Limit: limit,
			Err:   ErrImageTooLarge,
		}
	}
	copy(m[base:], image)
	return nil
}

func (m *memory) clear() {
	*m = memory{}
}
