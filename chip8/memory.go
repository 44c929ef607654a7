package chip8

import (
	"errors"
	"fmt"
)

// Memory layout.
const (
	MemSize      = 4096  // addressable bytes
	ProgramStart = 0x200 // first address of a loaded program
	glyphSize    = 5     // bytes per font glyph
)

var (
	// ErrOutOfBounds reports a memory access past the addressable range.
	ErrOutOfBounds = errors.New("memory access out of bounds")
	// ErrNoSpace reports a program too large for the program region.
	ErrNoSpace = errors.New("program too large for memory")
)

// Memory is the machine's flat byte store. The first 80 bytes hold the
// hexadecimal sprite font; programs live at ProgramStart and above.
type Memory struct {
	cells [MemSize]byte
}

// font is the built-in sprite table: one 5-row, 8-bit wide bitmap per
// hexadecimal digit.
var font = [16 * glyphSize]byte{
	0xf0, 0x90, 0x90, 0x90, 0xf0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xf0, 0x10, 0xf0, 0x80, 0xf0, // 2
	0xf0, 0x10, 0xf0, 0x10, 0xf0, // 3
	0x90, 0x90, 0xf0, 0x10, 0x10, // 4
	0xf0, 0x80, 0xf0, 0x10, 0xf0, // 5
	0xf0, 0x80, 0xf0, 0x90, 0xf0, // 6
	0xf0, 0x10, 0x20, 0x40, 0x40, // 7
	0xf0, 0x90, 0xf0, 0x90, 0xf0, // 8
	0xf0, 0x90, 0xf0, 0x10, 0xf0, // 9
	0xf0, 0x90, 0xf0, 0x90, 0x90, // A
	0xe0, 0x90, 0xe0, 0x90, 0xe0, // B
	0xf0, 0x80, 0x80, 0x80, 0xf0, // C
	0xe0, 0x90, 0x90, 0x90, 0xe0, // D
	0xf0, 0x80, 0xf0, 0x80, 0xf0, // E
	0xf0, 0x80, 0xf0, 0x80, 0x80, // F
}

func newMemory() Memory {
	var m Memory
	copy(m.cells[:], font[:])
	return m
}

// FontAddr returns the memory address of the sprite for a hexadecimal
// digit.
func FontAddr(digit byte) uint16 {
	return uint16(digit) * glyphSize
}

// Load copies a program image into memory starting at ProgramStart,
// leaving the font region untouched.
func (m *Memory) Load(program []byte) error {
	if len(program) > MemSize-ProgramStart {
		return fmt.Errorf("%w: %d bytes, %d available",
			ErrNoSpace, len(program), MemSize-ProgramStart)
	}
	copy(m.cells[ProgramStart:], program)
	return nil
}

// Byte returns the byte at addr.
func (m *Memory) Byte(addr uint16) (byte, error) {
	if int(addr) >= MemSize {
		return 0, fmt.Errorf("read %#04x: %w", addr, ErrOutOfBounds)
	}
	return m.cells[addr], nil
}

// SetByte stores v at addr.
func (m *Memory) SetByte(addr uint16, v byte) error {
	if int(addr) >= MemSize {
		return fmt.Errorf("write %#04x: %w", addr, ErrOutOfBounds)
	}
	m.cells[addr] = v
	return nil
}

// Word returns the big-endian instruction word at addr: the high byte
// at addr, the low byte at addr+1.
func (m *Memory) Word(addr uint16) (uint16, error) {
	if int(addr)+1 >= MemSize {
		return 0, fmt.Errorf("read word %#04x: %w", addr, ErrOutOfBounds)
	}
	return uint16(m.cells[addr])<<8 | uint16(m.cells[addr+1]), nil
}

// SetWord stores v at addr in big-endian order.
func (m *Memory) SetWord(addr uint16, v uint16) error {
	if int(addr)+1 >= MemSize {
		return fmt.Errorf("write word %#04x: %w", addr, ErrOutOfBounds)
	}
	m.cells[addr] = byte(v >> 8)
	m.cells[addr+1] = byte(v)
	return nil
}
