package chip8

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestMemoryFont(t *testing.T) {
	m := newMemory()
	for i, want := range font {
		b, err := m.Byte(uint16(i))
		assert.NoError(t, err)
		assert.Equal(t, want, b)
	}
	// Glyph addresses step by the glyph size.
	assert.Equal(t, uint16(0), FontAddr(0))
	assert.Equal(t, uint16(25), FontAddr(5))
	assert.Equal(t, uint16(75), FontAddr(0xf))
}

func TestMemoryLoad(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"empty", 0, false},
		{"small", 2, false},
		{"exact fit", MemSize - ProgramStart, false},
		{"one over", MemSize - ProgramStart + 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMemory()
			program := make([]byte, tt.size)
			for i := range program {
				program[i] = byte(i + 1)
			}
			err := m.Load(program)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, ErrNoSpace))
				return
			}
			assert.NoError(t, err)
			for i := range program {
				b, err := m.Byte(ProgramStart + uint16(i))
				assert.NoError(t, err)
				assert.Equal(t, program[i], b)
			}
			// Font region untouched.
			b, err := m.Byte(0)
			assert.NoError(t, err)
			assert.Equal(t, font[0], b)
		})
	}
}

func TestMemoryByteBounds(t *testing.T) {
	m := newMemory()
	assert.NoError(t, m.SetByte(MemSize-1, 0xab))
	b, err := m.Byte(MemSize - 1)
	assert.NoError(t, err)
	assert.Equal(t, byte(0xab), b)

	_, err = m.Byte(MemSize)
	assert.True(t, errors.Is(err, ErrOutOfBounds))
	err = m.SetByte(MemSize, 1)
	assert.True(t, errors.Is(err, ErrOutOfBounds))
}

func TestMemoryWordRoundTrip(t *testing.T) {
	m := newMemory()
	assert.NoError(t, m.SetWord(0x300, 0x12ab))
	w, err := m.Word(0x300)
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x12ab), w)

	// Big-endian: high byte first.
	hi, _ := m.Byte(0x300)
	lo, _ := m.Byte(0x301)
	assert.Equal(t, byte(0x12), hi)
	assert.Equal(t, byte(0xab), lo)
}

func TestMemoryWordBounds(t *testing.T) {
	m := newMemory()
	assert.NoError(t, m.SetWord(MemSize-2, 0xffff))

	// A word needs two in-bound bytes.
	_, err := m.Word(MemSize - 1)
	assert.True(t, errors.Is(err, ErrOutOfBounds))
	err = m.SetWord(MemSize-1, 1)
	assert.True(t, errors.Is(err, ErrOutOfBounds))
}
