package chip8

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestStack(t *testing.T) {
	var s Stack
	assert.Equal(t, 0, s.Depth())

	assert.NoError(t, s.Push(0x200))
	assert.NoError(t, s.Push(0x344))
	assert.Equal(t, 2, s.Depth())

	addr, err := s.Pop()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x344), addr)
	addr, err = s.Pop()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x200), addr)

	_, err = s.Pop()
	assert.True(t, errors.Is(err, ErrStackUnderflow))
}

func TestStackOverflow(t *testing.T) {
	var s Stack
	for i := 0; i < 16; i++ {
		assert.NoError(t, s.Push(uint16(0x200 + i)))
	}
	assert.True(t, errors.Is(s.Push(0x300), ErrStackOverflow))
}

func TestStackString(t *testing.T) {
	var s Stack
	assert.Equal(t, "( )", s.String())
	assert.NoError(t, s.Push(0x200))
	assert.NoError(t, s.Push(0x344))
	assert.Equal(t, "( 200 344 )", s.String())
}
