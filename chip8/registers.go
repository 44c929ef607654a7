package chip8

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Registers holds the CPU register file.
type Registers struct {
	PC uint16   // program counter
	I  uint16   // index register
	V  [16]byte // general purpose; V[0xF] doubles as the flag register

	DT byte // delay timer base value
	ST byte // sound timer; stored, never sounded

	Stack Stack

	dtSet time.Time // when DT was last written
}

func newRegisters() Registers {
	return Registers{PC: ProgramStart, dtSet: time.Now()}
}

// SetDelay stores the delay timer base value and resets its decay
// reference to now.
func (r *Registers) SetDelay(v byte) {
	r.DT = v
	r.dtSet = time.Now()
}

// Delay returns the current delay timer value. The timer has no tick
// thread; reads derive the value from the wall-clock time elapsed
// since the last SetDelay, one unit per 16ms (roughly 60Hz).
func (r *Registers) Delay() byte {
	ticks := time.Since(r.dtSet).Milliseconds() / 16
	if ticks >= int64(r.DT) {
		return 0
	}
	return r.DT - byte(ticks)
}

var (
	// ErrStackUnderflow reports a return with no call in flight. It is a
	// programming error in the running program and always fatal.
	ErrStackUnderflow = errors.New("return with empty call stack")
	// ErrStackOverflow reports call nesting deeper than the stack.
	ErrStackOverflow = errors.New("call stack overflow")
)

// Stack is the call stack: a fixed 16 slots of return addresses.
type Stack struct {
	addrs [16]uint16
	ptr   byte
}

// Push stores a return address.
func (s *Stack) Push(addr uint16) error {
	if int(s.ptr) == len(s.addrs) {
		return ErrStackOverflow
	}
	s.addrs[s.ptr] = addr
	s.ptr++
	return nil
}

// Pop removes and returns the most recent return address.
func (s *Stack) Pop() (uint16, error) {
	if s.ptr == 0 {
		return 0, ErrStackUnderflow
	}
	s.ptr--
	return s.addrs[s.ptr], nil
}

// Depth returns the number of return addresses on the stack.
func (s *Stack) Depth() int { return int(s.ptr) }

func (s Stack) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for _, a := range s.addrs[:s.ptr] {
		fmt.Fprintf(&b, " %.3x", a)
	}
	b.WriteString(" )")
	return b.String()
}
