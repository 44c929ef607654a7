// Package chip8 implements a CHIP-8 virtual machine: a fetch, decode,
// execute loop over a 4KB memory, a small register file, a 64×32
// monochrome pixel grid and a 16-key pad. The display and keyboard are
// capabilities supplied by the caller; everything else is owned by the
// Machine.
package chip8

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// Grid dimensions of the framebuffer the Drw instruction composites
// into. The machine wraps coordinates before touching the Display.
const (
	GridWidth  = 64
	GridHeight = 32
)

// WordSize is the size of one instruction word in bytes.
const WordSize = 2

// DefaultIPS approximates the instruction rate of the COSMAC VIP.
const DefaultIPS = 450

// Display is the output surface the machine draws into. Coordinates
// are always within the grid.
type Display interface {
	Clear()
	SetPixel(x, y int, on bool)
	Pixel(x, y int) bool
	Present()
}

// Keyboard reports the single currently pressed pad key, if any.
// Implementations must only change the key between machine cycles.
type Keyboard interface {
	Pressed() (key byte, ok bool)
	ClearPressed()
}

// Machine owns all interpreter state for its lifetime. It is single
// threaded: the run loop is the sole mutator, and Display and Keyboard
// calls return before the next instruction proceeds.
type Machine struct {
	Mem Memory
	Reg Registers

	// Trace, if set, is called with the program counter and the raw
	// instruction word before each cycle. It may block; the machine
	// waits.
	Trace func(pc uint16, o Opcode)

	disp Display
	keys Keyboard
	rand *rand.Rand
	ips  int
}

// New returns a machine with the font table installed and PC at
// ProgramStart, ready to Load a program.
func New(disp Display, keys Keyboard) *Machine {
	return &Machine{
		Mem:  newMemory(),
		Reg:  newRegisters(),
		disp: disp,
		keys: keys,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
		ips:  DefaultIPS,
	}
}

// SetSpeed sets the target instruction rate for Run.
func (m *Machine) SetSpeed(ips int) {
	if ips > 0 {
		m.ips = ips
	}
}

// Load copies the program image into memory at ProgramStart.
func (m *Machine) Load(program []byte) error {
	return m.Mem.Load(program)
}

// FaultError is returned by Run and Step when execution cannot
// continue: an undecodable opcode, a memory access outside the store,
// or a call stack violation.
type FaultError struct {
	PC     uint16
	Opcode Opcode
	Err    error
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("%v at 0x%04x (opcode 0x%04x)", e.Err, e.PC, uint16(e.Opcode))
}

func (e *FaultError) Unwrap() error { return e.Err }

// Step runs a single fetch, decode, execute cycle.
func (m *Machine) Step() error {
	pc := m.Reg.PC
	w, err := m.Mem.Word(pc)
	if err != nil {
		return &FaultError{PC: pc, Err: err}
	}
	o := Opcode(w)
	if m.Trace != nil {
		m.Trace(pc, o)
	}
	op, err := o.Decode()
	if err != nil {
		return &FaultError{PC: pc, Opcode: o, Err: err}
	}
	if err := m.exec(op, o); err != nil {
		return &FaultError{PC: pc, Opcode: o, Err: err}
	}
	return nil
}

// Run executes instructions until ctx is cancelled or a fault occurs,
// pacing every cycle to the target instruction rate. Cancellation is
// observed once per cycle.
func (m *Machine) Run(ctx context.Context) error {
	tick := time.NewTicker(time.Second / time.Duration(m.ips))
	defer tick.Stop()
	for {
		if err := m.Step(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
		}
	}
}
