package chip8

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"
)

func TestNew(t *testing.T) {
	m, _, _ := newTestMachine()
	assert.Equal(t, uint16(ProgramStart), m.Reg.PC)

	// The built-in font is in place.
	b, err := m.Mem.Byte(0)
	assert.NoError(t, err)
	assert.Equal(t, byte(0xf0), b)
}

func TestMachineLoad(t *testing.T) {
	m, _, _ := newTestMachine()
	assert.NoError(t, m.Load([]byte{0x12, 0x00}))
	o, err := m.Mem.Word(ProgramStart)
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x1200), o)
}

func TestMachineStepProgram(t *testing.T) {
	m, d, _ := newTestMachine()
	// Clear the screen, then jump back to the start.
	assert.NoError(t, m.Load([]byte{0x00, 0xe0, 0x12, 0x00}))

	assert.NoError(t, m.Step())
	assert.Equal(t, 1, d.clears)
	assert.Equal(t, uint16(0x202), m.Reg.PC)

	assert.NoError(t, m.Step())
	assert.Equal(t, uint16(0x200), m.Reg.PC)
}

func TestMachineStepUnknownOpcode(t *testing.T) {
	m, _, _ := newTestMachine()
	err := m.Step()
	assert.True(t, errors.Is(err, ErrUnknownOpcode))

	var fault *FaultError
	assert.True(t, errors.As(err, &fault))
	assert.Equal(t, uint16(ProgramStart), fault.PC)
}

func TestMachineTrace(t *testing.T) {
	m, _, _ := newTestMachine()
	assert.NoError(t, m.Load([]byte{0x63, 0xab}))

	var pc uint16
	var o Opcode
	m.Trace = func(tracePC uint16, traceOp Opcode) {
		pc, o = tracePC, traceOp
	}
	assert.NoError(t, m.Step())
	assert.Equal(t, uint16(ProgramStart), pc)
	assert.Equal(t, Opcode(0x63ab), o)
}

func TestMachineRunCancel(t *testing.T) {
	m, _, _ := newTestMachine()
	assert.NoError(t, m.Load([]byte{0x12, 0x00}))
	m.SetSpeed(10000)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestMachineRunFault(t *testing.T) {
	m, _, _ := newTestMachine()
	m.SetSpeed(10000)

	err := m.Run(context.Background())
	var fault *FaultError
	assert.True(t, errors.As(err, &fault))
	assert.Equal(t, uint16(ProgramStart), fault.PC)
}

func TestMachineFaultErrorFormat(t *testing.T) {
	err := &FaultError{PC: 0x234, Opcode: 0x8ab8, Err: ErrUnknownOpcode}
	assert.Equal(t, "unknown opcode at 0x0234 (opcode 0x8ab8)", err.Error())
}
