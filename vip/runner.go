package vip

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/retroenv/retrogolib/log"

	"github.com/okto-vm/okto/chip8"
)

// StateKind tells a StateFunc why the machine state is being reported.
type StateKind int

const (
	// RunState is a periodic report from a freely running machine.
	RunState StateKind = iota
	// PauseState reports a machine stopped by the debugger.
	PauseState
	// HaltState reports a machine stopped by a fault.
	HaltState
)

// StateFunc receives machine state snapshots from the Runner. It is
// called while the machine goroutine is blocked, so the callback may
// inspect memory and registers freely but must not retain m.
type StateFunc func(m *chip8.Machine, k StateKind)

// Config adjusts how a Runner drives the machine.
type Config struct {
	// IPS overrides the instruction rate when non-zero.
	IPS int
	// Dev keeps the Runner alive across faults so that a rebuilt
	// program can be swapped in.
	Dev bool
	// State, when set, enables the debugger hooks.
	State StateFunc
}

// Runner executes programs on a machine wired to its Screen and
// Keypad, and owns the machine's lifecycle: halting, live program
// swaps, and debugger control.
type Runner struct {
	Screen *Screen
	Keypad *Keypad

	logger *log.Logger
	cfg    Config

	cmds chan string
	swap chan []byte
	halt chan struct{}
	once sync.Once

	// Machine-goroutine state, touched only from the trace hook.
	paused     bool
	lastReport time.Time
}

func NewRunner(logger *log.Logger, cfg Config) *Runner {
	return &Runner{
		Screen: &Screen{},
		Keypad: &Keypad{},
		logger: logger,
		cfg:    cfg,
		cmds:   make(chan string),
		swap:   make(chan []byte),
		halt:   make(chan struct{}),
	}
}

// Halt stops the Runner. It is safe to call from any goroutine and
// more than once.
func (r *Runner) Halt() {
	r.once.Do(func() { close(r.halt) })
}

// Swap replaces the running program with rom, resetting the machine.
// It blocks until the Runner has picked the program up.
func (r *Runner) Swap(rom []byte) {
	select {
	case r.swap <- rom:
	case <-r.halt:
	}
}

// Debug delivers a debugger command to the machine goroutine. When the
// machine is wedged (halted in dev mode, mid-swap) the command is
// dropped after a beat rather than blocking the debugger UI.
func (r *Runner) Debug(cmd string) {
	select {
	case r.cmds <- cmd:
	case <-r.halt:
	case <-time.After(100 * time.Millisecond):
	}
}

// Run executes rom until Halt is called or, outside dev mode, the
// machine faults. In dev mode a fault parks the Runner until the next
// Swap delivers a fresh program.
func (r *Runner) Run(rom []byte) error {
	for {
		next, err := r.runOne(rom)
		if err != nil || next == nil {
			return err
		}
		rom = next
	}
}

// runOne drives a single machine until it is swapped out, halted, or
// faults. It returns the next program to run, or nil to stop.
func (r *Runner) runOne(rom []byte) ([]byte, error) {
	m := chip8.New(r.Screen, r.Keypad)
	if r.cfg.IPS > 0 {
		m.SetSpeed(r.cfg.IPS)
	}
	if err := m.Load(rom); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if r.cfg.State != nil {
		m.Trace = r.trace(m, ctx.Done())
	}

	execErr := make(chan error, 1)
	go func() { execErr <- m.Run(ctx) }()

	stop := func() {
		cancel()
		<-execErr
	}
	for {
		select {
		case next := <-r.swap:
			stop()
			return next, nil
		case <-r.halt:
			stop()
			return nil, nil
		case err := <-execErr:
			if errors.Is(err, context.Canceled) {
				return nil, nil
			}
			if !r.cfg.Dev {
				return nil, err
			}
			r.logger.Error("machine fault", log.Err(err))
			r.report(m, HaltState)
			// Park until a rebuilt program arrives.
			select {
			case next := <-r.swap:
				return next, nil
			case <-r.halt:
				return nil, nil
			}
		}
	}
}

func (r *Runner) report(m *chip8.Machine, k StateKind) {
	if r.cfg.State != nil {
		r.cfg.State(m, k)
	}
}

// trace returns the per-instruction hook for m. It runs on the machine
// goroutine: it applies pending debugger commands and, while paused,
// blocks execution until the debugger releases it. done unblocks the
// hook when the machine is being torn down, so a swap cannot deadlock
// against a paused machine.
func (r *Runner) trace(m *chip8.Machine, done <-chan struct{}) func(pc uint16, o chip8.Opcode) {
	return func(pc uint16, o chip8.Opcode) {
		for {
			select {
			case cmd := <-r.cmds:
				if r.apply(cmd) {
					return
				}
				continue
			default:
			}
			if !r.paused {
				if now := time.Now(); now.Sub(r.lastReport) > 100*time.Millisecond {
					r.lastReport = now
					r.report(m, RunState)
				}
				return
			}
			r.report(m, PauseState)
			for r.paused {
				select {
				case cmd := <-r.cmds:
					if r.apply(cmd) {
						return
					}
				case <-done:
					return
				}
			}
		}
	}
}

// apply handles one debugger command. It reports whether the machine
// should execute the pending instruction now.
func (r *Runner) apply(cmd string) bool {
	switch cmd {
	case "pause", "p":
		r.paused = true
	case "step", "s":
		return r.paused
	case "cont", "c":
		if r.paused {
			r.paused = false
			return true
		}
	default:
		r.logger.Error("unknown debug command", log.String("cmd", cmd))
	}
	return false
}
