package main

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/okto-vm/okto/chip8"
	"github.com/okto-vm/okto/vip"
)

// debugView is the debugger UI: a log pane, a memory watch pane, a
// machine state bar, and a command input. Commands:
//
//	p, pause      stop the machine before the next instruction
//	s, step       execute a single instruction
//	c, cont       resume execution
//	w, watch ADDR watch a memory address (hex)
//	exit          quit the debugger
type debugView struct {
	r *vip.Runner

	log   *tview.TextView
	watch *tview.TextView
	state *tview.TextView
	input *tview.InputField
	cols  *tview.Flex
	rows  *tview.Flex
	app   *tview.Application

	mu      sync.Mutex
	watches []uint16
}

func newDebugView() *debugView {
	d := &debugView{
		log: tview.NewTextView().
			SetMaxLines(1000),
		watch: tview.NewTextView().
			SetWrap(false).
			SetTextAlign(tview.AlignRight),
		state: tview.NewTextView().
			SetWrap(false),
		input: tview.NewInputField(),
		cols:  tview.NewFlex(),
		rows: tview.NewFlex().
			SetDirection(tview.FlexRow),
		app: tview.NewApplication(),
	}
	d.log.SetChangedFunc(func() { d.app.Draw() })
	d.watch.SetBackgroundColor(tcell.ColorDarkBlue)
	d.state.SetBackgroundColor(tcell.ColorDarkGrey)
	d.cols.
		AddItem(d.watch, 0, 1, false).
		AddItem(d.log, 0, 2, false)
	d.rows.
		AddItem(d.cols, 0, 1, false).
		AddItem(d.state, 4, 0, false).
		AddItem(d.input, 1, 0, true)
	d.app.SetRoot(d.rows, true)

	d.input.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		cmd := d.input.GetText()
		if cmd == "" {
			return
		}
		d.input.SetText("")
		d.command(cmd)
	})
	return d
}

func (d *debugView) Run() error { return d.app.Run() }

func (d *debugView) command(cmd string) {
	if cmd == "exit" {
		d.app.Stop()
		return
	}
	if cmd, arg, ok := strings.Cut(cmd, " "); ok {
		switch cmd {
		case "w", "watch":
			addr, err := strconv.ParseUint(arg, 16, 12)
			if err != nil {
				fmt.Fprintf(d.log, "invalid address %q\n", arg)
				return
			}
			d.mu.Lock()
			d.watches = append(d.watches, uint16(addr))
			d.mu.Unlock()
			fmt.Fprintf(d.log, "watching 0x%03x\n", addr)
			return
		}
	}
	d.r.Debug(cmd)
}

// StateFunc renders machine state reports. It is called from the
// machine goroutine, so all UI work is queued onto the tview loop.
func (d *debugView) StateFunc(m *chip8.Machine, k vip.StateKind) {
	var (
		watch = d.watchContent(m)
		state = stateMsg(m, k)
	)
	d.app.QueueUpdateDraw(func() {
		switch k {
		case vip.RunState:
			d.state.SetTextColor(tcell.ColorBlack)
			d.state.SetBackgroundColor(tcell.ColorDarkGrey)
		case vip.PauseState:
			d.state.SetTextColor(tcell.ColorWhite)
			d.state.SetBackgroundColor(tcell.ColorDarkBlue)
		case vip.HaltState:
			d.state.SetTextColor(tcell.ColorWhite)
			d.state.SetBackgroundColor(tcell.ColorDarkRed)
		}
		d.watch.SetText(watch)
		d.state.SetText(state)
	})
}

func stateMsg(m *chip8.Machine, k vip.StateKind) string {
	kind := "       "
	switch k {
	case vip.PauseState:
		kind = "[pause]"
	case vip.HaltState:
		kind = "[HALT!]"
	}
	var dis string
	if w, err := m.Mem.Word(m.Reg.PC); err == nil {
		dis = chip8.Disassemble(chip8.Opcode(w))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "0x%03x %s %s\n", m.Reg.PC, kind, dis)
	fmt.Fprintf(&b, "I: 0x%03x  DT: %3d  ST: %3d  stack: %s\n",
		m.Reg.I, m.Reg.Delay(), m.Reg.ST, m.Reg.Stack.String())
	for i, v := range m.Reg.V {
		if i > 0 {
			if i%8 == 0 {
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
		}
		fmt.Fprintf(&b, "V%X:%02x", i, v)
	}
	return b.String()
}

func (d *debugView) watchContent(m *chip8.Machine) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	var b strings.Builder
	for _, addr := range d.watches {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		v, err := m.Mem.Byte(addr)
		if err != nil {
			fmt.Fprintf(&b, "[0x%03x] ??", addr)
			continue
		}
		fmt.Fprintf(&b, "[0x%03x] %02x", addr, v)
	}
	return b.String()
}
