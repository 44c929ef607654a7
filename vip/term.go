package vip

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/okto-vm/okto/chip8"
)

// padRunes is the terminal flavor of padKeys, keyed by the typed rune.
var padRunes = map[rune]byte{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xc,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xd,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xe,
	'z': 0xa, 'x': 0x0, 'c': 0xb, 'v': 0xf,
}

// keyHold is how long a terminal keypress is considered held.
// Terminals report only presses, never releases, so each press is
// released on a timer; holding a key down keeps refreshing it through
// the terminal's auto-repeat.
const keyHold = 150 * time.Millisecond

// Terminal renders r's screen into the terminal with tcell and feeds
// typed keys to its keypad. It blocks until Esc or Ctrl-C is pressed
// or exit is closed.
func Terminal(r *Runner, exit <-chan struct{}) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()
	s.HideCursor()

	events := make(chan tcell.Event)
	go func() {
		for {
			ev := s.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	var (
		frame = time.NewTicker(time.Second / 60)
		gen   = -1
		hold  *time.Timer
	)
	defer frame.Stop()

	press := func(pad byte) {
		r.Keypad.Press(pad)
		if hold != nil {
			hold.Stop()
		}
		hold = time.AfterFunc(keyHold, func() { r.Keypad.Release(pad) })
	}

	for {
		select {
		case <-exit:
			return nil

		case <-frame.C:
			if g := r.Screen.Gen(); g != gen {
				gen = g
				drawTerm(s, r.Screen)
			}

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch ev.Key() {
				case tcell.KeyEscape, tcell.KeyCtrlC:
					return nil
				case tcell.KeyRune:
					if pad, ok := padRunes[ev.Rune()]; ok {
						press(pad)
					}
				}
			case *tcell.EventResize:
				s.Sync()
				gen = -1
			}
		}
	}
}

// drawTerm renders the grid two rows per terminal line using the upper
// half block: the glyph's foreground is the top pixel, its background
// the bottom one.
func drawTerm(s tcell.Screen, scr *Screen) {
	px := scr.Rows()
	for cy := 0; cy < chip8.GridHeight/2; cy++ {
		for x := 0; x < chip8.GridWidth; x++ {
			st := tcell.StyleDefault.
				Foreground(termColor(px[2*cy][x])).
				Background(termColor(px[2*cy+1][x]))
			s.SetContent(x, cy, '▀', nil, st)
		}
	}
	s.Show()
}

func termColor(on bool) tcell.Color {
	if on {
		return tcell.ColorGreen
	}
	return tcell.ColorBlack
}
