package vip

import (
	"image"
	"image/color"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/draw"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/okto-vm/okto/chip8"
)

// Phosphor-ish palette.
var (
	guiOn  = color.RGBA{0x9b, 0xd6, 0x3e, 0xff}
	guiOff = color.RGBA{0x10, 0x18, 0x08, 0xff}
)

// padKeys maps the left-hand block of a QWERTY keyboard onto the hex
// keypad, preserving its physical layout:
//
//	1 2 3 4        1 2 3 C
//	Q W E R   ->   4 5 6 D
//	A S D F        7 8 9 E
//	Z X C V        A 0 B F
var padKeys = map[key.Code]byte{
	key.Code1: 0x1, key.Code2: 0x2, key.Code3: 0x3, key.Code4: 0xc,
	key.CodeQ: 0x4, key.CodeW: 0x5, key.CodeE: 0x6, key.CodeR: 0xd,
	key.CodeA: 0x7, key.CodeS: 0x8, key.CodeD: 0x9, key.CodeF: 0xe,
	key.CodeZ: 0xa, key.CodeX: 0x0, key.CodeC: 0xb, key.CodeV: 0xf,
}

// GUI opens a window rendering r's screen and feeding its keypad, and
// blocks until the window is closed or exit is closed. Each grid cell
// is drawn scale pixels square.
func GUI(r *Runner, exit <-chan struct{}, scale int) error {
	var guiErr error
	driver.Main(func(s screen.Screen) {
		guiErr = guiMain(s, r, exit, scale)
	})
	return guiErr
}

func guiMain(s screen.Screen, r *Runner, exit <-chan struct{}, scale int) error {
	winSize := image.Point{chip8.GridWidth * scale, chip8.GridHeight * scale}
	w, err := s.NewWindow(&screen.NewWindowOptions{
		Title:  "okto",
		Width:  winSize.X,
		Height: winSize.Y,
	})
	if err != nil {
		return err
	}
	defer w.Release()

	buf, err := s.NewBuffer(winSize)
	if err != nil {
		return err
	}
	defer buf.Release()
	tex, err := s.NewTexture(winSize)
	if err != nil {
		return err
	}
	defer tex.Release()

	type update struct{}
	go func() {
		t := time.NewTicker(time.Second / 60)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				w.Send(update{})
			case <-exit:
				w.Send(lifecycle.Event{To: lifecycle.StageDead})
				return
			}
		}
	}()

	var (
		sz  size.Event
		gen = -1
	)
	render := func(force bool) {
		g := r.Screen.Gen()
		if !force && g == gen {
			return
		}
		gen = g
		frame := r.Screen.Image(guiOn, guiOff)
		draw.NearestNeighbor.Scale(buf.RGBA(), buf.Bounds(), frame, frame.Bounds(), draw.Src, nil)
		tex.Upload(image.Point{}, buf, buf.Bounds())
		w.Scale(sz.Bounds(), tex, tex.Bounds(), draw.Src, nil)
		w.Publish()
	}

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return nil
			}

		case size.Event:
			sz = e
			if sz.WidthPx+sz.HeightPx == 0 {
				return nil
			}

		case key.Event:
			if e.Code == key.CodeEscape {
				return nil
			}
			pad, ok := padKeys[e.Code]
			if !ok {
				break
			}
			switch e.Direction {
			case key.DirPress:
				r.Keypad.Press(pad)
			case key.DirRelease:
				r.Keypad.Release(pad)
			}

		case update:
			render(false)

		case paint.Event:
			render(true)

		case error:
			return e
		}
	}
}
