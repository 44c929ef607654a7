// Package vip provides the peripherals of the interpreter: the
// monochrome screen, the hex keypad, and the Runner that drives a
// machine against them. The package name nods to the COSMAC VIP, the
// home computer the interpreted language was designed for.
package vip

import (
	"image"
	"image/color"
	"sync"

	"github.com/okto-vm/okto/chip8"
)

// Screen is a 64x32 monochrome framebuffer. It is safe for concurrent
// use: the machine draws from its own goroutine while a frontend
// snapshots frames from another.
type Screen struct {
	mu  sync.Mutex
	px  [chip8.GridHeight][chip8.GridWidth]bool
	gen int // bumped on every Clear and Present
}

var _ chip8.Display = (*Screen)(nil)

func (s *Screen) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.px = [chip8.GridHeight][chip8.GridWidth]bool{}
	s.gen++
}

func (s *Screen) SetPixel(x, y int, on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.px[y][x] = on
}

func (s *Screen) Pixel(x, y int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.px[y][x]
}

func (s *Screen) Present() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
}

// Gen returns the frame generation counter. Frontends compare it
// against the last generation they rendered to skip unchanged frames.
func (s *Screen) Gen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// Rows returns a snapshot of the pixel grid.
func (s *Screen) Rows() [chip8.GridHeight][chip8.GridWidth]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.px
}

// Image renders the framebuffer into a new RGBA image at native
// resolution, one image pixel per grid cell.
func (s *Screen) Image(on, off color.RGBA) *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := image.NewRGBA(image.Rect(0, 0, chip8.GridWidth, chip8.GridHeight))
	for y := 0; y < chip8.GridHeight; y++ {
		for x := 0; x < chip8.GridWidth; x++ {
			if s.px[y][x] {
				m.SetRGBA(x, y, on)
			} else {
				m.SetRGBA(x, y, off)
			}
		}
	}
	return m
}
