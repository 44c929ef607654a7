package vip

import (
	"sync"

	"github.com/okto-vm/okto/chip8"
)

// Keypad is the 16-key hex keypad. It tracks a single key at a time:
// pressing a key replaces whatever was held before, matching hardware
// that reported one keycode.
type Keypad struct {
	mu   sync.Mutex
	key  byte
	down bool
}

var _ chip8.Keyboard = (*Keypad)(nil)

// Press records key as held. Values above 0xf are not keypad keys and
// are ignored.
func (k *Keypad) Press(key byte) {
	if key > 0xf {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	k.key = key
	k.down = true
}

// Release clears the held key, but only if key is the one currently
// held; releasing a key that was already replaced has no effect.
func (k *Keypad) Release(key byte) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.down && k.key == key {
		k.down = false
	}
}

func (k *Keypad) Pressed() (byte, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.key, k.down
}

func (k *Keypad) ClearPressed() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.down = false
}
