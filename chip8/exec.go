package chip8

// skip returns the PC increment for a conditional skip instruction.
func skip(cond bool) uint16 {
	if cond {
		return 2 * WordSize
	}
	return WordSize
}

func flag(cond bool) byte {
	if cond {
		return 1
	}
	return 0
}

// exec applies the semantic effect of one decoded instruction. Every
// instruction manages PC itself: a plain WordSize step, a doubled step
// for a satisfied skip, or an outright replacement for jumps, calls
// and returns.
//
// The borrow flag convention for Sub and Subn follows the machine this
// interpreter was modelled on: V[0xF] is 1 when the subtraction
// borrowed (the wrapped difference is negative as a signed byte), 0
// otherwise. This is the inverse of the commonly documented table;
// changing it breaks programs written against this machine.
func (m *Machine) exec(op Op, o Opcode) error {
	r := &m.Reg
	switch op {
	case Cls:
		m.disp.Clear()
		r.PC += WordSize
	case Ret:
		addr, err := r.Stack.Pop()
		if err != nil {
			return err
		}
		r.PC = addr
	case Jp:
		r.PC = o.NNN()
	case Call:
		if err := r.Stack.Push(r.PC + WordSize); err != nil {
			return err
		}
		r.PC = o.NNN()
	case SeByte:
		r.PC += skip(r.V[o.X()] == o.KK())
	case SneByte:
		r.PC += skip(r.V[o.X()] != o.KK())
	case SeReg:
		r.PC += skip(r.V[o.X()] == r.V[o.Y()])
	case LdByte:
		r.V[o.X()] = o.KK()
		r.PC += WordSize
	case AddByte:
		r.V[o.X()] += o.KK() // wrapping, no flag
		r.PC += WordSize
	case LdReg:
		r.V[o.X()] = r.V[o.Y()]
		r.PC += WordSize
	case Or:
		r.V[o.X()] |= r.V[o.Y()]
		r.PC += WordSize
	case And:
		r.V[o.X()] &= r.V[o.Y()]
		r.PC += WordSize
	case Xor:
		r.V[o.X()] ^= r.V[o.Y()]
		r.PC += WordSize
	case AddReg:
		sum := uint16(r.V[o.X()]) + uint16(r.V[o.Y()])
		r.V[o.X()] = byte(sum)
		r.V[0xF] = flag(sum > 0xff)
		r.PC += WordSize
	case Sub:
		diff := int8(r.V[o.X()] - r.V[o.Y()])
		r.V[o.X()] = byte(diff)
		r.V[0xF] = flag(diff < 0)
		r.PC += WordSize
	case Shr:
		r.V[0xF] = r.V[o.X()] & 1
		r.V[o.X()] >>= 1
		r.PC += WordSize
	case Subn:
		diff := int8(r.V[o.Y()] - r.V[o.X()])
		r.V[o.X()] = byte(diff)
		r.V[0xF] = flag(diff < 0)
		r.PC += WordSize
	case Shl:
		r.V[0xF] = r.V[o.X()] >> 7
		r.V[o.X()] <<= 1
		r.PC += WordSize
	case SneReg:
		r.PC += skip(r.V[o.X()] != r.V[o.Y()])
	case LdI:
		r.I = o.NNN()
		r.PC += WordSize
	case JpV0:
		r.PC = uint16(r.V[0]) + o.NNN()
	case Rnd:
		r.V[o.X()] = byte(m.rand.Intn(256)) & o.KK()
		r.PC += WordSize
	case Drw:
		return m.draw(o)
	case Skp:
		if key, down := m.keys.Pressed(); down && key == r.V[o.X()] {
			m.keys.ClearPressed()
			r.PC += 2 * WordSize
		} else {
			r.PC += WordSize
		}
	case Sknp:
		if key, down := m.keys.Pressed(); down && key == r.V[o.X()] {
			m.keys.ClearPressed()
			r.PC += WordSize
		} else {
			r.PC += 2 * WordSize
		}
	case LdDT:
		r.V[o.X()] = r.Delay()
		r.PC += WordSize
	case LdKey:
		// Non-blocking: the register is left unchanged when no key is
		// down rather than stalling until one is.
		if key, down := m.keys.Pressed(); down {
			r.V[o.X()] = key
		}
		r.PC += WordSize
	case SetDT:
		r.SetDelay(r.V[o.X()])
		r.PC += WordSize
	case SetST:
		r.ST = r.V[o.X()] // stored; there is no audio output
		r.PC += WordSize
	case AddI:
		r.I += uint16(r.V[o.X()])
		r.PC += WordSize
	case LdFont:
		r.I = FontAddr(r.V[o.X()])
		r.PC += WordSize
	case Bcd:
		v := r.V[o.X()]
		for i, d := range [3]byte{v / 100, v / 10 % 10, v % 10} {
			if err := m.Mem.SetByte(r.I+uint16(i), d); err != nil {
				return err
			}
		}
		r.PC += WordSize
	case SaveRegs:
		x := o.X()
		for i := 0; i <= x; i++ {
			if err := m.Mem.SetByte(r.I+uint16(i), r.V[i]); err != nil {
				return err
			}
		}
		r.I += uint16(x) + 1
		r.PC += WordSize
	case LoadRegs:
		x := o.X()
		for i := 0; i <= x; i++ {
			v, err := m.Mem.Byte(r.I + uint16(i))
			if err != nil {
				return err
			}
			r.V[i] = v
		}
		r.I += uint16(x) + 1
		r.PC += WordSize
	}
	return nil
}

// draw XOR-blits an n-row sprite stored at memory address I onto the
// grid at (V[x], V[y]), wrapping on both axes. V[0xF] reports whether
// any lit pixel was unlit by the blit.
func (m *Machine) draw(o Opcode) error {
	r := &m.Reg
	px, py := int(r.V[o.X()]), int(r.V[o.Y()])
	r.V[0xF] = 0
	for row := 0; row < int(o.N()); row++ {
		b, err := m.Mem.Byte(r.I + uint16(row))
		if err != nil {
			return err
		}
		for bit := 0; bit < 8; bit++ {
			sprite := b>>(7-bit)&1 == 1
			x := (px + bit) % GridWidth
			y := (py + row) % GridHeight
			cur := m.disp.Pixel(x, y)
			m.disp.SetPixel(x, y, sprite != cur)
			if sprite && cur {
				r.V[0xF] = 1
			}
		}
	}
	m.disp.Present()
	r.PC += WordSize
	return nil
}
