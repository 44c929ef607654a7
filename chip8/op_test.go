package chip8

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		opcode uint16
		want   Op
	}{
		{0x00e0, Cls},
		{0x00ee, Ret},
		{0x1228, Jp},
		{0x2390, Call},
		{0x3a7f, SeByte},
		{0x4a7f, SneByte},
		{0x5ab0, SeReg},
		{0x6aff, LdByte},
		{0x7a01, AddByte},
		{0x8ab0, LdReg},
		{0x8ab1, Or},
		{0x8ab2, And},
		{0x8ab3, Xor},
		{0x8ab4, AddReg},
		{0x8ab5, Sub},
		{0x8ab6, Shr},
		{0x8ab7, Subn},
		{0x8abe, Shl},
		{0x9ab0, SneReg},
		{0xa123, LdI},
		{0xb123, JpV0},
		{0xc4aa, Rnd},
		{0xd125, Drw},
		{0xe29e, Skp},
		{0xe2a1, Sknp},
		{0xf207, LdDT},
		{0xf20a, LdKey},
		{0xf215, SetDT},
		{0xf218, SetST},
		{0xf21e, AddI},
		{0xf229, LdFont},
		{0xf233, Bcd},
		{0xf255, SaveRegs},
		{0xf265, LoadRegs},
	}
	for _, tt := range tests {
		op, err := Opcode(tt.opcode).Decode()
		assert.NoError(t, err)
		assert.Equal(t, tt.want, op)
	}
}

func TestDecodeUnknown(t *testing.T) {
	for _, opcode := range []uint16{
		0x0000, // no SYS
		0x00e1,
		0x0123,
		0x8ab8, // undefined 0x8 sub-op
		0x8abf,
		0xe200, // undefined 0xE low byte
		0xe29f,
		0xf200, // undefined 0xF low byte
		0xf299,
		0xf266,
	} {
		_, err := Opcode(opcode).Decode()
		if !errors.Is(err, ErrUnknownOpcode) {
			t.Errorf("Decode(%#04x) = %v, want ErrUnknownOpcode", opcode, err)
		}
	}
}

func TestOpcodeFields(t *testing.T) {
	o := Opcode(0xdab5)
	assert.Equal(t, 0xa, o.X())
	assert.Equal(t, 0xb, o.Y())
	assert.Equal(t, byte(0x5), o.N())
	assert.Equal(t, byte(0xb5), o.KK())
	assert.Equal(t, uint16(0xab5), o.NNN())
}

func TestDisassemble(t *testing.T) {
	tests := []struct {
		opcode uint16
		want   string
	}{
		{0x00e0, "CLS"},
		{0x00ee, "RET"},
		{0x1228, "JP 0x228"},
		{0x2390, "CALL 0x390"},
		{0xb250, "JP V0, 0x250"},
		{0xa123, "LD I, 0x123"},
		{0x6a0f, "LD VA, 0x0f"},
		{0x8ab4, "ADD VA, VB"},
		{0x8a06, "SHR VA"},
		{0xd125, "DRW V1, V2, 5"},
		{0xf207, "LD V2, DT"},
		{0xf20a, "LD V2, K"},
		{0xf215, "LD DT, V2"},
		{0xf218, "LD ST, V2"},
		{0xf21e, "ADD I, V2"},
		{0xf229, "LD F, V2"},
		{0xf233, "LD B, V2"},
		{0xf255, "LD [I], V2"},
		{0xf265, "LD V2, [I]"},
		{0xffff, ".word 0xffff"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Disassemble(Opcode(tt.opcode)))
	}
}
