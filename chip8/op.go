package chip8

import (
	"errors"
	"fmt"
)

// Opcode is a raw 16-bit instruction word.
type Opcode uint16

// Operand accessors, named for the conventional opcode field letters:
// x and y select registers, n/kk/nnn are 4/8/12-bit immediates.

func (o Opcode) X() int      { return int(o&0x0f00) >> 8 }
func (o Opcode) Y() int      { return int(o&0x00f0) >> 4 }
func (o Opcode) N() byte     { return byte(o & 0x000f) }
func (o Opcode) KK() byte    { return byte(o & 0x00ff) }
func (o Opcode) NNN() uint16 { return uint16(o & 0x0fff) }

// Op identifies one instruction of the CHIP-8 table.
type Op byte

const (
	Cls Op = iota
	Ret
	Jp
	Call
	SeByte
	SneByte
	SeReg
	LdByte
	AddByte
	LdReg
	Or
	And
	Xor
	AddReg
	Sub
	Shr
	Subn
	Shl
	SneReg
	LdI
	JpV0
	Rnd
	Drw
	Skp
	Sknp
	LdDT
	LdKey
	SetDT
	SetST
	AddI
	LdFont
	Bcd
	SaveRegs
	LoadRegs
)

// ErrUnknownOpcode reports an instruction word outside the documented
// table.
var ErrUnknownOpcode = errors.New("unknown opcode")

// Decode maps the word to its instruction tag. It is total over the
// documented table and fails with ErrUnknownOpcode for anything else;
// it never mutates state.
func (o Opcode) Decode() (Op, error) {
	switch o {
	case 0x00e0:
		return Cls, nil
	case 0x00ee:
		return Ret, nil
	}
	switch o & 0xf000 {
	case 0x1000:
		return Jp, nil
	case 0x2000:
		return Call, nil
	case 0x3000:
		return SeByte, nil
	case 0x4000:
		return SneByte, nil
	case 0x5000:
		return SeReg, nil
	case 0x6000:
		return LdByte, nil
	case 0x7000:
		return AddByte, nil
	case 0x8000:
		switch o.N() {
		case 0x0:
			return LdReg, nil
		case 0x1:
			return Or, nil
		case 0x2:
			return And, nil
		case 0x3:
			return Xor, nil
		case 0x4:
			return AddReg, nil
		case 0x5:
			return Sub, nil
		case 0x6:
			return Shr, nil
		case 0x7:
			return Subn, nil
		case 0xe:
			return Shl, nil
		}
	case 0x9000:
		return SneReg, nil
	case 0xa000:
		return LdI, nil
	case 0xb000:
		return JpV0, nil
	case 0xc000:
		return Rnd, nil
	case 0xd000:
		return Drw, nil
	case 0xe000:
		switch o.KK() {
		case 0x9e:
			return Skp, nil
		case 0xa1:
			return Sknp, nil
		}
	case 0xf000:
		switch o.KK() {
		case 0x07:
			return LdDT, nil
		case 0x0a:
			return LdKey, nil
		case 0x15:
			return SetDT, nil
		case 0x18:
			return SetST, nil
		case 0x1e:
			return AddI, nil
		case 0x29:
			return LdFont, nil
		case 0x33:
			return Bcd, nil
		case 0x55:
			return SaveRegs, nil
		case 0x65:
			return LoadRegs, nil
		}
	}
	return 0, fmt.Errorf("%w: %#04x", ErrUnknownOpcode, uint16(o))
}

var opName = [...]string{
	Cls:      "CLS",
	Ret:      "RET",
	Jp:       "JP",
	Call:     "CALL",
	SeByte:   "SE",
	SneByte:  "SNE",
	SeReg:    "SE",
	LdByte:   "LD",
	AddByte:  "ADD",
	LdReg:    "LD",
	Or:       "OR",
	And:      "AND",
	Xor:      "XOR",
	AddReg:   "ADD",
	Sub:      "SUB",
	Shr:      "SHR",
	Subn:     "SUBN",
	Shl:      "SHL",
	SneReg:   "SNE",
	LdI:      "LD",
	JpV0:     "JP",
	Rnd:      "RND",
	Drw:      "DRW",
	Skp:      "SKP",
	Sknp:     "SKNP",
	LdDT:     "LD",
	LdKey:    "LD",
	SetDT:    "LD",
	SetST:    "LD",
	AddI:     "ADD",
	LdFont:   "LD",
	Bcd:      "LD",
	SaveRegs: "LD",
	LoadRegs: "LD",
}

func (op Op) String() string {
	if int(op) < len(opName) {
		return opName[op]
	}
	return fmt.Sprintf("unknown (%.2x)", byte(op))
}

// Disassemble renders the word as assembly, or a raw word directive if
// it decodes to nothing.
func Disassemble(o Opcode) string {
	op, err := o.Decode()
	if err != nil {
		return fmt.Sprintf(".word 0x%04x", uint16(o))
	}
	switch op {
	case Cls, Ret:
		return op.String()
	case Jp, Call:
		return fmt.Sprintf("%s 0x%03x", op, o.NNN())
	case JpV0:
		return fmt.Sprintf("JP V0, 0x%03x", o.NNN())
	case LdI:
		return fmt.Sprintf("LD I, 0x%03x", o.NNN())
	case SeByte, SneByte, LdByte, AddByte, Rnd:
		return fmt.Sprintf("%s V%X, 0x%02x", op, o.X(), o.KK())
	case SeReg, SneReg, LdReg, Or, And, Xor, AddReg, Sub, Subn:
		return fmt.Sprintf("%s V%X, V%X", op, o.X(), o.Y())
	case Shr, Shl, Skp, Sknp:
		return fmt.Sprintf("%s V%X", op, o.X())
	case Drw:
		return fmt.Sprintf("DRW V%X, V%X, %d", o.X(), o.Y(), o.N())
	case LdDT:
		return fmt.Sprintf("LD V%X, DT", o.X())
	case LdKey:
		return fmt.Sprintf("LD V%X, K", o.X())
	case SetDT:
		return fmt.Sprintf("LD DT, V%X", o.X())
	case SetST:
		return fmt.Sprintf("LD ST, V%X", o.X())
	case AddI:
		return fmt.Sprintf("ADD I, V%X", o.X())
	case LdFont:
		return fmt.Sprintf("LD F, V%X", o.X())
	case Bcd:
		return fmt.Sprintf("LD B, V%X", o.X())
	case SaveRegs:
		return fmt.Sprintf("LD [I], V%X", o.X())
	case LoadRegs:
		return fmt.Sprintf("LD V%X, [I]", o.X())
	}
	return op.String()
}
