package cpu

// Register is the index of an 8-bit register in the register
// file. The indices follow the order registers are encoded in
// opcodes (B, C, D, E, H, L, (HL), A), with the flag register
// occupying the slot that opcodes use for (HL).
type Register = uint8

const (
	B Register = iota
	C
	D
	E
	H
	L
	F
	A
)

// Pair identifies a 16-bit register pair.
type Pair uint8

const (
	BC Pair = iota
	DE
	HL
	AF
)

// pairRegisters holds the high and low register of each Pair.
var pairRegisters = [4][2]Register{
	BC: {B, C},
	DE: {D, E},
	HL: {H, L},
	AF: {A, F},
}

var registerNames = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

var pairNames = [4]string{"BC", "DE", "HL", "AF"}

func (p Pair) String() string {
	return pairNames[p&3]
}

// Registers is the register file of the CPU. The lower 4 bits
// of F always read as zero.
type Registers struct {
	regs [8]uint8
}

// Get returns the value of register r.
func (r *Registers) Get(reg Register) uint8 {
	return r.regs[reg&7]
}

// Set sets register reg to v.
func (r *Registers) Set(reg Register, v uint8) {
	if reg == F {
		v &= 0xF0
	}
	r.regs[reg&7] = v
}

// Pair returns the 16-bit value of p.
func (r *Registers) Pair(p Pair) uint16 {
	regs := pairRegisters[p&3]
	return uint16(r.regs[regs[0]])<<8 | uint16(r.regs[regs[1]])
}

// SetPair sets the 16-bit value of p.
func (r *Registers) SetPair(p Pair, v uint16) {
	regs := pairRegisters[p&3]
	r.Set(regs[0], uint8(v>>8))
	r.Set(regs[1], uint8(v))
}

func (r *Registers) A() uint8 { return r.regs[A] }
func (r *Registers) B() uint8 { return r.regs[B] }
func (r *Registers) C() uint8 { return r.regs[C] }
func (r *Registers) D() uint8 { return r.regs[D] }
func (r *Registers) E() uint8 { return r.regs[E] }
func (r *Registers) F() uint8 { return r.regs[F] }
func (r *Registers) H() uint8 { return r.regs[H] }
func (r *Registers) L() uint8 { return r.regs[L] }

func (r *Registers) BC() uint16 { return r.Pair(BC) }
func (r *Registers) DE() uint16 { return r.Pair(DE) }
func (r *Registers) HL() uint16 { return r.Pair(HL) }
func (r *Registers) AF() uint16 { return r.Pair(AF) }
