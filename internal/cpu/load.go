package cpu

// getPair16 returns the 16-bit register pair encoded in bits 4-5
// of opcodes 0x01-0x3B, where pair 3 is SP.
func (c *CPU) getPair16(opcode uint8) uint16 {
	p := opcode >> 4 & 3
	if p == 3 {
		return c.SP
	}
	return c.Pair(Pair(p))
}

// setPair16 sets the register pair encoded in bits 4-5, where
// pair 3 is SP.
func (c *CPU) setPair16(opcode uint8, value uint16) {
	p := opcode >> 4 & 3
	if p == 3 {
		c.SP = value
		return
	}
	c.SetPair(Pair(p), value)
}

// stackPair returns the pair encoded in bits 4-5 of PUSH and POP,
// where pair 3 is AF.
func stackPair(opcode uint8) Pair {
	return Pair(opcode >> 4 & 3)
}

// indirectAddress returns the address used by LD (rr), A and
// LD A, (rr), applying the HL increment or decrement for
// opcodes 0x22, 0x2A, 0x32 and 0x3A.
func (c *CPU) indirectAddress(opcode uint8) uint16 {
	switch opcode >> 4 & 3 {
	case 0:
		return c.BC()
	case 1:
		return c.DE()
	case 2:
		hl := c.HL()
		c.SetPair(HL, hl+1)
		return hl
	default:
		hl := c.HL()
		c.SetPair(HL, hl-1)
		return hl
	}
}

var indirectNames = [4]string{"(BC)", "(DE)", "(HL+)", "(HL-)"}

var pair16Names = [4]string{"BC", "DE", "HL", "SP"}
