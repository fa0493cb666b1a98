package cpu

// push pushes a 16-bit value onto the stack, high byte first,
// taking 3 M-cycles (one internal).
func (c *CPU) push(value uint16) {
	c.tickCycle()
	c.SP--
	c.writeByte(c.SP, uint8(value>>8))
	c.SP--
	c.writeByte(c.SP, uint8(value))
}

// pushPC pushes PC onto the stack.
func (c *CPU) pushPC() {
	c.push(c.PC)
}

// pop pops a 16-bit value from the stack.
func (c *CPU) pop() uint16 {
	low := c.readByte(c.SP)
	c.SP++
	high := c.readByte(c.SP)
	c.SP++
	return uint16(high)<<8 | uint16(low)
}

// jumpRelative reads a signed 8-bit offset and adds it to PC if
// condition holds.
//
//	JR cc, r8
func (c *CPU) jumpRelative(condition bool) {
	offset := int8(c.readOperand())
	if condition {
		c.PC = uint16(int32(c.PC) + int32(offset))
		c.tickCycle()
	}
}

// jumpAbsolute reads a 16-bit address and jumps to it if
// condition holds.
//
//	JP cc, a16
func (c *CPU) jumpAbsolute(condition bool) {
	address := c.readOperand16()
	if condition {
		c.PC = address
		c.tickCycle()
	}
}

// call reads a 16-bit address and, if condition holds, pushes PC
// and jumps to it.
//
//	CALL cc, a16
func (c *CPU) call(condition bool) {
	address := c.readOperand16()
	if condition {
		c.pushPC()
		c.PC = address
	}
}

// ret pops PC from the stack.
//
//	RET
func (c *CPU) ret() {
	c.PC = c.pop()
	c.tickCycle()
}

// retConditional returns if condition holds.
//
//	RET cc
func (c *CPU) retConditional(condition bool) {
	c.tickCycle()
	if condition {
		c.ret()
	}
}

// rst pushes PC and jumps to one of the 8 restart vectors.
//
//	RST n
//	n = 0x00, 0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38
func (c *CPU) rst(vector uint16) {
	c.pushPC()
	c.PC = vector
}
