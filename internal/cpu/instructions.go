package cpu

import "fmt"

func defineControlInstructions() {
	defineInstruction(0x00, "NOP", func(c *CPU) {})
	defineInstruction(0x10, "STOP", func(c *CPU) {
		if c.timer != nil {
			c.timer.SetDivider(0)
		}

		// with no pending interrupt STOP is a 2 byte opcode and
		// the CPU sleeps until one arrives
		if !c.irq.HasInterrupts() {
			c.PC++
			c.mode = ModeStop
		}
	})
	defineInstruction(0x76, "HALT", func(c *CPU) {
		if !c.IME && c.irq.HasInterrupts() {
			c.mode = ModeHaltBug
		} else {
			c.mode = ModeHalt
		}
	})
	defineInstruction(0xF3, "DI", func(c *CPU) {
		c.IME = false
	})
	defineInstruction(0xFB, "EI", func(c *CPU) {
		if !c.IME {
			c.mode = ModeEnableIME
		}
	})
	defineInstruction(0xCB, "PREFIX CB", func(c *CPU) {
		InstructionSetCB[c.readOperand()].fn(c)
	})

	defineInstruction(0x27, "DAA", (*CPU).decimalAdjust)
	defineInstruction(0x2F, "CPL", (*CPU).complement)
	defineInstruction(0x37, "SCF", func(c *CPU) {
		c.setFlags(c.isFlagSet(FlagZero), false, false, true)
	})
	defineInstruction(0x3F, "CCF", func(c *CPU) {
		c.setFlags(c.isFlagSet(FlagZero), false, false, !c.isFlagSet(FlagCarry))
	})

	defineInstruction(0x07, "RLCA", func(c *CPU) {
		c.rotateAccumulator((*CPU).rotateLeft)
	})
	defineInstruction(0x0F, "RRCA", func(c *CPU) {
		c.rotateAccumulator((*CPU).rotateRight)
	})
	defineInstruction(0x17, "RLA", func(c *CPU) {
		c.rotateAccumulator((*CPU).rotateLeftThroughCarry)
	})
	defineInstruction(0x1F, "RRA", func(c *CPU) {
		c.rotateAccumulator((*CPU).rotateRightThroughCarry)
	})
}

func defineLoadInstructions() {
	for i := uint8(0); i < 4; i++ {
		op := i << 4

		// 0x01, 0x11, 0x21, 0x31 - LD rr, d16
		defineInstruction(op|0x01, fmt.Sprintf("LD %s, d16", pair16Names[i]), func(c *CPU) {
			c.setPair16(op, c.readOperand16())
		})
		// 0x02, 0x12, 0x22, 0x32 - LD (rr), A
		defineInstruction(op|0x02, fmt.Sprintf("LD %s, A", indirectNames[i]), func(c *CPU) {
			c.writeByte(c.indirectAddress(op), c.regs[A])
		})
		// 0x0A, 0x1A, 0x2A, 0x3A - LD A, (rr)
		defineInstruction(op|0x0A, fmt.Sprintf("LD A, %s", indirectNames[i]), func(c *CPU) {
			c.regs[A] = c.readByte(c.indirectAddress(op))
		})
	}

	// 0x06, 0x0E ... 0x3E - LD r, d8
	for r := uint8(0); r < 8; r++ {
		r := r
		defineInstruction(0x06|r<<3, fmt.Sprintf("LD %s, d8", registerNames[r]), func(c *CPU) {
			c.writeRegister(r, c.readOperand())
		})
	}

	// 0x40 - 0x7F - LD r, r'
	for op := 0x40; op < 0x80; op++ {
		if op == 0x76 {
			continue // HALT
		}
		dst, src := uint8(op>>3&7), uint8(op&7)
		defineInstruction(uint8(op), fmt.Sprintf("LD %s, %s", registerNames[dst], registerNames[src]), func(c *CPU) {
			c.writeRegister(dst, c.readRegister(src))
		})
	}

	defineInstruction(0x08, "LD (a16), SP", func(c *CPU) {
		address := c.readOperand16()
		c.writeByte(address, uint8(c.SP))
		c.writeByte(address+1, uint8(c.SP>>8))
	})
	defineInstruction(0xE0, "LDH (a8), A", func(c *CPU) {
		c.writeByte(0xFF00|uint16(c.readOperand()), c.regs[A])
	})
	defineInstruction(0xF0, "LDH A, (a8)", func(c *CPU) {
		c.regs[A] = c.readByte(0xFF00 | uint16(c.readOperand()))
	})
	defineInstruction(0xE2, "LD (C), A", func(c *CPU) {
		c.writeByte(0xFF00|uint16(c.regs[C]), c.regs[A])
	})
	defineInstruction(0xF2, "LD A, (C)", func(c *CPU) {
		c.regs[A] = c.readByte(0xFF00 | uint16(c.regs[C]))
	})
	defineInstruction(0xEA, "LD (a16), A", func(c *CPU) {
		c.writeByte(c.readOperand16(), c.regs[A])
	})
	defineInstruction(0xFA, "LD A, (a16)", func(c *CPU) {
		c.regs[A] = c.readByte(c.readOperand16())
	})
	defineInstruction(0xF8, "LD HL, SP+r8", func(c *CPU) {
		c.SetPair(HL, c.addSPSigned())
		c.tickCycle()
	})
	defineInstruction(0xF9, "LD SP, HL", func(c *CPU) {
		c.SP = c.HL()
		c.tickCycle()
	})

	for i := uint8(0); i < 4; i++ {
		op := 0xC0 | i<<4
		// 0xC1, 0xD1, 0xE1, 0xF1 - POP rr
		defineInstruction(op|0x01, fmt.Sprintf("POP %s", stackPair(op)), func(c *CPU) {
			c.SetPair(stackPair(op), c.pop())
		})
		// 0xC5, 0xD5, 0xE5, 0xF5 - PUSH rr
		defineInstruction(op|0x05, fmt.Sprintf("PUSH %s", stackPair(op)), func(c *CPU) {
			c.push(c.Pair(stackPair(op)))
		})
	}
}

func defineArithmeticInstructions() {
	for i := uint8(0); i < 4; i++ {
		op := i << 4

		// 0x03, 0x13, 0x23, 0x33 - INC rr
		defineInstruction(op|0x03, fmt.Sprintf("INC %s", pair16Names[i]), func(c *CPU) {
			c.setPair16(op, c.getPair16(op)+1)
			c.tickCycle()
		})
		// 0x0B, 0x1B, 0x2B, 0x3B - DEC rr
		defineInstruction(op|0x0B, fmt.Sprintf("DEC %s", pair16Names[i]), func(c *CPU) {
			c.setPair16(op, c.getPair16(op)-1)
			c.tickCycle()
		})
		// 0x09, 0x19, 0x29, 0x39 - ADD HL, rr
		defineInstruction(op|0x09, fmt.Sprintf("ADD HL, %s", pair16Names[i]), func(c *CPU) {
			c.addHL(c.getPair16(op))
		})
	}

	for r := uint8(0); r < 8; r++ {
		r := r
		// 0x04, 0x0C ... 0x3C - INC r
		defineInstruction(0x04|r<<3, fmt.Sprintf("INC %s", registerNames[r]), func(c *CPU) {
			c.writeRegister(r, c.increment(c.readRegister(r)))
		})
		// 0x05, 0x0D ... 0x3D - DEC r
		defineInstruction(0x05|r<<3, fmt.Sprintf("DEC %s", registerNames[r]), func(c *CPU) {
			c.writeRegister(r, c.decrement(c.readRegister(r)))
		})
	}

	// 0x80 - 0xBF - ALU A, r
	for op := 0x80; op < 0xC0; op++ {
		kind, src := uint8(op>>3&7), uint8(op&7)
		defineInstruction(uint8(op), fmt.Sprintf("%s %s", aluNames[kind], registerNames[src]), func(c *CPU) {
			c.alu(kind, c.readRegister(src))
		})
	}

	// 0xC6, 0xCE ... 0xFE - ALU A, d8
	for kind := uint8(0); kind < 8; kind++ {
		kind := kind
		defineInstruction(0xC6|kind<<3, fmt.Sprintf("%s d8", aluNames[kind]), func(c *CPU) {
			c.alu(kind, c.readOperand())
		})
	}

	defineInstruction(0xE8, "ADD SP, r8", func(c *CPU) {
		c.SP = c.addSPSigned()
		c.tickCycle()
		c.tickCycle()
	})
}

var conditionNames = [4]string{"NZ", "Z", "NC", "C"}

func defineJumpInstructions() {
	for i := uint8(0); i < 4; i++ {
		cond := i << 3
		name := conditionNames[i]

		defineInstruction(0x20|cond, fmt.Sprintf("JR %s, r8", name), func(c *CPU) {
			c.jumpRelative(c.condition(cond))
		})
		defineInstruction(0xC0|cond, fmt.Sprintf("RET %s", name), func(c *CPU) {
			c.retConditional(c.condition(cond))
		})
		defineInstruction(0xC2|cond, fmt.Sprintf("JP %s, a16", name), func(c *CPU) {
			c.jumpAbsolute(c.condition(cond))
		})
		defineInstruction(0xC4|cond, fmt.Sprintf("CALL %s, a16", name), func(c *CPU) {
			c.call(c.condition(cond))
		})
	}

	for i := uint8(0); i < 8; i++ {
		vector := uint16(i) * 8
		defineInstruction(0xC7|i<<3, fmt.Sprintf("RST %02XH", vector), func(c *CPU) {
			c.rst(vector)
		})
	}

	defineInstruction(0x18, "JR r8", func(c *CPU) {
		c.jumpRelative(true)
	})
	defineInstruction(0xC3, "JP a16", func(c *CPU) {
		c.jumpAbsolute(true)
	})
	defineInstruction(0xE9, "JP HL", func(c *CPU) {
		c.PC = c.HL()
	})
	defineInstruction(0xCD, "CALL a16", func(c *CPU) {
		c.call(true)
	})
	defineInstruction(0xC9, "RET", (*CPU).ret)
	defineInstruction(0xD9, "RETI", func(c *CPU) {
		c.IME = true
		c.ret()
	})
}

// defineCBInstructions generates the CB prefixed instruction set.
//
//	0x00 - 0x3F: rotates, shifts and SWAP
//	0x40 - 0x7F: BIT b, r
//	0x80 - 0xBF: RES b, r
//	0xC0 - 0xFF: SET b, r
func defineCBInstructions() {
	for op := 0; op < 0x100; op++ {
		y, r := uint8(op>>3&7), uint8(op&7)
		reg := registerNames[r]

		switch op >> 6 {
		case 0:
			shift := shiftOps[y]
			defineInstructionCB(uint8(op), fmt.Sprintf("%s %s", shift.name, reg), func(c *CPU) {
				c.writeRegister(r, shift.fn(c, c.readRegister(r)))
			})
		case 1:
			defineInstructionCB(uint8(op), fmt.Sprintf("BIT %d, %s", y, reg), func(c *CPU) {
				c.testBit(c.readRegister(r), y)
			})
		case 2:
			defineInstructionCB(uint8(op), fmt.Sprintf("RES %d, %s", y, reg), func(c *CPU) {
				c.writeRegister(r, c.readRegister(r)&^(1<<y))
			})
		case 3:
			defineInstructionCB(uint8(op), fmt.Sprintf("SET %d, %s", y, reg), func(c *CPU) {
				c.writeRegister(r, c.readRegister(r)|1<<y)
			})
		}
	}
}
