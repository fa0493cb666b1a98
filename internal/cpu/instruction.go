package cpu

import "fmt"

// Instruction represents a single instruction of the
// CPU.
type Instruction struct {
	name string     // name of the instruction
	fn   func(*CPU) // fn called when executing the instruction
}

// Name returns the mnemonic of the instruction.
func (i Instruction) Name() string {
	return i.name
}

// InstructionSet holds the 256 unprefixed instructions.
var InstructionSet [256]Instruction

// InstructionSetCB holds the 256 instructions following the
// 0xCB prefix.
var InstructionSetCB [256]Instruction

// disallowedOpcodes have no defined behaviour on the SM83.
var disallowedOpcodes = []uint8{
	0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD,
}

// defineInstruction defines the instruction in the InstructionSet,
// with the provided opcode.
func defineInstruction(opcode uint8, name string, fn func(*CPU)) {
	if InstructionSet[opcode].fn != nil {
		panic(fmt.Sprintf("cpu: opcode %02X defined twice", opcode))
	}
	InstructionSet[opcode] = Instruction{name: name, fn: fn}
}

// defineInstructionCB defines the instruction in the
// InstructionSetCB, with the provided opcode.
func defineInstructionCB(opcode uint8, name string, fn func(*CPU)) {
	if InstructionSetCB[opcode].fn != nil {
		panic(fmt.Sprintf("cpu: opcode CB %02X defined twice", opcode))
	}
	InstructionSetCB[opcode] = Instruction{name: name, fn: fn}
}

// disallowedOpcode creates an instruction that faults the CPU when
// executed.
func disallowedOpcode(opcode uint8) func(*CPU) {
	return func(c *CPU) {
		c.fault = &UnknownOpcodeError{Opcode: opcode}
	}
}

func init() {
	defineControlInstructions()
	defineLoadInstructions()
	defineArithmeticInstructions()
	defineJumpInstructions()
	defineCBInstructions()

	for _, opcode := range disallowedOpcodes {
		defineInstruction(opcode, fmt.Sprintf("ILLEGAL_%02X", opcode), disallowedOpcode(opcode))
	}

	for i := range InstructionSet {
		if InstructionSet[i].fn == nil {
			panic(fmt.Sprintf("cpu: opcode %02X is not defined", i))
		}
		if InstructionSetCB[i].fn == nil {
			panic(fmt.Sprintf("cpu: opcode CB %02X is not defined", i))
		}
	}
}
