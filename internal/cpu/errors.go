package cpu

import "fmt"

// UnknownOpcodeError is returned when the CPU fetches an
// opcode that has no defined behaviour.
type UnknownOpcodeError struct {
	Opcode   uint8
	PC       uint16
	Prefixed bool // opcode followed a 0xCB prefix
}

func (e *UnknownOpcodeError) Error() string {
	if e.Prefixed {
		return fmt.Sprintf("cpu: unknown opcode CB %02X at %04X", e.Opcode, e.PC)
	}
	return fmt.Sprintf("cpu: unknown opcode %02X at %04X", e.Opcode, e.PC)
}
