// Package cpu provides an implementation of the Sharp SM83, the
// CPU of the Game Boy. Instructions are decoded through two
// 256 entry tables (InstructionSet and InstructionSetCB) and
// report the number of M-cycles they took.
package cpu

import (
	"fmt"

	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/io"
	"github.com/thelolagemann/dmgcore/internal/types"
)

const (
	// ClockSpeed is the clock speed of the CPU in T-cycles.
	ClockSpeed = 4194304

	// InterruptCycles is the number of M-cycles taken to
	// dispatch an interrupt.
	InterruptCycles = 5
)

type mode = uint8

const (
	// ModeNormal is the normal CPU mode.
	ModeNormal mode = iota
	// ModeHalt is the halt CPU mode. No instructions are fetched
	// until an enabled interrupt is pending.
	ModeHalt
	// ModeStop is the stop CPU mode, behaving as ModeHalt.
	ModeStop
	// ModeHaltBug is entered when HALT is executed with IME
	// clear and an interrupt already pending. The next opcode
	// is fetched without incrementing PC.
	ModeHaltBug
	// ModeEnableIME is entered by EI, IME is set before the
	// next instruction executes.
	ModeEnableIME
)

// DividerResetter is implemented by the timer, which STOP resets.
type DividerResetter interface {
	SetDivider(uint16)
}

// CPU represents the Gameboy CPU. It is responsible for executing instructions.
type CPU struct {
	// PC is the program counter, it points to the next instruction to be executed.
	PC uint16
	// SP is the stack pointer, it points to the top of the stack.
	SP uint16
	// Registers contains the 8-bit registers, as well as the 16-bit register pairs.
	Registers
	// IME is the interrupt master enable flag.
	IME bool

	b     *io.Bus
	irq   *interrupts.Service
	timer DividerResetter

	mode   mode
	cycles int
	fault  error
}

// NewCPU creates a new CPU instance with the given Bus and
// interrupt service. timer may be nil, in which case STOP
// does not reset the divider.
func NewCPU(b *io.Bus, irq *interrupts.Service, timer DividerResetter) *CPU {
	return &CPU{
		b:     b,
		irq:   irq,
		timer: timer,
	}
}

// ExecuteInstruction fetches, decodes and executes a single
// instruction, returning the number of M-cycles it took. While
// halted or stopped, no instruction is fetched and 1 cycle is
// reported.
//
// Executing an unknown opcode returns an *UnknownOpcodeError.
// The error is sticky: every later call returns it without
// executing anything.
func (c *CPU) ExecuteInstruction() (int, error) {
	if c.fault != nil {
		return 0, c.fault
	}
	c.cycles = 0

	switch c.mode {
	case ModeHalt, ModeStop:
		return 1, nil
	case ModeEnableIME:
		c.IME = true
		c.mode = ModeNormal
	}

	pc := c.PC
	opcode := c.readInstruction()
	if c.mode == ModeHaltBug {
		c.PC--
		c.mode = ModeNormal
	}

	InstructionSet[opcode].fn(c)

	if c.fault != nil {
		// leave PC pointing at the offending opcode
		c.PC = pc
		if err, ok := c.fault.(*UnknownOpcodeError); ok {
			err.PC = pc
		}
		return c.cycles, c.fault
	}

	return c.cycles, nil
}

// ServiceInterrupts checks for pending interrupts at an
// instruction boundary. Any pending, enabled interrupt wakes
// the CPU from HALT or STOP. If IME is also set, the highest
// priority interrupt is dispatched: its request is cleared, IME
// is disabled, PC is pushed and execution continues at the
// interrupt vector. It returns InterruptCycles if an interrupt
// was dispatched, otherwise 0.
func (c *CPU) ServiceInterrupts() int {
	if !c.irq.HasInterrupts() {
		return 0
	}
	if c.mode == ModeHalt || c.mode == ModeStop {
		c.mode = ModeNormal
	}
	if !c.IME || c.fault != nil {
		return 0
	}

	vector := c.irq.Vector()
	c.IME = false
	if c.mode == ModeEnableIME {
		c.mode = ModeNormal
	}
	c.pushPC()
	c.PC = vector

	return InterruptCycles
}

// Halted reports whether the CPU is waiting in HALT.
func (c *CPU) Halted() bool {
	return c.mode == ModeHalt
}

// Stopped reports whether the CPU is waiting in STOP.
func (c *CPU) Stopped() bool {
	return c.mode == ModeStop
}

// Fault returns the error that stopped the CPU, or nil.
func (c *CPU) Fault() error {
	return c.fault
}

// tickCycle accounts for one M-cycle.
func (c *CPU) tickCycle() {
	c.cycles++
}

// readInstruction reads the next opcode from memory.
func (c *CPU) readInstruction() uint8 {
	c.tickCycle()
	value := c.b.Read(c.PC)
	c.PC++
	return value
}

// readOperand reads the next operand from memory. The same as
// readInstruction, but will allow future optimizations.
func (c *CPU) readOperand() uint8 {
	c.tickCycle()
	value := c.b.Read(c.PC)
	c.PC++
	return value
}

// readOperand16 reads a little-endian 16-bit operand.
func (c *CPU) readOperand16() uint16 {
	low := c.readOperand()
	high := c.readOperand()
	return uint16(high)<<8 | uint16(low)
}

// readByte reads a byte from memory.
func (c *CPU) readByte(addr uint16) uint8 {
	c.tickCycle()
	return c.b.Read(addr)
}

// writeByte writes the given value to the given address.
func (c *CPU) writeByte(addr uint16, val uint8) {
	c.tickCycle()
	c.b.Write(addr, val)
}

// readRegister returns the register encoded by index, reading
// memory at HL for index 6.
func (c *CPU) readRegister(index uint8) uint8 {
	if index == 6 {
		return c.readByte(c.HL())
	}
	return c.regs[index]
}

// writeRegister writes the register encoded by index, writing
// memory at HL for index 6.
func (c *CPU) writeRegister(index uint8, value uint8) {
	if index == 6 {
		c.writeByte(c.HL(), value)
		return
	}
	c.regs[index] = value
}

var _ types.Stater = (*CPU)(nil)

// Load implements the types.Stater interface.
//
// The values are loaded in the following order:
//   - A, F, B, C, D, E, H, L (uint8)
//   - SP, PC (uint16)
//   - mode (uint8)
//   - IME (bool)
func (c *CPU) Load(s *types.State) {
	for _, r := range []Register{A, F, B, C, D, E, H, L} {
		c.Set(r, s.Read8())
	}
	c.SP = s.Read16()
	c.PC = s.Read16()
	c.mode = s.Read8()
	c.IME = s.ReadBool()
	c.fault = nil
	if c.mode > ModeEnableIME {
		s.Corrupt(fmt.Sprintf("cpu mode %d", c.mode))
		c.mode = ModeNormal
	}
}

// Save implements the types.Stater interface.
func (c *CPU) Save(s *types.State) {
	for _, r := range []Register{A, F, B, C, D, E, H, L} {
		s.Write8(c.Get(r))
	}
	s.Write16(c.SP)
	s.Write16(c.PC)
	s.Write8(c.mode)
	s.WriteBool(c.IME)
}
