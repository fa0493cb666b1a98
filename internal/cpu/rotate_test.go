package cpu

import (
	"testing"
)

func TestRotate_Accumulator(t *testing.T) {
	tests := []struct {
		name      string
		opcode    uint8
		a         uint8
		carry     bool
		want      uint8
		wantFlags uint8
	}{
		{"RLCA zero", 0x07, 0x00, false, 0x00, 0x00},
		{"RLCA bit 7", 0x07, 0x80, false, 0x01, 0x10},
		{"RLA into carry", 0x17, 0x80, false, 0x00, 0x10},
		{"RLA from carry", 0x17, 0x11, true, 0x23, 0x00},
		{"RRCA bit 0", 0x0F, 0x01, false, 0x80, 0x10},
		{"RRCA zero", 0x0F, 0x00, true, 0x00, 0x00},
		{"RRA into carry", 0x1F, 0x01, false, 0x00, 0x10},
		{"RRA from carry", 0x1F, 0x00, true, 0x80, 0x00},
	}
	for _, tt := range tests {
		c, b := newTestCPU()
		c.Set(A, tt.a)
		f := uint8(0xE0) // Z, N and H set
		if tt.carry {
			f |= 1 << FlagCarry
		}
		c.Set(F, f)
		load(c, b, tt.opcode)

		if cycles := step(t, c); cycles != 1 {
			t.Errorf("%s: expected 1 cycle, got %d", tt.name, cycles)
		}
		if c.A() != tt.want {
			t.Errorf("%s: A = %02x, want %02x", tt.name, c.A(), tt.want)
		}
		if c.F() != tt.wantFlags {
			t.Errorf("%s: F = %02x, want %02x (Z is always cleared)", tt.name, c.F(), tt.wantFlags)
		}
	}
}

func TestRotate_Prefixed(t *testing.T) {
	tests := []struct {
		name      string
		opcode    uint8 // operates on B
		b         uint8
		carry     bool
		want      uint8
		wantFlags uint8
	}{
		{"RLC", 0x00, 0x85, false, 0x0B, 0x10},
		{"RLC zero", 0x00, 0x00, true, 0x00, 0x80},
		{"RRC", 0x08, 0x01, false, 0x80, 0x10},
		{"RRC zero", 0x08, 0x00, true, 0x00, 0x80},
		{"RL into carry", 0x10, 0x80, false, 0x00, 0x90},
		{"RL from carry", 0x10, 0x11, true, 0x23, 0x00},
		{"RR into carry", 0x18, 0x01, false, 0x00, 0x90},
		{"RR from carry", 0x18, 0x8A, true, 0xC5, 0x00},
		{"SLA", 0x20, 0xFF, false, 0xFE, 0x10},
		{"SLA zero", 0x20, 0x80, true, 0x00, 0x90},
		{"SRA keeps bit 7", 0x28, 0x8A, false, 0xC5, 0x00},
		{"SRA carry", 0x28, 0x81, false, 0xC0, 0x10},
		{"SRA zero", 0x28, 0x01, false, 0x00, 0x90},
		{"SRL", 0x38, 0xFF, false, 0x7F, 0x10},
		{"SRL zero", 0x38, 0x01, false, 0x00, 0x90},
		{"SWAP", 0x30, 0xF0, true, 0x0F, 0x00},
		{"SWAP zero", 0x30, 0x00, true, 0x00, 0x80},
	}
	for _, tt := range tests {
		c, b := newTestCPU()
		c.Set(B, tt.b)
		f := uint8(0x60) // N and H set
		if tt.carry {
			f |= 1 << FlagCarry
		}
		c.Set(F, f)
		load(c, b, 0xCB, tt.opcode)

		if cycles := step(t, c); cycles != 2 {
			t.Errorf("%s: expected 2 cycles, got %d", tt.name, cycles)
		}
		if c.B() != tt.want {
			t.Errorf("%s: B = %02x, want %02x", tt.name, c.B(), tt.want)
		}
		if c.F() != tt.wantFlags {
			t.Errorf("%s: F = %02x, want %02x", tt.name, c.F(), tt.wantFlags)
		}
	}
}

// TestRotate_Exhaustive checks every prefixed rotate and shift
// against the bit that feeds carry and the bit that fills the
// vacated position, for every input and carry.
func TestRotate_Exhaustive(t *testing.T) {
	ops := []struct {
		name   string
		opcode uint8
		fn     func(v uint8, carry uint8) (uint8, uint8)
	}{
		{"RLC", 0x00, func(v, _ uint8) (uint8, uint8) { return v<<1 | v>>7, v >> 7 }},
		{"RRC", 0x08, func(v, _ uint8) (uint8, uint8) { return v>>1 | v<<7, v & 1 }},
		{"RL", 0x10, func(v, c uint8) (uint8, uint8) { return v<<1 | c, v >> 7 }},
		{"RR", 0x18, func(v, c uint8) (uint8, uint8) { return v>>1 | c<<7, v & 1 }},
		{"SLA", 0x20, func(v, _ uint8) (uint8, uint8) { return v << 1, v >> 7 }},
		{"SRA", 0x28, func(v, _ uint8) (uint8, uint8) { return v>>1 | v&0x80, v & 1 }},
		{"SWAP", 0x30, func(v, _ uint8) (uint8, uint8) { return v<<4 | v>>4, 0 }},
		{"SRL", 0x38, func(v, _ uint8) (uint8, uint8) { return v >> 1, v & 1 }},
	}
	for _, op := range ops {
		c, b := newTestCPU()
		load(c, b, 0xCB, op.opcode|E)
		for carry := uint8(0); carry < 2; carry++ {
			for v := 0; v < 256; v++ {
				c.PC = 0x0100
				c.Set(E, uint8(v))
				c.Set(F, carry<<FlagCarry)
				step(t, c)

				want, wantCarry := op.fn(uint8(v), carry)
				wantFlags := wantCarry << FlagCarry
				if want == 0 {
					wantFlags |= 1 << FlagZero
				}
				if c.E() != want || c.F() != wantFlags {
					t.Fatalf("%s %02x (carry %d) = %02x F=%02x, want %02x F=%02x", op.name, v, carry, c.E(), c.F(), want, wantFlags)
				}
			}
		}
	}
}

func TestRotate_Indirect(t *testing.T) {
	c, b := newTestCPU()
	c.SetPair(HL, 0xC000)
	b.Write(0xC000, 0x85)
	load(c, b, 0xCB, 0x06) // RLC (HL)

	if cycles := step(t, c); cycles != 4 {
		t.Errorf("expected 4 cycles, got %d", cycles)
	}
	if got := b.Read(0xC000); got != 0x0B {
		t.Errorf("(HL) = %02x, want 0b", got)
	}
	if c.F() != 0x10 {
		t.Errorf("F = %02x, want 10", c.F())
	}
}
