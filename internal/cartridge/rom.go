package cartridge

import "github.com/thelolagemann/dmgcore/internal/types"

// ROMCartridge represents a ROM cartridge. This cartridge type is the
// simplest cartridge type and has no MBC. It may optionally carry up
// to 8 KiB of external RAM.
type ROMCartridge struct {
	rom    []byte
	ram    []byte
	header Header
}

// NewROMCartridge returns a new ROM cartridge. The ROM is padded
// with 0xFF up to 32 KiB.
func NewROMCartridge(rom []byte, header Header) *ROMCartridge {
	c := &ROMCartridge{
		rom:    make([]byte, 0x8000),
		header: header,
	}
	for i := range c.rom {
		c.rom[i] = 0xFF
	}
	copy(c.rom, rom)

	if header.CartridgeType != ROM {
		c.ram = make([]byte, 0x2000)
	}
	return c
}

func (r *ROMCartridge) Header() Header {
	return r.header
}

// Read returns the value at the given address.
func (r *ROMCartridge) Read(address uint16) uint8 {
	if address < 0x8000 {
		return r.rom[address]
	}
	if r.ram == nil {
		return 0xFF
	}
	return r.ram[address&0x1FFF]
}

// Write writes the value to the given address. Writes to ROM
// are ignored.
func (r *ROMCartridge) Write(address uint16, value uint8) {
	if address >= types.ERAMStart && address <= types.ERAMEnd && r.ram != nil {
		r.ram[address&0x1FFF] = value
	}
}

// RAM returns the external RAM, or nil if the cartridge has none.
func (r *ROMCartridge) RAM() []byte {
	return r.ram
}

func (r *ROMCartridge) Load(s *types.State) {
	// ROM is read-only
	if r.ram != nil {
		s.ReadData(r.ram)
	}
}

func (r *ROMCartridge) Save(s *types.State) {
	if r.ram != nil {
		s.WriteData(r.ram)
	}
}
