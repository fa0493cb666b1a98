// Package cartridge provides the Cartridge collaborator of the bus.
// The cartridge holds the game ROM and any external RAM, and is the
// only component that sees reads and writes to 0x0000-0x7FFF and
// 0xA000-0xBFFF.
package cartridge

import (
	"errors"
	"fmt"

	"github.com/thelolagemann/dmgcore/internal/types"
)

var (
	// ErrShortROM is returned when the ROM is too small to contain a header.
	ErrShortROM = errors.New("cartridge: rom too small to contain a header")
	// ErrUnsupportedType is returned for cartridges that require a
	// memory bank controller.
	ErrUnsupportedType = errors.New("cartridge: unsupported cartridge type")
)

// Cartridge represents a game cartridge, as seen from the bus.
type Cartridge interface {
	// Read returns the value at the given address. Address is
	// either in 0x0000-0x7FFF or 0xA000-0xBFFF.
	Read(address uint16) uint8
	// Write handles a write to the given address. Writes to the
	// ROM area are bank switch requests on real hardware.
	Write(address uint16, value uint8)

	Header() Header

	types.Stater
}

// New parses the header of rom and returns the matching Cartridge.
func New(rom []byte) (Cartridge, error) {
	if len(rom) < 0x150 {
		return nil, ErrShortROM
	}

	// parse the cartridge header (0x0100 - 0x014F)
	header := parseHeader(rom[0x100:0x150])

	switch header.CartridgeType {
	case ROM, ROMRAM, ROMRAMBATT:
		return NewROMCartridge(rom, header), nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, header.CartridgeType)
}
