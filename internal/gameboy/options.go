package gameboy

import (
	"io"

	"github.com/thelolagemann/dmgcore/internal/cartridge"
	"github.com/thelolagemann/dmgcore/internal/serial"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

// Opt is a function that modifies a GameBoy
// instance.
type Opt func(gb *GameBoy)

// Debug logs every executed instruction at debug level.
func Debug() Opt {
	return func(gb *GameBoy) {
		gb.debug = true
	}
}

// SerialDebugger writes every byte sent over the serial port
// to w. Test ROMs use this to report their results.
func SerialDebugger(w io.Writer) Opt {
	return func(gb *GameBoy) {
		gb.Serial.Attach(serial.NewWriterDevice(w))
	}
}

// WithLogger sets the logger used by the GameBoy.
func WithLogger(log log.Logger) Opt {
	return func(gb *GameBoy) {
		gb.Logger = log
	}
}

// WithCartridge inserts the cartridge c.
func WithCartridge(c cartridge.Cartridge) Opt {
	return func(gb *GameBoy) {
		gb.cart = c
	}
}

// WithState restores the GameBoy from a snapshot created by
// GameBoy.Save. A boot ROM supplied alongside is only visible if
// the snapshot was taken while it was still mapped.
func WithState(b []byte) Opt {
	return func(gb *GameBoy) {
		gb.state = b
	}
}

// WithBootROM sets the boot ROM for the emulator. The boot ROM
// is mapped over 0x0000-0x00FF and execution starts at 0x0000
// with every register cleared, instead of from the state the
// boot ROM would leave behind.
func WithBootROM(rom []byte) Opt {
	return func(gb *GameBoy) {
		gb.bootROM = rom
	}
}
