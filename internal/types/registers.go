package types

// LCDControl is the value of the LCDC register.
type LCDControl uint8

func (l LCDControl) Enabled() bool { return l&Bit7 != 0 }
func (l LCDControl) WindowTileMap() uint16 { return tileMap(l&Bit6 != 0) }
func (l LCDControl) WindowEnabled() bool { return l&Bit5 != 0 }
func (l LCDControl) UnsignedAddressing() bool { return l&Bit4 != 0 }
func (l LCDControl) BackgroundTileMap() uint16 { return tileMap(l&Bit3 != 0) }
func (l LCDControl) SpriteSize() uint8 { return 8 << ((l >> 2) & 1) }
func (l LCDControl) SpritesEnabled() bool { return l&Bit1 != 0 }
func (l LCDControl) BackgroundEnabled() bool { return l&Bit0 != 0 }

func tileMap(high bool) uint16 {
	if high {
		return TileMap1
	}
	return TileMap0
}

// TileDataAddress returns the address of the first byte of tile
// id, resolved using the addressing mode selected by LCDC.4.
// In unsigned mode tiles are indexed from 0x8000, in signed mode
// id is treated as an int8 relative to 0x9000.
func (l LCDControl) TileDataAddress(id uint8) uint16 {
	if l.UnsignedAddressing() {
		return TileData0 + uint16(id)*16
	}
	return uint16(int32(TileData2) + int32(int8(id))*16)
}

// Mode is the state of the pixel pipeline, as reported
// in bits 0-1 of the STAT register.
type Mode = uint8

const (
	ModeHBlank   Mode = 0
	ModeVBlank   Mode = 1
	ModeOAM      Mode = 2
	ModeTransfer Mode = 3
)

// LCDStatus is the value of the STAT register.
type LCDStatus uint8

func (s LCDStatus) Mode() Mode { return Mode(s & 0b11) }
func (s LCDStatus) Coincidence() bool { return s&Bit2 != 0 }
func (s LCDStatus) HBlankSelect() bool { return s&Bit3 != 0 }
func (s LCDStatus) VBlankSelect() bool { return s&Bit4 != 0 }
func (s LCDStatus) OAMSelect() bool { return s&Bit5 != 0 }
func (s LCDStatus) CoincidenceSelect() bool { return s&Bit6 != 0 }

// WithMode returns s with the mode bits replaced.
func (s LCDStatus) WithMode(m Mode) LCDStatus {
	return s&^0b11 | LCDStatus(m&0b11)
}

// WithCoincidence returns s with the coincidence flag set to on.
func (s LCDStatus) WithCoincidence(on bool) LCDStatus {
	return LCDStatus(SetBit(uint8(s), 2, on))
}

// TimerControl is the value of the TAC register.
type TimerControl uint8

// timerBits are the divider bits monitored for each clock select.
var timerBits = [4]uint8{9, 3, 5, 7}

func (t TimerControl) Enabled() bool { return t&Bit2 != 0 }
func (t TimerControl) ClockSelect() uint8 { return uint8(t & 0b11) }

// MonitoredBit returns the bit of the internal divider whose
// falling edge increments TIMA.
func (t TimerControl) MonitoredBit() uint8 { return timerBits[t&0b11] }

// JoypadSelect is the value of the P1 register. Selection
// bits are active low.
type JoypadSelect uint8

func (j JoypadSelect) ActionSelected() bool { return j&Bit5 == 0 }
func (j JoypadSelect) DirectionSelected() bool { return j&Bit4 == 0 }

// InterruptFlags is the value of the IF or IE register. Bits
// 0-4 each name an interrupt source, bit 0 having the highest
// priority.
type InterruptFlags uint8

// Has reports whether any bit of flag is set.
func (f InterruptFlags) Has(flag uint8) bool { return uint8(f)&flag != 0 }

// Set returns f with the bits of flag set.
func (f InterruptFlags) Set(flag uint8) InterruptFlags { return f | InterruptFlags(flag) }

// Clear returns f with the bits of flag cleared.
func (f InterruptFlags) Clear(flag uint8) InterruptFlags { return f &^ InterruptFlags(flag) }

// Sources returns f without the unused upper bits.
func (f InterruptFlags) Sources() InterruptFlags { return f & 0x1F }

// Highest returns the index of the highest priority source
// set in f.
func (f InterruptFlags) Highest() (uint8, bool) {
	for i := uint8(0); i < 5; i++ {
		if f.Has(1 << i) {
			return i, true
		}
	}
	return 0, false
}
