// Package interrupts provides the interrupt controller of the
// Game Boy. Requests (types.IF) and enables (types.IE) live on the
// bus, the master enable flag lives in the CPU.
package interrupts

import (
	"github.com/thelolagemann/dmgcore/internal/io"
	"github.com/thelolagemann/dmgcore/internal/types"
)

const (
	// VBlankFlag is the VBlank interrupt flag (bit 0),
	// which is requested every time the PPU enters
	// VBlank mode.
	VBlankFlag = types.Bit0
	// LCDFlag is the LCD interrupt flag (bit 1), which
	// is requested on the rising edge of the STAT line.
	LCDFlag = types.Bit1
	// TimerFlag is the Timer interrupt flag (bit 2),
	// which is requested when TIMA overflows.
	TimerFlag = types.Bit2
	// SerialFlag is the Serial interrupt flag (bit 3),
	// which is requested when a serial transfer is
	// completed.
	SerialFlag = types.Bit3
	// JoypadFlag is the Joypad interrupt Flag (bit 4),
	// which is requested when a button in a selected
	// group is pressed.
	JoypadFlag = types.Bit4
)

// Vectors holds the address jumped to for each interrupt source,
// in priority order.
var Vectors = [5]uint16{0x0040, 0x0048, 0x0050, 0x0058, 0x0060}

// Service is the interrupt service, used to request
// interrupts and to get the current interrupt vector.
//
// When an interrupt is requested, the corresponding bit
// in types.IF is set. When an interrupt is enabled, the
// corresponding bit in types.IE is set. When an interrupt
// is requested and enabled, and the CPU has IME set, the
// CPU will jump to the interrupt vector, and the
// corresponding bit in types.IF will be cleared.
type Service struct {
	b *io.Bus

	// statLine is the last evaluated state of the STAT
	// interrupt line.
	statLine bool
}

// NewService returns a new Service.
func NewService(b *io.Bus) *Service {
	return &Service{b: b}
}

// Request requests the specified interrupt, by setting
// the corresponding bit in types.IF.
func (s *Service) Request(flag uint8) {
	s.b.Set(types.IF, uint8(s.requested().Set(flag)))
}

func (s *Service) requested() types.InterruptFlags {
	return types.InterruptFlags(s.b.Get(types.IF))
}

func (s *Service) enabled() types.InterruptFlags {
	return types.InterruptFlags(s.b.Get(types.IE))
}

// Pending returns the interrupts that are both requested
// and enabled.
func (s *Service) Pending() uint8 {
	return uint8((s.enabled() & s.requested()).Sources())
}

// HasInterrupts returns true if there are any interrupts
// that are requested and enabled.
func (s *Service) HasInterrupts() bool {
	return s.Pending() != 0
}

// Vector returns the vector of the highest priority pending
// interrupt, or 0 if no interrupt is pending. The
// corresponding bit in types.IF is cleared.
//
// Only one interrupt is serviced at a time, and they are
// serviced in the order of priority:
//
//   - VBlank
//   - LCD
//   - Timer
//   - Serial
//   - Joypad
func (s *Service) Vector() uint16 {
	i, ok := types.InterruptFlags(s.Pending()).Highest()
	if !ok {
		return 0
	}
	s.b.Set(types.IF, uint8(s.requested().Clear(1<<i)))

	return Vectors[i]
}

// STATLine evaluates the STAT interrupt line for the given STAT
// register value. The line is high when any of the enabled
// conditions hold:
//
//   - LYC select and LY == LYC
//   - mode 0 select and the PPU is in h-blank
//   - mode 1 select and the PPU is in v-blank
//   - mode 2 select and the PPU is scanning OAM
func STATLine(stat types.LCDStatus) bool {
	switch {
	case stat.CoincidenceSelect() && stat.Coincidence():
		return true
	case stat.HBlankSelect() && stat.Mode() == types.ModeHBlank:
		return true
	case stat.VBlankSelect() && stat.Mode() == types.ModeVBlank:
		return true
	case stat.OAMSelect() && stat.Mode() == types.ModeOAM:
		return true
	}
	return false
}

// UpdateSTAT re-evaluates the STAT line from the current value of
// types.STAT, requesting an LCD interrupt on its rising edge.
func (s *Service) UpdateSTAT() {
	line := STATLine(types.LCDStatus(s.b.Get(types.STAT)))
	if line && !s.statLine {
		s.Request(LCDFlag)
	}
	s.statLine = line
}

var _ types.Stater = (*Service)(nil)

// Load implements the types.Stater interface. IF and IE are
// restored along with the bus.
func (s *Service) Load(st *types.State) {
	s.statLine = st.ReadBool()
}

// Save implements the types.Stater interface.
func (s *Service) Save(st *types.State) {
	st.WriteBool(s.statLine)
}
