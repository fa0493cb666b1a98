package interrupts

import (
	"testing"

	"github.com/thelolagemann/dmgcore/internal/io"
	"github.com/thelolagemann/dmgcore/internal/types"
)

func TestService_Priority(t *testing.T) {
	b := io.NewBus()
	s := NewService(b)
	b.Write(types.IE, 0x1F)
	s.Request(TimerFlag)
	s.Request(VBlankFlag)

	if v := s.Vector(); v != 0x40 {
		t.Errorf("first vector = %04x, want 0040", v)
	}
	if got := b.Read(types.IF) & 0x1F; got != TimerFlag {
		t.Errorf("IF = %02x, want only timer pending", got)
	}
	if v := s.Vector(); v != 0x50 {
		t.Errorf("second vector = %04x, want 0050", v)
	}
	if v := s.Vector(); v != 0 {
		t.Errorf("third vector = %04x, want 0", v)
	}
}

func TestService_Disabled(t *testing.T) {
	b := io.NewBus()
	s := NewService(b)
	b.Write(types.IE, JoypadFlag)
	s.Request(SerialFlag)
	if s.HasInterrupts() {
		t.Errorf("serial request should be masked by IE")
	}
	s.Request(JoypadFlag)
	if v := s.Vector(); v != 0x60 {
		t.Errorf("vector = %04x, want 0060", v)
	}
	if b.Read(types.IF)&SerialFlag == 0 {
		t.Errorf("masked serial request was cleared")
	}
}

func TestSTATLine(t *testing.T) {
	tests := []struct {
		stat types.LCDStatus
		want bool
	}{
		{0x00, false},
		{0x04, false},
		{0x44, true},
		{0x40, false},
		{types.LCDStatus(0x08 | types.ModeHBlank), true},
		{types.LCDStatus(0x08 | types.ModeOAM), false},
		{types.LCDStatus(0x10 | types.ModeVBlank), true},
		{types.LCDStatus(0x20 | types.ModeOAM), true},
		{types.LCDStatus(0x20 | types.ModeTransfer), false},
	}
	for _, tt := range tests {
		if got := STATLine(tt.stat); got != tt.want {
			t.Errorf("STATLine(%08b) = %v, want %v", uint8(tt.stat), got, tt.want)
		}
	}
}

func TestService_UpdateSTAT(t *testing.T) {
	b := io.NewBus()
	s := NewService(b)

	b.Set(types.STAT, 0x44)
	s.UpdateSTAT()
	if b.Get(types.IF)&LCDFlag == 0 {
		t.Fatalf("rising edge did not request LCD interrupt")
	}

	b.Set(types.IF, b.Get(types.IF)&^LCDFlag)
	b.Set(types.STAT, 0x64|uint8(types.ModeOAM))
	s.UpdateSTAT()
	if b.Get(types.IF)&LCDFlag != 0 {
		t.Errorf("line stayed high, no new request expected")
	}
}
