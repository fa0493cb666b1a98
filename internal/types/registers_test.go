package types

import (
	"errors"
	"testing"
)

func TestLCDControl_TileDataAddress(t *testing.T) {
	tests := []struct {
		lcdc LCDControl
		id   uint8
		want uint16
	}{
		{0x10, 0x00, 0x8000},
		{0x10, 0x01, 0x8010},
		{0x10, 0xFF, 0x8FF0},
		{0x00, 0x00, 0x9000},
		{0x00, 0x7F, 0x97F0},
		{0x00, 0x80, 0x8800},
		{0x00, 0xFF, 0x8FF0},
	}
	for _, tt := range tests {
		if got := tt.lcdc.TileDataAddress(tt.id); got != tt.want {
			t.Errorf("TileDataAddress(%02x) with LCDC %02x = %04x, want %04x", tt.id, uint8(tt.lcdc), got, tt.want)
		}
	}
}

func TestLCDControl_TileMaps(t *testing.T) {
	if got := LCDControl(0x00).BackgroundTileMap(); got != 0x9800 {
		t.Errorf("background map = %04x, want 9800", got)
	}
	if got := LCDControl(Bit3).BackgroundTileMap(); got != 0x9C00 {
		t.Errorf("background map = %04x, want 9c00", got)
	}
	if got := LCDControl(Bit6).WindowTileMap(); got != 0x9C00 {
		t.Errorf("window map = %04x, want 9c00", got)
	}
	if got := LCDControl(Bit2).SpriteSize(); got != 16 {
		t.Errorf("sprite size = %d, want 16", got)
	}
}

func TestLCDStatus_WithMode(t *testing.T) {
	s := LCDStatus(0b0111_1100)
	for m := Mode(0); m < 4; m++ {
		got := s.WithMode(m)
		if got.Mode() != m {
			t.Errorf("mode = %d, want %d", got.Mode(), m)
		}
		if got&^0b11 != s {
			t.Errorf("upper bits changed: %08b", uint8(got))
		}
	}
	if LCDStatus(0).WithCoincidence(true) != Bit2 {
		t.Errorf("coincidence flag not set")
	}
}

func TestTimerControl_MonitoredBit(t *testing.T) {
	want := []uint8{9, 3, 5, 7}
	for i, w := range want {
		tac := TimerControl(Bit2 | i)
		if !tac.Enabled() {
			t.Errorf("TAC %02x should be enabled", uint8(tac))
		}
		if got := tac.MonitoredBit(); got != w {
			t.Errorf("TAC %02x monitors bit %d, want %d", uint8(tac), got, w)
		}
	}
}

func TestJoypadSelect(t *testing.T) {
	if !JoypadSelect(0x10).ActionSelected() || JoypadSelect(0x10).DirectionSelected() {
		t.Errorf("0x10 should select action buttons only")
	}
	if JoypadSelect(0x20).ActionSelected() || !JoypadSelect(0x20).DirectionSelected() {
		t.Errorf("0x20 should select directions only")
	}
}

func TestState_Truncated(t *testing.T) {
	s := NewState()
	s.Write16(0xBEEF)
	s.WriteBool(true)

	r := StateFromBytes(s.Bytes())
	if got := r.Read16(); got != 0xBEEF {
		t.Errorf("Read16 = %04x, want beef", got)
	}
	if !r.ReadBool() {
		t.Errorf("ReadBool = false, want true")
	}
	if r.Err() != nil {
		t.Fatalf("unexpected error %v", r.Err())
	}
	if got := r.Read32(); got != 0 {
		t.Errorf("Read32 past end = %08x, want 0", got)
	}
	if !errors.Is(r.Err(), ErrStateTruncated) {
		t.Errorf("Err() = %v, want ErrStateTruncated", r.Err())
	}
}

func TestInterruptFlags(t *testing.T) {
	f := InterruptFlags(0xE0).Set(Bit2 | Bit4)
	if f != 0xF4 {
		t.Errorf("Set = %02x, want f4", uint8(f))
	}
	if f.Sources() != 0x14 {
		t.Errorf("Sources = %02x, want 14", uint8(f.Sources()))
	}
	if !f.Has(Bit2) || f.Has(Bit0) {
		t.Errorf("Has reported the wrong sources for %02x", uint8(f))
	}
	if i, ok := f.Highest(); !ok || i != 2 {
		t.Errorf("Highest = %d %v, want 2 true", i, ok)
	}
	if f = f.Clear(Bit2); f != 0xF0 {
		t.Errorf("Clear = %02x, want f0", uint8(f))
	}
	if _, ok := InterruptFlags(0xE0).Highest(); ok {
		t.Errorf("upper bits should not count as a source")
	}
}
