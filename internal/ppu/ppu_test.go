package ppu

import (
	"errors"
	"testing"

	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/io"
	"github.com/thelolagemann/dmgcore/internal/types"
)

func newTestPPU() (*PPU, *io.Bus) {
	b := io.NewBus()
	p := New(b, interrupts.NewService(b))
	b.Write(types.BGP, 0xE4)
	return p, b
}

// solidTile writes a tile whose pixels are all colour 3.
func solidTile(b *io.Bus, address uint16) {
	for i := uint16(0); i < 16; i++ {
		b.Write(address+i, 0xFF)
	}
}

func TestPPU_FrameTiming(t *testing.T) {
	p, b := newTestPPU()
	b.Write(types.LCDC, 0x91)

	dots, lines := 0, 0
	for p.Frames() == 0 {
		mode := p.Mode()
		p.Tick(1)
		dots++
		if mode == types.ModeTransfer && p.Mode() == types.ModeHBlank {
			lines++
			if p.lx != ScreenWidth {
				t.Fatalf("line %d ended transfer at column %d", p.LY(), p.lx)
			}
		}
		if dots > FrameDots {
			t.Fatalf("frame did not complete within %d dots", FrameDots)
		}
	}

	if dots != FrameDots {
		t.Errorf("expected frame to take %d dots, took %d", FrameDots, dots)
	}
	if lines != ScreenHeight {
		t.Errorf("expected %d rendered lines, got %d", ScreenHeight, lines)
	}
	if p.Mode() != types.ModeOAM || p.LY() != 0 {
		t.Errorf("expected ModeOAM on line 0, got mode %d on line %d", p.Mode(), p.LY())
	}
}

func TestPPU_ModeSequence(t *testing.T) {
	p, b := newTestPPU()
	b.Write(types.LCDC, 0x91)

	p.Tick(OAMDots - 1)
	if p.Mode() != types.ModeOAM {
		t.Fatalf("expected ModeOAM, got %d", p.Mode())
	}
	p.Tick(1)
	if p.Mode() != types.ModeTransfer {
		t.Fatalf("expected ModeTransfer after %d dots, got %d", OAMDots, p.Mode())
	}
	if b.Read(types.STAT)&0b11 != types.ModeTransfer {
		t.Errorf("STAT does not mirror the mode: %08b", b.Read(types.STAT))
	}

	// SCX is 0 so transfer takes exactly 160 dots
	p.Tick(ScreenWidth - 1)
	if p.Mode() != types.ModeTransfer {
		t.Fatalf("transfer ended early")
	}
	p.Tick(1)
	if p.Mode() != types.ModeHBlank {
		t.Fatalf("expected ModeHBlank, got %d", p.Mode())
	}

	p.Tick(LineDots - OAMDots - ScreenWidth)
	if p.Mode() != types.ModeOAM || b.Read(types.LY) != 1 {
		t.Errorf("expected ModeOAM on line 1, got mode %d on line %d", p.Mode(), b.Read(types.LY))
	}
}

func TestPPU_VBlank(t *testing.T) {
	p, b := newTestPPU()
	b.Write(types.IF, 0)
	b.Write(types.LCDC, 0x91)

	p.Tick(ScreenHeight*LineDots - 1)
	if b.Read(types.IF)&interrupts.VBlankFlag != 0 {
		t.Fatalf("vblank requested early")
	}
	p.Tick(1)
	if p.Mode() != types.ModeVBlank || p.LY() != ScreenHeight {
		t.Fatalf("expected ModeVBlank on line 144, got mode %d on line %d", p.Mode(), p.LY())
	}
	if b.Read(types.IF)&interrupts.VBlankFlag == 0 {
		t.Errorf("vblank interrupt not requested")
	}

	// LY keeps counting through vblank
	for ly := uint8(145); ly <= 153; ly++ {
		p.Tick(LineDots)
		if b.Read(types.LY) != ly || p.Mode() != types.ModeVBlank {
			t.Fatalf("expected LY %d in vblank, got %d (mode %d)", ly, b.Read(types.LY), p.Mode())
		}
	}
}

func TestPPU_Disabled(t *testing.T) {
	p, b := newTestPPU()
	p.Tick(FrameDots)
	if p.Frames() != 0 || p.LY() != 0 {
		t.Fatalf("PPU advanced while disabled")
	}

	b.Write(types.LCDC, 0x91)
	p.Tick(LineDots * 10)
	b.Write(types.LCDC, 0x11)
	if b.Read(types.LY) != 0 || b.Read(types.STAT)&0b11 != types.ModeHBlank {
		t.Errorf("LY = %d STAT = %08b after disabling the LCD", b.Read(types.LY), b.Read(types.STAT))
	}
	p.Tick(LineDots * 10)
	if p.LY() != 0 || p.Mode() != types.ModeHBlank {
		t.Errorf("PPU advanced while disabled")
	}
}

func TestPPU_LYReadOnly(t *testing.T) {
	p, b := newTestPPU()
	b.Write(types.LCDC, 0x91)
	p.Tick(LineDots * 3)
	b.Write(types.LY, 0x42)
	if b.Read(types.LY) != 3 {
		t.Errorf("LY = %d, writes should be ignored", b.Read(types.LY))
	}
}

func TestPPU_Coincidence(t *testing.T) {
	p, b := newTestPPU()
	b.Write(types.IF, 0)
	b.Write(types.LYC, 2)
	b.Write(types.STAT, 0x40)
	b.Write(types.LCDC, 0x91)

	p.Tick(LineDots*2 - 1)
	if b.Read(types.IF)&interrupts.LCDFlag != 0 {
		t.Fatalf("STAT interrupt requested before LY == LYC")
	}
	p.Tick(1)
	if b.Read(types.STAT)&types.Bit2 == 0 {
		t.Errorf("coincidence flag not set on LY == LYC")
	}
	if b.Read(types.IF)&interrupts.LCDFlag == 0 {
		t.Errorf("STAT interrupt not requested on LY == LYC")
	}

	p.Tick(LineDots)
	if b.Read(types.STAT)&types.Bit2 != 0 {
		t.Errorf("coincidence flag still set on LY != LYC")
	}
}

func TestPPU_ModeInterrupt(t *testing.T) {
	p, b := newTestPPU()
	b.Write(types.IF, 0)
	b.Write(types.STAT, 0x08) // h-blank select
	b.Write(types.LCDC, 0x91)

	p.Tick(OAMDots + ScreenWidth - 1)
	if b.Read(types.IF)&interrupts.LCDFlag != 0 {
		t.Fatalf("STAT interrupt requested before h-blank")
	}
	p.Tick(1)
	if b.Read(types.IF)&interrupts.LCDFlag == 0 {
		t.Errorf("STAT interrupt not requested on entering h-blank")
	}
}

func TestPPU_Background(t *testing.T) {
	tests := []struct {
		name string
		lcdc uint8
		tile uint16 // address of tile id 1
		scx  uint8
		want func(x int) uint8
	}{
		{"unsigned", 0x91, 0x8010, 0, func(x int) uint8 {
			if x < 8 {
				return 3
			}
			return 0
		}},
		{"signed", 0x81, 0x9010, 0, func(x int) uint8 {
			if x < 8 {
				return 3
			}
			return 0
		}},
		{"scx fine scroll", 0x91, 0x8010, 3, func(x int) uint8 {
			if x < 5 {
				return 3
			}
			return 0
		}},
		{"scx coarse scroll", 0x91, 0x8010, 8, func(x int) uint8 {
			return 0
		}},
		{"background disabled", 0x90, 0x8010, 0, func(x int) uint8 {
			return 0
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, b := newTestPPU()
			solidTile(b, tt.tile)
			b.Write(types.TileMap0, 1)
			b.Write(types.SCX, tt.scx)
			b.Write(types.LCDC, tt.lcdc)
			p.Tick(FrameDots)

			for y := 0; y < 8; y++ {
				for x := 0; x < ScreenWidth; x++ {
					if got := p.PreparedFrame[y][x]; got != tt.want(x) {
						t.Fatalf("pixel (%d, %d) = %d, want %d", x, y, got, tt.want(x))
					}
				}
			}
			if p.PreparedFrame[8][0] != 0 {
				t.Errorf("tile repeated on the second tile row")
			}
		})
	}
}

func TestPPU_BGP(t *testing.T) {
	p, b := newTestPPU()
	solidTile(b, 0x8000)
	b.Write(types.BGP, 0x3F) // colour 3 -> shade 0, others -> shade 3
	b.Write(types.LCDC, 0x91)
	p.Tick(FrameDots)
	if p.PreparedFrame[0][0] != 0 {
		t.Errorf("expected BGP to map colour 3 to shade 0, got %d", p.PreparedFrame[0][0])
	}
}

func TestPPU_Window(t *testing.T) {
	p, b := newTestPPU()
	solidTile(b, 0x8010)
	for i := uint16(0); i < 32*32; i++ {
		b.Write(types.TileMap1+i, 1)
	}
	b.Write(types.WY, 16)
	b.Write(types.WX, 80+7)
	b.Write(types.LCDC, 0xF1) // window on, window map 0x9C00
	p.Tick(FrameDots)

	for y := 0; y < ScreenHeight; y++ {
		for x := 0; x < ScreenWidth; x++ {
			want := uint8(0)
			if y >= 16 && x >= 80 {
				want = 3
			}
			if got := p.PreparedFrame[y][x]; got != want {
				t.Fatalf("pixel (%d, %d) = %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestPPU_DMA(t *testing.T) {
	_, b := newTestPPU()
	for i := uint16(0); i < oamSize; i++ {
		b.Write(0xC100+i, uint8(i))
	}
	b.Write(types.DMA, 0xC1)
	for i := uint16(0); i < oamSize; i++ {
		if got := b.Read(types.OAMStart + i); got != uint8(i) {
			t.Fatalf("OAM[%02x] = %02x, want %02x", i, got, uint8(i))
		}
	}
}

func TestPPU_SaveLoad(t *testing.T) {
	p, b := newTestPPU()
	solidTile(b, 0x8010)
	b.Write(types.TileMap0, 1)
	b.Write(types.LCDC, 0x91)
	p.Tick(FrameDots/2 + 123)

	s := types.NewState()
	b.Save(s)
	p.Save(s)

	p2, b2 := newTestPPU()
	r := types.StateFromBytes(s.Bytes())
	b2.Load(r)
	p2.Load(r)
	if r.Err() != nil {
		t.Fatal(r.Err())
	}

	p.Tick(FrameDots)
	p2.Tick(FrameDots)
	if p.PreparedFrame != p2.PreparedFrame || p.LY() != p2.LY() || p.Mode() != p2.Mode() || p.Frames() != p2.Frames() {
		t.Errorf("restored PPU diverged")
	}
}

func TestPPU_LoadCorrupt(t *testing.T) {
	for _, tt := range []struct {
		name   string
		offset int
		value  uint8
	}{
		{"mode", 1, 7},
		{"line", 2, Lines},
		{"fifo size", 14, 9},
		{"fifo head", 15, 0x20},
	} {
		t.Run(tt.name, func(t *testing.T) {
			p, b := newTestPPU()
			b.Write(types.LCDC, 0x91)
			p.Tick(OAMDots + 20)

			s := types.NewState()
			p.Save(s)
			raw := s.Bytes()
			raw[tt.offset] = tt.value

			p2, b2 := newTestPPU()
			b2.Write(types.LCDC, 0x91)
			r := types.StateFromBytes(raw)
			p2.Load(r)
			if !errors.Is(r.Err(), types.ErrStateCorrupt) {
				t.Fatalf("err = %v, want ErrStateCorrupt", r.Err())
			}

			// the rejected state must still leave a PPU that runs
			p2.Tick(FrameDots)
		})
	}
}
