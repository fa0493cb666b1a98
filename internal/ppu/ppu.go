// Package ppu implements the pixel processing unit of the DMG. It
// is advanced one dot at a time, 4 dots per M-cycle, and renders
// the background and window layers into PreparedFrame.
package ppu

import (
	"fmt"

	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/io"
	"github.com/thelolagemann/dmgcore/internal/ppu/palette"
	"github.com/thelolagemann/dmgcore/internal/types"
)

const (
	// ScreenWidth is the width of the screen in pixels.
	ScreenWidth = 160
	// ScreenHeight is the height of the screen in pixels.
	ScreenHeight = 144
)

const (
	// OAMDots is the duration of ModeOAM.
	OAMDots = 80
	// LineDots is the duration of a single scanline.
	LineDots = 456
	// Lines is the number of scanlines in a frame, including
	// the 10 lines of v-blank.
	Lines = 154
	// FrameDots is the duration of a whole frame.
	FrameDots = LineDots * Lines
)

// PPU implements the Game Boy's (P)ixel (P)rocessing (U)nit.
//
// Each line starts with 80 dots of OAM scan, followed by pixel
// transfer, which shifts one pixel per dot out of the FIFO until
// 160 pixels have been written to the line, and h-blank, which
// idles until the line has taken 456 dots. After 144 lines the
// PPU enters v-blank for another 10 lines, for a total of 70224
// dots per frame.
//
// References:
//   - [Pan Docs](https://gbdev.io/pandocs/Graphics.html)
//   - [Hacktix GBEDG](https://hacktix.github.io/GBEDG/ppu/)
type PPU struct {
	enabled bool       // LCDC.7 - LCD Enable
	mode    types.Mode // Mode reported to STAT register
	ly      uint8      // Current line (0-153)
	lx      uint8      // Current column (0-160)
	lineDot uint16     // Current dot within line (0-455)

	// Pixel slice fetcher
	fifo     FIFO  // Background/Window pixel FIFO
	fetcherX uint8 // Tile column of the next fetch
	discard  uint8 // Pixels still to be discarded for SCX alignment

	// Window rendering state
	window       bool  // fetching from the window on this line
	wly          uint8 // Window line counter
	winTriggerWy bool  // Window Y-position trigger

	frames uint64

	b   *io.Bus
	irq *interrupts.Service

	// PreparedFrame holds the shade (0-3) of every pixel of the
	// most recently rendered lines, mapped through BGP.
	PreparedFrame [ScreenHeight][ScreenWidth]uint8
}

// New creates and initializes a PPU instance ready to be used.
// The LCD starts disabled.
func New(b *io.Bus, irq *interrupts.Service) *PPU {
	p := &PPU{
		b:   b,
		irq: irq,
		wly: 255,
	}

	b.Set(types.STAT, types.Bit7)

	b.ReserveAddress(types.LCDC, func(v byte) byte {
		b.Set(types.LCDC, v)

		lcdc := types.LCDControl(v)
		if p.enabled && !lcdc.Enabled() {
			p.disable()
		} else if !p.enabled && lcdc.Enabled() {
			p.enable()
		}
		return v
	})
	b.ReserveAddress(types.STAT, func(v byte) byte {
		// only the interrupt selects are writable
		stat := b.Get(types.STAT)&0b0000_0111 | v&0b0111_1000 | types.Bit7
		b.Set(types.STAT, stat)
		if p.enabled {
			irq.UpdateSTAT()
		}
		return stat
	})
	b.ReserveAddress(types.LY, func(v byte) byte {
		// LY is read only
		return p.ly
	})
	b.ReserveAddress(types.LYC, func(v byte) byte {
		b.Set(types.LYC, v)
		p.compareLY()
		return v
	})
	reserveDMA(b)

	return p
}

// Tick advances the PPU by the given number of dots. While the
// LCD is disabled the PPU is frozen and the dots are discarded.
func (p *PPU) Tick(dots int) {
	for i := 0; i < dots && p.enabled; i++ {
		p.step()
	}
}

// step advances the PPU by a single dot.
func (p *PPU) step() {
	p.lineDot++

	switch p.mode {
	case types.ModeOAM:
		if p.lineDot == OAMDots {
			p.startTransfer()
		}
	case types.ModeTransfer:
		p.transferPixel()
		if p.lx == ScreenWidth {
			p.setMode(types.ModeHBlank)
		}
	case types.ModeHBlank:
		if p.lineDot == LineDots {
			p.lineDot = 0
			p.setLY(p.ly + 1)
			if p.ly == ScreenHeight {
				p.setMode(types.ModeVBlank)
				p.irq.Request(interrupts.VBlankFlag)
			} else {
				p.startLine()
			}
		}
	case types.ModeVBlank:
		if p.lineDot == LineDots {
			p.lineDot = 0
			if p.ly == Lines-1 {
				p.endFrame()
			} else {
				p.setLY(p.ly + 1)
			}
		}
	}
}

// startLine enters ModeOAM for the current line.
func (p *PPU) startLine() {
	p.checkWindowTriggerWY()
	p.setMode(types.ModeOAM)
}

// startTransfer enters ModeTransfer, preparing the fetcher for a
// new line.
func (p *PPU) startTransfer() {
	p.resetFetcher()
	p.discard = p.b.Get(types.SCX) & 7
	p.setMode(types.ModeTransfer)
}

// endFrame wraps LY back to line 0 after the last line of
// v-blank.
func (p *PPU) endFrame() {
	p.frames++
	p.winTriggerWy = false
	p.wly = 255
	p.setLY(0)
	p.startLine()
}

// transferPixel shifts a single pixel out of the FIFO and into
// PreparedFrame, refilling the FIFO first if it is empty.
func (p *PPU) transferPixel() {
	if p.checkWindowTriggerWX() {
		p.startWindow()
	}
	if p.fifo.Size == 0 {
		p.fetchTile()
	}

	colour := p.fifo.Pop()
	if p.discard > 0 {
		p.discard--
		return
	}

	// with LCDC.0 clear the background and window are white
	var shade uint8
	if types.LCDControl(p.b.Get(types.LCDC)).BackgroundEnabled() {
		shade = palette.Shade(p.b.Get(types.BGP), colour)
	}
	p.PreparedFrame[p.ly][p.lx] = shade
	p.lx++
}

// fetchTile fetches the next row of 8 pixels from the background
// or window tile map, and pushes them to the FIFO.
func (p *PPU) fetchTile() {
	lcdc := types.LCDControl(p.b.Get(types.LCDC))

	var address uint16
	var row uint8
	if p.window {
		address = lcdc.WindowTileMap()
		address += uint16(p.wly>>3) << 5 // Y pos
		address += uint16(p.fetcherX)    // X pos
		row = p.wly & 7
	} else {
		y := p.ly + p.b.Get(types.SCY)
		x := (p.b.Get(types.SCX)>>3 + p.fetcherX) & 0x1F

		address = lcdc.BackgroundTileMap()
		address += uint16(y>>3) << 5 // Y pos
		address += uint16(x)         // X pos
		row = y & 7
	}
	p.fetcherX++

	tile := lcdc.TileDataAddress(p.b.Get(address)) + uint16(row)<<1
	p.fifo.pushTile(p.b.Get(tile), p.b.Get(tile+1))
}

// checkWindowTriggerWY checks to see if the window should be
// triggered for the current LY position. Once triggered the window
// stays active for the rest of the frame.
func (p *PPU) checkWindowTriggerWY() {
	lcdc := types.LCDControl(p.b.Get(types.LCDC))
	if lcdc.WindowEnabled() && p.b.Get(types.WY) == p.ly {
		p.winTriggerWy = true
	}
}

// checkWindowTriggerWX reports whether the window starts at the
// current column.
func (p *PPU) checkWindowTriggerWX() bool {
	if p.window || !p.winTriggerWy {
		return false
	}
	lcdc := types.LCDControl(p.b.Get(types.LCDC))
	wx := p.b.Get(types.WX)
	return lcdc.WindowEnabled() && wx < ScreenWidth+7 && uint16(p.lx)+7 >= uint16(wx)
}

// startWindow switches the fetcher over to the window layer for the
// rest of the line.
func (p *PPU) startWindow() {
	p.window = true
	p.wly++
	p.fetcherX = 0
	p.fifo.Reset()

	// a window left of column 0 is clipped
	p.discard = 0
	if wx := p.b.Get(types.WX); wx < 7 {
		p.discard = 7 - wx
	}
}

// resetFetcher resets the pixel slice fetcher and the FIFO so that
// they can be used for the next line.
func (p *PPU) resetFetcher() {
	p.fifo.Reset()
	p.fetcherX = 0
	p.window = false
	p.lx = 0
}

// setMode sets the current mode, mirroring it into STAT and
// re-evaluating the STAT interrupt line.
func (p *PPU) setMode(mode types.Mode) {
	p.mode = mode
	stat := types.LCDStatus(p.b.Get(types.STAT)).WithMode(mode)
	p.b.Set(types.STAT, uint8(stat))
	p.irq.UpdateSTAT()
}

// setLY sets the current line, mirroring it into LY.
func (p *PPU) setLY(ly uint8) {
	p.ly = ly
	p.b.Set(types.LY, ly)
	p.compareLY()
}

// compareLY updates the coincidence flag in STAT.
func (p *PPU) compareLY() {
	if !p.enabled {
		return
	}
	stat := types.LCDStatus(p.b.Get(types.STAT))
	stat = stat.WithCoincidence(p.ly == p.b.Get(types.LYC))
	p.b.Set(types.STAT, uint8(stat))
	p.irq.UpdateSTAT()
}

// enable turns the LCD on, starting from the first dot of line 0.
func (p *PPU) enable() {
	p.enabled = true
	p.lineDot = 0
	p.winTriggerWy = false
	p.wly = 255
	p.mode = types.ModeOAM
	p.b.Set(types.STAT, uint8(types.LCDStatus(p.b.Get(types.STAT)).WithMode(types.ModeOAM)))
	p.setLY(0)
	p.startLine()
}

// disable turns the LCD off. LY reads 0, STAT reports ModeHBlank
// and the screen is blanked.
func (p *PPU) disable() {
	p.enabled = false
	p.ly, p.mode, p.lineDot = 0, types.ModeHBlank, 0
	p.b.Set(types.LY, 0)
	p.b.Set(types.STAT, uint8(types.LCDStatus(p.b.Get(types.STAT)).WithMode(types.ModeHBlank)))
	p.resetFetcher()
	p.renderBlank()
}

// renderBlank blanks the current screen.
func (p *PPU) renderBlank() {
	for y := range p.PreparedFrame {
		for x := range p.PreparedFrame[y] {
			p.PreparedFrame[y][x] = 0
		}
	}
}

// Enabled reports whether the LCD is on.
func (p *PPU) Enabled() bool {
	return p.enabled
}

// Mode returns the current mode of the PPU.
func (p *PPU) Mode() types.Mode {
	return p.mode
}

// LY returns the current line.
func (p *PPU) LY() uint8 {
	return p.ly
}

// Frames returns the number of frames completed since the
// PPU was created.
func (p *PPU) Frames() uint64 {
	return p.frames
}

var _ types.Stater = (*PPU)(nil)

// Load implements the types.Stater interface.
//
// The values are loaded in the following order:
//   - enabled (bool)
//   - mode, ly, lx (uint8)
//   - lineDot (uint16)
//   - FIFO data (8 bytes), size, head (uint8)
//   - fetcherX, discard (uint8)
//   - window (bool), wly (uint8), winTriggerWy (bool)
//   - frames (uint32 high, uint32 low)
//   - PreparedFrame (ScreenWidth * ScreenHeight bytes)
func (p *PPU) Load(s *types.State) {
	p.enabled = s.ReadBool()
	p.mode = s.Read8()
	p.ly = s.Read8()
	p.lx = s.Read8()
	p.lineDot = s.Read16()
	s.ReadData(p.fifo.Data[:])
	p.fifo.Size = int(s.Read8())
	p.fifo.head = int(s.Read8())
	p.fetcherX = s.Read8()
	p.discard = s.Read8()
	p.window = s.ReadBool()
	p.wly = s.Read8()
	p.winTriggerWy = s.ReadBool()
	p.frames = uint64(s.Read32())<<32 | uint64(s.Read32())
	for y := range p.PreparedFrame {
		s.ReadData(p.PreparedFrame[y][:])
	}

	if p.fifo.Size < 0 || p.fifo.Size > len(p.fifo.Data) || p.fifo.head >= len(p.fifo.Data) {
		s.Corrupt(fmt.Sprintf("ppu fifo size %d head %d", p.fifo.Size, p.fifo.head))
		p.fifo.Reset()
	}
	if p.mode > types.ModeTransfer || p.ly >= Lines || p.lx > ScreenWidth || int(p.lineDot) >= LineDots {
		s.Corrupt(fmt.Sprintf("ppu mode %d at line %d dot %d", p.mode, p.ly, p.lineDot))
		p.mode, p.ly, p.lx, p.lineDot = types.ModeOAM, 0, 0, 0
	}
}

// Save implements the types.Stater interface.
func (p *PPU) Save(s *types.State) {
	s.WriteBool(p.enabled)
	s.Write8(p.mode)
	s.Write8(p.ly)
	s.Write8(p.lx)
	s.Write16(p.lineDot)
	s.WriteData(p.fifo.Data[:])
	s.Write8(uint8(p.fifo.Size))
	s.Write8(uint8(p.fifo.head))
	s.Write8(p.fetcherX)
	s.Write8(p.discard)
	s.WriteBool(p.window)
	s.Write8(p.wly)
	s.WriteBool(p.winTriggerWy)
	s.Write32(uint32(p.frames >> 32))
	s.Write32(uint32(p.frames))
	for y := range p.PreparedFrame {
		s.WriteData(p.PreparedFrame[y][:])
	}
}
