// Package gameboy provides an emulation of a Nintendo Game Boy.
// A GameBoy owns every component of the machine, so independent
// instances may be run on separate goroutines.
package gameboy

import (
	"errors"
	"fmt"
	"image"

	"github.com/cespare/xxhash"
	"github.com/thelolagemann/dmgcore/internal/cartridge"
	"github.com/thelolagemann/dmgcore/internal/cpu"
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/io"
	"github.com/thelolagemann/dmgcore/internal/joypad"
	"github.com/thelolagemann/dmgcore/internal/ppu"
	"github.com/thelolagemann/dmgcore/internal/ppu/palette"
	"github.com/thelolagemann/dmgcore/internal/serial"
	"github.com/thelolagemann/dmgcore/internal/timer"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

const (
	// ClockSpeed is the clock speed of the Game Boy.
	ClockSpeed = cpu.ClockSpeed // 4.194304 MHz
	// TicksPerFrame is the number of dots per frame.
	TicksPerFrame = ppu.FrameDots // 4194304 / ~59.7
)

// ErrCartridgeMismatch is returned when loading a state that was
// saved with a different cartridge attached.
var ErrCartridgeMismatch = errors.New("gameboy: state does not match the attached cartridge")

// GameBoy represents a Game Boy. It contains all the components of the Game Boy.
// It is the main entry point for the emulator.
type GameBoy struct {
	CPU        *cpu.CPU
	PPU        *ppu.PPU
	Joypad     *joypad.State
	Interrupts *interrupts.Service
	Timer      *timer.Controller
	Serial     *serial.Controller

	log.Logger

	b    *io.Bus
	cart cartridge.Cartridge

	bootROM []byte
	state   []byte
	debug   bool
}

// New returns a new GameBoy configured by opts. Without a boot ROM
// the machine starts from the state the DMG boot ROM leaves behind.
func New(opts ...Opt) (*GameBoy, error) {
	g := newGameBoy()
	b := g.b

	for _, opt := range opts {
		opt(g)
	}

	if g.cart != nil {
		b.AttachCartridge(g.cart)
		g.Debugf("cartridge: %s", g.cart.Header())
	}

	if g.bootROM != nil {
		if err := b.MapBootROM(g.bootROM); err != nil {
			return nil, fmt.Errorf("gameboy: %w", err)
		}
	}

	switch {
	case g.state != nil:
		if err := g.Load(g.state); err != nil {
			return nil, err
		}
		g.Debugf("restored from state (%d bytes)", len(g.state))
	case g.bootROM != nil:
		g.Debugf("booting with %s boot ROM", io.WhichBootROM(g.bootROM))
	default:
		g.skipBoot()
		g.Debugf("skipping boot ROM")
	}

	return g, nil
}

// newGameBoy wires every component onto a fresh bus.
func newGameBoy() *GameBoy {
	b := io.NewBus()
	irq := interrupts.NewService(b)
	timerCtl := timer.NewController(b, irq)

	return &GameBoy{
		CPU:        cpu.NewCPU(b, irq, timerCtl),
		PPU:        ppu.New(b, irq),
		Joypad:     joypad.New(b, irq),
		Interrupts: irq,
		Timer:      timerCtl,
		Serial:     serial.NewController(b, irq),
		Logger:     log.NewNullLogger(),
		b:          b,
	}
}

// skipBoot sets the registers to the values the DMG boot ROM
// leaves them with.
func (g *GameBoy) skipBoot() {
	g.CPU.SetPair(cpu.AF, 0x01B0)
	g.CPU.SetPair(cpu.BC, 0x0013)
	g.CPU.SetPair(cpu.DE, 0x00D8)
	g.CPU.SetPair(cpu.HL, 0x014D)
	g.CPU.SP = 0xFFFE
	g.CPU.PC = 0x0100

	g.Timer.SetDivider(0xABCC)
	g.b.Write(types.IF, 0xE1)
	g.b.Write(types.BGP, 0xFC)
	g.b.Write(types.LCDC, 0x91)
}

// Step executes a single instruction, advancing the timer and the
// PPU by the cycles it took, and then services any pending
// interrupt. It returns the number of M-cycles that elapsed.
func (g *GameBoy) Step() (int, error) {
	pc, trace := g.CPU.PC, g.debug && !g.CPU.Halted() && !g.CPU.Stopped()
	cycles, err := g.CPU.ExecuteInstruction()
	if err != nil {
		return cycles, fmt.Errorf("gameboy: %w", err)
	}
	if trace {
		g.Debugf("%04X %-16s AF=%04X BC=%04X DE=%04X HL=%04X SP=%04X", pc, g.instructionAt(pc), g.CPU.AF(), g.CPU.BC(), g.CPU.DE(), g.CPU.HL(), g.CPU.SP)
	}
	g.advance(cycles)

	if c := g.CPU.ServiceInterrupts(); c > 0 {
		g.advance(c)
		cycles += c
	}

	return cycles, nil
}

// advance ticks the timer and the PPU by the given number of
// M-cycles.
func (g *GameBoy) advance(cycles int) {
	g.Timer.Tick(cycles)
	g.PPU.Tick(cycles * 4)
}

// instructionAt returns the mnemonic of the instruction at addr.
func (g *GameBoy) instructionAt(addr uint16) string {
	opcode := g.b.Read(addr)
	if opcode == 0xCB {
		return cpu.InstructionSetCB[g.b.Read(addr+1)].Name()
	}
	return cpu.InstructionSet[opcode].Name()
}

// Frame will step the emulation until the PPU has finished
// rendering the current frame, and return it. While the LCD is
// off a frame's worth of cycles is run instead.
func (g *GameBoy) Frame() ([ppu.ScreenHeight][ppu.ScreenWidth]uint8, error) {
	start := g.PPU.Frames()
	for ticks := 0; ticks < TicksPerFrame && g.PPU.Frames() == start; {
		cycles, err := g.Step()
		if err != nil {
			return g.PPU.PreparedFrame, err
		}
		ticks += cycles * 4
	}

	return g.PPU.PreparedFrame, nil
}

// FrameHash returns the xxhash digest of the current frame.
func (g *GameBoy) FrameHash() uint64 {
	d := xxhash.New()
	for y := range g.PPU.PreparedFrame {
		d.Write(g.PPU.PreparedFrame[y][:])
	}
	return d.Sum64()
}

// Image returns the current frame, coloured with pal.
func (g *GameBoy) Image(pal palette.Palette) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, ppu.ScreenWidth, ppu.ScreenHeight))
	for y := 0; y < ppu.ScreenHeight; y++ {
		for x := 0; x < ppu.ScreenWidth; x++ {
			img.SetRGBA(x, y, pal.RGBA(g.PPU.PreparedFrame[y][x]))
		}
	}
	return img
}

// Bus returns the address bus of the GameBoy.
func (g *GameBoy) Bus() *io.Bus {
	return g.b
}

// Cartridge returns the attached cartridge, or nil.
func (g *GameBoy) Cartridge() cartridge.Cartridge {
	return g.cart
}

// components returns the parts of the machine a snapshot holds,
// in the order they are saved.
func (g *GameBoy) components() []types.Stater {
	return []types.Stater{g.CPU, g.Timer, g.PPU, g.Joypad, g.Interrupts, g.b}
}

// Save returns a snapshot of the entire machine.
func (g *GameBoy) Save() []byte {
	s := types.NewState()
	s.WriteBool(g.cart != nil)
	if g.cart != nil {
		s.Write16(g.cart.Header().GlobalChecksum)
	}

	for _, c := range g.components() {
		c.Save(s)
	}
	if g.cart != nil {
		g.cart.Save(s)
	}

	return s.Bytes()
}

// Load restores a snapshot created by Save. The snapshot is
// decoded into a scratch machine first, so a state that does not
// match the attached cartridge, or that fails to decode, leaves
// the GameBoy untouched.
func (g *GameBoy) Load(data []byte) error {
	if err := g.checkState(data); err != nil {
		return err
	}

	s := types.StateFromBytes(data)
	if s.ReadBool() {
		s.Read16()
	}
	for _, c := range g.components() {
		c.Load(s)
	}
	if g.cart != nil {
		g.cart.Load(s)
	}

	return s.Err()
}

// checkState verifies that data can be loaded into g.
func (g *GameBoy) checkState(data []byte) error {
	s := types.StateFromBytes(data)
	if hasCart := s.ReadBool(); hasCart {
		if g.cart == nil || g.cart.Header().GlobalChecksum != s.Read16() {
			return ErrCartridgeMismatch
		}
	} else if g.cart != nil {
		return ErrCartridgeMismatch
	}

	for _, c := range newGameBoy().components() {
		c.Load(s)
	}

	// the cartridge state is all that should be left
	var cartSize int
	if g.cart != nil {
		cs := types.NewState()
		g.cart.Save(cs)
		cartSize = len(cs.Bytes())
	}
	if err := s.Err(); err != nil {
		return fmt.Errorf("gameboy: loading state: %w", err)
	}
	if s.Remaining() != cartSize {
		return fmt.Errorf("gameboy: loading state: %w: %d bytes left for a %d byte cartridge state", types.ErrStateCorrupt, s.Remaining(), cartSize)
	}
	return nil
}
