// Package timer provides an implementation of the Game Boy
// timer. A free-running 16-bit counter drives the divider
// (types.DIV, its upper byte) and, on the falling edge of
// the bit selected by types.TAC, increments types.TIMA.
package timer

import (
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/io"
	"github.com/thelolagemann/dmgcore/internal/types"
)

// Controller is a timer controller. It is used to generate
// interrupts at a specific frequency. The frequency can be
// configured using the types.TAC register.
type Controller struct {
	counter uint16

	// lastBits holds the last sampled value of the monitored
	// counter bit for each clock select option.
	lastBits [4]bool

	b   *io.Bus
	irq *interrupts.Service
}

// NewController returns a new timer controller, and reserves
// the timer registers on the bus.
func NewController(b *io.Bus, irq *interrupts.Service) *Controller {
	c := &Controller{
		b:   b,
		irq: irq,
	}

	b.ReserveLazyReader(types.DIV, func() byte {
		return uint8(c.counter >> 8)
	})
	b.ReserveAddress(types.DIV, func(byte) byte {
		c.SetDivider(0)
		return 0
	})
	b.ReserveAddress(types.TAC, func(v byte) byte {
		oldSignal := c.signal()
		b.Set(types.TAC, v|0xF8)
		// disabling the timer, or selecting a bit that is low, while
		// the monitored bit is high produces a falling edge
		if oldSignal && !c.signal() {
			c.increment()
		}
		return v | 0xF8
	})
	b.Set(types.TAC, 0xF8)

	return c
}

// signal returns the current input of the falling edge detector.
func (c *Controller) signal() bool {
	tac := types.TimerControl(c.b.Get(types.TAC))
	return tac.Enabled() && c.counter&(1<<tac.MonitoredBit()) != 0
}

// Tick advances the timer by the given number of M-cycles.
// The internal counter is sampled every T-cycle.
func (c *Controller) Tick(mCycles int) {
	for i := 0; i < mCycles*4; i++ {
		c.counter++
		c.sample()
	}
}

func (c *Controller) sample() {
	tac := types.TimerControl(c.b.Get(types.TAC))
	selected := tac.ClockSelect()
	for sel := uint8(0); sel < 4; sel++ {
		bit := c.counter&(1<<types.TimerControl(sel).MonitoredBit()) != 0
		if sel == selected && tac.Enabled() && c.lastBits[sel] && !bit {
			c.increment()
		}
		c.lastBits[sel] = bit
	}
}

// increment increments TIMA, reloading it from TMA and
// requesting a timer interrupt when it overflows.
func (c *Controller) increment() {
	tima := c.b.Get(types.TIMA) + 1
	if tima == 0 {
		tima = c.b.Get(types.TMA)
		c.irq.Request(interrupts.TimerFlag)
	}
	c.b.Set(types.TIMA, tima)
}

// Divider returns the full 16-bit internal counter.
func (c *Controller) Divider() uint16 {
	return c.counter
}

// SetDivider sets the internal counter. Resetting the counter
// while the monitored bit is high increments TIMA.
func (c *Controller) SetDivider(v uint16) {
	oldSignal := c.signal()
	c.counter = v
	if oldSignal && !c.signal() {
		c.increment()
	}
	for sel := uint8(0); sel < 4; sel++ {
		c.lastBits[sel] = c.counter&(1<<types.TimerControl(sel).MonitoredBit()) != 0
	}
}

var _ types.Stater = (*Controller)(nil)

// Load implements the types.Stater interface. TIMA, TMA and
// TAC are restored along with the bus.
//
// The values are loaded in the following order:
//   - counter (uint16)
//   - lastBits (4 x bool)
func (c *Controller) Load(s *types.State) {
	c.counter = s.Read16()
	for i := range c.lastBits {
		c.lastBits[i] = s.ReadBool()
	}
}

// Save implements the types.Stater interface.
func (c *Controller) Save(s *types.State) {
	s.Write16(c.counter)
	for _, b := range c.lastBits {
		s.WriteBool(b)
	}
}
