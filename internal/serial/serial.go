// Package serial provides the serial port of the Game Boy. Transfers
// started with the internal clock complete immediately, exchanging
// all 8 bits of types.SB with the attached Device.
package serial

import (
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/io"
	"github.com/thelolagemann/dmgcore/internal/types"
)

// Controller is the serial controller. It is responsible for sending and
// receiving data to and from devices.
// Before a transfer, data holds the next byte to be sent. AKA types.SB
// During a transfer, each bit the leftmost bit of data is sent to the
// attached device, and shifted out of data, and the incoming bit is
// shifted into data.
//
// example:
//
//	Before : data = o7 o6 o5 o4 o3 o2 o1 o0
//	Cycle 1: data = o6 o5 o4 o3 o2 o1 o0 i0
//	...
//	Cycle 8: data = i0 i1 i2 i3 i4 i5 i6 i7
//
// Where o0-o7 are the outgoing bits, and i0-i7 are the incoming bits.
type Controller struct {
	b              *io.Bus
	irq            *interrupts.Service
	AttachedDevice Device // the device that is attached to this controller.
}

// NewController creates a new Controller, attached to a nullDevice,
// which acts as if no cable is plugged in.
func NewController(b *io.Bus, irq *interrupts.Service) *Controller {
	c := &Controller{
		b:              b,
		irq:            irq,
		AttachedDevice: nullDevice{},
	}
	b.ReserveAddress(types.SC, func(v byte) byte {
		// only transfers clocked by this Game Boy can complete
		if v&types.Bit7 != 0 && v&types.Bit0 != 0 {
			c.transfer()
			v &^= types.Bit7
		}
		return v | 0x7E // bits 1-6 are always set
	})
	b.Set(types.SC, 0x7E)

	return c
}

// Attach attaches a Device to the Controller.
func (c *Controller) Attach(d Device) {
	c.AttachedDevice = d
}

func (c *Controller) transfer() {
	data := c.b.Get(types.SB)
	for i := 0; i < 8; i++ {
		bit := c.AttachedDevice.Send()
		c.AttachedDevice.Receive(data&types.Bit7 != 0)
		data <<= 1
		if bit {
			data |= 1
		}
	}
	c.b.Set(types.SB, data)
	c.irq.Request(interrupts.SerialFlag)
}
