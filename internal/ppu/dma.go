package ppu

import (
	"github.com/thelolagemann/dmgcore/internal/io"
	"github.com/thelolagemann/dmgcore/internal/types"
)

// oamSize is the number of bytes copied by an OAM DMA transfer.
const oamSize = 0xA0

// reserveDMA sets up the OAM DMA register. A write copies 160
// bytes from value<<8 into OAM. The transfer completes
// immediately, the 640 dots it takes on hardware are not
// modelled.
func reserveDMA(b *io.Bus) {
	b.ReserveAddress(types.DMA, func(v byte) byte {
		source := uint16(v) << 8

		// sources above 0xDFFF read from the echo of WRAM
		if source >= types.EchoStart {
			source &^= 0x2000
		}
		for i := uint16(0); i < oamSize; i++ {
			b.Set(types.OAMStart+i, b.Read(source+i))
		}

		return v
	})
}
