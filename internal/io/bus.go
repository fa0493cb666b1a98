// Package io provides the address bus of the Game Boy. Every
// component reads and writes memory through a Bus, which routes
// the cartridge regions to the attached cartridge, mirrors echo
// RAM, and dispatches I/O register accesses to the handlers the
// components reserve.
package io

import (
	"fmt"

	"github.com/thelolagemann/dmgcore/internal/cartridge"
	"github.com/thelolagemann/dmgcore/internal/types"
)

// WriteHandler is a function that handles writing to a memory address.
// It should return the new value to be written back to the memory address.
type WriteHandler func(byte) byte

// LazyReader is a function that computes the value of a memory
// address when it is read.
type LazyReader func() byte

// Bus is the 64 KiB address space shared by the CPU, PPU, timer
// and the other I/O components.
type Bus struct {
	data [0x10000]byte

	writeHandlers [0x100]WriteHandler
	lazyReaders   [0x100]LazyReader

	cart cartridge.Cartridge

	boot       []byte
	bootMapped bool

	// flat disables region routing, echo mirroring and I/O handlers,
	// leaving a plain 64 KiB RAM.
	flat bool
}

// NewBus returns a new Bus with no cartridge attached. IF reads
// back its unused upper bits as 1.
func NewBus() *Bus {
	b := &Bus{}
	b.data[types.IF] = 0xE0

	b.ReserveAddress(types.IF, func(v byte) byte {
		return v | 0xE0
	})
	b.ReserveAddress(types.BDIS, func(v byte) byte {
		if v != 0 {
			b.bootMapped = false
		}
		return 0xFF
	})

	return b
}

// Flat switches the bus into flat mode, in which every address
// is plain RAM. It is used by harnesses that drive the CPU from
// recorded fixtures.
func (b *Bus) Flat() {
	b.flat = true
}

// AttachCartridge routes 0x0000-0x7FFF and 0xA000-0xBFFF to c.
func (b *Bus) AttachCartridge(c cartridge.Cartridge) {
	b.cart = c
}

// Cartridge returns the attached cartridge, or nil.
func (b *Bus) Cartridge() cartridge.Cartridge {
	return b.cart
}

// ReserveAddress reserves an I/O address on the bus. Writes to addr
// are passed through handler before being stored.
func (b *Bus) ReserveAddress(addr uint16, handler WriteHandler) {
	if addr < types.IOStart {
		panic(fmt.Sprintf("address %04X is not an I/O address", addr))
	}
	// check to make sure address hasn't already been reserved
	if b.writeHandlers[addr&0xFF] != nil {
		panic(fmt.Sprintf("address %04X has already been reserved", addr))
	}
	b.writeHandlers[addr&0xFF] = handler
}

// ReserveLazyReader reserves an I/O address whose value is computed
// by reader whenever it is read.
func (b *Bus) ReserveLazyReader(addr uint16, reader LazyReader) {
	if addr < types.IOStart {
		panic(fmt.Sprintf("address %04X is not an I/O address", addr))
	}
	if b.lazyReaders[addr&0xFF] != nil {
		panic(fmt.Sprintf("address %04X already has a reader", addr))
	}
	b.lazyReaders[addr&0xFF] = reader
}

// Read returns the value at addr, as seen by the CPU.
func (b *Bus) Read(addr uint16) byte {
	if b.flat {
		return b.data[addr]
	}

	switch {
	case addr < 0x0100 && b.bootMapped:
		return b.boot[addr]
	case addr <= types.ROMXEnd:
		if b.cart != nil {
			return b.cart.Read(addr)
		}
	case addr >= types.ERAMStart && addr <= types.ERAMEnd:
		if b.cart != nil {
			return b.cart.Read(addr)
		}
	case addr >= types.EchoStart && addr <= types.EchoEnd:
		return b.data[addr-types.EchoOffset]
	case addr > types.OAMEnd && addr <= types.UnusedEnd:
		return 0xFF
	case addr >= types.IOStart:
		if r := b.lazyReaders[addr&0xFF]; r != nil {
			return r()
		}
	}

	return b.data[addr]
}

// Write writes value to addr, as the CPU would.
func (b *Bus) Write(addr uint16, value byte) {
	if b.flat {
		b.data[addr] = value
		return
	}

	switch {
	case addr <= types.ROMXEnd:
		if b.cart != nil {
			b.cart.Write(addr, value)
			return
		}
	case addr >= types.ERAMStart && addr <= types.ERAMEnd:
		if b.cart != nil {
			b.cart.Write(addr, value)
			return
		}
	case addr >= types.EchoStart && addr <= types.EchoEnd:
		addr -= types.EchoOffset
	case addr > types.OAMEnd && addr <= types.UnusedEnd:
		return
	case addr >= types.IOStart:
		if h := b.writeHandlers[addr&0xFF]; h != nil {
			value = h(value)
		}
	}

	b.data[addr] = value
}

// Read16 reads a little-endian word from addr.
func (b *Bus) Read16(addr uint16) uint16 {
	return uint16(b.Read(addr)) | uint16(b.Read(addr+1))<<8
}

// Write16 writes value as a little-endian word to addr.
func (b *Bus) Write16(addr uint16, value uint16) {
	b.Write(addr, uint8(value))
	b.Write(addr+1, uint8(value>>8))
}

// Get gets the value at the specified memory address, bypassing
// any routing or lazy readers.
func (b *Bus) Get(addr uint16) byte {
	return b.data[addr]
}

// Set sets the value at the specified memory address. This function
// ignores the write handler and just sets the value.
func (b *Bus) Set(addr uint16, value byte) {
	b.data[addr] = value
}

// Load restores the bus memory from s.
func (b *Bus) Load(s *types.State) {
	s.ReadData(b.data[:])
	// a state saved mid-boot can only resume the overlay if a
	// boot ROM has been mapped
	b.bootMapped = s.ReadBool() && b.boot != nil
}

// Save writes the bus memory to s.
func (b *Bus) Save(s *types.State) {
	s.WriteData(b.data[:])
	s.WriteBool(b.bootMapped)
}
