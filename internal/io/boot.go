package io

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
)

const (
	// DMG0 is the checksum of the DMG early boot ROM,
	// a variant that was found in very early DMG units and
	// only ever sold in Japan. In the case of a boot failure
	// it will flash the screen, rather than hanging after
	// the Nintendo logo.
	DMG0 = "a8f84a0ac44da5d3f0ee19f9cea80a8c"
	// DMG is the checksum of the DMG boot rom, which is
	// the most common boot ROM found in the original DMG-01
	// models.
	DMG = "32fbbd84168d3482956eb3c5051637f5"
	// MGB is the checksum of the MGB boot ROM, which differs
	// only by a single byte from the DMG boot ROM, loading
	// the value 0xFF into the A register, rather than 0x01.
	MGB = "71a378e71ff30b2d8a1f02bf5c7896aa"
)

var bootROMNames = map[string]string{
	DMG0: "DMG0",
	DMG:  "DMG",
	MGB:  "MGB",
}

// WhichBootROM returns the name of a known boot ROM, or "unknown".
func WhichBootROM(rom []byte) string {
	sum := md5.Sum(rom)
	if name, ok := bootROMNames[hex.EncodeToString(sum[:])]; ok {
		return name
	}
	return "unknown"
}

// MapBootROM maps rom over 0x0000-0x00FF until a non-zero value
// is written to BDIS (0xFF50).
func (b *Bus) MapBootROM(rom []byte) error {
	if len(rom) != 0x100 {
		return fmt.Errorf("io: boot rom must be 256 bytes, got %d", len(rom))
	}
	b.boot = append([]byte(nil), rom...)
	b.bootMapped = true
	return nil
}

// BootROMMapped reports whether the boot ROM overlay is active.
func (b *Bus) BootROMMapped() bool {
	return b.bootMapped
}
