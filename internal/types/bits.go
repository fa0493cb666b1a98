package types

const (
	Bit0 = 1 << iota // 0b0000_0001
	Bit1             // 0b0000_0010
	Bit2             // 0b0000_0100
	Bit3             // 0b0000_1000
	Bit4             // 0b0001_0000
	Bit5             // 0b0010_0000
	Bit6             // 0b0100_0000
	Bit7             // 0b1000_0000
)

// SetBit returns value with bit n set or cleared according to on.
func SetBit(value uint8, n uint8, on bool) uint8 {
	if on {
		return value | 1<<n
	}
	return value &^ (1 << n)
}
