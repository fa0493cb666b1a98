package palette

import "testing"

func TestShade(t *testing.T) {
	tests := []struct {
		register uint8
		want     [4]uint8
	}{
		{0xE4, [4]uint8{0, 1, 2, 3}},
		{0xFC, [4]uint8{0, 3, 3, 3}},
		{0x1B, [4]uint8{3, 2, 1, 0}},
		{0x00, [4]uint8{0, 0, 0, 0}},
	}
	for _, tt := range tests {
		for colour, want := range tt.want {
			if got := Shade(tt.register, uint8(colour)); got != want {
				t.Errorf("Shade(%02x, %d) = %d, want %d", tt.register, colour, got, want)
			}
		}
	}
}

func TestPalette_RGBA(t *testing.T) {
	for _, p := range Palettes {
		for shade := uint8(0); shade < 4; shade++ {
			c := p.RGBA(shade)
			if want := p.Colors[shade]; c.R != want[0] || c.G != want[1] || c.B != want[2] || c.A != 0xFF {
				t.Errorf("RGBA(%d) = %v, want %v", shade, c, want)
			}
		}
	}
	if c := Palettes[Greyscale].RGBA(3); c.R != 0 {
		t.Errorf("shade 3 should be black, got %v", c)
	}
	if Palettes[Greyscale].RGBA(4) != Palettes[Greyscale].RGBA(0) {
		t.Errorf("shade should wrap to its low 2 bits")
	}
}
