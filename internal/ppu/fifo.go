package ppu

// FIFO is the background pixel FIFO. It holds up to 8 decoded
// colour numbers (0-3), shifted out one per dot during pixel
// transfer.
type FIFO struct {
	Data [8]uint8
	Size int
	head int
}

// Push appends a pixel to the FIFO. Pushing to a full FIFO
// drops the pixel.
func (f *FIFO) Push(colour uint8) {
	if f.Size == len(f.Data) {
		return
	}
	f.Data[(f.head+f.Size)&7] = colour
	f.Size++
}

// Pop removes and returns the oldest pixel in the FIFO.
func (f *FIFO) Pop() uint8 {
	colour := f.Data[f.head]
	f.head = (f.head + 1) & 7
	f.Size--
	return colour
}

// Reset empties the FIFO.
func (f *FIFO) Reset() {
	f.head, f.Size = 0, 0
}

// pushTile decodes a row of tile data into the FIFO, leftmost
// pixel first.
func (f *FIFO) pushTile(low, high uint8) {
	for bit := 7; bit >= 0; bit-- {
		f.Push((low>>bit)&1 | (high>>bit)&1<<1)
	}
}
