package serial

import "io"

// Device is a device that can be attached to the Controller.
// Bits are exchanged most significant first.
type Device interface {
	Receive(bool)
	Send() bool
}

// nullDevice is an implementation of Device that
// simply returns true on Send and does nothing on
// Receive. This is most commonly used for when no
// device is attached to the Controller.
type nullDevice struct{}

// Receive does nothing.
func (n nullDevice) Receive(bool) {}

// Send always returns true.
func (n nullDevice) Send() bool { return true }

// WriterDevice collects the bits it receives into bytes and writes
// each completed byte to w. It behaves like a disconnected cable
// towards the Game Boy, always sending 1 bits. Test ROMs commonly
// report their results this way.
type WriterDevice struct {
	w     io.Writer
	data  uint8
	count uint8

	// Err holds the first error returned by w.
	Err error
}

// NewWriterDevice returns a WriterDevice writing to w.
func NewWriterDevice(w io.Writer) *WriterDevice {
	return &WriterDevice{w: w}
}

// Receive shifts bit into the current byte, flushing it to the
// writer once 8 bits have been received.
func (d *WriterDevice) Receive(bit bool) {
	d.data <<= 1
	if bit {
		d.data |= 1
	}
	d.count++
	if d.count == 8 {
		if _, err := d.w.Write([]byte{d.data}); err != nil && d.Err == nil {
			d.Err = err
		}
		d.data, d.count = 0, 0
	}
}

// Send always returns true.
func (d *WriterDevice) Send() bool { return true }
