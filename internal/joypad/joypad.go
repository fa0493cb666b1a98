// Package joypad provides an implementation of the Game Boy
// joypad. The joypad is used to read the state of the buttons
// and the direction keys.
package joypad

import (
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/io"
	"github.com/thelolagemann/dmgcore/internal/types"
)

// Button represents a physical button on the Game Boy.
type Button = uint8

const (
	// ButtonA is the A button.
	ButtonA Button = iota
	// ButtonB is the B button.
	ButtonB
	// ButtonSelect is the Select button.
	ButtonSelect
	// ButtonStart is the Start button.
	ButtonStart
	// ButtonRight is the Right button.
	ButtonRight
	// ButtonLeft is the Left button.
	ButtonLeft
	// ButtonUp is the Up button.
	ButtonUp
	// ButtonDown is the Down button.
	ButtonDown
)

// State represents the state of the joypad. Select either
// action or direction buttons by writing to the register,
// and then read out bits 0-3 to get the state of the buttons.
//
//	Bit 7 - Not used
//	Bit 6 - Not used
//	Bit 5 - P15 Select Button Keys      (0=Select)
//	Bit 4 - P14 Select Direction Keys   (0=Select)
//	Bit 3 - P13 Input Down  or Start    (0=Pressed) (Read Only)
//	Bit 2 - P12 Input Up    or Select   (0=Pressed) (Read Only)
//	Bit 1 - P11 Input Left  or Button B (0=Pressed) (Read Only)
//	Bit 0 - P10 Input Right or Button A (0=Pressed) (Read Only)
type State struct {
	// State is the current state of the joypad. The lower 4
	// bits hold the action buttons and the upper 4 bits the
	// direction buttons. A 1 in a bit indicates that the
	// button is pressed.
	State Button

	b   *io.Bus
	irq *interrupts.Service
}

// New returns a new joypad state.
func New(b *io.Bus, irq *interrupts.Service) *State {
	s := &State{
		b:   b,
		irq: irq,
	}
	b.ReserveAddress(types.P1, func(v byte) byte {
		return v&0x30 | 0xC0
	})
	b.ReserveLazyReader(types.P1, s.read)
	b.Set(types.P1, 0xCF)

	return s
}

// read multiplexes the two button groups through P1.
func (s *State) read() byte {
	sel := types.JoypadSelect(s.b.Get(types.P1))
	pressed := uint8(0)
	if sel.ActionSelected() {
		pressed |= s.State & 0xF
	}
	if sel.DirectionSelected() {
		pressed |= s.State >> 4 & 0xF
	}
	return uint8(sel)&0x30 | 0xC0 | (^pressed & 0xF)
}

// Press presses a button, requesting a joypad interrupt if
// the button's group is selected.
func (s *State) Press(button Button) {
	before := s.read()
	s.State |= types.Bit0 << button
	if before&^s.read()&0xF != 0 {
		s.irq.Request(interrupts.JoypadFlag)
	}
}

// Release releases a button.
func (s *State) Release(button Button) {
	s.State &^= types.Bit0 << button
}

var _ types.Stater = (*State)(nil)

func (s *State) Load(st *types.State) {
	s.State = st.Read8()
}

func (s *State) Save(st *types.State) {
	st.Write8(s.State)
}
