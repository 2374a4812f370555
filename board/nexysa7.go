package board

import "github.com/karshPrime/uni-traffic-light/light"

// NexysA7 drives the intersection lamps on the low user LEDs of a
// Digilent Nexys A7. The two signal heads sit side by side on LD0 to
// LD5 and the walk lamps on LD6 and LD7.
type NexysA7 struct {
	mask uint8
}

var nexysA7Pins = []PinAssignment{
	{"ew-red", "LD0"},
	{"ew-yellow", "LD1"},
	{"ew-green", "LD2"},
	{"ns-red", "LD3"},
	{"ns-yellow", "LD4"},
	{"ns-green", "LD5"},
	{"walk-ew", "LD6"},
	{"walk-ns", "LD7"},
}

// NewNexysA7 creates a Nexys A7 adapter with all lamps dark.
func NewNexysA7() *NexysA7 {
	return &NexysA7{}
}

// Name returns the name of the board.
func (b *NexysA7) Name() string {
	return "Nexys A7"
}

// PinMap returns the pin assignment of the board.
func (b *NexysA7) PinMap() []PinAssignment {
	return nexysA7Pins
}

// Apply packs the state into the LED mask, LD0 as the lowest bit.
func (b *NexysA7) Apply(state light.State) error {
	l, err := splitState(state)
	if err != nil {
		return err
	}

	var mask uint8
	for i, lit := range []bool{
		l.ewRed, l.ewYellow, l.ewGreen,
		l.nsRed, l.nsYellow, l.nsGreen,
		l.walkEW, l.walkNS,
	} {
		if lit {
			mask |= 1 << i
		}
	}

	b.mask = mask

	return nil
}

// Mask returns the pin mask of the last applied state.
func (b *NexysA7) Mask() uint8 {
	return b.mask
}
