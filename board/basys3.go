package board

import "github.com/karshPrime/uni-traffic-light/light"

// Basys3 drives the intersection lamps of a Digilent Basys-3 through its
// Pmod headers. JA carries the east-west signal head together with the
// walk lamp of the crossing on its pole, JB the north-south side.
type Basys3 struct {
	mask uint8
}

var basys3Pins = []PinAssignment{
	{"ew-red", "JA1"},
	{"ew-yellow", "JA2"},
	{"ew-green", "JA3"},
	{"walk-ns", "JA4"},
	{"ns-red", "JB1"},
	{"ns-yellow", "JB2"},
	{"ns-green", "JB3"},
	{"walk-ew", "JB4"},
}

// NewBasys3 creates a Basys-3 adapter with all lamps dark.
func NewBasys3() *Basys3 {
	return &Basys3{}
}

// Name returns the name of the board.
func (b *Basys3) Name() string {
	return "Basys-3"
}

// PinMap returns the pin assignment of the board.
func (b *Basys3) PinMap() []PinAssignment {
	return basys3Pins
}

// Apply packs the state into the Pmod pin mask, JA in the low nibble.
func (b *Basys3) Apply(state light.State) error {
	l, err := splitState(state)
	if err != nil {
		return err
	}

	var mask uint8
	for i, lit := range []bool{
		l.ewRed, l.ewYellow, l.ewGreen, l.walkNS,
		l.nsRed, l.nsYellow, l.nsGreen, l.walkEW,
	} {
		if lit {
			mask |= 1 << i
		}
	}

	b.mask = mask

	return nil
}

// Mask returns the pin mask of the last applied state.
func (b *Basys3) Mask() uint8 {
	return b.mask
}
