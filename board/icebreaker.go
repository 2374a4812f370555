package board

import "github.com/karshPrime/uni-traffic-light/light"

// ICEBreaker drives the intersection lamps of a 1BitSquared iCEBreaker
// through Pmod 1A. The walk lamps share the header with the two heads,
// so the board needs a single Pmod.
type ICEBreaker struct {
	mask uint8
}

var iceBreakerPins = []PinAssignment{
	{"ew-red", "P1A1"},
	{"ew-yellow", "P1A2"},
	{"ew-green", "P1A3"},
	{"walk-ew", "P1A4"},
	{"ns-red", "P1A7"},
	{"ns-yellow", "P1A8"},
	{"ns-green", "P1A9"},
	{"walk-ns", "P1A10"},
}

// NewICEBreaker creates an iCEBreaker adapter with all lamps dark.
func NewICEBreaker() *ICEBreaker {
	return &ICEBreaker{}
}

// Name returns the name of the board.
func (b *ICEBreaker) Name() string {
	return "iCEBreaker"
}

// PinMap returns the pin assignment of the board.
func (b *ICEBreaker) PinMap() []PinAssignment {
	return iceBreakerPins
}

// Apply packs the state into the Pmod 1A pin mask, the top row of the
// header in the low nibble.
func (b *ICEBreaker) Apply(state light.State) error {
	l, err := splitState(state)
	if err != nil {
		return err
	}

	var mask uint8
	for i, lit := range []bool{
		l.ewRed, l.ewYellow, l.ewGreen, l.walkEW,
		l.nsRed, l.nsYellow, l.nsGreen, l.walkNS,
	} {
		if lit {
			mask |= 1 << i
		}
	}

	b.mask = mask

	return nil
}

// Mask returns the pin mask of the last applied state.
func (b *ICEBreaker) Mask() uint8 {
	return b.mask
}
