package board

import "github.com/karshPrime/uni-traffic-light/light"

// DE10Lite drives the intersection lamps on the red user LEDs of a
// Terasic DE10-Lite. The bar reads left to right, so the east-west head
// occupies the high bits and the walk lamps the low ones.
type DE10Lite struct {
	mask uint16
}

var de10LitePins = []PinAssignment{
	{"ew-red", "LEDR9"},
	{"ew-yellow", "LEDR8"},
	{"ew-green", "LEDR7"},
	{"ns-red", "LEDR6"},
	{"ns-yellow", "LEDR5"},
	{"ns-green", "LEDR4"},
	{"walk-ew", "LEDR3"},
	{"walk-ns", "LEDR2"},
}

// NewDE10Lite creates a DE10-Lite adapter with all lamps dark.
func NewDE10Lite() *DE10Lite {
	return &DE10Lite{}
}

// Name returns the name of the board.
func (b *DE10Lite) Name() string {
	return "DE10-Lite"
}

// PinMap returns the pin assignment of the board.
func (b *DE10Lite) PinMap() []PinAssignment {
	return de10LitePins
}

// Apply packs the state into the 10-bit LEDR mask, LEDR9 first.
func (b *DE10Lite) Apply(state light.State) error {
	l, err := splitState(state)
	if err != nil {
		return err
	}

	var mask uint16
	for i, lit := range []bool{
		l.ewRed, l.ewYellow, l.ewGreen,
		l.nsRed, l.nsYellow, l.nsGreen,
		l.walkEW, l.walkNS,
	} {
		if lit {
			mask |= 1 << (9 - i)
		}
	}

	b.mask = mask

	return nil
}

// Mask returns the pin mask of the last applied state.
func (b *DE10Lite) Mask() uint16 {
	return b.mask
}
