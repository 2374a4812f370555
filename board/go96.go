package board

import "github.com/karshPrime/uni-traffic-light/light"

// Go96 drives the intersection lamps through the twelve GPIO lines of a
// 96Boards low-speed debug header. The lines are named GPIO-A to GPIO-L
// and sit on header pins 23 to 34; the lamps take the first eight.
type Go96 struct {
	mask uint16
}

var go96Pins = []PinAssignment{
	{"ew-red", "GPIO-A"},
	{"ew-yellow", "GPIO-B"},
	{"ew-green", "GPIO-C"},
	{"ns-red", "GPIO-D"},
	{"ns-yellow", "GPIO-E"},
	{"ns-green", "GPIO-F"},
	{"walk-ew", "GPIO-G"},
	{"walk-ns", "GPIO-H"},
}

// NewGo96 creates a debug header adapter with all lamps dark.
func NewGo96() *Go96 {
	return &Go96{}
}

// Name returns the name of the board.
func (b *Go96) Name() string {
	return "Go96 debug header"
}

// PinMap returns the pin assignment of the board.
func (b *Go96) PinMap() []PinAssignment {
	return go96Pins
}

// Apply packs the state into the 12-bit GPIO mask, GPIO-A as the lowest
// bit. The four spare lines stay low.
func (b *Go96) Apply(state light.State) error {
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
			mask |= 1 << i
		}
	}

	b.mask = mask

	return nil
}

// Mask returns the pin mask of the last applied state.
func (b *Go96) Mask() uint16 {
	return b.mask
}
