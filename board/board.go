// Package board declares the lamp peripherals of the supported
// development boards. An adapter maps a light.State onto the pins of one
// board. The simulation stops at the pin mask: no GPIO is touched.
package board

import (
	"fmt"

	"github.com/karshPrime/uni-traffic-light/light"
)

// An Adapter drives the lamps of one board.
type Adapter interface {
	// Name returns the name of the board.
	Name() string

	// Apply drives the lamps of the board to show the state.
	Apply(state light.State) error
}

// A PinAssignment names the physical pin that carries one lamp.
type PinAssignment struct {
	Lamp string
	Pin  string
}

// A PinMapper reports the pin assignment of its board.
type PinMapper interface {
	PinMap() []PinAssignment
}

// New creates the adapter for a named board.
func New(name string) (Adapter, error) {
	switch name {
	case "basys3":
		return NewBasys3(), nil
	case "nexys-a7":
		return NewNexysA7(), nil
	case "de10-lite":
		return NewDE10Lite(), nil
	case "icebreaker":
		return NewICEBreaker(), nil
	case "go96":
		return NewGo96(), nil
	}

	return nil, fmt.Errorf("unknown board %q", name)
}

// Names lists the boards New accepts.
func Names() []string {
	return []string{"basys3", "nexys-a7", "de10-lite", "icebreaker", "go96"}
}

// lamps is the canonical decomposition of a light.State into the eight
// intersection lamps every supported board wires up. A walk lamp is lit
// during WALK and the lit half of the clearance flash.
type lamps struct {
	ewRed, ewYellow, ewGreen bool
	nsRed, nsYellow, nsGreen bool
	walkEW, walkNS           bool
}

func splitState(state light.State) (lamps, error) {
	var l lamps
	var err error

	l.ewRed, l.ewYellow, l.ewGreen, err = signalLamps(state.EW)
	if err != nil {
		return lamps{}, fmt.Errorf("east-west road: %w", err)
	}

	l.nsRed, l.nsYellow, l.nsGreen, err = signalLamps(state.NS)
	if err != nil {
		return lamps{}, fmt.Errorf("north-south road: %w", err)
	}

	l.walkEW, err = walkLit(state.WalkEW)
	if err != nil {
		return lamps{}, fmt.Errorf("east-west crossing: %w", err)
	}

	l.walkNS, err = walkLit(state.WalkNS)
	if err != nil {
		return lamps{}, fmt.Errorf("north-south crossing: %w", err)
	}

	return l, nil
}

func signalLamps(s light.Signal) (red, yellow, green bool, err error) {
	switch s {
	case light.SignalRed:
		return true, false, false, nil
	case light.SignalYellow:
		return false, true, false, nil
	case light.SignalGreen:
		return false, false, true, nil
	}

	return false, false, false, fmt.Errorf("unknown signal %d", s)
}

func walkLit(lamp light.WalkLamp) (bool, error) {
	switch lamp {
	case light.WalkWalk, light.WalkFlashLit:
		return true, nil
	case light.WalkDontWalk, light.WalkFlashDark:
		return false, nil
	}

	return false, fmt.Errorf("unknown walk lamp %d", lamp)
}
