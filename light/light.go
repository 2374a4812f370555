// Package light defines the output vocabulary of the intersection: the
// signal heads of the two roads, the pedestrian walk lamps, and the update
// message the controller publishes whenever the displayed state changes.
package light

import "fmt"

// A Signal is the color a road's signal head shows.
type Signal int

// The three signal colors.
const (
	SignalRed Signal = iota
	SignalYellow
	SignalGreen
)

func (s Signal) String() string {
	switch s {
	case SignalRed:
		return "Red"
	case SignalYellow:
		return "Yellow"
	case SignalGreen:
		return "Green"
	}

	return "InvalidSignal"
}

// A WalkLamp is the display of a pedestrian walk lamp. The flashing
// clearance alternates between FlashLit and FlashDark tick by tick.
type WalkLamp int

// The walk lamp displays.
const (
	WalkDontWalk WalkLamp = iota
	WalkWalk
	WalkFlashLit
	WalkFlashDark
)

func (w WalkLamp) String() string {
	switch w {
	case WalkDontWalk:
		return "DontWalk"
	case WalkWalk:
		return "Walk"
	case WalkFlashLit:
		return "FlashLit"
	case WalkFlashDark:
		return "FlashDark"
	}

	return "InvalidWalkLamp"
}

// A State is everything the intersection displays in one tick. The zero
// value is the all-red, dont-walk state the controller powers on with.
type State struct {
	EW, NS         Signal
	WalkEW, WalkNS WalkLamp
}

func (s State) String() string {
	return fmt.Sprintf("EW:%s NS:%s WalkEW:%s WalkNS:%s",
		s.EW, s.NS, s.WalkEW, s.WalkNS)
}
