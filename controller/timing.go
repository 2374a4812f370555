package controller

import "errors"

// Timing holds the phase durations of the controller, all in ticks.
type Timing struct {
	// MinGreen is the shortest time a green phase can run.
	MinGreen int

	// MaxGreen caps a green that is being extended by cars on the green
	// road while opposing requests wait.
	MaxGreen int

	// Yellow is the fixed duration of a yellow phase.
	Yellow int

	// AllRedClear is the fixed all-red duration between a yellow and the
	// opposing green.
	AllRedClear int

	// Walk is the solid WALK portion of a pedestrian display.
	Walk int

	// WalkFlash is the flashing clearance portion of a pedestrian display.
	WalkFlash int
}

// DefaultTiming returns the timing the controller ships with.
func DefaultTiming() Timing {
	return Timing{
		MinGreen:    8,
		MaxGreen:    20,
		Yellow:      3,
		AllRedClear: 2,
		Walk:        6,
		WalkFlash:   2,
	}
}

// Validate checks that the timing can drive a safe signal plan.
func (t Timing) Validate() error {
	if t.MinGreen <= 0 {
		return errors.New("MinGreen must be positive")
	}

	if t.Yellow <= 0 {
		return errors.New("Yellow must be positive")
	}

	if t.AllRedClear <= 0 {
		return errors.New("AllRedClear must be positive")
	}

	if t.MaxGreen < t.MinGreen {
		return errors.New("MaxGreen must not be smaller than MinGreen")
	}

	if t.Walk < 0 || t.WalkFlash < 0 {
		return errors.New("walk durations must not be negative")
	}

	if t.Walk+t.WalkFlash > t.MinGreen {
		return errors.New("a walk display must fit within MinGreen")
	}

	return nil
}
