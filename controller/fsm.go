package controller

import (
	"github.com/karshPrime/uni-traffic-light/light"
	"github.com/karshPrime/uni-traffic-light/traffic"
)

// Phase identifies one stage of the signal cycle.
type Phase int

// The cycle visits the phases in this order and wraps around. The clear
// phases keep both roads red while the right of way moves over.
const (
	PhaseGreenEW Phase = iota
	PhaseYellowEW
	PhaseClearEW
	PhaseGreenNS
	PhaseYellowNS
	PhaseClearNS
)

func (p Phase) String() string {
	switch p {
	case PhaseGreenEW:
		return "GreenEW"
	case PhaseYellowEW:
		return "YellowEW"
	case PhaseClearEW:
		return "ClearEW"
	case PhaseGreenNS:
		return "GreenNS"
	case PhaseYellowNS:
		return "YellowNS"
	case PhaseClearNS:
		return "ClearNS"
	}

	return "Unknown"
}

// machine is the synchronous core of the controller. It advances one
// tick at a time and owns the phase counter and the request latches.
type machine struct {
	timing Timing

	phase Phase
	count int

	carPresent [traffic.NumRoads]bool
	carWait    [traffic.NumRoads]bool
	pedWait    [traffic.NumCrossings]bool

	servingWalk bool
}

func newMachine(timing Timing) *machine {
	return &machine{
		timing: timing,
		phase:  PhaseClearNS,
	}
}

// reset forces the machine into the all-red clearance that precedes the
// east-west green and drops every latched request. Car presence is kept,
// as it mirrors the sensor wire rather than a stored request.
func (m *machine) reset() {
	m.phase = PhaseClearNS
	m.count = 0
	m.carWait = [traffic.NumRoads]bool{}
	m.pedWait = [traffic.NumCrossings]bool{}
	m.servingWalk = false
}

// step advances the machine by one tick.
func (m *machine) step() {
	if m.count < m.phaseLimit() {
		m.count++
	}

	next := m.nextPhase()
	if next != m.phase {
		m.enterPhase(next)
	}

	m.latchCarRequests()
}

// phaseLimit returns the tick count the current phase never counts past.
func (m *machine) phaseLimit() int {
	switch m.phase {
	case PhaseGreenEW, PhaseGreenNS:
		return m.timing.MaxGreen
	case PhaseYellowEW, PhaseYellowNS:
		return m.timing.Yellow
	}

	return m.timing.AllRedClear
}

func (m *machine) nextPhase() Phase {
	switch m.phase {
	case PhaseGreenEW:
		return m.greenSuccessor(traffic.RoadEW, PhaseYellowEW)
	case PhaseYellowEW:
		if m.count >= m.timing.Yellow {
			return PhaseClearEW
		}
	case PhaseClearEW:
		if m.count >= m.timing.AllRedClear {
			return PhaseGreenNS
		}
	case PhaseGreenNS:
		return m.greenSuccessor(traffic.RoadNS, PhaseYellowNS)
	case PhaseYellowNS:
		if m.count >= m.timing.Yellow {
			return PhaseClearNS
		}
	case PhaseClearNS:
		if m.count >= m.timing.AllRedClear {
			return PhaseGreenEW
		}
	}

	return m.phase
}

// greenSuccessor decides whether the running green may end this tick. A
// green holds until MinGreen, then yields to opposing demand, unless a
// car still on the green road extends it up to MaxGreen.
func (m *machine) greenSuccessor(road traffic.Road, yellow Phase) Phase {
	if m.count < m.timing.MinGreen {
		return m.phase
	}

	if !m.opposingDemand(road) {
		return m.phase
	}

	if m.carPresent[road] && m.count < m.timing.MaxGreen {
		return m.phase
	}

	return yellow
}

// opposingDemand reports whether any latched request cannot be served by
// the green currently running. Walk requests latched after the green
// began always count, as they are only served at the next green entry.
func (m *machine) opposingDemand(green traffic.Road) bool {
	other := traffic.RoadEW
	if green == traffic.RoadEW {
		other = traffic.RoadNS
	}

	return m.carWait[other] ||
		m.pedWait[traffic.CrossingEW] ||
		m.pedWait[traffic.CrossingNS]
}

// enterPhase moves to phase p. Entering a green serves the latches the
// green grants: the car latch of its own road and the walk latch of the
// crossing over the stopped road.
func (m *machine) enterPhase(p Phase) {
	m.phase = p
	m.count = 0
	m.servingWalk = false

	switch p {
	case PhaseGreenEW:
		m.carWait[traffic.RoadEW] = false
		m.servingWalk = m.pedWait[traffic.CrossingNS]
		m.pedWait[traffic.CrossingNS] = false
	case PhaseGreenNS:
		m.carWait[traffic.RoadNS] = false
		m.servingWalk = m.pedWait[traffic.CrossingEW]
		m.pedWait[traffic.CrossingEW] = false
	}
}

// latchCarRequests records cars standing on roads that do not hold the
// green. A latch survives until its road receives the green.
func (m *machine) latchCarRequests() {
	for road := traffic.RoadEW; road < traffic.Road(traffic.NumRoads); road++ {
		if m.roadHasGreen(road) {
			continue
		}

		if m.carPresent[road] {
			m.carWait[road] = true
		}
	}
}

func (m *machine) roadHasGreen(road traffic.Road) bool {
	switch m.phase {
	case PhaseGreenEW:
		return road == traffic.RoadEW
	case PhaseGreenNS:
		return road == traffic.RoadNS
	}

	return false
}

// lightState derives the lamp outputs from the phase and tick count.
func (m *machine) lightState() light.State {
	s := light.State{
		EW: light.SignalRed,
		NS: light.SignalRed,
	}

	switch m.phase {
	case PhaseGreenEW:
		s.EW = light.SignalGreen
		s.WalkNS = m.walkLamp()
	case PhaseYellowEW:
		s.EW = light.SignalYellow
	case PhaseGreenNS:
		s.NS = light.SignalGreen
		s.WalkEW = m.walkLamp()
	case PhaseYellowNS:
		s.NS = light.SignalYellow
	}

	return s
}

// walkLamp maps the green tick count onto the pedestrian display: solid
// WALK first, then a clearance flash that is lit on even counts.
func (m *machine) walkLamp() light.WalkLamp {
	if !m.servingWalk {
		return light.WalkDontWalk
	}

	if m.count < m.timing.Walk {
		return light.WalkWalk
	}

	if m.count < m.timing.Walk+m.timing.WalkFlash {
		if m.count%2 == 0 {
			return light.WalkFlashLit
		}

		return light.WalkFlashDark
	}

	return light.WalkDontWalk
}
