package controller

import (
	"github.com/karshPrime/uni-traffic-light/sim"
	"github.com/karshPrime/uni-traffic-light/traffic"
)

// HookPosPhaseChange marks the controller leaving one phase for the
// next. The hook item is a PhaseChange.
var HookPosPhaseChange = &sim.HookPos{Name: "PhaseChange"}

// HookPosRequestLatched marks a request being latched. The hook item is
// a RequestLatched.
var HookPosRequestLatched = &sim.HookPos{Name: "RequestLatched"}

// HookPosRequestServed marks a latched request receiving its green or
// walk. The hook item is a RequestServed.
var HookPosRequestServed = &sim.HookPos{Name: "RequestServed"}

// RequestKind names one of the latches the controller arbitrates.
type RequestKind int

const (
	RequestCarEW RequestKind = iota
	RequestCarNS
	RequestPedEW
	RequestPedNS

	numRequestKinds int = iota
)

func (k RequestKind) String() string {
	switch k {
	case RequestCarEW:
		return "CarEW"
	case RequestCarNS:
		return "CarNS"
	case RequestPedEW:
		return "PedEW"
	case RequestPedNS:
		return "PedNS"
	}

	return "Unknown"
}

func carRequest(road traffic.Road) RequestKind {
	if road == traffic.RoadEW {
		return RequestCarEW
	}

	return RequestCarNS
}

func pedRequest(crossing traffic.Crossing) RequestKind {
	if crossing == traffic.CrossingEW {
		return RequestPedEW
	}

	return RequestPedNS
}

// PhaseChange is the hook item attached at HookPosPhaseChange.
type PhaseChange struct {
	From Phase
	To   Phase
	At   sim.VTimeInSec
}

// RequestLatched is the hook item attached at HookPosRequestLatched.
type RequestLatched struct {
	Kind RequestKind
	At   sim.VTimeInSec
}

// RequestServed is the hook item attached at HookPosRequestServed.
type RequestServed struct {
	Kind      RequestKind
	LatchedAt sim.VTimeInSec
	At        sim.VTimeInSec
}
