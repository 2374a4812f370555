// Package traffic defines the input vocabulary of the intersection: the two
// roads, the two pedestrian crossings, and the messages that roadside sensors
// and call buttons send to the controller.
package traffic

// A Road is one of the two approaches of the intersection.
type Road int

// The two roads of the intersection.
const (
	RoadEW Road = iota
	RoadNS

	NumRoads int = iota
)

func (r Road) String() string {
	switch r {
	case RoadEW:
		return "EW"
	case RoadNS:
		return "NS"
	}

	return "InvalidRoad"
}

// A Crossing identifies the roadway a pedestrian wants to walk across. A
// pedestrian crossing a road can only walk while that road shows red.
type Crossing int

// The two pedestrian crossings of the intersection.
const (
	CrossingEW Crossing = iota
	CrossingNS

	NumCrossings int = iota
)

func (c Crossing) String() string {
	switch c {
	case CrossingEW:
		return "EW"
	case CrossingNS:
		return "NS"
	}

	return "InvalidCrossing"
}
