package acceptance

import (
	"fmt"

	"github.com/karshPrime/uni-traffic-light/roadside"
	"github.com/karshPrime/uni-traffic-light/traffic"
)

// A Scenario is a named script that exercises the intersection with a
// recognizable traffic pattern.
type Scenario struct {
	Name        string
	Description string
	Script      roadside.Script
}

// Scenarios returns the built-in scenarios.
func Scenarios() []Scenario {
	return []Scenario{
		{
			Name: "quiet",
			Description: "No traffic at all. The intersection settles " +
				"into an idle east-west green.",
			Script: roadside.MakeScriptBuilder().Build(),
		},
		{
			Name: "night-call",
			Description: "A lone car arrives on the empty north-south " +
				"road and gets its green.",
			Script: roadside.MakeScriptBuilder().
				WithCarPresence(40, traffic.RoadNS, true).
				WithCarPresence(55, traffic.RoadNS, false).
				Build(),
		},
		{
			Name: "crosswalk",
			Description: "Pedestrians call to cross both roads and each " +
				"crossing gets its walk.",
			Script: roadside.MakeScriptBuilder().
				WithButtonPress(5, traffic.CrossingNS).
				WithButtonPress(9, traffic.CrossingEW).
				Build(),
		},
		{
			Name: "rush-hour",
			Description: "Cars on both roads trade the green back and " +
				"forth while a pedestrian queues up.",
			Script: roadside.MakeScriptBuilder().
				WithCarPresence(3, traffic.RoadEW, true).
				WithCarPresence(6, traffic.RoadNS, true).
				WithCarPresence(18, traffic.RoadEW, false).
				WithCarPresence(35, traffic.RoadEW, true).
				WithCarPresence(40, traffic.RoadNS, false).
				WithButtonPress(45, traffic.CrossingNS).
				WithCarPresence(50, traffic.RoadEW, false).
				Build(),
		},
		{
			Name: "maintenance-reset",
			Description: "A reset drops the controller mid-cycle and it " +
				"comes back as from power on.",
			Script: roadside.MakeScriptBuilder().
				WithButtonPress(5, traffic.CrossingEW).
				WithResetPulse(12).
				WithCarPresence(20, traffic.RoadNS, true).
				WithCarPresence(30, traffic.RoadNS, false).
				Build(),
		},
	}
}

// FindScenario returns the built-in scenario with the given name.
func FindScenario(name string) (Scenario, error) {
	for _, s := range Scenarios() {
		if s.Name == name {
			return s, nil
		}
	}

	return Scenario{}, fmt.Errorf("unknown scenario %q", name)
}
