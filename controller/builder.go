package controller

import "github.com/karshPrime/uni-traffic-light/sim"

// Builder builds controller components.
type Builder struct {
	engine sim.Engine
	freq   sim.Freq
	timing Timing
	panel  sim.RemotePort
}

// MakeBuilder returns a builder with the default timing, ticking at the
// 1 Hz wall-clock rate of the signal plan.
func MakeBuilder() Builder {
	return Builder{
		freq:   1 * sim.Hz,
		timing: DefaultTiming(),
	}
}

// WithEngine sets the engine that drives the controller.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the tick frequency of the controller.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithTiming sets the phase durations the controller runs with.
func (b Builder) WithTiming(timing Timing) Builder {
	b.timing = timing
	return b
}

// WithPanel sets the port the lamp updates are sent to.
func (b Builder) WithPanel(panel sim.RemotePort) Builder {
	b.panel = panel
	return b
}

// Build creates a controller with the given name. It panics if the
// timing cannot drive a safe signal plan.
func (b Builder) Build(name string) *Comp {
	if err := b.timing.Validate(); err != nil {
		panic(err)
	}

	c := &Comp{
		machine: newMachine(b.timing),
		panel:   b.panel,
	}
	c.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, c)

	c.RoadsidePort = sim.NewPort(c, 4, 4, name+".RoadsidePort")
	c.PanelPort = sim.NewPort(c, 1, 1, name+".PanelPort")
	c.AddPort("Roadside", c.RoadsidePort)
	c.AddPort("Panel", c.PanelPort)

	c.AddMiddleware(&middleware{Comp: c})

	return c
}
