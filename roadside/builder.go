package roadside

import "github.com/karshPrime/uni-traffic-light/sim"

// Builder builds roadside equipment components.
type Builder struct {
	engine     sim.Engine
	freq       sim.Freq
	script     Script
	controller sim.RemotePort
}

// MakeBuilder returns a builder ticking at the 1 Hz rate of the signal
// plan.
func MakeBuilder() Builder {
	return Builder{
		freq: 1 * sim.Hz,
	}
}

// WithEngine sets the engine that drives the equipment.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the tick frequency of the equipment.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithScript sets the script to replay.
func (b Builder) WithScript(script Script) Builder {
	b.script = script
	return b
}

// WithController sets the port the stimuli are sent to.
func (b Builder) WithController(controller sim.RemotePort) Builder {
	b.controller = controller
	return b
}

// Build creates a roadside component with the given name.
func (b Builder) Build(name string) *Comp {
	c := &Comp{
		script:     b.script,
		controller: b.controller,
	}
	c.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, c)

	c.ControllerPort = sim.NewPort(c, 1, 4, name+".ControllerPort")
	c.AddPort("Controller", c.ControllerPort)

	c.AddMiddleware(&middleware{Comp: c})

	return c
}
