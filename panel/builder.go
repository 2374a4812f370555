package panel

import (
	"github.com/karshPrime/uni-traffic-light/board"
	"github.com/karshPrime/uni-traffic-light/datarecording"
	"github.com/karshPrime/uni-traffic-light/sim"
)

// Builder builds panel components.
type Builder struct {
	engine   sim.Engine
	freq     sim.Freq
	adapters []board.Adapter
	recorder datarecording.DataRecorder
}

// MakeBuilder returns a builder with no boards attached, ticking at the
// 1 Hz wall-clock rate of the signal plan.
func MakeBuilder() Builder {
	return Builder{
		freq: 1 * sim.Hz,
	}
}

// WithEngine sets the engine that drives the panel.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the tick frequency of the panel.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithAdapters attaches board adapters. Every applied state is fanned
// out to all of them.
func (b Builder) WithAdapters(adapters ...board.Adapter) Builder {
	b.adapters = append(b.adapters, adapters...)
	return b
}

// WithRecorder sets the recorder the panel writes each transition to.
func (b Builder) WithRecorder(recorder datarecording.DataRecorder) Builder {
	b.recorder = recorder
	return b
}

// Build creates a panel with the given name.
func (b Builder) Build(name string) *Comp {
	c := &Comp{
		adapters: b.adapters,
		recorder: b.recorder,
	}
	c.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, c)

	c.ControllerPort = sim.NewPort(c, 4, 1, name+".ControllerPort")
	c.AddPort("Controller", c.ControllerPort)

	c.AddMiddleware(&middleware{Comp: c})

	if b.recorder != nil {
		b.recorder.CreateTable("light_updates", lightUpdate{})
	}

	return c
}
