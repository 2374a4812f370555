// Package acceptance runs complete intersections. A bench wires the
// controller, the roadside equipment, and the display panel over one
// connection, replays a script until the intersection goes quiet, and
// checks the recorded lamp journal against expected timelines and
// against the safety rules every run must honor.
package acceptance

import (
	"log"

	"github.com/karshPrime/uni-traffic-light/board"
	"github.com/karshPrime/uni-traffic-light/controller"
	"github.com/karshPrime/uni-traffic-light/datarecording"
	"github.com/karshPrime/uni-traffic-light/light"
	"github.com/karshPrime/uni-traffic-light/panel"
	"github.com/karshPrime/uni-traffic-light/roadside"
	"github.com/karshPrime/uni-traffic-light/sim"
	"github.com/karshPrime/uni-traffic-light/sim/directconnection"
)

// A Bench is one complete intersection wired for a scripted run.
type Bench struct {
	Engine     sim.Engine
	Controller *controller.Comp
	Roadside   *roadside.Comp
	Panel      *panel.Comp
	Connection *directconnection.Comp

	phases *phaseLog
}

// Run replays the script until the intersection goes quiet.
func (b *Bench) Run() error {
	b.Controller.TickLater()
	b.Roadside.TickLater()

	return b.Engine.Run()
}

// Components returns the components of the bench, in the order they
// should be registered with a simulation.
func (b *Bench) Components() []sim.Component {
	return []sim.Component{
		b.Controller,
		b.Roadside,
		b.Panel,
		b.Connection,
	}
}

// Transitions returns the lamp journal the run produced.
func (b *Bench) Transitions() []panel.Transition {
	return b.Panel.Transitions()
}

// MustHaveDeliveredScript panics if the run went quiet with stimuli
// still undelivered.
func (b *Bench) MustHaveDeliveredScript() {
	if !b.Roadside.Done() {
		panic("roadside script was not delivered in full")
	}
}

// MustMatchTimeline panics unless the lamp journal matches want entry
// by entry.
func (b *Bench) MustMatchTimeline(want []panel.Transition) {
	got := b.Transitions()

	ok := len(got) == len(want)
	for i := 0; i < len(got) && i < len(want); i++ {
		if got[i] != want[i] {
			log.Printf("transition %d: want %.0f %s, got %.0f %s",
				i, float64(want[i].Time), want[i].State,
				float64(got[i].Time), got[i].State)

			ok = false
		}
	}

	if !ok {
		log.Printf("want %d transitions, got %d", len(want), len(got))
		panic("lamp timeline does not match")
	}
}

// MustHaveReachedAllPhases panics unless the run visited every phase of
// the cycle.
func (b *Bench) MustHaveReachedAllPhases() {
	for p := controller.PhaseGreenEW; p <= controller.PhaseClearNS; p++ {
		if !b.phases.seen[p] {
			log.Printf("phase %s was never reached", p)
			panic("not all phases were reached")
		}
	}
}

// MustBeSafe panics if any recorded state gives two conflicting
// movements the right of way at once.
func (b *Bench) MustBeSafe() {
	for _, tr := range b.Transitions() {
		stateMustBeSafe(tr)
	}
}

func stateMustBeSafe(tr panel.Transition) {
	s := tr.State

	if s.EW != light.SignalRed && s.NS != light.SignalRed {
		log.Printf("at %.0f: %s", float64(tr.Time), s)
		panic("both roads ran at once")
	}

	if s.WalkEW != light.WalkDontWalk && s.EW != light.SignalRed {
		log.Printf("at %.0f: %s", float64(tr.Time), s)
		panic("walk shown across a moving road")
	}

	if s.WalkNS != light.WalkDontWalk && s.NS != light.SignalRed {
		log.Printf("at %.0f: %s", float64(tr.Time), s)
		panic("walk shown across a moving road")
	}
}

// phaseLog records every phase the controller enters.
type phaseLog struct {
	seen map[controller.Phase]bool
}

func (l *phaseLog) Func(ctx sim.HookCtx) {
	if ctx.Pos != controller.HookPosPhaseChange {
		return
	}

	change := ctx.Item.(controller.PhaseChange)
	l.seen[change.To] = true
}

// A BenchBuilder builds benches.
type BenchBuilder struct {
	engine   sim.Engine
	timing   controller.Timing
	script   roadside.Script
	adapters []board.Adapter
	recorder datarecording.DataRecorder
}

// MakeBenchBuilder returns a builder with the default signal timing.
func MakeBenchBuilder() BenchBuilder {
	return BenchBuilder{
		timing: controller.DefaultTiming(),
	}
}

// WithEngine sets the engine the bench runs on. A bench built without
// one creates its own serial engine.
func (b BenchBuilder) WithEngine(engine sim.Engine) BenchBuilder {
	b.engine = engine
	return b
}

// WithTiming sets the phase durations the controller runs with.
func (b BenchBuilder) WithTiming(timing controller.Timing) BenchBuilder {
	b.timing = timing
	return b
}

// WithScript sets the stimuli the roadside equipment replays.
func (b BenchBuilder) WithScript(script roadside.Script) BenchBuilder {
	b.script = script
	return b
}

// WithAdapters adds board adapters the panel drives.
func (b BenchBuilder) WithAdapters(adapters ...board.Adapter) BenchBuilder {
	b.adapters = append(b.adapters, adapters...)
	return b
}

// WithRecorder sets the recorder the panel writes transitions into.
func (b BenchBuilder) WithRecorder(
	recorder datarecording.DataRecorder,
) BenchBuilder {
	b.recorder = recorder
	return b
}

// Build creates a bench with every component wired up under the given
// name.
func (b BenchBuilder) Build(name string) *Bench {
	engine := b.engine
	if engine == nil {
		engine = sim.NewSerialEngine()
	}

	panelBuilder := panel.MakeBuilder().
		WithEngine(engine).
		WithAdapters(b.adapters...)
	if b.recorder != nil {
		panelBuilder = panelBuilder.WithRecorder(b.recorder)
	}
	display := panelBuilder.Build(name + ".Panel")

	ctrl := controller.MakeBuilder().
		WithEngine(engine).
		WithTiming(b.timing).
		WithPanel(display.ControllerPort.AsRemote()).
		Build(name + ".Controller")

	equipment := roadside.MakeBuilder().
		WithEngine(engine).
		WithScript(b.script).
		WithController(ctrl.RoadsidePort.AsRemote()).
		Build(name + ".Roadside")

	conn := directconnection.MakeBuilder().
		WithEngine(engine).
		WithFreq(1 * sim.Hz).
		Build(name + ".Conn")
	conn.PlugIn(ctrl.RoadsidePort)
	conn.PlugIn(ctrl.PanelPort)
	conn.PlugIn(equipment.ControllerPort)
	conn.PlugIn(display.ControllerPort)

	phases := &phaseLog{seen: map[controller.Phase]bool{
		ctrl.Phase(): true,
	}}
	ctrl.AcceptHook(phases)

	return &Bench{
		Engine:     engine,
		Controller: ctrl,
		Roadside:   equipment,
		Panel:      display,
		Connection: conn,
		phases:     phases,
	}
}
