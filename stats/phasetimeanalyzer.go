package stats

import (
	"github.com/tebeka/atexit"

	"github.com/karshPrime/uni-traffic-light/controller"
	"github.com/karshPrime/uni-traffic-light/sim"
)

// PhaseTimeAnalyzer accumulates the virtual time the controller spends
// in each phase. It reports one entry per visited phase when the
// simulation terminates.
type PhaseTimeAnalyzer struct {
	PerfLogger
	sim.TimeTeller

	where   string
	inPhase bool
	current controller.Phase
	start   sim.VTimeInSec
	totals  map[controller.Phase]sim.VTimeInSec
}

// Func accumulates the time of the phase a change notification closes.
func (a *PhaseTimeAnalyzer) Func(ctx sim.HookCtx) {
	if ctx.Pos != controller.HookPosPhaseChange {
		return
	}

	change := ctx.Item.(controller.PhaseChange)

	if a.totals == nil {
		a.totals = make(map[controller.Phase]sim.VTimeInSec)
	}

	if a.inPhase {
		a.totals[a.current] += change.At - a.start
	}

	a.inPhase = true
	a.current = change.To
	a.start = change.At
}

// summarize closes the phase that is still open at the current time and
// reports the accumulated totals.
func (a *PhaseTimeAnalyzer) summarize() {
	now := a.CurrentTime()

	if a.inPhase && now > a.start {
		a.totals[a.current] += now - a.start
		a.start = now
	}

	for phase := controller.PhaseGreenEW; phase <= controller.PhaseClearNS; phase++ {
		total, visited := a.totals[phase]
		if !visited {
			continue
		}

		a.AddDataEntry(PerfEntry{
			End:       float64(now),
			Where:     a.where,
			What:      phase.String(),
			EntryType: "PhaseTime",
			Value:     float64(total),
			Unit:      "s",
		})
	}
}

// PhaseTimeAnalyzerBuilder can build a PhaseTimeAnalyzer.
type PhaseTimeAnalyzerBuilder struct {
	perfLogger PerfLogger
	timeTeller sim.TimeTeller
	ctrl       *controller.Comp
}

// MakePhaseTimeAnalyzerBuilder creates a PhaseTimeAnalyzerBuilder.
func MakePhaseTimeAnalyzerBuilder() PhaseTimeAnalyzerBuilder {
	return PhaseTimeAnalyzerBuilder{}
}

// WithPerfLogger sets the logger the analyzer reports through.
func (b PhaseTimeAnalyzerBuilder) WithPerfLogger(
	l PerfLogger,
) PhaseTimeAnalyzerBuilder {
	b.perfLogger = l
	return b
}

// WithTimeTeller sets the TimeTeller that closes the open phase at exit.
func (b PhaseTimeAnalyzerBuilder) WithTimeTeller(
	t sim.TimeTeller,
) PhaseTimeAnalyzerBuilder {
	b.timeTeller = t
	return b
}

// WithController sets the controller to observe.
func (b PhaseTimeAnalyzerBuilder) WithController(
	c *controller.Comp,
) PhaseTimeAnalyzerBuilder {
	b.ctrl = c
	return b
}

// Build creates a PhaseTimeAnalyzer and hooks it to the controller.
func (b PhaseTimeAnalyzerBuilder) Build() *PhaseTimeAnalyzer {
	if b.perfLogger == nil {
		panic("PhaseTimeAnalyzer requires a PerfLogger")
	}

	if b.timeTeller == nil {
		panic("PhaseTimeAnalyzer requires a TimeTeller")
	}

	if b.ctrl == nil {
		panic("PhaseTimeAnalyzer requires a controller")
	}

	a := &PhaseTimeAnalyzer{
		PerfLogger: b.perfLogger,
		TimeTeller: b.timeTeller,
		where:      b.ctrl.Name(),
	}

	b.ctrl.AcceptHook(a)

	atexit.Register(func() { a.summarize() })

	return a
}
