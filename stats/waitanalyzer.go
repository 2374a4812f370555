package stats

import (
	"github.com/tebeka/atexit"

	"github.com/karshPrime/uni-traffic-light/controller"
	"github.com/karshPrime/uni-traffic-light/sim"
)

type waitTally struct {
	served    int
	pending   int
	totalWait sim.VTimeInSec
	maxWait   sim.VTimeInSec
}

// WaitAnalyzer measures how long each kind of request waits between its
// latch and its green or walk. Requests still latched when the
// simulation terminates are reported as unserved.
type WaitAnalyzer struct {
	PerfLogger
	sim.TimeTeller

	where   string
	tallies map[controller.RequestKind]waitTally
}

// Func tallies latch and service notifications.
func (a *WaitAnalyzer) Func(ctx sim.HookCtx) {
	if a.tallies == nil {
		a.tallies = make(map[controller.RequestKind]waitTally)
	}

	switch ctx.Pos {
	case controller.HookPosRequestLatched:
		item := ctx.Item.(controller.RequestLatched)

		tally := a.tallies[item.Kind]
		tally.pending++
		a.tallies[item.Kind] = tally
	case controller.HookPosRequestServed:
		item := ctx.Item.(controller.RequestServed)
		wait := item.At - item.LatchedAt

		tally := a.tallies[item.Kind]
		tally.served++
		tally.totalWait += wait

		if wait > tally.maxWait {
			tally.maxWait = wait
		}

		if tally.pending > 0 {
			tally.pending--
		}

		a.tallies[item.Kind] = tally
	}
}

func (a *WaitAnalyzer) summarize() {
	now := a.CurrentTime()

	for kind := controller.RequestCarEW; kind <= controller.RequestPedNS; kind++ {
		tally, seen := a.tallies[kind]
		if !seen {
			continue
		}

		entry := PerfEntry{
			End:   float64(now),
			Where: a.where,
			What:  kind.String(),
		}

		if tally.served > 0 {
			entry.EntryType = "WaitAvg"
			entry.Value = float64(tally.totalWait) / float64(tally.served)
			entry.Unit = "s"
			a.AddDataEntry(entry)

			entry.EntryType = "WaitMax"
			entry.Value = float64(tally.maxWait)
			entry.Unit = "s"
			a.AddDataEntry(entry)

			entry.EntryType = "Served"
			entry.Value = float64(tally.served)
			entry.Unit = "req"
			a.AddDataEntry(entry)
		}

		if tally.pending > 0 {
			entry.EntryType = "Unserved"
			entry.Value = float64(tally.pending)
			entry.Unit = "req"
			a.AddDataEntry(entry)
		}
	}
}

// WaitAnalyzerBuilder can build a WaitAnalyzer.
type WaitAnalyzerBuilder struct {
	perfLogger PerfLogger
	timeTeller sim.TimeTeller
	ctrl       *controller.Comp
}

// MakeWaitAnalyzerBuilder creates a WaitAnalyzerBuilder.
func MakeWaitAnalyzerBuilder() WaitAnalyzerBuilder {
	return WaitAnalyzerBuilder{}
}

// WithPerfLogger sets the logger the analyzer reports through.
func (b WaitAnalyzerBuilder) WithPerfLogger(l PerfLogger) WaitAnalyzerBuilder {
	b.perfLogger = l
	return b
}

// WithTimeTeller sets the TimeTeller used to stamp the report.
func (b WaitAnalyzerBuilder) WithTimeTeller(
	t sim.TimeTeller,
) WaitAnalyzerBuilder {
	b.timeTeller = t
	return b
}

// WithController sets the controller to observe.
func (b WaitAnalyzerBuilder) WithController(
	c *controller.Comp,
) WaitAnalyzerBuilder {
	b.ctrl = c
	return b
}

// Build creates a WaitAnalyzer and hooks it to the controller.
func (b WaitAnalyzerBuilder) Build() *WaitAnalyzer {
	if b.perfLogger == nil {
		panic("WaitAnalyzer requires a PerfLogger")
	}

	if b.timeTeller == nil {
		panic("WaitAnalyzer requires a TimeTeller")
	}

	if b.ctrl == nil {
		panic("WaitAnalyzer requires a controller")
	}

	a := &WaitAnalyzer{
		PerfLogger: b.perfLogger,
		TimeTeller: b.timeTeller,
		where:      b.ctrl.Name(),
	}

	b.ctrl.AcceptHook(a)

	atexit.Register(func() { a.summarize() })

	return a
}
