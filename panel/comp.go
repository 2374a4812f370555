// Package panel implements the light panel of the intersection. The
// panel listens for display updates from the controller, journals every
// transition, and fans each state out to the attached board adapters.
package panel

import (
	"log"
	"reflect"

	"github.com/karshPrime/uni-traffic-light/board"
	"github.com/karshPrime/uni-traffic-light/datarecording"
	"github.com/karshPrime/uni-traffic-light/light"
	"github.com/karshPrime/uni-traffic-light/sim"
	"github.com/karshPrime/uni-traffic-light/tracing"
)

// A Transition is one displayed state and the tick it took effect.
type Transition struct {
	Time  sim.VTimeInSec
	State light.State
}

// lightUpdate is the row recorded per transition when a recorder is
// attached.
type lightUpdate struct {
	Time   float64
	EW     string
	NS     string
	WalkEW string
	WalkNS string
}

// Comp is the light panel. It applies every update from the controller
// to the attached boards in arrival order.
type Comp struct {
	*sim.TickingComponent
	sim.MiddlewareHolder

	ControllerPort sim.Port

	adapters []board.Adapter
	recorder datarecording.DataRecorder

	current light.State
	journal []Transition
}

// Tick runs the middlewares of the component.
func (c *Comp) Tick() bool {
	return c.MiddlewareHolder.Tick()
}

// Current returns the state the panel displays now.
func (c *Comp) Current() light.State {
	return c.current
}

// Transitions returns every displayed state in arrival order.
func (c *Comp) Transitions() []Transition {
	return c.journal
}

type middleware struct {
	*Comp
}

func (m *middleware) Tick() (madeProgress bool) {
	for {
		msg := m.ControllerPort.RetrieveIncoming()
		if msg == nil {
			return madeProgress
		}

		m.display(msg)

		madeProgress = true
	}
}

func (m *middleware) display(msg sim.Msg) {
	update, ok := msg.(*light.Update)
	if !ok {
		log.Panicf("cannot handle message of type %s", reflect.TypeOf(msg))
	}

	tracing.TraceReqReceive(update, m.Comp)

	m.current = update.State
	m.journal = append(m.journal, Transition{
		Time:  update.Time,
		State: update.State,
	})

	for _, adapter := range m.adapters {
		err := adapter.Apply(update.State)
		if err != nil {
			log.Printf("panel %s: board %s rejected %s: %v",
				m.Name(), adapter.Name(), update.State, err)
		}
	}

	if m.recorder != nil {
		m.recorder.InsertData("light_updates", lightUpdate{
			Time:   float64(update.Time),
			EW:     update.State.EW.String(),
			NS:     update.State.NS.String(),
			WalkEW: update.State.WalkEW.String(),
			WalkNS: update.State.WalkNS.String(),
		})
	}

	tracing.TraceReqComplete(update, m.Comp)
}
