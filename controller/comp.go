package controller

import (
	"log"
	"reflect"

	"github.com/karshPrime/uni-traffic-light/light"
	"github.com/karshPrime/uni-traffic-light/sim"
	"github.com/karshPrime/uni-traffic-light/tracing"
	"github.com/karshPrime/uni-traffic-light/traffic"
)

// Comp is the intersection controller. Each tick it advances the signal
// plan, takes in the messages the roadside equipment delivered, and
// publishes a lamp update to the display panel whenever the lamps
// change.
type Comp struct {
	*sim.TickingComponent
	sim.MiddlewareHolder

	RoadsidePort sim.Port
	PanelPort    sim.Port

	machine *machine
	panel   sim.RemotePort

	needPublish bool
	sentOnce    bool
	lastSent    light.State

	phaseTaskID       string
	requestTaskIDs    [numRequestKinds]string
	requestLatchTimes [numRequestKinds]sim.VTimeInSec
}

// Tick runs the middleware of the component.
func (c *Comp) Tick() bool {
	return c.MiddlewareHolder.Tick()
}

// Phase returns the phase the controller is currently in.
func (c *Comp) Phase() Phase {
	return c.machine.phase
}

// Timing returns the timing the controller runs with.
func (c *Comp) Timing() Timing {
	return c.machine.timing
}

// LightState returns the lamp outputs the controller currently drives.
func (c *Comp) LightState() light.State {
	return c.machine.lightState()
}

type middleware struct {
	*Comp
}

// Tick steps the machine first, then takes in this tick's messages, then
// publishes. A request that arrives in the very tick its green begins
// therefore misses the serve window and stays latched for the next
// cycle.
func (m *middleware) Tick() bool {
	madeProgress := m.stepMachine()
	madeProgress = m.applyInputs() || madeProgress
	madeProgress = m.publishState() || madeProgress

	return madeProgress
}

func (m *middleware) stepMachine() bool {
	before := *m.machine

	m.machine.step()

	after := *m.machine
	if after == before {
		return false
	}

	m.noteStepOutcome(before, after)

	return true
}

// noteStepOutcome reports the latch and phase transitions a step caused
// to the hooks and to the tracers.
func (m *middleware) noteStepOutcome(before, after machine) {
	now := m.Engine.CurrentTime()

	if after.phase != before.phase {
		m.notePhaseChange(before.phase, after.phase, now)
	}

	for r := traffic.RoadEW; r < traffic.Road(traffic.NumRoads); r++ {
		if after.carWait[r] && !before.carWait[r] {
			m.noteLatched(carRequest(r), now)
		}

		if !after.carWait[r] && before.carWait[r] {
			m.noteServed(carRequest(r), now)
		}
	}

	for c := traffic.CrossingEW; c < traffic.Crossing(traffic.NumCrossings); c++ {
		if !after.pedWait[c] && before.pedWait[c] {
			m.noteServed(pedRequest(c), now)
		}
	}
}

func (m *middleware) applyInputs() bool {
	madeProgress := false

	for {
		msg := m.RoadsidePort.RetrieveIncoming()
		if msg == nil {
			return madeProgress
		}

		m.applyInput(msg)

		madeProgress = true
	}
}

func (m *middleware) applyInput(msg sim.Msg) {
	now := m.Engine.CurrentTime()

	switch msg := msg.(type) {
	case *traffic.CarPresenceMsg:
		m.machine.carPresent[msg.Road] = msg.Present
	case *traffic.ButtonPressMsg:
		if !m.machine.pedWait[msg.Crossing] {
			m.machine.pedWait[msg.Crossing] = true
			m.noteLatched(pedRequest(msg.Crossing), now)
		}
	case *traffic.ResetPulseMsg:
		m.applyReset(now)
	default:
		log.Panicf("cannot handle message of type %s", reflect.TypeOf(msg))
	}
}

// applyReset drops every latched request without serving it and forces
// the machine back into the clearance before the east-west green.
func (m *middleware) applyReset(now sim.VTimeInSec) {
	for kind := RequestKind(0); kind < RequestKind(numRequestKinds); kind++ {
		if m.requestTaskIDs[kind] != "" {
			tracing.EndTask(m.requestTaskIDs[kind], m.Comp)
			m.requestTaskIDs[kind] = ""
		}
	}

	from := m.machine.phase
	m.machine.reset()

	if from != m.machine.phase {
		m.notePhaseChange(from, m.machine.phase, now)
	}
}

// publishState sends a lamp update when the lamps changed, or retries a
// send the panel link could not take earlier. The update is rebuilt from
// the live machine on every attempt.
func (m *middleware) publishState() bool {
	state := m.machine.lightState()

	if m.sentOnce && state == m.lastSent && !m.needPublish {
		return false
	}

	m.needPublish = true

	update := light.UpdateBuilder{}.
		WithSrc(m.PanelPort.AsRemote()).
		WithDst(m.panel).
		WithState(state).
		WithTime(m.Engine.CurrentTime()).
		Build()

	err := m.PanelPort.Send(update)
	if err != nil {
		return false
	}

	m.needPublish = false
	m.sentOnce = true
	m.lastSent = state

	return true
}

func (c *Comp) notePhaseChange(from, to Phase, now sim.VTimeInSec) {
	c.InvokeHook(sim.HookCtx{
		Domain: c,
		Pos:    HookPosPhaseChange,
		Item:   PhaseChange{From: from, To: to, At: now},
	})

	if c.phaseTaskID != "" {
		tracing.EndTask(c.phaseTaskID, c)
	}

	c.phaseTaskID = sim.GetIDGenerator().Generate()
	tracing.StartTask(c.phaseTaskID, "", c, "phase", to.String(), nil)
}

func (c *Comp) noteLatched(kind RequestKind, now sim.VTimeInSec) {
	c.requestLatchTimes[kind] = now

	c.InvokeHook(sim.HookCtx{
		Domain: c,
		Pos:    HookPosRequestLatched,
		Item:   RequestLatched{Kind: kind, At: now},
	})

	id := sim.GetIDGenerator().Generate()
	c.requestTaskIDs[kind] = id
	tracing.StartTask(id, "", c, "request", kind.String(), nil)
}

func (c *Comp) noteServed(kind RequestKind, now sim.VTimeInSec) {
	c.InvokeHook(sim.HookCtx{
		Domain: c,
		Pos:    HookPosRequestServed,
		Item: RequestServed{
			Kind:      kind,
			LatchedAt: c.requestLatchTimes[kind],
			At:        now,
		},
	})

	if c.requestTaskIDs[kind] != "" {
		tracing.EndTask(c.requestTaskIDs[kind], c)
		c.requestTaskIDs[kind] = ""
	}
}
