package roadside

import (
	"log"

	"github.com/karshPrime/uni-traffic-light/sim"
	"github.com/karshPrime/uni-traffic-light/traffic"
)

// Comp replays a script into the controller. Entries are delivered in
// script order. An entry the controller link cannot take stays pending
// and is retried on the next tick, so a burst never reorders.
type Comp struct {
	*sim.TickingComponent
	sim.MiddlewareHolder

	ControllerPort sim.Port

	script     Script
	controller sim.RemotePort
	nextEntry  int
}

// Tick runs the middleware of the component.
func (c *Comp) Tick() bool {
	return c.MiddlewareHolder.Tick()
}

// Done reports whether the whole script has been delivered.
func (c *Comp) Done() bool {
	return c.nextEntry >= c.script.Len()
}

type middleware struct {
	*Comp
}

// Tick sends every entry that is due. The component stays awake while
// entries remain, delivered or not, and sleeps once the script ends.
func (m *middleware) Tick() bool {
	now := m.Engine.CurrentTime()

	for m.nextEntry < m.script.Len() {
		entry := m.script.At(m.nextEntry)
		if entry.Time > now {
			break
		}

		msg := m.messageForEntry(entry)
		if err := m.ControllerPort.Send(msg); err != nil {
			break
		}

		m.nextEntry++
	}

	return m.nextEntry < m.script.Len()
}

func (m *middleware) messageForEntry(entry Entry) sim.Msg {
	src := m.ControllerPort.AsRemote()

	switch entry.Kind {
	case EventCarPresence:
		return traffic.CarPresenceMsgBuilder{}.
			WithSrc(src).
			WithDst(m.controller).
			WithRoad(entry.Road).
			WithPresent(entry.Present).
			Build()
	case EventButtonPress:
		return traffic.ButtonPressMsgBuilder{}.
			WithSrc(src).
			WithDst(m.controller).
			WithCrossing(entry.Crossing).
			Build()
	case EventResetPulse:
		return traffic.ResetPulseMsgBuilder{}.
			WithSrc(src).
			WithDst(m.controller).
			Build()
	}

	log.Panicf("unknown script event kind %d", entry.Kind)

	return nil
}
