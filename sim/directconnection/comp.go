// Package directconnection provides a latency-free connection that forwards
// messages between the ports that plug into it.
package directconnection

import (
	"github.com/karshPrime/uni-traffic-light/sim"
)

// Comp is a connection that delivers messages to their destinations in the
// tick that follows the send.
type Comp struct {
	*sim.TickingComponent
	sim.MiddlewareHolder

	nextPortID int
	ports      []sim.Port
	dests      map[sim.RemotePort]sim.Port
}

// PlugIn marks the port as connected to this connection.
func (c *Comp) PlugIn(port sim.Port) {
	c.Lock()
	defer c.Unlock()

	c.ports = append(c.ports, port)
	c.dests[port.AsRemote()] = port

	port.SetConnection(c)
}

// Unplug marks the port as no longer connected to this connection.
func (c *Comp) Unplug(_ sim.Port) {
	panic("not implemented")
}

// NotifyAvailable is called by a port to notify that the connection can
// deliver to the port again.
func (c *Comp) NotifyAvailable(p sim.Port) {
	for _, port := range c.ports {
		if port == p {
			continue
		}

		port.NotifyAvailable()
	}

	c.TickNow()
}

// NotifySend is called by a port to notify that the connection can start to
// tick now.
func (c *Comp) NotifySend() {
	c.TickNow()
}

// Tick updates the states of the connection and delivers messages.
func (c *Comp) Tick() bool {
	return c.MiddlewareHolder.Tick()
}

type middleware struct {
	*Comp
}

// Tick drains the outgoing buffers of the plugged-in ports in a round-robin
// order.
func (m *middleware) Tick() bool {
	madeProgress := false

	for i := 0; i < len(m.ports); i++ {
		portID := (i + m.nextPortID) % len(m.ports)
		port := m.ports[portID]
		madeProgress = m.forwardMany(port) || madeProgress
	}

	m.nextPortID = (m.nextPortID + 1) % len(m.ports)

	return madeProgress
}

func (m *middleware) forwardMany(port sim.Port) bool {
	madeProgress := false

	for {
		head := port.PeekOutgoing()
		if head == nil {
			break
		}

		dst, found := m.dests[head.Meta().Dst]
		if !found {
			panic("destination " + string(head.Meta().Dst) +
				" is not plugged into connection " + m.Name())
		}

		err := dst.Deliver(head)
		if err != nil {
			break
		}

		madeProgress = true
		port.RetrieveOutgoing()
	}

	return madeProgress
}
