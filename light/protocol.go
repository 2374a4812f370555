package light

import (
	"github.com/karshPrime/uni-traffic-light/sim"
)

var updateMsgByteOverhead = 8

// An Update carries the state the intersection displays from the given tick
// on. The controller publishes one whenever the displayed state changes.
type Update struct {
	sim.MsgMeta

	State State
	Time  sim.VTimeInSec
}

// Meta returns the meta data of the message.
func (u *Update) Meta() *sim.MsgMeta {
	return &u.MsgMeta
}

// Clone creates a copy of the message with a different ID.
func (u *Update) Clone() sim.Msg {
	cloneMsg := *u
	cloneMsg.ID = sim.GetIDGenerator().Generate()

	return &cloneMsg
}

// UpdateBuilder can build light update messages.
type UpdateBuilder struct {
	src, dst sim.RemotePort
	state    State
	time     sim.VTimeInSec
}

// WithSrc sets the source of the message to build.
func (b UpdateBuilder) WithSrc(src sim.RemotePort) UpdateBuilder {
	b.src = src
	return b
}

// WithDst sets the destination of the message to build.
func (b UpdateBuilder) WithDst(dst sim.RemotePort) UpdateBuilder {
	b.dst = dst
	return b
}

// WithState sets the state the update carries.
func (b UpdateBuilder) WithState(state State) UpdateBuilder {
	b.state = state
	return b
}

// WithTime sets the tick time the state takes effect.
func (b UpdateBuilder) WithTime(time sim.VTimeInSec) UpdateBuilder {
	b.time = time
	return b
}

// Build creates a new Update.
func (b UpdateBuilder) Build() *Update {
	u := &Update{}
	u.ID = sim.GetIDGenerator().Generate()
	u.Src = b.src
	u.Dst = b.dst
	u.TrafficBytes = updateMsgByteOverhead
	u.State = b.state
	u.Time = b.time

	return u
}
