package traffic

import (
	"github.com/karshPrime/uni-traffic-light/sim"
)

var inputMsgByteOverhead = 4

// A CarPresenceMsg reports the level of a road's car-presence sensor. The
// sensor holds its level until the next report, so one message with Present
// set models a car arriving and one with Present cleared models it leaving.
type CarPresenceMsg struct {
	sim.MsgMeta

	Road    Road
	Present bool
}

// Meta returns the meta data of the message.
func (m *CarPresenceMsg) Meta() *sim.MsgMeta {
	return &m.MsgMeta
}

// Clone creates a copy of the message with a different ID.
func (m *CarPresenceMsg) Clone() sim.Msg {
	cloneMsg := *m
	cloneMsg.ID = sim.GetIDGenerator().Generate()

	return &cloneMsg
}

// CarPresenceMsgBuilder can build car presence messages.
type CarPresenceMsgBuilder struct {
	src, dst sim.RemotePort
	road     Road
	present  bool
}

// WithSrc sets the source of the message to build.
func (b CarPresenceMsgBuilder) WithSrc(src sim.RemotePort) CarPresenceMsgBuilder {
	b.src = src
	return b
}

// WithDst sets the destination of the message to build.
func (b CarPresenceMsgBuilder) WithDst(dst sim.RemotePort) CarPresenceMsgBuilder {
	b.dst = dst
	return b
}

// WithRoad sets the road whose sensor level is being reported.
func (b CarPresenceMsgBuilder) WithRoad(road Road) CarPresenceMsgBuilder {
	b.road = road
	return b
}

// WithPresent sets the reported sensor level.
func (b CarPresenceMsgBuilder) WithPresent(present bool) CarPresenceMsgBuilder {
	b.present = present
	return b
}

// Build creates a new CarPresenceMsg.
func (b CarPresenceMsgBuilder) Build() *CarPresenceMsg {
	m := &CarPresenceMsg{}
	m.ID = sim.GetIDGenerator().Generate()
	m.Src = b.src
	m.Dst = b.dst
	m.TrafficBytes = inputMsgByteOverhead
	m.Road = b.road
	m.Present = b.present

	return m
}

// A ButtonPressMsg reports one press of a pedestrian call button. Presses
// are edge events: holding the button does not produce further messages.
type ButtonPressMsg struct {
	sim.MsgMeta

	Crossing Crossing
}

// Meta returns the meta data of the message.
func (m *ButtonPressMsg) Meta() *sim.MsgMeta {
	return &m.MsgMeta
}

// Clone creates a copy of the message with a different ID.
func (m *ButtonPressMsg) Clone() sim.Msg {
	cloneMsg := *m
	cloneMsg.ID = sim.GetIDGenerator().Generate()

	return &cloneMsg
}

// ButtonPressMsgBuilder can build button press messages.
type ButtonPressMsgBuilder struct {
	src, dst sim.RemotePort
	crossing Crossing
}

// WithSrc sets the source of the message to build.
func (b ButtonPressMsgBuilder) WithSrc(src sim.RemotePort) ButtonPressMsgBuilder {
	b.src = src
	return b
}

// WithDst sets the destination of the message to build.
func (b ButtonPressMsgBuilder) WithDst(dst sim.RemotePort) ButtonPressMsgBuilder {
	b.dst = dst
	return b
}

// WithCrossing sets the crossing whose button was pressed.
func (b ButtonPressMsgBuilder) WithCrossing(crossing Crossing) ButtonPressMsgBuilder {
	b.crossing = crossing
	return b
}

// Build creates a new ButtonPressMsg.
func (b ButtonPressMsgBuilder) Build() *ButtonPressMsg {
	m := &ButtonPressMsg{}
	m.ID = sim.GetIDGenerator().Generate()
	m.Src = b.src
	m.Dst = b.dst
	m.TrafficBytes = inputMsgByteOverhead
	m.Crossing = b.crossing

	return m
}

// A ResetPulseMsg forces the controller back to its power-on state.
type ResetPulseMsg struct {
	sim.MsgMeta
}

// Meta returns the meta data of the message.
func (m *ResetPulseMsg) Meta() *sim.MsgMeta {
	return &m.MsgMeta
}

// Clone creates a copy of the message with a different ID.
func (m *ResetPulseMsg) Clone() sim.Msg {
	cloneMsg := *m
	cloneMsg.ID = sim.GetIDGenerator().Generate()

	return &cloneMsg
}

// ResetPulseMsgBuilder can build reset pulse messages.
type ResetPulseMsgBuilder struct {
	src, dst sim.RemotePort
}

// WithSrc sets the source of the message to build.
func (b ResetPulseMsgBuilder) WithSrc(src sim.RemotePort) ResetPulseMsgBuilder {
	b.src = src
	return b
}

// WithDst sets the destination of the message to build.
func (b ResetPulseMsgBuilder) WithDst(dst sim.RemotePort) ResetPulseMsgBuilder {
	b.dst = dst
	return b
}

// Build creates a new ResetPulseMsg.
func (b ResetPulseMsgBuilder) Build() *ResetPulseMsg {
	m := &ResetPulseMsg{}
	m.ID = sim.GetIDGenerator().Generate()
	m.Src = b.src
	m.Dst = b.dst
	m.TrafficBytes = inputMsgByteOverhead

	return m
}
