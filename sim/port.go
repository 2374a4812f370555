package sim

import (
	"fmt"
	"sync"
)

// HookPosPortMsgSend marks when a message is sent out from the port.
var HookPosPortMsgSend = &HookPos{Name: "Port Msg Send"}

// HookPosPortMsgRecvd marks when an inbound message arrives at the given port
var HookPosPortMsgRecvd = &HookPos{Name: "Port Msg Recv"}

// HookPosPortMsgRetrieveIncoming marks when an inbound message is retrieved
// from the incoming buffer.
var HookPosPortMsgRetrieveIncoming = &HookPos{
	Name: "Port Msg Retrieve Incoming",
}

// HookPosPortMsgRetrieveOutgoing marks when an outbound message is retrieved
// from the outgoing buffer.
var HookPosPortMsgRetrieveOutgoing = &HookPos{
	Name: "Port Msg Retrieve Outgoing",
}

// A Port is owned by a component and is used to plug in connections
type Port interface {
	Named
	Hookable

	AsRemote() RemotePort

	SetConnection(conn Connection)
	Component() Component

	// For connection
	Deliver(msg Msg) *SendError
	NotifyAvailable()
	RetrieveOutgoing() Msg
	PeekOutgoing() Msg

	// For component
	CanSend() bool
	Send(msg Msg) *SendError
	RetrieveIncoming() Msg
	PeekIncoming() Msg
}

// NewPort creates a new port that works for the provided component.
func NewPort(
	comp Component,
	incomingBufCap, outgoingBufCap int,
	name string,
) Port {
	NameMustBeValid(name)

	p := new(defaultPort)
	p.comp = comp
	p.name = name
	p.incomingBuf = NewBuffer(name+".IncomingBuf", incomingBufCap)
	p.outgoingBuf = NewBuffer(name+".OutgoingBuf", outgoingBufCap)

	return p
}

type defaultPort struct {
	HookableBase

	lock sync.Mutex
	name string
	comp Component
	conn Connection

	incomingBusy bool

	incomingBuf Buffer
	outgoingBuf Buffer
}

// AsRemote returns the remote port name.
func (p *defaultPort) AsRemote() RemotePort {
	return RemotePort(p.name)
}

// SetConnection sets which connection is plugged in to this port.
func (p *defaultPort) SetConnection(conn Connection) {
	if p.conn != nil {
		connName := p.conn.Name()
		newConnName := conn.Name()
		panicMsg := fmt.Sprintf(
			"connection already set to %s, now connecting to %s",
			connName, newConnName,
		)
		panic(panicMsg)
	}

	p.conn = conn
}

// Component returns the owner component of the port.
func (p *defaultPort) Component() Component {
	return p.comp
}

// Name returns the name of the port.
func (p *defaultPort) Name() string {
	return p.name
}

// CanSend checks if the port can send a message without error.
func (p *defaultPort) CanSend() bool {
	p.lock.Lock()
	defer p.lock.Unlock()

	return p.outgoingBuf.CanPush()
}

// Send is used to send a message out from a component.
func (p *defaultPort) Send(msg Msg) *SendError {
	p.lock.Lock()

	p.msgMustBeValid(msg)
	p.portMustBeConnected()

	if !p.outgoingBuf.CanPush() {
		p.lock.Unlock()
		return NewSendError()
	}

	p.outgoingBuf.Push(msg)

	if p.NumHooks() > 0 {
		hookCtx := HookCtx{
			Domain: p,
			Pos:    HookPosPortMsgSend,
			Item:   msg,
		}
		p.InvokeHook(hookCtx)
	}

	p.lock.Unlock()

	p.conn.NotifySend()

	return nil
}

// Deliver is used by a connection to move a message into the port's incoming
// buffer.
func (p *defaultPort) Deliver(msg Msg) *SendError {
	p.lock.Lock()

	if !p.incomingBuf.CanPush() {
		p.incomingBusy = true
		p.lock.Unlock()
		return NewSendError()
	}

	p.incomingBuf.Push(msg)

	if p.NumHooks() > 0 {
		hookCtx := HookCtx{
			Domain: p,
			Pos:    HookPosPortMsgRecvd,
			Item:   msg,
		}
		p.InvokeHook(hookCtx)
	}

	p.lock.Unlock()

	if p.comp != nil {
		p.comp.NotifyRecv(p)
	}

	return nil
}

// RetrieveIncoming removes the head message of the incoming buffer and
// returns it.
func (p *defaultPort) RetrieveIncoming() Msg {
	p.lock.Lock()

	item := p.incomingBuf.Pop()
	if item == nil {
		p.lock.Unlock()
		return nil
	}

	msg := item.(Msg)

	if p.NumHooks() > 0 {
		hookCtx := HookCtx{
			Domain: p,
			Pos:    HookPosPortMsgRetrieveIncoming,
			Item:   msg,
		}
		p.InvokeHook(hookCtx)
	}

	notify := p.incomingBusy
	p.incomingBusy = false

	p.lock.Unlock()

	if notify {
		p.conn.NotifyAvailable(p)
	}

	return msg
}

// RetrieveOutgoing removes the head message of the outgoing buffer and
// returns it.
func (p *defaultPort) RetrieveOutgoing() Msg {
	p.lock.Lock()

	wasFull := !p.outgoingBuf.CanPush()

	item := p.outgoingBuf.Pop()
	if item == nil {
		p.lock.Unlock()
		return nil
	}

	msg := item.(Msg)

	if p.NumHooks() > 0 {
		hookCtx := HookCtx{
			Domain: p,
			Pos:    HookPosPortMsgRetrieveOutgoing,
			Item:   msg,
		}
		p.InvokeHook(hookCtx)
	}

	p.lock.Unlock()

	if wasFull && p.comp != nil {
		p.comp.NotifyPortFree(p)
	}

	return msg
}

// PeekIncoming returns the head message of the incoming buffer without
// removing it.
func (p *defaultPort) PeekIncoming() Msg {
	p.lock.Lock()
	defer p.lock.Unlock()

	item := p.incomingBuf.Peek()
	if item == nil {
		return nil
	}

	return item.(Msg)
}

// PeekOutgoing returns the head message of the outgoing buffer without
// removing it.
func (p *defaultPort) PeekOutgoing() Msg {
	p.lock.Lock()
	defer p.lock.Unlock()

	item := p.outgoingBuf.Peek()
	if item == nil {
		return nil
	}

	return item.(Msg)
}

// NotifyAvailable is called by the connection when the far side can receive
// messages again.
func (p *defaultPort) NotifyAvailable() {
	if p.comp != nil {
		p.comp.NotifyPortFree(p)
	}
}

func (p *defaultPort) msgMustBeValid(msg Msg) {
	if msg.Meta().Src != p.AsRemote() {
		panic("sending a message that is not from this port")
	}

	if msg.Meta().Dst == "" {
		panic("message destination is not set")
	}

	if msg.Meta().Src == msg.Meta().Dst {
		panic("sending back to src")
	}
}

func (p *defaultPort) portMustBeConnected() {
	if p.conn == nil {
		panic("port " + p.name + " is not connected")
	}
}
