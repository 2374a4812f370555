package sim

// A RemotePort is a string that refers to a port on another component.
type RemotePort string

// A Msg is a piece of information that is transferred between components.
type Msg interface {
	Meta() *MsgMeta
	Clone() Msg
}

// MsgMeta contains the meta data that is attached to every message.
type MsgMeta struct {
	ID           string
	Src, Dst     RemotePort
	TrafficClass int
	TrafficBytes int
}

// Rsp is a special message that is used to indicate the completion of a
// request.
type Rsp interface {
	Msg
	GetRspTo() string
}

// GeneralRsp is a general response message that can be used to indicate the
// completion of any request.
type GeneralRsp struct {
	MsgMeta

	OriginalReq Msg
}

// Meta returns the meta data of the message.
func (r *GeneralRsp) Meta() *MsgMeta {
	return &r.MsgMeta
}

// Clone creates a copy of the message with a different ID.
func (r *GeneralRsp) Clone() Msg {
	cloneMsg := *r
	cloneMsg.ID = GetIDGenerator().Generate()

	return &cloneMsg
}

// GetRspTo returns the ID of the original request.
func (r *GeneralRsp) GetRspTo() string {
	return r.OriginalReq.Meta().ID
}

// GeneralRspBuilder can build general response messages.
type GeneralRspBuilder struct {
	Src, Dst     RemotePort
	TrafficClass int
	TrafficBytes int
	OriginalReq  Msg
}

// WithSrc sets the source of the response.
func (c GeneralRspBuilder) WithSrc(src RemotePort) GeneralRspBuilder {
	c.Src = src
	return c
}

// WithDst sets the destination of the response.
func (c GeneralRspBuilder) WithDst(dst RemotePort) GeneralRspBuilder {
	c.Dst = dst
	return c
}

// WithTrafficClass sets the traffic class of the response.
func (c GeneralRspBuilder) WithTrafficClass(class int) GeneralRspBuilder {
	c.TrafficClass = class
	return c
}

// WithTrafficBytes sets the traffic bytes of the response.
func (c GeneralRspBuilder) WithTrafficBytes(bytes int) GeneralRspBuilder {
	c.TrafficBytes = bytes
	return c
}

// WithOriginalReq sets the original request of the response.
func (c GeneralRspBuilder) WithOriginalReq(req Msg) GeneralRspBuilder {
	c.OriginalReq = req
	return c
}

// Build creates the response message.
func (c GeneralRspBuilder) Build() *GeneralRsp {
	rsp := &GeneralRsp{
		OriginalReq: c.OriginalReq,
	}

	rsp.ID = GetIDGenerator().Generate()
	rsp.Src = c.Src
	rsp.Dst = c.Dst
	rsp.TrafficClass = c.TrafficClass
	rsp.TrafficBytes = c.TrafficBytes

	return rsp
}
