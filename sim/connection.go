package sim

// A SendError happens when a message cannot be sent or delivered because the
// destination buffer is full.
type SendError struct {
}

// NewSendError creates a SendError
func NewSendError() *SendError {
	e := new(SendError)
	return e
}

// A Connection is responsible for delivering messages to their destination.
type Connection interface {
	Named

	// PlugIn connects a port to the connection. Once connected, the
	// connection delivers the port's outgoing messages to their
	// destinations.
	PlugIn(port Port)

	// Unplug detaches a port from the connection.
	Unplug(port Port)

	// NotifyAvailable is called by a port to notify that the port can
	// receive messages again.
	NotifyAvailable(port Port)

	// NotifySend is called by a port to notify that the port has a message
	// to send.
	NotifySend()
}
