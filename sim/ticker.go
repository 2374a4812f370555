package sim

// TickEvent is a generic event that almost all the components use to progress
// their internal states.
type TickEvent struct {
	*EventBase
}

// MakeTickEvent creates a new TickEvent
func MakeTickEvent(t VTimeInSec, handler Handler) TickEvent {
	evt := TickEvent{}
	evt.EventBase = NewEventBase(t, handler)

	return evt
}

// A Ticker is an object that updates the states of an entity, tick by tick.
// Tick returns true if the entity makes progress in the tick. Returning false
// lets the scheduler stop ticking until an external signal wakes the entity
// up again.
type Ticker interface {
	Tick() bool
}

// TickScheduler can help schedule tick events.
type TickScheduler struct {
	handler   Handler
	Freq      Freq
	Engine    Engine
	secondary bool

	nextTickTime VTimeInSec
}

// NewTickScheduler creates a scheduler for tick events.
func NewTickScheduler(
	handler Handler,
	engine Engine,
	freq Freq,
) *TickScheduler {
	ticker := new(TickScheduler)

	ticker.handler = handler
	ticker.Engine = engine
	ticker.Freq = freq
	ticker.nextTickTime = -1

	return ticker
}

// NewSecondaryTickScheduler creates a scheduler that always schedules
// secondary tick events.
func NewSecondaryTickScheduler(
	handler Handler,
	engine Engine,
	freq Freq,
) *TickScheduler {
	ticker := new(TickScheduler)

	ticker.handler = handler
	ticker.Engine = engine
	ticker.Freq = freq
	ticker.secondary = true
	ticker.nextTickTime = -1

	return ticker
}

// TickNow schedules a tick event at the current tick.
func (t *TickScheduler) TickNow() {
	now := t.Engine.CurrentTime()
	time := t.Freq.ThisTick(now)

	if t.nextTickTime >= time {
		return
	}

	t.nextTickTime = time
	tick := MakeTickEvent(time, t.handler)

	if t.secondary {
		tick.secondary = true
	}

	t.Engine.Schedule(tick)
}

// TickLater schedules a tick event at the next tick.
func (t *TickScheduler) TickLater() {
	now := t.Engine.CurrentTime()
	time := t.Freq.NextTick(now)

	if t.nextTickTime >= time {
		return
	}

	t.nextTickTime = time
	tick := MakeTickEvent(time, t.handler)

	if t.secondary {
		tick.secondary = true
	}

	t.Engine.Schedule(tick)
}

// TickingComponent is a component that mainly updates its states with ticks.
type TickingComponent struct {
	*ComponentBase
	*TickScheduler

	ticker Ticker
}

// NotifyPortFree triggers the TickingComponent to start ticking again.
func (c *TickingComponent) NotifyPortFree(_ Port) {
	c.TickLater()
}

// NotifyRecv triggers the TickingComponent to start ticking again.
func (c *TickingComponent) NotifyRecv(_ Port) {
	c.TickLater()
}

// Handle triggers the tick and schedules the next tick if the entity is
// still making progress.
func (c *TickingComponent) Handle(e Event) error {
	madeProgress := c.ticker.Tick()

	if madeProgress {
		c.TickLater()
	}

	return nil
}

// NewTickingComponent creates a new ticking component.
func NewTickingComponent(
	name string,
	engine Engine,
	freq Freq,
	ticker Ticker,
) *TickingComponent {
	tc := new(TickingComponent)
	tc.TickScheduler = NewTickScheduler(tc, engine, freq)
	tc.ComponentBase = NewComponentBase(name)
	tc.ticker = ticker

	return tc
}

// NewSecondaryTickingComponent creates a new ticking component that handles
// its ticks after all the primary components at the same time.
func NewSecondaryTickingComponent(
	name string,
	engine Engine,
	freq Freq,
	ticker Ticker,
) *TickingComponent {
	tc := new(TickingComponent)
	tc.TickScheduler = NewSecondaryTickScheduler(tc, engine, freq)
	tc.ComponentBase = NewComponentBase(name)
	tc.ticker = ticker

	return tc
}
