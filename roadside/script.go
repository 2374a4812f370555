// Package roadside provides the equipment at the edge of the
// intersection: the loop sensors, the pedestrian buttons, and the
// maintenance reset line. A component replays a scripted sequence of
// stimuli into the controller.
package roadside

import (
	"log"

	"github.com/karshPrime/uni-traffic-light/sim"
	"github.com/karshPrime/uni-traffic-light/traffic"
)

// EventKind names the stimuli the roadside equipment can produce.
type EventKind int

const (
	// EventCarPresence raises or drops the loop sensor level of a road.
	EventCarPresence EventKind = iota

	// EventButtonPress presses the button of a crossing.
	EventButtonPress

	// EventResetPulse pulses the maintenance reset line.
	EventResetPulse
)

// An Entry is one scripted stimulus. It is replayed at the first
// equipment tick at or after its time.
type Entry struct {
	Time     sim.VTimeInSec
	Kind     EventKind
	Road     traffic.Road
	Present  bool
	Crossing traffic.Crossing
}

// A Script is a time-ordered sequence of stimuli.
type Script struct {
	entries []Entry
}

// Len returns the number of entries in the script.
func (s Script) Len() int {
	return len(s.entries)
}

// At returns the i-th entry of the script.
func (s Script) At(i int) Entry {
	return s.entries[i]
}

// ScriptBuilder builds scripts. Entries must be added in time order.
// Multiple entries may share a time.
type ScriptBuilder struct {
	entries []Entry
}

// MakeScriptBuilder returns an empty script builder.
func MakeScriptBuilder() ScriptBuilder {
	return ScriptBuilder{}
}

// WithCarPresence adds a loop sensor level change.
func (b ScriptBuilder) WithCarPresence(
	t sim.VTimeInSec,
	road traffic.Road,
	present bool,
) ScriptBuilder {
	return b.add(Entry{
		Time:    t,
		Kind:    EventCarPresence,
		Road:    road,
		Present: present,
	})
}

// WithButtonPress adds a pedestrian button press.
func (b ScriptBuilder) WithButtonPress(
	t sim.VTimeInSec,
	crossing traffic.Crossing,
) ScriptBuilder {
	return b.add(Entry{
		Time:     t,
		Kind:     EventButtonPress,
		Crossing: crossing,
	})
}

// WithResetPulse adds a maintenance reset pulse.
func (b ScriptBuilder) WithResetPulse(t sim.VTimeInSec) ScriptBuilder {
	return b.add(Entry{
		Time: t,
		Kind: EventResetPulse,
	})
}

func (b ScriptBuilder) add(e Entry) ScriptBuilder {
	if e.Time < 0 {
		log.Panic("script entries cannot be before the simulation starts")
	}

	if len(b.entries) > 0 && e.Time < b.entries[len(b.entries)-1].Time {
		log.Panic("script entries must not go back in time")
	}

	b.entries = append(b.entries, e)

	return b
}

// Build creates the script.
func (b ScriptBuilder) Build() Script {
	return Script{entries: b.entries}
}
