// Package stats reports performance metrics of a simulated run. The
// analyzers hook the controller's notifications and write their findings
// through a PerfLogger when the simulation terminates.
package stats

import (
	"github.com/karshPrime/uni-traffic-light/datarecording"
)

// PerfEntry is a single entry in the performance database.
type PerfEntry struct {
	Start     float64
	End       float64
	Where     string
	What      string
	EntryType string
	Value     float64
	Unit      string
}

// PerfLogger is the interface that provides the service that can record
// performance data entries.
type PerfLogger interface {
	AddDataEntry(entry PerfEntry)
}

// RecorderPerfLogger writes performance entries into the "perf" table of
// a data recorder.
type RecorderPerfLogger struct {
	recorder datarecording.DataRecorder
}

// NewRecorderPerfLogger creates a logger and declares the perf table on
// the recorder.
func NewRecorderPerfLogger(
	recorder datarecording.DataRecorder,
) *RecorderPerfLogger {
	recorder.CreateTable("perf", PerfEntry{})

	return &RecorderPerfLogger{recorder: recorder}
}

// AddDataEntry buffers one entry for recording.
func (l *RecorderPerfLogger) AddDataEntry(entry PerfEntry) {
	l.recorder.InsertData("perf", entry)
}
