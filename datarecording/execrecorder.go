package datarecording

import (
	"os"
	"strings"
	"time"
)

type execInfo struct {
	Property string
	Value    string
}

// An ExecRecorder notes how the program was run in the recording
// database, so that a recorded run can be reproduced later.
type ExecRecorder struct {
	tableName string
	recorder  DataRecorder
	entries   []execInfo
}

// NewExecRecorder creates an ExecRecorder that writes into the given
// recorder.
func NewExecRecorder(recorder DataRecorder) *ExecRecorder {
	e := &ExecRecorder{
		tableName: "exec_info",
		recorder:  recorder,
	}

	e.recorder.CreateTable(e.tableName, execInfo{})

	return e
}

// Start logs the current execution.
func (e *ExecRecorder) Start() {
	startTime := time.Now().Format("2006-01-02 15:04:05.000000000")
	e.entries = append(e.entries, execInfo{"Start Time", startTime})

	cmd := strings.Join(os.Args, " ")
	e.entries = append(e.entries, execInfo{"Command", cmd})

	cwd, err := os.Getwd()
	if err != nil {
		panic(err)
	}

	e.entries = append(e.entries, execInfo{"Working Directory", cwd})
}

// End writes the collected entries along with the program exit time.
func (e *ExecRecorder) End() {
	for _, entry := range e.entries {
		e.recorder.InsertData(e.tableName, entry)
	}

	endTime := time.Now().Format("2006-01-02 15:04:05.000000000")
	e.recorder.InsertData(e.tableName, execInfo{"End Time", endTime})

	e.entries = nil

	e.recorder.Flush()
}
