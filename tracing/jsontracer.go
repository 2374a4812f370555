package tracing

import (
	"encoding/json"
	"io"
	"sync"

	"github.com/karshPrime/uni-traffic-light/sim"
)

// JSONTracer writes completed tasks into a writer as a JSON array. It
// offers a trace sink that needs no database driver.
type JSONTracer struct {
	timeTeller    sim.TimeTeller
	w             io.Writer
	lock          sync.Mutex
	firstTask     bool
	inflightTasks map[string]Task
}

// NewJSONTracer creates a new JSONTracer that writes to w. Finish must be
// called to complete the output.
func NewJSONTracer(timeTeller sim.TimeTeller, w io.Writer) *JSONTracer {
	t := &JSONTracer{
		timeTeller:    timeTeller,
		w:             w,
		firstTask:     true,
		inflightTasks: make(map[string]Task),
	}

	t.mustWrite("[\n")

	return t
}

// StartTask records the start of a task
func (t *JSONTracer) StartTask(task Task) {
	task.StartTime = t.timeTeller.CurrentTime()

	t.lock.Lock()
	t.inflightTasks[task.ID] = task
	t.lock.Unlock()
}

// StepTask does nothing
func (t *JSONTracer) StepTask(_ Task) {
	// Do nothing
}

// EndTask writes the completed task out.
func (t *JSONTracer) EndTask(task Task) {
	t.lock.Lock()
	defer t.lock.Unlock()

	originalTask, ok := t.inflightTasks[task.ID]
	if !ok {
		return
	}

	originalTask.EndTime = t.timeTeller.CurrentTime()
	delete(t.inflightTasks, task.ID)

	if t.firstTask {
		t.firstTask = false
	} else {
		t.mustWrite(",\n")
	}

	b, err := json.Marshal(originalTask)
	if err != nil {
		panic(err)
	}

	t.mustWrite(string(b))
}

// Finish completes the JSON array.
func (t *JSONTracer) Finish() {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.mustWrite("\n]\n")
}

func (t *JSONTracer) mustWrite(s string) {
	_, err := t.w.Write([]byte(s))
	if err != nil {
		panic(err)
	}
}
