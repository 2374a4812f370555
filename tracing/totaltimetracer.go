package tracing

import (
	"sync"

	"github.com/karshPrime/uni-traffic-light/sim"
)

// TotalTimeTracer sums the time spent on tasks that pass its filter. If
// two tasks overlap in time, both spans count in full.
type TotalTimeTracer struct {
	timeTeller    sim.TimeTeller
	filter        TaskFilter
	lock          sync.Mutex
	totalTime     sim.VTimeInSec
	inflightTasks map[string]Task
}

// NewTotalTimeTracer creates a new TotalTimeTracer
func NewTotalTimeTracer(
	timeTeller sim.TimeTeller,
	filter TaskFilter,
) *TotalTimeTracer {
	t := &TotalTimeTracer{
		timeTeller:    timeTeller,
		filter:        filter,
		inflightTasks: make(map[string]Task),
	}
	return t
}

// TotalTime returns the time spent on the tasks seen so far.
func (t *TotalTimeTracer) TotalTime() sim.VTimeInSec {
	t.lock.Lock()
	time := t.totalTime
	t.lock.Unlock()
	return time
}

// StartTask records the task start time
func (t *TotalTimeTracer) StartTask(task Task) {
	task.StartTime = t.timeTeller.CurrentTime()

	if t.filter != nil && !t.filter(task) {
		return
	}

	t.lock.Lock()
	t.inflightTasks[task.ID] = task
	t.lock.Unlock()
}

// StepTask does nothing
func (t *TotalTimeTracer) StepTask(_ Task) {
	// Do nothing
}

// EndTask records the end of the task
func (t *TotalTimeTracer) EndTask(task Task) {
	task.EndTime = t.timeTeller.CurrentTime()

	t.lock.Lock()
	originalTask, ok := t.inflightTasks[task.ID]
	if !ok {
		t.lock.Unlock()
		return
	}

	t.totalTime += task.EndTime - originalTask.StartTime
	delete(t.inflightTasks, task.ID)
	t.lock.Unlock()
}
