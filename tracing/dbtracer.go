package tracing

import (
	"sync"

	"github.com/tebeka/atexit"

	"github.com/karshPrime/uni-traffic-light/datarecording"
	"github.com/karshPrime/uni-traffic-light/sim"
)

type taskTableEntry struct {
	ID        string
	ParentID  string
	Kind      string
	What      string
	Location  string
	StartTime float64
	EndTime   float64
}

// DBTracer is a tracer that stores tasks into a database through a data
// recorder. A task is written when it ends. Tasks still running when the
// program exits are written with the exit time as their end time.
type DBTracer struct {
	mu         sync.Mutex
	timeTeller sim.TimeTeller
	backend    datarecording.DataRecorder

	startTime, endTime sim.VTimeInSec

	tracingTasks map[string]Task
}

// NewDBTracer creates a new DBTracer.
func NewDBTracer(
	timeTeller sim.TimeTeller,
	backend datarecording.DataRecorder,
) *DBTracer {
	backend.CreateTable("trace", taskTableEntry{})

	t := &DBTracer{
		timeTeller:   timeTeller,
		backend:      backend,
		endTime:      -1,
		tracingTasks: make(map[string]Task),
	}

	atexit.Register(func() {
		t.Terminate()
	})

	return t
}

// SetTimeRange sets the time range of the tracer. Only tasks that overlap
// with the range are recorded.
func (t *DBTracer) SetTimeRange(startTime, endTime sim.VTimeInSec) {
	t.startTime = startTime
	t.endTime = endTime
}

// StartTask marks the start of a task.
func (t *DBTracer) StartTask(task Task) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.startingTaskMustBeValid(task)

	task.StartTime = t.timeTeller.CurrentTime()
	if t.endTime >= 0 && task.StartTime > t.endTime {
		return
	}

	t.tracingTasks[task.ID] = task
}

func (t *DBTracer) startingTaskMustBeValid(task Task) {
	if task.ID == "" {
		panic("task ID must be set")
	}

	if task.Kind == "" {
		panic("task kind must be set")
	}

	if task.What == "" {
		panic("task what must be set")
	}

	if task.Where == "" {
		panic("task where must be set")
	}
}

// StepTask does nothing for now.
func (t *DBTracer) StepTask(_ Task) {
	// Do nothing.
}

// EndTask writes the completed task to the database.
func (t *DBTracer) EndTask(task Task) {
	t.mu.Lock()
	defer t.mu.Unlock()

	task.EndTime = t.timeTeller.CurrentTime()
	if task.EndTime < t.startTime {
		delete(t.tracingTasks, task.ID)
		return
	}

	originalTask, ok := t.tracingTasks[task.ID]
	if !ok {
		return
	}

	originalTask.EndTime = task.EndTime
	delete(t.tracingTasks, task.ID)

	t.writeTask(originalTask)
}

// Terminate ends all the tasks that are still running and flushes the
// backend.
func (t *DBTracer) Terminate() {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.timeTeller.CurrentTime()
	for _, task := range t.tracingTasks {
		task.EndTime = now
		t.writeTask(task)
	}

	t.tracingTasks = nil

	t.backend.Flush()
}

func (t *DBTracer) writeTask(task Task) {
	entry := taskTableEntry{
		ID:        task.ID,
		ParentID:  task.ParentID,
		Kind:      task.Kind,
		What:      task.What,
		Location:  task.Where,
		StartTime: float64(task.StartTime),
		EndTime:   float64(task.EndTime),
	}
	t.backend.InsertData("trace", entry)
}
