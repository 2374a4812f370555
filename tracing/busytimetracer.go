package tracing

import (
	"container/list"

	"github.com/karshPrime/uni-traffic-light/sim"
)

type taskSpan struct {
	start, end sim.VTimeInSec
	completed  bool
}

// BusyTimeTracer traces the time a domain spends processing the tasks
// that pass its filter. Overlapping tasks count once, so the busy time of
// a domain never exceeds the wall time of the simulation.
type BusyTimeTracer struct {
	timeTeller    sim.TimeTeller
	filter        TaskFilter
	inflightTasks map[string]*list.Element
	taskTimes     *list.List
	busyTime      sim.VTimeInSec
}

// NewBusyTimeTracer creates a new BusyTimeTracer
func NewBusyTimeTracer(
	timeTeller sim.TimeTeller,
	filter TaskFilter,
) *BusyTimeTracer {
	t := &BusyTimeTracer{
		timeTeller:    timeTeller,
		filter:        filter,
		inflightTasks: make(map[string]*list.Element),
		taskTimes:     list.New(),
	}

	t.taskTimes.Init()

	return t
}

// BusyTime returns the time spent on the tasks seen so far.
func (t *BusyTimeTracer) BusyTime() sim.VTimeInSec {
	return t.busyTime
}

// TerminateAllTasks marks all the inflight tasks as completed at the
// given time.
func (t *BusyTimeTracer) TerminateAllTasks(now sim.VTimeInSec) {
	for e := t.taskTimes.Front(); e != nil; e = e.Next() {
		span := e.Value.(*taskSpan)
		if !span.completed {
			span.completed = true
			span.end = now
		}
	}

	t.collapse(now)
}

// StartTask records the task start time
func (t *BusyTimeTracer) StartTask(task Task) {
	task.StartTime = t.timeTeller.CurrentTime()

	if t.filter != nil && !t.filter(task) {
		return
	}

	span := &taskSpan{start: task.StartTime}

	elem := t.taskTimes.PushBack(span)
	t.inflightTasks[task.ID] = elem
}

// StepTask does nothing
func (t *BusyTimeTracer) StepTask(_ Task) {
	// Do nothing
}

// EndTask records the end of the task
func (t *BusyTimeTracer) EndTask(task Task) {
	task.EndTime = t.timeTeller.CurrentTime()

	elem, ok := t.inflightTasks[task.ID]
	if !ok {
		return
	}

	span := elem.Value.(*taskSpan)
	span.end = task.EndTime
	span.completed = true
	delete(t.inflightTasks, task.ID)

	t.collapse(task.EndTime)
}

// collapse folds the spans that can no longer grow into the busy time.
// Spans stay pending while an incomplete task that started earlier could
// still extend past them.
func (t *BusyTimeTracer) collapse(now sim.VTimeInSec) {
	time, found := t.startTimeOfFirstIncompleteTask()
	if found && time < now {
		return
	}

	finishedSpans := make([]*taskSpan, 0)

	var next *list.Element
	for e := t.taskTimes.Front(); e != nil; e = next {
		next = e.Next()

		span := e.Value.(*taskSpan)
		if !span.completed {
			break
		}

		if span.end <= now {
			finishedSpans = append(finishedSpans, span)
			t.taskTimes.Remove(e)
		}
	}

	t.busyTime += t.spanBusyTime(finishedSpans)
}

func (t *BusyTimeTracer) startTimeOfFirstIncompleteTask() (
	sim.VTimeInSec, bool,
) {
	for e := t.taskTimes.Front(); e != nil; e = e.Next() {
		span := e.Value.(*taskSpan)
		if !span.completed {
			return span.start, true
		}
	}

	return 0, false
}

// spanBusyTime merges overlapping spans and sums the merged durations.
func (t *BusyTimeTracer) spanBusyTime(spans []*taskSpan) sim.VTimeInSec {
	busyTime := sim.VTimeInSec(0.0)
	covered := make(map[int]bool)

	for i, s1 := range spans {
		if covered[i] {
			continue
		}

		covered[i] = true

		merged := taskSpan{
			start: s1.start,
			end:   s1.end,
		}

		for j, s2 := range spans {
			if covered[j] {
				continue
			}

			if spansOverlap(s1, s2) {
				covered[j] = true
				extendSpan(&merged, s2)
			}
		}

		busyTime += merged.end - merged.start
	}

	return busyTime
}

func extendSpan(base *taskSpan, other *taskSpan) {
	if other.start < base.start {
		base.start = other.start
	}

	if other.end > base.end {
		base.end = other.end
	}
}

func spansOverlap(s1, s2 *taskSpan) bool {
	if s1.start <= s2.start && s1.end >= s2.start {
		return true
	}

	if s1.start <= s2.end && s1.end >= s2.end {
		return true
	}

	if s1.start >= s2.start && s1.end <= s2.end {
		return true
	}

	return false
}
