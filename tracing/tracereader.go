package tracing

import (
	"database/sql"

	// SQLite driver
	_ "github.com/mattn/go-sqlite3"

	"github.com/karshPrime/uni-traffic-light/sim"
)

// TaskQuery describes the tasks to query. Fields left at their zero value
// do not constrain the result.
type TaskQuery struct {
	// Use ID to select a single task by its ID.
	ID string

	// Use ParentID to select all the tasks that are children of a task.
	ParentID string

	// Use Kind to select all the tasks that are of a kind.
	Kind string

	// Use Where to select all the tasks recorded at a location.
	Where string

	// EnableTimeRange enables time range selection.
	EnableTimeRange bool

	// StartTime and EndTime select the tasks that overlap with the range.
	StartTime, EndTime float64
}

// A TraceReader reads tasks back from a recorded trace database.
type TraceReader struct {
	*sql.DB
}

// NewTraceReader opens a recorded trace database.
func NewTraceReader(filename string) *TraceReader {
	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		panic(err)
	}

	return &TraceReader{DB: db}
}

// ListLocations returns all the locations that recorded tasks.
func (r *TraceReader) ListLocations() []string {
	rows, err := r.Query(
		"SELECT DISTINCT Location FROM trace ORDER BY Location")
	if err != nil {
		panic(err)
	}
	defer rows.Close()

	var locations []string

	for rows.Next() {
		var location string

		if err := rows.Scan(&location); err != nil {
			panic(err)
		}

		locations = append(locations, location)
	}

	return locations
}

// ListTasks returns the tasks that match the query, ordered by start time.
func (r *TraceReader) ListTasks(query TaskQuery) []Task {
	sqlStr, args := prepareTaskQuery(query)

	rows, err := r.Query(sqlStr, args...)
	if err != nil {
		panic(err)
	}
	defer rows.Close()

	tasks := []Task{}

	for rows.Next() {
		t := Task{}

		var start, end float64

		err := rows.Scan(
			&t.ID,
			&t.ParentID,
			&t.Kind,
			&t.What,
			&t.Where,
			&start,
			&end,
		)
		if err != nil {
			panic(err)
		}

		t.StartTime = sim.VTimeInSec(start)
		t.EndTime = sim.VTimeInSec(end)

		tasks = append(tasks, t)
	}

	return tasks
}

func prepareTaskQuery(query TaskQuery) (string, []interface{}) {
	sqlStr := `SELECT ID, ParentID, Kind, What, Location, StartTime, EndTime
		FROM trace WHERE 1=1`
	args := []interface{}{}

	if query.ID != "" {
		sqlStr += " AND ID = ?"
		args = append(args, query.ID)
	}

	if query.ParentID != "" {
		sqlStr += " AND ParentID = ?"
		args = append(args, query.ParentID)
	}

	if query.Kind != "" {
		sqlStr += " AND Kind = ?"
		args = append(args, query.Kind)
	}

	if query.Where != "" {
		sqlStr += " AND Location = ?"
		args = append(args, query.Where)
	}

	if query.EnableTimeRange {
		sqlStr += " AND EndTime > ? AND StartTime < ?"
		args = append(args, query.StartTime, query.EndTime)
	}

	sqlStr += " ORDER BY StartTime"

	return sqlStr, args
}
