package engine

import (
	"time"

	"github.com/dmaraujo/cronograma/internal/dateutil"
	"github.com/dmaraujo/cronograma/internal/schedule"
)

// MovePolicy decides what happens to dependent tasks when a prerequisite
// moves later: reject the move outright (interactive drags) or rigidly
// shift the violated dependents forward by the same delta (batch
// reschedules).
type MovePolicy string

const (
	MovePolicyReject  MovePolicy = "reject"
	MovePolicyCascade MovePolicy = "cascade"
)

// Valid returns true for known policies.
func (p MovePolicy) Valid() bool {
	return p == MovePolicyReject || p == MovePolicyCascade
}

// Placement is a validated (row, start, end) proposal for one task.
type Placement struct {
	TaskID int64
	RowID  string
	Start  time.Time
	End    time.Time
}

// placement is the compact form carried inside move commands.
type placement struct {
	rowID string
	start time.Time
	end   time.Time
}

// ProposeMove validates relocating a task to a new row and start date. The
// task keeps its duration in calendar days. On success the returned plan
// holds the task's placement plus any cascade moves of dependents; the
// caller applies it through MoveTask. The overlay is never touched here.
//
// Validation order: the target row must exist, the new start must not
// precede any prerequisite's end, dependents must stay satisfiable (or be
// cascade-shifted, per policy), and the row must host the task's category.
func (e *Engine) ProposeMove(taskID int64, newRowID string, newStart time.Time, policy MovePolicy) (*MovePlan, error) {
	t := e.overlay.Task(taskID)
	if t == nil {
		return nil, schedule.ErrTaskNotFound
	}
	row := e.overlay.Row(newRowID)
	if row == nil {
		return nil, schedule.ErrRowNotFound
	}

	newStart = dateutil.TruncateToDay(newStart)
	end := newStart.AddDate(0, 0, t.DurationDays())

	// Prerequisites: the task cannot start before they end.
	if earliest, ok := e.graph.EarliestStart(taskID, e.endDate); ok && newStart.Before(earliest) {
		blocking, _ := e.graph.BlockingDependency(taskID, e.endDate)
		return nil, &schedule.DependencyViolationError{TaskID: blocking, Needed: earliest}
	}

	if !row.Category.Hosts(t.Category) {
		return nil, schedule.ErrRowCategoryMismatch
	}

	plan := &MovePlan{
		Primary: Placement{TaskID: taskID, RowID: newRowID, Start: newStart, End: end},
	}

	// Dependents: re-validate transitively against the proposed end dates.
	delta := dateutil.DaysBetween(t.Start, newStart)
	shifted := map[int64]time.Time{taskID: end}
	endAfter := func(id int64) (time.Time, bool) {
		if end, ok := shifted[id]; ok {
			return end, true
		}
		return e.endDate(id)
	}
	for _, depID := range e.graph.TransitiveDependents(taskID) {
		dep := e.overlay.Task(depID)
		if dep == nil {
			continue
		}
		earliest, ok := e.graph.EarliestStart(depID, endAfter)
		if !ok || !dep.Start.Before(earliest) {
			continue
		}
		if policy != MovePolicyCascade {
			return nil, &schedule.DependencyViolationError{TaskID: depID, Needed: earliest, Dependent: true}
		}
		// Rigid shift: same delta as the primary move, row unchanged.
		newDepStart := dep.Start.AddDate(0, 0, delta)
		newDepEnd := dep.End.AddDate(0, 0, delta)
		plan.Cascade = append(plan.Cascade, Placement{
			TaskID: depID, RowID: dep.RowID, Start: newDepStart, End: newDepEnd,
		})
		shifted[depID] = newDepEnd
	}

	return plan, nil
}

// ProposeResize validates changing a task's end date with the start held
// fixed. Dependents are re-validated the same way a move is.
func (e *Engine) ProposeResize(taskID int64, newEnd time.Time, policy MovePolicy) (*MovePlan, error) {
	t := e.overlay.Task(taskID)
	if t == nil {
		return nil, schedule.ErrTaskNotFound
	}
	newEnd = dateutil.TruncateToDay(newEnd)
	if newEnd.Before(t.Start) {
		return nil, schedule.ErrEndBeforeStart
	}

	plan := &MovePlan{
		Primary: Placement{TaskID: taskID, RowID: t.RowID, Start: t.Start, End: newEnd},
	}

	delta := dateutil.DaysBetween(t.End, newEnd)
	shifted := map[int64]time.Time{taskID: newEnd}
	endAfter := func(id int64) (time.Time, bool) {
		if end, ok := shifted[id]; ok {
			return end, true
		}
		return e.endDate(id)
	}
	for _, depID := range e.graph.TransitiveDependents(taskID) {
		dep := e.overlay.Task(depID)
		if dep == nil {
			continue
		}
		earliest, ok := e.graph.EarliestStart(depID, endAfter)
		if !ok || !dep.Start.Before(earliest) {
			continue
		}
		if policy != MovePolicyCascade {
			return nil, &schedule.DependencyViolationError{TaskID: depID, Needed: earliest, Dependent: true}
		}
		newDepStart := dep.Start.AddDate(0, 0, delta)
		newDepEnd := dep.End.AddDate(0, 0, delta)
		plan.Cascade = append(plan.Cascade, Placement{
			TaskID: depID, RowID: dep.RowID, Start: newDepStart, End: newDepEnd,
		})
		shifted[depID] = newDepEnd
	}

	return plan, nil
}

// MovePlan is the outcome of a successful proposal: the primary placement
// plus the cascade placements the policy produced.
type MovePlan struct {
	Primary Placement
	Cascade []Placement
}

// endDate resolves a task id to its end date in the overlay.
func (e *Engine) endDate(id int64) (time.Time, bool) {
	t := e.overlay.Task(id)
	if t == nil {
		return time.Time{}, false
	}
	return t.End, true
}
