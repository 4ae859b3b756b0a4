package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmaraujo/cronograma/internal/depgraph"
	"github.com/dmaraujo/cronograma/internal/schedule"
)

// TaskDraft carries everything needed to create a task.
type TaskDraft struct {
	Description  string
	Category     schedule.Category
	RowID        string
	Start        time.Time
	End          time.Time
	Protocol     string
	Manufacturer string
	Observations string
	DependsOn    []int64
}

// AddTask validates the draft and stages a new task. The id is allocated
// here and never reused, so undoing and redoing the add keeps the same id.
func (e *Engine) AddTask(draft TaskDraft) (*schedule.Task, error) {
	if err := e.checkMutable(); err != nil {
		return nil, err
	}

	t, err := schedule.NewTask(draft.Description, draft.Category, draft.RowID, draft.Start, draft.End)
	if err != nil {
		return nil, err
	}
	row := e.overlay.Row(draft.RowID)
	if row == nil {
		return nil, schedule.ErrRowNotFound
	}
	if !row.Category.Hosts(draft.Category) {
		return nil, schedule.ErrRowCategoryMismatch
	}

	// Prerequisites must exist and end before the new task starts.
	var latest time.Time
	var blocking int64
	for _, depID := range draft.DependsOn {
		dep := e.overlay.Task(depID)
		if dep == nil {
			return nil, fmt.Errorf("dependency: %w (#%d)", schedule.ErrTaskNotFound, depID)
		}
		if dep.End.After(latest) || blocking == 0 {
			latest = dep.End
			blocking = depID
		}
	}
	if blocking != 0 {
		earliest := latest.AddDate(0, 0, 1)
		if t.Start.Before(earliest) {
			return nil, &schedule.DependencyViolationError{TaskID: blocking, Needed: earliest}
		}
	}

	t.ID = e.nextTaskID
	e.nextTaskID++
	t.Protocol = draft.Protocol
	t.Manufacturer = draft.Manufacturer
	t.Observations = draft.Observations
	t.DependsOn = append([]int64(nil), draft.DependsOn...)

	if err := e.run(&addTaskCmd{task: t}); err != nil {
		return nil, err
	}
	return e.overlay.Task(t.ID), nil
}

// MoveTask relocates a task, preserving its duration in calendar days.
// The policy decides whether dependents in violation reject the move or
// are rigidly shifted along with it.
func (e *Engine) MoveTask(taskID int64, newRowID string, newStart time.Time, policy MovePolicy) error {
	if err := e.checkMutable(); err != nil {
		return err
	}
	plan, err := e.ProposeMove(taskID, newRowID, newStart, policy)
	if err != nil {
		return err
	}
	return e.run(planCommand(e.overlay, plan, fmt.Sprintf("move task #%d (+%d dependents)", taskID, len(plan.Cascade))))
}

// ResizeTask changes a task's end date with the start held fixed.
func (e *Engine) ResizeTask(taskID int64, newEnd time.Time, policy MovePolicy) error {
	if err := e.checkMutable(); err != nil {
		return err
	}
	plan, err := e.ProposeResize(taskID, newEnd, policy)
	if err != nil {
		return err
	}
	return e.run(planCommand(e.overlay, plan, fmt.Sprintf("resize task #%d (+%d dependents)", taskID, len(plan.Cascade))))
}

// planCommand turns a validated plan into one undoable command: a single
// move, or a compound covering the cascade.
func planCommand(snap *schedule.Snapshot, plan *MovePlan, label string) command {
	mk := func(p Placement) command {
		t := snap.Task(p.TaskID)
		return &moveTaskCmd{
			id:   p.TaskID,
			from: placement{rowID: t.RowID, start: t.Start, end: t.End},
			to:   placement{rowID: p.RowID, start: p.Start, end: p.End},
		}
	}
	if len(plan.Cascade) == 0 {
		return mk(plan.Primary)
	}
	cmds := []command{mk(plan.Primary)}
	for _, p := range plan.Cascade {
		cmds = append(cmds, mk(p))
	}
	return &compoundCmd{label: label, cmds: cmds}
}

// TaskEdit lists the task fields an edit may change. Nil fields are left
// untouched.
type TaskEdit struct {
	Description  *string
	Protocol     *string
	Manufacturer *string
	Observations *string
	Status       *schedule.Status
}

// EditTask stages a field edit. Status transitions are validated against
// the task's category; a terminal status retires the task in place rather
// than removing it.
func (e *Engine) EditTask(taskID int64, edit TaskEdit) error {
	if err := e.checkMutable(); err != nil {
		return err
	}
	t := e.overlay.Task(taskID)
	if t == nil {
		return schedule.ErrTaskNotFound
	}

	after := t.Clone()
	if edit.Description != nil {
		d := strings.TrimSpace(*edit.Description)
		if d == "" {
			return schedule.ErrEmptyDescription
		}
		after.Description = d
	}
	if edit.Protocol != nil {
		after.Protocol = *edit.Protocol
	}
	if edit.Manufacturer != nil {
		after.Manufacturer = *edit.Manufacturer
	}
	if edit.Observations != nil {
		after.Observations = *edit.Observations
	}
	if edit.Status != nil {
		if !schedule.ValidStatus(t.Category, *edit.Status) {
			return fmt.Errorf("%w: %s for %s", schedule.ErrInvalidStatus, *edit.Status, t.Category)
		}
		after.Status = *edit.Status
	}

	return e.run(&editTaskCmd{before: t.Clone(), after: after})
}

// DeleteTask removes a task and detaches it from every dependent. One
// undo restores the task and the exact dependency lists.
func (e *Engine) DeleteTask(taskID int64) error {
	if err := e.checkMutable(); err != nil {
		return err
	}
	t := e.overlay.Task(taskID)
	if t == nil {
		return schedule.ErrTaskNotFound
	}
	return e.run(newDeleteTaskCmd(e.overlay, t))
}

// AddDependency records that `from` must end before `to` starts. The edge
// is rejected when it would close a cycle or when `to` already starts
// before `from` ends.
func (e *Engine) AddDependency(from, to int64) error {
	if err := e.checkMutable(); err != nil {
		return err
	}
	fromTask := e.overlay.Task(from)
	toTask := e.overlay.Task(to)
	if fromTask == nil || toTask == nil {
		return schedule.ErrTaskNotFound
	}
	if toTask.DependsOnTask(from) {
		return nil // already present
	}
	// Probe on a throwaway graph; e.graph is rebuilt from tasks after
	// every mutation, so probing must not leak into it.
	probe := e.graphCopy()
	if err := probe.AddEdge(from, to); err != nil {
		return err
	}
	earliest := fromTask.End.AddDate(0, 0, 1)
	if toTask.Start.Before(earliest) {
		return &schedule.DependencyViolationError{TaskID: from, Needed: earliest}
	}

	after := toTask.Clone()
	after.DependsOn = append(after.DependsOn, from)
	return e.run(&editTaskCmd{before: toTask.Clone(), after: after})
}

// RemoveDependency deletes the from -> to ordering constraint.
func (e *Engine) RemoveDependency(from, to int64) error {
	if err := e.checkMutable(); err != nil {
		return err
	}
	toTask := e.overlay.Task(to)
	if toTask == nil {
		return schedule.ErrTaskNotFound
	}
	if !toTask.DependsOnTask(from) {
		return fmt.Errorf("task #%d does not depend on #%d", to, from)
	}
	after := toTask.Clone()
	var kept []int64
	for _, d := range after.DependsOn {
		if d != from {
			kept = append(kept, d)
		}
	}
	after.DependsOn = kept
	return e.run(&editTaskCmd{before: toTask.Clone(), after: after})
}

func (e *Engine) graphCopy() *depgraph.Graph {
	deps := make(map[int64][]int64)
	for _, t := range e.overlay.Tasks {
		if len(t.DependsOn) > 0 {
			deps[t.ID] = t.DependsOn
		}
	}
	return depgraph.Build(deps)
}
