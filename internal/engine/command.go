package engine

import (
	"fmt"

	"github.com/dmaraujo/cronograma/internal/schedule"
)

// command is one invertible mutation of the overlay. Every field a command
// needs to apply or revert itself is captured at construction time, after
// validation, so apply and revert cannot fail on well-formed history.
// Redo re-applies; undo reverts.
type command interface {
	apply(snap *schedule.Snapshot) error
	revert(snap *schedule.Snapshot) error
	describe() string
}

// addTaskCmd appends a task. The id is allocated once, at construction, so
// undo followed by redo recreates the task under the same id.
type addTaskCmd struct {
	task *schedule.Task
}

func (c *addTaskCmd) apply(snap *schedule.Snapshot) error {
	if snap.Task(c.task.ID) != nil {
		return fmt.Errorf("task %d already exists", c.task.ID)
	}
	snap.Tasks = append(snap.Tasks, c.task.Clone())
	return nil
}

func (c *addTaskCmd) revert(snap *schedule.Snapshot) error {
	i := snap.TaskIndex(c.task.ID)
	if i < 0 {
		return schedule.ErrTaskNotFound
	}
	snap.Tasks = append(snap.Tasks[:i], snap.Tasks[i+1:]...)
	return nil
}

func (c *addTaskCmd) describe() string {
	return fmt.Sprintf("add task #%d %q", c.task.ID, c.task.Description)
}

// deleteTaskCmd removes a task and strips it from every dependent's
// DependsOn list. It captures the prior lists so revert restores the exact
// dependency state.
type deleteTaskCmd struct {
	task  *schedule.Task
	index int
	// priorDeps maps dependent task id to its full DependsOn list before
	// the deletion.
	priorDeps map[int64][]int64
}

func newDeleteTaskCmd(snap *schedule.Snapshot, task *schedule.Task) *deleteTaskCmd {
	prior := make(map[int64][]int64)
	for _, dep := range snap.Dependents(task.ID) {
		prior[dep.ID] = append([]int64(nil), dep.DependsOn...)
	}
	return &deleteTaskCmd{
		task:      task.Clone(),
		index:     snap.TaskIndex(task.ID),
		priorDeps: prior,
	}
}

func (c *deleteTaskCmd) apply(snap *schedule.Snapshot) error {
	i := snap.TaskIndex(c.task.ID)
	if i < 0 {
		return schedule.ErrTaskNotFound
	}
	snap.Tasks = append(snap.Tasks[:i], snap.Tasks[i+1:]...)
	for id := range c.priorDeps {
		dep := snap.Task(id)
		if dep == nil {
			continue
		}
		var kept []int64
		for _, d := range dep.DependsOn {
			if d != c.task.ID {
				kept = append(kept, d)
			}
		}
		dep.DependsOn = kept
	}
	return nil
}

func (c *deleteTaskCmd) revert(snap *schedule.Snapshot) error {
	i := c.index
	if i < 0 || i > len(snap.Tasks) {
		i = len(snap.Tasks)
	}
	snap.Tasks = append(snap.Tasks[:i], append([]*schedule.Task{c.task.Clone()}, snap.Tasks[i:]...)...)
	for id, deps := range c.priorDeps {
		dep := snap.Task(id)
		if dep == nil {
			continue
		}
		dep.DependsOn = append([]int64(nil), deps...)
	}
	return nil
}

func (c *deleteTaskCmd) describe() string {
	return fmt.Sprintf("delete task #%d %q", c.task.ID, c.task.Description)
}

// moveTaskCmd relocates a task to a new row and date range.
type moveTaskCmd struct {
	id       int64
	from, to placement
}

func (c *moveTaskCmd) apply(snap *schedule.Snapshot) error {
	return c.set(snap, c.to)
}

func (c *moveTaskCmd) revert(snap *schedule.Snapshot) error {
	return c.set(snap, c.from)
}

func (c *moveTaskCmd) set(snap *schedule.Snapshot, p placement) error {
	t := snap.Task(c.id)
	if t == nil {
		return schedule.ErrTaskNotFound
	}
	t.RowID = p.rowID
	t.Start = p.start
	t.End = p.end
	return nil
}

func (c *moveTaskCmd) describe() string {
	return fmt.Sprintf("move task #%d to row %s @ %s", c.id, c.to.rowID, c.to.start.Format("2006-01-02"))
}

// editTaskCmd replaces every mutable field of a task. Carrying the full
// before and after copies keeps the inverse exact even for dependency-list
// edits.
type editTaskCmd struct {
	before *schedule.Task
	after  *schedule.Task
}

func (c *editTaskCmd) apply(snap *schedule.Snapshot) error {
	return replaceTask(snap, c.after)
}

func (c *editTaskCmd) revert(snap *schedule.Snapshot) error {
	return replaceTask(snap, c.before)
}

func replaceTask(snap *schedule.Snapshot, with *schedule.Task) error {
	i := snap.TaskIndex(with.ID)
	if i < 0 {
		return schedule.ErrTaskNotFound
	}
	snap.Tasks[i] = with.Clone()
	return nil
}

func (c *editTaskCmd) describe() string {
	return fmt.Sprintf("edit task #%d", c.after.ID)
}

// addRowCmd appends a row.
type addRowCmd struct {
	row *schedule.Row
}

func (c *addRowCmd) apply(snap *schedule.Snapshot) error {
	if snap.Row(c.row.ID) != nil {
		return fmt.Errorf("row %s already exists", c.row.ID)
	}
	snap.Rows = append(snap.Rows, c.row.Clone())
	return nil
}

func (c *addRowCmd) revert(snap *schedule.Snapshot) error {
	i := snap.RowIndex(c.row.ID)
	if i < 0 {
		return schedule.ErrRowNotFound
	}
	snap.Rows = append(snap.Rows[:i], snap.Rows[i+1:]...)
	return nil
}

func (c *addRowCmd) describe() string {
	return fmt.Sprintf("add row %s", c.row.ID)
}

// renameRowCmd changes a row label.
type renameRowCmd struct {
	id       string
	from, to string
}

func (c *renameRowCmd) apply(snap *schedule.Snapshot) error {
	return setRowLabel(snap, c.id, c.to)
}

func (c *renameRowCmd) revert(snap *schedule.Snapshot) error {
	return setRowLabel(snap, c.id, c.from)
}

func setRowLabel(snap *schedule.Snapshot, id, label string) error {
	r := snap.Row(id)
	if r == nil {
		return schedule.ErrRowNotFound
	}
	r.Label = label
	return nil
}

func (c *renameRowCmd) describe() string {
	return fmt.Sprintf("rename row %s to %q", c.id, c.to)
}

// deleteRowCmd removes an empty row. Cascade deletion wraps task deletions
// and this command in a compound.
type deleteRowCmd struct {
	row   *schedule.Row
	index int
}

func (c *deleteRowCmd) apply(snap *schedule.Snapshot) error {
	i := snap.RowIndex(c.row.ID)
	if i < 0 {
		return schedule.ErrRowNotFound
	}
	snap.Rows = append(snap.Rows[:i], snap.Rows[i+1:]...)
	return nil
}

func (c *deleteRowCmd) revert(snap *schedule.Snapshot) error {
	i := c.index
	if i < 0 || i > len(snap.Rows) {
		i = len(snap.Rows)
	}
	snap.Rows = append(snap.Rows[:i], append([]*schedule.Row{c.row.Clone()}, snap.Rows[i:]...)...)
	return nil
}

func (c *deleteRowCmd) describe() string {
	return fmt.Sprintf("delete row %s", c.row.ID)
}

// addHolidayCmd registers a holiday range.
type addHolidayCmd struct {
	holiday *schedule.Holiday
}

func (c *addHolidayCmd) apply(snap *schedule.Snapshot) error {
	snap.Holidays = append(snap.Holidays, c.holiday.Clone())
	return nil
}

func (c *addHolidayCmd) revert(snap *schedule.Snapshot) error {
	for i, h := range snap.Holidays {
		if h.ID == c.holiday.ID {
			snap.Holidays = append(snap.Holidays[:i], snap.Holidays[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("holiday %d not found", c.holiday.ID)
}

func (c *addHolidayCmd) describe() string {
	return fmt.Sprintf("add holiday %q", c.holiday.Name)
}

// deleteHolidayCmd removes a holiday range.
type deleteHolidayCmd struct {
	holiday *schedule.Holiday
	index   int
}

func (c *deleteHolidayCmd) apply(snap *schedule.Snapshot) error {
	for i, h := range snap.Holidays {
		if h.ID == c.holiday.ID {
			snap.Holidays = append(snap.Holidays[:i], snap.Holidays[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("holiday %d not found", c.holiday.ID)
}

func (c *deleteHolidayCmd) revert(snap *schedule.Snapshot) error {
	i := c.index
	if i < 0 || i > len(snap.Holidays) {
		i = len(snap.Holidays)
	}
	snap.Holidays = append(snap.Holidays[:i], append([]*schedule.Holiday{c.holiday.Clone()}, snap.Holidays[i:]...)...)
	return nil
}

func (c *deleteHolidayCmd) describe() string {
	return fmt.Sprintf("delete holiday %q", c.holiday.Name)
}

// compoundCmd groups commands so one undo reverses them all: the cascade
// row delete, and cascade moves of dependent tasks.
type compoundCmd struct {
	label string
	cmds  []command
}

func (c *compoundCmd) apply(snap *schedule.Snapshot) error {
	for i, cmd := range c.cmds {
		if err := cmd.apply(snap); err != nil {
			// Roll back the partial application.
			for j := i - 1; j >= 0; j-- {
				_ = c.cmds[j].revert(snap)
			}
			return err
		}
	}
	return nil
}

func (c *compoundCmd) revert(snap *schedule.Snapshot) error {
	for i := len(c.cmds) - 1; i >= 0; i-- {
		if err := c.cmds[i].revert(snap); err != nil {
			return err
		}
	}
	return nil
}

func (c *compoundCmd) describe() string {
	return c.label
}
