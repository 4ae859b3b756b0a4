package engine

import (
	"fmt"
	"strings"

	"github.com/dmaraujo/cronograma/internal/schedule"
)

// AddRow allocates the next id in the category's sequence and stages a
// new row with the placeholder label. Ids come from the session allocator,
// not from the rows currently present, so a deleted row's id is never
// handed out again.
func (e *Engine) AddRow(category schedule.RowCategory) (*schedule.Row, error) {
	if err := e.checkMutable(); err != nil {
		return nil, err
	}
	id, err := e.rowIDs.Next(category)
	if err != nil {
		return nil, err
	}
	row := &schedule.Row{ID: id, Label: schedule.DefaultLabel(id), Category: category}
	if err := e.run(&addRowCmd{row: row}); err != nil {
		return nil, err
	}
	return e.overlay.Row(id), nil
}

// RenameRow changes a row's display label. The projection resolves labels
// on every rebuild, so every surface listing row names stays consistent.
func (e *Engine) RenameRow(id, label string) error {
	if err := e.checkMutable(); err != nil {
		return err
	}
	label = strings.TrimSpace(label)
	if label == "" {
		return schedule.ErrEmptyDescription
	}
	row := e.overlay.Row(id)
	if row == nil {
		return schedule.ErrRowNotFound
	}
	if row.Label == label {
		return nil
	}
	return e.run(&renameRowCmd{id: id, from: row.Label, to: label})
}

// DeleteRow removes a row. Without cascade it fails with ErrRowInUse when
// tasks still reference the row; with cascade the referencing tasks are
// deleted first, the whole sequence wrapped in one compound command so a
// single undo restores row and tasks alike.
func (e *Engine) DeleteRow(id string, cascade bool) error {
	if err := e.checkMutable(); err != nil {
		return err
	}
	row := e.overlay.Row(id)
	if row == nil {
		return schedule.ErrRowNotFound
	}
	if row.BuiltIn {
		return ErrBuiltInRow
	}

	tasks := e.overlay.TasksOnRow(id)
	if len(tasks) == 0 {
		return e.run(&deleteRowCmd{row: row.Clone(), index: e.overlay.RowIndex(id)})
	}
	if !cascade {
		return fmt.Errorf("%w: row %s has %d task(s)", schedule.ErrRowInUse, id, len(tasks))
	}

	// Build the cascade against a scratch copy so each delete captures
	// indices and dependency lists as they stand when it runs. Reverting
	// in reverse order then restores the exact prior state.
	scratch := e.overlay.Clone()
	var cmds []command
	for _, t := range tasks {
		cmd := newDeleteTaskCmd(scratch, scratch.Task(t.ID))
		if err := cmd.apply(scratch); err != nil {
			return err
		}
		cmds = append(cmds, cmd)
	}
	cmds = append(cmds, &deleteRowCmd{row: row.Clone(), index: scratch.RowIndex(id)})

	return e.run(&compoundCmd{
		label: fmt.Sprintf("delete row %s and %d task(s)", id, len(tasks)),
		cmds:  cmds,
	})
}
