package tui

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dmaraujo/cronograma/internal/engine"
	"github.com/dmaraujo/cronograma/internal/schedule"
)

// handleKeyMsg handles keyboard input.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeMove:
		return m.handleMoveKeys(msg)
	case ModeResize:
		return m.handleResizeKeys(msg)
	case ModeRename:
		return m.handleRenameKeys(msg)
	case ModeConfirm:
		return m.handleConfirmKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m *Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		if m.proj.Dirty {
			return m.askConfirm(confirmQuit, "Unsaved changes. Quit anyway? (y/n)"), nil
		}
		return m, tea.Quit

	// Navigation
	case "h", "left":
		if m.cursor.Day > 0 {
			m.cursor.Day--
		} else {
			m.windowStart = m.windowStart.AddDate(0, 0, -7)
			m.cursor.Day += 6
		}
	case "l", "right":
		if m.cursor.Day < m.windowDays-1 {
			m.cursor.Day++
		} else {
			m.windowStart = m.windowStart.AddDate(0, 0, 7)
			m.cursor.Day -= 6
		}
	case "k", "up":
		if m.cursor.Row > 0 {
			m.cursor.Row--
		}
	case "j", "down":
		if m.cursor.Row < len(m.proj.Rows)-1 {
			m.cursor.Row++
		}
	case "[":
		m.windowStart = m.windowStart.AddDate(0, 0, -7)
	case "]":
		m.windowStart = m.windowStart.AddDate(0, 0, 7)
	case "g":
		m.windowStart = startOfWeek(time.Now())
		m.cursor.Day = daysInto(m.windowStart, time.Now())

	// Task operations
	case "m":
		if t := m.taskAtCursor(); t != nil {
			m.mode = ModeMove
			m.moveTaskID = t.ID
			m.moveRow = m.cursor.Row
			m.moveStart = t.Start
		}
	case "r":
		if t := m.taskAtCursor(); t != nil {
			m.mode = ModeResize
			m.moveTaskID = t.ID
			m.resizeEnd = t.End
		}
	case "t":
		if t := m.taskAtCursor(); t != nil {
			return m.cycleStatus(t)
		}
	case "x":
		if t := m.taskAtCursor(); t != nil {
			m.confirmTaskID = t.ID
			return m.askConfirm(confirmDeleteTask,
				fmt.Sprintf("Delete task #%d %q? (y/n)", t.ID, t.Description)), nil
		}
	case "y":
		if t := m.taskAtCursor(); t != nil {
			return m.yankTask(t)
		}

	// Row operations
	case "R":
		if m.cursor.Row < len(m.proj.Rows) {
			r := m.proj.Rows[m.cursor.Row]
			m.mode = ModeRename
			m.renameRowID = r.ID
			m.renameInput.SetValue(r.Label)
			m.renameInput.Focus()
		}

	// Session operations
	case "u":
		return m.undo()
	case "ctrl+r":
		return m.redo()
	case "s":
		return m.save()
	case "d":
		if m.proj.Dirty {
			return m.askConfirm(confirmDiscard, "Discard all unsaved changes? (y/n)"), nil
		}
		return m.setStatus("Nothing to discard")
	}

	return m, nil
}

// handleMoveKeys adjusts the staged placement of the moving task.
func (m *Model) handleMoveKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		return m, nil
	case "h", "left":
		m.moveStart = m.moveStart.AddDate(0, 0, -1)
	case "l", "right":
		m.moveStart = m.moveStart.AddDate(0, 0, 1)
	case "k", "up":
		if m.moveRow > 0 {
			m.moveRow--
		}
	case "j", "down":
		if m.moveRow < len(m.proj.Rows)-1 {
			m.moveRow++
		}
	case "enter":
		rowID := m.proj.Rows[m.moveRow].ID
		err := m.eng.MoveTask(m.moveTaskID, rowID, m.moveStart, engine.MovePolicyReject)
		m.mode = ModeNormal
		if err != nil {
			return m.setStatus(fmt.Sprintf("Move rejected: %v", err))
		}
		m.refresh()
		return m.setStatus(fmt.Sprintf("Moved task #%d", m.moveTaskID))
	}
	return m, nil
}

// handleResizeKeys adjusts the staged end date of the resizing task.
func (m *Model) handleResizeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		return m, nil
	case "h", "left":
		m.resizeEnd = m.resizeEnd.AddDate(0, 0, -1)
	case "l", "right":
		m.resizeEnd = m.resizeEnd.AddDate(0, 0, 1)
	case "enter":
		err := m.eng.ResizeTask(m.moveTaskID, m.resizeEnd, engine.MovePolicyReject)
		m.mode = ModeNormal
		if err != nil {
			return m.setStatus(fmt.Sprintf("Resize rejected: %v", err))
		}
		m.refresh()
		return m.setStatus(fmt.Sprintf("Resized task #%d", m.moveTaskID))
	}
	return m, nil
}

// handleRenameKeys edits a row label.
func (m *Model) handleRenameKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.renameInput.Blur()
		return m, nil
	case "enter":
		label := m.renameInput.Value()
		m.mode = ModeNormal
		m.renameInput.Blur()
		if err := m.eng.RenameRow(m.renameRowID, label); err != nil {
			return m.setStatus(fmt.Sprintf("Rename failed: %v", err))
		}
		m.refresh()
		return m.setStatus(fmt.Sprintf("Renamed row %s", m.renameRowID))
	}

	var cmd tea.Cmd
	m.renameInput, cmd = m.renameInput.Update(msg)
	return m, cmd
}

// handleConfirmKeys resolves a pending yes/no question.
func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.confirm
	m.mode = ModeNormal
	m.confirm = confirmNone
	m.confirmMsg = ""

	switch msg.String() {
	case "y", "Y", "enter":
	default:
		return m, nil
	}

	switch action {
	case confirmDeleteTask:
		if err := m.eng.DeleteTask(m.confirmTaskID); err != nil {
			return m.setStatus(fmt.Sprintf("Delete failed: %v", err))
		}
		m.refresh()
		return m.setStatus(fmt.Sprintf("Deleted task #%d", m.confirmTaskID))
	case confirmDiscard:
		if err := m.eng.Discard(); err != nil {
			return m.setStatus(fmt.Sprintf("Discard failed: %v", err))
		}
		m.refresh()
		return m.setStatus("Discarded unsaved changes")
	case confirmQuit:
		return m, tea.Quit
	}
	return m, nil
}

// askConfirm switches to confirm mode with a question.
func (m *Model) askConfirm(action confirmAction, msg string) *Model {
	m.mode = ModeConfirm
	m.confirm = action
	m.confirmMsg = msg
	return m
}

// cycleStatus advances the task to the next status valid for its category.
func (m *Model) cycleStatus(t *engine.TaskView) (tea.Model, tea.Cmd) {
	statuses := schedule.StatusesFor(t.Category)
	if len(statuses) < 2 {
		return m.setStatus("Status cannot change")
	}
	next := statuses[0]
	for i, s := range statuses {
		if s == t.Status {
			next = statuses[(i+1)%len(statuses)]
			break
		}
	}
	if err := m.eng.EditTask(t.ID, engine.TaskEdit{Status: &next}); err != nil {
		return m.setStatus(fmt.Sprintf("Status change failed: %v", err))
	}
	m.refresh()
	return m.setStatus(fmt.Sprintf("Task #%d: %s", t.ID, next))
}

// yankTask copies a one-line task summary to the clipboard.
func (m *Model) yankTask(t *engine.TaskView) (tea.Model, tea.Cmd) {
	line := fmt.Sprintf("#%d %s [%s] %s %s .. %s",
		t.ID, t.Description, t.Category, t.RowLabel,
		t.Start.Format("2006-01-02"), t.End.Format("2006-01-02"))
	if err := clipboard.WriteAll(line); err != nil {
		return m.setStatus(fmt.Sprintf("Copy failed: %v", err))
	}
	return m.setStatus(fmt.Sprintf("Copied task #%d", t.ID))
}

// undo reverts the most recent staged operation.
func (m *Model) undo() (tea.Model, tea.Cmd) {
	hint := m.eng.UndoHint()
	ok, err := m.eng.Undo()
	if err != nil {
		return m.setStatus(fmt.Sprintf("Undo failed: %v", err))
	}
	if !ok {
		return m.setStatus("Nothing to undo")
	}
	m.refresh()
	return m.setStatus("Undid " + hint)
}

// redo reapplies the most recently undone operation.
func (m *Model) redo() (tea.Model, tea.Cmd) {
	hint := m.eng.RedoHint()
	ok, err := m.eng.Redo()
	if err != nil {
		return m.setStatus(fmt.Sprintf("Redo failed: %v", err))
	}
	if !ok {
		return m.setStatus("Nothing to redo")
	}
	m.refresh()
	return m.setStatus("Redid " + hint)
}

// save starts a background save of the staged state.
func (m *Model) save() (tea.Model, tea.Cmd) {
	if !m.proj.Dirty {
		return m.setStatus("No changes to save")
	}
	ticket, err := m.eng.BeginCommit()
	if err != nil {
		return m.setStatus(fmt.Sprintf("Save failed: %v", err))
	}
	m.saving = true
	return m, saveCmd(m.eng.Repository(), ticket)
}

// setStatus shows a transient message on the status line.
func (m *Model) setStatus(msg string) (tea.Model, tea.Cmd) {
	m.statusMsg = msg
	m.statusTime = time.Now().Add(4 * time.Second)
	return m, clearStatusAfter(4 * time.Second)
}

// daysInto returns how many days t lies after start, clamped at zero.
func daysInto(start, t time.Time) int {
	d := int(t.Sub(start).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}
