// Package tui provides the interactive timeline interface.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dmaraujo/cronograma/internal/config"
	"github.com/dmaraujo/cronograma/internal/dateutil"
	"github.com/dmaraujo/cronograma/internal/engine"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal  Mode = iota
	ModeMove         // Dragging a task to a new row/start
	ModeResize       // Adjusting a task's end date
	ModeRename       // Editing a row label
	ModeConfirm      // Waiting for a yes/no answer
)

// confirmAction identifies what a pending confirmation applies to.
type confirmAction int

const (
	confirmNone confirmAction = iota
	confirmDeleteTask
	confirmDiscard
	confirmQuit
)

// cursorPos addresses one cell of the timeline grid.
type cursorPos struct {
	Row int // Index into the projection's rows
	Day int // Day offset from the window start
}

// Model is the main TUI model.
type Model struct {
	eng    *engine.Engine
	config *config.Config
	styles *Styles

	proj engine.Projection

	// Viewport
	windowStart time.Time // First day shown
	windowDays  int
	width       int
	height      int

	cursor cursorPos
	mode   Mode

	// Move/resize session. The staged placement is kept here until the
	// operation is applied or abandoned; nothing touches the engine
	// before confirmation.
	moveTaskID int64
	moveRow    int
	moveStart  time.Time
	resizeEnd  time.Time

	// Rename state
	renameRowID string
	renameInput textinput.Model

	// Confirmation state
	confirm       confirmAction
	confirmTaskID int64
	confirmMsg    string

	saving bool

	statusMsg  string
	statusTime time.Time

	err error
}

// New creates a new TUI model over a loaded engine.
func New(eng *engine.Engine, cfg *config.Config) *Model {
	ri := textinput.New()
	ri.Placeholder = "Row label"
	ri.CharLimit = 64
	ri.Width = 32

	m := &Model{
		eng:         eng,
		config:      cfg,
		styles:      NewStyles(cfg.UI.Theme),
		proj:        eng.Projection(),
		windowStart: startOfWeek(time.Now()),
		windowDays:  28,
		renameInput: ri,
	}
	m.cursor.Day = daysInto(m.windowStart, time.Now())

	return m
}

// startOfWeek returns the Monday of the week containing t.
func startOfWeek(t time.Time) time.Time {
	t = dateutil.TruncateToDay(t)
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

// refresh re-reads the projection after a mutation, undo or redo.
func (m *Model) refresh() {
	m.proj = m.eng.Projection()
	if m.cursor.Row >= len(m.proj.Rows) {
		m.cursor.Row = len(m.proj.Rows) - 1
	}
	if m.cursor.Row < 0 {
		m.cursor.Row = 0
	}
}

// cursorDate returns the date under the cursor.
func (m *Model) cursorDate() time.Time {
	return m.windowStart.AddDate(0, 0, m.cursor.Day)
}

// taskAtCursor returns the task covering the cursor cell, if any.
func (m *Model) taskAtCursor() *engine.TaskView {
	if m.cursor.Row >= len(m.proj.Rows) {
		return nil
	}
	rowID := m.proj.Rows[m.cursor.Row].ID
	date := m.cursorDate()
	for i := range m.proj.Tasks {
		t := &m.proj.Tasks[i]
		if t.RowID != rowID {
			continue
		}
		if !date.Before(t.Start) && !date.After(t.End) {
			return t
		}
	}
	return nil
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Run starts the TUI over a loaded engine.
func Run(eng *engine.Engine, cfg *config.Config) error {
	p := tea.NewProgram(New(eng, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
