package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		days := m.width - rowLabelWidth - 2
		if days < 7 {
			days = 7
		}
		m.windowDays = days
		if m.cursor.Day >= m.windowDays {
			m.cursor.Day = m.windowDays - 1
		}
		return m, nil

	case SaveDoneMsg:
		m.saving = false
		if err := m.eng.FinishCommit(msg.Ticket, msg.Err); err != nil {
			m.refresh()
			return m.setStatus(fmt.Sprintf("Save failed: %v", err))
		}
		m.refresh()
		return m.setStatus("Saved")

	case ClearStatusMsg:
		if time.Now().After(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil
	}

	return m, nil
}
