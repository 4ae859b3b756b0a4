package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dmaraujo/cronograma/internal/engine"
	"github.com/dmaraujo/cronograma/internal/schedule"
)

// SaveDoneMsg is sent when a background save finishes.
type SaveDoneMsg struct {
	Ticket *engine.CommitTicket
	Err    error
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// saveCmd persists a commit ticket off the update loop. The engine stays
// usable while the save runs; FinishCommit resolves it when the message
// arrives.
func saveCmd(repo schedule.Repository, ticket *engine.CommitTicket) tea.Cmd {
	return func() tea.Msg {
		err := repo.SaveSnapshot(context.Background(), ticket.Snapshot())
		return SaveDoneMsg{Ticket: ticket, Err: err}
	}
}

// clearStatusAfter schedules the status line to be cleared.
func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
