package ui

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func (a *App) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm [task-id]",
		Short: "Remove a task from the schedule",
		Long: `Remove a task. Tasks that depended on it lose the dependency but are
not moved or deleted.

Example:
  cronograma rm 12`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureEngine(); err != nil {
				return err
			}

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid task id: %w", err)
			}

			if err := a.eng.DeleteTask(id); err != nil {
				return err
			}

			return a.commit(fmt.Sprintf("Removed task #%d", id))
		},
	}
}
