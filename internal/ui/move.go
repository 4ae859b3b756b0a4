package ui

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func (a *App) moveCmd() *cobra.Command {
	var (
		row     string
		start   string
		cascade bool
	)

	cmd := &cobra.Command{
		Use:   "move [task-id]",
		Short: "Move a task to another row or start date",
		Long: `Move a task, keeping its duration in calendar days.

A move that would start a task before one of its prerequisites ends is
rejected. With --cascade the task's dependents are shifted forward by
the same number of days instead.

Example:
  cronograma move 12 --start=2026-02-09
  cronograma move 12 --start=next-monday
  cronograma move 12 --row=2 --start=2026-02-09 --cascade`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureEngine(); err != nil {
				return err
			}

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid task id: %w", err)
			}
			newStart, err := parseDateFlag(start)
			if err != nil {
				return fmt.Errorf("invalid start date: %w", err)
			}

			rowID := row
			if rowID == "" {
				t := a.eng.Overlay().Task(id)
				if t != nil {
					rowID = t.RowID
				}
			}

			if err := a.eng.MoveTask(id, rowID, newStart, a.movePolicy(cascade)); err != nil {
				return err
			}

			return a.commit(fmt.Sprintf("Moved task #%d to row %s starting %s",
				id, rowID, newStart.Format("2006-01-02")))
		},
	}

	cmd.Flags().StringVar(&row, "row", "", "Destination row id (default: current row)")
	cmd.Flags().StringVar(&start, "start", "", "New start date (YYYY-MM-DD or relative like \"monday\", required)")
	cmd.Flags().BoolVar(&cascade, "cascade", false, "Shift dependent tasks instead of rejecting the move")

	_ = cmd.MarkFlagRequired("start")

	return cmd
}
