package ui

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func (a *App) resizeCmd() *cobra.Command {
	var (
		end     string
		cascade bool
	)

	cmd := &cobra.Command{
		Use:   "resize [task-id]",
		Short: "Change a task's end date",
		Long: `Change a task's duration by moving its end date. The start date is
held fixed. Growing a task into one of its dependents is rejected
unless --cascade shifts the dependents forward.

Example:
  cronograma resize 12 --end=2026-02-11`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureEngine(); err != nil {
				return err
			}

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid task id: %w", err)
			}
			newEnd, err := parseDateFlag(end)
			if err != nil {
				return fmt.Errorf("invalid end date: %w", err)
			}

			if err := a.eng.ResizeTask(id, newEnd, a.movePolicy(cascade)); err != nil {
				return err
			}

			return a.commit(fmt.Sprintf("Resized task #%d to end %s",
				id, newEnd.Format("2006-01-02")))
		},
	}

	cmd.Flags().StringVar(&end, "end", "", "New end date (YYYY-MM-DD or relative, inclusive, required)")
	cmd.Flags().BoolVar(&cascade, "cascade", false, "Shift dependent tasks instead of rejecting the resize")

	_ = cmd.MarkFlagRequired("end")

	return cmd
}
