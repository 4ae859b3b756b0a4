package ui

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dmaraujo/cronograma/internal/engine"
	"github.com/dmaraujo/cronograma/internal/schedule"
)

func (a *App) editCmd() *cobra.Command {
	var (
		description  string
		status       string
		protocol     string
		manufacturer string
		observations string
	)

	cmd := &cobra.Command{
		Use:   "edit [task-id]",
		Short: "Edit a task's fields or status",
		Long: `Edit a task's descriptive fields or its status. Only flags that are
set change anything. Setting a final status (report_issued, completed,
done) retires the task in place; it stays on the board.

Example:
  cronograma edit 12 --status=in_progress
  cronograma edit 12 --description="Ensaio frigorífico XPTO rev.2" --protocol=PR-113`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureEngine(); err != nil {
				return err
			}

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid task id: %w", err)
			}

			var edit engine.TaskEdit
			if cmd.Flags().Changed("description") {
				edit.Description = &description
			}
			if cmd.Flags().Changed("protocol") {
				edit.Protocol = &protocol
			}
			if cmd.Flags().Changed("manufacturer") {
				edit.Manufacturer = &manufacturer
			}
			if cmd.Flags().Changed("obs") {
				edit.Observations = &observations
			}
			if cmd.Flags().Changed("status") {
				s := schedule.Status(status)
				edit.Status = &s
			}

			if err := a.eng.EditTask(id, edit); err != nil {
				return err
			}

			return a.commit(fmt.Sprintf("Updated task #%d", id))
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&status, "status", "", "New status")
	cmd.Flags().StringVar(&protocol, "protocol", "", "Protocol reference")
	cmd.Flags().StringVar(&manufacturer, "manufacturer", "", "Manufacturer")
	cmd.Flags().StringVar(&observations, "obs", "", "Observations")

	return cmd
}
