package ui

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func (a *App) depCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dep",
		Short: "Manage task dependencies",
		Long: `Link tasks so one may only start after another ends. A dependent task
must start at least the day after its prerequisite's end date.`,
	}

	cmd.AddCommand(a.depAddCmd())
	cmd.AddCommand(a.depRmCmd())

	return cmd
}

func (a *App) depAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [task-id] [prerequisite-id]",
		Short: "Make a task depend on another",
		Long: `Make the first task depend on the second. Rejected if it would form a
cycle or if the dependent already starts before the prerequisite ends.

Example:
  cronograma dep add 13 12`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureEngine(); err != nil {
				return err
			}

			taskID, prereqID, err := parseIDPair(args)
			if err != nil {
				return err
			}

			if err := a.eng.AddDependency(prereqID, taskID); err != nil {
				return err
			}

			return a.commit(fmt.Sprintf("Task #%d now depends on #%d", taskID, prereqID))
		},
	}
}

func (a *App) depRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm [task-id] [prerequisite-id]",
		Short: "Remove a dependency between two tasks",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureEngine(); err != nil {
				return err
			}

			taskID, prereqID, err := parseIDPair(args)
			if err != nil {
				return err
			}

			if err := a.eng.RemoveDependency(prereqID, taskID); err != nil {
				return err
			}

			return a.commit(fmt.Sprintf("Task #%d no longer depends on #%d", taskID, prereqID))
		},
	}
}

func parseIDPair(args []string) (int64, int64, error) {
	first, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid task id %q", args[0])
	}
	second, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid task id %q", args[1])
	}
	return first, second, nil
}
