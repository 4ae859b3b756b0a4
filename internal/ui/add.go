package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmaraujo/cronograma/internal/engine"
	"github.com/dmaraujo/cronograma/internal/schedule"
)

func (a *App) addCmd() *cobra.Command {
	var (
		row          string
		start        string
		end          string
		category     string
		protocol     string
		manufacturer string
		observations string
		after        string
	)

	cmd := &cobra.Command{
		Use:   "add [description]",
		Short: "Add a new task to the schedule",
		Long: `Add a test, calibration or absence block to a row.

Example:
  cronograma add "Ensaio frigorífico XPTO" --row=1 --start=2026-02-02 --end=2026-02-06
  cronograma add "Calibração câmara 3" --row=CAL --category=calibration --start=2026-02-09 --end=2026-02-09
  cronograma add "Relatório XPTO" --row=1 --start=2026-02-09 --end=2026-02-10 --after=12`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureEngine(); err != nil {
				return err
			}

			cat, err := schedule.ParseCategory(category)
			if err != nil {
				return err
			}
			startDate, err := parseDateFlag(start)
			if err != nil {
				return fmt.Errorf("invalid start date: %w", err)
			}
			endDate, err := parseDateFlag(end)
			if err != nil {
				return fmt.Errorf("invalid end date: %w", err)
			}
			deps, err := parseIDList(after)
			if err != nil {
				return err
			}

			t, err := a.eng.AddTask(engine.TaskDraft{
				Description:  args[0],
				Category:     cat,
				RowID:        row,
				Start:        startDate,
				End:          endDate,
				Protocol:     protocol,
				Manufacturer: manufacturer,
				Observations: observations,
				DependsOn:    deps,
			})
			if err != nil {
				return err
			}

			return a.commit(fmt.Sprintf("Created task #%d: %s [%s] row %s %s .. %s",
				t.ID, t.Description, t.Category, t.RowID,
				t.Start.Format("2006-01-02"), t.End.Format("2006-01-02")))
		},
	}

	cmd.Flags().StringVar(&row, "row", "", "Row id hosting the task (required)")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD or relative like \"monday\", required)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD or relative, inclusive, required)")
	cmd.Flags().StringVar(&category, "category", "efficiency", "Category: efficiency, safety, calibration or absence")
	cmd.Flags().StringVar(&protocol, "protocol", "", "Protocol reference")
	cmd.Flags().StringVar(&manufacturer, "manufacturer", "", "Manufacturer")
	cmd.Flags().StringVar(&observations, "obs", "", "Observations")
	cmd.Flags().StringVar(&after, "after", "", "Comma-separated prerequisite task ids")

	_ = cmd.MarkFlagRequired("row")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

// parseIDList parses a comma-separated list of task ids.
func parseIDList(s string) ([]int64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid task id %q", p)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
