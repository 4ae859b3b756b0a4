package ui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmaraujo/cronograma/internal/dateutil"
)

func (a *App) holidayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holiday",
		Short: "Manage lab closure periods",
		Long: `Manage holiday and closure periods. Holidays shade the timeline and
feed the upcoming-closure warning; they never block placing a task.`,
	}

	cmd.AddCommand(a.holidayAddCmd())
	cmd.AddCommand(a.holidayRmCmd())
	cmd.AddCommand(a.holidayListCmd())

	return cmd
}

func (a *App) holidayAddCmd() *cobra.Command {
	var (
		start string
		end   string
	)

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a holiday period",
		Long: `Add a named closure period. With no --end the holiday is a single day.

Example:
  cronograma holiday add "Natal" --start=2026-12-24 --end=2026-12-26`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureEngine(); err != nil {
				return err
			}

			r, err := dateutil.NewDateRange(start, end)
			if err != nil {
				return fmt.Errorf("invalid holiday period: %w", err)
			}

			h, err := a.eng.AddHoliday(args[0], r.Start, r.End)
			if err != nil {
				return err
			}

			return a.commit(fmt.Sprintf("Added holiday #%d: %s %s .. %s",
				h.ID, h.Name, h.Start.Format("2006-01-02"), h.End.Format("2006-01-02")))
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "First closed day (YYYY-MM-DD or relative, required)")
	cmd.Flags().StringVar(&end, "end", "", "Last closed day (YYYY-MM-DD or relative, default: start)")

	_ = cmd.MarkFlagRequired("start")

	return cmd
}

func (a *App) holidayRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm [holiday-id]",
		Short: "Remove a holiday period",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureEngine(); err != nil {
				return err
			}

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid holiday id: %w", err)
			}

			if err := a.eng.DeleteHoliday(id); err != nil {
				return err
			}

			return a.commit(fmt.Sprintf("Removed holiday #%d", id))
		},
	}
}

func (a *App) holidayListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List holiday periods",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureEngine(); err != nil {
				return err
			}

			p := a.eng.Projection()
			if len(p.Holidays) == 0 {
				fmt.Println("No holidays registered.")
				return nil
			}

			fmt.Println(formatHeader("HOLIDAYS"))
			today := time.Now()
			for _, h := range p.Holidays {
				line := fmt.Sprintf("  #%-3d %s .. %s  %s",
					h.ID, h.Start.Format("2006-01-02"), h.End.Format("2006-01-02"), h.Name)
				if h.End.Before(today.AddDate(0, 0, -1)) {
					line = formatMuted(line)
				}
				fmt.Println(line)
			}

			upcoming := a.eng.Calendar().Upcoming(today, a.config.Schedule.HolidayWarningDays)
			if len(upcoming) > 0 {
				fmt.Println()
				fmt.Println(formatWarn(fmt.Sprintf("%d closure(s) within the next %s",
					len(upcoming), formatDays(a.config.Schedule.HolidayWarningDays))))
			}

			return nil
		},
	}
}
