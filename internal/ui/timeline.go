package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmaraujo/cronograma/internal/calendar"
	"github.com/dmaraujo/cronograma/internal/engine"
)

func (a *App) timelineCmd() *cobra.Command {
	var (
		start string
		days  int
	)

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Print a text Gantt view of the schedule",
		Long: `Print the schedule as a Gantt chart, one line per row and one column
per calendar day. Weekends and holidays are shaded.`,
		Example: `  cronograma timeline
  cronograma timeline --start=2026-02-01 --days=28`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureEngine(); err != nil {
				return err
			}

			from, err := parseDateFlag(start)
			if err != nil {
				return fmt.Errorf("invalid start date: %w", err)
			}

			window := days
			if window <= 0 {
				window = termWidth() - labelWidth - 2
			}
			if window < 7 {
				window = 7
			}

			printTimeline(a.eng.Projection(), a.eng.Calendar(), from, window)
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "First day shown (YYYY-MM-DD or relative, default: today)")
	cmd.Flags().IntVar(&days, "days", 0, "Number of days shown (default: fit terminal)")

	return cmd
}

const labelWidth = 22

// printTimeline renders one line per row over a window of calendar days.
func printTimeline(p engine.Projection, cal *calendar.Calendar, from time.Time, days int) {
	printTimelineHeader(from, days)

	for _, r := range p.Rows {
		label := fmt.Sprintf("%-3s %s", r.ID, r.Label)
		if len(label) > labelWidth-2 {
			label = label[:labelWidth-5] + "..."
		}
		fmt.Printf("%-*s", labelWidth, label)

		for d := 0; d < days; d++ {
			day := from.AddDate(0, 0, d)
			cell := timelineCell(p.Tasks, r.ID, day)
			if cell != "" {
				fmt.Print(cell)
				continue
			}
			if cal.Holiday(day) != nil || calendar.IsWeekend(day) {
				fmt.Print(formatMuted("░"))
			} else {
				fmt.Print("·")
			}
		}
		fmt.Println()
	}

	printTimelineLegend(p, from, days)
}

// timelineCell returns the bar cell for a row on a given day, or "" when
// no task covers it.
func timelineCell(tasks []engine.TaskView, rowID string, day time.Time) string {
	for _, t := range tasks {
		if t.RowID != rowID {
			continue
		}
		if day.Before(t.Start) || day.After(t.End) {
			continue
		}
		if t.Retired {
			return formatMuted("▒")
		}
		return categoryBar(t.Category, 1)
	}
	return ""
}

// printTimelineHeader prints month markers and day-of-month digits.
func printTimelineHeader(from time.Time, days int) {
	months := strings.Repeat(" ", labelWidth)
	for d := 0; d < days; d++ {
		day := from.AddDate(0, 0, d)
		if day.Day() == 1 || d == 0 {
			mon := day.Format("Jan")
			if d+len(mon) <= days {
				months += mon
				d += len(mon) - 1
				continue
			}
		}
		months += " "
	}
	fmt.Println(formatHeader(months))

	digits := strings.Repeat(" ", labelWidth)
	for d := 0; d < days; d++ {
		day := from.AddDate(0, 0, d)
		digits += fmt.Sprintf("%d", day.Day()%10)
	}
	fmt.Println(formatMuted(digits))
}

// printTimelineLegend lists the tasks visible in the window.
func printTimelineLegend(p engine.Projection, from time.Time, days int) {
	to := from.AddDate(0, 0, days-1)
	var visible []engine.TaskView
	for _, t := range p.Tasks {
		if t.End.Before(from) || t.Start.After(to) {
			continue
		}
		visible = append(visible, t)
	}
	if len(visible) == 0 {
		return
	}

	fmt.Println()
	for _, t := range visible {
		fmt.Printf("  %s #%-3d %s  %s  %s\n",
			statusSymbol(t.Status), t.ID, categoryTag(t.Category),
			formatMuted(fmt.Sprintf("%s .. %s", t.Start.Format("01-02"), t.End.Format("01-02"))),
			t.Description)
	}
}
