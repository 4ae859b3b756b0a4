package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dmaraujo/cronograma/internal/engine"
	"github.com/dmaraujo/cronograma/internal/schedule"
)

// statusSymbol returns the status indicator for a task.
func statusSymbol(s schedule.Status) string {
	switch s {
	case schedule.StatusPending, schedule.StatusScheduled:
		return "○"
	case schedule.StatusInProgress:
		return "◐"
	case schedule.StatusReportIssued:
		return "◉"
	case schedule.StatusCompleted, schedule.StatusDone:
		return "●"
	default:
		return "?"
	}
}

// categoryTag returns the colored short tag for a task category.
func categoryTag(c schedule.Category) string {
	switch c {
	case schedule.CategoryEfficiency:
		return colorEfficiency.Sprint("[E]")
	case schedule.CategorySafety:
		return colorSafety.Sprint("[S]")
	case schedule.CategoryCalibration:
		return colorCalibration.Sprint("[C]")
	case schedule.CategoryAbsence:
		return colorAbsence.Sprint("[A]")
	default:
		return "[?]"
	}
}

// categoryBar draws a bar of the category's color.
func categoryBar(c schedule.Category, width int) string {
	bar := strings.Repeat("█", width)
	switch c {
	case schedule.CategoryEfficiency:
		return colorEfficiency.Sprint(bar)
	case schedule.CategorySafety:
		return colorSafety.Sprint(bar)
	case schedule.CategoryCalibration:
		return colorCalibration.Sprint(bar)
	case schedule.CategoryAbsence:
		return colorAbsence.Sprint(bar)
	default:
		return bar
	}
}

// printTaskRow prints a single task line with consistent formatting.
func printTaskRow(t engine.TaskView, maxDescWidth int) {
	desc := t.Description
	if len(desc) > maxDescWidth {
		desc = desc[:maxDescWidth-3] + "..."
	}

	deps := ""
	if len(t.DependsOn) > 0 {
		ids := make([]string, len(t.DependsOn))
		for i, d := range t.DependsOn {
			ids[i] = "#" + strconv.FormatInt(d, 10)
		}
		deps = formatMuted("  after " + strings.Join(ids, ","))
	}

	fmt.Printf("  %s #%-3d %s  %s .. %s  %s%s\n",
		statusSymbol(t.Status),
		t.ID,
		categoryTag(t.Category),
		t.Start.Format("2006-01-02"),
		t.End.Format("2006-01-02"),
		desc,
		deps,
	)
}

// formatDays formats a day count for display.
func formatDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
