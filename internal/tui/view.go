package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/dmaraujo/cronograma/internal/calendar"
	"github.com/dmaraujo/cronograma/internal/engine"
)

const rowLabelWidth = 20

// View renders the timeline.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.viewTitle())
	b.WriteString("\n")
	b.WriteString(m.viewHeader())
	b.WriteString("\n")

	cal := m.eng.Calendar()
	for ri := range m.proj.Rows {
		b.WriteString(m.viewRow(ri, cal))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.viewFooter(cal))

	return b.String()
}

func (m *Model) viewTitle() string {
	title := m.styles.TitleStyle.Render("CRONOGRAMA")
	period := m.styles.HeaderStyle.Render(
		fmt.Sprintf("  %s .. %s",
			m.windowStart.Format("2006-01-02"),
			m.windowStart.AddDate(0, 0, m.windowDays-1).Format("2006-01-02")))

	marker := ""
	switch {
	case m.saving:
		marker = m.styles.HeaderStyle.Render("  saving...")
	case m.proj.Dirty:
		marker = m.styles.DirtyStyle.Render("  ● unsaved")
	}

	return title + period + marker
}

// viewHeader prints month names and day-of-month digits over the grid.
func (m *Model) viewHeader() string {
	months := make([]byte, 0, m.windowDays)
	for d := 0; d < m.windowDays; {
		day := m.windowStart.AddDate(0, 0, d)
		if (day.Day() == 1 || d == 0) && d+3 <= m.windowDays {
			months = append(months, day.Format("Jan")...)
			d += 3
			continue
		}
		months = append(months, ' ')
		d++
	}

	digits := make([]byte, 0, m.windowDays)
	for d := 0; d < m.windowDays; d++ {
		day := m.windowStart.AddDate(0, 0, d)
		digits = append(digits, byte('0'+day.Day()%10))
	}

	pad := strings.Repeat(" ", rowLabelWidth)
	return m.styles.HeaderStyle.Render(pad+string(months)) + "\n" +
		m.styles.HeaderStyle.Render(pad+string(digits))
}

// viewRow renders one timeline row: label plus one cell per day.
func (m *Model) viewRow(ri int, cal *calendar.Calendar) string {
	r := m.proj.Rows[ri]

	label := ansi.Truncate(fmt.Sprintf("%-3s %s", r.ID, r.Label), rowLabelWidth-1, "...")
	pad := rowLabelWidth - ansi.StringWidth(label)
	out := m.styles.RowLabelStyle.Render(label + strings.Repeat(" ", pad))

	for d := 0; d < m.windowDays; d++ {
		day := m.windowStart.AddDate(0, 0, d)
		out += m.viewCell(ri, r.ID, day, d, cal)
	}

	return out
}

// viewCell renders a single day cell, layering cursor and move preview
// over the task bars and calendar shading.
func (m *Model) viewCell(ri int, rowID string, day time.Time, d int, cal *calendar.Calendar) string {
	underCursor := m.mode != ModeMove && ri == m.cursor.Row && d == m.cursor.Day

	if m.mode == ModeMove && m.previewCovers(ri, day) {
		return m.styles.PreviewStyle.Render("▓")
	}

	if t := m.taskCovering(rowID, day); t != nil {
		cell := "█"
		style := m.styles.TaskStyle(t.Category)
		if t.Retired {
			style = m.styles.RetiredStyle
			cell = "▒"
		}
		if underCursor {
			style = m.styles.CursorStyle
		}
		return style.Render(cell)
	}

	if underCursor {
		return m.styles.CursorStyle.Render(" ")
	}
	if cal.Holiday(day) != nil || calendar.IsWeekend(day) {
		return m.styles.ShadedStyle.Render("░")
	}
	return m.styles.EmptyCellStyle.Render("·")
}

// previewCovers reports whether the staged move placement covers a cell.
func (m *Model) previewCovers(ri int, day time.Time) bool {
	if ri != m.moveRow {
		return false
	}
	var moving *engine.TaskView
	for i := range m.proj.Tasks {
		if m.proj.Tasks[i].ID == m.moveTaskID {
			moving = &m.proj.Tasks[i]
			break
		}
	}
	if moving == nil {
		return false
	}
	duration := int(moving.End.Sub(moving.Start).Hours() / 24)
	end := m.moveStart.AddDate(0, 0, duration)
	return !day.Before(m.moveStart) && !day.After(end)
}

// taskCovering returns the task on rowID covering day, if any.
func (m *Model) taskCovering(rowID string, day time.Time) *engine.TaskView {
	for i := range m.proj.Tasks {
		t := &m.proj.Tasks[i]
		if t.RowID != rowID {
			continue
		}
		if !day.Before(t.Start) && !day.After(t.End) {
			return t
		}
	}
	return nil
}

// viewFooter renders the selection detail, pending prompts, upcoming
// closures and the key help line.
func (m *Model) viewFooter(cal *calendar.Calendar) string {
	var lines []string

	switch m.mode {
	case ModeRename:
		lines = append(lines, "Rename row "+m.renameRowID+": "+m.renameInput.View())
	case ModeConfirm:
		lines = append(lines, m.styles.WarningStyle.Render(m.confirmMsg))
	case ModeMove:
		lines = append(lines, m.styles.StatusStyle.Render(
			fmt.Sprintf("Moving task #%d to row %s starting %s  (enter: apply, esc: cancel)",
				m.moveTaskID, m.proj.Rows[m.moveRow].ID, m.moveStart.Format("2006-01-02"))))
	case ModeResize:
		lines = append(lines, m.styles.StatusStyle.Render(
			fmt.Sprintf("Resizing task #%d to end %s  (enter: apply, esc: cancel)",
				m.moveTaskID, m.resizeEnd.Format("2006-01-02"))))
	default:
		if t := m.taskAtCursor(); t != nil {
			detail := fmt.Sprintf("#%d %s [%s/%s] %s .. %s",
				t.ID, t.Description, t.Category, t.Status,
				t.Start.Format("2006-01-02"), t.End.Format("2006-01-02"))
			if len(t.DependsOn) > 0 {
				detail += fmt.Sprintf("  after %v", t.DependsOn)
			}
			lines = append(lines, m.styles.StatusStyle.Render(detail))
		}
	}

	if upcoming := cal.Upcoming(time.Now(), m.config.Schedule.HolidayWarningDays); len(upcoming) > 0 {
		first := upcoming[0]
		lines = append(lines, m.styles.WarningStyle.Render(
			fmt.Sprintf("Upcoming closure: %s (%s)", first.Name, first.Start.Format("2006-01-02"))))
	}

	if m.statusMsg != "" {
		lines = append(lines, m.styles.StatusStyle.Render(m.statusMsg))
	}

	help := "hjkl: navigate  m: move  r: resize  t: status  R: rename row  x: delete  " +
		"u: undo  ctrl+r: redo  s: save  d: discard  y: copy  q: quit"
	lines = append(lines, m.styles.FooterStyle.Render(help))

	return strings.Join(lines, "\n")
}
