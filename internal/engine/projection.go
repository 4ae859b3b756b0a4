package engine

import (
	"time"

	"github.com/dmaraujo/cronograma/internal/schedule"
)

// Projection is the read-only view handed to rendering collaborators:
// tasks with resolved row labels, plus rows, holidays, and session flags.
type Projection struct {
	Rows     []RowView
	Tasks    []TaskView
	Holidays []HolidayView
	Dirty    bool
	CanUndo  bool
	CanRedo  bool
}

// RowView is a row as rendered.
type RowView struct {
	ID       string
	Label    string
	Category schedule.RowCategory
	BuiltIn  bool
}

// TaskView is a task as rendered, with its row label resolved.
type TaskView struct {
	ID           int64
	Description  string
	Category     schedule.Category
	Status       schedule.Status
	RowID        string
	RowLabel     string
	Start        time.Time
	End          time.Time
	DependsOn    []int64
	Retired      bool
	Protocol     string
	Manufacturer string
	Observations string
}

// HolidayView is a holiday range as rendered.
type HolidayView struct {
	ID    int64
	Name  string
	Start time.Time
	End   time.Time
}

// Projection builds the current read-only view of the overlay.
func (e *Engine) Projection() Projection {
	p := Projection{
		Dirty:   e.dirty,
		CanUndo: e.hist.canUndo(),
		CanRedo: e.hist.canRedo(),
	}
	if e.overlay == nil {
		return p
	}
	labels := make(map[string]string, len(e.overlay.Rows))
	for _, r := range e.overlay.Rows {
		labels[r.ID] = r.Label
		p.Rows = append(p.Rows, RowView{ID: r.ID, Label: r.Label, Category: r.Category, BuiltIn: r.BuiltIn})
	}
	for _, t := range e.overlay.Tasks {
		p.Tasks = append(p.Tasks, TaskView{
			ID:           t.ID,
			Description:  t.Description,
			Category:     t.Category,
			Status:       t.Status,
			RowID:        t.RowID,
			RowLabel:     labels[t.RowID],
			Start:        t.Start,
			End:          t.End,
			DependsOn:    append([]int64(nil), t.DependsOn...),
			Retired:      t.Retired(),
			Protocol:     t.Protocol,
			Manufacturer: t.Manufacturer,
			Observations: t.Observations,
		})
	}
	for _, h := range e.overlay.Holidays {
		p.Holidays = append(p.Holidays, HolidayView{ID: h.ID, Name: h.Name, Start: h.Start, End: h.End})
	}
	return p
}
