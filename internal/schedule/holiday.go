package schedule

import (
	"time"

	"github.com/dmaraujo/cronograma/internal/dateutil"
)

// Holiday represents a registered non-working range: a public holiday or a
// multi-day company shutdown. Start and End are inclusive calendar dates.
type Holiday struct {
	ID    int64
	Name  string
	Start time.Time
	End   time.Time
}

// NewHoliday creates a holiday with validation. Dates are truncated to
// midnight.
func NewHoliday(name string, start, end time.Time) (*Holiday, error) {
	if name == "" {
		return nil, ErrEmptyDescription
	}
	start = dateutil.TruncateToDay(start)
	end = dateutil.TruncateToDay(end)
	if end.Before(start) {
		return nil, ErrEndBeforeStart
	}
	return &Holiday{Name: name, Start: start, End: end}, nil
}

// Covers returns true if the date falls within the holiday range.
func (h *Holiday) Covers(date time.Time) bool {
	d := dateutil.TruncateToDay(date)
	return !d.Before(h.Start) && !d.After(h.End)
}

// Clone returns a copy of the holiday.
func (h *Holiday) Clone() *Holiday {
	c := *h
	return &c
}
