// Package calendar classifies dates as working or non-working days.
// Weekends are computed; holidays come from the schedule. Non-working days
// are advisory for rendering and warnings only, they never block placement.
package calendar

import (
	"sort"
	"time"

	"github.com/dmaraujo/cronograma/internal/dateutil"
	"github.com/dmaraujo/cronograma/internal/schedule"
)

// Calendar answers working-day queries against a set of registered
// holidays. It holds no mutable state; build a new one when the holiday
// list changes.
type Calendar struct {
	holidays []*schedule.Holiday
}

// New creates a Calendar over the given holidays.
func New(holidays []*schedule.Holiday) *Calendar {
	return &Calendar{holidays: holidays}
}

// IsWeekend returns true for Saturday and Sunday.
func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsWorkingDay returns true if the date is neither a weekend nor covered
// by a registered holiday range.
func (c *Calendar) IsWorkingDay(date time.Time) bool {
	if IsWeekend(date) {
		return false
	}
	return c.Holiday(date) == nil
}

// Holiday returns the holiday covering the date, or nil.
func (c *Calendar) Holiday(date time.Time) *schedule.Holiday {
	for _, h := range c.holidays {
		if h.Covers(date) {
			return h
		}
	}
	return nil
}

// AddWorkingDays returns the date n working days after the given date,
// skipping weekends and holidays. n must be non-negative; n == 0 returns
// the date unchanged.
func (c *Calendar) AddWorkingDays(date time.Time, n int) time.Time {
	d := dateutil.TruncateToDay(date)
	for n > 0 {
		d = d.AddDate(0, 0, 1)
		if c.IsWorkingDay(d) {
			n--
		}
	}
	return d
}

// ShiftCalendarDays returns the date n calendar days away. Moves use
// calendar-day shifting so a dragged task keeps its span even across
// weekends and holidays.
func ShiftCalendarDays(date time.Time, n int) time.Time {
	return dateutil.TruncateToDay(date).AddDate(0, 0, n)
}

// WorkingDaysIn counts the working days in the inclusive range.
func (c *Calendar) WorkingDaysIn(start, end time.Time) int {
	start = dateutil.TruncateToDay(start)
	end = dateutil.TruncateToDay(end)
	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if c.IsWorkingDay(d) {
			count++
		}
	}
	return count
}

// Upcoming returns the holidays starting within the next `days` days of
// `from` (inclusive), soonest first. Used for the upcoming-holiday warning
// surfaces.
func (c *Calendar) Upcoming(from time.Time, days int) []*schedule.Holiday {
	start := dateutil.TruncateToDay(from)
	limit := start.AddDate(0, 0, days)
	var out []*schedule.Holiday
	for _, h := range c.holidays {
		if !h.Start.Before(start) && !h.Start.After(limit) {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}
