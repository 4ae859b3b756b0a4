package engine

import (
	"time"

	"github.com/dmaraujo/cronograma/internal/schedule"
)

// AddHoliday registers a non-working range. Holidays are advisory: they
// shade the timeline and feed the upcoming-holiday warning, but never
// block placement.
func (e *Engine) AddHoliday(name string, start, end time.Time) (*schedule.Holiday, error) {
	if err := e.checkMutable(); err != nil {
		return nil, err
	}
	h, err := schedule.NewHoliday(name, start, end)
	if err != nil {
		return nil, err
	}
	h.ID = e.nextHolidayID
	e.nextHolidayID++
	if err := e.run(&addHolidayCmd{holiday: h}); err != nil {
		return nil, err
	}
	return h.Clone(), nil
}

// DeleteHoliday removes a registered holiday.
func (e *Engine) DeleteHoliday(id int64) error {
	if err := e.checkMutable(); err != nil {
		return err
	}
	for i, h := range e.overlay.Holidays {
		if h.ID == id {
			return e.run(&deleteHolidayCmd{holiday: h.Clone(), index: i})
		}
	}
	return schedule.ErrHolidayNotFound
}
