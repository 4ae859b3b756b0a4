// Package schedule defines the core domain types for cronograma.
package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmaraujo/cronograma/internal/dateutil"
)

// Validation errors.
var (
	ErrEmptyDescription = errors.New("description cannot be empty")
	ErrInvalidCategory  = errors.New("unknown task category")
	ErrInvalidStatus    = errors.New("status is not valid for this category")
	ErrEndBeforeStart   = errors.New("end date must be on or after start date")
)

// Domain errors.
var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrHolidayNotFound     = errors.New("holiday not found")
	ErrRowNotFound         = errors.New("row not found")
	ErrRowInUse            = errors.New("row still has tasks assigned to it")
	ErrRowCategoryMismatch = errors.New("row cannot host tasks of this category")
	ErrDependencyViolation = errors.New("task would start before a prerequisite ends")
)

// DependencyViolationError reports which task blocks a proposed placement.
// It matches ErrDependencyViolation via errors.Is.
type DependencyViolationError struct {
	// TaskID is the prerequisite (or dependent, when Dependent is set)
	// whose dates conflict.
	TaskID int64
	// Needed is the earliest date the violating task could start.
	Needed time.Time
	// Dependent is set when the placement is rejected because it would
	// push TaskID, a dependent, past its own start.
	Dependent bool
}

func (e *DependencyViolationError) Error() string {
	if e.Dependent {
		return fmt.Sprintf("dependent task #%d would need to start on %s or later",
			e.TaskID, e.Needed.Format("2006-01-02"))
	}
	return fmt.Sprintf("task would start before prerequisite #%d ends (earliest start %s)",
		e.TaskID, e.Needed.Format("2006-01-02"))
}

// Is reports a match against the ErrDependencyViolation sentinel.
func (e *DependencyViolationError) Is(target error) bool {
	return target == ErrDependencyViolation
}

// Category represents the kind of scheduled activity.
type Category string

const (
	CategoryEfficiency  Category = "efficiency"  // efficiency assay on a terminal
	CategorySafety      Category = "safety"      // safety assay assigned to a technician
	CategoryCalibration Category = "calibration" // equipment calibration
	CategoryAbsence     Category = "absence"     // vacation or holiday block
)

// Valid returns true if the category is a known value.
func (c Category) Valid() bool {
	switch c {
	case CategoryEfficiency, CategorySafety, CategoryCalibration, CategoryAbsence:
		return true
	default:
		return false
	}
}

// ParseCategory converts a string to a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return c, nil
}

// Status represents the state of a task. The set of valid statuses depends
// on the task category.
type Status string

const (
	StatusPending      Status = "pending"
	StatusInProgress   Status = "in_progress"
	StatusReportIssued Status = "report_issued"
	StatusCompleted    Status = "completed"
	StatusScheduled    Status = "scheduled"
	StatusDone         Status = "done"
)

// statusesByCategory lists the statuses each category may take.
var statusesByCategory = map[Category][]Status{
	CategoryEfficiency:  {StatusPending, StatusInProgress, StatusReportIssued, StatusCompleted},
	CategorySafety:      {StatusPending, StatusInProgress, StatusReportIssued, StatusCompleted},
	CategoryCalibration: {StatusScheduled, StatusDone},
	CategoryAbsence:     {StatusScheduled},
}

// StatusesFor returns the statuses a category may take, in display order.
func StatusesFor(c Category) []Status {
	return statusesByCategory[c]
}

// DefaultStatus returns the initial status for a category.
func DefaultStatus(c Category) Status {
	switch c {
	case CategoryCalibration, CategoryAbsence:
		return StatusScheduled
	default:
		return StatusPending
	}
}

// ValidStatus returns true if the status is allowed for the category.
func ValidStatus(c Category, s Status) bool {
	for _, v := range statusesByCategory[c] {
		if v == s {
			return true
		}
	}
	return false
}

// Terminal returns true for statuses that retire a task in place.
// Safety assays with a terminal status stay on the board with their final
// status instead of being removed.
func (s Status) Terminal() bool {
	switch s {
	case StatusReportIssued, StatusCompleted, StatusDone:
		return true
	default:
		return false
	}
}

// Task represents a time-boxed schedulable unit: an assay, a calibration,
// or a vacation/holiday block. Start and End are calendar dates (midnight),
// End inclusive and never before Start.
type Task struct {
	ID       int64
	Category Category
	RowID    string
	Start    time.Time
	End      time.Time
	Status   Status

	// Descriptive fields, opaque to the scheduling engine.
	Description  string
	Protocol     string
	Manufacturer string
	Observations string

	// DependsOn lists prerequisite task ids: each must end before this
	// task starts. Order is preserved for display.
	DependsOn []int64
}

// NewTask creates a task with validation. Dates are truncated to midnight.
func NewTask(description string, category Category, rowID string, start, end time.Time) (*Task, error) {
	if description == "" {
		return nil, ErrEmptyDescription
	}
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}
	start = dateutil.TruncateToDay(start)
	end = dateutil.TruncateToDay(end)
	if end.Before(start) {
		return nil, ErrEndBeforeStart
	}
	return &Task{
		Category:    category,
		RowID:       rowID,
		Start:       start,
		End:         end,
		Status:      DefaultStatus(category),
		Description: description,
	}, nil
}

// DurationDays returns the task span in calendar days (0 for a single day).
// Moves must preserve this value.
func (t *Task) DurationDays() int {
	return dateutil.DaysBetween(t.Start, t.End)
}

// DependsOnTask returns true if id is a direct prerequisite of t.
func (t *Task) DependsOnTask(id int64) bool {
	for _, d := range t.DependsOn {
		if d == id {
			return true
		}
	}
	return false
}

// Retired returns true for tasks kept visible with a final status.
func (t *Task) Retired() bool {
	return t.Status.Terminal()
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	if t.DependsOn != nil {
		c.DependsOn = append([]int64(nil), t.DependsOn...)
	}
	return &c
}
