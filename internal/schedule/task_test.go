package schedule

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestNewTask_Valid(t *testing.T) {
	task, err := NewTask("Ensaio ciclo frio", CategoryEfficiency, "1", date(2025, 1, 10), date(2025, 1, 12))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Status != StatusPending {
		t.Errorf("status = %s, want pending", task.Status)
	}
	if task.DurationDays() != 2 {
		t.Errorf("duration = %d, want 2", task.DurationDays())
	}
}

func TestNewTask_Validation(t *testing.T) {
	tests := []struct {
		name     string
		desc     string
		category Category
		start    time.Time
		end      time.Time
		wantErr  error
	}{
		{"empty description", "", CategoryEfficiency, date(2025, 1, 10), date(2025, 1, 12), ErrEmptyDescription},
		{"bad category", "x", Category("paperwork"), date(2025, 1, 10), date(2025, 1, 12), ErrInvalidCategory},
		{"end before start", "x", CategorySafety, date(2025, 1, 12), date(2025, 1, 10), ErrEndBeforeStart},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewTask(tc.desc, tc.category, "A", tc.start, tc.end)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestNewTask_SingleDayAllowed(t *testing.T) {
	task, err := NewTask("Calibração", CategoryCalibration, RowCalibration, date(2025, 2, 3), date(2025, 2, 3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.DurationDays() != 0 {
		t.Errorf("duration = %d, want 0", task.DurationDays())
	}
	if task.Status != StatusScheduled {
		t.Errorf("status = %s, want scheduled", task.Status)
	}
}

func TestValidStatus(t *testing.T) {
	tests := []struct {
		category Category
		status   Status
		want     bool
	}{
		{CategoryEfficiency, StatusReportIssued, true},
		{CategoryEfficiency, StatusDone, false},
		{CategorySafety, StatusInProgress, true},
		{CategoryCalibration, StatusDone, true},
		{CategoryCalibration, StatusPending, false},
		{CategoryAbsence, StatusScheduled, true},
		{CategoryAbsence, StatusCompleted, false},
	}
	for _, tc := range tests {
		t.Run(string(tc.category)+"/"+string(tc.status), func(t *testing.T) {
			if got := ValidStatus(tc.category, tc.status); got != tc.want {
				t.Errorf("ValidStatus = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestStatusTerminal(t *testing.T) {
	if StatusPending.Terminal() || StatusInProgress.Terminal() || StatusScheduled.Terminal() {
		t.Error("active statuses must not be terminal")
	}
	if !StatusCompleted.Terminal() || !StatusReportIssued.Terminal() || !StatusDone.Terminal() {
		t.Error("final statuses must be terminal")
	}
}

func TestTaskClone_Independent(t *testing.T) {
	orig, err := NewTask("Ensaio", CategorySafety, "A", date(2025, 1, 10), date(2025, 1, 12))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	orig.ID = 7
	orig.DependsOn = []int64{3, 5}

	c := orig.Clone()
	c.DependsOn[0] = 99
	c.Start = date(2030, 1, 1)

	if orig.DependsOn[0] != 3 {
		t.Error("clone shares DependsOn backing array with original")
	}
	if !orig.Start.Equal(date(2025, 1, 10)) {
		t.Error("clone mutation leaked into original")
	}
}

func TestDependencyViolationError_Is(t *testing.T) {
	err := &DependencyViolationError{TaskID: 4, Needed: date(2025, 1, 13)}
	if !errors.Is(err, ErrDependencyViolation) {
		t.Error("DependencyViolationError should match ErrDependencyViolation")
	}
}

func TestDependencyViolationError_MessageNamesTheRightSide(t *testing.T) {
	prereq := &DependencyViolationError{TaskID: 4, Needed: date(2025, 1, 13)}
	if got := prereq.Error(); !strings.Contains(got, "prerequisite #4") {
		t.Errorf("prerequisite message = %q", got)
	}

	dep := &DependencyViolationError{TaskID: 7, Needed: date(2025, 1, 13), Dependent: true}
	got := dep.Error()
	if !strings.Contains(got, "dependent task #7") {
		t.Errorf("dependent message = %q", got)
	}
	if strings.Contains(got, "prerequisite") {
		t.Errorf("dependent message must not call #7 a prerequisite: %q", got)
	}
}
