package db

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/dmaraujo/cronograma/internal/schedule"
)

func newTestRepo(t *testing.T) *SQLite {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	repo, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create test repo: %v", err)
	}

	t.Cleanup(func() {
		_ = repo.Close()
	})

	return repo
}

func day(d int) time.Time {
	return time.Date(2026, 1, d, 0, 0, 0, 0, time.Local)
}

func sampleSnapshot() *schedule.Snapshot {
	snap := schedule.NewSnapshot()
	snap.Rows = append(snap.Rows,
		&schedule.Row{ID: "1", Label: "Linha 1", Category: schedule.RowCategoryEfficiency},
		&schedule.Row{ID: "A", Label: "Linha A", Category: schedule.RowCategorySafety},
	)
	snap.Tasks = append(snap.Tasks,
		&schedule.Task{
			ID:          1,
			Category:    schedule.CategoryEfficiency,
			RowID:       "1",
			Start:       day(5),
			End:         day(9),
			Status:      schedule.StatusPending,
			Description: "Ensaio de rendimento",
			Protocol:    "PR-2026-001",
		},
		&schedule.Task{
			ID:           2,
			Category:     schedule.CategoryEfficiency,
			RowID:        "1",
			Start:        day(12),
			End:          day(14),
			Status:       schedule.StatusInProgress,
			Description:  "Relatório",
			Manufacturer: "Acme",
			DependsOn:    []int64{1},
		},
	)
	snap.Holidays = append(snap.Holidays,
		&schedule.Holiday{ID: 1, Name: "Ano Novo", Start: day(1), End: day(1)},
	)
	return snap
}

func TestLoadSnapshot_EmptyDatabase(t *testing.T) {
	repo := newTestRepo(t)

	snap, err := repo.LoadSnapshot(context.Background())
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}

	if len(snap.Tasks) != 0 {
		t.Errorf("expected no tasks, got %d", len(snap.Tasks))
	}
	if len(snap.Rows) != len(schedule.BuiltInRows()) {
		t.Errorf("expected only built-in rows, got %d", len(snap.Rows))
	}
	if snap.Row(schedule.RowCalibration) == nil || snap.Row(schedule.RowAbsences) == nil {
		t.Error("expected built-in rows to be seeded")
	}
}

func TestSaveSnapshot_RoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	snap := sampleSnapshot()

	if err := repo.SaveSnapshot(context.Background(), snap); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	got, err := repo.LoadSnapshot(context.Background())
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}

	if !reflect.DeepEqual(got, snap) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, snap)
	}
}

func TestSaveSnapshot_PreservesDependencyOrder(t *testing.T) {
	repo := newTestRepo(t)
	snap := sampleSnapshot()
	snap.Tasks = append(snap.Tasks, &schedule.Task{
		ID:          3,
		Category:    schedule.CategoryEfficiency,
		RowID:       "1",
		Start:       day(20),
		End:         day(21),
		Status:      schedule.StatusPending,
		Description: "Fecho",
		DependsOn:   []int64{2, 1},
	})

	if err := repo.SaveSnapshot(context.Background(), snap); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	got, err := repo.LoadSnapshot(context.Background())
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}

	tsk := got.Task(3)
	if tsk == nil {
		t.Fatal("task 3 not loaded")
	}
	if want := []int64{2, 1}; !reflect.DeepEqual(tsk.DependsOn, want) {
		t.Errorf("DependsOn = %v, want %v", tsk.DependsOn, want)
	}
}

func TestSaveSnapshot_ReplacesPreviousState(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.SaveSnapshot(ctx, sampleSnapshot()); err != nil {
		t.Fatalf("first SaveSnapshot failed: %v", err)
	}

	smaller := schedule.NewSnapshot()
	smaller.Rows = append(smaller.Rows,
		&schedule.Row{ID: "1", Label: "Linha 1", Category: schedule.RowCategoryEfficiency})
	if err := repo.SaveSnapshot(ctx, smaller); err != nil {
		t.Fatalf("second SaveSnapshot failed: %v", err)
	}

	got, err := repo.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}

	if len(got.Tasks) != 0 {
		t.Errorf("expected tasks to be cleared, got %d", len(got.Tasks))
	}
	if len(got.Holidays) != 0 {
		t.Errorf("expected holidays to be cleared, got %d", len(got.Holidays))
	}
	if !reflect.DeepEqual(got, smaller) {
		t.Errorf("state mismatch after replace:\ngot  %+v\nwant %+v", got, smaller)
	}
}
