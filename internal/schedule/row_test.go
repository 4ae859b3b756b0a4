package schedule

import (
	"testing"
)

func TestRowIDAllocator_Efficiency(t *testing.T) {
	var a RowIDAllocator
	a.Seed([]*Row{
		{ID: "1", Category: RowCategoryEfficiency},
		{ID: "3", Category: RowCategoryEfficiency}, // "2" was deleted
		{ID: "A", Category: RowCategorySafety},
	})
	id, err := a.Next(RowCategoryEfficiency)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Never reuse a deleted id: next is max+1, not the gap.
	if id != "4" {
		t.Errorf("id = %q, want \"4\"", id)
	}
}

func TestRowIDAllocator_EfficiencyEmpty(t *testing.T) {
	var a RowIDAllocator
	id, err := a.Next(RowCategoryEfficiency)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "1" {
		t.Errorf("id = %q, want \"1\"", id)
	}
}

func TestRowIDAllocator_Safety(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		want     string
	}{
		{"empty", nil, "A"},
		{"after A", []string{"A"}, "B"},
		{"gap not reused", []string{"A", "C"}, "D"},
		{"after Z", []string{"Z"}, "AA"},
		{"after AZ", []string{"AZ"}, "BA"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var rows []*Row
			for _, id := range tc.existing {
				rows = append(rows, &Row{ID: id, Category: RowCategorySafety})
			}
			var a RowIDAllocator
			a.Seed(rows)
			id, err := a.Next(RowCategorySafety)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if id != tc.want {
				t.Errorf("id = %q, want %q", id, tc.want)
			}
		})
	}
}

func TestRowIDAllocator_MarksOnlyMoveForward(t *testing.T) {
	var a RowIDAllocator
	a.Seed([]*Row{{ID: "2", Category: RowCategoryEfficiency}})
	if id, _ := a.Next(RowCategoryEfficiency); id != "3" {
		t.Fatalf("id = %q, want \"3\"", id)
	}
	// Re-seeding with a smaller set (rows deleted since) must not lower
	// the mark.
	a.Seed([]*Row{{ID: "1", Category: RowCategoryEfficiency}})
	if id, _ := a.Next(RowCategoryEfficiency); id != "4" {
		t.Errorf("id after re-seed = %q, want \"4\"", id)
	}
}

func TestRowIDAllocator_BuiltInCategoriesRejected(t *testing.T) {
	var a RowIDAllocator
	if _, err := a.Next(RowCategoryCalibration); err == nil {
		t.Error("expected error for calibration row allocation")
	}
	if _, err := a.Next(RowCategoryAbsence); err == nil {
		t.Error("expected error for absence row allocation")
	}
}

func TestRowCategoryHosts(t *testing.T) {
	tests := []struct {
		row  RowCategory
		task Category
		want bool
	}{
		{RowCategoryEfficiency, CategoryEfficiency, true},
		{RowCategoryEfficiency, CategoryCalibration, true},
		{RowCategoryEfficiency, CategorySafety, false},
		{RowCategorySafety, CategorySafety, true},
		{RowCategorySafety, CategoryAbsence, true},
		{RowCategorySafety, CategoryEfficiency, false},
		{RowCategoryCalibration, CategoryCalibration, true},
		{RowCategoryCalibration, CategoryEfficiency, false},
		{RowCategoryAbsence, CategoryAbsence, true},
	}
	for _, tc := range tests {
		t.Run(string(tc.row)+"/"+string(tc.task), func(t *testing.T) {
			if got := tc.row.Hosts(tc.task); got != tc.want {
				t.Errorf("Hosts = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestBuiltInRows(t *testing.T) {
	rows := BuiltInRows()
	if len(rows) != 2 {
		t.Fatalf("len = %d, want 2", len(rows))
	}
	for _, r := range rows {
		if !r.BuiltIn {
			t.Errorf("row %s should be marked built in", r.ID)
		}
	}
}

func TestDefaultLabel(t *testing.T) {
	if got := DefaultLabel("B"); got != "Linha B" {
		t.Errorf("DefaultLabel = %q", got)
	}
}
