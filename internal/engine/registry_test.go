package engine

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dmaraujo/cronograma/internal/identity"
	"github.com/dmaraujo/cronograma/internal/schedule"
)

func TestAddRow_SequentialIdsNeverReused(t *testing.T) {
	e, _ := newTestEngine(t, identity.RoleAdministrator)

	// Seed already has efficiency rows 1 and 2.
	r3, err := e.AddRow(schedule.RowCategoryEfficiency)
	if err != nil {
		t.Fatalf("AddRow: %v", err)
	}
	if r3.ID != "3" {
		t.Errorf("id = %q, want \"3\"", r3.ID)
	}
	if r3.Label != "Linha 3" {
		t.Errorf("label = %q, want placeholder", r3.Label)
	}

	r4, err := e.AddRow(schedule.RowCategoryEfficiency)
	if err != nil {
		t.Fatalf("AddRow: %v", err)
	}
	if r4.ID != "4" {
		t.Errorf("second id = %q, want \"4\"", r4.ID)
	}

	// Safety rows advance the letter sequence.
	rb, err := e.AddRow(schedule.RowCategorySafety)
	if err != nil {
		t.Fatalf("AddRow: %v", err)
	}
	if rb.ID != "B" {
		t.Errorf("safety id = %q, want \"B\"", rb.ID)
	}
}

func TestAddRow_DeletedIdNotReused(t *testing.T) {
	e, _ := newTestEngine(t, identity.RoleAdministrator)

	r3, err := e.AddRow(schedule.RowCategoryEfficiency)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.DeleteRow(r3.ID, false); err != nil {
		t.Fatalf("DeleteRow: %v", err)
	}
	r4, err := e.AddRow(schedule.RowCategoryEfficiency)
	if err != nil {
		t.Fatal(err)
	}
	if r4.ID != "4" {
		t.Errorf("id after delete = %q, want \"4\" (no reuse of \"3\")", r4.ID)
	}

	// Deleting the highest letter row must not free it either.
	rb, err := e.AddRow(schedule.RowCategorySafety)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.DeleteRow(rb.ID, false); err != nil {
		t.Fatalf("DeleteRow: %v", err)
	}
	rc, err := e.AddRow(schedule.RowCategorySafety)
	if err != nil {
		t.Fatal(err)
	}
	if rc.ID != "C" {
		t.Errorf("safety id after delete = %q, want \"C\" (no reuse of %q)", rc.ID, rb.ID)
	}
}

func TestRenameRow(t *testing.T) {
	e, _ := newTestEngine(t, identity.RoleAdministrator)

	if err := e.RenameRow("A", "Maria"); err != nil {
		t.Fatalf("RenameRow: %v", err)
	}
	if got := e.Overlay().Row("A").Label; got != "Maria" {
		t.Errorf("label = %q, want Maria", got)
	}

	if err := e.RenameRow("missing", "x"); !errors.Is(err, schedule.ErrRowNotFound) {
		t.Errorf("err = %v, want ErrRowNotFound", err)
	}
	if err := e.RenameRow("A", "  "); !errors.Is(err, schedule.ErrEmptyDescription) {
		t.Errorf("err = %v, want ErrEmptyDescription", err)
	}

	// Renaming to the same label is a no-op and records nothing.
	if err := e.RenameRow("A", "Maria"); err != nil {
		t.Fatalf("same-label rename: %v", err)
	}
	if ok, _ := e.Undo(); !ok {
		t.Fatal("expected one undoable rename")
	}
	if ok, _ := e.Undo(); ok {
		t.Error("same-label rename must not be recorded")
	}
}

func TestDeleteRow_InUseWithoutCascade(t *testing.T) {
	e, _ := newTestEngine(t, identity.RoleAdministrator)
	before := e.Overlay().Clone()

	err := e.DeleteRow("1", false)
	if !errors.Is(err, schedule.ErrRowInUse) {
		t.Fatalf("err = %v, want ErrRowInUse", err)
	}
	// The failed delete never mutates state.
	if !reflect.DeepEqual(before, e.Overlay()) {
		t.Error("rejected delete must be a no-op on state")
	}
	if e.CanUndo() {
		t.Error("rejected delete must not be recorded")
	}
}

func TestDeleteRow_CascadeSingleUndo(t *testing.T) {
	e, _ := newTestEngine(t, identity.RoleAdministrator)
	before := e.Overlay().Clone()

	// Row 1 hosts tasks 1 and 2; task 2 depends on task 1.
	if err := e.DeleteRow("1", true); err != nil {
		t.Fatalf("cascade DeleteRow: %v", err)
	}
	if e.Overlay().Row("1") != nil {
		t.Error("row should be gone")
	}
	if e.Overlay().Task(1) != nil || e.Overlay().Task(2) != nil {
		t.Error("hosted tasks should be gone")
	}

	// One undo reverses the whole cascade.
	if ok, err := e.Undo(); !ok || err != nil {
		t.Fatalf("Undo: ok=%v err=%v", ok, err)
	}
	if !reflect.DeepEqual(before, e.Overlay()) {
		t.Error("single undo must restore the row, its tasks, and dependency lists")
	}
}

func TestDeleteRow_BuiltInRejected(t *testing.T) {
	e, _ := newTestEngine(t, identity.RoleAdministrator)
	if err := e.DeleteRow(schedule.RowCalibration, true); !errors.Is(err, ErrBuiltInRow) {
		t.Errorf("err = %v, want ErrBuiltInRow", err)
	}
}

func TestDeleteRow_NotFound(t *testing.T) {
	e, _ := newTestEngine(t, identity.RoleAdministrator)
	if err := e.DeleteRow("missing", false); !errors.Is(err, schedule.ErrRowNotFound) {
		t.Errorf("err = %v, want ErrRowNotFound", err)
	}
}
