package engine

import (
	"testing"

	"github.com/dmaraujo/cronograma/internal/schedule"
)

func renameCmd(label string) command {
	return &renameRowCmd{id: "A", from: "old", to: label}
}

func TestHistory_PushUndoRedo(t *testing.T) {
	var h history

	h.push(renameCmd("one"))
	h.push(renameCmd("two"))

	if !h.canUndo() || h.canRedo() {
		t.Fatal("two pushed commands: undo yes, redo no")
	}

	cmd, ok := h.stepBack()
	if !ok || cmd.describe() != `rename row A to "two"` {
		t.Fatalf("stepBack = %v %v", cmd, ok)
	}
	if !h.canRedo() {
		t.Error("redo should be available after stepping back")
	}

	cmd, ok = h.stepForward()
	if !ok || cmd.describe() != `rename row A to "two"` {
		t.Fatalf("stepForward = %v %v", cmd, ok)
	}
}

func TestHistory_PushTruncatesTail(t *testing.T) {
	var h history
	h.push(renameCmd("one"))
	h.push(renameCmd("two"))
	h.stepBack()

	h.push(renameCmd("three"))

	if h.canRedo() {
		t.Error("push must truncate the redo tail")
	}
	if got := h.peekUndo(); got != `rename row A to "three"` {
		t.Errorf("peekUndo = %q", got)
	}
}

func TestHistory_StepsAtBounds(t *testing.T) {
	var h history
	if _, ok := h.stepBack(); ok {
		t.Error("stepBack on empty history")
	}
	if _, ok := h.stepForward(); ok {
		t.Error("stepForward on empty history")
	}
	if h.peekUndo() != "" || h.peekRedo() != "" {
		t.Error("peeks on empty history should be empty")
	}
}

func TestHistory_Clear(t *testing.T) {
	var h history
	h.push(renameCmd("one"))
	h.clear()
	if h.canUndo() || h.canRedo() {
		t.Error("cleared history should have nothing")
	}
}

func TestCompound_RollsBackPartialApply(t *testing.T) {
	snap := schedule.NewSnapshot()
	snap.Rows = append(snap.Rows, &schedule.Row{ID: "A", Label: "x", Category: schedule.RowCategorySafety})

	c := &compoundCmd{cmds: []command{
		&renameRowCmd{id: "A", from: "x", to: "y"},
		&renameRowCmd{id: "missing", from: "a", to: "b"}, // fails
	}}

	if err := c.apply(snap); err == nil {
		t.Fatal("expected apply failure")
	}
	if snap.Row("A").Label != "x" {
		t.Error("failed compound must roll back already-applied steps")
	}
}
