package depgraph

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestAddEdge_Simple(t *testing.T) {
	g := New()
	if err := g.AddEdge(1, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deps := g.Dependencies(2); !reflect.DeepEqual(deps, []int64{1}) {
		t.Errorf("Dependencies(2) = %v, want [1]", deps)
	}
	if deps := g.Dependents(1); !reflect.DeepEqual(deps, []int64{2}) {
		t.Errorf("Dependents(1) = %v, want [2]", deps)
	}
}

func TestAddEdge_Duplicate(t *testing.T) {
	g := New()
	if err := g.AddEdge(1, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.AddEdge(1, 2); err != nil {
		t.Fatalf("duplicate insert should be a no-op, got %v", err)
	}
	if deps := g.Dependencies(2); len(deps) != 1 {
		t.Errorf("Dependencies(2) = %v, want one entry", deps)
	}
}

func TestAddEdge_SelfRejected(t *testing.T) {
	g := New()
	if err := g.AddEdge(5, 5); !errors.Is(err, ErrSelfEdge) {
		t.Errorf("err = %v, want ErrSelfEdge", err)
	}
}

func TestAddEdge_CycleDetected(t *testing.T) {
	g := New()
	mustAdd(t, g, 1, 2)
	mustAdd(t, g, 2, 3)

	err := g.AddEdge(3, 1)
	if !errors.Is(err, ErrCycleDetected) {
		t.Fatalf("err = %v, want ErrCycleDetected", err)
	}

	// Rejected insert leaves the graph unchanged.
	if deps := g.Dependencies(1); len(deps) != 0 {
		t.Errorf("Dependencies(1) = %v, want empty after rejected edge", deps)
	}
	if deps := g.Dependents(3); len(deps) != 0 {
		t.Errorf("Dependents(3) = %v, want empty after rejected edge", deps)
	}
}

func TestAddEdge_TwoNodeCycle(t *testing.T) {
	g := New()
	mustAdd(t, g, 1, 2)
	if err := g.AddEdge(2, 1); !errors.Is(err, ErrCycleDetected) {
		t.Errorf("err = %v, want ErrCycleDetected", err)
	}
}

func TestAddEdge_DiamondIsAcyclic(t *testing.T) {
	// 1 -> 2, 1 -> 3, 2 -> 4, 3 -> 4 is a valid diamond, not a cycle.
	g := New()
	mustAdd(t, g, 1, 2)
	mustAdd(t, g, 1, 3)
	mustAdd(t, g, 2, 4)
	mustAdd(t, g, 3, 4)

	if deps := g.Dependencies(4); !reflect.DeepEqual(deps, []int64{2, 3}) {
		t.Errorf("Dependencies(4) = %v, want [2 3]", deps)
	}
}

func TestRemoveEdge(t *testing.T) {
	g := New()
	mustAdd(t, g, 1, 2)

	if err := g.RemoveEdge(1, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.RemoveEdge(1, 2); !errors.Is(err, ErrEdgeNotFound) {
		t.Errorf("err = %v, want ErrEdgeNotFound", err)
	}

	// Once removed, the former cycle direction becomes legal.
	if err := g.AddEdge(2, 1); err != nil {
		t.Errorf("AddEdge(2,1) after removal: %v", err)
	}
}

func TestRemoveNode(t *testing.T) {
	g := New()
	mustAdd(t, g, 1, 2)
	mustAdd(t, g, 2, 3)

	g.RemoveNode(2)

	if deps := g.Dependencies(3); len(deps) != 0 {
		t.Errorf("Dependencies(3) = %v, want empty", deps)
	}
	if deps := g.Dependents(1); len(deps) != 0 {
		t.Errorf("Dependents(1) = %v, want empty", deps)
	}
}

func TestTransitiveDependents(t *testing.T) {
	g := New()
	mustAdd(t, g, 1, 2)
	mustAdd(t, g, 2, 3)
	mustAdd(t, g, 2, 4)
	mustAdd(t, g, 5, 4) // unrelated prerequisite

	got := g.TransitiveDependents(1)
	want := []int64{2, 3, 4}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TransitiveDependents(1) = %v, want %v", got, want)
	}

	if deps := g.TransitiveDependents(3); len(deps) != 0 {
		t.Errorf("TransitiveDependents(3) = %v, want empty", deps)
	}
}

func TestEarliestStart(t *testing.T) {
	g := New()
	mustAdd(t, g, 1, 3)
	mustAdd(t, g, 2, 3)

	ends := map[int64]time.Time{
		1: time.Date(2025, 1, 12, 0, 0, 0, 0, time.Local),
		2: time.Date(2025, 1, 20, 0, 0, 0, 0, time.Local),
	}
	endDate := func(id int64) (time.Time, bool) {
		e, ok := ends[id]
		return e, ok
	}

	got, ok := g.EarliestStart(3, endDate)
	if !ok {
		t.Fatal("expected a bounded earliest start")
	}
	want := time.Date(2025, 1, 21, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("EarliestStart = %s, want %s", got.Format("2006-01-02"), want.Format("2006-01-02"))
	}

	blocking, ok := g.BlockingDependency(3, endDate)
	if !ok || blocking != 2 {
		t.Errorf("BlockingDependency = %d ok=%v, want 2 true", blocking, ok)
	}

	if _, ok := g.EarliestStart(1, endDate); ok {
		t.Error("task with no prerequisites must have unbounded start")
	}
}

func TestBuild(t *testing.T) {
	g := Build(map[int64][]int64{
		2: {1},
		3: {1, 2},
	})
	if deps := g.Dependencies(3); !reflect.DeepEqual(deps, []int64{1, 2}) {
		t.Errorf("Dependencies(3) = %v, want [1 2]", deps)
	}
	if deps := g.Dependents(1); len(deps) != 2 {
		t.Errorf("Dependents(1) = %v, want two entries", deps)
	}
}

func mustAdd(t *testing.T, g *Graph, from, to int64) {
	t.Helper()
	if err := g.AddEdge(from, to); err != nil {
		t.Fatalf("AddEdge(%d, %d): %v", from, to, err)
	}
}
