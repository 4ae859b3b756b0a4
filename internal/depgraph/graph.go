// Package depgraph models finish-before-start ordering constraints between
// tasks as a directed acyclic graph.
package depgraph

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// Graph errors.
var (
	ErrCycleDetected = errors.New("dependency would create a cycle")
	ErrEdgeNotFound  = errors.New("dependency edge not found")
	ErrSelfEdge      = errors.New("task cannot depend on itself")
)

// Graph holds directed edges "from must end before to starts". The zero
// value is not usable; call New.
type Graph struct {
	// dependsOn[to] lists prerequisites of to, in insertion order.
	dependsOn map[int64][]int64
	// blocks[from] lists tasks waiting on from.
	blocks map[int64][]int64
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		dependsOn: make(map[int64][]int64),
		blocks:    make(map[int64][]int64),
	}
}

// Build constructs a graph from per-task prerequisite lists. Input edges
// are assumed already acyclic (they were validated on insertion).
func Build(dependsOn map[int64][]int64) *Graph {
	g := New()
	ids := make([]int64, 0, len(dependsOn))
	for id := range dependsOn {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, to := range ids {
		for _, from := range dependsOn[to] {
			g.dependsOn[to] = append(g.dependsOn[to], from)
			g.blocks[from] = append(g.blocks[from], to)
		}
	}
	return g
}

// AddEdge records that `from` must end before `to` starts. Returns
// ErrCycleDetected if `to` already transitively blocks `from`, leaving the
// graph unchanged.
func (g *Graph) AddEdge(from, to int64) error {
	if from == to {
		return ErrSelfEdge
	}
	for _, existing := range g.dependsOn[to] {
		if existing == from {
			return nil // already present
		}
	}
	// Cycle check: is there already a path to -> ... -> from?
	if g.hasPath(to, from, make(map[int64]bool)) {
		return fmt.Errorf("%w: %d -> %d", ErrCycleDetected, from, to)
	}
	g.dependsOn[to] = append(g.dependsOn[to], from)
	g.blocks[from] = append(g.blocks[from], to)
	return nil
}

// RemoveEdge deletes the edge from -> to if present.
func (g *Graph) RemoveEdge(from, to int64) error {
	found := false
	g.dependsOn[to], found = remove(g.dependsOn[to], from)
	if !found {
		return fmt.Errorf("%w: %d -> %d", ErrEdgeNotFound, from, to)
	}
	g.blocks[from], _ = remove(g.blocks[from], to)
	return nil
}

// RemoveNode drops a task and every edge touching it.
func (g *Graph) RemoveNode(id int64) {
	for _, from := range g.dependsOn[id] {
		g.blocks[from], _ = remove(g.blocks[from], id)
	}
	for _, to := range g.blocks[id] {
		g.dependsOn[to], _ = remove(g.dependsOn[to], id)
	}
	delete(g.dependsOn, id)
	delete(g.blocks, id)
}

// Dependencies returns the direct prerequisites of a task, in insertion
// order.
func (g *Graph) Dependencies(id int64) []int64 {
	return append([]int64(nil), g.dependsOn[id]...)
}

// Dependents returns the tasks directly waiting on id.
func (g *Graph) Dependents(id int64) []int64 {
	return append([]int64(nil), g.blocks[id]...)
}

// TransitiveDependents returns every task reachable through blocks edges
// from id, in breadth-first order. Used to re-validate downstream tasks
// when a prerequisite moves.
func (g *Graph) TransitiveDependents(id int64) []int64 {
	var out []int64
	seen := map[int64]bool{id: true}
	queue := append([]int64(nil), g.blocks[id]...)
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if seen[next] {
			continue
		}
		seen[next] = true
		out = append(out, next)
		queue = append(queue, g.blocks[next]...)
	}
	return out
}

// EarliestStart returns the day after the latest end date over the direct
// prerequisites of id. The second return is false when the task has no
// prerequisites (unbounded start). endDate resolves a task id to its
// current end date; unknown ids are skipped.
func (g *Graph) EarliestStart(id int64, endDate func(int64) (time.Time, bool)) (time.Time, bool) {
	var latest time.Time
	found := false
	for _, dep := range g.dependsOn[id] {
		end, ok := endDate(dep)
		if !ok {
			continue
		}
		if !found || end.After(latest) {
			latest = end
			found = true
		}
	}
	if !found {
		return time.Time{}, false
	}
	return latest.AddDate(0, 0, 1), true
}

// BlockingDependency returns the prerequisite of id whose end date is
// latest, for naming the conflicting task in errors. ok is false when id
// has no prerequisites.
func (g *Graph) BlockingDependency(id int64, endDate func(int64) (time.Time, bool)) (int64, bool) {
	var latest time.Time
	var blocking int64
	found := false
	for _, dep := range g.dependsOn[id] {
		end, ok := endDate(dep)
		if !ok {
			continue
		}
		if !found || end.After(latest) {
			latest = end
			blocking = dep
			found = true
		}
	}
	return blocking, found
}

func (g *Graph) hasPath(from, to int64, visited map[int64]bool) bool {
	if from == to {
		return true
	}
	if visited[from] {
		return false
	}
	visited[from] = true
	for _, next := range g.blocks[from] {
		if g.hasPath(next, to, visited) {
			return true
		}
	}
	return false
}

func remove(ids []int64, id int64) ([]int64, bool) {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...), true
		}
	}
	return ids, false
}
