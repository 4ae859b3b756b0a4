// Package engine implements the interactive scheduling surface: a staged
// overlay over the last committed snapshot, mutated only through named,
// invertible commands, with full undo/redo and a commit-or-discard
// transaction discipline.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmaraujo/cronograma/internal/calendar"
	"github.com/dmaraujo/cronograma/internal/depgraph"
	"github.com/dmaraujo/cronograma/internal/identity"
	"github.com/dmaraujo/cronograma/internal/schedule"
)

// Transaction and permission errors.
var (
	ErrCommitInProgress = errors.New("a commit is already in flight")
	ErrPersistFailed    = errors.New("saving the schedule failed")
	ErrPermissionDenied = errors.New("the current role cannot modify the schedule")
	ErrBuiltInRow       = errors.New("built-in rows cannot be deleted")
	ErrNotLoaded        = errors.New("engine has no loaded schedule")
)

// Listener receives a read-only projection of the overlay after every
// successful mutation, undo, redo, commit, or discard.
type Listener func(Projection)

// Engine owns the mutable working copy of the schedule. All methods must
// be called from a single goroutine; the only concurrency the engine
// tolerates is one in-flight save, mediated by BeginCommit/FinishCommit.
type Engine struct {
	repo  schedule.Repository
	roles identity.Provider

	committed *schedule.Snapshot
	overlay   *schedule.Snapshot
	graph     *depgraph.Graph
	hist      history

	nextTaskID    int64
	nextHolidayID int64
	rowIDs        schedule.RowIDAllocator

	// seq counts accepted mutations; a commit ticket remembers the seq it
	// snapshotted so mutations staged while the save is in flight keep the
	// overlay dirty.
	seq        uint64
	dirty      bool
	committing bool

	listener Listener
}

// New creates an engine over the given persistence and identity
// collaborators. Call Load before anything else.
func New(repo schedule.Repository, roles identity.Provider) *Engine {
	return &Engine{repo: repo, roles: roles}
}

// SetListener registers the rendering collaborator callback.
func (e *Engine) SetListener(l Listener) {
	e.listener = l
}

// Load reads the committed snapshot and initializes the overlay. A load
// failure leaves the engine unusable; the engine refuses to operate on
// partial data.
func (e *Engine) Load(ctx context.Context) error {
	snap, err := e.repo.LoadSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("loading schedule: %w", err)
	}
	if err := validateSnapshot(snap); err != nil {
		return fmt.Errorf("corrupt schedule snapshot: %w", err)
	}
	e.committed = snap
	e.overlay = snap.Clone()
	e.rebuildGraph()
	e.nextTaskID = snap.MaxTaskID() + 1
	e.nextHolidayID = snap.MaxHolidayID() + 1
	e.rowIDs = schedule.RowIDAllocator{}
	e.rowIDs.Seed(snap.Rows)
	e.hist.clear()
	e.dirty = false
	return nil
}

// validateSnapshot rejects snapshots that reference missing rows or tasks,
// or carry dependency cycles.
func validateSnapshot(snap *schedule.Snapshot) error {
	if snap == nil {
		return errors.New("nil snapshot")
	}
	for _, t := range snap.Tasks {
		if snap.Row(t.RowID) == nil {
			return fmt.Errorf("task %d references unknown row %q", t.ID, t.RowID)
		}
		if t.End.Before(t.Start) {
			return fmt.Errorf("task %d ends before it starts", t.ID)
		}
	}
	// Rebuilding edge by edge surfaces cycles the same way insertion does.
	g := depgraph.New()
	for _, t := range snap.Tasks {
		for _, dep := range t.DependsOn {
			if snap.Task(dep) == nil {
				return fmt.Errorf("task %d depends on unknown task %d", t.ID, dep)
			}
			if err := g.AddEdge(dep, t.ID); err != nil {
				return fmt.Errorf("task %d: %w", t.ID, err)
			}
		}
	}
	return nil
}

// Overlay returns the current working copy. Callers must treat it as
// read-only; every change goes through a named operation.
func (e *Engine) Overlay() *schedule.Snapshot {
	return e.overlay
}

// Repository returns the backing store, for callers that persist
// commit tickets themselves.
func (e *Engine) Repository() schedule.Repository {
	return e.repo
}

// Calendar returns a calendar over the overlay's holidays.
func (e *Engine) Calendar() *calendar.Calendar {
	return calendar.New(e.overlay.Holidays)
}

// Dirty reports whether the overlay diverges from the last commit.
func (e *Engine) Dirty() bool {
	return e.dirty
}

// CanUndo reports whether an undo step is available.
func (e *Engine) CanUndo() bool { return e.hist.canUndo() }

// CanRedo reports whether a redo step is available.
func (e *Engine) CanRedo() bool { return e.hist.canRedo() }

// UndoHint describes the mutation undo would revert, for UI hints.
func (e *Engine) UndoHint() string { return e.hist.peekUndo() }

// RedoHint describes the mutation redo would re-apply.
func (e *Engine) RedoHint() string { return e.hist.peekRedo() }

// checkMutable gates every mutating operation on the session role.
func (e *Engine) checkMutable() error {
	if e.overlay == nil {
		return ErrNotLoaded
	}
	if !e.roles.Role().CanMutate() {
		return ErrPermissionDenied
	}
	return nil
}

// run validates nothing itself: callers validate first, then hand over a
// fully-formed command. It applies, records, and notifies.
func (e *Engine) run(cmd command) error {
	if err := cmd.apply(e.overlay); err != nil {
		return err
	}
	e.hist.push(cmd)
	e.afterMutation()
	return nil
}

func (e *Engine) afterMutation() {
	e.seq++
	e.dirty = true
	e.rebuildGraph()
	e.notify()
}

func (e *Engine) rebuildGraph() {
	deps := make(map[int64][]int64)
	for _, t := range e.overlay.Tasks {
		if len(t.DependsOn) > 0 {
			deps[t.ID] = t.DependsOn
		}
	}
	e.graph = depgraph.Build(deps)
}

func (e *Engine) notify() {
	if e.listener != nil {
		e.listener(e.Projection())
	}
}

// Undo reverts the most recent command. Returns false when there is
// nothing to undo. Undo history survives commits, so undoing past the
// last commit point marks the overlay dirty again.
func (e *Engine) Undo() (bool, error) {
	if err := e.checkMutable(); err != nil {
		return false, err
	}
	cmd, ok := e.hist.stepBack()
	if !ok {
		return false, nil
	}
	if err := cmd.revert(e.overlay); err != nil {
		return false, fmt.Errorf("undo %s: %w", cmd.describe(), err)
	}
	e.afterMutation()
	return true, nil
}

// Redo re-applies the next command after an undo. Returns false when
// there is nothing to redo.
func (e *Engine) Redo() (bool, error) {
	if err := e.checkMutable(); err != nil {
		return false, err
	}
	cmd, ok := e.hist.stepForward()
	if !ok {
		return false, nil
	}
	if err := cmd.apply(e.overlay); err != nil {
		return false, fmt.Errorf("redo %s: %w", cmd.describe(), err)
	}
	e.afterMutation()
	return true, nil
}

// CommitTicket is the handle for one in-flight save. The snapshot it
// carries is an isolated copy; mutations staged while the save runs do
// not touch it.
type CommitTicket struct {
	snap *schedule.Snapshot
	seq  uint64
}

// Snapshot returns the state being persisted.
func (t *CommitTicket) Snapshot() *schedule.Snapshot { return t.snap }

// BeginCommit starts a commit. It fails with ErrCommitInProgress while a
// previous commit is still outstanding. The caller persists the ticket's
// snapshot and reports the outcome through FinishCommit.
func (e *Engine) BeginCommit() (*CommitTicket, error) {
	if err := e.checkMutable(); err != nil {
		return nil, err
	}
	if e.committing {
		return nil, ErrCommitInProgress
	}
	e.committing = true
	return &CommitTicket{snap: e.overlay.Clone(), seq: e.seq}, nil
}

// FinishCommit resolves an in-flight commit. On success the ticket's
// snapshot becomes the committed state and, unless mutations were staged
// while the save ran, the overlay is clean again. The undo stack is kept:
// undo survives a save. On failure the overlay stays dirty so the commit
// can be retried.
func (e *Engine) FinishCommit(t *CommitTicket, saveErr error) error {
	e.committing = false
	if saveErr != nil {
		return fmt.Errorf("%w: %v", ErrPersistFailed, saveErr)
	}
	e.committed = t.snap
	if e.seq == t.seq {
		e.dirty = false
	}
	e.notify()
	return nil
}

// Commit persists the overlay synchronously.
func (e *Engine) Commit(ctx context.Context) error {
	t, err := e.BeginCommit()
	if err != nil {
		return err
	}
	return e.FinishCommit(t, e.repo.SaveSnapshot(ctx, t.snap))
}

// Discard drops every staged edit, restoring the last committed snapshot,
// and clears the undo stack: a discarded session cannot be redone. While a
// save is in flight Discard fails with ErrCommitInProgress: the snapshot it
// would restore is about to be replaced by the ticket's, and the discarded
// edits would land in the store anyway.
func (e *Engine) Discard() error {
	if err := e.checkMutable(); err != nil {
		return err
	}
	if e.committing {
		return ErrCommitInProgress
	}
	e.overlay = e.committed.Clone()
	e.hist.clear()
	e.rebuildGraph()
	e.seq++
	e.dirty = false
	e.notify()
	return nil
}
