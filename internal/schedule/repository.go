package schedule

import "context"

// Repository defines the storage interface for schedule snapshots. Saves
// are atomic: either the whole snapshot persists or nothing does.
type Repository interface {
	// LoadSnapshot reads the last committed schedule. A store with no
	// prior commit returns an empty snapshot with the built-in rows.
	LoadSnapshot(ctx context.Context) (*Snapshot, error)

	// SaveSnapshot replaces the committed schedule with the given state.
	SaveSnapshot(ctx context.Context, snap *Snapshot) error

	// Close releases any resources held by the repository.
	Close() error
}
