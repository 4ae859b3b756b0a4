// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/dmaraujo/cronograma/internal/schedule"
)

// SQLite implements schedule.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// LoadSnapshot reads the full schedule from the database. An empty
// database yields a fresh snapshot with only the built-in rows.
func (s *SQLite) LoadSnapshot(ctx context.Context) (*schedule.Snapshot, error) {
	rows, err := s.loadRows(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return schedule.NewSnapshot(), nil
	}

	tasks, err := s.loadTasks(ctx)
	if err != nil {
		return nil, err
	}

	holidays, err := s.loadHolidays(ctx)
	if err != nil {
		return nil, err
	}

	return &schedule.Snapshot{Rows: rows, Tasks: tasks, Holidays: holidays}, nil
}

func (s *SQLite) loadRows(ctx context.Context) ([]*schedule.Row, error) {
	query := `
		SELECT id, label, category, built_in
		FROM rows
		ORDER BY position
	`

	result, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying rows: %w", err)
	}
	defer result.Close()

	var out []*schedule.Row
	for result.Next() {
		var r schedule.Row
		if err := result.Scan(&r.ID, &r.Label, &r.Category, &r.BuiltIn); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		out = append(out, &r)
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return out, nil
}

func (s *SQLite) loadTasks(ctx context.Context) ([]*schedule.Task, error) {
	query := `
		SELECT id, category, row_id, start_date, end_date, status,
		       description, protocol, manufacturer, observations
		FROM tasks
		ORDER BY position
	`

	result, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer result.Close()

	byID := make(map[int64]*schedule.Task)
	var out []*schedule.Task
	for result.Next() {
		var (
			t          schedule.Task
			start, end string
		)
		err := result.Scan(&t.ID, &t.Category, &t.RowID, &start, &end, &t.Status,
			&t.Description, &t.Protocol, &t.Manufacturer, &t.Observations)
		if err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}

		t.Start, err = parseDate(start)
		if err != nil {
			return nil, fmt.Errorf("parsing task %d start date: %w", t.ID, err)
		}
		t.End, err = parseDate(end)
		if err != nil {
			return nil, fmt.Errorf("parsing task %d end date: %w", t.ID, err)
		}

		byID[t.ID] = &t
		out = append(out, &t)
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}

	if err := s.loadDependencies(ctx, byID); err != nil {
		return nil, err
	}

	return out, nil
}

func (s *SQLite) loadDependencies(ctx context.Context, tasks map[int64]*schedule.Task) error {
	query := `
		SELECT task_id, depends_on
		FROM task_dependencies
		ORDER BY task_id, position
	`

	result, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("querying dependencies: %w", err)
	}
	defer result.Close()

	for result.Next() {
		var taskID, dependsOn int64
		if err := result.Scan(&taskID, &dependsOn); err != nil {
			return fmt.Errorf("scanning dependency: %w", err)
		}

		t, ok := tasks[taskID]
		if !ok {
			return fmt.Errorf("dependency references unknown task %d", taskID)
		}
		t.DependsOn = append(t.DependsOn, dependsOn)
	}
	if err := result.Err(); err != nil {
		return fmt.Errorf("iterating dependencies: %w", err)
	}

	return nil
}

func (s *SQLite) loadHolidays(ctx context.Context) ([]*schedule.Holiday, error) {
	query := `
		SELECT id, name, start_date, end_date
		FROM holidays
		ORDER BY start_date, id
	`

	result, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying holidays: %w", err)
	}
	defer result.Close()

	var out []*schedule.Holiday
	for result.Next() {
		var (
			h          schedule.Holiday
			start, end string
		)
		if err := result.Scan(&h.ID, &h.Name, &start, &end); err != nil {
			return nil, fmt.Errorf("scanning holiday: %w", err)
		}

		h.Start, err = parseDate(start)
		if err != nil {
			return nil, fmt.Errorf("parsing holiday %d start date: %w", h.ID, err)
		}
		h.End, err = parseDate(end)
		if err != nil {
			return nil, fmt.Errorf("parsing holiday %d end date: %w", h.ID, err)
		}

		out = append(out, &h)
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("iterating holidays: %w", err)
	}

	return out, nil
}

// SaveSnapshot replaces the stored schedule with snap in a single
// transaction. Either the whole snapshot is written or nothing changes.
func (s *SQLite) SaveSnapshot(ctx context.Context, snap *schedule.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"task_dependencies", "tasks", "holidays", "rows"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for i, r := range snap.Rows {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO rows (id, label, category, built_in, position) VALUES (?, ?, ?, ?, ?)",
			r.ID, r.Label, r.Category, r.BuiltIn, i)
		if err != nil {
			return fmt.Errorf("inserting row %s: %w", r.ID, err)
		}
	}

	for i, t := range snap.Tasks {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO tasks (id, category, row_id, start_date, end_date, status,
			                   description, protocol, manufacturer, observations, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.Category, t.RowID,
			t.Start.Format("2006-01-02"), t.End.Format("2006-01-02"),
			t.Status, t.Description, t.Protocol, t.Manufacturer, t.Observations, i)
		if err != nil {
			return fmt.Errorf("inserting task %d: %w", t.ID, err)
		}

		for j, dep := range t.DependsOn {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO task_dependencies (task_id, depends_on, position) VALUES (?, ?, ?)",
				t.ID, dep, j)
			if err != nil {
				return fmt.Errorf("inserting dependency %d -> %d: %w", t.ID, dep, err)
			}
		}
	}

	for _, h := range snap.Holidays {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO holidays (id, name, start_date, end_date) VALUES (?, ?, ?, ?)",
			h.ID, h.Name,
			h.Start.Format("2006-01-02"), h.End.Format("2006-01-02"))
		if err != nil {
			return fmt.Errorf("inserting holiday %d: %w", h.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// parseDate parses a date string in various formats SQLite might return.
func parseDate(s string) (time.Time, error) {
	// Date-only values are stored as "2006-01-02" and should come back
	// as local midnight so they compare cleanly with time.Now() dates.
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}

	// SQLite may return DATE columns as "2006-01-02T00:00:00Z".
	if len(s) == 20 && s[10] == 'T' && s[19] == 'Z' {
		if t, err := time.ParseInLocation("2006-01-02", s[:10], time.Local); err == nil {
			return t, nil
		}
	}

	formats := []string{
		"2006-01-02 15:04:05",
		time.RFC3339,
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %s", s)
}
