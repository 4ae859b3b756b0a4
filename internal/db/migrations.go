package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS rows (
			id       TEXT PRIMARY KEY,
			label    TEXT NOT NULL,
			category TEXT NOT NULL CHECK(category IN ('efficiency', 'safety', 'calibration', 'absence')),
			built_in INTEGER NOT NULL DEFAULT 0,
			position INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS tasks (
			id           INTEGER PRIMARY KEY,
			category     TEXT NOT NULL CHECK(category IN ('efficiency', 'safety', 'calibration', 'absence')),
			row_id       TEXT NOT NULL REFERENCES rows(id),
			start_date   DATE NOT NULL,
			end_date     DATE NOT NULL,
			status       TEXT NOT NULL,
			description  TEXT NOT NULL,
			protocol     TEXT NOT NULL DEFAULT '',
			manufacturer TEXT NOT NULL DEFAULT '',
			observations TEXT NOT NULL DEFAULT '',
			position     INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS task_dependencies (
			task_id    INTEGER NOT NULL REFERENCES tasks(id),
			depends_on INTEGER NOT NULL REFERENCES tasks(id),
			position   INTEGER NOT NULL,
			PRIMARY KEY (task_id, depends_on)
		);

		CREATE TABLE IF NOT EXISTS holidays (
			id         INTEGER PRIMARY KEY,
			name       TEXT NOT NULL,
			start_date DATE NOT NULL,
			end_date   DATE NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_tasks_row ON tasks(row_id);
		CREATE INDEX IF NOT EXISTS idx_tasks_dates ON tasks(start_date, end_date);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	return nil
}
