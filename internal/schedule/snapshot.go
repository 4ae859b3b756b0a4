package schedule

// Snapshot is the full schedule state: every row, task, and holiday. The
// engine works on a mutable overlay copy; the persistence layer loads and
// saves it atomically. Rows keep their display order; tasks keep creation
// order.
type Snapshot struct {
	Tasks    []*Task
	Rows     []*Row
	Holidays []*Holiday
}

// NewSnapshot returns an empty snapshot seeded with the built-in rows.
func NewSnapshot() *Snapshot {
	return &Snapshot{Rows: BuiltInRows()}
}

// Task returns the task with the given id, or nil.
func (s *Snapshot) Task(id int64) *Task {
	for _, t := range s.Tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// TaskIndex returns the position of a task in the ordered list, or -1.
func (s *Snapshot) TaskIndex(id int64) int {
	for i, t := range s.Tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Row returns the row with the given id, or nil.
func (s *Snapshot) Row(id string) *Row {
	for _, r := range s.Rows {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// RowIndex returns the position of a row in the ordered list, or -1.
func (s *Snapshot) RowIndex(id string) int {
	for i, r := range s.Rows {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// TasksOnRow returns the tasks assigned to a row, in task order.
func (s *Snapshot) TasksOnRow(rowID string) []*Task {
	var out []*Task
	for _, t := range s.Tasks {
		if t.RowID == rowID {
			out = append(out, t)
		}
	}
	return out
}

// Dependents returns the tasks whose DependsOn list references id.
func (s *Snapshot) Dependents(id int64) []*Task {
	var out []*Task
	for _, t := range s.Tasks {
		if t.DependsOnTask(id) {
			out = append(out, t)
		}
	}
	return out
}

// MaxTaskID returns the highest task id in the snapshot, or 0.
func (s *Snapshot) MaxTaskID() int64 {
	var max int64
	for _, t := range s.Tasks {
		if t.ID > max {
			max = t.ID
		}
	}
	return max
}

// MaxHolidayID returns the highest holiday id in the snapshot, or 0.
func (s *Snapshot) MaxHolidayID() int64 {
	var max int64
	for _, h := range s.Holidays {
		if h.ID > max {
			max = h.ID
		}
	}
	return max
}

// Clone returns a deep copy of the snapshot. Undo correctness depends on
// the copy sharing nothing mutable with the original.
func (s *Snapshot) Clone() *Snapshot {
	c := &Snapshot{}
	if s.Tasks != nil {
		c.Tasks = make([]*Task, len(s.Tasks))
		for i, t := range s.Tasks {
			c.Tasks[i] = t.Clone()
		}
	}
	if s.Rows != nil {
		c.Rows = make([]*Row, len(s.Rows))
		for i, r := range s.Rows {
			c.Rows[i] = r.Clone()
		}
	}
	if s.Holidays != nil {
		c.Holidays = make([]*Holiday, len(s.Holidays))
		for i, h := range s.Holidays {
			c.Holidays[i] = h.Clone()
		}
	}
	return c
}
