package schedule

import (
	"fmt"
	"strconv"
)

// Built-in row ids. These rows exist in every schedule and cannot be deleted.
const (
	RowCalibration = "CAL"
	RowAbsences    = "ABS"
)

// RowCategory determines which task categories a row may host and how its
// id is allocated: efficiency rows (terminals) get sequential integer ids,
// safety rows (technicians) get sequential letter ids.
type RowCategory string

const (
	RowCategoryEfficiency  RowCategory = "efficiency"
	RowCategorySafety      RowCategory = "safety"
	RowCategoryCalibration RowCategory = "calibration"
	RowCategoryAbsence     RowCategory = "absence"
)

// Valid returns true if the row category is a known value.
func (c RowCategory) Valid() bool {
	switch c {
	case RowCategoryEfficiency, RowCategorySafety, RowCategoryCalibration, RowCategoryAbsence:
		return true
	default:
		return false
	}
}

// ParseRowCategory converts a string to a RowCategory.
func ParseRowCategory(s string) (RowCategory, error) {
	c := RowCategory(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return c, nil
}

// Hosts returns true if a row of this category may host a task of the
// given category. Terminal rows also host the calibrations performed on
// them; technician rows also host that technician's absence blocks.
func (c RowCategory) Hosts(cat Category) bool {
	switch c {
	case RowCategoryEfficiency:
		return cat == CategoryEfficiency || cat == CategoryCalibration
	case RowCategorySafety:
		return cat == CategorySafety || cat == CategoryAbsence
	case RowCategoryCalibration:
		return cat == CategoryCalibration
	case RowCategoryAbsence:
		return cat == CategoryAbsence
	default:
		return false
	}
}

// Row represents a resource lane (a terminal or a technician) hosting zero
// or more tasks. Ids are stable for the life of a schedule and never reused
// after deletion.
type Row struct {
	ID       string
	Label    string
	Category RowCategory
	BuiltIn  bool
}

// Clone returns a copy of the row.
func (r *Row) Clone() *Row {
	c := *r
	return &c
}

// BuiltInRows returns the fixed rows present in every schedule.
func BuiltInRows() []*Row {
	return []*Row{
		{ID: RowCalibration, Label: "Calibrações", Category: RowCategoryCalibration, BuiltIn: true},
		{ID: RowAbsences, Label: "Férias e Feriados", Category: RowCategoryAbsence, BuiltIn: true},
	}
}

// DefaultLabel returns the placeholder label for a newly created row.
func DefaultLabel(id string) string {
	return "Linha " + id
}

// RowIDAllocator hands out row ids for one session. Efficiency rows count
// up from "1"; safety rows advance letter sequences ("A".."Z", then "AA").
// The marks only move forward: deleting a row never returns its id to the
// pool, so an id is assigned at most once per session.
type RowIDAllocator struct {
	maxEfficiency int
	maxSafety     string
}

// Seed raises the allocator's marks to cover every id already assigned.
func (a *RowIDAllocator) Seed(rows []*Row) {
	for _, r := range rows {
		switch r.Category {
		case RowCategoryEfficiency:
			if n, err := strconv.Atoi(r.ID); err == nil && n > a.maxEfficiency {
				a.maxEfficiency = n
			}
		case RowCategorySafety:
			if letterLess(a.maxSafety, r.ID) {
				a.maxSafety = r.ID
			}
		}
	}
}

// Next allocates the next id in the category's sequence.
func (a *RowIDAllocator) Next(category RowCategory) (string, error) {
	switch category {
	case RowCategoryEfficiency:
		a.maxEfficiency++
		return strconv.Itoa(a.maxEfficiency), nil
	case RowCategorySafety:
		if a.maxSafety == "" {
			a.maxSafety = "A"
		} else {
			a.maxSafety = nextLetterID(a.maxSafety)
		}
		return a.maxSafety, nil
	default:
		return "", fmt.Errorf("%w: rows of category %q are built in", ErrInvalidCategory, category)
	}
}

// letterLess orders letter ids: shorter strings first, then lexically.
func letterLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

// nextLetterID returns the letter id following s, spreadsheet-style:
// A..Z, AA, AB, ...
func nextLetterID(s string) string {
	id := []byte(s)
	for i := len(id) - 1; i >= 0; i-- {
		if id[i] < 'Z' {
			id[i]++
			return string(id)
		}
		id[i] = 'A'
	}
	return "A" + string(id)
}
