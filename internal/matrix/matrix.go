// Package matrix holds the course-to-outcome relation table and the
// queries over it. A Matrix is built once from a CSV file and is
// immutable afterwards, so it is safe to share across readers.
package matrix

import "strings"

// Strength is the ordinal relation strength of one cell. The three
// ranked codes are H, M and L; any other non-empty text is preserved
// verbatim and treated as a fourth, unranked bucket that sorts last.
type Strength string

const (
	High   Strength = "H"
	Medium Strength = "M"
	Low    Strength = "L"
)

// Rank returns the display order of the strength: H sorts first.
func (s Strength) Rank() int {
	switch s {
	case High:
		return 0
	case Medium:
		return 1
	case Low:
		return 2
	default:
		return 3
	}
}

// Ranked reports whether the value is one of the three known codes.
func (s Strength) Ranked() bool { return s.Rank() < 3 }

// Relation is one non-empty cell seen from the course side.
type Relation struct {
	Outcome  string
	Strength Strength
}

// Support is one non-empty cell seen from the outcome side.
type Support struct {
	Course   string
	Strength Strength
}

// Matrix is the parsed relation table. The first CSV column names the
// course, the remaining columns name outcomes. Cells hold "" or a
// strength code.
type Matrix struct {
	path     string
	nameCol  string
	outcomes []string
	courses  []string
	byCourse map[string]int
	cells    [][]string // [row][outcome], same order as courses/outcomes
}

// Path returns the file the matrix was loaded from.
func (m *Matrix) Path() string { return m.path }

// NameColumn returns the header of the identifying column.
func (m *Matrix) NameColumn() string { return m.nameCol }

// Courses returns the course names in source row order.
func (m *Matrix) Courses() []string {
	out := make([]string, len(m.courses))
	copy(out, m.courses)
	return out
}

// Outcomes returns the outcome column names in source column order.
func (m *Matrix) Outcomes() []string {
	out := make([]string, len(m.outcomes))
	copy(out, m.outcomes)
	return out
}

// HasCourse reports whether a course row exists. Matching is exact and
// case-sensitive on the trimmed name.
func (m *Matrix) HasCourse(name string) bool {
	_, ok := m.byCourse[name]
	return ok
}

// HasOutcome reports whether an outcome column exists.
func (m *Matrix) HasOutcome(name string) bool {
	return m.outcomeIndex(name) >= 0
}

// Len returns the number of course rows.
func (m *Matrix) Len() int { return len(m.courses) }

// Headers returns the full header row: name column plus outcomes.
func (m *Matrix) Headers() []string {
	out := make([]string, 0, len(m.outcomes)+1)
	out = append(out, m.nameCol)
	out = append(out, m.outcomes...)
	return out
}

// Rows returns every row including the course name, exactly as parsed.
// The full-browse view renders this without reformatting.
func (m *Matrix) Rows() [][]string {
	rows := make([][]string, len(m.courses))
	for i, course := range m.courses {
		row := make([]string, 0, len(m.outcomes)+1)
		row = append(row, course)
		row = append(row, m.cells[i]...)
		rows[i] = row
	}
	return rows
}

func (m *Matrix) outcomeIndex(name string) int {
	for i, o := range m.outcomes {
		if o == name {
			return i
		}
	}
	return -1
}

func clean(s string) string { return strings.TrimSpace(s) }
