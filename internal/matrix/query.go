package matrix

import (
	"fmt"
	"sort"
)

// QueryByCourses returns, for each matched course name, its non-empty
// cells in source column order. Names that match no row contribute no
// entry. A matched course with no relations maps to an empty, non-nil
// slice so callers can tell "no relations" from "no such course".
func (m *Matrix) QueryByCourses(names []string) map[string][]Relation {
	result := make(map[string][]Relation)
	for _, name := range names {
		row, ok := m.byCourse[name]
		if !ok {
			continue
		}
		relations := make([]Relation, 0)
		for i, cell := range m.cells[row] {
			if cell == "" {
				continue
			}
			relations = append(relations, Relation{
				Outcome:  m.outcomes[i],
				Strength: Strength(cell),
			})
		}
		result[name] = relations
	}
	return result
}

// QueryByOutcome returns the courses supporting the named outcome as
// (course, strength) pairs, stable-sorted H before M before L before
// unranked; ties keep source row order. An empty result is a valid "no
// supporting courses" answer. An outcome name not present in the matrix
// returns ErrUnknownOutcome.
func (m *Matrix) QueryByOutcome(name string) ([]Support, error) {
	col := m.outcomeIndex(name)
	if col < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOutcome, name)
	}
	var supports []Support
	for row, course := range m.courses {
		cell := m.cells[row][col]
		if cell == "" {
			continue
		}
		supports = append(supports, Support{
			Course:   course,
			Strength: Strength(cell),
		})
	}
	sort.SliceStable(supports, func(i, j int) bool {
		return supports[i].Strength.Rank() < supports[j].Strength.Rank()
	})
	return supports, nil
}
