// Package compare diffs one course's outcome support between two
// matrix versions.
package compare

import (
	"sort"

	"golang.org/x/sync/errgroup"

	"matrixlens/internal/matrix"
)

// Change classifies one outcome's movement between two versions.
type Change int

const (
	Kept Change = iota
	Added
	Removed
	Changed
)

func (c Change) String() string {
	switch c {
	case Kept:
		return "kept"
	case Added:
		return "added"
	case Removed:
		return "removed"
	case Changed:
		return "changed"
	default:
		return "unknown"
	}
}

// Entry is one outcome's strength in both versions.
type Entry struct {
	Outcome string
	Old     string // empty if absent in the old version
	New     string // empty if absent in the new version
	Change  Change
}

// Result is the full comparison for one course.
type Result struct {
	Course string
	InOld  bool
	InNew  bool
	Old    []matrix.Relation
	New    []matrix.Relation
	// Changes covers the union of supported outcomes, sorted by
	// outcome id. Empty when the course is missing from either side.
	Changes []Entry
}

// Identical reports whether the course's support is unchanged between
// the versions.
func (r Result) Identical() bool {
	for _, e := range r.Changes {
		if e.Change != Kept {
			return false
		}
	}
	return r.InOld && r.InNew
}

// Course diffs one course between the two matrices.
func Course(oldM, newM *matrix.Matrix, course string) Result {
	r := Result{
		Course: course,
		InOld:  oldM.HasCourse(course),
		InNew:  newM.HasCourse(course),
	}
	if r.InOld {
		r.Old = oldM.QueryByCourses([]string{course})[course]
	}
	if r.InNew {
		r.New = newM.QueryByCourses([]string{course})[course]
	}
	if !r.InOld || !r.InNew {
		return r
	}

	oldBy := byOutcome(r.Old)
	newBy := byOutcome(r.New)
	union := make(map[string]bool)
	for o := range oldBy {
		union[o] = true
	}
	for o := range newBy {
		union[o] = true
	}
	outcomes := make([]string, 0, len(union))
	for o := range union {
		outcomes = append(outcomes, o)
	}
	sort.Strings(outcomes)

	for _, o := range outcomes {
		e := Entry{Outcome: o, Old: oldBy[o], New: newBy[o]}
		switch {
		case e.Old == e.New:
			e.Change = Kept
		case e.Old == "":
			e.Change = Added
		case e.New == "":
			e.Change = Removed
		default:
			e.Change = Changed
		}
		r.Changes = append(r.Changes, e)
	}
	return r
}

// AllCourses returns the union of course names from both matrices,
// sorted, for pickers offering comparison targets.
func AllCourses(oldM, newM *matrix.Matrix) []string {
	union := make(map[string]bool)
	for _, c := range oldM.Courses() {
		union[c] = true
	}
	for _, c := range newM.Courses() {
		union[c] = true
	}
	out := make([]string, 0, len(union))
	for c := range union {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// LoadPair loads two versions concurrently through the accessor.
func LoadPair(acc *matrix.Accessor, oldPath, newPath string) (*matrix.Matrix, *matrix.Matrix, error) {
	var oldM, newM *matrix.Matrix
	var g errgroup.Group
	g.Go(func() error {
		var err error
		oldM, err = acc.Get(oldPath)
		return err
	})
	g.Go(func() error {
		var err error
		newM, err = acc.Get(newPath)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return oldM, newM, nil
}

func byOutcome(relations []matrix.Relation) map[string]string {
	m := make(map[string]string, len(relations))
	for _, rel := range relations {
		m[rel.Outcome] = string(rel.Strength)
	}
	return m
}
