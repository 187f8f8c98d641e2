package compare

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matrixlens/internal/matrix"
)

func load(t *testing.T, name, content string) *matrix.Matrix {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	m, err := matrix.Load(path, nil)
	require.NoError(t, err)
	return m
}

func TestCourseDiff(t *testing.T) {
	oldM := load(t, "old.csv", "name,O1,O2,O3,O4\nCourseA,H,M,,L\n")
	newM := load(t, "new.csv", "name,O1,O2,O3,O4\nCourseA,H,L,M,\n")

	r := Course(oldM, newM, "CourseA")
	assert.True(t, r.InOld)
	assert.True(t, r.InNew)
	assert.False(t, r.Identical())

	want := []Entry{
		{Outcome: "O1", Old: "H", New: "H", Change: Kept},
		{Outcome: "O2", Old: "M", New: "L", Change: Changed},
		{Outcome: "O3", Old: "", New: "M", Change: Added},
		{Outcome: "O4", Old: "L", New: "", Change: Removed},
	}
	if diff := cmp.Diff(want, r.Changes); diff != "" {
		t.Errorf("changes mismatch (-want +got):\n%s", diff)
	}
}

func TestCourseMissingFromOneVersion(t *testing.T) {
	oldM := load(t, "old.csv", "name,O1\nOldOnly,H\n")
	newM := load(t, "new.csv", "name,O1\nNewOnly,M\n")

	r := Course(oldM, newM, "OldOnly")
	assert.True(t, r.InOld)
	assert.False(t, r.InNew)
	assert.Empty(t, r.Changes)
	assert.False(t, r.Identical())
}

func TestCourseIdentical(t *testing.T) {
	oldM := load(t, "old.csv", "name,O1\nCourseA,H\n")
	newM := load(t, "new.csv", "name,O1\nCourseA,H\n")
	assert.True(t, Course(oldM, newM, "CourseA").Identical())
}

func TestAllCourses(t *testing.T) {
	oldM := load(t, "old.csv", "name,O1\nB,H\nA,M\n")
	newM := load(t, "new.csv", "name,O1\nC,L\nB,H\n")
	assert.Equal(t, []string{"A", "B", "C"}, AllCourses(oldM, newM))
}

func TestLoadPair(t *testing.T) {
	dir := t.TempDir()
	oldPath := filepath.Join(dir, "old.csv")
	newPath := filepath.Join(dir, "new.csv")
	require.NoError(t, os.WriteFile(oldPath, []byte("name,O1\nA,H\n"), 0o644))
	require.NoError(t, os.WriteFile(newPath, []byte("name,O1\nA,M\n"), 0o644))

	acc := matrix.NewAccessor(nil)
	oldM, newM, err := LoadPair(acc, oldPath, newPath)
	require.NoError(t, err)
	assert.Equal(t, 1, oldM.Len())
	assert.Equal(t, 1, newM.Len())
}

func TestLoadPairPropagatesError(t *testing.T) {
	dir := t.TempDir()
	oldPath := filepath.Join(dir, "old.csv")
	require.NoError(t, os.WriteFile(oldPath, []byte("name,O1\nA,H\n"), 0o644))

	acc := matrix.NewAccessor(nil)
	_, _, err := LoadPair(acc, oldPath, filepath.Join(dir, "missing.csv"))
	assert.ErrorIs(t, err, matrix.ErrNotFound)
}
