package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T) *Matrix {
	t.Helper()
	m, err := Load(writeMatrix(t, "name,O1,O2,O3\nCourseA,H,,M\nCourseB,,L,\n"), nil)
	require.NoError(t, err)
	return m
}

func TestQueryByCourses(t *testing.T) {
	m := loadFixture(t)

	result := m.QueryByCourses([]string{"CourseA"})
	require.Len(t, result, 1)
	assert.Equal(t, []Relation{
		{Outcome: "O1", Strength: High},
		{Outcome: "O3", Strength: Medium},
	}, result["CourseA"])
}

func TestQueryByCoursesUnknownName(t *testing.T) {
	m := loadFixture(t)

	result := m.QueryByCourses([]string{"NoSuchCourse", "CourseB"})
	require.Len(t, result, 1)
	assert.NotContains(t, result, "NoSuchCourse")
	assert.Equal(t, []Relation{{Outcome: "O2", Strength: Low}}, result["CourseB"])
}

func TestQueryByCoursesNoRelations(t *testing.T) {
	m, err := Load(writeMatrix(t, "name,O1\nLonely,\n"), nil)
	require.NoError(t, err)

	result := m.QueryByCourses([]string{"Lonely"})
	require.Contains(t, result, "Lonely")
	assert.NotNil(t, result["Lonely"])
	assert.Empty(t, result["Lonely"])
}

func TestQueryByOutcome(t *testing.T) {
	m := loadFixture(t)

	supports, err := m.QueryByOutcome("O2")
	require.NoError(t, err)
	assert.Equal(t, []Support{{Course: "CourseB", Strength: Low}}, supports)

	supports, err = m.QueryByOutcome("O1")
	require.NoError(t, err)
	assert.Equal(t, []Support{{Course: "CourseA", Strength: High}}, supports)
}

func TestQueryByOutcomeSortOrder(t *testing.T) {
	content := "name,O1\n" +
		"C1,L\nC2,X\nC3,H\nC4,M\nC5,H\nC6,??\n"
	m, err := Load(writeMatrix(t, content), nil)
	require.NoError(t, err)

	supports, err := m.QueryByOutcome("O1")
	require.NoError(t, err)

	got := make([]string, len(supports))
	for i, s := range supports {
		got[i] = s.Course
	}
	// H first (row order within H), then M, L, unranked in row order.
	assert.Equal(t, []string{"C3", "C5", "C4", "C1", "C2", "C6"}, got)
	// Unranked values keep their original text.
	assert.Equal(t, Strength("X"), supports[4].Strength)
}

func TestQueryByOutcomeUnknownColumn(t *testing.T) {
	m := loadFixture(t)
	_, err := m.QueryByOutcome("O99")
	assert.ErrorIs(t, err, ErrUnknownOutcome)
}

func TestQueryByOutcomeEmptyResult(t *testing.T) {
	m, err := Load(writeMatrix(t, "name,O1,O2\nCourseA,H,\n"), nil)
	require.NoError(t, err)

	supports, err := m.QueryByOutcome("O2")
	require.NoError(t, err)
	assert.Empty(t, supports)
}

func TestStrengthRank(t *testing.T) {
	assert.Equal(t, 0, High.Rank())
	assert.Equal(t, 1, Medium.Rank())
	assert.Equal(t, 2, Low.Rank())
	assert.Equal(t, 3, Strength("whatever").Rank())
	assert.False(t, Strength("whatever").Ranked())
}

func TestStrengthAttrs(t *testing.T) {
	assert.Equal(t, "#d9534f", High.Attr().Color)
	assert.Equal(t, "#f0ad4e", Medium.Attr().Color)
	assert.Equal(t, "#5bc0de", Low.Attr().Color)
	assert.Equal(t, Attr{}, Strength("X").Attr())
}
