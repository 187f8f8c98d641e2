package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matrixlens/internal/config"
	"matrixlens/internal/matrix"
)

func testCatalog(t *testing.T) (*Catalog, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "matrix_2023.csv"),
		[]byte("课程名称,1.1,1.2\n科学课程导论,H,M\n教育心理学,,L\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2023_program.yaml"),
		[]byte("graduation_requirements:\n  - indicators:\n      - id: \"1.1\"\n        content: 学科基础\n"), 0o644))

	cfg := &config.Config{
		DataDir:        dir,
		DefaultVersion: "2023",
		Versions: []config.VersionConfig{
			{Name: "2023", Matrix: "matrix_2023.csv", Program: "2023_program.yaml"},
			{Name: "2019", Matrix: "matrix_2019.csv"},
		},
	}
	return New(cfg, matrix.NewAccessor(nil), nil), dir
}

func TestResolve(t *testing.T) {
	c, dir := testCatalog(t)

	v, err := c.Resolve("2023")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "matrix_2023.csv"), v.MatrixPath)

	// Empty name resolves to the default version.
	v, err = c.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "2023", v.Name)

	_, err = c.Resolve("1997")
	assert.ErrorIs(t, err, ErrUnknownVersion)
}

func TestMatrixAndStats(t *testing.T) {
	c, _ := testCatalog(t)

	m, err := c.Matrix("2023")
	require.NoError(t, err)
	assert.Equal(t, []string{"科学课程导论", "教育心理学"}, m.Courses())

	stats, err := c.Stats("2023")
	require.NoError(t, err)
	assert.Equal(t, Stats{Courses: 2, Outcomes: 2}, stats)
}

func TestMatrixMissingFile(t *testing.T) {
	c, _ := testCatalog(t)
	// The 2019 CSV was never written.
	_, err := c.Matrix("2019")
	assert.ErrorIs(t, err, matrix.ErrNotFound)
}

func TestIndicatorsDegradeGracefully(t *testing.T) {
	c, _ := testCatalog(t)

	ind := c.Indicators("2023")
	assert.Equal(t, "学科基础", ind.Describe("1.1"))

	// No program file configured: empty map, no error.
	assert.Empty(t, c.Indicators("2019"))
	// Unknown version: same.
	assert.Empty(t, c.Indicators("1997"))
}
