package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matrixlens/internal/catalog"
	"matrixlens/internal/config"
	"matrixlens/internal/matrix"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.csv"),
		[]byte("课程名称,1.1,1.2,2.1\nCourseA,H,,M\nCourseB,,L,\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "old.csv"),
		[]byte("课程名称,1.1,1.2,2.1\nCourseA,M,,M\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "program.yaml"),
		[]byte("graduation_requirements:\n  - indicators:\n      - id: \"1.1\"\n        content: 学科基础\n"), 0o644))

	cfg := &config.Config{
		DataDir:        dir,
		DefaultVersion: "2023",
		Versions: []config.VersionConfig{
			{Name: "2023", Matrix: "new.csv", Program: "program.yaml"},
			{Name: "2019", Matrix: "old.csv"},
		},
		Serve: config.ServeConfig{Addr: ":0"},
	}
	cat := catalog.New(cfg, matrix.NewAccessor(nil), nil)
	return New(cfg, cat, nil)
}

func get(t *testing.T, s *Server, path string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest("GET", path, nil)
	require.NoError(t, err)
	resp, err := s.App.Test(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestBrowsePage(t *testing.T) {
	s := testServer(t)
	resp, body := get(t, s, "/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "CourseA")
	assert.Contains(t, body, "1.2")
	// Strength cells carry the fixed display colors.
	assert.Contains(t, body, "#d9534f")
}

func TestCoursePage(t *testing.T) {
	s := testServer(t)
	resp, body := get(t, s, "/course?name="+url.QueryEscape("CourseA"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "学科基础")
	assert.Contains(t, body, "2.1")
	assert.NotContains(t, body, "1.2</td>")
}

func TestOutcomePageUnknownName(t *testing.T) {
	s := testServer(t)
	resp, _ := get(t, s, "/outcome?name=9.9")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMissingMatrixRendersDataNotLoaded(t *testing.T) {
	s := testServer(t)
	require.NoError(t, os.Remove(filepath.Join(s.cfg.DataDir, "new.csv")))
	s.cat.Accessor().Invalidate(filepath.Join(s.cfg.DataDir, "new.csv"))

	resp, body := get(t, s, "/")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, body, "Data not loaded")
	assert.Contains(t, body, "new.csv")
}

func TestAPIVersions(t *testing.T) {
	s := testServer(t)
	resp, body := get(t, s, "/api/v1/versions")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope struct {
		Status string `json:"status"`
		Data   []struct {
			Name     string `json:"name"`
			Default  bool   `json:"default"`
			Courses  int    `json:"courses"`
			Outcomes int    `json:"outcomes"`
			Loaded   bool   `json:"loaded"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &envelope))
	assert.Equal(t, "ok", envelope.Status)
	require.Len(t, envelope.Data, 2)
	assert.True(t, envelope.Data[0].Default)
	assert.Equal(t, 2, envelope.Data[0].Courses)
	assert.Equal(t, 3, envelope.Data[0].Outcomes)
}

func TestAPICourse(t *testing.T) {
	s := testServer(t)
	resp, body := get(t, s, "/api/v1/course/CourseA")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope struct {
		Status string `json:"status"`
		Data   struct {
			Course    string `json:"course"`
			Relations []struct {
				Outcome     string `json:"outcome"`
				Strength    string `json:"strength"`
				Description string `json:"description"`
			} `json:"relations"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &envelope))
	require.Len(t, envelope.Data.Relations, 2)
	assert.Equal(t, "1.1", envelope.Data.Relations[0].Outcome)
	assert.Equal(t, "H", envelope.Data.Relations[0].Strength)
	assert.Equal(t, "学科基础", envelope.Data.Relations[0].Description)
	assert.Equal(t, "2.1", envelope.Data.Relations[1].Outcome)
}

func TestAPICourseNotFound(t *testing.T) {
	s := testServer(t)
	resp, body := get(t, s, "/api/v1/course/Nope")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "error")
}

func TestAPIOutcomeSorted(t *testing.T) {
	s := testServer(t)
	resp, body := get(t, s, "/api/v1/outcome/1.2")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope struct {
		Data struct {
			Supports []supportJSON `json:"supports"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &envelope))
	require.Len(t, envelope.Data.Supports, 1)
	assert.Equal(t, "CourseB", envelope.Data.Supports[0].Course)
	assert.Equal(t, "L", envelope.Data.Supports[0].Strength)
}

func TestAPIOutcomeUnknown(t *testing.T) {
	s := testServer(t)
	resp, _ := get(t, s, "/api/v1/outcome/9.9")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPICompare(t *testing.T) {
	s := testServer(t)
	resp, body := get(t, s, "/api/v1/compare/CourseA")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope struct {
		Data struct {
			From      string `json:"from"`
			To        string `json:"to"`
			Identical bool   `json:"identical"`
			Changes   []struct {
				Outcome string `json:"outcome"`
				Change  string `json:"change"`
			} `json:"changes"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &envelope))
	assert.Equal(t, "2019", envelope.Data.From)
	assert.Equal(t, "2023", envelope.Data.To)
	assert.False(t, envelope.Data.Identical)
	// 1.1 went M -> H.
	require.NotEmpty(t, envelope.Data.Changes)
	assert.Equal(t, "1.1", envelope.Data.Changes[0].Outcome)
	assert.Equal(t, "changed", envelope.Data.Changes[0].Change)
}

func TestExportCourseCSV(t *testing.T) {
	s := testServer(t)
	resp, body := get(t, s, "/export/course?name=CourseA")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(body, "\xEF\xBB\xBF"))
	assert.Contains(t, body, "指标点,支撑强度")
	assert.Contains(t, body, "1.1,H")
}

func TestMetricsEndpoint(t *testing.T) {
	s := testServer(t)
	// Serve a query first so the counter exists.
	get(t, s, "/api/v1/course/CourseA")

	resp, body := get(t, s, "/metrics")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "matrixlens_queries_total")
}
