package matrix

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"

	"go.uber.org/zap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Load parses the matrix CSV at path. The file is expected to be UTF-8,
// optionally with a byte-order mark. Blank lines are skipped, headers
// and cells are trimmed, and rows whose course name is empty after
// trimming are dropped. On duplicate course names or outcome headers
// the first occurrence wins.
//
// A missing file yields an error satisfying errors.Is(err, ErrNotFound);
// a malformed file yields a *LoadError. logger may be nil.
func Load(path string, logger *zap.Logger) (*Matrix, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFoundAt(path)
		}
		return nil, &LoadError{Path: path, Err: err}
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	var header []string
	var body [][]string
	for _, rec := range records {
		if isBlank(rec) {
			continue
		}
		if header == nil {
			header = rec
			continue
		}
		body = append(body, rec)
	}
	if header == nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("no header row")}
	}

	// First column identifies the course; the remaining non-empty
	// headers are outcome columns. Duplicate outcome headers keep the
	// first column of that name.
	nameCol := clean(header[0])
	var outcomes []string
	var colIdx []int
	seen := make(map[string]bool)
	for j := 1; j < len(header); j++ {
		name := clean(header[j])
		if name == "" {
			continue
		}
		if seen[name] {
			logger.Warn("duplicate outcome column dropped",
				zap.String("path", path), zap.String("outcome", name))
			continue
		}
		seen[name] = true
		outcomes = append(outcomes, name)
		colIdx = append(colIdx, j)
	}

	m := &Matrix{
		path:     path,
		nameCol:  nameCol,
		outcomes: outcomes,
		byCourse: make(map[string]int),
	}
	for _, rec := range body {
		course := clean(rec[0])
		if course == "" {
			continue
		}
		if _, dup := m.byCourse[course]; dup {
			logger.Warn("duplicate course row dropped",
				zap.String("path", path), zap.String("course", course))
			continue
		}
		cells := make([]string, len(colIdx))
		for i, j := range colIdx {
			if j < len(rec) {
				cells[i] = clean(rec[j])
			}
		}
		m.byCourse[course] = len(m.courses)
		m.courses = append(m.courses, course)
		m.cells = append(m.cells, cells)
	}

	logger.Debug("matrix loaded",
		zap.String("path", path),
		zap.Int("courses", len(m.courses)),
		zap.Int("outcomes", len(m.outcomes)))
	return m, nil
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if clean(f) != "" {
			return false
		}
	}
	return true
}
