package web

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"

	"matrixlens/internal/compare"
	"matrixlens/internal/export"
	"matrixlens/internal/matrix"
)

// strengthCell carries a cell value plus its display attribute for the
// templates.
type strengthCell struct {
	Text  string
	Color string
	Bold  bool
}

func cellView(text string) strengthCell {
	attr := matrix.Strength(text).Attr()
	return strengthCell{Text: text, Color: attr.Color, Bold: attr.Bold}
}

// relationView is one course→outcome row with its description.
type relationView struct {
	Outcome     string
	Strength    strengthCell
	Description string
}

// loadMatrix resolves the selected version and loads its matrix,
// translating load failures into the states the error page renders: a
// missing file is the persistent "data not loaded" warning with the
// expected path, a parse failure surfaces its message.
func (s *Server) loadMatrix(c fiber.Ctx) (*matrix.Matrix, string, error) {
	version := c.Query("v")
	v, err := s.cat.Resolve(version)
	if err != nil {
		return nil, "", fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	m, err := s.cat.Matrix(v.Name)
	if err != nil {
		if errors.Is(err, matrix.ErrNotFound) {
			return nil, "", fiber.NewError(fiber.StatusServiceUnavailable,
				fmt.Sprintf("Data not loaded: expected matrix file at %s", v.MatrixPath))
		}
		return nil, "", fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return m, v.Name, nil
}

func (s *Server) versionNames() []string {
	var names []string
	for _, v := range s.cat.Versions() {
		names = append(names, v.Name)
	}
	return names
}

// splitNames parses the comma-separated course selection the lookup
// form submits.
func splitNames(raw string) []string {
	var names []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}
	return names
}

// Browse renders the full matrix, unmodified.
func (s *Server) Browse(c fiber.Ctx) error {
	m, version, err := s.loadMatrix(c)
	if err != nil {
		return err
	}
	queriesTotal.WithLabelValues("browse", version).Inc()

	rows := make([][]strengthCell, 0, m.Len())
	for _, row := range m.Rows() {
		cells := make([]strengthCell, len(row))
		cells[0] = strengthCell{Text: row[0]}
		for i := 1; i < len(row); i++ {
			cells[i] = cellView(row[i])
		}
		rows = append(rows, cells)
	}

	return c.Render("index", fiber.Map{
		"Title":    "完整关联矩阵",
		"Version":  version,
		"Versions": s.versionNames(),
		"Headers":  m.Headers(),
		"Rows":     rows,
		"Courses":  m.Len(),
		"Outcomes": len(m.Outcomes()),
	})
}

// CoursePage renders course → outcomes lookups. Unmatched names get a
// "no relations" notice, never an error.
func (s *Server) CoursePage(c fiber.Ctx) error {
	m, version, err := s.loadMatrix(c)
	if err != nil {
		return err
	}

	names := splitNames(c.Query("name"))
	indicators := s.cat.Indicators(version)

	type courseResult struct {
		Course    string
		Found     bool
		Relations []relationView
	}
	var results []courseResult
	if len(names) > 0 {
		queriesTotal.WithLabelValues("course", version).Inc()
		matched := m.QueryByCourses(names)
		for _, name := range names {
			relations, ok := matched[name]
			result := courseResult{Course: name, Found: ok}
			for _, rel := range relations {
				result.Relations = append(result.Relations, relationView{
					Outcome:     rel.Outcome,
					Strength:    cellView(string(rel.Strength)),
					Description: indicators.Describe(rel.Outcome),
				})
			}
			results = append(results, result)
		}
	}

	return c.Render("course", fiber.Map{
		"Title":      "课程 → 毕业要求",
		"Version":    version,
		"Versions":   s.versionNames(),
		"AllCourses": m.Courses(),
		"Selected":   strings.Join(names, ","),
		"Results":    results,
	})
}

// OutcomePage renders outcome → supporting courses, strength-sorted.
func (s *Server) OutcomePage(c fiber.Ctx) error {
	m, version, err := s.loadMatrix(c)
	if err != nil {
		return err
	}

	name := strings.TrimSpace(c.Query("name"))
	var supports []matrix.Support
	if name != "" {
		queriesTotal.WithLabelValues("outcome", version).Inc()
		supports, err = m.QueryByOutcome(name)
		if err != nil {
			// Forms only offer names from the matrix itself, so an
			// unknown name is a bad request, not a crash.
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}

	type supportView struct {
		Course   string
		Strength strengthCell
	}
	views := make([]supportView, 0, len(supports))
	for _, sup := range supports {
		views = append(views, supportView{
			Course:   sup.Course,
			Strength: cellView(string(sup.Strength)),
		})
	}

	return c.Render("outcome", fiber.Map{
		"Title":       "毕业要求 → 支撑课程",
		"Version":     version,
		"Versions":    s.versionNames(),
		"AllOutcomes": m.Outcomes(),
		"Selected":    name,
		"Supports":    views,
		"Queried":     name != "",
	})
}

// ComparePage diffs one course across two versions.
func (s *Server) ComparePage(c fiber.Ctx) error {
	oldName, newName := s.comparePair(c)
	oldV, err := s.cat.Resolve(oldName)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	newV, err := s.cat.Resolve(newName)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	oldM, err := s.cat.Matrix(oldV.Name)
	if err != nil {
		return compareUnavailable(oldV.MatrixPath)
	}
	newM, err := s.cat.Matrix(newV.Name)
	if err != nil {
		return compareUnavailable(newV.MatrixPath)
	}

	course := strings.TrimSpace(c.Query("course"))
	data := fiber.Map{
		"Title":      "课程支撑度跨版本对比",
		"Versions":   s.versionNames(),
		"OldVersion": oldV.Name,
		"NewVersion": newV.Name,
		"AllCourses": compare.AllCourses(oldM, newM),
		"Selected":   course,
	}
	if course != "" {
		queriesTotal.WithLabelValues("compare", newV.Name).Inc()
		result := compare.Course(oldM, newM, course)
		data["Result"] = compareView(result)
	}
	return c.Render("compare", data)
}

func compareUnavailable(path string) error {
	return fiber.NewError(fiber.StatusServiceUnavailable,
		fmt.Sprintf("Comparison unavailable: missing matrix file at %s", path))
}

// comparePair picks the old/new versions, defaulting to the last and
// first configured versions (the original compared 2019 against 2023).
func (s *Server) comparePair(c fiber.Ctx) (string, string) {
	versions := s.cat.Versions()
	oldName := c.Query("from")
	newName := c.Query("to")
	if newName == "" {
		newName = versions[0].Name
	}
	if oldName == "" {
		oldName = versions[len(versions)-1].Name
	}
	return oldName, newName
}

type compareEntryView struct {
	Outcome string
	Old     strengthCell
	New     strengthCell
	Status  string
	Color   string
}

type compareResultView struct {
	Course    string
	InOld     bool
	InNew     bool
	Identical bool
	Entries   []compareEntryView
}

func compareView(r compare.Result) compareResultView {
	view := compareResultView{
		Course:    r.Course,
		InOld:     r.InOld,
		InNew:     r.InNew,
		Identical: r.Identical(),
	}
	statusLabels := map[compare.Change]string{
		compare.Kept:    "保持",
		compare.Added:   "新增",
		compare.Removed: "移除",
		compare.Changed: "变更",
	}
	for _, e := range r.Changes {
		entry := compareEntryView{
			Outcome: e.Outcome,
			Old:     cellView(e.Old),
			New:     cellView(e.New),
			Status:  statusLabels[e.Change],
		}
		switch e.Change {
		case compare.Added:
			entry.Color = "#198754"
		case compare.Removed:
			entry.Color = "#dc3545"
		case compare.Changed:
			entry.Color = "#fd7e14"
		}
		view.Entries = append(view.Entries, entry)
	}
	return view
}

// ExportCourse streams one course's relations as a downloadable CSV.
func (s *Server) ExportCourse(c fiber.Ctx) error {
	m, version, err := s.loadMatrix(c)
	if err != nil {
		return err
	}
	name := strings.TrimSpace(c.Query("name"))
	relations, ok := m.QueryByCourses([]string{name})[name]
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "course not found")
	}
	indicators := s.cat.Indicators(version)

	rows := make([][]string, 0, len(relations))
	for _, rel := range relations {
		rows = append(rows, []string{rel.Outcome, string(rel.Strength), indicators.Describe(rel.Outcome)})
	}
	return s.sendCSV(c, fmt.Sprintf("%s_指标点明细_%s.csv", name, version),
		[]string{"指标点", "支撑强度", "指标点描述"}, rows)
}

// ExportOutcome streams one outcome's supporting courses as CSV.
func (s *Server) ExportOutcome(c fiber.Ctx) error {
	m, _, err := s.loadMatrix(c)
	if err != nil {
		return err
	}
	name := strings.TrimSpace(c.Query("name"))
	supports, err := m.QueryByOutcome(name)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	rows := make([][]string, 0, len(supports))
	for _, sup := range supports {
		rows = append(rows, []string{sup.Course, string(sup.Strength)})
	}
	return s.sendCSV(c, fmt.Sprintf("%s_支撑课程.csv", name),
		[]string{"课程名称", "支撑强度"}, rows)
}

func (s *Server) sendCSV(c fiber.Ctx, filename string, headers []string, rows [][]string) error {
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return export.Write(c.Response().BodyWriter(), headers, rows)
}
