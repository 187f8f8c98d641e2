package web

import (
	"errors"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v3"

	"matrixlens/internal/compare"
	"matrixlens/internal/matrix"
)

// jsonSuccess returns a 200 response with data wrapped in the standard
// envelope.
func jsonSuccess(c fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"data":   data,
	})
}

// jsonError returns an error response with the given HTTP status code.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "error",
		"error":  message,
	})
}

// apiMatrix loads the selected version's matrix for an API handler.
func (s *Server) apiMatrix(c fiber.Ctx) (*matrix.Matrix, string, bool, error) {
	version := c.Query("v")
	v, err := s.cat.Resolve(version)
	if err != nil {
		return nil, "", false, jsonError(c, fiber.StatusBadRequest, err.Error())
	}
	m, err := s.cat.Matrix(v.Name)
	if err != nil {
		if errors.Is(err, matrix.ErrNotFound) {
			return nil, "", false, jsonError(c, fiber.StatusServiceUnavailable,
				"data not loaded: "+v.MatrixPath)
		}
		return nil, "", false, jsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return m, v.Name, true, nil
}

type versionInfo struct {
	Name     string `json:"name"`
	Default  bool   `json:"default"`
	Courses  int    `json:"courses,omitempty"`
	Outcomes int    `json:"outcomes,omitempty"`
	Loaded   bool   `json:"loaded"`
}

func (s *Server) apiVersions(c fiber.Ctx) error {
	var infos []versionInfo
	for _, v := range s.cat.Versions() {
		info := versionInfo{
			Name:    v.Name,
			Default: v.Name == s.cat.DefaultVersion(),
		}
		if stats, err := s.cat.Stats(v.Name); err == nil {
			info.Loaded = true
			info.Courses = stats.Courses
			info.Outcomes = stats.Outcomes
		}
		infos = append(infos, info)
	}
	return jsonSuccess(c, infos)
}

func (s *Server) apiCourses(c fiber.Ctx) error {
	m, _, ok, err := s.apiMatrix(c)
	if !ok {
		return err
	}
	return jsonSuccess(c, m.Courses())
}

func (s *Server) apiOutcomes(c fiber.Ctx) error {
	m, _, ok, err := s.apiMatrix(c)
	if !ok {
		return err
	}
	return jsonSuccess(c, m.Outcomes())
}

type relationJSON struct {
	Outcome     string `json:"outcome"`
	Strength    string `json:"strength"`
	Description string `json:"description,omitempty"`
}

func (s *Server) apiCourse(c fiber.Ctx) error {
	m, version, ok, err := s.apiMatrix(c)
	if !ok {
		return err
	}
	name, err := urlParam(c, "name")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid course name")
	}

	relations, found := m.QueryByCourses([]string{name})[name]
	if !found {
		return jsonError(c, fiber.StatusNotFound, "course not found")
	}
	queriesTotal.WithLabelValues("course", version).Inc()

	indicators := s.cat.Indicators(version)
	out := make([]relationJSON, 0, len(relations))
	for _, rel := range relations {
		out = append(out, relationJSON{
			Outcome:     rel.Outcome,
			Strength:    string(rel.Strength),
			Description: indicators.Describe(rel.Outcome),
		})
	}
	return jsonSuccess(c, fiber.Map{
		"course":    name,
		"relations": out,
	})
}

type supportJSON struct {
	Course   string `json:"course"`
	Strength string `json:"strength"`
}

func (s *Server) apiOutcome(c fiber.Ctx) error {
	m, version, ok, err := s.apiMatrix(c)
	if !ok {
		return err
	}
	name, err := urlParam(c, "name")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid outcome name")
	}

	supports, err := m.QueryByOutcome(name)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}
	queriesTotal.WithLabelValues("outcome", version).Inc()

	out := make([]supportJSON, 0, len(supports))
	for _, sup := range supports {
		out = append(out, supportJSON{Course: sup.Course, Strength: string(sup.Strength)})
	}
	return jsonSuccess(c, fiber.Map{
		"outcome":  name,
		"supports": out,
	})
}

func (s *Server) apiCompare(c fiber.Ctx) error {
	course, err := urlParam(c, "course")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid course name")
	}

	oldName, newName := s.comparePair(c)
	oldV, err := s.cat.Resolve(oldName)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}
	newV, err := s.cat.Resolve(newName)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	oldM, newM, err := compare.LoadPair(s.cat.Accessor(), oldV.MatrixPath, newV.MatrixPath)
	if err != nil {
		return jsonError(c, fiber.StatusServiceUnavailable, err.Error())
	}
	queriesTotal.WithLabelValues("compare", newV.Name).Inc()

	result := compare.Course(oldM, newM, course)
	type entryJSON struct {
		Outcome string `json:"outcome"`
		Old     string `json:"old"`
		New     string `json:"new"`
		Change  string `json:"change"`
	}
	entries := make([]entryJSON, 0, len(result.Changes))
	for _, e := range result.Changes {
		entries = append(entries, entryJSON{
			Outcome: e.Outcome, Old: e.Old, New: e.New, Change: e.Change.String(),
		})
	}
	return jsonSuccess(c, fiber.Map{
		"course":    result.Course,
		"from":      oldV.Name,
		"to":        newV.Name,
		"inOld":     result.InOld,
		"inNew":     result.InNew,
		"identical": result.Identical(),
		"changes":   entries,
	})
}

// urlParam decodes a path parameter; course and outcome names contain
// non-ASCII characters and arrive percent-encoded.
func urlParam(c fiber.Ctx, key string) (string, error) {
	decoded, err := url.PathUnescape(c.Params(key))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(decoded), nil
}
