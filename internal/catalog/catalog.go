// Package catalog resolves configured matrix versions to their data
// files and hands out loaded matrices through the shared accessor.
package catalog

import (
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"matrixlens/internal/config"
	"matrixlens/internal/matrix"
	"matrixlens/internal/program"
)

// ErrUnknownVersion marks a version name not present in the catalog.
var ErrUnknownVersion = errors.New("unknown matrix version")

// Version is one configured matrix version with resolved file paths.
type Version struct {
	Name        string
	MatrixPath  string
	ProgramPath string
}

// Stats summarizes one loaded version for the status surfaces.
type Stats struct {
	Courses  int
	Outcomes int
}

// Catalog is the registry of matrix versions.
type Catalog struct {
	versions []Version
	defName  string
	acc      *matrix.Accessor
	logger   *zap.Logger
}

// New builds a catalog from the config, resolving version file paths
// against the data dir. logger may be nil.
func New(cfg *config.Config, acc *matrix.Accessor, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Catalog{
		defName: cfg.DefaultVersion,
		acc:     acc,
		logger:  logger,
	}
	for _, v := range cfg.Versions {
		version := Version{
			Name:       v.Name,
			MatrixPath: resolve(cfg.DataDir, v.Matrix),
		}
		if v.Program != "" {
			version.ProgramPath = resolve(cfg.DataDir, v.Program)
		}
		c.versions = append(c.versions, version)
	}
	return c
}

func resolve(dataDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dataDir, path)
}

// Versions returns all versions in declared order.
func (c *Catalog) Versions() []Version {
	out := make([]Version, len(c.versions))
	copy(out, c.versions)
	return out
}

// DefaultVersion returns the name of the version used when none is
// selected.
func (c *Catalog) DefaultVersion() string { return c.defName }

// Resolve finds a version by name; the empty name means the default.
func (c *Catalog) Resolve(name string) (Version, error) {
	if name == "" {
		name = c.defName
	}
	for _, v := range c.versions {
		if v.Name == name {
			return v, nil
		}
	}
	return Version{}, fmt.Errorf("%w: %q", ErrUnknownVersion, name)
}

// Matrix loads (or returns the cached) matrix for the named version.
func (c *Catalog) Matrix(name string) (*matrix.Matrix, error) {
	v, err := c.Resolve(name)
	if err != nil {
		return nil, err
	}
	return c.acc.Get(v.MatrixPath)
}

// Indicators loads the indicator descriptions for the named version.
// Any failure degrades to an empty map with a logged warning: the
// descriptions enrich results, they never block a query.
func (c *Catalog) Indicators(name string) program.IndicatorMap {
	v, err := c.Resolve(name)
	if err != nil || v.ProgramPath == "" {
		return program.IndicatorMap{}
	}
	m, err := program.LoadIndicators(v.ProgramPath)
	if err != nil {
		c.logger.Warn("indicator descriptions unavailable",
			zap.String("version", name), zap.Error(err))
		return program.IndicatorMap{}
	}
	return m
}

// Stats loads the named version and reports its dimensions.
func (c *Catalog) Stats(name string) (Stats, error) {
	m, err := c.Matrix(name)
	if err != nil {
		return Stats{}, err
	}
	return Stats{Courses: m.Len(), Outcomes: len(m.Outcomes())}, nil
}

// Accessor exposes the shared matrix accessor for callers that load
// several versions at once.
func (c *Catalog) Accessor() *matrix.Accessor { return c.acc }

// MatrixPaths returns the matrix file of every version, for watching.
func (c *Catalog) MatrixPaths() []string {
	paths := make([]string, len(c.versions))
	for i, v := range c.versions {
		paths[i] = v.MatrixPath
	}
	return paths
}
