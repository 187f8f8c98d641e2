// Package program parses the training-program YAML that accompanies a
// matrix version and exposes the outcome indicator descriptions.
package program

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// IndicatorMap maps an outcome indicator id to its description text.
type IndicatorMap map[string]string

// Describe returns the description for an indicator id, or "" when the
// program file carries none. Renderers show a muted placeholder for "".
func (m IndicatorMap) Describe(id string) string {
	return m[id]
}

// indicatorID tolerates ids written as numbers in hand-authored YAML.
type indicatorID string

func (id *indicatorID) UnmarshalYAML(value *yaml.Node) error {
	*id = indicatorID(strings.TrimSpace(value.Value))
	return nil
}

type indicator struct {
	ID      indicatorID `yaml:"id"`
	Content string      `yaml:"content"`
}

type requirement struct {
	Indicators []indicator `yaml:"indicators"`
}

type document struct {
	GraduationRequirements []requirement `yaml:"graduation_requirements"`
}

// LoadIndicators reads the program YAML at path and flattens all
// graduation-requirement indicators into an id -> content map. A
// missing file is not an error: descriptions are an enrichment, the
// matrix works without them.
func LoadIndicators(path string) (IndicatorMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return IndicatorMap{}, nil
		}
		return nil, fmt.Errorf("reading program file %s: %w", path, err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing program file %s: %w", path, err)
	}

	m := make(IndicatorMap)
	for _, req := range doc.GraduationRequirements {
		for _, ind := range req.Indicators {
			id := string(ind.ID)
			if id == "" {
				continue
			}
			m[id] = ind.Content
		}
	}
	return m, nil
}
