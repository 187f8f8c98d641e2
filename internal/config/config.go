// Package config loads the matrixlens configuration file. All settings
// have defaults matching the original dataset layout, so the tool runs
// without any config file at all.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all matrixlens configuration.
type Config struct {
	// DataDir is the directory holding matrix CSVs and program YAMLs.
	DataDir string `yaml:"data_dir"`

	// DefaultVersion names the version used when none is selected.
	DefaultVersion string `yaml:"default_version"`

	// Versions lists the available matrix versions in display order.
	Versions []VersionConfig `yaml:"versions"`

	// Serve configures the web surface.
	Serve ServeConfig `yaml:"serve"`
}

// VersionConfig describes one matrix version: a CSV and its optional
// program YAML, both relative to DataDir unless absolute.
type VersionConfig struct {
	Name    string `yaml:"name"`
	Matrix  string `yaml:"matrix"`
	Program string `yaml:"program,omitempty"`
}

// ServeConfig configures the web server.
type ServeConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the built-in configuration: the two program versions
// the original dataset ships.
func Default() *Config {
	return &Config{
		DataDir:        "data",
		DefaultVersion: "2023",
		Versions: []VersionConfig{
			{Name: "2023", Matrix: "matrix_2023.csv", Program: "2023_program.yaml"},
			{Name: "2019", Matrix: "matrix_2019.csv", Program: "2019_program.yaml"},
		},
		Serve: ServeConfig{Addr: ":8750"},
	}
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "matrixlens", "config.yaml")
	}
	return "matrixlens.yaml"
}

// Load reads the config at path, filling unset fields from Default. A
// missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.DataDir == "" {
		cfg.DataDir = Default().DataDir
	}
	if len(cfg.Versions) == 0 {
		cfg.Versions = Default().Versions
	}
	if cfg.DefaultVersion == "" {
		cfg.DefaultVersion = cfg.Versions[0].Name
	}
	if cfg.Serve.Addr == "" {
		cfg.Serve.Addr = Default().Serve.Addr
	}
	return &cfg, nil
}
