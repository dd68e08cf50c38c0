package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/headsetlab/comfortscan/internal/issues"
	"github.com/headsetlab/comfortscan/internal/model"
)

// LoadTaxonomy reads an issue taxonomy from a YAML file, or returns the
// built-in taxonomy when path is empty. An empty taxonomy is a
// configuration error, not an analysis mode.
func LoadTaxonomy(path string) ([]model.IssueCategory, error) {
	if path == "" {
		return issues.DefaultTaxonomy(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy: %w", err)
	}
	var file struct {
		Categories []model.IssueCategory `yaml:"categories"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse taxonomy %s: %w", path, err)
	}
	if len(file.Categories) == 0 {
		return nil, fmt.Errorf("taxonomy %s: no categories defined", path)
	}
	return file.Categories, nil
}
