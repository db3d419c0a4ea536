package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"chargehub/internal/models"
)

// Data is the optional starting state supplied at construction time.
type Data struct {
	Active  *models.ActiveSession  `yaml:"active"`
	History []models.HistoryRecord `yaml:"history"`
}

// Load reads seed state from a YAML file. An empty path yields empty state.
func Load(path string) (*Data, error) {
	if path == "" {
		return &Data{}, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: read %s: %w", path, err)
	}

	var data Data
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("seed: decode %s: %w", path, err)
	}
	return &data, nil
}
