package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/riskspectre/internal/inventory"
)

// Config holds riskspectre configuration loaded from .riskspectre.yaml.
type Config struct {
	Input             string             `yaml:"input"`
	AllowList         string             `yaml:"allow_list"`
	Output            string             `yaml:"output"`
	ChartOutput       string             `yaml:"chart_output"`
	IncludeIdentifier bool               `yaml:"include_identifier"`
	DetailedChart     bool               `yaml:"detailed_chart"`
	Normalization     string             `yaml:"normalization"`
	Format            string             `yaml:"format"`
	Timeout           string             `yaml:"timeout"`
	Profile           string             `yaml:"profile"`
	Regions           []string           `yaml:"regions"`
	Project           string             `yaml:"project"`
	Columns           inventory.Columns  `yaml:"columns"`
	Tags              inventory.Columns  `yaml:"tags"`
	Weights           map[string]float64 `yaml:"weights"`
	Exclude           Exclude            `yaml:"exclude"`
}

// Exclude defines cloud repositories to skip during inventory collection.
type Exclude struct {
	ResourceIDs []string `yaml:"resource_ids"`
}

// TimeoutDuration parses the timeout string as a duration.
func (c Config) TimeoutDuration() time.Duration {
	if c.Timeout == "" {
		return 0
	}
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// ExcludeSet returns the excluded resource IDs as a lookup set.
func (c Config) ExcludeSet() map[string]bool {
	if len(c.Exclude.ResourceIDs) == 0 {
		return nil
	}
	set := make(map[string]bool, len(c.Exclude.ResourceIDs))
	for _, id := range c.Exclude.ResourceIDs {
		set[id] = true
	}
	return set
}

// Load searches for .riskspectre.yaml or .riskspectre.yml in the given directory
// and returns the parsed config. Returns an empty Config if no file is found.
func Load(dir string) (Config, error) {
	candidates := []string{
		filepath.Join(dir, ".riskspectre.yaml"),
		filepath.Join(dir, ".riskspectre.yml"),
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}

		var cfg Config
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
		return cfg, nil
	}

	return Config{}, nil
}
