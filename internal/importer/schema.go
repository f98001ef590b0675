package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Seed is the top-level structure of a master-data import file. Every
// section is optional.
type Seed struct {
	Taxonomy       *TaxonomyImport           `yaml:"taxonomy,omitempty" json:"taxonomy,omitempty"`
	Inactive       []string                  `yaml:"inactive,omitempty" json:"inactive,omitempty"`
	DailyTargets   map[string]map[string]int `yaml:"daily_targets,omitempty" json:"daily_targets,omitempty"`
	MonthlyTargets map[string]map[string]int `yaml:"monthly_targets,omitempty" json:"monthly_targets,omitempty"`
	Entries        []EntryImport             `yaml:"entries,omitempty" json:"entries,omitempty"`
}

// TaxonomyImport lists catalog additions per branch. Groups keep file order.
type TaxonomyImport struct {
	CFLine []GroupImport `yaml:"cf_line,omitempty" json:"cf_line,omitempty"`
	WDLine []string      `yaml:"wd_line,omitempty" json:"wd_line,omitempty"`
	CRF    []GroupImport `yaml:"crf,omitempty" json:"crf,omitempty"`
}

// GroupImport is a category with its models, or a machine with its parts.
type GroupImport struct {
	Name  string   `yaml:"name" json:"name"`
	Items []string `yaml:"items" json:"items"`
}

// EntryImport is one historical production entry.
type EntryImport struct {
	Date        string       `yaml:"date" json:"date"`
	Area        string       `yaml:"area" json:"area"`
	Supervisor  string       `yaml:"supervisor" json:"supervisor"`
	SubmittedAt string       `yaml:"submitted_at,omitempty" json:"submitted_at,omitempty"`
	Items       []ItemImport `yaml:"items" json:"items"`
}

type ItemImport struct {
	Quantity int    `yaml:"quantity" json:"quantity"`
	Model    string `yaml:"model" json:"model"`
	Machine  string `yaml:"machine,omitempty" json:"machine,omitempty"`
	Part     string `yaml:"part,omitempty" json:"part,omitempty"`
	Category string `yaml:"category,omitempty" json:"category,omitempty"`
}

// LoadSeed reads a seed file. Files ending in .json are parsed as JSON,
// anything else as YAML.
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSeed(data, strings.EqualFold(filepath.Ext(path), ".json"))
}

// ParseSeed decodes seed data as JSON or YAML.
func ParseSeed(data []byte, isJSON bool) (*Seed, error) {
	var seed Seed
	if isJSON {
		if err := json.Unmarshal(data, &seed); err != nil {
			return nil, fmt.Errorf("parsing seed JSON: %w", err)
		}
		return &seed, nil
	}
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parsing seed YAML: %w", err)
	}
	return &seed, nil
}
