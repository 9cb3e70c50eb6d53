package project

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SchemaFile is a dbt-style schema document listing models and their
// columns. Only the fields the linter needs are decoded.
type SchemaFile struct {
	Version int           `yaml:"version"`
	Models  []SchemaModel `yaml:"models"`
}

// SchemaModel is one model entry in a schema file.
type SchemaModel struct {
	Name    string         `yaml:"name"`
	Columns []SchemaColumn `yaml:"columns"`
}

// SchemaColumn is one column entry under a model.
type SchemaColumn struct {
	Name string `yaml:"name"`
}

// ParseSchemaFile reads and decodes a schema YAML file.
func ParseSchemaFile(path string) (*SchemaFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	var schema SchemaFile
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("failed to parse schema file: %w", err)
	}
	return &schema, nil
}
