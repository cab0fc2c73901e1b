// Package yamlfile reads and writes the YAML documents the tool exchanges:
// routes, sequence snapshots and bake output.
package yamlfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Write marshals v and writes it to path
func Write(path string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}

	return os.WriteFile(path, data, 0644)
}

// Read unmarshals the YAML file at path into a new T
func Read[T any](path string) (*T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var v T
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return &v, nil
}
