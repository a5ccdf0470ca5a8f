package suites

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/olin/focstest/types"
)

// SaveFile writes parsed suites to a YAML document at path.
func SaveFile(path string, doc types.Document) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding suites: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing suites file: %w", err)
	}
	return nil
}

// LoadFile reads a YAML suites document previously written by SaveFile.
func LoadFile(path string) (types.Document, error) {
	var doc types.Document
	data, err := os.ReadFile(path)
	if err != nil {
		return doc, fmt.Errorf("reading suites file: %w", err)
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("parsing suites file: %w", err)
	}
	return doc, nil
}
