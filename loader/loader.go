package loader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/refscope/refscope/oas"
)

// Parse decodes a YAML document into an oas.Document.
func Parse(data []byte) (*oas.Document, error) {
	var doc oas.Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return &doc, nil
}

// Load reads and parses a document from the given path.
func Load(path string) (*oas.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
