package oas

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Extensions holds vendor extension values keyed by their full "x-" name.
// Values are decoded as plain Go values (map[string]any, []any, scalars) and
// passed through opaquely.
type Extensions map[string]any

// collectExtensions gathers every "x-" prefixed key of a YAML mapping node.
// Returns nil when the node carries no extensions.
func collectExtensions(node *yaml.Node) (Extensions, error) {
	if node.Kind != yaml.MappingNode {
		return nil, nil
	}
	var ext Extensions
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		if !strings.HasPrefix(key, "x-") {
			continue
		}
		var value any
		if err := node.Content[i+1].Decode(&value); err != nil {
			return nil, err
		}
		if ext == nil {
			ext = make(Extensions)
		}
		ext[key] = value
	}
	return ext, nil
}
