package oas

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// OrderedMap is a string-keyed map that remembers insertion order. YAML
// mappings decode into it in document order, which is what makes "the first
// entry" a meaningful notion for the derived-example rule.
//
// The zero value is empty and ready to use.
type OrderedMap[V any] struct {
	keys   []string
	values map[string]V
}

// Set stores value under key, appending the key to the order on first use.
// Setting an existing key overwrites its value but keeps its position.
func (m *OrderedMap[V]) Set(key string, value V) {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key.
func (m *OrderedMap[V]) Get(key string) (V, bool) {
	if m == nil || m.values == nil {
		var zero V
		return zero, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Len returns the number of entries.
func (m *OrderedMap[V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order. The returned slice is a copy.
func (m *OrderedMap[V]) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// First returns the first entry by insertion order.
func (m *OrderedMap[V]) First() (key string, value V, ok bool) {
	if m.Len() == 0 {
		var zero V
		return "", zero, false
	}
	key = m.keys[0]
	return key, m.values[key], true
}

// UnmarshalYAML decodes a YAML mapping node, preserving document order.
func (m *OrderedMap[V]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("expected a mapping node, got %s", nodeKind(node))
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		var value V
		if err := node.Content[i+1].Decode(&value); err != nil {
			return fmt.Errorf("entry %q: %w", key, err)
		}
		m.Set(key, value)
	}
	return nil
}

// MarshalYAML renders the map as a YAML mapping in insertion order.
func (m *OrderedMap[V]) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, key := range m.keys {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(m.values[key]); err != nil {
			return nil, fmt.Errorf("entry %q: %w", key, err)
		}
		node.Content = append(node.Content, keyNode, valueNode)
	}
	return node, nil
}

// nodeKind names a YAML node kind for error messages.
func nodeKind(node *yaml.Node) string {
	switch node.Kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}

// sortedKeys returns the keys of a plain map in lexical order, for
// deterministic encoding of unordered maps.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
