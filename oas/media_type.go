package oas

import "gopkg.in/yaml.v3"

// MediaType describes the payload of one content type: a schema, optional
// named examples, an optional single example, and per-property encoding
// rules. Media types appear inline only; they are never stored in the
// Components table.
type MediaType struct {
	Schema     *SchemaRef           `yaml:"schema,omitempty"`
	Example    any                  `yaml:"example,omitempty"`
	Examples   *Examples            `yaml:"examples,omitempty"`
	Encoding   map[string]*Encoding `yaml:"encoding,omitempty"`
	Extensions Extensions           `yaml:"-"`
}

// UnmarshalYAML decodes the media type fields and gathers vendor extensions.
func (mt *MediaType) UnmarshalYAML(node *yaml.Node) error {
	type plain MediaType
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*mt = MediaType(p)
	ext, err := collectExtensions(node)
	if err != nil {
		return err
	}
	mt.Extensions = ext
	return nil
}

// DereferencedMediaType pairs the resolved children of a media type with the
// original node under Source. Untouched fields (extensions and anything else
// carrying no references) stay on Source exactly as authored.
type DereferencedMediaType struct {
	// Source is the media type the resolved children were built from.
	Source *MediaType

	// Schema is the fully resolved schema, nil when the source had none.
	Schema *DereferencedSchema

	// Examples preserves the source mapping's keys and insertion order with
	// every value concrete.
	Examples *OrderedMap[*Example]

	// Example is the derived single example: the first resolved entry of
	// Examples when that mapping is non-empty, the source's own example
	// otherwise.
	Example any

	// Encoding holds the per-property encodings with their header
	// references resolved.
	Encoding map[string]*DereferencedEncoding
}

// Dereference resolves every reference-bearing field of the media type
// against c. A failure in any child aborts the whole call; there are no
// partial results.
func (mt *MediaType) Dereference(c *Components) (*DereferencedMediaType, error) {
	return mt.dereference(c, make(refSet))
}

func (mt *MediaType) dereference(c *Components, active refSet) (*DereferencedMediaType, error) {
	if mt == nil {
		return nil, nil
	}

	schema, err := mt.Schema.dereference(c, active)
	if err != nil {
		return nil, err
	}

	examples, err := dereferenceExamples(mt.Examples, c, active)
	if err != nil {
		return nil, err
	}

	var encoding map[string]*DereferencedEncoding
	if len(mt.Encoding) > 0 {
		encoding = make(map[string]*DereferencedEncoding, len(mt.Encoding))
		for property, enc := range mt.Encoding {
			resolved, err := enc.dereference(c, active)
			if err != nil {
				return nil, err
			}
			encoding[property] = resolved
		}
	}

	return &DereferencedMediaType{
		Source:   mt,
		Schema:   schema,
		Examples: examples,
		Example:  derivedExample(examples, mt.Example),
		Encoding: encoding,
	}, nil
}

// derivedExample applies the single-example rule: a non-empty resolved
// examples mapping is authoritative and its first entry's value wins,
// discarding any pre-set single example. Otherwise the authored example
// passes through unchanged.
func derivedExample(examples *OrderedMap[*Example], authored any) any {
	if _, first, ok := examples.First(); ok {
		if first == nil {
			return nil
		}
		return first.Value
	}
	return authored
}

// dereferenceContent resolves a content map (media types keyed by content
// type) in place order.
func dereferenceContent(content map[string]*MediaType, c *Components, active refSet) (map[string]*DereferencedMediaType, error) {
	if len(content) == 0 {
		return nil, nil
	}
	out := make(map[string]*DereferencedMediaType, len(content))
	for contentType, mt := range content {
		resolved, err := mt.dereference(c, active)
		if err != nil {
			return nil, err
		}
		out[contentType] = resolved
	}
	return out, nil
}
