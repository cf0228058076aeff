package oas

import "gopkg.in/yaml.v3"

// Header describes a response or encoding header. It is shaped like a
// parameter without a name or location: both are implied by the map key and
// the header position.
type Header struct {
	Description string `yaml:"description,omitempty"`
	Required    bool   `yaml:"required,omitempty"`
	Deprecated  bool   `yaml:"deprecated,omitempty"`

	Style   string `yaml:"style,omitempty"`
	Explode *bool  `yaml:"explode,omitempty"`

	Schema   *SchemaRef            `yaml:"schema,omitempty"`
	Example  any                   `yaml:"example,omitempty"`
	Examples *Examples             `yaml:"examples,omitempty"`
	Content  map[string]*MediaType `yaml:"content,omitempty"`

	Extensions Extensions `yaml:"-"`
}

// UnmarshalYAML decodes the header fields and gathers vendor extensions.
func (h *Header) UnmarshalYAML(node *yaml.Node) error {
	type plain Header
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*h = Header(p)
	ext, err := collectExtensions(node)
	if err != nil {
		return err
	}
	h.Extensions = ext
	return nil
}

// HeaderRef holds either an inline header or a reference to a named header
// in the Components table.
type HeaderRef struct {
	Ref   string
	Value *Header
}

// UnmarshalYAML decodes either a {"$ref": ...} mapping or an inline header.
func (r *HeaderRef) UnmarshalYAML(node *yaml.Node) error {
	ref, value, err := decodeRefNode[Header](node)
	if err != nil {
		return err
	}
	r.Ref, r.Value = ref, value
	return nil
}

// MarshalYAML renders the reference string when set, the inline header
// otherwise.
func (r *HeaderRef) MarshalYAML() (any, error) {
	return refMarshal(r.Ref, r.Value)
}

// DereferencedHeader pairs the resolved children of a header with the
// original node under Source.
type DereferencedHeader struct {
	Source *Header

	Schema   *DereferencedSchema
	Examples *OrderedMap[*Example]

	// Example is the derived single example, following the same
	// first-entry rule as media types.
	Example any

	Content map[string]*DereferencedMediaType
}

// Dereference resolves the reference (or the inline header's children)
// against c.
func (r *HeaderRef) Dereference(c *Components) (*DereferencedHeader, error) {
	return r.dereference(c, make(refSet))
}

func (r *HeaderRef) dereference(c *Components, active refSet) (*DereferencedHeader, error) {
	if r == nil {
		return nil, nil
	}
	if r.Ref != "" {
		entry, key, err := resolveLocal(c, r.Ref, categoryHeaders, lookupHeader)
		if err != nil {
			return nil, err
		}
		if err := active.enter(key); err != nil {
			return nil, err
		}
		defer active.leave(key)
		return entry.dereference(c, active)
	}
	return r.Value.dereference(c, active)
}

func (h *Header) dereference(c *Components, active refSet) (*DereferencedHeader, error) {
	if h == nil {
		return nil, nil
	}

	schema, err := h.Schema.dereference(c, active)
	if err != nil {
		return nil, err
	}

	examples, err := dereferenceExamples(h.Examples, c, active)
	if err != nil {
		return nil, err
	}

	content, err := dereferenceContent(h.Content, c, active)
	if err != nil {
		return nil, err
	}

	return &DereferencedHeader{
		Source:   h,
		Schema:   schema,
		Examples: examples,
		Example:  derivedExample(examples, h.Example),
		Content:  content,
	}, nil
}

// dereferenceHeaders resolves a headers map (header refs keyed by header
// name).
func dereferenceHeaders(headers map[string]*HeaderRef, c *Components, active refSet) (map[string]*DereferencedHeader, error) {
	if len(headers) == 0 {
		return nil, nil
	}
	out := make(map[string]*DereferencedHeader, len(headers))
	for name, ref := range headers {
		resolved, err := ref.dereference(c, active)
		if err != nil {
			return nil, err
		}
		out[name] = resolved
	}
	return out, nil
}
