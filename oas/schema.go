package oas

import "gopkg.in/yaml.v3"

// Schema describes the shape of a value. Child schemas (properties, items,
// composition branches) are held as SchemaRef so they may be inline or
// references into the Components table.
type Schema struct {
	Type        string   `yaml:"type,omitempty"`
	Format      string   `yaml:"format,omitempty"`
	Title       string   `yaml:"title,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Default     any      `yaml:"default,omitempty"`
	Example     any      `yaml:"example,omitempty"`
	Enum        []any    `yaml:"enum,omitempty"`
	Nullable    bool     `yaml:"nullable,omitempty"`
	Deprecated  bool     `yaml:"deprecated,omitempty"`
	Required    []string `yaml:"required,omitempty"`

	Properties           map[string]*SchemaRef `yaml:"properties,omitempty"`
	Items                *SchemaRef            `yaml:"items,omitempty"`
	AdditionalProperties *SchemaRef            `yaml:"additionalProperties,omitempty"`
	AllOf                []*SchemaRef          `yaml:"allOf,omitempty"`
	OneOf                []*SchemaRef          `yaml:"oneOf,omitempty"`
	AnyOf                []*SchemaRef          `yaml:"anyOf,omitempty"`
	Not                  *SchemaRef            `yaml:"not,omitempty"`

	Extensions Extensions `yaml:"-"`
}

// UnmarshalYAML decodes the schema fields and gathers vendor extensions.
func (s *Schema) UnmarshalYAML(node *yaml.Node) error {
	type plain Schema
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*s = Schema(p)
	ext, err := collectExtensions(node)
	if err != nil {
		return err
	}
	s.Extensions = ext
	return nil
}

// SchemaRef holds either an inline schema or a reference to a named schema
// in the Components table. Exactly one of Ref and Value is set.
type SchemaRef struct {
	Ref   string
	Value *Schema
}

// UnmarshalYAML decodes either a {"$ref": ...} mapping or an inline schema.
func (r *SchemaRef) UnmarshalYAML(node *yaml.Node) error {
	ref, value, err := decodeRefNode[Schema](node)
	if err != nil {
		return err
	}
	r.Ref, r.Value = ref, value
	return nil
}

// MarshalYAML renders the reference string when set, the inline schema
// otherwise.
func (r *SchemaRef) MarshalYAML() (any, error) {
	return refMarshal(r.Ref, r.Value)
}

// DereferencedSchema is an immutable snapshot of a schema with every
// reference in its subtree replaced by the definition it names. Scalar
// fields of the original (type, format, description, ...) are reachable
// through Source, which is never mutated by resolution.
type DereferencedSchema struct {
	// Source is the schema the resolved children were built from.
	Source *Schema

	Properties           map[string]*DereferencedSchema
	Items                *DereferencedSchema
	AdditionalProperties *DereferencedSchema
	AllOf                []*DereferencedSchema
	OneOf                []*DereferencedSchema
	AnyOf                []*DereferencedSchema
	Not                  *DereferencedSchema
}

// Dereference resolves the reference (or the inline schema's children)
// against c and returns a reference-free counterpart. A nil receiver or an
// empty ref resolves to nil.
func (r *SchemaRef) Dereference(c *Components) (*DereferencedSchema, error) {
	return r.dereference(c, make(refSet))
}

func (r *SchemaRef) dereference(c *Components, active refSet) (*DereferencedSchema, error) {
	if r == nil {
		return nil, nil
	}
	if r.Ref != "" {
		entry, key, err := resolveLocal(c, r.Ref, categorySchemas, lookupSchema)
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

func (s *Schema) dereference(c *Components, active refSet) (*DereferencedSchema, error) {
	if s == nil {
		return nil, nil
	}

	out := &DereferencedSchema{Source: s}

	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*DereferencedSchema, len(s.Properties))
		for name, ref := range s.Properties {
			child, err := ref.dereference(c, active)
			if err != nil {
				return nil, err
			}
			out.Properties[name] = child
		}
	}

	var err error
	if out.Items, err = s.Items.dereference(c, active); err != nil {
		return nil, err
	}
	if out.AdditionalProperties, err = s.AdditionalProperties.dereference(c, active); err != nil {
		return nil, err
	}
	if out.AllOf, err = dereferenceSchemas(s.AllOf, c, active); err != nil {
		return nil, err
	}
	if out.OneOf, err = dereferenceSchemas(s.OneOf, c, active); err != nil {
		return nil, err
	}
	if out.AnyOf, err = dereferenceSchemas(s.AnyOf, c, active); err != nil {
		return nil, err
	}
	if out.Not, err = s.Not.dereference(c, active); err != nil {
		return nil, err
	}

	return out, nil
}

func dereferenceSchemas(refs []*SchemaRef, c *Components, active refSet) ([]*DereferencedSchema, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	out := make([]*DereferencedSchema, len(refs))
	for i, ref := range refs {
		child, err := ref.dereference(c, active)
		if err != nil {
			return nil, err
		}
		out[i] = child
	}
	return out, nil
}
