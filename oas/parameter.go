package oas

import "gopkg.in/yaml.v3"

// Parameter describes a single operation parameter: its name, location, and
// either a schema (with optional examples) or a content map for complex
// serializations.
type Parameter struct {
	Name            string `yaml:"name,omitempty"`
	In              string `yaml:"in,omitempty"`
	Description     string `yaml:"description,omitempty"`
	Required        bool   `yaml:"required,omitempty"`
	Deprecated      bool   `yaml:"deprecated,omitempty"`
	AllowEmptyValue bool   `yaml:"allowEmptyValue,omitempty"`

	Style         string `yaml:"style,omitempty"`
	Explode       *bool  `yaml:"explode,omitempty"`
	AllowReserved bool   `yaml:"allowReserved,omitempty"`

	Schema   *SchemaRef            `yaml:"schema,omitempty"`
	Example  any                   `yaml:"example,omitempty"`
	Examples *Examples             `yaml:"examples,omitempty"`
	Content  map[string]*MediaType `yaml:"content,omitempty"`

	Extensions Extensions `yaml:"-"`
}

// UnmarshalYAML decodes the parameter fields and gathers vendor extensions.
func (p *Parameter) UnmarshalYAML(node *yaml.Node) error {
	type plain Parameter
	var pp plain
	if err := node.Decode(&pp); err != nil {
		return err
	}
	*p = Parameter(pp)
	ext, err := collectExtensions(node)
	if err != nil {
		return err
	}
	p.Extensions = ext
	return nil
}

// ParameterRef holds either an inline parameter or a reference to a named
// parameter in the Components table.
type ParameterRef struct {
	Ref   string
	Value *Parameter
}

// UnmarshalYAML decodes either a {"$ref": ...} mapping or an inline
// parameter.
func (r *ParameterRef) UnmarshalYAML(node *yaml.Node) error {
	ref, value, err := decodeRefNode[Parameter](node)
	if err != nil {
		return err
	}
	r.Ref, r.Value = ref, value
	return nil
}

// MarshalYAML renders the reference string when set, the inline parameter
// otherwise.
func (r *ParameterRef) MarshalYAML() (any, error) {
	return refMarshal(r.Ref, r.Value)
}

// DereferencedParameter pairs the resolved children of a parameter with the
// original node under Source. Name, location, and style metadata stay on
// Source exactly as authored; they carry no references and are never
// re-resolved.
type DereferencedParameter struct {
	Source *Parameter

	Schema   *DereferencedSchema
	Examples *OrderedMap[*Example]

	// Example is the derived single example, following the same
	// first-entry rule as media types.
	Example any

	Content map[string]*DereferencedMediaType
}

// Dereference resolves the reference (or the inline parameter's children)
// against c.
func (r *ParameterRef) Dereference(c *Components) (*DereferencedParameter, error) {
	return r.dereference(c, make(refSet))
}

func (r *ParameterRef) dereference(c *Components, active refSet) (*DereferencedParameter, error) {
	if r == nil {
		return nil, nil
	}
	if r.Ref != "" {
		entry, key, err := resolveLocal(c, r.Ref, categoryParameters, lookupParameter)
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

func (p *Parameter) dereference(c *Components, active refSet) (*DereferencedParameter, error) {
	if p == nil {
		return nil, nil
	}

	schema, err := p.Schema.dereference(c, active)
	if err != nil {
		return nil, err
	}

	examples, err := dereferenceExamples(p.Examples, c, active)
	if err != nil {
		return nil, err
	}

	content, err := dereferenceContent(p.Content, c, active)
	if err != nil {
		return nil, err
	}

	return &DereferencedParameter{
		Source:   p,
		Schema:   schema,
		Examples: examples,
		Example:  derivedExample(examples, p.Example),
		Content:  content,
	}, nil
}
