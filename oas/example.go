package oas

import "gopkg.in/yaml.v3"

// Example is a named sample value for a schema, parameter, or media type.
// It is a leaf of the reference graph: nothing inside it can be a reference,
// so dereferencing an ExampleRef yields the Example itself.
type Example struct {
	Summary       string     `yaml:"summary,omitempty"`
	Description   string     `yaml:"description,omitempty"`
	Value         any        `yaml:"value,omitempty"`
	ExternalValue string     `yaml:"externalValue,omitempty"`
	Extensions    Extensions `yaml:"-"`
}

// UnmarshalYAML decodes the example fields and gathers vendor extensions.
func (e *Example) UnmarshalYAML(node *yaml.Node) error {
	type plain Example
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*e = Example(p)
	ext, err := collectExtensions(node)
	if err != nil {
		return err
	}
	e.Extensions = ext
	return nil
}

// ExampleRef holds either an inline example or a reference to a named
// example in the Components table.
type ExampleRef struct {
	Ref   string
	Value *Example
}

// UnmarshalYAML decodes either a {"$ref": ...} mapping or an inline example.
func (r *ExampleRef) UnmarshalYAML(node *yaml.Node) error {
	ref, value, err := decodeRefNode[Example](node)
	if err != nil {
		return err
	}
	r.Ref, r.Value = ref, value
	return nil
}

// MarshalYAML renders the reference string when set, the inline example
// otherwise.
func (r *ExampleRef) MarshalYAML() (any, error) {
	return refMarshal(r.Ref, r.Value)
}

// Dereference resolves the reference against c and returns the concrete
// example. Examples carry no nested references, so no wrapper type is
// needed; the result is the stored value itself.
func (r *ExampleRef) Dereference(c *Components) (*Example, error) {
	return r.dereference(c, make(refSet))
}

func (r *ExampleRef) dereference(c *Components, active refSet) (*Example, error) {
	if r == nil {
		return nil, nil
	}
	if r.Ref != "" {
		entry, key, err := resolveLocal(c, r.Ref, categoryExamples, lookupExample)
		if err != nil {
			return nil, err
		}
		if err := active.enter(key); err != nil {
			return nil, err
		}
		defer active.leave(key)
		return entry.dereference(c, active)
	}
	return r.Value, nil
}

// Examples is an insertion-ordered mapping of example names to example refs,
// as authored in the document. Order matters: after resolution the first
// entry supplies the derived single example.
type Examples = OrderedMap[*ExampleRef]

// dereferenceExamples resolves every entry of an examples mapping, keeping
// identical keys and insertion order. A single entry failure aborts the
// whole mapping.
func dereferenceExamples(examples *Examples, c *Components, active refSet) (*OrderedMap[*Example], error) {
	if examples.Len() == 0 {
		return nil, nil
	}
	out := &OrderedMap[*Example]{}
	for _, name := range examples.Keys() {
		ref, _ := examples.Get(name)
		resolved, err := ref.dereference(c, active)
		if err != nil {
			return nil, err
		}
		out.Set(name, resolved)
	}
	return out, nil
}
