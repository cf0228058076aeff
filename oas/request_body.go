package oas

import "gopkg.in/yaml.v3"

// RequestBody describes a request payload as a content map keyed by media
// type.
type RequestBody struct {
	Description string                `yaml:"description,omitempty"`
	Required    bool                  `yaml:"required,omitempty"`
	Content     map[string]*MediaType `yaml:"content,omitempty"`
	Extensions  Extensions            `yaml:"-"`
}

// UnmarshalYAML decodes the request body fields and gathers vendor
// extensions.
func (rb *RequestBody) UnmarshalYAML(node *yaml.Node) error {
	type plain RequestBody
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*rb = RequestBody(p)
	ext, err := collectExtensions(node)
	if err != nil {
		return err
	}
	rb.Extensions = ext
	return nil
}

// RequestBodyRef holds either an inline request body or a reference to a
// named request body in the Components table.
type RequestBodyRef struct {
	Ref   string
	Value *RequestBody
}

// UnmarshalYAML decodes either a {"$ref": ...} mapping or an inline request
// body.
func (r *RequestBodyRef) UnmarshalYAML(node *yaml.Node) error {
	ref, value, err := decodeRefNode[RequestBody](node)
	if err != nil {
		return err
	}
	r.Ref, r.Value = ref, value
	return nil
}

// MarshalYAML renders the reference string when set, the inline request body
// otherwise.
func (r *RequestBodyRef) MarshalYAML() (any, error) {
	return refMarshal(r.Ref, r.Value)
}

// DereferencedRequestBody pairs a request body with its content map fully
// resolved.
type DereferencedRequestBody struct {
	Source  *RequestBody
	Content map[string]*DereferencedMediaType
}

// Dereference resolves the reference (or the inline body's content) against
// c.
func (r *RequestBodyRef) Dereference(c *Components) (*DereferencedRequestBody, error) {
	return r.dereference(c, make(refSet))
}

func (r *RequestBodyRef) dereference(c *Components, active refSet) (*DereferencedRequestBody, error) {
	if r == nil {
		return nil, nil
	}
	if r.Ref != "" {
		entry, key, err := resolveLocal(c, r.Ref, categoryRequestBodies, lookupRequestBody)
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

func (rb *RequestBody) dereference(c *Components, active refSet) (*DereferencedRequestBody, error) {
	if rb == nil {
		return nil, nil
	}
	content, err := dereferenceContent(rb.Content, c, active)
	if err != nil {
		return nil, err
	}
	return &DereferencedRequestBody{Source: rb, Content: content}, nil
}
