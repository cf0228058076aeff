package oas

import "gopkg.in/yaml.v3"

// Response describes a single response: its headers and a content map keyed
// by media type.
type Response struct {
	Description string                `yaml:"description,omitempty"`
	Headers     map[string]*HeaderRef `yaml:"headers,omitempty"`
	Content     map[string]*MediaType `yaml:"content,omitempty"`
	Extensions  Extensions            `yaml:"-"`
}

// UnmarshalYAML decodes the response fields and gathers vendor extensions.
func (r *Response) UnmarshalYAML(node *yaml.Node) error {
	type plain Response
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*r = Response(p)
	ext, err := collectExtensions(node)
	if err != nil {
		return err
	}
	r.Extensions = ext
	return nil
}

// ResponseRef holds either an inline response or a reference to a named
// response in the Components table.
type ResponseRef struct {
	Ref   string
	Value *Response
}

// UnmarshalYAML decodes either a {"$ref": ...} mapping or an inline
// response.
func (r *ResponseRef) UnmarshalYAML(node *yaml.Node) error {
	ref, value, err := decodeRefNode[Response](node)
	if err != nil {
		return err
	}
	r.Ref, r.Value = ref, value
	return nil
}

// MarshalYAML renders the reference string when set, the inline response
// otherwise.
func (r *ResponseRef) MarshalYAML() (any, error) {
	return refMarshal(r.Ref, r.Value)
}

// DereferencedResponse pairs a response with its headers and content fully
// resolved.
type DereferencedResponse struct {
	Source  *Response
	Headers map[string]*DereferencedHeader
	Content map[string]*DereferencedMediaType
}

// Dereference resolves the reference (or the inline response's children)
// against c.
func (r *ResponseRef) Dereference(c *Components) (*DereferencedResponse, error) {
	return r.dereference(c, make(refSet))
}

func (r *ResponseRef) dereference(c *Components, active refSet) (*DereferencedResponse, error) {
	if r == nil {
		return nil, nil
	}
	if r.Ref != "" {
		entry, key, err := resolveLocal(c, r.Ref, categoryResponses, lookupResponse)
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

func (resp *Response) dereference(c *Components, active refSet) (*DereferencedResponse, error) {
	if resp == nil {
		return nil, nil
	}

	headers, err := dereferenceHeaders(resp.Headers, c, active)
	if err != nil {
		return nil, err
	}

	content, err := dereferenceContent(resp.Content, c, active)
	if err != nil {
		return nil, err
	}

	return &DereferencedResponse{Source: resp, Headers: headers, Content: content}, nil
}
