package oas

// Components is the document-wide table of named, reusable definitions.
// Local references of the form "#/components/<category>/<name>" resolve
// against it. Names are unique within a category; categories are disjoint.
//
// Table entries may themselves be references, so chains such as
// "#/components/schemas/A" -> "#/components/schemas/B" are legal and are
// followed during dereferencing.
//
// Components is treated as read-only for the duration of any Dereference
// call. Concurrent resolutions are safe as long as the caller does not mutate
// the table while another goroutine reads it.
type Components struct {
	Schemas       map[string]*SchemaRef      `yaml:"schemas,omitempty"`
	Responses     map[string]*ResponseRef    `yaml:"responses,omitempty"`
	Parameters    map[string]*ParameterRef   `yaml:"parameters,omitempty"`
	Examples      map[string]*ExampleRef     `yaml:"examples,omitempty"`
	RequestBodies map[string]*RequestBodyRef `yaml:"requestBodies,omitempty"`
	Headers       map[string]*HeaderRef      `yaml:"headers,omitempty"`
}

// has reports whether a definition exists under the given category and name,
// regardless of which category the caller expected.
func (c *Components) has(category, name string) bool {
	if c == nil {
		return false
	}
	switch category {
	case categorySchemas:
		_, ok := c.Schemas[name]
		return ok
	case categoryResponses:
		_, ok := c.Responses[name]
		return ok
	case categoryParameters:
		_, ok := c.Parameters[name]
		return ok
	case categoryExamples:
		_, ok := c.Examples[name]
		return ok
	case categoryRequestBodies:
		_, ok := c.RequestBodies[name]
		return ok
	case categoryHeaders:
		_, ok := c.Headers[name]
		return ok
	default:
		return false
	}
}

// Per-category lookups used by resolveLocal. A nil receiver behaves like an
// empty table.

func lookupSchema(c *Components, name string) (*SchemaRef, bool) {
	if c == nil {
		return nil, false
	}
	entry, ok := c.Schemas[name]
	return entry, ok
}

func lookupResponse(c *Components, name string) (*ResponseRef, bool) {
	if c == nil {
		return nil, false
	}
	entry, ok := c.Responses[name]
	return entry, ok
}

func lookupParameter(c *Components, name string) (*ParameterRef, bool) {
	if c == nil {
		return nil, false
	}
	entry, ok := c.Parameters[name]
	return entry, ok
}

func lookupExample(c *Components, name string) (*ExampleRef, bool) {
	if c == nil {
		return nil, false
	}
	entry, ok := c.Examples[name]
	return entry, ok
}

func lookupRequestBody(c *Components, name string) (*RequestBodyRef, bool) {
	if c == nil {
		return nil, false
	}
	entry, ok := c.RequestBodies[name]
	return entry, ok
}

func lookupHeader(c *Components, name string) (*HeaderRef, bool) {
	if c == nil {
		return nil, false
	}
	entry, ok := c.Headers[name]
	return entry, ok
}
