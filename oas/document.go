package oas

import "gopkg.in/yaml.v3"

// Document is the root of a parsed description document. Only the parts the
// resolution engine works with are modelled: the components table plus basic
// identity metadata. Paths, operations, and security stay out of scope.
type Document struct {
	OpenAPI    string      `yaml:"openapi,omitempty"`
	Info       *Info       `yaml:"info,omitempty"`
	Components *Components `yaml:"components,omitempty"`
	Extensions Extensions  `yaml:"-"`
}

// UnmarshalYAML decodes the document fields and gathers vendor extensions.
func (d *Document) UnmarshalYAML(node *yaml.Node) error {
	type plain Document
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*d = Document(p)
	ext, err := collectExtensions(node)
	if err != nil {
		return err
	}
	d.Extensions = ext
	return nil
}

// Info carries the document's identity metadata.
type Info struct {
	Title       string `yaml:"title,omitempty"`
	Version     string `yaml:"version,omitempty"`
	Description string `yaml:"description,omitempty"`
}
