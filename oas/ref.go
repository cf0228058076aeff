package oas

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Resolvable is the capability shared by every node type that can produce a
// fully resolved counterpart of itself. Each implementing type has its own
// result shape; there is no common supertype across node kinds.
//
// Dereference walks the node recursively against the given Components table
// and either returns a reference-free result or a *RefError naming the first
// reference that failed. The receiver is never mutated.
type Resolvable[D any] interface {
	Dereference(c *Components) (D, error)
}

// Compile-time checks that every reference-bearing node satisfies the
// capability with its own result shape.
var (
	_ Resolvable[*DereferencedSchema]      = (*SchemaRef)(nil)
	_ Resolvable[*Example]                 = (*ExampleRef)(nil)
	_ Resolvable[*DereferencedParameter]   = (*ParameterRef)(nil)
	_ Resolvable[*DereferencedHeader]      = (*HeaderRef)(nil)
	_ Resolvable[*DereferencedMediaType]   = (*MediaType)(nil)
	_ Resolvable[*DereferencedEncoding]    = (*Encoding)(nil)
	_ Resolvable[*DereferencedRequestBody] = (*RequestBodyRef)(nil)
	_ Resolvable[*DereferencedResponse]    = (*ResponseRef)(nil)
)

// Component categories addressable by local references.
const (
	categorySchemas       = "schemas"
	categoryExamples      = "examples"
	categoryParameters    = "parameters"
	categoryHeaders       = "headers"
	categoryRequestBodies = "requestBodies"
	categoryResponses     = "responses"
)

// localRef reports whether ref points into the current document's components
// table, and if so returns its category and name segments. Anything that is
// not exactly "#/components/<category>/<name>" is remote to this engine.
func localRef(ref string) (category, name string, ok bool) {
	rest, found := strings.CutPrefix(ref, "#/components/")
	if !found {
		return "", "", false
	}
	category, name, found = strings.Cut(rest, "/")
	if !found || category == "" || name == "" || strings.Contains(name, "/") {
		return "", "", false
	}
	return category, name, true
}

// refKey identifies one definition in the Components table.
type refKey struct {
	category string
	name     string
}

// refSet tracks the definitions currently being resolved within a single
// top-level Dereference call. The set is created fresh per call, so unrelated
// resolutions never interfere with each other's in-progress state.
type refSet map[refKey]struct{}

// enter marks key as in progress, failing if it already is.
func (s refSet) enter(key refKey) error {
	if _, ok := s[key]; ok {
		return &RefError{Err: ErrRecursiveReference, Category: key.category, Name: key.name}
	}
	s[key] = struct{}{}
	return nil
}

// leave clears key once its resolution has completed.
func (s refSet) leave(key refKey) {
	delete(s, key)
}

// resolveLocal validates a local reference expected to name a definition in
// the want category and returns the stored entry together with its guard key.
// Remote references fail before any table lookup is attempted.
func resolveLocal[T any](c *Components, ref, want string, lookup func(*Components, string) (T, bool)) (T, refKey, error) {
	var zero T

	category, name, ok := localRef(ref)
	if !ok {
		return zero, refKey{}, &RefError{Err: ErrRemoteReference, Locator: ref}
	}

	if category != want {
		// The name may genuinely resolve, just in the wrong table.
		if c.has(category, name) {
			return zero, refKey{}, &RefError{
				Err:      ErrTypeMismatch,
				Category: category,
				Name:     name,
				Expected: want,
				Actual:   category,
			}
		}
		return zero, refKey{}, &RefError{Err: ErrNotFound, Category: category, Name: name}
	}

	entry, ok := lookup(c, name)
	if !ok {
		return zero, refKey{}, &RefError{Err: ErrNotFound, Category: want, Name: name}
	}

	return entry, refKey{category: want, name: name}, nil
}

// decodeRefNode decodes a YAML node that holds either a {"$ref": ...} mapping
// or an inline value of type T. It returns the reference string, or the
// decoded value when the node is inline.
func decodeRefNode[T any](node *yaml.Node) (string, *T, error) {
	if node.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i].Value == "$ref" {
				return node.Content[i+1].Value, nil, nil
			}
		}
	}
	var value T
	if err := node.Decode(&value); err != nil {
		return "", nil, err
	}
	return "", &value, nil
}

// refMarshal renders a ref type back to YAML: a {"$ref": ...} mapping when the
// reference string is set, the inline value otherwise.
func refMarshal[T any](ref string, value *T) (any, error) {
	if ref != "" {
		return map[string]string{"$ref": ref}, nil
	}
	return value, nil
}
