package oas

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

// petComponents builds a small components table shared by the resolution
// tests: a Pet schema with a reference-typed property, a Tag schema, a
// reference chain, and a couple of named examples.
func petComponents() *Components {
	return &Components{
		Schemas: map[string]*SchemaRef{
			"Pet": {Value: &Schema{
				Type:     "object",
				Required: []string{"name"},
				Properties: map[string]*SchemaRef{
					"name": {Value: &Schema{Type: "string"}},
					"tag":  {Ref: "#/components/schemas/Tag"},
				},
			}},
			"Tag": {Value: &Schema{Type: "string"}},
			// Alias resolves through a chain of references.
			"Alias": {Ref: "#/components/schemas/Pet"},
		},
		Examples: map[string]*ExampleRef{
			"cat": {Value: &Example{Summary: "a cat", Value: map[string]any{"name": "Felix"}}},
			"dog": {Value: &Example{Summary: "a dog", Value: map[string]any{"name": "Rex"}}},
		},
	}
}

func TestSchemaRefDereference_InlineIsIdentity(t *testing.T) {
	src := &Schema{
		Type: "object",
		Properties: map[string]*SchemaRef{
			"id": {Value: &Schema{Type: "integer", Format: "int64"}},
		},
		Items: nil,
	}
	ref := &SchemaRef{Value: src}

	resolved, err := ref.Dereference(nil)
	require.NoError(t, err)
	require.NotNil(t, resolved)

	// The wrapper points back at the untouched original.
	assert.Same(t, src, resolved.Source)
	assert.Same(t, src.Properties["id"].Value, resolved.Properties["id"].Source)
	assert.Nil(t, resolved.Items)
}

func TestSchemaRefDereference_ResolvesLocal(t *testing.T) {
	c := petComponents()
	ref := &SchemaRef{Ref: "#/components/schemas/Pet"}

	resolved, err := ref.Dereference(c)
	require.NoError(t, err)

	assert.Equal(t, "object", resolved.Source.Type)
	require.Contains(t, resolved.Properties, "tag")
	assert.Equal(t, "string", resolved.Properties["tag"].Source.Type)
	assert.Same(t, c.Schemas["Tag"].Value, resolved.Properties["tag"].Source)
}

func TestSchemaRefDereference_FollowsChain(t *testing.T) {
	c := petComponents()
	ref := &SchemaRef{Ref: "#/components/schemas/Alias"}

	resolved, err := ref.Dereference(c)
	require.NoError(t, err)
	assert.Same(t, c.Schemas["Pet"].Value, resolved.Source)
}

func TestSchemaRefDereference_SiblingReuseIsNotACycle(t *testing.T) {
	c := petComponents()
	ref := &SchemaRef{Value: &Schema{
		Type: "object",
		Properties: map[string]*SchemaRef{
			"primary":   {Ref: "#/components/schemas/Tag"},
			"secondary": {Ref: "#/components/schemas/Tag"},
		},
	}}

	resolved, err := ref.Dereference(c)
	require.NoError(t, err)
	assert.Same(t, resolved.Properties["primary"].Source, resolved.Properties["secondary"].Source)
}

func TestSchemaRefDereference_NotFound(t *testing.T) {
	c := petComponents()
	ref := &SchemaRef{Ref: "#/components/schemas/Missing"}

	_, err := ref.Dereference(c)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	var refErr *RefError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "schemas", refErr.Category)
	assert.Equal(t, "Missing", refErr.Name)
}

func TestSchemaRefDereference_NotFoundNamesNestedRef(t *testing.T) {
	c := petComponents()
	c.Schemas["Broken"] = &SchemaRef{Value: &Schema{
		Type: "object",
		Properties: map[string]*SchemaRef{
			"bad": {Ref: "#/components/schemas/Nowhere"},
		},
	}}

	_, err := (&SchemaRef{Ref: "#/components/schemas/Broken"}).Dereference(c)
	require.Error(t, err)

	var refErr *RefError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "schemas", refErr.Category)
	assert.Equal(t, "Nowhere", refErr.Name)
}

func TestSchemaRefDereference_RemoteReference(t *testing.T) {
	tests := []struct {
		name string
		ref  string
	}{
		{"other document", "other.yaml#/components/schemas/Pet"},
		{"url", "https://example.com/api.yaml#/components/schemas/Pet"},
		{"deep pointer", "#/components/schemas/Pet/properties/name"},
		{"non-components pointer", "#/definitions/Pet"},
	}

	c := petComponents()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := (&SchemaRef{Ref: tt.ref}).Dereference(c)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrRemoteReference)

			var refErr *RefError
			require.ErrorAs(t, err, &refErr)
			assert.Equal(t, tt.ref, refErr.Locator)
		})
	}
}

func TestSchemaRefDereference_TypeMismatch(t *testing.T) {
	c := petComponents()

	// "cat" exists, but in the examples table: the name resolves to a
	// definition of the wrong category.
	_, err := (&SchemaRef{Ref: "#/components/examples/cat"}).Dereference(c)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTypeMismatch)

	var refErr *RefError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "examples", refErr.Category)
	assert.Equal(t, "cat", refErr.Name)
	assert.Equal(t, "schemas", refErr.Expected)
	assert.Equal(t, "examples", refErr.Actual)

	// A wrong-category ref whose name exists nowhere is NotFound, reported
	// against the category the ref names.
	_, err = (&SchemaRef{Ref: "#/components/examples/unicorn"}).Dereference(c)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "examples", refErr.Category)
	assert.Equal(t, "unicorn", refErr.Name)
}

func TestSchemaRefDereference_Cycle(t *testing.T) {
	c := &Components{
		Schemas: map[string]*SchemaRef{
			"A": {Value: &Schema{
				Type:       "object",
				Properties: map[string]*SchemaRef{"b": {Ref: "#/components/schemas/B"}},
			}},
			"B": {Value: &Schema{
				Type:       "object",
				Properties: map[string]*SchemaRef{"a": {Ref: "#/components/schemas/A"}},
			}},
		},
	}

	_, err := (&SchemaRef{Ref: "#/components/schemas/A"}).Dereference(c)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRecursiveReference)

	var refErr *RefError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "schemas", refErr.Category)
	assert.Equal(t, "A", refErr.Name)
}

func TestSchemaRefDereference_SelfReference(t *testing.T) {
	c := &Components{
		Schemas: map[string]*SchemaRef{
			"Node": {Value: &Schema{
				Type:       "object",
				Properties: map[string]*SchemaRef{"next": {Ref: "#/components/schemas/Node"}},
			}},
		},
	}

	_, err := (&SchemaRef{Ref: "#/components/schemas/Node"}).Dereference(c)
	require.ErrorIs(t, err, ErrRecursiveReference)
}

func TestDereference_GuardIsScopedPerCall(t *testing.T) {
	c := petComponents()
	c.Schemas["Loop"] = &SchemaRef{Ref: "#/components/schemas/Loop"}

	_, err := (&SchemaRef{Ref: "#/components/schemas/Loop"}).Dereference(c)
	require.ErrorIs(t, err, ErrRecursiveReference)

	// A failed resolution leaves no residue: an unrelated call against the
	// same table still succeeds.
	_, err = (&SchemaRef{Ref: "#/components/schemas/Pet"}).Dereference(c)
	require.NoError(t, err)
}

func TestExampleRefDereference(t *testing.T) {
	c := petComponents()

	resolved, err := (&ExampleRef{Ref: "#/components/examples/cat"}).Dereference(c)
	require.NoError(t, err)
	assert.Same(t, c.Examples["cat"].Value, resolved)

	inline := &Example{Value: 42}
	resolved, err = (&ExampleRef{Value: inline}).Dereference(c)
	require.NoError(t, err)
	assert.Same(t, inline, resolved)
}

func TestMediaTypeDereference_DerivedExampleFirstEntryWins(t *testing.T) {
	c := petComponents()

	examples := &Examples{}
	examples.Set("a", &ExampleRef{Ref: "#/components/examples/cat"})
	examples.Set("b", &ExampleRef{Ref: "#/components/examples/dog"})

	mt := &MediaType{
		Schema:   &SchemaRef{Ref: "#/components/schemas/Pet"},
		Examples: examples,
		// Pre-set single example is discarded when examples are present.
		Example: map[string]any{"name": "ignored"},
	}

	resolved, err := mt.Dereference(c)
	require.NoError(t, err)

	require.Equal(t, []string{"a", "b"}, resolved.Examples.Keys())
	first, ok := resolved.Examples.Get("a")
	require.True(t, ok)
	assert.Same(t, c.Examples["cat"].Value, first)

	want := map[string]any{"name": "Felix"}
	if diff := cmp.Diff(want, resolved.Example); diff != "" {
		t.Errorf("derived example mismatch (-want +got):\n%s", diff)
	}
}

func TestMediaTypeDereference_SingleExamplePassesThrough(t *testing.T) {
	c := petComponents()
	mt := &MediaType{
		Schema:  &SchemaRef{Ref: "#/components/schemas/Tag"},
		Example: "tabby",
	}

	resolved, err := mt.Dereference(c)
	require.NoError(t, err)
	assert.Equal(t, "tabby", resolved.Example)
	assert.Nil(t, resolved.Examples)
	assert.Same(t, mt, resolved.Source)
}

func TestMediaTypeDereference_EntryFailureAborts(t *testing.T) {
	c := petComponents()

	examples := &Examples{}
	examples.Set("good", &ExampleRef{Ref: "#/components/examples/cat"})
	examples.Set("bad", &ExampleRef{Ref: "#/components/examples/missing"})

	mt := &MediaType{Examples: examples}

	resolved, err := mt.Dereference(c)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, resolved, "no partial result on failure")
}

func TestMediaTypeDereference_SchemaFailurePropagates(t *testing.T) {
	mt := &MediaType{Schema: &SchemaRef{Ref: "#/components/schemas/Missing"}}

	_, err := mt.Dereference(&Components{})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMediaTypeDereference_ResolvesEncodingHeaders(t *testing.T) {
	c := petComponents()
	c.Headers = map[string]*HeaderRef{
		"X-Rate-Limit": {Value: &Header{
			Schema: &SchemaRef{Value: &Schema{Type: "integer"}},
		}},
	}

	mt := &MediaType{
		Schema: &SchemaRef{Ref: "#/components/schemas/Pet"},
		Encoding: map[string]*Encoding{
			"avatar": {
				ContentTypes: []string{"image/png"},
				Headers: map[string]*HeaderRef{
					"X-Rate-Limit": {Ref: "#/components/headers/X-Rate-Limit"},
				},
			},
		},
	}

	resolved, err := mt.Dereference(c)
	require.NoError(t, err)

	enc := resolved.Encoding["avatar"]
	require.NotNil(t, enc)
	assert.Same(t, mt.Encoding["avatar"], enc.Source)
	header := enc.Headers["X-Rate-Limit"]
	require.NotNil(t, header)
	assert.Equal(t, "integer", header.Schema.Source.Type)
}

func TestParameterRefDereference(t *testing.T) {
	c := petComponents()
	c.Parameters = map[string]*ParameterRef{
		"petId": {Value: &Parameter{
			Name:     "petId",
			In:       "path",
			Required: true,
			Schema:   &SchemaRef{Ref: "#/components/schemas/Tag"},
		}},
	}

	resolved, err := (&ParameterRef{Ref: "#/components/parameters/petId"}).Dereference(c)
	require.NoError(t, err)

	assert.Equal(t, "petId", resolved.Source.Name)
	assert.Equal(t, "path", resolved.Source.In)
	assert.Equal(t, "string", resolved.Schema.Source.Type)
}

func TestHeaderRefDereference_DerivedExample(t *testing.T) {
	c := petComponents()

	examples := &Examples{}
	examples.Set("limit", &ExampleRef{Value: &Example{Value: 100}})

	header := &HeaderRef{Value: &Header{
		Schema:   &SchemaRef{Value: &Schema{Type: "integer"}},
		Examples: examples,
	}}

	resolved, err := header.Dereference(c)
	require.NoError(t, err)
	assert.Equal(t, 100, resolved.Example)
}

func TestResponseRefDereference(t *testing.T) {
	c := petComponents()
	c.Headers = map[string]*HeaderRef{
		"X-Next": {Value: &Header{Schema: &SchemaRef{Value: &Schema{Type: "string"}}}},
	}
	c.Responses = map[string]*ResponseRef{
		"PetResponse": {Value: &Response{
			Description: "a pet",
			Headers: map[string]*HeaderRef{
				"X-Next": {Ref: "#/components/headers/X-Next"},
			},
			Content: map[string]*MediaType{
				"application/json": {Schema: &SchemaRef{Ref: "#/components/schemas/Pet"}},
			},
		}},
	}

	resolved, err := (&ResponseRef{Ref: "#/components/responses/PetResponse"}).Dereference(c)
	require.NoError(t, err)

	assert.Equal(t, "a pet", resolved.Source.Description)
	require.Contains(t, resolved.Headers, "X-Next")
	assert.Equal(t, "string", resolved.Headers["X-Next"].Schema.Source.Type)
	require.Contains(t, resolved.Content, "application/json")
	assert.Equal(t, "object", resolved.Content["application/json"].Schema.Source.Type)
}

func TestRequestBodyRefDereference(t *testing.T) {
	c := petComponents()
	c.RequestBodies = map[string]*RequestBodyRef{
		"PetBody": {Value: &RequestBody{
			Required: true,
			Content: map[string]*MediaType{
				"application/json": {Schema: &SchemaRef{Ref: "#/components/schemas/Pet"}},
			},
		}},
	}

	resolved, err := (&RequestBodyRef{Ref: "#/components/requestBodies/PetBody"}).Dereference(c)
	require.NoError(t, err)
	assert.True(t, resolved.Source.Required)
	assert.Equal(t, "object", resolved.Content["application/json"].Schema.Source.Type)
}

func TestDereference_NilReceivers(t *testing.T) {
	c := petComponents()

	var sr *SchemaRef
	resolved, err := sr.Dereference(c)
	require.NoError(t, err)
	assert.Nil(t, resolved)

	var mt *MediaType
	resolvedMT, err := mt.Dereference(c)
	require.NoError(t, err)
	assert.Nil(t, resolvedMT)
}

func TestDereference_CompositionBranches(t *testing.T) {
	c := petComponents()
	ref := &SchemaRef{Value: &Schema{
		AllOf: []*SchemaRef{
			{Ref: "#/components/schemas/Pet"},
			{Value: &Schema{
				Type: "object",
				Properties: map[string]*SchemaRef{
					"id": {Value: &Schema{Type: "integer"}},
				},
			}},
		},
	}}

	resolved, err := ref.Dereference(c)
	require.NoError(t, err)
	require.Len(t, resolved.AllOf, 2)
	assert.Same(t, c.Schemas["Pet"].Value, resolved.AllOf[0].Source)
	assert.Equal(t, "integer", resolved.AllOf[1].Properties["id"].Source.Type)
}

func TestRefErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  *RefError
		want string
	}{
		{
			name: "not found",
			err:  &RefError{Err: ErrNotFound, Category: "schemas", Name: "Pet"},
			want: "oas: reference target not found: schemas/Pet",
		},
		{
			name: "remote",
			err:  &RefError{Err: ErrRemoteReference, Locator: "other.yaml#/x"},
			want: `oas: remote reference not resolvable: "other.yaml#/x"`,
		},
		{
			name: "recursive",
			err:  &RefError{Err: ErrRecursiveReference, Category: "schemas", Name: "A"},
			want: "oas: recursive reference: schemas/A",
		},
		{
			name: "mismatch",
			err: &RefError{
				Err: ErrTypeMismatch, Category: "examples", Name: "cat",
				Expected: "schemas", Actual: "examples",
			},
			want: "oas: reference category mismatch: examples/cat (expected schemas, got examples)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.True(t, errors.Is(tt.err, tt.err.Err))
		})
	}
}
