package loader

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refscope/refscope/oas"
)

func TestLoadPetstore(t *testing.T) {
	doc, err := Load(filepath.Join("testdata", "petstore.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "3.0.3", doc.OpenAPI)
	require.NotNil(t, doc.Info)
	assert.Equal(t, "Petstore", doc.Info.Title)
	assert.Equal(t, oas.Extensions{"x-audience": "internal"}, doc.Extensions)

	c := doc.Components
	require.NotNil(t, c)
	assert.Len(t, c.Schemas, 3)
	assert.Equal(t, "#/components/schemas/Tag", c.Schemas["Pet"].Value.Properties["tag"].Ref)
}

func TestLoadedDocumentDereferences(t *testing.T) {
	doc, err := Load(filepath.Join("testdata", "petstore.yaml"))
	require.NoError(t, err)
	c := doc.Components

	// Schema chain through the array item reference.
	pets, err := c.Schemas["Pets"].Dereference(c)
	require.NoError(t, err)
	assert.Equal(t, "array", pets.Source.Type)
	require.NotNil(t, pets.Items)
	assert.Equal(t, "string", pets.Items.Properties["tag"].Source.Type)

	// Request body: examples keep document order, first entry drives the
	// derived example.
	body, err := c.RequestBodies["PetBody"].Dereference(c)
	require.NoError(t, err)
	mt := body.Content["application/json"]
	require.NotNil(t, mt)
	assert.Equal(t, []string{"cat", "dog"}, mt.Examples.Keys())
	assert.Equal(t, map[string]any{"name": "Felix"}, mt.Example)

	// Response: header and content references resolve.
	resp, err := c.Responses["PetList"].Dereference(c)
	require.NoError(t, err)
	assert.Equal(t, "string", resp.Headers["X-Next"].Schema.Source.Type)
	assert.Equal(t, "array", resp.Content["application/json"].Schema.Source.Type)
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("\tbad: indentation"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse document")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read document")
}
