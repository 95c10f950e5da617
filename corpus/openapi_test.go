package corpus_test

import (
	"testing"

	"github.com/docdex/docdex/corpus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const petstoreYAML = `openapi: "3.0.0"
info:
  title: Petstore
  version: "1.2.3"
  description: A sample API for pets.
paths:
  /pets:
    get:
      operationId: listPets
      summary: List all pets
      description: Returns every pet.
      responses:
        "200":
          description: OK
    post:
      operationId: createPet
  /pets/{id}:
    get:
      operationId: getPet
`

func TestLoadFile_OpenAPI(t *testing.T) {
	t.Parallel()

	t.Run("expands a YAML specification into documents", func(t *testing.T) {
		t.Parallel()

		path := writeFixture(t, "openapi.yaml", petstoreYAML)

		docs, err := corpus.LoadFile(path)

		require.NoError(t, err)
		require.Len(t, docs, 4, "info document plus one per operation")

		// Overview document comes first.
		assert.Equal(t, "Petstore v1.2.3", docs[0].Title)
		assert.Equal(t, "api://info", docs[0].URL)
		assert.Equal(t, "A sample API for pets.", docs[0].Content)

		// Paths are expanded in sorted order, methods get-first.
		assert.Equal(t, "listPets", docs[1].Title)
		assert.Equal(t, "api://get_pets", docs[1].URL)
		assert.Contains(t, docs[1].Content, "Method: GET")
		assert.Contains(t, docs[1].Content, "Path: /pets")
		assert.Contains(t, docs[1].Content, "Summary: List all pets")
		assert.Contains(t, docs[1].Content, "Description: Returns every pet.")

		assert.Equal(t, "createPet", docs[2].Title)
		assert.Equal(t, "api://post_pets", docs[2].URL)

		assert.Equal(t, "getPet", docs[3].Title)
		assert.Equal(t, "api://get_pets_{id}", docs[3].URL)
	})

	t.Run("expands a JSON specification", func(t *testing.T) {
		t.Parallel()

		path := writeFixture(t, "openapi.json", `{
  "openapi": "3.0.0",
  "info": {"title": "Tiny", "version": "0.1"},
  "paths": {
    "/status": {
      "get": {"operationId": "getStatus"}
    }
  }
}`)

		docs, err := corpus.LoadFile(path)

		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "Tiny v0.1", docs[0].Title)
		assert.Equal(t, "getStatus", docs[1].Title)
		assert.Equal(t, "api://get_status", docs[1].URL)
	})

	t.Run("recognizes swagger 2.0 specifications", func(t *testing.T) {
		t.Parallel()

		path := writeFixture(t, "swagger.json", `{
  "swagger": "2.0",
  "info": {"title": "Legacy", "version": "2"},
  "paths": {}
}`)

		docs, err := corpus.LoadFile(path)

		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "Legacy v2", docs[0].Title)
	})

	t.Run("fills defaults for sparse specifications", func(t *testing.T) {
		t.Parallel()

		path := writeFixture(t, "sparse.yaml", `openapi: "3.0.0"
paths:
  /things:
    delete: {}
`)

		docs, err := corpus.LoadFile(path)

		require.NoError(t, err)
		require.Len(t, docs, 2)

		assert.Equal(t, "API Documentation vunknown", docs[0].Title)
		assert.Equal(t, "No description", docs[0].Content)

		assert.Equal(t, "DELETE /things", docs[1].Title, "title falls back to method and path")
		assert.Contains(t, docs[1].Content, "Summary: No summary")
		assert.Contains(t, docs[1].Content, "Description: No description")
		assert.Contains(t, docs[1].Content, "Parameters: []")
		assert.Contains(t, docs[1].Content, "Responses: {}")
	})

	t.Run("ignores non-operation keys in path items", func(t *testing.T) {
		t.Parallel()

		path := writeFixture(t, "params.yaml", `openapi: "3.0.0"
info:
  title: WithParams
  version: "1"
paths:
  /users:
    parameters:
      - name: limit
    get:
      operationId: listUsers
`)

		docs, err := corpus.LoadFile(path)

		require.NoError(t, err)
		require.Len(t, docs, 2, "the path-level parameters key is not an operation")
		assert.Equal(t, "listUsers", docs[1].Title)
	})
}
