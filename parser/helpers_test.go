package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

// forwardRefDoc has an example guided by a schema defined later in the
// document.
const forwardRefDoc = `openapi: 3.1.0
info:
  title: Pets
  version: "1.0"
paths:
  /pets:
    get:
      operationId: listPets
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                $ref: "#/components/schemas/Pet"
              example:
                age: "5"
components:
  schemas:
    Pet:
      type: object
      properties:
        age:
          type: integer
`

// petExamplePointer is the location of the example in forwardRefDoc.
const petExamplePointer = "/paths/~1pets/get/responses/200/content/application~1json/example"

func testContext(t *testing.T) *parseContext {
	t.Helper()
	c := newParseContext(New(), "test.yaml")
	t.Cleanup(c.release)
	return c
}

// buildTree reads src into parse nodes rooted at "".
func buildTree(t *testing.T, c *parseContext, src string) parseNode {
	t.Helper()
	var root yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &root))
	return c.buildNode(&root, "")
}

func parseString(t *testing.T, src string, opts ...Option) *ParseResult {
	t.Helper()
	result, err := ParseWithOptions(append([]Option{WithBytes([]byte(src))}, opts...)...)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func mediaTypeAt(t *testing.T, doc *Document, path, method, code, mediaType string) *MediaType {
	t.Helper()
	item := doc.Paths[path]
	require.NotNil(t, item, "path %s", path)
	op := item.Operations()[method]
	require.NotNil(t, op, "operation %s %s", method, path)
	require.NotNil(t, op.Responses)
	resp := op.Responses.Codes[code]
	require.NotNil(t, resp, "response %s", code)
	mt := resp.Content[mediaType]
	require.NotNil(t, mt, "media type %s", mediaType)
	return mt
}

// petResolver resolves "#/components/schemas/Pet" to an object with an
// integer age.
func petResolver(ref string) (*Schema, bool) {
	if ref != "#/components/schemas/Pet" {
		return nil, false
	}
	return &Schema{
		Type:       SchemaTypes{"object"},
		Properties: map[string]*Schema{"age": {Type: SchemaTypes{"integer"}}},
	}, true
}
