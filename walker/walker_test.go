package walker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasgraph/internal/testutil"
	"github.com/erraggy/oasgraph/parser"
)

func mustParse(t *testing.T, src string) *parser.Document {
	t.Helper()
	doc, err := parser.ParseBytes([]byte(src))
	require.NoError(t, err)
	return doc
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "Continue", Continue.String())
	assert.Equal(t, "SkipChildren", SkipChildren.String())
	assert.Equal(t, "Stop", Stop.String())
	assert.Equal(t, "Action(unknown)", Action(42).String())
	assert.True(t, Stop.IsValid())
	assert.False(t, Action(-1).IsValid())
}

func TestWalk_NilDocument(t *testing.T) {
	assert.ErrorIs(t, Walk(nil), ErrNilDocument)
}

func TestWalk_VisitOrder(t *testing.T) {
	doc := mustParse(t, testutil.PetStoreOAS30)

	var visited []string
	err := Walk(doc,
		WithDocumentHandler(func(wc *WalkContext, _ *parser.Document) Action {
			visited = append(visited, "document "+wc.Pointer)
			return Continue
		}),
		WithInfoHandler(func(wc *WalkContext, _ *parser.Info) Action {
			visited = append(visited, "info "+wc.Pointer)
			return Continue
		}),
		WithServerHandler(func(wc *WalkContext, _ *parser.Server) Action {
			visited = append(visited, "server "+wc.Pointer)
			return Continue
		}),
		WithTagHandler(func(wc *WalkContext, tag *parser.Tag) Action {
			visited = append(visited, "tag "+tag.Name)
			return Continue
		}),
		WithPathItemHandler(func(wc *WalkContext, _ *parser.PathItem) Action {
			visited = append(visited, "path "+wc.PathTemplate)
			return Continue
		}),
		WithOperationHandler(func(wc *WalkContext, op *parser.Operation) Action {
			visited = append(visited, "operation "+op.OperationID)
			return Continue
		}),
		WithParameterHandler(func(wc *WalkContext, _ *parser.Parameter) Action {
			visited = append(visited, "parameter "+wc.Pointer)
			return Continue
		}),
		WithResponseHandler(func(wc *WalkContext, _ *parser.Response) Action {
			visited = append(visited, "response "+wc.Pointer)
			return Continue
		}),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"document ",
		"info /info",
		"server /servers/0",
		"tag pets",
		"tag store",
		"path /pets/{petId}",
		"parameter /paths/~1pets~1{petId}/parameters/0",
		"parameter /paths/~1pets~1{petId}/parameters/1",
		"operation getPet",
		"parameter /paths/~1pets~1{petId}/get/parameters/0",
		"response /paths/~1pets~1{petId}/get/responses/200",
		"response /paths/~1pets~1{petId}/get/responses/default",
		"operation deletePet",
		"response /paths/~1pets~1{petId}/delete/responses/204",
		"response /components/responses/Error",
		"parameter /components/parameters/PetId",
	}, visited)
}

func TestWalk_Context(t *testing.T) {
	doc := mustParse(t, testutil.PetStoreOAS30)

	type scope struct {
		Method, StatusCode, Name string
		IsComponent              bool
	}
	var got []scope
	err := Walk(doc,
		WithResponseHandler(func(wc *WalkContext, _ *parser.Response) Action {
			got = append(got, scope{wc.Method, wc.StatusCode, wc.Name, wc.IsComponent})
			return Continue
		}),
	)
	require.NoError(t, err)
	assert.Equal(t, []scope{
		{"get", "200", "", false},
		{"get", "default", "", false},
		{"delete", "204", "", false},
		{"", "", "Error", true},
	}, got)
}

func TestWalk_ScopeHelpers(t *testing.T) {
	doc := mustParse(t, testutil.PetStoreOAS30)

	err := Walk(doc,
		WithMediaTypeHandler(func(wc *WalkContext, _ *parser.MediaType) Action {
			if wc.IsComponent {
				assert.False(t, wc.InPathsScope())
				assert.False(t, wc.InOperationScope())
				return Continue
			}
			assert.True(t, wc.InPathsScope())
			assert.True(t, wc.InOperationScope())
			assert.True(t, wc.InResponseScope())
			assert.Equal(t, "application/json", wc.Name)
			return Continue
		}),
	)
	require.NoError(t, err)
}

func TestWalk_SkipChildren(t *testing.T) {
	doc := mustParse(t, testutil.PetStoreOAS30)

	var schemas []string
	err := Walk(doc,
		WithSchemaHandler(func(wc *WalkContext, _ *parser.Schema) Action {
			schemas = append(schemas, wc.Pointer)
			if wc.Name == "Pet" {
				return SkipChildren
			}
			return Continue
		}),
	)
	require.NoError(t, err)
	assert.Contains(t, schemas, "/components/schemas/Pet")
	assert.Contains(t, schemas, "/components/schemas/Owner/properties/name")
	assert.NotContains(t, schemas, "/components/schemas/Pet/properties/id")
}

func TestWalk_Stop(t *testing.T) {
	doc := mustParse(t, testutil.PetStoreOAS30)

	var ops, schemas int
	err := Walk(doc,
		WithOperationHandler(func(*WalkContext, *parser.Operation) Action {
			ops++
			return Stop
		}),
		WithSchemaHandler(func(*WalkContext, *parser.Schema) Action {
			schemas++
			return Continue
		}),
	)
	require.NoError(t, err)
	assert.Equal(t, 1, ops)
	assert.Zero(t, schemas, "nothing is visited after Stop")
}

func TestWalk_RefStop(t *testing.T) {
	doc := mustParse(t, testutil.PetStoreOAS30)

	var refs []string
	err := Walk(doc,
		WithRefHandler(func(wc *WalkContext, ref *parser.Reference) Action {
			refs = append(refs, ref.Ref)
			return Stop
		}),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"#/components/parameters/PetId"}, refs)
}

func TestWalk_UserContext(t *testing.T) {
	doc := mustParse(t, testutil.PetStoreOAS30)

	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "value")
	var seen any
	err := Walk(doc,
		WithUserContext(ctx),
		WithInfoHandler(func(wc *WalkContext, _ *parser.Info) Action {
			seen = wc.Context().Value(key{})
			return Continue
		}),
	)
	require.NoError(t, err)
	assert.Equal(t, "value", seen)

	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err = Walk(doc,
		WithUserContext(canceled),
		WithDocumentHandler(func(*WalkContext, *parser.Document) Action {
			called = true
			return Continue
		}),
	)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestWalk_DefaultContext(t *testing.T) {
	wc := &WalkContext{}
	assert.Equal(t, context.Background(), wc.Context())
}

func TestWalk_SchemaCycle(t *testing.T) {
	node := &parser.Schema{Type: "object"}
	node.Properties = map[string]*parser.Schema{"self": node}
	doc := &parser.Document{
		OpenAPI:    "3.0.3",
		Components: &parser.Components{Schemas: map[string]*parser.Schema{"Node": node}},
	}

	var visited, skipped []string
	err := Walk(doc,
		WithSchemaHandler(func(wc *WalkContext, _ *parser.Schema) Action {
			visited = append(visited, wc.Pointer)
			return Continue
		}),
		WithSchemaSkippedHandler(func(wc *WalkContext, reason string, _ *parser.Schema) {
			skipped = append(skipped, reason+" "+wc.Pointer)
		}),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"/components/schemas/Node"}, visited)
	assert.Equal(t, []string{"cycle /components/schemas/Node/properties/self"}, skipped)
}

func TestWalk_SharedSchemaIsNotACycle(t *testing.T) {
	shared := &parser.Schema{Type: "string"}
	root := &parser.Schema{
		Type:       "object",
		Properties: map[string]*parser.Schema{"a": shared, "b": shared},
	}
	doc := &parser.Document{
		OpenAPI:    "3.0.3",
		Components: &parser.Components{Schemas: map[string]*parser.Schema{"Root": root}},
	}

	var visited []string
	err := Walk(doc,
		WithSchemaHandler(func(wc *WalkContext, _ *parser.Schema) Action {
			visited = append(visited, wc.Pointer)
			return Continue
		}),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"/components/schemas/Root",
		"/components/schemas/Root/properties/a",
		"/components/schemas/Root/properties/b",
	}, visited)
}

func TestWalk_MaxSchemaDepth(t *testing.T) {
	leaf := &parser.Schema{Type: "string"}
	mid := &parser.Schema{Type: "array", Items: leaf}
	root := &parser.Schema{Type: "array", Items: mid}
	doc := &parser.Document{
		OpenAPI:    "3.0.3",
		Components: &parser.Components{Schemas: map[string]*parser.Schema{"Root": root}},
	}

	var visited, skipped []string
	err := Walk(doc,
		WithMaxSchemaDepth(1),
		WithSchemaHandler(func(wc *WalkContext, _ *parser.Schema) Action {
			visited = append(visited, wc.Pointer)
			return Continue
		}),
		WithSchemaSkippedHandler(func(wc *WalkContext, reason string, _ *parser.Schema) {
			skipped = append(skipped, reason+" "+wc.Pointer)
		}),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"/components/schemas/Root", "/components/schemas/Root/items"}, visited)
	assert.Equal(t, []string{"depth /components/schemas/Root/items/items"}, skipped)
}

func TestWalk_Swagger20Pointers(t *testing.T) {
	doc := mustParse(t, testutil.PetStoreSwagger20)

	var schemas, schemes []string
	err := Walk(doc,
		WithSchemaHandler(func(wc *WalkContext, _ *parser.Schema) Action {
			schemas = append(schemas, wc.Pointer)
			return Continue
		}),
		WithSecuritySchemeHandler(func(wc *WalkContext, _ *parser.SecurityScheme) Action {
			schemes = append(schemes, wc.Pointer)
			return Continue
		}),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"/paths/~1pets/get/responses/200/schema",
		"/paths/~1pets/get/responses/200/schema/items",
		"/definitions/Pet",
		"/definitions/Pet/properties/name",
		"/definitions/Pet/properties/tag",
		"/definitions/Tag",
	}, schemas)
	assert.Equal(t, []string{"/securityDefinitions/apiKey"}, schemes)
}

func TestWalk_Webhooks(t *testing.T) {
	doc := mustParse(t, testutil.PetStoreOAS31)

	var bodies []string
	err := Walk(doc,
		WithRequestBodyHandler(func(wc *WalkContext, _ *parser.RequestBody) Action {
			bodies = append(bodies, wc.PathTemplate+" "+wc.Method+" "+wc.Pointer)
			return Continue
		}),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"newPet post /webhooks/newPet/post/requestBody"}, bodies)
}

func TestWalk_MutatesNodes(t *testing.T) {
	doc := mustParse(t, testutil.PetStoreOAS30)

	err := Walk(doc,
		WithOperationHandler(func(_ *WalkContext, op *parser.Operation) Action {
			op.Summary = "walked " + op.OperationID
			return SkipChildren
		}),
	)
	require.NoError(t, err)
	assert.Equal(t, "walked getPet", doc.OperationByOperationID("getPet").Summary)
}
