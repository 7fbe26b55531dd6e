package walker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasgraph/internal/testutil"
)

func TestCollectSchemas(t *testing.T) {
	doc := mustParse(t, testutil.PetStoreOAS30)

	collector, err := CollectSchemas(doc)
	require.NoError(t, err)

	assert.Len(t, collector.All, 12)
	assert.Len(t, collector.Components, 11)
	require.Len(t, collector.Inline, 1)
	assert.Equal(t, "/paths/~1pets~1{petId}/get/responses/200/content/application~1json/schema", collector.Inline[0].Pointer)
	assert.NotNil(t, collector.Inline[0].Schema.Ref, "reference schemas are collected too")

	pet := collector.ByPointer["/components/schemas/Pet"]
	require.NotNil(t, pet)
	assert.Equal(t, "Pet", pet.Name)
	assert.True(t, pet.IsComponent)

	id := collector.ByPointer["/components/schemas/Pet/properties/id"]
	require.NotNil(t, id)
	assert.Equal(t, "id", id.Name)
	assert.Equal(t, "int64", id.Schema.Format)
}

func TestCollectSchemas_NilDocument(t *testing.T) {
	_, err := CollectSchemas(nil)
	assert.ErrorIs(t, err, ErrNilDocument)
}

func TestCollectOperations(t *testing.T) {
	doc := mustParse(t, testutil.PetStoreOAS30)

	collector, err := CollectOperations(doc)
	require.NoError(t, err)

	require.Len(t, collector.All, 2)
	assert.Equal(t, "getPet", collector.All[0].Operation.OperationID)
	assert.Equal(t, "get", collector.All[0].Method)
	assert.Equal(t, "/paths/~1pets~1{petId}/get", collector.All[0].Pointer)
	assert.Equal(t, "deletePet", collector.All[1].Operation.OperationID)

	assert.Len(t, collector.ByPath["/pets/{petId}"], 2)
	require.Len(t, collector.ByTag["pets"], 1)
	assert.Equal(t, "getPet", collector.ByTag["pets"][0].Operation.OperationID)
	assert.Empty(t, collector.ByTag["store"])
}

func TestCollectOperations_Webhooks(t *testing.T) {
	doc := mustParse(t, testutil.PetStoreOAS31)

	collector, err := CollectOperations(doc)
	require.NoError(t, err)

	require.Len(t, collector.All, 2)
	assert.False(t, collector.All[0].IsWebhook)
	assert.Equal(t, "listPets", collector.All[0].Operation.OperationID)
	assert.True(t, collector.All[1].IsWebhook)
	assert.Equal(t, "newPet", collector.All[1].PathTemplate)
	assert.Equal(t, "post", collector.All[1].Method)
}

func TestCollectOperations_SkipsCallbacks(t *testing.T) {
	doc := mustParse(t, `openapi: 3.0.3
info: {title: Callbacks, version: '1'}
paths:
  /subscribe:
    post:
      operationId: subscribe
      callbacks:
        event:
          '{$request.body#/url}':
            post:
              operationId: onEvent
              responses:
                '200': {description: OK}
      responses:
        '201': {description: Created}
`)
	collector, err := CollectOperations(doc)
	require.NoError(t, err)
	require.Len(t, collector.All, 1)
	assert.Equal(t, "subscribe", collector.All[0].Operation.OperationID)
}

func TestCollectRefs(t *testing.T) {
	doc := mustParse(t, testutil.PetStoreOAS30)

	refs, err := CollectRefs(doc)
	require.NoError(t, err)
	assert.Equal(t, []RefInfo{
		{Ref: "#/components/parameters/PetId", Pointer: "/paths/~1pets~1{petId}/parameters/0"},
		{Ref: "#/components/schemas/Pet", Pointer: "/paths/~1pets~1{petId}/get/responses/200/content/application~1json/schema"},
		{Ref: "#/components/responses/Error", Pointer: "/paths/~1pets~1{petId}/get/responses/default"},
		{Ref: "#/components/schemas/Owner", Pointer: "/components/schemas/Pet/properties/owner"},
		{Ref: "#/components/schemas/Error", Pointer: "/components/responses/Error/content/application~1json/schema"},
	}, refs)
	assert.Len(t, refs, doc.Stats().ReferenceCount)
}
