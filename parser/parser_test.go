package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasgraph/internal/testutil"
	"github.com/erraggy/oasgraph/oaserrors"
	"github.com/erraggy/oasgraph/rawdoc"
)

func mustParse(t *testing.T, src string, opts ...Option) *Document {
	t.Helper()
	doc, err := ParseBytes([]byte(src), opts...)
	require.NoError(t, err)
	return doc
}

func TestParseOAS2(t *testing.T) {
	doc := mustParse(t, testutil.PetStoreSwagger20)

	assert.Equal(t, "2.0", doc.Swagger)
	assert.Empty(t, doc.OpenAPI)
	assert.Equal(t, OASVersion20, doc.Version())
	assert.Equal(t, DialectSwagger20, doc.Dialect())
	assert.Equal(t, "api.example.com", doc.Host)
	assert.Equal(t, "/v1", doc.BasePath)
	assert.Equal(t, []string{"https"}, doc.Schemes)

	require.NotNil(t, doc.Components)
	assert.True(t, doc.Components.Legacy())
	assert.Contains(t, doc.Components.Schemas, "Pet")
	assert.Contains(t, doc.Components.Parameters, "Limit")
	assert.Contains(t, doc.Components.Responses, "NotFound")
	assert.Contains(t, doc.Components.SecuritySchemes, "apiKey")

	op := doc.Paths.Get("/pets").Operation("get")
	require.NotNil(t, op)
	resp := op.Responses.Get("200")
	require.NotNil(t, resp)
	require.NotNil(t, resp.Schema, "2.0 responses carry their schema directly")
	assert.Equal(t, "#/definitions/Pet", resp.Schema.Items.Ref.Ref)
}

func TestParseOAS30(t *testing.T) {
	doc := mustParse(t, testutil.PetStoreOAS30)

	assert.Equal(t, "3.0.3", doc.OpenAPI)
	assert.Equal(t, OASVersion303, doc.Version())
	assert.Equal(t, DialectOAS30, doc.Dialect())
	require.NotNil(t, doc.Info)
	assert.Equal(t, "Pet Store", doc.Info.Title)
	require.Len(t, doc.Servers, 1)
	assert.Equal(t, "https://api.example.com/v1", doc.Servers[0].URL)
	require.Len(t, doc.Tags, 2)

	item := doc.Paths.Get("/pets/{petId}")
	require.NotNil(t, item)
	require.Len(t, item.Parameters, 2)
	require.NotNil(t, item.Parameters[0].Ref)
	assert.Equal(t, "#/components/parameters/PetId", item.Parameters[0].Ref.Ref)
	assert.Empty(t, item.Parameters[0].Name, "a reference carries no other attribute")

	get := item.Operation("get")
	require.NotNil(t, get)
	assert.Equal(t, "getPet", get.OperationID)
	assert.Equal(t, "get", get.Method)
	assert.Equal(t, "/pets/{petId}", get.Path)
	require.NotNil(t, get.Responses.Default)
	require.NotNil(t, get.Responses.Default.Ref)

	mt := get.Responses.Get("200").Content["application/json"]
	require.NotNil(t, mt)
	require.NotNil(t, mt.Schema.Ref)
	assert.Empty(t, mt.Schema.Ref.Description, "3.0 does not declare reference descriptions")
	assert.Equal(t, "ignored in 3.0", mt.Schema.Ref.Extra["description"])
}

func TestParseOAS31(t *testing.T) {
	doc := mustParse(t, testutil.PetStoreOAS31)

	assert.Equal(t, OASVersion310, doc.Version())
	assert.Equal(t, DialectOAS31, doc.Dialect())
	require.NotNil(t, doc.Webhooks)
	assert.Equal(t, 1, doc.Webhooks.Len())

	pet := doc.Components.Schemas["Pet"]
	require.NotNil(t, pet)
	assert.Equal(t, []string{"object", "null"}, pet.Types())
	assert.True(t, pet.IsNullable())

	param := doc.Paths.Get("/pets").Operation("get").Parameters[0]
	require.NotNil(t, param.Ref)
	assert.Equal(t, "How many pets to return", param.Ref.Description)
	assert.Empty(t, param.Ref.Extra)
}

func TestParseVersionDetection(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		version OASVersion
		dialect Dialect
	}{
		{"unquoted swagger", "swagger: 2.0\ninfo: {title: t, version: '1'}\n", OASVersion20, DialectSwagger20},
		{"3.0.0", "openapi: 3.0.0\n", OASVersion300, DialectOAS30},
		{"3.1.1", "openapi: 3.1.1\n", OASVersion311, DialectOAS31},
		{"3.2.0", "openapi: 3.2.0\n", OASVersion320, DialectOAS31},
		{"future patch", "openapi: 3.0.9\n", OASVersion304, DialectOAS30},
		{"no version", "info: {title: t, version: '1'}\n", OASVersion300, DialectOAS30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, tt.src)
			assert.Equal(t, tt.version, doc.Version())
			assert.Equal(t, tt.dialect, doc.Dialect())
		})
	}
}

func TestParseUnquotedVersionRoundTrips(t *testing.T) {
	raw := testutil.Decode(t, "swagger: 2.0\ninfo: {title: t, version: '1'}\n")
	doc, err := Construct(raw)
	require.NoError(t, err)

	assert.Empty(t, doc.Swagger, "a numeric version is not a string attribute")
	assert.Contains(t, doc.Extra, "swagger")
	assert.True(t, rawdoc.Equal(raw, doc.ToRaw()))
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name string
		src  string
		path string
	}{
		{"root sequence", "- a\n- b\n", ""},
		{"unsupported version", "openapi: 4.0.0\n", "/openapi"},
		{"swagger field with 3.x", "swagger: '3.0.0'\n", "/swagger"},
		{"openapi field with 2.0", "openapi: '2.0'\n", "/openapi"},
		{"properties as list", "openapi: 3.0.3\ncomponents:\n  schemas:\n    A:\n      properties: [a]\n", "/components/schemas/A/properties"},
		{"numeric ref", "openapi: 3.0.3\ncomponents:\n  schemas:\n    A:\n      $ref: 12\n", "/components/schemas/A/$ref"},
		{"title not string", "openapi: 3.0.3\ninfo:\n  title: [x]\n", "/info/title"},
		{"parameters not list", "openapi: 3.0.3\npaths:\n  /a:\n    parameters: {}\n", "/paths/~1a/parameters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBytes([]byte(tt.src))
			require.Error(t, err)
			assert.True(t, errors.Is(err, oaserrors.ErrMalformedDocument), "got %v", err)
			var merr *oaserrors.MalformedDocumentError
			require.True(t, errors.As(err, &merr))
			assert.Equal(t, tt.path, merr.Path)
		})
	}
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := ParseBytes([]byte("openapi: [unclosed"))
	assert.Error(t, err)

	_, err = ParseBytes(nil)
	assert.ErrorIs(t, err, rawdoc.ErrEmptyDocument)
}

func TestRoundTrip(t *testing.T) {
	fixtures := map[string]string{
		"oas30":     testutil.PetStoreOAS30,
		"oas31":     testutil.PetStoreOAS31,
		"swagger20": testutil.PetStoreSwagger20,
		"circular":  testutil.CircularSchemas,
	}
	for name, src := range fixtures {
		t.Run(name, func(t *testing.T) {
			raw := testutil.Decode(t, src)
			doc, err := Construct(raw)
			require.NoError(t, err)

			out := doc.ToRaw()
			assert.True(t, rawdoc.Equal(raw, out), "ToRaw should reproduce the input")

			again, err := Construct(out)
			require.NoError(t, err)
			assert.True(t, rawdoc.Equal(out, again.ToRaw()), "round trip should be idempotent")
		})
	}
}

func TestConstructDoesNotAliasInput(t *testing.T) {
	raw := map[string]any{
		"openapi": "3.0.3",
		"info":    map[string]any{"title": "before", "version": "1"},
	}
	doc, err := Construct(raw)
	require.NoError(t, err)

	raw["info"].(map[string]any)["title"] = "after"
	assert.Equal(t, "before", doc.Info.Title)

	copied := doc.Raw()
	copied.Set("openapi", "3.1.0")
	v, _ := doc.Raw().Get("openapi")
	assert.Equal(t, "3.0.3", v, "Raw returns a copy")
}

func TestConstructNodeRoundTrip(t *testing.T) {
	tests := []struct {
		kind Kind
		src  string
	}{
		{KindInfo, "title: API\nversion: '1'\nsummary: short\nlicense: {name: MIT, identifier: MIT}\ncontact: {name: me, email: me@example.com}\nx-logo: logo.png\n"},
		{KindServer, "url: 'https://{env}.example.com'\nvariables:\n  env:\n    default: prod\n    enum: [prod, dev]\n"},
		{KindTag, "name: pets\ndescription: Pets\nexternalDocs: {url: 'https://example.com'}\n"},
		{KindParameter, "name: id\nin: path\nrequired: true\nstyle: simple\nexplode: false\nschema: {type: string}\nexamples:\n  one: {value: '1'}\nx-extra: [1, 2]\n"},
		{KindParameter, "name: limit\nin: query\ntype: integer\ncollectionFormat: csv\n"},
		{KindHeader, "description: Rate\nschema: {type: integer}\n"},
		{KindRequestBody, "description: Body\nrequired: true\ncontent:\n  application/json:\n    schema: {type: object}\n    encoding:\n      field: {contentType: text/plain, headers: {X-A: {schema: {type: string}}}}\n"},
		{KindResponses, "'200': {description: OK}\n'4XX': {description: Client}\ndefault: {description: Other}\nx-note: kept\n"},
		{KindResponse, "description: OK\nheaders: {X-Rate: {$ref: '#/components/headers/Rate'}}\nlinks:\n  self: {operationId: getPet, parameters: {id: '$response.body#/id'}}\n"},
		{KindExample, "summary: One\nvalue: {id: 1, tags: [a]}\n"},
		{KindLink, "operationRef: '#/paths/~1pets/get'\nserver: {url: 'https://example.com'}\nrequestBody: '$request.body'\n"},
		{KindCallback, "'{$request.body#/url}':\n  post:\n    responses: {'200': {description: OK}}\nx-cb: true\n"},
		{KindSecurityScheme, "type: oauth2\nflows:\n  implicit:\n    authorizationUrl: 'https://example.com/auth'\n    scopes: {read: Read, write: Write}\n"},
		{KindSecurityScheme, "type: oauth2\nflow: implicit\nauthorizationUrl: 'https://example.com/auth'\nscopes: {read: Read}\n"},
		{KindSecurityRequirement, "api_key: []\noauth: [read, write]\n"},
		{KindSchema, "type: object\nproperties:\n  a: {type: string, pattern: '^a', minLength: 1}\n  b: true\nadditionalProperties: false\ndiscriminator: {propertyName: kind}\nallOf: [{$ref: '#/components/schemas/Base'}]\nnullable: true\nx-internal: true\n"},
		{KindSchema, "type: array\nitems: [{type: string}, {type: integer}]\n"},
		{KindGeneric, "anything: [1, {a: b}]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			raw := testutil.Decode(t, tt.src)
			n, err := ConstructNode(tt.kind, raw, OASVersion310)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, n.Kind())
			assert.True(t, rawdoc.Equal(raw, n.ToRaw()), "got %v", rawdoc.Plain(n.ToRaw()))
		})
	}
}

func TestConstructNodeReference(t *testing.T) {
	raw := map[string]any{"$ref": "#/components/schemas/Pet", "description": "sibling"}

	n, err := ConstructNode(KindSchema, raw, OASVersion303)
	require.NoError(t, err)
	ref, ok := n.(*Reference)
	require.True(t, ok, "a $ref mapping yields a Reference")
	assert.Equal(t, "#/components/schemas/Pet", ref.Ref)
	assert.Empty(t, ref.Description)
	assert.Equal(t, "sibling", ref.Extra["description"])
	assert.True(t, rawdoc.Equal(raw, ref.ToRaw()))

	n, err = ConstructNode(KindSchema, raw, OASVersion310)
	require.NoError(t, err)
	ref = n.(*Reference)
	assert.Equal(t, "sibling", ref.Description)
	assert.Empty(t, ref.Extra)
	assert.True(t, rawdoc.Equal(raw, ref.ToRaw()))
}

func TestConstructNodeScalarValues(t *testing.T) {
	n, err := ConstructNode(KindGeneric, 42, OASVersion303)
	require.NoError(t, err)
	assert.Equal(t, 42, n.ToRaw())

	_, err = ConstructNode(KindInfo, "not a mapping", OASVersion303)
	assert.ErrorIs(t, err, oaserrors.ErrMalformedDocument)

	n, err = ConstructNode(KindDocument, map[string]any{"openapi": "3.1.0"}, OASVersion303)
	require.NoError(t, err)
	assert.Equal(t, OASVersion310, n.(*Document).Version(), "documents carry their own version")
}

func TestBooleanSchemas(t *testing.T) {
	doc := mustParse(t, `openapi: 3.1.0
components:
  schemas:
    Anything: true
    Nothing: false
    Closed:
      type: object
      additionalProperties: false
`)
	anything := doc.Components.Schemas["Anything"]
	require.True(t, anything.IsBoolean())
	assert.True(t, *anything.Boolean)
	assert.Equal(t, true, anything.ToRaw())

	nothing := doc.Components.Schemas["Nothing"]
	require.True(t, nothing.IsBoolean())
	assert.False(t, *nothing.Boolean)

	closed := doc.Components.Schemas["Closed"]
	require.NotNil(t, closed.AdditionalProperties)
	assert.Equal(t, false, closed.AdditionalProperties.ToRaw())
}

func TestSchemaKeywordsPreserved(t *testing.T) {
	doc := mustParse(t, testutil.PetStoreOAS30)
	status := doc.Components.Schemas["Pet"].Properties["status"]
	require.NotNil(t, status)

	assert.Equal(t, []any{"available", "sold"}, status.Enum)
	v, ok := GetExtension(status, "internal")
	assert.True(t, ok)
	assert.Equal(t, true, v)
	assert.Equal(t, map[string]any{"x-internal": true}, VendorExtensions(status))

	id := doc.Components.Schemas["Pet"].Properties["id"]
	assert.Equal(t, "int64", id.Format)
}

func TestNullAndEmptyValuesStayInExtra(t *testing.T) {
	raw := testutil.Decode(t, `openapi: 3.0.3
info:
  title: ''
  version: '1'
  description: null
paths:
  /a: null
`)
	doc, err := Construct(raw)
	require.NoError(t, err)

	assert.Empty(t, doc.Info.Title)
	assert.Contains(t, doc.Info.Extra, "title")
	assert.Contains(t, doc.Info.Extra, "description")
	assert.Nil(t, doc.Info.Extra["description"])
	assert.Equal(t, 0, doc.Paths.Len())
	assert.Contains(t, doc.Paths.Extra, "/a")
	assert.True(t, rawdoc.Equal(raw, doc.ToRaw()))
}

func TestEmptyContainersAreEmitted(t *testing.T) {
	raw := testutil.Decode(t, "openapi: 3.0.3\npaths: {}\ntags: []\nsecurity: [{}]\ncomponents: {schemas: {}}\n")
	doc, err := Construct(raw)
	require.NoError(t, err)

	assert.NotNil(t, doc.Paths)
	assert.NotNil(t, doc.Tags)
	assert.NotNil(t, doc.Components.Schemas)
	assert.True(t, rawdoc.Equal(raw, doc.ToRaw()))
}

func TestResponsesKeySplit(t *testing.T) {
	n, err := ConstructNode(KindResponses, testutil.Decode(t, `'200': {description: OK}
'5XX': {description: Server}
default: {description: Other}
x-code: 1
`), OASVersion303)
	require.NoError(t, err)
	r := n.(*Responses)

	assert.Len(t, r.Codes, 2)
	assert.NotNil(t, r.Get("200"))
	assert.NotNil(t, r.Get("5XX"))
	assert.Equal(t, "Other", r.Get("default").Description)
	assert.Nil(t, r.Get("404"))
	assert.Equal(t, map[string]any{"x-code": 1}, r.Extra)
}

func TestNilNodesToRaw(t *testing.T) {
	nodes := []Node{
		(*Document)(nil), (*Info)(nil), (*Paths)(nil), (*PathItem)(nil),
		(*Operation)(nil), (*Parameter)(nil), (*Schema)(nil), (*Components)(nil),
		(*Responses)(nil), (*Response)(nil), (*Reference)(nil), (*Generic)(nil),
	}
	for _, n := range nodes {
		assert.Nil(t, n.ToRaw(), "%s", n.Kind())
		assert.Nil(t, n.Extensions(), "%s", n.Kind())
	}
}

func TestOperationByOperationID(t *testing.T) {
	doc := mustParse(t, testutil.PetStoreOAS31)

	op := doc.OperationByOperationID("listPets")
	require.NotNil(t, op)
	assert.Equal(t, "/pets", op.Path)

	hook := doc.OperationByOperationID("newPetHook")
	require.NotNil(t, hook, "webhooks are searched")
	assert.Equal(t, "post", hook.Method)
	assert.Equal(t, "newPet", hook.Path)

	assert.Nil(t, doc.OperationByOperationID("missing"))
	assert.Nil(t, doc.OperationByOperationID(""))
}

func TestAllOperations(t *testing.T) {
	doc := mustParse(t, testutil.PetStoreOAS30)

	var ids []string
	for op := range doc.AllOperations() {
		ids = append(ids, op.OperationID)
	}
	assert.Equal(t, []string{"getPet", "deletePet"}, ids)

	var first []string
	for op := range doc.AllOperations() {
		first = append(first, op.OperationID)
		break
	}
	assert.Equal(t, []string{"getPet"}, first)
}

func TestEffectiveParameters(t *testing.T) {
	doc := mustParse(t, testutil.PetStoreOAS30)

	params, err := doc.EffectiveParameters("/pets/{petId}", "get")
	require.NoError(t, err)
	require.Len(t, params, 2)
	require.NotNil(t, params[0].Ref, "inherited path parameter comes first")
	assert.Equal(t, "#/components/parameters/PetId", params[0].Ref.Ref)
	assert.Equal(t, "operation level", params[1].Description, "operation parameter overrides path parameter")

	params, err = doc.EffectiveParameters("/pets/{petId}", "delete")
	require.NoError(t, err)
	assert.Len(t, params, 2, "delete inherits both path parameters")

	params, err = doc.EffectiveParameters("/missing", "get")
	require.NoError(t, err)
	assert.Nil(t, params)
}

func TestEffectiveParametersByReferenceTarget(t *testing.T) {
	doc := mustParse(t, `openapi: 3.0.3
paths:
  /items/{id}:
    parameters:
      - $ref: '#/components/parameters/Id'
    get:
      parameters:
        - name: id
          in: path
          description: overridden
      responses: {}
components:
  parameters:
    Id:
      $ref: '#/components/parameters/IdTarget'
    IdTarget:
      name: id
      in: path
      required: true
`)
	item := doc.Paths.Get("/items/{id}")

	byDecl := item.EffectiveParameters("get")
	assert.Len(t, byDecl, 2, "references are keyed by their $ref string")

	params, err := doc.EffectiveParameters("/items/{id}", "get")
	require.NoError(t, err)
	require.Len(t, params, 1)
	assert.Equal(t, "overridden", params[0].Description)
}

func TestEffectiveParametersReferenceOutsideComponents(t *testing.T) {
	doc := mustParse(t, `openapi: 3.0.3
x-params:
  id:
    name: id
    in: path
    required: true
paths:
  /items/{id}:
    parameters:
      - $ref: '#/x-params/id'
      - name: verbose
        in: query
    get:
      parameters:
        - name: id
          in: path
          description: overridden
      responses: {}
`)
	params, err := doc.EffectiveParameters("/items/{id}", "get")
	require.NoError(t, err)
	require.Len(t, params, 2)
	assert.Equal(t, "verbose", params[0].Name)
	assert.Equal(t, "overridden", params[1].Description)
}

func TestEffectiveParametersReferenceCycle(t *testing.T) {
	doc := mustParse(t, `openapi: 3.0.3
paths:
  /a:
    parameters:
      - $ref: '#/components/parameters/P'
    get:
      responses: {}
components:
  parameters:
    P:
      $ref: '#/components/parameters/Q'
    Q:
      $ref: '#/components/parameters/P'
`)
	_, err := doc.EffectiveParameters("/a", "get")
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrCircularReference)
}

func TestParameterIsRequired(t *testing.T) {
	assert.True(t, (&Parameter{In: ParamInPath}).IsRequired())
	assert.False(t, (&Parameter{In: ParamInQuery}).IsRequired())
	assert.True(t, (&Parameter{In: ParamInQuery, Required: boolPtr(true)}).IsRequired())
	assert.False(t, (*Parameter)(nil).IsRequired())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "Schema", KindSchema.String())
	assert.Equal(t, "Reference", KindReference.String())
	assert.Equal(t, "Unknown", Kind(-1).String())
}
