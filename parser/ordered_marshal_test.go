package parser

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasgraph/internal/testutil"
)

// assertKeyOrder verifies that keys appear in the expected order within the output string.
func assertKeyOrder(t *testing.T, output string, keys []string, format string) {
	t.Helper()
	if len(keys) < 2 {
		return
	}
	for i := 0; i < len(keys)-1; i++ {
		idx1 := strings.Index(output, keys[i])
		idx2 := strings.Index(output, keys[i+1])
		assert.True(t, idx1 >= 0 && idx1 < idx2, "%s: expected %q before %q", format, keys[i], keys[i+1])
	}
}

func TestMarshalJSON(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		checkOrder []string
	}{
		{
			name: "declared fields before sorted extensions",
			input: `{
				"x-zebra": 1,
				"info": {"x-b": 2, "version": "1.0.0", "x-a": 1, "title": "Order Test"},
				"paths": {},
				"openapi": "3.1.0"
			}`,
			checkOrder: []string{`"openapi"`, `"info"`, `"title"`, `"version"`, `"x-a"`, `"x-b"`, `"paths"`, `"x-zebra"`},
		},
		{
			name: "preserves path order",
			input: `{
				"openapi": "3.1.0",
				"paths": {
					"/zebra": {"summary": "Z endpoint"},
					"/alpha": {"summary": "A endpoint"},
					"/middle": {"summary": "M endpoint"}
				}
			}`,
			checkOrder: []string{`"/zebra"`, `"/alpha"`, `"/middle"`},
		},
		{
			name: "preserves operation order",
			input: `{
				"openapi": "3.0.3",
				"paths": {
					"/users": {
						"post": {"responses": {"201": {"description": "Created"}}},
						"get": {"responses": {"200": {"description": "OK"}}}
					}
				}
			}`,
			checkOrder: []string{`"post"`, `"get"`},
		},
		{
			name: "status codes before default",
			input: `{
				"openapi": "3.0.3",
				"paths": {
					"/users": {
						"get": {"responses": {"default": {"description": "Other"}, "404": {"description": "Missing"}, "200": {"description": "OK"}}}
					}
				}
			}`,
			checkOrder: []string{`"200"`, `"404"`, `"default"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseBytes([]byte(tt.input))
			require.NoError(t, err)

			out, err := MarshalJSON(doc)
			require.NoError(t, err)
			assert.True(t, json.Valid(out))
			assertKeyOrder(t, string(out), tt.checkOrder, "JSON")

			yamlOut, err := MarshalYAML(doc)
			require.NoError(t, err)
			yamlKeys := make([]string, len(tt.checkOrder))
			for i, k := range tt.checkOrder {
				yamlKeys[i] = strings.Trim(k, `"`)
			}
			assertKeyOrder(t, string(yamlOut), yamlKeys, "YAML")
		})
	}
}

func TestMarshalJSONIndent(t *testing.T) {
	n, err := ConstructNode(KindTag, map[string]any{"name": "pets", "description": "Pets"}, OASVersion303)
	require.NoError(t, err)

	out, err := MarshalJSONIndent(n, "", "  ")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"name\": \"pets\",\n  \"description\": \"Pets\"\n}", string(out))
}

func TestMarshalYAMLRoundtrip(t *testing.T) {
	for name, src := range map[string]string{
		"oas30":     testutil.PetStoreOAS30,
		"oas31":     testutil.PetStoreOAS31,
		"swagger20": testutil.PetStoreSwagger20,
	} {
		t.Run(name, func(t *testing.T) {
			doc := mustParse(t, src)

			out, err := MarshalYAML(doc)
			require.NoError(t, err)

			var generic map[string]any
			require.NoError(t, yaml.Unmarshal(out, &generic), "output should be plain YAML")

			again, err := ParseBytes(out)
			require.NoError(t, err)
			assert.Equal(t, doc.Version(), again.Version())

			second, err := MarshalYAML(again)
			require.NoError(t, err)
			assert.Equal(t, string(out), string(second), "marshaling should be stable")
		})
	}
}

func TestMarshalSwagger20Layout(t *testing.T) {
	doc := mustParse(t, testutil.PetStoreSwagger20)

	out, err := MarshalYAML(doc)
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, "\ndefinitions:\n")
	assert.Contains(t, s, "\nsecurityDefinitions:\n")
	assert.NotContains(t, s, "components:")
}

func TestMarshalBooleanSchema(t *testing.T) {
	n, err := ConstructNode(KindSchema, false, OASVersion310)
	require.NoError(t, err)

	out, err := MarshalJSON(n)
	require.NoError(t, err)
	assert.Equal(t, "false", string(out))
}
