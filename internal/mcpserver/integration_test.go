package mcpserver

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasgraph/internal/testutil"
)

// startTestSession connects a client to a fresh server over in-memory
// transports.
func startTestSession(t *testing.T) *mcp.ClientSession {
	t.Helper()

	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasgraph-test", Version: "test"},
		nil,
	)
	registerAllTools(server)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	done := make(chan error, 1)
	go func() {
		done <- server.Run(ctx, serverTransport)
	}()

	client := mcp.NewClient(
		&mcp.Implementation{Name: "test-client", Version: "test"},
		nil,
	)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = session.Close()
		cancel()
		<-done
	})

	return session
}

func TestIntegration_ListTools(t *testing.T) {
	session := startTestSession(t)

	result, err := session.ListTools(context.Background(), &mcp.ListToolsParams{})
	require.NoError(t, err)

	names := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description, "tool %s has no description", tool.Name)
	}
	assert.ElementsMatch(t, []string{
		"summary",
		"resolve_ref",
		"list_refs",
		"check_circular",
		"find_operation",
	}, names)
}

func TestIntegration_Summary(t *testing.T) {
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "summary",
		Arguments: map[string]any{"spec": map[string]any{"content": testutil.PetStoreOAS31}},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	out := unmarshalStructured(t, result)
	assert.Equal(t, "3.1.0", out["oas_version"])
	assert.Equal(t, "oas-3.1", out["dialect"])
	assert.InDelta(t, 1, out["webhooks"], 0)
	assert.InDelta(t, 2, out["operations"], 0)
}

func TestIntegration_CheckCircular(t *testing.T) {
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "check_circular",
		Arguments: map[string]any{
			"spec": map[string]any{"content": testutil.CircularSchemas},
			"ref":  "#/components/schemas/C",
		},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	out := unmarshalStructured(t, result)
	circular, ok := out["circular"].([]any)
	require.True(t, ok)
	require.Len(t, circular, 1)
	assert.Equal(t, []any{
		"#/components/schemas/C",
		"#/components/schemas/D",
		"#/components/schemas/C",
	}, circular[0].(map[string]any)["cycle"])
}

func TestIntegration_ToolError(t *testing.T) {
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "resolve_ref",
		Arguments: map[string]any{
			"spec": map[string]any{"content": testutil.PetStoreOAS30},
			"ref":  "#/components/schemas/Missing",
		},
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func unmarshalStructured(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()

	if result.StructuredContent != nil {
		data, err := json.Marshal(result.StructuredContent)
		require.NoError(t, err)
		var m map[string]any
		require.NoError(t, json.Unmarshal(data, &m))
		return m
	}

	require.NotEmpty(t, result.Content, "expected at least one content item")
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(text.Text), &m), "failed to parse text content as JSON")
	return m
}
