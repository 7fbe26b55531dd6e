package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasgraph/parser"
)

type summaryInput struct {
	Spec specInput `json:"spec" jsonschema:"The OAS document to summarize"`
}

type summaryOutput struct {
	Title       string   `json:"title,omitempty"`
	APIVersion  string   `json:"api_version,omitempty"`
	OASVersion  string   `json:"oas_version"`
	Dialect     string   `json:"dialect"`
	Servers     []string `json:"servers,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Paths       int      `json:"paths"`
	Webhooks    int      `json:"webhooks"`
	Operations  int      `json:"operations"`
	Schemas     int      `json:"schemas"`
	Components  int      `json:"components"`
	References  int      `json:"references"`
	HasCircular bool     `json:"has_circular"`
}

func handleSummary(ctx context.Context, _ *mcp.CallToolRequest, input summaryInput) (*mcp.CallToolResult, any, error) {
	doc, err := input.Spec.resolve(ctx)
	if err != nil {
		return errResult(err), nil, nil
	}
	return nil, summarize(doc), nil
}

func summarize(doc *parser.Document) summaryOutput {
	stats := doc.Stats()
	out := summaryOutput{
		OASVersion: doc.Version().String(),
		Dialect:    doc.Dialect().String(),
		Paths:      stats.PathCount,
		Webhooks:   stats.WebhookCount,
		Operations: stats.OperationCount,
		Schemas:    stats.SchemaCount,
		Components: stats.ComponentCount,
		References: stats.ReferenceCount,
	}
	if doc.Info != nil {
		out.Title = doc.Info.Title
		out.APIVersion = doc.Info.Version
	}
	for _, s := range doc.Servers {
		if s != nil {
			out.Servers = append(out.Servers, s.URL)
		}
	}
	if doc.Host != "" {
		out.Servers = append(out.Servers, doc.Host+doc.BasePath)
	}
	for _, t := range doc.Tags {
		if t != nil {
			out.Tags = append(out.Tags, t.Name)
		}
	}
	for _, rc := range doc.CountReferences() {
		if doc.IsCircularReference(rc.Ref) {
			out.HasCircular = true
			break
		}
	}
	return out
}
