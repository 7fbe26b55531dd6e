// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes oasgraph queries as MCP tools over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasgraph"
)

const serverInstructions = `oasgraph MCP server: summarizes OpenAPI documents, lists and resolves $ref references, reports reference cycles and looks up operations.

Every tool takes a spec given as exactly one of file, url or content. Only local references ("#/...") are resolved.

Configuration: defaults come from OASGRAPH_* environment variables set in your MCP client config.
- OASGRAPH_CACHE_ENABLED (default: true) - cache parsed documents per session
- OASGRAPH_CACHE_FILE_TTL (default: 15m), OASGRAPH_CACHE_URL_TTL (default: 5m)
- OASGRAPH_LIST_LIMIT (default: 100) - default result limit for list tools
- OASGRAPH_MAX_REF_DEPTH (default: 100) - bound on nested reference expansion
- OASGRAPH_RESOLUTION_CACHE (default: true) - memoize expanded references per document`

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is canceled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		specCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}
	slog.Debug("starting MCP server", "version", oasgraph.Version())
	return newServer().Run(ctx, &mcp.StdioTransport{})
}

func newServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasgraph", Version: oasgraph.Version()},
		&mcp.ServerOptions{Instructions: serverInstructions},
	)
	registerAllTools(server)
	return server
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "summary",
		Description: "Summarize an OpenAPI document: title, API version, OAS version and dialect, and counts of paths, webhooks, operations, schemas, components and references.",
	}, handleSummary)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "resolve_ref",
		Description: "Resolve a local $ref (e.g. #/components/schemas/Pet) and return the target as JSON with its kind. Set follow_nested=true to expand every reference inside the target; expansion fails on reference cycles. Instead of ref, a component name can be given with schema, parameter or response; the right pointer for the document's version is used.",
	}, handleResolveRef)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_refs",
		Description: "List the $ref values of an OpenAPI document. By default returns unique targets ranked by occurrence count. Use detail=true for each occurrence with the JSON pointer holding it. Filter targets with a glob (e.g. *schemas/*). Use group_by=section to count references per component section.",
	}, handleListRefs)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "check_circular",
		Description: "Check references for cycles. With ref, reports whether that reference is circular and the cycle it closes. Without ref, checks every distinct reference target in the document and lists the circular ones.",
	}, handleCheckCircular)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_operation",
		Description: "Find operations. With operation_id, returns that operation with its effective parameters (path-level parameters merged in). Otherwise lists operations under paths and webhooks, filtered by method, tag or path glob.",
	}, handleFindOperation)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ListLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ListLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// pathPattern matches absolute filesystem paths in error messages.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

// sanitizeError strips absolute filesystem paths from error messages so
// the server's directory layout is not leaked to MCP clients.
func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// groupCount represents a single group in group_by results.
type groupCount struct {
	Key   string `json:"key"`
	Label string `json:"label,omitempty"`
	Count int    `json:"count"`
}

// groupAndSort groups items by key, sorts by count descending (ties
// broken alphabetically by key), and returns the sorted groups.
func groupAndSort[T any](items []T, keyFn func(T) string) []groupCount {
	counts := make(map[string]int)
	for _, item := range items {
		counts[keyFn(item)]++
	}
	groups := make([]groupCount, 0, len(counts))
	for key, count := range counts {
		groups = append(groups, groupCount{Key: key, Count: count})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Key < groups[j].Key
	})
	return groups
}

// validateGlobPattern checks whether a glob pattern is syntactically valid.
// Call it once before a filter loop so matchGlob never sees an invalid
// pattern.
func validateGlobPattern(pattern string) error {
	if pattern == "" || !strings.ContainsAny(pattern, "*?[") {
		return nil
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}
	return nil
}

// matchGlob reports whether value matches pattern, ignoring case. "*"
// matches across "/" so that "*schemas/*" matches any schema reference.
// Patterns without glob characters must match exactly. An empty pattern
// matches everything.
func matchGlob(pattern, value string) bool {
	if pattern == "" {
		return true
	}
	if !strings.ContainsAny(pattern, "*?[") {
		return strings.EqualFold(pattern, value)
	}
	normalizedValue := strings.ReplaceAll(strings.ToLower(value), "/", ":")
	normalizedPattern := strings.ReplaceAll(strings.ToLower(pattern), "/", ":")
	ok, err := filepath.Match(normalizedPattern, normalizedValue)
	return err == nil && ok
}
