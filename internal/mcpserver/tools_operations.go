package mcpserver

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasgraph/parser"
	"github.com/erraggy/oasgraph/walker"
)

type findOperationInput struct {
	Spec        specInput `json:"spec"                   jsonschema:"The OAS document to search"`
	OperationID string    `json:"operation_id,omitempty" jsonschema:"Return the operation with this operationId"`
	Method      string    `json:"method,omitempty"       jsonschema:"Filter by HTTP method (get, post, ...)"`
	Path        string    `json:"path,omitempty"         jsonschema:"Filter by path template or webhook name (supports * glob)"`
	Tag         string    `json:"tag,omitempty"          jsonschema:"Filter by tag"`
	Limit       int       `json:"limit,omitempty"        jsonschema:"Maximum number of results to return (default 100)"`
	Offset      int       `json:"offset,omitempty"       jsonschema:"Skip the first N results (for pagination)"`
}

type operationSummary struct {
	Method      string   `json:"method"`
	Path        string   `json:"path"`
	OperationID string   `json:"operation_id,omitempty"`
	Summary     string   `json:"summary,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Deprecated  bool     `json:"deprecated,omitempty"`
	Webhook     bool     `json:"webhook,omitempty"`
}

type parameterSummary struct {
	Name     string `json:"name,omitempty"`
	In       string `json:"in,omitempty"`
	Ref      string `json:"ref,omitempty"`
	Required bool   `json:"required,omitempty"`
}

type operationDetail struct {
	operationSummary
	Parameters []parameterSummary `json:"parameters,omitempty"`
	Responses  []string           `json:"responses,omitempty"`
}

type findOperationOutput struct {
	Total      int                `json:"total"`
	Matched    int                `json:"matched"`
	Returned   int                `json:"returned"`
	Operations []operationSummary `json:"operations,omitempty"`
	Operation  *operationDetail   `json:"operation,omitempty"`
}

func handleFindOperation(ctx context.Context, _ *mcp.CallToolRequest, input findOperationInput) (*mcp.CallToolResult, any, error) {
	if err := validateGlobPattern(input.Path); err != nil {
		return errResult(err), nil, nil
	}
	doc, err := input.Spec.resolve(ctx)
	if err != nil {
		return errResult(err), nil, nil
	}

	if input.OperationID != "" {
		detail, err := describeOperation(doc, input.OperationID)
		if err != nil {
			return errResult(err), nil, nil
		}
		return nil, &findOperationOutput{Total: 1, Matched: 1, Returned: 1, Operation: detail}, nil
	}

	out, err := listOperations(doc, input)
	if err != nil {
		return errResult(err), nil, nil
	}
	return nil, out, nil
}

func listOperations(doc *parser.Document, input findOperationInput) (*findOperationOutput, error) {
	ops, err := walker.CollectOperations(doc)
	if err != nil {
		return nil, err
	}
	var matched []operationSummary
	for _, info := range ops.All {
		if input.Method != "" && !strings.EqualFold(input.Method, info.Method) {
			continue
		}
		if !matchGlob(input.Path, info.PathTemplate) {
			continue
		}
		if input.Tag != "" && !slices.Contains(info.Operation.Tags, input.Tag) {
			continue
		}
		matched = append(matched, summarizeOperation(info.Operation, info.IsWebhook))
	}
	page := paginate(matched, input.Offset, input.Limit)
	return &findOperationOutput{
		Total:      len(ops.All),
		Matched:    len(matched),
		Returned:   len(page),
		Operations: page,
	}, nil
}

func summarizeOperation(op *parser.Operation, webhook bool) operationSummary {
	return operationSummary{
		Method:      op.Method,
		Path:        op.Path,
		OperationID: op.OperationID,
		Summary:     op.Summary,
		Tags:        op.Tags,
		Deprecated:  op.IsDeprecated(),
		Webhook:     webhook,
	}
}

func describeOperation(doc *parser.Document, operationID string) (*operationDetail, error) {
	op := doc.OperationByOperationID(operationID)
	if op == nil {
		return nil, fmt.Errorf("no operation with operationId %q", operationID)
	}
	item := doc.Paths.Get(op.Path)
	webhook := item == nil || item.Operation(op.Method) != op
	detail := &operationDetail{operationSummary: summarizeOperation(op, webhook)}

	var params []*parser.Parameter
	if webhook {
		params = op.Parameters
	} else {
		var err error
		params, err = doc.EffectiveParameters(op.Path, op.Method)
		if err != nil {
			return nil, err
		}
	}
	for _, p := range params {
		ps := parameterSummary{}
		if p.Ref != nil {
			ps.Ref = p.Ref.Ref
			if target, err := doc.ResolveReference(p.Ref.Ref, false); err == nil {
				if tp, ok := target.(*parser.Parameter); ok {
					p = tp
				}
			}
		}
		ps.Name, ps.In, ps.Required = p.Name, p.In, p.IsRequired()
		detail.Parameters = append(detail.Parameters, ps)
	}

	if op.Responses != nil {
		detail.Responses = slices.Sorted(maps.Keys(op.Responses.Codes))
		if op.Responses.Default != nil {
			detail.Responses = append(detail.Responses, "default")
		}
	}
	return detail, nil
}
