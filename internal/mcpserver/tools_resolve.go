package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasgraph/internal/naming"
	"github.com/erraggy/oasgraph/internal/pathutil"
	"github.com/erraggy/oasgraph/oaserrors"
	"github.com/erraggy/oasgraph/parser"
	"github.com/erraggy/oasgraph/rawdoc"
)

type resolveRefInput struct {
	Spec         specInput `json:"spec"                    jsonschema:"The OAS document holding the reference"`
	Ref          string    `json:"ref,omitempty"           jsonschema:"Local reference to resolve, e.g. #/components/schemas/Pet"`
	Schema       string    `json:"schema,omitempty"        jsonschema:"Schema component name, instead of ref"`
	Parameter    string    `json:"parameter,omitempty"     jsonschema:"Parameter component name, instead of ref"`
	Response     string    `json:"response,omitempty"      jsonschema:"Response component name, instead of ref"`
	FollowNested bool      `json:"follow_nested,omitempty" jsonschema:"Expand every reference inside the target"`
}

type resolveRefOutput struct {
	Ref   string          `json:"ref"`
	Kind  string          `json:"kind"`
	Value json.RawMessage `json:"value"`
}

func handleResolveRef(ctx context.Context, _ *mcp.CallToolRequest, input resolveRefInput) (*mcp.CallToolResult, any, error) {
	doc, err := input.Spec.resolve(ctx)
	if err != nil {
		return errResult(err), nil, nil
	}
	ref, err := input.target(doc)
	if err != nil {
		return errResult(err), nil, nil
	}
	out, err := resolveRef(doc, ref, input.FollowNested)
	if err != nil {
		return errResult(err), nil, nil
	}
	return nil, out, nil
}

// target returns the reference to resolve, building it from a component
// name when ref is not given.
func (in resolveRefInput) target(doc *parser.Document) (string, error) {
	set := 0
	for _, v := range []string{in.Ref, in.Schema, in.Parameter, in.Response} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return "", fmt.Errorf("exactly one of ref, schema, parameter, or response must be provided (got %d)", set)
	}
	oas2 := doc.Dialect() == parser.DialectSwagger20
	switch {
	case in.Schema != "":
		return pathutil.ModelRef(in.Schema, oas2), nil
	case in.Parameter != "":
		return pathutil.ParameterRef(in.Parameter, oas2), nil
	case in.Response != "":
		return pathutil.ResponseRef(in.Response, oas2), nil
	default:
		return in.Ref, nil
	}
}

func resolveRef(doc *parser.Document, ref string, followNested bool) (*resolveRefOutput, error) {
	node, err := doc.ResolveReference(ref, followNested)
	if err != nil {
		var refErr *oaserrors.ReferenceError
		if errors.As(err, &refErr) && refErr.IsCircular {
			return nil, fmt.Errorf("%w; resolve without follow_nested to see the target", err)
		}
		return nil, err
	}
	value, err := rawdoc.EncodeJSON(node.ToRaw())
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", ref, err)
	}
	return &resolveRefOutput{
		Ref:   ref,
		Kind:  naming.ToSnakeCase(node.Kind().String()),
		Value: value,
	}, nil
}
