package mcpserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasgraph/oaserrors"
	"github.com/erraggy/oasgraph/parser"
)

type checkCircularInput struct {
	Spec   specInput `json:"spec"             jsonschema:"The OAS document to check"`
	Ref    string    `json:"ref,omitempty"    jsonschema:"Check only this reference, e.g. #/components/schemas/Node"`
	Limit  int       `json:"limit,omitempty"  jsonschema:"Maximum number of circular references to return (default 100)"`
	Offset int       `json:"offset,omitempty" jsonschema:"Skip the first N circular references (for pagination)"`
}

type circularRef struct {
	Ref   string   `json:"ref"`
	Cycle []string `json:"cycle"`
}

type checkCircularOutput struct {
	Checked  int           `json:"checked"`
	Matched  int           `json:"matched"`
	Returned int           `json:"returned"`
	Circular []circularRef `json:"circular,omitempty"`
	// Errors counts targets that failed for reasons other than a cycle,
	// such as a missing target.
	Errors int `json:"errors,omitempty"`
}

func handleCheckCircular(ctx context.Context, _ *mcp.CallToolRequest, input checkCircularInput) (*mcp.CallToolResult, any, error) {
	doc, err := input.Spec.resolve(ctx)
	if err != nil {
		return errResult(err), nil, nil
	}

	var targets []string
	if input.Ref != "" {
		targets = []string{input.Ref}
	} else {
		for _, rc := range doc.CountReferences() {
			targets = append(targets, rc.Ref)
		}
	}

	out := checkCircular(doc, targets)
	page := paginate(out.Circular, input.Offset, input.Limit)
	out.Matched = len(out.Circular)
	out.Returned = len(page)
	out.Circular = page
	return nil, out, nil
}

// checkCircular expands each target and records the cycles found.
func checkCircular(doc *parser.Document, targets []string) *checkCircularOutput {
	out := &checkCircularOutput{Checked: len(targets)}
	for _, ref := range targets {
		_, err := doc.ResolveReference(ref, true)
		if err == nil {
			continue
		}
		var refErr *oaserrors.ReferenceError
		if errors.As(err, &refErr) && refErr.IsCircular {
			out.Circular = append(out.Circular, circularRef{Ref: ref, Cycle: refErr.Cycle})
			continue
		}
		out.Errors++
	}
	return out
}
