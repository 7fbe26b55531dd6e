package mcpserver

import (
	"context"
	"fmt"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasgraph/internal/naming"
	"github.com/erraggy/oasgraph/internal/pathutil"
	"github.com/erraggy/oasgraph/parser"
)

type listRefsInput struct {
	Spec    specInput `json:"spec"               jsonschema:"The OAS document to inspect"`
	Target  string    `json:"target,omitempty"   jsonschema:"Filter by ref target (supports * and ? glob, e.g. *schemas/Pet or *responses/*)"`
	Section string    `json:"section,omitempty"  jsonschema:"Filter by component section: schemas, parameters, responses, requestBodies, headers, examples, links, callbacks, securitySchemes, pathItems, paths"`
	Detail  bool      `json:"detail,omitempty"   jsonschema:"Return each occurrence with its location instead of counts"`
	GroupBy string    `json:"group_by,omitempty" jsonschema:"Group results and return counts instead of items. Values: section"`
	Limit   int       `json:"limit,omitempty"    jsonschema:"Maximum number of results to return (default 100)"`
	Offset  int       `json:"offset,omitempty"   jsonschema:"Skip the first N results (for pagination)"`
}

type refSummary struct {
	Ref     string `json:"ref"`
	Section string `json:"section"`
	Count   int    `json:"count"`
}

type refDetail struct {
	Ref     string `json:"ref"`
	Section string `json:"section"`
	Pointer string `json:"pointer"`
}

// listRefsOutput holds results from list_refs. In summary mode, Total and
// Matched count unique targets. In detail and group_by modes, they count
// occurrences.
type listRefsOutput struct {
	Total     int          `json:"total"`
	Matched   int          `json:"matched"`
	Returned  int          `json:"returned"`
	Summaries []refSummary `json:"refs,omitempty"`
	Details   []refDetail  `json:"details,omitempty"`
	Groups    []groupCount `json:"groups,omitempty"`
}

func handleListRefs(ctx context.Context, _ *mcp.CallToolRequest, input listRefsInput) (*mcp.CallToolResult, any, error) {
	if err := validateGlobPattern(input.Target); err != nil {
		return errResult(err), nil, nil
	}
	if input.GroupBy != "" && input.GroupBy != "section" {
		return errResult(fmt.Errorf("invalid group_by value %q; valid values: section", input.GroupBy)), nil, nil
	}
	if input.GroupBy != "" && input.Detail {
		return errResult(fmt.Errorf("cannot use both group_by and detail")), nil, nil
	}

	doc, err := input.Spec.resolve(ctx)
	if err != nil {
		return errResult(err), nil, nil
	}
	return nil, listRefs(doc, input), nil
}

func listRefs(doc *parser.Document, input listRefsInput) *listRefsOutput {
	var all, matched []refDetail
	doc.WalkReferences(func(pointer string, ref *parser.Reference) bool {
		d := refDetail{Ref: ref.Ref, Section: pathutil.RefSection(ref.Ref), Pointer: pointer}
		all = append(all, d)
		if matchGlob(input.Target, d.Ref) && (input.Section == "" || input.Section == d.Section) {
			matched = append(matched, d)
		}
		return true
	})

	if input.GroupBy != "" {
		groups := groupAndSort(matched, func(d refDetail) string { return d.Section })
		for i := range groups {
			groups[i].Label = naming.ToLabel(groups[i].Key)
		}
		return &listRefsOutput{
			Total:    len(all),
			Matched:  len(matched),
			Returned: len(groups),
			Groups:   groups,
		}
	}

	if input.Detail {
		page := paginate(matched, input.Offset, input.Limit)
		return &listRefsOutput{
			Total:    len(all),
			Matched:  len(matched),
			Returned: len(page),
			Details:  page,
		}
	}

	summaries := countTargets(matched)
	page := paginate(summaries, input.Offset, input.Limit)
	return &listRefsOutput{
		Total:     len(countTargets(all)),
		Matched:   len(summaries),
		Returned:  len(page),
		Summaries: page,
	}
}

// countTargets aggregates occurrences by target, most referenced first.
func countTargets(details []refDetail) []refSummary {
	index := make(map[string]int)
	var out []refSummary
	for _, d := range details {
		if i, ok := index[d.Ref]; ok {
			out[i].Count++
			continue
		}
		index[d.Ref] = len(out)
		out = append(out, refSummary{Ref: d.Ref, Section: d.Section, Count: 1})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}
