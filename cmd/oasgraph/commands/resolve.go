package commands

import (
	"errors"
	"fmt"

	"github.com/erraggy/oasgraph/internal/pathutil"
	"github.com/erraggy/oasgraph/oaserrors"
	"github.com/erraggy/oasgraph/parser"
)

// ResolveCmd prints the target of a local reference.
type ResolveCmd struct {
	Spec      string `arg:"" help:"Path to the document, or - for stdin."`
	Ref       string `arg:"" optional:"" help:"Local reference, e.g. '#/components/schemas/Pet'."`
	Schema    string `help:"Resolve the schema component with this name."`
	Parameter string `help:"Resolve the parameter component with this name."`
	Response  string `help:"Resolve the response component with this name."`
	Follow    bool   `help:"Expand every reference inside the target."`
	Format    string `short:"f" enum:"yaml,json" default:"yaml" help:"Output format (yaml, json)."`
}

func (c *ResolveCmd) Run(app *App) error {
	doc, err := app.Load(c.Spec)
	if err != nil {
		return err
	}
	ref, err := c.target(doc.Dialect() == parser.DialectSwagger20)
	if err != nil {
		return err
	}

	node, err := doc.ResolveReference(ref, c.Follow)
	if err != nil {
		var refErr *oaserrors.ReferenceError
		if errors.As(err, &refErr) && refErr.IsCircular {
			return fmt.Errorf("%w; run without --follow to see the target", err)
		}
		return err
	}

	out, err := EncodeTree(node.ToRaw(), c.Format)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", ref, err)
	}
	app.Logger().Debug("resolved", "ref", ref, "kind", node.Kind().String())
	Writef(app.Stdout, "%s", out)
	return nil
}

func (c *ResolveCmd) target(oas2 bool) (string, error) {
	set := 0
	for _, v := range []string{c.Ref, c.Schema, c.Parameter, c.Response} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return "", fmt.Errorf("give exactly one of a reference, --schema, --parameter or --response (got %d)", set)
	}
	switch {
	case c.Schema != "":
		return pathutil.ModelRef(c.Schema, oas2), nil
	case c.Parameter != "":
		return pathutil.ParameterRef(c.Parameter, oas2), nil
	case c.Response != "":
		return pathutil.ResponseRef(c.Response, oas2), nil
	}
	return c.Ref, nil
}
