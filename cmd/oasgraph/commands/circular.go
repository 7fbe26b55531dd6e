package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/erraggy/oasgraph/oaserrors"
	"github.com/erraggy/oasgraph/parser"
)

// CircularCmd reports the reference targets whose expansion runs into a
// cycle.
type CircularCmd struct {
	Spec   string `arg:"" help:"Path to the document, or - for stdin."`
	Strict bool   `help:"Exit with an error when a cycle is found."`
	Format string `short:"f" enum:"text,json,yaml" default:"text" help:"Output format (text, json, yaml)."`
}

// Cycle is one circular reference target and the chain closing the cycle.
type Cycle struct {
	Ref   string   `json:"ref"   yaml:"ref"`
	Chain []string `json:"chain" yaml:"chain"`
}

// ErrCyclesFound is returned by the circular command in strict mode.
var ErrCyclesFound = errors.New("circular references found")

func (c *CircularCmd) Run(app *App) error {
	doc, err := app.Load(c.Spec)
	if err != nil {
		return err
	}
	cycles, err := FindCycles(doc)
	if err != nil {
		return err
	}

	if c.Format != FormatText {
		if err := OutputStructured(app.Stdout, cycles, c.Format); err != nil {
			return err
		}
	} else if len(cycles) == 0 {
		Writef(app.Stdout, "No circular references.\n")
	} else {
		for _, cy := range cycles {
			Writef(app.Stdout, "%s: %s\n", cy.Ref, strings.Join(cy.Chain, " -> "))
		}
	}

	if c.Strict && len(cycles) > 0 {
		return fmt.Errorf("%w: %d", ErrCyclesFound, len(cycles))
	}
	return nil
}

// FindCycles expands every distinct reference target of doc and returns
// the circular ones in order of first occurrence. Failures other than
// cycles are returned as errors.
func FindCycles(doc *parser.Document) ([]Cycle, error) {
	var cycles []Cycle
	var errs []error
	for _, rc := range doc.CountReferences() {
		_, err := doc.ResolveReference(rc.Ref, true)
		if err == nil {
			continue
		}
		var refErr *oaserrors.ReferenceError
		if errors.As(err, &refErr) && refErr.IsCircular {
			cycles = append(cycles, Cycle{Ref: rc.Ref, Chain: refErr.Cycle})
			continue
		}
		errs = append(errs, err)
	}
	return cycles, errors.Join(errs...)
}
