package commands

import (
	"cmp"
	"slices"

	"github.com/erraggy/oasgraph/internal/naming"
	"github.com/erraggy/oasgraph/internal/pathutil"
	"github.com/erraggy/oasgraph/parser"
)

// RefsCmd lists reference targets with their occurrence counts.
type RefsCmd struct {
	Spec    string `arg:"" help:"Path to the document, or - for stdin."`
	GroupBy string `name:"group-by" enum:"none,section" default:"none" help:"Count references per component section instead of per target."`
	Section string `help:"Only list references into this section (schemas, parameters, responses, ...)."`
	Format  string `short:"f" enum:"text,json,yaml" default:"text" help:"Output format (text, json, yaml)."`
}

// RefCount is one reference target and how often it is written.
type RefCount struct {
	Ref     string `json:"ref"     yaml:"ref"`
	Section string `json:"section" yaml:"section"`
	Count   int    `json:"count"   yaml:"count"`
}

// SectionCount is the number of references into one section.
type SectionCount struct {
	Section string `json:"section" yaml:"section"`
	Label   string `json:"label"   yaml:"label"`
	Count   int    `json:"count"   yaml:"count"`
}

func (c *RefsCmd) Run(app *App) error {
	doc, err := app.Load(c.Spec)
	if err != nil {
		return err
	}
	counts := CountRefs(doc, c.Section)

	if c.GroupBy == "section" {
		groups := GroupBySection(counts)
		if c.Format != FormatText {
			return OutputStructured(app.Stdout, groups, c.Format)
		}
		for _, g := range groups {
			Writef(app.Stdout, "%-20s %d\n", g.Label, g.Count)
		}
		return nil
	}

	if c.Format != FormatText {
		return OutputStructured(app.Stdout, counts, c.Format)
	}
	for _, rc := range counts {
		Writef(app.Stdout, "%4d  %s\n", rc.Count, rc.Ref)
	}
	return nil
}

// CountRefs counts the document's references per target, most referenced
// first. A non-empty section keeps only targets in that section.
func CountRefs(doc *parser.Document, section string) []RefCount {
	var out []RefCount
	for _, rc := range doc.CountReferences() {
		sec := pathutil.RefSection(rc.Ref)
		if section != "" && sec != section {
			continue
		}
		out = append(out, RefCount{Ref: rc.Ref, Section: sec, Count: rc.Count})
	}
	slices.SortStableFunc(out, func(a, b RefCount) int { return cmp.Compare(b.Count, a.Count) })
	return out
}

// GroupBySection sums occurrence counts per section, largest first with
// ties broken by section name.
func GroupBySection(counts []RefCount) []SectionCount {
	index := make(map[string]int)
	var out []SectionCount
	for _, rc := range counts {
		if i, ok := index[rc.Section]; ok {
			out[i].Count += rc.Count
			continue
		}
		index[rc.Section] = len(out)
		out = append(out, SectionCount{Section: rc.Section, Label: naming.ToLabel(rc.Section), Count: rc.Count})
	}
	slices.SortFunc(out, func(a, b SectionCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Section, b.Section)
	})
	return out
}
