package commands

import (
	"strings"

	"github.com/erraggy/oasgraph/parser"
)

// SummaryCmd prints document metadata and counts.
type SummaryCmd struct {
	Spec   string `arg:"" help:"Path to the document, or - for stdin."`
	Format string `short:"f" enum:"text,json,yaml" default:"text" help:"Output format (text, json, yaml)."`
}

// Summary is the structured form of the summary command's output.
type Summary struct {
	Title      string   `json:"title,omitempty"       yaml:"title,omitempty"`
	APIVersion string   `json:"api_version,omitempty" yaml:"api_version,omitempty"`
	OASVersion string   `json:"oas_version"           yaml:"oas_version"`
	Dialect    string   `json:"dialect"               yaml:"dialect"`
	Servers    []string `json:"servers,omitempty"     yaml:"servers,omitempty"`
	Paths      int      `json:"paths"                 yaml:"paths"`
	Webhooks   int      `json:"webhooks"              yaml:"webhooks"`
	Operations int      `json:"operations"            yaml:"operations"`
	Schemas    int      `json:"schemas"               yaml:"schemas"`
	Components int      `json:"components"            yaml:"components"`
	References int      `json:"references"            yaml:"references"`
}

func (c *SummaryCmd) Run(app *App) error {
	doc, err := app.Load(c.Spec)
	if err != nil {
		return err
	}
	s := Summarize(doc)
	if c.Format != FormatText {
		return OutputStructured(app.Stdout, s, c.Format)
	}

	Writef(app.Stdout, "Specification: %s\n", FormatSpecPath(c.Spec))
	if s.Title != "" {
		Writef(app.Stdout, "Title: %s (%s)\n", s.Title, s.APIVersion)
	}
	Writef(app.Stdout, "OAS Version: %s (%s)\n", s.OASVersion, s.Dialect)
	if len(s.Servers) > 0 {
		Writef(app.Stdout, "Servers: %s\n", strings.Join(s.Servers, ", "))
	}
	Writef(app.Stdout, "Paths: %d\n", s.Paths)
	if s.Webhooks > 0 {
		Writef(app.Stdout, "Webhooks: %d\n", s.Webhooks)
	}
	Writef(app.Stdout, "Operations: %d\n", s.Operations)
	Writef(app.Stdout, "Schemas: %d\n", s.Schemas)
	Writef(app.Stdout, "Components: %d\n", s.Components)
	Writef(app.Stdout, "References: %d\n", s.References)
	return nil
}

// Summarize collects the summary of doc.
func Summarize(doc *parser.Document) Summary {
	stats := doc.Stats()
	s := Summary{
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
		s.Title, s.APIVersion = doc.Info.Title, doc.Info.Version
	}
	for _, srv := range doc.Servers {
		if srv != nil {
			s.Servers = append(s.Servers, srv.URL)
		}
	}
	if doc.Host != "" {
		s.Servers = append(s.Servers, doc.Host+doc.BasePath)
	}
	return s
}
