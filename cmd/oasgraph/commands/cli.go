package commands

import (
	"github.com/alecthomas/kong"

	"github.com/erraggy/oasgraph/parser"
)

// CLI defines the command-line interface for oasgraph.
type CLI struct {
	Verbose     bool `short:"v" help:"Log parser activity to stderr."`
	MaxRefDepth int  `name:"max-ref-depth" default:"100" help:"Maximum nesting of references followed during expansion."`

	Summary   SummaryCmd   `cmd:"" help:"Summarize an OpenAPI document."`
	Refs      RefsCmd      `cmd:"" help:"List the $ref values of a document."`
	Resolve   ResolveCmd   `cmd:"" help:"Resolve a local reference and print its target."`
	Circular  CircularCmd  `cmd:"" help:"Report circular references."`
	Roundtrip RoundtripCmd `cmd:"" help:"Build the object model and write it back as YAML or JSON."`
	MCP       MCPCmd       `cmd:"" name:"mcp" help:"Run the MCP server over stdio."`
	Version   VersionCmd   `cmd:"" help:"Print version information."`
}

func kongOptions(app *App) []kong.Option {
	return []kong.Option{
		kong.Name("oasgraph"),
		kong.Description("Typed object model and reference resolver for OpenAPI documents."),
		kong.UsageOnError(),
		kong.Writers(app.Stdout, app.Stderr),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	}
}

// Execute parses args and runs the selected command.
func Execute(app *App, args []string, extra ...kong.Option) error {
	var cli CLI
	k, err := kong.New(&cli, append(kongOptions(app), extra...)...)
	if err != nil {
		return err
	}
	ctx, err := k.Parse(args)
	if err != nil {
		return err
	}
	app.Verbose = cli.Verbose
	app.MaxRefDepth = cli.MaxRefDepth
	if app.MaxRefDepth <= 0 {
		app.MaxRefDepth = parser.MaxRefDepth
	}
	return ctx.Run(app)
}
