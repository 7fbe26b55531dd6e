package commands

import (
	"github.com/erraggy/oasgraph"
	"github.com/erraggy/oasgraph/internal/mcpserver"
)

// MCPCmd serves the oasgraph MCP tools over stdio.
type MCPCmd struct{}

func (c *MCPCmd) Run(app *App) error {
	return mcpserver.Run(app.ctx())
}

// VersionCmd prints build information.
type VersionCmd struct{}

func (c *VersionCmd) Run(app *App) error {
	Writef(app.Stdout, "oasgraph %s\n", oasgraph.BuildInfo())
	return nil
}
