// Package core provides the core extension for stash.
// It registers commands: init, config, serve, guide, vacuum, llm, db, version.
package core

import (
	"github.com/spf13/cobra"

	"github.com/jpl-au/stash/extension"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct{}

var (
	_ extension.Extension    = (*Extension)(nil)
	_ extension.Storeless    = (*Extension)(nil)
	_ extension.EventHandler = (*Extension)(nil)
)

// Name returns "core".
func (e *Extension) Name() string { return "core" }

// Commands returns the repository management commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newInitCmd(),
		newConfigCmd(),
		newServeCmd(),
		newGuideCmd(),
		newVacuumCmd(),
		newLlmCmd(),
		newDBCmd(),
		newVersionCmd(),
	}
}

// MCPTools returns nil; the MCP server registers the core tools itself.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// NoStoreCommands returns commands that manage their own service lifecycle.
// serve opens its own service; vacuum opens one after confirmation; db only
// touches .gitignore; version needs nothing.
func (e *Extension) NoStoreCommands() []string {
	return []string{"serve", "vacuum", "db", "version"}
}
