// Package extension is the plugin architecture for stash. Extensions group
// related commands and MCP tools and register themselves in init().
package extension

import (
	"time"

	"github.com/spf13/cobra"
)

// Extension defines the contract for stash extensions.
type Extension interface {
	// Name returns a unique identifier for this extension.
	Name() string

	// Commands returns CLI commands to register with the root command.
	Commands() []*cobra.Command

	// MCPTools returns MCP tools to register with the server.
	MCPTools() []MCPTool
}

// Initializable extensions run setup, such as creating their own tables,
// once the service is open.
type Initializable interface {
	Extension
	Init(ctx Context) error
}

// Storeless extensions name commands that run without opening a database
// (init, config, guide, version).
type Storeless interface {
	NoStoreCommands() []string
}

// Vacuumable extensions purge their own soft-deleted rows when
// "stash vacuum" runs, after the core tables are vacuumed.
type Vacuumable interface {
	Extension
	// Vacuum removes records deleted at least olderThan ago, or all of them
	// when olderThan is nil, and returns how many were removed.
	Vacuum(ctx Context, olderThan *time.Duration) (int64, error)
}
