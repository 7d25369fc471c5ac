// Package container provides the container extension: commands that create
// containers and move items in and out of them.
// Registers commands: new, ls, add, rm, restore, mv, rename, option,
// import, export.
package container

import (
	"github.com/spf13/cobra"

	"github.com/jpl-au/stash/extension"
	"github.com/jpl-au/stash/internal/service"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the container extension.
type Extension struct {
	svc service.Service
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "container".
func (e *Extension) Name() string { return "container" }

// Init connects to the shared service.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns the container and item commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newNewCmd(),
		e.newLsCmd(),
		e.newAddCmd(),
		e.newRmCmd(),
		e.newRestoreCmd(),
		e.newMvCmd(),
		e.newRenameCmd(),
		e.newOptionCmd(),
		e.newImportCmd(),
		e.newExportCmd(),
	}
}

// MCPTools returns nil; container tools are registered by internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}
