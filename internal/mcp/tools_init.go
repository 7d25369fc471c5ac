// tools_init.go implements stash_init, the one tool that works without a
// database.

package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/stash/internal/inventory"
	"github.com/jpl-au/stash/internal/log"
)

func (h *handlers) initStore(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.svc != nil {
		return mcp.NewToolResultError("stash already initialised"), nil
	}

	local := req.GetBool("local", false)
	err := inventory.Init(false, h.db, local, "")
	log.Event("mcp:init", "init").Author("mcp").Detail("local", local).Write(err)
	if err != nil {
		return errResult(err)
	}

	svc, err := inventory.New(h.db)
	if err != nil {
		return mcp.NewToolResultError("init succeeded but opening the database failed: " + err.Error()), nil
	}
	if err := h.open(svc); err != nil {
		svc.Close()
		return errResult(err)
	}

	slog.Info("stash initialised", "local", local)
	if local {
		return mcp.NewToolResultText("stash initialised (local - gitignored)"), nil
	}
	return mcp.NewToolResultText("stash initialised"), nil
}
