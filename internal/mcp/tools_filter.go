// tools_filter.go implements container filter tools.

package mcp

import (
	"context"
	"io"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/stash/internal/filter"
	"github.com/jpl-au/stash/internal/log"
)

func (h *handlers) filterGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireInit(); res != nil {
		return res, nil
	}
	name, err := req.RequireString("container")
	if err != nil {
		return mcp.NewToolResultError("container is required"), nil //nolint:nilerr
	}
	s, err := filter.Get(ctx, io.Discard, h.svc, name)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(s)
}

func (h *handlers) filterSet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireInit(); res != nil {
		return res, nil
	}
	name, err := req.RequireString("container")
	if err != nil {
		return mcp.NewToolResultError("container is required"), nil //nolint:nilerr
	}

	opts := filter.Options{
		Term:    optString(req, "term"),
		Enable:  req.GetBool("enable", false),
		Disable: req.GetBool("disable", false),
		DryRun:  req.GetBool("dry_run", false),
	}
	res, err := filter.Set(ctx, io.Discard, h.svc, name, opts)

	b := log.Event("mcp:filter_set", "filter").Author("mcp").Container(name).Detail("dry_run", opts.DryRun)
	if opts.Term != nil {
		b = b.Query(*opts.Term)
	}
	b.Write(err)
	if err != nil {
		return errResult(err)
	}

	return jsonResult(map[string]any{
		"before":  res.Before,
		"after":   res.After,
		"diff":    res.Diff.Diff,
		"added":   res.Diff.Added,
		"removed": res.Diff.Removed,
		"saved":   !opts.DryRun,
	})
}
