// tools_catalog.go implements catalog import and export tools.

package mcp

import (
	"bytes"
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/stash/internal/catalog"
	"github.com/jpl-au/stash/internal/log"
)

func (h *handlers) importCatalog(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireInit(); res != nil {
		return res, nil
	}
	file, err := req.RequireString("file")
	if err != nil {
		return mcp.NewToolResultError("file is required"), nil //nolint:nilerr
	}
	name, err := req.RequireString("container")
	if err != nil {
		return mcp.NewToolResultError("container is required"), nil //nolint:nilerr
	}

	opts := catalog.ImportOptions{DryRun: req.GetBool("dry_run", false), Force: req.GetBool("force", false)}
	var buf bytes.Buffer
	res, err := catalog.Import(ctx, &buf, h.svc, file, name, opts)
	log.Event("mcp:import", "import").Author("mcp").Container(name).Count(res.Imported).
		Detail("file", file).Detail("dry_run", opts.DryRun).Write(err)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(map[string]any{
		"imported": res.Imported,
		"ids":      res.IDs,
		"rejected": res.Rejected,
		"dry_run":  opts.DryRun,
	})
}

func (h *handlers) exportCatalog(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireInit(); res != nil {
		return res, nil
	}
	name, err := req.RequireString("container")
	if err != nil {
		return mcp.NewToolResultError("container is required"), nil //nolint:nilerr
	}
	file, err := req.RequireString("file")
	if err != nil {
		return mcp.NewToolResultError("file is required"), nil //nolint:nilerr
	}

	var buf bytes.Buffer
	res, err := catalog.Export(ctx, &buf, h.svc, name, file, catalog.ExportOptions{Force: req.GetBool("force", false)})
	log.Event("mcp:export", "export").Author("mcp").Container(name).Count(res.Exported).Detail("file", file).Write(err)
	if err != nil {
		return errResult(err)
	}
	return mcp.NewToolResultText(buf.String()), nil
}
