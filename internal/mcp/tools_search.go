// tools_search.go implements query tools: search, find and explain.

package mcp

import (
	"context"
	"io"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/stash/internal/log"
	"github.com/jpl-au/stash/internal/search"
)

func (h *handlers) searchItems(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireInit(); res != nil {
		return res, nil
	}
	text, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query is required"), nil //nolint:nilerr
	}

	mode := modeArg(req, h.svc.SearchMode())
	res, err := search.Run(ctx, io.Discard, h.svc, text, search.Options{
		Container: req.GetString("container", ""),
		Prefix:    req.GetString("prefix", ""),
		Mode:      &mode,
		Limit:     req.GetInt("limit", 0),
	})
	log.Event("mcp:search", "search").Author("mcp").Query(text).Count(len(res.Matches)).Detail("mode", mode.String()).Write(err)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(res.ToJSON())
}

func (h *handlers) findContainers(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireInit(); res != nil {
		return res, nil
	}
	text, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query is required"), nil //nolint:nilerr
	}

	names, err := search.Containers(ctx, h.svc, text, req.GetString("prefix", ""), modeArg(req, h.svc.SearchMode()))
	log.Event("mcp:find", "search").Author("mcp").Query(text).Count(len(names)).Write(err)
	if err != nil {
		return errResult(err)
	}
	if names == nil {
		names = []string{}
	}
	return jsonResult(names)
}

// explainQuery needs no database.
func (h *handlers) explainQuery(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query is required"), nil //nolint:nilerr
	}
	return jsonResult(search.Explain(text))
}
