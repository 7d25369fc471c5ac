// tools.go contributes the saved query tools to the MCP server.

package search

import (
	"context"
	"io"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/stash/extension"
	"github.com/jpl-au/stash/internal/log"
	"github.com/jpl-au/stash/internal/saved"
	"github.com/jpl-au/stash/internal/search"
	"github.com/jpl-au/stash/internal/store"
)

// MCPTools returns the saved query tools.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{
		{
			Tool: mcp.NewTool("stash_query_save",
				mcp.WithDescription("Save a search query under a name"),
				mcp.WithString("name", mcp.Required(), mcp.Description("Query name")),
				mcp.WithString("query", mcp.Required(), mcp.Description("Query text")),
				mcp.WithString("mode", mcp.Enum("exact", "partial"), mcp.Description("Match mode; omit to use the configured default")),
			),
			Handler: e.toolSave,
		},
		{
			Tool: mcp.NewTool("stash_query_list",
				mcp.WithDescription("List saved queries"),
			),
			Handler: e.toolList,
		},
		{
			Tool: mcp.NewTool("stash_query_run",
				mcp.WithDescription("Run a saved query against all searchable containers"),
				mcp.WithString("name", mcp.Required(), mcp.Description("Query name")),
				mcp.WithNumber("limit", mcp.Description("Maximum results")),
			),
			Handler: e.toolRun,
		},
		{
			Tool: mcp.NewTool("stash_query_delete",
				mcp.WithDescription("Delete a saved query"),
				mcp.WithString("name", mcp.Required(), mcp.Description("Query name")),
			),
			Handler: e.toolDelete,
		},
	}
}

// store returns the saved query store, opening it when Init has not run.
func (e *Extension) store(extCtx extension.Context) (*saved.Store, error) {
	if e.saved != nil {
		return e.saved, nil
	}
	return openSaved(extCtx)
}

func (e *Extension) toolSave(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required"), nil //nolint:nilerr
	}
	text, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query is required"), nil //nolint:nilerr
	}
	if err := extCtx.Service().CheckQuery(text); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s, err := e.store(extCtx)
	if err != nil {
		return nil, err
	}

	q, err := s.Save(ctx, saved.Query{Name: name, Text: text, Mode: req.GetString("mode", ""), Author: "mcp"})
	log.Event("mcp:query_save", "save").Author("mcp").Query(text).Detail("name", name).Write(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toolJSON(q)
}

func (e *Extension) toolList(ctx context.Context, extCtx extension.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s, err := e.store(extCtx)
	if err != nil {
		return nil, err
	}
	qs, err := s.List(ctx, false)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toolJSON(qs)
}

func (e *Extension) toolRun(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required"), nil //nolint:nilerr
	}
	s, err := e.store(extCtx)
	if err != nil {
		return nil, err
	}
	q, err := s.Get(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	svc := extCtx.Service()
	mode := q.ParsedMode(svc.SearchMode())
	res, err := search.Run(ctx, io.Discard, svc, q.Text, search.Options{Mode: &mode, Limit: req.GetInt("limit", 0)})
	log.Event("mcp:query_run", "search").Author("mcp").Query(q.Text).Count(len(res.Matches)).Detail("name", name).Write(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toolJSON(res.ToJSON())
}

func (e *Extension) toolDelete(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required"), nil //nolint:nilerr
	}
	s, err := e.store(extCtx)
	if err != nil {
		return nil, err
	}
	err = s.Delete(ctx, name)
	log.Event("mcp:query_delete", "delete").Author("mcp").Detail("name", name).Write(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("deleted " + name), nil
}

func toolJSON(v any) (*mcp.CallToolResult, error) {
	data, err := store.MarshalJSON(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
