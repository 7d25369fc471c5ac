// tools_util.go holds argument and result helpers shared by the tools.
//
// Optional arguments fall back to defaults rather than failing; clients
// often omit them or send the wrong JSON type.

package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/stash/internal/query"
	"github.com/jpl-au/stash/internal/store"
)

// modeArg reads an optional "mode" argument. Unknown values use def.
func modeArg(req mcp.CallToolRequest, def query.Mode) query.Mode {
	if m, ok := query.ParseMode(req.GetString("mode", "")); ok {
		return m
	}
	return def
}

// optString returns a pointer to the argument when it was supplied.
func optString(req mcp.CallToolRequest, name string) *string {
	args := req.GetArguments()
	v, ok := args[name].(string)
	if !ok {
		return nil
	}
	return &v
}

// jsonResult returns v as indented JSON text.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := store.MarshalJSON(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// errResult reports err to the client.
func errResult(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
