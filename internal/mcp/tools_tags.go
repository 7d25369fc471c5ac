// tools_tags.go implements item context tag tools.

package mcp

import (
	"context"
	"io"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/stash/internal/log"
	"github.com/jpl-au/stash/internal/tag"
)

func (h *handlers) tagAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.tagChange(ctx, req, true)
}

func (h *handlers) tagRemove(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.tagChange(ctx, req, false)
}

func (h *handlers) tagChange(ctx context.Context, req mcp.CallToolRequest, add bool) (*mcp.CallToolResult, error) {
	if res := h.requireInit(); res != nil {
		return res, nil
	}
	key, err := req.RequireString("item")
	if err != nil {
		return mcp.NewToolResultError("item is required"), nil //nolint:nilerr
	}
	t, err := req.RequireString("tag")
	if err != nil {
		return mcp.NewToolResultError("tag is required"), nil //nolint:nilerr
	}

	var res tag.Result
	action := "tag"
	if add {
		res, err = tag.Add(ctx, io.Discard, h.svc, key, t)
	} else {
		action = "untag"
		res, err = tag.Remove(ctx, io.Discard, h.svc, key, t)
	}
	log.Event("mcp:"+action, action).Author("mcp").Item(key).Detail("tag", t).Write(err)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(res)
}

func (h *handlers) listTags(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireInit(); res != nil {
		return res, nil
	}
	res, err := tag.List(ctx, io.Discard, h.svc, req.GetString("item", ""))
	if err != nil {
		return errResult(err)
	}
	return jsonResult(res.Tags)
}
