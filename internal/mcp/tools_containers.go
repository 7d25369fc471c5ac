// tools_containers.go implements container and item tools.

package mcp

import (
	"context"
	"slices"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/stash/internal/log"
	"github.com/jpl-au/stash/internal/store"
)

func (h *handlers) listContainers(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireInit(); res != nil {
		return res, nil
	}
	prefix := req.GetString("prefix", "")
	cs, err := h.svc.ListContainers(ctx, prefix, req.GetBool("include_deleted", false), req.GetBool("deleted_only", false))
	log.Event("mcp:containers", "list").Author("mcp").Container(prefix).Count(len(cs)).Write(err)
	if err != nil {
		return errResult(err)
	}

	out := make([]store.ContainerJSON, len(cs))
	for i := range cs {
		out[i] = cs[i].ToJSON()
	}
	return jsonResult(out)
}

func (h *handlers) createContainer(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireInit(); res != nil {
		return res, nil
	}
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required"), nil //nolint:nilerr
	}
	c, err := h.svc.CreateContainer(ctx, name, req.GetInt("capacity", 0))
	log.Event("mcp:create", "create").Author("mcp").Container(name).Write(err)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(c.ToJSON())
}

func (h *handlers) listItems(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireInit(); res != nil {
		return res, nil
	}
	name, err := req.RequireString("container")
	if err != nil {
		return mcp.NewToolResultError("container is required"), nil //nolint:nilerr
	}

	items, err := h.svc.Items(ctx, name)
	if tag := req.GetString("tag", ""); tag != "" && err == nil {
		items = slices.DeleteFunc(items, func(it store.Item) bool {
			return !slices.Contains(it.Tags, tag)
		})
	}
	log.Event("mcp:items", "list").Author("mcp").Container(name).Count(len(items)).Write(err)
	if err != nil {
		return errResult(err)
	}

	out := make([]store.ItemJSON, len(items))
	for i := range items {
		out[i] = items[i].ToJSON()
	}
	return jsonResult(out)
}

func (h *handlers) addItem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireInit(); res != nil {
		return res, nil
	}
	name, err := req.RequireString("container")
	if err != nil {
		return mcp.NewToolResultError("container is required"), nil //nolint:nilerr
	}
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id is required"), nil //nolint:nilerr
	}

	it, err := h.svc.Add(ctx, name, store.NewItem{
		Name:     id,
		Display:  req.GetString("display", ""),
		Category: req.GetString("category", ""),
		Tags:     req.GetStringSlice("tags", nil),
		Stack:    req.GetInt("stack", 1),
	}, req.GetBool("force", false))
	log.Event("mcp:add", "add").Author("mcp").Container(name).Detail("id", id).Write(err)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(it.ToJSON())
}

func (h *handlers) removeItem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireInit(); res != nil {
		return res, nil
	}
	key, err := req.RequireString("item")
	if err != nil {
		return mcp.NewToolResultError("item is required"), nil //nolint:nilerr
	}
	err = h.svc.RemoveItem(ctx, key)
	log.Event("mcp:remove", "remove").Author("mcp").Item(key).Write(err)
	if err != nil {
		return errResult(err)
	}
	return mcp.NewToolResultText("removed " + key), nil
}

func (h *handlers) moveItem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireInit(); res != nil {
		return res, nil
	}
	key, err := req.RequireString("item")
	if err != nil {
		return mcp.NewToolResultError("item is required"), nil //nolint:nilerr
	}
	dst, err := req.RequireString("to")
	if err != nil {
		return mcp.NewToolResultError("to is required"), nil //nolint:nilerr
	}

	it, err := h.svc.MoveItem(ctx, key, dst, req.GetBool("force", false))
	log.Event("mcp:move", "move").Author("mcp").Item(key).Container(dst).Write(err)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(it.ToJSON())
}
