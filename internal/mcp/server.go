// Package mcp serves stash over the Model Context Protocol so assistants can
// browse containers, search items and manage filters.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jpl-au/stash/extension"
	"github.com/jpl-au/stash/internal/config"
	"github.com/jpl-au/stash/internal/inventory"
	"github.com/jpl-au/stash/internal/log"
	"github.com/jpl-au/stash/internal/repo"
	"github.com/jpl-au/stash/internal/version"
)

// ErrNotInitialised is the tool error shown before stash_init has run.
const ErrNotInitialised = "stash not initialised - call stash_init first"

// Serve runs the server on stdio until the client disconnects. It starts
// even without a database so a client can call stash_init.
func Serve(db string) error {
	// stdout carries JSON-RPC
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	h := &handlers{db: db}
	svc, err := inventory.New(db)
	switch {
	case err == nil:
		if err := h.open(svc); err != nil {
			svc.Close()
			slog.Error("failed to initialise extensions", "error", err)
			return err
		}
		defer svc.Close()
	case errors.Is(err, repo.ErrNotInitialised):
		slog.Info("stash not initialised, waiting for stash_init")
	default:
		slog.Error("failed to open store", "error", err)
		return err
	}

	slog.Info("stash MCP server ready", "version", version.Short(), "transport", "stdio")
	err = server.ServeStdio(newServer(h))
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// handlers holds the service behind every tool. svc is nil until the
// database exists.
type handlers struct {
	db     string
	svc    *inventory.Service
	extCtx extension.Context
}

// open attaches svc and runs extension setup against it.
func (h *handlers) open(svc *inventory.Service) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log.SetProject(filepath.Dir(svc.DBPath()))

	ctx := extension.NewContext(svc, svc.DB(), cfg)
	svc.SetExtensionContext(ctx)
	for _, ext := range extension.All() {
		if in, ok := ext.(extension.Initializable); ok {
			if err := in.Init(ctx); err != nil {
				return fmt.Errorf("init extension %s: %w", ext.Name(), err)
			}
		}
	}
	h.svc = svc
	h.extCtx = ctx
	return nil
}

// requireInit returns an error result when there is no database yet.
func (h *handlers) requireInit() *mcp.CallToolResult {
	if h.svc == nil {
		return mcp.NewToolResultError(ErrNotInitialised)
	}
	return nil
}

func newServer(h *handlers) *server.MCPServer {
	s := server.NewMCPServer(
		"stash",
		version.Short(),
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
	)
	registerResources(s, h)
	registerTools(s, h)
	registerExtensionTools(s, h)
	return s
}

// registerExtensionTools adds tools contributed by extensions. They only
// run once a database is open.
func registerExtensionTools(s *server.MCPServer, h *handlers) {
	for _, t := range extension.Tools() {
		handler := t.Handler
		s.AddTool(t.Tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			if res := h.requireInit(); res != nil {
				return res, nil
			}
			return handler(ctx, h.extCtx, req)
		})
	}
}

func registerTools(s *server.MCPServer, h *handlers) {
	s.AddTool(
		mcp.NewTool("stash_init",
			mcp.WithDescription("Create a stash database in the current directory. Call this first if other tools report stash is not initialised."),
			mcp.WithBoolean("local", mcp.Description("Gitignore the database")),
		),
		h.initStore,
	)

	s.AddTool(
		mcp.NewTool("stash_containers",
			mcp.WithDescription("List containers"),
			mcp.WithString("prefix", mcp.Description("Only containers named prefix or nested below it")),
			mcp.WithBoolean("include_deleted", mcp.Description("Include soft-deleted containers")),
			mcp.WithBoolean("deleted_only", mcp.Description("Only soft-deleted containers")),
		),
		h.listContainers,
	)

	s.AddTool(
		mcp.NewTool("stash_create",
			mcp.WithDescription("Create an empty container"),
			mcp.WithString("name", mcp.Required(), mcp.Description("Container name, '/' separates levels (e.g. farm/shed)")),
			mcp.WithNumber("capacity", mcp.Description("Number of slots, 0 for unlimited")),
		),
		h.createContainer,
	)

	s.AddTool(
		mcp.NewTool("stash_items",
			mcp.WithDescription("List the items of a container in slot order"),
			mcp.WithString("container", mcp.Required(), mcp.Description("Container name or key")),
			mcp.WithString("tag", mcp.Description("Only items with this context tag")),
		),
		h.listItems,
	)

	s.AddTool(
		mcp.NewTool("stash_add",
			mcp.WithDescription("Add an item to a container. Items with the same id merge into one stack. Fails if the container's filter rejects the item unless force is set."),
			mcp.WithString("container", mcp.Required(), mcp.Description("Container name or key")),
			mcp.WithString("id", mcp.Required(), mcp.Description("Internal item name, e.g. iridium_ore")),
			mcp.WithString("display", mcp.Description("Display name, e.g. Iridium Ore")),
			mcp.WithString("category", mcp.Description("Category, e.g. Resource")),
			mcp.WithArray("tags", mcp.WithStringItems(), mcp.Description("Context tags")),
			mcp.WithNumber("stack", mcp.Description("Units to add (default 1)")),
			mcp.WithBoolean("force", mcp.Description("Ignore the container filter")),
		),
		h.addItem,
	)

	s.AddTool(
		mcp.NewTool("stash_remove",
			mcp.WithDescription("Remove an item stack"),
			mcp.WithString("item", mcp.Required(), mcp.Description("Item key")),
		),
		h.removeItem,
	)

	s.AddTool(
		mcp.NewTool("stash_move",
			mcp.WithDescription("Move an item stack to another container, merging with a stack of the same id"),
			mcp.WithString("item", mcp.Required(), mcp.Description("Item key")),
			mcp.WithString("to", mcp.Required(), mcp.Description("Destination container")),
			mcp.WithBoolean("force", mcp.Description("Ignore the destination filter")),
		),
		h.moveItem,
	)

	s.AddTool(
		mcp.NewTool("stash_search",
			mcp.WithDescription(`Search items. Words are ANDed; use | or OR for alternatives, !word to exclude, "quotes" for phrases and parentheses for grouping. Terms match display name, internal name, category and context tags.`),
			mcp.WithString("query", mcp.Required(), mcp.Description("Query text")),
			mcp.WithString("container", mcp.Description("Search one container only")),
			mcp.WithString("prefix", mcp.Description("Only containers under this name")),
			mcp.WithString("mode", mcp.Enum("exact", "partial"), mcp.Description("exact compares whole attributes, partial matches substrings (default from config)")),
			mcp.WithNumber("limit", mcp.Description("Maximum results")),
		),
		h.searchItems,
	)

	s.AddTool(
		mcp.NewTool("stash_find",
			mcp.WithDescription("List searchable containers holding at least one item matching the query"),
			mcp.WithString("query", mcp.Required(), mcp.Description("Query text")),
			mcp.WithString("prefix", mcp.Description("Only containers under this name")),
			mcp.WithString("mode", mcp.Enum("exact", "partial"), mcp.Description("Match mode (default from config)")),
		),
		h.findContainers,
	)

	s.AddTool(
		mcp.NewTool("stash_explain",
			mcp.WithDescription("Show how a query is tokenized and parsed"),
			mcp.WithString("query", mcp.Required(), mcp.Description("Query text")),
		),
		h.explainQuery,
	)

	s.AddTool(
		mcp.NewTool("stash_filter_get",
			mcp.WithDescription("Show a container's item filter"),
			mcp.WithString("container", mcp.Required(), mcp.Description("Container name or key")),
		),
		h.filterGet,
	)

	s.AddTool(
		mcp.NewTool("stash_filter_set",
			mcp.WithDescription("Change a container's item filter and report which stored items it accepts before and after. Stored items are never moved."),
			mcp.WithString("container", mcp.Required(), mcp.Description("Container name or key")),
			mcp.WithString("term", mcp.Description("Filter query; items must match it exactly")),
			mcp.WithBoolean("enable", mcp.Description("Turn filtering on")),
			mcp.WithBoolean("disable", mcp.Description("Turn filtering off")),
			mcp.WithBoolean("dry_run", mcp.Description("Preview without saving")),
		),
		h.filterSet,
	)

	s.AddTool(
		mcp.NewTool("stash_tag_add",
			mcp.WithDescription("Add a context tag to an item"),
			mcp.WithString("item", mcp.Required(), mcp.Description("Item key")),
			mcp.WithString("tag", mcp.Required(), mcp.Description("Tag to add")),
		),
		h.tagAdd,
	)

	s.AddTool(
		mcp.NewTool("stash_tag_remove",
			mcp.WithDescription("Remove a context tag from an item"),
			mcp.WithString("item", mcp.Required(), mcp.Description("Item key")),
			mcp.WithString("tag", mcp.Required(), mcp.Description("Tag to remove")),
		),
		h.tagRemove,
	)

	s.AddTool(
		mcp.NewTool("stash_tags",
			mcp.WithDescription("List tags of an item, or every tag in use"),
			mcp.WithString("item", mcp.Description("Item key (optional)")),
		),
		h.listTags,
	)

	s.AddTool(
		mcp.NewTool("stash_import",
			mcp.WithDescription("Add items from a .yaml, .json or .jsonl file (optionally .zst compressed) to a container"),
			mcp.WithString("file", mcp.Required(), mcp.Description("Path to the catalog file")),
			mcp.WithString("container", mcp.Required(), mcp.Description("Target container")),
			mcp.WithBoolean("dry_run", mcp.Description("Show what would be added")),
			mcp.WithBoolean("force", mcp.Description("Ignore the container filter")),
		),
		h.importCatalog,
	)

	s.AddTool(
		mcp.NewTool("stash_export",
			mcp.WithDescription("Write a container's items to a catalog file"),
			mcp.WithString("container", mcp.Required(), mcp.Description("Container name or key")),
			mcp.WithString("file", mcp.Required(), mcp.Description("Destination; the suffix picks the format")),
			mcp.WithBoolean("force", mcp.Description("Overwrite an existing file")),
		),
		h.exportCatalog,
	)

	s.AddTool(
		mcp.NewTool("stash_config_get",
			mcp.WithDescription("Get a configuration value, or all of them"),
			mcp.WithString("key", mcp.Description("Config key or empty for all")),
		),
		h.configGet,
	)

	s.AddTool(
		mcp.NewTool("stash_config_set",
			mcp.WithDescription("Set a configuration value"),
			mcp.WithString("key", mcp.Required(), mcp.Description("Config key")),
			mcp.WithString("value", mcp.Required(), mcp.Description("Value")),
		),
		h.configSet,
	)

	s.AddTool(
		mcp.NewTool("stash_guide",
			mcp.WithDescription("Read a stash guide page"),
			mcp.WithString("topic", mcp.Description("Guide topic (e.g. 'search', 'filter') or empty for the index")),
		),
		h.getGuide,
	)
}
