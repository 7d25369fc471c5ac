// resources.go exposes containers as read-only MCP resources so clients can
// load a container's contents as context without calling a tool.

package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jpl-au/stash/internal/store"
)

const containerURI = "stash://containers/"

var (
	// ErrInvalidURI is returned for URIs outside the stash scheme.
	ErrInvalidURI = errors.New("invalid URI")
	// ErrEmptyName is returned when the URI names no container.
	ErrEmptyName = errors.New("empty container name")
)

func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(containerURI+"{name}", "Container",
			mcp.WithTemplateDescription("Items of a container in slot order, as JSON"),
			mcp.WithTemplateMIMEType("application/json"),
		),
		func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			return h.readContainer(ctx, req.Params.URI)
		},
	)
}

// readContainer returns the items of the container named by uri.
func (h *handlers) readContainer(ctx context.Context, uri string) ([]mcp.ResourceContents, error) {
	if h.svc == nil {
		return nil, errors.New(ErrNotInitialised)
	}
	name, err := parseContainerURI(uri)
	if err != nil {
		return nil, err
	}

	c, err := h.svc.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	items := make([]store.ItemJSON, len(c.Items))
	for i := range c.Items {
		items[i] = c.Items[i].ToJSON()
	}
	data, err := store.MarshalJSON(map[string]any{
		"container": c.Info.ToJSON(),
		"items":     items,
	})
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// parseContainerURI extracts the container name from
// stash://containers/{name}. Names may contain '/'.
func parseContainerURI(uri string) (string, error) {
	name, ok := strings.CutPrefix(uri, containerURI)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	name = strings.Trim(name, "/")
	if name == "" {
		return "", ErrEmptyName
	}
	return name, nil
}
