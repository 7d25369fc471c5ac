// Package tag provides the tag extension for stash.
// It registers commands: tag (with subcommands add, rm, ls).
//
// Context tags are free-text labels on an item stack. Queries match them
// like any other attribute, so "stash search rare" finds items tagged rare.
package tag

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/stash/cmd"
	"github.com/jpl-au/stash/extension"
	"github.com/jpl-au/stash/internal/log"
	"github.com/jpl-au/stash/internal/service"
	"github.com/jpl-au/stash/internal/tag"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the tag extension.
type Extension struct {
	svc service.Service
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "tag".
func (e *Extension) Name() string { return "tag" }

// Init receives the shared service from the extension context.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns the tag command with its subcommands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{e.newTagCmd()}
}

// MCPTools returns nil; tag tools are registered by internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

func (e *Extension) newTagCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "tag",
		Short: "Manage item context tags",
		Long: `Add, remove and list context tags on item stacks.

  stash tag add a1b2c3d4 rare
  stash tag rm a1b2c3d4 rare
  stash tag ls a1b2c3d4
  stash tag ls               # every tag in use`,
	}
	c.AddCommand(
		&cobra.Command{
			Use:   "add <item-key> <tag>",
			Short: "Add a tag to an item",
			Args:  cobra.ExactArgs(2),
			RunE: func(c *cobra.Command, args []string) error {
				return e.change(c, args[0], args[1], true)
			},
		},
		&cobra.Command{
			Use:   "rm <item-key> <tag>",
			Short: "Remove a tag from an item",
			Args:  cobra.ExactArgs(2),
			RunE: func(c *cobra.Command, args []string) error {
				return e.change(c, args[0], args[1], false)
			},
		},
		&cobra.Command{
			Use:   "ls [item-key]",
			Short: "List tags of an item, or all tags if omitted",
			Args:  cobra.MaximumNArgs(1),
			RunE:  e.runTagLs,
		},
	)
	return c
}

func (e *Extension) change(c *cobra.Command, key, t string, add bool) error {
	sub, action, run := "rm", "untag", tag.Remove
	if add {
		sub, action, run = "add", "tag", tag.Add
	}

	result, err := run(c.Context(), cmd.TextOut(), e.svc, key, t)

	log.Event("tag:"+sub, action).
		Author(cmd.Author()).
		Item(key).
		Container(result.Container).
		Detail("tag", t).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("tag %s %s %q: %w", sub, key, t, err))
	}
	return cmd.PrintJSON(result)
}

func (e *Extension) runTagLs(c *cobra.Command, args []string) error {
	key := ""
	if len(args) > 0 {
		key = args[0]
	}

	result, err := tag.List(c.Context(), cmd.TextOut(), e.svc, key)

	log.Event("tag:ls", "list_tags").
		Author(cmd.Author()).
		Item(key).
		Count(len(result.Tags)).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("tag ls %q: %w", key, err))
	}
	return cmd.PrintJSON(result)
}
