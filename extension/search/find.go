// find.go implements "stash search" (items) and "stash find" (containers).

package search

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/stash/cmd"
	"github.com/jpl-au/stash/extension"
	"github.com/jpl-au/stash/internal/format"
	"github.com/jpl-au/stash/internal/log"
	"github.com/jpl-au/stash/internal/search"
)

func (e *Extension) newSearchCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "search <query>",
		Short: "Search items",
		Long: `Search items in every searchable container, or in one.

Words are ANDed. Use | or OR between alternatives, !word to exclude,
"double quotes" for phrases and parentheses to group. Terms match the
display name, internal name, category and context tags.

  stash search iridium ore
  stash search 'ore !copper' -c farm/shed
  stash search '(gem | mineral) rare' --exact
  stash search --saved ores

Marks: * exact match, ~ partial match only.`,
		RunE: e.runSearch,
	}
	c.Flags().StringP(extension.FlagContainer, "c", "", "Search one container only")
	c.Flags().StringP(extension.FlagPrefix, "p", "", "Only containers under this name")
	c.Flags().Bool(extension.FlagDimmed, false, "Also list items that do not match")
	c.Flags().IntP(extension.FlagLimit, "n", 0, "Maximum results")
	c.Flags().BoolP(extension.FlagLong, "l", false, "Markdown table output")
	c.Flags().String(extension.FlagSaved, "", "Run a saved query")
	addModeFlags(c)
	return c
}

func (e *Extension) runSearch(c *cobra.Command, args []string) error {
	ctx := c.Context()

	var opts search.Options
	opts.Container, _ = c.Flags().GetString(extension.FlagContainer)
	opts.Prefix, _ = c.Flags().GetString(extension.FlagPrefix)
	opts.All, _ = c.Flags().GetBool(extension.FlagDimmed)
	opts.Limit, _ = c.Flags().GetInt(extension.FlagLimit)
	opts.Markdown, _ = c.Flags().GetBool(extension.FlagLong)
	opts.Styled = cmd.Styled()
	opts.Mode = modeFlag(c)

	var text string
	if name, _ := c.Flags().GetString(extension.FlagSaved); name != "" {
		if len(args) > 0 {
			return cmd.PrintJSONError(fmt.Errorf("--saved cannot be combined with a query"))
		}
		q, err := e.saved.Get(ctx, name)
		if err != nil {
			return cmd.PrintJSONError(err)
		}
		text = q.Text
		if opts.Mode == nil && q.Mode != "" {
			m := q.ParsedMode(e.svc.SearchMode())
			opts.Mode = &m
		}
	} else {
		var err error
		if text, err = queryText(args); err != nil {
			return cmd.PrintJSONError(err)
		}
	}

	result, err := search.Run(ctx, cmd.TextOut(), e.svc, text, opts)

	log.Event("search:search", "search").
		Author(cmd.Author()).
		Container(opts.Container).
		Query(text).
		Count(len(result.Matches)).
		Detail("mode", result.Mode.String()).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("search: %w", err))
	}
	return cmd.PrintJSON(result.ToJSON())
}

func (e *Extension) newFindCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "find <query>",
		Short: "Find containers holding matching items",
		Long: `List searchable containers that hold at least one item matching the
query. Uses the same query language as search.

  stash find iridium
  stash find 'seed | sapling' -p farm`,
		Args: cobra.MinimumNArgs(1),
		RunE: e.runFind,
	}
	c.Flags().StringP(extension.FlagPrefix, "p", "", "Only containers under this name")
	addModeFlags(c)
	return c
}

func (e *Extension) runFind(c *cobra.Command, args []string) error {
	text, err := queryText(args)
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	prefix, _ := c.Flags().GetString(extension.FlagPrefix)
	mode := e.svc.SearchMode()
	if m := modeFlag(c); m != nil {
		mode = *m
	}

	names, err := search.Containers(c.Context(), e.svc, text, prefix, mode)

	log.Event("search:find", "search").
		Author(cmd.Author()).
		Container(prefix).
		Query(text).
		Count(len(names)).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("find: %w", err))
	}
	if names == nil {
		names = []string{}
	}
	if cmd.JSON() {
		return cmd.PrintJSON(names)
	}
	return format.Names(cmd.Out(), names)
}
