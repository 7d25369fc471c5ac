// filter.go implements "stash filter", which shows or changes the query a
// container uses to decide which items it accepts.

package search

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/stash/cmd"
	"github.com/jpl-au/stash/extension"
	"github.com/jpl-au/stash/internal/filter"
	"github.com/jpl-au/stash/internal/log"
)

func (e *Extension) newFilterCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "filter <container> [term]",
		Short: "Show or set a container's item filter",
		Long: `Show or change the filter a container applies to new items. An item is
accepted when it matches the term exactly. Changing the filter prints which
stored items are accepted before and after; stored items never move.

  stash filter farm/shed                          # show settings
  stash filter farm/shed 'ore | gem' --enable     # set term and enable
  stash filter farm/shed --disable                # accept everything
  stash filter farm/shed '' -n                    # preview clearing the term`,
		Args: cobra.RangeArgs(1, 2),
		RunE: e.runFilter,
	}
	c.Flags().Bool(extension.FlagEnable, false, "Turn filtering on")
	c.Flags().Bool(extension.FlagDisable, false, "Turn filtering off")
	c.Flags().BoolP(extension.FlagDryRun, "n", false, "Preview without saving")
	c.MarkFlagsMutuallyExclusive(extension.FlagEnable, extension.FlagDisable)
	return c
}

func (e *Extension) runFilter(c *cobra.Command, args []string) error {
	ctx := c.Context()
	name := args[0]

	var opts filter.Options
	opts.Enable, _ = c.Flags().GetBool(extension.FlagEnable)
	opts.Disable, _ = c.Flags().GetBool(extension.FlagDisable)
	opts.DryRun, _ = c.Flags().GetBool(extension.FlagDryRun)
	opts.Colour = cmd.Styled()
	if len(args) > 1 {
		opts.Term = &args[1]
	}

	if opts.Term == nil && !opts.Enable && !opts.Disable {
		s, err := filter.Get(ctx, cmd.TextOut(), e.svc, name)
		log.Event("search:filter", "get").Author(cmd.Author()).Container(name).Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("filter %q: %w", name, err))
		}
		return cmd.PrintJSON(s)
	}

	result, err := filter.Set(ctx, cmd.TextOut(), e.svc, name, opts)

	l := log.Event("search:filter", "set").
		Author(cmd.Author()).
		Container(name).
		Detail("enable", opts.Enable).
		Detail("disable", opts.Disable).
		Detail("dry_run", opts.DryRun)
	if opts.Term != nil {
		l = l.Query(*opts.Term)
	}
	l.Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("filter %q: %w", name, err))
	}
	return cmd.PrintJSON(map[string]any{
		"before":  result.Before,
		"after":   result.After,
		"added":   result.Diff.Added,
		"removed": result.Diff.Removed,
		"saved":   !opts.DryRun,
	})
}
