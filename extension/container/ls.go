// ls.go implements "stash ls". A container name lists its items; a prefix
// or nothing lists containers.

package container

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/stash/cmd"
	"github.com/jpl-au/stash/extension"
	"github.com/jpl-au/stash/internal/log"
	"github.com/jpl-au/stash/internal/ls"
)

func (e *Extension) newLsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "ls [name]",
		Short: "List containers or the items of one",
		Long: `List containers, or the items of a container in slot order.

  stash ls                  # all containers
  stash ls farm             # farm's items, or containers under farm/
  stash ls farm/shed -l     # items with internal names and tags
  stash ls -t               # container tree`,
		Args: cobra.MaximumNArgs(1),
		RunE: e.runLs,
	}
	c.Flags().BoolP(extension.FlagAll, "A", false, "Include deleted containers")
	c.Flags().BoolP(extension.FlagDeleted, "D", false, "Show only deleted containers")
	c.Flags().BoolP(extension.FlagTree, "t", false, "Display containers as a tree")
	c.Flags().BoolP(extension.FlagLong, "l", false, "Long format")
	c.Flags().String(extension.FlagTag, "", "Only items with this context tag")
	c.Flags().StringP(extension.FlagSort, "s", "", "Sort items by: name, stack")
	c.Flags().BoolP(extension.FlagReverse, "R", false, "Reverse sort order")
	c.MarkFlagsMutuallyExclusive(extension.FlagAll, extension.FlagDeleted)
	return c
}

func (e *Extension) runLs(c *cobra.Command, args []string) error {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}

	var opts ls.Options
	opts.IncludeAll, _ = c.Flags().GetBool(extension.FlagAll)
	opts.DeletedOnly, _ = c.Flags().GetBool(extension.FlagDeleted)
	opts.Tree, _ = c.Flags().GetBool(extension.FlagTree)
	opts.Long, _ = c.Flags().GetBool(extension.FlagLong)
	opts.Tag, _ = c.Flags().GetString(extension.FlagTag)
	opts.Reverse, _ = c.Flags().GetBool(extension.FlagReverse)

	sortBy, _ := c.Flags().GetString(extension.FlagSort)
	switch ls.SortField(sortBy) {
	case ls.SortSlot, ls.SortName, ls.SortStack:
		opts.Sort = ls.SortField(sortBy)
	default:
		return cmd.PrintJSONError(fmt.Errorf("invalid sort field %q: must be 'name' or 'stack'", sortBy))
	}

	result, err := ls.Run(c.Context(), cmd.TextOut(), e.svc, name, opts)

	log.Event("container:ls", "list").
		Author(cmd.Author()).
		Container(name).
		Count(result.Count()).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("ls %q: %w", name, err))
	}
	return cmd.PrintJSON(result.ToJSON())
}
