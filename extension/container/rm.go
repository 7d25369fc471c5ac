// rm.go implements "stash rm". Containers are soft-deleted and can be
// restored until vacuum; items are removed for good.

package container

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/stash/cmd"
	"github.com/jpl-au/stash/extension"
	"github.com/jpl-au/stash/internal/log"
	"github.com/jpl-au/stash/internal/rm"
)

func (e *Extension) newRmCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "rm <container> [item-key]",
		Short: "Delete a container or remove an item",
		Long: `Soft-delete a container (recoverable with restore), or remove one item
stack from it.

  stash rm farm/shed            # delete the container
  stash rm farm -r              # delete farm and everything under it
  stash rm farm/shed a1b2c3d4   # remove one item`,
		Args: cobra.RangeArgs(1, 2),
		RunE: e.runRm,
	}
	c.Flags().BoolP(extension.FlagRecurse, "r", false, "Delete nested containers too")
	return c
}

func (e *Extension) runRm(c *cobra.Command, args []string) error {
	opts := rm.Options{}
	opts.Recursive, _ = c.Flags().GetBool(extension.FlagRecurse)
	if len(args) > 1 {
		opts.Item = args[1]
	}

	result, err := rm.Run(c.Context(), cmd.TextOut(), e.svc, args[0], opts)

	action := "delete"
	if opts.Item != "" {
		action = "remove"
	}
	log.Event("container:rm", action).
		Author(cmd.Author()).
		Container(args[0]).
		Item(opts.Item).
		Count(len(result.Deleted)).
		Detail("recursive", opts.Recursive).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("rm %q: %w", args[0], err))
	}
	return cmd.PrintJSON(result)
}

func (e *Extension) newRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <container>",
		Short: "Restore a deleted container",
		Long:  `Undo "stash rm" for a container that has not been vacuumed.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			ct, err := rm.Restore(c.Context(), cmd.TextOut(), e.svc, args[0])

			log.Event("container:restore", "restore").
				Author(cmd.Author()).
				Container(args[0]).
				Write(err)

			if err != nil {
				return cmd.PrintJSONError(fmt.Errorf("restore %q: %w", args[0], err))
			}
			return cmd.PrintJSON(ct.ToJSON())
		},
	}
}
