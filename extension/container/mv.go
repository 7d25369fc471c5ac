// mv.go implements "stash mv" for items and "stash rename" for containers.

package container

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/stash/cmd"
	"github.com/jpl-au/stash/internal/inventory"
	"github.com/jpl-au/stash/internal/log"
)

func (e *Extension) newMvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mv <item-key> <container>",
		Short: "Move an item to another container",
		Long: `Move an item stack. It merges into a stack with the same id in the
destination, otherwise takes the first free slot. The destination filter
applies unless --force is given.`,
		Args: cobra.ExactArgs(2),
		RunE: e.runMv,
	}
}

func (e *Extension) runMv(c *cobra.Command, args []string) error {
	key, dst := args[0], args[1]
	it, err := e.svc.MoveItem(c.Context(), key, dst, cmd.Force())

	log.Event("container:mv", "move").
		Author(cmd.Author()).
		Item(key).
		Container(dst).
		Detail("force", cmd.Force()).
		Write(err)

	if errors.Is(err, inventory.ErrFiltered) {
		return cmd.PrintJSONError(fmt.Errorf("mv %s to %q: %w (use --force to override)", key, dst, err))
	}
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("mv %s to %q: %w", key, dst, err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(it.ToJSON())
	}
	fmt.Fprintf(cmd.Out(), "Moved %s -> %s x%d (%s)\n", it.DisplayName(), it.Container, it.Stack, it.Key)
	return nil
}

func (e *Extension) newRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <container> <new-name>",
		Short: "Rename a container",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			from, to := args[0], args[1]
			err := e.svc.RenameContainer(c.Context(), from, to)

			log.Event("container:rename", "rename").
				Author(cmd.Author()).
				Container(to).
				Detail("from", from).
				Write(err)

			if err != nil {
				return cmd.PrintJSONError(fmt.Errorf("rename %q: %w", from, err))
			}
			if cmd.JSON() {
				return cmd.PrintJSON(map[string]string{"from": from, "to": to})
			}
			fmt.Fprintf(cmd.Out(), "Renamed %s -> %s\n", from, to)
			return nil
		},
	}
}
