// add.go implements "stash add". Adding an item whose internal name already
// has a stack in the container grows that stack.

package container

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/stash/cmd"
	"github.com/jpl-au/stash/extension"
	"github.com/jpl-au/stash/internal/inventory"
	"github.com/jpl-au/stash/internal/log"
	"github.com/jpl-au/stash/internal/store"
)

func (e *Extension) newAddCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "add <container> <id>",
		Short: "Add an item to a container",
		Long: `Add an item by internal id. The container's filter must accept it
unless --force is given.

  stash add farm/shed iridium_ore --display "Iridium Ore" --category Resource --tag rare --stack 5`,
		Args: cobra.ExactArgs(2),
		RunE: e.runAdd,
	}
	c.Flags().String(extension.FlagDisplay, "", "Display name")
	c.Flags().String(extension.FlagCategory, "", "Category")
	c.Flags().StringArray(extension.FlagTag, nil, "Context tag (repeatable)")
	c.Flags().Int(extension.FlagStack, 1, "Units to add")
	return c
}

func (e *Extension) runAdd(c *cobra.Command, args []string) error {
	name, id := args[0], args[1]
	it := store.NewItem{Name: id}
	it.Display, _ = c.Flags().GetString(extension.FlagDisplay)
	it.Category, _ = c.Flags().GetString(extension.FlagCategory)
	it.Tags, _ = c.Flags().GetStringArray(extension.FlagTag)
	it.Stack, _ = c.Flags().GetInt(extension.FlagStack)
	if it.Stack < 1 {
		return cmd.PrintJSONError(fmt.Errorf("stack must be >= 1, got %d", it.Stack))
	}

	added, err := e.svc.Add(c.Context(), name, it, cmd.Force())

	l := log.Event("container:add", "add").
		Author(cmd.Author()).
		Container(name).
		Count(it.Stack).
		Detail("id", id).
		Detail("force", cmd.Force())
	if added != nil {
		l = l.Item(added.Key)
	}
	l.Write(err)

	if errors.Is(err, inventory.ErrFiltered) {
		return cmd.PrintJSONError(fmt.Errorf("add %q to %q: %w (use --force to override)", id, name, err))
	}
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("add %q to %q: %w", id, name, err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(added.ToJSON())
	}
	fmt.Fprintf(cmd.Out(), "Added %s -> %s x%d (%s, slot %d)\n", added.DisplayName(), added.Container, added.Stack, added.Key, added.Slot)
	return nil
}
