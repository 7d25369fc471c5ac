// new.go implements "stash new".

package container

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/stash/cmd"
	"github.com/jpl-au/stash/extension"
	"github.com/jpl-au/stash/internal/log"
)

func (e *Extension) newNewCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "new <name>",
		Short: "Create a container",
		Long: `Create an empty container. Names use '/' for nesting (farm/shed).

  stash new farm/shed --capacity 24   # 24 slots
  stash new chest                     # unlimited`,
		Args: cobra.ExactArgs(1),
		RunE: e.runNew,
	}
	c.Flags().Int(extension.FlagCapacity, 0, "Number of slots (0 for unlimited)")
	return c
}

func (e *Extension) runNew(c *cobra.Command, args []string) error {
	capacity, _ := c.Flags().GetInt(extension.FlagCapacity)
	if capacity < 0 {
		return cmd.PrintJSONError(fmt.Errorf("capacity must be >= 0, got %d", capacity))
	}

	ct, err := e.svc.CreateContainer(c.Context(), args[0], capacity)

	log.Event("container:new", "create").
		Author(cmd.Author()).
		Container(args[0]).
		Detail("capacity", capacity).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("new %q: %w", args[0], err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(ct.ToJSON())
	}
	fmt.Fprintf(cmd.Out(), "Created %s (%s)\n", ct.Name, ct.Key)
	return nil
}
