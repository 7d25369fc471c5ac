// option.go implements "stash option", which reads and writes the
// per-container option dictionary. Values left at default inherit the
// defaults.* config keys.

package container

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jpl-au/stash/cmd"
	"github.com/jpl-au/stash/internal/log"
	"github.com/jpl-au/stash/internal/options"
)

func (e *Extension) newOptionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "option <container> [key] [value]",
		Short: "View or set container options",
		Long: `View or set container options.

  stash option farm/shed                          # resolved options
  stash option farm/shed filter_term              # one value
  stash option farm/shed search_items disabled    # hide from search
  stash option farm/shed label ""                 # clear

Keys: ` + fmt.Sprint(options.Keys()) + `
filter_items and search_items take default, enabled or disabled; default
inherits defaults.filter_items / defaults.search_items from config.`,
		Args: cobra.RangeArgs(1, 3),
		RunE: e.runOption,
	}
}

func (e *Extension) runOption(c *cobra.Command, args []string) error {
	ctx := c.Context()
	name := args[0]

	if len(args) == 3 {
		key, value := args[1], args[2]
		err := e.svc.SetOption(ctx, name, key, value)

		log.Event("container:option", "set").
			Author(cmd.Author()).
			Container(name).
			Detail("key", key).
			Detail("value", value).
			Write(err)

		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("option %q: %w", name, err))
		}
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]string{"container": name, "key": key, "value": value})
		}
		fmt.Fprintf(cmd.Out(), "%s: %s = %s\n", name, key, value)
		return nil
	}

	ct, err := e.svc.Load(ctx, name)
	if err != nil {
		log.Event("container:option", "get").Author(cmd.Author()).Container(name).Write(err)
		return cmd.PrintJSONError(fmt.Errorf("option %q: %w", name, err))
	}

	if len(args) == 2 {
		v, err := options.Get(ct.Options, args[1])
		log.Event("container:option", "get").Author(cmd.Author()).Container(name).Detail("key", args[1]).Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("option %q: %w", name, err))
		}
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]string{args[1]: v})
		}
		fmt.Fprintln(cmd.Out(), v)
		return nil
	}

	all := options.All(ct.Options)
	log.Event("container:option", "list").Author(cmd.Author()).Container(name).Write(nil)
	if cmd.JSON() {
		return cmd.PrintJSON(all)
	}
	keys := options.Keys()
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(cmd.Out(), "%s: %s\n", k, all[k])
	}
	return nil
}
