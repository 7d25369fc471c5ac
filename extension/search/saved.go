// saved.go implements "stash query", which names queries for reuse with
// "stash search --saved".

package search

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/stash/cmd"
	"github.com/jpl-au/stash/extension"
	"github.com/jpl-au/stash/internal/log"
	"github.com/jpl-au/stash/internal/saved"
)

func (e *Extension) newQueryCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "query",
		Short: "Manage saved queries",
		Long: `Save, list and delete named queries.

  stash query save ores 'ore !copper' --exact
  stash query ls
  stash search --saved ores
  stash query rm ores`,
	}

	save := &cobra.Command{
		Use:   "save <name> <query>",
		Short: "Save a query under a name",
		Args:  cobra.MinimumNArgs(2),
		RunE:  e.runQuerySave,
	}
	addModeFlags(save)

	ls := &cobra.Command{
		Use:   "ls",
		Short: "List saved queries",
		Args:  cobra.NoArgs,
		RunE:  e.runQueryLs,
	}
	ls.Flags().BoolP(extension.FlagAll, "A", false, "Include deleted queries")

	rm := &cobra.Command{
		Use:   "rm <name>",
		Short: "Delete a saved query",
		Args:  cobra.ExactArgs(1),
		RunE:  e.runQueryRm,
	}

	c.AddCommand(save, ls, rm)
	return c
}

func (e *Extension) runQuerySave(c *cobra.Command, args []string) error {
	text, err := queryText(args[1:])
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	q := saved.Query{Name: args[0], Text: text, Author: cmd.Author()}
	if m := modeFlag(c); m != nil {
		q.Mode = m.String()
	}
	if err := e.svc.CheckQuery(text); err != nil {
		return cmd.PrintJSONError(err)
	}

	got, err := e.saved.Save(c.Context(), q)

	log.Event("search:query", "save").
		Author(cmd.Author()).
		Query(text).
		Detail("name", args[0]).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("query save %q: %w", args[0], err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(got)
	}
	fmt.Fprintf(cmd.Out(), "Saved %s: %s\n", got.Name, got.Text)
	return nil
}

func (e *Extension) runQueryLs(c *cobra.Command, _ []string) error {
	all, _ := c.Flags().GetBool(extension.FlagAll)
	qs, err := e.saved.List(c.Context(), all)

	log.Event("search:query", "list").Author(cmd.Author()).Count(len(qs)).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("query ls: %w", err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(qs)
	}
	for _, q := range qs {
		line := fmt.Sprintf("%s  %s", q.Name, q.Text)
		if q.Mode != "" {
			line += "  [" + q.Mode + "]"
		}
		if q.DeletedAt != nil {
			line += " [deleted]"
		}
		fmt.Fprintln(cmd.Out(), line)
	}
	return nil
}

func (e *Extension) runQueryRm(c *cobra.Command, args []string) error {
	err := e.saved.Delete(c.Context(), args[0])

	log.Event("search:query", "delete").Author(cmd.Author()).Detail("name", args[0]).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("query rm %q: %w", args[0], err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]string{"deleted": args[0]})
	}
	fmt.Fprintf(cmd.Out(), "Deleted %s\n", args[0])
	return nil
}
