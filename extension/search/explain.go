// explain.go implements "stash explain", which shows how a query is
// tokenized and grouped. It never touches the database.

package search

import (
	"github.com/spf13/cobra"

	"github.com/jpl-au/stash/cmd"
	"github.com/jpl-au/stash/internal/search"
)

func (e *Extension) newExplainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain <query>",
		Short: "Show how a query is parsed",
		Long: `Print the tokens and the parsed tree of a query.

  stash explain 'a b | !c'
  # tree: Or(And(Term(a), Term(b)), Not(Term(c)))`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			text, err := queryText(args)
			if err != nil {
				return cmd.PrintJSONError(err)
			}
			ex := search.Explain(text)
			if cmd.JSON() {
				return cmd.PrintJSON(ex)
			}
			return ex.Write(cmd.Out())
		},
	}
}

// NoStoreCommands lists explain, which needs no database.
func (e *Extension) NoStoreCommands() []string {
	return []string{"explain"}
}
