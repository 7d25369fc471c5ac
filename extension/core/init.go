// init.go implements "stash init". Init creates the database only; config
// is managed separately through "stash config", as with git.

package core

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/stash/cmd"
	"github.com/jpl-au/stash/extension"
	"github.com/jpl-au/stash/internal/inventory"
	"github.com/jpl-au/stash/internal/log"
	"github.com/jpl-au/stash/internal/repo"
)

func newInitCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "init",
		Short: "Initialise a new stash",
		Long: `Creates a .stash/stash.db database in the current directory.

Use --db to create additional databases:
  stash init --db farm    # creates .stash/stash-farm.db

Use --dir to create in a different directory:
  stash init --dir /path/to/save    # creates /path/to/save/.stash/stash.db

Use --local to exclude from git:
  stash init --db scratch --local

Note: init does not create config. Use "stash config" for that.`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}
	c.Flags().BoolP(extension.FlagLocal, "l", false, "Mark database as local (gitignored)")
	return c
}

func runInit(c *cobra.Command, _ []string) error {
	local, _ := c.Flags().GetBool(extension.FlagLocal)
	db, dir := cmd.DB(), cmd.Dir()

	// --local edits this project's .gitignore, which is meaningless for a
	// database created elsewhere.
	if local && dir != "" {
		return cmd.PrintJSONError(errors.New("cannot use --local with --dir"))
	}

	err := inventory.Init(cmd.Force(), db, local, dir)

	log.Event("core:init", "init").
		Author(cmd.Author()).
		Detail("db", db).
		Detail("dir", dir).
		Detail("local", local).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("init: %w", err))
	}

	loc := repo.Dir + "/" + repo.DBFileName(db)
	if dir != "" {
		loc = dir + "/" + loc
	}
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"path": loc, "local": local})
	}
	fmt.Fprintf(cmd.Out(), "Initialised stash in %s\n", loc)
	return nil
}
