// db.go implements "stash db", which lists databases and toggles whether
// they are committed. It only touches .gitignore, never the databases.

package core

import (
	"fmt"
	"path/filepath"

	"github.com/jpl-au/stash/cmd"
	"github.com/jpl-au/stash/extension"
	"github.com/jpl-au/stash/internal/log"
	"github.com/jpl-au/stash/internal/repo"
	"github.com/spf13/cobra"
)

func newDBCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "db [name]",
		Short: "List or manage databases",
		Long: `List databases or change their local/shared status.

  stash db                    # list all databases
  stash db --local            # mark default database as local
  stash db farm --local       # mark stash-farm.db as local
  stash db farm --share       # mark it shared again
  stash db --dir /path        # list databases in external directory

Local databases are not committed. Shared databases are.
If no name is given with --local or --share, operates on the default database.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDB,
	}
	c.Flags().BoolP(extension.FlagLocal, "l", false, "Mark database as local")
	c.Flags().BoolP(extension.FlagShare, "s", false, "Mark database as shared")
	c.MarkFlagsMutuallyExclusive(extension.FlagLocal, extension.FlagShare)
	return c
}

func runDB(c *cobra.Command, args []string) error {
	local, _ := c.Flags().GetBool(extension.FlagLocal)
	share, _ := c.Flags().GetBool(extension.FlagShare)

	// repo functions take the .stash directory, not the project root
	dir := cmd.Dir()
	stashDir := ""
	if dir != "" {
		stashDir = filepath.Join(dir, repo.Dir)
	}

	if len(args) == 0 && !local && !share {
		err := listDBs(stashDir)

		log.Event("core:db", "list").
			Author(cmd.Author()).
			Detail("dir", dir).
			Write(err)

		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("db list: %w", err))
		}
		return nil
	}

	name := ""
	if len(args) > 0 {
		name = args[0]
	}

	var (
		action = "status"
		err    error
	)
	switch {
	case local:
		action, err = "ignore", repo.IgnoreDB(name, stashDir)
	case share:
		action, err = "unignore", repo.UnignoreDB(name, stashDir)
	}

	isLocal := local
	if err == nil && !local && !share {
		isLocal, err = repo.IsIgnored(name, stashDir)
	}

	log.Event("core:db", action).
		Author(cmd.Author()).
		Detail("db", name).
		Detail("dir", dir).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("db %s %q: %w", action, name, err))
	}

	file := repo.DBFileName(name)
	status := "shared"
	if isLocal {
		status = "local"
	}
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"file": file, "local": isLocal})
	}
	if action == "status" {
		fmt.Fprintf(cmd.Out(), "%s: %s\n", file, status)
	} else {
		fmt.Fprintf(cmd.Out(), "%s marked as %s\n", file, status)
	}
	return nil
}

// listDBs prints each database as shared (committed) or local
// (gitignored).
func listDBs(dir string) error {
	dbs, err := repo.ListDBs(dir)
	if err != nil {
		return err
	}

	if cmd.JSON() {
		out := make([]map[string]any, len(dbs))
		for i, db := range dbs {
			out[i] = map[string]any{"name": db.Name, "file": db.File, "local": db.Local}
		}
		return cmd.PrintJSON(out)
	}
	if len(dbs) == 0 {
		fmt.Fprintln(cmd.Out(), "No databases found")
		return nil
	}

	for _, db := range dbs {
		status := "shared"
		if db.Local {
			status = "local"
		}
		fmt.Fprintf(cmd.Out(), "%s  %s\n", db.File, status)
	}
	return nil
}
