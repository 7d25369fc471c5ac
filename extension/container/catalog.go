// catalog.go implements "stash import" and "stash export" for catalog
// files (.yaml, .json, .jsonl, optionally .zst compressed).

package container

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/stash/cmd"
	"github.com/jpl-au/stash/extension"
	"github.com/jpl-au/stash/internal/catalog"
	"github.com/jpl-au/stash/internal/log"
)

func (e *Extension) newImportCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "import <file> <container>",
		Short: "Add items from a catalog file",
		Long: `Add every entry of a catalog file to a container. Entries the container
filter rejects are skipped and listed; --force adds them anyway.

  stash import seeds.yaml farm/shed
  stash import dump.jsonl.zst farm/barn --dry-run`,
		Args: cobra.ExactArgs(2),
		RunE: e.runImport,
	}
	c.Flags().BoolP(extension.FlagDryRun, "n", false, "Show what would be added")
	return c
}

func (e *Extension) runImport(c *cobra.Command, args []string) error {
	file, name := args[0], args[1]
	opts := catalog.ImportOptions{Force: cmd.Force()}
	opts.DryRun, _ = c.Flags().GetBool(extension.FlagDryRun)

	result, err := catalog.Import(c.Context(), cmd.TextOut(), e.svc, file, name, opts)

	log.Event("container:import", "import").
		Author(cmd.Author()).
		Container(name).
		Count(result.Imported).
		Detail("file", file).
		Detail("dry_run", opts.DryRun).
		Detail("rejected", len(result.Rejected)).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("import %q: %w", file, err))
	}
	return cmd.PrintJSON(map[string]any{
		"imported": result.Imported,
		"ids":      result.IDs,
		"rejected": result.Rejected,
		"dry_run":  opts.DryRun,
	})
}

func (e *Extension) newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <container> <file>",
		Short: "Write a container's items to a catalog file",
		Long: `Write a container's items to a catalog file. The file suffix picks the
format. Existing files are kept unless --force is given.

  stash export farm/shed shed.yaml
  stash export farm/barn barn.jsonl.zst`,
		Args: cobra.ExactArgs(2),
		RunE: e.runExport,
	}
}

func (e *Extension) runExport(c *cobra.Command, args []string) error {
	name, file := args[0], args[1]
	result, err := catalog.Export(c.Context(), cmd.TextOut(), e.svc, name, file, catalog.ExportOptions{Force: cmd.Force()})

	log.Event("container:export", "export").
		Author(cmd.Author()).
		Container(name).
		Count(result.Exported).
		Detail("file", file).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("export %q: %w", name, err))
	}
	return cmd.PrintJSON(map[string]any{"exported": result.Exported, "path": result.Path})
}
