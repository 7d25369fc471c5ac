// vacuum.go implements "stash vacuum", which permanently removes
// soft-deleted containers. It is storeless so it can ask for confirmation
// before opening the database.

package core

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jpl-au/stash/cmd"
	"github.com/jpl-au/stash/extension"
	"github.com/jpl-au/stash/internal/config"
	"github.com/jpl-au/stash/internal/duration"
	"github.com/jpl-au/stash/internal/log"
	"github.com/jpl-au/stash/internal/vacuum"
)

func newVacuumCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "vacuum",
		Short: "Permanently delete soft-deleted containers",
		Long: `Permanently delete soft-deleted containers with their items, tags and
options. This is irreversible. Use --force to skip confirmation.

Duration formats: 12h (hours), 7d (days), 4w (weeks), 3m (months)`,
		Args: cobra.NoArgs,
		RunE: runVacuum,
	}
	c.Flags().String(extension.FlagOlderThan, "", "Only purge deletions older than duration (e.g., 7d, 4w, 3m)")
	c.Flags().StringP(extension.FlagContainer, "c", "", "Only purge containers under this name")
	c.Flags().BoolP(extension.FlagDryRun, "n", false, "Show what would be deleted")
	return c
}

func runVacuum(c *cobra.Command, _ []string) error {
	olderThan, _ := c.Flags().GetString(extension.FlagOlderThan)
	prefix, _ := c.Flags().GetString(extension.FlagContainer)
	dryRun, _ := c.Flags().GetBool(extension.FlagDryRun)

	opts := vacuum.Options{Prefix: prefix, DryRun: dryRun}
	if olderThan != "" {
		d, err := duration.Parse(olderThan)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("parse duration %q: %w", olderThan, err))
		}
		opts.OlderThan = &d
	}

	if !dryRun && !cmd.Force() && !confirm(c, "Permanently delete soft-deleted containers? This cannot be undone. [y/N] ") {
		fmt.Fprintln(cmd.Out(), "Cancelled")
		return nil
	}

	svc, err := cmd.OpenService()
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("open store: %w", err))
	}
	defer svc.Close()

	ctx := c.Context()
	result, err := vacuum.Run(ctx, cmd.TextOut(), svc, opts)

	log.Event("core:vacuum", "vacuum").
		Author(cmd.Author()).
		Container(prefix).
		Detail("dry_run", dryRun).
		Detail("rows", result.Rows).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("vacuum: %w", err))
	}
	if dryRun {
		return cmd.PrintJSON(map[string]any{"dry_run": true, "containers": result.Containers})
	}

	cfg, err := config.Load()
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	extCtx := extension.NewContext(svc, svc.DB(), cfg)
	extRows := map[string]int64{}
	for _, ext := range extension.All() {
		v, ok := ext.(extension.Vacuumable)
		if !ok {
			continue
		}
		n, err := v.Vacuum(extCtx, opts.OlderThan)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("vacuum extension %s: %w", ext.Name(), err))
		}
		if n > 0 {
			extRows[ext.Name()] = n
			if !cmd.JSON() {
				fmt.Fprintf(cmd.Out(), "Vacuumed %d row(s) from %s\n", n, ext.Name())
			}
		}
	}

	return cmd.PrintJSON(map[string]any{"rows": result.Rows, "extensions": extRows})
}

// confirm asks a yes/no question on the command's stdin.
func confirm(c *cobra.Command, prompt string) bool {
	fmt.Fprint(cmd.Out(), prompt)
	resp, err := bufio.NewReader(c.InOrStdin()).ReadString('\n')
	if err != nil && resp == "" {
		return false
	}
	resp = strings.TrimSpace(strings.ToLower(resp))
	return resp == "y" || resp == "yes"
}
