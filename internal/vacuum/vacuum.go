// Package vacuum permanently removes soft-deleted containers together with
// their items, tags and options. Until then a deleted container can be
// restored.
package vacuum

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jpl-au/stash/internal/progress"
	"github.com/jpl-au/stash/internal/service"
)

// Options configures vacuum scope.
type Options struct {
	OlderThan *time.Duration // Keep deletions newer than this
	Prefix    string         // Limit to containers under this name
	DryRun    bool           // Preview only
}

// Result reports what was (or would be) removed.
type Result struct {
	Rows       int64    // Rows removed across all tables
	Containers []string // Containers removed (dry run only)
}

// Run purges soft-deleted containers. Use DryRun first to preview.
func Run(ctx context.Context, w io.Writer, svc service.Service, opts Options) (Result, error) {
	var result Result

	if opts.DryRun {
		return preview(ctx, w, svc, opts)
	}

	spin := progress.NewSpinner("Vacuuming")
	spin.Start()
	n, err := svc.Vacuum(ctx, opts.OlderThan, opts.Prefix)
	spin.Stop()
	if err != nil {
		return result, err
	}

	result.Rows = n
	if n == 0 {
		fmt.Fprintln(w, "No containers to vacuum")
	} else {
		fmt.Fprintf(w, "Vacuumed %d row(s)\n", n)
	}
	return result, nil
}

func preview(ctx context.Context, w io.Writer, svc service.Service, opts Options) (Result, error) {
	var result Result

	cs, err := svc.ListContainers(ctx, opts.Prefix, false, true)
	if err != nil {
		return result, err
	}

	var cutoff int64
	if opts.OlderThan != nil {
		cutoff = time.Now().Add(-*opts.OlderThan).Unix()
	}
	for _, c := range cs {
		if c.DeletedAt == nil || (opts.OlderThan != nil && *c.DeletedAt > cutoff) {
			continue
		}
		items, err := svc.Items(ctx, c.Name)
		if err != nil {
			return result, err
		}
		fmt.Fprintf(w, "Would delete: %s (%d items, deleted %s)\n",
			c.Name, len(items), time.Unix(*c.DeletedAt, 0).Format("2006-01-02 15:04"))
		result.Containers = append(result.Containers, c.Name)
	}

	if len(result.Containers) == 0 {
		fmt.Fprintln(w, "No containers to vacuum")
	} else {
		fmt.Fprintf(w, "\nWould delete %d container(s)\n", len(result.Containers))
	}
	return result, nil
}
