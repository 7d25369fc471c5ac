package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/stash/internal/inventory"
	"github.com/jpl-au/stash/internal/progress"
	"github.com/jpl-au/stash/internal/service"
	"github.com/jpl-au/stash/internal/store"
)

// ImportOptions configures Import.
type ImportOptions struct {
	DryRun bool // Show what would be added without adding
	Force  bool // Add items the container filter rejects
}

// ImportResult contains the outcome of an import.
type ImportResult struct {
	Imported int      // Entries added or merged
	Rejected []string // IDs the container filter refused
	IDs      []string // IDs that were (or would be) added
}

// Import reads file and adds its entries to container. Entries the
// container's filter refuses are skipped and reported; any other failure
// stops the import, leaving earlier entries in place.
func Import(ctx context.Context, w io.Writer, svc service.Service, file, container string, opts ImportOptions) (ImportResult, error) {
	var result ImportResult

	f, compressed, err := Detect(file)
	if err != nil {
		return result, err
	}
	fh, err := os.Open(file)
	if err != nil {
		return result, err
	}
	defer fh.Close()

	entries, err := Decode(fh, f, compressed)
	if err != nil {
		return result, fmt.Errorf("reading %s: %w", file, err)
	}

	c, err := svc.Load(ctx, container)
	if err != nil {
		return result, err
	}

	prog := progress.New("Importing", len(entries))
	defer prog.Done()

	for _, e := range entries {
		it := store.NewItem{Name: e.ID, Display: e.Display, Category: e.Category, Tags: e.Tags, Stack: e.Stack}

		if opts.DryRun {
			if !opts.Force && !c.MatchesFilter(preview(it)) {
				result.Rejected = append(result.Rejected, e.ID)
				fmt.Fprintf(w, "Would skip (filtered): %s\n", e.ID)
			} else {
				result.IDs = append(result.IDs, e.ID)
				fmt.Fprintf(w, "Would add: %s -> %s\n", e.ID, c.Name())
			}
			prog.Step()
			continue
		}

		added, err := svc.Add(ctx, c.Name(), it, opts.Force)
		switch {
		case errors.Is(err, inventory.ErrFiltered):
			result.Rejected = append(result.Rejected, e.ID)
			fmt.Fprintf(w, "Skipped (filtered): %s\n", e.ID)
		case err != nil:
			return result, fmt.Errorf("adding %s: %w", e.ID, err)
		default:
			result.IDs = append(result.IDs, e.ID)
			result.Imported++
			fmt.Fprintf(w, "Added: %s -> %s x%d\n", added.InternalName, c.Name(), added.Stack)
		}
		prog.Step()
	}
	return result, nil
}

// preview is the item a dry run checks against the filter. It does not see
// tags of a stack it would merge into, so a dry run may report a skip that
// the real import would accept.
func preview(it store.NewItem) *store.Item {
	return &store.Item{InternalName: it.Name, DisplayText: it.Display, CategoryName: it.Category, Tags: it.Tags}
}
