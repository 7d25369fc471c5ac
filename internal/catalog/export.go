package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/stash/internal/service"
	"github.com/jpl-au/stash/internal/store"
)

// ExportOptions configures Export.
type ExportOptions struct {
	Force bool // Overwrite an existing file
}

// ExportResult contains the outcome of an export.
type ExportResult struct {
	Exported int
	Path     string
}

// Export writes the items of container to file, in the format its name
// implies. Re-importing the file recreates the same stacks.
func Export(ctx context.Context, w io.Writer, svc service.Service, container, file string, opts ExportOptions) (ExportResult, error) {
	result := ExportResult{Path: file}

	f, compressed, err := Detect(file)
	if err != nil {
		return result, err
	}
	items, err := svc.Items(ctx, container)
	if err != nil {
		return result, err
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !opts.Force {
		flags |= os.O_EXCL
	}
	fh, err := os.OpenFile(file, flags, 0o644)
	if errors.Is(err, os.ErrExist) {
		return result, fmt.Errorf("%s exists (use --force to overwrite)", file)
	}
	if err != nil {
		return result, err
	}

	entries := Entries(items)
	if err := Encode(fh, entries, f, compressed); err != nil {
		fh.Close()
		return result, fmt.Errorf("writing %s: %w", file, err)
	}
	if err := fh.Close(); err != nil {
		return result, err
	}

	result.Exported = len(entries)
	fmt.Fprintf(w, "Exported %d items: %s -> %s\n", result.Exported, container, file)
	return result, nil
}

// Entries converts stored items to catalog entries.
func Entries(items []store.Item) []Entry {
	out := make([]Entry, len(items))
	for i, it := range items {
		out[i] = Entry{
			ID:       it.InternalName,
			Display:  it.DisplayText,
			Category: it.CategoryName,
			Tags:     it.Tags,
			Stack:    it.Stack,
		}
	}
	return out
}
