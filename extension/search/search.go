// Package search provides the query commands: search, find, explain,
// filter and saved queries.
// Registers commands: search, find, explain, filter, query.
package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jpl-au/stash/extension"
	"github.com/jpl-au/stash/internal/query"
	"github.com/jpl-au/stash/internal/saved"
	"github.com/jpl-au/stash/internal/service"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the search extension.
type Extension struct {
	svc   service.Service
	saved *saved.Store
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
	_ extension.Vacuumable    = (*Extension)(nil)
	_ extension.Storeless     = (*Extension)(nil)
)

// Name returns "search".
func (e *Extension) Name() string { return "search" }

// Init connects to the shared service and creates the saved query table.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	s, err := openSaved(ctx)
	if err != nil {
		return err
	}
	e.saved = s
	return nil
}

func openSaved(ctx extension.Context) (*saved.Store, error) {
	return saved.Open(ctx.DB(), ctx.Config().MaxName())
}

// Vacuum purges deleted saved queries.
func (e *Extension) Vacuum(ctx extension.Context, olderThan *time.Duration) (int64, error) {
	s, err := openSaved(ctx)
	if err != nil {
		return 0, err
	}
	return s.Vacuum(context.Background(), olderThan)
}

// Commands returns the query commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newSearchCmd(),
		e.newFindCmd(),
		e.newExplainCmd(),
		e.newFilterCmd(),
		e.newQueryCmd(),
	}
}

// addModeFlags registers --exact and --partial.
func addModeFlags(c *cobra.Command) {
	c.Flags().Bool(extension.FlagExact, false, "Terms must equal a whole attribute")
	c.Flags().Bool(extension.FlagPartial, false, "Terms may appear inside an attribute")
	c.MarkFlagsMutuallyExclusive(extension.FlagExact, extension.FlagPartial)
}

// modeFlag returns the mode chosen on the command line, or nil.
func modeFlag(c *cobra.Command) *query.Mode {
	var m query.Mode
	switch {
	case flagBool(c, extension.FlagExact):
		m = query.Exact
	case flagBool(c, extension.FlagPartial):
		m = query.Partial
	default:
		return nil
	}
	return &m
}

func flagBool(c *cobra.Command, name string) bool {
	v, _ := c.Flags().GetBool(name)
	return v
}

// queryText joins the arguments, so quoting the whole query is optional.
func queryText(args []string) (string, error) {
	text := strings.Join(args, " ")
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("empty query")
	}
	return text, nil
}
