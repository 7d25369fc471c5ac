/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// flags.go defines global CLI flags and the accessors extensions use to read
// them without touching cobra state.

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jpl-au/stash/internal/config"
	"github.com/jpl-au/stash/internal/format"
)

var validOutputFormats = []string{"json"}

var (
	output string
	author string
	force  bool
	db     string
	dir    string
)

// out is the output writer for commands. Tests replace it to capture output.
var out io.Writer = os.Stdout

// Out returns the output writer.
func Out() io.Writer { return out }

// TextOut returns the writer for human-readable output: Out, or
// io.Discard when JSON output is requested.
func TextOut() io.Writer {
	if JSON() {
		return io.Discard
	}
	return out
}

// Output returns the output format flag value.
func Output() string { return output }

// Author returns the author flag value.
func Author() string { return author }

// Force returns the force flag value.
func Force() bool { return force }

// DB returns the database name: --db, then STASH_DB.
func DB() string {
	if db != "" {
		return db
	}
	return os.Getenv("STASH_DB")
}

// Dir returns the explicit database directory: --dir, then STASH_DIR.
// Empty means discovery.
func Dir() string {
	if dir != "" {
		return dir
	}
	return os.Getenv("STASH_DIR")
}

// SetOut sets the output writer (for testing).
func SetOut(w io.Writer) { out = w }

// JSON returns true if JSON output is requested.
func JSON() bool { return output == "json" }

// Styled reports whether output may be rendered with colour and markdown
// styling: text mode, writing to a terminal.
func Styled() bool {
	f, ok := out.(*os.File)
	return ok && !JSON() && format.IsTerminal(f)
}

// PrintJSON writes v as JSON. It does nothing unless JSON output is
// requested.
func PrintJSON(v any) error {
	if output != "json" {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(out, string(b))
	return nil
}

// PrintJSONError prints err as {"error": ...} in JSON mode and returns nil
// so cobra does not print it again. Otherwise it returns err unchanged.
func PrintJSONError(err error) error {
	if output != "json" || err == nil {
		return err
	}
	_ = PrintJSON(map[string]string{"error": err.Error()})
	return nil
}

// detectAuthor returns the configured author name, or "".
func detectAuthor() string {
	if cfg, err := config.Load(); err == nil && cfg.Author.Name != "" {
		return cfg.Author.Name
	}
	return ""
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "Output format: json")
	rootCmd.PersistentFlags().StringVarP(&author, "author", "a", "", "Attribution for changes")
	rootCmd.PersistentFlags().BoolVar(&force, "force", false, "Skip confirmations and container filters")
	rootCmd.PersistentFlags().StringVar(&db, "db", "", "Database name (e.g., farm for stash-farm.db)")
	rootCmd.PersistentFlags().StringVar(&dir, "dir", "", "Database directory (skip discovery, use explicit path)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return validOutputFormats, cobra.ShellCompDirectiveNoFileComp
	})
}
