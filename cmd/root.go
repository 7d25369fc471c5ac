/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// root.go defines the root command and CLI execution entry point.
//
// PersistentPreRunE opens the database lazily: only commands that need it
// trigger extension init, so init, guide and config work before a database
// exists.

package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jpl-au/stash/internal/log"
	"github.com/jpl-au/stash/internal/version"
)

var rootCmd = &cobra.Command{
	Use:     "stash",
	Version: version.Short(),
	Short: "Container and item inventory with a boolean search language",
	Long: `Stash keeps items in named containers and finds them again with a small
boolean query language: words are ANDed, | or OR separates alternatives,
!word excludes, "quotes" keep phrases together and parentheses group.

Containers can filter what they accept using the same language.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if output != "" && !slices.Contains(validOutputFormats, output) {
			return fmt.Errorf("invalid output format: %s (valid: %v)", output, validOutputFormats)
		}

		if author == "" {
			author = detectAuthor()
		}

		cmdName := topLevelCmdName(cmd)
		if authorRequiredCommands[cmdName] && author == "" {
			return PrintJSONError(fmt.Errorf("author not configured (checked .stash/config.yaml and ~/.stash/config.yaml)\n\nRun: stash config author.name \"Your Name\"\n\nSee 'stash guide config' for local vs global options"))
		}

		if !noStoreCommands[cmdName] {
			if err := initExtensions(); err != nil {
				if JSON() {
					_ = PrintJSON(map[string]string{"error": err.Error()})
					cmd.SilenceErrors = true
				}
				return fmt.Errorf("initialise extensions: %w", err)
			}
		}
		return nil
	},
}

// topLevelCmdName returns the name of the direct child of root that cmd
// belongs to: "tag" for "stash tag add key rare".
func topLevelCmdName(cmd *cobra.Command) string {
	for cmd.HasParent() && cmd.Parent().HasParent() {
		cmd = cmd.Parent()
	}
	return cmd.Name()
}

// Execute runs the root command. Exit code 1 indicates an error.
func Execute() {
	if err := log.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
	}
	defer log.Close()

	registerExtensions()
	err := rootCmd.Execute()

	closeService()

	if err != nil {
		os.Exit(1)
	}
}

// RootCmd returns the root command for testing and extension access.
func RootCmd() *cobra.Command {
	return rootCmd
}
