// guide.go implements "stash guide" and "stash llm". Guides are embedded in
// the binary; a terminal gets glamour rendering, pipes get raw markdown.

package core

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jpl-au/stash/cmd"
	"github.com/jpl-au/stash/guide"
	"github.com/jpl-au/stash/internal/format"
	"github.com/jpl-au/stash/internal/log"
)

func newGuideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guide [topic]",
		Short: "Show the stash usage guide",
		Long: `Outputs the stash guide.

  stash guide           # main guide
  stash guide search    # query language
  stash guide filter    # container filters`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}
			return showGuide(name)
		},
	}
}

func newLlmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "llm",
		Short: "Getting started guide for assistants",
		Long:  `Quick reference for assistants driving stash through the CLI or MCP.`,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return showGuide("llm")
		},
	}
}

func showGuide(name string) error {
	content, err := guide.Get(name)
	log.Event("core:guide", "read").Author(cmd.Author()).Detail("topic", name).Write(err)
	if err != nil {
		available, listErr := guide.List()
		if listErr != nil {
			return listErr
		}
		return cmd.PrintJSONError(fmt.Errorf("guide %q not found. Available: %s", name, strings.Join(available, ", ")))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]string{"topic": name, "content": content})
	}
	return format.Render(cmd.Out(), content, cmd.Styled())
}
