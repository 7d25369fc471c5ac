// Package format renders containers, items and search results for the CLI.
//
// Plain formats are aligned text for pipes and scripts. Markdown output goes
// through glamour when stdout is a terminal.
package format

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"

	"github.com/jpl-au/stash/internal/container"
	"github.com/jpl-au/stash/internal/store"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Render writes markdown to w, styled with glamour when styled is true.
// Rendering failures fall back to the raw markdown.
func Render(w io.Writer, markdown string, styled bool) error {
	if styled {
		if out, err := glamour.Render(markdown, "dark"); err == nil {
			_, err = fmt.Fprint(w, out)
			return err
		}
	}
	_, err := fmt.Fprint(w, markdown)
	return err
}

func deleted(c store.Container) string {
	if c.DeletedAt != nil {
		return " [deleted]"
	}
	return ""
}

// Containers prints containers in simple list format.
func Containers(w io.Writer, cs []store.Container) error {
	for _, c := range cs {
		fmt.Fprintf(w, "%s  %s%s\n", c.Key, c.Name, deleted(c))
	}
	return nil
}

// ContainersLong prints loaded containers with slot usage and filter state.
func ContainersLong(w io.Writer, cs []*container.Container) error {
	if len(cs) == 0 {
		return nil
	}
	fmt.Fprintf(w, "%-8s  %9s  %-8s  %-10s  %s\n", "KEY", "SLOTS", "FILTER", "CREATED", "NAME")
	for _, c := range cs {
		fmt.Fprintf(w, "%s  %9s  %-8s  %s  %s%s\n",
			c.Info.Key,
			slots(len(c.Items), c.Info.Capacity),
			filterState(c),
			time.Unix(c.Info.CreatedAt, 0).Format("2006-01-02"),
			c.Info.Name,
			deleted(c.Info),
		)
	}
	return nil
}

func slots(used, capacity int) string {
	if capacity == 0 {
		return fmt.Sprintf("%d/-", used)
	}
	return fmt.Sprintf("%d/%d", used, capacity)
}

func filterState(c *container.Container) string {
	switch {
	case !c.Searchable():
		return "hidden"
	case c.Filtering():
		return "filtered"
	default:
		return "-"
	}
}

// Items prints items in simple list format.
func Items(w io.Writer, items []store.Item) error {
	for _, it := range items {
		fmt.Fprintf(w, "%s  %s x%d\n", it.Key, it.DisplayName(), it.Stack)
	}
	return nil
}

// ItemsLong prints items with slot, stack, category and tags.
//
// Fixed-width columns come first; NAME and TAGS vary and sit at the end.
func ItemsLong(w io.Writer, items []store.Item) error {
	if len(items) == 0 {
		return nil
	}
	maxCat := len("CATEGORY")
	for _, it := range items {
		maxCat = max(maxCat, len(orDash(it.CategoryName)))
	}
	fmt.Fprintf(w, "%-8s  %4s  %5s  %-*s  %s\n", "KEY", "SLOT", "STACK", maxCat, "CATEGORY", "NAME")
	for _, it := range items {
		tags := ""
		if len(it.Tags) > 0 {
			tags = "  [" + strings.Join(it.Tags, ", ") + "]"
		}
		name := it.DisplayName()
		if name != it.InternalName {
			name += " (" + it.InternalName + ")"
		}
		fmt.Fprintf(w, "%s  %4d  %5d  %-*s  %s%s\n", it.Key, it.Slot, it.Stack, maxCat, orDash(it.CategoryName), name, tags)
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// Tree prints container names as a hierarchy.
func Tree(w io.Writer, cs []store.Container) error {
	if len(cs) == 0 {
		return nil
	}

	type node struct {
		children map[string]*node
		leaf     bool
		deleted  bool
	}
	root := &node{children: make(map[string]*node)}
	for _, c := range cs {
		cur := root
		parts := strings.Split(c.Name, "/")
		for i, part := range parts {
			if cur.children[part] == nil {
				cur.children[part] = &node{children: make(map[string]*node)}
			}
			cur = cur.children[part]
			if i == len(parts)-1 {
				cur.leaf = true
				cur.deleted = c.DeletedAt != nil
			}
		}
	}

	var walk func(n *node, prefix string)
	walk = func(n *node, prefix string) {
		names := make([]string, 0, len(n.children))
		for name := range n.children {
			names = append(names, name)
		}
		sort.Strings(names)

		for i, name := range names {
			child := n.children[name]
			last := i == len(names)-1

			connector, indent := "├── ", "│   "
			if last {
				connector, indent = "└── ", "    "
			}
			suffix := ""
			if !child.leaf {
				suffix = "/"
			}
			if child.deleted {
				suffix += " [deleted]"
			}
			fmt.Fprintf(w, "%s%s%s%s\n", prefix, connector, name, suffix)
			walk(child, prefix+indent)
		}
	}
	walk(root, "")
	return nil
}

// Hit is one row of search output. Mark is "*" for an exact match, "~" for
// a partial-only match and blank for a dimmed item.
type Hit struct {
	Item store.Item
	Mark string
}

// SearchResults prints hits one per line, prefixed with their container.
func SearchResults(w io.Writer, hits []Hit) error {
	for _, h := range hits {
		mark := h.Mark
		if mark == "" {
			mark = " "
		}
		fmt.Fprintf(w, "%s %s  %s/%s x%d\n", mark, h.Item.Key, h.Item.Container, h.Item.DisplayName(), h.Item.Stack)
	}
	return nil
}

// SearchTable returns hits as a markdown table.
func SearchTable(text string, hits []Hit) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Search: `%s`\n\n", text)
	if len(hits) == 0 {
		b.WriteString("_No items match._\n")
		return b.String()
	}
	b.WriteString("| | Item | Container | Category | Stack | Tags |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	for _, h := range hits {
		name := escapeCell(h.Item.DisplayName())
		if h.Mark == "*" {
			name = "**" + name + "**"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %d | %s |\n",
			h.Mark, name,
			escapeCell(h.Item.Container),
			escapeCell(orDash(h.Item.CategoryName)),
			h.Item.Stack,
			escapeCell(strings.Join(h.Item.Tags, ", ")),
		)
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// Names prints one name per line.
func Names(w io.Writer, names []string) error {
	for _, n := range names {
		fmt.Fprintln(w, n)
	}
	return nil
}
