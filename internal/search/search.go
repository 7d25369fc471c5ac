// Package search runs item queries across containers.
//
// Every item is classified against the compiled query: an exact match is
// shown, a partial-only match is highlighted and everything else is dimmed.
// The configured mode decides which of those states count as a hit.
package search

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jpl-au/stash/internal/container"
	"github.com/jpl-au/stash/internal/format"
	"github.com/jpl-au/stash/internal/query"
	"github.com/jpl-au/stash/internal/service"
	"github.com/jpl-au/stash/internal/store"
)

// State is how an item is presented for a query.
type State int

const (
	// StateDimmed means the item does not match.
	StateDimmed State = iota
	// StateHighlight means the item matches only partially.
	StateHighlight
	// StateMatch means the item matches exactly.
	StateMatch
)

func (s State) String() string {
	switch s {
	case StateMatch:
		return "match"
	case StateHighlight:
		return "highlight"
	default:
		return "dimmed"
	}
}

// Mark is the one-character marker used in result listings.
func (s State) Mark() string {
	switch s {
	case StateMatch:
		return "*"
	case StateHighlight:
		return "~"
	default:
		return ""
	}
}

// Classify decides the state of item for q. The partial pass only runs
// when the exact pass fails.
func Classify(q *query.Query, item query.Item) State {
	if q.IsExactMatch(item) {
		return StateMatch
	}
	if q.IsPartialMatch(item) {
		return StateHighlight
	}
	return StateDimmed
}

// Hit reports whether s counts as a result in mode.
func (s State) Hit(mode query.Mode) bool {
	if mode == query.Exact {
		return s == StateMatch
	}
	return s != StateDimmed
}

// Filter returns the items matching q in mode, preserving order.
func Filter(q *query.Query, items []store.Item, mode query.Mode) []store.Item {
	var out []store.Item
	for _, it := range items {
		if q.Matches(&it, mode) {
			out = append(out, it)
		}
	}
	return out
}

// Options configures a search.
type Options struct {
	Container string      // Search one container, regardless of its SearchItems setting
	Prefix    string      // Restrict to containers under this prefix
	Mode      *query.Mode // nil uses the configured mode
	All       bool        // Include dimmed items in the output
	Limit     int         // Maximum hits, 0 for no limit
	Markdown  bool        // Write a markdown table instead of plain lines
	Styled    bool        // Render markdown through glamour
}

// Match is an item together with its state.
type Match struct {
	Item  store.Item
	State State
}

// Result contains the outcome of a search.
type Result struct {
	Query   string
	Expr    string
	Mode    query.Mode
	Matches []Match
}

// MatchJSON is the API representation of a Match.
type MatchJSON struct {
	store.ItemJSON
	State string `json:"state"`
}

// ToJSON converts the result to JSON-serializable format.
func (r Result) ToJSON() any {
	items := make([]MatchJSON, len(r.Matches))
	for i, m := range r.Matches {
		items[i] = MatchJSON{ItemJSON: m.Item.ToJSON(), State: m.State.String()}
	}
	return map[string]any{
		"query": r.Query,
		"expr":  r.Expr,
		"mode":  r.Mode.String(),
		"items": items,
	}
}

// Items returns the matched items.
func (r Result) Items() []store.Item {
	out := make([]store.Item, len(r.Matches))
	for i, m := range r.Matches {
		out[i] = m.Item
	}
	return out
}

// Run searches items and writes the results to w.
func Run(ctx context.Context, w io.Writer, svc service.Service, text string, opts Options) (Result, error) {
	result := Result{Query: text, Mode: svc.SearchMode()}
	if opts.Mode != nil {
		result.Mode = *opts.Mode
	}
	if err := svc.CheckQuery(text); err != nil {
		return result, err
	}

	cs, err := candidates(ctx, svc, opts)
	if err != nil {
		return result, err
	}

	q := query.New(text)
	result.Expr = q.Expr().String()

	for _, c := range cs {
		for _, it := range c.Items {
			state := Classify(q, &it)
			if !state.Hit(result.Mode) && !opts.All {
				continue
			}
			result.Matches = append(result.Matches, Match{Item: it, State: state})
			if opts.Limit > 0 && len(result.Matches) >= opts.Limit {
				return result, write(w, text, result, opts)
			}
		}
	}
	return result, write(w, text, result, opts)
}

// candidates returns the containers a search looks at.
func candidates(ctx context.Context, svc service.Service, opts Options) ([]*container.Container, error) {
	if opts.Container != "" {
		c, err := svc.Load(ctx, opts.Container)
		if err != nil {
			return nil, err
		}
		return []*container.Container{c}, nil
	}
	all, err := svc.LoadAll(ctx, opts.Prefix)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, c := range all {
		if c.Searchable() {
			out = append(out, c)
		}
	}
	return out, nil
}

func write(w io.Writer, text string, r Result, opts Options) error {
	hits := make([]format.Hit, len(r.Matches))
	for i, m := range r.Matches {
		hits[i] = format.Hit{Item: m.Item, Mark: m.State.Mark()}
	}
	if opts.Markdown {
		return format.Render(w, format.SearchTable(text, hits), opts.Styled)
	}
	return format.SearchResults(w, hits)
}

// Containers returns the names of searchable containers holding at least
// one item matching text in mode. Each container stops scanning at its
// first match.
func Containers(ctx context.Context, svc service.Service, text, prefix string, mode query.Mode) ([]string, error) {
	if err := svc.CheckQuery(text); err != nil {
		return nil, err
	}
	cs, err := candidates(ctx, svc, Options{Prefix: prefix})
	if err != nil {
		return nil, err
	}

	q := query.New(text)
	var out []string
	for _, c := range cs {
		found := !c.ForEachItem(func(it store.Item) bool {
			return !q.Matches(&it, mode)
		})
		if found {
			out = append(out, c.Name())
		}
	}
	return out, nil
}

// Explanation shows how a query is read.
type Explanation struct {
	Query  string   `json:"query"`
	Tokens []string `json:"tokens"`
	Tree   string   `json:"tree"`
}

// Explain tokenizes and parses text without touching the database.
func Explain(text string) Explanation {
	toks := query.Tokenize(text)
	names := make([]string, len(toks))
	for i, t := range toks {
		names[i] = t.String()
	}
	return Explanation{
		Query:  text,
		Tokens: names,
		Tree:   query.Parse(toks).String(),
	}
}

// Write prints the explanation in plain text.
func (e Explanation) Write(w io.Writer) error {
	_, err := fmt.Fprintf(w, "query:  %s\ntokens: %s\ntree:   %s\n", e.Query, strings.Join(e.Tokens, " "), e.Tree)
	return err
}
