package query_test

import (
	"fmt"
	"testing"

	"github.com/jpl-au/stash/internal/query"
	"github.com/stretchr/testify/assert"
)

type item struct {
	display  string
	name     string
	category string
	tags     []string
}

func (i item) DisplayName() string   { return i.display }
func (i item) Name() string          { return i.name }
func (i item) Category() string      { return i.category }
func (i item) ContextTags() []string { return i.tags }

var (
	iridium      = item{display: "Iridium Ore", name: "iridium_ore", category: "Resource", tags: []string{"ore", "metal"}}
	iridiumLarge = item{display: "Iridium Ore (Large)", name: "iridium_ore_large", category: "Resource", tags: []string{"ore"}}
	stone        = item{display: "Stone", name: "stone", category: "Resource"}
	fish         = item{display: "Fish", name: "fish_raw", category: "Food", tags: []string{"edible"}}
	bait         = item{display: "Fish", name: "fish_bait", category: "Tool", tags: []string{"bait"}}
	nameless     = item{}
)

var items = []item{iridium, iridiumLarge, stone, fish, bait, nameless}

var queries = []string{
	"",
	"fish",
	"fish !bait",
	"wood | stone",
	`"Iridium Ore"`,
	"ore (metal | stone)",
	"!(food | tool) resource",
	"(fruit",
	"iri",
	"!!edible",
	`"" | x`,
}

var modes = []query.Mode{query.Exact, query.Partial}

func TestEvaluate_Scenarios(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		item    item
		exact   bool
		partial bool
	}{
		{"phrase equals display", `"Iridium Ore"`, iridium, true, true},
		{"phrase inside display", `"Iridium Ore"`, iridiumLarge, false, true},
		{"or matches display", "wood | stone", stone, true, true},
		{"negation excludes tag", "fish !bait", bait, false, false},
		{"negation keeps others", "fish !bait", fish, true, true},
		{"category exact", "food", fish, true, true},
		{"internal name exact", "fish_raw", fish, true, true},
		{"context tag exact", "edible", fish, true, true},
		{"context tag partial", "edi", fish, false, true},
		{"case insensitive", "STONE", stone, true, true},
		{"trimmed phrase", `"  stone "`, stone, true, true},
		{"no attribute matches", "wood", stone, false, false},
		{"half typed word", "iri", iridium, false, true},
		{"unclosed group", "(stone", stone, true, true},
		{"empty item", "stone", nameless, false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := query.Compile(tc.query)
			assert.Equal(t, tc.exact, query.MatchesExact(e, tc.item), "exact")
			assert.Equal(t, tc.partial, query.MatchesPartial(e, tc.item), "partial")
		})
	}
}

func TestEvaluate_EmptyMatchesEverything(t *testing.T) {
	for _, it := range items {
		assert.True(t, query.MatchesExact(query.All, it))
		assert.True(t, query.MatchesPartial(query.All, it))
		assert.True(t, query.Evaluate(nil, it, query.Exact))
	}
}

func TestEvaluate_ExactImpliesPartial(t *testing.T) {
	for _, word := range []string{"stone", "ore", "fish", "food", "iridium_ore", "x", "Iridium"} {
		for _, it := range items {
			if query.MatchTerm(word, it, query.Exact) {
				assert.True(t, query.MatchTerm(word, it, query.Partial), "%q vs %v", word, it)
			}
		}
	}

	// Unicode case folds that strings.ToLower does not apply.
	tests := []struct {
		word string
		item item
	}{
		{"stone", item{display: "ſtone"}},
		{"ſtone", item{display: "Stone"}},
		{"kelvin", item{name: "\u212aelvin"}},
		{"ÉPÉE", item{category: "épée"}},
	}
	for _, tc := range tests {
		t.Run(tc.word, func(t *testing.T) {
			exact := query.MatchTerm(tc.word, tc.item, query.Exact)
			partial := query.MatchTerm(tc.word, tc.item, query.Partial)
			if exact {
				assert.True(t, partial)
			}
		})
	}
	assert.True(t, query.MatchTerm("ÉPÉE", item{category: "épée"}, query.Exact))
}

func TestEvaluate_DoubleNegation(t *testing.T) {
	for _, text := range queries {
		e := query.Compile(text)
		nn := &query.Not{Inner: &query.Not{Inner: e}}
		for _, it := range items {
			for _, m := range modes {
				assert.Equal(t, query.Evaluate(e, it, m), query.Evaluate(nn, it, m), "%q %s %v", text, m, it)
			}
		}
	}
}

func TestEvaluate_AndCommutes(t *testing.T) {
	for _, a := range queries {
		for _, b := range queries {
			ea, eb := query.Compile(a), query.Compile(b)
			ab := &query.And{Left: ea, Right: eb}
			ba := &query.And{Left: eb, Right: ea}
			for _, it := range items {
				for _, m := range modes {
					assert.Equal(t, query.Evaluate(ab, it, m), query.Evaluate(ba, it, m), "%q %q %s", a, b, m)
				}
			}
		}
	}
}

func TestEvaluate_ParenthesisationPreservesResults(t *testing.T) {
	pairs := [][2]string{
		{"a b | c", "((a b) | c)"},
		{"ore metal | stone", "(((ore) (metal)) | (stone))"},
		{"fish !bait | food", "((fish (!bait)) | food)"},
		{"!edible ore | stone tool", "((!(edible) ore) | (stone tool))"},
	}
	for _, p := range pairs {
		plain, full := query.Compile(p[0]), query.Compile(p[1])
		assert.Equal(t, plain.String(), full.String())
		for _, it := range items {
			for _, m := range modes {
				assert.Equal(t, query.Evaluate(plain, it, m), query.Evaluate(full, it, m), "%q %s", p[0], m)
			}
		}
	}
}

// countingItem records how many times the evaluator reads its display name.
type countingItem struct {
	item
	reads int
}

func (c *countingItem) DisplayName() string {
	c.reads++
	return c.display
}

func TestEvaluate_ShortCircuit(t *testing.T) {
	t.Run("or", func(t *testing.T) {
		it := &countingItem{item: item{display: "x"}}
		assert.True(t, query.MatchesExact(query.Compile("x | y"), it))
		assert.Equal(t, 1, it.reads)
	})
	t.Run("and", func(t *testing.T) {
		it := &countingItem{item: item{display: "x"}}
		assert.False(t, query.MatchesExact(query.Compile("y x"), it))
		assert.Equal(t, 1, it.reads)
	})
}

func TestEvaluate_TermWithoutConstructor(t *testing.T) {
	term := &query.Term{Literal: " Stone "}
	assert.True(t, query.MatchesExact(term, stone))
	assert.Equal(t, "Term( Stone )", term.String())
}

func TestMatchTerm(t *testing.T) {
	assert.True(t, query.MatchTerm("", stone, query.Exact), "empty literal matches")
	assert.True(t, query.MatchTerm("   ", stone, query.Partial), "blank literal matches")
	assert.True(t, query.MatchesExactTerm("resource", stone))
	assert.False(t, query.MatchesExactTerm("resour", stone))
	assert.True(t, query.MatchesPartialTerm("resour", stone))
	assert.True(t, query.MatchesPartialTerm("ore (lar", iridiumLarge))
	assert.False(t, query.MatchesPartialTerm("metal", iridiumLarge))
}

func TestMode(t *testing.T) {
	assert.Equal(t, "exact", query.Exact.String())
	assert.Equal(t, "partial", query.Partial.String())
	assert.Equal(t, "unknown", query.Mode(9).String())

	m, ok := query.ParseMode("exact")
	assert.True(t, ok)
	assert.Equal(t, query.Exact, m)

	m, ok = query.ParseMode("fuzzy")
	assert.False(t, ok)
	assert.Equal(t, query.Partial, m)
}

func (i item) String() string {
	return fmt.Sprintf("item(%s)", i.display)
}
