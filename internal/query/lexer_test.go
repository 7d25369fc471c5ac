package query_test

import (
	"strings"
	"testing"

	"github.com/jpl-au/stash/internal/query"
	"github.com/stretchr/testify/assert"
)

// render joins tokens so expectations read like the input.
func render(tokens []query.Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single word", "fish", "WORD(fish)"},
		{"implicit and", "fish bait", "WORD(fish) AND WORD(bait)"},
		{"negated word", "fish !bait", "WORD(fish) AND NOT WORD(bait)"},
		{"pipe", "wood | stone", "WORD(wood) OR WORD(stone)"},
		{"pipe without spaces", "wood|stone", "WORD(wood) OR WORD(stone)"},
		{"or keyword", "wood OR stone", "WORD(wood) OR WORD(stone)"},
		{"or keyword lower case", "wood or stone", "WORD(wood) OR WORD(stone)"},
		{"or prefix is a word", "ORANGE", "WORD(ORANGE)"},
		{"phrase", `"Iridium Ore"`, "PHRASE(Iridium Ore)"},
		{"phrase keeps inner spaces", `"a  b"`, "PHRASE(a  b)"},
		{"unterminated phrase", `"Iridium Or`, "PHRASE(Iridium Or)"},
		{"word then phrase", `a"b c"`, "WORD(a) AND PHRASE(b c)"},
		{"double negation", "!!x", "NOT NOT WORD(x)"},
		{"negated phrase", `!"a b"`, "NOT PHRASE(a b)"},
		{"negated group", "!(a|b)", "NOT LPAREN WORD(a) OR WORD(b) RPAREN"},
		{"detached bang dropped", "! foo", "WORD(foo)"},
		{"trailing bang dropped", "a !", "WORD(a)"},
		{"bang before rparen dropped", "(a !)", "LPAREN WORD(a) RPAREN"},
		{"bang before pipe dropped", "a !| b", "WORD(a) OR WORD(b)"},
		{"bang inside word", "foo!bar", "WORD(foo!bar)"},
		{"bang at word end", "yum!", "WORD(yum!)"},
		{"group then word", "(a b)c", "LPAREN WORD(a) AND WORD(b) RPAREN AND WORD(c)"},
		{"word then group", "a(b)", "WORD(a) AND LPAREN WORD(b) RPAREN"},
		{"adjacent groups", "(a)(b)", "LPAREN WORD(a) RPAREN AND LPAREN WORD(b) RPAREN"},
		{"unicode whitespace", "a\u00a0b", "WORD(a) AND WORD(b)"},
		{"unicode word", "épée", "WORD(épée)"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, render(query.Tokenize(tc.input)))
		})
	}
}

func TestTokenize_Empty(t *testing.T) {
	assert.Empty(t, query.Tokenize(""))
	assert.Empty(t, query.Tokenize("   \t\n"))
	assert.Empty(t, query.Tokenize("!"))
}

func TestTokenize_NeverLosesWords(t *testing.T) {
	// Whatever the operators around them, every bare word survives.
	input := `((a | !b) "c d" OR !!e) f!g )`
	var words []string
	for _, tok := range query.Tokenize(input) {
		if tok.Kind == query.KindWord || tok.Kind == query.KindPhrase {
			words = append(words, tok.Text)
		}
	}
	assert.Equal(t, []string{"a", "b", "c d", "e", "f!g"}, words)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "WORD", query.KindWord.String())
	assert.Equal(t, "RPAREN", query.KindRParen.String())
	assert.Equal(t, "Kind(42)", query.Kind(42).String())
}
