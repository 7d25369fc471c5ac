// Package query compiles item search text into a boolean expression tree and
// evaluates that tree against items.
//
// A query is free text typed into a search box. Words and quoted phrases are
// terms; terms written next to each other must all match; "|" or OR between
// them means either may match; a leading "!" negates a term or a
// parenthesised group:
//
//	wood | stone
//	fish !bait
//	"Iridium Ore" (bar | ore)
//
// Compilation never fails. Text the user is still typing (an unterminated
// quote, a dangling operator, an unclosed group) compiles to the most
// permissive reading of what is there, and empty text compiles to a
// match-everything expression.
//
// Every expression can be evaluated in two modes. Exact mode requires a term
// to equal a whole attribute of the item (display name, internal name,
// category or one context tag). Partial mode only requires the term to appear
// inside one of them, which is what live highlighting wants while a word is
// half typed.
//
// Use a [Query] to hold the text a user typed: it compiles lazily and
// recompiles only when the text changes.
package query

import "fmt"

// Kind identifies the lexical class of a Token.
type Kind int

const (
	KindWord   Kind = iota // bare word
	KindPhrase             // quoted phrase, internal whitespace preserved
	KindNot                // leading "!"
	KindAnd                // implicit conjunction between adjacent operands
	KindOr                 // "|" or OR
	KindLParen             // "("
	KindRParen             // ")"
)

// String returns the name of the kind, used in test failures and explain output.
func (k Kind) String() string {
	switch k {
	case KindWord:
		return "WORD"
	case KindPhrase:
		return "PHRASE"
	case KindNot:
		return "NOT"
	case KindAnd:
		return "AND"
	case KindOr:
		return "OR"
	case KindLParen:
		return "LPAREN"
	case KindRParen:
		return "RPAREN"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Token is a single lexical token. Text is only meaningful for words and
// phrases.
type Token struct {
	Kind Kind
	Text string
}

// String renders the token as KIND or KIND(text).
func (t Token) String() string {
	switch t.Kind {
	case KindWord, KindPhrase:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Text)
	default:
		return t.Kind.String()
	}
}

// startsOperand reports whether a token can begin an operand.
func (t Token) startsOperand() bool {
	switch t.Kind {
	case KindWord, KindPhrase, KindNot, KindLParen:
		return true
	}
	return false
}

// endsOperand reports whether a token can end an operand.
func (t Token) endsOperand() bool {
	switch t.Kind {
	case KindWord, KindPhrase, KindRParen:
		return true
	}
	return false
}
