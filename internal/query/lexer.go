// lexer.go turns raw search text into tokens.
//
// The lexer never fails. Every byte of input either becomes part of a token
// or is dropped, because the search box is evaluated on every keystroke and a
// half-typed query must still produce something usable.

package query

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// lexer holds scanning state for a single Tokenize call.
type lexer struct {
	input  string
	pos    int
	tokens []Token
}

// Tokenize splits text into tokens, inserting KindAnd between operands that
// are written next to each other without an operator.
func Tokenize(text string) []Token {
	l := &lexer{input: text}
	for {
		l.skipWhitespace()
		if l.pos >= len(l.input) {
			return l.tokens
		}

		switch l.input[l.pos] {
		case '(':
			l.pos++
			l.emit(Token{Kind: KindLParen})
		case ')':
			l.pos++
			l.emit(Token{Kind: KindRParen})
		case '|':
			l.pos++
			l.emit(Token{Kind: KindOr})
		case '"':
			l.emit(l.readPhrase())
		case '!':
			l.readNot()
		default:
			l.emit(l.readWord())
		}
	}
}

// emit appends tok, preceded by an implicit AND when it starts an operand
// directly after another operand ended.
func (l *lexer) emit(tok Token) {
	if n := len(l.tokens); n > 0 && tok.startsOperand() && l.tokens[n-1].endsOperand() {
		l.tokens = append(l.tokens, Token{Kind: KindAnd})
	}
	l.tokens = append(l.tokens, tok)
}

func (l *lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		l.pos += size
	}
}

// readPhrase consumes a quoted phrase. An unterminated phrase runs to the end
// of the input.
func (l *lexer) readPhrase() Token {
	l.pos++ // opening quote
	start := l.pos
	end := strings.IndexByte(l.input[start:], '"')
	if end < 0 {
		l.pos = len(l.input)
		return Token{Kind: KindPhrase, Text: l.input[start:]}
	}
	l.pos = start + end + 1 // past closing quote
	return Token{Kind: KindPhrase, Text: l.input[start : start+end]}
}

// readNot consumes a run of "!" characters. The run negates the operand it is
// attached to; a run with nothing attached ("! foo", "a !", "!)") is dropped.
func (l *lexer) readNot() {
	start := l.pos
	for l.pos < len(l.input) && l.input[l.pos] == '!' {
		l.pos++
	}
	if !l.operandAt(l.pos) {
		return
	}
	for range l.pos - start {
		l.emit(Token{Kind: KindNot})
	}
}

// operandAt reports whether an operand (word, phrase or group) starts at i.
func (l *lexer) operandAt(i int) bool {
	if i >= len(l.input) {
		return false
	}
	switch l.input[i] {
	case ')', '|':
		return false
	}
	r, _ := utf8.DecodeRuneInString(l.input[i:])
	return !unicode.IsSpace(r)
}

// readWord consumes a bare word. The word OR in any case is the disjunction
// operator.
func (l *lexer) readWord() Token {
	start := l.pos
	for l.pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if isDelimiter(r) {
			break
		}
		l.pos += size
	}

	word := l.input[start:l.pos]
	if strings.EqualFold(word, "OR") {
		return Token{Kind: KindOr}
	}
	return Token{Kind: KindWord, Text: word}
}

// isDelimiter reports whether r ends a bare word. "!" is not a delimiter so
// that words such as "yum!" stay intact.
func isDelimiter(r rune) bool {
	switch r {
	case '(', ')', '|', '"':
		return true
	}
	return unicode.IsSpace(r)
}
