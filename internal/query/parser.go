// parser.go builds an expression tree from tokens by recursive descent.
//
// Precedence from lowest to highest is OR, AND, NOT. AND is usually implicit
// (the lexer inserts it between adjacent operands) but the parser also joins
// adjacent operands itself, so token slices built by hand parse the same way.
//
// Malformed input is repaired rather than rejected:
//   - a ")" that closes nothing is removed before parsing
//   - a "(" that is never closed is closed at the end of the input
//   - an operator with a missing operand is dropped ("a |" parses as "a")
//   - empty groups and empty phrases are dropped
//
// Anything that reduces to nothing compiles to All.

package query

import "strings"

// parser holds the token cursor for a single Parse call.
type parser struct {
	tokens []Token
	pos    int
}

// Compile tokenizes and parses text in one step.
func Compile(text string) Expr {
	return Parse(Tokenize(text))
}

// Parse builds an expression from tokens. It never fails; an empty or
// operator-only token slice yields All.
func Parse(tokens []Token) Expr {
	p := &parser{tokens: balance(tokens)}

	var root Expr
	for !p.done() {
		root = and(root, p.parseOr())
		// parseOr only stops early on a ")" it cannot use. Skip it so the
		// loop always makes progress.
		if !p.done() {
			p.pos++
		}
	}

	if root == nil {
		return All
	}
	return root
}

// balance drops every ")" that has no "(" open before it.
func balance(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	depth := 0
	for _, t := range tokens {
		switch t.Kind {
		case KindLParen:
			depth++
		case KindRParen:
			if depth == 0 {
				continue
			}
			depth--
		}
		out = append(out, t)
	}
	return out
}

func (p *parser) done() bool {
	return p.pos >= len(p.tokens)
}

func (p *parser) peek(k Kind) bool {
	return !p.done() && p.tokens[p.pos].Kind == k
}

// parseOr handles OR (lowest precedence).
func (p *parser) parseOr() Expr {
	left := p.parseAnd()
	for p.peek(KindOr) {
		p.pos++
		left = or(left, p.parseAnd())
	}
	return left
}

// parseAnd handles explicit and implicit AND.
func (p *parser) parseAnd() Expr {
	left := p.parseUnary()
	for !p.done() {
		tok := p.tokens[p.pos]
		if tok.Kind == KindAnd {
			p.pos++
		} else if !tok.startsOperand() {
			break
		}
		left = and(left, p.parseUnary())
	}
	return left
}

// parseUnary handles NOT. Repeated NOTs nest.
func (p *parser) parseUnary() Expr {
	if !p.peek(KindNot) {
		return p.parsePrimary()
	}
	p.pos++
	inner := p.parseUnary()
	if inner == nil {
		return nil
	}
	return &Not{Inner: inner}
}

// parsePrimary handles terms and parenthesised groups. It returns nil without
// consuming anything when the current token cannot start an operand.
func (p *parser) parsePrimary() Expr {
	if p.done() {
		return nil
	}

	tok := p.tokens[p.pos]
	switch tok.Kind {
	case KindWord, KindPhrase:
		p.pos++
		if strings.TrimSpace(tok.Text) == "" {
			return nil
		}
		return NewTerm(tok.Text, tok.Kind == KindPhrase)
	case KindLParen:
		p.pos++
		e := p.parseOr()
		if p.peek(KindRParen) {
			p.pos++
		}
		return e
	default:
		return nil
	}
}

// and joins two operands, dropping a missing side.
func and(l, r Expr) Expr {
	switch {
	case l == nil:
		return r
	case r == nil:
		return l
	}
	return &And{Left: l, Right: r}
}

// or joins two operands, dropping a missing side.
func or(l, r Expr) Expr {
	switch {
	case l == nil:
		return r
	case r == nil:
		return l
	}
	return &Or{Left: l, Right: r}
}
