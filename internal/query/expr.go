// expr.go defines the expression tree produced by the parser.
//
// The set of node kinds is closed: All, Term, Not, And and Or. Code that
// needs to inspect a tree implements Visitor, so adding a node kind means
// adding a Visitor method and every visitor stops compiling until it handles
// the new kind.
//
// Nodes are built once by the parser and never modified. Each child belongs
// to exactly one parent.

package query

import "strings"

// Expr is a node of a compiled query.
type Expr interface {
	// Accept dispatches to the Visitor method for the node's kind.
	Accept(v Visitor) bool
	// String renders the subtree, e.g. And(Term(fish), Not(Term(bait))).
	String() string
}

// Visitor is implemented by tree walkers. Each method returns the walker's
// result for that node.
type Visitor interface {
	VisitAll() bool
	VisitTerm(t *Term) bool
	VisitNot(n *Not) bool
	VisitAnd(a *And) bool
	VisitOr(o *Or) bool
}

// All matches every item. It is the compiled form of an empty query.
var All Expr = all{}

type all struct{}

func (all) Accept(v Visitor) bool { return v.VisitAll() }
func (all) String() string        { return "All" }

// Term is a single word or quoted phrase.
type Term struct {
	Literal string // text as typed, without quotes
	Phrase  bool   // came from a quoted phrase
	folded  string // trimmed, lower-cased literal used for matching
}

// NewTerm returns a Term for literal.
func NewTerm(literal string, phrase bool) *Term {
	return &Term{
		Literal: literal,
		Phrase:  phrase,
		folded:  strings.ToLower(strings.TrimSpace(literal)),
	}
}

func (t *Term) Accept(v Visitor) bool { return v.VisitTerm(t) }

// key returns the literal as compared by the matcher. Terms built without
// NewTerm are folded on demand.
func (t *Term) key() string {
	if t.folded == "" && t.Literal != "" {
		return strings.ToLower(strings.TrimSpace(t.Literal))
	}
	return t.folded
}

func (t *Term) String() string {
	if t.Phrase {
		return `Term("` + t.Literal + `")`
	}
	return "Term(" + t.Literal + ")"
}

// Not negates its inner expression.
type Not struct {
	Inner Expr
}

func (n *Not) Accept(v Visitor) bool { return v.VisitNot(n) }
func (n *Not) String() string        { return "Not(" + n.Inner.String() + ")" }

// And matches when both sides match.
type And struct {
	Left, Right Expr
}

func (a *And) Accept(v Visitor) bool { return v.VisitAnd(a) }
func (a *And) String() string {
	return "And(" + a.Left.String() + ", " + a.Right.String() + ")"
}

// Or matches when either side matches.
type Or struct {
	Left, Right Expr
}

func (o *Or) Accept(v Visitor) bool { return v.VisitOr(o) }
func (o *Or) String() string {
	return "Or(" + o.Left.String() + ", " + o.Right.String() + ")"
}
