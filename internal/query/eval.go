// eval.go evaluates a compiled expression against one item.
//
// There is one evaluator for both match modes; the mode only changes how a
// Term leaf is compared. AND and OR short-circuit left to right.

package query

import "strings"

// Mode selects how strictly terms are compared.
type Mode int

const (
	// Exact requires a term to equal a whole attribute.
	Exact Mode = iota
	// Partial requires a term to appear inside an attribute.
	Partial
)

func (m Mode) String() string {
	switch m {
	case Exact:
		return "exact"
	case Partial:
		return "partial"
	default:
		return "unknown"
	}
}

// ParseMode converts "exact" or "partial", in any case, to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "exact":
		return Exact, true
	case "partial":
		return Partial, true
	}
	return Partial, false
}

// evaluator is the Visitor that computes whether an item matches.
type evaluator struct {
	item Item
	mode Mode
}

var _ Visitor = (*evaluator)(nil)

func (e *evaluator) VisitAll() bool { return true }

func (e *evaluator) VisitTerm(t *Term) bool {
	return matchKey(t.key(), e.item, e.mode)
}

func (e *evaluator) VisitNot(n *Not) bool {
	return !n.Inner.Accept(e)
}

func (e *evaluator) VisitAnd(a *And) bool {
	return a.Left.Accept(e) && a.Right.Accept(e)
}

func (e *evaluator) VisitOr(o *Or) bool {
	return o.Left.Accept(e) || o.Right.Accept(e)
}

// Evaluate reports whether item satisfies expr in mode. A nil expr is treated
// as All.
func Evaluate(expr Expr, item Item, mode Mode) bool {
	if expr == nil {
		return true
	}
	return expr.Accept(&evaluator{item: item, mode: mode})
}

// MatchesExact evaluates expr with whole-attribute comparison.
func MatchesExact(expr Expr, item Item) bool {
	return Evaluate(expr, item, Exact)
}

// MatchesPartial evaluates expr with substring comparison.
func MatchesPartial(expr Expr, item Item) bool {
	return Evaluate(expr, item, Partial)
}
