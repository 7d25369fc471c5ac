// query.go holds the text a user typed together with its compiled form.
//
// A search box re-evaluates every item on every keystroke, so the compiled
// tree is cached and only rebuilt after the text changes. Query has no
// locking; use one per goroutine.

package query

// Query is a lazily compiled search query. The zero value is an empty query
// that matches every item.
type Query struct {
	text  string
	expr  Expr
	dirty bool
}

// New returns a Query for text. Compilation happens on first use.
func New(text string) *Query {
	return &Query{text: text, dirty: true}
}

// SetText replaces the query text. The cached tree is discarded only when the
// text actually changed.
func (q *Query) SetText(text string) {
	if text == q.text && q.expr != nil {
		return
	}
	q.text = text
	q.dirty = true
}

// Reset returns the query to the empty, match-everything state.
func (q *Query) Reset() {
	q.text = ""
	q.expr = All
	q.dirty = false
}

// Text returns the raw query text.
func (q *Query) Text() string {
	return q.text
}

// Empty reports whether the query has no text.
func (q *Query) Empty() bool {
	return q.text == ""
}

// Expr returns the compiled tree, compiling it if the text changed since the
// last call.
func (q *Query) Expr() Expr {
	if q.dirty || q.expr == nil {
		q.expr = Compile(q.text)
		q.dirty = false
	}
	return q.expr
}

// IsExactMatch reports whether item satisfies the query with whole-attribute
// comparison.
func (q *Query) IsExactMatch(item Item) bool {
	return MatchesExact(q.Expr(), item)
}

// IsPartialMatch reports whether item satisfies the query with substring
// comparison.
func (q *Query) IsPartialMatch(item Item) bool {
	return MatchesPartial(q.Expr(), item)
}

// Matches evaluates the query in mode.
func (q *Query) Matches(item Item, mode Mode) bool {
	return Evaluate(q.Expr(), item, mode)
}
