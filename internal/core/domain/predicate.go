package domain

import "strings"

// Match is a case-insensitive substring test of one catalog field
// against a bound parameter (an index into Predicate.Params).
type Match struct {
	Field Field `json:"field"`
	Param int   `json:"param"`
}

// Clause is a disjunction: it holds when any of its matches holds
type Clause []Match

// Predicate is a dialect-neutral filter in conjunctive normal form.
// All clauses must hold. Literal values live only in Params so every
// backend can bind them instead of interpolating.
type Predicate struct {
	Clauses []Clause `json:"clauses"`
	Params  []string `json:"params"`
}

// IsEmpty reports whether the predicate signals "no search".
// An empty predicate must yield zero results, never "match all".
func (p Predicate) IsEmpty() bool {
	return len(p.Clauses) == 0
}

// Matches evaluates the predicate against a record in memory
func (p Predicate) Matches(r *DocumentRecord) bool {
	if p.IsEmpty() || r == nil {
		return false
	}
	for _, clause := range p.Clauses {
		if !p.clauseMatches(clause, r) {
			return false
		}
	}
	return true
}

func (p Predicate) clauseMatches(c Clause, r *DocumentRecord) bool {
	for _, m := range c {
		if m.Param < 0 || m.Param >= len(p.Params) {
			continue
		}
		value := strings.ToLower(r.Field(m.Field))
		if strings.Contains(value, strings.ToLower(p.Params[m.Param])) {
			return true
		}
	}
	return false
}

// PredicateBuilder accumulates clauses while assigning parameter slots
type PredicateBuilder struct {
	p Predicate
}

// Param binds a literal value and returns its index
func (b *PredicateBuilder) Param(value string) int {
	b.p.Params = append(b.p.Params, value)
	return len(b.p.Params) - 1
}

// AnyOf adds a clause matching value against each of the fields
func (b *PredicateBuilder) AnyOf(value string, fields ...Field) {
	idx := b.Param(value)
	clause := make(Clause, 0, len(fields))
	for _, f := range fields {
		clause = append(clause, Match{Field: f, Param: idx})
	}
	b.p.Clauses = append(b.p.Clauses, clause)
}

// Add appends a prebuilt clause. Empty clauses are ignored.
func (b *PredicateBuilder) Add(c Clause) {
	if len(c) > 0 {
		b.p.Clauses = append(b.p.Clauses, c)
	}
}

// Build returns the accumulated predicate
func (b *PredicateBuilder) Build() Predicate {
	return b.p
}

// LikePattern wraps value for a substring LIKE match, escaping the LIKE
// wildcards so user input only ever matches literally. The escape
// character is a backslash.
func LikePattern(value string) string {
	var sb strings.Builder
	sb.Grow(len(value) + 2)
	sb.WriteByte('%')
	for _, r := range value {
		switch r {
		case '\\', '%', '_':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	sb.WriteByte('%')
	return sb.String()
}
