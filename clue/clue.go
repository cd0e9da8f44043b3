// Package clue defines the Clue and Query types that drive a clue-based
// route search: a keyword, an expected network distance, and a tolerance,
// plus the derived confidence interval and matching-distance function
// (spec §3, GLOSSARY).
package clue

import "errors"

// Sentinel errors for invalid clue/query input (spec §7, InvalidQuery).
var (
	// ErrNonPositiveDistance indicates a clue's target distance d <= 0.
	ErrNonPositiveDistance = errors.New("clue: target distance must be positive")

	// ErrToleranceOutOfRange indicates epsilon is outside (0, 1].
	ErrToleranceOutOfRange = errors.New("clue: tolerance must be in (0, 1]")

	// ErrEmptyClues indicates a Query was built with no clues.
	ErrEmptyClues = errors.New("clue: query must have at least one clue")
)

// Clue is a single (keyword, target distance, tolerance) triple. Construct
// with New, which validates d and epsilon and precomputes the confidence
// interval.
//
// The confidence interval is [d(1-ε), d(1+ε)]; the matching distance of an
// observed network distance is |dist-d| / (ε·d), which lies in [0,1] iff
// dist falls inside the interval.
type Clue struct {
	Keyword string
	D       float64
	Epsilon float64

	lD, rD float64 // cached interval bounds
}

// New validates and constructs a Clue. d must be > 0; epsilon must lie in
// (0, 1].
func New(keyword string, d, epsilon float64) (Clue, error) {
	if d <= 0 {
		return Clue{}, ErrNonPositiveDistance
	}
	if epsilon <= 0 || epsilon > 1 {
		return Clue{}, ErrToleranceOutOfRange
	}
	return Clue{
		Keyword: keyword,
		D:       d,
		Epsilon: epsilon,
		lD:      d * (1 - epsilon),
		rD:      d * (1 + epsilon),
	}, nil
}

// Interval returns the clue's confidence interval [lD, rD].
func (c Clue) Interval() (lD, rD float64) { return c.lD, c.rD }

// InInterval reports whether dist lies within [lD, rD] (inclusive).
func (c Clue) InInterval(dist float64) bool { return dist >= c.lD && dist <= c.rD }

// MatchingDistance computes |dist-d| / (ε·d), the normalized per-clue
// deviation. It is in [0,1] exactly when dist is within the clue's
// confidence interval.
func (c Clue) MatchingDistance(dist float64) float64 {
	return abs(dist-c.D) / (c.Epsilon * c.D)
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// Query is a source vertex together with an ordered sequence of clues.
type Query struct {
	Source uint64
	Clues  []Clue
}

// NewQuery validates and constructs a Query. clues must be non-empty;
// individual clue validation happens in New, before NewQuery is called, so
// callers should propagate clue.New errors themselves.
func NewQuery(source uint64, clues []Clue) (Query, error) {
	if len(clues) == 0 {
		return Query{}, ErrEmptyClues
	}
	return Query{Source: source, Clues: clues}, nil
}

// Len returns the number of clues k in the query.
func (q Query) Len() int { return len(q.Clues) }
