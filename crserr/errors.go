// Package crserr defines the error kinds surfaced by the public API (spec
// §7): InvalidQuery and InvalidGraph are genuine Go errors returned from
// construction/validation; Infeasible, IterationCapExceeded, and Cancelled
// are not errors at all — they are successful SearchResult outcomes the
// caller inspects via Outcome, per spec §7's "query-time conditions never
// panic; they either downgrade to infeasible or to capped."
//
// Error policy: only the two sentinel variables below are exposed. Callers
// branch on them with errors.Is; construction-time callers get a stack
// trace attached via github.com/pkg/errors so a bad graph or query can be
// traced back to its caller without a panic.
package crserr

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
)

// ErrInvalidQuery indicates a query-time input violation: an absent source
// vertex, an empty clue list, or a clue with d<=0 or epsilon outside (0,1].
var ErrInvalidQuery = errors.New("crserr: invalid query")

// ErrInvalidGraph indicates a construction-time graph violation: an unknown
// edge endpoint or a duplicate vertex id. Fatal to Session initialization.
var ErrInvalidGraph = errors.New("crserr: invalid graph")

// InvalidQuery wraps cause as ErrInvalidQuery with a stack trace, for
// errors.Is(err, ErrInvalidQuery) at call sites.
func InvalidQuery(cause error) error {
	return pkgerrors.Wrap(ErrInvalidQuery, cause.Error())
}

// InvalidGraph wraps cause as ErrInvalidGraph with a stack trace.
func InvalidGraph(cause error) error {
	return pkgerrors.Wrap(ErrInvalidGraph, cause.Error())
}

// Outcome classifies how a solver invocation ended (spec §7). It is not an
// error; SearchResult.Outcome is always set, even on success.
type Outcome int

const (
	// Completed means the solver ran to its normal termination condition
	// (GCS satisfied every clue; CDP/BAB's search space was fully explored)
	// without hitting the iteration cap or a cancellation.
	Completed Outcome = iota
	// Infeasible means no path satisfies the clue sequence.
	Infeasible
	// IterationCapExceeded means BAB or CDP exceeded max_iterations.
	IterationCapExceeded
	// Cancelled means an external cancellation signal was observed.
	Cancelled
)

func (o Outcome) String() string {
	switch o {
	case Infeasible:
		return "INFEASIBLE"
	case IterationCapExceeded:
		return "ITERATION_CAP_EXCEEDED"
	case Cancelled:
		return "CANCELLED"
	default:
		return "COMPLETED"
	}
}
