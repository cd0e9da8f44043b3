// Package trace implements the append-only step trace every solver and
// findNext backend emits (spec §4.9, §6): a Collector owned by the solver
// invocation, and a per-index IndexBuffer that findNext backends append
// sub-steps to and the solver drains into its own Step entries.
package trace

// Mode controls how much detail a Collector retains (spec §9, "Trace output
// size"). Search correctness must never depend on Mode — only what gets
// recorded for inspection does.
type Mode int

const (
	// None records nothing; Record calls are no-ops beyond bumping the
	// sequence counter.
	None Mode = iota
	// Summary records every step's action, candidate, and outcome, but
	// drops stack snapshots and nested index sub-steps.
	Summary
	// Full records everything: stack snapshots and nested index steps.
	Full
)

// ActionTag is a solver-level trace event kind (spec §6, TraceStep wire
// shape).
type ActionTag string

const (
	Init                ActionTag = "INIT"
	FindNextAction      ActionTag = "FIND_NEXT"
	Push                ActionTag = "PUSH"
	Prune               ActionTag = "PRUNE"
	Backtrack           ActionTag = "BACKTRACK"
	UpdateUB            ActionTag = "UPDATE_UB"
	FeasibleNoUpdate    ActionTag = "FEASIBLE_NO_UPDATE"
	Done                ActionTag = "DONE"
	Cancelled           ActionTag = "CANCELLED"
	IterationCapReached ActionTag = "ITERATION_CAP_EXCEEDED"
)

// IndexActionTag is a findNext-backend-level sub-step kind (spec §4.9).
type IndexActionTag string

const (
	SubtreePrune      IndexActionTag = "SUBTREE_PRUNE"
	LeafScan          IndexActionTag = "LEAF_SCAN"
	SelectPredecessor IndexActionTag = "SELECT_PREDECESSOR"
	SelectSuccessor   IndexActionTag = "SELECT_SUCCESSOR"
	ThresholdFail     IndexActionTag = "THRESHOLD_FAIL"
	NoCandidate       IndexActionTag = "NO_CANDIDATE"
)

// IndexStep is one sub-step emitted by a findNext backend.
type IndexStep struct {
	Action IndexActionTag
	Detail string
}

// Step is one solver-level trace event (spec §6, TraceStep wire shape).
type Step struct {
	SequenceNo        int
	Action            ActionTag
	StackV            []uint64
	StackD            []float64
	UpperBound        *float64
	Candidate         *uint64
	CandidateMatching *float64
	Accepted          bool
	Reason            string
	NestedIndexSteps  []IndexStep
}

// IndexBuffer is the append-only sub-step buffer owned by one findNext
// backend instance (spec §4.9: "a buffer owned by the index instance"). The
// solver drains it into the Step for the call that used it, then the buffer
// is cleared for the next call.
type IndexBuffer struct {
	mode  Mode
	steps []IndexStep
}

// NewIndexBuffer returns an empty buffer recording at mode.
func NewIndexBuffer(mode Mode) *IndexBuffer { return &IndexBuffer{mode: mode} }

// Append records one sub-step. A no-op when mode is None.
func (b *IndexBuffer) Append(action IndexActionTag, detail string) {
	if b == nil || b.mode == None {
		return
	}
	b.steps = append(b.steps, IndexStep{Action: action, Detail: detail})
}

// Drain returns the buffered steps and clears the buffer, per spec §4.9's
// copy-then-clear protocol.
func (b *IndexBuffer) Drain() []IndexStep {
	if b == nil || len(b.steps) == 0 {
		return nil
	}
	out := b.steps
	b.steps = nil
	return out
}

// Collector is the append-only trace a single solver invocation owns.
// Traces are never mutated after emission, only appended to (spec §6).
type Collector struct {
	mode  Mode
	steps []Step
	seq   int
}

// NewCollector returns an empty Collector recording at mode.
func NewCollector(mode Mode) *Collector { return &Collector{mode: mode} }

// Record appends one step. stackV/stackD are the solver's current stacks at
// the time of the event; ub, candidate, and matching may be nil. nested is
// the IndexBuffer.Drain() output for the findNext call this step reports on,
// if any.
func (c *Collector) Record(action ActionTag, stackV []uint64, stackD []float64, ub *float64, candidate *uint64, matching *float64, accepted bool, reason string, nested []IndexStep) {
	c.seq++
	if c.mode == None {
		return
	}

	step := Step{
		SequenceNo:        c.seq,
		Action:            action,
		UpperBound:        ub,
		Candidate:         candidate,
		CandidateMatching: matching,
		Accepted:          accepted,
		Reason:            reason,
	}
	if c.mode == Full {
		step.StackV = append([]uint64(nil), stackV...)
		step.StackD = append([]float64(nil), stackD...)
		step.NestedIndexSteps = nested
	}
	c.steps = append(c.steps, step)
}

// Steps returns every recorded step, in emission order.
func (c *Collector) Steps() []Step { return c.steps }

// Len returns the number of steps actually recorded (not the sequence
// counter, which advances even under Mode None).
func (c *Collector) Len() int { return len(c.steps) }
