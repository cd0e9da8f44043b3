package session

import (
	"github.com/rs/zerolog"

	"github.com/clueway/croute/abtree"
	"github.com/clueway/croute/hublabel"
	"github.com/clueway/croute/pbtree"
	"github.com/clueway/croute/trace"
)

// Option customizes a Config. Option constructors never panic; a nil or
// out-of-range argument is silently ignored, leaving the previous value in
// place (spec §6, Configuration).
type Option func(cfg *Config)

// Config holds every Session-wide tunable (spec §6).
type Config struct {
	MaxIterations           uint64
	BuildIndicesLazily      bool
	ABTreeOrder             int
	PBTreeOrder             int
	LabelPivotOrder         hublabel.PivotOrder
	LabelPivotRank          hublabel.PivotRankFunc
	DistanceToleranceEpsilon float64
	TraceMode               trace.Mode
	Logger                  zerolog.Logger
}

// newConfig returns a Config initialized with spec-mandated defaults, then
// applies opts in order.
func newConfig(opts ...Option) *Config {
	cfg := &Config{
		MaxIterations:            10_000,
		BuildIndicesLazily:       true,
		ABTreeOrder:              abtree.DefaultOrder,
		PBTreeOrder:              pbtree.DefaultOrder,
		LabelPivotOrder:          hublabel.DegreeDesc,
		DistanceToleranceEpsilon: hublabel.DefaultTolerance,
		TraceMode:                trace.None,
		Logger:                   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithMaxIterations sets the safety bound BAB and CDP check every loop
// iteration. Values <= 0 are ignored.
func WithMaxIterations(n uint64) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.MaxIterations = n
		}
	}
}

// WithEagerIndices disables lazy index construction: the 2-hop label and the
// PB-tree forest get built at NewSession time instead of on first use.
// AB-trees are still built per source on first use (or by WarmCaches).
func WithEagerIndices() Option {
	return func(cfg *Config) { cfg.BuildIndicesLazily = false }
}

// WithTreeOrders overrides both the AB-tree and PB-tree fan-out bound.
// Values < 2 are ignored.
func WithTreeOrders(order int) Option {
	return func(cfg *Config) {
		if order >= 2 {
			cfg.ABTreeOrder = order
			cfg.PBTreeOrder = order
		}
	}
}

// WithLabelPivotOrder selects the 2-hop label's pivot ranking strategy. Pass
// rank only when order == hublabel.Custom; it is ignored otherwise.
func WithLabelPivotOrder(order hublabel.PivotOrder, rank hublabel.PivotRankFunc) Option {
	return func(cfg *Config) {
		cfg.LabelPivotOrder = order
		if order == hublabel.Custom {
			cfg.LabelPivotRank = rank
		}
	}
}

// WithDistanceTolerance overrides the absolute tolerance used by the label
// index's OnShortestPath verification. Non-positive values are ignored.
func WithDistanceTolerance(eps float64) Option {
	return func(cfg *Config) {
		if eps > 0 {
			cfg.DistanceToleranceEpsilon = eps
		}
	}
}

// WithTraceMode sets the trace downsampling level every solver invocation
// uses.
func WithTraceMode(mode trace.Mode) Option {
	return func(cfg *Config) { cfg.TraceMode = mode }
}

// WithLogger installs a structured logger for Session lifecycle events
// (index builds, cache clears). Defaults to a no-op logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(cfg *Config) { cfg.Logger = logger }
}
