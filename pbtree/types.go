// Package pbtree implements the PB-tree (spec §4.4): a forest of
// distance-keyed B+-trees, one per pivot of a 2-hop label index, each
// answering the same predecessor/successor/range queries as an AB-tree but
// keyed by distance-from-pivot instead of distance-from-source.
//
// Where an AB-tree is rebuilt per source, a PB-tree forest is built once per
// Session (pivots, unlike sources, are a fixed property of the label index)
// and reused across every query's findNext calls.
package pbtree

import "errors"

// DefaultOrder is the B+-tree fan-out bound used when a caller does not
// specify one (spec §6, pb_tree_order default 32).
const DefaultOrder = 32

// ErrInvalidOrder indicates an order < 2 was requested.
var ErrInvalidOrder = errors.New("pbtree: order must be >= 2")
