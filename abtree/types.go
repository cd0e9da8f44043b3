// Package abtree implements the AB-tree (spec §4.2): a distance-keyed
// B+-tree built once per source vertex, answering predecessor/successor
// queries over the distance-from-source axis, filtered by keyword
// membership and an exclusion set.
//
// An AB-tree is built by bulk-loading a sorted entry list — it is never
// incrementally inserted into, matching the reference's per-query
// construct-once lifecycle (Session owns one AB-tree per source in its
// cache, keyed by source vertex, per spec §5).
package abtree

import "errors"

// DefaultOrder is the B+-tree fan-out bound used when a caller does not
// specify one (spec §6, ab_tree_order default 32).
const DefaultOrder = 32

// ErrInvalidOrder indicates an order < 2 was requested; a B+-tree node
// needs room for at least two children to be meaningful.
var ErrInvalidOrder = errors.New("abtree: order must be >= 2")
