package surface

import "errors"

// ErrDetached is returned by Metrics once a surface has been disposed.
// The coordinator treats it as terminal and auto-cancels affected watches.
var ErrDetached = errors.New("surface detached")

// ID identifies a scrollable surface within a coordinator.
type ID uint32

// Surface is a handle to a scrollable region (a viewport over content).
//
// Implementations own freshness: Metrics must reflect the current offset
// and extents at call time. The coordinator never caches metrics across
// deliveries, it re-reads on every delivery.
type Surface interface {
	ID() ID

	// Metrics returns the current geometry snapshot.
	// Returns ErrDetached (possibly wrapped) after the surface is disposed.
	Metrics() (Metrics, error)
}
