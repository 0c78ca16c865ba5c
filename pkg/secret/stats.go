package secret

import "sync/atomic"

var (
	created   atomic.Int64
	destroyed atomic.Int64
	moved     atomic.Int64
	reclaimed atomic.Int64
)

// Snapshot is a point-in-time view of the process-wide container counters.
type Snapshot struct {
	Created   int64
	Destroyed int64
	Moved     int64
	// Reclaimed counts containers wiped by the garbage collector because
	// Destroy was never called.
	Reclaimed int64
}

// Live is the number of containers still holding a secret.
func (s Snapshot) Live() int64 {
	return s.Created - s.Destroyed - s.Moved - s.Reclaimed
}

// Stats returns the current counters. Counters are read independently, so
// a snapshot taken while other goroutines create or destroy containers may
// be momentarily inconsistent.
func Stats() Snapshot {
	return Snapshot{
		Created:   created.Load(),
		Destroyed: destroyed.Load(),
		Moved:     moved.Load(),
		Reclaimed: reclaimed.Load(),
	}
}
