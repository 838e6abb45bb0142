package worker

import "errors"

// Lifecycle errors.
var (
	ErrPoolNotStarted     = errors.New("worker: Submit before Start")
	ErrPoolStopped        = errors.New("worker: pool is stopped")
	ErrPoolAlreadyStarted = errors.New("worker: Start called twice")
	ErrStopTimeout        = errors.New("worker: workers still running at stop deadline")
)

// Construction and submission errors.
var (
	ErrNilProcessor = errors.New("worker: nil processor")
	ErrQueueFull    = errors.New("worker: queue full")
)
