package update

import (
	"context"
	"sync"
)

// defaultConcurrency caps concurrently in-flight per-record tasks during
// batch operations. The ceiling keeps anonymous API usage under rate limits
// and bounds outbound connections.
const defaultConcurrency = 5

// runBatch executes n independent tasks with at most width in flight, and
// returns one result per task positionally. Each worker owns exactly its own
// slot, so no locking is needed on the result slice. Cancellation is
// cooperative: it is checked before each task is dispatched, and tasks
// already running finish normally; canceled slots are filled via canceled.
func runBatch[R any](ctx context.Context, n, width int, run func(i int) R, canceled func(i int) R) []R {
	if width <= 0 {
		width = defaultConcurrency
	}

	results := make([]R, n)
	sem := make(chan struct{}, width)
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		// Checked non-blocking first: a two-way select against the semaphore
		// would pick randomly when both are ready, dispatching tasks from an
		// already-canceled batch.
		select {
		case <-ctx.Done():
			results[i] = canceled(i)
			continue
		default:
		}

		select {
		case <-ctx.Done():
			results[i] = canceled(i)
			continue
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = run(i)
		}(i)
	}

	wg.Wait()
	return results
}
