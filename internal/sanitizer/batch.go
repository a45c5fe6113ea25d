package sanitizer

import (
	"github.com/sourcegraph/conc/pool"
)

// BatchItem is one input to a SanitizeBatch call.
type BatchItem struct {
	Input any
}

// BatchResult is one BatchItem's outcome.
type BatchResult struct {
	Result *Result
	Err    error
}

// batchOutcome threads the original slice position through the worker pool
// so results can be reassembled in input order despite completing out of
// order; conc's pool.Wait does not itself guarantee order.
type batchOutcome struct {
	index  int
	result *Result
	err    error
}

// SanitizeBatch runs Sanitize over items concurrently, capped at
// maxParallel goroutines (0 leaves the pool unbounded: one goroutine per
// item). Each call gets its own fragment/span/masker state; the
// registry, recognizer, and detection engine shared through the
// Orchestrator are read-only, so no further coordination is needed across
// items (spec §5, "parallel threads sharing an immutable detection
// kernel"). Results are returned in input order, not completion order.
func (o *Orchestrator) SanitizeBatch(items []BatchItem, maxParallel int) []BatchResult {
	p := pool.NewWithResults[batchOutcome]()
	if maxParallel > 0 {
		p = p.WithMaxGoroutines(maxParallel)
	}

	for i, item := range items {
		i, item := i, item
		p.Go(func() batchOutcome {
			result, err := o.Sanitize(item.Input)
			return batchOutcome{index: i, result: result, err: err}
		})
	}

	ordered := make([]BatchResult, len(items))
	for _, outcome := range p.Wait() {
		ordered[outcome.index] = BatchResult{Result: outcome.result, Err: outcome.err}
	}
	return ordered
}
