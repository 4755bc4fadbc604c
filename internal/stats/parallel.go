package stats

import (
	"runtime"
	"sync"

	"go.uber.org/zap"
)

// AggregateParallel aggregates each source in its own worker, each
// with an independent tensor, and merges the results element-wise.
// Counting is associative and commutative, so the result equals a
// single-pass aggregation of the concatenated sources. If workers <= 0,
// runtime.NumCPU() is used.
func AggregateParallel(srcs []RecordSource, scale QualScale, workers int, logger *zap.Logger) (*Tensor, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(srcs) {
		workers = len(srcs)
	}

	type result struct {
		tensor *Tensor
		err    error
	}

	work := make(chan RecordSource)
	results := make(chan result, len(srcs))

	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for src := range work {
				agg := NewAggregator(scale)
				agg.SetLogger(logger)
				err := agg.Run(src)
				results <- result{tensor: agg.Tensor(), err: err}
			}
		}()
	}

	go func() {
		for _, src := range srcs {
			work <- src
		}
		close(work)
		wg.Wait()
		close(results)
	}()

	total := NewTensor(scale.BucketCount() + 1)
	var firstErr error
	for r := range results {
		if r.err != nil {
			if firstErr == nil {
				firstErr = r.err
			}
			continue
		}
		if err := total.Merge(r.tensor); err != nil {
			return nil, err
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return total, nil
}
