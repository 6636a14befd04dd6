package emailguess

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"emailguess/internal/container"
	"emailguess/internal/engine"
)

// Config is the full set of paths and knobs recognised at construction.
// See engine.Config's field docs; this is a type alias so callers never
// need to import the internal package directly.
type Config = engine.Config

// EmailPredictionResult is one ranked candidate email address.
type EmailPredictionResult = engine.EmailPredictionResult

// Stats is a point-in-time snapshot of engine counters.
type Stats = engine.Stats

// Engine is the assembled, re-entrant prediction pipeline returned by New.
type Engine struct {
	inner *engine.Engine
}

// New loads cfg's metadata blobs, constructs the configured predictor
// backend and builds a ready-to-use Engine. All I/O happens here; Predict
// performs none beyond the optional verification/enrichment hooks.
func New(cfg Config) (*Engine, error) {
	c, err := container.BuildContainer(cfg)
	if err != nil {
		return nil, err
	}

	var built *engine.Engine
	if err := c.Invoke(func(e *engine.Engine) { built = e }); err != nil {
		return nil, err
	}

	return &Engine{inner: built}, nil
}

// Predict returns up to topK ranked EmailPredictionResult rows for one
// (investorName, firmName) query. domain overrides automatic firm-domain
// resolution when non-empty. topK <= 0 uses the engine's configured
// default.
func (e *Engine) Predict(ctx context.Context, investorName, firmName string, topK int, domain string) ([]EmailPredictionResult, error) {
	return e.inner.Predict(ctx, investorName, firmName, topK, domain)
}

// PredictBatch runs Predict for every query in the batch concurrently over
// a worker pool sized off runtime.GOMAXPROCS, preserving result order. A
// single query's failure does not abort the batch; its error is recorded
// alongside a nil result slice at the same index.
func (e *Engine) PredictBatch(ctx context.Context, queries []Query) []BatchResult {
	results := make([]BatchResult, len(queries))
	if len(queries) == 0 {
		return results
	}

	workerCount := runtime.GOMAXPROCS(0)
	if workerCount > len(queries) {
		workerCount = len(queries)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workerCount)
	for w := 0; w < workerCount; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				q := queries[i]
				predictions, err := e.inner.Predict(ctx, q.InvestorName, q.FirmName, q.TopK, q.Domain)
				results[i] = BatchResult{Predictions: predictions, Err: err}
			}
		}()
	}

	for i := range queries {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

// Query is one request in a PredictBatch call.
type Query struct {
	InvestorName string
	FirmName     string
	TopK         int
	Domain       string
}

// BatchResult is one query's outcome within a PredictBatch call.
type BatchResult struct {
	Predictions []EmailPredictionResult
	Err         error
}

// Stats returns a point-in-time snapshot of engine counters.
func (e *Engine) Stats() Stats {
	return e.inner.Stats()
}

// ReloadFirmDirectory refreshes the firm->domain directory from a new
// canonical-firms blob without reloading template metadata or the
// predictor model.
func (e *Engine) ReloadFirmDirectory(path string) error {
	return e.inner.ReloadFirmDirectory(path)
}

// String implements fmt.Stringer for BatchResult, mainly for log lines.
func (r BatchResult) String() string {
	if r.Err != nil {
		return fmt.Sprintf("error: %v", r.Err)
	}
	return fmt.Sprintf("%d predictions", len(r.Predictions))
}
