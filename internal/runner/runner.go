// Package runner fans the per-URL scan out over a bounded worker pool and
// collects results on a single consuming path, pacing accepted completions
// so throughput stays throttled regardless of concurrency.
package runner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/example/gtmscan/internal/logging"
	"github.com/example/gtmscan/internal/model"
	"github.com/example/gtmscan/internal/scanner"
)

// Scanner is the per-URL pipeline the runner dispatches. Satisfied by
// *scanner.Scanner.
type Scanner interface {
	Scan(ctx context.Context, req *model.ScanRequest) *model.ScanResult
}

// Progress is invoked on the consuming path after each accepted completion,
// with a monotonically increasing completed count.
type Progress func(completed, total int)

type Config struct {
	// Delay is the fixed pause between accepted completions. Zero means the
	// default of one second.
	Delay time.Duration
}

const defaultDelay = time.Second

type Runner struct {
	cfg     Config
	scanner Scanner
	logger  logging.Logger
}

// New creates a Runner dispatching onto sc.
func New(cfg Config, sc Scanner, logger logging.Logger) (*Runner, error) {
	if sc == nil {
		return nil, fmt.Errorf("runner: scanner is nil")
	}
	if cfg.Delay <= 0 {
		cfg.Delay = defaultDelay
	}
	return &Runner{
		cfg:     cfg,
		scanner: sc,
		logger:  logger.With(logging.Field{Key: "component", Value: "runner"}),
	}, nil
}

// Run scans every URL with at most cfg.MaxConcurrency workers and returns
// one result per input URL, in completion order. The only errors are
// batch-level ones raised before any scanning starts; individual scan
// failures are already folded into their results.
//
// Canceling ctx stops dispatching: in-flight scans finish (or time out) and
// queued URLs produce canceled records, so the result count always equals
// the input count.
func (r *Runner) Run(ctx context.Context, urls []string, cfg model.ScanConfig, progress Progress) (model.ResultSet, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scan config: %w", err)
	}
	if len(urls) == 0 {
		return nil, fmt.Errorf("no urls to scan")
	}

	total := len(urls)
	r.logger.Info("starting batch",
		logging.Field{Key: "urls", Value: total},
		logging.Field{Key: "max_concurrency", Value: cfg.MaxConcurrency},
		logging.Field{Key: "timeout", Value: cfg.Timeout().String()})

	var wg sync.WaitGroup
	sem := make(chan struct{}, cfg.MaxConcurrency)
	resCh := make(chan *model.ScanResult)

	for _, rawURL := range urls {
		wg.Add(1)

		go func(rawURL string) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			var res *model.ScanResult
			if ctx.Err() != nil {
				res = scanner.CanceledResult(rawURL)
			} else {
				res = r.scanner.Scan(ctx, &model.ScanRequest{URL: rawURL, Timeout: cfg.Timeout()})
			}
			resCh <- res
		}(rawURL)
	}

	go func() {
		wg.Wait()
		close(resCh)
	}()

	// Single consumer: the progress counter and the result slice have no
	// concurrent writers, and the limiter paces how fast completions are
	// accepted, not how fast workers produce them.
	limiter := rate.NewLimiter(rate.Every(r.cfg.Delay), 1)
	results := make(model.ResultSet, 0, total)
	for res := range resCh {
		results = append(results, res)
		if progress != nil {
			progress(len(results), total)
		}
		if err := limiter.Wait(ctx); err != nil {
			// Canceled batch: keep draining, just without pacing.
			continue
		}
	}

	r.logger.Info("batch complete",
		logging.Field{Key: "results", Value: len(results)},
		logging.Field{Key: "gtm_found", Value: results.Summary().GTMFound})

	return results, nil
}
