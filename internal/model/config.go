package model

import (
	"fmt"
	"time"
)

// ScanConfig bounds supplied by the presentation layer.
const (
	MinConcurrency = 1
	MaxConcurrency = 10
	MinTimeoutSec  = 5
	MaxTimeoutSec  = 30
)

// ScanConfig governs one batch run. It is supplied externally per run; there
// is no environment-variable configuration.
type ScanConfig struct {
	// MaxConcurrency is the worker pool size, in [1,10].
	MaxConcurrency int `json:"max_concurrency"`

	// TimeoutSeconds bounds each individual fetch, in [5,30].
	TimeoutSeconds int `json:"timeout_seconds"`
}

// DefaultScanConfig mirrors the interactive defaults: 3 workers, 15 seconds.
func DefaultScanConfig() ScanConfig {
	return ScanConfig{
		MaxConcurrency: 3,
		TimeoutSeconds: 15,
	}
}

// Validate reports whether the config is inside its allowed bounds. A
// violation is the batch-level hard failure surfaced before any scanning
// begins.
func (c ScanConfig) Validate() error {
	if c.MaxConcurrency < MinConcurrency || c.MaxConcurrency > MaxConcurrency {
		return fmt.Errorf("max_concurrency %d out of range [%d,%d]", c.MaxConcurrency, MinConcurrency, MaxConcurrency)
	}
	if c.TimeoutSeconds < MinTimeoutSec || c.TimeoutSeconds > MaxTimeoutSec {
		return fmt.Errorf("timeout_seconds %d out of range [%d,%d]", c.TimeoutSeconds, MinTimeoutSec, MaxTimeoutSec)
	}
	return nil
}

// Timeout returns TimeoutSeconds as a duration.
func (c ScanConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
