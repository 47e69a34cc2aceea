package app

import (
	"time"

	"github.com/example/gtmscan/internal/fetcher"
	"github.com/example/gtmscan/internal/model"
	"github.com/example/gtmscan/internal/runner"
	"github.com/example/gtmscan/internal/webclient"
)

// Config aggregates the per-component configuration the orchestrator needs.
// Everything is supplied per run; there is no environment-variable or file
// configuration.
type Config struct {
	// ListenAddr is the HTTP listen address when serving the API.
	ListenAddr string

	// ScanCfg holds the per-batch defaults applied when the caller leaves
	// fields unset.
	ScanCfg model.ScanConfig

	// FetcherCfg configures the page fetcher.
	FetcherCfg fetcher.Config

	// WebClientCfg configures the HTTP backend.
	WebClientCfg webclient.Config

	// RunnerCfg configures the batch runner.
	RunnerCfg runner.Config
}

// DefaultConfig returns the interactive defaults: 3 workers, 15 second
// timeout, one accepted completion per second.
func DefaultConfig() *Config {
	return &Config{
		ListenAddr: ":8080",
		ScanCfg:    model.DefaultScanConfig(),
		FetcherCfg: fetcher.Config{
			DefaultTimeout: 15 * time.Second,
		},
		WebClientCfg: webclient.Config{},
		RunnerCfg: runner.Config{
			Delay: time.Second,
		},
	}
}
