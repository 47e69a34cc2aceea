package fetcher

import "time"

// Browser-like request headers. Plenty of sites serve bots a stub page or a
// 403; these keep trivial blocking out of the way.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

type Config struct {
	// UserAgent overrides the default browser-like User-Agent.
	UserAgent string

	// DefaultTimeout applies when a fetch is issued without one. The batch
	// runner always supplies a per-request timeout, so this is a fallback.
	DefaultTimeout time.Duration
}
