// Package fetcher retrieves one page per call, normalizing the URL and
// classifying failures so the scan orchestrator can map them onto result
// records.
package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/example/gtmscan/internal/logging"
	"github.com/example/gtmscan/internal/utils"
	"github.com/example/gtmscan/internal/webclient"
)

// Page is the outcome of a successful fetch.
type Page struct {
	// URL is the normalized, scheme-prefixed URL that was fetched.
	URL string

	// Body is the response body, decoded to UTF-8.
	Body []byte

	// StatusCode is the final HTTP status.
	StatusCode int

	// InsecureRetry is true when the page was only reachable with TLS
	// certificate verification disabled.
	InsecureRetry bool
}

type Fetcher struct {
	cfg    Config
	wc     webclient.WebClient
	logger logging.Logger
}

// New creates a Fetcher over the given webclient.
func New(cfg Config, wc webclient.WebClient, logger logging.Logger) (*Fetcher, error) {
	if wc == nil {
		return nil, fmt.Errorf("fetcher: webclient is nil")
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.DefaultTimeout <= 0 {
		cfg.DefaultTimeout = 15 * time.Second
	}
	return &Fetcher{
		cfg:    cfg,
		wc:     wc,
		logger: logger.With(logging.Field{Key: "component", Value: "fetcher"}),
	}, nil
}

// Fetch GETs rawURL, prepending https:// when no scheme is present. A TLS
// verification failure is retried exactly once with verification disabled;
// the Page records that degraded mode. Failures come back as *StatusError,
// *TLSError or *FetchError.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, timeout time.Duration) (*Page, error) {
	target := utils.EnsureScheme(rawURL)
	if timeout <= 0 {
		timeout = f.cfg.DefaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := f.wc.Do(ctx, f.buildRequest(target, false))
	insecureRetry := false
	if err != nil {
		if !isTLSVerificationError(err) {
			return nil, &FetchError{URL: target, Err: err}
		}

		f.logger.Warn("tls verification failed, retrying without verification",
			logging.Field{Key: "url", Value: target},
			logging.Field{Key: "error", Value: err.Error()})

		resp, err = f.wc.Do(ctx, f.buildRequest(target, true))
		if err != nil {
			return nil, &TLSError{URL: target, Err: err}
		}
		insecureRetry = true
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return nil, &StatusError{URL: target, StatusCode: resp.StatusCode}
	}

	f.logger.Debug("fetched page",
		logging.Field{Key: "url", Value: target},
		logging.Field{Key: "status", Value: resp.StatusCode},
		logging.Field{Key: "bytes", Value: len(resp.Body)})

	return &Page{
		URL:           target,
		Body:          resp.Body,
		StatusCode:    resp.StatusCode,
		InsecureRetry: insecureRetry,
	}, nil
}

func (f *Fetcher) buildRequest(url string, insecure bool) *webclient.Request {
	headers := http.Header{}
	headers.Set("User-Agent", f.cfg.UserAgent)
	headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	headers.Set("Accept-Language", "en-US,en;q=0.5")
	headers.Set("Connection", "keep-alive")

	req := &webclient.Request{
		Method:  http.MethodGet,
		URL:     url,
		Headers: headers,
	}
	if insecure {
		req.Options = map[string]string{webclient.OptionInsecure: "true"}
	}
	return req
}
