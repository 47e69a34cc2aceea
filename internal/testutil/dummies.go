// Package testutil provides shared test doubles for use across package tests.
// All dummies implement the corresponding interfaces from the production code,
// allowing injection into components under test without real I/O or side effects.
package testutil

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/example/gtmscan/internal/logging"
	"github.com/example/gtmscan/internal/webclient"
)

// ─── Logger ────────────────────────────────────────────────────────────

// DummyLogger implements logging.Logger with in-memory recording.
type DummyLogger struct {
	mu     sync.Mutex
	Errors []string
	Infos  []string
	Debugs []string
	Warns  []string
}

func (l *DummyLogger) Debug(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Debugs = append(l.Debugs, msg)
}

func (l *DummyLogger) Info(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Infos = append(l.Infos, msg)
}

func (l *DummyLogger) Warn(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Warns = append(l.Warns, msg)
}

func (l *DummyLogger) Error(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Errors = append(l.Errors, msg)
}

func (l *DummyLogger) With(_ ...logging.Field) logging.Logger { return l }

// ─── WebClient ─────────────────────────────────────────────────────────

// DummyWebClient implements webclient.WebClient. By default it returns body
// "ok:<url>" with status 200; Pages, Statuses and Errs override that per URL.
type DummyWebClient struct {
	mu sync.Mutex

	// Pages maps URL to the body returned for it.
	Pages map[string]string

	// Statuses maps URL to the HTTP status returned for it (default 200).
	Statuses map[string]int

	// Errs maps URL to an error returned instead of a response.
	Errs map[string]error

	// Requests records every request seen, in order.
	Requests []*webclient.Request
}

func (d *DummyWebClient) Do(ctx context.Context, req *webclient.Request) (*webclient.Response, error) {
	if req == nil {
		return nil, fmt.Errorf("nil request")
	}

	d.mu.Lock()
	d.Requests = append(d.Requests, req)
	body, hasBody := "", false
	if d.Pages != nil {
		body, hasBody = d.Pages[req.URL]
	}
	status := 0
	if d.Statuses != nil {
		status = d.Statuses[req.URL]
	}
	var err error
	if d.Errs != nil {
		err = d.Errs[req.URL]
	}
	d.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if !hasBody {
		body = "ok:" + req.URL
	}
	if status == 0 {
		status = http.StatusOK
	}

	return &webclient.Response{
		Request:    req,
		Headers:    http.Header{"Content-Type": []string{"text/html"}},
		Body:       []byte(body),
		StatusCode: status,
		FetchedAt:  time.Now(),
	}, nil
}

func (d *DummyWebClient) Get(ctx context.Context, url string) (*webclient.Response, error) {
	return d.Do(ctx, &webclient.Request{Method: http.MethodGet, URL: url})
}

func (d *DummyWebClient) Close() error { return nil }

// RequestCount returns how many requests the dummy has served.
func (d *DummyWebClient) RequestCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.Requests)
}
