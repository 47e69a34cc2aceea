package fetcher_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/example/gtmscan/internal/fetcher"
	"github.com/example/gtmscan/internal/testutil"
	"github.com/example/gtmscan/internal/webclient"
)

func newFetcher(t *testing.T, wc webclient.WebClient) *fetcher.Fetcher {
	t.Helper()
	f, err := fetcher.New(fetcher.Config{}, wc, &testutil.DummyLogger{})
	if err != nil {
		t.Fatalf("fetcher.New: %v", err)
	}
	return f
}

func newRealFetcher(t *testing.T, base *http.Client) *fetcher.Fetcher {
	t.Helper()
	wc, err := webclient.NewNetHTTPClient(webclient.Config{}, &testutil.DummyLogger{}, base)
	if err != nil {
		t.Fatalf("NewNetHTTPClient: %v", err)
	}
	t.Cleanup(func() { _ = wc.Close() })
	return newFetcher(t, wc)
}

func TestFetcher_Fetch_Success(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "<html>hello</html>")
	}))
	defer ts.Close()

	f := newRealFetcher(t, ts.Client())
	page, err := f.Fetch(context.Background(), ts.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if page.StatusCode != 200 {
		t.Errorf("expected 200, got %d", page.StatusCode)
	}
	if string(page.Body) != "<html>hello</html>" {
		t.Errorf("unexpected body %q", page.Body)
	}
	if page.InsecureRetry {
		t.Error("InsecureRetry should be false for a clean fetch")
	}
}

func TestFetcher_Fetch_PrependsSchemeAndSetsHeaders(t *testing.T) {
	t.Parallel()
	wc := &testutil.DummyWebClient{}
	f := newFetcher(t, wc)

	page, err := f.Fetch(context.Background(), "example.com", time.Second)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if page.URL != "https://example.com" {
		t.Errorf("expected https scheme injected, got %q", page.URL)
	}

	if wc.RequestCount() != 1 {
		t.Fatalf("expected 1 request, got %d", wc.RequestCount())
	}
	req := wc.Requests[0]
	if req.URL != "https://example.com" {
		t.Errorf("request went to %q", req.URL)
	}
	if ua := req.Headers.Get("User-Agent"); ua == "" {
		t.Error("expected browser-like User-Agent header")
	}
	if req.Headers.Get("Accept-Language") != "en-US,en;q=0.5" {
		t.Errorf("unexpected Accept-Language %q", req.Headers.Get("Accept-Language"))
	}
}

func TestFetcher_Fetch_PreservesExistingScheme(t *testing.T) {
	t.Parallel()
	wc := &testutil.DummyWebClient{}
	f := newFetcher(t, wc)

	page, err := f.Fetch(context.Background(), "http://example.com", time.Second)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if page.URL != "http://example.com" {
		t.Errorf("expected original scheme preserved, got %q", page.URL)
	}
}

func TestFetcher_Fetch_NonSuccessStatus(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer ts.Close()

	f := newRealFetcher(t, ts.Client())
	_, err := f.Fetch(context.Background(), ts.URL, 5*time.Second)

	var statusErr *fetcher.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if statusErr.StatusCode != 404 {
		t.Errorf("expected status 404, got %d", statusErr.StatusCode)
	}
}

func TestFetcher_Fetch_RedirectFollowedToSuccess(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/landed", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/landed", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "landed")
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	f := newRealFetcher(t, ts.Client())
	page, err := f.Fetch(context.Background(), ts.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(page.Body) != "landed" {
		t.Errorf("expected redirect target body, got %q", page.Body)
	}
}

func TestFetcher_Fetch_Timeout(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer ts.Close()

	f := newRealFetcher(t, ts.Client())
	_, err := f.Fetch(context.Background(), ts.URL, 50*time.Millisecond)

	var fetchErr *fetcher.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *FetchError, got %v", err)
	}
}

func TestFetcher_Fetch_ConnectionRefused(t *testing.T) {
	t.Parallel()
	f := newRealFetcher(t, nil)
	// Port 1 is essentially never listening.
	_, err := f.Fetch(context.Background(), "http://127.0.0.1:1", time.Second)

	var fetchErr *fetcher.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *FetchError, got %v", err)
	}
}

func TestFetcher_Fetch_TLSFallback(t *testing.T) {
	t.Parallel()
	ts := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "over tls")
	}))
	defer ts.Close()

	// nil base client: the self-signed cert fails verification, forcing the
	// insecure retry path.
	f := newRealFetcher(t, nil)
	page, err := f.Fetch(context.Background(), ts.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !page.InsecureRetry {
		t.Error("expected InsecureRetry to be set")
	}
	if string(page.Body) != "over tls" {
		t.Errorf("unexpected body %q", page.Body)
	}
}

func TestFetcher_New_NilWebClient(t *testing.T) {
	t.Parallel()
	if _, err := fetcher.New(fetcher.Config{}, nil, &testutil.DummyLogger{}); err == nil {
		t.Error("expected error for nil webclient")
	}
}
