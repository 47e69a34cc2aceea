package webclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/example/gtmscan/internal/logging"
	"golang.org/x/net/html/charset"
)

// net/http backed implementation of WebClient. It keeps two underlying
// clients: the normal one and a clone with TLS certificate verification
// disabled, selected per request via Request.Options.
type NetHTTPClient struct {
	cfg      Config
	client   *http.Client
	insecure *http.Client
	logger   logging.Logger
}

func NewNetHTTPClient(cfg Config, logger logging.Logger, httpClient *http.Client) (*NetHTTPClient, error) {
	componentLogger := logger.With(logging.Field{Key: "component", Value: "webclient"})

	// Request deadlines come from the caller's context, so the client itself
	// carries no timeout.
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}

	insecure, err := insecureVariant(httpClient)
	if err != nil {
		return nil, fmt.Errorf("building insecure transport: %w", err)
	}

	componentLogger.Info("created nethttp webclient",
		logging.Field{Key: "max_body_bytes", Value: cfg.MaxBodyBytes})

	return &NetHTTPClient{
		cfg:      cfg,
		client:   httpClient,
		insecure: insecure,
		logger:   componentLogger,
	}, nil
}

// insecureVariant clones base into a client whose transport skips TLS
// certificate verification.
func insecureVariant(base *http.Client) (*http.Client, error) {
	var transport *http.Transport
	switch t := base.Transport.(type) {
	case nil:
		def, ok := http.DefaultTransport.(*http.Transport)
		if !ok {
			return nil, fmt.Errorf("unexpected default transport type %T", http.DefaultTransport)
		}
		transport = def.Clone()
	case *http.Transport:
		transport = t.Clone()
	default:
		return nil, fmt.Errorf("unsupported transport type %T", base.Transport)
	}

	if transport.TLSClientConfig == nil {
		transport.TLSClientConfig = &tls.Config{}
	} else {
		transport.TLSClientConfig = transport.TLSClientConfig.Clone()
	}
	transport.TLSClientConfig.InsecureSkipVerify = true

	clone := *base
	clone.Transport = transport
	return &clone, nil
}

// Do executes the request with net/http. Response bodies are decoded to
// UTF-8 based on the Content-Type charset and capped at cfg.MaxBodyBytes.
func (nhc *NetHTTPClient) Do(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, fmt.Errorf("nil request")
	}

	method := strings.ToUpper(req.Method)
	if method == "" {
		method = http.MethodGet
	}

	nhc.logger.Debug("sending http request",
		logging.Field{Key: "method", Value: method},
		logging.Field{Key: "url", Value: req.URL},
		logging.Field{Key: "insecure", Value: req.Insecure()})

	var bodyReader io.Reader
	if len(req.Body) > 0 {
		bodyReader = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if req.Headers != nil {
		for k, vs := range req.Headers {
			for _, v := range vs {
				httpReq.Header.Add(k, v)
			}
		}
	}

	client := nhc.client
	if req.Insecure() {
		client = nhc.insecure
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		nhc.logger.Warn("http request failed",
			logging.Field{Key: "url", Value: req.URL},
			logging.Field{Key: "error", Value: err.Error()})
		return nil, fmt.Errorf("http do: %w", err)
	}
	defer resp.Body.Close()

	body, err := nhc.readBody(resp)
	if err != nil {
		nhc.logger.Warn("failed to read response body",
			logging.Field{Key: "url", Value: req.URL},
			logging.Field{Key: "error", Value: err.Error()})
		return nil, fmt.Errorf("read body: %w", err)
	}

	return &Response{
		Request:    req,
		Body:       body,
		Headers:    resp.Header,
		StatusCode: resp.StatusCode,
		FetchedAt:  time.Now(),
	}, nil
}

// readBody drains the response body, transcoding to UTF-8 when the
// Content-Type declares a charset. Undecodable bodies fall back to the raw
// bytes so pattern matching still gets a chance.
func (nhc *NetHTTPClient) readBody(resp *http.Response) ([]byte, error) {
	limited := io.LimitReader(resp.Body, nhc.cfg.MaxBodyBytes)

	decoded, err := charset.NewReader(limited, resp.Header.Get("Content-Type"))
	if err != nil {
		return io.ReadAll(limited)
	}
	return io.ReadAll(decoded)
}

// Get is a convenience method for simple GET requests.
func (nhc *NetHTTPClient) Get(ctx context.Context, url string) (*Response, error) {
	return nhc.Do(ctx, &Request{Method: http.MethodGet, URL: url})
}

func (nhc *NetHTTPClient) Close() error {
	nhc.logger.Info("closing nethttp webclient")
	nhc.client.CloseIdleConnections()
	nhc.insecure.CloseIdleConnections()
	return nil
}
