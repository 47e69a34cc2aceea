package webclient

import "context"

// WebClient abstracts HTTP retrieval so callers never touch net/http
// directly and tests can substitute a dummy.
type WebClient interface {
	Do(ctx context.Context, req *Request) (*Response, error)

	// Get is a convenience method for simple GET requests.
	Get(ctx context.Context, url string) (*Response, error)

	Close() error
}
