package webclient

import (
	"net/http"
	"time"
)

// OptionInsecure selects the TLS-verification-disabled transport when set to
// "true" on a Request.
const OptionInsecure = "insecure"

type Request struct {
	Method  string
	URL     string
	Headers http.Header
	Body    []byte
	// Options contains backend-specific options like "insecure": "true" to
	// skip TLS certificate verification for this request.
	Options map[string]string
}

type Response struct {
	Request    *Request
	Headers    http.Header
	Body       []byte
	StatusCode int
	FetchedAt  time.Time
}

// Insecure reports whether the request asked for the verification-disabled
// transport.
func (r *Request) Insecure() bool {
	return r != nil && r.Options[OptionInsecure] == "true"
}
