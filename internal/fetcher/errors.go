package fetcher

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
)

// StatusError reports a non-2xx/3xx final HTTP response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP status %d for %s", e.StatusCode, e.URL)
}

// TLSError reports a TLS verification failure whose insecure retry also
// failed. Err holds the retry's failure.
type TLSError struct {
	URL string
	Err error
}

func (e *TLSError) Error() string {
	return fmt.Sprintf("ssl failure fetching %s: %v", e.URL, e.Err)
}

func (e *TLSError) Unwrap() error { return e.Err }

// FetchError reports any other transport-level failure: DNS, connection
// refused, timeout, malformed response.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// isTLSVerificationError reports whether err stems from certificate
// verification, as opposed to any other transport failure. Only these
// trigger the one-shot insecure retry.
func isTLSVerificationError(err error) bool {
	var certErr *tls.CertificateVerificationError
	if errors.As(err, &certErr) {
		return true
	}
	var unknownAuthority x509.UnknownAuthorityError
	if errors.As(err, &unknownAuthority) {
		return true
	}
	var hostname x509.HostnameError
	if errors.As(err, &hostname) {
		return true
	}
	var invalid x509.CertificateInvalidError
	return errors.As(err, &invalid)
}
