// Package scanner runs the per-URL pipeline: fetch, detect, extract, and
// fold whatever happened into exactly one result record.
package scanner

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/example/gtmscan/internal/detector"
	"github.com/example/gtmscan/internal/extractor"
	"github.com/example/gtmscan/internal/fetcher"
	"github.com/example/gtmscan/internal/logging"
	"github.com/example/gtmscan/internal/model"
	"github.com/example/gtmscan/internal/utils"
)

// Outcome status strings. These are part of the result contract; the
// presentation layer and CSV export show them verbatim.
const (
	StatusSuccess            = "Success"
	StatusNoGTM              = "No GTM found"
	StatusSuccessInsecure    = "Success (SSL verification disabled)"
	StatusNoGTMInsecure      = "No GTM found (SSL verification disabled)"
	statusErrorPrefix        = "Error: "
	statusSSLErrorPrefix     = "SSL Error: "
	statusCanceledDescriptor = "scan canceled"
)

type Scanner struct {
	fetcher *fetcher.Fetcher
	logger  logging.Logger
}

// New creates a Scanner over the given fetcher.
func New(f *fetcher.Fetcher, logger logging.Logger) (*Scanner, error) {
	if f == nil {
		return nil, fmt.Errorf("scanner: fetcher is nil")
	}
	return &Scanner{
		fetcher: f,
		logger:  logger.With(logging.Field{Key: "component", Value: "scanner"}),
	}, nil
}

// Scan runs the pipeline for one request and always returns a result: every
// failure is absorbed into the record's Status field, never propagated.
func (s *Scanner) Scan(ctx context.Context, req *model.ScanRequest) *model.ScanResult {
	if req == nil {
		return emptyResult("", statusErrorPrefix+"nil scan request")
	}

	normalized := utils.EnsureScheme(req.URL)

	page, err := s.fetcher.Fetch(ctx, req.URL, req.Timeout)
	if err != nil {
		return s.failureResult(normalized, err)
	}

	found := detector.Detect(page.Body)

	result := emptyResult(page.URL, "")
	result.GTMFound = found
	result.HTTPStatus = &page.StatusCode

	// Extraction only runs on GTM hits; that bound is policy, not an
	// optimization.
	if found {
		doc, parseErr := goquery.NewDocumentFromReader(bytes.NewReader(page.Body))
		if parseErr != nil {
			// Unparseable markup degrades to "no matches" without failing
			// the scan.
			s.logger.Warn("parsing page",
				logging.Field{Key: "url", Value: page.URL},
				logging.Field{Key: "error", Value: parseErr.Error()})
		} else {
			contacts := extractor.Extract(doc, page.URL)
			result.Emails = contacts.Emails
			result.Phones = contacts.Phones
			result.ContactLinks = contacts.ContactLinks
		}
	}

	switch {
	case found && page.InsecureRetry:
		result.Status = StatusSuccessInsecure
	case found:
		result.Status = StatusSuccess
	case page.InsecureRetry:
		result.Status = StatusNoGTMInsecure
	default:
		result.Status = StatusNoGTM
	}

	s.logger.Debug("scanned url",
		logging.Field{Key: "url", Value: page.URL},
		logging.Field{Key: "gtm_found", Value: found},
		logging.Field{Key: "status", Value: result.Status})

	return result
}

// failureResult maps a fetch error onto a result record per the error
// taxonomy: status codes are preserved for HTTP errors, TLS retry failures
// get the SSL prefix, everything else the generic one.
func (s *Scanner) failureResult(url string, err error) *model.ScanResult {
	s.logger.Warn("scan failed",
		logging.Field{Key: "url", Value: url},
		logging.Field{Key: "error", Value: err.Error()})

	var statusErr *fetcher.StatusError
	if errors.As(err, &statusErr) {
		result := emptyResult(url, statusErrorPrefix+err.Error())
		result.HTTPStatus = &statusErr.StatusCode
		return result
	}

	var tlsErr *fetcher.TLSError
	if errors.As(err, &tlsErr) {
		return emptyResult(url, statusSSLErrorPrefix+tlsErr.Unwrap().Error())
	}

	return emptyResult(url, statusErrorPrefix+err.Error())
}

// CanceledResult is the record produced for URLs whose batch was canceled
// before they were scanned. It keeps the one-result-per-URL invariant.
func CanceledResult(rawURL string) *model.ScanResult {
	return emptyResult(utils.EnsureScheme(rawURL), statusErrorPrefix+statusCanceledDescriptor)
}

func emptyResult(url, status string) *model.ScanResult {
	return &model.ScanResult{
		URL:          url,
		GTMFound:     false,
		Emails:       []string{},
		Phones:       []string{},
		ContactLinks: []string{},
		Status:       status,
	}
}
