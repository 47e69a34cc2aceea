package model

import "time"

// ScanRequest describes one URL to scan. Requests are created by the batch
// runner from the raw input list and are not mutated afterwards.
type ScanRequest struct {
	// URL is the raw target URL; it may lack a scheme.
	URL string `json:"url"`

	// Timeout bounds the fetch for this request. Zero means the scanner's
	// default applies.
	Timeout time.Duration `json:"-"`
}

// ScanResult is the per-URL output record of the scan pipeline. Exactly one
// is produced per ScanRequest, and it is immutable after creation.
type ScanResult struct {
	// URL is the normalized, scheme-prefixed target URL.
	URL string `json:"url"`

	// GTMFound reports whether any GTM embedding signature matched.
	GTMFound bool `json:"gtm_found"`

	// Emails, Phones and ContactLinks are deduplicated and sorted. They are
	// only populated when GTMFound is true.
	Emails       []string `json:"emails"`
	Phones       []string `json:"phones"`
	ContactLinks []string `json:"contact_links"`

	// Status is a human-readable outcome or error description.
	Status string `json:"status"`

	// HTTPStatus is the final HTTP status code, when one was received.
	HTTPStatus *int `json:"http_status"`
}

// ResultSet is the completion-ordered collection of results for one batch
// run. Its length always equals the input URL count.
type ResultSet []*ScanResult

// GTMFound returns the subset of results where GTM was detected, preserving
// completion order.
func (rs ResultSet) GTMFound() ResultSet {
	out := make(ResultSet, 0, len(rs))
	for _, r := range rs {
		if r != nil && r.GTMFound {
			out = append(out, r)
		}
	}
	return out
}

// Summary holds the aggregate counts rendered by the presentation layer.
type Summary struct {
	Total    int `json:"total"`
	GTMFound int `json:"gtm_found"`
}

// SuccessRate is the GTM-found share of all scanned URLs as a percentage.
// Zero when nothing was scanned.
func (s Summary) SuccessRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.GTMFound) / float64(s.Total) * 100
}

// Summary computes aggregate counts over the set.
func (rs ResultSet) Summary() Summary {
	return Summary{
		Total:    len(rs),
		GTMFound: len(rs.GTMFound()),
	}
}
