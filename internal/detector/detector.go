// Package detector decides whether a fetched page embeds Google Tag Manager.
// Detection runs on the raw response body: no DOM walk, no script execution.
package detector

import "regexp"

// Known GTM embedding signatures, checked in order. The result is a
// disjunction, so matching stops at the first hit.
var gtmPatterns = []*regexp.Regexp{
	// GTM loader script
	regexp.MustCompile(`googletagmanager\.com/gtm\.js`),
	// Container id token
	regexp.MustCompile(`GTM-[A-Z0-9]+`),
	// Loader script with explicit container id
	regexp.MustCompile(`https://www\.googletagmanager\.com/gtm\.js\?id=`),
	// dataLayer initialization
	regexp.MustCompile(`dataLayer\s*=\s*\[\s*\]`),
	// noscript iframe fallback
	regexp.MustCompile(`www\.googletagmanager\.com/ns\.html\?id=GTM-`),
}

// Detect reports whether content carries any GTM embedding signature. It is
// pure and deterministic; empty or non-matching content yields false.
func Detect(content []byte) bool {
	for _, p := range gtmPatterns {
		if p.Match(content) {
			return true
		}
	}
	return false
}
