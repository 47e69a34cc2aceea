// Package extractor pulls contact details out of an already-parsed page. It
// never touches the network; the document is its only input.
package extractor

import (
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/example/gtmscan/internal/utils"
)

var (
	// local@domain.tld shaped tokens in visible text.
	emailPattern = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)

	// Optional country code, optional parens around the area code, and
	// -/./space separators between 3-3-4 digit groups. Known to be
	// North-American-biased; that imprecision is part of the contract.
	phonePattern = regexp.MustCompile(`(?:\+\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
)

// ContactInfo holds the deduplicated, sorted contact details found on a page.
type ContactInfo struct {
	Emails       []string
	Phones       []string
	ContactLinks []string
}

// Extract scans doc for email tokens, phone-shaped digit groups and
// contact/about anchors. Root-relative hrefs are rewritten to absolute using
// sourceURL's scheme and host.
func Extract(doc *goquery.Document, sourceURL string) *ContactInfo {
	if doc == nil {
		return &ContactInfo{Emails: []string{}, Phones: []string{}, ContactLinks: []string{}}
	}

	text := doc.Text()

	base, baseErr := utils.SchemeHost(sourceURL)

	links := make([]string, 0, 4)
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		lower := strings.ToLower(href)
		// Coarse on purpose: "contactless-payments" matches too.
		if !strings.Contains(lower, "contact") && !strings.Contains(lower, "about") {
			return
		}
		if strings.HasPrefix(href, "/") && baseErr == nil {
			href = base + href
		}
		links = append(links, href)
	})

	return &ContactInfo{
		Emails:       dedupSorted(emailPattern.FindAllString(text, -1)),
		Phones:       dedupSorted(phonePattern.FindAllString(text, -1)),
		ContactLinks: dedupSorted(links),
	}
}

// dedupSorted returns the unique values in sorted order. Never nil, so the
// result serializes as [] rather than null.
func dedupSorted(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
