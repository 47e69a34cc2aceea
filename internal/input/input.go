// Package input turns the presentation layer's raw inputs into a URL list:
// free text with one URL per line, or a CSV whose first column holds URLs.
package input

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// FromString splits free text into URLs, one per line, trimming whitespace
// and dropping blank lines. No validation happens here; the fetcher decides
// what it can reach.
func FromString(text string) []string {
	lines := strings.Split(text, "\n")
	urls := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			urls = append(urls, trimmed)
		}
	}
	return urls
}

// FromReader reads r fully and applies FromString.
func FromReader(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading url list: %w", err)
	}
	return FromString(string(data)), nil
}

// FromCSV takes the first column of every data row. The first row is treated
// as a header and skipped.
func FromCSV(r io.Reader) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	urls := make([]string, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) == 0 {
			continue
		}
		if url := strings.TrimSpace(record[0]); url != "" {
			urls = append(urls, url)
		}
	}
	return urls, nil
}
