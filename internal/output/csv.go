// Package output renders a finished ResultSet: delimited exports and a
// plain-text report. Nothing here mutates results.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/gtmscan/internal/model"
)

// Columns is the export header, matching the ScanResult fields one to one.
var Columns = []string{"url", "gtm_found", "emails", "phones", "contact_links", "status", "http_status"}

// listSeparator joins list-valued fields inside a single cell.
const listSeparator = "; "

// WriteCSV writes one row per result, in set order, after a header row.
func WriteCSV(w io.Writer, rs model.ResultSet) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, res := range rs {
		if err := cw.Write(resultRow(res)); err != nil {
			return fmt.Errorf("writing csv row for %s: %w", res.URL, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func resultRow(res *model.ScanResult) []string {
	httpStatus := ""
	if res.HTTPStatus != nil {
		httpStatus = strconv.Itoa(*res.HTTPStatus)
	}
	return []string{
		res.URL,
		strconv.FormatBool(res.GTMFound),
		strings.Join(res.Emails, listSeparator),
		strings.Join(res.Phones, listSeparator),
		strings.Join(res.ContactLinks, listSeparator),
		res.Status,
		httpStatus,
	}
}
